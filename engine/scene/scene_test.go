package scene

import (
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/renderer/binder"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGraphicsContext struct{}

func (stubGraphicsContext) Instance() *wgpu.Instance { return nil }
func (stubGraphicsContext) Surface() *wgpu.Surface   { return nil }
func (stubGraphicsContext) Adapter() *wgpu.Adapter   { return nil }
func (stubGraphicsContext) Device() *wgpu.Device     { return nil }
func (stubGraphicsContext) Queue() *wgpu.Queue       { return nil }
func (stubGraphicsContext) Release()                 {}

type stubBinder struct{}

func (stubBinder) BuildLayout(string, []binder.LayoutEntry) (*binder.Layout, error) {
	return nil, nil
}
func (stubBinder) BuildGroup(*binder.Layout, []binder.BindingResource) (*wgpu.BindGroup, error) {
	return nil, nil
}
func (stubBinder) CreateUniformBuffer(string, uint64) (*wgpu.Buffer, error)  { return nil, nil }
func (stubBinder) CreateInstanceBuffer(string, uint64) (*wgpu.Buffer, error) { return nil, nil }
func (stubBinder) CreateTexture(string, *common.TextureStagingData) (*wgpu.TextureView, error) {
	return nil, nil
}
func (stubBinder) CreateSampler(string, common.SamplerStagingData) (*wgpu.Sampler, error) {
	return nil, nil
}
func (stubBinder) Upload(*wgpu.Buffer, uint64, []byte) error { return nil }
func (stubBinder) Flush([]binder.BufferWrite) error          { return nil }

type stubGeometryStore struct{}

func (stubGeometryStore) UploadMesh(string, []byte, int, []uint16) (*geometry.Mesh, error) {
	return &geometry.Mesh{}, nil
}

func TestTriangleVertices(t *testing.T) {
	vertices := triangleVertices()
	require.Len(t, vertices, 3)

	assert.Equal(t, [3]float32{0.0, 0.5, 0.0}, vertices[0].Position)
	assert.Equal(t, [3]float32{-0.5, -0.5, 0.0}, vertices[1].Position)
	assert.Equal(t, [3]float32{0.5, -0.5, 0.0}, vertices[2].Position)

	assert.Equal(t, [3]float32{1, 0, 0}, vertices[0].Color)
	assert.Equal(t, [3]float32{0, 1, 0}, vertices[1].Color)
	assert.Equal(t, [3]float32{0, 0, 1}, vertices[2].Color)
}

func TestQuadVertices(t *testing.T) {
	vertices := quadVertices()
	require.Len(t, vertices, 4)

	assert.Equal(t, [3]float32{-0.5, -0.5, 0.0}, vertices[0].Position)
	assert.Equal(t, [2]float32{0, 1}, vertices[0].UV)
	assert.Equal(t, [3]float32{0.5, -0.5, 0.0}, vertices[1].Position)
	assert.Equal(t, [2]float32{1, 1}, vertices[1].UV)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.0}, vertices[2].Position)
	assert.Equal(t, [2]float32{1, 0}, vertices[2].UV)
	assert.Equal(t, [3]float32{-0.5, 0.5, 0.0}, vertices[3].Position)
	assert.Equal(t, [2]float32{0, 0}, vertices[3].UV)
}

func TestQuadIndicesReferenceValidVertices(t *testing.T) {
	indices := quadIndices()
	require.Equal(t, []uint16{0, 1, 3, 1, 2, 3}, indices)

	vertexCount := uint16(len(quadVertices()))
	for _, idx := range indices {
		assert.Less(t, idx, vertexCount)
	}

	assert.Equal(t, []uint16{0, 1, 2}, bandedIndices())
}

func TestVariantClearColors(t *testing.T) {
	green := wgpu.Color{R: 0.1, G: 0.9, B: 0.1, A: 1.0}
	black := wgpu.Color{R: 0, G: 0, B: 0, A: 1.0}

	assert.Equal(t, green, variantClearColor(renderer.RenderVariantClear))
	assert.Equal(t, black, variantClearColor(renderer.RenderVariantTriangle))
	assert.Equal(t, black, variantClearColor(renderer.RenderVariantBanded))
	assert.Equal(t, black, variantClearColor(renderer.RenderVariantTexture))
	assert.Equal(t, black, variantClearColor(renderer.RenderVariantSpin))
}

func TestVariantLabels(t *testing.T) {
	assert.Equal(t, "Clear", variantLabel(renderer.RenderVariantClear))
	assert.Equal(t, "Spin", variantLabel(renderer.RenderVariantSpin))
	assert.Equal(t, "Unknown", variantLabel(renderer.RenderVariant(99)))
}

func TestPrepareAssetsClear(t *testing.T) {
	prepared, err := prepareAssets(renderer.RenderVariantClear, 2)
	require.NoError(t, err)

	assert.Empty(t, prepared.vertexData)
	assert.Zero(t, prepared.vertexCount)
	assert.Empty(t, prepared.indices)
	assert.Nil(t, prepared.texture)
}

func TestPrepareAssetsTriangle(t *testing.T) {
	prepared, err := prepareAssets(renderer.RenderVariantTriangle, 2)
	require.NoError(t, err)

	assert.Len(t, prepared.vertexData, 3*24)
	assert.Equal(t, 3, prepared.vertexCount)
	assert.Empty(t, prepared.indices)
	assert.Nil(t, prepared.texture)
}

func TestPrepareAssetsBanded(t *testing.T) {
	prepared, err := prepareAssets(renderer.RenderVariantBanded, 2)
	require.NoError(t, err)

	assert.Len(t, prepared.vertexData, 3*24)
	assert.Equal(t, 3, prepared.vertexCount)
	assert.Equal(t, []uint16{0, 1, 2}, prepared.indices)
}

func TestPrepareAssetsTexturedVariants(t *testing.T) {
	for _, variant := range []renderer.RenderVariant{renderer.RenderVariantTexture, renderer.RenderVariantSpin} {
		prepared, err := prepareAssets(variant, 2)
		require.NoError(t, err, variant.String())

		assert.Len(t, prepared.vertexData, 4*20, variant.String())
		assert.Equal(t, 4, prepared.vertexCount, variant.String())
		assert.Equal(t, []uint16{0, 1, 3, 1, 2, 3}, prepared.indices, variant.String())

		require.NotNil(t, prepared.texture, variant.String())
		assert.Equal(t, uint32(256), prepared.texture.Width)
		assert.Equal(t, uint32(256), prepared.texture.Height)
		assert.Len(t, prepared.texture.Pixels, 256*256*4)
	}
}

func TestCheckerboardPixelPattern(t *testing.T) {
	prepared, err := prepareAssets(renderer.RenderVariantTexture, 1)
	require.NoError(t, err)
	require.NotNil(t, prepared.texture)

	// Top-left square is the light color, the square to its right is dark.
	light := []byte{222, 222, 222, 255}
	dark := []byte{48, 63, 84, 255}
	assert.Equal(t, light, prepared.texture.Pixels[0:4])

	darkOffset := 32 * 4
	assert.Equal(t, dark, prepared.texture.Pixels[darkOffset:darkOffset+4])
}

func TestNewSceneClearVariant(t *testing.T) {
	s, err := NewScene(renderer.RenderVariantClear, stubGraphicsContext{}, stubBinder{}, stubGeometryStore{}, wgpu.TextureFormatBGRA8Unorm)
	require.NoError(t, err)

	assert.Equal(t, renderer.RenderVariantClear, s.Variant())

	bundle := s.Bundle()
	require.NotNil(t, bundle)
	assert.Equal(t, "Clear", bundle.Label)
	assert.Equal(t, wgpu.Color{R: 0.1, G: 0.9, B: 0.1, A: 1.0}, bundle.ClearColor)
	assert.Nil(t, bundle.Pipeline)
	assert.Nil(t, bundle.Mesh)

	assert.NotPanics(t, s.Release)
}

func TestNewSceneRejectsNilComponents(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewScene(renderer.RenderVariantClear, nil, stubBinder{}, stubGeometryStore{}, wgpu.TextureFormatBGRA8Unorm)
	})
	assert.Panics(t, func() {
		_, _ = NewScene(renderer.RenderVariantClear, stubGraphicsContext{}, nil, stubGeometryStore{}, wgpu.TextureFormatBGRA8Unorm)
	})
	assert.Panics(t, func() {
		_, _ = NewScene(renderer.RenderVariantClear, stubGraphicsContext{}, stubBinder{}, nil, wgpu.TextureFormatBGRA8Unorm)
	})
}

func TestWithPrepWorkersClampsToOne(t *testing.T) {
	s := &sceneImpl{}
	WithPrepWorkers(0)(s)
	assert.Equal(t, 1, s.prepWorkers)

	WithPrepWorkers(8)(s)
	assert.Equal(t, 8, s.prepWorkers)
}
