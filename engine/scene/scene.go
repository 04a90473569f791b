// Package scene assembles everything one render variant needs into a single
// renderer.DrawBundle: mesh, shaders, pipeline, bind groups, and for the spin
// variant the camera and transform animator. CPU staging work (vertex
// marshaling, embedded PNG decode) fans out across a worker pool before any
// GPU resource is created.
package scene

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/animator"
	"github.com/Carmen-Shannon/prism/engine/camera"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/renderer/binder"
	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/checkerboard.png
var checkerboardPNG []byte

// transformSize is the byte size of one mat4x4<f32>, the payload of every
// uniform and instance buffer the variants stream.
const transformSize = 64

// Scene owns the assembled draw bundle for one render variant.
type Scene interface {
	// Variant returns the render variant this scene was assembled for.
	//
	// Returns:
	//   - renderer.RenderVariant: the variant tag
	Variant() renderer.RenderVariant

	// Bundle returns the assembled draw bundle, ready to hand to a
	// FrameRenderer.
	//
	// Returns:
	//   - *renderer.DrawBundle: the assembled bundle
	Bundle() *renderer.DrawBundle

	// Release frees the bundle's GPU resources.
	Release()
}

type sceneImpl struct {
	variant renderer.RenderVariant
	bundle  *renderer.DrawBundle

	prepWorkers  int
	cam          camera.Camera
	anim         animator.TransformAnimator
	cameraAspect float32
}

// Ensure sceneImpl implements Scene interface.
var _ Scene = &sceneImpl{}

// preparedAssets holds the CPU-side staging output of the startup worker
// pool, joined before any GPU upload happens.
type preparedAssets struct {
	vertexData  []byte
	vertexCount int
	indices     []uint16
	texture     *common.TextureStagingData
}

// NewScene assembles the draw bundle for the given variant. CPU staging runs
// on a worker pool first; GPU resources are then created and uploaded in
// dependency order. Panics if any of the required components is nil.
//
// Parameters:
//   - variant: the render variant to assemble
//   - graphicsCtx: the graphics context pipelines are created against (must not be nil)
//   - resourceBinder: the binder creating buffers, textures, and bind groups (must not be nil)
//   - geometryStore: the store vertex and index data is uploaded through (must not be nil)
//   - surfaceFormat: the surface's texture format, targeted by the variant's pipeline
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the assembled scene
//   - error: error if asset staging or GPU resource creation fails
func NewScene(variant renderer.RenderVariant, graphicsCtx graphics.GraphicsContext, resourceBinder binder.ResourceBinder, geometryStore geometry.GeometryStore, surfaceFormat wgpu.TextureFormat, options ...SceneBuilderOption) (Scene, error) {
	if graphicsCtx == nil {
		panic("scene: NewScene requires a non-nil GraphicsContext")
	}
	if resourceBinder == nil {
		panic("scene: NewScene requires a non-nil ResourceBinder")
	}
	if geometryStore == nil {
		panic("scene: NewScene requires a non-nil GeometryStore")
	}

	s := &sceneImpl{
		variant:     variant,
		prepWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}

	prepared, err := prepareAssets(variant, s.prepWorkers)
	if err != nil {
		return nil, err
	}

	bundle, err := s.assemble(graphicsCtx, resourceBinder, geometryStore, surfaceFormat, prepared)
	if err != nil {
		return nil, err
	}
	s.bundle = bundle

	return s, nil
}

func (s *sceneImpl) Variant() renderer.RenderVariant {
	return s.variant
}

func (s *sceneImpl) Bundle() *renderer.DrawBundle {
	return s.bundle
}

func (s *sceneImpl) Release() {
	if s.bundle != nil {
		s.bundle.Release()
	}
}

// prepareAssets runs the variant's CPU staging tasks on a short-lived worker
// pool: vertex marshaling and, for textured variants, the embedded PNG
// decode. All tasks are joined before returning. Workers idle-exit after the
// pool's timeout, so the pool needs no explicit shutdown.
//
// Parameters:
//   - variant: the render variant being staged
//   - workers: the number of pool workers
//
// Returns:
//   - *preparedAssets: the staged vertex bytes, indices, and texture data
//   - error: error if the texture asset fails to decode
func prepareAssets(variant renderer.RenderVariant, workers int) (*preparedAssets, error) {
	prepared := &preparedAssets{}
	if variant == renderer.RenderVariantClear {
		return prepared, nil
	}

	pool := worker.NewDynamicWorkerPool(workers, 16, 1*time.Second)

	var wg sync.WaitGroup
	var decodeErr error

	wg.Add(1)
	pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			defer wg.Done()
			switch variant {
			case renderer.RenderVariantTriangle:
				vertices := triangleVertices()
				prepared.vertexData = geometry.MarshalColorVertices(vertices)
				prepared.vertexCount = len(vertices)
			case renderer.RenderVariantBanded:
				vertices := triangleVertices()
				prepared.vertexData = geometry.MarshalColorVertices(vertices)
				prepared.vertexCount = len(vertices)
				prepared.indices = bandedIndices()
			default:
				vertices := quadVertices()
				prepared.vertexData = geometry.MarshalTexturedVertices(vertices)
				prepared.vertexCount = len(vertices)
				prepared.indices = quadIndices()
			}
			return nil, nil
		},
	})

	if variant == renderer.RenderVariantTexture || variant == renderer.RenderVariantSpin {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: 1,
			Do: func() (any, error) {
				defer wg.Done()
				prepared.texture, decodeErr = common.DecodeImage(checkerboardPNG)
				return nil, decodeErr
			},
		})
	}

	wg.Wait()

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to stage texture asset: %w", decodeErr)
	}
	return prepared, nil
}

// assemble creates the variant's GPU resources in dependency order and wires
// them into a draw bundle. On failure the partially built bundle is released.
func (s *sceneImpl) assemble(graphicsCtx graphics.GraphicsContext, resourceBinder binder.ResourceBinder, geometryStore geometry.GeometryStore, surfaceFormat wgpu.TextureFormat, prepared *preparedAssets) (*renderer.DrawBundle, error) {
	bundle := &renderer.DrawBundle{
		Label:      variantLabel(s.variant),
		ClearColor: variantClearColor(s.variant),
	}
	if s.variant == renderer.RenderVariantClear {
		return bundle, nil
	}

	mesh, err := geometryStore.UploadMesh(bundle.Label+" Mesh", prepared.vertexData, prepared.vertexCount, prepared.indices)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s mesh: %w", bundle.Label, err)
	}
	bundle.Mesh = mesh

	// Bind group layouts are only needed while the groups and the pipeline
	// are created; the driver keeps its own references after that.
	var layouts []*binder.Layout
	defer func() {
		for _, layout := range layouts {
			if layout != nil && layout.Handle != nil {
				layout.Handle.Release()
			}
		}
	}()

	switch s.variant {
	case renderer.RenderVariantTriangle:
		err = buildColorPipeline(bundle, graphicsCtx, shader.Triangle(), surfaceFormat)
	case renderer.RenderVariantBanded:
		err = buildColorPipeline(bundle, graphicsCtx, shader.Banded(), surfaceFormat)
	case renderer.RenderVariantTexture:
		layouts, err = s.buildTextureBundle(bundle, graphicsCtx, resourceBinder, surfaceFormat, prepared)
	case renderer.RenderVariantSpin:
		layouts, err = s.buildSpinBundle(bundle, graphicsCtx, resourceBinder, surfaceFormat, prepared)
	default:
		err = &renderer.UnknownVariantError{Name: s.variant.String()}
	}
	if err != nil {
		bundle.Release()
		return nil, err
	}

	return bundle, nil
}

// buildColorPipeline attaches the non-indexed color pipeline shared by the
// triangle and banded variants. Neither uses bind groups.
func buildColorPipeline(bundle *renderer.DrawBundle, graphicsCtx graphics.GraphicsContext, sh shader.Shader, surfaceFormat wgpu.TextureFormat) error {
	p, err := pipeline.NewRenderPipeline(graphicsCtx, sh, surfaceFormat,
		pipeline.WithVertexLayouts(geometry.ColorVertexLayout()),
	)
	if err != nil {
		return fmt.Errorf("failed to build %s pipeline: %w", sh.Key(), err)
	}
	bundle.Pipeline = p
	return nil
}

// buildMaterialGroup creates the sampled-texture bind group shared by the
// texture and spin variants: binding 0 the texture view, binding 1 the
// sampler, both fragment-visible. The group is appended to the bundle and the
// layout returned so the pipeline can reference it.
func buildMaterialGroup(bundle *renderer.DrawBundle, resourceBinder binder.ResourceBinder, prepared *preparedAssets) (*binder.Layout, error) {
	view, err := resourceBinder.CreateTexture(bundle.Label+" Texture", prepared.texture)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s texture: %w", bundle.Label, err)
	}
	bundle.TextureView = view

	sampler, err := resourceBinder.CreateSampler(bundle.Label+" Sampler", common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s sampler: %w", bundle.Label, err)
	}
	bundle.Sampler = sampler

	layout, err := resourceBinder.BuildLayout(bundle.Label+" Material Layout", []binder.LayoutEntry{
		{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: binder.ResourceKindSampledTexture},
		{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: binder.ResourceKindSampler},
	})
	if err != nil {
		return nil, err
	}

	group, err := resourceBinder.BuildGroup(layout, []binder.BindingResource{
		{Binding: 0, TextureView: view},
		{Binding: 1, Sampler: sampler},
	})
	if err != nil {
		return layout, err
	}
	bundle.BindGroups = append(bundle.BindGroups, group)

	return layout, nil
}

// buildMatrixGroup creates one vertex-visible uniform buffer holding a single
// mat4x4 and the bind group exposing it, appending the group to the bundle.
func buildMatrixGroup(bundle *renderer.DrawBundle, resourceBinder binder.ResourceBinder, label string) (*binder.Layout, *wgpu.Buffer, error) {
	buffer, err := resourceBinder.CreateUniformBuffer(label+" Buffer", transformSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s buffer: %w", label, err)
	}

	layout, err := resourceBinder.BuildLayout(label+" Layout", []binder.LayoutEntry{
		{Binding: 0, Visibility: wgpu.ShaderStageVertex, Kind: binder.ResourceKindUniformBuffer, MinBindingSize: transformSize},
	})
	if err != nil {
		return nil, buffer, err
	}

	group, err := resourceBinder.BuildGroup(layout, []binder.BindingResource{
		{Binding: 0, Buffer: buffer},
	})
	if err != nil {
		return layout, buffer, err
	}
	bundle.BindGroups = append(bundle.BindGroups, group)

	return layout, buffer, nil
}

// buildTextureBundle assembles the static textured quad: material bind group
// at group 0 and the textured vertex pipeline.
func (s *sceneImpl) buildTextureBundle(bundle *renderer.DrawBundle, graphicsCtx graphics.GraphicsContext, resourceBinder binder.ResourceBinder, surfaceFormat wgpu.TextureFormat, prepared *preparedAssets) ([]*binder.Layout, error) {
	materialLayout, err := buildMaterialGroup(bundle, resourceBinder, prepared)
	layouts := []*binder.Layout{materialLayout}
	if err != nil {
		return layouts, err
	}

	p, err := pipeline.NewRenderPipeline(graphicsCtx, shader.Texture(), surfaceFormat,
		pipeline.WithVertexLayouts(geometry.TexturedVertexLayout()),
		pipeline.WithBindGroupLayouts(materialLayout.Handle),
	)
	if err != nil {
		return layouts, fmt.Errorf("failed to build texture pipeline: %w", err)
	}
	bundle.Pipeline = p

	return layouts, nil
}

// buildSpinBundle assembles the animated textured quad: material bind group
// at group 0, view and projection uniform groups at 1 and 2, the per-frame
// instance matrix buffer, and the instance-stepped pipeline. The camera's
// matrices and the animator's starting transform are uploaded in one flush.
func (s *sceneImpl) buildSpinBundle(bundle *renderer.DrawBundle, graphicsCtx graphics.GraphicsContext, resourceBinder binder.ResourceBinder, surfaceFormat wgpu.TextureFormat, prepared *preparedAssets) ([]*binder.Layout, error) {
	materialLayout, err := buildMaterialGroup(bundle, resourceBinder, prepared)
	layouts := []*binder.Layout{materialLayout}
	if err != nil {
		return layouts, err
	}

	cam := s.cam
	if cam == nil {
		var camOptions []camera.CameraBuilderOption
		if s.cameraAspect > 0 {
			camOptions = append(camOptions, camera.WithAspect(s.cameraAspect))
		}
		cam = camera.NewCamera(camOptions...)
	}
	bundle.Camera = cam

	anim := s.anim
	if anim == nil {
		anim = animator.NewTransformAnimator()
	}
	bundle.Animator = anim

	viewLayout, viewBuffer, err := buildMatrixGroup(bundle, resourceBinder, "Spin View")
	layouts = append(layouts, viewLayout)
	bundle.ViewBuffer = viewBuffer
	if err != nil {
		return layouts, err
	}

	projectionLayout, projectionBuffer, err := buildMatrixGroup(bundle, resourceBinder, "Spin Projection")
	layouts = append(layouts, projectionLayout)
	bundle.ProjectionBuffer = projectionBuffer
	if err != nil {
		return layouts, err
	}

	instanceBuffer, err := resourceBinder.CreateInstanceBuffer("Spin Instance Buffer", transformSize)
	if err != nil {
		return layouts, fmt.Errorf("failed to create spin instance buffer: %w", err)
	}
	bundle.InstanceBuffer = instanceBuffer

	initial := animator.NewGPUTransformData(anim.Current())
	err = resourceBinder.Flush([]binder.BufferWrite{
		{Buffer: viewBuffer, Offset: 0, Data: cam.ViewData()},
		{Buffer: projectionBuffer, Offset: 0, Data: cam.ProjectionData()},
		{Buffer: instanceBuffer, Offset: 0, Data: initial.Marshal()},
	})
	if err != nil {
		return layouts, fmt.Errorf("failed to upload spin uniforms: %w", err)
	}

	p, err := pipeline.NewRenderPipeline(graphicsCtx, shader.Spin(), surfaceFormat,
		pipeline.WithVertexLayouts(geometry.TexturedVertexLayout(), animator.InstanceMatrixLayout(2)),
		pipeline.WithBindGroupLayouts(materialLayout.Handle, viewLayout.Handle, projectionLayout.Handle),
	)
	if err != nil {
		return layouts, fmt.Errorf("failed to build spin pipeline: %w", err)
	}
	bundle.Pipeline = p

	return layouts, nil
}
