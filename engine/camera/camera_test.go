package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mulVec4(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := range 4 {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	ex, ey, ez := c.Eye()
	assert.Equal(t, [3]float32{0, 0, 3}, [3]float32{ex, ey, ez})
	tx, ty, tz := c.Target()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{tx, ty, tz})
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)
	assert.Equal(t, float32(1.0), c.Aspect())
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	c := NewCamera(WithEye(1, 2, 3), WithTarget(0, 0, 0))

	out := mulVec4(c.ViewMatrix(), [4]float32{1, 2, 3, 1})
	assert.InDelta(t, 0, out[0], 1e-5)
	assert.InDelta(t, 0, out[1], 1e-5)
	assert.InDelta(t, 0, out[2], 1e-5)
	assert.InDelta(t, 1, out[3], 1e-5)
}

func TestSetAspectRecomputesProjectionOnly(t *testing.T) {
	c := NewCamera()
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()

	c.SetAspect(2.0)

	assert.Equal(t, view, c.ViewMatrix())
	got := c.ProjectionMatrix()
	assert.InDelta(t, proj[0]/2, got[0], 1e-6, "x scale halves when aspect doubles")
	assert.Equal(t, proj[5], got[5], "y scale unchanged")
	assert.Equal(t, float32(2.0), c.Aspect())
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera()
	proj := c.ProjectionMatrix()

	c.SetAspect(0)
	c.SetAspect(-1)

	assert.Equal(t, proj, c.ProjectionMatrix())
	assert.Equal(t, float32(1.0), c.Aspect())
}

func TestUniformPayloads(t *testing.T) {
	c := NewCamera()

	viewData := c.ViewData()
	require.Len(t, viewData, 64)
	view := c.ViewMatrix()
	for i := range view {
		got := math.Float32frombits(binary.LittleEndian.Uint32(viewData[i*4 : (i+1)*4]))
		assert.Equal(t, view[i], got, "view element %d", i)
	}

	projData := c.ProjectionData()
	require.Len(t, projData, 64)
	proj := c.ProjectionMatrix()
	for i := range proj {
		got := math.Float32frombits(binary.LittleEndian.Uint32(projData[i*4 : (i+1)*4]))
		assert.Equal(t, proj[i], got, "projection element %d", i)
	}
}

func TestGPUMatrixUniformSize(t *testing.T) {
	u := GPUMatrixUniform{}
	assert.Equal(t, 64, u.Size())
}

func TestBuilderOptions(t *testing.T) {
	c := NewCamera(
		WithEye(0, 0, 10),
		WithTarget(0, 0, 0),
		WithUp(0, 1, 0),
		WithFov(math.Pi/2),
		WithAspect(1.5),
		WithClipPlanes(0.5, 100),
	)

	assert.InDelta(t, math.Pi/2, c.Fov(), 1e-6)
	assert.Equal(t, float32(1.5), c.Aspect())

	// fov 90 degrees: f = 1/tan(45 deg) = 1
	proj := c.ProjectionMatrix()
	assert.InDelta(t, 1.0/1.5, proj[0], 1e-5)
	assert.InDelta(t, 1.0, proj[5], 1e-5)

	// eye on +Z looking at origin: view is a translation by -eye
	out := mulVec4(c.ViewMatrix(), [4]float32{0, 0, 0, 1})
	assert.InDelta(t, -10, out[2], 1e-5)
}
