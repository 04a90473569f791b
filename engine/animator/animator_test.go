package animator

import (
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/Carmen-Shannon/prism/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translationMatrix(x, y, z float32) []float32 {
	m := make([]float32, 16)
	common.Identity(m)
	m[12], m[13], m[14] = x, y, z
	return m
}

func scaleMatrix(s float32) []float32 {
	m := make([]float32, 16)
	common.Identity(m)
	m[0], m[5], m[10] = s, s, s
	return m
}

func rotationXMatrix(angle float32) []float32 {
	m := make([]float32, 16)
	common.Identity(m)
	c, s := math32.Cos(angle), math32.Sin(angle)
	m[5], m[6], m[9], m[10] = c, s, -s, c
	return m
}

// axisAngleAroundX reduces a quaternion to its rotation angle around +X,
// folding the (2*pi-angle, -axis) representation back onto the +X side.
func axisAngleAroundX(t *testing.T, q math32.Quat) float32 {
	t.Helper()
	aa := q.ToAxisAngle()
	if aa.W == 0 {
		return 0
	}
	require.InDelta(t, 0, aa.Y, 1e-4)
	require.InDelta(t, 0, aa.Z, 1e-4)
	if aa.X < 0 {
		return 2*math32.Pi - aa.W
	}
	return aa.W
}

func advanceOver(a TransformAnimator, seconds float64, steps int) FrameState {
	base := time.Unix(1700000000, 0)
	var state FrameState
	for i := 0; i <= steps; i++ {
		at := base.Add(time.Duration(float64(i) * seconds / float64(steps) * float64(time.Second)))
		state = a.Advance(at)
	}
	return state
}

func TestNewTransformIsIdentity(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Rotation.IsIdentity())
	assert.Equal(t, math32.Vec3(1, 1, 1), tr.Scale)

	m := tr.Matrix()
	want := make([]float32, 16)
	common.Identity(want)
	for i := range want {
		assert.Equal(t, want[i], m[i], "element %d", i)
	}
}

func TestTransformMethodsDoNotMutateReceiver(t *testing.T) {
	original := NewTransform()
	_ = original.Rotate(math32.Vec3(1, 0, 0), 1.5)
	_ = original.Translate(math32.Vec3(3, 4, 5))
	_ = original.WithScale(math32.Vec3(2, 2, 2))

	assert.Equal(t, NewTransform(), original)
}

func TestTransformMatrixMatchesElementaryComposition(t *testing.T) {
	const angle = 0.7
	tr := NewTransform().
		Rotate(math32.Vec3(1, 0, 0), angle).
		Translate(math32.Vec3(1, 2, 3)).
		WithScale(math32.Vec3(2, 2, 2))

	// scale first, then rotation, then translation
	want := make([]float32, 16)
	common.Mul4(want, rotationXMatrix(angle), scaleMatrix(2))
	common.Mul4(want, translationMatrix(1, 2, 3), want)

	got := tr.Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestTransformCompositionIndependentOfCallOrder(t *testing.T) {
	a := NewTransform().
		Rotate(math32.Vec3(1, 0, 0), 0.4).
		Translate(math32.Vec3(1, 2, 3)).
		WithScale(math32.Vec3(0.5, 0.5, 0.5))
	b := NewTransform().
		WithScale(math32.Vec3(0.5, 0.5, 0.5)).
		Translate(math32.Vec3(1, 2, 3)).
		Rotate(math32.Vec3(1, 0, 0), 0.4)

	ma, mb := a.Matrix(), b.Matrix()
	for i := range ma {
		assert.InDelta(t, ma[i], mb[i], 1e-6, "element %d", i)
	}
}

func TestRotationAccumulatesToElapsedAngle(t *testing.T) {
	a := NewTransformAnimator()
	state := advanceOver(a, 2.5, 25)

	require.InDelta(t, 2.5, state.Elapsed, 1e-6)
	assert.InDelta(t, 2.5, axisAngleAroundX(t, state.Transform.Rotation), 1e-3)
}

func TestRotationWrapsModuloFullTurn(t *testing.T) {
	a := NewTransformAnimator()
	state := advanceOver(a, 7.0, 70)

	want := 7.0 - 2*math32.Pi
	assert.InDelta(t, want, axisAngleAroundX(t, state.Transform.Rotation), 1e-3)
}

func TestAnimatedScaleNeverBelowFloor(t *testing.T) {
	a := NewTransformAnimator()
	base := time.Unix(1700000000, 0)
	for i := 0; i <= 100; i++ {
		state := a.Advance(base.Add(time.Duration(i) * 70 * time.Millisecond))
		assert.GreaterOrEqual(t, state.Transform.Scale.X, float32(0.1), "elapsed %v", state.Elapsed)
		assert.Equal(t, state.Transform.Scale.X, state.Transform.Scale.Y)
		assert.Equal(t, state.Transform.Scale.X, state.Transform.Scale.Z)
	}
}

func TestDriftAndDeltaBookkeeping(t *testing.T) {
	a := NewTransformAnimator()
	base := time.Unix(1700000000, 0)

	first := a.Advance(base)
	assert.Zero(t, first.Elapsed)
	assert.Zero(t, first.Delta)
	// cos(0)/100 on both x and y
	assert.InDelta(t, 0.01, first.Transform.Position.X, 1e-6)
	assert.InDelta(t, 0.01, first.Transform.Position.Y, 1e-6)
	assert.Zero(t, first.Transform.Position.Z)

	second := a.Advance(base.Add(500 * time.Millisecond))
	assert.InDelta(t, 0.5, second.Elapsed, 1e-6)
	assert.InDelta(t, 0.5, second.Delta, 1e-6)
	wantX := 0.01 + math32.Cos(0.5)*0.01
	assert.InDelta(t, wantX, second.Transform.Position.X, 1e-6)
	assert.InDelta(t, wantX, second.Transform.Position.Y, 1e-6)
}

func TestGPUTransformDataRoundTrip(t *testing.T) {
	tr := NewTransform().
		Rotate(math32.Vec3(1, 0, 0), 1.25).
		Translate(math32.Vec3(0.25, -0.5, 7)).
		WithScale(math32.Vec3(0.3, 0.3, 0.3))

	data := NewGPUTransformData(tr)
	assert.Equal(t, 64, data.Size())

	buf := data.Marshal()
	require.Len(t, buf, 64)

	var back GPUTransformData
	back.Unmarshal(buf)
	assert.Equal(t, data.Model, back.Model)

	m := tr.Matrix()
	for i := range back.Model {
		assert.Equal(t, m[i], back.Model[i], "element %d", i)
	}
}

func TestFrameStateGPUData(t *testing.T) {
	a := NewTransformAnimator()
	state := a.Advance(time.Unix(1700000000, 0))

	buf := state.GPUData()
	require.Len(t, buf, 64)

	var back GPUTransformData
	back.Unmarshal(buf)
	want := NewGPUTransformData(state.Transform)
	assert.Equal(t, want.Model, back.Model)
}

func TestInstanceMatrixLayout(t *testing.T) {
	layout := InstanceMatrixLayout(2)
	assert.Equal(t, uint64(64), layout.ArrayStride)
	require.Len(t, layout.Attributes, 4)
	for i, attr := range layout.Attributes {
		assert.Equal(t, uint64(i)*16, attr.Offset)
		assert.Equal(t, uint32(2+i), attr.ShaderLocation)
	}
}

func TestBuilderOptions(t *testing.T) {
	t.Run("axis is normalized", func(t *testing.T) {
		a := NewTransformAnimator(WithAxis(math32.Vec3(0, 0, 2))).(*transformAnimatorImpl)
		assert.InDelta(t, 1.0, a.axis.Length(), 1e-6)
		assert.InDelta(t, 1.0, a.axis.Z, 1e-6)
	})

	t.Run("zero axis ignored", func(t *testing.T) {
		a := NewTransformAnimator(WithAxis(math32.Vector3{})).(*transformAnimatorImpl)
		assert.Equal(t, math32.Vec3(1, 0, 0), a.axis)
	})

	t.Run("angular speed scales accumulation", func(t *testing.T) {
		a := NewTransformAnimator(WithAngularSpeed(2))
		state := advanceOver(a, 1.0, 10)
		assert.InDelta(t, 2.0, axisAngleAroundX(t, state.Transform.Rotation), 1e-3)
	})

	t.Run("non-positive scale floor ignored", func(t *testing.T) {
		a := NewTransformAnimator(WithScaleFloor(-1)).(*transformAnimatorImpl)
		assert.Equal(t, float32(0.1), a.scaleFloor)
	})
}
