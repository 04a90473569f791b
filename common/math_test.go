package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mulVec4 applies a column-major 4x4 matrix to a 4-component vector.
func mulVec4(m []float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}
	Identity(m)

	for i := range m {
		if i == 0 || i == 5 || i == 10 || i == 15 {
			assert.Equal(t, float32(1), m[i], "diagonal element %d", i)
		} else {
			assert.Equal(t, float32(0), m[i], "off-diagonal element %d", i)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	var id [16]float32
	Identity(id[:])

	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	out := make([]float32, 16)
	Mul4(out, id[:], m)
	assert.Equal(t, m, out, "identity * m should equal m")

	Mul4(out, m, id[:])
	assert.Equal(t, m, out, "m * identity should equal m")
}

func TestMul4TranslationOrder(t *testing.T) {
	// T translates by (1,2,3); S scales by 2. Column-major convention means
	// T*S applies the scale first, then the translation.
	var tr, sc [16]float32
	Identity(tr[:])
	tr[12], tr[13], tr[14] = 1, 2, 3
	Identity(sc[:])
	sc[0], sc[5], sc[10] = 2, 2, 2

	out := make([]float32, 16)
	Mul4(out, tr[:], sc[:])

	p := mulVec4(out, [4]float32{1, 1, 1, 1})
	assert.Equal(t, [4]float32{3, 4, 5, 1}, p)
}

func TestMul4AliasedOutput(t *testing.T) {
	var tr, sc [16]float32
	Identity(tr[:])
	tr[12] = 5
	Identity(sc[:])
	sc[0] = 3

	want := make([]float32, 16)
	Mul4(want, tr[:], sc[:])

	// Writing the result over the left operand must not corrupt the product.
	Mul4(tr[:], tr[:], sc[:])
	assert.Equal(t, want, tr[:])
}

func TestPerspectiveDepthRange(t *testing.T) {
	const (
		fovY   = float32(math.Pi / 4)
		aspect = float32(16.0 / 9.0)
		near   = float32(0.1)
		far    = float32(40)
	)

	m := make([]float32, 16)
	Perspective(m, fovY, aspect, near, far)

	// A point on the near plane maps to clip depth 0, the far plane to 1.
	nearClip := mulVec4(m, [4]float32{0, 0, -near, 1})
	require.NotZero(t, nearClip[3])
	assert.InDelta(t, 0, nearClip[2]/nearClip[3], 1e-5)

	farClip := mulVec4(m, [4]float32{0, 0, -far, 1})
	require.NotZero(t, farClip[3])
	assert.InDelta(t, 1, farClip[2]/farClip[3], 1e-5)
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 3, 0, 1, 0, 0, 1, 0)

	eye := mulVec4(m, [4]float32{0, 0, 3, 1})
	assert.InDelta(t, 0, eye[0], 1e-6)
	assert.InDelta(t, 0, eye[1], 1e-6)
	assert.InDelta(t, 0, eye[2], 1e-6)
	assert.InDelta(t, 1, eye[3], 1e-6)
}

func TestLookAtTargetAheadOfCamera(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 3, 0, 1, 0, 0, 1, 0)

	// Right-handed view space looks down -Z, so the target lands on the
	// negative Z axis at its distance from the eye.
	target := mulVec4(m, [4]float32{0, 1, 0, 1})
	dist := float32(math.Sqrt(1*1 + 3*3))
	assert.InDelta(t, 0, target[0], 1e-5)
	assert.InDelta(t, 0, target[1], 1e-5)
	assert.InDelta(t, float64(-dist), float64(target[2]), 1e-5)
}
