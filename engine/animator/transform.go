package animator

import (
	"cogentcore.org/core/math32"
)

// Transform is an immutable translation/rotation/scale value. Methods return
// a new Transform and never modify the receiver, so a Transform can be shared
// across ticks without copies going stale.
type Transform struct {
	Position math32.Vector3
	Rotation math32.Quat
	Scale    math32.Vector3
}

// NewTransform returns the identity transform: zero translation, identity
// rotation, unit scale.
//
// Returns:
//   - Transform: the identity transform.
func NewTransform() Transform {
	t := Transform{Scale: math32.Vec3(1, 1, 1)}
	t.Rotation.SetIdentity()
	return t
}

// Rotate returns a copy of the transform with an additional rotation of
// radians around axis applied after the existing rotation.
//
// Parameters:
//   - axis: rotation axis, must be unit length
//   - radians: rotation angle
//
// Returns:
//   - Transform: the rotated transform.
func (t Transform) Rotate(axis math32.Vector3, radians float32) Transform {
	t.Rotation = t.Rotation.Mul(math32.NewQuatAxisAngle(axis, radians))
	return t
}

// Translate returns a copy of the transform with delta added to its position.
//
// Parameters:
//   - delta: translation offset
//
// Returns:
//   - Transform: the translated transform.
func (t Transform) Translate(delta math32.Vector3) Transform {
	t.Position = t.Position.Add(delta)
	return t
}

// WithScale returns a copy of the transform with its scale replaced.
//
// Parameters:
//   - scale: the absolute scale to set
//
// Returns:
//   - Transform: the rescaled transform.
func (t Transform) WithScale(scale math32.Vector3) Transform {
	t.Scale = scale
	return t
}

// Matrix composes the transform into a single model matrix. Composition order
// is scale, then rotation, then translation.
//
// Returns:
//   - math32.Matrix4: the column-major model matrix.
func (t Transform) Matrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetTransform(t.Position, t.Rotation, t.Scale)
	return m
}
