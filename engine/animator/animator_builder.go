package animator

import (
	"cogentcore.org/core/math32"
)

// TransformAnimatorBuilderOption is a function that modifies the options for creating a new TransformAnimator.
type TransformAnimatorBuilderOption func(*transformAnimatorImpl)

// WithAxis sets the rotation axis. The axis is normalized; a zero vector is
// ignored.
//
// Parameters:
//   - axis: the rotation axis
//
// Returns:
//   - TransformAnimatorBuilderOption: the option function.
func WithAxis(axis math32.Vector3) TransformAnimatorBuilderOption {
	return func(a *transformAnimatorImpl) {
		if axis.Length() == 0 {
			return
		}
		a.axis = axis.Normal()
	}
}

// WithAngularSpeed sets the rotation speed in radians per second.
//
// Parameters:
//   - radiansPerSecond: the rotation speed
//
// Returns:
//   - TransformAnimatorBuilderOption: the option function.
func WithAngularSpeed(radiansPerSecond float32) TransformAnimatorBuilderOption {
	return func(a *transformAnimatorImpl) {
		a.angularSpeed = radiansPerSecond
	}
}

// WithScaleFloor sets the minimum animated scale. Values at or below zero are
// ignored so the model matrix stays invertible.
//
// Parameters:
//   - floor: the minimum scale
//
// Returns:
//   - TransformAnimatorBuilderOption: the option function.
func WithScaleFloor(floor float32) TransformAnimatorBuilderOption {
	return func(a *transformAnimatorImpl) {
		if floor <= 0 {
			return
		}
		a.scaleFloor = floor
	}
}
