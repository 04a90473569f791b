// package animator drives the per-frame model transform. A TransformAnimator
// owns an immutable Transform and advances it once per tick: rotation
// accumulates around a fixed axis, translation drifts, and scale pulses with
// a floor that keeps the matrix invertible.
package animator

import (
	"time"

	"cogentcore.org/core/math32"
)

// driftStep scales the per-tick translation drift, cos(elapsed)/100.
const driftStep = 0.01

// FrameState is the result of advancing the animator by one tick.
type FrameState struct {
	// Elapsed is seconds since the animator's first tick.
	Elapsed float32
	// Delta is seconds since the previous tick, zero on the first.
	Delta float32
	// Transform is the animated transform for this tick.
	Transform Transform
}

// GPUData serializes the frame's transform into the 64-byte column-major
// payload uploaded before the draw.
//
// Returns:
//   - []byte: the model matrix bytes.
func (s FrameState) GPUData() []byte {
	d := NewGPUTransformData(s.Transform)
	return d.Marshal()
}

type transformAnimatorImpl struct {
	axis         math32.Vector3
	angularSpeed float32
	scaleFloor   float32

	started     bool
	start       time.Time
	prevElapsed float32
	current     Transform
}

// TransformAnimator advances an animated transform, one tick at a time.
type TransformAnimator interface {
	// Advance steps the animation to now and returns the new frame state.
	// The first call anchors the animator's clock, so its Elapsed and Delta
	// are both zero.
	//
	// Parameters:
	//   - now: the current tick time
	//
	// Returns:
	//   - FrameState: elapsed/delta seconds and the advanced transform.
	Advance(now time.Time) FrameState

	// Current returns the transform produced by the latest Advance, or the
	// identity transform before the first tick.
	//
	// Returns:
	//   - Transform: the current transform.
	Current() Transform
}

var _ TransformAnimator = &transformAnimatorImpl{}

// NewTransformAnimator creates a TransformAnimator with the default motion:
// one radian per second around the X axis, drifting translation, pulsing
// scale clamped at 0.1.
//
// Parameters:
//   - options: optional builder settings to adjust axis, speed, or scale floor
//
// Returns:
//   - TransformAnimator: the new animator.
func NewTransformAnimator(options ...TransformAnimatorBuilderOption) TransformAnimator {
	a := &transformAnimatorImpl{
		axis:         math32.Vec3(1, 0, 0),
		angularSpeed: 1,
		scaleFloor:   0.1,
		current:      NewTransform(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *transformAnimatorImpl) Advance(now time.Time) FrameState {
	if !a.started {
		a.start = now
		a.started = true
	}
	elapsed := float32(now.Sub(a.start).Seconds())
	delta := elapsed - a.prevElapsed
	a.prevElapsed = elapsed

	drift := math32.Cos(elapsed) * driftStep
	scale := math32.Max(math32.Sin(elapsed), a.scaleFloor)
	a.current = a.current.
		Rotate(a.axis, delta*a.angularSpeed).
		Translate(math32.Vec3(drift, drift, 0)).
		WithScale(math32.Vec3(scale, scale, scale))

	return FrameState{Elapsed: elapsed, Delta: delta, Transform: a.current}
}

func (a *transformAnimatorImpl) Current() Transform {
	return a.current
}
