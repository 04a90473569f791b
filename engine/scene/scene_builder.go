package scene

import (
	"github.com/Carmen-Shannon/prism/engine/animator"
	"github.com/Carmen-Shannon/prism/engine/camera"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *sceneImpl)

// WithPrepWorkers sets the number of worker goroutines used for startup asset
// preparation. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of prep workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPrepWorkers(n int) SceneBuilderOption {
	return func(s *sceneImpl) {
		if n < 1 {
			n = 1
		}
		s.prepWorkers = n
	}
}

// WithCamera replaces the spin variant's default camera. Ignored by variants
// that do not use a camera.
//
// Parameters:
//   - cam: the camera to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.cam = cam
	}
}

// WithCameraAspect sets the aspect ratio the spin variant's default camera is
// built with, typically the window's width over height. Ignored when
// WithCamera supplies a camera, and by variants that do not use one.
//
// Parameters:
//   - aspect: width over height; non-positive values are ignored
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraAspect(aspect float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.cameraAspect = aspect
	}
}

// WithAnimator replaces the spin variant's default transform animator.
// Ignored by variants that do not animate.
//
// Parameters:
//   - anim: the animator driving the per-frame transform
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimator(anim animator.TransformAnimator) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.anim = anim
	}
}
