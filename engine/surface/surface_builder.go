package surface

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync locks presentation to the display refresh (FIFO).
	// This is the default.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents frames as fast as they are produced.
	PresentModeUncapped
)

// SurfaceManagerBuilderOption is a functional option for configuring the
// surface manager during construction.
type SurfaceManagerBuilderOption func(*surfaceManagerImpl)

// WithPresentMode overrides the presentation mode applied on the next
// Configure call.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - SurfaceManagerBuilderOption: the option to apply
func WithPresentMode(mode PresentMode) SurfaceManagerBuilderOption {
	return func(s *surfaceManagerImpl) {
		switch mode {
		case PresentModeUncapped:
			s.presentMode = wgpu.PresentModeImmediate
		case PresentModeVSync:
			fallthrough
		default:
			s.presentMode = wgpu.PresentModeFifo
		}
	}
}
