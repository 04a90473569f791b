package renderer

import (
	"time"
)

// FrameRendererBuilderOption is a functional option applied to a FrameRenderer during construction via NewFrameRenderer.
type FrameRendererBuilderOption func(*frameRendererImpl)

// WithClock replaces the animator clock, normally time.Now. Nil clocks are
// ignored.
//
// Parameters:
//   - clock: the function queried for the current tick time
//
// Returns:
//   - FrameRendererBuilderOption: a function that applies the clock option to a renderer
func WithClock(clock func() time.Time) FrameRendererBuilderOption {
	return func(r *frameRendererImpl) {
		if clock == nil {
			return
		}
		r.clock = clock
	}
}
