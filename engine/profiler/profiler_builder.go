package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
// Use the With* functions to create options.
type ProfilerBuilderOption func(p *Profiler)

// WithUpdateInterval sets how often statistics are logged.
// Defaults to 1 second. Non-positive intervals are ignored.
//
// Parameters:
//   - interval: the minimum time between log lines
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval <= 0 {
			return
		}
		p.updateInterval = interval
	}
}

// WithClock overrides the profiler's time source. Primarily a test seam.
//
// Parameters:
//   - clock: the time source to use
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if clock == nil {
			return
		}
		p.clock = clock
	}
}
