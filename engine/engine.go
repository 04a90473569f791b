package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/profiler"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/window"
)

// engine implements the Engine interface.
// Drives the window message loop and the frame renderer on the calling
// goroutine, which must be the OS thread the window was created on.
type engine struct {
	window   window.Window
	renderer renderer.FrameRenderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	clock func() time.Time
}

var _ Engine = &engine{}

// RenderLoopState is the bookkeeping for a single run of the render loop.
// Run owns one instance and threads it through every tick by pointer, so
// per-frame state lives with the loop rather than on the engine itself.
type RenderLoopState struct {
	// StartedAt is when the loop began processing window messages.
	StartedAt time.Time

	// LastTickAt is when the most recent tick began.
	LastTickAt time.Time

	// Delta is the wall-clock time between the two most recent ticks.
	Delta time.Duration

	// FrameIndex counts ticks completed since the loop started.
	FrameIndex uint64

	// Err holds the first fatal render error. Once set, the loop requests a
	// window close and stops rendering while remaining events drain.
	Err error
}

// Engine is the main entry point for the engine.
// It owns the render loop and coordinates the window, renderer, and profiler.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the frame renderer driven by the render loop.
	//
	// Returns:
	//   - renderer.FrameRenderer: the renderer instance
	Renderer() renderer.FrameRenderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run drives the window message loop, rendering one frame per iteration.
	// Blocks until the window reports a close request (user close, Escape, or
	// Quit) or a tick fails with a fatal render error.
	//
	// Returns:
	//   - error: the first fatal render error, or nil on a clean shutdown
	Run() error

	// Quit requests the window to close. The render loop exits after the
	// in-flight tick completes. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine driving the provided window and renderer.
// Binds Escape to a close request and forwards window resizes to the renderer
// as part of construction.
// Panics if the window or renderer is nil since the engine cannot operate
// without them.
//
// Parameters:
//   - win: the window whose message loop the engine will drive
//   - frameRenderer: the renderer invoked once per loop iteration
//   - options: functional options for engine configuration (profiling, clock)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(win window.Window, frameRenderer renderer.FrameRenderer, options ...EngineBuilderOption) Engine {
	if win == nil {
		panic("engine: NewEngine requires a non-nil Window")
	}
	if frameRenderer == nil {
		panic("engine: NewEngine requires a non-nil FrameRenderer")
	}

	e := &engine{
		window:   win,
		renderer: frameRenderer,
		profiler: profiler.NewProfiler(),
		clock:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if keyCode == common.KeyEsc {
			e.window.RequestClose()
		}
	})
	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.OnResize(width, height)
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.FrameRenderer {
	return e.renderer
}

func (e *engine) Run() error {
	state := &RenderLoopState{StartedAt: e.clock()}
	state.LastTickAt = state.StartedAt

	// Prime the projection against the real framebuffer size before the
	// first frame; on HiDPI displays it differs from the requested size.
	e.renderer.OnResize(e.window.Width(), e.window.Height())

	e.window.SetUpdateCallback(func() {
		e.tick(state)
	})
	e.window.ProcessMessages()

	return state.Err
}

// Quit requests the window to close.
// Safe to call multiple times; subsequent calls are no-ops.
func (e *engine) Quit() {
	e.window.RequestClose()
}

// tick renders a single frame and advances the loop bookkeeping.
// Recovers from panics escaping the render path so a driver fault shuts the
// loop down through the normal close path instead of crashing the process.
func (e *engine) tick(state *RenderLoopState) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render tick recovered from panic: %v", r)
			state.Err = fmt.Errorf("render tick panicked: %v", r)
			e.window.RequestClose()
		}
	}()

	if state.Err != nil {
		// A fatal tick already requested close; skip rendering while the
		// window drains its remaining events.
		return
	}

	now := e.clock()
	state.Delta = now.Sub(state.LastTickAt)
	state.LastTickAt = now
	state.FrameIndex++

	if err := e.renderer.RenderFrame(); err != nil {
		log.Printf("[Engine] fatal render error, shutting down: %v", err)
		state.Err = fmt.Errorf("render tick %d: %w", state.FrameIndex, err)
		e.window.RequestClose()
		return
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
