// Package surface owns the presentable window surface and its configuration.
// The surface is configured to the window's drawable size and must be
// reconfigured before the next frame acquire whenever that size changes.
package surface

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/cogentcore/webgpu/wgpu"
)

// Acquire failure classes. Lost and timeout are transient: the caller skips
// the frame and retries on the next tick, reconfiguring first when lost.
// Out-of-memory is fatal.
var (
	ErrSurfaceLost        = errors.New("surface lost")
	ErrSurfaceTimeout     = errors.New("surface acquire timed out")
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")
)

type surfaceManagerImpl struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device

	config      wgpu.SurfaceConfiguration
	configured  bool
	presentMode wgpu.PresentMode
}

// SurfaceManager configures the window surface and hands out frame textures.
// It is owned by the render loop thread; no synchronization is applied.
type SurfaceManager interface {
	// Configure queries the surface capabilities and applies a configuration
	// using the first supported format, the first supported alpha mode, and
	// the manager's present mode.
	//
	// Parameters:
	//   - width: drawable width in pixels
	//   - height: drawable height in pixels
	//
	// Returns:
	//   - wgpu.SurfaceConfiguration: the configuration that was applied
	Configure(width, height int) wgpu.SurfaceConfiguration

	// OnResize updates the configured size and reconfigures the surface
	// immediately, before the next frame acquire. Zero-sized updates (a
	// minimized window) are ignored.
	//
	// Parameters:
	//   - width: new drawable width in pixels
	//   - height: new drawable height in pixels
	OnResize(width, height int)

	// Reconfigure reapplies the current configuration, re-querying surface
	// capabilities. Used to recover from a lost surface.
	Reconfigure()

	// AcquireFrame acquires the next presentable surface texture.
	//
	// Returns:
	//   - *wgpu.Texture: the frame texture, nil on error
	//   - error: ErrSurfaceLost, ErrSurfaceTimeout or ErrSurfaceOutOfMemory (wrapped); unknown failures classify as ErrSurfaceLost
	AcquireFrame() (*wgpu.Texture, error)

	// Present presents the most recently acquired frame texture.
	Present()

	// Config returns the currently applied surface configuration.
	//
	// Returns:
	//   - wgpu.SurfaceConfiguration: the active configuration
	Config() wgpu.SurfaceConfiguration

	// Format returns the texture format the surface was configured with.
	//
	// Returns:
	//   - wgpu.TextureFormat: the active surface format
	Format() wgpu.TextureFormat
}

var _ SurfaceManager = &surfaceManagerImpl{}

// NewSurfaceManager wraps the surface owned by the graphics context. The
// surface is unconfigured until Configure is called.
//
// Parameters:
//   - gc: the acquired graphics context providing surface, adapter and device
//   - options: optional configuration options for the manager
//
// Returns:
//   - SurfaceManager: the manager, never nil
func NewSurfaceManager(gc graphics.GraphicsContext, options ...SurfaceManagerBuilderOption) SurfaceManager {
	if gc == nil {
		panic("surface: NewSurfaceManager requires a non-nil GraphicsContext")
	}

	s := &surfaceManagerImpl{
		surface:     gc.Surface(),
		adapter:     gc.Adapter(),
		device:      gc.Device(),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *surfaceManagerImpl) Configure(width, height int) wgpu.SurfaceConfiguration {
	capabilities := s.surface.GetCapabilities(s.adapter)

	s.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      capabilities.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: s.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	}
	s.surface.Configure(s.adapter, s.device, &s.config)
	s.configured = true

	return s.config
}

func (s *surfaceManagerImpl) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		log.Printf("[Surface] ignoring resize to %dx%d", width, height)
		return
	}

	s.setSize(width, height)
	if s.configured {
		s.surface.Configure(s.adapter, s.device, &s.config)
	}
}

func (s *surfaceManagerImpl) Reconfigure() {
	if !s.configured {
		return
	}
	s.Configure(int(s.config.Width), int(s.config.Height))
}

func (s *surfaceManagerImpl) AcquireFrame() (*wgpu.Texture, error) {
	if !s.configured {
		return nil, fmt.Errorf("surface not configured")
	}

	frame, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, classifyAcquireError(err)
	}
	return frame, nil
}

func (s *surfaceManagerImpl) Present() {
	s.surface.Present()
}

func (s *surfaceManagerImpl) Config() wgpu.SurfaceConfiguration {
	return s.config
}

func (s *surfaceManagerImpl) Format() wgpu.TextureFormat {
	return s.config.Format
}

// setSize updates the configured dimensions without touching the GPU.
func (s *surfaceManagerImpl) setSize(width, height int) {
	s.config.Width = uint32(width)
	s.config.Height = uint32(height)
}

// classifyAcquireError maps an acquire failure onto one of the exported
// sentinel errors. The underlying binding reports failures as opaque strings,
// so classification matches on the wgpu status names. Anything unrecognized
// is treated as a lost surface: reconfigure and retry.
func classifyAcquireError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %v", ErrSurfaceTimeout, err)
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %v", ErrSurfaceOutOfMemory, err)
	case strings.Contains(msg, "lost") || strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	default:
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	}
}
