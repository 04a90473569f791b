// Package graphics owns the GPU entry points: the WebGPU instance, the
// adapter negotiated against the window surface, and the logical device with
// its submission queue. Every other engine package borrows these handles; the
// context is created once at startup and never recreated.
package graphics

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

type graphicsContextImpl struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	deviceLabel          string
	forceFallbackAdapter bool
}

// GraphicsContext is the shared handle bundle for all GPU work. It is owned by
// the render loop thread; no synchronization is applied to the accessors.
type GraphicsContext interface {
	// Instance returns the WebGPU instance the context was created from.
	Instance() *wgpu.Instance

	// Surface returns the presentable surface created for the window the
	// context was acquired against. Configuration of the surface is owned by
	// the surface package.
	Surface() *wgpu.Surface

	// Adapter returns the negotiated GPU adapter.
	Adapter() *wgpu.Adapter

	// Device returns the logical GPU device used to create all resources.
	Device() *wgpu.Device

	// Queue returns the device's command submission queue.
	Queue() *wgpu.Queue

	// Release frees the GPU handles owned by the context in reverse creation
	// order. The context must not be used afterwards.
	Release()
}

var _ GraphicsContext = &graphicsContextImpl{}

// NewGraphicsContext acquires the GPU: it creates the WebGPU instance, a
// surface for the given window descriptor, requests a compatible adapter, and
// opens a device with the WebGPU default limits. The calling goroutine is
// locked to its OS thread, since all subsequent surface and queue traffic must
// come from the thread that owns the native window.
//
// Parameters:
//   - surfaceDescriptor: the native window surface descriptor to negotiate against
//   - options: optional configuration options for the context
//
// Returns:
//   - GraphicsContext: the acquired context, nil on error
//   - error: *DeviceAcquisitionError if no compatible adapter exists, *DeviceCreationError if device negotiation is rejected
func NewGraphicsContext(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...GraphicsContextBuilderOption) (GraphicsContext, error) {
	if surfaceDescriptor == nil {
		panic("graphics: NewGraphicsContext requires a non-nil SurfaceDescriptor")
	}

	runtime.LockOSThread()
	g := &graphicsContextImpl{
		instance:    wgpu.CreateInstance(nil),
		deviceLabel: "Main Device",
	}
	for _, opt := range options {
		opt(g)
	}

	g.surface = g.instance.CreateSurface(surfaceDescriptor)

	adapter, err := g.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: g.forceFallbackAdapter,
		CompatibleSurface:    g.surface,
	})
	if err != nil {
		g.Release()
		return nil, &DeviceAcquisitionError{Err: err}
	}
	g.adapter = adapter

	limits := wgpu.DefaultLimits()
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: g.deviceLabel,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		g.Release()
		return nil, &DeviceCreationError{Err: err}
	}
	g.device = device
	g.queue = device.GetQueue()

	return g, nil
}

func (g *graphicsContextImpl) Instance() *wgpu.Instance {
	return g.instance
}

func (g *graphicsContextImpl) Surface() *wgpu.Surface {
	return g.surface
}

func (g *graphicsContextImpl) Adapter() *wgpu.Adapter {
	return g.adapter
}

func (g *graphicsContextImpl) Device() *wgpu.Device {
	return g.device
}

func (g *graphicsContextImpl) Queue() *wgpu.Queue {
	return g.queue
}

func (g *graphicsContextImpl) Release() {
	if g.device != nil {
		g.device.Release()
		g.device = nil
		g.queue = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.surface != nil {
		g.surface.Release()
		g.surface = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
}

// DeviceAcquisitionError reports that no compatible GPU adapter could be
// acquired for the surface. This is fatal at startup.
type DeviceAcquisitionError struct {
	Err error
}

func (e *DeviceAcquisitionError) Error() string {
	return fmt.Sprintf("no compatible gpu adapter available: %v", e.Err)
}

func (e *DeviceAcquisitionError) Unwrap() error {
	return e.Err
}

// DeviceCreationError reports that the adapter rejected device creation, for
// example because the requested limits are not supported. This is fatal at
// startup.
type DeviceCreationError struct {
	Err error
}

func (e *DeviceCreationError) Error() string {
	return fmt.Sprintf("gpu device creation failed: %v", e.Err)
}

func (e *DeviceCreationError) Unwrap() error {
	return e.Err
}
