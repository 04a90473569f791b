// package renderer drives one frame at a time. A FrameRenderer owns exactly
// one DrawBundle, the assembled GPU state for a render variant, and per tick
// it advances the bundle's animator, uploads the new transform, acquires a
// frame texture, records a single render pass, submits, and presents.
// Transient surface failures are absorbed here; only fatal errors escape to
// the caller.
package renderer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/prism/engine/animator"
	"github.com/Carmen-Shannon/prism/engine/camera"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/Carmen-Shannon/prism/engine/renderer/binder"
	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

// DrawBundle is the assembled GPU state for one render variant. Pipeline and
// Mesh are nil for clear-only variants; the animated fields are nil for
// static ones. BindGroups are bound in slot order.
type DrawBundle struct {
	Label      string
	ClearColor wgpu.Color

	Pipeline   pipeline.Pipeline
	BindGroups []*wgpu.BindGroup
	Mesh       *geometry.Mesh

	// InstanceBuffer carries the per-instance model matrix in vertex buffer
	// slot 1, rewritten each tick from the Animator.
	InstanceBuffer *wgpu.Buffer

	// ViewBuffer and ProjectionBuffer back the camera uniform groups. The
	// projection is re-uploaded when a resize changes the aspect ratio.
	ViewBuffer       *wgpu.Buffer
	ProjectionBuffer *wgpu.Buffer

	// TextureView and Sampler are held for release; the bind groups
	// reference them on the GPU side.
	TextureView *wgpu.TextureView
	Sampler     *wgpu.Sampler

	Animator animator.TransformAnimator
	Camera   camera.Camera
}

// Release frees the GPU resources referenced by the bundle.
func (b *DrawBundle) Release() {
	for _, group := range b.BindGroups {
		if group != nil {
			group.Release()
		}
	}
	b.BindGroups = nil
	if b.Sampler != nil {
		b.Sampler.Release()
		b.Sampler = nil
	}
	if b.TextureView != nil {
		b.TextureView.Release()
		b.TextureView = nil
	}
	if b.ProjectionBuffer != nil {
		b.ProjectionBuffer.Release()
		b.ProjectionBuffer = nil
	}
	if b.ViewBuffer != nil {
		b.ViewBuffer.Release()
		b.ViewBuffer = nil
	}
	if b.InstanceBuffer != nil {
		b.InstanceBuffer.Release()
		b.InstanceBuffer = nil
	}
	if b.Mesh != nil {
		b.Mesh.Release()
		b.Mesh = nil
	}
	if b.Pipeline != nil {
		b.Pipeline.Release()
		b.Pipeline = nil
	}
}

type frameRendererImpl struct {
	device         *wgpu.Device
	queue          *wgpu.Queue
	surfaceManager surface.SurfaceManager
	resourceBinder binder.ResourceBinder
	bundle         *DrawBundle
	clock          func() time.Time
}

// FrameRenderer renders the owned DrawBundle, one frame per call.
type FrameRenderer interface {
	// RenderFrame runs one tick: advance the animator, upload the transform,
	// acquire, record, submit, present. Transient surface failures (lost,
	// timeout) skip the frame and return nil; the error return is fatal.
	//
	// Returns:
	//   - error: a fatal render error, nil otherwise
	RenderFrame() error

	// OnResize forwards the new drawable size to the surface manager and, for
	// camera-driven bundles, updates the projection for the new aspect ratio.
	//
	// Parameters:
	//   - width: new drawable width in pixels
	//   - height: new drawable height in pixels
	OnResize(width, height int)

	// Bundle returns the bundle this renderer draws.
	//
	// Returns:
	//   - *DrawBundle: the owned bundle
	Bundle() *DrawBundle

	// Release frees the bundle's GPU resources.
	Release()
}

var _ FrameRenderer = &frameRendererImpl{}

// NewFrameRenderer creates a FrameRenderer for one assembled bundle.
//
// Parameters:
//   - graphicsCtx: the graphics context providing device and queue
//   - surfaceManager: the configured surface manager frames are acquired from
//   - resourceBinder: the binder used for per-tick buffer uploads
//   - bundle: the assembled draw bundle; must not be nil
//   - options: optional builder settings
//
// Returns:
//   - FrameRenderer: the new renderer
func NewFrameRenderer(graphicsCtx graphics.GraphicsContext, surfaceManager surface.SurfaceManager, resourceBinder binder.ResourceBinder, bundle *DrawBundle, options ...FrameRendererBuilderOption) FrameRenderer {
	if graphicsCtx == nil {
		panic("renderer: NewFrameRenderer requires a non-nil GraphicsContext")
	}
	if surfaceManager == nil {
		panic("renderer: NewFrameRenderer requires a non-nil SurfaceManager")
	}
	if resourceBinder == nil {
		panic("renderer: NewFrameRenderer requires a non-nil ResourceBinder")
	}
	if bundle == nil {
		panic("renderer: NewFrameRenderer requires a non-nil DrawBundle")
	}

	r := &frameRendererImpl{
		device:         graphicsCtx.Device(),
		queue:          graphicsCtx.Queue(),
		surfaceManager: surfaceManager,
		resourceBinder: resourceBinder,
		bundle:         bundle,
		clock:          time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *frameRendererImpl) RenderFrame() error {
	if r.bundle.Animator != nil && r.bundle.InstanceBuffer != nil {
		state := r.bundle.Animator.Advance(r.clock())
		if err := r.resourceBinder.Upload(r.bundle.InstanceBuffer, 0, state.GPUData()); err != nil {
			return fmt.Errorf("failed to upload frame transform: %w", err)
		}
	}

	frame, err := r.surfaceManager.AcquireFrame()
	if err != nil {
		return r.absorbAcquireError(err)
	}

	view, err := frame.CreateView(nil)
	if err != nil {
		frame.Release()
		return fmt.Errorf("failed to create frame view: %w", err)
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		frame.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: r.bundle.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.bundle.ClearColor,
			},
		},
	})
	r.encodeDraw(pass)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		frame.Release()
		return fmt.Errorf("failed to finish frame encoder: %w", err)
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	r.surfaceManager.Present()
	view.Release()
	frame.Release()

	return nil
}

func (r *frameRendererImpl) OnResize(width, height int) {
	r.surfaceManager.OnResize(width, height)

	if r.bundle.Camera == nil || width <= 0 || height <= 0 {
		return
	}
	r.bundle.Camera.SetAspect(float32(width) / float32(height))
	if r.bundle.ProjectionBuffer == nil {
		return
	}
	if err := r.resourceBinder.Upload(r.bundle.ProjectionBuffer, 0, r.bundle.Camera.ProjectionData()); err != nil {
		log.Printf("[Renderer] failed to update projection after resize: %v", err)
	}
}

func (r *frameRendererImpl) Bundle() *DrawBundle {
	return r.bundle
}

func (r *frameRendererImpl) Release() {
	if r.bundle != nil {
		r.bundle.Release()
	}
}

// encodeDraw records the bundle's draw into the pass. Clear-only bundles
// record nothing; the pass's load op has already cleared the target.
func (r *frameRendererImpl) encodeDraw(pass *wgpu.RenderPassEncoder) {
	if r.bundle.Pipeline == nil || r.bundle.Mesh == nil {
		return
	}

	pass.SetPipeline(r.bundle.Pipeline.Handle())
	for i, group := range r.bundle.BindGroups {
		pass.SetBindGroup(uint32(i), group, nil)
	}

	pass.SetVertexBuffer(0, r.bundle.Mesh.VertexBuffer, 0, wgpu.WholeSize)
	if r.bundle.InstanceBuffer != nil {
		pass.SetVertexBuffer(1, r.bundle.InstanceBuffer, 0, wgpu.WholeSize)
	}

	if r.bundle.Mesh.Indexed() {
		pass.SetIndexBuffer(r.bundle.Mesh.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(r.bundle.Mesh.IndexCount, 1, 0, 0, 0)
	} else {
		pass.Draw(r.bundle.Mesh.VertexCount, 1, 0, 0)
	}
}

// absorbAcquireError decides whether an acquire failure kills the run.
// Lost surfaces are reconfigured and retried next tick, timeouts just retry;
// out-of-memory is fatal and propagates.
func (r *frameRendererImpl) absorbAcquireError(err error) error {
	switch {
	case errors.Is(err, surface.ErrSurfaceOutOfMemory):
		return err
	case errors.Is(err, surface.ErrSurfaceTimeout):
		log.Printf("[Renderer] frame acquire timed out, skipping tick: %v", err)
		return nil
	case errors.Is(err, surface.ErrSurfaceLost):
		log.Printf("[Renderer] surface lost, reconfiguring: %v", err)
		r.surfaceManager.Reconfigure()
		return nil
	default:
		log.Printf("[Renderer] frame acquire failed, reconfiguring: %v", err)
		r.surfaceManager.Reconfigure()
		return nil
	}
}
