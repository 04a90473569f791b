// Package binder builds bind group layouts and bind groups, creates the GPU
// resources that back them (uniform buffers, textures, samplers), and applies
// per-frame buffer writes through the queue.
package binder

import (
	"fmt"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/cogentcore/webgpu/wgpu"
)

type resourceBinderImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	textureFormat wgpu.TextureFormat
}

// ResourceBinder associates GPU-visible resources with shader binding slots.
// It is owned by the render loop thread; no synchronization is applied.
type ResourceBinder interface {
	// BuildLayout creates a bind group layout from an ordered list of slot
	// descriptions. Slot order and numbers are contract.
	//
	// Parameters:
	//   - label: the layout label used in diagnostics
	//   - entries: the slots the layout declares
	//
	// Returns:
	//   - *Layout: the created layout paired with its entries, nil on error
	//   - error: an error if the layout could not be created
	BuildLayout(label string, entries []LayoutEntry) (*Layout, error)

	// BuildGroup creates a bind group conforming to the given layout. The
	// supplied resources are validated against the layout's entries first.
	//
	// Parameters:
	//   - layout: the layout the group must conform to
	//   - resources: the concrete resource for every declared slot
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group, nil on error
	//   - error: *BindingMismatchError if a resource kind or slot does not match the layout
	BuildGroup(layout *Layout, resources []BindingResource) (*wgpu.BindGroup, error)

	// CreateUniformBuffer creates a uniform buffer writable through Upload.
	//
	// Parameters:
	//   - label: the buffer label used in diagnostics
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer, nil on error
	//   - error: an error if the buffer could not be created
	CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// CreateInstanceBuffer creates a vertex-usage buffer writable through
	// Upload, for per-instance data streamed every frame.
	//
	// Parameters:
	//   - label: the buffer label used in diagnostics
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer, nil on error
	//   - error: an error if the buffer could not be created
	CreateInstanceBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// CreateTexture creates a 2D RGBA texture from staged pixel data, uploads
	// the pixels, and returns a view suitable for a sampled-texture binding.
	//
	// Parameters:
	//   - label: the texture label used in diagnostics
	//   - stagingData: decoded RGBA pixels with dimensions
	//
	// Returns:
	//   - *wgpu.TextureView: the created view, nil on error
	//   - error: an error if the texture or view could not be created
	CreateTexture(label string, stagingData *common.TextureStagingData) (*wgpu.TextureView, error)

	// CreateSampler creates a sampler from staged configuration. Zero-valued
	// fields fall back to engine defaults (repeat addressing, linear filters).
	//
	// Parameters:
	//   - label: the sampler label used in diagnostics
	//   - stagingData: the sampler configuration
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler, nil on error
	//   - error: an error if the sampler could not be created
	CreateSampler(label string, stagingData common.SamplerStagingData) (*wgpu.Sampler, error)

	// Upload overwrites buffer contents at the given offset via a queue
	// write. The GPU reads the latest write before any draw submitted later
	// in the same tick.
	//
	// Parameters:
	//   - buffer: the destination buffer
	//   - offset: the destination byte offset
	//   - data: the raw bytes to write
	//
	// Returns:
	//   - error: an error if the write could not be enqueued
	Upload(buffer *wgpu.Buffer, offset uint64, data []byte) error

	// Flush applies staged buffer writes in order. Writes with a nil buffer
	// are skipped.
	//
	// Parameters:
	//   - writes: the staged writes to apply
	//
	// Returns:
	//   - error: the first write error encountered, if any
	Flush(writes []BufferWrite) error
}

var _ ResourceBinder = &resourceBinderImpl{}

// NewResourceBinder creates a binder working against the context's device and
// queue.
//
// Parameters:
//   - gc: the acquired graphics context
//   - options: optional configuration options for the binder
//
// Returns:
//   - ResourceBinder: the binder, never nil
func NewResourceBinder(gc graphics.GraphicsContext, options ...ResourceBinderBuilderOption) ResourceBinder {
	if gc == nil {
		panic("binder: NewResourceBinder requires a non-nil GraphicsContext")
	}

	b := &resourceBinderImpl{
		device:        gc.Device(),
		queue:         gc.Queue(),
		textureFormat: wgpu.TextureFormatRGBA8UnormSrgb,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *resourceBinderImpl) BuildLayout(label string, entries []LayoutEntry) (*Layout, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("bind group layout %q requires at least one entry", label)
	}

	layoutEntries := make([]wgpu.BindGroupLayoutEntry, len(entries))
	for i, e := range entries {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    e.Binding,
			Visibility: e.Visibility,
		}
		switch e.Kind {
		case ResourceKindSampledTexture:
			entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case ResourceKindSampler:
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case ResourceKindUniformBuffer:
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
			entry.Buffer.MinBindingSize = e.MinBindingSize
		default:
			return nil, fmt.Errorf("bind group layout %q: binding %d has no resource kind", label, e.Binding)
		}
		layoutEntries[i] = entry
	}

	handle, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label + " Layout",
		Entries: layoutEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group layout %q: %w", label, err)
	}

	return &Layout{
		Label:   label,
		Entries: entries,
		Handle:  handle,
	}, nil
}

func (b *resourceBinderImpl) BuildGroup(layout *Layout, resources []BindingResource) (*wgpu.BindGroup, error) {
	if layout == nil {
		return nil, fmt.Errorf("bind group requires a layout")
	}

	if err := validateBindings(layout.Label, layout.Entries, resources); err != nil {
		return nil, err
	}

	groupEntries := make([]wgpu.BindGroupEntry, len(resources))
	for i, r := range resources {
		entry := wgpu.BindGroupEntry{Binding: r.Binding}
		switch r.kind() {
		case ResourceKindSampledTexture:
			entry.TextureView = r.TextureView
		case ResourceKindSampler:
			entry.Sampler = r.Sampler
		case ResourceKindUniformBuffer:
			entry.Buffer = r.Buffer
			entry.Offset = 0
			entry.Size = wgpu.WholeSize
		}
		groupEntries[i] = entry
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   layout.Label + " Bind Group",
		Layout:  layout.Handle,
		Entries: groupEntries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group %q: %w", layout.Label, err)
	}

	return group, nil
}

func (b *resourceBinderImpl) CreateUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func (b *resourceBinderImpl) CreateInstanceBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
}

func (b *resourceBinderImpl) CreateTexture(label string, stagingData *common.TextureStagingData) (*wgpu.TextureView, error) {
	if stagingData == nil || len(stagingData.Pixels) == 0 {
		return nil, fmt.Errorf("texture %q has no staged pixel data", label)
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        b.textureFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (b *resourceBinderImpl) CreateSampler(label string, stagingData common.SamplerStagingData) (*wgpu.Sampler, error) {
	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  common.Coalesce(stagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(stagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(stagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(stagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(stagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(stagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(stagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(stagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(stagingData.MaxAnisotropy, 1),
	})
}

func (b *resourceBinderImpl) Upload(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	if buffer == nil {
		return fmt.Errorf("upload requires a buffer")
	}
	return b.queue.WriteBuffer(buffer, offset, data)
}

func (b *resourceBinderImpl) Flush(writes []BufferWrite) error {
	for _, w := range writes {
		if w.Buffer == nil {
			continue
		}
		if err := b.queue.WriteBuffer(w.Buffer, w.Offset, w.Data); err != nil {
			return err
		}
	}
	return nil
}
