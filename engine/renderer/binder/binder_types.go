package binder

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ResourceKind identifies what a bind group layout slot holds.
type ResourceKind int

const (
	// ResourceKindNone marks an empty slot. It appears in mismatch errors
	// when a layout slot received no resource, or a resource targeted an
	// undeclared slot.
	ResourceKindNone ResourceKind = iota
	// ResourceKindUniformBuffer is a uniform buffer binding.
	ResourceKindUniformBuffer
	// ResourceKindSampledTexture is a sampled texture view binding.
	ResourceKindSampledTexture
	// ResourceKindSampler is a filtering sampler binding.
	ResourceKindSampler
)

// String returns a human-readable name for the resource kind.
func (k ResourceKind) String() string {
	switch k {
	case ResourceKindUniformBuffer:
		return "uniform-buffer"
	case ResourceKindSampledTexture:
		return "sampled-texture"
	case ResourceKindSampler:
		return "sampler"
	default:
		return "none"
	}
}

// LayoutEntry describes one binding slot of a bind group layout. Slot numbers
// and kinds are contract: a bind group built against the layout must supply a
// matching resource for every slot.
type LayoutEntry struct {
	// Binding is the shader-visible binding slot number.
	Binding uint32
	// Visibility is the shader stage set that can access the binding.
	Visibility wgpu.ShaderStage
	// Kind is the resource kind the slot holds.
	Kind ResourceKind
	// MinBindingSize is the minimum bound buffer size in bytes. Only
	// meaningful for uniform-buffer slots; 64 for a 4x4 float matrix.
	MinBindingSize uint64
}

// Layout pairs a created GPU bind group layout with the entries it was built
// from, so bind groups can be validated against it before creation.
type Layout struct {
	// Label identifies the layout in diagnostics.
	Label string
	// Entries are the slots the layout declares, in declaration order.
	Entries []LayoutEntry
	// Handle is the created GPU layout.
	Handle *wgpu.BindGroupLayout
}

// BindingResource supplies the concrete resource for one binding slot.
// Exactly one of TextureView, Sampler, or Buffer must be set.
type BindingResource struct {
	// Binding is the slot the resource binds to.
	Binding uint32
	// TextureView supplies a sampled-texture binding.
	TextureView *wgpu.TextureView
	// Sampler supplies a sampler binding.
	Sampler *wgpu.Sampler
	// Buffer supplies a uniform-buffer binding. The whole buffer is bound.
	Buffer *wgpu.Buffer
}

// kind reports which resource kind the populated field represents.
func (r BindingResource) kind() ResourceKind {
	switch {
	case r.TextureView != nil:
		return ResourceKindSampledTexture
	case r.Sampler != nil:
		return ResourceKindSampler
	case r.Buffer != nil:
		return ResourceKindUniformBuffer
	default:
		return ResourceKindNone
	}
}

// BufferWrite is a staged write of raw bytes into a GPU buffer at an offset.
// Writes applied in order within a tick are visible to the draw submitted in
// the same tick, guaranteed by queue submission order.
type BufferWrite struct {
	// Buffer is the destination buffer. Nil writes are skipped.
	Buffer *wgpu.Buffer
	// Offset is the destination byte offset.
	Offset uint64
	// Data is the raw bytes to write.
	Data []byte
}

// BindingMismatchError reports that a bind group's resources do not conform
// to the layout it was built against. This is a contract violation and is
// fatal at scene setup.
type BindingMismatchError struct {
	// Label identifies the bind group being built.
	Label string
	// Binding is the offending slot number.
	Binding uint32
	// Want is the kind the layout declares for the slot (ResourceKindNone
	// when the slot is not declared at all).
	Want ResourceKind
	// Got is the kind that was supplied (ResourceKindNone when the slot
	// received no resource).
	Got ResourceKind
}

func (e *BindingMismatchError) Error() string {
	switch {
	case e.Want == ResourceKindNone:
		return fmt.Sprintf("bind group %q: binding %d is not declared by the layout (got %s)", e.Label, e.Binding, e.Got)
	case e.Got == ResourceKindNone:
		return fmt.Sprintf("bind group %q: binding %d (%s) received no resource", e.Label, e.Binding, e.Want)
	default:
		return fmt.Sprintf("bind group %q: binding %d expects %s, got %s", e.Label, e.Binding, e.Want, e.Got)
	}
}

// validateBindings checks the supplied resources against the layout entries:
// every declared slot must receive exactly one resource of the declared kind,
// and no resource may target an undeclared slot.
func validateBindings(label string, entries []LayoutEntry, resources []BindingResource) error {
	declared := make(map[uint32]ResourceKind, len(entries))
	for _, e := range entries {
		declared[e.Binding] = e.Kind
	}

	seen := make(map[uint32]bool, len(resources))
	for _, r := range resources {
		if seen[r.Binding] {
			return fmt.Errorf("bind group %q: duplicate resource for binding %d", label, r.Binding)
		}
		seen[r.Binding] = true

		want, ok := declared[r.Binding]
		if !ok {
			return &BindingMismatchError{Label: label, Binding: r.Binding, Want: ResourceKindNone, Got: r.kind()}
		}
		if got := r.kind(); got != want {
			return &BindingMismatchError{Label: label, Binding: r.Binding, Want: want, Got: got}
		}
	}

	for _, e := range entries {
		if !seen[e.Binding] {
			return &BindingMismatchError{Label: label, Binding: e.Binding, Want: e.Kind, Got: ResourceKindNone}
		}
	}

	return nil
}
