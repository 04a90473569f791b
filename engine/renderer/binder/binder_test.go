package binder

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textureSamplerLayout is the texture variant's fragment-visible group shape:
// slot 0 sampled texture, slot 1 filtering sampler.
func textureSamplerLayout() []LayoutEntry {
	return []LayoutEntry{
		{Binding: 0, Visibility: wgpu.ShaderStageFragment, Kind: ResourceKindSampledTexture},
		{Binding: 1, Visibility: wgpu.ShaderStageFragment, Kind: ResourceKindSampler},
	}
}

func TestValidateBindingsAccepts(t *testing.T) {
	view := &wgpu.TextureView{}
	sampler := &wgpu.Sampler{}

	err := validateBindings("diffuse", textureSamplerLayout(), []BindingResource{
		{Binding: 0, TextureView: view},
		{Binding: 1, Sampler: sampler},
	})
	assert.NoError(t, err)
}

func TestValidateBindingsRejectsSwappedKinds(t *testing.T) {
	view := &wgpu.TextureView{}
	sampler := &wgpu.Sampler{}

	err := validateBindings("diffuse", textureSamplerLayout(), []BindingResource{
		{Binding: 0, Sampler: sampler},
		{Binding: 1, TextureView: view},
	})
	require.Error(t, err)

	var mismatch *BindingMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint32(0), mismatch.Binding)
	assert.Equal(t, ResourceKindSampledTexture, mismatch.Want)
	assert.Equal(t, ResourceKindSampler, mismatch.Got)
}

func TestValidateBindingsRejectsMissingSlot(t *testing.T) {
	err := validateBindings("diffuse", textureSamplerLayout(), []BindingResource{
		{Binding: 0, TextureView: &wgpu.TextureView{}},
	})

	var mismatch *BindingMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint32(1), mismatch.Binding)
	assert.Equal(t, ResourceKindSampler, mismatch.Want)
	assert.Equal(t, ResourceKindNone, mismatch.Got)
}

func TestValidateBindingsRejectsUndeclaredSlot(t *testing.T) {
	err := validateBindings("view-matrix", []LayoutEntry{
		{Binding: 0, Visibility: wgpu.ShaderStageVertex, Kind: ResourceKindUniformBuffer, MinBindingSize: 64},
	}, []BindingResource{
		{Binding: 0, Buffer: &wgpu.Buffer{}},
		{Binding: 3, Buffer: &wgpu.Buffer{}},
	})

	var mismatch *BindingMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint32(3), mismatch.Binding)
	assert.Equal(t, ResourceKindNone, mismatch.Want)
}

func TestValidateBindingsRejectsDuplicate(t *testing.T) {
	err := validateBindings("diffuse", textureSamplerLayout(), []BindingResource{
		{Binding: 0, TextureView: &wgpu.TextureView{}},
		{Binding: 0, TextureView: &wgpu.TextureView{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestBuildGroupValidatesBeforeTouchingDevice(t *testing.T) {
	// The validation failure path never reaches the device, so a zero-value
	// binder is sufficient here.
	b := &resourceBinderImpl{}
	layout := &Layout{Label: "diffuse", Entries: textureSamplerLayout()}

	_, err := b.BuildGroup(layout, []BindingResource{
		{Binding: 0, Sampler: &wgpu.Sampler{}},
		{Binding: 1, TextureView: &wgpu.TextureView{}},
	})

	var mismatch *BindingMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestBuildGroupRequiresLayout(t *testing.T) {
	b := &resourceBinderImpl{}
	_, err := b.BuildGroup(nil, nil)
	assert.Error(t, err)
}

func TestResourceKindString(t *testing.T) {
	assert.Equal(t, "uniform-buffer", ResourceKindUniformBuffer.String())
	assert.Equal(t, "sampled-texture", ResourceKindSampledTexture.String())
	assert.Equal(t, "sampler", ResourceKindSampler.String())
	assert.Equal(t, "none", ResourceKindNone.String())
}

func TestBindingMismatchErrorMessages(t *testing.T) {
	swap := &BindingMismatchError{Label: "diffuse", Binding: 0, Want: ResourceKindSampledTexture, Got: ResourceKindSampler}
	assert.Contains(t, swap.Error(), "expects sampled-texture")
	assert.Contains(t, swap.Error(), "got sampler")

	missing := &BindingMismatchError{Label: "diffuse", Binding: 1, Want: ResourceKindSampler, Got: ResourceKindNone}
	assert.Contains(t, missing.Error(), "received no resource")

	undeclared := &BindingMismatchError{Label: "diffuse", Binding: 3, Want: ResourceKindNone, Got: ResourceKindUniformBuffer}
	assert.Contains(t, undeclared.Error(), "not declared")
}
