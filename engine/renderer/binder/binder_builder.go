package binder

import "github.com/cogentcore/webgpu/wgpu"

// ResourceBinderBuilderOption is a functional option for configuring the
// resource binder during construction.
type ResourceBinderBuilderOption func(*resourceBinderImpl)

// WithTextureFormat overrides the texture format used by CreateTexture.
// Defaults to RGBA8UnormSrgb, matching sRGB-encoded image assets.
//
// Parameters:
//   - format: the texture format to create textures with
//
// Returns:
//   - ResourceBinderBuilderOption: the option to apply
func WithTextureFormat(format wgpu.TextureFormat) ResourceBinderBuilderOption {
	return func(b *resourceBinderImpl) {
		b.textureFormat = format
	}
}
