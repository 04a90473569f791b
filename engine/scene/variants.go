package scene

import (
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// Per-variant scenario tables. Kept as pure functions so the geometry and
// clear colors are testable without a GPU device.

// triangleVertices returns the RGB triangle used by the triangle and banded
// variants: apex red, bottom-left green, bottom-right blue.
func triangleVertices() []geometry.GPUColorVertex {
	return []geometry.GPUColorVertex{
		{Position: [3]float32{0.0, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
	}
}

// bandedIndices returns the index list for the banded variant. The banded
// triangle draws indexed so the index path is exercised by a non-quad mesh.
func bandedIndices() []uint16 {
	return []uint16{0, 1, 2}
}

// quadVertices returns the unit quad used by the texture and spin variants.
// UV origin is top-left, so the bottom vertices carry v=1.
func quadVertices() []geometry.GPUTexturedVertex {
	return []geometry.GPUTexturedVertex{
		{Position: [3]float32{-0.5, -0.5, 0.0}, UV: [2]float32{0.0, 1.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}, UV: [2]float32{1.0, 1.0}},
		{Position: [3]float32{0.5, 0.5, 0.0}, UV: [2]float32{1.0, 0.0}},
		{Position: [3]float32{-0.5, 0.5, 0.0}, UV: [2]float32{0.0, 0.0}},
	}
}

// quadIndices returns the two-triangle index list for the quad.
func quadIndices() []uint16 {
	return []uint16{0, 1, 3, 1, 2, 3}
}

// variantClearColor returns the render pass clear color for a variant. The
// clear variant paints green; every drawing variant clears to black.
func variantClearColor(variant renderer.RenderVariant) wgpu.Color {
	if variant == renderer.RenderVariantClear {
		return wgpu.Color{R: 0.1, G: 0.9, B: 0.1, A: 1.0}
	}
	return wgpu.Color{R: 0.0, G: 0.0, B: 0.0, A: 1.0}
}

// variantLabel returns the diagnostic label prefix used for a variant's GPU
// resources and render pass.
func variantLabel(variant renderer.RenderVariant) string {
	switch variant {
	case renderer.RenderVariantClear:
		return "Clear"
	case renderer.RenderVariantTriangle:
		return "Triangle"
	case renderer.RenderVariantBanded:
		return "Banded"
	case renderer.RenderVariantTexture:
		return "Texture"
	case renderer.RenderVariantSpin:
		return "Spin"
	default:
		return "Unknown"
	}
}
