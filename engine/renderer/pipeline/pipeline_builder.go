package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPipelineBuilderOption is a functional option used to configure a render Pipeline during construction.
type RenderPipelineBuilderOption func(*pipelineConfig)

// WithVertexLayouts sets the vertex buffer layouts, in slot order.
//
// Parameters:
//   - layouts: one layout per vertex buffer slot
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the vertex buffer layouts for this pipeline
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.vertexLayouts = layouts
	}
}

// WithBindGroupLayouts sets the bind group layouts, in group order.
//
// Parameters:
//   - layouts: one layout per bind group slot
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the bind group layouts for this pipeline
func WithBindGroupLayouts(layouts ...*wgpu.BindGroupLayout) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.bindGroupLayouts = layouts
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology to use for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the primitive topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.topology = topology
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.cullMode = mode
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the front face to use for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the front face for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.frontFace = frontFace
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - writeMask: the color write mask to use for this pipeline (e.g., wgpu.ColorWriteMaskAll)
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the color write mask for this pipeline
func WithWriteMask(writeMask wgpu.ColorWriteMask) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.writeMask = writeMask
	}
}

// WithBlendState sets the blend state for this pipeline. The default is nil,
// which writes color unblended (replace).
//
// Parameters:
//   - blendState: the blend state to use for this pipeline
//
// Returns:
//   - RenderPipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendState(blendState *wgpu.BlendState) RenderPipelineBuilderOption {
	return func(cfg *pipelineConfig) {
		cfg.blendState = blendState
	}
}
