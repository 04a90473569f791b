// package pipeline compiles a shader plus explicit vertex and bind group
// layouts into an immutable render pipeline. The demo variants draw straight
// to the surface with no depth buffer, so depth/stencil state is never
// attached.
package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/Carmen-Shannon/prism/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineConfig holds the configurable pipeline creation state. Builder
// options mutate it before the GPU objects are created.
type pipelineConfig struct {
	vertexLayouts    []wgpu.VertexBufferLayout
	bindGroupLayouts []*wgpu.BindGroupLayout
	topology         wgpu.PrimitiveTopology
	frontFace        wgpu.FrontFace
	cullMode         wgpu.CullMode
	writeMask        wgpu.ColorWriteMask
	blendState       *wgpu.BlendState
	sampleCount      uint32
}

type renderPipelineImpl struct {
	label  string
	handle *wgpu.RenderPipeline
}

// Pipeline is a compiled render pipeline ready to bind in a render pass.
type Pipeline interface {
	// Label returns the pipeline's label.
	//
	// Returns:
	//   - string: the label given at creation
	Label() string

	// Handle returns the underlying WebGPU render pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline handle
	Handle() *wgpu.RenderPipeline

	// Release frees the underlying GPU pipeline.
	Release()
}

var _ Pipeline = &renderPipelineImpl{}

// NewRenderPipeline compiles a render pipeline for the given shader, color
// target format, and layouts. Defaults: triangle-list topology, CCW front
// face, no culling, full color writes, opaque (replace) blending, one sample
// per pixel.
//
// Parameters:
//   - graphicsCtx: the graphics context whose device compiles the pipeline
//   - sh: the shader providing both entry points
//   - surfaceFormat: the color target format, normally the surface's format
//   - options: optional builder settings for layouts and raster state
//
// Returns:
//   - Pipeline: the compiled pipeline
//   - error: if shader module, layout, or pipeline creation failed
func NewRenderPipeline(graphicsCtx graphics.GraphicsContext, sh shader.Shader, surfaceFormat wgpu.TextureFormat, options ...RenderPipelineBuilderOption) (Pipeline, error) {
	if graphicsCtx == nil {
		panic("pipeline: NewRenderPipeline requires a non-nil GraphicsContext")
	}
	if sh == nil {
		panic("pipeline: NewRenderPipeline requires a non-nil Shader")
	}

	cfg := &pipelineConfig{
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		cullMode:    wgpu.CullModeNone,
		writeMask:   wgpu.ColorWriteMaskAll,
		sampleCount: 1,
	}
	for _, opt := range options {
		opt(cfg)
	}

	device := graphicsCtx.Device()
	module, err := device.CreateShaderModule(sh.Module())
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module %s: %w", sh.Key(), err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            sh.Key() + " Layout",
		BindGroupLayouts: cfg.bindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline layout for %s: %w", sh.Key(), err)
	}

	created, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  sh.Key() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: sh.VertexEntry(),
			Buffers:    cfg.vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: sh.FragmentEntry(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    surfaceFormat,
					Blend:     cfg.blendState,
					WriteMask: cfg.writeMask,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  cfg.topology,
			FrontFace: cfg.frontFace,
			CullMode:  cfg.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: cfg.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline for %s: %w", sh.Key(), err)
	}

	return &renderPipelineImpl{
		label:  sh.Key() + " Render Pipeline",
		handle: created,
	}, nil
}

func (p *renderPipelineImpl) Label() string {
	return p.label
}

func (p *renderPipelineImpl) Handle() *wgpu.RenderPipeline {
	return p.handle
}

func (p *renderPipelineImpl) Release() {
	if p.handle != nil {
		p.handle.Release()
		p.handle = nil
	}
}
