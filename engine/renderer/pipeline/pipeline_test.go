package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &pipelineConfig{
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		cullMode:    wgpu.CullModeNone,
		writeMask:   wgpu.ColorWriteMaskAll,
		sampleCount: 1,
	}

	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, cfg.topology)
	assert.Equal(t, wgpu.FrontFaceCCW, cfg.frontFace)
	assert.Equal(t, wgpu.CullModeNone, cfg.cullMode)
	assert.Nil(t, cfg.blendState, "opaque replace by default")
}

func TestBuilderOptionsApply(t *testing.T) {
	cfg := &pipelineConfig{}
	blend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	layout := &wgpu.BindGroupLayout{}

	for _, opt := range []RenderPipelineBuilderOption{
		WithVertexLayouts(geometry.ColorVertexLayout()),
		WithBindGroupLayouts(layout),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithBlendState(blend),
	} {
		opt(cfg)
	}

	require.Len(t, cfg.vertexLayouts, 1)
	assert.Equal(t, uint64(24), cfg.vertexLayouts[0].ArrayStride)
	require.Len(t, cfg.bindGroupLayouts, 1)
	assert.Same(t, layout, cfg.bindGroupLayouts[0])
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, cfg.topology)
	assert.Equal(t, wgpu.CullModeBack, cfg.cullMode)
	assert.Equal(t, wgpu.FrontFaceCW, cfg.frontFace)
	assert.Equal(t, wgpu.ColorWriteMaskRed, cfg.writeMask)
	assert.Same(t, blend, cfg.blendState)
}

func TestNewRenderPipelineRejectsNilArguments(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewRenderPipeline(nil, nil, wgpu.TextureFormatBGRA8Unorm)
	})
}
