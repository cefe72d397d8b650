package hud

import (
	"fmt"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend/webgpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// gpuPipeline holds the render pipeline for one device and target format.
type gpuPipeline struct {
	device   *wgpu.Device
	format   gputypes.TextureFormat
	shader   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

// tintBlend multiplies the fragment color by the blend constant.
var tintBlend = gputypes.BlendState{
	Color: gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorConstant,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	},
	Alpha: gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	},
}

func newGPUPipeline(device *wgpu.Device, format gputypes.TextureFormat) (*gpuPipeline, error) {
	p := &gpuPipeline{device: device, format: format}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "hud-triangle",
		WGSL:  triangleShader,
	})
	if err != nil {
		return nil, fmt.Errorf("hud: create shader: %w", err)
	}
	p.shader = shader

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "hud-layout",
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("hud: create pipeline layout: %w", err)
	}
	p.layout = layout

	blend := tintBlend
	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "hud-triangle",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
	})
	if err != nil {
		p.release()
		return nil, fmt.Errorf("hud: create pipeline: %w", err)
	}
	p.pipeline = pipeline

	frameloop.Logger().Debug("hud: pipeline created", "format", format.String())
	return p, nil
}

func (p *gpuPipeline) release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
}

// ensurePipeline builds the pipeline for the target, rebuilding it when
// the device or swap chain format changed.
func (c *Compositor) ensurePipeline(t webgpu.RenderTarget) error {
	if c.gpu != nil && c.gpu.device == t.Device() && c.gpu.format == t.Format() {
		return nil
	}
	c.Close()
	p, err := newGPUPipeline(t.Device(), t.Format())
	if err != nil {
		return err
	}
	c.gpu = p
	return nil
}

// composeGPU records a render pass that clears the frame and draws the
// tinted triangle.
func (c *Compositor) composeGPU(t webgpu.RenderTarget) (frameloop.Commands, error) {
	if err := c.ensurePipeline(t); err != nil {
		return nil, err
	}

	encoder, err := t.Device().CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "hud-encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("hud: create encoder: %w", err)
	}

	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "hud-pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       t.View(),
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c.clearColor(),
			},
		},
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("hud: begin render pass: %w", err)
	}

	k := c.pulse()
	pass.SetPipeline(c.gpu.pipeline)
	pass.SetBlendConstant(&wgpu.Color{R: k, G: k, B: k, A: 1})
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("hud: end render pass: %w", err)
	}

	cmd, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("hud: finish encoder: %w", err)
	}
	return webgpu.CommandBuffers{cmd}, nil
}
