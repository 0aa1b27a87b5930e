// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/tessellate"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of the ribbon uniform block:
//
//	viewport (vec4<f32>) = 16 bytes (width, height, 0, 0)
//	tint     (vec4<f32>) = 16 bytes (premultiplied, 0..1)
const uniformSize = 32

// stripPipeline holds the GPU objects of the ribbon render pipeline.
type stripPipeline struct {
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// newStripPipeline compiles the ribbon shader and creates a triangle-strip
// pipeline rendering into format. Partially created objects are released
// on failure.
func newStripPipeline(device hal.Device, format gputypes.TextureFormat) (*stripPipeline, error) {
	spirv, err := compileShaderToSPIRV(ribbonShaderSource)
	if err != nil {
		return nil, err
	}

	p := &stripPipeline{}
	if err := p.create(device, spirv, format); err != nil {
		p.destroy(device)
		return nil, err
	}
	return p, nil
}

func (p *stripPipeline) create(device hal.Device, spirv []uint32, format gputypes.TextureFormat) error {
	shader, err := createShaderModule(device, spirv)
	if err != nil {
		return fmt.Errorf("create ribbon shader module: %w", err)
	}
	p.shader = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ribbon_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create ribbon uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ribbon_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create ribbon pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	stripIndex := gputypes.IndexFormatUint16
	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "ribbon_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    ribbonVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:         gputypes.PrimitiveTopologyTriangleStrip,
			StripIndexFormat: &stripIndex,
			CullMode:         gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create ribbon pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// destroy releases pipeline objects in reverse creation order.
func (p *stripPipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// ribbonVertexLayout matches the tessellate.Vertex wire layout.
func ribbonVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: tessellate.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // texcoord
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 20, ShaderLocation: 2},  // color
			},
		},
	}
}

// makeUniform encodes the viewport size and tint.
func makeUniform(width, height uint32, tint color.RGBA) []byte {
	buf := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(height)))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(float32(tint.R)/255))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(float32(tint.G)/255))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(float32(tint.B)/255))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(float32(tint.A)/255))
	return buf
}

// uniformSlot is one draw's uniform buffer and bind group. Slots are
// reused after each submit; every draw recorded before it gets its own slot so queued
// uniform writes do not overwrite each other before submission.
type uniformSlot struct {
	buf       hal.Buffer
	bindGroup hal.BindGroup
}

func newUniformSlot(device hal.Device, layout hal.BindGroupLayout) (*uniformSlot, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ribbon_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ribbon_uniform_bind",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create uniform bind group: %w", err)
	}
	return &uniformSlot{buf: buf, bindGroup: bindGroup}, nil
}

func (s *uniformSlot) destroy(device hal.Device) {
	if s.bindGroup != nil {
		device.DestroyBindGroup(s.bindGroup)
	}
	if s.buf != nil {
		device.DestroyBuffer(s.buf)
	}
}
