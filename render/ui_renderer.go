// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/exp/constraints"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/stage"
)

//go:embed shaders/ui.wgsl
var uiShaderSource string

// ErrNilCamera is returned by Upload without a camera.
var ErrNilCamera = errors.New("render: nil camera")

// bufferAlignment is the size granularity of every buffer the renderer
// creates. WriteBuffer requires 4-byte multiples.
const bufferAlignment = 4

// alignTo rounds n up to a multiple of align, which must be a power of two.
func alignTo[T constraints.Integer](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

// UIRenderer draws staged widget batches: one indexed instanced draw per
// geometry kind, all from four shared buffers.
//
// The renderer does not own the render pass. The host begins the pass and
// calls RecordDraws; the renderer only needs a pipeline matching the
// pass's color format (EnsurePipeline).
//
// UIRenderer is not safe for concurrent use.
type UIRenderer struct {
	device hal.Device
	queue  hal.Queue

	format        gputypes.TextureFormat
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	vertBuf    gpuBuffer
	idxBuf     gpuBuffer
	instBuf    gpuBuffer
	uniformBuf gpuBuffer
	bindGroup  hal.BindGroup

	draws []stage.DrawCall
}

// gpuBuffer is a HAL buffer that is reused while its capacity suffices.
type gpuBuffer struct {
	buf  hal.Buffer
	size uint64
}

// NewUIRenderer creates a renderer on a shared device. GPU objects are
// created lazily by Upload and EnsurePipeline.
func NewUIRenderer(device hal.Device, queue hal.Queue) *UIRenderer {
	return &UIRenderer{device: device, queue: queue}
}

// NewUIRendererFromProvider creates a renderer from a host provider that
// exposes HalDevice() and HalQueue().
func NewUIRendererFromProvider(provider any) (*UIRenderer, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewUIRenderer(device, queue), nil
}

// Upload copies batches and the camera transform to the GPU. Buffers grow
// as needed and are otherwise reused. An empty batch list leaves nothing
// to draw.
func (r *UIRenderer) Upload(batches []stage.Batch, cam *stage.Camera2D) error {
	arrays := stage.Flatten(batches)
	if arrays.Empty() {
		r.draws = nil
		return nil
	}
	if cam == nil {
		return ErrNilCamera
	}

	if err := r.write(&r.vertBuf, "ui_vertices", stage.VertexBytes(arrays.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if err := r.write(&r.idxBuf, "ui_indices", stage.IndexBytes(arrays.Indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if err := r.write(&r.instBuf, "ui_instances", stage.InstanceBytes(arrays.Instances),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}

	fresh := r.uniformBuf.buf == nil
	if err := r.write(&r.uniformBuf, "ui_camera", cam.UniformBytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if fresh || r.bindGroup == nil {
		if err := r.createBindGroup(); err != nil {
			return err
		}
	}

	r.draws = arrays.Draws
	ggui.Logger().Debug("render: uploaded UI batches",
		"draws", len(arrays.Draws),
		"vertices", len(arrays.Vertices),
		"instances", len(arrays.Instances))
	return nil
}

// write uploads data into b, replacing the buffer when it is too small.
func (r *UIRenderer) write(b *gpuBuffer, label string, data []byte, usage gputypes.BufferUsage) error {
	size := alignTo(uint64(len(data)), bufferAlignment)
	if b.buf == nil || b.size < size {
		if b.buf != nil {
			r.device.DestroyBuffer(b.buf)
			b.buf = nil
		}
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: usage,
		})
		if err != nil {
			return fmt.Errorf("render: create %s: %w", label, err)
		}
		b.buf = buf
		b.size = size
	}
	r.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

func (r *UIRenderer) ensureUniformLayout() error {
	if r.uniformLayout != nil {
		return nil
	}
	layout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ui_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui_uniform_layout: %w", err)
	}
	r.uniformLayout = layout
	return nil
}

func (r *UIRenderer) createBindGroup() error {
	if err := r.ensureUniformLayout(); err != nil {
		return err
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ui_camera_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.buf.NativeHandle(), Offset: 0, Size: stage.CameraUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui_camera_bind: %w", err)
	}
	r.bindGroup = bg
	return nil
}

// EnsurePipeline builds the render pipeline for a color target format.
// It is a no-op when a pipeline for format already exists, and rebuilds
// when the format changes.
func (r *UIRenderer) EnsurePipeline(format gputypes.TextureFormat) error {
	if r.pipeline != nil && r.format == format {
		return nil
	}
	r.destroyPipeline()

	if err := r.ensureUniformLayout(); err != nil {
		return err
	}

	if r.shader == nil {
		spirv, err := compileWGSL(uiShaderSource)
		if err != nil {
			return err
		}
		shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  "ui_shader",
			Source: hal.ShaderSource{SPIRV: spirv},
		})
		if err != nil {
			return fmt.Errorf("render: create ui_shader: %w", err)
		}
		r.shader = shader
	}

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ui_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create ui_pipe_layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "ui_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    stage.VertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
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
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui_pipeline: %w", err)
	}
	r.pipeline = pipeline
	r.format = format
	return nil
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("render: compile ui shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// DrawCount returns the number of draw calls RecordDraws will issue.
func (r *UIRenderer) DrawCount() int {
	if r.pipeline == nil {
		return 0
	}
	return len(r.draws)
}

// RecordDraws records the uploaded batches into an existing render pass.
// Nothing is recorded before both Upload and EnsurePipeline succeeded.
func (r *UIRenderer) RecordDraws(rp hal.RenderPassEncoder) {
	if r.DrawCount() == 0 {
		return
	}
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.SetVertexBuffer(0, r.vertBuf.buf, 0)
	rp.SetVertexBuffer(1, r.instBuf.buf, 0)
	rp.SetIndexBuffer(r.idxBuf.buf, gputypes.IndexFormatUint32, 0)
	for _, d := range r.draws {
		rp.DrawIndexed(d.IndexCount, d.InstanceCount, d.FirstIndex, d.BaseVertex, d.FirstInstance)
	}
}

// destroyPipeline releases pipeline objects in reverse creation order.
// The shader and uniform layout are kept for the next EnsurePipeline.
func (r *UIRenderer) destroyPipeline() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
}

// Destroy releases every GPU object. It is safe to call more than once.
func (r *UIRenderer) Destroy() {
	if r.device == nil {
		return
	}
	r.destroyPipeline()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	for _, b := range []*gpuBuffer{&r.vertBuf, &r.idxBuf, &r.instBuf, &r.uniformBuf} {
		if b.buf != nil {
			r.device.DestroyBuffer(b.buf)
			*b = gpuBuffer{}
		}
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	r.draws = nil
}
