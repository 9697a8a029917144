// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"github.com/gogpu/ggui"
	"github.com/gogpu/gputypes"
	"honnef.co/go/safeish"
)

// Shader locations of the UI pipeline.
//
// Slot 0, per vertex (stride 28):
//
//	position (vec3<f32>) offset 0   location 0
//	color    (vec4<f32>) offset 12  location 1
//
// Slot 1, per instance (stride 16):
//
//	position (vec2<f32>) offset 0   location 2
//	scale    (vec2<f32>) offset 8   location 3
const (
	LocationVertexPosition   = 0
	LocationVertexColor      = 1
	LocationInstancePosition = 2
	LocationInstanceScale    = 3
)

// Byte strides of the two vertex buffer slots. They equal ggui.VertexSize
// and ggui.InstanceSize.
const (
	vertexStride   = 28
	instanceStride = 16
)

// VertexLayouts returns the vertex buffer layouts matching Vertex (slot 0)
// and Instance (slot 1).
func VertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationVertexPosition},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: LocationVertexColor},
			},
		},
		{
			ArrayStride: instanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: LocationInstancePosition},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: LocationInstanceScale},
			},
		},
	}
}

// VertexBytes returns the vertices as raw bytes without copying.
func (b *Batch) VertexBytes() []byte { return VertexBytes(b.Vertices) }

// IndexBytes returns the indices as raw bytes without copying.
func (b *Batch) IndexBytes() []byte { return IndexBytes(b.Indices) }

// InstanceBytes returns the instances as raw bytes without copying.
func (b *Batch) InstanceBytes() []byte { return InstanceBytes(b.Instances) }

// VertexBytes reinterprets vertices as bytes in native byte order.
func VertexBytes(v []ggui.Vertex) []byte { return safeish.SliceCast[[]byte](v) }

// IndexBytes reinterprets indices as bytes in native byte order.
func IndexBytes(idx []uint32) []byte { return safeish.SliceCast[[]byte](idx) }

// InstanceBytes reinterprets instances as bytes in native byte order.
func InstanceBytes(in []ggui.Instance) []byte { return safeish.SliceCast[[]byte](in) }

// DrawCall locates one batch inside flattened Arrays.
type DrawCall struct {
	Kind          ggui.GeometryKind
	FirstIndex    uint32
	IndexCount    uint32
	BaseVertex    int32
	FirstInstance uint32
	InstanceCount uint32
}

// Arrays holds every batch packed into single vertex, index and instance
// arrays, so a backend can use one buffer of each and issue one indexed
// instanced draw per DrawCall.
type Arrays struct {
	Vertices  []ggui.Vertex
	Indices   []uint32
	Instances []ggui.Instance
	Draws     []DrawCall
}

// Empty reports whether there is nothing to draw.
func (a *Arrays) Empty() bool {
	return len(a.Draws) == 0
}

// Flatten concatenates batches in order. Indices are not rebased; each
// DrawCall carries the BaseVertex of its batch instead.
func Flatten(batches []Batch) Arrays {
	var a Arrays
	for i := range batches {
		b := &batches[i]
		if len(b.Instances) == 0 || len(b.Indices) == 0 {
			continue
		}
		a.Draws = append(a.Draws, DrawCall{
			Kind:          b.Kind,
			FirstIndex:    uint32(len(a.Indices)),
			IndexCount:    b.IndexCount(),
			BaseVertex:    int32(len(a.Vertices)),
			FirstInstance: uint32(len(a.Instances)),
			InstanceCount: b.InstanceCount(),
		})
		a.Vertices = append(a.Vertices, b.Vertices...)
		a.Indices = append(a.Indices, b.Indices...)
		a.Instances = append(a.Instances, b.Instances...)
	}
	return a
}
