// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggui

import (
	"fmt"
	"unsafe"
)

// GeometryKind identifies the vertex/index template a widget renders with.
//
// Values are fixed: new kinds are appended with new numbers and existing
// numbers are never reused, so stored kinds stay valid across versions.
type GeometryKind uint8

const (
	// Quadrilateral is a unit quad centered on the origin, drawn as two
	// triangles.
	Quadrilateral GeometryKind = 1
)

// geometryNames maps kinds to their stable names.
var geometryNames = map[GeometryKind]string{
	Quadrilateral: "quadrilateral",
}

// String returns the stable lowercase name of the kind.
func (k GeometryKind) String() string {
	if name, ok := geometryNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GeometryKind(%d)", uint8(k))
}

// Valid reports whether k is a known geometry kind.
func (k GeometryKind) Valid() bool {
	_, ok := geometryNames[k]
	return ok
}

// ParseGeometryKind returns the kind with the given name.
func ParseGeometryKind(name string) (GeometryKind, error) {
	for k, n := range geometryNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ggui: unknown geometry kind %q", name)
}

// GeometryKinds returns all known kinds in ascending order.
func GeometryKinds() []GeometryKind {
	return []GeometryKind{Quadrilateral}
}

// Vertex is one vertex of a geometry template.
//
// Memory layout (28 bytes, no padding):
//
//	position (vec3<f32>) = 12 bytes
//	color    (vec4<f32>) = 16 bytes
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// VertexSize is the byte size of a Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// InstanceSize is the byte size of an Instance.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// GeometryTemplate is the canonical vertex and index data of a geometry kind.
type GeometryTemplate struct {
	Vertices []Vertex
	Indices  []uint32
}

// quadColor is the fixed per-vertex color of the quad template.
var quadColor = [4]float32{1, 0, 0, 1}

var quadTemplate = GeometryTemplate{
	Vertices: []Vertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Color: quadColor}, // bottom-left
		{Position: [3]float32{0.5, -0.5, 0}, Color: quadColor},  // bottom-right
		{Position: [3]float32{0.5, 0.5, 0}, Color: quadColor},   // top-right
		{Position: [3]float32{-0.5, 0.5, 0}, Color: quadColor},  // top-left
	},
	Indices: []uint32{0, 1, 2, 2, 3, 0},
}

// Template returns a copy of the canonical template for kind.
// The second result is false for unknown kinds.
func Template(kind GeometryKind) (GeometryTemplate, bool) {
	var src GeometryTemplate
	switch kind {
	case Quadrilateral:
		src = quadTemplate
	default:
		return GeometryTemplate{}, false
	}
	return GeometryTemplate{
		Vertices: append([]Vertex(nil), src.Vertices...),
		Indices:  append([]uint32(nil), src.Indices...),
	}, true
}
