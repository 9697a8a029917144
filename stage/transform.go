// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stage converts a registry snapshot into pixel-space draw data.
//
// Transform is a pure function of (snapshot, viewport). It is meant to be
// called once at initialization and again on every resize, never per
// frame: the snapshot is static during steady-state rendering.
package stage

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggui"
)

// ErrZeroViewport is the panic value of MustValid for a degenerate viewport.
var ErrZeroViewport = errors.New("stage: viewport has a zero dimension")

// Viewport is the window size in pixels.
type Viewport struct {
	Width  uint32
	Height uint32
}

// Valid reports whether both dimensions are non-zero.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// String returns "WxH".
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// MustValid panics with ErrZeroViewport if vp has a zero dimension.
// Transform itself accepts such viewports and produces zero-sized output.
func MustValid(vp Viewport) Viewport {
	if !vp.Valid() {
		panic(fmt.Errorf("%w: %s", ErrZeroViewport, vp))
	}
	return vp
}

// Batch is the draw data of one geometry kind: the kind's template and
// every instance of it, in pixels.
type Batch struct {
	Kind      ggui.GeometryKind
	Vertices  []ggui.Vertex
	Indices   []uint32
	Instances []ggui.Instance
}

// IndexCount returns the number of indices.
func (b *Batch) IndexCount() uint32 { return uint32(len(b.Indices)) }

// InstanceCount returns the number of instances.
func (b *Batch) InstanceCount() uint32 { return uint32(len(b.Instances)) }

// Transform scales every normalized instance of snap to vp and pairs it
// with its geometry template.
//
// One batch is produced per geometry kind present, in ascending kind
// order. Kinds without a template in the catalog are skipped. An empty
// snapshot yields no batches, meaning nothing to draw.
func Transform(snap ggui.Snapshot, vp Viewport) []Batch {
	if len(snap) == 0 {
		return nil
	}

	w := float32(vp.Width)
	h := float32(vp.Height)

	batches := make([]Batch, 0, len(snap))
	for _, kind := range snap.Kinds() {
		tmpl, ok := ggui.Template(kind)
		if !ok {
			ggui.Logger().Warn("stage: no template for geometry kind", "kind", kind.String())
			continue
		}

		src := snap[kind]
		instances := make([]ggui.Instance, len(src))
		for i, in := range src {
			instances[i] = ToPixels(in, w, h)
		}

		batches = append(batches, Batch{
			Kind:      kind,
			Vertices:  tmpl.Vertices,
			Indices:   tmpl.Indices,
			Instances: instances,
		})
	}

	ggui.Logger().Debug("stage: transformed snapshot",
		"viewport", vp.String(),
		"batches", len(batches),
		"instances", snap.Len())
	return batches
}

// ToPixels scales a normalized instance to a w×h viewport.
func ToPixels(in ggui.Instance, w, h float32) ggui.Instance {
	return ggui.Instance{
		Position: [2]float32{in.Position[0] * w, in.Position[1] * h},
		Scale:    [2]float32{in.Scale[0] * w, in.Scale[1] * h},
	}
}
