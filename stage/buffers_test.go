// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"testing"

	"github.com/gogpu/ggui"
	"github.com/gogpu/gputypes"
)

func TestStridesMatchTypeSizes(t *testing.T) {
	if vertexStride != ggui.VertexSize {
		t.Errorf("vertexStride = %d, want %d", vertexStride, ggui.VertexSize)
	}
	if instanceStride != ggui.InstanceSize {
		t.Errorf("instanceStride = %d, want %d", instanceStride, ggui.InstanceSize)
	}
}

func TestVertexLayouts(t *testing.T) {
	layouts := VertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("len(layouts) = %d, want 2", len(layouts))
	}
	if layouts[0].StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("slot 0 StepMode = %v, want per-vertex", layouts[0].StepMode)
	}
	if layouts[1].StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("slot 1 StepMode = %v, want per-instance", layouts[1].StepMode)
	}

	locations := map[uint32]bool{}
	for _, l := range layouts {
		for _, a := range l.Attributes {
			if locations[uint32(a.ShaderLocation)] {
				t.Errorf("location %d bound twice", a.ShaderLocation)
			}
			locations[uint32(a.ShaderLocation)] = true
		}
	}
	for loc := uint32(0); loc < 4; loc++ {
		if !locations[loc] {
			t.Errorf("location %d not bound", loc)
		}
	}
}

func TestBatchBytes(t *testing.T) {
	b := Transform(buildScene(), Viewport{Width: 8, Height: 8})[0]
	if got, want := len(b.VertexBytes()), 4*ggui.VertexSize; got != want {
		t.Errorf("len(VertexBytes()) = %d, want %d", got, want)
	}
	if got, want := len(b.IndexBytes()), 6*4; got != want {
		t.Errorf("len(IndexBytes()) = %d, want %d", got, want)
	}
	if got, want := len(b.InstanceBytes()), 2*ggui.InstanceSize; got != want {
		t.Errorf("len(InstanceBytes()) = %d, want %d", got, want)
	}
}

func TestFlattenOffsets(t *testing.T) {
	tmpl, _ := ggui.Template(ggui.Quadrilateral)
	batches := []Batch{
		{Kind: 1, Vertices: tmpl.Vertices, Indices: tmpl.Indices, Instances: make([]ggui.Instance, 3)},
		{Kind: 2, Vertices: tmpl.Vertices, Indices: tmpl.Indices},
		{Kind: 3, Vertices: tmpl.Vertices, Indices: tmpl.Indices, Instances: make([]ggui.Instance, 2)},
	}
	a := Flatten(batches)

	if len(a.Draws) != 2 {
		t.Fatalf("len(Draws) = %d, want 2 (empty batch skipped)", len(a.Draws))
	}
	want := []DrawCall{
		{Kind: 1, FirstIndex: 0, IndexCount: 6, BaseVertex: 0, FirstInstance: 0, InstanceCount: 3},
		{Kind: 3, FirstIndex: 6, IndexCount: 6, BaseVertex: 4, FirstInstance: 3, InstanceCount: 2},
	}
	for i := range want {
		if a.Draws[i] != want[i] {
			t.Errorf("Draws[%d] = %+v, want %+v", i, a.Draws[i], want[i])
		}
	}
	if len(a.Vertices) != 8 || len(a.Indices) != 12 || len(a.Instances) != 5 {
		t.Errorf("array lengths = %d/%d/%d, want 8/12/5", len(a.Vertices), len(a.Indices), len(a.Instances))
	}
	if a.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestFlattenEmpty(t *testing.T) {
	a := Flatten(nil)
	if !a.Empty() {
		t.Error("Flatten(nil).Empty() = false, want true")
	}
}
