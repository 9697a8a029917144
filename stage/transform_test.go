// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/ggui"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func nearInstance(a, b ggui.Instance) bool {
	return near(a.Position[0], b.Position[0]) && near(a.Position[1], b.Position[1]) &&
		near(a.Scale[0], b.Scale[0]) && near(a.Scale[1], b.Scale[1])
}

func buildScene() ggui.Snapshot {
	r := ggui.NewRegistry()
	ggui.Show(r, func(ui *ggui.Builder) struct{} {
		ui.AddPanel([3]float32{0, 0, 0}, [2]float32{0.5, 0.5})
		ui.AddButton([3]float32{0.5, 0.5, 0}, [2]float32{0.25, 0.25}, nil)
		return struct{}{}
	})
	return r.Stage()
}

func TestTransformScalesToViewport(t *testing.T) {
	batches := Transform(buildScene(), Viewport{Width: 800, Height: 600})
	if len(batches) != 1 {
		t.Fatalf("len(batches) = %d, want 1", len(batches))
	}
	b := batches[0]
	if b.Kind != ggui.Quadrilateral {
		t.Errorf("Kind = %v, want %v", b.Kind, ggui.Quadrilateral)
	}

	want := []ggui.Instance{
		{Position: [2]float32{0, 0}, Scale: [2]float32{400, 300}},
		{Position: [2]float32{400, 300}, Scale: [2]float32{200, 150}},
	}
	if len(b.Instances) != len(want) {
		t.Fatalf("len(Instances) = %d, want %d", len(b.Instances), len(want))
	}
	for i := range want {
		if !nearInstance(b.Instances[i], want[i]) {
			t.Errorf("Instances[%d] = %+v, want %+v", i, b.Instances[i], want[i])
		}
	}

	tmpl, _ := ggui.Template(ggui.Quadrilateral)
	if len(b.Vertices) != len(tmpl.Vertices) {
		t.Errorf("len(Vertices) = %d, want %d", len(b.Vertices), len(tmpl.Vertices))
	}
	if b.IndexCount() != 6 {
		t.Errorf("IndexCount() = %d, want 6", b.IndexCount())
	}
	if b.InstanceCount() != 2 {
		t.Errorf("InstanceCount() = %d, want 2", b.InstanceCount())
	}
}

func TestTransformEmptySnapshot(t *testing.T) {
	if got := Transform(ggui.Snapshot{}, Viewport{Width: 10, Height: 10}); len(got) != 0 {
		t.Errorf("Transform(empty) = %v, want no batches", got)
	}
	if got := Transform(nil, Viewport{Width: 10, Height: 10}); got != nil {
		t.Errorf("Transform(nil) = %v, want nil", got)
	}
}

func TestTransformDoesNotMutateSnapshot(t *testing.T) {
	snap := buildScene()
	before := snap[ggui.Quadrilateral][1]
	Transform(snap, Viewport{Width: 1920, Height: 1080})
	if snap[ggui.Quadrilateral][1] != before {
		t.Errorf("snapshot mutated: %+v, want %+v", snap[ggui.Quadrilateral][1], before)
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	snap := buildScene()
	vp := Viewport{Width: 1024, Height: 768}
	a := Transform(snap, vp)
	b := Transform(snap, vp)
	if len(a) != len(b) {
		t.Fatalf("batch counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i].Instances {
			if a[i].Instances[j] != b[i].Instances[j] {
				t.Errorf("batch %d instance %d differs", i, j)
			}
		}
	}
}

func TestTransformResizeRestages(t *testing.T) {
	snap := buildScene()
	small := Transform(snap, Viewport{Width: 100, Height: 100})
	large := Transform(snap, Viewport{Width: 200, Height: 400})

	got := large[0].Instances[1]
	want := ggui.Instance{Position: [2]float32{100, 200}, Scale: [2]float32{50, 100}}
	if !nearInstance(got, want) {
		t.Errorf("resized instance = %+v, want %+v", got, want)
	}
	if nearInstance(small[0].Instances[1], got) {
		t.Error("resize produced identical instances")
	}
}

func TestTransformSkipsUnknownKind(t *testing.T) {
	snap := ggui.Snapshot{
		ggui.GeometryKind(200): {{Scale: [2]float32{1, 1}}},
		ggui.Quadrilateral:     {{Scale: [2]float32{1, 1}}},
	}
	batches := Transform(snap, Viewport{Width: 4, Height: 4})
	if len(batches) != 1 || batches[0].Kind != ggui.Quadrilateral {
		t.Errorf("batches = %+v, want one Quadrilateral batch", batches)
	}
}

func TestTransformZeroViewport(t *testing.T) {
	batches := Transform(buildScene(), Viewport{Width: 0, Height: 600})
	for _, in := range batches[0].Instances {
		if in.Position[0] != 0 || in.Scale[0] != 0 {
			t.Errorf("instance = %+v, want zero x extent", in)
		}
	}
}

func TestToPixels(t *testing.T) {
	tests := []struct {
		name string
		in   ggui.Instance
		w, h float32
		want ggui.Instance
	}{
		{"identity", ggui.Instance{Position: [2]float32{1, 1}, Scale: [2]float32{1, 1}}, 1, 1,
			ggui.Instance{Position: [2]float32{1, 1}, Scale: [2]float32{1, 1}}},
		{"full screen", ggui.Instance{Scale: [2]float32{1, 1}}, 640, 480,
			ggui.Instance{Scale: [2]float32{640, 480}}},
		{"negative passes through", ggui.Instance{Position: [2]float32{-0.5, 2}}, 100, 10,
			ggui.Instance{Position: [2]float32{-50, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPixels(tt.in, tt.w, tt.h)
			if !nearInstance(got, tt.want) {
				t.Errorf("ToPixels() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewportString(t *testing.T) {
	if got := (Viewport{Width: 800, Height: 600}).String(); got != "800x600" {
		t.Errorf("String() = %q, want %q", got, "800x600")
	}
}

func TestMustValid(t *testing.T) {
	vp := Viewport{Width: 1, Height: 1}
	if got := MustValid(vp); got != vp {
		t.Errorf("MustValid() = %v, want %v", got, vp)
	}

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrZeroViewport) {
			t.Errorf("recover() = %v, want ErrZeroViewport", err)
		}
	}()
	MustValid(Viewport{Width: 5})
}
