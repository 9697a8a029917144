// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/stage"
)

const demoScene = `
viewport {
  width  = 800
  height = 600
}

panel {
  position = [0, 0, 1]
  scale    = [half, half]
}

button "ok" {
  position = [0.5, 0.5, 1]
  scale    = [0.25, 0.25]
  action   = "stop"
}

panel {
  position = [0.1, 0.9]
  scale    = [0.1, 0.05]
}
`

func TestParseDemoScene(t *testing.T) {
	s, err := Parse([]byte(demoScene), "demo.hcl", Options{Variables: map[string]float64{"half": 0.5}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Viewport != (stage.Viewport{Width: 800, Height: 600}) {
		t.Errorf("Viewport = %v, want 800x600", s.Viewport)
	}

	type row struct {
		Type     WidgetType
		Name     string
		Position [3]float32
		Scale    [2]float32
		Action   string
	}
	var got []row
	for _, w := range s.Widgets {
		got = append(got, row{w.Type, w.Name, w.Position, w.Scale, w.ActionName})
	}
	want := []row{
		{PanelWidget, "", [3]float32{0, 0, 1}, [2]float32{0.5, 0.5}, ""},
		{ButtonWidget, "ok", [3]float32{0.5, 0.5, 1}, [2]float32{0.25, 0.25}, "stop"},
		{PanelWidget, "", [3]float32{0.1, 0.9, 0}, [2]float32{0.1, 0.05}, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("widgets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ok"}, s.Buttons()); diff != "" {
		t.Errorf("Buttons() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyPreservesOrderAndActions(t *testing.T) {
	s, err := Parse([]byte(demoScene), "demo.hcl", Options{Variables: map[string]float64{"half": 0.5}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	r := ggui.NewRegistry()
	ggui.Show(r, func(ui *ggui.Builder) struct{} {
		s.Apply(ui)
		return struct{}{}
	})

	widgets := r.Widgets(ggui.Quadrilateral)
	if len(widgets) != 3 {
		t.Fatalf("registered %d widgets, want 3", len(widgets))
	}
	if _, ok := ggui.AsClickable(widgets[0]); ok {
		t.Error("first widget should be a panel")
	}
	c, ok := ggui.AsClickable(widgets[1])
	if !ok {
		t.Fatal("second widget should be a button")
	}
	if got := c.Click(); got != ggui.Stop {
		t.Errorf("Click() = %v, want %v", got, ggui.Stop)
	}
}

func TestApplyUsesWidgetGeometry(t *testing.T) {
	const custom ggui.GeometryKind = 7
	s := &Scene{Widgets: []WidgetSpec{
		{Type: PanelWidget, Geometry: ggui.Quadrilateral, Scale: [2]float32{1, 1}},
		{Type: ButtonWidget, Geometry: custom, Scale: [2]float32{0.5, 0.5}},
	}}

	r := ggui.NewRegistry()
	ggui.Show(r, func(ui *ggui.Builder) struct{} {
		s.Apply(ui)
		return struct{}{}
	})

	if diff := cmp.Diff([]ggui.GeometryKind{ggui.Quadrilateral, custom}, r.Stage().Kinds()); diff != "" {
		t.Errorf("staged kinds mismatch (-want +got):\n%s", diff)
	}
	buttons := r.Widgets(custom)
	if len(buttons) != 1 {
		t.Fatalf("registered %d widgets of kind %v, want 1", len(buttons), custom)
	}
	if _, ok := ggui.AsClickable(buttons[0]); !ok {
		t.Error("custom-kind widget should be the button")
	}
}

func TestParseCustomAction(t *testing.T) {
	clicks := 0
	src := `button "count" {
  position = [0, 0]
  scale    = [1, 1]
  action   = "count"
}`
	s, err := Parse([]byte(src), "count.hcl", Options{Actions: map[string]ggui.Action{
		"count": func() ggui.Propagate { clicks++; return ggui.Continue },
	}})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s.Widgets[0].Action()
	s.Widgets[0].Action()
	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}

func TestParseDefaultActionContinues(t *testing.T) {
	src := `button "plain" {
  position = [0, 0]
  scale    = [1, 1]
}`
	s, err := Parse([]byte(src), "plain.hcl", Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := s.Widgets[0].Action(); got != ggui.Continue {
		t.Errorf("Action() = %v, want %v", got, ggui.Continue)
	}
	if s.Viewport.Valid() {
		t.Errorf("Viewport = %v, want zero when absent", s.Viewport)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"syntax", `panel {`, "parse"},
		{"unknown block", `window {}`, "Unsupported block type"},
		{"unknown action", `button "x" {
  position = [0, 0]
  scale    = [1, 1]
  action   = "explode"
}`, "Unknown action"},
		{"short position", `panel {
  position = [0]
  scale    = [1, 1]
}`, "Invalid position"},
		{"long scale", `panel {
  position = [0, 0]
  scale    = [1, 1, 1]
}`, "Invalid scale"},
		{"panel action", `panel {
  position = [0, 0]
  scale    = [1, 1]
  action   = "stop"
}`, "Unexpected action"},
		{"unknown geometry", `panel {
  position = [0, 0]
  scale    = [1, 1]
  geometry = "circle"
}`, "Unknown geometry"},
		{"missing variable", `panel {
  position = [0, 0]
  scale    = [w, 1]
}`, "Variables not allowed"},
		{"two viewports", `viewport {
  width  = 1
  height = 1
}
viewport {
  width  = 2
  height = 2
}`, "Duplicate viewport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl", Options{})
			if err == nil {
				t.Fatal("Parse error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %q, want it to mention %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "bad.hcl") {
				t.Errorf("Parse error = %q, want file name", err)
			}
		})
	}
}

func TestParseErrorIsDiagnostics(t *testing.T) {
	_, err := Parse([]byte(`panel {`), "bad.hcl", Options{})
	var diags hcl.Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("error %T does not wrap hcl.Diagnostics", err)
	}
	if !diags.HasErrors() {
		t.Error("diagnostics have no errors")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.hcl")
	if err := os.WriteFile(path, []byte(demoScene), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path, Options{Variables: map[string]float64{"half": 0.5}})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(s.Widgets) != 3 {
		t.Errorf("len(Widgets) = %d, want 3", len(s.Widgets))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.hcl"), Options{}); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}

func TestWidgetTypeString(t *testing.T) {
	if PanelWidget.String() != "panel" || ButtonWidget.String() != "button" {
		t.Errorf("String() = %q, %q", PanelWidget.String(), ButtonWidget.String())
	}
}
