// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layout loads declarative scene files and replays them through a
// ggui.Builder.
//
// A scene file is HCL:
//
//	viewport {
//	  width  = 800
//	  height = 600
//	}
//
//	panel {
//	  position = [0, 0, 1]
//	  scale    = [half, half]
//	}
//
//	button "ok" {
//	  position = [0.5, 0.5, 1]
//	  scale    = [0.25, 0.25]
//	  action   = "stop"
//	}
//
// Coordinates are normalized. Expressions may reference the variables
// passed in Options. Widgets are added in document order.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/stage"
)

// Built-in action names. They always resolve, even when Options.Actions
// defines nothing.
const (
	ActionContinue = "continue"
	ActionStop     = "stop"
)

// WidgetType distinguishes the widget blocks of a scene.
type WidgetType uint8

const (
	PanelWidget WidgetType = iota
	ButtonWidget
)

func (t WidgetType) String() string {
	switch t {
	case PanelWidget:
		return "panel"
	case ButtonWidget:
		return "button"
	default:
		return "unknown"
	}
}

// WidgetSpec is one decoded widget block.
type WidgetSpec struct {
	Type     WidgetType
	Name     string // button label, empty for panels
	Geometry ggui.GeometryKind
	Position [3]float32
	Scale    [2]float32

	// ActionName and Action are set for buttons only.
	ActionName string
	Action     ggui.Action
}

// Scene is a decoded scene file.
type Scene struct {
	// Viewport is the suggested window size, zero if the file has no
	// viewport block.
	Viewport stage.Viewport
	Widgets  []WidgetSpec
}

// Options configures decoding.
type Options struct {
	// Variables are visible to every expression by name.
	Variables map[string]float64

	// Actions resolve button action names. Entries named "continue" or
	// "stop" override the built-ins.
	Actions map[string]ggui.Action
}

var sceneSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "viewport"},
		{Type: "panel"},
		{Type: "button", LabelNames: []string{"name"}},
	},
}

type hclViewport struct {
	Width  uint32 `hcl:"width"`
	Height uint32 `hcl:"height"`
}

type hclWidget struct {
	Position []float64 `hcl:"position"`
	Scale    []float64 `hcl:"scale"`
	Geometry *string   `hcl:"geometry,optional"`
	Action   *string   `hcl:"action,optional"`
}

// LoadFile reads and decodes the scene at path.
func LoadFile(path string, opts Options) (*Scene, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("layout: read scene: %w", err)
	}
	return Parse(src, path, opts)
}

// Parse decodes an HCL scene. filename is used in diagnostics only.
func Parse(src []byte, filename string, opts Options) (*Scene, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("layout: parse %s: %w", filename, diags)
	}

	content, diags := file.Body.Content(sceneSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("layout: decode %s: %w", filename, diags)
	}

	d := decoder{ctx: evalContext(opts.Variables), actions: opts.Actions}
	scene := &Scene{}
	seenViewport := false
	for _, block := range content.Blocks {
		switch block.Type {
		case "viewport":
			if seenViewport {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate viewport block",
					Detail:   "A scene may declare at most one viewport.",
					Subject:  block.DefRange.Ptr(),
				})
				continue
			}
			seenViewport = true
			vp, vdiags := d.viewport(block)
			diags = append(diags, vdiags...)
			scene.Viewport = vp
		case "panel", "button":
			w, wdiags := d.widget(block)
			diags = append(diags, wdiags...)
			if !wdiags.HasErrors() {
				scene.Widgets = append(scene.Widgets, w)
			}
		}
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("layout: decode %s: %w", filename, diags)
	}

	ggui.Logger().Debug("layout: scene decoded",
		"file", filename,
		"widgets", len(scene.Widgets),
		"viewport", scene.Viewport.String())
	return scene, nil
}

func evalContext(vars map[string]float64) *hcl.EvalContext {
	if len(vars) == 0 {
		return nil
	}
	values := make(map[string]cty.Value, len(vars))
	for name, v := range vars {
		values[name] = cty.NumberFloatVal(v)
	}
	return &hcl.EvalContext{Variables: values}
}

type decoder struct {
	ctx     *hcl.EvalContext
	actions map[string]ggui.Action
}

func (d *decoder) viewport(block *hcl.Block) (stage.Viewport, hcl.Diagnostics) {
	var v hclViewport
	diags := gohcl.DecodeBody(block.Body, d.ctx, &v)
	return stage.Viewport{Width: v.Width, Height: v.Height}, diags
}

func (d *decoder) widget(block *hcl.Block) (WidgetSpec, hcl.Diagnostics) {
	var raw hclWidget
	diags := gohcl.DecodeBody(block.Body, d.ctx, &raw)
	if diags.HasErrors() {
		return WidgetSpec{}, diags
	}

	w := WidgetSpec{Type: PanelWidget, Geometry: ggui.Quadrilateral}
	if block.Type == "button" {
		w.Type = ButtonWidget
		w.Name = block.Labels[0]
	}
	subject := block.DefRange.Ptr()

	switch len(raw.Position) {
	case 2, 3:
		for i, v := range raw.Position {
			w.Position[i] = float32(v)
		}
	default:
		diags = append(diags, errorf(subject, "Invalid position",
			"position needs 2 or 3 components, got %d.", len(raw.Position)))
	}

	if len(raw.Scale) == 2 {
		w.Scale = [2]float32{float32(raw.Scale[0]), float32(raw.Scale[1])}
	} else {
		diags = append(diags, errorf(subject, "Invalid scale",
			"scale needs exactly 2 components, got %d.", len(raw.Scale)))
	}

	if raw.Geometry != nil {
		kind, err := ggui.ParseGeometryKind(*raw.Geometry)
		if err != nil {
			diags = append(diags, errorf(subject, "Unknown geometry", "%s", err))
		}
		w.Geometry = kind
	}

	switch {
	case w.Type == PanelWidget && raw.Action != nil:
		diags = append(diags, errorf(subject, "Unexpected action",
			"Only buttons have actions."))
	case w.Type == ButtonWidget:
		w.ActionName = ActionContinue
		if raw.Action != nil {
			w.ActionName = *raw.Action
		}
		action, ok := d.action(w.ActionName)
		if !ok {
			diags = append(diags, errorf(subject, "Unknown action",
				"No action named %q. Known actions: %s.", w.ActionName, strings.Join(d.actionNames(), ", ")))
		}
		w.Action = action
	}

	return w, diags
}

func (d *decoder) action(name string) (ggui.Action, bool) {
	if a, ok := d.actions[name]; ok {
		return a, true
	}
	switch name {
	case ActionContinue:
		return func() ggui.Propagate { return ggui.Continue }, true
	case ActionStop:
		return func() ggui.Propagate { return ggui.Stop }, true
	}
	return nil, false
}

func (d *decoder) actionNames() []string {
	set := map[string]struct{}{ActionContinue: {}, ActionStop: {}}
	for name := range d.actions {
		set[name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func errorf(subject *hcl.Range, summary, format string, args ...any) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  subject,
	}
}

// Apply adds every widget of s to b in document order, each with its
// decoded geometry kind.
func (s *Scene) Apply(b *ggui.Builder) {
	for i := range s.Widgets {
		w := &s.Widgets[i]
		switch w.Type {
		case PanelWidget:
			p := ggui.NewPanel(w.Position, w.Scale)
			p.SetGeometry(w.Geometry)
			b.Add(p)
		case ButtonWidget:
			btn := ggui.NewButton(w.Position, w.Scale, w.Action)
			btn.SetGeometry(w.Geometry)
			b.Add(btn)
		}
	}
}

// Buttons returns the names of the scene's buttons in document order.
func (s *Scene) Buttons() []string {
	var names []string
	for i := range s.Widgets {
		if s.Widgets[i].Type == ButtonWidget {
			names = append(names, s.Widgets[i].Name)
		}
	}
	return names
}
