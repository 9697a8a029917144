// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggui

// Instance is the per-widget placement consumed by instanced rendering.
//
// Instances authored by callers are normalized to the viewport (0..1).
// After staging (see package stage) they are in pixels.
type Instance struct {
	Position [2]float32
	Scale    [2]float32
}

// Propagate is the result of a widget action. It tells an event
// dispatcher whether the event should keep travelling to other widgets.
type Propagate uint8

const (
	// Continue means the event was not handled and may reach other widgets.
	Continue Propagate = iota

	// Stop means the event was handled.
	Stop
)

// String returns "continue" or "stop".
func (p Propagate) String() string {
	switch p {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Action is invoked when a clickable widget is clicked.
// It is owned by the widget and may capture arbitrary state.
type Action func() Propagate

// Widget is anything the registry can store and stage.
//
// Third-party widget kinds implement Widget (and optionally Clickable)
// and are added through Builder.Add.
type Widget interface {
	// Geometry returns the kind of template the widget renders with.
	Geometry() GeometryKind

	// Instance returns the widget's normalized placement.
	Instance() Instance
}

// Clickable is implemented by widgets that react to clicks.
type Clickable interface {
	Click() Propagate
}

// AsClickable returns w as a Clickable if it supports clicks.
func AsClickable(w Widget) (Clickable, bool) {
	c, ok := w.(Clickable)
	return c, ok
}

// Panel is a static rectangle.
type Panel struct {
	kind     GeometryKind
	position [3]float32
	scale    [2]float32
}

// NewPanel creates a quadrilateral panel. The z component of position is
// kept but ignored by staging.
func NewPanel(position [3]float32, scale [2]float32) *Panel {
	return &Panel{
		kind:     Quadrilateral,
		position: position,
		scale:    scale,
	}
}

// Geometry implements Widget.
func (p *Panel) Geometry() GeometryKind { return p.kind }

// SetGeometry changes the template kind. It must be called before the
// panel is added to a registry.
func (p *Panel) SetGeometry(kind GeometryKind) { p.kind = kind }

// Instance implements Widget.
func (p *Panel) Instance() Instance {
	return Instance{
		Position: [2]float32{p.position[0], p.position[1]},
		Scale:    p.scale,
	}
}

// Position returns the panel position including z.
func (p *Panel) Position() [3]float32 { return p.position }

// Button is a panel with an action.
type Button struct {
	Panel
	action Action
}

// NewButton creates a quadrilateral button. A nil action is replaced by one
// that returns Continue.
func NewButton(position [3]float32, scale [2]float32, action Action) *Button {
	if action == nil {
		action = func() Propagate { return Continue }
	}
	return &Button{
		Panel:  *NewPanel(position, scale),
		action: action,
	}
}

// Click invokes the button's action and returns its result.
func (b *Button) Click() Propagate {
	return b.action()
}
