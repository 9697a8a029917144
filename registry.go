// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggui

import (
	"slices"
)

// Snapshot is the staged state of a registry: normalized instances grouped
// by geometry kind. It is a value independent of the registry that
// produced it.
type Snapshot map[GeometryKind][]Instance

// Kinds returns the kinds present in the snapshot in ascending order.
func (s Snapshot) Kinds() []GeometryKind {
	kinds := make([]GeometryKind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Len returns the total number of instances across all kinds.
func (s Snapshot) Len() int {
	n := 0
	for _, instances := range s {
		n += len(instances)
	}
	return n
}

// Registry owns widgets grouped by geometry kind.
//
// A Registry is not safe for concurrent use. It is populated through Show
// and read through Stage.
type Registry struct {
	widgets map[GeometryKind][]Widget
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		widgets: make(map[GeometryKind][]Widget),
	}
}

// Add appends w to the bucket of its geometry kind. Nil widgets are ignored.
func (r *Registry) Add(w Widget) {
	if w == nil {
		return
	}
	if r.widgets == nil {
		r.widgets = make(map[GeometryKind][]Widget)
	}
	kind := w.Geometry()
	r.widgets[kind] = append(r.widgets[kind], w)

	_, clickable := AsClickable(w)
	Logger().Debug("ggui: widget added",
		"kind", kind.String(),
		"clickable", clickable,
		"bucket_len", len(r.widgets[kind]))
}

// Stage returns a snapshot of every widget's instance, grouped by kind.
// Insertion order is preserved within each kind. The registry is not
// modified.
func (r *Registry) Stage() Snapshot {
	snap := make(Snapshot, len(r.widgets))
	for kind, widgets := range r.widgets {
		instances := make([]Instance, 0, len(widgets))
		for _, w := range widgets {
			instances = append(instances, w.Instance())
		}
		snap[kind] = instances
	}
	Logger().Debug("ggui: registry staged", "kinds", len(snap), "instances", snap.Len())
	return snap
}

// ClickableAt returns the first clickable widget accepted by pred.
// Kinds are scanned in ascending order, widgets in insertion order.
// A nil pred accepts every widget.
func (r *Registry) ClickableAt(pred func(Widget) bool) (Clickable, bool) {
	kinds := make([]GeometryKind, 0, len(r.widgets))
	for k := range r.widgets {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	for _, kind := range kinds {
		for _, w := range r.widgets[kind] {
			c, ok := AsClickable(w)
			if !ok {
				continue
			}
			if pred == nil || pred(w) {
				return c, true
			}
		}
	}
	return nil, false
}

// Widgets returns a copy of the bucket for kind.
func (r *Registry) Widgets(kind GeometryKind) []Widget {
	return slices.Clone(r.widgets[kind])
}

// Len returns the number of widgets in the registry.
func (r *Registry) Len() int {
	n := 0
	for _, widgets := range r.widgets {
		n += len(widgets)
	}
	return n
}

// Reset removes all widgets.
func (r *Registry) Reset() {
	clear(r.widgets)
}
