// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggui

import "errors"

// ErrBuilderDetached is the panic value raised when a Builder is used after
// the Show callback it was handed to has returned.
var ErrBuilderDetached = errors.New("ggui: builder used after Show returned")

// Builder is the construction context handed to a Show callback.
// Every call constructs a widget and adds it to the registry of Show.
//
// A Builder is only valid during the callback. Retaining it and calling
// it later panics with ErrBuilderDetached.
type Builder struct {
	registry *Registry
}

// Show invokes fn exactly once with a builder bound to r and returns fn's
// result. The builder is detached when fn returns, so r cannot be
// modified through it while being staged.
//
// Example:
//
//	ok := ggui.Show(registry, func(ui *ggui.Builder) bool {
//	    ui.AddPanel([3]float32{0, 0, 1}, [2]float32{0.5, 0.5})
//	    ui.AddButton([3]float32{0.5, 0.5, 1}, [2]float32{0.25, 0.25}, onClick)
//	    return true
//	})
func Show[R any](r *Registry, fn func(*Builder) R) R {
	b := &Builder{registry: r}
	defer func() { b.registry = nil }()
	return fn(b)
}

func (b *Builder) target() *Registry {
	if b.registry == nil {
		panic(ErrBuilderDetached)
	}
	return b.registry
}

// AddPanel adds a panel. Parameters are not validated.
func (b *Builder) AddPanel(position [3]float32, scale [2]float32) *Panel {
	p := NewPanel(position, scale)
	b.target().Add(p)
	return p
}

// AddButton adds a button that runs action when clicked.
// Parameters are not validated.
func (b *Builder) AddButton(position [3]float32, scale [2]float32, action Action) *Button {
	btn := NewButton(position, scale, action)
	b.target().Add(btn)
	return btn
}

// Add adds a widget of any kind.
func (b *Builder) Add(w Widget) {
	b.target().Add(w)
}
