// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggui builds declarative UI scenes and stages them for GPU
// rendering.
//
// # Overview
//
// Widgets are created inside a Show callback and stored in a Registry,
// grouped by the geometry template they render with. Stage turns the
// registry into a Snapshot of normalized instances, and package stage
// converts a snapshot into pixel-space vertex, index and instance arrays
// for a backend.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggui"
//	    "github.com/gogpu/ggui/stage"
//	)
//
//	registry := ggui.NewRegistry()
//	ggui.Show(registry, func(ui *ggui.Builder) struct{} {
//	    ui.AddPanel([3]float32{0, 0, 1}, [2]float32{0.5, 0.5})
//	    ui.AddButton([3]float32{0.5, 0.5, 1}, [2]float32{0.25, 0.25}, func() ggui.Propagate {
//	        return ggui.Stop
//	    })
//	    return struct{}{}
//	})
//
//	batches := stage.Transform(registry.Stage(), stage.Viewport{Width: 800, Height: 600})
//
// # Coordinate System
//
// Authored positions and scales are normalized to the viewport:
//   - Origin (0,0) at top-left
//   - (1,1) is the bottom-right corner
//   - Scale (1,1) covers the whole viewport
//
// # Related Packages
//
//   - stage: normalized → pixel transform, buffer layouts, 2D camera
//   - atlas: linear texture atlas packer and manifest lookup
//   - layout: HCL scene files applied through a Builder
//   - render: WebGPU HAL adapter that uploads and draws staged batches
package ggui
