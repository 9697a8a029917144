// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws staged ggui widgets with a shared GPU device.
//
// # Key Principle
//
// The renderer RECEIVES a GPU device from the host application, it does
// NOT create its own. The host owns the surface, the frame and the render
// pass; UIRenderer owns only its buffers, pipeline and bind group.
//
// # Frame Flow
//
//	r := render.NewUIRenderer(device, queue)
//	defer r.Destroy()
//
//	// On startup and on every resize:
//	batches := stage.Transform(registry.Stage(), vp)
//	cam.Resize(vp)
//	if err := r.Upload(batches, cam); err != nil { ... }
//	if err := r.EnsurePipeline(surfaceFormat); err != nil { ... }
//
//	// Every frame, inside the host's render pass:
//	r.RecordDraws(pass)
//
// Upload is not needed per frame: the staged data only changes when the
// registry or the viewport does.
//
// # Shader Interface
//
// The embedded WGSL shader reads the camera matrix at group 0 binding 0
// and the vertex layouts of stage.VertexLayouts: template position and
// color at locations 0 and 1, instance position and scale at 2 and 3.
package render
