// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import "honnef.co/go/safeish"

// CameraUniformSize is the byte size of the camera uniform (mat4x4<f32>).
const CameraUniformSize = 64

// Camera2D maps pixel coordinates to clip space for a viewport whose
// origin is the top-left corner, so staged instances can be drawn as is.
type Camera2D struct {
	// Position is the pixel offset of the view. Zero shows the viewport
	// unscrolled.
	Position [2]float32

	viewport Viewport
}

// NewCamera2D creates a camera for vp.
func NewCamera2D(vp Viewport) *Camera2D {
	return &Camera2D{viewport: vp}
}

// Resize updates the viewport. Call it on the same resize event that
// restages the registry.
func (c *Camera2D) Resize(vp Viewport) {
	c.viewport = vp
}

// Viewport returns the current viewport.
func (c *Camera2D) Viewport() Viewport {
	return c.viewport
}

// ViewProjection returns projection × view in column-major order.
//
// The projection is a right-handed orthographic projection with
// left = 0, right = width, top = 0, bottom = height and depth -1..1
// (OpenGL convention). The view translates by -Position.
func (c *Camera2D) ViewProjection() [16]float32 {
	w := float32(c.viewport.Width)
	h := float32(c.viewport.Height)

	// orthographic(l=0, r=w, b=h, t=0, n=-1, f=1)
	sx := 2 / w
	sy := -2 / h
	const sz = -1
	tx := float32(-1)
	ty := float32(1)

	// Fold the view translation into the last column.
	tx += sx * -c.Position[0]
	ty += sy * -c.Position[1]

	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		tx, ty, 0, 1,
	}
}

// UniformBytes returns ViewProjection encoded for a uniform buffer.
func (c *Camera2D) UniformBytes() []byte {
	m := c.ViewProjection()
	return append([]byte(nil), safeish.AsBytes(&m)...)
}

// Project transforms a pixel-space point to clip space.
func (c *Camera2D) Project(x, y float32) (float32, float32) {
	m := c.ViewProjection()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
