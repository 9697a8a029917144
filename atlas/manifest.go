// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas packs a set of images into one texture atlas and describes
// where each image landed in a JSON manifest.
//
// Packing is linear: images are placed left to right along the x axis in
// input order, all at y = 0. The atlas is as wide as the sum of the image
// widths and as tall as the tallest image. Each entry's UV rectangle is
// inset by half a texel on every edge so bilinear sampling never reads a
// neighbor's pixels.
//
// The command-line front end is cmd/atlasgen.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// Packer errors.
var (
	// ErrNoImages is returned when there is nothing to pack.
	ErrNoImages = errors.New("atlas: no images to pack")

	// ErrDuplicateName is returned when two sources share a name.
	ErrDuplicateName = errors.New("atlas: duplicate entry name")
)

// Entry is the placement of one source image inside the atlas.
type Entry struct {
	Name        string `json:"name"`
	XStart      uint32 `json:"x_start"`
	YStart      uint32 `json:"y_start"`
	ImageWidth  uint32 `json:"image_width"`
	ImageHeight uint32 `json:"image_height"`

	// StartCoord and EndCoord are the inset normalized UV corners. They are
	// nil until GenerateCoords runs.
	StartCoord *[2]float32 `json:"start_coord"`
	EndCoord   *[2]float32 `json:"end_coord"`
}

// GenerateCoords sets StartCoord and EndCoord for an atlas of the given
// size. The raw rectangle is normalized, then pulled in by half a texel on
// every edge.
func (e *Entry) GenerateCoords(width, height uint32) {
	w := float32(width)
	h := float32(height)
	hx := 0.5 / w
	hy := 0.5 / h

	e.StartCoord = &[2]float32{
		float32(e.XStart)/w + hx,
		float32(e.YStart)/h + hy,
	}
	e.EndCoord = &[2]float32{
		float32(e.XStart+e.ImageWidth)/w - hx,
		float32(e.YStart+e.ImageHeight)/h - hy,
	}
}

// Manifest describes a packed atlas.
type Manifest struct {
	Entries []Entry `json:"entries"`
	Width   uint32  `json:"width"`
	Height  uint32  `json:"height"`
}

// Names returns entry names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Entries))
	for i := range m.Entries {
		names[i] = m.Entries[i].Name
	}
	return names
}

// ManifestError reports a manifest that breaks the packing layout.
type ManifestError struct {
	Entry  string // empty for manifest-level problems
	Reason string
}

func (e *ManifestError) Error() string {
	if e.Entry == "" {
		return "atlas: invalid manifest: " + e.Reason
	}
	return fmt.Sprintf("atlas: invalid manifest entry %q: %s", e.Entry, e.Reason)
}

// Validate checks that m is a linear packing: entries abut along x starting
// at 0, all at y = 0, widths sum to Width, the tallest entry equals Height,
// names are unique and coordinates are present.
func (m *Manifest) Validate() error {
	if len(m.Entries) == 0 {
		return &ManifestError{Reason: "no entries"}
	}
	if m.Width == 0 || m.Height == 0 {
		return &ManifestError{Reason: fmt.Sprintf("zero size %dx%d", m.Width, m.Height)}
	}

	seen := make(map[string]struct{}, len(m.Entries))
	var x, maxH uint32
	for i := range m.Entries {
		e := &m.Entries[i]
		if _, dup := seen[e.Name]; dup {
			return &ManifestError{Entry: e.Name, Reason: "duplicate name"}
		}
		seen[e.Name] = struct{}{}

		if e.XStart != x {
			return &ManifestError{Entry: e.Name, Reason: fmt.Sprintf("x_start %d, want %d", e.XStart, x)}
		}
		if e.YStart != 0 {
			return &ManifestError{Entry: e.Name, Reason: fmt.Sprintf("y_start %d, want 0", e.YStart)}
		}
		if e.StartCoord == nil || e.EndCoord == nil {
			return &ManifestError{Entry: e.Name, Reason: "missing coordinates"}
		}
		x += e.ImageWidth
		maxH = max(maxH, e.ImageHeight)
	}
	if x != m.Width {
		return &ManifestError{Reason: fmt.Sprintf("entry widths sum to %d, width is %d", x, m.Width)}
	}
	if maxH != m.Height {
		return &ManifestError{Reason: fmt.Sprintf("tallest entry is %d, height is %d", maxH, m.Height)}
	}
	return nil
}

// DecodeManifest reads and validates a JSON manifest.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("atlas: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("atlas: open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Encode writes m as indented JSON followed by a newline. Output is
// byte-for-byte stable for equal manifests.
func (m *Manifest) Encode(w io.Writer) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("atlas: encode manifest: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("atlas: write manifest: %w", err)
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	c := &Manifest{Width: m.Width, Height: m.Height, Entries: slices.Clone(m.Entries)}
	for i := range c.Entries {
		e := &c.Entries[i]
		if e.StartCoord != nil {
			s := *e.StartCoord
			e.StartCoord = &s
		}
		if e.EndCoord != nil {
			end := *e.EndCoord
			e.EndCoord = &end
		}
	}
	return c
}
