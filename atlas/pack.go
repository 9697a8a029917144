// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/ggui"
)

// Source is one image to pack, keyed by its entry name.
type Source struct {
	Name  string
	Image image.Image
}

// Pack lays sources out left to right in the given order and composites
// them into a new atlas image.
//
// The atlas width is the sum of source widths and the height is the
// largest source height. Pixels below shorter sources are transparent.
func Pack(sources []Source) (*Manifest, *image.NRGBA, error) {
	if len(sources) == 0 {
		return nil, nil, ErrNoImages
	}

	m := &Manifest{Entries: make([]Entry, 0, len(sources))}
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, dup := seen[src.Name]; dup {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateName, src.Name)
		}
		seen[src.Name] = struct{}{}

		size := src.Image.Bounds().Size()
		m.Entries = append(m.Entries, Entry{
			Name:        src.Name,
			XStart:      m.Width,
			YStart:      0,
			ImageWidth:  uint32(size.X),
			ImageHeight: uint32(size.Y),
		})
		m.Width += uint32(size.X)
		m.Height = max(m.Height, uint32(size.Y))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, int(m.Width), int(m.Height)))
	for i, src := range sources {
		e := &m.Entries[i]
		draw.Copy(dst, image.Pt(int(e.XStart), int(e.YStart)), src.Image, src.Image.Bounds(), draw.Src, nil)
		e.GenerateCoords(m.Width, m.Height)

		ggui.Logger().Debug("atlas: placed image",
			"name", e.Name,
			"x", e.XStart,
			"width", e.ImageWidth,
			"height", e.ImageHeight)
	}

	return m, dst, nil
}
