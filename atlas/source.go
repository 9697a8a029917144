// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ggui"
)

// LoadDir decodes every image file directly inside dir.
//
// Subdirectories and names starting with "." are skipped. Each entry name
// is the file name without its extension, in Unicode NFC. Sources are
// returned sorted by name so packing does not depend on directory
// iteration order. A file that cannot be decoded fails the whole load.
func LoadDir(dir string) ([]Source, error) {
	return loadDir(context.Background(), dir)
}

func loadDir(ctx context.Context, dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("atlas: read input dir: %w", err)
	}

	var sources []Source
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fname := de.Name()
		if strings.HasPrefix(fname, ".") {
			continue
		}
		if de.IsDir() {
			ggui.Logger().Warn("atlas: skipping directory", "path", filepath.Join(dir, fname))
			continue
		}

		img, err := decodeFile(filepath.Join(dir, fname))
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Name: EntryName(fname), Image: img})
	}

	slices.SortFunc(sources, func(a, b Source) int { return strings.Compare(a.Name, b.Name) })
	return sources, nil
}

// EntryName derives an entry name from a file name: the base name with
// its final extension removed, normalized to NFC.
func EntryName(fname string) string {
	base := filepath.Base(fname)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return norm.NFC.String(stem)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("atlas: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", path, err)
	}

	b := img.Bounds()
	ggui.Logger().Debug("atlas: decoded image",
		"path", path,
		"format", format,
		"width", b.Dx(),
		"height", b.Dy())
	return img, nil
}
