// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/ggui"
)

// Options configures Run.
type Options struct {
	InputDir     string
	ManifestPath string
	ImagePath    string
}

// Run loads every image in opts.InputDir, packs them and writes the
// manifest and atlas image. Nothing is written unless every image loads
// and packs.
func Run(ctx context.Context, opts Options) (*Manifest, error) {
	log := ggui.Logger()
	log.Info("atlas: loading images", "dir", opts.InputDir)

	sources, err := loadDir(ctx, opts.InputDir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, img, err := Pack(sources)
	if err != nil {
		return nil, err
	}

	if err := Write(m, img, opts.ManifestPath, opts.ImagePath); err != nil {
		return nil, err
	}
	log.Info("atlas: written",
		"manifest", opts.ManifestPath,
		"image", opts.ImagePath,
		"entries", len(m.Entries),
		"width", m.Width,
		"height", m.Height)
	return m, nil
}

// Write stores m as JSON at manifestPath and img as PNG at imagePath.
//
// Both files are first written to temporaries in their target
// directories and renamed only after both succeed.
func Write(m *Manifest, img image.Image, manifestPath, imagePath string) error {
	imgTmp, err := writeTemp(imagePath, func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("atlas: encode PNG: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	manTmp, err := writeTemp(manifestPath, m.Encode)
	if err != nil {
		_ = os.Remove(imgTmp)
		return err
	}

	// An existing image is moved aside so a failed manifest rename can
	// put it back.
	backup := ""
	if _, err := os.Lstat(imagePath); err == nil {
		backup = imgTmp + ".old"
		if err := os.Rename(imagePath, backup); err != nil {
			_ = os.Remove(imgTmp)
			_ = os.Remove(manTmp)
			return fmt.Errorf("atlas: move old image aside: %w", err)
		}
	}

	if err := os.Rename(imgTmp, imagePath); err != nil {
		_ = os.Remove(imgTmp)
		_ = os.Remove(manTmp)
		return errors.Join(fmt.Errorf("atlas: rename image: %w", err), restore(backup, imagePath))
	}
	if err := os.Rename(manTmp, manifestPath); err != nil {
		_ = os.Remove(manTmp)
		_ = os.Remove(imagePath)
		return errors.Join(fmt.Errorf("atlas: rename manifest: %w", err), restore(backup, imagePath))
	}
	if backup != "" {
		_ = os.Remove(backup)
	}
	return nil
}

// restore moves backup back to path. An empty backup means path did not
// exist before.
func restore(backup, path string) error {
	if backup == "" {
		return nil
	}
	if err := os.Rename(backup, path); err != nil {
		return fmt.Errorf("atlas: restore old image: %w", err)
	}
	return nil
}

// writeTemp writes through fn into a temporary file next to path and
// returns the temporary's name.
func writeTemp(path string, fn func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("atlas: create temp file: %w", err)
	}
	name := f.Name()

	werr := fn(f)
	perr := f.Chmod(0o644)
	cerr := f.Close()
	if err := errors.Join(werr, perr, cerr); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
