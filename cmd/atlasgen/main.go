// Command atlasgen packs a directory of images into a texture atlas.
//
// Usage:
//
//	atlasgen [-config ggui.toml] [-input assets] [-manifest atlas.json] [-image atlas.png] [-verbose]
//
// Flags override GGUI_* environment variables, which override the config
// file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/atlas"
	"github.com/gogpu/ggui/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	var (
		configPath   = flag.String("config", "", "config file (TOML, YAML or JSON)")
		inputDir     = flag.String("input", "", "directory of source images")
		manifestPath = flag.String("manifest", "", "output manifest path")
		imagePath    = flag.String("image", "", "output atlas image path")
		verbose      = flag.Bool("verbose", false, "log every image")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Atlas.InputDir = *inputDir
		case "manifest":
			cfg.Atlas.ManifestPath = *manifestPath
		case "image":
			cfg.Atlas.ImagePath = *imagePath
		}
	})
	if err := cfg.Atlas.Validate(); err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := atlas.Run(ctx, atlas.Options{
		InputDir:     cfg.Atlas.InputDir,
		ManifestPath: cfg.Atlas.ManifestPath,
		ImagePath:    cfg.Atlas.ImagePath,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Println(summary(m, cfg.Atlas))
}

func summary(m *atlas.Manifest, cfg config.AtlasConfig) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("atlas %dx%d, %d entries", m.Width, m.Height, len(m.Entries))))
	b.WriteByte('\n')
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "  %s %s\n",
			nameStyle.Render(e.Name),
			dimStyle.Render(fmt.Sprintf("x=%d %dx%d", e.XStart, e.ImageWidth, e.ImageHeight)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("wrote %s and %s", cfg.ManifestPath, cfg.ImagePath)))
	return b.String()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "atlasgen:", err)
	os.Exit(1)
}
