// Command uipreview shows a scene file in the terminal.
//
// Usage:
//
//	uipreview [-scene scene.hcl] [-config ggui.toml]
//
// Without -scene (or preview.scene_file in the config) the built-in demo
// scene is shown: a panel in the top-left quadrant and one button.
// Press enter to click the first button and q to quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/internal/config"
	"github.com/gogpu/ggui/internal/preview"
	"github.com/gogpu/ggui/layout"
	"github.com/gogpu/ggui/stage"
)

const demoScene = `
panel {
  position = [0, 0, 1]
  scale    = [half, half]
}

button "ok" {
  position = [0.5, 0.5, 1]
  scale    = [quarter, quarter]
  action   = "stop"
}
`

func main() {
	var (
		scenePath  = flag.String("scene", "", "HCL scene file (default: built-in demo)")
		configPath = flag.String("config", "", "config file (TOML, YAML or JSON)")
		logPath    = flag.String("log", "", "write debug log to this file")
	)
	flag.Parse()

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fatal(err)
		}
		defer func() { _ = f.Close() }()
		ggui.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *scenePath != "" {
		cfg.Preview.SceneFile = *scenePath
	}
	if err := cfg.Preview.Validate(); err != nil {
		fatal(err)
	}

	opts := layout.Options{
		Variables: map[string]float64{"half": 0.5, "quarter": 0.25},
	}
	var scene *layout.Scene
	if cfg.Preview.SceneFile != "" {
		scene, err = layout.LoadFile(cfg.Preview.SceneFile, opts)
	} else {
		scene, err = layout.Parse([]byte(demoScene), "demo.hcl", opts)
	}
	if err != nil {
		fatal(err)
	}

	registry := ggui.NewRegistry()
	ggui.Show(registry, func(ui *ggui.Builder) struct{} {
		scene.Apply(ui)
		return struct{}{}
	})

	m := preview.New(registry, stage.Viewport{Width: cfg.Preview.Width, Height: cfg.Preview.Height})
	if err := preview.Run(m, tea.WithAltScreen()); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "uipreview:", err)
	os.Exit(1)
}
