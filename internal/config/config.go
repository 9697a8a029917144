// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads settings for the ggui command-line tools.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// GGUI_ATLAS_INPUT_DIR.
const EnvPrefix = "GGUI"

// Config holds tool configuration.
type Config struct {
	Atlas   AtlasConfig   `mapstructure:"atlas"`
	Preview PreviewConfig `mapstructure:"preview"`
}

// AtlasConfig holds atlas packer settings.
type AtlasConfig struct {
	InputDir     string `mapstructure:"input_dir"`
	ManifestPath string `mapstructure:"manifest_path"`
	ImagePath    string `mapstructure:"image_path"`
}

// PreviewConfig holds terminal preview settings. Width and Height are
// used when the terminal size is unknown.
type PreviewConfig struct {
	SceneFile string `mapstructure:"scene_file"`
	Width     uint32 `mapstructure:"width"`
	Height    uint32 `mapstructure:"height"`
}

// ConfigError reports an unusable setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Atlas: AtlasConfig{
			InputDir:     "assets",
			ManifestPath: "atlas.json",
			ImagePath:    "atlas.png",
		},
		Preview: PreviewConfig{
			Width:  80,
			Height: 24,
		},
	}
}

// Load reads configuration from defaults, the optional file at path
// (TOML, YAML or JSON by extension) and the environment, in increasing
// precedence. Env var overrides use prefix GGUI_.
func Load(path string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("atlas.input_dir", d.Atlas.InputDir)
	v.SetDefault("atlas.manifest_path", d.Atlas.ManifestPath)
	v.SetDefault("atlas.image_path", d.Atlas.ImagePath)
	v.SetDefault("preview.scene_file", d.Preview.SceneFile)
	v.SetDefault("preview.width", d.Preview.Width)
	v.SetDefault("preview.height", d.Preview.Height)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks that the packer has somewhere to read from and write to.
func (c *AtlasConfig) Validate() error {
	switch {
	case c.InputDir == "":
		return &ConfigError{Field: "atlas.input_dir", Reason: "must not be empty"}
	case c.ManifestPath == "":
		return &ConfigError{Field: "atlas.manifest_path", Reason: "must not be empty"}
	case c.ImagePath == "":
		return &ConfigError{Field: "atlas.image_path", Reason: "must not be empty"}
	case c.ManifestPath == c.ImagePath:
		return &ConfigError{Field: "atlas.image_path", Reason: "must differ from atlas.manifest_path"}
	}
	return nil
}

// Validate checks the fallback preview size.
func (c *PreviewConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return &ConfigError{Field: "preview.width/height", Reason: "must be positive"}
	}
	return nil
}
