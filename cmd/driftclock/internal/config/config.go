package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/graphics"
	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file.
const FileName = "driftclock.yaml"

// Config represents the optional driftclock.yaml configuration.
type Config struct {
	Style  string       `yaml:"style,omitempty"`
	Output OutputConfig `yaml:"output"`
}

// OutputConfig contains frame output settings.
type OutputConfig struct {
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	Background string  `yaml:"background,omitempty"`
	Dir        string  `yaml:"dir,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	StylePath  string
	Style      clockface.Style
	Width      float64
	Height     float64
	Background graphics.Color
	OutputDir  string
}

// LoadOptional reads driftclock.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads driftclock.yaml (if present) and resolves defaults. A
// relative style path is resolved against dir.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	stylePath := strings.TrimSpace(cfg.Style)
	if stylePath != "" && !filepath.IsAbs(stylePath) {
		stylePath = filepath.Join(dir, stylePath)
	}
	style, err := clockface.LoadStyle(stylePath)
	if err != nil {
		return nil, err
	}

	width, height := cfg.Output.Width, cfg.Output.Height
	if width <= 0 {
		width = style.FallbackSide
	}
	if height <= 0 {
		height = style.FallbackSide
	}

	background := graphics.ColorBlack
	if s := strings.TrimSpace(cfg.Output.Background); s != "" {
		background, err = graphics.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("output.background: %w", err)
		}
	}

	outDir := strings.TrimSpace(cfg.Output.Dir)
	if outDir == "" {
		outDir = "frames"
	}

	return &Resolved{
		Root:       dir,
		StylePath:  stylePath,
		Style:      style,
		Width:      width,
		Height:     height,
		Background: background,
		OutputDir:  outDir,
	}, nil
}
