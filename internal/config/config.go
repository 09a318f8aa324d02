// Package config loads plot-histogram defaults from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fabienbaron/simtoi"
)

// Config represents the plot-histogram configuration.
type Config struct {
	Plot PlotConfig `toml:"plot" yaml:"plot"`
}

// PlotConfig holds the default rendering options.
type PlotConfig struct {
	Term   string `toml:"term" yaml:"term"`
	Ext    string `toml:"ext" yaml:"ext"`
	Size   string `toml:"size" yaml:"size"`
	XRange string `toml:"xrange" yaml:"xrange"` // lo:hi, empty = autoscale
	YRange string `toml:"yrange" yaml:"yrange"`
	XLabel string `toml:"xlabel" yaml:"xlabel"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Plot: PlotConfig{
			Term: simtoi.DefaultTerm,
			Ext:  simtoi.DefaultExt,
			Size: simtoi.DefaultSize,
		},
	}
}

// LoadConfig loads the configuration from path. An empty path gives the
// defaults. The path is always user supplied, so a missing file is an error.
// Keys absent from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// PlotOptions converts the plot section into rendering options.
func (c *Config) PlotOptions() (simtoi.PlotOptions, error) {
	xRange, err := simtoi.ParseRange(c.Plot.XRange)
	if err != nil {
		return simtoi.PlotOptions{}, fmt.Errorf("xrange: %w", err)
	}

	yRange, err := simtoi.ParseRange(c.Plot.YRange)
	if err != nil {
		return simtoi.PlotOptions{}, fmt.Errorf("yrange: %w", err)
	}

	return simtoi.PlotOptions{
		Term:   c.Plot.Term,
		Ext:    c.Plot.Ext,
		Size:   c.Plot.Size,
		XRange: xRange,
		YRange: yRange,
		XLabel: c.Plot.XLabel,
	}, nil
}
