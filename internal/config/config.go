package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plotwin/themes"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
	DefaultBins   = 10
)

type Config struct {
	Theme    string      `yaml:"theme"`
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	Plot     PlotConfig  `yaml:"plot"`
	Image    ImageConfig `yaml:"image"`
	Snapshot string      `yaml:"snapshot_dir"`
}

type PlotConfig struct {
	ShowGrid  bool    `yaml:"show_grid"`
	LineWidth int     `yaml:"line_width"`
	Bins      int     `yaml:"bins"`
	MarkerSz  float64 `yaml:"marker_size"`
}

type ImageConfig struct {
	Colormap string `yaml:"colormap"`
	Levels   int    `yaml:"contour_levels"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:  themes.DefaultName,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Plot: PlotConfig{
			ShowGrid:  true,
			LineWidth: 1,
			Bins:      DefaultBins,
			MarkerSz:  4,
		},
		Image: ImageConfig{
			Colormap: "viridis",
			Levels:   7,
		},
		Snapshot: "snapshots",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := themes.Get(c.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Width < 20 || c.Height < 8 {
		return fmt.Errorf("config: window size %dx%d too small", c.Width, c.Height)
	}
	if c.Plot.Bins < 1 {
		return fmt.Errorf("config: bins must be positive, got %d", c.Plot.Bins)
	}
	return nil
}
