package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bocop/internal/interp"
	"github.com/san-kum/bocop/internal/plot"
)

const (
	DefaultDataDir        = ".bocop"
	DefaultMode           = "smooth"
	DefaultLevelTolerance = 1e-3
	DefaultTheme          = "default"
)

type Config struct {
	DataDir       string              `yaml:"data_dir"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Plot          plot.Style          `yaml:"plot"`
	Theme         string              `yaml:"theme"`
}

type InterpolationConfig struct {
	Mode           string  `yaml:"mode"`
	Extrapolate    bool    `yaml:"extrapolate"`
	Tolerance      float64 `yaml:"tolerance"`
	Normalize      bool    `yaml:"normalize"`
	MedianWindow   int     `yaml:"median_window"`
	LevelTolerance float64 `yaml:"level_tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Interpolation: InterpolationConfig{
			Mode:           DefaultMode,
			Tolerance:      interp.DefaultTolerance,
			LevelTolerance: DefaultLevelTolerance,
		},
		Plot:  plot.DefaultStyle(),
		Theme: DefaultTheme,
	}
}

// Load reads path on top of the defaults, so a partial file only overrides
// the keys it sets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Options converts the interpolation section for interp.Build.
func (c *Config) Options() (interp.Options, error) {
	mode, err := interp.ParseMode(c.Interpolation.Mode)
	if err != nil {
		return interp.Options{}, err
	}
	if w := c.Interpolation.MedianWindow; w > 1 && w%2 == 0 {
		return interp.Options{}, fmt.Errorf("median window must be odd, got %d", w)
	}
	return interp.Options{
		Mode:         mode,
		Extrapolate:  c.Interpolation.Extrapolate,
		Tolerance:    c.Interpolation.Tolerance,
		Normalize:    c.Interpolation.Normalize,
		MedianWindow: c.Interpolation.MedianWindow,
	}, nil
}
