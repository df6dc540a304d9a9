package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bocop/internal/interp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Interpolation.Mode != "smooth" {
		t.Errorf("expected mode smooth, got %s", cfg.Interpolation.Mode)
	}
	if cfg.Interpolation.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
		t.Error("plot size should be positive")
	}
	if cfg.DataDir == "" {
		t.Error("data dir should be set")
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interpolation.Mode = "step"
	cfg.Interpolation.MedianWindow = 3

	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Mode != interp.ModeStep {
		t.Errorf("expected step mode, got %v", opts.Mode)
	}
	if opts.MedianWindow != 3 {
		t.Errorf("expected median window 3, got %d", opts.MedianWindow)
	}

	cfg.Interpolation.MedianWindow = 4
	if _, err := cfg.Options(); err == nil {
		t.Error("expected error for even median window")
	}

	cfg.Interpolation.MedianWindow = 0
	cfg.Interpolation.Mode = "quintic"
	if _, err := cfg.Options(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bocop.yaml")

	cfg := DefaultConfig()
	cfg.Interpolation.Extrapolate = true
	cfg.Plot.Color = "#ff0000"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Interpolation.Extrapolate {
		t.Error("extrapolate flag lost")
	}
	if loaded.Plot.Color != "#ff0000" {
		t.Errorf("expected color #ff0000, got %s", loaded.Plot.Color)
	}
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "interpolation:\n  mode: step\n  level_tolerance: 0.05\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interpolation.Mode != "step" {
		t.Errorf("expected mode step, got %s", cfg.Interpolation.Mode)
	}
	if cfg.Interpolation.LevelTolerance != 0.05 {
		t.Errorf("expected level tolerance 0.05, got %g", cfg.Interpolation.LevelTolerance)
	}
	if cfg.Interpolation.Tolerance != interp.DefaultTolerance {
		t.Errorf("expected default tolerance, got %g", cfg.Interpolation.Tolerance)
	}
	if cfg.Plot.Width != 80 {
		t.Errorf("expected default plot width, got %d", cfg.Plot.Width)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("interpolation:\n  mode: wavelet\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestGetPreset(t *testing.T) {
	s, ok := GetPreset("print")
	if !ok {
		t.Fatal("expected preset")
	}
	if s.Color != "#000000" {
		t.Errorf("expected black lines, got %s", s.Color)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Plot.Rows, cfg.Plot.Cols = 2, 1

	if !cfg.ApplyPreset("wide") {
		t.Fatal("expected wide preset")
	}
	if cfg.Plot.Width != 120 {
		t.Errorf("expected width 120, got %d", cfg.Plot.Width)
	}
	if cfg.Plot.Rows != 2 || cfg.Plot.Cols != 1 {
		t.Error("grid layout should survive a preset")
	}
	if cfg.ApplyPreset("missing") {
		t.Error("expected false for unknown preset")
	}
}
