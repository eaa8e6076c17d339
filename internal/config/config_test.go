package config

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "dipole" {
		t.Errorf("expected dipole, got %s", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Domain.BoundaryCells() != DefaultNX/8 {
		t.Errorf("boundary = %d, want nx/8", cfg.Domain.BoundaryCells())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quadrupole")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Charges) != 4 {
		t.Errorf("expected 4 charges, got %d", len(cfg.Charges))
	}

	cfg.Charges[0].X = -1
	if Presets["quadrupole"].Charges[0].X == -1 {
		t.Error("GetPreset returned the shared preset instead of a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	for _, want := range []string{"dipole", "single", "quadrupole", "orbit"} {
		if !slices.Contains(names, want) {
			t.Errorf("preset %q missing from %v", want, names)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("presets not sorted: %v", names)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero dt", func(c *Config) { c.Dt = 0 }, true},
		{"negative duration", func(c *Config) { c.Duration = -1 }, true},
		{"empty grid", func(c *Config) { c.Domain.NX = 0 }, true},
		{"charge outside", func(c *Config) { c.Charges[0].X = 900 }, true},
		{"no charges", func(c *Config) { c.Charges = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Domain.XMax = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidGeometry) {
		t.Errorf("Validate() = %v, want ErrInvalidGeometry", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("drag")
	cfg.Domain.Boundary = 6

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Name != "drag" || got.Domain.Boundary != 6 || got.Dt != cfg.Dt {
		t.Errorf("loaded %+v", got)
	}
	if len(got.Charges) != 2 || len(got.Charges[0].Motion.Waypoints) != 3 {
		t.Fatalf("charges not restored: %+v", got.Charges)
	}
	if got.Charges[1].Motion.Type != "" {
		t.Errorf("static charge gained motion %q", got.Charges[1].Motion.Type)
	}
	if !slices.Equal(got.Levels, cfg.Levels) {
		t.Errorf("levels = %v, want %v", got.Levels, cfg.Levels)
	}
}

func TestChargeSet(t *testing.T) {
	got := GetPreset("dipole").ChargeSet()
	want := []dynamo.Charge{{X: 300, Y: 300, Strength: 1}, {X: 500, Y: 300, Strength: -1}}
	if !slices.Equal(got, want) {
		t.Errorf("ChargeSet() = %v, want %v", got, want)
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		value float64
		check func(*Config) bool
	}{
		{"dt", 0.5, func(c *Config) bool { return c.Dt == 0.5 }},
		{"duration", 20, func(c *Config) bool { return c.Duration == 20 }},
		{"nx", 31.6, func(c *Config) bool { return c.Domain.NX == 32 }},
		{"boundary", 4, func(c *Config) bool { return c.Domain.BoundaryCells() == 4 }},
		{"probe_y", 100, func(c *Config) bool { return c.Probe.Y == 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cfg.SetParam(tt.name, tt.value); err != nil {
				t.Fatalf("SetParam() error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("%s = %v not applied", tt.name, tt.value)
			}
		})
	}

	if err := cfg.SetParam("gravity", 9.8); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if len(ParamNames()) != len(params) {
		t.Error("ParamNames() missing entries")
	}
}
