package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "driftscene.toml")
	data := `
[particles]
count = 500

[overlay]
fit = "width"
fit_amount = 0.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 500 {
		t.Errorf("particle count = %d, want 500", cfg.Particles.Count)
	}
	if cfg.Overlay.Fit != "width" {
		t.Errorf("overlay fit = %q, want width", cfg.Overlay.Fit)
	}
	// Untouched sections keep defaults.
	if cfg.Crystal.FadeEnd != 0.2 {
		t.Errorf("crystal fade_end = %v, want 0.2", cfg.Crystal.FadeEnd)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "driftscene.toml")
	if err := os.WriteFile(path, []byte("[particles]\ncount = 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRIFTSCENE_PARTICLE_COUNT", "64")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 64 {
		t.Errorf("particle count = %d, want env override 64", cfg.Particles.Count)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "ZeroParticles",
			mutate:  func(c *Config) { c.Particles.Count = 0 },
			wantErr: "particle count",
		},
		{
			name:    "BadFit",
			mutate:  func(c *Config) { c.Overlay.Fit = "diagonal" },
			wantErr: "overlay fit",
		},
		{
			name:    "InvertedThresholds",
			mutate:  func(c *Config) { c.Overlay.ShowAt = 0.5 },
			wantErr: "show_at",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
