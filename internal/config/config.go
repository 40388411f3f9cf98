// Package config loads driftscene settings from an optional TOML file with
// environment variable overrides. All values have working defaults so the
// scene runs with no configuration at all.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration.
type Config struct {
	Window    Window    `toml:"window"`
	Scroll    Scroll    `toml:"scroll"`
	Particles Particles `toml:"particles"`
	Camera    Camera    `toml:"camera"`
	Crystal   Crystal   `toml:"crystal"`
	Overlay   Overlay   `toml:"overlay"`
	Assets    Assets    `toml:"assets"`
	Preview   Preview   `toml:"preview"`
}

type Window struct {
	Width  int    `toml:"width" env:"DRIFTSCENE_WINDOW_WIDTH"`
	Height int    `toml:"height" env:"DRIFTSCENE_WINDOW_HEIGHT"`
	Title  string `toml:"title"`
}

// Scroll describes the virtual page the scroll wheel moves through.
// PageHeight plays the role a document's scrollHeight plays in a browser.
type Scroll struct {
	PageHeight float64 `toml:"page_height"`
	WheelSpeed float64 `toml:"wheel_speed"`
}

type Particles struct {
	Count int   `toml:"count" env:"DRIFTSCENE_PARTICLE_COUNT"`
	Seed  int64 `toml:"seed"`

	// SmoothingRate is the exponential approach rate toward blend targets,
	// in 1/seconds. 4.35 reproduces a 0.07 per-frame factor at 60 FPS.
	SmoothingRate float64 `toml:"smoothing_rate"`

	RepelRadius   float64 `toml:"repel_radius"`
	RepelStrength float64 `toml:"repel_strength"`
}

type Camera struct {
	FOVDegrees float64 `toml:"fov_degrees"`
	Near       float64 `toml:"near"`
	Far        float64 `toml:"far"`
}

type Crystal struct {
	// FadeEnd is the scroll fraction at which the crystal is fully
	// transparent. Opacity is 1 - progress/FadeEnd, clamped.
	FadeEnd   float64 `toml:"fade_end"`
	SpinSpeed float64 `toml:"spin_speed"`
}

type Overlay struct {
	ShowAt    float64 `toml:"show_at"`
	FullAt    float64 `toml:"full_at"`
	FadeRate  float64 `toml:"fade_rate"`
	Fit       string  `toml:"fit"` // "height" or "width"
	FitAmount float64 `toml:"fit_amount"`
	OffsetX   float64 `toml:"offset_x"`
	OffsetY   float64 `toml:"offset_y"`
	ZOrder    int     `toml:"z_order"`
	SpinSpeed float64 `toml:"spin_speed"`

	// Header rectangle as fractions of the window, the stand-in for the
	// page header element the overlay tracks.
	HeaderX float64 `toml:"header_x"`
	HeaderY float64 `toml:"header_y"`
	HeaderW float64 `toml:"header_w"`
	HeaderH float64 `toml:"header_h"`
}

type Assets struct {
	Crystal string `toml:"crystal" env:"DRIFTSCENE_CRYSTAL"`
	Overlay string `toml:"overlay" env:"DRIFTSCENE_OVERLAY"`
	EnvMap  string `toml:"env_map" env:"DRIFTSCENE_ENV_MAP"`
}

// Preview, when Path is set, dumps a headless projection of the particle
// field to a PNG at startup and exits. Useful on machines without GL.
type Preview struct {
	Path string `toml:"path" env:"DRIFTSCENE_PREVIEW"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Driftscene"},
		Scroll: Scroll{PageHeight: 4000, WheelSpeed: 60},
		Particles: Particles{
			Count:         1500,
			Seed:          1,
			SmoothingRate: 4.35,
			RepelRadius:   1.2,
			RepelStrength: 0.35,
		},
		Camera:  Camera{FOVDegrees: 45, Near: 0.1, Far: 100},
		Crystal: Crystal{FadeEnd: 0.2, SpinSpeed: 0.4},
		Overlay: Overlay{
			ShowAt:    0.02,
			FullAt:    0.12,
			FadeRate:  8,
			Fit:       "height",
			FitAmount: 0.8,
			ZOrder:    1,
			SpinSpeed: 0.6,
			HeaderX:   0.1,
			HeaderY:   0.04,
			HeaderW:   0.8,
			HeaderH:   0.18,
		},
		Assets: Assets{
			Crystal: "assets/crystal.glb",
			Overlay: "assets/overlay.glb",
			EnvMap:  "assets/studio.hdr",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path if
// path is non-empty, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Path returns the config file location from DRIFTSCENE_CONFIG, or "".
func Path() string {
	return os.Getenv("DRIFTSCENE_CONFIG")
}

func (c Config) validate() error {
	if c.Particles.Count <= 0 {
		return fmt.Errorf("config: particle count must be positive, got %d", c.Particles.Count)
	}
	if c.Overlay.Fit != "height" && c.Overlay.Fit != "width" {
		return fmt.Errorf("config: overlay fit must be %q or %q, got %q", "height", "width", c.Overlay.Fit)
	}
	if c.Overlay.ShowAt >= c.Overlay.FullAt {
		return fmt.Errorf("config: overlay show_at (%v) must be below full_at (%v)", c.Overlay.ShowAt, c.Overlay.FullAt)
	}
	return nil
}
