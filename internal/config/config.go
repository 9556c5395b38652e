package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800

	// Orbit shells
	CoreRadius   = 80.0
	CoreFraction = 0.35

	// Camera interaction
	DragSensitivity = 0.005
	ClickThreshold  = 5.0

	// Hit testing
	BaseHitRadius  = 20.0
	HitSizeFactor  = 10.0
	SpriteSizeMult = 8.0

	// Core glow
	GlowRadius = 120.0

	// Keyboard steps
	SpeedStep    = 0.25
	RadiusStep   = 50.0
	RotationStep = 15.0
	MinParticles = 1
	MaxParticles = 64000

	// Sprites larger than this are downscaled on load
	MaxSpriteSize = 128

	// Audio
	SampleRate  = 44100
	LevelWindow = 2048 // samples per loudness reading
)

// Theme selects the particle color formula.
type Theme string

const (
	ThemeCyan     Theme = "cyan"
	ThemeFire     Theme = "fire"
	ThemeMatrix   Theme = "matrix"
	ThemeSpectrum Theme = "spectrum"
)

var themeOrder = []Theme{ThemeCyan, ThemeFire, ThemeMatrix, ThemeSpectrum}

// Next returns the theme after t in cycling order. Unknown themes restart at cyan.
func (t Theme) Next() Theme {
	for i, th := range themeOrder {
		if th == t {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return ThemeCyan
}

// Rotation is the global orbit-plane tilt in degrees, one angle per axis.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Config is everything the settings surface can change.
type Config struct {
	ParticleCount  int      `json:"particle_count"`
	BaseSpeed      float64  `json:"base_speed"`
	BaseRadius     float64  `json:"base_radius"`
	ColorTheme     Theme    `json:"color_theme"`
	ShowTrails     bool     `json:"show_trails"`
	Perspective    float64  `json:"perspective"`
	ParticleImages []string `json:"particle_images"`
	PlaneRotation  Rotation `json:"plane_rotation"`
}

// Default returns the configuration the app launches with.
func Default() Config {
	return Config{
		ParticleCount: 2000,
		BaseSpeed:     1.0,
		BaseRadius:    300,
		ColorTheme:    ThemeCyan,
		ShowTrails:    true,
		Perspective:   800,
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags carries command-line overrides. Zero values mean "not set".
type Flags struct {
	Particles   int
	Speed       float64
	Radius      float64
	Theme       string
	NoTrails    bool
	Perspective float64
	Images      []string
}

// Resolve applies command-line overrides. Flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Particles > 0 {
		c.ParticleCount = flags.Particles
	}
	if flags.Speed != 0 {
		c.BaseSpeed = flags.Speed
	}
	if flags.Radius > 0 {
		c.BaseRadius = flags.Radius
	}
	if flags.Theme != "" {
		c.ColorTheme = Theme(flags.Theme)
	}
	if flags.NoTrails {
		c.ShowTrails = false
	}
	if flags.Perspective > 0 {
		c.Perspective = flags.Perspective
	}
	if len(flags.Images) > 0 {
		c.ParticleImages = append(c.ParticleImages, flags.Images...)
	}
}
