package orbit

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/orbital/internal/config"
)

// ThemeColor maps a normalized radius (0 = core, 1 = outer shell) to a particle color.
// Unknown themes use the cyan formula.
func ThemeColor(theme config.Theme, progress float64) color.NRGBA {
	var h, s, l float64
	switch theme {
	case config.ThemeFire:
		h, s, l = 30+progress*40, 1.0, 0.50+progress*0.30
	case config.ThemeMatrix:
		h, s, l = 120, 1.0, 0.30+progress*0.50
	case config.ThemeSpectrum:
		h, s, l = progress*360, 0.8, 0.60
	default:
		h, s, l = 180+progress*60, 1.0, 0.60+progress*0.20
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// GlowColor is the inner color of the core glow for a theme.
func GlowColor(theme config.Theme) color.NRGBA {
	switch theme {
	case config.ThemeFire:
		return color.NRGBA{R: 255, G: 100, B: 0, A: 102}
	case config.ThemeMatrix:
		return color.NRGBA{R: 0, G: 255, B: 100, A: 77}
	case config.ThemeSpectrum:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 77}
	default:
		return color.NRGBA{R: 0, G: 200, B: 255, A: 77}
	}
}

// TrailColor is painted over the previous frame when trails are on.
var TrailColor = color.NRGBA{R: 2, G: 6, B: 23, A: 51}

// BackgroundColor is the night-sky fill behind the particles.
var BackgroundColor = color.NRGBA{R: 2, G: 6, B: 23, A: 255}
