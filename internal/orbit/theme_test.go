package orbit

import (
	"testing"

	"github.com/iburimskiy/orbital/internal/config"
)

func TestThemeColorVaries(t *testing.T) {
	for _, theme := range []config.Theme{config.ThemeCyan, config.ThemeFire, config.ThemeMatrix, config.ThemeSpectrum} {
		if ThemeColor(theme, 0) == ThemeColor(theme, 0.5) {
			t.Errorf("%s: expected progress to change the color", theme)
		}
	}
	if ThemeColor(config.ThemeFire, 0) == ThemeColor(config.ThemeFire, 1) {
		t.Error("fire: progress 0 and 1 produced the same color")
	}
}

func TestThemeColorFallback(t *testing.T) {
	for _, p := range []float64{0, 0.3, 1} {
		if got, want := ThemeColor("plasma", p), ThemeColor(config.ThemeCyan, p); got != want {
			t.Errorf("progress %f: unknown theme gave %v, want cyan %v", p, got, want)
		}
	}
}

func TestThemeColorValues(t *testing.T) {
	// hsl(120, 100%, 30%) at progress 0
	if got := ThemeColor(config.ThemeMatrix, 0); got.G != 153 || got.R != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("matrix core: got %v", got)
	}
	// hsl(180, 100%, 60%) at progress 0
	if got := ThemeColor(config.ThemeCyan, 0); got.R != 51 || got.G != 255 || got.B != 255 {
		t.Errorf("cyan core: got %v", got)
	}
}

func TestGlowColor(t *testing.T) {
	if GlowColor("plasma") != GlowColor(config.ThemeCyan) {
		t.Error("unknown theme should use the cyan glow")
	}
	if GlowColor(config.ThemeFire) == GlowColor(config.ThemeMatrix) {
		t.Error("fire and matrix glows should differ")
	}
}
