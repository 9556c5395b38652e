package orbit

import (
	"math"

	"github.com/iburimskiy/orbital/internal/config"
)

// HitTest returns the index of the frontmost visible particle whose projected
// position lies within its tolerance radius of (x, y).
// The tolerance is max(20, size*scale*10) so tiny particles stay clickable.
func HitTest(x, y float64, ps []Particle) (int, bool) {
	hit := -1
	maxScale := math.Inf(-1)

	for i := range ps {
		p := &ps[i]
		if p.Scale <= 0 {
			continue
		}
		dist := math.Hypot(p.ScreenX-x, p.ScreenY-y)
		threshold := math.Max(config.BaseHitRadius, p.Size*p.Scale*config.HitSizeFactor)
		if dist < threshold && p.Scale > maxScale {
			maxScale = p.Scale
			hit = i
		}
	}

	return hit, hit >= 0
}
