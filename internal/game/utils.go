package game

import (
	"image"
	"image/color"
	"math"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha scales the alpha of c by a (0..1).
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(a) + 0.5)
	return c
}

// radialGradient renders a (2r)×(2r) disc fading linearly from c at the
// center to transparent at radius r.
func radialGradient(r int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2*r, 2*r))
	fr := float64(r)
	for y := 0; y < 2*r; y++ {
		for x := 0; x < 2*r; x++ {
			d := math.Hypot(float64(x)+0.5-fr, float64(y)+0.5-fr)
			if d >= fr {
				continue
			}
			img.SetNRGBA(x, y, withAlpha(c, 1-d/fr))
		}
	}
	return img
}
