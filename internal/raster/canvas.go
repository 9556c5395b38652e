// Package raster is a software orbit.Surface backed by an *image.RGBA,
// used for headless rendering and snapshots.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/iburimskiy/orbital/internal/orbit"
	"github.com/iburimskiy/orbital/internal/sprite"
)

var _ orbit.Surface = (*Canvas)(nil)

// Canvas holds the rendering target.
type Canvas struct {
	Img     *image.RGBA
	Sprites *sprite.Store // may be nil
}

// NewCanvas allocates a w×h canvas filled with the background color.
func NewCanvas(w, h int, sprites *sprite.Store) *Canvas {
	c := &Canvas{
		Img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		Sprites: sprites,
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(orbit.BackgroundColor), image.Point{}, draw.Src)
}

func (c *Canvas) Fade(col color.NRGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// Disc fills an antialiased circle, one pixel of soft edge.
func (c *Canvas) Disc(x, y, r float64, col color.NRGBA, alpha float64) {
	b := c.Img.Bounds()
	x0 := max(b.Min.X, int(math.Floor(x-r-1)))
	x1 := min(b.Max.X, int(math.Ceil(x+r+1)))
	y0 := max(b.Min.Y, int(math.Floor(y-r-1)))
	y1 := min(b.Max.Y, int(math.Ceil(y+r+1)))

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d := math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y)
			cover := clamp01(r + 0.5 - d)
			if cover > 0 {
				c.blend(px, py, col, alpha*cover)
			}
		}
	}
}

// Sprite stretches image index over a size×size square. Only the part that
// overlaps the canvas is sampled, so huge sprites near the camera stay cheap.
func (c *Canvas) Sprite(index int, x, y, size, alpha float64) bool {
	if c.Sprites == nil || math.IsNaN(size) || math.IsInf(size, 0) {
		return false
	}
	src, ok := c.Sprites.Image(index)
	if !ok {
		return false
	}

	s := max(1, int(math.Round(size)))
	x0 := int(math.Round(x - float64(s)/2))
	y0 := int(math.Round(y - float64(s)/2))
	dr := image.Rect(x0, y0, x0+s, y0+s)
	if dr.Intersect(c.Img.Bounds()).Empty() {
		return true
	}

	mask := image.NewUniform(color.Alpha{A: uint8(clamp01(alpha)*255 + 0.5)})
	draw.ApproxBiLinear.Scale(c.Img, dr, src, src.Bounds(), draw.Over, &draw.Options{DstMask: mask})
	return true
}

// Glow blends a linear radial falloff from col at the center to transparent at r.
func (c *Canvas) Glow(x, y, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	b := c.Img.Bounds()
	x0 := max(b.Min.X, int(math.Floor(x-r)))
	x1 := min(b.Max.X, int(math.Ceil(x+r)))
	y0 := max(b.Min.Y, int(math.Floor(y-r)))
	y1 := min(b.Max.Y, int(math.Ceil(y+r)))

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d := math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y)
			if d < r {
				c.blend(px, py, col, 1-d/r)
			}
		}
	}
}

// blend composites col, scaled by alpha, over the pixel at (x, y).
func (c *Canvas) blend(x, y int, col color.NRGBA, alpha float64) {
	a := float64(col.A) / 255 * clamp01(alpha)
	if a <= 0 {
		return
	}
	i := c.Img.PixOffset(x, y)
	pix := c.Img.Pix
	inv := 1 - a
	pix[i] = uint8(float64(col.R)*a + float64(pix[i])*inv + 0.5)
	pix[i+1] = uint8(float64(col.G)*a + float64(pix[i+1])*inv + 0.5)
	pix[i+2] = uint8(float64(col.B)*a + float64(pix[i+2])*inv + 0.5)
	pix[i+3] = uint8(255*a + float64(pix[i+3])*inv + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
