package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/orbital/internal/config"
	"github.com/iburimskiy/orbital/internal/orbit"
)

var _ orbit.Surface = (*screenSurface)(nil)

// screenSurface draws simulation frames onto an ebiten image.
type screenSurface struct {
	dst  *ebiten.Image
	game *Game
}

func (s *screenSurface) Fade(c color.NRGBA) {
	b := s.dst.Bounds()
	vector.DrawFilledRect(s.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *screenSurface) Clear() {
	s.dst.Fill(orbit.BackgroundColor)
}

func (s *screenSurface) Disc(x, y, r float64, c color.NRGBA, alpha float64) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), withAlpha(c, alpha), true)
}

func (s *screenSurface) Sprite(index int, x, y, size, alpha float64) bool {
	img := s.game.spriteImage(index)
	if img == nil {
		return false
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(w), size/float64(h))
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
	return true
}

func (s *screenSurface) Glow(x, y, r float64, c color.NRGBA) {
	img := s.game.glowImage(c)

	op := &ebiten.DrawImageOptions{}
	scale := r / config.GlowRadius
	op.GeoM.Translate(-config.GlowRadius, -config.GlowRadius)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	// Soundtrack loudness brightens the core
	op.ColorScale.ScaleAlpha(float32(1 + 1.5*s.game.level))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}

// spriteImage returns the GPU texture for image index once it has loaded.
func (g *Game) spriteImage(index int) *ebiten.Image {
	if gen := g.sprites.Generation(); gen != g.spriteGen {
		for _, img := range g.spriteImgs {
			if img != nil {
				img.Deallocate()
			}
		}
		g.spriteImgs = make([]*ebiten.Image, g.sprites.Len())
		g.spriteGen = gen
	}
	if index < 0 || index >= len(g.spriteImgs) {
		return nil
	}
	if g.spriteImgs[index] == nil {
		src, ok := g.sprites.Image(index)
		if !ok {
			return nil
		}
		g.spriteImgs[index] = ebiten.NewImageFromImage(src)
	}
	return g.spriteImgs[index]
}

// glowImage returns the radial gradient texture for c, rebuilt on theme change.
func (g *Game) glowImage(c color.NRGBA) *ebiten.Image {
	key := [4]uint8{c.R, c.G, c.B, c.A}
	if g.glowImg != nil && g.glowColor == key {
		return g.glowImg
	}
	if g.glowImg != nil {
		g.glowImg.Deallocate()
	}
	g.glowImg = ebiten.NewImageFromImage(radialGradient(int(config.GlowRadius), c))
	g.glowColor = key
	return g.glowImg
}
