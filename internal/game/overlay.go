package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/orbital/internal/orbit"
)

const charWidth = 6 // debug font glyph width

// drawOverlay shows the selected particle full-screen until dismissed.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	sel, ok := g.sim.Selected()
	if !ok {
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cx, cy := float64(w)/2, float64(h)/2-30

	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{R: 2, G: 6, B: 23, A: 204}, false)

	if !g.drawSelectedImage(screen, sel, cx, cy, math.Min(float64(w), float64(h))*0.6) {
		// Pulsing orb in the particle's color
		pulse := 0.85 + 0.15*math.Sin(float64(time.Now().UnixMilli())/300)
		for i := 4; i >= 1; i-- {
			r := 128 * (1 + 0.15*float64(i))
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), withAlpha(sel.Color, 0.08*pulse), true)
		}
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), 128, withAlpha(sel.Color, pulse), true)
	}

	textY := int(cy) + 180
	lines := []string{
		"Particle Details",
		fmt.Sprintf("Speed: %.4f    Orbit Radius: %.0f", sel.Speed, sel.Radius),
		"Click anywhere to close",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(cx)-len(line)*charWidth/2, textY+i*20)
	}
}

// drawSelectedImage fits the particle's image into a box of side box.
func (g *Game) drawSelectedImage(screen *ebiten.Image, sel orbit.Selection, cx, cy, box float64) bool {
	if sel.Image == "" {
		return false
	}
	n := g.sprites.Len()
	if n == 0 {
		return false
	}
	i := sel.ImageIndex % n
	if g.sprites.Ref(i) != sel.Image {
		return false
	}
	img := g.spriteImage(i)
	if img == nil {
		return false
	}

	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := math.Min(box/iw, box/ih)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-iw*scale/2, cy-ih*scale/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
	return true
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	cfg := g.sim.Config()
	trails := "off"
	if cfg.ShowTrails {
		trails = "on"
	}

	status := fmt.Sprintf("Particles: %d  Speed: %.2f  Radius: %.0f  Theme: %s  Trails: %s  Tilt: %.0f/%.0f/%.0f  FPS: %.0f",
		len(g.sim.Particles()), cfg.BaseSpeed, cfg.BaseRadius, cfg.ColorTheme, trails,
		cfg.PlaneRotation.X, cfg.PlaneRotation.Y, cfg.PlaneRotation.Z, ebiten.ActualFPS())
	if n := len(cfg.ParticleImages); n > 0 {
		status += fmt.Sprintf("  Images: %d", n)
	}
	if g.player.Playing() {
		status += "  Soundtrack: playing"
	}
	if g.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	help := "Drag: rotate  Click: inspect  T trails  C theme  Up/Down count  Left/Right speed  PgUp/PgDn radius  X/Y/Z tilt  O images  M music  S snapshot  R reset  Q quit"
	ebitenutil.DebugPrintAt(screen, help, 12, screen.Bounds().Dy()-24)

	line := ""
	if time.Now().Before(g.statusUntil) {
		line = g.lastStatus
	}
	if g.lastErr != nil {
		line = "Error: " + g.lastErr.Error()
	}
	if line != "" {
		ebitenutil.DebugPrintAt(screen, line, 12, 30)
	}
}
