package orbit

import (
	"image/color"
	"math"
	"slices"

	"github.com/iburimskiy/orbital/internal/config"
)

// Surface is a 2D drawing target for one frame.
type Surface interface {
	// Fade paints c over the whole surface, leaving a fading trail of the previous frame.
	Fade(c color.NRGBA)
	// Clear erases the surface.
	Clear()
	// Disc fills a circle of radius r centered on (x, y).
	Disc(x, y, r float64, c color.NRGBA, alpha float64)
	// Sprite draws image index as a size×size square centered on (x, y).
	// It returns false when the image is not available yet.
	Sprite(index int, x, y, size, alpha float64) bool
	// Glow draws a radial gradient from c at the center to transparent at radius r.
	Glow(x, y, r float64, c color.NRGBA)
}

// Selection is a snapshot of a clicked particle for the detail overlay.
type Selection struct {
	Speed      float64
	Radius     float64
	Color      color.NRGBA
	ImageIndex int
	Image      string // empty when no images are configured
}

// Sim owns the particle collection, the camera and the viewport.
// It is not safe for concurrent use; input and frames must run on one goroutine.
type Sim struct {
	cfg       config.Config
	rnd       Source
	particles []Particle
	camera    Camera

	width, height float64

	selected *Selection
}

// New creates a simulation with a freshly generated particle collection.
func New(cfg config.Config, rnd Source) *Sim {
	s := &Sim{cfg: cfg, rnd: rnd}
	s.cfg.ParticleImages = slices.Clone(cfg.ParticleImages)
	s.Reset()
	return s
}

// Config returns the active configuration.
func (s *Sim) Config() config.Config {
	return s.cfg
}

// Configure applies cfg. Particles are regenerated only when a field that
// shapes them changed; view-only fields apply from the next frame.
func (s *Sim) Configure(cfg config.Config) {
	imagesChanged := !slices.Equal(cfg.ParticleImages, s.cfg.ParticleImages)
	regen := cfg.ParticleCount != s.cfg.ParticleCount ||
		cfg.BaseSpeed != s.cfg.BaseSpeed ||
		cfg.BaseRadius != s.cfg.BaseRadius ||
		cfg.ColorTheme != s.cfg.ColorTheme ||
		imagesChanged

	// A selection refers to an entry of the old image list
	if imagesChanged {
		s.selected = nil
	}

	cfg.ParticleImages = slices.Clone(cfg.ParticleImages)
	s.cfg = cfg
	if regen {
		s.Reset()
	}
}

// Reset replaces the whole particle collection.
func (s *Sim) Reset() {
	ps := NewParticles(s.cfg, s.rnd)
	s.particles = ps
}

// Particles exposes the live collection.
func (s *Sim) Particles() []Particle {
	return s.particles
}

// Camera exposes the camera for inspection and reset.
func (s *Sim) Camera() *Camera {
	return &s.camera
}

// Resize sets the viewport. Particle state is kept.
func (s *Sim) Resize(w, h int) {
	s.width, s.height = float64(w), float64(h)
}

// Size returns the current viewport.
func (s *Sim) Size() (int, int) {
	return int(s.width), int(s.height)
}

// Advance moves every particle one tick along its orbit and projects it to the screen.
func (s *Sim) Advance() {
	cx, cy := s.width/2, s.height/2
	tiltX := Deg2Rad(s.cfg.PlaneRotation.X)
	tiltY := Deg2Rad(s.cfg.PlaneRotation.Y)
	tiltZ := Deg2Rad(s.cfg.PlaneRotation.Z)
	persp := s.cfg.Perspective

	for i := range s.particles {
		p := &s.particles[i]
		p.Angle += p.Speed

		pos := p.Position()

		// Global plane tilt, then camera orientation
		pos = pos.RotateZ(tiltZ).RotateX(tiltX).RotateY(tiltY)
		pos = pos.RotateY(s.camera.RotY).RotateX(s.camera.RotX)

		scale := persp / (persp + pos.Z)
		p.ScreenX = cx + pos.X*scale
		p.ScreenY = cy + pos.Y*scale
		p.Scale = scale
	}
}

// Render draws the projected particles and the core glow onto dst.
func (s *Sim) Render(dst Surface) {
	if dst == nil {
		return
	}

	if s.cfg.ShowTrails {
		dst.Fade(TrailColor)
	} else {
		dst.Clear()
	}

	imageCount := len(s.cfg.ParticleImages)
	for i := range s.particles {
		p := &s.particles[i]
		if p.Scale <= 0 {
			continue
		}
		alpha := math.Min(1, math.Max(0.1, p.Scale*p.Scale))

		if imageCount > 0 {
			size := p.Size * p.Scale * config.SpriteSizeMult
			if dst.Sprite(p.ImageIndex%imageCount, p.ScreenX, p.ScreenY, size, alpha) {
				continue
			}
		}
		dst.Disc(p.ScreenX, p.ScreenY, p.Size*p.Scale, p.Color, alpha)
	}

	// The core sits at z=0 where the perspective scale is always 1.
	dst.Glow(s.width/2, s.height/2, config.GlowRadius, GlowColor(s.cfg.ColorTheme))
}

// Tick runs one full frame. A nil surface skips the frame entirely.
func (s *Sim) Tick(dst Surface) {
	if dst == nil {
		return
	}
	s.Advance()
	s.Render(dst)
}

func (s *Sim) PointerDown(x, y float64) {
	s.camera.PointerDown(x, y)
}

func (s *Sim) PointerMove(x, y float64) {
	s.camera.PointerMove(x, y)
}

// PointerUp finishes a gesture. A click selects the frontmost particle under
// the pointer and returns true when one was found.
func (s *Sim) PointerUp(x, y float64) bool {
	if !s.camera.PointerUp(x, y) {
		return false
	}
	i, ok := HitTest(x, y, s.particles)
	if !ok {
		return false
	}
	s.selected = s.selection(&s.particles[i])
	return true
}

// PointerLeave cancels a drag without hit testing.
func (s *Sim) PointerLeave() {
	s.camera.Leave()
}

func (s *Sim) selection(p *Particle) *Selection {
	sel := &Selection{
		Speed:      p.Speed,
		Radius:     p.Radius(),
		Color:      p.Color,
		ImageIndex: p.ImageIndex,
	}
	if n := len(s.cfg.ParticleImages); n > 0 {
		sel.Image = s.cfg.ParticleImages[p.ImageIndex%n]
	}
	return sel
}

// Selected returns the current selection, if any.
func (s *Sim) Selected() (Selection, bool) {
	if s.selected == nil {
		return Selection{}, false
	}
	return *s.selected, true
}

// ClearSelection dismisses the detail overlay.
func (s *Sim) ClearSelection() {
	s.selected = nil
}
