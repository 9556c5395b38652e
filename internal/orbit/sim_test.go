package orbit

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/orbital/internal/config"
)

type disc struct {
	x, y, r, alpha float64
	c              color.NRGBA
}

type sprite struct {
	index             int
	x, y, size, alpha float64
}

// recorder is a Surface that remembers every call.
type recorder struct {
	fades   int
	clears  int
	discs   []disc
	sprites []sprite
	glows   int
	glowR   float64

	loaded map[int]bool
}

func (r *recorder) Fade(c color.NRGBA) {
	r.fades++
}

func (r *recorder) Clear() {
	r.clears++
}

func (r *recorder) Disc(x, y, rad float64, c color.NRGBA, alpha float64) {
	r.discs = append(r.discs, disc{x, y, rad, alpha, c})
}

func (r *recorder) Sprite(index int, x, y, size, alpha float64) bool {
	if !r.loaded[index] {
		return false
	}
	r.sprites = append(r.sprites, sprite{index, x, y, size, alpha})
	return true
}

func (r *recorder) Glow(x, y, rad float64, c color.NRGBA) {
	r.glows++
	r.glowR = rad
}

func newTestSim(ps ...Particle) *Sim {
	cfg := config.Default()
	cfg.ParticleCount = 0
	s := New(cfg, rand.New(rand.NewPCG(1, 1)))
	s.Resize(800, 600)
	s.particles = ps
	return s
}

func TestAdvanceOriginProjectsToCenter(t *testing.T) {
	s := newTestSim(Particle{Speed: 0.1})
	s.Camera().RotX, s.Camera().RotY = 0.7, -1.2
	s.Advance()

	p := s.Particles()[0]
	if p.Scale != 1 {
		t.Errorf("Expected scale 1 at z=0, got %f", p.Scale)
	}
	if p.ScreenX != 400 || p.ScreenY != 300 {
		t.Errorf("Expected screen center (400,300), got (%f,%f)", p.ScreenX, p.ScreenY)
	}
	if !near(p.Angle, 0.1) {
		t.Errorf("Expected angle advanced by speed, got %f", p.Angle)
	}
}

func TestAdvanceTiltOrder(t *testing.T) {
	s := newTestSim(Particle{U: Vec3{100, 0, 0}, V: Vec3{0, 100, 0}})
	cfg := s.Config()
	cfg.PlaneRotation = config.Rotation{X: 90, Z: 90}
	s.Configure(cfg)
	s.particles = []Particle{{U: Vec3{100, 0, 0}, V: Vec3{0, 100, 0}}}
	s.Advance()

	// Z first: (100,0,0) -> (0,100,0); then X: (0,100,0) -> (0,0,100)
	p := s.Particles()[0]
	wantScale := 800.0 / 900.0
	if !near(p.Scale, wantScale) {
		t.Errorf("Expected scale %f, got %f", wantScale, p.Scale)
	}
	if math.Abs(p.ScreenX-400) > 1e-6 || math.Abs(p.ScreenY-300) > 1e-6 {
		t.Errorf("Expected projection at center, got (%f,%f)", p.ScreenX, p.ScreenY)
	}
}

func TestAdvanceCameraAfterTilt(t *testing.T) {
	s := newTestSim(Particle{U: Vec3{100, 0, 0}})
	s.Camera().RotY = math.Pi / 2
	s.Advance()

	// Camera Y rotation takes +X into +Z
	p := s.Particles()[0]
	if !near(p.Scale, 800.0/900.0) {
		t.Errorf("Expected scale %f, got %f", 800.0/900.0, p.Scale)
	}
}

func TestRenderBackground(t *testing.T) {
	s := newTestSim()
	r := &recorder{}
	s.Render(r)
	if r.fades != 1 || r.clears != 0 {
		t.Errorf("Expected one fade with trails on, got fades=%d clears=%d", r.fades, r.clears)
	}

	cfg := s.Config()
	cfg.ShowTrails = false
	s.Configure(cfg)
	r = &recorder{}
	s.Render(r)
	if r.fades != 0 || r.clears != 1 {
		t.Errorf("Expected one clear with trails off, got fades=%d clears=%d", r.fades, r.clears)
	}
	if r.glows != 1 || r.glowR != 120 {
		t.Errorf("Expected one glow of radius 120, got %d of %f", r.glows, r.glowR)
	}
}

func TestRenderSkipsBehindCamera(t *testing.T) {
	s := newTestSim(
		Particle{U: Vec3{0, 0, -1600}, Size: 1},
		Particle{Size: 2, Color: color.NRGBA{R: 9, A: 255}},
	)
	r := &recorder{}
	s.Tick(r)

	if got := s.Particles()[0].Scale; got >= 0 {
		t.Errorf("Expected negative scale stored for hidden particle, got %f", got)
	}
	if len(r.discs) != 1 {
		t.Fatalf("Expected one disc, got %d", len(r.discs))
	}
	d := r.discs[0]
	if d.x != 400 || d.y != 300 || d.r != 2 || d.alpha != 1 || d.c.R != 9 {
		t.Errorf("Unexpected disc %+v", d)
	}
}

func TestRenderAlphaClamp(t *testing.T) {
	s := newTestSim(
		Particle{U: Vec3{0, 0, 800}, Size: 1},  // scale 0.5
		Particle{U: Vec3{0, 0, 7200}, Size: 1}, // scale 0.1
	)
	r := &recorder{}
	s.Tick(r)

	if len(r.discs) != 2 {
		t.Fatalf("Expected two discs, got %d", len(r.discs))
	}
	if !near(r.discs[0].alpha, 0.25) {
		t.Errorf("Expected alpha 0.25, got %f", r.discs[0].alpha)
	}
	if !near(r.discs[1].alpha, 0.1) {
		t.Errorf("Expected alpha clamped to 0.1, got %f", r.discs[1].alpha)
	}
}

func TestRenderSpriteFallback(t *testing.T) {
	s := newTestSim()
	cfg := s.Config()
	cfg.ParticleImages = []string{"a.png", "b.png"}
	s.Configure(cfg)
	s.particles = []Particle{
		{Size: 1, ImageIndex: 0},
		{Size: 1, ImageIndex: 3}, // wraps to 1, not loaded
	}

	r := &recorder{loaded: map[int]bool{0: true}}
	s.Tick(r)

	if len(r.sprites) != 1 || r.sprites[0].index != 0 || r.sprites[0].size != 8 {
		t.Errorf("Expected one 8px sprite for image 0, got %+v", r.sprites)
	}
	if len(r.discs) != 1 {
		t.Errorf("Expected a disc fallback for the unloaded image, got %d discs", len(r.discs))
	}
}

func TestTickNilSurface(t *testing.T) {
	s := newTestSim(Particle{Speed: 1})
	s.Tick(nil)
	if s.Particles()[0].Angle != 0 {
		t.Error("Expected a skipped frame to leave particles untouched")
	}
	s.Render(nil)
}

func TestConfigureRegenerates(t *testing.T) {
	cfg := config.Default()
	cfg.ParticleCount = 300
	s := New(cfg, rand.New(rand.NewPCG(2, 2)))
	if len(s.Particles()) != 300 {
		t.Fatalf("Expected 300 particles, got %d", len(s.Particles()))
	}

	cfg.ParticleCount = 120
	s.Configure(cfg)
	if len(s.Particles()) != 120 {
		t.Errorf("Expected 120 particles after reinit, got %d", len(s.Particles()))
	}

	cfg.ParticleCount = 450
	s.Configure(cfg)
	if len(s.Particles()) != 450 {
		t.Errorf("Expected 450 particles after reinit, got %d", len(s.Particles()))
	}

	before := &s.Particles()[0]
	cfg.ShowTrails = false
	cfg.Perspective = 500
	cfg.PlaneRotation.Y = 45
	s.Configure(cfg)
	if &s.Particles()[0] != before {
		t.Error("View-only change regenerated particles")
	}

	cfg.ParticleImages = []string{"x.png"}
	s.Configure(cfg)
	if &s.Particles()[0] == before {
		t.Error("Image list change did not regenerate particles")
	}
}

func TestResizeKeepsParticles(t *testing.T) {
	s := newTestSim(Particle{Angle: 1.25})
	s.Resize(1920, 1080)
	if w, h := s.Size(); w != 1920 || h != 1080 {
		t.Errorf("Expected 1920x1080, got %dx%d", w, h)
	}
	if s.Particles()[0].Angle != 1.25 {
		t.Error("Resize touched particle state")
	}
}

func TestPointerSelection(t *testing.T) {
	s := newTestSim(Particle{U: Vec3{3, 4, 0}, Speed: 0.02, Size: 5, ScreenX: 100, ScreenY: 100, Scale: 1})

	s.PointerDown(0, 0)
	if s.PointerUp(3, 4) {
		t.Error("Expected a 5px gesture to be a drag")
	}
	if _, ok := s.Selected(); ok {
		t.Error("Drag produced a selection")
	}

	s.PointerDown(100, 100)
	if !s.PointerUp(100, 102) {
		t.Fatal("Expected click to select the particle")
	}
	sel, ok := s.Selected()
	if !ok {
		t.Fatal("Expected a selection")
	}
	if sel.Speed != 0.02 || sel.Radius != 5 || sel.Image != "" {
		t.Errorf("Unexpected selection %+v", sel)
	}

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Error("Expected selection cleared")
	}
}

func TestPointerSelectionImage(t *testing.T) {
	s := newTestSim()
	cfg := s.Config()
	cfg.ParticleImages = []string{"a.png", "b.png"}
	s.Configure(cfg)
	s.particles = []Particle{{Size: 1, ImageIndex: 1, ScreenX: 50, ScreenY: 50, Scale: 1}}

	s.PointerDown(50, 50)
	s.PointerUp(50, 50)
	sel, ok := s.Selected()
	if !ok || sel.Image != "b.png" {
		t.Errorf("Expected selection with b.png, got %+v %v", sel, ok)
	}
}

func TestImageChangeClearsSelection(t *testing.T) {
	s := newTestSim()
	cfg := s.Config()
	cfg.ParticleImages = []string{"a.png", "b.png"}
	s.Configure(cfg)
	s.particles = []Particle{{Size: 1, ImageIndex: 1, ScreenX: 50, ScreenY: 50, Scale: 1}}

	s.PointerDown(50, 50)
	s.PointerUp(50, 50)
	if _, ok := s.Selected(); !ok {
		t.Fatal("Expected a selection")
	}

	cfg.ShowTrails = !cfg.ShowTrails
	s.Configure(cfg)
	if _, ok := s.Selected(); !ok {
		t.Error("View-only change dropped the selection")
	}

	cfg.ParticleImages = nil
	s.Configure(cfg)
	if sel, ok := s.Selected(); ok {
		t.Errorf("Expected selection dropped with the image list, got %+v", sel)
	}
}

func TestPointerLeaveSkipsHitTest(t *testing.T) {
	s := newTestSim(Particle{Size: 5, ScreenX: 10, ScreenY: 10, Scale: 1})
	s.PointerDown(10, 10)
	s.PointerLeave()
	if s.Camera().Dragging() {
		t.Error("Expected leave to stop the drag")
	}
	if _, ok := s.Selected(); ok {
		t.Error("Leave produced a selection")
	}
}
