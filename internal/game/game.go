package game

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/orbital/internal/audio"
	"github.com/iburimskiy/orbital/internal/config"
	"github.com/iburimskiy/orbital/internal/orbit"
	"github.com/iburimskiy/orbital/internal/snapshot"
	"github.com/iburimskiy/orbital/internal/sprite"
)

// Options configures the host outside of the simulation itself.
type Options struct {
	SnapshotDir string
	Music       string
}

// Game hosts the orbit simulation in an ebiten window.
type Game struct {
	sim     *orbit.Sim
	sprites *sprite.Store
	player  *audio.Player
	opts    Options

	// viz
	canvas  *ebiten.Image // persistent so trails can fade across frames
	surface *screenSurface
	level   float64

	// sprite textures, rebuilt when the store's generation changes
	spriteImgs []*ebiten.Image
	spriteGen  int

	glowImg   *ebiten.Image
	glowColor [4]uint8

	// input edge detection
	prevKey map[ebiten.Key]bool

	// pointer state
	mouseDown   bool
	swallow     bool // press that dismissed the overlay; ignore until release
	touchID     ebiten.TouchID
	touching    bool
	lastTouchX  int
	lastTouchY  int
	paused      bool
	lastErr     error
	lastStatus  string
	statusUntil time.Time
}

func New(sim *orbit.Sim, sprites *sprite.Store, player *audio.Player, opts Options) *Game {
	g := &Game{
		sim:       sim,
		sprites:   sprites,
		player:    player,
		opts:      opts,
		prevKey:   map[ebiten.Key]bool{},
		spriteGen: -1,
	}
	g.surface = &screenSurface{game: g}
	sprites.Load(sim.Config().ParticleImages)

	if opts.Music != "" {
		if err := player.Open(opts.Music); err != nil {
			g.lastErr = err
			log.Printf("game: %v", err)
		}
	}
	return g
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.player.Close()
		return ebiten.Termination
	}

	g.handleKeys(justPressed)
	g.handleMouse()
	g.handleTouch()

	if !g.paused {
		g.sim.Advance()
	}
	g.level = g.player.Level()

	return nil
}

func (g *Game) handleKeys(justPressed func(ebiten.Key) bool) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	cfg := g.sim.Config()
	changed := true

	switch {
	case justPressed(ebiten.KeyT):
		cfg.ShowTrails = !cfg.ShowTrails
	case justPressed(ebiten.KeyC):
		cfg.ColorTheme = cfg.ColorTheme.Next()
	case justPressed(ebiten.KeyArrowUp):
		cfg.ParticleCount = min(config.MaxParticles, cfg.ParticleCount*2)
	case justPressed(ebiten.KeyArrowDown):
		cfg.ParticleCount = max(config.MinParticles, cfg.ParticleCount/2)
	case justPressed(ebiten.KeyArrowRight):
		cfg.BaseSpeed += config.SpeedStep
	case justPressed(ebiten.KeyArrowLeft):
		cfg.BaseSpeed -= config.SpeedStep
	case justPressed(ebiten.KeyPageUp):
		cfg.BaseRadius += config.RadiusStep
	case justPressed(ebiten.KeyPageDown):
		cfg.BaseRadius = max(config.RadiusStep, cfg.BaseRadius-config.RadiusStep)
	case justPressed(ebiten.KeyX):
		cfg.PlaneRotation.X += rotationStep(shift)
	case justPressed(ebiten.KeyY):
		cfg.PlaneRotation.Y += rotationStep(shift)
	case justPressed(ebiten.KeyZ):
		cfg.PlaneRotation.Z += rotationStep(shift)
	case justPressed(ebiten.KeyO):
		if shift {
			cfg.ParticleImages = nil
		} else if paths, ok := g.pickImages(); ok {
			cfg.ParticleImages = append(cfg.ParticleImages, paths...)
		}
	default:
		changed = false
	}

	if changed {
		g.sim.Configure(cfg)
		g.sprites.Load(cfg.ParticleImages)
	}

	if justPressed(ebiten.KeyM) {
		g.openMusic()
	}
	if justPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if justPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyR) {
		g.sim.Camera().Reset()
	}
	if justPressed(ebiten.KeyS) {
		g.saveSnapshot()
	}
}

func rotationStep(shift bool) float64 {
	if shift {
		return -config.RotationStep
	}
	return config.RotationStep
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pointerDown(x, y)
		g.mouseDown = true
	}

	if g.mouseDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.outside(mx, my) || !ebiten.IsFocused() {
			g.sim.PointerLeave()
			g.mouseDown = false
			g.swallow = false
			return
		}
		g.sim.PointerMove(x, y)
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.mouseDown {
		g.mouseDown = false
		g.pointerUp(x, y)
	}
}

func (g *Game) handleTouch() {
	if !g.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return
		}
		g.touchID = ids[0]
		g.touching = true
		g.lastTouchX, g.lastTouchY = ebiten.TouchPosition(g.touchID)
		g.pointerDown(float64(g.lastTouchX), float64(g.lastTouchY))
		return
	}

	// Released touches report (0, 0), so the last known position is the release point
	if inpututil.IsTouchJustReleased(g.touchID) {
		g.touching = false
		g.pointerUp(float64(g.lastTouchX), float64(g.lastTouchY))
		return
	}

	g.lastTouchX, g.lastTouchY = ebiten.TouchPosition(g.touchID)
	g.sim.PointerMove(float64(g.lastTouchX), float64(g.lastTouchY))
}

func (g *Game) pointerDown(x, y float64) {
	if _, ok := g.sim.Selected(); ok {
		// Any click on the overlay dismisses it
		g.sim.ClearSelection()
		g.swallow = true
		return
	}
	g.sim.PointerDown(x, y)
}

func (g *Game) pointerUp(x, y float64) {
	if g.swallow {
		g.swallow = false
		return
	}
	if g.sim.PointerUp(x, y) {
		if err := g.player.Chime(); err != nil {
			log.Printf("game: chime: %v", err)
		}
	}
}

func (g *Game) outside(x, y int) bool {
	w, h := g.sim.Size()
	return x < 0 || y < 0 || x >= w || y >= h
}

func (g *Game) pickImages() ([]string, bool) {
	paths, err := zenity.SelectFileMultiple(
		zenity.Title("Choose Particle Images"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.bmp", "*.tga"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.lastErr = err
		}
		return nil, false
	}
	log.Printf("game: %d particle images chosen", len(paths))
	return paths, len(paths) > 0
}

func (g *Game) openMusic() {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.lastErr = err
		}
		return
	}
	if err := g.player.Open(filename); err != nil {
		g.lastErr = err
	}
}

func (g *Game) saveSnapshot() {
	if g.canvas == nil {
		return
	}
	b := g.canvas.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	g.canvas.ReadPixels(pix)

	path := filepath.Join(g.opts.SnapshotDir, snapshot.Name(time.Now()))
	if err := snapshot.Save(path, snapshot.FromRGBA(pix, b.Dx(), b.Dy())); err != nil {
		g.lastErr = err
		return
	}
	log.Printf("game: snapshot saved to %s", path)
	g.flash(fmt.Sprintf("Saved %s", path))
}

func (g *Game) flash(msg string) {
	g.lastStatus = msg
	g.statusUntil = time.Now().Add(3 * time.Second)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureCanvas(screen.Bounds().Dx(), screen.Bounds().Dy())
	if g.canvas == nil {
		return
	}

	g.surface.dst = g.canvas
	g.sim.Render(g.surface)
	screen.DrawImage(g.canvas, nil)

	g.drawOverlay(screen)
	g.drawHUD(screen)
}

func (g *Game) ensureCanvas(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if g.canvas != nil {
		b := g.canvas.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(w, h)
	g.canvas.Fill(orbit.BackgroundColor)
}

// Layout follows the window so the viewport always matches it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sim.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
