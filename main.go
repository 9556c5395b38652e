package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/orbital/internal/audio"
	"github.com/iburimskiy/orbital/internal/config"
	"github.com/iburimskiy/orbital/internal/game"
	"github.com/iburimskiy/orbital/internal/orbit"
	"github.com/iburimskiy/orbital/internal/raster"
	"github.com/iburimskiy/orbital/internal/snapshot"
	"github.com/iburimskiy/orbital/internal/sprite"
)

func main() {
	log.SetFlags(log.Ltime)

	var (
		configPath  = flag.String("config", "", "JSON config file")
		particles   = flag.Int("particles", 0, "particle count")
		speed       = flag.Float64("speed", 0, "base angular speed")
		radius      = flag.Float64("radius", 0, "base orbit radius")
		theme       = flag.String("theme", "", "color theme: cyan, fire, matrix, spectrum")
		noTrails    = flag.Bool("no-trails", false, "clear every frame instead of fading")
		perspective = flag.Float64("perspective", 0, "perspective distance")
		music       = flag.String("music", "", "soundtrack to play (wav, mp3, flac)")
		snapDir     = flag.String("snapshots", ".", "directory for snapshots")
		headless    = flag.Bool("headless", false, "render without a window and write one snapshot")
		frames      = flag.Int("frames", 120, "frames to render in headless mode")
		width       = flag.Int("width", config.WindowWidth, "viewport width")
		height      = flag.Int("height", config.WindowHeight, "viewport height")
		out         = flag.String("out", "orbital.webp", "headless output file")
	)
	var images []string
	flag.Func("image", "particle image path or data URL (repeatable)", func(s string) error {
		images = append(images, s)
		return nil
	})
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.Resolve(config.Flags{
		Particles:   *particles,
		Speed:       *speed,
		Radius:      *radius,
		Theme:       *theme,
		NoTrails:    *noTrails,
		Perspective: *perspective,
		Images:      images,
	})

	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	sim := orbit.New(cfg, rnd)
	sprites := sprite.NewStore(config.MaxSpriteSize)

	if *headless {
		if err := runHeadless(sim, sprites, *width, *height, *frames, *out); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Orbital - drag to rotate, click a particle, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	player := audio.NewPlayer()
	defer player.Close()

	g := game.New(sim, sprites, player, game.Options{SnapshotDir: *snapDir, Music: *music})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// runHeadless renders frames ticks on the software surface and writes the last one.
func runHeadless(sim *orbit.Sim, sprites *sprite.Store, w, h, frames int, out string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sprites.Load(sim.Config().ParticleImages)
	sprites.Wait()

	sim.Resize(w, h)
	canvas := raster.NewCanvas(w, h, sprites)
	canvas.Clear()

	ticks := make(chan time.Time)
	go func() {
		defer close(ticks)
		for i := 0; i < frames; i++ {
			select {
			case ticks <- time.Now():
			case <-ctx.Done():
				return
			}
		}
	}()

	loop := &orbit.Loop{Sim: sim, Surface: canvas}
	start := time.Now()
	n := loop.Run(ctx, ticks)
	log.Printf("orbital: rendered %d frames in %s", n, time.Since(start).Round(time.Millisecond))

	if err := snapshot.Save(out, canvas.Img); err != nil {
		return err
	}
	log.Printf("orbital: wrote %s", out)
	return nil
}
