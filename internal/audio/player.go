// Package audio plays an optional soundtrack whose loudness drives the core
// glow, and a short chime when a particle is selected.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/orbital/internal/config"
)

const smoothingFactor = 0.6

// ErrUnsupported is returned for files that are not WAV, MP3 or FLAC.
var ErrUnsupported = errors.New("audio: unsupported file type")

// Player owns the speaker and at most one soundtrack.
type Player struct {
	mu       sync.Mutex
	initDone bool

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	ctrl        *beep.Ctrl
	tap         *Tap
	paused      bool

	meter Meter
}

func NewPlayer() *Player {
	return &Player{meter: Meter{Smoothing: smoothingFactor}}
}

// init opens the speaker once at the fixed output rate; tracks are resampled to it.
func (p *Player) init() error {
	if p.initDone {
		return nil
	}
	sr := beep.SampleRate(config.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	p.initDone = true
	return nil
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// Open stops the current soundtrack and plays path once.
func (p *Player) Open(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.init(); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("audio: open %s: %w", path, err)
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("audio: decode %s: %w", path, err)
	}

	p.stopLocked()

	var src beep.Streamer = streamer
	if format.SampleRate != beep.SampleRate(config.SampleRate) {
		src = beep.Resample(4, format.SampleRate, beep.SampleRate(config.SampleRate), streamer)
	}
	t := NewTap(src, config.LevelWindow)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	p.currentFile = f
	p.streamer = streamer
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.meter.Reset()

	log.Printf("audio: playing %s (%d Hz)", filepath.Base(path), format.SampleRate)
	// The callback runs under the speaker lock; finish elsewhere.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.finished(ctrl)
	})))

	return nil
}

func (p *Player) finished(ctrl *beep.Ctrl) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == ctrl {
		p.closeLocked()
	}
}

// TogglePause pauses or resumes the soundtrack. No-op without one.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Playing reports whether a soundtrack is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.paused
}

// Level advances the meter from the soundtrack and returns the glow level in 0..1.
// Call it once per frame.
func (p *Player) Level() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tap == nil || p.paused {
		return p.meter.Update(0)
	}
	return p.meter.Update(p.tap.RMS())
}

// Chime plays a short decaying tone.
func (p *Player) Chime() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.init(); err != nil {
		return err
	}
	speaker.Play(Chime(beep.SampleRate(config.SampleRate), 880, 120*time.Millisecond))
	return nil
}

// Close stops playback and releases the file.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.initDone {
		speaker.Clear()
	}
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.paused = false
}

// Chime returns a sine tone at freq Hz with a linear fade-out over d.
func Chime(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sr)
			env := 1 - float64(pos)/float64(total)
			v := math.Sin(2*math.Pi*freq*t) * env * 0.25
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}
