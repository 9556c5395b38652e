package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through while keeping the loudness of the most recent
// window of samples. Only squared mono values are kept, with a running sum,
// so RMS is O(1) on the render goroutine.
type Tap struct {
	Source  beep.Streamer
	squares []float64
	next    int
	sum     float64
	mu      sync.Mutex
}

// NewTap measures over the last window samples. Unfilled slots count as silence.
func NewTap(src beep.Streamer, window int) *Tap {
	return &Tap{
		Source:  src,
		squares: make([]float64, max(1, window)),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n <= 0 {
		return n, ok
	}

	t.mu.Lock()
	for _, s := range samples[:n] {
		mono := (s[0] + s[1]) * 0.5
		sq := mono * mono
		t.sum += sq - t.squares[t.next]
		t.squares[t.next] = sq
		t.next = (t.next + 1) % len(t.squares)
	}
	// Resum once per lap so rounding error cannot accumulate
	if t.next < n {
		t.sum = 0
		for _, sq := range t.squares {
			t.sum += sq
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// RMS returns the root mean square of the window, mixed to mono.
func (t *Tap) RMS() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return math.Sqrt(math.Max(0, t.sum) / float64(len(t.squares)))
}

// Meter turns raw RMS readings into a smoothed, compressed 0..1 level for visuals.
type Meter struct {
	Smoothing float64
	level     float64
}

// Update feeds one reading and returns the new level.
func (m *Meter) Update(rms float64) float64 {
	mag := math.Pow(math.Max(0, rms), 0.3)
	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	if m.level > 1 {
		m.level = 1
	}
	return m.level
}

func (m *Meter) Level() float64 {
	return m.level
}

func (m *Meter) Reset() {
	m.level = 0
}
