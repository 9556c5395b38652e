package orbit

import (
	"context"
	"time"
)

// Loop drives a Sim from an external tick source instead of a self-scheduling callback.
type Loop struct {
	Sim     *Sim
	Surface Surface

	// OnFrame, when set, runs after each rendered frame with the frame number.
	OnFrame func(n int)
}

// Run renders one frame per value received on ticks until ctx is done or ticks
// is closed. No frame is started after Run returns.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time) int {
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return frames
		case _, ok := <-ticks:
			if !ok {
				return frames
			}
			// Cancellation may race with a pending tick; cancellation wins.
			if ctx.Err() != nil {
				return frames
			}
			l.Sim.Tick(l.Surface)
			frames++
			if l.OnFrame != nil {
				l.OnFrame(frames)
			}
		}
	}
}
