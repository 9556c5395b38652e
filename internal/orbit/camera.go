package orbit

import (
	"math"

	"github.com/iburimskiy/orbital/internal/config"
)

// Camera holds the view rotation and the pointer drag state that drives it.
type Camera struct {
	RotX float64
	RotY float64

	dragging     bool
	startX       float64
	startY       float64
	lastX, lastY float64
}

// Dragging reports whether a pointer is currently held down on the surface.
func (c *Camera) Dragging() bool {
	return c.dragging
}

func (c *Camera) PointerDown(x, y float64) {
	c.dragging = true
	c.startX, c.startY = x, y
	c.lastX, c.lastY = x, y
}

func (c *Camera) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.RotY += dx * config.DragSensitivity
	c.RotX -= dy * config.DragSensitivity
	c.lastX, c.lastY = x, y
}

// PointerUp ends the drag and reports whether the gesture was a click,
// i.e. the release landed within ClickThreshold of where it started.
func (c *Camera) PointerUp(x, y float64) bool {
	c.dragging = false
	return math.Hypot(x-c.startX, y-c.startY) < config.ClickThreshold
}

// Leave cancels a drag when the pointer exits the surface.
func (c *Camera) Leave() {
	c.dragging = false
}

// Reset restores the initial view.
func (c *Camera) Reset() {
	*c = Camera{}
}
