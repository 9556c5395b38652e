package orbit

import "testing"

func TestCameraDragRotates(t *testing.T) {
	var c Camera
	c.PointerDown(100, 100)
	c.PointerMove(120, 90)

	if !near(c.RotY, 20*0.005) {
		t.Errorf("Expected RotY %f, got %f", 20*0.005, c.RotY)
	}
	if !near(c.RotX, 10*0.005) {
		t.Errorf("Expected RotX %f, got %f", 10*0.005, c.RotX)
	}

	// Deltas are taken from the last position, not the start
	c.PointerMove(130, 90)
	if !near(c.RotY, 30*0.005) {
		t.Errorf("Expected RotY %f after second move, got %f", 30*0.005, c.RotY)
	}

	if c.PointerUp(130, 90) {
		t.Error("Expected a 30px gesture to be a drag")
	}
	if c.Dragging() {
		t.Error("Expected idle after pointer up")
	}
}

func TestCameraMoveWhileIdle(t *testing.T) {
	var c Camera
	c.PointerMove(500, 500)
	if c.RotX != 0 || c.RotY != 0 {
		t.Errorf("Idle move rotated the camera: %+v", c)
	}
}

func TestCameraClickThreshold(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		click bool
	}{
		{"distance 5 is a drag", 3, 4, false},
		{"distance 3 is a click", 0, 3, true},
		{"no movement is a click", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Camera
			c.PointerDown(0, 0)
			if got := c.PointerUp(tt.x, tt.y); got != tt.click {
				t.Errorf("PointerUp(%f, %f) click = %v, want %v", tt.x, tt.y, got, tt.click)
			}
		})
	}
}

func TestCameraLeave(t *testing.T) {
	var c Camera
	c.PointerDown(10, 10)
	c.Leave()
	if c.Dragging() {
		t.Error("Expected leave to end the drag")
	}
	c.PointerMove(50, 50)
	if c.RotY != 0 {
		t.Errorf("Move after leave rotated the camera: %f", c.RotY)
	}
}

func TestCameraReset(t *testing.T) {
	c := Camera{RotX: 1, RotY: 2}
	c.PointerDown(1, 1)
	c.Reset()
	if c.RotX != 0 || c.RotY != 0 || c.Dragging() {
		t.Errorf("Expected zero camera after reset, got %+v", c)
	}
}

func TestHitTest(t *testing.T) {
	ps := []Particle{{ScreenX: 100, ScreenY: 100, Scale: 1, Size: 5}}

	if i, ok := HitTest(100, 100, ps); !ok || i != 0 {
		t.Errorf("Expected hit on particle 0, got %d %v", i, ok)
	}
	if _, ok := HitTest(200, 200, ps); ok {
		t.Error("Expected miss at distance 141")
	}
	// Tolerance is size*scale*10 = 50 here
	if _, ok := HitTest(140, 100, ps); !ok {
		t.Error("Expected hit at distance 40")
	}
}

func TestHitTestPrefersFront(t *testing.T) {
	ps := []Particle{
		{ScreenX: 100, ScreenY: 100, Scale: 0.8, Size: 1},
		{ScreenX: 105, ScreenY: 100, Scale: 1.4, Size: 1},
		{ScreenX: 98, ScreenY: 100, Scale: 1.1, Size: 1},
	}
	if i, ok := HitTest(100, 100, ps); !ok || i != 1 {
		t.Errorf("Expected the largest-scale particle 1, got %d %v", i, ok)
	}
}

func TestHitTestSkipsHidden(t *testing.T) {
	ps := []Particle{
		{ScreenX: 100, ScreenY: 100, Scale: 0, Size: 1},
		{ScreenX: 100, ScreenY: 100, Scale: -2, Size: 1},
	}
	if _, ok := HitTest(100, 100, ps); ok {
		t.Error("Expected particles behind the projection plane to be ignored")
	}
	if _, ok := HitTest(0, 0, nil); ok {
		t.Error("Expected miss on empty collection")
	}
}

func TestHitTestTieKeepsFirst(t *testing.T) {
	ps := []Particle{
		{ScreenX: 100, ScreenY: 100, Scale: 1, Size: 1},
		{ScreenX: 101, ScreenY: 100, Scale: 1, Size: 1},
	}
	if i, _ := HitTest(100, 100, ps); i != 0 {
		t.Errorf("Expected first particle on exact tie, got %d", i)
	}
}
