package canopy

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.X != 400 || cam.Y != 300 {
		t.Errorf("center = (%f, %f), want (400, 300)", cam.X, cam.Y)
	}
}

func TestCameraIdentity(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	wx, wy := cam.ScreenToWorld(123, 45)
	if !approxEqual(wx, 123, epsilon) || !approxEqual(wy, 45, epsilon) {
		t.Errorf("ScreenToWorld(123,45) = (%f,%f), want (123,45)", wx, wy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2.0
	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 0, 0
	cam.Rotation = math.Pi / 2
	// Rotate(-π/2) maps (1,0)→(0,-1), then translate to viewport center.
	sx, sy := cam.WorldToScreen(1, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 299, epsilon) {
		t.Errorf("WorldToScreen(1,0) = (%f,%f), want (400,299)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.Rotation = 0.3

	sx, sy := cam.WorldToScreen(123, -456)
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 123, 1e-6) || !approxEqual(wy, -456, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (123,-456)", wx, wy)
	}
}

func TestCameraCacheInvalidatesOnFieldChange(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	before, _ := cam.ScreenToWorld(400, 300)
	cam.X += 10
	after, _ := cam.ScreenToWorld(400, 300)
	if !approxEqual(after-before, 10, epsilon) {
		t.Errorf("after moving camera, center maps to %f, want %f", after, before+10)
	}
}

func TestCameraInViewport(t *testing.T) {
	cam := NewCamera(Rect{X: 100, Y: 100, Width: 200, Height: 100})
	if !cam.InViewport(150, 150) {
		t.Error("point inside viewport should be in viewport")
	}
	if cam.InViewport(50, 150) {
		t.Error("point left of viewport should not be in viewport")
	}

	full := &Camera{Zoom: 1}
	if !full.InViewport(-1000, 1000) {
		t.Error("zero-size viewport should cover the whole screen")
	}
}

func TestScreenToWorldNilCamera(t *testing.T) {
	p := Vec2{12, 34}
	if got := screenToWorld(nil, p); got != p {
		t.Errorf("screenToWorld(nil) = %v, want %v", got, p)
	}
}
