package canopy

import "math"

// Camera maps between screen space and the world space a raycaster tests
// against: position, zoom, rotation, and viewport. Depth orders cameras when
// hits from several raycasters compete; the higher depth wins.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// Depth is the camera's draw order.
	Depth float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	cachedFor     cameraParams
	valid         bool
}

type cameraParams struct {
	x, y, zoom, rotation float64
	viewport             Rect
}

// NewCamera creates a Camera centered on the viewport's middle with no zoom.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.Width / 2,
		Y:        viewport.Height / 2,
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// computeViewMatrix recomputes the cached view matrix when any camera field
// changed since the last call.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	p := cameraParams{c.X, c.Y, c.Zoom, c.Rotation, c.Viewport}
	if c.valid && p == c.cachedFor {
		return c.viewMatrix
	}
	c.cachedFor = p
	c.valid = true

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix, _ = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	m := c.computeViewMatrix()
	return transformPoint(m, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// InViewport reports whether a screen point lies inside the camera's
// viewport. A zero-size viewport covers the whole screen.
func (c *Camera) InViewport(sx, sy float64) bool {
	if c.Viewport.Width == 0 && c.Viewport.Height == 0 {
		return true
	}
	return c.Viewport.Contains(sx, sy)
}

// screenToWorld converts a screen point through cam, or returns it unchanged
// for a nil camera.
func screenToWorld(cam *Camera, p Vec2) Vec2 {
	if cam == nil {
		return p
	}
	x, y := cam.ScreenToWorld(p.X, p.Y)
	return Vec2{x, y}
}
