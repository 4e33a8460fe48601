package canopy

// TouchPhase is the lifecycle stage of a touch sample.
type TouchPhase uint8

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchStationary
	TouchEnded
	TouchCanceled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchBegan:
		return "Began"
	case TouchMoved:
		return "Moved"
	case TouchStationary:
		return "Stationary"
	case TouchEnded:
		return "Ended"
	case TouchCanceled:
		return "Canceled"
	}
	return "Unknown"
}

// TouchType distinguishes direct screen touches from indirect ones (for
// example a remote trackpad). Pointer modules ignore indirect touches.
type TouchType uint8

const (
	TouchDirect TouchType = iota
	TouchIndirect
	TouchStylus
)

// Touch is one finger sample for the current frame.
type Touch struct {
	FingerID int
	Position Vec2
	Phase    TouchPhase
	Type     TouchType
}

// Input is the raw device state an input module reads each frame. Button
// edges (MouseButtonDown, MouseButtonUp, ButtonDown) are true only on the
// frame the transition happened.
type Input interface {
	MousePresent() bool
	MousePosition() Vec2
	MouseScrollDelta() Vec2
	MouseButton(b InputButton) bool
	MouseButtonDown(b InputButton) bool
	MouseButtonUp(b InputButton) bool

	TouchSupported() bool
	TouchCount() int
	Touch(i int) Touch

	// AxisRaw returns the value of a named axis in [-1, 1].
	AxisRaw(name string) float64
	// ButtonDown reports a press edge of a named virtual button.
	ButtonDown(name string) bool

	// CursorLocked reports whether the cursor is captured by the window.
	// Locked pointers generate no hover or drag events.
	CursorLocked() bool
}

// FramePoller is implemented by Input sources that must sample the device
// once per frame. The EventSystem polls registered pollers at the start of
// every Update, before modules run.
type FramePoller interface {
	Poll()
}
