package canopy

import "math"

// Vec2 is a 2D vector used for positions, deltas, and directions throughout
// the API. Screen space has its origin at the top-left with Y increasing
// downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// SqrMagnitude returns the squared length of v.
func (v Vec2) SqrMagnitude() float64 { return v.X*v.X + v.Y*v.Y }

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float64 { return math.Sqrt(v.SqrMagnitude()) }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// EventType identifies a kind of delivered UI event.
type EventType uint8

const (
	EventPointerEnter            EventType = iota // pointer entered a node or one of its descendants
	EventPointerExit                              // pointer left a node and all of its descendants
	EventPointerDown                              // pointer pressed over a node
	EventPointerUp                                // pointer released after pressing a node
	EventPointerClick                             // press and release over the same node
	EventInitializePotentialDrag                  // a drag target was found at press time
	EventBeginDrag                                // movement exceeded the drag threshold
	EventDrag                                     // every moving frame while dragging
	EventEndDrag                                  // release after dragging
	EventDrop                                     // release over a node while dragging something
	EventScroll                                   // wheel delta over a node
	EventUpdateSelected                           // once per frame to the selected node
	EventSelect                                   // node became the selection
	EventDeselect                                 // node stopped being the selection
	EventMove                                     // navigation direction (keyboard, gamepad)
	EventSubmit                                   // submit button pressed
	EventCancel                                   // cancel button pressed
)

var eventTypeNames = [...]string{
	EventPointerEnter:            "PointerEnter",
	EventPointerExit:             "PointerExit",
	EventPointerDown:             "PointerDown",
	EventPointerUp:               "PointerUp",
	EventPointerClick:            "PointerClick",
	EventInitializePotentialDrag: "InitializePotentialDrag",
	EventBeginDrag:               "BeginDrag",
	EventDrag:                    "Drag",
	EventEndDrag:                 "EndDrag",
	EventDrop:                    "Drop",
	EventScroll:                  "Scroll",
	EventUpdateSelected:          "UpdateSelected",
	EventSelect:                  "Select",
	EventDeselect:                "Deselect",
	EventMove:                    "Move",
	EventSubmit:                  "Submit",
	EventCancel:                  "Cancel",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "Unknown"
}

// InputButton identifies the mouse button a pointer event belongs to.
type InputButton uint8

const (
	ButtonLeft   InputButton = iota // primary (left) mouse button
	ButtonRight                     // secondary (right) mouse button
	ButtonMiddle                    // middle mouse button (wheel click)
)

func (b InputButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	return "Unknown"
}

// MoveDirection is the quantized direction of a navigation event.
type MoveDirection uint8

const (
	MoveLeft MoveDirection = iota
	MoveUp
	MoveRight
	MoveDown
	MoveNone
)

func (d MoveDirection) String() string {
	switch d {
	case MoveLeft:
		return "Left"
	case MoveUp:
		return "Up"
	case MoveRight:
		return "Right"
	case MoveDown:
		return "Down"
	}
	return "None"
}

// FramePressState describes what a button did during the current frame.
type FramePressState uint8

const (
	PressedThisFrame FramePressState = iota
	ReleasedThisFrame
	PressedAndReleased
	NotChanged
)

// Pressed reports whether the state includes a press edge.
func (s FramePressState) Pressed() bool {
	return s == PressedThisFrame || s == PressedAndReleased
}

// Released reports whether the state includes a release edge.
func (s FramePressState) Released() bool {
	return s == ReleasedThisFrame || s == PressedAndReleased
}

// Fixed pointer ids. Mouse buttons use negative ids so they never collide
// with device finger ids.
const (
	MouseLeftID   = -1
	MouseRightID  = -2
	MouseMiddleID = -3
	FakeTouchesID = -4
)

// Default tunables.
const (
	DefaultPixelDragThreshold = 5
	DoubleClickWindow         = 0.3 // seconds between presses counted as one click chain
)
