package canopy

// SyntheticInput is a scripted Input source. Each Inject call queues one or
// more frames; every Poll (one per EventSystem.Update) consumes a single
// frame. State that a frame does not touch (cursor position, held buttons,
// axis values) carries over from the previous frame, and edges are derived
// from the change.
type SyntheticInput struct {
	queue []func(*SyntheticInput)

	mouse     Vec2
	held      [3]bool
	prevHeld  [3]bool
	scroll    Vec2
	touches   []Touch
	axes      map[string]float64
	pressed   map[string]bool
	locked    bool
	noMouse   bool
	touchable bool
}

// NewSyntheticInput creates an idle synthetic input with a mouse and touch
// support.
func NewSyntheticInput() *SyntheticInput {
	return &SyntheticInput{
		axes:      make(map[string]float64),
		pressed:   make(map[string]bool),
		touchable: true,
	}
}

// Pending returns the number of frames still queued.
func (s *SyntheticInput) Pending() int {
	return len(s.queue)
}

// Poll advances to the next queued frame.
func (s *SyntheticInput) Poll() {
	s.prevHeld = s.held
	s.scroll = Vec2{}
	s.touches = s.touches[:0]
	clear(s.pressed)

	if len(s.queue) == 0 {
		return
	}
	frame := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue[len(s.queue)-1] = nil
	s.queue = s.queue[:len(s.queue)-1]
	frame(s)
}

func (s *SyntheticInput) push(f func(*SyntheticInput)) {
	s.queue = append(s.queue, f)
}

// --- Mouse ---

// InjectMousePress queues a press of button b at the given screen coordinates.
func (s *SyntheticInput) InjectMousePress(b InputButton, x, y float64) {
	s.push(func(s *SyntheticInput) {
		s.mouse = Vec2{x, y}
		s.held[b] = true
	})
}

// InjectMouseRelease queues a release of button b at the given screen coordinates.
func (s *SyntheticInput) InjectMouseRelease(b InputButton, x, y float64) {
	s.push(func(s *SyntheticInput) {
		s.mouse = Vec2{x, y}
		s.held[b] = false
	})
}

// InjectPress queues a left-button press at the given screen coordinates.
func (s *SyntheticInput) InjectPress(x, y float64) {
	s.InjectMousePress(ButtonLeft, x, y)
}

// InjectMove queues a cursor move. Held buttons stay held, so a move between
// InjectPress and InjectRelease drags.
func (s *SyntheticInput) InjectMove(x, y float64) {
	s.push(func(s *SyntheticInput) {
		s.mouse = Vec2{x, y}
	})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (s *SyntheticInput) InjectRelease(x, y float64) {
	s.InjectMouseRelease(ButtonLeft, x, y)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *SyntheticInput) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectRightClick queues a right-button press and release. Consumes two frames.
func (s *SyntheticInput) InjectRightClick(x, y float64) {
	s.InjectMousePress(ButtonRight, x, y)
	s.InjectMouseRelease(ButtonRight, x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *SyntheticInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectScroll queues one frame of wheel movement.
func (s *SyntheticInput) InjectScroll(dx, dy float64) {
	s.push(func(s *SyntheticInput) {
		s.scroll = Vec2{dx, dy}
	})
}

// --- Touch ---

// InjectTouch queues one frame carrying the given touch samples.
func (s *SyntheticInput) InjectTouch(touches ...Touch) {
	frame := append([]Touch(nil), touches...)
	s.push(func(s *SyntheticInput) {
		s.touches = append(s.touches, frame...)
	})
}

// InjectTap queues a touch that begins and ends at (x, y). Consumes two frames.
func (s *SyntheticInput) InjectTap(fingerID int, x, y float64) {
	s.InjectTouch(Touch{FingerID: fingerID, Position: Vec2{x, y}, Phase: TouchBegan})
	s.InjectTouch(Touch{FingerID: fingerID, Position: Vec2{x, y}, Phase: TouchEnded})
}

// --- Axes and buttons ---

// InjectAxis queues a frame that sets a named axis. Moving the axis away
// from zero also reports a press edge on the axis name, as a key press
// would.
func (s *SyntheticInput) InjectAxis(name string, value float64) {
	s.push(func(s *SyntheticInput) {
		if s.axes[name] == 0 && value != 0 {
			s.pressed[name] = true
		}
		s.axes[name] = value
	})
}

// InjectButton queues a frame with a press edge on a named virtual button.
func (s *SyntheticInput) InjectButton(name string) {
	s.push(func(s *SyntheticInput) {
		s.pressed[name] = true
	})
}

// InjectIdle queues frames that change nothing.
func (s *SyntheticInput) InjectIdle(frames int) {
	for i := 0; i < frames; i++ {
		s.push(func(*SyntheticInput) {})
	}
}

// SetCursorLocked sets the cursor lock state immediately.
func (s *SyntheticInput) SetCursorLocked(locked bool) { s.locked = locked }

// SetMousePresent sets whether a mouse is reported.
func (s *SyntheticInput) SetMousePresent(present bool) { s.noMouse = !present }

// SetTouchSupported sets whether touch input is reported as supported.
func (s *SyntheticInput) SetTouchSupported(supported bool) { s.touchable = supported }

// --- Input ---

func (s *SyntheticInput) MousePresent() bool     { return !s.noMouse }
func (s *SyntheticInput) MousePosition() Vec2    { return s.mouse }
func (s *SyntheticInput) MouseScrollDelta() Vec2 { return s.scroll }

func (s *SyntheticInput) MouseButton(b InputButton) bool {
	return s.held[b]
}

func (s *SyntheticInput) MouseButtonDown(b InputButton) bool {
	return s.held[b] && !s.prevHeld[b]
}

func (s *SyntheticInput) MouseButtonUp(b InputButton) bool {
	return !s.held[b] && s.prevHeld[b]
}

func (s *SyntheticInput) TouchSupported() bool { return s.touchable }
func (s *SyntheticInput) TouchCount() int      { return len(s.touches) }
func (s *SyntheticInput) Touch(i int) Touch    { return s.touches[i] }

func (s *SyntheticInput) AxisRaw(name string) float64 { return s.axes[name] }
func (s *SyntheticInput) ButtonDown(name string) bool { return s.pressed[name] }
func (s *SyntheticInput) CursorLocked() bool          { return s.locked }
