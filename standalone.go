package canopy

import "math"

// StandaloneConfig holds the tunables of a StandaloneInputModule.
type StandaloneConfig struct {
	HorizontalAxis string `yaml:"horizontal_axis"`
	VerticalAxis   string `yaml:"vertical_axis"`
	SubmitButton   string `yaml:"submit_button"`
	CancelButton   string `yaml:"cancel_button"`
	// InputActionsPerSecond is the move repeat rate once the repeat delay
	// has passed.
	InputActionsPerSecond float64 `yaml:"input_actions_per_second"`
	// RepeatDelay is the wait before a held direction starts repeating.
	RepeatDelay float64 `yaml:"repeat_delay"`
	// MoveDeadZone is the minimum axis magnitude that counts as a move.
	MoveDeadZone float64 `yaml:"move_dead_zone"`
	// ForceModuleActive keeps the module active regardless of input.
	ForceModuleActive bool `yaml:"force_module_active"`
	// IgnoreEventsOnNoFocus drops all input while the window is unfocused.
	IgnoreEventsOnNoFocus bool `yaml:"ignore_events_on_no_focus"`
}

// DefaultStandaloneConfig returns the stock axis names and timings.
func DefaultStandaloneConfig() StandaloneConfig {
	return StandaloneConfig{
		HorizontalAxis:        "Horizontal",
		VerticalAxis:          "Vertical",
		SubmitButton:          "Submit",
		CancelButton:          "Cancel",
		InputActionsPerSecond: 10,
		RepeatDelay:           0.5,
		MoveDeadZone:          0.6,
		IgnoreEventsOnNoFocus: true,
	}
}

// StandaloneInputModule handles mouse, touch and keyboard/axis navigation.
// Touches take precedence: the mouse is only processed on frames without
// touch samples.
type StandaloneInputModule struct {
	PointerInputModule

	cfg StandaloneConfig

	prevActionTime       float64
	lastMoveVector       Vec2
	consecutiveMoveCount int

	lastMousePosition Vec2
	mousePosition     Vec2

	currentFocused *Node
}

// NewStandaloneInputModule creates a module reading from in. Register it
// with EventSystem.AddModule.
func NewStandaloneInputModule(sys *EventSystem, in Input, cfg StandaloneConfig) *StandaloneInputModule {
	return &StandaloneInputModule{
		PointerInputModule: newPointerInputModule(sys, in),
		cfg:                cfg,
	}
}

// Config returns the module's current tunables.
func (m *StandaloneInputModule) Config() StandaloneConfig { return m.cfg }

// ApplyConfig replaces the module's tunables.
func (m *StandaloneInputModule) ApplyConfig(cfg StandaloneConfig) { m.cfg = cfg }

// SetForceModuleActive sets ForceModuleActive.
func (m *StandaloneInputModule) SetForceModuleActive(force bool) { m.cfg.ForceModuleActive = force }

func (m *StandaloneInputModule) ignoringInput() bool {
	return !m.system.IsFocused() && m.cfg.IgnoreEventsOnNoFocus
}

// CurrentFocusedNode is the node under the mouse as of the last processed
// frame.
func (m *StandaloneInputModule) CurrentFocusedNode() *Node { return m.currentFocused }

// UpdateModule tracks mouse movement for ShouldActivate.
func (m *StandaloneInputModule) UpdateModule() {
	if m.ignoringInput() {
		return
	}
	m.lastMousePosition = m.mousePosition
	m.mousePosition = m.Input().MousePosition()
}

// IsSupported reports whether a mouse or touch screen is present, or the
// module is forced active.
func (m *StandaloneInputModule) IsSupported() bool {
	in := m.Input()
	return m.cfg.ForceModuleActive || in.MousePresent() || in.TouchSupported()
}

// ShouldActivate reports whether there was any input this frame.
func (m *StandaloneInputModule) ShouldActivate() bool {
	if !m.Enabled() {
		return false
	}
	in := m.Input()
	should := m.cfg.ForceModuleActive
	should = should || in.ButtonDown(m.cfg.SubmitButton)
	should = should || in.ButtonDown(m.cfg.CancelButton)
	should = should || !approxZero(in.AxisRaw(m.cfg.HorizontalAxis))
	should = should || !approxZero(in.AxisRaw(m.cfg.VerticalAxis))
	should = should || m.mousePosition.Sub(m.lastMousePosition).SqrMagnitude() > 0
	should = should || in.MouseButtonDown(ButtonLeft)
	should = should || in.TouchCount() > 0
	return should
}

// Activate selects the current selection again, or the system's first
// selected node when nothing is selected.
func (m *StandaloneInputModule) Activate() {
	if m.ignoringInput() {
		return
	}
	pos := m.Input().MousePosition()
	m.mousePosition = pos
	m.lastMousePosition = pos

	toSelect := m.system.Selected()
	if toSelect == nil {
		toSelect = m.system.FirstSelected
	}
	m.system.SetSelected(toSelect, m.BaseEventData())
}

// Deactivate ends every pointer and clears the selection.
func (m *StandaloneInputModule) Deactivate() {
	m.ClearSelection()
}

// Process runs one frame: update-selected, navigation, then touch or mouse.
func (m *StandaloneInputModule) Process() {
	if m.ignoringInput() {
		return
	}

	used := m.SendUpdateEventToSelected()
	if m.system.SendNavigationEvents {
		if !used {
			used = m.SendMoveEventToSelected()
		}
		if !used {
			m.SendSubmitEventToSelected()
		}
	}

	if !m.ProcessTouchEvents() && m.Input().MousePresent() {
		m.ProcessMouseEvent()
	}
}

// ProcessTouchEvents handles every direct touch. Reports whether the frame
// had any touch samples.
func (m *StandaloneInputModule) ProcessTouchEvents() bool {
	in := m.Input()
	count := in.TouchCount()
	for i := 0; i < count; i++ {
		t := in.Touch(i)
		if t.Type == TouchIndirect {
			continue
		}
		ev, pressed, released := m.TouchPointerEventData(t)
		m.ProcessTouchPress(ev, pressed, released)
		if !released {
			m.ProcessMove(ev)
			m.ProcessDrag(ev)
		} else {
			m.RemovePointerData(ev)
		}
	}
	return count > 0
}

// ProcessTouchPress runs press and release for one touch record.
func (m *StandaloneInputModule) ProcessTouchPress(ev *PointerEventData, pressed, released bool) {
	currentOver := ev.PointerCurrentRaycast.Node

	if pressed {
		// Touches have no hover before they land.
		if ev.PointerEnter != currentOver {
			m.HandlePointerExitAndEnter(ev, currentOver)
			ev.PointerEnter = currentOver
		}
		m.pressPointer(ev, currentOver)
	}

	if released {
		m.releasePointer(ev, currentOver)
		// A lifted finger exits only the nearest exit handler.
		ExecuteHierarchy(ev.PointerEnter, ev, PointerExitEvent)
		ev.PointerEnter = nil
		ev.Hovered = ev.Hovered[:0]
	}
}

// ProcessMouseEvent handles all three mouse buttons and the wheel.
func (m *StandaloneInputModule) ProcessMouseEvent() {
	state := m.MousePointerEventData()
	left := state.Button(ButtonLeft)

	m.currentFocused = left.ButtonData.PointerCurrentRaycast.Node

	m.ProcessMousePress(left)
	m.ProcessMove(left.ButtonData)
	m.ProcessDrag(left.ButtonData)

	right := state.Button(ButtonRight)
	m.ProcessMousePress(right)
	m.ProcessDrag(right.ButtonData)

	middle := state.Button(ButtonMiddle)
	m.ProcessMousePress(middle)
	m.ProcessDrag(middle.ButtonData)

	if !approxZero(left.ButtonData.ScrollDelta.SqrMagnitude()) {
		scrollTarget := GetEventHandler[ScrollHandler](left.ButtonData.PointerCurrentRaycast.Node)
		ExecuteHierarchy(scrollTarget, left.ButtonData, ScrollEvent)
	}
}

// ProcessMousePress runs press and release for one mouse button.
func (m *StandaloneInputModule) ProcessMousePress(data MouseButtonEventData) {
	ev := data.ButtonData
	currentOver := ev.PointerCurrentRaycast.Node

	if data.PressedThisFrame() {
		m.pressPointer(ev, currentOver)
	}

	if data.ReleasedThisFrame() {
		m.releasePointer(ev, currentOver)
		// Hover may lag the raycast on the release frame.
		if currentOver != ev.PointerEnter {
			m.HandlePointerExitAndEnter(ev, nil)
			m.HandlePointerExitAndEnter(ev, currentOver)
		}
	}
}

// SendUpdateEventToSelected delivers update-selected and reports whether a
// handler used it.
func (m *StandaloneInputModule) SendUpdateEventToSelected() bool {
	sel := m.system.Selected()
	if sel == nil {
		return false
	}
	data := m.BaseEventData()
	Execute(sel, data, UpdateSelectedEvent)
	return data.Used()
}

// RawMoveVector reads both axes. On the frame an axis button goes down the
// axis snaps to -1 or 1.
func (m *StandaloneInputModule) RawMoveVector() Vec2 {
	in := m.Input()
	move := Vec2{in.AxisRaw(m.cfg.HorizontalAxis), in.AxisRaw(m.cfg.VerticalAxis)}
	if in.ButtonDown(m.cfg.HorizontalAxis) {
		move.X = snapUnit(move.X)
	}
	if in.ButtonDown(m.cfg.VerticalAxis) {
		move.Y = snapUnit(move.Y)
	}
	return move
}

func snapUnit(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return v
}

// SendMoveEventToSelected delivers a move event when the repeat gate allows
// it and reports whether a handler used it. A fresh key press or a turn of
// 90 degrees or more moves immediately; holding the same direction waits
// RepeatDelay once, then repeats at InputActionsPerSecond.
func (m *StandaloneInputModule) SendMoveEventToSelected() bool {
	now := m.system.Now()
	in := m.Input()

	movement := m.RawMoveVector()
	if approxZero(movement.X) && approxZero(movement.Y) {
		m.consecutiveMoveCount = 0
		return false
	}

	allow := in.ButtonDown(m.cfg.HorizontalAxis) || in.ButtonDown(m.cfg.VerticalAxis)
	similarDir := movement.Dot(m.lastMoveVector) > 0
	if !allow {
		switch {
		case !similarDir:
			allow = true
		case m.consecutiveMoveCount == 1:
			allow = now > m.prevActionTime+m.cfg.RepeatDelay
		default:
			allow = now > m.prevActionTime+1/m.cfg.InputActionsPerSecond
		}
	}
	if !allow {
		return false
	}

	axis := m.AxisEventData(movement.X, movement.Y, m.cfg.MoveDeadZone)
	if axis.MoveDir == MoveNone {
		m.consecutiveMoveCount = 0
		return axis.Used()
	}

	Execute(m.system.Selected(), axis, MoveEvent)
	if !similarDir {
		m.consecutiveMoveCount = 0
	}
	m.consecutiveMoveCount++
	m.prevActionTime = now
	m.lastMoveVector = movement
	return axis.Used()
}

// SendSubmitEventToSelected delivers submit and cancel on their button
// edges and reports whether a handler used the event.
func (m *StandaloneInputModule) SendSubmitEventToSelected() bool {
	sel := m.system.Selected()
	if sel == nil {
		return false
	}
	in := m.Input()
	data := m.BaseEventData()
	if in.ButtonDown(m.cfg.SubmitButton) {
		Execute(sel, data, SubmitEvent)
	}
	if in.ButtonDown(m.cfg.CancelButton) {
		Execute(sel, data, CancelEvent)
	}
	return data.Used()
}

func approxZero(v float64) bool {
	return math.Abs(v) < 1e-6
}
