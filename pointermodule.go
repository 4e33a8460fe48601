package canopy

import (
	"fmt"
	"slices"
	"strings"
)

// MouseButtonEventData is the frame state of one mouse button together with
// the pointer record it drives.
type MouseButtonEventData struct {
	ButtonState FramePressState
	ButtonData  *PointerEventData
}

// PressedThisFrame reports a press edge this frame.
func (d MouseButtonEventData) PressedThisFrame() bool { return d.ButtonState.Pressed() }

// ReleasedThisFrame reports a release edge this frame.
func (d MouseButtonEventData) ReleasedThisFrame() bool { return d.ButtonState.Released() }

// MouseState holds the per-button data of the mouse for one frame.
type MouseState struct {
	buttons [3]MouseButtonEventData
}

// Button returns the state of button b.
func (s *MouseState) Button(b InputButton) MouseButtonEventData {
	return s.buttons[b]
}

func (s *MouseState) set(b InputButton, state FramePressState, data *PointerEventData) {
	s.buttons[b] = MouseButtonEventData{ButtonState: state, ButtonData: data}
}

// AnyPressesThisFrame reports whether any button was pressed this frame.
func (s *MouseState) AnyPressesThisFrame() bool {
	for _, b := range s.buttons {
		if b.PressedThisFrame() {
			return true
		}
	}
	return false
}

// AnyReleasesThisFrame reports whether any button was released this frame.
func (s *MouseState) AnyReleasesThisFrame() bool {
	for _, b := range s.buttons {
		if b.ReleasedThisFrame() {
			return true
		}
	}
	return false
}

// PointerInputModule tracks pointer records for the mouse and for touches
// and implements the shared pointer state machine: raycasting, hover,
// press, drag and release. StandaloneInputModule builds on it.
type PointerInputModule struct {
	BaseInputModule

	pointerData map[int]*PointerEventData
	mouseState  MouseState
	raycastBuf  []RaycastResult
}

func newPointerInputModule(sys *EventSystem, in Input) PointerInputModule {
	return PointerInputModule{
		BaseInputModule: newBaseInputModule(sys, in),
		pointerData:     make(map[int]*PointerEventData),
	}
}

// PointerData returns the record for id. With create set, a missing record
// is created and created reports true.
func (m *PointerInputModule) PointerData(id int, create bool) (data *PointerEventData, created bool) {
	data, ok := m.pointerData[id]
	if ok || !create {
		return data, false
	}
	data = NewPointerEventData(m.system)
	data.PointerID = id
	m.pointerData[id] = data
	return data, true
}

// RemovePointerData forgets the record of data.PointerID.
func (m *PointerInputModule) RemovePointerData(data *PointerEventData) {
	delete(m.pointerData, data.PointerID)
}

// NumPointers returns the number of tracked pointer records.
func (m *PointerInputModule) NumPointers() int {
	return len(m.pointerData)
}

// raycast fills data.PointerCurrentRaycast with the frontmost hit.
func (m *PointerInputModule) raycast(data *PointerEventData) {
	m.raycastBuf = m.system.RaycastAll(data, m.raycastBuf)
	data.PointerCurrentRaycast = FindFirstRaycast(m.raycastBuf)
	clear(m.raycastBuf)
	m.raycastBuf = m.raycastBuf[:0]
}

// TouchPointerEventData updates the record for touch t and reports whether
// this frame pressed or released it.
func (m *PointerInputModule) TouchPointerEventData(t Touch) (data *PointerEventData, pressed, released bool) {
	data, created := m.PointerData(t.FingerID, true)
	data.Reset()

	pressed = created || t.Phase == TouchBegan
	released = t.Phase == TouchCanceled || t.Phase == TouchEnded

	if created {
		data.Position = t.Position
	}
	if pressed {
		data.Delta = Vec2{}
	} else {
		data.Delta = t.Position.Sub(data.Position)
	}
	data.Position = t.Position
	data.Button = ButtonLeft

	m.raycast(data)
	return data, pressed, released
}

// copyPointerFrame copies the per-frame fields shared by the mouse buttons.
func copyPointerFrame(from, to *PointerEventData) {
	to.Position = from.Position
	to.Delta = from.Delta
	to.ScrollDelta = from.ScrollDelta
	to.PointerCurrentRaycast = from.PointerCurrentRaycast
	to.PointerEnter = from.PointerEnter
}

// stateForMouseButton derives the frame edge state of button b.
func (m *PointerInputModule) stateForMouseButton(b InputButton) FramePressState {
	in := m.Input()
	pressed := in.MouseButtonDown(b)
	released := in.MouseButtonUp(b)
	switch {
	case pressed && released:
		return PressedAndReleased
	case pressed:
		return PressedThisFrame
	case released:
		return ReleasedThisFrame
	}
	return NotChanged
}

// MousePointerEventData refreshes the three mouse button records for this
// frame. Only the left button is raycast; right and middle share its hit.
func (m *PointerInputModule) MousePointerEventData() *MouseState {
	in := m.Input()

	left, created := m.PointerData(MouseLeftID, true)
	left.Reset()
	pos := in.MousePosition()
	if created {
		left.Position = pos
	}
	if in.CursorLocked() {
		left.Position = Vec2{-1, -1}
		left.Delta = Vec2{}
	} else {
		left.Delta = pos.Sub(left.Position)
		left.Position = pos
	}
	left.ScrollDelta = in.MouseScrollDelta()
	left.Button = ButtonLeft
	m.raycast(left)

	right, _ := m.PointerData(MouseRightID, true)
	right.Reset()
	copyPointerFrame(left, right)
	right.Button = ButtonRight

	middle, _ := m.PointerData(MouseMiddleID, true)
	middle.Reset()
	copyPointerFrame(left, middle)
	middle.Button = ButtonMiddle

	m.mouseState.set(ButtonLeft, m.stateForMouseButton(ButtonLeft), left)
	m.mouseState.set(ButtonRight, m.stateForMouseButton(ButtonRight), right)
	m.mouseState.set(ButtonMiddle, m.stateForMouseButton(ButtonMiddle), middle)
	return &m.mouseState
}

// LastPointerEventData returns the record for id without creating one.
func (m *PointerInputModule) LastPointerEventData(id int) *PointerEventData {
	data, _ := m.PointerData(id, false)
	return data
}

// ProcessMove updates hover for ev. A locked cursor hovers nothing.
func (m *PointerInputModule) ProcessMove(ev *PointerEventData) {
	var target *Node
	if !m.Input().CursorLocked() {
		target = ev.PointerCurrentRaycast.Node
	}
	m.HandlePointerExitAndEnter(ev, target)
}

// shouldStartDrag reports whether the pointer moved strictly farther than
// threshold from the press position.
func shouldStartDrag(pressPos, currentPos Vec2, threshold float64, useThreshold bool) bool {
	if !useThreshold {
		return true
	}
	return pressPos.Sub(currentPos).SqrMagnitude() > threshold*threshold
}

// ProcessDrag runs the drag state machine for a moving pointer. Once the
// drag starts, a press target that is not the drag target receives up and
// loses click eligibility.
func (m *PointerInputModule) ProcessDrag(ev *PointerEventData) {
	if !ev.IsPointerMoving() || m.Input().CursorLocked() || ev.PointerDrag == nil {
		return
	}

	if !ev.Dragging && shouldStartDrag(ev.PressPosition, ev.Position, m.system.PixelDragThreshold, ev.UseDragThreshold) {
		// A drag on another node preempts the press: it is released before
		// the drag begins.
		if press := ev.PointerPress(); press != nil && press != ev.PointerDrag {
			Execute(press, ev, PointerUpEvent)
			ev.EligibleForClick = false
			ev.SetPointerPress(nil)
			ev.RawPointerPress = nil
		}
		Execute(ev.PointerDrag, ev, BeginDragEvent)
		ev.Dragging = true
	}

	if ev.Dragging {
		Execute(ev.PointerDrag, ev, DragEvent)
	}
}

// IsPointerOverNode reports whether pointer id is hovering any node.
func (m *PointerInputModule) IsPointerOverNode(id int) bool {
	data := m.LastPointerEventData(id)
	return data != nil && data.PointerEnter != nil
}

// DeselectIfSelectionChanged clears the selection when a press lands on
// something other than the selected node's select handler.
func (m *PointerInputModule) DeselectIfSelectionChanged(currentOver *Node, ev EventData) {
	selectTarget := GetEventHandler[SelectHandler](currentOver)
	if selectTarget != m.system.Selected() {
		m.system.SetSelected(nil, ev.Base())
	}
}

// pressPointer runs the press half of the pointer protocol on ev.
func (m *PointerInputModule) pressPointer(ev *PointerEventData, currentOver *Node) {
	ev.EligibleForClick = true
	ev.Delta = Vec2{}
	ev.Dragging = false
	ev.UseDragThreshold = true
	ev.PressPosition = ev.Position
	ev.PointerPressRaycast = ev.PointerCurrentRaycast

	m.DeselectIfSelectionChanged(currentOver, ev)

	// The press goes to the nearest down handler; failing that, to whatever
	// would take the click.
	newPressed := ExecuteHierarchy(currentOver, ev, PointerDownEvent)
	if newPressed == nil {
		newPressed = GetEventHandler[PointerClickHandler](currentOver)
	}

	now := m.system.Now()
	if newPressed == ev.LastPress() {
		if now-ev.ClickTime < DoubleClickWindow {
			ev.ClickCount++
		} else {
			ev.ClickCount = 1
		}
	} else {
		ev.ClickCount = 1
	}

	ev.SetPointerPress(newPressed)
	ev.RawPointerPress = currentOver
	ev.ClickTime = now

	ev.PointerDrag = GetEventHandler[DragHandler](currentOver)
	if ev.PointerDrag != nil {
		Execute(ev.PointerDrag, ev, InitializePotentialDragEvent)
	}
}

// releasePointer runs the release half of the pointer protocol on ev,
// excluding the hover update.
func (m *PointerInputModule) releasePointer(ev *PointerEventData, currentOver *Node) {
	Execute(ev.PointerPress(), ev, PointerUpEvent)

	clickTarget := GetEventHandler[PointerClickHandler](currentOver)
	if ev.PointerPress() == clickTarget && ev.EligibleForClick {
		Execute(ev.PointerPress(), ev, PointerClickEvent)
	} else if ev.PointerDrag != nil && ev.Dragging {
		ExecuteHierarchy(currentOver, ev, DropEvent)
	}

	ev.EligibleForClick = false
	ev.SetPointerPress(nil)
	ev.RawPointerPress = nil

	if ev.PointerDrag != nil && ev.Dragging {
		Execute(ev.PointerDrag, ev, EndDragEvent)
	}
	ev.Dragging = false
	ev.PointerDrag = nil
}

// ClearSelection ends every tracked pointer (pending presses receive up,
// active drags receive end drag, hovered nodes receive exit), forgets all
// pointer records and clears the selection.
func (m *PointerInputModule) ClearSelection() {
	base := m.BaseEventData()
	for _, id := range m.sortedPointerIDs() {
		ev := m.pointerData[id]
		if ev.PointerPress() != nil || ev.Dragging {
			m.releasePointer(ev, nil)
		}
		m.HandlePointerExitAndEnter(ev, nil)
	}
	clear(m.pointerData)
	m.system.SetSelected(nil, base)
}

// sortedPointerIDs returns pointer ids in ascending order so teardown is
// deterministic.
func (m *PointerInputModule) sortedPointerIDs() []int {
	ids := make([]int, 0, len(m.pointerData))
	for id := range m.pointerData {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *PointerInputModule) String() string {
	var sb strings.Builder
	sb.WriteString("Pointer Input Module of type: ")
	fmt.Fprintf(&sb, "%T\n", m)
	for _, id := range m.sortedPointerIDs() {
		data := m.pointerData[id]
		fmt.Fprintf(&sb, "Pointer: %d\n%s\n", id, data)
	}
	return sb.String()
}
