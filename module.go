package canopy

import (
	"math"
	"slices"
)

// InputModule turns raw input into delivered events. An EventSystem holds
// any number of modules and runs exactly one of them per frame.
type InputModule interface {
	// IsSupported reports whether the module can run on this platform.
	IsSupported() bool
	// ShouldActivate reports whether the module wants to become the active
	// module this frame.
	ShouldActivate() bool
	Activate()
	Deactivate()
	// UpdateModule is called every frame on every enabled module, active or
	// not.
	UpdateModule()
	// Process is called once per frame on the active module.
	Process()
	IsPointerOverNode(pointerID int) bool
	Enabled() bool
}

// BaseInputModule holds the state shared by every input module: the owning
// EventSystem, the input source, and cached event payloads. Embed it and
// override the InputModule methods you need.
type BaseInputModule struct {
	system   *EventSystem
	input    Input
	override Input
	disabled bool

	axisEvent *AxisEventData
	baseEvent *BaseEventData
}

func newBaseInputModule(sys *EventSystem, in Input) BaseInputModule {
	return BaseInputModule{
		system:    sys,
		input:     in,
		axisEvent: NewAxisEventData(sys),
		baseEvent: NewBaseEventData(sys),
	}
}

// System returns the owning EventSystem.
func (m *BaseInputModule) System() *EventSystem { return m.system }

// Input returns the override input if one is set, else the module's input.
func (m *BaseInputModule) Input() Input {
	if m.override != nil {
		return m.override
	}
	return m.input
}

// SetInputOverride replaces the input source until cleared with nil.
func (m *BaseInputModule) SetInputOverride(in Input) { m.override = in }

// Enabled reports whether the module takes part in module selection.
func (m *BaseInputModule) Enabled() bool { return !m.disabled }

// SetEnabled enables or disables the module. Disabling the active module
// deactivates it on the next Update.
func (m *BaseInputModule) SetEnabled(enabled bool) { m.disabled = !enabled }

func (m *BaseInputModule) IsSupported() bool          { return true }
func (m *BaseInputModule) ShouldActivate() bool       { return m.Enabled() }
func (m *BaseInputModule) Activate()                  {}
func (m *BaseInputModule) Deactivate()                {}
func (m *BaseInputModule) UpdateModule()              {}
func (m *BaseInputModule) IsPointerOverNode(int) bool { return false }

// AxisEventData returns the module's cached move payload, reset and filled
// for (x, y).
func (m *BaseInputModule) AxisEventData(x, y, deadZone float64) *AxisEventData {
	m.axisEvent.Reset()
	m.axisEvent.MoveVector = Vec2{x, y}
	m.axisEvent.MoveDir = DetermineMoveDirection(x, y, deadZone)
	return m.axisEvent
}

// BaseEventData returns the module's cached base payload, reset.
func (m *BaseInputModule) BaseEventData() *BaseEventData {
	m.baseEvent.Reset()
	return m.baseEvent
}

// DetermineMoveDirection quantizes (x, y) to a direction. Vectors shorter
// than deadZone map to MoveNone. The dominant axis wins; an exact tie goes
// to the vertical axis. Positive y is up.
func DetermineMoveDirection(x, y, deadZone float64) MoveDirection {
	if x*x+y*y < deadZone*deadZone {
		return MoveNone
	}
	if math.Abs(x) > math.Abs(y) {
		if x > 0 {
			return MoveRight
		}
		return MoveLeft
	}
	if y > 0 {
		return MoveUp
	}
	return MoveDown
}

// HandlePointerExitAndEnter moves the hover of ev to newEnter. Nodes that
// stop being hovered get exit, deepest first; nodes that start being
// hovered get enter, deepest first. Nodes shared by the old and new chains
// (the common root and its ancestors) receive nothing. A nil newEnter exits
// every hovered node.
func (m *BaseInputModule) HandlePointerExitAndEnter(ev *PointerEventData, newEnter *Node) {
	if newEnter == nil || ev.PointerEnter == nil {
		for _, n := range ev.Hovered {
			Execute(n, ev, PointerExitEvent)
		}
		clear(ev.Hovered)
		ev.Hovered = ev.Hovered[:0]
		if newEnter == nil {
			ev.PointerEnter = nil
			return
		}
	}

	if ev.PointerEnter == newEnter {
		return
	}

	commonRoot := FindCommonRoot(ev.PointerEnter, newEnter)

	if ev.PointerEnter != nil {
		for t := ev.PointerEnter; t != nil; t = t.Parent {
			if commonRoot != nil && t == commonRoot {
				break
			}
			Execute(t, ev, PointerExitEvent)
			ev.Hovered = removeNode(ev.Hovered, t)
		}
	}

	ev.PointerEnter = newEnter
	// The new chain lies below the common root, so it goes in front.
	i := 0
	for t := newEnter; t != nil && t != commonRoot; t = t.Parent {
		Execute(t, ev, PointerEnterEvent)
		ev.Hovered = slices.Insert(ev.Hovered, i, t)
		i++
	}
}

func removeNode(list []*Node, n *Node) []*Node {
	for i, c := range list {
		if c == n {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}
