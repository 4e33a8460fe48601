package canopy

import (
	"errors"
	"fmt"
	"slices"
)

// ErrToggleNotInGroup is returned when a group is asked to act on a toggle
// it does not contain.
var ErrToggleNotInGroup = errors.New("canopy: toggle is not in group")

// Toggle is an on/off Selectable. A left click or a submit flips it.
type Toggle struct {
	Selectable

	// OnValueChanged is called with the new value after every notified change.
	OnValueChanged func(on bool)

	isOn  bool
	group *ToggleGroup
}

// NewToggle attaches a Toggle to node and adds it to group (which may be nil).
func NewToggle(sys *EventSystem, node *Node, group *ToggleGroup) *Toggle {
	t := &Toggle{Selectable: newSelectable(sys, node)}
	node.AddHandler(t)
	t.SetGroup(group)
	return t
}

// IsOn reports the toggle's value.
func (t *Toggle) IsOn() bool { return t.isOn }

// SetIsOn sets the value and calls OnValueChanged when it changes.
func (t *Toggle) SetIsOn(on bool) { t.set(on, true) }

// SetIsOnWithoutNotify sets the value without calling OnValueChanged.
func (t *Toggle) SetIsOnWithoutNotify(on bool) { t.set(on, false) }

// Group returns the toggle's group, or nil.
func (t *Toggle) Group() *ToggleGroup { return t.group }

// SetGroup moves the toggle to g. A toggle that is on switches the rest of
// g off.
func (t *Toggle) SetGroup(g *ToggleGroup) {
	if t.group == g {
		return
	}
	if t.group != nil {
		t.group.UnregisterToggle(t)
	}
	t.group = g
	if g == nil {
		return
	}
	g.RegisterToggle(t)
	if t.isOn && t.IsActive() {
		g.NotifyToggleOn(t, true)
	}
}

func (t *Toggle) set(on, notify bool) {
	if t.isOn == on {
		return
	}
	t.isOn = on
	// A group without AllowSwitchOff keeps its last toggle on.
	if t.group != nil && t.IsActive() {
		if t.isOn || (!t.group.AnyTogglesOn() && !t.group.AllowSwitchOff) {
			t.isOn = true
			t.group.NotifyToggleOn(t, notify)
		}
	}
	if notify && t.OnValueChanged != nil {
		t.OnValueChanged(t.isOn)
	}
}

func (t *Toggle) flip() {
	if !t.IsActive() || !t.IsInteractable() {
		return
	}
	t.SetIsOn(!t.isOn)
}

func (t *Toggle) OnPointerClick(ev *PointerEventData) {
	if ev.Button != ButtonLeft {
		return
	}
	t.flip()
}

func (t *Toggle) OnSubmit(*BaseEventData) { t.flip() }

// ToggleGroup keeps at most one of its toggles on. Unless AllowSwitchOff is
// set, it also keeps at least one on once any has been turned on.
type ToggleGroup struct {
	AllowSwitchOff bool

	toggles []*Toggle
}

// NewToggleGroup creates an empty group.
func NewToggleGroup(allowSwitchOff bool) *ToggleGroup {
	return &ToggleGroup{AllowSwitchOff: allowSwitchOff}
}

// RegisterToggle adds t. Adding a member again is a no-op.
func (g *ToggleGroup) RegisterToggle(t *Toggle) {
	if !slices.Contains(g.toggles, t) {
		g.toggles = append(g.toggles, t)
	}
}

// UnregisterToggle removes t.
func (g *ToggleGroup) UnregisterToggle(t *Toggle) {
	if i := slices.Index(g.toggles, t); i >= 0 {
		g.toggles = slices.Delete(g.toggles, i, i+1)
	}
}

// Toggles returns the members in registration order. The returned slice
// MUST NOT be mutated.
func (g *ToggleGroup) Toggles() []*Toggle { return g.toggles }

// NotifyToggleOn switches every member other than t off. It fails with
// ErrToggleNotInGroup when t is not a member.
func (g *ToggleGroup) NotifyToggleOn(t *Toggle, notify bool) error {
	if !slices.Contains(g.toggles, t) {
		return fmt.Errorf("%w: %s", ErrToggleNotInGroup, t.Node.Path())
	}
	for _, other := range g.toggles {
		if other != t {
			other.set(false, notify)
		}
	}
	return nil
}

// EnsureValidState turns the first member on when none is on and switching
// off is not allowed, and leaves only the first on member on when several
// are.
func (g *ToggleGroup) EnsureValidState() {
	if !g.AllowSwitchOff && !g.AnyTogglesOn() && len(g.toggles) > 0 {
		g.toggles[0].SetIsOn(true)
		g.NotifyToggleOn(g.toggles[0], true)
	}
	if first := g.FirstActiveToggle(); first != nil {
		g.NotifyToggleOn(first, true)
	}
}

// AnyTogglesOn reports whether any member is on.
func (g *ToggleGroup) AnyTogglesOn() bool {
	return g.FirstActiveToggle() != nil
}

// FirstActiveToggle returns the first member that is on, or nil.
func (g *ToggleGroup) FirstActiveToggle() *Toggle {
	for _, t := range g.toggles {
		if t.isOn {
			return t
		}
	}
	return nil
}

// ActiveToggles returns the members that are on.
func (g *ToggleGroup) ActiveToggles() []*Toggle {
	var on []*Toggle
	for _, t := range g.toggles {
		if t.isOn {
			on = append(on, t)
		}
	}
	return on
}

// SetAllTogglesOff switches every member off, regardless of AllowSwitchOff.
func (g *ToggleGroup) SetAllTogglesOff(notify bool) {
	old := g.AllowSwitchOff
	g.AllowSwitchOff = true
	for _, t := range g.toggles {
		t.set(false, notify)
	}
	g.AllowSwitchOff = old
}
