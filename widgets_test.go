package canopy

import (
	"errors"
	"slices"
	"testing"
)

// --- Selectable ---

func TestSelectableStateFollowsPointer(t *testing.T) {
	h := newHarness(t)
	s := NewSelectable(h.sys, h.rect(nil, "s", 0, 0, 100, 100))
	s.Colors.FadeDuration = 0
	var states []SelectionState
	s.OnStateChanged = func(st SelectionState) { states = append(states, st) }

	h.in.InjectMove(50, 50)
	h.in.InjectPress(50, 50)
	h.in.InjectRelease(50, 50)
	h.in.InjectMove(200, 200)
	h.run()

	want := []SelectionState{StateHighlighted, StateSelected, StatePressed, StateSelected}
	if !slices.Equal(states, want) {
		t.Errorf("states = %v, want %v", states, want)
	}
	if h.sys.Selected() != s.Node {
		t.Error("a left press should select the widget")
	}
	if s.Color != s.Colors.Selected {
		t.Errorf("Color = %v, want the selected tint", s.Color)
	}

	s.SetInteractable(false)
	if s.CurrentState() != StateDisabled || h.sys.Selected() != nil {
		t.Error("disabling the selected widget should clear the selection")
	}
	if states[len(states)-1] != StateDisabled {
		t.Errorf("last state = %v, want Disabled", states[len(states)-1])
	}
}

func TestSelectableStatePriority(t *testing.T) {
	s := NewSelectable(nil, NewNode("s"))
	ev := NewPointerEventData(nil)

	s.OnPointerEnter(ev)
	s.OnSelect(nil)
	s.OnPointerDown(ev)
	if s.CurrentState() != StatePressed {
		t.Errorf("state = %v, want Pressed", s.CurrentState())
	}
	s.OnPointerUp(ev)
	if s.CurrentState() != StateSelected {
		t.Errorf("state = %v, want Selected", s.CurrentState())
	}
	s.OnDeselect(nil)
	if s.CurrentState() != StateHighlighted {
		t.Errorf("state = %v, want Highlighted", s.CurrentState())
	}

	right := NewPointerEventData(nil)
	right.Button = ButtonRight
	s.OnPointerDown(right)
	if s.CurrentState() != StateHighlighted {
		t.Error("a right press should not press the widget")
	}
}

func TestSelectableTintFade(t *testing.T) {
	s := NewSelectable(nil, NewNode("s"))
	s.OnPointerEnter(nil)
	if !s.Transitioning() {
		t.Fatal("hover should start a fade")
	}

	s.Update(0.05)
	if !approxEqual(s.Color.R, 0.98, 1e-6) {
		t.Errorf("Color.R halfway = %v, want 0.98", s.Color.R)
	}
	s.Update(0.1)
	if !approxEqual(s.Color.R, 0.96, 1e-6) || s.Transitioning() {
		t.Errorf("Color.R = %v, transitioning = %v, want 0.96 and done", s.Color.R, s.Transitioning())
	}
}

func TestColorBlockMultiplier(t *testing.T) {
	b := DefaultColorBlock()
	b.Multiplier = 0.5
	if got := b.tint(StateNormal); got != (Color{0.5, 0.5, 0.5, 0.5}) {
		t.Errorf("tint(Normal) = %v, want half white", got)
	}
	if StateDisabled.String() != "Disabled" || SelectionState(99).String() != "Unknown" {
		t.Error("unexpected SelectionState names")
	}
}

func TestSelectableNavigation(t *testing.T) {
	h := newHarness(t)
	a := NewSelectable(h.sys, h.rect(nil, "a", 0, 0, 10, 10))
	b := NewSelectable(h.sys, h.rect(nil, "b", 20, 0, 10, 10))
	a.SelectOnRight = b
	b.SelectOnLeft = a
	h.sys.SetSelectedNode(a.Node)

	h.in.InjectAxis("Horizontal", 1)
	h.run()
	if h.sys.Selected() != b.Node {
		t.Fatalf("Selected() = %s, want b", h.sys.Selected().Path())
	}

	a.SetInteractable(false)
	h.in.InjectAxis("Horizontal", 0)
	h.in.InjectAxis("Horizontal", -1)
	h.run()
	if h.sys.Selected() != b.Node {
		t.Error("moving onto a disabled neighbour should keep the selection")
	}

	b.Navigation = NavigationNone
	if b.FindSelectableOn(MoveLeft) != nil {
		t.Error("NavigationNone should report no neighbours")
	}
}

// --- Button ---

func TestButtonClick(t *testing.T) {
	h := newHarness(t)
	clicks := 0
	b := NewButton(h.sys, h.rect(nil, "b", 0, 0, 100, 100), func() { clicks++ })

	h.in.InjectClick(50, 50)
	h.in.InjectRightClick(50, 50)
	h.run()
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	b.SetInteractable(false)
	h.in.InjectClick(50, 50)
	h.run()
	if clicks != 1 {
		t.Errorf("clicks = %d after disabling, want 1", clicks)
	}
}

func TestButtonSubmitFlashes(t *testing.T) {
	h := newHarness(t)
	clicks := 0
	b := NewButton(h.sys, h.rect(nil, "b", 0, 0, 100, 100), func() { clicks++ })
	h.sys.SetSelectedNode(b.Node)

	h.in.InjectButton("Submit")
	h.run()
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
	if !b.Flashing() || !b.Transitioning() {
		t.Fatal("submit should flash the pressed tint")
	}

	b.Update(0.2)
	if b.Flashing() {
		t.Error("flash should end after one fade")
	}
	b.Update(0.2)
	if want := b.Colors.tint(StateSelected); !approxEqual(b.Color.R, want.R, 1e-6) || b.Transitioning() {
		t.Errorf("Color = %v, want the selected tint %v", b.Color, want)
	}
}

func TestButtonSubmitInstantFade(t *testing.T) {
	b := NewButton(nil, NewNode("b"), nil)
	b.Colors.FadeDuration = 0
	b.OnSubmit(nil)
	if b.Flashing() || b.Color != b.Colors.Normal {
		t.Error("a zero fade should snap straight back to the current state")
	}
}

// --- Toggle ---

func TestToggleClickFlips(t *testing.T) {
	h := newHarness(t)
	tg := NewToggle(h.sys, h.rect(nil, "t", 0, 0, 100, 100), nil)
	var values []bool
	tg.OnValueChanged = func(on bool) { values = append(values, on) }

	h.in.InjectClick(50, 50)
	h.in.InjectClick(50, 50)
	h.run()
	if !slices.Equal(values, []bool{true, false}) {
		t.Errorf("values = %v, want [true false]", values)
	}

	h.sys.SetSelectedNode(tg.Node)
	h.in.InjectButton("Submit")
	h.run()
	if !tg.IsOn() {
		t.Error("submit should flip the toggle")
	}
}

func TestToggleGroupExclusive(t *testing.T) {
	g := NewToggleGroup(false)
	t1 := NewToggle(nil, NewNode("t1"), g)
	t2 := NewToggle(nil, NewNode("t2"), g)
	var t1Values []bool
	t1.OnValueChanged = func(on bool) { t1Values = append(t1Values, on) }

	t1.SetIsOn(true)
	t2.SetIsOn(true)
	if t1.IsOn() || !t2.IsOn() {
		t.Errorf("t1, t2 = %v, %v, want false, true", t1.IsOn(), t2.IsOn())
	}
	if !slices.Equal(t1Values, []bool{true, false}) {
		t.Errorf("t1 values = %v, want [true false]", t1Values)
	}

	// Without AllowSwitchOff the last toggle stays on.
	t2.SetIsOn(false)
	if !t2.IsOn() {
		t.Error("the only toggle on should refuse to switch off")
	}

	g.SetAllTogglesOff(false)
	if g.AnyTogglesOn() {
		t.Error("SetAllTogglesOff should switch every member off")
	}
	if g.AllowSwitchOff {
		t.Error("SetAllTogglesOff should restore AllowSwitchOff")
	}
}

func TestToggleGroupAllowSwitchOff(t *testing.T) {
	g := NewToggleGroup(true)
	tg := NewToggle(nil, NewNode("t"), g)
	tg.SetIsOn(true)
	tg.SetIsOn(false)
	if tg.IsOn() {
		t.Error("AllowSwitchOff should let the last toggle switch off")
	}
}

func TestToggleGroupMembership(t *testing.T) {
	a := NewToggleGroup(true)
	b := NewToggleGroup(true)
	t1 := NewToggle(nil, NewNode("t1"), a)
	t2 := NewToggle(nil, NewNode("t2"), b)
	t2.SetIsOn(true)

	// Joining a group while on switches the others off.
	t1.SetIsOn(true)
	t1.SetGroup(b)
	if len(a.Toggles()) != 0 || !slices.Equal(b.Toggles(), []*Toggle{t2, t1}) {
		t.Errorf("members = %d / %d, want 0 / 2", len(a.Toggles()), len(b.Toggles()))
	}
	if t2.IsOn() || !t1.IsOn() {
		t.Error("t1 joining b while on should switch t2 off")
	}

	b.RegisterToggle(t1)
	if len(b.Toggles()) != 2 {
		t.Error("registering a member again should be a no-op")
	}

	err := a.NotifyToggleOn(t1, true)
	if !errors.Is(err, ErrToggleNotInGroup) {
		t.Errorf("NotifyToggleOn(non-member) = %v, want ErrToggleNotInGroup", err)
	}
}

func TestToggleGroupEnsureValidState(t *testing.T) {
	g := NewToggleGroup(false)
	t1 := NewToggle(nil, NewNode("t1"), g)
	t2 := NewToggle(nil, NewNode("t2"), g)

	g.EnsureValidState()
	if !t1.IsOn() || t2.IsOn() {
		t.Error("EnsureValidState should turn the first member on")
	}

	// A member registered without joining can be on alongside t1.
	loose := NewToggle(nil, NewNode("loose"), nil)
	loose.SetIsOn(true)
	g.RegisterToggle(loose)
	if got := len(g.ActiveToggles()); got != 2 {
		t.Fatalf("ActiveToggles() = %d, want 2", got)
	}
	g.EnsureValidState()
	if g.FirstActiveToggle() != t1 || loose.IsOn() {
		t.Error("EnsureValidState should keep only the first toggle on")
	}
}
