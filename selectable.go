package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SelectionState is the visual state of a Selectable.
type SelectionState uint8

const (
	StateNormal SelectionState = iota
	StateHighlighted
	StatePressed
	StateSelected
	StateDisabled
)

func (s SelectionState) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateHighlighted:
		return "Highlighted"
	case StatePressed:
		return "Pressed"
	case StateSelected:
		return "Selected"
	case StateDisabled:
		return "Disabled"
	}
	return "Unknown"
}

// ColorBlock holds the tint of each selection state.
type ColorBlock struct {
	Normal      Color
	Highlighted Color
	Pressed     Color
	Selected    Color
	Disabled    Color
	// Multiplier scales every tint.
	Multiplier float64
	// FadeDuration is the transition time in seconds. Zero switches instantly.
	FadeDuration float32
}

// DefaultColorBlock returns greyscale tints with a 0.1s fade.
func DefaultColorBlock() ColorBlock {
	return ColorBlock{
		Normal:       ColorWhite,
		Highlighted:  Color{0.96, 0.96, 0.96, 1},
		Pressed:      Color{0.78, 0.78, 0.78, 1},
		Selected:     Color{0.96, 0.96, 0.96, 1},
		Disabled:     Color{0.78, 0.78, 0.78, 0.5},
		Multiplier:   1,
		FadeDuration: 0.1,
	}
}

func (b ColorBlock) tint(state SelectionState) Color {
	var c Color
	switch state {
	case StateHighlighted:
		c = b.Highlighted
	case StatePressed:
		c = b.Pressed
	case StateSelected:
		c = b.Selected
	case StateDisabled:
		c = b.Disabled
	default:
		c = b.Normal
	}
	m := b.Multiplier
	return Color{c.R * m, c.G * m, c.B * m, c.A * m}
}

// NavigationMode selects how a Selectable answers move events.
type NavigationMode uint8

const (
	// NavigationExplicit moves to the SelectOn* neighbours.
	NavigationExplicit NavigationMode = iota
	// NavigationNone ignores move events and never selects on press.
	NavigationNone
)

// Selectable is the base of the stock widgets. It tracks hover, press and
// selection of its node, tints Color toward the current state, and moves
// the selection to its explicit neighbours on move events.
//
// Call Update(dt) each frame to advance the tint transition.
type Selectable struct {
	Node *Node

	Colors     ColorBlock
	Navigation NavigationMode

	SelectOnUp    *Selectable
	SelectOnDown  *Selectable
	SelectOnLeft  *Selectable
	SelectOnRight *Selectable

	// Color is the current tint, updated by transitions.
	Color Color

	// OnStateChanged is called whenever the evaluated state changes.
	OnStateChanged func(SelectionState)

	system       *EventSystem
	interactable bool
	hovered      bool
	pointerDown  bool
	selected     bool
	state        SelectionState

	tweens [4]*gween.Tween
}

func newSelectable(sys *EventSystem, node *Node) Selectable {
	colors := DefaultColorBlock()
	return Selectable{
		Node:         node,
		Colors:       colors,
		Color:        colors.tint(StateNormal),
		system:       sys,
		interactable: true,
	}
}

// NewSelectable attaches a Selectable to node.
func NewSelectable(sys *EventSystem, node *Node) *Selectable {
	s := newSelectable(sys, node)
	node.AddHandler(&s)
	return &s
}

// IsActive reports whether the node is still alive.
func (s *Selectable) IsActive() bool {
	return s.Node != nil && s.Node.alive()
}

// IsInteractable reports whether the widget reacts to input.
func (s *Selectable) IsInteractable() bool { return s.interactable }

// SetInteractable enables or disables the widget. Disabling the selected
// widget clears the selection.
func (s *Selectable) SetInteractable(v bool) {
	if s.interactable == v {
		return
	}
	s.interactable = v
	if !v && s.system != nil && s.system.Selected() == s.Node {
		s.system.SetSelectedNode(nil)
	}
	s.evaluate(false)
}

// CurrentState returns the evaluated selection state.
func (s *Selectable) CurrentState() SelectionState {
	switch {
	case !s.interactable:
		return StateDisabled
	case s.pointerDown:
		return StatePressed
	case s.selected:
		return StateSelected
	case s.hovered:
		return StateHighlighted
	}
	return StateNormal
}

// Select makes this widget the system's selection.
func (s *Selectable) Select() {
	if s.system == nil || s.system.AlreadySelecting() {
		return
	}
	s.system.SetSelectedNode(s.Node)
}

func (s *Selectable) evaluate(instant bool) {
	state := s.CurrentState()
	if state == s.state && !instant {
		return
	}
	s.state = state
	s.transition(state, instant)
	if s.OnStateChanged != nil {
		s.OnStateChanged(state)
	}
}

// transition starts a tint fade toward the tint of state.
func (s *Selectable) transition(state SelectionState, instant bool) {
	to := s.Colors.tint(state)
	d := s.Colors.FadeDuration
	if instant || d <= 0 {
		s.Color = to
		s.tweens = [4]*gween.Tween{}
		return
	}
	s.tweens[0] = gween.New(float32(s.Color.R), float32(to.R), d, ease.Linear)
	s.tweens[1] = gween.New(float32(s.Color.G), float32(to.G), d, ease.Linear)
	s.tweens[2] = gween.New(float32(s.Color.B), float32(to.B), d, ease.Linear)
	s.tweens[3] = gween.New(float32(s.Color.A), float32(to.A), d, ease.Linear)
}

// Transitioning reports whether a tint fade is in progress.
func (s *Selectable) Transitioning() bool { return s.tweens[0] != nil }

// Update advances the tint transition by dt seconds.
func (s *Selectable) Update(dt float32) {
	if s.tweens[0] == nil {
		return
	}
	fields := [4]*float64{&s.Color.R, &s.Color.G, &s.Color.B, &s.Color.A}
	allDone := true
	for i, tw := range s.tweens {
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		s.tweens = [4]*gween.Tween{}
	}
}

func (s *Selectable) OnPointerEnter(*PointerEventData) {
	s.hovered = true
	s.evaluate(false)
}

func (s *Selectable) OnPointerExit(*PointerEventData) {
	s.hovered = false
	s.evaluate(false)
}

// OnPointerDown selects the widget on a left press when it is navigable.
func (s *Selectable) OnPointerDown(ev *PointerEventData) {
	if ev.Button != ButtonLeft {
		return
	}
	if s.interactable && s.Navigation != NavigationNone && s.system != nil {
		s.system.SetSelected(s.Node, ev.Base())
	}
	s.pointerDown = true
	s.evaluate(false)
}

func (s *Selectable) OnPointerUp(ev *PointerEventData) {
	if ev.Button != ButtonLeft {
		return
	}
	s.pointerDown = false
	s.evaluate(false)
}

func (s *Selectable) OnSelect(*BaseEventData) {
	s.selected = true
	s.evaluate(false)
}

func (s *Selectable) OnDeselect(*BaseEventData) {
	s.selected = false
	s.evaluate(false)
}

// FindSelectableOn returns the explicit neighbour in direction dir.
func (s *Selectable) FindSelectableOn(dir MoveDirection) *Selectable {
	if s.Navigation == NavigationNone {
		return nil
	}
	switch dir {
	case MoveLeft:
		return s.SelectOnLeft
	case MoveRight:
		return s.SelectOnRight
	case MoveUp:
		return s.SelectOnUp
	case MoveDown:
		return s.SelectOnDown
	}
	return nil
}

// OnMove selects the neighbour in the move direction, if it is usable.
func (s *Selectable) OnMove(ev *AxisEventData) {
	next := s.FindSelectableOn(ev.MoveDir)
	if next == nil || !next.IsActive() || !next.IsInteractable() {
		return
	}
	ev.SetSelectedNode(next.Node)
}
