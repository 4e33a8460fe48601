package canopy

// Button is a Selectable that calls OnClick on a left click or a submit.
type Button struct {
	Selectable

	OnClick func()

	flash float32
}

// NewButton attaches a Button to node.
func NewButton(sys *EventSystem, node *Node, onClick func()) *Button {
	b := &Button{Selectable: newSelectable(sys, node), OnClick: onClick}
	node.AddHandler(b)
	return b
}

func (b *Button) press() {
	if !b.IsActive() || !b.IsInteractable() {
		return
	}
	if b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) OnPointerClick(ev *PointerEventData) {
	if ev.Button != ButtonLeft {
		return
	}
	b.press()
}

// OnSubmit clicks the button and flashes the pressed tint for one fade.
func (b *Button) OnSubmit(*BaseEventData) {
	b.press()
	if !b.IsActive() || !b.IsInteractable() {
		return
	}
	b.transition(StatePressed, false)
	b.flash = b.Colors.FadeDuration
	if b.flash <= 0 {
		b.transition(b.CurrentState(), true)
	}
}

// Flashing reports whether the submit flash is showing.
func (b *Button) Flashing() bool { return b.flash > 0 }

// Update advances the tint and the submit flash by dt seconds.
func (b *Button) Update(dt float32) {
	b.Selectable.Update(dt)
	if b.flash <= 0 {
		return
	}
	b.flash -= dt
	if b.flash <= 0 {
		b.flash = 0
		b.transition(b.CurrentState(), false)
	}
}
