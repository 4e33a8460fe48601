package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AxisBinding lists the keys that drive a named axis toward -1 and +1.
type AxisBinding struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
}

// KeyBindings maps named axes and virtual buttons to keyboard keys. Key
// names are ebiten key names ("ArrowLeft", "A", "Enter", ...).
type KeyBindings struct {
	Axes    map[string]AxisBinding `yaml:"axes"`
	Buttons map[string][]string    `yaml:"buttons"`
}

// DefaultKeyBindings binds the axis and button names the standalone module
// uses by default: arrows and WASD for movement, Enter and Space to submit,
// Escape to cancel. Positive Vertical is up.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Axes: map[string]AxisBinding{
			"Horizontal": {Negative: []string{"ArrowLeft", "A"}, Positive: []string{"ArrowRight", "D"}},
			"Vertical":   {Negative: []string{"ArrowDown", "S"}, Positive: []string{"ArrowUp", "W"}},
		},
		Buttons: map[string][]string{
			"Submit": {"Enter", "Space"},
			"Cancel": {"Escape"},
		},
	}
}

type axisKeys struct {
	negative []ebiten.Key
	positive []ebiten.Key
}

// EbitenInput implements Input on top of ebiten's polled device state.
// Register it with EventSystem.AddPoller so touches are sampled each tick.
type EbitenInput struct {
	axes    map[string]axisKeys
	buttons map[string][]ebiten.Key

	touchIDs []ebiten.TouchID
	released []ebiten.TouchID
	lastPos  map[ebiten.TouchID]Vec2
	touches  []Touch
}

// NewEbitenInput resolves key names in b. It fails on an unknown key name.
func NewEbitenInput(b KeyBindings) (*EbitenInput, error) {
	in := &EbitenInput{lastPos: make(map[ebiten.TouchID]Vec2)}
	if err := in.Rebind(b); err != nil {
		return nil, err
	}
	return in, nil
}

// Rebind replaces the key bindings. On error the old bindings stay in place.
func (in *EbitenInput) Rebind(b KeyBindings) error {
	axes := make(map[string]axisKeys, len(b.Axes))
	buttons := make(map[string][]ebiten.Key, len(b.Buttons))
	for name, ab := range b.Axes {
		neg, err := parseKeys(ab.Negative)
		if err != nil {
			return fmt.Errorf("canopy: axis %q: %w", name, err)
		}
		pos, err := parseKeys(ab.Positive)
		if err != nil {
			return fmt.Errorf("canopy: axis %q: %w", name, err)
		}
		axes[name] = axisKeys{negative: neg, positive: pos}
	}
	for name, names := range b.Buttons {
		keys, err := parseKeys(names)
		if err != nil {
			return fmt.Errorf("canopy: button %q: %w", name, err)
		}
		buttons[name] = keys
	}
	in.axes = axes
	in.buttons = buttons
	return nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Poll samples touch state for the current tick.
func (in *EbitenInput) Poll() {
	in.touches = in.touches[:0]

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		x, y := ebiten.TouchPosition(id)
		pos := Vec2{float64(x), float64(y)}
		phase := TouchStationary
		prev, seen := in.lastPos[id]
		switch {
		case inpututil.TouchPressDuration(id) <= 1 || !seen:
			phase = TouchBegan
		case prev != pos:
			phase = TouchMoved
		}
		in.lastPos[id] = pos
		in.touches = append(in.touches, Touch{FingerID: int(id), Position: pos, Phase: phase})
	}

	in.released = inpututil.AppendJustReleasedTouchIDs(in.released[:0])
	for _, id := range in.released {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		pos := Vec2{float64(x), float64(y)}
		if last, ok := in.lastPos[id]; ok {
			pos = last
		}
		delete(in.lastPos, id)
		in.touches = append(in.touches, Touch{FingerID: int(id), Position: pos, Phase: TouchEnded})
	}
}

func (in *EbitenInput) MousePresent() bool { return true }

func (in *EbitenInput) MousePosition() Vec2 {
	x, y := ebiten.CursorPosition()
	return Vec2{float64(x), float64(y)}
}

func (in *EbitenInput) MouseScrollDelta() Vec2 {
	x, y := ebiten.Wheel()
	return Vec2{x, y}
}

func (in *EbitenInput) MouseButton(b InputButton) bool {
	return ebiten.IsMouseButtonPressed(ebitenButton(b))
}

func (in *EbitenInput) MouseButtonDown(b InputButton) bool {
	return inpututil.IsMouseButtonJustPressed(ebitenButton(b))
}

func (in *EbitenInput) MouseButtonUp(b InputButton) bool {
	return inpututil.IsMouseButtonJustReleased(ebitenButton(b))
}

func (in *EbitenInput) TouchSupported() bool { return true }
func (in *EbitenInput) TouchCount() int      { return len(in.touches) }
func (in *EbitenInput) Touch(i int) Touch    { return in.touches[i] }

// AxisRaw returns -1, 0, or 1 depending on which of the axis keys are held.
func (in *EbitenInput) AxisRaw(name string) float64 {
	ak, ok := in.axes[name]
	if !ok {
		return 0
	}
	var v float64
	if anyKeyPressed(ak.positive) {
		v++
	}
	if anyKeyPressed(ak.negative) {
		v--
	}
	return v
}

// ButtonDown reports a press edge on a virtual button, or on any key of an
// axis with that name.
func (in *EbitenInput) ButtonDown(name string) bool {
	if keys, ok := in.buttons[name]; ok {
		return anyKeyJustPressed(keys)
	}
	if ak, ok := in.axes[name]; ok {
		return anyKeyJustPressed(ak.positive) || anyKeyJustPressed(ak.negative)
	}
	return false
}

func (in *EbitenInput) CursorLocked() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

func ebitenButton(b InputButton) ebiten.MouseButton {
	switch b {
	case ButtonRight:
		return ebiten.MouseButtonRight
	case ButtonMiddle:
		return ebiten.MouseButtonMiddle
	}
	return ebiten.MouseButtonLeft
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyKeyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
