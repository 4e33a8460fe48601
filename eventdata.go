package canopy

import (
	"fmt"
	"strings"
)

// EventData is implemented by every event payload. Base exposes the shared
// part so delivery and selection code can work with any payload.
type EventData interface {
	Base() *BaseEventData
}

// BaseEventData carries the fields common to every event: the owning
// EventSystem and the used flag.
type BaseEventData struct {
	system *EventSystem
	used   bool
}

// NewBaseEventData creates event data bound to sys.
func NewBaseEventData(sys *EventSystem) *BaseEventData {
	return &BaseEventData{system: sys}
}

// Base returns d.
func (d *BaseEventData) Base() *BaseEventData { return d }

// Reset clears the used flag so the payload can be delivered again.
func (d *BaseEventData) Reset() { d.used = false }

// Use marks the event as consumed. Input modules stop further processing
// of a used move, submit, or update-selected event for the frame.
func (d *BaseEventData) Use() { d.used = true }

// Used reports whether Use was called since the last Reset.
func (d *BaseEventData) Used() bool { return d.used }

// System returns the EventSystem this payload belongs to.
func (d *BaseEventData) System() *EventSystem { return d.system }

// SelectedNode returns the system's current selection, or nil.
func (d *BaseEventData) SelectedNode() *Node {
	if d.system == nil {
		return nil
	}
	return d.system.Selected()
}

// SetSelectedNode changes the system's selection using this payload for the
// select and deselect events.
func (d *BaseEventData) SetSelectedNode(n *Node) error {
	if d.system == nil {
		return nil
	}
	return d.system.SetSelected(n, d)
}

// AxisEventData is the payload of move events.
type AxisEventData struct {
	BaseEventData
	MoveVector Vec2
	MoveDir    MoveDirection
}

// NewAxisEventData creates axis event data bound to sys.
func NewAxisEventData(sys *EventSystem) *AxisEventData {
	return &AxisEventData{BaseEventData: BaseEventData{system: sys}, MoveDir: MoveNone}
}

// PointerEventData is the per-pointer record kept by pointer input modules
// and the payload of every pointer event. Modules own and mutate it; handlers
// read it and may adjust UseDragThreshold or EligibleForClick.
type PointerEventData struct {
	BaseEventData

	PointerID     int
	Button        InputButton
	Position      Vec2
	Delta         Vec2
	PressPosition Vec2
	ScrollDelta   Vec2

	// PointerEnter is the node the pointer is currently over (the hover root).
	PointerEnter *Node
	// RawPointerPress is the node under the pointer at press time, whether or
	// not it handled the press.
	RawPointerPress *Node
	// PointerDrag is the node receiving drag events for this press.
	PointerDrag *Node
	// Hovered holds every node currently receiving hover, deepest first.
	Hovered []*Node

	PointerCurrentRaycast RaycastResult
	PointerPressRaycast   RaycastResult

	EligibleForClick bool
	ClickCount       int
	ClickTime        float64
	UseDragThreshold bool
	Dragging         bool

	pointerPress *Node
	lastPress    *Node
}

// NewPointerEventData creates pointer event data bound to sys.
func NewPointerEventData(sys *EventSystem) *PointerEventData {
	return &PointerEventData{
		BaseEventData:    BaseEventData{system: sys},
		PointerID:        MouseLeftID,
		UseDragThreshold: true,
	}
}

// PointerPress returns the node that handled the press, or nil.
func (d *PointerEventData) PointerPress() *Node { return d.pointerPress }

// LastPress returns the previous press target. It is updated only when
// the press target changes to a different node.
func (d *PointerEventData) LastPress() *Node { return d.lastPress }

// SetPointerPress changes the press target, remembering the old one as
// LastPress when it differs.
func (d *PointerEventData) SetPointerPress(n *Node) {
	if d.pointerPress == n {
		return
	}
	d.lastPress = d.pointerPress
	d.pointerPress = n
}

// IsPointerMoving reports whether the pointer moved this frame.
func (d *PointerEventData) IsPointerMoving() bool {
	return d.Delta.SqrMagnitude() > 0
}

// IsScrolling reports whether there is scroll input this frame.
func (d *PointerEventData) IsScrolling() bool {
	return d.ScrollDelta.SqrMagnitude() > 0
}

// PressWorldPosition is the world-space point of the press raycast.
func (d *PointerEventData) PressWorldPosition() Vec2 {
	return d.PointerPressRaycast.WorldPosition
}

func (d *PointerEventData) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "position: %v\n", d.Position)
	fmt.Fprintf(&sb, "delta: %v\n", d.Delta)
	fmt.Fprintf(&sb, "eligibleForClick: %v\n", d.EligibleForClick)
	fmt.Fprintf(&sb, "pointerEnter: %s\n", d.PointerEnter.Path())
	fmt.Fprintf(&sb, "pointerPress: %s\n", d.pointerPress.Path())
	fmt.Fprintf(&sb, "lastPress: %s\n", d.lastPress.Path())
	fmt.Fprintf(&sb, "pointerDrag: %s\n", d.PointerDrag.Path())
	fmt.Fprintf(&sb, "useDragThreshold: %v\n", d.UseDragThreshold)
	fmt.Fprintf(&sb, "currentRaycast:\n%s\n", d.PointerCurrentRaycast)
	fmt.Fprintf(&sb, "pressRaycast:\n%s\n", d.PointerPressRaycast)
	return sb.String()
}

// RaycastResult is one hit produced by a Raycaster.
type RaycastResult struct {
	Node   *Node
	Module Raycaster

	Distance     float64
	Depth        float64
	SortingLayer int
	SortingOrder int
	// Index is the insertion order within one raycast pass; it is the final
	// sort tie-break.
	Index int

	WorldPosition  Vec2
	WorldNormal    Vec2
	ScreenPosition Vec2
}

// IsValid reports whether the result has both a node and a raycaster.
func (r RaycastResult) IsValid() bool {
	return r.Node != nil && r.Module != nil
}

func (r RaycastResult) String() string {
	if !r.IsValid() {
		return ""
	}
	return fmt.Sprintf("Name: %s\nmodule: %T\ndistance: %v\nindex: %d\ndepth: %v\nworldNormal: %v\nworldPosition: %v\nscreenPosition: %v\nsortingLayer: %d\nsortingOrder: %d",
		r.Node.Path(), r.Module, r.Distance, r.Index, r.Depth, r.WorldNormal, r.WorldPosition, r.ScreenPosition, r.SortingLayer, r.SortingOrder)
}
