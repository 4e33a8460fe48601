package canopy

// Handler interfaces. A value attached to a Node with AddHandler receives
// every event whose interface it implements; there is no base type.

type PointerEnterHandler interface {
	OnPointerEnter(ev *PointerEventData)
}

type PointerExitHandler interface {
	OnPointerExit(ev *PointerEventData)
}

type PointerDownHandler interface {
	OnPointerDown(ev *PointerEventData)
}

type PointerUpHandler interface {
	OnPointerUp(ev *PointerEventData)
}

type PointerClickHandler interface {
	OnPointerClick(ev *PointerEventData)
}

// InitializePotentialDragHandler is notified at press time when the node
// was chosen as the drag target, before any movement. Setting
// ev.UseDragThreshold = false here makes dragging start on the first move.
type InitializePotentialDragHandler interface {
	OnInitializePotentialDrag(ev *PointerEventData)
}

type BeginDragHandler interface {
	OnBeginDrag(ev *PointerEventData)
}

type DragHandler interface {
	OnDrag(ev *PointerEventData)
}

type EndDragHandler interface {
	OnEndDrag(ev *PointerEventData)
}

type DropHandler interface {
	OnDrop(ev *PointerEventData)
}

type ScrollHandler interface {
	OnScroll(ev *PointerEventData)
}

// UpdateSelectedHandler is called once per frame on the selected node.
type UpdateSelectedHandler interface {
	OnUpdateSelected(ev *BaseEventData)
}

type SelectHandler interface {
	OnSelect(ev *BaseEventData)
}

type DeselectHandler interface {
	OnDeselect(ev *BaseEventData)
}

type MoveHandler interface {
	OnMove(ev *AxisEventData)
}

type SubmitHandler interface {
	OnSubmit(ev *BaseEventData)
}

type CancelHandler interface {
	OnCancel(ev *BaseEventData)
}

// Enabler is an optional interface. Handlers reporting Enabled() == false
// are skipped during delivery and do not count as handling an event.
type Enabler interface {
	Enabled() bool
}

// --- Function adapters ---
//
// Each adapter turns a plain func into a single-capability handler:
//
//	node.AddHandler(canopy.PointerClickFunc(func(ev *canopy.PointerEventData) {
//		fmt.Println("clicked", ev.ClickCount)
//	}))

type PointerEnterFunc func(ev *PointerEventData)

func (f PointerEnterFunc) OnPointerEnter(ev *PointerEventData) { f(ev) }

type PointerExitFunc func(ev *PointerEventData)

func (f PointerExitFunc) OnPointerExit(ev *PointerEventData) { f(ev) }

type PointerDownFunc func(ev *PointerEventData)

func (f PointerDownFunc) OnPointerDown(ev *PointerEventData) { f(ev) }

type PointerUpFunc func(ev *PointerEventData)

func (f PointerUpFunc) OnPointerUp(ev *PointerEventData) { f(ev) }

type PointerClickFunc func(ev *PointerEventData)

func (f PointerClickFunc) OnPointerClick(ev *PointerEventData) { f(ev) }

type InitializePotentialDragFunc func(ev *PointerEventData)

func (f InitializePotentialDragFunc) OnInitializePotentialDrag(ev *PointerEventData) { f(ev) }

type BeginDragFunc func(ev *PointerEventData)

func (f BeginDragFunc) OnBeginDrag(ev *PointerEventData) { f(ev) }

type DragFunc func(ev *PointerEventData)

func (f DragFunc) OnDrag(ev *PointerEventData) { f(ev) }

type EndDragFunc func(ev *PointerEventData)

func (f EndDragFunc) OnEndDrag(ev *PointerEventData) { f(ev) }

type DropFunc func(ev *PointerEventData)

func (f DropFunc) OnDrop(ev *PointerEventData) { f(ev) }

type ScrollFunc func(ev *PointerEventData)

func (f ScrollFunc) OnScroll(ev *PointerEventData) { f(ev) }

type UpdateSelectedFunc func(ev *BaseEventData)

func (f UpdateSelectedFunc) OnUpdateSelected(ev *BaseEventData) { f(ev) }

type SelectFunc func(ev *BaseEventData)

func (f SelectFunc) OnSelect(ev *BaseEventData) { f(ev) }

type DeselectFunc func(ev *BaseEventData)

func (f DeselectFunc) OnDeselect(ev *BaseEventData) { f(ev) }

type MoveFunc func(ev *AxisEventData)

func (f MoveFunc) OnMove(ev *AxisEventData) { f(ev) }

type SubmitFunc func(ev *BaseEventData)

func (f SubmitFunc) OnSubmit(ev *BaseEventData) { f(ev) }

type CancelFunc func(ev *BaseEventData)

func (f CancelFunc) OnCancel(ev *BaseEventData) { f(ev) }
