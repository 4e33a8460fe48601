package canopy

// EventFunc pairs an event type with the handler method that delivers it.
// The predefined values below cover every handler interface; Execute and
// ExecuteHierarchy take one of them.
type EventFunc[H any, D EventData] struct {
	Type   EventType
	invoke func(H, D)
}

// NewEventFunc builds an EventFunc for a custom handler interface.
func NewEventFunc[H any, D EventData](t EventType, invoke func(H, D)) EventFunc[H, D] {
	return EventFunc[H, D]{Type: t, invoke: invoke}
}

var (
	PointerEnterEvent            = EventFunc[PointerEnterHandler, *PointerEventData]{EventPointerEnter, PointerEnterHandler.OnPointerEnter}
	PointerExitEvent             = EventFunc[PointerExitHandler, *PointerEventData]{EventPointerExit, PointerExitHandler.OnPointerExit}
	PointerDownEvent             = EventFunc[PointerDownHandler, *PointerEventData]{EventPointerDown, PointerDownHandler.OnPointerDown}
	PointerUpEvent               = EventFunc[PointerUpHandler, *PointerEventData]{EventPointerUp, PointerUpHandler.OnPointerUp}
	PointerClickEvent            = EventFunc[PointerClickHandler, *PointerEventData]{EventPointerClick, PointerClickHandler.OnPointerClick}
	InitializePotentialDragEvent = EventFunc[InitializePotentialDragHandler, *PointerEventData]{EventInitializePotentialDrag, InitializePotentialDragHandler.OnInitializePotentialDrag}
	BeginDragEvent               = EventFunc[BeginDragHandler, *PointerEventData]{EventBeginDrag, BeginDragHandler.OnBeginDrag}
	DragEvent                    = EventFunc[DragHandler, *PointerEventData]{EventDrag, DragHandler.OnDrag}
	EndDragEvent                 = EventFunc[EndDragHandler, *PointerEventData]{EventEndDrag, EndDragHandler.OnEndDrag}
	DropEvent                    = EventFunc[DropHandler, *PointerEventData]{EventDrop, DropHandler.OnDrop}
	ScrollEvent                  = EventFunc[ScrollHandler, *PointerEventData]{EventScroll, ScrollHandler.OnScroll}
	UpdateSelectedEvent          = EventFunc[UpdateSelectedHandler, *BaseEventData]{EventUpdateSelected, UpdateSelectedHandler.OnUpdateSelected}
	SelectEvent                  = EventFunc[SelectHandler, *BaseEventData]{EventSelect, SelectHandler.OnSelect}
	DeselectEvent                = EventFunc[DeselectHandler, *BaseEventData]{EventDeselect, DeselectHandler.OnDeselect}
	MoveEvent                    = EventFunc[MoveHandler, *AxisEventData]{EventMove, MoveHandler.OnMove}
	SubmitEvent                  = EventFunc[SubmitHandler, *BaseEventData]{EventSubmit, SubmitHandler.OnSubmit}
	CancelEvent                  = EventFunc[CancelHandler, *BaseEventData]{EventCancel, CancelHandler.OnCancel}
)

// Execute delivers data to every enabled handler on target that implements
// H, in attachment order. It reports whether at least one handler received
// the event. A nil or disposed target is a no-op. A panicking handler is
// recovered and logged; delivery continues with the next handler.
func Execute[H any, D EventData](target *Node, data D, fn EventFunc[H, D]) bool {
	if !target.alive() {
		return false
	}

	// Snapshot so handlers may attach or detach handlers during delivery.
	buf := handlerListPool.Get()
	*buf = target.appendHandlers(*buf)

	handled := false
	for _, v := range *buf {
		h, ok := v.(H)
		if !ok || !handlerEnabled(v) {
			continue
		}
		handled = true
		invokeHandler(target, data, fn, h)
	}
	handlerListPool.Release(buf)

	if handled {
		notifyDelivered(target, data, fn.Type)
	}
	return handled
}

// ExecuteHierarchy walks root and its ancestors and executes fn on the first
// node that handles it. Returns that node, or nil if none did.
func ExecuteHierarchy[H any, D EventData](root *Node, data D, fn EventFunc[H, D]) *Node {
	if !root.alive() {
		return nil
	}
	chain := nodeListPool.Get()
	for n := root; n != nil; n = n.Parent {
		*chain = append(*chain, n)
	}
	var hit *Node
	for _, n := range *chain {
		if Execute(n, data, fn) {
			hit = n
			break
		}
	}
	nodeListPool.Release(chain)
	return hit
}

// CanHandle reports whether n has at least one enabled handler implementing H.
func CanHandle[H any](n *Node) bool {
	if !n.alive() {
		return false
	}
	for i := range n.handlers {
		v := n.handlers[i].h
		if _, ok := v.(H); ok && handlerEnabled(v) {
			return true
		}
	}
	return false
}

// GetEventHandler returns root or its nearest ancestor that can handle H,
// or nil.
func GetEventHandler[H any](root *Node) *Node {
	if !root.alive() {
		return nil
	}
	for n := root; n != nil; n = n.Parent {
		if CanHandle[H](n) {
			return n
		}
	}
	return nil
}

func handlerEnabled(v any) bool {
	if e, ok := v.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func invokeHandler[H any, D EventData](target *Node, data D, fn EventFunc[H, D], h H) {
	defer func() {
		if r := recover(); r != nil {
			loggerFor(data.Base().system).Printf("error: %s handler on %q panicked: %v", fn.Type, target.Path(), r)
		}
	}()
	fn.invoke(h, data)
}

// notifyDelivered updates debug stats and forwards the event to the entity
// store when the target is bound to an entity.
func notifyDelivered[D EventData](target *Node, data D, t EventType) {
	sys := data.Base().system
	if sys == nil {
		return
	}
	sys.stats.delivered++
	if sys.store == nil || target.EntityID == 0 {
		return
	}
	sys.store.EmitEvent(newInteractionEvent(target, any(data), t))
}
