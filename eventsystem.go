package canopy

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrAlreadySelecting is returned by SetSelected when it is called from
// inside a select or deselect handler.
var ErrAlreadySelecting = errors.New("canopy: attempting to select while already selecting")

// EntityStore is the interface for optional ECS integration.
// When set on an EventSystem, every event delivered to a node with a
// non-zero EntityID is forwarded to the store.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries a delivered event for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	NodeName string
	// Pointer fields (valid for pointer events)
	PointerID  int
	Button     InputButton
	X, Y       float64
	DeltaX     float64
	DeltaY     float64
	PressX     float64
	PressY     float64
	ClickCount int
	// Move fields (valid for EventMove)
	MoveDir MoveDirection
}

func newInteractionEvent(target *Node, data any, t EventType) InteractionEvent {
	ev := InteractionEvent{Type: t, EntityID: target.EntityID, NodeName: target.Name, MoveDir: MoveNone}
	switch d := data.(type) {
	case *PointerEventData:
		ev.PointerID = d.PointerID
		ev.Button = d.Button
		ev.X, ev.Y = d.Position.X, d.Position.Y
		ev.DeltaX, ev.DeltaY = d.Delta.X, d.Delta.Y
		ev.PressX, ev.PressY = d.PressPosition.X, d.PressPosition.Y
		ev.ClickCount = d.ClickCount
	case *AxisEventData:
		ev.MoveDir = d.MoveDir
	}
	return ev
}

// EventSystem routes input to nodes. It owns the registered input modules,
// the raycaster registry and the selection, and runs one frame per Update.
// It is not safe for concurrent use; call everything from the game loop.
type EventSystem struct {
	// Raycasters is queried by RaycastAll.
	Raycasters *RaycasterRegistry
	// SortingLayers resolves sorting layer ids when ordering hits.
	SortingLayers SortingLayers
	// FirstSelected is selected when a module activates with nothing selected.
	FirstSelected *Node
	// SendNavigationEvents enables move, submit and cancel events.
	SendNavigationEvents bool
	// PixelDragThreshold is the distance a pointer must move past before a
	// drag begins.
	PixelDragThreshold float64

	modules []InputModule
	current InputModule

	selected  *Node
	selecting bool
	dummyData *BaseEventData
	focused   bool

	pollers     []FramePoller
	raycastBuf  []Raycaster
	deferred    []func()
	clock       func() float64
	ticks       int64
	now         float64
	logger      *log.Logger
	debug       bool
	stats       debugStats
	store       EntityStore
	testRunner  *TestRunner
	watcher     *ConfigWatcher
	pendingCfgs chan Config
}

// NewEventSystem creates an EventSystem with an empty raycaster registry,
// navigation events on and the default drag threshold.
func NewEventSystem() *EventSystem {
	s := &EventSystem{
		Raycasters:           NewRaycasterRegistry(),
		SendNavigationEvents: true,
		PixelDragThreshold:   DefaultPixelDragThreshold,
		focused:              true,
		logger:               defaultLogger,
	}
	s.dummyData = NewBaseEventData(s)
	s.clock = s.frameClock
	return s
}

// frameClock advances by one ebiten tick per Update.
func (s *EventSystem) frameClock() float64 {
	s.ticks++
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return float64(s.ticks) / float64(tps)
}

// SetClock replaces the time source used for click and move-repeat timing.
// fn returns seconds and is sampled once at the start of every Update.
// A nil fn restores the default tick clock.
func (s *EventSystem) SetClock(fn func() float64) {
	if fn == nil {
		fn = s.frameClock
	}
	s.clock = fn
}

// Now returns the time sampled at the start of the current Update.
func (s *EventSystem) Now() float64 { return s.now }

// --- Modules ---

// AddModule registers m. Modules are considered for activation in
// registration order. Adding a registered module is a no-op.
func (s *EventSystem) AddModule(m InputModule) {
	for _, c := range s.modules {
		if c == m {
			return
		}
	}
	s.modules = append(s.modules, m)
}

// RemoveModule unregisters m, deactivating it first when it is active.
func (s *EventSystem) RemoveModule(m InputModule) {
	for i, c := range s.modules {
		if c != m {
			continue
		}
		if s.current == m {
			m.Deactivate()
			s.current = nil
		}
		copy(s.modules[i:], s.modules[i+1:])
		s.modules[len(s.modules)-1] = nil
		s.modules = s.modules[:len(s.modules)-1]
		return
	}
}

// Modules returns the registered modules. The returned slice MUST NOT be mutated.
func (s *EventSystem) Modules() []InputModule { return s.modules }

// CurrentInputModule returns the active module, or nil.
func (s *EventSystem) CurrentInputModule() InputModule { return s.current }

// AddPoller registers an input source that is polled at the start of every
// Update. Adding a registered poller is a no-op.
func (s *EventSystem) AddPoller(p FramePoller) {
	for _, c := range s.pollers {
		if c == p {
			return
		}
	}
	s.pollers = append(s.pollers, p)
}

func (s *EventSystem) changeModule(m InputModule) {
	if s.current == m {
		return
	}
	if s.current != nil {
		s.current.Deactivate()
	}
	if s.debug {
		s.logger.Printf("switching input module: %T -> %T", s.current, m)
	}
	s.current = m
	if m != nil {
		m.Activate()
	}
	s.stats.switches++
}

// --- Frame ---

// Update runs one frame: apply reloaded config, sample the clock, poll
// input, tick every module, pick the active module and let it process,
// then run deferred work. On a frame where the active module changes the
// new module does not process.
func (s *EventSystem) Update() {
	s.stats = debugStats{}
	s.applyPendingConfig()
	s.now = s.clock()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	for _, p := range s.pollers {
		p.Poll()
	}

	if s.current != nil && !s.current.Enabled() {
		s.changeModule(nil)
	}

	for _, m := range s.modules {
		if m.Enabled() {
			m.UpdateModule()
		}
	}

	changed := false
	for _, m := range s.modules {
		if !m.Enabled() {
			continue
		}
		if m.IsSupported() && m.ShouldActivate() {
			if s.current != m {
				s.changeModule(m)
				changed = true
			}
			break
		}
	}

	if s.current == nil {
		for _, m := range s.modules {
			if m.Enabled() && m.IsSupported() {
				s.changeModule(m)
				changed = true
				break
			}
		}
	}

	if !changed && s.current != nil {
		s.process(s.current)
	}

	s.flushDeferred()
	s.debugLog()
}

func (s *EventSystem) process(m InputModule) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("error: %T.Process panicked: %v", m, r)
		}
	}()
	m.Process()
}

// Defer queues fn to run after the current frame's module pass. Work
// deferred while deferred work runs is picked up next frame.
func (s *EventSystem) Defer(fn func()) {
	if fn != nil {
		s.deferred = append(s.deferred, fn)
	}
}

func (s *EventSystem) flushDeferred() {
	if len(s.deferred) == 0 {
		return
	}
	jobs := s.deferred
	s.deferred = nil
	for _, fn := range jobs {
		s.runDeferred(fn)
	}
	s.stats.deferred = len(jobs)
}

func (s *EventSystem) runDeferred(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("error: deferred work panicked: %v", r)
		}
	}()
	fn()
}

// --- Raycasting ---

// RaycastAll collects hits from every active registered raycaster into
// results[:0] and sorts them front to back.
func (s *EventSystem) RaycastAll(ev *PointerEventData, results []RaycastResult) []RaycastResult {
	results = results[:0]
	s.raycastBuf = s.Raycasters.Snapshot(s.raycastBuf)
	for _, r := range s.raycastBuf {
		if r == nil || !r.IsActive() {
			continue
		}
		results = r.Raycast(ev, results)
	}
	clear(s.raycastBuf)
	sortRaycastResults(&s.SortingLayers, results)
	s.stats.raycasts++
	return results
}

// IsPointerOverNode reports whether pointer id hovers a node according to
// the active module.
func (s *EventSystem) IsPointerOverNode(id int) bool {
	return s.current != nil && s.current.IsPointerOverNode(id)
}

// IsPointerOverAny reports whether the mouse hovers a node.
func (s *EventSystem) IsPointerOverAny() bool {
	return s.IsPointerOverNode(MouseLeftID)
}

// --- Selection ---

// Selected returns the selected node, or nil. A disposed selection reads
// as nil.
func (s *EventSystem) Selected() *Node {
	if s.selected != nil && s.selected.disposed {
		s.selected = nil
	}
	return s.selected
}

// AlreadySelecting reports whether a selection change is in progress.
func (s *EventSystem) AlreadySelecting() bool { return s.selecting }

// SetSelected makes n the selection. The old selection receives deselect
// and n receives select, both with data (a shared payload when data is
// nil). Selecting the current selection does nothing. Calling SetSelected
// from a select or deselect handler is rejected with ErrAlreadySelecting
// and changes nothing.
func (s *EventSystem) SetSelected(n *Node, data *BaseEventData) error {
	if s.selecting {
		err := fmt.Errorf("%w (target %s)", ErrAlreadySelecting, n.Path())
		s.logger.Printf("error: %v", err)
		return err
	}
	s.selecting = true
	defer func() { s.selecting = false }()

	if n == s.Selected() {
		return nil
	}
	if data == nil {
		data = s.dummyData
		data.Reset()
	}
	Execute(s.selected, data, DeselectEvent)
	s.selected = n
	Execute(n, data, SelectEvent)
	return nil
}

// SetSelectedNode is SetSelected with the system's shared payload.
func (s *EventSystem) SetSelectedNode(n *Node) error {
	return s.SetSelected(n, nil)
}

// --- Focus ---

// SetFocused records whether the application window has focus. Modules
// that ignore input without focus check it.
func (s *EventSystem) SetFocused(focused bool) { s.focused = focused }

// IsFocused reports the last value passed to SetFocused (true initially).
func (s *EventSystem) IsFocused() bool { return s.focused }

// --- Integration ---

// SetEntityStore sets the optional ECS bridge.
func (s *EventSystem) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *EventSystem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Selected: %s\n", s.Selected().Path())
	if s.current == nil {
		sb.WriteString("No module")
		return sb.String()
	}
	if str, ok := s.current.(fmt.Stringer); ok {
		sb.WriteString(str.String())
	} else {
		fmt.Fprintf(&sb, "%T", s.current)
	}
	return sb.String()
}
