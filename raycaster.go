package canopy

import (
	"cmp"
	"math"
	"slices"
)

// DefaultPriority is the sort and render order priority of raycasters that
// do not override it. It loses against any explicit priority.
const DefaultPriority = math.MinInt

// Raycaster produces hit candidates for a pointer position. Implementations
// must be pointer types: the registry and the result comparator compare
// raycasters by identity.
type Raycaster interface {
	// Raycast appends the hits under ev.Position to results and returns the
	// extended slice.
	Raycast(ev *PointerEventData, results []RaycastResult) []RaycastResult
	// EventCamera is the camera the raycaster projects through, or nil for a
	// screen-space raycaster.
	EventCamera() *Camera
	SortOrderPriority() int
	RenderOrderPriority() int
	IsActive() bool
}

// RaycasterRegistry is the set of raycasters queried by an EventSystem.
// It is not safe for concurrent use.
type RaycasterRegistry struct {
	list []Raycaster
}

// NewRaycasterRegistry creates an empty registry.
func NewRaycasterRegistry() *RaycasterRegistry {
	return &RaycasterRegistry{}
}

// Add registers r. Adding a registered raycaster is a no-op.
func (reg *RaycasterRegistry) Add(r Raycaster) {
	if r == nil || reg.Contains(r) {
		return
	}
	reg.list = append(reg.list, r)
}

// Remove unregisters r. Removing an unknown raycaster is a no-op.
func (reg *RaycasterRegistry) Remove(r Raycaster) {
	for i, c := range reg.list {
		if c == r {
			copy(reg.list[i:], reg.list[i+1:])
			reg.list[len(reg.list)-1] = nil
			reg.list = reg.list[:len(reg.list)-1]
			return
		}
	}
}

// Contains reports whether r is registered.
func (reg *RaycasterRegistry) Contains(r Raycaster) bool {
	for _, c := range reg.list {
		if c == r {
			return true
		}
	}
	return false
}

// Len returns the number of registered raycasters.
func (reg *RaycasterRegistry) Len() int {
	return len(reg.list)
}

// Snapshot appends the registered raycasters, in registration order, to
// dst[:0]. Registration order carries no priority.
func (reg *RaycasterRegistry) Snapshot(dst []Raycaster) []Raycaster {
	return append(dst[:0], reg.list...)
}

// SortingLayers maps sorting layer ids to their draw order. Layers that
// were never assigned an order sort by their raw id.
type SortingLayers struct {
	order map[int]int
}

// SetOrder assigns the draw order of layer id.
func (s *SortingLayers) SetOrder(id, order int) {
	if s.order == nil {
		s.order = make(map[int]int)
	}
	s.order[id] = order
}

// Value returns the resolved order of layer id.
func (s *SortingLayers) Value(id int) int {
	if s != nil {
		if v, ok := s.order[id]; ok {
			return v
		}
	}
	return id
}

// compareRaycastResults orders hits front to back. Returns a negative number
// when lhs must be processed before rhs.
func compareRaycastResults(layers *SortingLayers, lhs, rhs *RaycastResult) int {
	if lhs.Module != rhs.Module && lhs.Module != nil && rhs.Module != nil {
		lc, rc := lhs.Module.EventCamera(), rhs.Module.EventCamera()
		if lc != nil && rc != nil && lc.Depth != rc.Depth {
			return cmp.Compare(rc.Depth, lc.Depth)
		}
		if l, r := lhs.Module.SortOrderPriority(), rhs.Module.SortOrderPriority(); l != r {
			return cmp.Compare(r, l)
		}
		if l, r := lhs.Module.RenderOrderPriority(), rhs.Module.RenderOrderPriority(); l != r {
			return cmp.Compare(r, l)
		}
	}

	if lhs.SortingLayer != rhs.SortingLayer {
		if l, r := layers.Value(lhs.SortingLayer), layers.Value(rhs.SortingLayer); l != r {
			return cmp.Compare(r, l)
		}
	}
	if lhs.SortingOrder != rhs.SortingOrder {
		return cmp.Compare(rhs.SortingOrder, lhs.SortingOrder)
	}
	if lhs.Depth != rhs.Depth {
		return cmp.Compare(rhs.Depth, lhs.Depth)
	}
	if lhs.Distance != rhs.Distance {
		return cmp.Compare(lhs.Distance, rhs.Distance)
	}
	return cmp.Compare(lhs.Index, rhs.Index)
}

// sortRaycastResults assigns insertion indices and sorts results front to
// back.
func sortRaycastResults(layers *SortingLayers, results []RaycastResult) {
	for i := range results {
		results[i].Index = i
	}
	slices.SortFunc(results, func(a, b RaycastResult) int {
		return compareRaycastResults(layers, &a, &b)
	})
}

// FindFirstRaycast returns the first result with a node, or the zero result.
func FindFirstRaycast(results []RaycastResult) RaycastResult {
	for i := range results {
		if results[i].Node != nil {
			return results[i]
		}
	}
	return RaycastResult{}
}
