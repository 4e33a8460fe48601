package canopy

import (
	"slices"

	"github.com/jakecoffman/cp"
)

// ShapeBinding ties a physics shape to the node that receives its events.
type ShapeBinding struct {
	Node         *Node
	SortingLayer int
	SortingOrder int

	seq int
}

// Physics2DRaycaster hit-tests a Chipmunk space. Shapes are mapped to nodes
// through Bind; unbound shapes are ignored.
type Physics2DRaycaster struct {
	Space  *cp.Space
	Camera *Camera
	// Filter selects the shapes considered by the point query.
	Filter cp.ShapeFilter
	// MaxIntersections caps the hits reported per query. Zero means no cap.
	MaxIntersections int

	SortPriority   int
	RenderPriority int
	Enabled        bool

	bindings map[*cp.Shape]*ShapeBinding
	nextSeq  int
	hits     []physicsHit
}

type physicsHit struct {
	binding  *ShapeBinding
	gradient cp.Vector
}

// NewPhysics2DRaycaster creates an enabled raycaster over space that
// considers every shape.
func NewPhysics2DRaycaster(space *cp.Space, cam *Camera) *Physics2DRaycaster {
	return &Physics2DRaycaster{
		Space:          space,
		Camera:         cam,
		Filter:         cp.SHAPE_FILTER_ALL,
		SortPriority:   DefaultPriority,
		RenderPriority: DefaultPriority,
		Enabled:        true,
		bindings:       make(map[*cp.Shape]*ShapeBinding),
	}
}

// Bind maps shape to node. Rebinding a shape replaces its binding but keeps
// its original position in the tie-break order.
func (r *Physics2DRaycaster) Bind(shape *cp.Shape, b ShapeBinding) {
	if old, ok := r.bindings[shape]; ok {
		b.seq = old.seq
	} else {
		r.nextSeq++
		b.seq = r.nextSeq
	}
	r.bindings[shape] = &b
}

// Unbind removes the mapping for shape.
func (r *Physics2DRaycaster) Unbind(shape *cp.Shape) {
	delete(r.bindings, shape)
}

func (r *Physics2DRaycaster) EventCamera() *Camera     { return r.Camera }
func (r *Physics2DRaycaster) SortOrderPriority() int   { return r.SortPriority }
func (r *Physics2DRaycaster) RenderOrderPriority() int { return r.RenderPriority }

// IsActive reports whether the raycaster is enabled and has a space.
func (r *Physics2DRaycaster) IsActive() bool {
	return r.Enabled && r.Space != nil
}

// Raycast appends every bound shape containing the pointer's world position.
// Distance is measured from the camera center (or the world origin) to the
// query point.
func (r *Physics2DRaycaster) Raycast(ev *PointerEventData, results []RaycastResult) []RaycastResult {
	if !r.IsActive() {
		return results
	}
	if r.Camera != nil && !r.Camera.InViewport(ev.Position.X, ev.Position.Y) {
		return results
	}

	world := screenToWorld(r.Camera, ev.Position)
	r.hits = r.hits[:0]
	pt := cp.Vector{X: world.X, Y: world.Y}
	// Narrow the broad-phase candidates to shapes containing the point.
	r.Space.BBQuery(cp.NewBBForCircle(pt, 0), r.Filter, func(shape *cp.Shape, data interface{}) {
		b, ok := r.bindings[shape]
		if !ok || !b.Node.alive() || !b.Node.Visible || !b.Node.Interactable {
			return
		}
		info := shape.PointQuery(pt)
		if info.Distance > 0 {
			return
		}
		r.hits = append(r.hits, physicsHit{binding: b, gradient: info.Gradient})
	}, nil)

	// The spatial index reports shapes in no stable order.
	slices.SortFunc(r.hits, func(a, b physicsHit) int {
		return a.binding.seq - b.binding.seq
	})
	if r.MaxIntersections > 0 && len(r.hits) > r.MaxIntersections {
		r.hits = r.hits[:r.MaxIntersections]
	}

	var origin Vec2
	if r.Camera != nil {
		origin = Vec2{r.Camera.X, r.Camera.Y}
	}
	dist := world.Sub(origin).Magnitude()
	for _, h := range r.hits {
		results = append(results, RaycastResult{
			Node:           h.binding.Node,
			Module:         r,
			Distance:       dist,
			SortingLayer:   h.binding.SortingLayer,
			SortingOrder:   h.binding.SortingOrder,
			WorldPosition:  world,
			WorldNormal:    Vec2{h.gradient.X, h.gradient.Y},
			ScreenPosition: ev.Position,
		})
	}
	for i := range r.hits {
		r.hits[i] = physicsHit{}
	}
	return results
}
