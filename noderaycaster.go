package canopy

// NodeRaycaster hit-tests a Node tree against the hit regions of its nodes
// (HitShape, or the Width x Height rectangle). Every hit node is reported,
// topmost first, with Depth set to its painter-order index so later-drawn
// nodes win.
type NodeRaycaster struct {
	Root *Node
	// Camera converts screen positions to the tree's world space. Nil means
	// the tree lives in screen space.
	Camera *Camera

	// SortingLayer and SortingOrder are stamped on every result.
	SortingLayer int
	SortingOrder int

	// SortPriority and RenderPriority order this raycaster against others.
	// Both default to DefaultPriority.
	SortPriority   int
	RenderPriority int

	Enabled bool

	paintBuf []*Node
}

// NewNodeRaycaster creates an enabled raycaster over root.
func NewNodeRaycaster(root *Node, cam *Camera) *NodeRaycaster {
	return &NodeRaycaster{
		Root:           root,
		Camera:         cam,
		SortPriority:   DefaultPriority,
		RenderPriority: DefaultPriority,
		Enabled:        true,
	}
}

func (r *NodeRaycaster) EventCamera() *Camera     { return r.Camera }
func (r *NodeRaycaster) SortOrderPriority() int   { return r.SortPriority }
func (r *NodeRaycaster) RenderOrderPriority() int { return r.RenderPriority }

// IsActive reports whether the raycaster is enabled and has a live root.
func (r *NodeRaycaster) IsActive() bool {
	return r.Enabled && r.Root.alive()
}

// Raycast appends every node under ev.Position.
func (r *NodeRaycaster) Raycast(ev *PointerEventData, results []RaycastResult) []RaycastResult {
	if !r.IsActive() {
		return results
	}
	if r.Camera != nil && !r.Camera.InViewport(ev.Position.X, ev.Position.Y) {
		return results
	}

	r.Root.UpdateTransforms()
	world := screenToWorld(r.Camera, ev.Position)

	r.paintBuf = collectInteractable(r.Root, r.paintBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(r.paintBuf) - 1; i >= 0; i-- {
		n := r.paintBuf[i]
		lx, ly, ok := n.WorldToLocal(world.X, world.Y)
		if !ok || !nodeContainsLocal(n, lx, ly) {
			continue
		}
		results = append(results, RaycastResult{
			Node:           n,
			Module:         r,
			Depth:          float64(i),
			SortingLayer:   r.SortingLayer,
			SortingOrder:   r.SortingOrder,
			WorldPosition:  world,
			ScreenPosition: ev.Position,
		})
	}
	for i := range r.paintBuf {
		r.paintBuf[i] = nil
	}
	return results
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable || n.disposed {
		return buf
	}
	if hitTestable(n) {
		buf = append(buf, n)
	}
	for _, child := range n.paintOrderChildren() {
		buf = collectInteractable(child, buf)
	}
	return buf
}
