package canopy

import "strings"

// nodeIDCounter is a plain counter (no atomic, canopy is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// Node is an element of the UI tree. Nodes carry a local transform, an
// optional hit region, and any number of attached event handlers.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Width and Height define the default hit rectangle (0,0)-(Width,Height)
	// in local space when HitShape is nil.
	Width, Height float64

	// Computed
	worldTransform [6]float64
	transformDirty bool

	// Visible=false or Interactable=false removes the whole subtree from
	// hit testing.
	Visible      bool
	Interactable bool

	// ZIndex orders siblings for hit testing; higher is on top.
	ZIndex int

	HitShape HitShape

	// Metadata
	UserData any
	EntityID uint32

	handlers      []handlerEntry
	nextHandlerID uint32

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

type handlerEntry struct {
	id uint32
	h  any
}

// HandlerHandle identifies a handler attached with AddHandler.
type HandlerHandle struct {
	node *Node
	id   uint32
}

// Remove detaches the handler from its node. Safe to call more than once.
func (h HandlerHandle) Remove() {
	if h.node == nil {
		return
	}
	h.node.removeHandler(h.id)
}

// NewNode creates an interactable, visible node with identity scale.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.Interactable = true
	n.transformDirty = true
	n.childrenSorted = true
	n.worldTransform = identityTransform
	return n
}

// NewRect creates a node with a rectangular hit region of the given size.
func NewRect(name string, w, h float64) *Node {
	n := NewNode(name)
	n.Width = w
	n.Height = h
	return n
}

// --- Handlers ---

// AddHandler attaches a handler value. The value may implement any subset
// of the handler interfaces (PointerDownHandler, DragHandler, ...).
// Handlers are invoked in attachment order.
func (n *Node) AddHandler(h any) HandlerHandle {
	if h == nil {
		panic("canopy: cannot add nil handler")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddHandler")
	}
	n.nextHandlerID++
	id := n.nextHandlerID
	n.handlers = append(n.handlers, handlerEntry{id: id, h: h})
	return HandlerHandle{node: n, id: id}
}

func (n *Node) removeHandler(id uint32) {
	for i := range n.handlers {
		if n.handlers[i].id == id {
			copy(n.handlers[i:], n.handlers[i+1:])
			n.handlers[len(n.handlers)-1] = handlerEntry{}
			n.handlers = n.handlers[:len(n.handlers)-1]
			return
		}
	}
}

// NumHandlers returns the number of attached handlers.
func (n *Node) NumHandlers() int {
	return len(n.handlers)
}

// appendHandlers appends the attached handler values to dst.
func (n *Node) appendHandlers(dst []any) []any {
	for i := range n.handlers {
		dst = append(dst, n.handlers[i].h)
	}
	return dst
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("canopy: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("canopy: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("canopy: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("canopy: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("canopy: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// paintOrderChildren returns children sorted by ZIndex, stable on insertion
// order.
func (n *Node) paintOrderChildren() []*Node {
	if n.childrenSorted && n.sortedChildren == nil {
		return n.children
	}
	if n.childrenSorted {
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// --- Queries ---

// IsAncestorOf reports whether n is other or one of other's ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	return isAncestor(n, other)
}

// Path returns the slash-separated names from the root to n.
func (n *Node) Path() string {
	if n == nil {
		return "<nil>"
	}
	var parts []string
	for p := n; p != nil; p = p.Parent {
		parts = append(parts, p.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// FindCommonRoot returns the nearest node that is an ancestor of (or equal
// to) both a and b, or nil if they share none.
func FindCommonRoot(a, b *Node) *Node {
	if a == nil || b == nil {
		return nil
	}
	for t1 := a; t1 != nil; t1 = t1.Parent {
		for t2 := b; t2 != nil; t2 = t2.Parent {
			if t1 == t2 {
				return t1
			}
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Event delivery skips
// disposed nodes.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.handlers = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// alive reports whether n can receive events.
func (n *Node) alive() bool {
	return n != nil && !n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
