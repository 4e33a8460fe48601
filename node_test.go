package canopy

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Interactable {
		t.Error("Interactable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestNewRectSize(t *testing.T) {
	n := NewRect("r", 30, 20)
	if n.Width != 30 || n.Height != 20 {
		t.Errorf("size = (%v, %v), want (30, 20)", n.Width, n.Height)
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should contain child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("a.NumChildren() = %d, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewNode("a").AddChild(nil)
}

func TestAddChildAt(t *testing.T) {
	p := NewNode("p")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)

	want := []*Node{a, b, c}
	for i, w := range want {
		if p.ChildAt(i) != w {
			t.Errorf("ChildAt(%d) = %q, want %q", i, p.ChildAt(i).Name, w.Name)
		}
	}
}

func TestRemoveChild(t *testing.T) {
	p := NewNode("p")
	c := NewNode("c")
	p.AddChild(c)
	p.RemoveChild(c)

	if c.Parent != nil {
		t.Error("child.Parent should be nil")
	}
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren() = %d, want 0", p.NumChildren())
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewNode("p")
	other := NewNode("other")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.RemoveChild(other)
}

func TestRemoveChildAt(t *testing.T) {
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	p.AddChild(a)
	p.AddChild(b)

	got := p.RemoveChildAt(0)
	if got != a {
		t.Errorf("RemoveChildAt(0) = %q, want a", got.Name)
	}
	if p.NumChildren() != 1 || p.ChildAt(0) != b {
		t.Error("b should remain")
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewNode("orphan").RemoveFromParent() // must not panic
}

func TestRemoveChildren(t *testing.T) {
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	p.AddChild(a)
	p.AddChild(b)
	p.RemoveChildren()

	if p.NumChildren() != 0 {
		t.Errorf("NumChildren() = %d, want 0", p.NumChildren())
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("children should be detached")
	}
	if a.IsDisposed() {
		t.Error("RemoveChildren must not dispose")
	}
}

// --- Paint order ---

func TestPaintOrderChildrenZIndex(t *testing.T) {
	p := NewNode("p")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	a.SetZIndex(2)
	c.SetZIndex(-1)

	got := p.paintOrderChildren()
	want := []string{"c", "b", "a"}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("paintOrderChildren()[%d] = %q, want %q", i, got[i].Name, w)
		}
	}
	if p.ChildAt(0) != a {
		t.Error("ZIndex must not reorder the child list itself")
	}
}

func TestPaintOrderStableForEqualZ(t *testing.T) {
	p := NewNode("p")
	for _, name := range []string{"a", "b", "c"} {
		n := NewNode(name)
		n.ZIndex = 1
		p.AddChild(n)
	}
	got := p.paintOrderChildren()
	for i, w := range []string{"a", "b", "c"} {
		if got[i].Name != w {
			t.Errorf("[%d] = %q, want %q", i, got[i].Name, w)
		}
	}
}

// --- Queries ---

func TestPath(t *testing.T) {
	root := NewNode("root")
	panel := NewNode("panel")
	button := NewNode("button")
	root.AddChild(panel)
	panel.AddChild(button)

	if got := button.Path(); got != "root/panel/button" {
		t.Errorf("Path() = %q, want %q", got, "root/panel/button")
	}
	var nilNode *Node
	if got := nilNode.Path(); got != "<nil>" {
		t.Errorf("nil Path() = %q, want <nil>", got)
	}
}

func TestFindCommonRoot(t *testing.T) {
	root := NewNode("root")
	left := NewNode("left")
	right := NewNode("right")
	leftLeaf := NewNode("leftLeaf")
	root.AddChild(left)
	root.AddChild(right)
	left.AddChild(leftLeaf)
	stranger := NewNode("stranger")

	tests := []struct {
		name string
		a, b *Node
		want *Node
	}{
		{"siblings", left, right, root},
		{"cousin", leftLeaf, right, root},
		{"ancestor", leftLeaf, left, left},
		{"same", right, right, right},
		{"unrelated", leftLeaf, stranger, nil},
		{"nil a", nil, right, nil},
		{"nil b", right, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindCommonRoot(tt.a, tt.b); got != tt.want {
				t.Errorf("FindCommonRoot = %s, want %s", got.Path(), tt.want.Path())
			}
		})
	}
}

func TestIsAncestorOf(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	if !a.IsAncestorOf(b) {
		t.Error("a should be ancestor of b")
	}
	if b.IsAncestorOf(a) {
		t.Error("b should not be ancestor of a")
	}
}

// --- Handlers ---

func TestAddHandlerAndRemove(t *testing.T) {
	n := NewNode("n")
	h1 := n.AddHandler(PointerClickFunc(func(*PointerEventData) {}))
	n.AddHandler(PointerDownFunc(func(*PointerEventData) {}))
	if n.NumHandlers() != 2 {
		t.Fatalf("NumHandlers() = %d, want 2", n.NumHandlers())
	}

	h1.Remove()
	if n.NumHandlers() != 1 {
		t.Errorf("NumHandlers() after Remove = %d, want 1", n.NumHandlers())
	}
	h1.Remove() // second remove is a no-op
	if n.NumHandlers() != 1 {
		t.Errorf("NumHandlers() after second Remove = %d, want 1", n.NumHandlers())
	}
	if CanHandle[PointerClickHandler](n) {
		t.Error("removed click handler should not be found")
	}
}

func TestAddHandlerNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil handler")
		}
	}()
	NewNode("n").AddHandler(nil)
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	root.AddChild(child)
	child.AddChild(grandchild)
	child.AddHandler(PointerClickFunc(func(*PointerEventData) {}))

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Errorf("root.NumChildren() = %d, want 0", root.NumChildren())
	}
	if child.NumHandlers() != 0 {
		t.Error("handlers should be dropped")
	}
	child.Dispose() // idempotent
}

func TestDebugModeDisposedPanics(t *testing.T) {
	sys := NewEventSystem()
	sys.SetDebugMode(true)
	defer sys.SetDebugMode(false)

	n := NewNode("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for AddChild on disposed node in debug mode")
		}
	}()
	n.AddChild(NewNode("c"))
}
