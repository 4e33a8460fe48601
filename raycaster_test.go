package canopy

import (
	"fmt"
	"slices"
	"testing"
)

// fakeRaycaster reports a fixed hit list.
type fakeRaycaster struct {
	cam            *Camera
	sortPriority   int
	renderPriority int
	inactive       bool
	hits           []RaycastResult
	calls          int
}

func newFakeRaycaster(nodes ...*Node) *fakeRaycaster {
	r := &fakeRaycaster{sortPriority: DefaultPriority, renderPriority: DefaultPriority}
	for _, n := range nodes {
		r.hits = append(r.hits, RaycastResult{Node: n})
	}
	return r
}

func (r *fakeRaycaster) Raycast(ev *PointerEventData, results []RaycastResult) []RaycastResult {
	r.calls++
	for _, h := range r.hits {
		h.Module = r
		h.ScreenPosition = ev.Position
		results = append(results, h)
	}
	return results
}

func (r *fakeRaycaster) EventCamera() *Camera     { return r.cam }
func (r *fakeRaycaster) SortOrderPriority() int   { return r.sortPriority }
func (r *fakeRaycaster) RenderOrderPriority() int { return r.renderPriority }
func (r *fakeRaycaster) IsActive() bool           { return !r.inactive }

func names(results []RaycastResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Node.Name
	}
	return out
}

// --- Registry ---

func TestRaycasterRegistry(t *testing.T) {
	reg := NewRaycasterRegistry()
	a := newFakeRaycaster()
	b := newFakeRaycaster()

	reg.Add(a)
	reg.Add(a)
	reg.Add(b)
	reg.Add(nil)
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	if !reg.Contains(a) || !reg.Contains(b) {
		t.Error("registry should contain a and b")
	}

	reg.Remove(a)
	reg.Remove(a)
	if reg.Len() != 1 || reg.Contains(a) {
		t.Error("a should be removed once")
	}

	snap := reg.Snapshot(nil)
	reg.Remove(b)
	if len(snap) != 1 || snap[0] != Raycaster(b) {
		t.Error("Snapshot should not change when the registry does")
	}
}

// --- Comparator ---

func TestCompareRaycastResults(t *testing.T) {
	near := NewNode("near")
	far := NewNode("far")

	shared := newFakeRaycaster()
	lowCam := newFakeRaycaster()
	lowCam.cam = &Camera{Depth: 0}
	highCam := newFakeRaycaster()
	highCam.cam = &Camera{Depth: 1}
	sortHigh := newFakeRaycaster()
	sortHigh.sortPriority = 10
	sortLow := newFakeRaycaster()
	sortLow.sortPriority = 1
	renderHigh := newFakeRaycaster()
	renderHigh.renderPriority = 3

	tests := []struct {
		name     string
		lhs, rhs RaycastResult
	}{
		{"camera depth",
			RaycastResult{Node: near, Module: highCam},
			RaycastResult{Node: far, Module: lowCam, SortingOrder: 100}},
		{"sort priority",
			RaycastResult{Node: near, Module: sortHigh},
			RaycastResult{Node: far, Module: sortLow, SortingOrder: 100}},
		{"explicit sort priority beats default",
			RaycastResult{Node: near, Module: sortLow},
			RaycastResult{Node: far, Module: shared, Depth: 100}},
		{"render priority",
			RaycastResult{Node: near, Module: renderHigh},
			RaycastResult{Node: far, Module: shared, Depth: 100}},
		{"sorting layer",
			RaycastResult{Node: near, Module: shared, SortingLayer: 2},
			RaycastResult{Node: far, Module: shared, SortingLayer: 1, SortingOrder: 100}},
		{"sorting order",
			RaycastResult{Node: near, Module: shared, SortingOrder: 5},
			RaycastResult{Node: far, Module: shared, SortingOrder: 4, Depth: 100}},
		{"depth",
			RaycastResult{Node: near, Module: shared, Depth: 3},
			RaycastResult{Node: far, Module: shared, Depth: 2}},
		{"distance",
			RaycastResult{Node: near, Module: shared, Distance: 1},
			RaycastResult{Node: far, Module: shared, Distance: 2, Index: -1}},
		{"index",
			RaycastResult{Node: near, Module: shared, Index: 0},
			RaycastResult{Node: far, Module: shared, Index: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareRaycastResults(nil, &tt.lhs, &tt.rhs); got >= 0 {
				t.Errorf("compare(lhs, rhs) = %d, want < 0", got)
			}
			if got := compareRaycastResults(nil, &tt.rhs, &tt.lhs); got <= 0 {
				t.Errorf("compare(rhs, lhs) = %d, want > 0", got)
			}
		})
	}
}

func TestCompareCameraDepthNeedsBothCameras(t *testing.T) {
	withCam := newFakeRaycaster()
	withCam.cam = &Camera{Depth: 10}
	noCam := newFakeRaycaster()

	lhs := RaycastResult{Node: NewNode("a"), Module: withCam}
	rhs := RaycastResult{Node: NewNode("b"), Module: noCam, SortingOrder: 1}
	if got := compareRaycastResults(nil, &lhs, &rhs); got <= 0 {
		t.Errorf("compare = %d, want > 0 (camera depth ignored without both cameras)", got)
	}
}

func TestCompareSortingLayerValues(t *testing.T) {
	var layers SortingLayers
	layers.SetOrder(1, 10) // layer 1 draws above layer 2
	layers.SetOrder(2, 5)
	shared := newFakeRaycaster()

	lhs := RaycastResult{Node: NewNode("a"), Module: shared, SortingLayer: 1}
	rhs := RaycastResult{Node: NewNode("b"), Module: shared, SortingLayer: 2}
	if got := compareRaycastResults(&layers, &lhs, &rhs); got >= 0 {
		t.Errorf("compare = %d, want < 0", got)
	}
	if got := layers.Value(7); got != 7 {
		t.Errorf("Value(unassigned) = %d, want 7", got)
	}
}

func TestSortRaycastResultsIsStable(t *testing.T) {
	shared := newFakeRaycaster()
	var results []RaycastResult
	for _, name := range []string{"a", "b", "c", "d"} {
		results = append(results, RaycastResult{Node: NewNode(name), Module: shared, Index: 99})
	}
	sortRaycastResults(nil, results)

	if got := names(results); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("order = %v, want insertion order", got)
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d, want %d", i, r.Index, i)
		}
	}
}

func TestCompareRaycastResultsTotalOrder(t *testing.T) {
	shared := newFakeRaycaster()
	var layers SortingLayers
	layers.SetOrder(1, 10)

	results := []RaycastResult{
		{SortingLayer: 0, SortingOrder: 1, Depth: 2, Distance: 3},
		{SortingLayer: 1, SortingOrder: 0, Depth: 0, Distance: 9},
		{SortingLayer: 0, SortingOrder: 1, Depth: 2, Distance: 1},
		{SortingLayer: 0, SortingOrder: 2, Depth: 0, Distance: 5},
		{SortingLayer: 0, SortingOrder: 1, Depth: 5, Distance: 7},
		{SortingLayer: 0, SortingOrder: 1, Depth: 2, Distance: 1},
		{SortingLayer: 1, SortingOrder: 0, Depth: 0, Distance: 2},
		{SortingLayer: 0, SortingOrder: 0, Depth: 9, Distance: 0},
	}
	for i := range results {
		results[i].Node = NewNode(fmt.Sprintf("r%d", i))
		results[i].Module = shared
		results[i].Index = i
	}
	sortResults := func(in []RaycastResult) []string {
		s := slices.Clone(in)
		slices.SortFunc(s, func(a, b RaycastResult) int {
			return compareRaycastResults(&layers, &a, &b)
		})
		return names(s)
	}

	forward := sortResults(results)
	reversed := slices.Clone(results)
	slices.Reverse(reversed)

	want := []string{"r6", "r1", "r3", "r4", "r2", "r5", "r0", "r7"}
	if !slices.Equal(forward, want) {
		t.Errorf("sorted = %v, want %v", forward, want)
	}
	if got := sortResults(reversed); !slices.Equal(got, forward) {
		t.Errorf("sorted from reversed input = %v, want %v", got, forward)
	}
	if got := sortResults(results); !slices.Equal(got, forward) {
		t.Errorf("second sort = %v, want %v", got, forward)
	}
}

func TestFindFirstRaycast(t *testing.T) {
	n := NewNode("n")
	results := []RaycastResult{{}, {Node: n, Depth: 4}}
	if got := FindFirstRaycast(results); got.Node != n {
		t.Errorf("FindFirstRaycast() = %v, want node n", got.Node.Path())
	}
	if got := FindFirstRaycast(nil); got.IsValid() {
		t.Error("FindFirstRaycast(nil) should be invalid")
	}
}

// --- NodeRaycaster ---

func TestNodeRaycasterTopmostFirst(t *testing.T) {
	root := NewNode("root")
	back := NewRect("back", 100, 100)
	front := NewRect("front", 100, 100)
	child := NewRect("child", 50, 50)
	root.AddChild(back)
	root.AddChild(front)
	back.AddChild(child)

	r := NewNodeRaycaster(root, nil)
	ev := NewPointerEventData(nil)
	ev.Position = Vec2{25, 25}
	results := r.Raycast(ev, nil)

	if got := names(results); !slices.Equal(got, []string{"front", "child", "back"}) {
		t.Errorf("hits = %v, want [front child back]", got)
	}
	if results[0].Depth <= results[1].Depth {
		t.Error("later-drawn nodes should have greater Depth")
	}
	if results[0].Module != Raycaster(r) || results[0].WorldPosition != ev.Position {
		t.Error("result should carry the raycaster and world position")
	}
}

func TestNodeRaycasterZIndex(t *testing.T) {
	root := NewNode("root")
	a := NewRect("a", 100, 100)
	b := NewRect("b", 100, 100)
	root.AddChild(a)
	root.AddChild(b)
	a.SetZIndex(1)

	ev := NewPointerEventData(nil)
	ev.Position = Vec2{10, 10}
	results := NewNodeRaycaster(root, nil).Raycast(ev, nil)
	if got := FindFirstRaycast(results).Node; got != a {
		t.Errorf("first hit = %s, want %s", got.Path(), a.Path())
	}
}

func TestNodeRaycasterSkipsHiddenSubtrees(t *testing.T) {
	root := NewNode("root")
	hidden := NewRect("hidden", 100, 100)
	hidden.Visible = false
	hidden.AddChild(NewRect("inner", 100, 100))
	blocked := NewRect("blocked", 100, 100)
	blocked.Interactable = false
	root.AddChild(hidden)
	root.AddChild(blocked)

	ev := NewPointerEventData(nil)
	ev.Position = Vec2{10, 10}
	if results := NewNodeRaycaster(root, nil).Raycast(ev, nil); len(results) != 0 {
		t.Errorf("hits = %v, want none", names(results))
	}
}

func TestNodeRaycasterTransforms(t *testing.T) {
	root := NewNode("root")
	n := NewRect("n", 10, 10)
	n.SetPosition(100, 100)
	n.SetScale(2, 2)
	root.AddChild(n)
	r := NewNodeRaycaster(root, nil)

	tests := []struct {
		x, y float64
		want bool
	}{
		{105, 105, true},
		{119, 119, true},
		{121, 110, false},
		{99, 110, false},
	}
	for _, tt := range tests {
		ev := NewPointerEventData(nil)
		ev.Position = Vec2{tt.x, tt.y}
		if got := len(r.Raycast(ev, nil)) == 1; got != tt.want {
			t.Errorf("hit at (%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNodeRaycasterCamera(t *testing.T) {
	root := NewNode("root")
	n := NewRect("n", 10, 10)
	n.SetPosition(1000, 1000)
	root.AddChild(n)

	cam := NewCamera(Rect{Width: 200, Height: 200})
	cam.X, cam.Y = 1005, 1005
	r := NewNodeRaycaster(root, cam)

	ev := NewPointerEventData(nil)
	ev.Position = Vec2{100, 100}
	results := r.Raycast(ev, nil)
	if len(results) != 1 {
		t.Fatalf("hits = %d, want 1", len(results))
	}
	if !approxEqual(results[0].WorldPosition.X, 1005, 1e-9) {
		t.Errorf("WorldPosition = %v, want {1005 1005}", results[0].WorldPosition)
	}

	ev.Position = Vec2{300, 100}
	if len(r.Raycast(ev, nil)) != 0 {
		t.Error("positions outside the viewport should not hit")
	}
}

func TestNodeRaycasterInactive(t *testing.T) {
	root := NewRect("root", 100, 100)
	r := NewNodeRaycaster(root, nil)
	ev := NewPointerEventData(nil)
	ev.Position = Vec2{10, 10}

	r.Enabled = false
	if len(r.Raycast(ev, nil)) != 0 || r.IsActive() {
		t.Error("disabled raycaster should report nothing")
	}
	r.Enabled = true
	root.Dispose()
	if r.IsActive() {
		t.Error("raycaster over a disposed root should be inactive")
	}
}
