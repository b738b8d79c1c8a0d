package engine

import (
	"math"
	"testing"

	"github.com/mortencombat/stretchable"
	serr "github.com/mortencombat/stretchable/errors"
	"github.com/mortencombat/stretchable/style"
)

func availPoints(w, h float32) stretchable.Size[style.Length] {
	return stretchable.Size[style.Length]{Width: style.Points(w), Height: style.Points(h)}
}

func availMaxContent() stretchable.Size[style.Length] {
	return stretchable.Size[style.Length]{Width: style.MaxContent(), Height: style.MaxContent()}
}

func fixedStyle(w, h float32) style.Style {
	s := style.Default()
	s.Size = stretchable.Size[style.Length]{Width: style.Points(w), Height: style.Points(h)}
	return s
}

func TestComputeLayout_FixedRow(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 100))
	c1 := tree.NewLeaf(fixedStyle(30, 40))
	c2 := tree.NewLeaf(fixedStyle(50, 20))
	mustAdd(t, tree, root, c1, c2)

	if err := tree.ComputeLayout(root, availPoints(100, 100)); err != nil {
		t.Fatalf("ComputeLayout failed: %v", err)
	}

	assertSize(t, tree, root, 100, 100)
	assertSize(t, tree, c1, 30, 40)
	assertSize(t, tree, c2, 50, 20)
	assertLocation(t, tree, c1, 0, 0)
	assertLocation(t, tree, c2, 30, 0)

	l1, _ := tree.Layout(c1)
	l2, _ := tree.Layout(c2)
	if l1.Order != 0 || l2.Order != 1 {
		t.Errorf("orders = %d, %d", l1.Order, l2.Order)
	}
}

func TestComputeLayout_ColumnAndGap(t *testing.T) {
	tree := New()
	s := fixedStyle(100, 100)
	s.FlexDirection = style.FlexDirectionColumn
	s.Gap = stretchable.Size[style.Length]{Width: style.Points(0), Height: style.Points(10)}
	root := tree.NewLeaf(s)
	c1 := tree.NewLeaf(fixedStyle(100, 20))
	c2 := tree.NewLeaf(fixedStyle(100, 30))
	mustAdd(t, tree, root, c1, c2)

	if err := tree.ComputeLayout(root, availPoints(100, 100)); err != nil {
		t.Fatal(err)
	}

	assertLocation(t, tree, c1, 0, 0)
	assertLocation(t, tree, c2, 0, 30) // 20 + 10 gap
}

func TestComputeLayout_PercentSize(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(200, 100))
	s := style.Default()
	s.Size = stretchable.Size[style.Length]{Width: style.Percent(0.5), Height: style.Percent(0.25)}
	c := tree.NewLeaf(s)
	mustAdd(t, tree, root, c)

	if err := tree.ComputeLayout(root, availPoints(200, 100)); err != nil {
		t.Fatal(err)
	}
	assertSize(t, tree, c, 100, 25)
}

func TestComputeLayout_FlexGrow(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 10))
	s := style.Default()
	s.Size.Height = style.Points(10)
	s.FlexGrow = 1
	a := tree.NewLeaf(s)
	b := tree.NewLeaf(s)
	mustAdd(t, tree, root, a, b)

	if err := tree.ComputeLayout(root, availPoints(100, 10)); err != nil {
		t.Fatal(err)
	}

	assertSize(t, tree, a, 50, 10)
	assertSize(t, tree, b, 50, 10)
	assertLocation(t, tree, b, 50, 0)
}

func TestComputeLayout_CrossStretch(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 60))
	s := style.Default()
	s.Size.Width = style.Points(20)
	c := tree.NewLeaf(s)
	mustAdd(t, tree, root, c)

	if err := tree.ComputeLayout(root, availPoints(100, 60)); err != nil {
		t.Fatal(err)
	}
	assertSize(t, tree, c, 20, 60)
}

func TestComputeLayout_AutoContainer(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(style.Default())
	c1 := tree.NewLeaf(fixedStyle(30, 40))
	c2 := tree.NewLeaf(fixedStyle(50, 20))
	mustAdd(t, tree, root, c1, c2)

	if err := tree.ComputeLayout(root, availMaxContent()); err != nil {
		t.Fatal(err)
	}
	// Row container wraps its content: sum of widths, max height.
	assertSize(t, tree, root, 80, 40)
}

func TestComputeLayout_DisplayNone(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 50))
	c1 := tree.NewLeaf(fixedStyle(10, 10))
	hidden := tree.NewLeaf(func() style.Style {
		s := fixedStyle(999, 999)
		s.Display = style.DisplayNone
		return s
	}())
	c2 := tree.NewLeaf(fixedStyle(10, 10))
	mustAdd(t, tree, root, c1, hidden, c2)

	if err := tree.ComputeLayout(root, availPoints(100, 50)); err != nil {
		t.Fatal(err)
	}

	assertSize(t, tree, hidden, 0, 0)
	assertLocation(t, tree, c2, 10, 0)

	l1, _ := tree.Layout(c1)
	l2, _ := tree.Layout(c2)
	if l1.Order != 0 || l2.Order != 1 {
		t.Errorf("painted orders = %d, %d; hidden siblings must be skipped", l1.Order, l2.Order)
	}
}

func TestComputeLayout_AbsoluteInset(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 100))
	s := fixedStyle(20, 20)
	s.Position = style.PositionAbsolute
	s.Inset.Left = style.Points(10)
	s.Inset.Top = style.Points(5)
	abs := tree.NewLeaf(s)
	mustAdd(t, tree, root, abs)

	if err := tree.ComputeLayout(root, availPoints(100, 100)); err != nil {
		t.Fatal(err)
	}
	assertLocation(t, tree, abs, 10, 5)
	assertSize(t, tree, abs, 20, 20)
}

func TestComputeLayout_ScrollbarReservation(t *testing.T) {
	tree := New()
	s := fixedStyle(100, 100)
	s.Overflow.Y = style.OverflowScroll
	s.ScrollbarWidth = 15
	root := tree.NewLeaf(s)

	child := style.Default()
	child.Size = stretchable.Size[style.Length]{Width: style.Percent(1), Height: style.Percent(1)}
	c := tree.NewLeaf(child)
	mustAdd(t, tree, root, c)

	if err := tree.ComputeLayout(root, availPoints(100, 100)); err != nil {
		t.Fatal(err)
	}

	l, _ := tree.Layout(root)
	if l.ScrollbarSize.Width != 15 || l.ScrollbarSize.Height != 0 {
		t.Errorf("scrollbar size = %+v, want (15, 0)", l.ScrollbarSize)
	}
	// The reserved gutter shrinks the content box the child resolves
	// against.
	assertSize(t, tree, c, 85, 100)
}

func TestComputeLayout_Measure(t *testing.T) {
	tree := New()
	leaf := tree.NewLeaf(style.Default())
	if err := tree.SetContext(leaf, 7, true); err != nil {
		t.Fatal(err)
	}

	var gotCtx uint64
	measure := func(known stretchable.Size[float32], available stretchable.Size[style.Length], ctx uint64) stretchable.Size[float32] {
		gotCtx = ctx
		if !math.IsNaN(float64(known.Width)) || !math.IsNaN(float64(known.Height)) {
			t.Errorf("known dimensions should be NaN, got %+v", known)
		}
		if available.Width.Unit != style.UnitMaxContent {
			t.Errorf("available width = %v", available.Width)
		}
		return stretchable.Size[float32]{Width: 42, Height: 17}
	}

	if err := tree.ComputeLayoutWithMeasure(leaf, availMaxContent(), measure); err != nil {
		t.Fatalf("ComputeLayoutWithMeasure failed: %v", err)
	}
	if gotCtx != 7 {
		t.Errorf("context = %d, want 7", gotCtx)
	}
	assertSize(t, tree, leaf, 42, 17)
}

func TestComputeLayout_MeasureSkippedWithoutContext(t *testing.T) {
	tree := New()
	leaf := tree.NewLeaf(style.Default())

	called := false
	measure := func(stretchable.Size[float32], stretchable.Size[style.Length], uint64) stretchable.Size[float32] {
		called = true
		return stretchable.Size[float32]{Width: 1, Height: 1}
	}

	if err := tree.ComputeLayoutWithMeasure(leaf, availMaxContent(), measure); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("measure invoked for a node without context")
	}
	assertSize(t, tree, leaf, 0, 0)
}

func TestComputeLayout_NaNMeasureDoesNotPoison(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100, 50))
	bad := tree.NewLeaf(style.Default())
	good := tree.NewLeaf(fixedStyle(30, 30))
	mustAdd(t, tree, root, bad, good)
	if err := tree.SetContext(bad, 1, true); err != nil {
		t.Fatal(err)
	}

	nanSize := stretchable.SizeNaN()
	measure := func(stretchable.Size[float32], stretchable.Size[style.Length], uint64) stretchable.Size[float32] {
		return nanSize
	}

	if err := tree.ComputeLayoutWithMeasure(root, availPoints(100, 50), measure); err != nil {
		t.Fatal(err)
	}

	// The failing leaf records the NaN sentinel; siblings and the root
	// stay fully defined, with the NaN subtree contributing zero.
	l, _ := tree.Layout(bad)
	if !math.IsNaN(float64(l.Size.Width)) || !math.IsNaN(float64(l.Size.Height)) {
		t.Errorf("bad leaf size = %+v, want NaN sentinel", l.Size)
	}
	assertSize(t, tree, root, 100, 50)
	assertSize(t, tree, good, 30, 30)
	assertLocation(t, tree, good, 0, 0)
}

func TestComputeLayout_Rounding(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(fixedStyle(100.4, 50.6))

	if err := tree.ComputeLayout(root, availMaxContent()); err != nil {
		t.Fatal(err)
	}
	assertSize(t, tree, root, 100, 51)

	tree.DisableRounding()
	if err := tree.ComputeLayout(root, availMaxContent()); err != nil {
		t.Fatal(err)
	}
	assertSize(t, tree, root, 100.4, 50.6)
}

func TestComputeLayout_InvalidAvailableSpace(t *testing.T) {
	tree := New()
	root := tree.NewLeaf(style.Default())

	avail := stretchable.Size[style.Length]{Width: style.Percent(0.5), Height: style.Points(10)}
	if err := tree.ComputeLayout(root, avail); !serr.IsKind(err, serr.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}

	// Failed computes leave dirty flags untouched.
	if dirty, _ := tree.Dirty(root); !dirty {
		t.Error("dirty flag cleared by failed compute")
	}
}

func TestLayout_BeforeCompute(t *testing.T) {
	tree := New()
	leaf := tree.NewLeaf(style.Default())

	if _, err := tree.Layout(leaf); !serr.IsKind(err, serr.KindNoLayout) {
		t.Fatalf("expected no_layout, got %v", err)
	}
}

// Helpers.

func mustAdd(t *testing.T, tree *Tree, parent NodeID, children ...NodeID) {
	t.Helper()
	for _, c := range children {
		if err := tree.AddChild(parent, c); err != nil {
			t.Fatalf("AddChild failed: %v", err)
		}
	}
}

func assertSize(t *testing.T, tree *Tree, id NodeID, w, h float32) {
	t.Helper()
	l, err := tree.Layout(id)
	if err != nil {
		t.Fatalf("Layout(%v) failed: %v", id, err)
	}
	if l.Size.Width != w || l.Size.Height != h {
		t.Errorf("size = (%g, %g), want (%g, %g)", l.Size.Width, l.Size.Height, w, h)
	}
}

func assertLocation(t *testing.T, tree *Tree, id NodeID, x, y float32) {
	t.Helper()
	l, err := tree.Layout(id)
	if err != nil {
		t.Fatalf("Layout(%v) failed: %v", id, err)
	}
	if l.Location.X != x || l.Location.Y != y {
		t.Errorf("location = (%g, %g), want (%g, %g)", l.Location.X, l.Location.Y, x, y)
	}
}
