package host

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mortencombat/stretchable"
	serr "github.com/mortencombat/stretchable/errors"
	"github.com/mortencombat/stretchable/style"
)

func rawFixed(w, h float32) style.RawStyle {
	raw := style.DefaultRaw()
	raw.Size = style.RawSize{Width: style.RawPoints(w), Height: style.RawPoints(h)}
	return raw
}

func rawAvail(w, h float32) style.RawSize {
	return style.RawSize{Width: style.RawPoints(w), Height: style.RawPoints(h)}
}

func rawMaxContent() style.RawSize {
	return style.RawSize{
		Width:  style.RawLength{Dim: style.TagMaxContent},
		Height: style.RawLength{Dim: style.TagMaxContent},
	}
}

func newTree(t *testing.T, h *Host) TreeHandle {
	t.Helper()
	tree, err := h.InitTree()
	if err != nil {
		t.Fatalf("InitTree failed: %v", err)
	}
	return tree
}

func newNode(t *testing.T, h *Host, tree TreeHandle, raw style.RawStyle) NodeHandle {
	t.Helper()
	n, err := h.CreateNodeWithStyle(tree, raw)
	if err != nil {
		t.Fatalf("CreateNodeWithStyle failed: %v", err)
	}
	return n
}

func TestHost_TreeLifecycle(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())

	if err := h.FreeTree(tree); err != nil {
		t.Fatalf("FreeTree failed: %v", err)
	}
	if err := h.FreeTree(tree); !serr.IsInvalidHandle(err) {
		t.Errorf("second FreeTree = %v, want invalid_handle", err)
	}
	if _, err := h.IsDirty(tree, node); !serr.IsInvalidHandle(err) {
		t.Errorf("IsDirty on freed tree = %v, want invalid_handle", err)
	}

	// A freed handle stays stale even after its slot is reused.
	tree2 := newTree(t, h)
	if err := h.Clear(tree); !serr.IsInvalidHandle(err) {
		t.Errorf("Clear on stale handle = %v, want invalid_handle", err)
	}
	if err := h.Clear(tree2); err != nil {
		t.Errorf("Clear on live tree failed: %v", err)
	}
}

func TestHost_NodeHandlesAreTreeScoped(t *testing.T) {
	h := New()
	defer h.Close()

	tree1 := newTree(t, h)
	tree2 := newTree(t, h)
	n1 := newNode(t, h, tree1, style.DefaultRaw())
	n2 := newNode(t, h, tree2, style.DefaultRaw())

	if n1 == n2 {
		t.Fatalf("distinct trees issued the same node handle %d", n1)
	}

	// A handle minted by one tree must not resolve against another,
	// for reads, mutations and structural edges alike.
	if _, err := h.IsDirty(tree2, n1); !serr.IsInvalidHandle(err) {
		t.Errorf("IsDirty with foreign handle = %v, want invalid_handle", err)
	}
	if err := h.RemoveNode(tree2, n1); !serr.IsInvalidHandle(err) {
		t.Errorf("RemoveNode with foreign handle = %v, want invalid_handle", err)
	}
	if err := h.AddChild(tree2, n2, n1); !serr.IsInvalidHandle(err) {
		t.Errorf("AddChild with foreign child = %v, want invalid_handle", err)
	}

	// The foreign-handle rejections must not have touched tree2.
	if _, err := h.IsDirty(tree2, n2); err != nil {
		t.Errorf("tree2's own node damaged by foreign-handle calls: %v", err)
	}
	if _, err := h.IsDirty(tree1, n1); err != nil {
		t.Errorf("tree1's node damaged: %v", err)
	}

	// Freeing one tree invalidates its node handles and no others.
	if err := h.FreeTree(tree1); err != nil {
		t.Fatal(err)
	}
	if _, err := h.IsDirty(tree2, n2); err != nil {
		t.Errorf("FreeTree of tree1 affected tree2: %v", err)
	}
}

func TestHost_StyleLifecycle(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	st, err := h.CreateStyle(rawFixed(10, 20))
	if err != nil {
		t.Fatalf("CreateStyle failed: %v", err)
	}

	node, err := h.CreateNode(tree, st)
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}

	// Dropping the style must not touch nodes created from it.
	if err := h.DropStyle(st); err != nil {
		t.Fatalf("DropStyle failed: %v", err)
	}
	if err := h.DropStyle(st); !serr.IsInvalidHandle(err) {
		t.Errorf("second DropStyle = %v, want invalid_handle", err)
	}
	if _, err := h.CreateNode(tree, st); !serr.IsInvalidHandle(err) {
		t.Errorf("CreateNode with dropped style = %v, want invalid_handle", err)
	}

	if err := h.ComputeLayout(tree, node, rawMaxContent()); err != nil {
		t.Fatal(err)
	}
	l, err := h.GetLayout(tree, node)
	if err != nil {
		t.Fatal(err)
	}
	if l.Size.Width != 10 || l.Size.Height != 20 {
		t.Errorf("size = %+v, want (10, 20)", l.Size)
	}
}

func TestHost_CreateStyleRejectsMalformed(t *testing.T) {
	h := New()
	defer h.Close()

	raw := style.DefaultRaw()
	raw.Margin.Left = style.RawLength{Dim: style.TagFraction, Value: 1}

	_, err := h.CreateStyle(raw)
	if !serr.IsKind(err, serr.KindUnsupportedUnit) {
		t.Fatalf("CreateStyle = %v, want unsupported_unit", err)
	}
	var e *serr.Error
	if !errors.As(err, &e) {
		t.Fatal("error is not a typed boundary error")
	}
	if len(e.Path) == 0 || e.Path[0] != "margin" {
		t.Errorf("error path = %v, want to start at margin", e.Path)
	}
}

func TestHost_NodeRemovalInvalidatesHandle(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())

	if err := h.RemoveNode(tree, node); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}
	if err := h.MarkDirty(tree, node); !serr.IsInvalidHandle(err) {
		t.Errorf("MarkDirty after remove = %v, want invalid_handle", err)
	}
	if _, err := h.GetLayout(tree, node); !serr.IsInvalidHandle(err) {
		t.Errorf("GetLayout after remove = %v, want invalid_handle", err)
	}
}

func TestHost_ClearInvalidatesAllNodes(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	a := newNode(t, h, tree, style.DefaultRaw())
	b := newNode(t, h, tree, style.DefaultRaw())
	if err := h.AddChild(tree, a, b); err != nil {
		t.Fatal(err)
	}

	if err := h.Clear(tree); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, n := range []NodeHandle{a, b} {
		if _, err := h.IsDirty(tree, n); !serr.IsInvalidHandle(err) {
			t.Errorf("IsDirty(%d) after clear = %v, want invalid_handle", n, err)
		}
	}

	// The tree itself stays usable.
	c := newNode(t, h, tree, rawFixed(5, 5))
	if err := h.ComputeLayout(tree, c, rawMaxContent()); err != nil {
		t.Fatalf("compute after clear failed: %v", err)
	}
}

func TestHost_DirtyLifecycle(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, rawFixed(10, 10))

	if dirty, _ := h.IsDirty(tree, node); !dirty {
		t.Error("fresh node should be dirty")
	}
	if err := h.ComputeLayout(tree, node, rawAvail(100, 100)); err != nil {
		t.Fatal(err)
	}
	if dirty, _ := h.IsDirty(tree, node); dirty {
		t.Error("computed node should be clean")
	}

	if err := h.SetStyle(tree, node, rawFixed(20, 20)); err != nil {
		t.Fatal(err)
	}
	if dirty, _ := h.IsDirty(tree, node); !dirty {
		t.Error("SetStyle should mark the node dirty")
	}
}

func TestHost_SetStyleRejectsMalformedKeepingOld(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, rawFixed(10, 10))
	if err := h.ComputeLayout(tree, node, rawMaxContent()); err != nil {
		t.Fatal(err)
	}

	bad := style.DefaultRaw()
	bad.Display = 99
	if err := h.SetStyle(tree, node, bad); !serr.IsKind(err, serr.KindInvalidEnum) {
		t.Fatalf("SetStyle = %v, want invalid_enum", err)
	}

	// Old style still in effect, node not dirtied by the failed call.
	if dirty, _ := h.IsDirty(tree, node); dirty {
		t.Error("failed SetStyle dirtied the node")
	}
	if err := h.ComputeLayout(tree, node, rawMaxContent()); err != nil {
		t.Fatal(err)
	}
	l, _ := h.GetLayout(tree, node)
	if l.Size.Width != 10 {
		t.Errorf("width = %g, want 10", l.Size.Width)
	}
}

func TestHost_MeasureCallback(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())
	if err := h.SetMeasureContext(tree, node, true); err != nil {
		t.Fatal(err)
	}

	var gotCtx uint64
	cb := func(known stretchable.Size[float32], available style.RawSize, ctx uint64) (stretchable.Size[float32], error) {
		gotCtx = ctx
		if !math.IsNaN(float64(known.Width)) {
			t.Errorf("known width = %g, want NaN", known.Width)
		}
		if available.Width.Dim != style.TagMaxContent {
			t.Errorf("available width tag = %d, want max-content", available.Width.Dim)
		}
		return stretchable.Size[float32]{Width: 42, Height: 17}, nil
	}

	if err := h.ComputeLayoutWithMeasure(tree, node, rawMaxContent(), cb); err != nil {
		t.Fatal(err)
	}
	if gotCtx != uint64(node) {
		t.Errorf("context = %d, want node handle %d", gotCtx, uint64(node))
	}
	l, err := h.GetLayout(tree, node)
	if err != nil {
		t.Fatal(err)
	}
	if l.Size.Width != 42 || l.Size.Height != 17 {
		t.Errorf("size = %+v, want (42, 17)", l.Size)
	}
}

func TestHost_MeasureContextDisabled(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())
	if err := h.SetMeasureContext(tree, node, true); err != nil {
		t.Fatal(err)
	}
	if err := h.SetMeasureContext(tree, node, false); err != nil {
		t.Fatal(err)
	}

	called := false
	cb := func(stretchable.Size[float32], style.RawSize, uint64) (stretchable.Size[float32], error) {
		called = true
		return stretchable.SizeZero(), nil
	}
	if err := h.ComputeLayoutWithMeasure(tree, node, rawMaxContent(), cb); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("callback invoked for node with disabled context")
	}
}

func TestHost_MeasureFailureContained(t *testing.T) {
	for name, cb := range map[string]MeasureCallback{
		"error": func(stretchable.Size[float32], style.RawSize, uint64) (stretchable.Size[float32], error) {
			return stretchable.SizeZero(), errors.New("font cache unavailable")
		},
		"panic": func(stretchable.Size[float32], style.RawSize, uint64) (stretchable.Size[float32], error) {
			panic("callback state corrupted")
		},
	} {
		t.Run(name, func(t *testing.T) {
			h := New()
			defer h.Close()

			tree := newTree(t, h)
			root := newNode(t, h, tree, rawFixed(100, 50))
			bad := newNode(t, h, tree, style.DefaultRaw())
			good := newNode(t, h, tree, rawFixed(30, 30))
			if err := h.AddChild(tree, root, bad); err != nil {
				t.Fatal(err)
			}
			if err := h.AddChild(tree, root, good); err != nil {
				t.Fatal(err)
			}
			if err := h.SetMeasureContext(tree, bad, true); err != nil {
				t.Fatal(err)
			}

			if err := h.ComputeLayoutWithMeasure(tree, root, rawAvail(100, 50), cb); err != nil {
				t.Fatalf("compute aborted by callback failure: %v", err)
			}

			lb, _ := h.GetLayout(tree, bad)
			if !math.IsNaN(float64(lb.Size.Width)) {
				t.Errorf("failed leaf width = %g, want NaN sentinel", lb.Size.Width)
			}
			lg, _ := h.GetLayout(tree, good)
			if lg.Size.Width != 30 || lg.Size.Height != 30 {
				t.Errorf("sibling size = %+v, want (30, 30)", lg.Size)
			}
			lr, _ := h.GetLayout(tree, root)
			if lr.Size.Width != 100 || lr.Size.Height != 50 {
				t.Errorf("root size = %+v, want (100, 50)", lr.Size)
			}
		})
	}
}

func TestHost_GetLayoutBeforeCompute(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())

	if _, err := h.GetLayout(tree, node); !serr.IsKind(err, serr.KindNoLayout) {
		t.Fatalf("GetLayout = %v, want no_layout", err)
	}
}

func TestHost_ComputeRejectsBadAvailableSpace(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())

	avail := style.RawSize{Width: style.RawPercent(0.5), Height: style.RawPoints(10)}
	if err := h.ComputeLayout(tree, node, avail); !serr.IsKind(err, serr.KindUnsupportedUnit) {
		t.Fatalf("ComputeLayout = %v, want unsupported_unit", err)
	}
}

func TestHost_RoundingToggle(t *testing.T) {
	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, rawFixed(100.4, 50.6))

	if err := h.ComputeLayout(tree, node, rawMaxContent()); err != nil {
		t.Fatal(err)
	}
	if l, _ := h.GetLayout(tree, node); l.Size.Height != 51 {
		t.Errorf("rounded height = %g, want 51", l.Size.Height)
	}

	if err := h.DisableRounding(tree); err != nil {
		t.Fatal(err)
	}
	if err := h.MarkDirty(tree, node); err != nil {
		t.Fatal(err)
	}
	if err := h.ComputeLayout(tree, node, rawMaxContent()); err != nil {
		t.Fatal(err)
	}
	if l, _ := h.GetLayout(tree, node); l.Size.Height != 50.6 {
		t.Errorf("unrounded height = %g, want 50.6", l.Size.Height)
	}
}

func TestHost_HandleLifecycleLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	h := New()
	defer h.Close()

	tree := newTree(t, h)
	node := newNode(t, h, tree, style.DefaultRaw())
	if err := h.RemoveNode(tree, node); err != nil {
		t.Fatal(err)
	}

	if n := logs.FilterMessage("handle created").Len(); n < 2 {
		t.Errorf("created events logged = %d, want tree and node", n)
	}
	if logs.FilterMessage("handle dropped").Len() == 0 {
		t.Error("node removal logged no dropped event")
	}
}

func TestHost_Close(t *testing.T) {
	h := New()
	tree := newTree(t, h)

	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := h.InitTree(); !serr.IsKind(err, serr.KindClosed) {
		t.Errorf("InitTree after close = %v, want closed", err)
	}
	if err := h.Clear(tree); !serr.IsKind(err, serr.KindClosed) {
		t.Errorf("Clear after close = %v, want closed", err)
	}
	if _, err := h.CreateStyle(style.DefaultRaw()); !serr.IsKind(err, serr.KindClosed) {
		t.Errorf("CreateStyle after close = %v, want closed", err)
	}
}
