package host

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/engine"
	"github.com/mortencombat/stretchable/errors"
	"github.com/mortencombat/stretchable/resource"
	"github.com/mortencombat/stretchable/style"
)

// TreeHandle identifies one layout engine instance owned by a Host.
type TreeHandle uint64

// NodeHandle identifies one node within a tree. Node handles are scoped
// to the tree that issued them; presenting a handle to a different tree
// fails with an invalid-handle error.
type NodeHandle uint64

// StyleHandle identifies one standalone decoded style owned by a Host.
type StyleHandle uint64

// Host owns every tree and standalone style created through it and
// mediates all access via generational handles. A Host is safe for
// concurrent use; operations are serialized internally.
type Host struct {
	mu     sync.Mutex
	trees  *resource.Table[*treeState]
	nodes  *resource.Table[nodeRef]
	styles *resource.Table[*style.Style]
	closed bool

	// callbackMu is the measure bridge serialization lock. It is
	// distinct from mu: callbacks fire from within a compute that
	// already holds mu.
	callbackMu sync.Mutex
}

// nodeRef binds a node handle to its owning tree, so a handle minted by
// one tree can never resolve against another.
type nodeRef struct {
	tree resource.Handle
	id   engine.NodeID
}

type treeState struct {
	eng *engine.Tree

	// byID maps engine node IDs back to the handles minted for them,
	// for operations that surface nodes (index removal, replacement)
	// and for bulk invalidation on Clear and FreeTree.
	byID map[engine.NodeID]NodeHandle
}

// Option configures a Host.
type Option func(*Host)

// New creates an empty Host.
func New(opts ...Option) *Host {
	h := &Host{
		trees:  resource.NewTable[*treeState](),
		nodes:  resource.NewTable[nodeRef](),
		styles: resource.NewTable[*style.Style](),
	}
	h.trees.Subscribe(tableObserver("tree"))
	h.nodes.Subscribe(tableObserver("node"))
	h.styles.Subscribe(tableObserver("style"))
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// tableObserver logs handle lifecycle transitions at debug level.
func tableObserver(kind string) resource.Observer {
	return func(e resource.Event) {
		switch e.Type {
		case resource.EventCreated:
			Logger().Debug("handle created",
				zap.String("kind", kind),
				zap.Uint64("handle", uint64(e.Handle)))
		case resource.EventDropped:
			Logger().Debug("handle dropped",
				zap.String("kind", kind),
				zap.Uint64("handle", uint64(e.Handle)))
		}
	}
}

// Close releases every tree, node and style. All previously issued
// handles become invalid and subsequent operations fail. Close is
// idempotent.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	_ = h.trees.Close()
	_ = h.nodes.Close()
	_ = h.styles.Close()
	Logger().Debug("host closed")
	return nil
}

// InitTree creates an empty tree. Rounding is enabled by default.
func (h *Host) InitTree() (TreeHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, errors.Closed("host")
	}
	hnd := h.trees.Insert(&treeState{
		eng:  engine.New(),
		byID: make(map[engine.NodeID]NodeHandle),
	})
	return TreeHandle(hnd), nil
}

// FreeTree destroys a tree and every node in it. The tree handle and
// all of its node handles become invalid.
func (h *Host) FreeTree(t TreeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return err
	}
	h.dropNodeHandles(ts)
	h.trees.Remove(resource.Handle(t))
	return nil
}

// EnableRounding makes the tree's computed geometry snap to whole units.
func (h *Host) EnableRounding(t TreeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return err
	}
	ts.eng.EnableRounding()
	return nil
}

// DisableRounding keeps the tree's computed geometry at full precision.
func (h *Host) DisableRounding(t TreeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return err
	}
	ts.eng.DisableRounding()
	return nil
}

// CreateStyle decodes a flat style record into a standalone style. The
// record is validated in full; the first malformed field fails the call
// with its path named and nothing is created.
func (h *Host) CreateStyle(raw style.RawStyle) (StyleHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, errors.Closed("host")
	}
	s, err := style.Decode(raw)
	if err != nil {
		return 0, err
	}
	hnd := h.styles.Insert(&s)
	return StyleHandle(hnd), nil
}

// DropStyle releases a standalone style. Nodes that were created from
// it keep their own copy and are unaffected.
func (h *Host) DropStyle(s StyleHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.Closed("host")
	}
	if _, ok := h.styles.Remove(resource.Handle(s)); !ok {
		return errors.InvalidHandle(errors.PhaseHandle, "style", uint64(s))
	}
	return nil
}

// CreateNode creates an unparented leaf in the tree, copying the
// referenced standalone style.
func (h *Host) CreateNode(t TreeHandle, s StyleHandle) (NodeHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return 0, err
	}
	st, ok := h.styles.Get(resource.Handle(s))
	if !ok {
		return 0, errors.InvalidHandle(errors.PhaseHandle, "style", uint64(s))
	}
	return h.mintNode(t, ts, *st), nil
}

// CreateNodeWithStyle creates an unparented leaf in the tree from a
// flat style record, without going through a standalone style.
func (h *Host) CreateNodeWithStyle(t TreeHandle, raw style.RawStyle) (NodeHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return 0, err
	}
	s, err := style.Decode(raw)
	if err != nil {
		return 0, err
	}
	return h.mintNode(t, ts, s), nil
}

// AddChild appends child to parent's child list, reparenting it if
// needed. Fails with a cycle error when the edge would make a node its
// own ancestor.
func (h *Host) AddChild(t TreeHandle, parent, child NodeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, pid, cid, err := h.pair(t, parent, child)
	if err != nil {
		return err
	}
	return ts.eng.AddChild(pid, cid)
}

// RemoveChild unlinks child from parent. The child survives as an
// unparented root; its handle stays valid.
func (h *Host) RemoveChild(t TreeHandle, parent, child NodeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, pid, cid, err := h.pair(t, parent, child)
	if err != nil {
		return err
	}
	return ts.eng.RemoveChild(pid, cid)
}

// RemoveChildAtIndex unlinks the index-th child of parent, returning
// its handle.
func (h *Host) RemoveChildAtIndex(t TreeHandle, parent NodeHandle, index int) (NodeHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, pid, err := h.node(t, parent)
	if err != nil {
		return 0, err
	}
	id, err := ts.eng.RemoveChildAtIndex(pid, index)
	if err != nil {
		return 0, err
	}
	return ts.byID[id], nil
}

// ReplaceChildAtIndex swaps the index-th child of parent for another
// node, returning the handle of the replaced child.
func (h *Host) ReplaceChildAtIndex(t TreeHandle, parent NodeHandle, index int, child NodeHandle) (NodeHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, pid, cid, err := h.pair(t, parent, child)
	if err != nil {
		return 0, err
	}
	id, err := ts.eng.ReplaceChildAtIndex(pid, index, cid)
	if err != nil {
		return 0, err
	}
	return ts.byID[id], nil
}

// RemoveNode destroys one node. Its handle becomes invalid; its
// children survive as unparented roots.
func (h *Host) RemoveNode(t TreeHandle, n NodeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return err
	}
	if err := ts.eng.Remove(id); err != nil {
		return err
	}
	h.nodes.Remove(resource.Handle(n))
	delete(ts.byID, id)
	return nil
}

// Clear destroys every node in the tree. All of the tree's node handles
// become invalid; the tree handle stays valid and usable.
func (h *Host) Clear(t TreeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, err := h.tree(t)
	if err != nil {
		return err
	}
	ts.eng.Clear()
	h.dropNodeHandles(ts)
	return nil
}

// IsDirty reports whether the node's last computed layout may be stale.
func (h *Host) IsDirty(t TreeHandle, n NodeHandle) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return false, err
	}
	return ts.eng.Dirty(id)
}

// MarkDirty flags the node and its ancestors as needing recomputation.
func (h *Host) MarkDirty(t TreeHandle, n NodeHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return err
	}
	return ts.eng.MarkDirty(id)
}

// SetStyle replaces the node's style from a flat record and marks the
// node dirty. A malformed record fails the call and leaves the node's
// current style in place.
func (h *Host) SetStyle(t TreeHandle, n NodeHandle, raw style.RawStyle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return err
	}
	s, err := style.Decode(raw)
	if err != nil {
		return err
	}
	return ts.eng.SetStyle(id, s)
}

// SetMeasureContext attaches or detaches the node's measure context.
// When enabled, the node's handle value is passed as the context
// argument of measure callbacks; when disabled, the node sizes without
// consulting the callback.
func (h *Host) SetMeasureContext(t TreeHandle, n NodeHandle, enabled bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return err
	}
	return ts.eng.SetContext(id, uint64(n), enabled)
}

// ComputeLayout computes geometry for the subtree rooted at n. Leaves
// with measure context enabled resolve without intrinsic sizing.
func (h *Host) ComputeLayout(t TreeHandle, n NodeHandle, available style.RawSize) error {
	return h.ComputeLayoutWithMeasure(t, n, available, nil)
}

// ComputeLayoutWithMeasure computes geometry for the subtree rooted at
// n, invoking cb for leaves whose measure context is enabled. The
// available space record accepts definite points, min-content or
// max-content per axis.
//
// cb must not call back into the Host for the same tree.
func (h *Host) ComputeLayoutWithMeasure(t TreeHandle, n NodeHandle, available style.RawSize, cb MeasureCallback) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return err
	}
	avail, err := style.DecodeAvailableSize(available)
	if err != nil {
		return err
	}
	return ts.eng.ComputeLayoutWithMeasure(id, avail, h.bridge(cb))
}

// GetLayout returns the node's computed geometry. Fails with a
// no-layout error before the first successful compute covering the
// node.
func (h *Host) GetLayout(t TreeHandle, n NodeHandle) (stretchable.Layout, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ts, id, err := h.node(t, n)
	if err != nil {
		return stretchable.Layout{}, err
	}
	return ts.eng.Layout(id)
}

// tree resolves a tree handle. Caller holds h.mu.
func (h *Host) tree(t TreeHandle) (*treeState, error) {
	if h.closed {
		return nil, errors.Closed("host")
	}
	ts, ok := h.trees.Get(resource.Handle(t))
	if !ok {
		return nil, errors.InvalidHandle(errors.PhaseHandle, "tree", uint64(t))
	}
	return ts, nil
}

// node resolves a tree handle and a node handle scoped to that tree.
// Caller holds h.mu.
func (h *Host) node(t TreeHandle, n NodeHandle) (*treeState, engine.NodeID, error) {
	ts, err := h.tree(t)
	if err != nil {
		return nil, 0, err
	}
	ref, ok := h.nodes.Get(resource.Handle(n))
	if !ok || ref.tree != resource.Handle(t) {
		return nil, 0, errors.InvalidHandle(errors.PhaseHandle, "node", uint64(n))
	}
	return ts, ref.id, nil
}

// pair resolves two node handles against the same tree. Caller holds
// h.mu.
func (h *Host) pair(t TreeHandle, a, b NodeHandle) (*treeState, engine.NodeID, engine.NodeID, error) {
	ts, aid, err := h.node(t, a)
	if err != nil {
		return nil, 0, 0, err
	}
	_, bid, err := h.node(t, b)
	if err != nil {
		return nil, 0, 0, err
	}
	return ts, aid, bid, nil
}

// mintNode creates a leaf and issues its tree-scoped handle. Caller
// holds h.mu.
func (h *Host) mintNode(t TreeHandle, ts *treeState, s style.Style) NodeHandle {
	id := ts.eng.NewLeaf(s)
	hnd := NodeHandle(h.nodes.Insert(nodeRef{tree: resource.Handle(t), id: id}))
	ts.byID[id] = hnd
	return hnd
}

// dropNodeHandles invalidates every node handle minted for ts. Caller
// holds h.mu.
func (h *Host) dropNodeHandles(ts *treeState) {
	for id, hnd := range ts.byID {
		h.nodes.Remove(resource.Handle(hnd))
		delete(ts.byID, id)
	}
}
