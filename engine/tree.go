package engine

import (
	"go.uber.org/zap"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/errors"
	"github.com/mortencombat/stretchable/resource"
	"github.com/mortencombat/stretchable/style"
)

// NodeID identifies one node of a Tree. IDs are generational: an ID
// whose node was removed never resolves again, even after slot reuse.
// The zero NodeID is always invalid.
type NodeID uint64

// MeasureFunc supplies the intrinsic content size of a measurable leaf.
// Unknown known-dimensions are NaN; available space per axis is a
// definite points value, min-content or max-content. The returned size
// may be NaN on either axis and is recorded as-is for that leaf.
type MeasureFunc func(known stretchable.Size[float32], available stretchable.Size[style.Length], context uint64) stretchable.Size[float32]

type node struct {
	style     style.Style
	parent    NodeID
	children  []NodeID
	context   uint64
	hasCtx    bool
	layout    stretchable.Layout
	hasLayout bool
	dirty     bool
}

// Tree is one layout engine instance: it owns all nodes created from it.
// Operations on a Tree must be externally serialized by the caller.
type Tree struct {
	nodes    *resource.Table[*node]
	rounding bool
}

// Option configures a Tree.
type Option func(*Tree)

// WithRounding sets the initial rounding mode. Rounding is enabled by
// default.
func WithRounding(enabled bool) Option {
	return func(t *Tree) { t.rounding = enabled }
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		nodes:    resource.NewTable[*node](),
		rounding: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// EnableRounding makes computed geometry snap to whole units.
func (t *Tree) EnableRounding() { t.rounding = true }

// DisableRounding keeps computed geometry at full precision.
func (t *Tree) DisableRounding() { t.rounding = false }

// NewLeaf creates an unparented leaf node owning a copy of s.
func (t *Tree) NewLeaf(s style.Style) NodeID {
	id := NodeID(t.nodes.Insert(&node{
		style: s.Clone(),
		dirty: true,
	}))
	Logger().Debug("new leaf", zap.Uint64("node", uint64(id)))
	return id
}

// NodeCount returns the number of live nodes.
func (t *Tree) NodeCount() int {
	return t.nodes.Len()
}

// Contains reports whether id resolves to a live node.
func (t *Tree) Contains(id NodeID) bool {
	return t.nodes.Contains(resource.Handle(id))
}

// Remove detaches and destroys one node. Its children are not destroyed;
// they become unparented roots.
func (t *Tree) Remove(id NodeID) error {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return err
	}

	if n.parent != 0 {
		if p, ok := t.nodes.Get(resource.Handle(n.parent)); ok {
			p.children = removeID(p.children, id)
			t.markDirtyUp(n.parent)
		}
	}
	for _, c := range n.children {
		if cn, ok := t.nodes.Get(resource.Handle(c)); ok {
			cn.parent = 0
		}
	}
	t.nodes.Remove(resource.Handle(id))
	return nil
}

// Clear destroys every node. All previously issued NodeIDs become
// invalid.
func (t *Tree) Clear() {
	t.nodes.Clear()
}

// AddChild appends child to parent's ordered child list. A child that is
// already parented is moved. Fails with a cycle error when the edge
// would make a node its own ancestor; the tree is left unmodified.
func (t *Tree) AddChild(parent, child NodeID) error {
	p, err := t.get(parent, errors.PhaseMutate)
	if err != nil {
		return err
	}
	c, err := t.get(child, errors.PhaseMutate)
	if err != nil {
		return err
	}

	if err := t.checkCycle(parent, child); err != nil {
		return err
	}

	if c.parent != 0 {
		if old, ok := t.nodes.Get(resource.Handle(c.parent)); ok {
			old.children = removeID(old.children, child)
			t.markDirtyUp(c.parent)
		}
	}
	p.children = append(p.children, child)
	c.parent = parent
	t.markDirtyUp(parent)
	return nil
}

// RemoveChild unlinks child from parent's child list. The child survives
// as an unparented root. Fails with a structural error when the node is
// not currently a child of the parent.
func (t *Tree) RemoveChild(parent, child NodeID) error {
	p, err := t.get(parent, errors.PhaseMutate)
	if err != nil {
		return err
	}
	c, err := t.get(child, errors.PhaseMutate)
	if err != nil {
		return err
	}

	if indexOf(p.children, child) < 0 {
		return errors.NotChild()
	}
	p.children = removeID(p.children, child)
	c.parent = 0
	t.markDirtyUp(parent)
	return nil
}

// RemoveChildAtIndex unlinks the index-th child of parent.
func (t *Tree) RemoveChildAtIndex(parent NodeID, index int) (NodeID, error) {
	p, err := t.get(parent, errors.PhaseMutate)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(p.children) {
		return 0, errors.OutOfBounds(index, len(p.children))
	}

	child := p.children[index]
	p.children = append(p.children[:index], p.children[index+1:]...)
	if c, ok := t.nodes.Get(resource.Handle(child)); ok {
		c.parent = 0
	}
	t.markDirtyUp(parent)
	return child, nil
}

// ReplaceChildAtIndex swaps the index-th child of parent for a new node,
// returning the replaced child, which becomes an unparented root.
func (t *Tree) ReplaceChildAtIndex(parent NodeID, index int, child NodeID) (NodeID, error) {
	p, err := t.get(parent, errors.PhaseMutate)
	if err != nil {
		return 0, err
	}
	c, err := t.get(child, errors.PhaseMutate)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(p.children) {
		return 0, errors.OutOfBounds(index, len(p.children))
	}
	if err := t.checkCycle(parent, child); err != nil {
		return 0, err
	}

	old := p.children[index]
	if old == child {
		return old, nil
	}
	if on, ok := t.nodes.Get(resource.Handle(old)); ok {
		on.parent = 0
	}
	if c.parent != 0 {
		if prev, ok := t.nodes.Get(resource.Handle(c.parent)); ok {
			prev.children = removeID(prev.children, child)
			t.markDirtyUp(c.parent)
		}
	}
	p.children[index] = child
	c.parent = parent
	t.markDirtyUp(parent)
	return old, nil
}

// SetStyle replaces the node's style wholesale and marks it dirty.
func (t *Tree) SetStyle(id NodeID, s style.Style) error {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return err
	}
	n.style = s.Clone()
	t.markDirtyUp(id)
	return nil
}

// Style returns a copy of the node's style.
func (t *Tree) Style(id NodeID) (style.Style, error) {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return style.Style{}, err
	}
	return n.style.Clone(), nil
}

// SetContext attaches or detaches the node's measure context. A node
// without context has no intrinsic-content sizing behavior.
func (t *Tree) SetContext(id NodeID, context uint64, present bool) error {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return err
	}
	n.context = context
	n.hasCtx = present
	t.markDirtyUp(id)
	return nil
}

// MarkDirty flags the node and its ancestors as needing recomputation.
func (t *Tree) MarkDirty(id NodeID) error {
	if _, err := t.get(id, errors.PhaseMutate); err != nil {
		return err
	}
	t.markDirtyUp(id)
	return nil
}

// Dirty reports whether the node's last computed layout may be stale.
func (t *Tree) Dirty(id NodeID) (bool, error) {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return false, err
	}
	return n.dirty, nil
}

// Children returns the ordered child list of a node.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return nil, err
	}
	return append([]NodeID(nil), n.children...), nil
}

// Parent returns the node's parent, or 0 for a root.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, err := t.get(id, errors.PhaseMutate)
	if err != nil {
		return 0, err
	}
	return n.parent, nil
}

// Layout returns the node's computed geometry. Fails when layout has
// not been computed since the node was created.
func (t *Tree) Layout(id NodeID) (stretchable.Layout, error) {
	n, err := t.get(id, errors.PhaseLayout)
	if err != nil {
		return stretchable.Layout{}, err
	}
	if !n.hasLayout {
		return stretchable.Layout{}, errors.NoLayout()
	}
	return n.layout, nil
}

// get resolves a NodeID or fails with an invalid-handle error.
func (t *Tree) get(id NodeID, phase errors.Phase) (*node, error) {
	n, ok := t.nodes.Get(resource.Handle(id))
	if !ok {
		return nil, errors.InvalidHandle(phase, "node", uint64(id))
	}
	return n, nil
}

// checkCycle fails when child is parent itself or one of its ancestors.
func (t *Tree) checkCycle(parent, child NodeID) error {
	for id := parent; id != 0; {
		if id == child {
			return errors.Cycle("node is an ancestor of the proposed parent")
		}
		n, ok := t.nodes.Get(resource.Handle(id))
		if !ok {
			break
		}
		id = n.parent
	}
	return nil
}

// markDirtyUp marks the node and every ancestor dirty.
func (t *Tree) markDirtyUp(id NodeID) {
	for id != 0 {
		n, ok := t.nodes.Get(resource.Handle(id))
		if !ok {
			return
		}
		n.dirty = true
		id = n.parent
	}
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}
