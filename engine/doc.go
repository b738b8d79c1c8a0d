// Package engine implements the layout engine collaborator: a mutable
// tree of styled boxes with dirty tracking and on-demand geometry
// computation.
//
// The engine is addressed through NodeID values issued by the tree's
// generational slab, so a NodeID that outlives its node resolves to an
// invalid-handle error rather than undefined behavior.
//
// # Structural contract
//
//	NewLeaf        creates an unparented leaf owning a copy of its style
//	AddChild       appends to the ordered child list; rejects cycles
//	RemoveChild    fails when the node is not currently a child
//	Remove         destroys one node; its children become unparented roots
//	Clear          destroys every node in one operation
//
// # Sizing pass
//
// ComputeLayout runs synchronously to completion on the calling
// goroutine. The pass implements a deliberately small subset of box
// layout: fixed and percentage sizes, padding/border/margin/gap,
// row/column stacking with flex-grow and content distribution, stretch
// cross-alignment, absolute positioning by inset, display:none pruning,
// measure-driven leaf sizing and optional whole-unit rounding. Grid
// containers are stacked like flex containers; template tracks influence
// only style storage, not geometry.
//
// Leaves that carry a measure context and lack definite dimensions are
// sized by the MeasureFunc supplied to ComputeLayoutWithMeasure. A NaN
// result is accepted and recorded for the failing leaf; NaN never
// poisons ancestor or sibling geometry.
package engine
