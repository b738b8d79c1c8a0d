// Package host exposes the layout engine through a handle-based call
// surface suitable for embedding behind a foreign-function boundary.
//
// All state lives behind opaque generational handles: TreeHandle for
// engine instances, NodeHandle for nodes within a tree, StyleHandle for
// standalone decoded styles. A handle whose resource was released never
// resolves again, even after internal slot reuse; every operation
// reports stale or foreign handles as typed errors rather than
// corrupting state.
//
// Styles cross the boundary as flat tagged records (style.RawStyle) and
// are decoded eagerly at CreateStyle, so malformed input is reported at
// creation time with the offending field named. Layout results flow the
// other way through GetLayout as fully resolved geometry.
//
// Measure callbacks run under a host-wide mutex and are failure
// contained: a callback that returns an error or panics is logged and
// its result replaced with a NaN size sentinel, so one misbehaving
// callback cannot abort a layout pass or poison sibling geometry.
package host
