// Package stretchable provides the host-side boundary for a native
// box-layout engine that maintains a mutable tree of styled boxes and
// computes geometry on demand.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	stretchable/         Root package with shared geometry types and the Layout record
//	├── host/            Handle-based call surface: tree lifecycle, node mutation,
//	│                    measure callback bridge, layout result codec
//	├── engine/          The layout engine collaborator: node tree, dirty tracking,
//	│                    structural operations and the sizing pass
//	├── style/           Style model and the codec between flat integer-tagged
//	│                    records and typed style values
//	├── resource/        Generational handle tables
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Build a tree through the handle surface and read back geometry:
//
//	h := host.New()
//	defer h.Close()
//
//	tree, _ := h.InitTree()
//	defer h.FreeTree(tree)
//
//	root, _ := h.CreateNodeWithStyle(tree, style.DefaultRaw())
//	child, _ := h.CreateNodeWithStyle(tree, style.DefaultRaw())
//	h.AddChild(tree, root, child)
//
//	h.ComputeLayout(tree, root, style.RawSize{
//		Width:  style.RawLength{Dim: style.TagPoints, Value: 800},
//		Height: style.RawLength{Dim: style.TagMaxContent},
//	})
//
//	layout, _ := h.GetLayout(tree, child)
//	fmt.Println(layout.Size) // computed width/height
//
// # Handles
//
// Every object that crosses the boundary (tree, node, style) is referred to
// by an opaque numeric handle backed by a generational table. Freeing an
// object bumps its slot's generation, so a stale handle is a checkable
// error rather than undefined behavior.
//
// # Thread Safety
//
// A host.Host serializes its operations internally and is safe for
// concurrent use. A bare engine.Tree is not; its operations must be
// externally serialized. The measure callback bridge acquires a host-wide
// lock around each callback invocation; callbacks must not re-enter the
// same tree.
package stretchable
