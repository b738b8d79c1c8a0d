package stretchable

import "math"

// Point is an x/y pair.
type Point[T any] struct {
	X T
	Y T
}

// Size is a width/height pair.
type Size[T any] struct {
	Width  T
	Height T
}

// Rect holds one value per box edge. Edge order follows the layout
// output convention: top, right, bottom, left.
type Rect[T any] struct {
	Top    T
	Right  T
	Bottom T
	Left   T
}

// Layout is the computed geometry of a single node. It is produced fresh
// by every layout computation and overwritten wholesale on recomputation.
type Layout struct {
	// Order is the node's position among its painted siblings
	// (display:none siblings are skipped).
	Order uint32

	// Location is the offset of the node's border box relative to the
	// parent's content box.
	Location Point[float32]

	// Size is the border-box size of the node.
	Size Size[float32]

	// ContentSize is the size of the laid-out content; it may exceed
	// Size when content overflows.
	ContentSize Size[float32]

	// ScrollbarSize is the space reserved for scrollbars per axis.
	ScrollbarSize Size[float32]

	Border  Rect[float32]
	Padding Rect[float32]
	Margin  Rect[float32]
}

// SizeZero returns a zero float32 size.
func SizeZero() Size[float32] {
	return Size[float32]{}
}

// SizeNaN returns a size with both axes set to NaN. It is the sentinel
// substituted when a measure callback fails.
func SizeNaN() Size[float32] {
	nan := float32(math.NaN())
	return Size[float32]{Width: nan, Height: nan}
}
