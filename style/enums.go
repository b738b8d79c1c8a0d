package style

// Display selects the layout strategy for a node and its children.
type Display uint8

const (
	DisplayNone Display = iota
	DisplayFlex
	DisplayGrid
	DisplayBlock
)

func (d Display) String() string {
	switch d {
	case DisplayNone:
		return "none"
	case DisplayFlex:
		return "flex"
	case DisplayGrid:
		return "grid"
	case DisplayBlock:
		return "block"
	}
	return "display(?)"
}

// Overflow controls how content exceeding the box is handled, per axis.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowClip
)

func (o Overflow) String() string {
	switch o {
	case OverflowVisible:
		return "visible"
	case OverflowHidden:
		return "hidden"
	case OverflowScroll:
		return "scroll"
	case OverflowClip:
		return "clip"
	}
	return "overflow(?)"
}

// Position selects relative or absolute positioning.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// FlexWrap controls flex line wrapping.
type FlexWrap uint8

const (
	FlexWrapNoWrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapWrapReverse
)

// FlexDirection sets the main axis of a flex container.
type FlexDirection uint8

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionColumn
	FlexDirectionRowReverse
	FlexDirectionColumnReverse
)

// IsRow reports whether the main axis is horizontal.
func (d FlexDirection) IsRow() bool {
	return d == FlexDirectionRow || d == FlexDirectionRowReverse
}

// IsReverse reports whether children are laid out in reverse order.
func (d FlexDirection) IsReverse() bool {
	return d == FlexDirectionRowReverse || d == FlexDirectionColumnReverse
}

// AlignItems covers the item alignment enumerations (align-items,
// justify-items, align-self, justify-self). The zero value means the
// property is not set.
type AlignItems uint8

const (
	AlignItemsNone AlignItems = iota
	AlignItemsStart
	AlignItemsEnd
	AlignItemsFlexStart
	AlignItemsFlexEnd
	AlignItemsCenter
	AlignItemsBaseline
	AlignItemsStretch
)

// AlignContent covers the content distribution enumerations
// (align-content, justify-content). The zero value means the property is
// not set.
type AlignContent uint8

const (
	AlignContentNone AlignContent = iota
	AlignContentStart
	AlignContentEnd
	AlignContentFlexStart
	AlignContentFlexEnd
	AlignContentCenter
	AlignContentStretch
	AlignContentSpaceBetween
	AlignContentSpaceEvenly
	AlignContentSpaceAround
)

// GridAutoFlow controls automatic placement of grid items.
type GridAutoFlow uint8

const (
	GridAutoFlowRow GridAutoFlow = iota
	GridAutoFlowColumn
	GridAutoFlowRowDense
	GridAutoFlowColumnDense
)
