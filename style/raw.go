package style

// Wire-form records. These are the flat, integer-tagged shapes that cross
// the boundary; the codec in decode.go turns them into typed values.

// Length tags. Which tags a field accepts depends on the field; see the
// decode functions.
const (
	TagAuto              int32 = 0
	TagPoints            int32 = 1
	TagPercent           int32 = 2
	TagMinContent        int32 = 3
	TagMaxContent        int32 = 4
	TagFitContentPoints  int32 = 5
	TagFitContentPercent int32 = 6
	TagFraction          int32 = 7
)

// Grid placement kinds.
const (
	RawPlacementAuto int8 = 0
	RawPlacementLine int8 = 1
	RawPlacementSpan int8 = 2
)

// Track repetition tags. The single/repeated discriminator is the
// reserved sentinel RawRepeatSingle, kept explicit on both sides of the
// codec. Positive values are repetition counts.
const (
	RawRepeatSingle   int32 = -2
	RawRepeatAutoFit  int32 = -1
	RawRepeatAutoFill int32 = 0
)

// RawLength is a (tag, value) dimension pair.
type RawLength struct {
	Dim   int32
	Value float32
}

// RawAuto returns the wire form of the auto length.
func RawAuto() RawLength { return RawLength{Dim: TagAuto} }

// RawPoints returns the wire form of an absolute length.
func RawPoints(v float32) RawLength { return RawLength{Dim: TagPoints, Value: v} }

// RawPercent returns the wire form of a percentage length.
func RawPercent(v float32) RawLength { return RawLength{Dim: TagPercent, Value: v} }

// RawSize is a width/height pair of raw lengths.
type RawSize struct {
	Width  RawLength
	Height RawLength
}

// RawRect holds one raw length per box edge.
type RawRect struct {
	Left   RawLength
	Right  RawLength
	Top    RawLength
	Bottom RawLength
}

// RawGridIndex is a (kind, value) grid placement pair.
type RawGridIndex struct {
	Kind  int8
	Value int16
}

// RawGridPlacement is the start/end pair for one grid axis.
type RawGridPlacement struct {
	Start RawGridIndex
	End   RawGridIndex
}

// RawTrackSize is a (min, max) track sizing pair.
type RawTrackSize struct {
	Min RawLength
	Max RawLength
}

// RawTrack is one grid template track list entry: Repetition selects
// between a single sizing function (RawRepeatSingle, using Single) and a
// repeated group (any other tag, using Repeat).
type RawTrack struct {
	Repetition int32
	Single     RawTrackSize
	Repeat     []RawTrackSize
}

// RawStyle is the flat record holding every style property. Optional
// fields (aspect ratio, alignments) are nil pointers when unset.
type RawStyle struct {
	Display int32

	OverflowX      int32
	OverflowY      int32
	ScrollbarWidth float32

	Position int32
	Inset    RawRect

	Gap RawSize

	Margin  RawRect
	Border  RawRect
	Padding RawRect

	Size    RawSize
	MinSize RawSize
	MaxSize RawSize

	FlexWrap      int32
	FlexDirection int32
	FlexGrow      float32
	FlexShrink    float32
	FlexBasis     RawLength

	GridTemplateRows    []RawTrack
	GridTemplateColumns []RawTrack
	GridAutoRows        []RawTrackSize
	GridAutoColumns     []RawTrackSize
	GridAutoFlow        int32

	GridRow    RawGridPlacement
	GridColumn RawGridPlacement

	AspectRatio *float32

	AlignItems     *int32
	JustifyItems   *int32
	AlignSelf      *int32
	JustifySelf    *int32
	AlignContent   *int32
	JustifyContent *int32
}

// DefaultRaw returns the wire form of the default style.
func DefaultRaw() RawStyle {
	autoRect := RawRect{Left: RawAuto(), Right: RawAuto(), Top: RawAuto(), Bottom: RawAuto()}
	zeroRect := RawRect{Left: RawPoints(0), Right: RawPoints(0), Top: RawPoints(0), Bottom: RawPoints(0)}
	autoSize := RawSize{Width: RawAuto(), Height: RawAuto()}
	return RawStyle{
		Display:    int32(DisplayFlex),
		Position:   int32(PositionRelative),
		Inset:      autoRect,
		Gap:        RawSize{Width: RawPoints(0), Height: RawPoints(0)},
		Margin:     zeroRect,
		Border:     zeroRect,
		Padding:    zeroRect,
		Size:       autoSize,
		MinSize:    autoSize,
		MaxSize:    autoSize,
		FlexShrink: 1,
		FlexBasis:  RawAuto(),
	}
}
