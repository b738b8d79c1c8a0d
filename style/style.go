package style

import (
	"math"

	"github.com/mortencombat/stretchable"
)

// Style is the full set of layout-affecting properties for one box.
// It is standalone data: a node copies the Style it is created with, so
// mutating a detached Style value never affects an existing node.
//
// A Style produced by the codec is internally consistent: every Length
// carries a unit legal for its field. Hand-built Style values must
// respect the same subsets.
type Style struct {
	Display        Display
	Overflow       stretchable.Point[Overflow]
	ScrollbarWidth float32

	Position Position
	Inset    stretchable.Rect[Length] // auto | points | percent

	// Optional alignment; zero values mean not set.
	AlignItems     AlignItems
	JustifyItems   AlignItems
	AlignSelf      AlignItems
	JustifySelf    AlignItems
	AlignContent   AlignContent
	JustifyContent AlignContent

	Gap     stretchable.Size[Length] // points | percent
	Margin  stretchable.Rect[Length] // auto | points | percent
	Border  stretchable.Rect[Length] // points | percent
	Padding stretchable.Rect[Length] // points | percent

	Size    stretchable.Size[Length] // auto | points | percent
	MinSize stretchable.Size[Length]
	MaxSize stretchable.Size[Length]

	// AspectRatio is width/height; NaN means not set.
	AspectRatio float32

	FlexWrap      FlexWrap
	FlexDirection FlexDirection
	FlexGrow      float32
	FlexShrink    float32
	FlexBasis     Length // auto | points | percent

	GridTemplateRows    []Track
	GridTemplateColumns []Track
	GridAutoRows        []TrackSize
	GridAutoColumns     []TrackSize
	GridAutoFlow        GridAutoFlow

	GridRow    Line
	GridColumn Line
}

// Default returns the engine's default style: a relative flex row that
// sizes to its content.
func Default() Style {
	auto := stretchable.Size[Length]{Width: Auto(), Height: Auto()}
	zero := stretchable.Rect[Length]{
		Top: Points(0), Right: Points(0), Bottom: Points(0), Left: Points(0),
	}
	return Style{
		Display:        DisplayFlex,
		ScrollbarWidth: 0,
		Position:       PositionRelative,
		Inset: stretchable.Rect[Length]{
			Top: Auto(), Right: Auto(), Bottom: Auto(), Left: Auto(),
		},
		Gap:         stretchable.Size[Length]{Width: Points(0), Height: Points(0)},
		Margin:      zero,
		Border:      zero,
		Padding:     zero,
		Size:        auto,
		MinSize:     auto,
		MaxSize:     auto,
		AspectRatio: float32(math.NaN()),
		FlexGrow:    0,
		FlexShrink:  1,
		FlexBasis:   Auto(),
	}
}

// HasAspectRatio reports whether an aspect ratio is set.
func (s *Style) HasAspectRatio() bool {
	return !math.IsNaN(float64(s.AspectRatio))
}

// Clone returns a deep copy. The grid track slices are the only
// reference-typed fields.
func (s Style) Clone() Style {
	out := s
	out.GridTemplateRows = cloneTracks(s.GridTemplateRows)
	out.GridTemplateColumns = cloneTracks(s.GridTemplateColumns)
	out.GridAutoRows = append([]TrackSize(nil), s.GridAutoRows...)
	out.GridAutoColumns = append([]TrackSize(nil), s.GridAutoColumns...)
	return out
}

func cloneTracks(tracks []Track) []Track {
	if tracks == nil {
		return nil
	}
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t
		out[i].Repeat = append([]TrackSize(nil), t.Repeat...)
	}
	return out
}
