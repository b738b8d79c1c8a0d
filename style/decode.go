package style

import (
	"math"
	"strconv"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/errors"
)

// Decode converts a flat tagged record into a typed Style. Decoding is
// pure: on any out-of-range tag it fails with a decode error naming the
// offending field and produces no partial Style.
func Decode(raw RawStyle) (Style, error) {
	var (
		s   Style
		err error
	)

	if s.Display, err = decodeDisplay(raw.Display); err != nil {
		return Style{}, err
	}
	if s.Overflow.X, err = decodeOverflow(raw.OverflowX, "overflow_x"); err != nil {
		return Style{}, err
	}
	if s.Overflow.Y, err = decodeOverflow(raw.OverflowY, "overflow_y"); err != nil {
		return Style{}, err
	}
	s.ScrollbarWidth = raw.ScrollbarWidth

	if s.Position, err = decodePosition(raw.Position); err != nil {
		return Style{}, err
	}
	if s.Inset, err = decodeRect(raw.Inset, decodeLengthPercentAuto, "inset"); err != nil {
		return Style{}, err
	}

	if s.Gap, err = decodeSize(raw.Gap, decodeLengthPercent, "gap"); err != nil {
		return Style{}, err
	}
	if s.Margin, err = decodeRect(raw.Margin, decodeLengthPercentAuto, "margin"); err != nil {
		return Style{}, err
	}
	if s.Border, err = decodeRect(raw.Border, decodeLengthPercent, "border"); err != nil {
		return Style{}, err
	}
	if s.Padding, err = decodeRect(raw.Padding, decodeLengthPercent, "padding"); err != nil {
		return Style{}, err
	}

	if s.Size, err = decodeSize(raw.Size, decodeDimension, "size"); err != nil {
		return Style{}, err
	}
	if s.MinSize, err = decodeSize(raw.MinSize, decodeDimension, "min_size"); err != nil {
		return Style{}, err
	}
	if s.MaxSize, err = decodeSize(raw.MaxSize, decodeDimension, "max_size"); err != nil {
		return Style{}, err
	}

	if raw.AspectRatio != nil {
		s.AspectRatio = *raw.AspectRatio
	} else {
		s.AspectRatio = float32(math.NaN())
	}

	if s.FlexWrap, err = decodeFlexWrap(raw.FlexWrap); err != nil {
		return Style{}, err
	}
	if s.FlexDirection, err = decodeFlexDirection(raw.FlexDirection); err != nil {
		return Style{}, err
	}
	s.FlexGrow = raw.FlexGrow
	s.FlexShrink = raw.FlexShrink
	if s.FlexBasis, err = decodeDimension(raw.FlexBasis, []string{"flex_basis"}); err != nil {
		return Style{}, err
	}

	if s.GridTemplateRows, err = decodeTracks(raw.GridTemplateRows, "grid_template_rows"); err != nil {
		return Style{}, err
	}
	if s.GridTemplateColumns, err = decodeTracks(raw.GridTemplateColumns, "grid_template_columns"); err != nil {
		return Style{}, err
	}
	if s.GridAutoRows, err = decodeTrackSizes(raw.GridAutoRows, "grid_auto_rows"); err != nil {
		return Style{}, err
	}
	if s.GridAutoColumns, err = decodeTrackSizes(raw.GridAutoColumns, "grid_auto_columns"); err != nil {
		return Style{}, err
	}
	if s.GridAutoFlow, err = decodeGridAutoFlow(raw.GridAutoFlow); err != nil {
		return Style{}, err
	}

	if s.GridRow, err = decodeLine(raw.GridRow, "grid_row"); err != nil {
		return Style{}, err
	}
	if s.GridColumn, err = decodeLine(raw.GridColumn, "grid_column"); err != nil {
		return Style{}, err
	}

	if s.AlignItems, err = decodeAlignItems(raw.AlignItems, "align_items"); err != nil {
		return Style{}, err
	}
	if s.JustifyItems, err = decodeAlignItems(raw.JustifyItems, "justify_items"); err != nil {
		return Style{}, err
	}
	if s.AlignSelf, err = decodeAlignItems(raw.AlignSelf, "align_self"); err != nil {
		return Style{}, err
	}
	if s.JustifySelf, err = decodeAlignItems(raw.JustifySelf, "justify_self"); err != nil {
		return Style{}, err
	}
	if s.AlignContent, err = decodeAlignContent(raw.AlignContent, "align_content"); err != nil {
		return Style{}, err
	}
	if s.JustifyContent, err = decodeAlignContent(raw.JustifyContent, "justify_content"); err != nil {
		return Style{}, err
	}

	return s, nil
}

// Field-subset length decoders. Each accepts only the tags legal for the
// consuming field.

// decodeDimension accepts auto | points | percent (size, min/max size,
// flex basis).
func decodeDimension(raw RawLength, path []string) (Length, error) {
	switch raw.Dim {
	case TagAuto:
		return Auto(), nil
	case TagPoints:
		return Points(raw.Value), nil
	case TagPercent:
		return Percent(raw.Value), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "dimension")
	}
}

// decodeLengthPercent accepts points | percent (padding, border, gap).
func decodeLengthPercent(raw RawLength, path []string) (Length, error) {
	switch raw.Dim {
	case TagPoints:
		return Points(raw.Value), nil
	case TagPercent:
		return Percent(raw.Value), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "length-percentage")
	}
}

// decodeLengthPercentAuto accepts auto | points | percent (margin, inset).
func decodeLengthPercentAuto(raw RawLength, path []string) (Length, error) {
	switch raw.Dim {
	case TagAuto:
		return Auto(), nil
	case TagPoints:
		return Points(raw.Value), nil
	case TagPercent:
		return Percent(raw.Value), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "length-percentage-auto")
	}
}

// decodeMinTrack accepts auto | points | percent | min-content |
// max-content (grid track minimums).
func decodeMinTrack(raw RawLength, path []string) (Length, error) {
	switch raw.Dim {
	case TagAuto:
		return Auto(), nil
	case TagPoints:
		return Points(raw.Value), nil
	case TagPercent:
		return Percent(raw.Value), nil
	case TagMinContent:
		return MinContent(), nil
	case TagMaxContent:
		return MaxContent(), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "min-track-sizing")
	}
}

// decodeMaxTrack accepts the full tag range including fit-content and
// fractions (grid track maximums).
func decodeMaxTrack(raw RawLength, path []string) (Length, error) {
	switch raw.Dim {
	case TagAuto:
		return Auto(), nil
	case TagPoints:
		return Points(raw.Value), nil
	case TagPercent:
		return Percent(raw.Value), nil
	case TagMinContent:
		return MinContent(), nil
	case TagMaxContent:
		return MaxContent(), nil
	case TagFitContentPoints:
		return Length{Unit: UnitFitContentPoints, Value: raw.Value}, nil
	case TagFitContentPercent:
		return Length{Unit: UnitFitContentPercent, Value: raw.Value}, nil
	case TagFraction:
		return Fraction(raw.Value), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "max-track-sizing")
	}
}

// DecodeAvailableSpace accepts points | min-content | max-content. It is
// the inbound half of the only bidirectional length mapping; see
// EncodeAvailableSpace for the outbound half used by the measure bridge.
func DecodeAvailableSpace(raw RawLength, path ...string) (Length, error) {
	switch raw.Dim {
	case TagPoints:
		return Points(raw.Value), nil
	case TagMinContent:
		return MinContent(), nil
	case TagMaxContent:
		return MaxContent(), nil
	default:
		return Length{}, errors.UnsupportedUnit(path, raw.Dim, "available-space")
	}
}

// DecodeAvailableSize decodes a width/height pair of available-space
// constraints.
func DecodeAvailableSize(raw RawSize) (stretchable.Size[Length], error) {
	w, err := DecodeAvailableSpace(raw.Width, "available_space", "width")
	if err != nil {
		return stretchable.Size[Length]{}, err
	}
	h, err := DecodeAvailableSpace(raw.Height, "available_space", "height")
	if err != nil {
		return stretchable.Size[Length]{}, err
	}
	return stretchable.Size[Length]{Width: w, Height: h}, nil
}

type lengthDecoder func(RawLength, []string) (Length, error)

func decodeRect(raw RawRect, dec lengthDecoder, field string) (stretchable.Rect[Length], error) {
	var (
		r   stretchable.Rect[Length]
		err error
	)
	if r.Left, err = dec(raw.Left, []string{field, "left"}); err != nil {
		return r, err
	}
	if r.Right, err = dec(raw.Right, []string{field, "right"}); err != nil {
		return r, err
	}
	if r.Top, err = dec(raw.Top, []string{field, "top"}); err != nil {
		return r, err
	}
	if r.Bottom, err = dec(raw.Bottom, []string{field, "bottom"}); err != nil {
		return r, err
	}
	return r, nil
}

func decodeSize(raw RawSize, dec lengthDecoder, field string) (stretchable.Size[Length], error) {
	var (
		s   stretchable.Size[Length]
		err error
	)
	if s.Width, err = dec(raw.Width, []string{field, "width"}); err != nil {
		return s, err
	}
	if s.Height, err = dec(raw.Height, []string{field, "height"}); err != nil {
		return s, err
	}
	return s, nil
}

// Grid decoders.

func decodePlacement(raw RawGridIndex, path []string) (Placement, error) {
	switch raw.Kind {
	case RawPlacementAuto:
		return AutoPlacement(), nil
	case RawPlacementLine:
		return LinePlacement(raw.Value), nil
	case RawPlacementSpan:
		if raw.Value < 0 {
			return Placement{}, &errors.Error{
				Phase:  errors.PhaseDecode,
				Kind:   errors.KindInvalidInput,
				Path:   path,
				Detail: "span count must not be negative",
				Value:  raw.Value,
			}
		}
		return SpanPlacement(uint16(raw.Value)), nil
	default:
		return Placement{}, errors.InvalidEnum(path, raw.Kind, "grid-placement kind")
	}
}

func decodeLine(raw RawGridPlacement, field string) (Line, error) {
	var (
		l   Line
		err error
	)
	if l.Start, err = decodePlacement(raw.Start, []string{field, "start"}); err != nil {
		return l, err
	}
	if l.End, err = decodePlacement(raw.End, []string{field, "end"}); err != nil {
		return l, err
	}
	return l, nil
}

func decodeTrackSize(raw RawTrackSize, path []string) (TrackSize, error) {
	min, err := decodeMinTrack(raw.Min, append(path, "min"))
	if err != nil {
		return TrackSize{}, err
	}
	max, err := decodeMaxTrack(raw.Max, append(path, "max"))
	if err != nil {
		return TrackSize{}, err
	}
	return TrackSize{Min: min, Max: max}, nil
}

func decodeTrackSizes(raw []RawTrackSize, field string) ([]TrackSize, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]TrackSize, len(raw))
	for i, r := range raw {
		ts, err := decodeTrackSize(r, []string{field, strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		out[i] = ts
	}
	return out, nil
}

func decodeTrack(raw RawTrack, path []string) (Track, error) {
	if raw.Repetition == RawRepeatSingle {
		ts, err := decodeTrackSize(raw.Single, append(path, "single"))
		if err != nil {
			return Track{}, err
		}
		return SingleTrack(ts), nil
	}

	repeat := make([]TrackSize, len(raw.Repeat))
	for i, r := range raw.Repeat {
		ts, err := decodeTrackSize(r, append(path, strconv.Itoa(i)))
		if err != nil {
			return Track{}, err
		}
		repeat[i] = ts
	}

	switch {
	case raw.Repetition == RawRepeatAutoFit:
		return Track{Kind: RepetitionAutoFit, Repeat: repeat}, nil
	case raw.Repetition == RawRepeatAutoFill:
		return Track{Kind: RepetitionAutoFill, Repeat: repeat}, nil
	case raw.Repetition > 0:
		return Track{Kind: RepetitionCount, Count: uint16(raw.Repetition), Repeat: repeat}, nil
	default:
		return Track{}, errors.InvalidEnum(path, raw.Repetition, "track repetition")
	}
}

func decodeTracks(raw []RawTrack, field string) ([]Track, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Track, len(raw))
	for i, r := range raw {
		t, err := decodeTrack(r, []string{field, strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Enum decoders.

func decodeDisplay(v int32) (Display, error) {
	if v < 0 || v > int32(DisplayBlock) {
		return 0, errors.InvalidEnum([]string{"display"}, v, "display")
	}
	return Display(v), nil
}

func decodeOverflow(v int32, field string) (Overflow, error) {
	if v < 0 || v > int32(OverflowClip) {
		return 0, errors.InvalidEnum([]string{field}, v, "overflow")
	}
	return Overflow(v), nil
}

func decodePosition(v int32) (Position, error) {
	if v < 0 || v > int32(PositionAbsolute) {
		return 0, errors.InvalidEnum([]string{"position"}, v, "position")
	}
	return Position(v), nil
}

func decodeFlexWrap(v int32) (FlexWrap, error) {
	if v < 0 || v > int32(FlexWrapWrapReverse) {
		return 0, errors.InvalidEnum([]string{"flex_wrap"}, v, "flex-wrap")
	}
	return FlexWrap(v), nil
}

func decodeFlexDirection(v int32) (FlexDirection, error) {
	if v < 0 || v > int32(FlexDirectionColumnReverse) {
		return 0, errors.InvalidEnum([]string{"flex_direction"}, v, "flex-direction")
	}
	return FlexDirection(v), nil
}

func decodeGridAutoFlow(v int32) (GridAutoFlow, error) {
	if v < 0 || v > int32(GridAutoFlowColumnDense) {
		return 0, errors.InvalidEnum([]string{"grid_auto_flow"}, v, "grid-auto-flow")
	}
	return GridAutoFlow(v), nil
}

func decodeAlignItems(v *int32, field string) (AlignItems, error) {
	if v == nil {
		return AlignItemsNone, nil
	}
	if *v < 0 || *v > 6 {
		return 0, errors.InvalidEnum([]string{field}, *v, "align-items")
	}
	return AlignItems(*v + 1), nil
}

func decodeAlignContent(v *int32, field string) (AlignContent, error) {
	if v == nil {
		return AlignContentNone, nil
	}
	if *v < 0 || *v > 8 {
		return 0, errors.InvalidEnum([]string{field}, *v, "align-content")
	}
	return AlignContent(*v + 1), nil
}
