package style

// PlacementKind discriminates a grid placement value.
type PlacementKind uint8

const (
	PlacementAuto PlacementKind = iota
	PlacementLine
	PlacementSpan
)

// Placement locates one edge of a grid item: automatic, a signed line
// index, or a span count.
type Placement struct {
	Kind  PlacementKind
	Value int16
}

// AutoPlacement returns the automatic placement.
func AutoPlacement() Placement { return Placement{Kind: PlacementAuto} }

// LinePlacement returns a placement at a signed grid line index.
func LinePlacement(line int16) Placement {
	return Placement{Kind: PlacementLine, Value: line}
}

// SpanPlacement returns a placement spanning n tracks.
func SpanPlacement(n uint16) Placement {
	return Placement{Kind: PlacementSpan, Value: int16(n)}
}

// Line is the start/end placement pair for one grid axis.
type Line struct {
	Start Placement
	End   Placement
}

// TrackSize is a non-repeated track sizing function: independent minimum
// and maximum sizing constraints for one track.
type TrackSize struct {
	Min Length
	Max Length
}

// RepetitionKind discriminates a track list entry. The single/repeated
// split is an explicit tag: a non-repeated entry is not a count-of-one
// repetition.
type RepetitionKind uint8

const (
	RepetitionSingle RepetitionKind = iota
	RepetitionAutoFill
	RepetitionAutoFit
	RepetitionCount
)

// Track is one entry of a grid template track list: either a single
// sizing function, or a repeated group of sizing functions.
type Track struct {
	Kind   RepetitionKind
	Count  uint16      // used when Kind == RepetitionCount
	Single TrackSize   // used when Kind == RepetitionSingle
	Repeat []TrackSize // used for all repeated kinds
}

// SingleTrack returns a non-repeated track list entry.
func SingleTrack(ts TrackSize) Track {
	return Track{Kind: RepetitionSingle, Single: ts}
}

// RepeatTrack returns a count-repeated track list entry.
func RepeatTrack(count uint16, tracks ...TrackSize) Track {
	return Track{Kind: RepetitionCount, Count: count, Repeat: tracks}
}
