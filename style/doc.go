// Package style models the full set of layout-affecting properties for a
// box, and the codec between the flat integer-tagged records that cross
// the boundary and the typed values the engine consumes.
//
// # Wire form
//
// Everything that crosses the boundary is a small tagged record: a length
// is a (tag, value) pair, a grid placement is a (kind, value) pair, a
// track list entry is a repetition tag plus one or more (min, max) pairs.
// The accepted tag subset depends on the consuming field: a margin accepts
// auto/points/percent, a grid max-track accepts the full range including
// fractions. A tag outside the field's subset is a decode error, never a
// silently coerced value.
//
// Decoding is pure and total over the accepted ranges: a RawStyle either
// decodes completely into a Style or fails with an error naming the
// offending field, leaving no partial result.
//
// The only outward (typed to raw) mapping is for available space, which
// the measure callback bridge encodes into its callback arguments.
package style
