package style

import (
	"fmt"
	"math"
)

// Unit discriminates the interpretation of a Length's value.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPoints
	UnitPercent
	UnitMinContent
	UnitMaxContent
	UnitFitContentPoints
	UnitFitContentPercent
	UnitFraction
)

func (u Unit) String() string {
	switch u {
	case UnitAuto:
		return "auto"
	case UnitPoints:
		return "points"
	case UnitPercent:
		return "percent"
	case UnitMinContent:
		return "min-content"
	case UnitMaxContent:
		return "max-content"
	case UnitFitContentPoints:
		return "fit-content(points)"
	case UnitFitContentPercent:
		return "fit-content(percent)"
	case UnitFraction:
		return "fraction"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// Length is a tagged dimension value. Which units are legal depends on
// the consuming style field; the codec enforces the subset at decode
// time, so a Length held by a Style is always valid for its field.
type Length struct {
	Value float32
	Unit  Unit
}

// Auto returns the auto length.
func Auto() Length { return Length{Unit: UnitAuto} }

// Points returns an absolute length.
func Points(v float32) Length { return Length{Unit: UnitPoints, Value: v} }

// Percent returns a percentage length. The value is a fraction: 0.5
// means 50%.
func Percent(v float32) Length { return Length{Unit: UnitPercent, Value: v} }

// MinContent returns the min-content keyword.
func MinContent() Length { return Length{Unit: UnitMinContent} }

// MaxContent returns the max-content keyword.
func MaxContent() Length { return Length{Unit: UnitMaxContent} }

// Fraction returns a grid flex fraction (fr).
func Fraction(v float32) Length { return Length{Unit: UnitFraction, Value: v} }

func (l Length) String() string {
	switch l.Unit {
	case UnitPoints, UnitFraction, UnitFitContentPoints:
		return fmt.Sprintf("%s(%g)", l.Unit, l.Value)
	case UnitPercent, UnitFitContentPercent:
		return fmt.Sprintf("%s(%g%%)", l.Unit, l.Value*100)
	default:
		return l.Unit.String()
	}
}

// Resolve returns the absolute value of the length against a container
// dimension. Auto and the content keywords resolve to NaN; a NaN
// container makes percentages NaN as well.
func (l Length) Resolve(container float32) float32 {
	switch l.Unit {
	case UnitPoints:
		return l.Value
	case UnitPercent:
		return l.Value * container
	default:
		return float32(math.NaN())
	}
}

// ResolveOrZero is Resolve with NaN collapsed to zero, for edge fields
// where an unresolvable value contributes nothing.
func (l Length) ResolveOrZero(container float32) float32 {
	v := l.Resolve(container)
	if math.IsNaN(float64(v)) {
		return 0
	}
	return v
}
