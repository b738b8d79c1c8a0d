package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // flat record to typed style
	PhaseHandle  Phase = "handle"  // handle table resolution
	PhaseMutate  Phase = "mutate"  // tree structural mutation
	PhaseCompute Phase = "compute" // layout computation
	PhaseLayout  Phase = "layout"  // layout result read-back
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidEnum     Kind = "invalid_enum"
	KindUnsupportedUnit Kind = "unsupported_unit"
	KindInvalidHandle   Kind = "invalid_handle"
	KindCycle           Kind = "cycle"
	KindNotChild        Kind = "not_child"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindNoLayout        Kind = "no_layout"
	KindClosed          Kind = "closed"
	KindMeasureFailed   Kind = "measure_failed"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the boundary layer
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two *Error values match
// when their Phase and Kind agree; an empty Phase or Kind in the target
// acts as a wildcard.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	if t.Kind != "" && e.Kind != t.Kind {
		return false
	}
	return true
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}

// IsInvalidHandle reports whether err is a stale or unknown handle error.
func IsInvalidHandle(err error) bool { return IsKind(err, KindInvalidHandle) }

// IsDecode reports whether err originates in the style codec.
func IsDecode(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Phase == PhaseDecode
}

// Convenience constructors for common error patterns

// InvalidEnum creates an invalid enum index error
func InvalidEnum(path []string, value any, enumType string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("invalid index %v for %s", value, enumType),
		Value:  value,
	}
}

// UnsupportedUnit creates an error for a length tag outside the accepted
// subset of the consuming field
func UnsupportedUnit(path []string, tag int32, field string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupportedUnit,
		Path:   path,
		Detail: fmt.Sprintf("unsupported dimension tag %d for %s", tag, field),
		Value:  tag,
	}
}

// InvalidHandle creates a stale or unknown handle error
func InvalidHandle(phase Phase, what string, handle uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("%s handle %#x is not live", what, handle),
		Value:  handle,
	}
}

// Cycle creates a structural cycle error
func Cycle(detail string) *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindCycle,
		Detail: detail,
	}
}

// NotChild creates an error for removing a node that is not a child of
// the given parent
func NotChild() *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindNotChild,
		Detail: "node is not a child of the given parent",
	}
}

// OutOfBounds creates an out of bounds child index error
func OutOfBounds(index, length int) *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("child index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NoLayout creates an error for reading geometry before a successful
// layout computation
func NoLayout() *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindNoLayout,
		Detail: "layout has not been computed for this node",
	}
}

// Closed creates an error for operations on a closed host or table
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
