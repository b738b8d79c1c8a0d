// Package errors provides the structured error types used across the
// boundary layer.
//
// Every failure that crosses the handle surface is an *Error carrying a
// Phase (where in processing it occurred), a Kind (what went wrong), and
// the path of the offending field when one exists. Callers match errors
// with errors.Is against sentinel values built from a Phase/Kind pair:
//
//	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUnsupportedUnit}) {
//	    ...
//	}
//
// or use the Kind helpers (IsInvalidHandle, IsDecode, ...).
package errors
