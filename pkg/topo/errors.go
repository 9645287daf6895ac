package topo

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by an operator or accessor wraps exactly
// one of ErrPreconditionFailed or ErrInvariantViolation, so callers can
// classify failures with errors.Is.
var (
	// ErrPreconditionFailed reports a caller error: a lookup did not match,
	// a handle was stale, or the body is not in the shape the operator needs.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvariantViolation reports an internal consistency failure, such as
	// asking a solitary half-edge for its mate.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrShapeMismatch reports points of differing dimension. The kernel never
	// raises it on its own; see CheckDimensions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrStaleHandle is wrapped alongside ErrPreconditionFailed when a handle
	// refers to a slot that has since been released or reused.
	ErrStaleHandle = errors.New("stale handle")
)

// OpError is the structured error returned by the kernel.
type OpError struct {
	Op     string // operator or accessor, e.g. "MEV" or "Mate"
	Kind   error  // ErrPreconditionFailed, ErrInvariantViolation or ErrShapeMismatch
	Entity string // name or handle of the offending entity, may be empty
	Msg    string
	Err    error // optional underlying cause
}

func (e *OpError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %v: %s: %s", e.Op, e.Kind, e.Entity, e.Msg)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func precondition(op, entity, format string, args ...any) error {
	return &OpError{Op: op, Kind: ErrPreconditionFailed, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

func invariant(op, entity, format string, args ...any) error {
	return &OpError{Op: op, Kind: ErrInvariantViolation, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

func stale(op, entity string) error {
	return &OpError{Op: op, Kind: ErrPreconditionFailed, Entity: entity, Msg: "handle does not refer to a live entity", Err: ErrStaleHandle}
}

// CheckDimensions returns an ErrShapeMismatch error if the points do not all
// share the same dimension. Callers that mix coordinate sources use it before
// handing points to MVFS or MEV.
func CheckDimensions(points ...Point) error {
	if len(points) == 0 {
		return nil
	}
	want := points[0].Dim()
	for i, p := range points[1:] {
		if p.Dim() != want {
			return &OpError{
				Op:   "CheckDimensions",
				Kind: ErrShapeMismatch,
				Msg:  fmt.Sprintf("point %d has dimension %d, want %d", i+1, p.Dim(), want),
			}
		}
	}
	return nil
}
