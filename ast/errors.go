package ast

import "fmt"

// ErrWrongKind is returned by checked downcasts (AsMeasure, AsCX, ...)
// when the node's actual Kind does not match the requested type.
type ErrWrongKind struct {
	Want Kind
	Got  Kind
}

func (e ErrWrongKind) Error() string {
	return fmt.Sprintf("ast: wrong kind: want %s, got %s", e.Want, e.Got)
}

// ErrInvariantViolation indicates a structural invariant was broken,
// e.g. a child kind illegal for its parent's Kind, or a child-count
// mismatch on construction. It signals an implementation bug in the
// caller, not a user-facing parse error.
type ErrInvariantViolation struct {
	Msg string
}

func (e ErrInvariantViolation) Error() string {
	return "ast: invariant violation: " + e.Msg
}

// ErrChildIndex is returned by SetChild/Child when the index is out
// of range for the node's fixed arity.
type ErrChildIndex struct {
	Kind  Kind
	Index int
}

func (e ErrChildIndex) Error() string {
	return fmt.Sprintf("ast: child index %d out of range for %s", e.Index, e.Kind)
}
