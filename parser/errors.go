package parser

import (
	"fmt"

	"github.com/swen-ui/swen/lexer"
)

// ErrKind discriminates parse failures.
type ErrKind uint8

const (
	// ErrExpectedToken reports that the cursor found a different token
	// than the grammar requires. Missing braces and brackets are fatal.
	ErrExpectedToken ErrKind = iota + 1

	// ErrMissingProperty reports a node body missing a required
	// property (size/position for rect, position/text_size for text,
	// position for transform, size for desktop).
	ErrMissingProperty

	// ErrDuplicateProperty reports the same property appearing twice in
	// one node body.
	ErrDuplicateProperty

	// ErrDuplicateNode reports a second desktop or system under root,
	// or a declared id conflict within one app subtree.
	ErrDuplicateNode

	// ErrMissingRequiredNode reports a root without a desktop or a
	// system child.
	ErrMissingRequiredNode

	// ErrInvalidSize reports a size whose components are not strictly
	// positive.
	ErrInvalidSize

	// ErrInvalidPosition reports a nodes list encountered before the
	// enclosing node's position; child coordinates are accumulated from
	// that position, so the ordering is mandatory.
	ErrInvalidPosition

	// ErrInvalidMatrix reports a matrix tuple without exactly six
	// numbers.
	ErrInvalidMatrix

	// ErrInvalidTextSize reports a text_size that is zero, negative, or
	// out of range.
	ErrInvalidTextSize

	// ErrExpectedColor reports a malformed color tuple.
	ErrExpectedColor

	// ErrOutOfMemory reports an exhausted node arena or a node id
	// outside the root-filter bitset capacity.
	ErrOutOfMemory
)

// String returns the kind's name.
func (k ErrKind) String() string {
	switch k {
	case ErrExpectedToken:
		return "expected token"
	case ErrMissingProperty:
		return "missing property"
	case ErrDuplicateProperty:
		return "duplicate property"
	case ErrDuplicateNode:
		return "duplicate node"
	case ErrMissingRequiredNode:
		return "missing required node"
	case ErrInvalidSize:
		return "invalid size"
	case ErrInvalidPosition:
		return "invalid position"
	case ErrInvalidMatrix:
		return "invalid matrix"
	case ErrInvalidTextSize:
		return "invalid text size"
	case ErrExpectedColor:
		return "expected color"
	case ErrOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Error is a parse failure with the span of the offending token.
// The parser never panics and never silently drops a required
// construct; every failure surfaces as an Error.
type Error struct {
	Kind ErrKind
	Span lexer.Span
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("parser: %s at %d:%d (offset %d)",
			e.Kind, e.Span.Line, e.Span.Column, e.Span.Offset)
	}
	return fmt.Sprintf("parser: %s at %d:%d (offset %d): %s",
		e.Kind, e.Span.Line, e.Span.Column, e.Span.Offset, e.Msg)
}

func errAt(kind ErrKind, span lexer.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: span, Msg: fmt.Sprintf(format, args...)}
}
