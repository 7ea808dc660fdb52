package analysis

import (
	"errors"
	"fmt"
)

// ============================================================================
// ERROR TAXONOMY
// ============================================================================
// Three kinds, matching what callers can do about them:
//
//   KindInvalidInput — structural/parameter problem in the request; the
//                      message names the missing or invalid field. 400-class.
//   KindUnknownTool  — no registered tool matches the requested name. 400-class.
//   KindComputation  — numerical failure inside an otherwise valid analysis
//                      (singular matrix, failed fit). 500-class.
//
// Tools validate eagerly and return the most specific kind; the dispatcher
// wraps anything unclassified as KindComputation.
// ============================================================================

// Kind classifies an analysis error.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUnknownTool
	KindComputation
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnknownTool:
		return "unknown_tool"
	case KindComputation:
		return "computation"
	}
	return "unknown"
}

// Error is the single error type the engine produces.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Invalidf builds a user-correctable input error.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Computef builds a computation (server-side) error.
func Computef(format string, args ...any) error {
	return &Error{Kind: KindComputation, Message: fmt.Sprintf(format, args...)}
}

// UnknownTool builds the error for an unresolvable tool name.
func UnknownTool(name string) error {
	return &Error{Kind: KindUnknownTool, Message: fmt.Sprintf("tool %q is not registered", name)}
}

// KindOf extracts the kind from any error chain.
// Unclassified errors are treated as computation failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindComputation
}

// IsInvalidInput reports whether err is a user-correctable input error.
func IsInvalidInput(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindInvalidInput
}
