package model

import (
	"fmt"
)

// ParseError is returned when operator-name or schema text does not match its grammar.
type ParseError struct {
	// Kind is what was being parsed: "operator name", "schema", "type", ...
	Kind string
	// Text is the offending input.
	Text string
	// Reason describes the first grammar violation found.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Text, e.Reason)
}

func newParseError(kind, text, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Text: text, Reason: fmt.Sprintf(format, args...)}
}

// ExhaustivenessViolation is the panic value raised when a type switch over
// NativeEntry or ExternalEntry meets a type other than the ones declared in
// this package. It indicates a programming error, never bad input.
type ExhaustivenessViolation struct {
	Value any
}

func (e ExhaustivenessViolation) Error() string {
	return fmt.Sprintf("unhandled entry type %T", e.Value)
}

// AssertNever panics with an ExhaustivenessViolation for v.
func AssertNever(v any) {
	panic(ExhaustivenessViolation{Value: v})
}
