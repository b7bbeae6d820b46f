package backend

import (
	"fmt"

	"backend-stubs-generator/internal/model"
)

// MalformedDeclarationError is returned when a required key is missing or a key
// does not have the expected shape.
type MalformedDeclarationError struct {
	Key    string
	Reason string
	Loc    model.Location
}

func (e *MalformedDeclarationError) Error() string {
	msg := fmt.Sprintf("malformed backend declaration: key %q: %s", e.Key, e.Reason)
	if loc := e.Loc.String(); loc != "" {
		msg = loc + ": " + msg
	}

	return msg
}

// DuplicateDeclarationError is returned when an operator is declared more than once,
// in the same list or in both "supported" and "autograd".
type DuplicateDeclarationError struct {
	Operator   model.OperatorName
	First      Declared
	FirstList  string
	Second     Declared
	SecondList string
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s: operator %s declared in %q is already declared in %q at %s",
		e.Second.Loc, e.Operator, e.SecondList, e.FirstList, e.First.Loc)
}
