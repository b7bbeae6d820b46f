package model

import (
	"strings"
)

// DefaultNamespace is the namespace registrations use when an operator name carries none.
const DefaultNamespace = "aten"

// OperatorName uniquely identifies an operator: "[namespace::]base[.overload]".
//
// It is a comparable value. Equality covers all three fields, so the parsed
// forms of "add" and "aten::add" differ and each formats back to its own text.
// Maps keyed by operator name use Qualified, under which both are the same key.
type OperatorName struct {
	Namespace string
	Base      string
	Overload  string
}

// ParseOperatorName parses the canonical text form of an operator name.
func ParseOperatorName(text string) (OperatorName, error) {
	var name OperatorName

	rest := text
	if ns, after, found := strings.Cut(rest, "::"); found {
		if !isIdent(ns) {
			return OperatorName{}, newParseError("operator name", text, "bad namespace %q", ns)
		}

		name.Namespace = ns
		rest = after
	}

	base, overload, hasOverload := strings.Cut(rest, ".")
	if !isIdent(base) {
		return OperatorName{}, newParseError("operator name", text, "bad base name %q", base)
	}

	if hasOverload && !isIdent(overload) {
		return OperatorName{}, newParseError("operator name", text, "bad overload name %q", overload)
	}

	name.Base = base
	name.Overload = overload

	return name, nil
}

// String returns the canonical text form; ParseOperatorName(n.String()) == n.
func (n OperatorName) String() string {
	var sb strings.Builder
	if n.Namespace != "" {
		sb.WriteString(n.Namespace)
		sb.WriteString("::")
	}

	sb.WriteString(n.Base)

	if n.Overload != "" {
		sb.WriteString(".")
		sb.WriteString(n.Overload)
	}

	return sb.String()
}

// Unqualified returns the name without its namespace, as used in dispatcher
// registration strings ("add.Tensor").
func (n OperatorName) Unqualified() string {
	n.Namespace = ""
	return n.String()
}

// Qualified returns n with an absent namespace replaced by DefaultNamespace.
func (n OperatorName) Qualified() OperatorName {
	n.Namespace = n.QualifiedNamespace()
	return n
}

// QualifiedNamespace returns the namespace, or DefaultNamespace if none was given.
func (n OperatorName) QualifiedNamespace() string {
	if n.Namespace == "" {
		return DefaultNamespace
	}

	return n.Namespace
}

// Unambiguous returns a name usable as a C++ identifier that distinguishes overloads:
// "add_Tensor" for add.Tensor, "add" when there is no overload.
func (n OperatorName) Unambiguous() string {
	if n.Overload == "" {
		return n.Base
	}

	return n.Base + "_" + n.Overload
}

// augmentedAssignment lists the operators with an in-place dunder form "__i<op>__".
var augmentedAssignment = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true, "mod": true, "pow": true,
	"lshift": true, "rshift": true, "and": true, "xor": true, "or": true,
}

// dunder returns the inner name of "__<op>__".
func (n OperatorName) dunder() (string, bool) {
	if len(n.Base) <= 4 || !strings.HasPrefix(n.Base, "__") || !strings.HasSuffix(n.Base, "__") {
		return "", false
	}

	return n.Base[2 : len(n.Base)-2], true
}

// IsInplace reports whether the base name follows an in-place convention: a
// trailing "_" ("add_"), or an augmented-assignment dunder ("__iand__").
func (n OperatorName) IsInplace() bool {
	if op, ok := n.dunder(); ok {
		return strings.HasPrefix(op, "i") && augmentedAssignment[op[1:]]
	}

	return strings.HasSuffix(n.Base, "_") && !strings.HasSuffix(n.Base, "__")
}

// FunctionalBase returns the base name with the in-place marker removed:
// "add" for "add_", "__and__" for "__iand__".
func (n OperatorName) FunctionalBase() string {
	if !n.IsInplace() {
		return n.Base
	}

	if op, ok := n.dunder(); ok {
		return "__" + op[1:] + "__"
	}

	return strings.TrimSuffix(n.Base, "_")
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
