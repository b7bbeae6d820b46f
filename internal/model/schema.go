package model

import (
	"strconv"
	"strings"
)

// Type is a schema type: a named base type, a list of another type, optionally nullable.
//
//	Tensor      -> {Name: "Tensor"}
//	Tensor?     -> {Name: "Tensor", Optional: true}
//	int[2]      -> {Elem: {Name: "int"}, Size: 2}
//	Tensor?[]   -> {Elem: {Name: "Tensor", Optional: true}}
type Type struct {
	// Name is set for base types, empty for lists.
	Name string
	// Elem is the element type of a list.
	Elem *Type
	// Size is the fixed length of a list, 0 when unsized.
	Size int
	// Optional marks a nullable type ("?").
	Optional bool
}

// IsList reports whether t is a list type.
func (t Type) IsList() bool {
	return t.Elem != nil
}

// IsTensorLike reports whether t is a Tensor or a (possibly optional) list of Tensors.
func (t Type) IsTensorLike() bool {
	if t.IsList() {
		return t.Elem.IsTensorLike()
	}

	return t.Name == "Tensor"
}

// String returns the schema text of the type.
func (t Type) String() string {
	var s string
	if t.IsList() {
		s = t.Elem.String() + "["
		if t.Size > 0 {
			s += strconv.Itoa(t.Size)
		}

		s += "]"
	} else {
		s = t.Name
	}

	if t.Optional {
		s += "?"
	}

	return s
}

// Annotation is an alias annotation such as "(a)" or "(a!)".
type Annotation struct {
	Alias   string
	Mutable bool
}

func (a *Annotation) String() string {
	if a == nil {
		return ""
	}

	if a.Mutable {
		return "(" + a.Alias + "!)"
	}

	return "(" + a.Alias + ")"
}

// Argument is one formal argument of a schema.
type Argument struct {
	Name       string
	Type       Type
	Annotation *Annotation
	// Default is the textual default value, nil if none.
	Default *string
	// KwargOnly is true for arguments after the "*" marker.
	KwargOnly bool
}

// IsWrite reports whether the argument is mutated by the operator.
func (a Argument) IsWrite() bool {
	return a.Annotation != nil && a.Annotation.Mutable
}

// IsOut reports whether the argument is an out argument (keyword-only and written to).
func (a Argument) IsOut() bool {
	return a.KwargOnly && a.IsWrite()
}

func (a Argument) String() string {
	s := typeWithAnnotation(a.Type, a.Annotation) + " " + a.Name
	if a.Default != nil {
		s += "=" + *a.Default
	}

	return s
}

// Return is one returned value of a schema; Name is usually empty.
type Return struct {
	Name       string
	Type       Type
	Annotation *Annotation
}

func (r Return) String() string {
	s := typeWithAnnotation(r.Type, r.Annotation)
	if r.Name != "" {
		s += " " + r.Name
	}

	return s
}

// typeWithAnnotation places the annotation right after the base name, as in "Tensor(a!)[]".
func typeWithAnnotation(t Type, a *Annotation) string {
	if a == nil {
		return t.String()
	}

	base := t
	for base.IsList() {
		base = *base.Elem
	}

	baseStr := base.Name
	full := t.String()

	return baseStr + a.String() + strings.TrimPrefix(full, baseStr)
}

// SchemaKind classifies an operator as one of the three group variants.
type SchemaKind int

//go:generate go tool stringer -type=SchemaKind -trimprefix=SchemaKind -output=schema_kind_string.go

const (
	SchemaKindFunctional SchemaKind = iota
	SchemaKindInplace
	SchemaKindOut
)

// FunctionSchema is a parsed operator signature.
type FunctionSchema struct {
	Name      OperatorName
	Arguments []Argument
	Returns   []Return
}

// Kind classifies the schema: out when it has out arguments, in-place when the
// name follows the in-place convention, functional otherwise.
func (s *FunctionSchema) Kind() SchemaKind {
	if len(s.OutArguments()) > 0 {
		return SchemaKindOut
	}

	if s.Name.IsInplace() {
		return SchemaKindInplace
	}

	return SchemaKindFunctional
}

// OutArguments returns the out arguments in declaration order.
func (s *FunctionSchema) OutArguments() []Argument {
	var out []Argument

	for _, a := range s.Arguments {
		if a.IsOut() {
			out = append(out, a)
		}
	}

	return out
}

// SignatureKey returns the key under which variants of one operation are grouped:
// the functional base name plus the non-out argument and return types, with
// overload names, alias annotations, defaults and return names dropped.
func (s *FunctionSchema) SignatureKey() string {
	var sb strings.Builder

	sb.WriteString(s.Name.FunctionalBase())
	sb.WriteString("(")

	first := true

	for _, a := range s.Arguments {
		if a.IsOut() {
			continue
		}

		if !first {
			sb.WriteString(", ")
		}

		first = false

		sb.WriteString(a.Type.String())
		sb.WriteString(" ")
		sb.WriteString(a.Name)
	}

	sb.WriteString(") -> (")

	for i, r := range s.Returns {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(r.Type.String())
	}

	sb.WriteString(")")

	return sb.String()
}

// String returns the schema text in canonical form.
func (s *FunctionSchema) String() string {
	var sb strings.Builder

	sb.WriteString(s.Name.String())
	sb.WriteString("(")

	kwargs := false

	for i, a := range s.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}

		if a.KwargOnly && !kwargs {
			sb.WriteString("*, ")

			kwargs = true
		}

		sb.WriteString(a.String())
	}

	sb.WriteString(") -> ")

	switch len(s.Returns) {
	case 0:
		sb.WriteString("()")
	case 1:
		if s.Returns[0].Name != "" {
			sb.WriteString("(" + s.Returns[0].String() + ")")
		} else {
			sb.WriteString(s.Returns[0].String())
		}
	default:
		parts := make([]string, len(s.Returns))
		for i, r := range s.Returns {
			parts[i] = r.String()
		}

		sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	}

	return sb.String()
}
