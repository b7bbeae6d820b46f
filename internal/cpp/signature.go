package cpp

import (
	"strings"

	"backend-stubs-generator/internal/model"
)

// Binding is one C++ parameter.
type Binding struct {
	Type string
	Name string
}

func (b Binding) String() string {
	return b.Type + " " + b.Name
}

// Signature is the C++ form of an operator schema.
type Signature struct {
	Schema     *model.FunctionSchema
	ReturnType string
	Bindings   []Binding
}

// NewSignature renders s.
func NewSignature(s *model.FunctionSchema) Signature {
	sig := Signature{
		Schema:     s,
		ReturnType: ReturnType(s.Returns),
		Bindings:   make([]Binding, len(s.Arguments)),
	}

	for i, a := range s.Arguments {
		sig.Bindings[i] = Binding{Type: ArgumentType(a), Name: a.Name}
	}

	return sig
}

// Name returns the C++ function name of a schema: the base name, with "_out"
// appended for out variants.
func Name(s *model.FunctionSchema) string {
	name := s.Name.Base
	if s.Kind() == model.SchemaKindOut && !strings.HasSuffix(name, "_out") {
		name += "_out"
	}

	return name
}

// Params returns the parameter list, "const at::Tensor & self, int64_t dim".
func (sig Signature) Params() string {
	parts := make([]string, len(sig.Bindings))
	for i, b := range sig.Bindings {
		parts[i] = b.String()
	}

	return strings.Join(parts, ", ")
}

// ParamTypes returns the parameter types only, as used in function pointer types.
func (sig Signature) ParamTypes() string {
	parts := make([]string, len(sig.Bindings))
	for i, b := range sig.Bindings {
		parts[i] = b.Type
	}

	return strings.Join(parts, ", ")
}

// ArgNames returns the comma-separated argument names, for forwarding calls.
func (sig Signature) ArgNames() string {
	parts := make([]string, len(sig.Bindings))
	for i, b := range sig.Bindings {
		parts[i] = b.Name
	}

	return strings.Join(parts, ", ")
}

// Decl returns "<ret> <name>(<params>)".
func (sig Signature) Decl(name string) string {
	return sig.ReturnType + " " + name + "(" + sig.Params() + ")"
}

// FunctionPointerType returns "<ret> (*)(<param types>)".
func (sig Signature) FunctionPointerType() string {
	return sig.ReturnType + " (*)(" + sig.ParamTypes() + ")"
}

// AtenOp returns the ATEN_OP macro naming the operator's ATen entry point.
func AtenOp(n model.OperatorName) string {
	if n.Overload == "" {
		return "ATEN_OP(" + n.Base + ")"
	}

	return "ATEN_OP2(" + n.Base + ", " + n.Overload + ")"
}
