package cpp

import (
	"fmt"
	"strings"

	"backend-stubs-generator/internal/model"
)

// valueTypes lists schema base types whose C++ type is not "at::<Name>".
var valueTypes = map[string]string{
	"int":    "int64_t",
	"SymInt": "c10::SymInt",
	"float":  "double",
	"bool":   "bool",
	"str":    "c10::string_view",
}

// BaseType returns the C++ value type of a schema base type name.
func BaseType(name string) string {
	if t, ok := valueTypes[name]; ok {
		return t
	}

	return "at::" + name
}

// ArgumentType returns the C++ parameter type of a schema argument.
func ArgumentType(a model.Argument) string {
	return argumentType(a.Type, a.IsWrite())
}

func argumentType(t model.Type, mutable bool) string {
	if t.IsList() {
		return listArgumentType(t)
	}

	switch {
	case t.Name == "Tensor" && t.Optional:
		return "const c10::optional<at::Tensor> &"
	case t.Name == "Tensor" && mutable:
		return "at::Tensor &"
	case t.Name == "Tensor":
		return "const at::Tensor &"
	case t.Name == "Scalar" && t.Optional:
		return "const c10::optional<at::Scalar> &"
	case t.Name == "Scalar":
		return "const at::Scalar &"
	case t.Optional:
		return "c10::optional<" + BaseType(t.Name) + ">"
	default:
		return BaseType(t.Name)
	}
}

func listArgumentType(t model.Type) string {
	elem := *t.Elem

	var s string

	switch {
	case elem.Name == "Tensor" && elem.Optional:
		s = "const c10::List<c10::optional<at::Tensor>> &"
	case elem.Name == "Tensor":
		s = "at::TensorList"
	case elem.Name == "int" && !elem.Optional:
		s = "at::IntArrayRef"
	case elem.Name == "Dimname" && !elem.Optional:
		s = "at::DimnameList"
	case elem.Name == "bool" && t.Size > 0:
		s = fmt.Sprintf("::std::array<bool,%d>", t.Size)
	default:
		s = "at::ArrayRef<" + valueType(elem) + ">"
	}

	if !t.Optional {
		return s
	}

	if s == "at::IntArrayRef" {
		return "at::OptionalIntArrayRef"
	}

	return "c10::optional<" + s + ">"
}

// valueType is the owning C++ type of t, used for list elements and returns.
func valueType(t model.Type) string {
	var s string
	if t.IsList() {
		s = "::std::vector<" + valueType(*t.Elem) + ">"
	} else {
		s = BaseType(t.Name)
	}

	if t.Optional {
		return "c10::optional<" + s + ">"
	}

	return s
}

// ReturnType returns the C++ return type of a schema's returns.
func ReturnType(returns []model.Return) string {
	switch len(returns) {
	case 0:
		return "void"
	case 1:
		return returnType(returns[0])
	default:
		parts := make([]string, len(returns))
		for i, r := range returns {
			parts[i] = returnType(r)
		}

		return "::std::tuple<" + strings.Join(parts, ",") + ">"
	}
}

func returnType(r model.Return) string {
	if r.Type.Name == "Tensor" && !r.Type.Optional && r.Annotation != nil && r.Annotation.Mutable {
		return "at::Tensor &"
	}

	return valueType(r.Type)
}
