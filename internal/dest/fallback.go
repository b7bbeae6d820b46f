package dest

import (
	"fmt"
	"strings"

	"backend-stubs-generator/internal/common"
	"backend-stubs-generator/internal/cpp"
	"backend-stubs-generator/internal/model"
)

// ComputeNativeFunctionDeclaration emits the static member declaration of the
// backend kernel for every function of e, whether or not the backend declared it.
func ComputeNativeFunctionDeclaration(e model.ExternalEntry) []string {
	return forEachFunction(e, func(f *model.ExternalBackendFunction) []string {
		s := f.Native.Func
		return []string{"static " + cpp.NewSignature(s).Decl(cpp.Name(s)) + ";"}
	})
}

// GenExternalAtenFallback emits the CPU-fallback glue of a backend for one target.
type GenExternalAtenFallback struct {
	Target Target
	// Backend is the backend identifier, e.g. "XLA".
	Backend string
	// ClassName is the class declaring the backend kernels, e.g. "AtenXlaType".
	ClassName string
}

// NewGenExternalAtenFallback creates a generator for target.
func NewGenExternalAtenFallback(target Target, backend, className string) GenExternalAtenFallback {
	return GenExternalAtenFallback{Target: target, Backend: backend, ClassName: className}
}

// Call emits the fragments of e for g.Target.
func (g GenExternalAtenFallback) Call(e model.ExternalEntry) []string {
	return forEachFunction(e, g.function)
}

func (g GenExternalAtenFallback) function(f *model.ExternalBackendFunction) []string {
	s := f.Native.Func
	sig := cpp.NewSignature(s)

	switch g.Target {
	case TargetDeclaration:
		return []string{"static " + sig.Decl(cpp.Name(s)) + ";"}

	case TargetNamespacedDeclaration:
		return []string{sig.Decl(g.FallbackName(s.Name)) + ";"}

	case TargetNamespacedDefinition:
		return []string{fmt.Sprintf(`%s {
  return at::native::call_fallback_fn<&%s, %s>::call(%s);
}
`, sig.Decl(g.FallbackName(s.Name)), g.CPUFallback(), cpp.AtenOp(s.Name), sig.ArgNames())}

	case TargetRegistration:
		if !f.IsSupported() {
			return nil
		}

		return []string{fmt.Sprintf(`m.impl("%s", static_cast<%s>(&%s::%s));`,
			s.Name.Unqualified(), sig.FunctionPointerType(), g.ClassName, cpp.Name(s))}

	default:
		panic(fmt.Sprintf("unknown codegen target %s", g.Target))
	}
}

// FallbackName is the C++ name of the generated fallback for an operator:
// the lowercased backend, then the overload-unique operator name ("xla_add_Tensor").
func (g GenExternalAtenFallback) FallbackName(n model.OperatorName) string {
	return g.prefix() + n.Unambiguous()
}

// CPUFallback is the boxed CPU fallback kernel the generated fallbacks forward to.
func (g GenExternalAtenFallback) CPUFallback() string {
	return g.prefix() + "cpu_fallback"
}

func (g GenExternalAtenFallback) prefix() string {
	return strings.ToLower(g.Backend) + "_"
}

// forEachFunction maps fn over the functions of e.
func forEachFunction(e model.ExternalEntry, fn func(*model.ExternalBackendFunction) []string) []string {
	switch g := e.(type) {
	case *model.ExternalBackendFunction:
		return fn(g)
	case *model.ExternalBackendFunctionsGroup:
		return common.ConcatMap(g.Functions(), fn)
	default:
		model.AssertNever(e)
		return nil
	}
}
