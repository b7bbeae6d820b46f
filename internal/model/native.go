package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Location is the position of an entry in its source file.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return ""
	}

	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// NativeEntry is either a *NativeFunction or a *NativeFunctionsGroup.
type NativeEntry interface {
	// Functions returns the functions of the entry in functional, in-place, out order.
	Functions() []*NativeFunction
	nativeEntry()
}

// NativeFunction is one entry of the canonical operator registry.
type NativeFunction struct {
	Func *FunctionSchema
	// Variants lists how the operator is exposed ("function", "method").
	Variants []string
	// Dispatch maps a dispatch key ("CPU", "CompositeImplicitAutograd") to a kernel name.
	Dispatch map[string]string
	// PythonModule is the Python namespace the operator is bound in, if any.
	PythonModule string
	// Structured marks operators implemented through a structured kernel.
	Structured bool
	// DeviceGuard is false when kernels must not be wrapped in a device guard.
	DeviceGuard bool
	Loc         Location
}

// Name is shorthand for f.Func.Name.
func (f *NativeFunction) Name() OperatorName {
	return f.Func.Name
}

// IsComposite reports whether the registry already provides a backend-agnostic kernel
// through CompositeImplicitAutograd.
func (f *NativeFunction) IsComposite() bool {
	_, ok := f.Dispatch["CompositeImplicitAutograd"]
	return ok
}

func (f *NativeFunction) Functions() []*NativeFunction { return []*NativeFunction{f} }
func (*NativeFunction) nativeEntry()                   {}

// NativeFunctionsGroup associates the variants of one logical operation.
// At least one slot is non-nil.
type NativeFunctionsGroup struct {
	Functional *NativeFunction
	Inplace    *NativeFunction
	Out        *NativeFunction
}

// Functions returns the present variants in functional, in-place, out order.
func (g *NativeFunctionsGroup) Functions() []*NativeFunction {
	var fs []*NativeFunction

	for _, f := range []*NativeFunction{g.Functional, g.Inplace, g.Out} {
		if f != nil {
			fs = append(fs, f)
		}
	}

	return fs
}

func (*NativeFunctionsGroup) nativeEntry() {}

// Signature returns the shared grouping key of the variants.
func (g *NativeFunctionsGroup) Signature() string {
	fs := g.Functions()
	if len(fs) == 0 {
		return ""
	}

	return fs[0].Func.SignatureKey()
}

// Validate checks that the group is not empty, that each slot holds a function of
// the matching kind and that every variant has the same signature key.
func (g *NativeFunctionsGroup) Validate() error {
	fs := g.Functions()
	if len(fs) == 0 {
		return errors.New("empty native functions group")
	}

	slots := []struct {
		f    *NativeFunction
		kind SchemaKind
	}{
		{g.Functional, SchemaKindFunctional},
		{g.Inplace, SchemaKindInplace},
		{g.Out, SchemaKindOut},
	}
	for _, slot := range slots {
		if slot.f == nil {
			continue
		}

		if got := slot.f.Func.Kind(); got != slot.kind {
			return errors.Errorf("%s is a %s operator but sits in the %s slot", slot.f.Name(), got, slot.kind)
		}
	}

	key := fs[0].Func.SignatureKey()
	for _, f := range fs[1:] {
		if other := f.Func.SignatureKey(); other != key {
			return errors.Errorf("%s has signature %q, group %s has %q", f.Name(), other, fs[0].Name(), key)
		}
	}

	return nil
}

// FlattenNativeEntries returns every function of every entry, in order.
func FlattenNativeEntries(entries []NativeEntry) []*NativeFunction {
	var fs []*NativeFunction

	for _, e := range entries {
		fs = append(fs, e.Functions()...)
	}

	return fs
}
