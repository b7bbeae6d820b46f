package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nativeFn(t *testing.T, schema string) *NativeFunction {
	t.Helper()
	return &NativeFunction{Func: mustSchema(t, schema), DeviceGuard: true}
}

func TestNativeFunctionsGroupValidate(t *testing.T) {
	functional := nativeFn(t, "add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor")
	inplace := nativeFn(t, "add_.Tensor(Tensor(a!) self, Tensor other, *, Scalar alpha=1) -> Tensor(a!)")
	out := nativeFn(t, "add.out(Tensor self, Tensor other, *, Scalar alpha=1, Tensor(a!) out) -> Tensor(a!)")
	sub := nativeFn(t, "sub.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor")

	g := &NativeFunctionsGroup{Functional: functional, Inplace: inplace, Out: out}
	require.NoError(t, g.Validate())
	assert.Equal(t, []*NativeFunction{functional, inplace, out}, g.Functions())
	assert.Equal(t, functional.Func.SignatureKey(), g.Signature())

	partial := &NativeFunctionsGroup{Functional: functional, Out: out}
	require.NoError(t, partial.Validate())
	assert.Equal(t, []*NativeFunction{functional, out}, partial.Functions())

	assert.Error(t, (&NativeFunctionsGroup{}).Validate())
	assert.Error(t, (&NativeFunctionsGroup{Functional: out}).Validate())
	assert.Error(t, (&NativeFunctionsGroup{Functional: functional, Inplace: functional}).Validate())
	assert.Error(t, (&NativeFunctionsGroup{Functional: sub, Out: out}).Validate())
}

func TestFlattenNativeEntries(t *testing.T) {
	functional := nativeFn(t, "add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor")
	out := nativeFn(t, "add.out(Tensor self, Tensor other, *, Scalar alpha=1, Tensor(a!) out) -> Tensor(a!)")
	relu := nativeFn(t, "relu(Tensor self) -> Tensor")
	relu.Dispatch = map[string]string{"CompositeImplicitAutograd": "relu"}

	entries := []NativeEntry{relu, &NativeFunctionsGroup{Functional: functional, Out: out}}
	assert.Equal(t, []*NativeFunction{relu, functional, out}, FlattenNativeEntries(entries))
	assert.True(t, relu.IsComposite())
	assert.False(t, functional.IsComposite())
}

func TestAssertNever(t *testing.T) {
	assert.PanicsWithValue(t, ExhaustivenessViolation{Value: 3}, func() { AssertNever(3) })
	assert.Equal(t, "unhandled entry type int", ExhaustivenessViolation{Value: 3}.Error())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "", Location{}.String())
	assert.Equal(t, "native_functions.yaml:12", Location{File: "native_functions.yaml", Line: 12}.String())
}
