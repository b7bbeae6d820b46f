package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFunctionGroup(t *testing.T) {
	functional := nativeFn(t, "add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor")
	inplace := nativeFn(t, "add_.Tensor(Tensor(a!) self, Tensor other, *, Scalar alpha=1) -> Tensor(a!)")
	out := nativeFn(t, "add.out(Tensor self, Tensor other, *, Scalar alpha=1, Tensor(a!) out) -> Tensor(a!)")

	metadata := map[OperatorName]ExternalBackendMetadata{
		functional.Name().Qualified(): {Operator: functional.Name(), Backend: "XLA"},
		out.Name().Qualified():        {Operator: out.Name(), Backend: "XLA", IsAutograd: true},
	}

	g := FromFunctionGroup(&NativeFunctionsGroup{Functional: functional, Inplace: inplace, Out: out}, metadata)

	require.NotNil(t, g.Functional.Metadata)
	assert.False(t, g.Functional.IsAutogradKernel())
	assert.Nil(t, g.Inplace.Metadata)
	assert.False(t, g.Inplace.IsSupported())
	assert.True(t, g.Out.IsAutogradKernel())

	assert.True(t, g.IsAutogradKernel())
	assert.True(t, g.IsMixed())
	assert.Len(t, g.Functions(), 3)

	noInplace := FromFunctionGroup(&NativeFunctionsGroup{Functional: functional, Out: out}, nil)
	assert.Nil(t, noInplace.Inplace)
	assert.Len(t, noInplace.Functions(), 2)
	assert.False(t, noInplace.IsAutogradKernel())
	assert.False(t, noInplace.IsMixed())
}

func TestNewExternalBackendFunctionCopiesMetadata(t *testing.T) {
	relu := nativeFn(t, "relu(Tensor self) -> Tensor")
	metadata := map[OperatorName]ExternalBackendMetadata{
		relu.Name().Qualified(): {Operator: relu.Name(), Backend: "XLA"},
	}

	e := NewExternalBackendFunction(relu, metadata)
	require.True(t, e.IsSupported())

	e.Metadata.IsAutograd = true
	assert.False(t, metadata[relu.Name().Qualified()].IsAutograd)

	entries := []ExternalEntry{e, FromFunctionGroup(&NativeFunctionsGroup{Functional: relu}, nil)}
	assert.Len(t, FlattenExternalEntries(entries), 2)
}
