package model

// ExternalBackendMetadata records that Backend provides a kernel for Operator.
type ExternalBackendMetadata struct {
	Operator OperatorName
	Backend  string
	// IsAutograd is true when the backend kernel is registered under the backend's
	// autograd dispatch key instead of the plain one.
	IsAutograd bool
	// Loc is where the backend declaration listed the operator.
	Loc Location
}

// ExternalEntry is either an *ExternalBackendFunction or an *ExternalBackendFunctionsGroup.
type ExternalEntry interface {
	// Functions returns the functions of the entry in functional, in-place, out order.
	Functions() []*ExternalBackendFunction
	// IsAutogradKernel reports whether the entry's kernels register under the autograd key.
	IsAutogradKernel() bool
	externalEntry()
}

// ExternalBackendFunction is a registry function annotated with the backend's
// metadata. Metadata is nil when the backend did not declare support.
type ExternalBackendFunction struct {
	Native   *NativeFunction
	Metadata *ExternalBackendMetadata
}

// NewExternalBackendFunction looks f up in metadata, which is keyed by qualified name.
func NewExternalBackendFunction(f *NativeFunction, metadata map[OperatorName]ExternalBackendMetadata) *ExternalBackendFunction {
	e := &ExternalBackendFunction{Native: f}
	if m, ok := metadata[f.Name().Qualified()]; ok {
		e.Metadata = &m
	}

	return e
}

// Name is shorthand for e.Native.Name().
func (e *ExternalBackendFunction) Name() OperatorName {
	return e.Native.Name()
}

// IsSupported reports whether the backend declared a kernel for this function.
func (e *ExternalBackendFunction) IsSupported() bool {
	return e.Metadata != nil
}

func (e *ExternalBackendFunction) IsAutogradKernel() bool {
	return e.Metadata != nil && e.Metadata.IsAutograd
}

func (e *ExternalBackendFunction) Functions() []*ExternalBackendFunction {
	return []*ExternalBackendFunction{e}
}

func (*ExternalBackendFunction) externalEntry() {}

// ExternalBackendFunctionsGroup mirrors NativeFunctionsGroup over ExternalBackendFunction.
type ExternalBackendFunctionsGroup struct {
	Functional *ExternalBackendFunction
	Inplace    *ExternalBackendFunction
	Out        *ExternalBackendFunction
}

// FromFunctionGroup resolves each present variant of g against metadata.
func FromFunctionGroup(g *NativeFunctionsGroup, metadata map[OperatorName]ExternalBackendMetadata) *ExternalBackendFunctionsGroup {
	resolve := func(f *NativeFunction) *ExternalBackendFunction {
		if f == nil {
			return nil
		}

		return NewExternalBackendFunction(f, metadata)
	}

	return &ExternalBackendFunctionsGroup{
		Functional: resolve(g.Functional),
		Inplace:    resolve(g.Inplace),
		Out:        resolve(g.Out),
	}
}

func (g *ExternalBackendFunctionsGroup) Functions() []*ExternalBackendFunction {
	var fs []*ExternalBackendFunction

	for _, f := range []*ExternalBackendFunction{g.Functional, g.Inplace, g.Out} {
		if f != nil {
			fs = append(fs, f)
		}
	}

	return fs
}

// IsAutogradKernel is true when any declared variant is an autograd kernel.
// Use IsMixed to detect groups whose declared variants disagree.
func (g *ExternalBackendFunctionsGroup) IsAutogradKernel() bool {
	for _, f := range g.Functions() {
		if f.IsAutogradKernel() {
			return true
		}
	}

	return false
}

// IsMixed reports whether the group has both plain and autograd declared variants.
func (g *ExternalBackendFunctionsGroup) IsMixed() bool {
	plain, autograd := false, false

	for _, f := range g.Functions() {
		if !f.IsSupported() {
			continue
		}

		if f.Metadata.IsAutograd {
			autograd = true
		} else {
			plain = true
		}
	}

	return plain && autograd
}

func (*ExternalBackendFunctionsGroup) externalEntry() {}

// FlattenExternalEntries returns every function of every entry, in order.
func FlattenExternalEntries(entries []ExternalEntry) []*ExternalBackendFunction {
	var fs []*ExternalBackendFunction

	for _, e := range entries {
		fs = append(fs, e.Functions()...)
	}

	return fs
}
