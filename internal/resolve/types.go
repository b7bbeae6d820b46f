package resolve

import (
	"fmt"
	"strings"

	"backend-stubs-generator/internal/common"
	"backend-stubs-generator/internal/diagnostic"
	"backend-stubs-generator/internal/model"
)

// Diagnostic codes raised by the resolver.
const (
	CodeUnknownOperator = "unknown_operator"
	CodeCompositeKernel = "composite_kernel"
	CodeMixedGroup      = "mixed_autograd_group"
)

// Result is the output of the resolution pipeline.
type Result struct {
	// Entries are the resolved registry entries, in registry order.
	Entries []model.ExternalEntry
	// NativeFunctions maps every registry operator, by qualified name, to its function.
	NativeFunctions map[model.OperatorName]*model.NativeFunction
	// Diagnostics holds the warnings produced while resolving.
	Diagnostics diagnostic.Diagnostics
}

// Supported returns the resolved functions the backend declared, in registry order.
func (r *Result) Supported() []*model.ExternalBackendFunction {
	var res []*model.ExternalBackendFunction

	for _, f := range model.FlattenExternalEntries(r.Entries) {
		if f.IsSupported() {
			res = append(res, f)
		}
	}

	return res
}

// UnknownOperatorError is returned when the backend declares operators the
// registry does not contain.
type UnknownOperatorError struct {
	// Operators lists every unknown operator in declaration order.
	Operators []model.OperatorName
	// Diagnostics has one error per operator, with suggestions.
	Diagnostics diagnostic.Diagnostics
}

// Operator returns the first offending operator.
func (e *UnknownOperatorError) Operator() model.OperatorName {
	op, _ := common.First(e.Operators)
	return op
}

func (e *UnknownOperatorError) Error() string {
	lines := make([]string, 0, len(e.Diagnostics.Errors))
	for _, d := range e.Diagnostics.Errors {
		lines = append(lines, "  "+d.String())
	}

	return fmt.Sprintf("found %d invalid operator name(s), first is %s:\n%s",
		len(e.Operators), e.Operator(), strings.Join(lines, "\n"))
}
