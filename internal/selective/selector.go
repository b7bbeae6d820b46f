// Package selective filters registry operators for selective builds.
package selective

import (
	"backend-stubs-generator/internal/model"
)

// Selector decides which registry operators take part in code generation.
type Selector interface {
	IsOperatorSelected(name model.OperatorName) bool
}

type nopSelector struct{}

func (nopSelector) IsOperatorSelected(model.OperatorName) bool { return true }

// NopSelector selects every operator.
func NopSelector() Selector {
	return nopSelector{}
}

type allowList map[model.OperatorName]struct{}

func (l allowList) IsOperatorSelected(name model.OperatorName) bool {
	_, ok := l[name.Qualified()]
	return ok
}

// NewSelector selects only the named operators. Names are compared qualified,
// so "aten::add.Tensor" and "add.Tensor" are the same entry.
func NewSelector(names []model.OperatorName) Selector {
	l := make(allowList, len(names))
	for _, n := range names {
		l[n.Qualified()] = struct{}{}
	}

	return l
}

// Filter keeps the resolved entries with at least one selected function.
// A group keeps all of its variants when any of them is selected.
func Filter(entries []model.ExternalEntry, s Selector) []model.ExternalEntry {
	var res []model.ExternalEntry

	for _, e := range entries {
		for _, f := range e.Functions() {
			if s.IsOperatorSelected(f.Name()) {
				res = append(res, e)
				break
			}
		}
	}

	return res
}
