package dest

import (
	"backend-stubs-generator/internal/common"
	"backend-stubs-generator/internal/model"
)

// PartitionByAutograd splits entries into those registered under the plain
// dispatch key and those registered under the autograd key. Entries the backend
// did not declare land in plain and produce no registration. A group whose
// declared variants disagree is split into its functions so that every declared
// function lands in the list matching its own flag.
func PartitionByAutograd(entries []model.ExternalEntry) (plain, autograd []model.ExternalEntry) {
	expanded := common.ConcatMap(entries, func(e model.ExternalEntry) []model.ExternalEntry {
		g, ok := e.(*model.ExternalBackendFunctionsGroup)
		if !ok || !g.IsMixed() {
			return []model.ExternalEntry{e}
		}

		fs := g.Functions()
		split := make([]model.ExternalEntry, len(fs))

		for i, f := range fs {
			split[i] = f
		}

		return split
	})

	autograd, plain = common.Partition(expanded, model.ExternalEntry.IsAutogradKernel)

	return plain, autograd
}

// Fragments concatenates gen over entries in order.
func Fragments(entries []model.ExternalEntry, gen func(model.ExternalEntry) []string) []string {
	return common.ConcatMap(entries, gen)
}
