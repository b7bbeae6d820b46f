package resolve

import (
	"fmt"

	"k8s.io/klog/v2"

	"backend-stubs-generator/internal/backend"
	"backend-stubs-generator/internal/match"
	"backend-stubs-generator/internal/model"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// MaxSuggestions is the maximum number of "did you mean" names per unknown operator.
	MaxSuggestions int
	// MinSuggestionScore is the minimum similarity for a suggestion.
	MinSuggestionScore float64
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		MaxSuggestions:     match.DefaultMaxSuggestions,
		MinSuggestionScore: match.DefaultMinScore,
	}
}

// Resolver merges a grouped registry with one backend declaration.
type Resolver struct {
	entries []model.NativeEntry
	decl    *backend.Declaration
	config  ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(entries []model.NativeEntry, decl *backend.Declaration, config ResolutionConfig) *Resolver {
	return &Resolver{entries: entries, decl: decl, config: config}
}

// Resolve merges entries with decl using DefaultConfig.
func Resolve(entries []model.NativeEntry, decl *backend.Declaration) (*Result, error) {
	return NewResolver(entries, decl, DefaultConfig()).Resolve()
}

// Resolve runs the resolution pipeline. It fails with *UnknownOperatorError when
// the declaration names an operator missing from the registry.
func (r *Resolver) Resolve() (*Result, error) {
	res := &Result{
		NativeFunctions: make(map[model.OperatorName]*model.NativeFunction),
	}

	for _, f := range model.FlattenNativeEntries(r.entries) {
		res.NativeFunctions[f.Name().Qualified()] = f
	}

	if err := r.validate(res); err != nil {
		return nil, err
	}

	res.Entries = make([]model.ExternalEntry, 0, len(r.entries))

	for _, e := range r.entries {
		ext := r.nativeToExternal(e)
		if g, ok := ext.(*model.ExternalBackendFunctionsGroup); ok && g.IsMixed() {
			res.Diagnostics.AddWarning(CodeMixedGroup,
				"group mixes plain and autograd declarations; registrations are split per variant",
				g.Functions()[0].Name().String(), "")
		}

		res.Entries = append(res.Entries, ext)
	}

	klog.V(1).Infof("resolved %d registry entries against %d %s declarations",
		len(res.Entries), len(r.decl.Metadata), r.decl.Backend)

	return res, nil
}

func (r *Resolver) nativeToExternal(e model.NativeEntry) model.ExternalEntry {
	switch g := e.(type) {
	case *model.NativeFunction:
		return model.NewExternalBackendFunction(g, r.decl.Metadata)
	case *model.NativeFunctionsGroup:
		return model.FromFunctionGroup(g, r.decl.Metadata)
	default:
		model.AssertNever(e)
		return nil
	}
}

// validate checks every declared operator against the registry, in declaration order.
func (r *Resolver) validate(res *Result) error {
	var (
		unknown *UnknownOperatorError
		known   []string
	)

	for _, name := range r.decl.Order {
		m := r.decl.Metadata[name.Qualified()]

		f, ok := res.NativeFunctions[name.Qualified()]
		if ok {
			if f.IsComposite() {
				res.Diagnostics.AddWarning(CodeCompositeKernel,
					"operator has a CompositeImplicitAutograd kernel; a backend kernel overrides it",
					name.String(), m.Loc.String())
			}

			continue
		}

		if unknown == nil {
			unknown = &UnknownOperatorError{}
			known = r.knownNames()
		}

		unknown.Operators = append(unknown.Operators, name)
		suggestions := match.RankCandidates(name.String(), known).
			Top(r.config.MaxSuggestions, r.config.MinSuggestionScore).Names()
		unknown.Diagnostics.AddError(CodeUnknownOperator,
			fmt.Sprintf("%s backend declares an operator missing from the registry", r.decl.Backend),
			name.String(), m.Loc.String(), suggestions...)
	}

	if unknown != nil {
		return unknown
	}

	return nil
}

// knownNames lists registry operator names in registry order.
func (r *Resolver) knownNames() []string {
	fs := model.FlattenNativeEntries(r.entries)
	names := make([]string, 0, len(fs))

	for _, f := range fs {
		names = append(names, f.Name().String())
	}

	return names
}
