package backend

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"backend-stubs-generator/internal/model"
)

// Declaration is the result of parsing a backend file into metadata.
type Declaration struct {
	Backend      string
	CppNamespace string
	ClassName    string
	// Metadata is keyed by qualified operator name; "add" and "aten::add" share an entry.
	Metadata map[model.OperatorName]model.ExternalBackendMetadata
	// Order lists the keys of Metadata in declaration order: "supported" first, then "autograd".
	Order []model.OperatorName
}

// Declaration builds the per-operator metadata of f. Every name is parsed as a
// model.OperatorName; an operator declared twice yields a *DuplicateDeclarationError.
// All problems are reported together.
func (f *File) Declaration() (*Declaration, error) {
	d := &Declaration{
		Backend:      f.Backend,
		CppNamespace: f.CppNamespace,
		ClassName:    f.ClassName,
		Metadata:     make(map[model.OperatorName]model.ExternalBackendMetadata, len(f.Supported)+len(f.Autograd)),
	}

	type origin struct {
		decl Declared
		list string
	}

	first := make(map[model.OperatorName]origin)

	var errs error

	add := func(list string, decls []Declared, isAutograd bool) {
		for _, decl := range decls {
			name, err := model.ParseOperatorName(decl.Name)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "%s: in %q", decl.Loc, list))
				continue
			}

			key := name.Qualified()
			if prev, ok := first[key]; ok {
				errs = multierr.Append(errs, &DuplicateDeclarationError{
					Operator:   name,
					First:      prev.decl,
					FirstList:  prev.list,
					Second:     decl,
					SecondList: list,
				})

				continue
			}

			first[key] = origin{decl: decl, list: list}
			d.Metadata[key] = model.ExternalBackendMetadata{
				Operator:   name,
				Backend:    f.Backend,
				IsAutograd: isAutograd,
				Loc:        decl.Loc,
			}
			d.Order = append(d.Order, name)
		}
	}

	add(keySupported, f.Supported, false)
	add(keyAutograd, f.Autograd, true)

	if errs != nil {
		return nil, errs
	}

	return d, nil
}

// Load reads the backend declaration at path and builds its metadata.
func Load(path string) (*Declaration, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return f.Declaration()
}
