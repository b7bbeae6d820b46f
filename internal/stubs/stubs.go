package stubs

import (
	"path/filepath"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"backend-stubs-generator/internal/backend"
	"backend-stubs-generator/internal/dest"
	"backend-stubs-generator/internal/diagnostic"
	"backend-stubs-generator/internal/gen"
	"backend-stubs-generator/internal/model"
	"backend-stubs-generator/internal/native"
	"backend-stubs-generator/internal/resolve"
	"backend-stubs-generator/internal/selective"
)

// Output file names.
const (
	ClassHeader     = "aten_xla_type.h"
	FallbackHeader  = "aten_xla_type_default.h"
	FallbackSources = "aten_xla_type_default.cpp"
)

// DefaultNativeYAML is the registry location inside a PyTorch checkout.
const DefaultNativeYAML = "aten/src/ATen/native/native_functions.yaml"

// Options configures a generator run.
type Options struct {
	// SourceYAML is the backend declaration file.
	SourceYAML string
	// NativeYAML is the operator registry. When empty, DefaultNativeYAML under PytorchRoot is used.
	NativeYAML string
	// PytorchRoot is the PyTorch checkout holding the registry.
	PytorchRoot string
	// OutputDir receives the generated files.
	OutputDir string
	// TemplateDir overrides the built-in templates when set.
	TemplateDir string
	// DryRun renders without writing.
	DryRun bool
}

// NativeFunctionsPath returns the registry path the run reads.
func (o Options) NativeFunctionsPath() string {
	if o.NativeYAML != "" {
		return o.NativeYAML
	}

	return filepath.Join(o.PytorchRoot, filepath.FromSlash(DefaultNativeYAML))
}

// Outputs holds the fragments of every generated file, in registry order.
type Outputs struct {
	CppNamespace string
	Backend      string
	ClassName    string

	Declarations          []string
	FallbackDeclarations  []string
	FallbackDefinitions   []string
	Registrations         []string
	AutogradRegistrations []string

	// Diagnostics are the warnings raised while resolving.
	Diagnostics diagnostic.Diagnostics
}

// Generate resolves entries against decl and computes every fragment.
// It has no side effects.
func Generate(entries []model.NativeEntry, decl *backend.Declaration, selector selective.Selector) (*Outputs, error) {
	res, err := resolve.Resolve(entries, decl)
	if err != nil {
		return nil, err
	}

	external := selective.Filter(res.Entries, selector)
	plain, autograd := dest.PartitionByAutograd(external)

	fallback := func(t dest.Target) dest.GenExternalAtenFallback {
		return dest.NewGenExternalAtenFallback(t, decl.Backend, decl.ClassName)
	}

	return &Outputs{
		CppNamespace:          decl.CppNamespace,
		Backend:               decl.Backend,
		ClassName:             decl.ClassName,
		Declarations:          dest.Fragments(external, dest.ComputeNativeFunctionDeclaration),
		FallbackDeclarations:  dest.Fragments(external, fallback(dest.TargetNamespacedDeclaration).Call),
		FallbackDefinitions:   dest.Fragments(external, fallback(dest.TargetNamespacedDefinition).Call),
		Registrations:         dest.Fragments(plain, fallback(dest.TargetRegistration).Call),
		AutogradRegistrations: dest.Fragments(autograd, fallback(dest.TargetRegistration).Call),
		Diagnostics:           res.Diagnostics,
	}, nil
}

// Write renders the three generated files of out through w and flushes it.
func (out *Outputs) Write(w gen.Writer) error {
	files := []struct {
		name string
		vars map[string]any
	}{
		{ClassHeader, map[string]any{
			"cpp_namespace":             out.CppNamespace,
			"class_name":                out.ClassName,
			"dispatch_xla_declarations": out.Declarations,
		}},
		{FallbackHeader, map[string]any{
			"cpp_namespace":                       out.CppNamespace,
			"dispatch_aten_fallback_declarations": out.FallbackDeclarations,
		}},
		{FallbackSources, map[string]any{
			"cpp_namespace":                      out.CppNamespace,
			"backend":                            out.Backend,
			"dispatch_aten_fallback_definitions": out.FallbackDefinitions,
			"dispatch_registrations":             out.Registrations,
			"dispatch_autograd_registrations":    out.AutogradRegistrations,
		}},
	}

	var err error

	for _, f := range files {
		vars := f.vars
		if werr := w.Write(f.name, func() (map[string]any, error) { return vars, nil }); werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		return err
	}

	return w.Flush()
}

// Run loads opts.NativeYAML and opts.SourceYAML, generates, and writes through w.
func Run(opts Options, w gen.Writer) error {
	entries, err := native.LoadGrouped(opts.NativeFunctionsPath())
	if err != nil {
		return errors.Wrap(err, "loading operator registry")
	}

	decl, err := backend.Load(opts.SourceYAML)
	if err != nil {
		return errors.Wrap(err, "loading backend declaration")
	}

	klog.V(1).Infof("generating %s stubs into %s namespace %s", decl.Backend, opts.OutputDir, decl.CppNamespace)

	out, err := Generate(entries, decl, selective.NopSelector())
	if err != nil {
		return err
	}

	for _, d := range out.Diagnostics.Warnings {
		klog.Warning(d.String())
	}

	if err := out.Write(w); err != nil {
		return errors.Wrap(err, "writing generated files")
	}

	klog.V(1).Infof("%d registrations, %d autograd registrations",
		len(out.Registrations), len(out.AutogradRegistrations))

	return nil
}

// RunWithFileManager runs with a gen.FileManager built from opts.
func RunWithFileManager(opts Options) error {
	return Run(opts, gen.NewFileManager(opts.OutputDir, opts.TemplateDir, opts.DryRun))
}
