package stubs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-stubs-generator/internal/backend"
	"backend-stubs-generator/internal/gen"
	"backend-stubs-generator/internal/model"
	"backend-stubs-generator/internal/native"
	"backend-stubs-generator/internal/resolve"
	"backend-stubs-generator/internal/selective"
)

const nativeYAML = `
- func: add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor
  variants: function, method
  dispatch:
    CPU, CUDA: add
- func: sub.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor
  variants: function, method
- func: mul.Tensor(Tensor self, Tensor other) -> Tensor
`

const xlaYAML = `backend: XLA
cpp_namespace: torch_xla
supported:
- add.Tensor
autograd:
- sub.Tensor
`

func writeInputs(t *testing.T, backendYAML string) Options {
	t.Helper()

	dir := t.TempDir()
	opts := Options{
		SourceYAML: filepath.Join(dir, "xla_native_functions.yaml"),
		NativeYAML: filepath.Join(dir, "native_functions.yaml"),
		OutputDir:  filepath.Join(dir, "out"),
	}

	require.NoError(t, os.WriteFile(opts.NativeYAML, []byte(nativeYAML), 0o644))
	require.NoError(t, os.WriteFile(opts.SourceYAML, []byte(backendYAML), 0o644))

	return opts
}

func readOutput(t *testing.T, opts Options, name string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(opts.OutputDir, name))
	require.NoError(t, err)

	return string(b)
}

func TestRun(t *testing.T) {
	opts := writeInputs(t, xlaYAML)
	require.NoError(t, RunWithFileManager(opts))

	h := readOutput(t, opts, ClassHeader)
	assert.Contains(t, h, "namespace torch_xla {")
	assert.Contains(t, h, "class AtenXlaType {")

	for _, op := range []string{"add", "sub", "mul"} {
		assert.Contains(t, h, "  static at::Tensor "+op+"(const at::Tensor & self, const at::Tensor & other")
	}

	defaultH := readOutput(t, opts, FallbackHeader)
	assert.Contains(t, defaultH, "at::Tensor xla_mul_Tensor(const at::Tensor & self, const at::Tensor & other);")

	cpp := readOutput(t, opts, FallbackSources)
	assert.Contains(t, cpp, "ATEN_OP2(mul, Tensor)>::call(self, other);")

	wantPlain := `TORCH_LIBRARY_IMPL(aten, XLA, m) {
  m.impl("add.Tensor", static_cast<at::Tensor (*)(const at::Tensor &, const at::Tensor &, const at::Scalar &)>(&AtenXlaType::add));
}`
	wantAutograd := `TORCH_LIBRARY_IMPL(aten, AutogradXLA, m) {
  m.impl("sub.Tensor", static_cast<at::Tensor (*)(const at::Tensor &, const at::Tensor &, const at::Scalar &)>(&AtenXlaType::sub));
}`

	assert.Contains(t, cpp, wantPlain)
	assert.Contains(t, cpp, wantAutograd)
	assert.NotContains(t, cpp, `m.impl("mul.Tensor"`)
}

func TestGenerate(t *testing.T) {
	opts := writeInputs(t, xlaYAML)

	decl, err := backend.Load(opts.SourceYAML)
	require.NoError(t, err)

	entries, err := native.LoadGrouped(opts.NativeYAML)
	require.NoError(t, err)

	out, err := Generate(entries, decl, selective.NopSelector())
	require.NoError(t, err)
	assert.Len(t, out.Declarations, 3)
	assert.Len(t, out.FallbackDeclarations, 3)
	assert.Len(t, out.FallbackDefinitions, 3)
	assert.Len(t, out.Registrations, 1)
	assert.Len(t, out.AutogradRegistrations, 1)
	assert.Equal(t, "AtenXlaType", out.ClassName)

	sub, err := model.ParseOperatorName("sub.Tensor")
	require.NoError(t, err)

	out, err = Generate(entries, decl, selective.NewSelector([]model.OperatorName{sub}))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"static at::Tensor sub(const at::Tensor & self, const at::Tensor & other, const at::Scalar & alpha);",
	}, out.Declarations)
	assert.Empty(t, out.Registrations)
	assert.Len(t, out.AutogradRegistrations, 1)
}

func TestRunUnknownOperatorWritesNothing(t *testing.T) {
	opts := writeInputs(t, "backend: XLA\ncpp_namespace: torch_xla\nsupported: [add.Tensor, nonexistent_op]\nautograd: []\n")

	err := RunWithFileManager(opts)
	require.Error(t, err)

	var unknown *resolve.UnknownOperatorError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nonexistent_op", unknown.Operator().String())

	_, err = os.Stat(opts.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunMalformedDeclaration(t *testing.T) {
	opts := writeInputs(t, "backend: XLA\nsupported: [add.Tensor]\nautograd: []\n")

	err := RunWithFileManager(opts)

	var malformed *backend.MalformedDeclarationError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, "cpp_namespace", malformed.Key)
}

func TestRunIsIdempotent(t *testing.T) {
	opts := writeInputs(t, xlaYAML)

	first := gen.NewFileManager(opts.OutputDir, "", true)
	require.NoError(t, Run(opts, first))

	second := gen.NewFileManager(opts.OutputDir, "", true)
	require.NoError(t, Run(opts, second))

	if diff := cmp.Diff(first.Files(), second.Files()); diff != "" {
		t.Errorf("outputs differ between runs (-first +second):\n%s", diff)
	}

	require.Len(t, first.Files(), 3)
	assert.Equal(t, ClassHeader, first.Files()[0].Name)
	assert.Equal(t, FallbackHeader, first.Files()[1].Name)
	assert.Equal(t, FallbackSources, first.Files()[2].Name)
}

type failingWriter struct {
	written []string
	flushed bool
}

func (w *failingWriter) Write(filename string, env func() (map[string]any, error)) error {
	if _, err := env(); err != nil {
		return err
	}

	w.written = append(w.written, filename)
	if filename == FallbackHeader {
		return errors.New("disk full")
	}

	return nil
}

func (w *failingWriter) Flush() error {
	w.flushed = true
	return nil
}

func TestRunDoesNotFlushAfterWriteFailure(t *testing.T) {
	opts := writeInputs(t, xlaYAML)
	w := &failingWriter{}

	err := Run(opts, w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{ClassHeader, FallbackHeader, FallbackSources}, w.written)
	assert.False(t, w.flushed)
}

func TestNativeFunctionsPath(t *testing.T) {
	assert.Equal(t, "reg.yaml", Options{NativeYAML: "reg.yaml", PytorchRoot: "/pt"}.NativeFunctionsPath())
	assert.Equal(t, filepath.Join("/pt", "aten", "src", "ATen", "native", "native_functions.yaml"),
		Options{PytorchRoot: "/pt"}.NativeFunctionsPath())
}
