package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-stubs-generator/internal/model"
)

const xlaYAML = `backend: XLA
cpp_namespace: torch_xla
supported:
  - add.Tensor
  - relu
autograd:
  - max_pool2d
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(xlaYAML), "xla_native_functions.yaml")
	require.NoError(t, err)

	assert.Equal(t, "XLA", f.Backend)
	assert.Equal(t, "torch_xla", f.CppNamespace)
	assert.Equal(t, DefaultClassName, f.ClassName)
	require.Len(t, f.Supported, 2)
	assert.Equal(t, Declared{Name: "add.Tensor", Loc: model.Location{File: "xla_native_functions.yaml", Line: 4}}, f.Supported[0])
	require.Len(t, f.Autograd, 1)
	assert.Equal(t, "max_pool2d", f.Autograd[0].Name)
}

func TestParseClassNameAndEmptyLists(t *testing.T) {
	f, err := Parse([]byte("backend: Vulkan\ncpp_namespace: at::native::vulkan\nclass_name: VulkanType\nsupported: []\nautograd: []\n"), "v.yaml")
	require.NoError(t, err)

	assert.Equal(t, "VulkanType", f.ClassName)
	assert.Empty(t, f.Supported)
	assert.Empty(t, f.Autograd)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"top level list", "- add", ""},
		{"empty document", "", ""},
		{"missing backend", "cpp_namespace: x\nsupported: []\nautograd: []", keyBackend},
		{"missing cpp_namespace", "backend: XLA\nsupported: []\nautograd: []", keyCppNamespace},
		{"missing supported", "backend: XLA\ncpp_namespace: x\nautograd: []", keySupported},
		{"missing autograd", "backend: XLA\ncpp_namespace: x\nsupported: []", keyAutograd},
		{"backend not a string", "backend: [XLA]\ncpp_namespace: x\nsupported: []\nautograd: []", keyBackend},
		{"backend empty", "backend: ''\ncpp_namespace: x\nsupported: []\nautograd: []", keyBackend},
		{"namespace not a string", "backend: XLA\ncpp_namespace: 3\nsupported: []\nautograd: []", keyCppNamespace},
		{"supported not a list", "backend: XLA\ncpp_namespace: x\nsupported: add\nautograd: []", keySupported},
		{"supported null", "backend: XLA\ncpp_namespace: x\nsupported:\nautograd: []", keySupported},
		{"autograd item not a string", "backend: XLA\ncpp_namespace: x\nsupported: []\nautograd: [{a: b}]", keyAutograd},
		{"unknown key", "backend: XLA\ncpp_namespace: x\nsupported: []\nautograd: []\nextra: 1", "extra"},
		{"key twice", "backend: XLA\nbackend: CUDA\ncpp_namespace: x\nsupported: []\nautograd: []", keyBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "b.yaml")
			require.Error(t, err)

			var me *MalformedDeclarationError
			require.ErrorAs(t, err, &me, err.Error())
			assert.Equal(t, tt.key, me.Key)
			assert.Contains(t, me.Error(), "b.yaml:")
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xla.yaml")
	require.NoError(t, os.WriteFile(path, []byte(xlaYAML), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "XLA", d.Backend)
	assert.Len(t, d.Metadata, 3)

	_, err = Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read backend declaration")
}
