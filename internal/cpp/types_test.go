package cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-stubs-generator/internal/model"
)

func argTypes(t *testing.T, schema string) []string {
	t.Helper()

	s, err := model.ParseFunctionSchema(schema)
	require.NoError(t, err)

	res := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		res[i] = ArgumentType(a)
	}

	return res
}

func TestArgumentType(t *testing.T) {
	tests := []struct {
		arg      string
		expected string
	}{
		{"Tensor a", "const at::Tensor &"},
		{"Tensor(a!) a", "at::Tensor &"},
		{"Tensor(a) a", "const at::Tensor &"},
		{"Tensor? a", "const c10::optional<at::Tensor> &"},
		{"Tensor[] a", "at::TensorList"},
		{"Tensor(a!)[] a", "at::TensorList"},
		{"Tensor?[] a", "const c10::List<c10::optional<at::Tensor>> &"},
		{"Scalar a", "const at::Scalar &"},
		{"Scalar? a", "const c10::optional<at::Scalar> &"},
		{"Scalar[] a", "at::ArrayRef<at::Scalar>"},
		{"int a", "int64_t"},
		{"int? a", "c10::optional<int64_t>"},
		{"int[] a", "at::IntArrayRef"},
		{"int[2] a", "at::IntArrayRef"},
		{"int[]? a", "at::OptionalIntArrayRef"},
		{"float a", "double"},
		{"float[]? a", "c10::optional<at::ArrayRef<double>>"},
		{"bool a", "bool"},
		{"bool[3] a", "::std::array<bool,3>"},
		{"str a", "c10::string_view"},
		{"str? a", "c10::optional<c10::string_view>"},
		{"ScalarType? a", "c10::optional<at::ScalarType>"},
		{"Generator? a", "c10::optional<at::Generator>"},
		{"Dimname[] a", "at::DimnameList"},
		{"Layout a", "at::Layout"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got := argTypes(t, "f("+tt.arg+") -> ()")
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected, got[0])
		})
	}
}

func TestReturnType(t *testing.T) {
	tests := []struct {
		returns  string
		expected string
	}{
		{"()", "void"},
		{"Tensor", "at::Tensor"},
		{"Tensor(a!)", "at::Tensor &"},
		{"Tensor(a)", "at::Tensor"},
		{"Tensor[]", "::std::vector<at::Tensor>"},
		{"(Tensor values, Tensor indices)", "::std::tuple<at::Tensor,at::Tensor>"},
		{"(Tensor(a!) values, Tensor(b!) indices)", "::std::tuple<at::Tensor &,at::Tensor &>"},
		{"Scalar", "at::Scalar"},
		{"int", "int64_t"},
		{"float", "double"},
		{"ScalarType", "at::ScalarType"},
		{"int[]", "::std::vector<int64_t>"},
	}

	for _, tt := range tests {
		t.Run(tt.returns, func(t *testing.T) {
			s, err := model.ParseFunctionSchema("f(Tensor self) -> " + tt.returns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ReturnType(s.Returns))
		})
	}
}
