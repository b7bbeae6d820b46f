package match

import (
	"strings"
)

// NormalizeOperator normalizes an operator name for fuzzy matching:
// the namespace is dropped, the text is case-folded and separators
// ("_", ".", "-", " ") are removed.
//
//	"aten::Max_Pool2d.out" -> "maxpool2dout"
func NormalizeOperator(s string) string {
	return strings.Join(TokenizeOperator(s), "")
}

// TokenizeOperator splits an operator name into lowercase tokens on separators,
// after dropping any namespace.
//
//	"aten::max_pool2d.out" -> ["max", "pool2d", "out"]
func TokenizeOperator(s string) []string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}

	return strings.FieldsFunc(strings.ToLower(s), isSeparator)
}

// BaseName returns the part of an operator name before its overload, without namespace.
func BaseName(s string) string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}

	base, _, _ := strings.Cut(s, ".")

	return base
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
