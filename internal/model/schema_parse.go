package model

import (
	"strconv"
	"strings"
)

// ParseFunctionSchema parses an operator signature of the form
//
//	add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor
func ParseFunctionSchema(text string) (*FunctionSchema, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return nil, newParseError("schema", text, "missing argument list")
	}

	name, err := ParseOperatorName(strings.TrimSpace(text[:open]))
	if err != nil {
		return nil, err
	}

	closeIdx := matchingParen(text, open)
	if closeIdx < 0 {
		return nil, newParseError("schema", text, "unbalanced parentheses in argument list")
	}

	rest := strings.TrimSpace(text[closeIdx+1:])
	if !strings.HasPrefix(rest, "->") {
		return nil, newParseError("schema", text, "missing '->' before returns")
	}

	args, perr := parseArguments(text[open+1 : closeIdx])
	if perr != nil {
		return nil, newParseError("schema", text, "%s", perr.Reason)
	}

	returns, perr := parseReturns(strings.TrimSpace(strings.TrimPrefix(rest, "->")))
	if perr != nil {
		return nil, newParseError("schema", text, "%s", perr.Reason)
	}

	return &FunctionSchema{Name: name, Arguments: args, Returns: returns}, nil
}

func parseArguments(text string) ([]Argument, *ParseError) {
	var args []Argument

	kwargOnly := false

	for _, part := range splitTopLevel(text) {
		if part == "*" {
			if kwargOnly {
				return nil, newParseError("argument", part, "duplicate '*' marker")
			}

			kwargOnly = true

			continue
		}

		arg, err := parseArgument(part)
		if err != nil {
			return nil, err
		}

		arg.KwargOnly = kwargOnly
		args = append(args, arg)
	}

	return args, nil
}

func parseArgument(text string) (Argument, *ParseError) {
	decl, def, hasDefault := strings.Cut(text, "=")
	decl = strings.TrimSpace(decl)

	sp := strings.LastIndexByte(decl, ' ')
	if sp < 0 {
		return Argument{}, newParseError("argument", text, "expected '<type> <name>'")
	}

	name := strings.TrimSpace(decl[sp+1:])
	if !isIdent(name) {
		return Argument{}, newParseError("argument", text, "bad argument name %q", name)
	}

	t, ann, err := parseType(strings.TrimSpace(decl[:sp]))
	if err != nil {
		return Argument{}, err
	}

	arg := Argument{Name: name, Type: t, Annotation: ann}

	if hasDefault {
		def = strings.TrimSpace(def)
		if def == "" {
			return Argument{}, newParseError("argument", text, "empty default value")
		}

		arg.Default = &def
	}

	return arg, nil
}

func parseReturns(text string) ([]Return, *ParseError) {
	if text == "()" {
		return nil, nil
	}

	parts := []string{text}

	if strings.HasPrefix(text, "(") {
		if matchingParen(text, 0) != len(text)-1 {
			return nil, newParseError("returns", text, "unbalanced parentheses")
		}

		parts = splitTopLevel(text[1 : len(text)-1])
	}

	returns := make([]Return, 0, len(parts))

	for _, part := range parts {
		typeText, name := part, ""
		if sp := strings.LastIndexByte(part, ' '); sp >= 0 {
			typeText, name = strings.TrimSpace(part[:sp]), strings.TrimSpace(part[sp+1:])
			if !isIdent(name) {
				return nil, newParseError("returns", text, "bad return name %q", name)
			}
		}

		t, ann, err := parseType(typeText)
		if err != nil {
			return nil, err
		}

		returns = append(returns, Return{Name: name, Type: t, Annotation: ann})
	}

	return returns, nil
}

// parseType parses "Base[(alias[!])][suffixes]" where suffixes are "?", "[]" or "[N]".
func parseType(text string) (Type, *Annotation, *ParseError) {
	i := 0
	for i < len(text) && text[i] != '(' && text[i] != '[' && text[i] != '?' {
		i++
	}

	base := text[:i]
	if !isIdent(base) {
		return Type{}, nil, newParseError("type", text, "bad base type %q", base)
	}

	var ann *Annotation

	if i < len(text) && text[i] == '(' {
		end := strings.IndexByte(text[i:], ')')
		if end < 0 {
			return Type{}, nil, newParseError("type", text, "unterminated alias annotation")
		}

		alias := text[i+1 : i+end]
		ann = &Annotation{Alias: strings.TrimSuffix(alias, "!"), Mutable: strings.HasSuffix(alias, "!")}

		if ann.Alias == "" {
			return Type{}, nil, newParseError("type", text, "empty alias annotation")
		}

		i += end + 1
	}

	t := Type{Name: base}

	for i < len(text) {
		switch text[i] {
		case '?':
			if t.Optional {
				return Type{}, nil, newParseError("type", text, "repeated '?'")
			}

			t.Optional = true
			i++
		case '[':
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				return Type{}, nil, newParseError("type", text, "unterminated list size")
			}

			size := 0

			if sizeText := text[i+1 : i+end]; sizeText != "" {
				n, err := strconv.Atoi(sizeText)
				if err != nil || n <= 0 {
					return Type{}, nil, newParseError("type", text, "bad list size %q", sizeText)
				}

				size = n
			}

			elem := t
			t = Type{Elem: &elem, Size: size}
			i += end + 1
		default:
			return Type{}, nil, newParseError("type", text, "unexpected %q", text[i:])
		}
	}

	return t, ann, nil
}

// matchingParen returns the index of the parenthesis closing the one at open, or -1.
func matchingParen(text string, open int) int {
	depth := 0

	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitTopLevel splits on commas that are not nested in (), [] or quotes.
func splitTopLevel(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		parts []string
		depth int
		quote byte
		start int
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(text[start:i]))
			start = i + 1
		}
	}

	return append(parts, strings.TrimSpace(text[start:]))
}
