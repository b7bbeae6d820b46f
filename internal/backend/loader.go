package backend

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"backend-stubs-generator/internal/model"
)

// DefaultClassName is the class backend kernels are declared in when the
// declaration does not set "class_name".
const DefaultClassName = "AtenXlaType"

const (
	keyBackend      = "backend"
	keyCppNamespace = "cpp_namespace"
	keyClassName    = "class_name"
	keySupported    = "supported"
	keyAutograd     = "autograd"
)

// File is a parsed backend declaration.
type File struct {
	Backend      string
	CppNamespace string
	ClassName    string
	Supported    []Declared
	Autograd     []Declared
	// Source is the path the declaration was read from.
	Source string
}

// Declared is one operator-name string of a declaration list with its position.
type Declared struct {
	Name string
	Loc  model.Location
}

// LoadFile loads and parses the backend declaration at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read backend declaration %s", path)
	}

	return Parse(data, path)
}

// Parse parses backend declaration YAML. source names the input in locations.
func Parse(data []byte, source string) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "failed to parse backend declaration %s", source)
	}

	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, &MalformedDeclarationError{Key: "", Reason: "expected a mapping at the top level", Loc: model.Location{File: source, Line: 1}}
	}

	p := parser{source: source, file: &File{Source: source}}
	if err := p.parseMapping(root.Content[0]); err != nil {
		return nil, err
	}

	return p.file, nil
}

type parser struct {
	source string
	file   *File
}

func (p *parser) loc(n *yaml.Node) model.Location {
	return model.Location{File: p.source, Line: n.Line}
}

func (p *parser) parseMapping(m *yaml.Node) error {
	seen := make(map[string]bool, len(m.Content)/2)

	for i := 0; i+1 < len(m.Content); i += 2 {
		keyNode, value := m.Content[i], m.Content[i+1]
		key := keyNode.Value

		if seen[key] {
			return &MalformedDeclarationError{Key: key, Reason: "key given twice", Loc: p.loc(keyNode)}
		}

		seen[key] = true

		var err error

		switch key {
		case keyBackend:
			p.file.Backend, err = p.scalar(key, value)
		case keyCppNamespace:
			p.file.CppNamespace, err = p.scalar(key, value)
		case keyClassName:
			p.file.ClassName, err = p.scalar(key, value)
		case keySupported:
			p.file.Supported, err = p.list(key, value)
		case keyAutograd:
			p.file.Autograd, err = p.list(key, value)
		default:
			err = &MalformedDeclarationError{Key: key, Reason: "unknown key", Loc: p.loc(keyNode)}
		}

		if err != nil {
			return err
		}
	}

	for _, key := range []string{keyBackend, keyCppNamespace, keySupported, keyAutograd} {
		if !seen[key] {
			return &MalformedDeclarationError{Key: key, Reason: "missing required key", Loc: p.loc(m)}
		}
	}

	if p.file.ClassName == "" {
		p.file.ClassName = DefaultClassName
	}

	return nil
}

func (p *parser) scalar(key string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" || n.Value == "" {
		return "", &MalformedDeclarationError{Key: key, Reason: "expected a non-empty string", Loc: p.loc(n)}
	}

	return n.Value, nil
}

func (p *parser) list(key string, n *yaml.Node) ([]Declared, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &MalformedDeclarationError{Key: key, Reason: "expected a list of operator names", Loc: p.loc(n)}
	}

	out := make([]Declared, 0, len(n.Content))

	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
			return nil, &MalformedDeclarationError{Key: key, Reason: "list entries must be strings", Loc: p.loc(item)}
		}

		out = append(out, Declared{Name: item.Value, Loc: p.loc(item)})
	}

	return out, nil
}
