package native

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"backend-stubs-generator/internal/common"
	"backend-stubs-generator/internal/model"
)

// LoadFile loads and parses the registry YAML at path.
func LoadFile(path string) ([]*model.NativeFunction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read native functions file %s", path)
	}

	return Parse(data, path)
}

// Parse parses registry YAML. source names the input in locations and errors.
// Operator names must be unique across the registry.
func Parse(data []byte, source string) ([]*model.NativeFunction, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrapf(err, "failed to parse native functions YAML %s", source)
	}

	if common.IsEmpty(root.Content) {
		return nil, nil
	}

	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("%s:%d: expected a list of native function entries", source, seq.Line)
	}

	fs := make([]*model.NativeFunction, 0, len(seq.Content))
	seen := make(map[model.OperatorName]model.Location, len(seq.Content))

	for _, node := range seq.Content {
		loc := model.Location{File: source, Line: node.Line}

		f, err := parseEntry(node, loc)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", loc)
		}

		if prev, ok := seen[f.Name().Qualified()]; ok {
			return nil, errors.Errorf("%s: duplicate operator %s (first defined at %s)", loc, f.Name(), prev)
		}

		seen[f.Name().Qualified()] = loc
		fs = append(fs, f)
	}

	klog.V(1).Infof("loaded %d native functions from %s", len(fs), source)

	return fs, nil
}

func parseEntry(node *yaml.Node, loc model.Location) (*model.NativeFunction, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping entry")
	}

	var raw rawEntry
	if err := node.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "invalid native function entry")
	}

	if raw.Func == "" {
		return nil, errors.New("missing required key \"func\"")
	}

	schema, err := model.ParseFunctionSchema(raw.Func)
	if err != nil {
		return nil, err
	}

	f := &model.NativeFunction{
		Func:         schema,
		Variants:     raw.Variants,
		PythonModule: raw.PythonModule,
		Structured:   raw.Structured,
		DeviceGuard:  true,
		Loc:          loc,
	}

	if len(f.Variants) == 0 {
		f.Variants = []string{"function"}
	}

	if raw.DeviceGuard != nil {
		f.DeviceGuard = *raw.DeviceGuard
	}

	if len(raw.Dispatch) > 0 {
		f.Dispatch = make(map[string]string, len(raw.Dispatch))

		for keys, kernel := range raw.Dispatch {
			for _, key := range splitCommaList(keys) {
				if _, dup := f.Dispatch[key]; dup {
					return nil, errors.Errorf("dispatch key %s listed twice", key)
				}

				f.Dispatch[key] = kernel
			}
		}
	}

	return f, nil
}
