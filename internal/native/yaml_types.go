package native

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// rawEntry is the YAML shape of one registry entry.
type rawEntry struct {
	Func         string            `yaml:"func"`
	Variants     CommaList         `yaml:"variants"`
	Dispatch     map[string]string `yaml:"dispatch"`
	PythonModule string            `yaml:"python_module"`
	Structured   bool              `yaml:"structured"`
	DeviceGuard  *bool             `yaml:"device_guard"`
}

// CommaList accepts either a comma separated scalar ("function, method")
// or a YAML sequence of strings.
type CommaList []string

// UnmarshalYAML implements custom YAML unmarshaling for CommaList.
func (c *CommaList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*c = splitCommaList(str)

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*c = arr

		return nil

	default:
		return errors.Errorf("line %d: expected string or list, got %v", node.Line, node.Kind)
	}
}

// splitCommaList splits "CPU, CUDA" into its trimmed, non-empty elements.
func splitCommaList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
