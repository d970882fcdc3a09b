// Package formats provides pluggable layout pack parsers.
package formats

import (
	"fmt"

	"github.com/bunTree/BrickFast/internal/layout"
	"gopkg.in/yaml.v3"
)

// Pack is the on-disk shape of a layout file: either a named list of layouts
// or, for single-layout files, one layout at the top level.
type Pack struct {
	Name    string          `yaml:"name,omitempty" toml:"name,omitempty"`
	Layouts []layout.Layout `yaml:"layouts" toml:"layouts"`
}

// yamlSingle catches files that hold a single layout without a layouts list.
type yamlSingle struct {
	layout.Layout `yaml:",inline"`
}

// ParseYAML parses a YAML layout pack.
func ParseYAML(data []byte) (Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(p.Layouts) > 0 {
		return p, nil
	}

	var single yamlSingle
	if err := yaml.Unmarshal(data, &single); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if single.ID == "" {
		return Pack{}, fmt.Errorf("yaml: no layouts")
	}
	return Pack{Name: p.Name, Layouts: []layout.Layout{single.Layout}}, nil
}

// MarshalYAML encodes a pack as YAML.
func MarshalYAML(p Pack) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
