package records

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a record seed document.
func ParseYAML(raw []byte) (*Table, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("records yaml: %w", err)
	}
	return NewTable(d), nil
}

// LoadYAML reads a record seed file.
func LoadYAML(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return ParseYAML(raw)
}
