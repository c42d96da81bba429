package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExportData is the shape of a standalone export/import file: just the
// snippet hierarchy and the variable mapping, no settings.
type ExportData struct {
	Snippets  []SnippetNode `yaml:"snippets"`
	Variables *VarNode      `yaml:"variables"`
}

// ExportSnippets writes only the snippet hierarchy to path.
func ExportSnippets(nodes []SnippetNode, path string) error {
	data, err := yaml.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("serializing snippets: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportCustomEntries writes snippets and variables together to path.
func ExportCustomEntries(nodes []SnippetNode, vars *VarNode, path string) error {
	data, err := yaml.Marshal(ExportData{Snippets: nodes, Variables: vars})
	if err != nil {
		return fmt.Errorf("serializing export data: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportCustomEntries reads a previously exported snippets+variables file.
func ImportCustomEntries(path string) (ExportData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExportData{}, fmt.Errorf("reading import file %s: %w", path, err)
	}
	var out ExportData
	if err := yaml.Unmarshal(data, &out); err != nil {
		return ExportData{}, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	return out, nil
}
