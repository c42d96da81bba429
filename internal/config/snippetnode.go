package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// snippetNodeDefaults is the raw decode target for a SnippetNode: Enabled
// defaults to true unless the YAML explicitly sets it false.
type snippetNodeDefaults struct {
	Folder  *string       `yaml:"folder"`
	Items   []SnippetNode `yaml:"items"`
	Enabled *bool         `yaml:"enabled"`

	Trigger             string   `yaml:"trigger"`
	Replace             string   `yaml:"replace"`
	Label               string   `yaml:"label"`
	PropagateCase       bool     `yaml:"propagate_case"`
	CursorPosition      bool     `yaml:"cursor_position"`
	WordBoundary        bool     `yaml:"word_boundary"`
	Regex               bool     `yaml:"regex"`
	Applications        []string `yaml:"applications"`
	ExcludeApplications []string `yaml:"exclude_applications"`
}

// UnmarshalYAML distinguishes a Folder from a Snippet structurally, by the
// presence of the "folder" key.
func (n *SnippetNode) UnmarshalYAML(value *yaml.Node) error {
	var raw snippetNodeDefaults
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decoding snippet node: %w", err)
	}

	enabled := true
	if raw.Enabled != nil {
		enabled = *raw.Enabled
	}

	if raw.Folder != nil {
		n.Folder = &Folder{
			Name:    *raw.Folder,
			Items:   raw.Items,
			Enabled: enabled,
		}
		n.Snippet = nil
		return nil
	}

	n.Snippet = &Snippet{
		Trigger:             raw.Trigger,
		Replace:             raw.Replace,
		Label:               raw.Label,
		PropagateCase:       raw.PropagateCase,
		CursorPosition:      raw.CursorPosition,
		WordBoundary:        raw.WordBoundary,
		Regex:               raw.Regex,
		Applications:        raw.Applications,
		ExcludeApplications: raw.ExcludeApplications,
		Enabled:             enabled,
	}
	n.Folder = nil
	return nil
}

// MarshalYAML emits whichever of Folder/Snippet is set, round-tripping the
// same shape UnmarshalYAML accepts.
func (n SnippetNode) MarshalYAML() (interface{}, error) {
	if n.Folder != nil {
		return struct {
			Folder  string        `yaml:"folder"`
			Items   []SnippetNode `yaml:"items,omitempty"`
			Enabled bool          `yaml:"enabled"`
		}{n.Folder.Name, n.Folder.Items, n.Folder.Enabled}, nil
	}
	if n.Snippet != nil {
		return n.Snippet, nil
	}
	return nil, fmt.Errorf("snippet node has neither folder nor snippet set")
}

// FlattenSnippets walks the hierarchy depth-first, dropping disabled
// snippets and disabled folder subtrees entirely.
func FlattenSnippets(nodes []SnippetNode) []Snippet {
	var out []Snippet
	flattenInto(nodes, &out)
	return out
}

func flattenInto(nodes []SnippetNode, out *[]Snippet) {
	for _, node := range nodes {
		switch {
		case node.Snippet != nil:
			if node.Snippet.Enabled {
				*out = append(*out, *node.Snippet)
			}
		case node.Folder != nil:
			if node.Folder.Enabled {
				flattenInto(node.Folder.Items, out)
			}
		}
	}
}
