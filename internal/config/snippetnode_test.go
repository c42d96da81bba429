package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSnippetNodeUnmarshalSnippet(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
settings:
  enable_sound: true
snippets:
  - trigger: ";test"
    replace: "hello world"
    propagate_case: true
`), &cfg)
	require.NoError(t, err)
	require.True(t, cfg.Settings.EnableSound)
	require.Len(t, cfg.Snippets, 1)
	require.NotNil(t, cfg.Snippets[0].Snippet)
	require.Equal(t, ";test", cfg.Snippets[0].Snippet.Trigger)
	require.True(t, cfg.Snippets[0].Snippet.Enabled)
	require.True(t, cfg.Snippets[0].Snippet.PropagateCase)
}

func TestSnippetNodeUnmarshalNestedFolder(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte(`
snippets:
  - folder: "Work"
    items:
      - trigger: ";sig"
        replace: "Work Signature"
  - trigger: ";home"
    replace: "Home Address"
`), &cfg)
	require.NoError(t, err)
	require.Len(t, cfg.Snippets, 2)

	require.True(t, cfg.Snippets[0].IsFolder())
	require.Equal(t, "Work", cfg.Snippets[0].Folder.Name)
	require.Len(t, cfg.Snippets[0].Folder.Items, 1)
	require.Equal(t, ";sig", cfg.Snippets[0].Folder.Items[0].Snippet.Trigger)

	require.False(t, cfg.Snippets[1].IsFolder())
	require.Equal(t, ";home", cfg.Snippets[1].Snippet.Trigger)
}

func TestFlattenSnippetsDropsDisabled(t *testing.T) {
	nodes := []SnippetNode{
		{Snippet: &Snippet{Trigger: ";a", Enabled: true}},
		{Snippet: &Snippet{Trigger: ";b", Enabled: false}},
		{Folder: &Folder{Name: "F", Enabled: true, Items: []SnippetNode{
			{Snippet: &Snippet{Trigger: ";c", Enabled: true}},
			{Snippet: &Snippet{Trigger: ";d", Enabled: false}},
		}}},
		{Folder: &Folder{Name: "G", Enabled: false, Items: []SnippetNode{
			{Snippet: &Snippet{Trigger: ";e", Enabled: true}},
		}}},
	}

	flat := FlattenSnippets(nodes)
	var triggers []string
	for _, s := range flat {
		triggers = append(triggers, s.Trigger)
	}
	require.Equal(t, []string{";a", ";c"}, triggers)
}
