package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportImportCustomEntriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.yaml")

	nodes := []SnippetNode{
		{Snippet: &Snippet{Trigger: ";e", Replace: "exported", Enabled: true}},
	}
	vars := &VarNode{Kind: VarMap, Map: map[string]*VarNode{
		"name": {Kind: VarString, Str: "Rafa"},
	}}

	require.NoError(t, ExportCustomEntries(nodes, vars, path))

	data, err := ImportCustomEntries(path)
	require.NoError(t, err)
	require.Len(t, data.Snippets, 1)
	require.Equal(t, ";e", data.Snippets[0].Snippet.Trigger)

	name, ok := data.Variables.Lookup("name")
	require.True(t, ok)
	s, _ := name.Stringify()
	require.Equal(t, "Rafa", s)
}
