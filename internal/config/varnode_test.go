package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVarNodeLookupDotPath(t *testing.T) {
	var root VarNode
	err := yaml.Unmarshal([]byte(`
user:
  name: "Rafa"
  contact:
    email: "test@example.com"
  age: 30
  active: true
`), &root)
	require.NoError(t, err)

	name, ok := root.Lookup("user.name")
	require.True(t, ok)
	s, ok := name.Stringify()
	require.True(t, ok)
	require.Equal(t, "Rafa", s)

	email, ok := root.Lookup("user.contact.email")
	require.True(t, ok)
	s, _ = email.Stringify()
	require.Equal(t, "test@example.com", s)

	age, ok := root.Lookup("user.age")
	require.True(t, ok)
	s, _ = age.Stringify()
	require.Equal(t, "30", s)

	active, ok := root.Lookup("user.active")
	require.True(t, ok)
	s, _ = active.Stringify()
	require.Equal(t, "true", s)

	_, ok = root.Lookup("user.missing")
	require.False(t, ok)

	_, ok = root.Lookup("nonexistent.path")
	require.False(t, ok)
}

func TestVarNodeListDoesNotStringify(t *testing.T) {
	var root VarNode
	err := yaml.Unmarshal([]byte(`
tags: ["a", "b", "c"]
`), &root)
	require.NoError(t, err)

	tags, ok := root.Lookup("tags")
	require.True(t, ok)
	require.Equal(t, VarList, tags.Kind)
	_, ok = tags.Stringify()
	require.False(t, ok)
}

func TestVarNodeNullStringifiesEmpty(t *testing.T) {
	var root VarNode
	err := yaml.Unmarshal([]byte(`
nickname: null
`), &root)
	require.NoError(t, err)

	nick, ok := root.Lookup("nickname")
	require.True(t, ok)
	s, ok := nick.Stringify()
	require.True(t, ok)
	require.Equal(t, "", s)
}
