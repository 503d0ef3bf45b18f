// FILE: lixenwraith/confreg/flatten_test.go
package confreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseTestDocument(t *testing.T, text string) *yaml.Node {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(text), &root))
	return &root
}

func entryPaths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

func TestFlattenDocumentOrder(t *testing.T) {
	root := parseTestDocument(t, "a:\n  b: 1\n  c:\n    - 2\n    - 3\n")
	entries := Flatten(root)

	assert.Equal(t, []string{"a", "a.b", "a.c", "a.c.0", "a.c.1"}, entryPaths(entries))
	assert.Equal(t, "2", entries[3].Node.Value)
	assert.Equal(t, yaml.MappingNode, entries[0].Node.Kind)
	assert.Equal(t, yaml.SequenceNode, entries[2].Node.Kind)
}

func TestFlattenDuplicateKeyLastWins(t *testing.T) {
	scalar := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		scalar("a"), scalar("1"),
		scalar("b"), scalar("2"),
		scalar("a"), scalar("3"),
	}}

	entries := Flatten(root)
	require.Len(t, entries, 2)

	// The first occurrence keeps its position but carries the last node.
	assert.Equal(t, "a", entries[0].Path)
	assert.Equal(t, "3", entries[0].Node.Value)
	assert.Equal(t, "b", entries[1].Path)
	assert.Equal(t, "2", entries[1].Node.Value)
}

func TestFlattenRootSequence(t *testing.T) {
	root := parseTestDocument(t, "- x\n- y\n")
	entries := Flatten(root)

	assert.Equal(t, []string{".0", ".1"}, entryPaths(entries))
	assert.Equal(t, "x", entries[0].Node.Value)
}

func TestFlattenScalarRoot(t *testing.T) {
	root := parseTestDocument(t, "just a scalar")
	assert.Empty(t, Flatten(root))
}

func TestFlattenResolvesAliases(t *testing.T) {
	root := parseTestDocument(t, "base: &b 5\nref: *b\n")
	entries := Flatten(root)

	require.Equal(t, []string{"base", "ref"}, entryPaths(entries))
	assert.Equal(t, "5", entries[1].Node.Value)
	assert.Equal(t, yaml.ScalarNode, entries[1].Node.Kind)
}

func TestFlattenNil(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
