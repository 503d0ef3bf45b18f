// FILE: lixenwraith/confreg/flatten.go
package confreg

import (
	"errors"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry pairs a flattened dotted path with the document node found there.
type Entry struct {
	Path string
	Node *yaml.Node
}

// Flatten walks a document tree depth-first and returns one entry per
// visited node, keyed by dotted path and ordered parents before children.
// Mapping children extend the path with "parent.key", the key taken
// verbatim; sequence children with "parent.N" for index N. Interior mapping
// and sequence nodes are recorded alongside leaves, so a variable registered
// under an interior path receives the whole subtree. When the same path
// occurs twice the later node replaces the earlier one in place.
func Flatten(root *yaml.Node) []Entry {
	var entries []Entry
	index := make(map[string]int)
	walkNode(root, "", &entries, index)
	return entries
}

func walkNode(node *yaml.Node, path string, entries *[]Entry, index map[string]int) {
	node = deref(node)
	if node == nil {
		return
	}

	if node.Kind == yaml.DocumentNode {
		for _, child := range node.Content {
			walkNode(child, path, entries, index)
		}
		return
	}

	if path != "" {
		if i, ok := index[path]; ok {
			(*entries)[i].Node = node
		} else {
			index[path] = len(*entries)
			*entries = append(*entries, Entry{Path: path, Node: node})
		}
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			child := path + "." + key
			if path == "" {
				child = key
			}
			walkNode(node.Content[i+1], child, entries, index)
		}
	case yaml.SequenceNode:
		// Sequence paths keep the bare "parent.N" form even at the root,
		// where they come out as ".0", ".1" and never match a registered name.
		for i, elem := range node.Content {
			walkNode(elem, path+"."+strconv.Itoa(i), entries, index)
		}
	}
}

// deref follows alias nodes to their anchor.
func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// parseDocument parses text as a single YAML document and returns its root
// node, unwrapped and dereferenced.
func parseDocument(text string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New("empty document")
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, errors.New("empty document")
	}
	return deref(root), nil
}

// marshalNode serializes a node subtree back to YAML text without the
// trailing newline the encoder appends.
func marshalNode(node *yaml.Node) (string, error) {
	data, err := yaml.Marshal(deref(node))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
