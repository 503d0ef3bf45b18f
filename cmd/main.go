// FILE: lixenwraith/confreg/cmd/main.go

// Command confreg-dump reads a configuration file and prints its flattened
// dotted paths, a quick way to see which names a document would feed into a
// registry.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/confreg"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: confreg-dump <config-file>")
		os.Exit(2)
	}

	entries, err := confreg.FlattenFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "confreg-dump:", err)
		os.Exit(1)
	}

	for _, e := range entries {
		fmt.Printf("%s: %s\n", e.Path, renderNode(e.Node))
	}
}

func renderNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.SequenceNode:
		return fmt.Sprintf("[sequence, %d elements]", len(node.Content))
	case yaml.MappingNode:
		return fmt.Sprintf("[mapping, %d keys]", len(node.Content)/2)
	}
	return "[?]"
}
