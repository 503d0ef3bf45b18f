// FILE: lixenwraith/confreg/loader.go
package confreg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadNode applies a parsed document to the registry. The tree is flattened
// into dotted paths; entries whose path matches a registered name are
// serialized back to text and handed to the variable's FromString. Unmatched
// document entries are ignored, and variables the document does not mention
// keep their values: only names declared before the load can receive data.
//
// Per-entry conversion failures are logged and skipped; they never abort the
// rest of the load, which is why LoadNode has no error to return.
func (r *Registry) LoadNode(root *yaml.Node) {
	if root == nil {
		return
	}

	type match struct {
		variable Variable
		node     *yaml.Node
	}
	var matches []match

	r.mu.RLock()
	for _, entry := range Flatten(root) {
		if v, ok := r.vars[entry.Path]; ok {
			matches = append(matches, match{variable: v, node: entry.Node})
		}
	}
	r.mu.RUnlock()

	for _, m := range matches {
		text, err := marshalNode(m.node)
		if err != nil {
			r.log.Error().Err(err).Str("name", m.variable.Name()).Msg("node serialize failed")
			continue
		}
		m.variable.FromString(text)
	}
}

// LoadString parses text as a YAML document and applies it with LoadNode.
// The returned error covers parse failures only; value conversion follows
// LoadNode's log-and-continue policy.
func (r *Registry) LoadString(text string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return fmt.Errorf("parse config document: %w", err)
	}
	r.LoadNode(&doc)
	return nil
}

// LoadFile reads a configuration file and applies it with LoadNode. The
// format comes from the extension (.yaml/.yml, .json, .toml/.tml), falling
// back to content detection for anything else. A missing file returns
// ErrConfigNotFound so callers can treat it as optional.
func (r *Registry) LoadFile(path string) error {
	root, err := parseFile(path)
	if err != nil {
		return err
	}
	r.LoadNode(root)
	return nil
}

// FlattenFile parses a configuration file and returns its flattened entries
// without touching any registry. Useful for inspecting which dotted paths a
// document provides.
func FlattenFile(path string) ([]Entry, error) {
	root, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}

// parseFile reads a configuration file into a node tree, detecting the
// format from the extension and then the content.
func parseFile(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	switch format {
	case "toml":
		root, err := tomlToNode(data)
		if err != nil {
			return nil, fmt.Errorf("parse TOML config file %q: %w", path, err)
		}
		return root, nil
	case "yaml", "json":
		// YAML is a superset of JSON; one parser covers both.
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		return &doc, nil
	default:
		return nil, fmt.Errorf("cannot determine config format of %q", path)
	}
}

// tomlToNode converts TOML into a YAML node tree so every format feeds the
// same flattening path.
func tomlToNode(data []byte) (*yaml.Node, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(out, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by trial parse. TOML is
// tried first: almost any text parses as some YAML scalar, so the YAML probe
// has to come last.
func detectFormatFromContent(data []byte) string {
	tomlTest := make(map[string]any)
	if err := toml.Unmarshal(data, &tomlTest); err == nil && len(tomlTest) > 0 {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
