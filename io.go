// FILE: lixenwraith/confreg/io.go
package confreg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Save writes a snapshot of the current values to path, as TOML when the
// extension says so and YAML otherwise. The write is atomic: data goes to a
// temporary file in the target directory, which is then renamed over the
// destination.
func (r *Registry) Save(path string) error {
	nested := r.saveSnapshotMap()

	var data []byte
	switch detectFileFormat(path) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(nested); err != nil {
			return fmt.Errorf("marshal config to TOML: %w", err)
		}
		data = buf.Bytes()
	default:
		out, err := yaml.Marshal(nested)
		if err != nil {
			return fmt.Errorf("marshal config to YAML: %w", err)
		}
		data = out
	}

	return atomicWriteFile(path, data)
}

// atomicWriteFile performs an atomic file write via temp file and rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary config file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary config file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temporary config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary config file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("set config file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace config file %q: %w", path, err)
	}

	return nil
}
