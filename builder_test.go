// FILE: lixenwraith/confreg/builder_test.go
package confreg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestBuilderPrecedence(t *testing.T) {
	reg := newTestRegistry()
	port := MustRegister(reg, "server.port", 1, "")
	host := MustRegister(reg, "server.host", "default", "")

	path := writeTestConfig(t, "app.yaml", "server:\n  port: 1000\n  host: filehost\n")
	t.Setenv("BLDTEST_SERVER_PORT", "2000")

	err := NewBuilder(reg).
		WithFile(path).
		WithEnv("BLDTEST_").
		WithArgs([]string{"--server.port=3000"}).
		Load()
	require.NoError(t, err)

	// Args beat env beats file; host only came from the file.
	assert.Equal(t, 3000, port.Value())
	assert.Equal(t, "filehost", host.Value())
}

func TestBuilderMissingFileTolerated(t *testing.T) {
	reg := newTestRegistry()
	host := MustRegister(reg, "server.host", "default", "")

	t.Setenv("BLDTEST_SERVER_HOST", "envhost")

	err := NewBuilder(reg).
		WithFile(filepath.Join(t.TempDir(), "missing.yaml")).
		WithEnv("BLDTEST_").
		WithArgs(nil).
		Load()
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Equal(t, "envhost", host.Value())
}

func TestBuilderBadFileFatal(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "server.host", "default", "")

	path := writeTestConfig(t, "app.yaml", "server: [unclosed")
	err := NewBuilder(reg).WithFile(path).WithArgs(nil).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
}

func TestBuilderDiscovery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "myapp.yaml"), []byte("server:\n  port: 4000\n"), 0644))

	reg := newTestRegistry()
	port := MustRegister(reg, "server.port", 1, "")

	err := NewBuilder(reg).
		WithDiscovery(DiscoveryOptions{Name: "myapp", Extensions: []string{".yaml"}, Paths: []string{dir}}).
		WithArgs(nil).
		Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, port.Value())
}

func TestBuilderDiscoveryMiss(t *testing.T) {
	reg := newTestRegistry()
	port := MustRegister(reg, "server.port", 1, "")

	err := NewBuilder(reg).
		WithDiscovery(DiscoveryOptions{Name: "myapp", Extensions: []string{".yaml"}, Paths: []string{t.TempDir()}}).
		WithArgs(nil).
		Load()
	require.NoError(t, err)
	assert.Equal(t, 1, port.Value())
}

func TestBuilderValidator(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "server.port", 1, "")

	err := NewBuilder(reg).
		WithArgs([]string{"--server.port=70000"}).
		WithValidator(func(r *Registry) error {
			if port, ok := Value[int](r, "server.port"); ok && port > 65535 {
				return errors.New("server.port out of range")
			}
			return nil
		}).
		Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "server.port out of range")
}

func TestBuilderMustLoadPanics(t *testing.T) {
	reg := newTestRegistry()
	path := writeTestConfig(t, "app.yaml", "server: [unclosed")

	assert.Panics(t, func() {
		NewBuilder(reg).WithFile(path).WithArgs(nil).MustLoad()
	})
}

func TestBuilderMustLoadToleratesMissingFile(t *testing.T) {
	reg := newTestRegistry()
	assert.NotPanics(t, func() {
		NewBuilder(reg).WithFile(filepath.Join(t.TempDir(), "missing.yaml")).WithArgs(nil).MustLoad()
	})
}

func TestBuilderLoadAndScan(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "server.host", "scanned", "")
	MustRegister(reg, "server.idle", 90*time.Second, "")

	var section struct {
		Host string        `yaml:"host"`
		Idle time.Duration `yaml:"idle"`
	}
	err := NewBuilder(reg).
		WithFile(filepath.Join(t.TempDir(), "missing.yaml")).
		WithArgs(nil).
		LoadAndScan("server", &section)

	// The sentinel passes through, and the scan still ran.
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Equal(t, "scanned", section.Host)
	assert.Equal(t, 90*time.Second, section.Idle)
}
