// FILE: lixenwraith/confreg/decode_test.go
package confreg

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverSection struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	Idle    time.Duration `yaml:"idle"`
}

func TestScanSection(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "server.host", "api.local", "")
	MustRegister(reg, "server.port", 8443, "")
	MustRegister(reg, "server.timeout", "45s", "")
	MustRegister(reg, "server.idle", 90*time.Second, "")

	var section serverSection
	require.NoError(t, reg.Scan("server", &section))
	assert.Equal(t, "api.local", section.Host)
	assert.Equal(t, 8443, section.Port)
	assert.Equal(t, 45*time.Second, section.Timeout)
	assert.Equal(t, 90*time.Second, section.Idle)
}

func TestScanRoot(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "app", "demo", "")
	MustRegister(reg, "server.port", 8443, "")

	var cfg struct {
		App    string `yaml:"app"`
		Server struct {
			Port int `yaml:"port"`
		} `yaml:"server"`
	}
	require.NoError(t, reg.Scan("", &cfg))
	assert.Equal(t, "demo", cfg.App)
	assert.Equal(t, 8443, cfg.Server.Port)
}

func TestScanTextUnmarshaler(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "net.gateway", "10.1.2.3", "")

	var section struct {
		Gateway net.IP `yaml:"gateway"`
	}
	require.NoError(t, reg.Scan("net", &section))
	assert.True(t, net.ParseIP("10.1.2.3").Equal(section.Gateway))
}

func TestScanContainers(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "cluster.peers", []string{"a", "b"}, "")
	MustRegister(reg, "cluster.weights", map[string]int{"a": 1}, "")

	var section struct {
		Peers   []string       `yaml:"peers"`
		Weights map[string]int `yaml:"weights"`
	}
	require.NoError(t, reg.Scan("cluster", &section))
	assert.Equal(t, []string{"a", "b"}, section.Peers)
	assert.Equal(t, map[string]int{"a": 1}, section.Weights)
}

func TestScanMissingSection(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "server.port", 8443, "")

	section := serverSection{Port: 1}
	require.NoError(t, reg.Scan("nope", &section))
	assert.Equal(t, 1, section.Port)
}

func TestScanErrors(t *testing.T) {
	reg := newTestRegistry()
	MustRegister(reg, "name", "zed", "")

	var section serverSection
	err := reg.Scan("", section)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-nil pointer")

	err = reg.Scan("name", &section)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-map")
}
