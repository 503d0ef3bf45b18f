// FILE: lixenwraith/confreg/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/confreg"
	"github.com/rs/zerolog"
)

const configFilePath = "config.yaml"

// ServerConfig is the struct view of the "server" section, filled by Scan.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

func main() {
	log.Println("--- writing initial", configFilePath)
	if err := os.WriteFile(configFilePath, []byte(initialConfig), 0644); err != nil {
		log.Fatalf("write config file: %v", err)
	}
	defer func() {
		os.Remove(configFilePath)
		os.Unsetenv("DEMO_SERVER_PORT")
	}()

	reg := confreg.New(confreg.WithLogger(
		zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	))

	// Declare before loading: only these names receive document values.
	host := confreg.MustRegister(reg, "server.host", "localhost", "bind address")
	port := confreg.MustRegister(reg, "server.port", 8080, "listen port")
	idle := confreg.MustRegister(reg, "server.idle_timeout", 30*time.Second, "idle connection timeout")
	peers := confreg.MustRegister(reg, "cluster.peers", []string{}, "peer addresses")
	flags := confreg.MustRegister(reg, "feature.flags", map[string]bool{}, "feature toggles")

	log.Println("--- defaults")
	fmt.Print(reg.Debug())

	log.Println("--- loading", configFilePath)
	if err := reg.LoadFile(configFilePath); err != nil && !errors.Is(err, confreg.ErrConfigNotFound) {
		log.Fatalf("load config: %v", err)
	}
	fmt.Printf("host=%s port=%d idle=%s peers=%v flags=%v\n",
		host.Value(), port.Value(), idle.Value(), peers.Value(), flags.Value())

	log.Println("--- environment override DEMO_SERVER_PORT=9090")
	os.Setenv("DEMO_SERVER_PORT", "9090")
	reg.LoadEnv("DEMO_")
	fmt.Printf("port=%d\n", port.Value())

	log.Println("--- argument override --server.host=edge-1.internal")
	reg.ApplyArgs([]string{"--server.host=edge-1.internal"})
	fmt.Printf("host=%s\n", host.Value())

	log.Println("--- scanning the server section into a struct")
	var server ServerConfig
	if err := reg.Scan("server", &server); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("%+v\n", server)

	log.Println("--- saving a snapshot to snapshot.yaml")
	if err := reg.Save("snapshot.yaml"); err != nil {
		log.Fatalf("save: %v", err)
	}
	defer os.Remove("snapshot.yaml")

	log.Println("--- final state")
	fmt.Print(reg.Debug())
}

const initialConfig = `server:
  host: example.com
  port: 8443
  idle_timeout: 1m30s
cluster:
  peers:
    - 10.0.0.1:7000
    - 10.0.0.2:7000
feature:
  flags:
    metrics: true
    tracing: false
`
