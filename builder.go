// FILE: lixenwraith/confreg/builder.go
package confreg

import (
	"errors"
	"fmt"
	"os"
)

// ValidatorFunc checks a registry after all sources have been applied. It
// receives the loaded *Registry and returns an error to fail the load.
type ValidatorFunc func(r *Registry) error

// Builder composes the standard load sequence for a registry: config file,
// then environment, then command-line arguments, each layer overriding the
// one before. Variables must be registered before Load runs.
type Builder struct {
	reg        *Registry
	file       string
	discovery  *DiscoveryOptions
	envPrefix  string
	useEnv     bool
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a builder for r. Arguments default to os.Args[1:].
func NewBuilder(r *Registry) *Builder {
	return &Builder{
		reg:  r,
		args: os.Args[1:],
	}
}

// WithFile sets an explicit config file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithDiscovery enables config file discovery, used when no explicit file
// path is set. A discovery miss is not an error.
func (b *Builder) WithDiscovery(opts DiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithEnv enables the environment layer with the given variable prefix.
func (b *Builder) WithEnv(prefix string) *Builder {
	b.envPrefix = prefix
	b.useEnv = true
	return b
}

// WithArgs replaces the command-line arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function that runs after all sources.
// Multiple validators run in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Load applies the configured sources in precedence order. A missing
// explicit file is not fatal: the remaining sources still apply and the
// ErrConfigNotFound sentinel comes back so callers can tell. Any other file
// error stops the load.
func (b *Builder) Load() error {
	var notFound error

	file := b.file
	if file == "" && b.discovery != nil {
		if path, ok := Discover(*b.discovery, b.args); ok {
			file = path
		}
	}

	if file != "" {
		if err := b.reg.LoadFile(file); err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return err
			}
			notFound = err
		}
	}

	if b.useEnv {
		b.reg.LoadEnv(b.envPrefix)
	}
	b.reg.ApplyArgs(b.args)

	for _, validator := range b.validators {
		if err := validator(b.reg); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return notFound
}

// MustLoad is like Load but panics on any error other than a missing file.
func (b *Builder) MustLoad() {
	if err := b.Load(); err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
}

// LoadAndScan loads all sources and then decodes the values under basePath
// into target. The ErrConfigNotFound sentinel passes through when the rest
// of the load succeeded.
func (b *Builder) LoadAndScan(basePath string, target any) error {
	err := b.Load()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}
	if scanErr := b.reg.Scan(basePath, target); scanErr != nil {
		return scanErr
	}
	return err
}
