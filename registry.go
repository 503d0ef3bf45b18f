// FILE: lixenwraith/confreg/registry.go
package confreg

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Registry holds named configuration variables. The zero value is not usable;
// construct instances with New. Variables are never removed: a handle obtained
// from registration stays valid for the life of the registry.
type Registry struct {
	mu   sync.RWMutex
	vars map[string]Variable
	log  zerolog.Logger
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithLogger replaces the registry's logger. Pass zerolog.Nop() to silence
// the registry entirely.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.log = logger }
}

// New creates an empty registry. Without options it logs to stderr with
// timestamps.
func New(opts ...Option) *Registry {
	r := &Registry{
		vars: make(map[string]Variable),
		log:  zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return New() })

// Default returns the shared process-wide registry. It is constructed on
// first use and never reset; code that needs isolation (tests in particular)
// should build its own instance with New.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the variable stored under name, untyped. The name is
// lowercased before the lookup. Use the package-level Lookup[T] to recover
// the typed handle.
func (r *Registry) Lookup(name string) (Variable, bool) {
	name = strings.ToLower(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vars[name]
	return v, ok
}

// Names returns all registered variable names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vars)
}

// Debug returns a human-readable listing of every variable, one per line in
// name order, with descriptions as trailing comments.
func (r *Registry) Debug() string {
	r.mu.RLock()
	vars := make([]Variable, 0, len(r.vars))
	for _, v := range r.vars {
		vars = append(vars, v)
	}
	r.mu.RUnlock()

	sort.Slice(vars, func(i, j int) bool { return vars[i].Name() < vars[j].Name() })

	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%s = %s", v.Name(), v.String())
		if desc := v.Description(); desc != "" {
			fmt.Fprintf(&b, "  # %s", desc)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// snapshotMap renders the current values as a nested map keyed by the dot
// segments of each variable name. Set-typed values come out as element
// slices; everything else keeps its raw shape, which is what Scan feeds to
// mapstructure.
func (r *Registry) snapshotMap() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nested := make(map[string]any)
	for name, v := range r.vars {
		setNestedValue(nested, name, normalizeValue(v.snapshot()))
	}
	return nested
}

// saveSnapshotMap is the Save form of snapshotMap. Values of types with a
// registered custom codec take their codec text instead of their raw shape;
// the raw struct would serialize as a nested mapping the codec cannot read
// back on reload.
func (r *Registry) saveSnapshotMap() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nested := make(map[string]any)
	for name, v := range r.vars {
		value := v.snapshot()
		if hasCustomCodec(reflect.TypeOf(value)) {
			setNestedValue(nested, name, v.String())
			continue
		}
		setNestedValue(nested, name, normalizeValue(value))
	}
	return nested
}
