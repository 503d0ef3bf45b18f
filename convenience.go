// FILE: lixenwraith/confreg/convenience.go
package confreg

import (
	"flag"
	"fmt"
	"time"
)

// Quick loads a registry from the standard sources with one call: the
// config file (skipped when path is empty), environment variables under
// envPrefix, and os.Args. Variables must be registered first. A missing
// file comes back as ErrConfigNotFound with the other sources applied.
func Quick(r *Registry, path, envPrefix string) error {
	b := NewBuilder(r).WithEnv(envPrefix)
	if path != "" {
		b.WithFile(path)
	}
	return b.Load()
}

// MustQuick is like Quick but panics on errors other than a missing file.
func MustQuick(r *Registry, path, envPrefix string) {
	b := NewBuilder(r).WithEnv(envPrefix)
	if path != "" {
		b.WithFile(path)
	}
	b.MustLoad()
}

// Typed accessors for the common variable types. Each is shorthand for
// Value[T] with the matching type; the bool reports whether a variable of
// that exact type exists under the name.

func GetString(r *Registry, name string) (string, bool) {
	return Value[string](r, name)
}

func GetBool(r *Registry, name string) (bool, bool) {
	return Value[bool](r, name)
}

func GetInt(r *Registry, name string) (int, bool) {
	return Value[int](r, name)
}

func GetInt64(r *Registry, name string) (int64, bool) {
	return Value[int64](r, name)
}

func GetFloat64(r *Registry, name string) (float64, bool) {
	return Value[float64](r, name)
}

func GetDuration(r *Registry, name string) (time.Duration, bool) {
	return Value[time.Duration](r, name)
}

func GetStringSlice(r *Registry, name string) ([]string, bool) {
	return Value[[]string](r, name)
}

// GenerateFlags creates a flag set with one entry per registered variable,
// named after the variable and described by its description. Every flag is
// a string flag; values go through the variable's codec on bind.
func GenerateFlags(r *Registry) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	for _, name := range r.Names() {
		v, ok := r.Lookup(name)
		if !ok {
			continue
		}
		fs.String(name, v.String(), v.Description())
	}
	return fs
}

// BindFlags applies the flags set on the command line back to their
// variables. Unknown flag names are skipped; conversion failures are
// logged by the variable and counted.
func BindFlags(r *Registry, fs *flag.FlagSet) error {
	failed := 0
	fs.Visit(func(f *flag.Flag) {
		v, ok := r.Lookup(f.Name)
		if !ok {
			return
		}
		if !v.FromString(f.Value.String()) {
			failed++
		}
	})

	if failed > 0 {
		return fmt.Errorf("bind flags: %d values failed conversion", failed)
	}
	return nil
}
