// FILE: lixenwraith/confreg/register.go
package confreg

import (
	"fmt"
	"strings"
)

// Register returns the variable stored under name, creating it when absent.
// The name is lowercased, then validated against [a-z0-9._]+. When an entry
// of type T already exists the existing handle is returned with its value
// untouched and one log record is emitted; an entry of any other type is a
// conflict and fails with ErrTypeMismatch. defaultValue seeds the variable
// until a document, environment or argument source replaces it.
//
// Registration is the moment the codec for T is resolved; types nothing can
// convert fail here with ErrUnsupportedType rather than at first use.
func Register[T any](r *Registry, name string, defaultValue T, description string) (*Var[T], error) {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.vars[key]; ok {
		typed, ok := existing.(*Var[T])
		if !ok {
			return nil, fmt.Errorf("register %q: %w: held by %T", name, ErrTypeMismatch, existing)
		}
		r.log.Info().Str("name", key).Msg("variable already registered")
		return typed, nil
	}

	if !validName(key) {
		return nil, fmt.Errorf("register %q: %w", name, ErrInvalidName)
	}

	codec, err := codecFor[T]()
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}

	v := &Var[T]{
		name:        key,
		description: description,
		codec:       codec,
		log:         r.log,
		value:       defaultValue,
	}
	r.vars[key] = v
	return v, nil
}

// MustRegister is Register that panics on error, for package-level variable
// declarations in the manner of regexp.MustCompile.
func MustRegister[T any](r *Registry, name string, defaultValue T, description string) *Var[T] {
	v, err := Register(r, name, defaultValue, description)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the typed variable stored under name. Absent names and
// entries holding a different type both report false.
func Lookup[T any](r *Registry, name string) (*Var[T], bool) {
	v, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	typed, ok := v.(*Var[T])
	return typed, ok
}

// Value is shorthand for Lookup followed by Value on the handle.
func Value[T any](r *Registry, name string) (T, bool) {
	v, ok := Lookup[T](r, name)
	if !ok {
		var zero T
		return zero, false
	}
	return v.Value(), true
}

// validName reports whether name is a well-formed variable name: a non-empty
// run of lowercase letters, digits, dots and underscores.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		if !(isLower || isDigit || c == '.' || c == '_') {
			return false
		}
	}
	return true
}
