// FILE: lixenwraith/confreg/variable.go
package confreg

import (
	"sync"

	"github.com/rs/zerolog"
)

// Variable is the type-erased view of a registered variable, the surface the
// registry works through when applying documents. Concrete variables are
// always *Var[T]; the interface cannot be implemented outside this package.
type Variable interface {
	// Name returns the lowercased dotted name.
	Name() string
	// Description returns the free-form text supplied at registration.
	Description() string
	// String renders the current value through the variable's codec. On
	// codec failure it logs the error and returns the "<error>" marker.
	String() string
	// FromString decodes text and replaces the current value. On failure it
	// logs the error, leaves the value untouched and returns false.
	FromString(text string) bool

	snapshot() any
}

// Var is a typed configuration variable. Handles are shared: every holder of
// the same *Var[T] observes updates immediately, without re-lookup. The codec
// is bound once at registration.
type Var[T any] struct {
	name        string
	description string
	codec       Codec[T]
	log         zerolog.Logger

	mu    sync.RWMutex
	value T
}

// Value returns the current value. It never fails.
func (v *Var[T]) Value() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the current value. It never fails.
func (v *Var[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.mu.Unlock()
}

// Name returns the lowercased dotted name.
func (v *Var[T]) Name() string { return v.name }

// Description returns the free-form text supplied at registration.
func (v *Var[T]) Description() string { return v.description }

// String implements fmt.Stringer through the variable's codec.
func (v *Var[T]) String() string {
	text, err := v.codec.Encode(v.Value())
	if err != nil {
		v.log.Error().Err(err).Str("name", v.name).Msg("value encode failed")
		return errorMarker
	}
	return text
}

// FromString decodes text through the variable's codec and replaces the
// current value. The decode runs outside the value lock; the swap happens
// under it, so readers never observe a partial update.
func (v *Var[T]) FromString(text string) bool {
	value, err := v.codec.Decode(text)
	if err != nil {
		v.log.Error().Err(err).Str("name", v.name).Msg("value decode failed")
		return false
	}
	v.Set(value)
	return true
}

func (v *Var[T]) snapshot() any {
	return v.Value()
}
