// FILE: lixenwraith/confreg/errors.go
package confreg

import (
	"errors"
	"fmt"
	"reflect"
)

// errorMarker is returned by Variable.String when encoding fails.
const errorMarker = "<error>"

var (
	// ErrInvalidName indicates a registration name containing characters
	// outside [a-z0-9._] after lowercasing.
	ErrInvalidName = errors.New("invalid config name")

	// ErrTypeMismatch indicates either a registration conflicting with the
	// type fixed at first registration, or a document node whose shape does
	// not fit the target container.
	ErrTypeMismatch = errors.New("config type mismatch")

	// ErrUnsupportedType indicates a value type no codec can handle.
	ErrUnsupportedType = errors.New("unsupported config type")

	// ErrConfigNotFound indicates the requested configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

// ConversionError reports a failed conversion between a typed value and its
// text form. Err holds the underlying cause and is exposed through Unwrap,
// so errors.Is(err, ErrTypeMismatch) detects shape mismatches.
type ConversionError struct {
	Op   string       // "encode" or "decode"
	Type reflect.Type // value type being converted
	Text string       // offending text, decode only
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Op == "decode" {
		return fmt.Sprintf("cannot decode %q into %s: %v", e.Text, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot encode %s value: %v", e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
