// FILE: lixenwraith/confreg/codec.go
package confreg

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Codec converts values of one type to and from their text form. The text
// form of every supported type is a YAML fragment, which is what lets
// container codecs nest element codecs without caring about quoting.
type Codec[T any] struct {
	Encode func(value T) (string, error)
	Decode func(text string) (T, error)
}

// converter is the reflection-level form of a codec, used internally so
// container codecs can recurse over element types resolved at runtime.
type converter struct {
	encode func(v reflect.Value) (string, error)
	decode func(text string, out reflect.Value) error
}

var customCodecs = struct {
	mu sync.RWMutex
	m  map[reflect.Type]converter
}{m: make(map[reflect.Type]converter)}

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	emptyStructType     = reflect.TypeOf(struct{}{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// RegisterCodec installs codec as the process-wide converter for T,
// replacing the default and any earlier registration, in the manner of
// gob.Register. Variables bind their codec at registration time, so custom
// codecs must be registered before the variables that need them.
func RegisterCodec[T any](codec Codec[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	conv := converter{
		encode: func(v reflect.Value) (string, error) {
			return codec.Encode(v.Interface().(T))
		},
		decode: func(text string, out reflect.Value) error {
			value, err := codec.Decode(text)
			if err != nil {
				return err
			}
			out.Set(reflect.ValueOf(value))
			return nil
		},
	}

	customCodecs.mu.Lock()
	customCodecs.m[t] = conv
	customCodecs.mu.Unlock()
}

// hasCustomCodec reports whether RegisterCodec installed a converter for t.
func hasCustomCodec(t reflect.Type) bool {
	customCodecs.mu.RLock()
	defer customCodecs.mu.RUnlock()
	_, ok := customCodecs.m[t]
	return ok
}

// Encode renders value as text using the codec resolved for T.
func Encode[T any](value T) (string, error) {
	codec, err := codecFor[T]()
	if err != nil {
		return "", err
	}
	return codec.Encode(value)
}

// Decode parses text into a value of T using the codec resolved for T.
func Decode[T any](text string) (T, error) {
	codec, err := codecFor[T]()
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.Decode(text)
}

// codecFor resolves the converter for T and wraps it into a typed Codec.
// Failures on either direction come back as *ConversionError.
func codecFor[T any]() (Codec[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	conv, err := converterFor(t)
	if err != nil {
		return Codec[T]{}, err
	}

	return Codec[T]{
		Encode: func(value T) (string, error) {
			text, err := conv.encode(reflect.ValueOf(&value).Elem())
			if err != nil {
				return "", &ConversionError{Op: "encode", Type: t, Err: err}
			}
			return text, nil
		},
		Decode: func(text string) (T, error) {
			out := reflect.New(t).Elem()
			if err := conv.decode(text, out); err != nil {
				var zero T
				return zero, &ConversionError{Op: "decode", Type: t, Text: text, Err: err}
			}
			return out.Interface().(T), nil
		},
	}, nil
}

func converterFor(t reflect.Type) (converter, error) {
	return resolveConverter(t, nil)
}

// resolveConverter picks the converter for t: custom registrations first,
// then time.Duration, TextMarshaler pairs, plain scalar kinds, and finally
// the recursive container forms. seen guards against self-referential
// container types.
func resolveConverter(t reflect.Type, seen map[reflect.Type]bool) (converter, error) {
	customCodecs.mu.RLock()
	conv, ok := customCodecs.m[t]
	customCodecs.mu.RUnlock()
	if ok {
		return conv, nil
	}

	if t == durationType {
		return durationConverter(), nil
	}
	if conv, ok := textConverter(t); ok {
		return conv, nil
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return scalarConverter(t), nil

	case reflect.Slice, reflect.Map:
		if seen[t] {
			return deferredConverter(t), nil
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true

		if t.Kind() == reflect.Slice {
			return sequenceConverter(t, seen)
		}
		if t.Elem() == emptyStructType {
			return setConverter(t, seen)
		}
		if t.Key().Kind() == reflect.String {
			return mappingConverter(t, seen)
		}
	}

	return converter{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// scalarConverter handles the basic kinds. Integers and bools print through
// strconv; floats and strings take the YAML scalar form so .inf, .nan and
// strings full of YAML metacharacters survive the round trip. Decoding into
// a non-string target accepts both the plain and the quoted spelling of a
// value.
func scalarConverter(t reflect.Type) converter {
	kind := t.Kind()
	return converter{
		encode: func(v reflect.Value) (string, error) {
			switch kind {
			case reflect.Bool:
				return strconv.FormatBool(v.Bool()), nil
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return strconv.FormatInt(v.Int(), 10), nil
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				return strconv.FormatUint(v.Uint(), 10), nil
			default:
				return encodeYAMLScalar(v.Interface())
			}
		},
		decode: func(text string, out reflect.Value) error {
			if kind != reflect.String && strings.TrimSpace(text) == "" {
				return errors.New("empty text")
			}
			err := yaml.Unmarshal([]byte(text), out.Addr().Interface())
			if err == nil || kind == reflect.String {
				return err
			}

			// Quoted numerics resolve as !!str and miss the typed target.
			// Retry against the scalar content so "9090" decodes the way
			// 9090 does.
			var content string
			if yaml.Unmarshal([]byte(text), &content) != nil || strings.TrimSpace(content) == "" {
				return err
			}
			if yaml.Unmarshal([]byte(content), out.Addr().Interface()) != nil {
				return err
			}
			return nil
		},
	}
}

// durationConverter prints durations in "1m30s" form and accepts that form,
// its quoted variant, or a plain integer nanosecond count on the way in.
func durationConverter() converter {
	return converter{
		encode: func(v reflect.Value) (string, error) {
			return time.Duration(v.Int()).String(), nil
		},
		decode: func(text string, out reflect.Value) error {
			if strings.TrimSpace(text) == "" {
				return errors.New("empty text")
			}
			var s string
			if err := yaml.Unmarshal([]byte(text), &s); err == nil {
				if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
					out.SetInt(int64(d))
					return nil
				}
			}
			var n int64
			if err := yaml.Unmarshal([]byte(text), &n); err == nil {
				out.SetInt(n)
				return nil
			}
			return fmt.Errorf("invalid duration %q", strings.TrimSpace(text))
		},
	}
}

// textConverter covers types carrying their own text form through
// encoding.TextMarshaler and TextUnmarshaler, time.Time and net.IP among
// them. The marshaled text is wrapped in YAML scalar quoting so arbitrary
// content stays a single scalar.
func textConverter(t reflect.Type) (converter, bool) {
	ptr := reflect.PointerTo(t)
	if !ptr.Implements(textUnmarshalerType) {
		return converter{}, false
	}
	if !t.Implements(textMarshalerType) && !ptr.Implements(textMarshalerType) {
		return converter{}, false
	}

	return converter{
		encode: func(v reflect.Value) (string, error) {
			m, ok := v.Interface().(encoding.TextMarshaler)
			if !ok {
				// Marshaler on the pointer receiver; copy to get an address.
				p := reflect.New(t)
				p.Elem().Set(v)
				m = p.Interface().(encoding.TextMarshaler)
			}
			b, err := m.MarshalText()
			if err != nil {
				return "", err
			}
			return encodeYAMLScalar(string(b))
		},
		decode: func(text string, out reflect.Value) error {
			if strings.TrimSpace(text) == "" {
				return errors.New("empty text")
			}
			var s string
			if err := yaml.Unmarshal([]byte(text), &s); err != nil {
				return err
			}
			return out.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		},
	}, true
}

// deferredConverter breaks resolution cycles in self-referential container
// types by re-resolving one value level per call.
func deferredConverter(t reflect.Type) converter {
	return converter{
		encode: func(v reflect.Value) (string, error) {
			conv, err := converterFor(t)
			if err != nil {
				return "", err
			}
			return conv.encode(v)
		},
		decode: func(text string, out reflect.Value) error {
			conv, err := converterFor(t)
			if err != nil {
				return err
			}
			return conv.decode(text, out)
		},
	}
}

// encodeYAMLScalar marshals a single value through the YAML encoder and
// strips the trailing newline.
func encodeYAMLScalar(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
