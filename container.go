// FILE: lixenwraith/confreg/container.go
package confreg

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// Container converters all follow the same round-trip rule: elements are
// encoded with their own codec, each fragment is re-parsed into a node, the
// nodes are assembled under a sequence or mapping node and serialized as one
// document. Decoding reverses the steps, serializing each child node back to
// text for the element codec. Nesting costs nothing: the element codec may
// itself be a container codec.

// sequenceConverter handles []E for any supported element type, preserving
// element order in both directions.
func sequenceConverter(t reflect.Type, seen map[reflect.Type]bool) (converter, error) {
	elemType := t.Elem()
	elemConv, err := resolveConverter(elemType, seen)
	if err != nil {
		return converter{}, err
	}

	return converter{
		encode: func(v reflect.Value) (string, error) {
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for i := 0; i < v.Len(); i++ {
				text, err := elemConv.encode(v.Index(i))
				if err != nil {
					return "", fmt.Errorf("element %d: %w", i, err)
				}
				node, err := parseDocument(text)
				if err != nil {
					return "", fmt.Errorf("element %d: %w", i, err)
				}
				seq.Content = append(seq.Content, node)
			}
			return marshalNode(seq)
		},
		decode: func(text string, out reflect.Value) error {
			node, err := parseDocument(text)
			if err != nil {
				return err
			}
			if node.Kind != yaml.SequenceNode {
				return fmt.Errorf("%w: %s node where sequence expected", ErrTypeMismatch, nodeKindName(node.Kind))
			}

			result := reflect.MakeSlice(t, 0, len(node.Content))
			for i, child := range node.Content {
				childText, err := marshalNode(child)
				if err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				elem := reflect.New(elemType).Elem()
				if err := elemConv.decode(childText, elem); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				result = reflect.Append(result, elem)
			}
			out.Set(result)
			return nil
		},
	}, nil
}

// setConverter handles map[E]struct{}. The text form is the same sequence
// form slices use; membership has no order, so elements encode sorted by
// their encoded text and duplicates collapse on decode.
func setConverter(t reflect.Type, seen map[reflect.Type]bool) (converter, error) {
	keyType := t.Key()
	keyConv, err := resolveConverter(keyType, seen)
	if err != nil {
		return converter{}, err
	}

	return converter{
		encode: func(v reflect.Value) (string, error) {
			texts := make([]string, 0, v.Len())
			for iter := v.MapRange(); iter.Next(); {
				text, err := keyConv.encode(iter.Key())
				if err != nil {
					return "", err
				}
				texts = append(texts, text)
			}
			sort.Strings(texts)

			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, text := range texts {
				node, err := parseDocument(text)
				if err != nil {
					return "", err
				}
				seq.Content = append(seq.Content, node)
			}
			return marshalNode(seq)
		},
		decode: func(text string, out reflect.Value) error {
			node, err := parseDocument(text)
			if err != nil {
				return err
			}
			if node.Kind != yaml.SequenceNode {
				return fmt.Errorf("%w: %s node where sequence expected", ErrTypeMismatch, nodeKindName(node.Kind))
			}

			result := reflect.MakeMapWithSize(t, len(node.Content))
			for i, child := range node.Content {
				childText, err := marshalNode(child)
				if err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				key := reflect.New(keyType).Elem()
				if err := keyConv.decode(childText, key); err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				result.SetMapIndex(key, reflect.New(emptyStructType).Elem())
			}
			out.Set(result)
			return nil
		},
	}, nil
}

// mappingConverter handles map[string]V with any supported value type. Keys
// encode sorted for deterministic output; decode requires a mapping node
// with scalar keys.
func mappingConverter(t reflect.Type, seen map[reflect.Type]bool) (converter, error) {
	keyType := t.Key()
	valType := t.Elem()
	valConv, err := resolveConverter(valType, seen)
	if err != nil {
		return converter{}, err
	}

	return converter{
		encode: func(v reflect.Value) (string, error) {
			keys := make([]string, 0, v.Len())
			for iter := v.MapRange(); iter.Next(); {
				keys = append(keys, iter.Key().String())
			}
			sort.Strings(keys)

			m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for _, key := range keys {
				val := v.MapIndex(reflect.ValueOf(key).Convert(keyType))
				text, err := valConv.encode(val)
				if err != nil {
					return "", fmt.Errorf("key %q: %w", key, err)
				}
				node, err := parseDocument(text)
				if err != nil {
					return "", fmt.Errorf("key %q: %w", key, err)
				}
				m.Content = append(m.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
					node)
			}
			return marshalNode(m)
		},
		decode: func(text string, out reflect.Value) error {
			node, err := parseDocument(text)
			if err != nil {
				return err
			}
			if node.Kind != yaml.MappingNode {
				return fmt.Errorf("%w: %s node where mapping expected", ErrTypeMismatch, nodeKindName(node.Kind))
			}

			result := reflect.MakeMapWithSize(t, len(node.Content)/2)
			for i := 0; i+1 < len(node.Content); i += 2 {
				keyNode, valNode := node.Content[i], node.Content[i+1]
				if keyNode.Kind != yaml.ScalarNode {
					return fmt.Errorf("key %d: %s node where scalar key expected", i/2, nodeKindName(keyNode.Kind))
				}
				valText, err := marshalNode(valNode)
				if err != nil {
					return fmt.Errorf("key %q: %w", keyNode.Value, err)
				}
				val := reflect.New(valType).Elem()
				if err := valConv.decode(valText, val); err != nil {
					return fmt.Errorf("key %q: %w", keyNode.Value, err)
				}
				result.SetMapIndex(reflect.ValueOf(keyNode.Value).Convert(keyType), val)
			}
			out.Set(result)
			return nil
		},
	}, nil
}

// normalizeValue converts set-typed values (map[E]struct{}) into plain
// element slices for snapshots, so saved files hold sequences the set codec
// can read back. Other values pass through untouched.
func normalizeValue(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.Type().Elem() != emptyStructType {
		return value
	}

	elems := make([]any, 0, v.Len())
	for iter := v.MapRange(); iter.Next(); {
		elems = append(elems, iter.Key().Interface())
	}
	sort.Slice(elems, func(i, j int) bool {
		return fmt.Sprint(elems[i]) < fmt.Sprint(elems[j])
	})
	return elems
}
