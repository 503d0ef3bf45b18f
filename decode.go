// FILE: lixenwraith/confreg/decode.go
package confreg

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the current values under basePath into target, which must be
// a non-nil pointer to a struct or map. Struct fields map through their
// "yaml" tags. An empty basePath scans the whole registry; a basePath that
// matches nothing decodes an empty section, leaving target's fields as they
// are.
func (r *Registry) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	section := navigateToPath(r.snapshotMap(), basePath)
	sectionMap, ok := section.(map[string]any)
	if !ok {
		if section == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("path %q refers to a non-map value (type %T)", basePath, section)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("scan %q into %T: %w", basePath, target, err)
	}
	return nil
}
