// FILE: lixenwraith/confreg/helper.go
package confreg

import "strings"

// setNestedValue writes value into nested under a dotted path, creating
// intermediate maps as needed. A non-map value sitting on an intermediate
// segment is replaced by a map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// navigateToPath walks nested down a dotted path, returning nil when the
// path leaves the map structure. An empty path (or a bare ".") returns the
// map itself.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	var current any = nested
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}
