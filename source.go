// FILE: lixenwraith/confreg/source.go
package confreg

import (
	"os"
	"strings"
)

// LoadEnv applies environment overrides to registered variables. Each name
// maps to prefix plus the name uppercased with dots replaced by underscores:
// with prefix "MYAPP_", "server.port" is read from MYAPP_SERVER_PORT. Names
// without a matching environment variable keep their values; conversion
// failures follow the usual log-and-continue policy.
func (r *Registry) LoadEnv(prefix string) {
	for _, name := range r.Names() {
		value, ok := os.LookupEnv(envName(prefix, name))
		if !ok {
			continue
		}
		if v, found := r.Lookup(name); found {
			v.FromString(value)
		}
	}
}

// ApplyArgs applies command-line overrides to registered variables. Flags
// take the forms --name=value, --name value, and bare --name, which sets a
// boolean true. Names are matched like any other lookup; flags that match
// no registered variable are ignored, as are non-flag arguments.
func (r *Registry) ApplyArgs(args []string) {
	for i := 0; i < len(args); {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		content := strings.TrimPrefix(arg, "--")
		if content == "" {
			// Bare "--" separator.
			i++
			continue
		}

		var name, value string
		if eq := strings.Index(content, "="); eq >= 0 {
			name = content[:eq]
			value = content[eq+1:]
			i++
		} else if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			name = content
			value = "true"
			i++
		} else {
			name = content
			value = args[i+1]
			i += 2
		}

		if name == "" {
			continue
		}
		if v, ok := r.Lookup(name); ok {
			v.FromString(value)
		}
	}
}

// envName converts a variable name to its environment counterpart.
func envName(prefix, name string) string {
	env := strings.ReplaceAll(name, ".", "_")
	return prefix + strings.ToUpper(env)
}
