// FILE: lixenwraith/confreg/doc.go

// Package confreg provides a registry of named, strongly typed configuration
// variables that are declared in code and updated in place from YAML, JSON or
// TOML documents. Handles returned at declaration stay valid for the life of
// the registry, so a reload never invalidates references held elsewhere.
//
// Features:
//   - Typed variables: Register[T] returns a *Var[T] whose Value() needs no
//     assertion and whose type is fixed at first registration
//   - Get-or-create semantics: registering an existing name returns the
//     existing handle with its value untouched
//   - Document loading: values flow in through dotted paths flattened from a
//     parsed document tree; only declared names are applied, the rest of the
//     document is ignored
//   - Recursive codecs: slices, string-keyed maps and struct{}-valued sets of
//     any supported element type convert through the same YAML round-trip
//     rule, nesting freely
//   - Custom codecs per type via RegisterCodec, TextMarshaler support for
//     types like time.Time and net.IP, time.Duration in "1m30s" form
//   - Environment and command-line overrides mapped onto registered names
//   - Fluent multi-source setup through Builder, with optional config file
//     discovery over CLI flag, environment variable and XDG paths
//   - Struct scanning through mapstructure and atomic file snapshots
//   - Structured logging through zerolog; conversion failures are logged and
//     absorbed so one bad value never aborts a bulk load
//
// Quick Start:
//
//	reg := confreg.New()
//	port := confreg.MustRegister(reg, "server.port", 8080, "listen port")
//	hosts := confreg.MustRegister(reg, "cluster.peers", []string{}, "peer addresses")
//
//	if err := reg.LoadFile("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	reg.LoadEnv("MYAPP_")
//	reg.ApplyArgs(os.Args[1:])
//
//	listen(port.Value(), hosts.Value())
//
// Variable names are lowercased on entry and must match [a-z0-9._]+.
// Uppercase input is accepted and normalized; anything else fails
// registration with ErrInvalidName.
//
// Thread Safety:
// All operations are safe for concurrent use. The registry map is guarded by
// a read-write mutex and every variable guards its value independently, so
// readers proceed in parallel and never observe a partially written value.
package confreg
