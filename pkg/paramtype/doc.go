// Package paramtype provides a registry of named URL parameter types with
// two-phase, deferred resolution.
//
// A parameter type couples a regular expression that matches the raw text of a
// path segment or query value with the functions that convert between that text
// and a typed Go value:
//
//	paramtype.Type{
//		Pattern: regexp.MustCompile(`[a-z]{2}`),
//		Decode:  func(raw string) (any, error) { return strings.ToUpper(raw), nil },
//		Encode:  func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
//	}
//
// Any function left nil is defaulted by New: identity decoding, fmt.Sprint
// encoding, a non-nil validity check and strict equality.
//
// # Lifecycle
//
// A Registry starts open. Register and RegisterFunc only queue definitions; nothing
// is resolved until Attach is called with a Resolver. Attach finalizes the registry,
// resolves the queue in registration order and then installs the builtin types
// (int, bool, string, date) for every name that is still free, so caller
// registrations always win over builtins:
//
//	reg := paramtype.NewRegistry()
//	_ = reg.Register("int", myInt)              // overrides the builtin int
//	_ = reg.RegisterFunc("slug", func(db *DB) paramtype.Type {
//		return slugType(db)                     // resolved at Attach time
//	})
//
//	if err := reg.Attach(container); err != nil {
//		return err
//	}
//	t, _ := reg.Lookup("slug")
//
// Registrations made after Attach take effect immediately. Registering a name that
// is already resolved fails with ErrDuplicateType.
package paramtype
