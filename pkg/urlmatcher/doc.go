// Package urlmatcher compiles a single URL pattern into a matcher that can match
// incoming paths, format URLs from parameter values and validate parameters.
//
// # Pattern Syntax
//
//	/users/:id                 → id matches one path segment (string type)
//	/users/{id}                → same as :id
//	/users/{id:int}            → id uses the registered "int" type
//	/files/{name:[a-z]+\.txt}  → inline regular expression
//	/static/*path              → catch-all, may span several segments
//	/search?q&{page:int}       → q and page are search (query) parameters
//
// Named types are looked up in a paramtype.Registry, so {id:int} needs a
// finalized registry at compile time. Identifiers that are not registered types
// are treated as inline expressions.
//
// # Usage
//
//	reg := paramtype.NewRegistry()
//	_ = reg.Attach(nil)
//
//	f := urlmatcher.NewFactory(reg)
//	m, err := f.Compile("/users/{id:int}?tab", urlmatcher.Config{Strict: true})
//
//	values, ok := m.Exec("/users/42", url.Values{"tab": {"posts"}})
//	// values == Values{"id": 42, "tab": "posts"}
//
//	href, ok := m.Format(urlmatcher.Values{"id": 7})
//	// href == "/users/7"
//
// Every declared search parameter is present in Exec results, with a nil value
// when the query does not carry it. Path parameters without a default are
// required by Format and Validates; search parameters are always optional.
//
// # Defaults
//
// Config.Params declares parameter defaults. A default may be a plain value or a
// function resolved through the registry's Resolver on first use, which fails with
// paramtype.ErrResolverRequired until the registry is attached.
package urlmatcher
