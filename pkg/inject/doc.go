// Package inject provides a type-keyed container that invokes functions with
// their arguments resolved by type. Resolution is delegated to go.uber.org/dig.
//
// It is the resolution context that paramtype registries and urlmatcher deferred
// defaults are attached to:
//
//	c := inject.New()
//	c.Provide(db, cfg)
//	inject.ProvideAs[Clock](c, realClock{})
//
//	v, err := c.Invoke(func(db *sql.DB, cfg Config) (paramtype.Type, error) {
//		return slugType(db, cfg.SlugPrefix)
//	})
//
// A function may return a single value, or a value followed by an error.
package inject
