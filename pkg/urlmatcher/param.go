package urlmatcher

import (
	"reflect"

	"github.com/dmitrymomot/i18nurl/pkg/paramtype"
)

// Location tells where a parameter lives in a URL.
type Location uint8

const (
	LocationPath Location = iota
	LocationSearch
)

func (l Location) String() string {
	if l == LocationSearch {
		return "search"
	}
	return "path"
}

// ParamConfig configures a single parameter.
type ParamConfig struct {
	// Value is the default. A function value is deferred and resolved through
	// the registry's Resolver on use.
	Value any
}

// Param describes a declared parameter.
type Param struct {
	Type     *paramtype.Type
	resolve  func(fn any) (any, error)
	Config   ParamConfig
	Name     string
	Location Location
	catchAll bool
}

// Optional reports whether the parameter may be omitted.
func (p *Param) Optional() bool {
	return p.Location == LocationSearch || p.Config.Value != nil
}

// DefaultValue returns the default, invoking it when it is deferred.
func (p *Param) DefaultValue() (any, error) {
	v := p.Config.Value
	if v == nil || reflect.TypeOf(v).Kind() != reflect.Func {
		return v, nil
	}
	if p.resolve == nil {
		return nil, paramtype.ErrResolverRequired
	}
	return p.resolve(v)
}

// Validates reports whether v is acceptable for the parameter.
func (p *Param) Validates(v any) bool {
	if v == nil {
		return p.Optional()
	}
	return p.Type.Validates(v)
}
