package inject

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/dig"
)

var errorType = reflect.TypeFor[error]()

// Container holds values keyed by type.
type Container struct {
	values map[reflect.Type]reflect.Value
	mu     sync.RWMutex
}

// New creates an empty container.
func New() *Container {
	return &Container{
		values: make(map[reflect.Type]reflect.Value),
	}
}

// Provide registers values under their dynamic types, replacing earlier values of the same type.
// Nil values are skipped.
func (c *Container) Provide(values ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range values {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		c.values[rv.Type()] = rv
	}
}

// ProvideAs registers v under the static type T, which is usually an interface.
func ProvideAs[T any](c *Container, v T) error {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.Interface && rv.IsNil() {
		return ErrNilValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[reflect.TypeFor[T]()] = rv
	return nil
}

// Has reports whether a value of type t has been provided.
func (c *Container) Has(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.values[t]
	return ok
}

// Invoke calls fn with every argument resolved by type and returns its first result.
// If fn declares a trailing error result, a non-nil error is returned as is.
// Each call resolves against a fresh dig graph built from the provided values,
// so fn may itself call Invoke.
func (c *Container) Invoke(fn any) (any, error) {
	if fn == nil {
		return nil, ErrNotFunc
	}

	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	if ft.IsVariadic() || !validResults(ft) {
		return nil, fmt.Errorf("%w: %s", ErrBadSignature, ft)
	}

	graph, err := c.graph()
	if err != nil {
		return nil, err
	}

	ins := make([]reflect.Type, ft.NumIn())
	for i := range ins {
		ins[i] = ft.In(i)
	}

	var out []reflect.Value
	call := reflect.MakeFunc(reflect.FuncOf(ins, nil, false), func(args []reflect.Value) []reflect.Value {
		out = fv.Call(args)
		return nil
	})
	if err := graph.Invoke(call.Interface()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnresolved, err)
	}

	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// graph builds a dig container with one constructor per provided value.
func (c *Container) graph() (*dig.Container, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := dig.New()
	for t, v := range c.values {
		ctor := reflect.MakeFunc(reflect.FuncOf(nil, []reflect.Type{t}, false), func([]reflect.Value) []reflect.Value {
			return []reflect.Value{v}
		})
		if err := d.Provide(ctor.Interface()); err != nil {
			return nil, fmt.Errorf("inject: providing %s: %w", t, err)
		}
	}
	return d, nil
}

func validResults(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 1:
		return ft.Out(0) != errorType
	case 2:
		return ft.Out(1) == errorType
	}
	return false
}
