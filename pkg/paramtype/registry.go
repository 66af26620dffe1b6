package paramtype

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Resolver invokes deferred definitions. fn is a function whose arguments
// are supplied by the resolver.
type Resolver interface {
	Invoke(fn any) (any, error)
}

type state uint8

const (
	stateOpen state = iota
	stateFinalized
)

type entry struct {
	def  any
	name string
}

// Registry holds named parameter types.
// Definitions are queued until Attach finalizes the registry.
type Registry struct {
	resolver Resolver
	types    map[string]*Type
	queue    []entry
	gen      uint64
	mu       sync.RWMutex
	state    state
	flushing bool
}

// NewRegistry creates an open registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Type),
	}
}

// Register queues a type definition.
// After finalization the definition is resolved immediately.
func (r *Registry) Register(name string, def Type) error {
	return r.enqueue(name, def)
}

// RegisterFunc queues a deferred type definition. factory must be a function
// returning Type or *Type, optionally followed by an error. It is invoked through
// the attached Resolver when the queue is flushed.
func (r *Registry) RegisterFunc(name string, factory any) error {
	if factory == nil || reflect.TypeOf(factory).Kind() != reflect.Func {
		return fmt.Errorf("%w: %q: factory must be a function, got %T", ErrInvalidDefinition, name, factory)
	}
	return r.enqueue(name, factory)
}

func (r *Registry) enqueue(name string, def any) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	r.queue = append(r.queue, entry{name: name, def: def})
	finalized := r.state == stateFinalized
	r.mu.Unlock()

	if finalized {
		return r.flush()
	}
	return nil
}

// Attach records the resolver, finalizes the registry and resolves every queued
// definition in registration order. Builtin types are installed for names that
// no queued definition claims, so deferred definitions can look them up.
// Attaching again re-runs the flush, which is a no-op once the queue is empty.
// A nil resolver keeps the previously attached one.
func (r *Registry) Attach(res Resolver) error {
	r.mu.Lock()
	if res != nil {
		r.resolver = res
	}
	r.state = stateFinalized
	r.installBuiltins(func(name string) bool {
		return slices.ContainsFunc(r.queue, func(e entry) bool { return e.name == name })
	})
	r.mu.Unlock()

	err := r.flush()

	r.mu.Lock()
	r.installBuiltins(func(string) bool { return false })
	r.mu.Unlock()
	return err
}

// installBuiltins adds builtin types whose names are free and not claimed.
// Must be called with the lock held.
func (r *Registry) installBuiltins(claimed func(name string) bool) {
	for _, name := range builtinNames {
		if _, exists := r.types[name]; exists || claimed(name) {
			continue
		}
		def, _ := builtinDef(name)
		r.types[name] = New(name, def)
		r.gen++
	}
}

// flush resolves queued entries in order. The resolver runs without the lock
// held, so deferred definitions may call back into the registry. Definitions
// registered while a flush is running are drained by that flush.
// A failing entry is dropped; entries after it stay queued.
func (r *Registry) flush() error {
	r.mu.Lock()
	if r.flushing {
		r.mu.Unlock()
		return nil
	}
	r.flushing = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.flushing = false
		r.mu.Unlock()
	}()

	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.mu.Unlock()
			return nil
		}
		e := r.queue[0]
		r.queue = r.queue[1:]
		_, exists := r.types[e.name]
		res := r.resolver
		r.mu.Unlock()

		if exists {
			return fmt.Errorf("%w: %q has already been defined", ErrDuplicateType, e.name)
		}

		t, err := resolve(e, res)
		if err != nil {
			return fmt.Errorf("resolving type %q: %w", e.name, err)
		}

		r.mu.Lock()
		if _, exists := r.types[e.name]; exists {
			r.mu.Unlock()
			return fmt.Errorf("%w: %q has already been defined", ErrDuplicateType, e.name)
		}
		r.types[e.name] = t
		r.gen++
		r.mu.Unlock()
	}
}

func resolve(e entry, res Resolver) (*Type, error) {
	if def, ok := e.def.(Type); ok {
		return New(e.name, def), nil
	}

	if res == nil {
		return nil, ErrResolverRequired
	}

	out, err := res.Invoke(e.def)
	if err != nil {
		return nil, err
	}

	switch def := out.(type) {
	case Type:
		return New(e.name, def), nil
	case *Type:
		if def != nil {
			return New(e.name, *def), nil
		}
	}
	return nil, fmt.Errorf("%w: factory returned %T", ErrInvalidDefinition, out)
}

// Lookup returns the resolved type registered under name.
// Nothing is resolved before the registry is finalized.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state != stateFinalized {
		return nil, false
	}
	t, ok := r.types[name]
	return t, ok
}

// Resolve invokes fn through the attached resolver.
func (r *Registry) Resolve(fn any) (any, error) {
	r.mu.RLock()
	res := r.resolver
	r.mu.RUnlock()

	if res == nil {
		return nil, ErrResolverRequired
	}
	return res.Invoke(fn)
}

// Generation changes whenever a type is added to the registry.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Finalized reports whether Attach has been called.
func (r *Registry) Finalized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state == stateFinalized
}

// Pending returns the number of queued, unresolved definitions.
func (r *Registry) Pending() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queue)
}

// Names returns the resolved type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
