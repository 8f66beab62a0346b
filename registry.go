// FILE: lixenwraith/fini/registry.go
package fini

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Context is shared by every step of one resolution.
type Context struct {
	Section  string
	Option   string
	Original Triple
	Formats  map[string]string
}

// Function is one named conversion step.
type Function interface {
	Name() string
	Apply(value any, ctx *Context) (any, error)
}

type funcAdapter struct {
	name string
	fn   func(any, *Context) (any, error)
}

func (f funcAdapter) Name() string { return f.name }

func (f funcAdapter) Apply(value any, ctx *Context) (any, error) { return f.fn(value, ctx) }

// NewFunction wraps fn as a Function named name.
func NewFunction(name string, fn func(value any, ctx *Context) (any, error)) Function {
	return funcAdapter{name: name, fn: fn}
}

// Registry stores conversion functions keyed by lower-cased name.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Function)}
}

// DefaultRegistry returns a new registry holding the built-in functions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, fn := range builtins() {
		r.funcs[normalizeFuncName(fn.Name())] = fn
	}
	return r
}

func normalizeFuncName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register stores fn under its name guarding against duplicates.
func (r *Registry) Register(fn Function) error {
	if fn == nil {
		return fmt.Errorf("function is nil")
	}
	key := normalizeFuncName(fn.Name())
	if key == "" {
		return fmt.Errorf("function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[string]Function)
	}
	if _, exists := r.funcs[key]; exists {
		return fmt.Errorf("function %q already registered", fn.Name())
	}
	r.funcs[key] = fn
	return nil
}

// Unregister removes the function stored under name.
func (r *Registry) Unregister(name string) error {
	key := normalizeFuncName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[key]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	delete(r.funcs, key)
	return nil
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[normalizeFuncName(name)]
	return fn, ok
}

// Names returns registered function names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &Registry{funcs: make(map[string]Function, len(r.funcs))}
	for name, fn := range r.funcs {
		clone.funcs[name] = fn
	}
	return clone
}

// Chain resolves names to functions, failing on the first unknown name.
func (r *Registry) Chain(names []string) ([]Function, error) {
	chain := make([]Function, 0, len(names))
	for _, name := range names {
		fn, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
		}
		chain = append(chain, fn)
	}
	return chain, nil
}

// Apply runs the named chain over sel. Non-string argument values skip the
// chain entirely; an empty chain returns the raw value.
func (r *Registry) Apply(names []string, sel Selection, ctx *Context) (any, error) {
	if sel.Source == SourceArg {
		if _, isString := sel.Value.(string); !isString {
			return sel.Value, nil
		}
	}
	chain, err := r.Chain(names)
	if err != nil {
		return nil, err
	}
	value := sel.Value
	for _, fn := range chain {
		if value, err = fn.Apply(value, ctx); err != nil {
			return nil, err
		}
	}
	return value, nil
}
