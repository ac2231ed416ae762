package objc

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Bridge owns the class and selector caches, the wrapper registry and the
// value coercions for one Runtime.
//
// The mutex keeps the maps consistent; it does not make message sends safe
// from multiple goroutines. Drive a Bridge from one goroutine.
type Bridge struct {
	rt        Runtime
	classes   map[string]Handle
	selectors map[string]Handle
	bindings  map[string]binding
	coercions map[reflect.Type]coercion
	mu        sync.RWMutex
}

// New creates a bridge over rt with empty caches and no registrations.
func New(rt Runtime) *Bridge {
	return &Bridge{
		rt:        rt,
		classes:   make(map[string]Handle),
		selectors: make(map[string]Handle),
		bindings:  make(map[string]binding),
		coercions: make(map[reflect.Type]coercion),
	}
}

// Runtime returns the underlying foreign runtime.
func (b *Bridge) Runtime() Runtime {
	return b.rt
}

// Class returns the cached class handle for name, looking it up on first use.
func (b *Bridge) Class(name string) Handle {
	return b.ResolveClass(name, false)
}

// Selector returns the cached selector handle for name, registering it on first use.
func (b *Bridge) Selector(name string) Handle {
	return b.ResolveSelector(name, false)
}

// ResolveClass looks up a class handle. Without force a cached handle is
// returned without calling into the runtime; with force the lookup is
// repeated and the cache entry replaced.
func (b *Bridge) ResolveClass(name string, force bool) Handle {
	return b.resolve(b.classes, name, force, b.rt.GetClass, "class")
}

// ResolveSelector is ResolveClass for selectors.
func (b *Bridge) ResolveSelector(name string, force bool) Handle {
	return b.resolve(b.selectors, name, force, b.rt.RegisterName, "selector")
}

func (b *Bridge) resolve(cache map[string]Handle, name string, force bool, lookup func(string) Handle, what string) Handle {
	if !force {
		b.mu.RLock()
		h, ok := cache[name]
		b.mu.RUnlock()
		if ok {
			return h
		}
	}

	h := lookup(name)

	b.mu.Lock()
	cache[name] = h
	b.mu.Unlock()

	Logger().Debug("resolved "+what,
		zap.String("name", name),
		zap.Uintptr("handle", uintptr(h)),
		zap.Bool("forced", force))
	return h
}
