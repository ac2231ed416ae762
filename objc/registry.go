package objc

import (
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
)

// GenericPrefix marks wrapper types that share behavior across classes
// rather than binding one. Define skips them unless a class name is given.
const GenericPrefix = "Object"

// Constructor builds a wrapper around an existing, non-nil object handle.
type Constructor func(b *Bridge, h Handle) Wrapper

type binding struct {
	goType reflect.Type
	ctor   Constructor
}

// Define binds the wrapper type T to an Objective-C class. When className
// is empty it is derived from T's type name; derived names starting with
// GenericPrefix are not registered and Define reports false.
//
//	objc.Define(b, "NSString", func(b *objc.Bridge, h objc.Handle) *String { ... })
func Define[T Wrapper](b *Bridge, className string, ctor func(*Bridge, Handle) T) (bool, error) {
	t := reflect.TypeFor[T]()
	if className == "" {
		className = baseTypeName(t)
		if className == "" || strings.HasPrefix(className, GenericPrefix) {
			return false, nil
		}
	}
	if ctor == nil {
		return false, errors.Registration(className, "nil constructor")
	}
	err := b.register(className, t, func(b *Bridge, h Handle) Wrapper { return ctor(b, h) })
	return err == nil, err
}

// Register binds className to ctor. Registration is append-only: binding a
// name twice fails unless both bindings come from Define with the same type.
func (b *Bridge) Register(className string, ctor Constructor) error {
	if ctor == nil {
		return errors.Registration(className, "nil constructor")
	}
	return b.register(className, nil, ctor)
}

func (b *Bridge) register(className string, t reflect.Type, ctor Constructor) error {
	if className == "" {
		return errors.Registration(className, "empty class name")
	}

	b.mu.Lock()
	if existing, ok := b.bindings[className]; ok {
		b.mu.Unlock()
		if t != nil && existing.goType == t {
			return nil
		}
		return errors.Registration(className, "class already bound")
	}
	b.bindings[className] = binding{goType: t, ctor: ctor}
	b.mu.Unlock()

	cls := b.Class(className)
	Logger().Debug("registered wrapper",
		zap.String("class", className),
		zap.Stringer("handle", cls))
	return nil
}

// Registered returns the bound class names in sorted order.
func (b *Bridge) Registered() []string {
	b.mu.RLock()
	names := make([]string, 0, len(b.bindings))
	for name := range b.bindings {
		names = append(names, name)
	}
	b.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (b *Bridge) lookup(className string) (Constructor, bool) {
	b.mu.RLock()
	bd, ok := b.bindings[className]
	b.mu.RUnlock()
	return bd.ctor, ok
}

// Classify wraps h in the wrapper registered for its class, or for the
// nearest registered superclass. Objects with no registered ancestor get a
// generic *Object. The nil handle classifies to nil.
func (b *Bridge) Classify(h Handle) Wrapper {
	if h == 0 {
		return nil
	}

	cur := h
	for cur != 0 {
		name := b.rt.ClassName(cur)
		if ctor, ok := b.lookup(name); ok {
			return ctor(b, h)
		}

		ret, err := b.SendRaw(cur, Sel("superclass"))
		if err != nil {
			Logger().Debug("superclass lookup failed", zap.String("class", name), zap.Error(err))
			break
		}
		if cur, err = expectHandle("superclass", ret); err != nil {
			break
		}
	}

	Logger().Debug("unclassified object", zap.Stringer("handle", h))
	return NewObject(b, 0, h)
}

func baseTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
