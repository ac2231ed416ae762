package objctest

import (
	"fmt"

	"github.com/wippyai/cocoa-bridge/objc"
)

// Method implements one selector. args are already type-checked against
// the declared slot kinds.
type Method func(rt *Runtime, self objc.Handle, args []any) any

// Class is a fake Objective-C class.
type Class struct {
	Super        *Class
	methods      map[string]Method
	classMethods map[string]Method
	Name         string
	handle       objc.Handle
}

// Handle returns the class object handle.
func (c *Class) Handle() objc.Handle {
	return c.handle
}

// Method adds or replaces an instance method.
func (c *Class) Method(sel string, fn Method) *Class {
	c.methods[sel] = fn
	return c
}

// ClassMethod adds or replaces a class method.
func (c *Class) ClassMethod(sel string, fn Method) *Class {
	c.classMethods[sel] = fn
	return c
}

// lookup resolves sel the way the runtime does: class methods walk the
// metaclass chain and end at the root class's instance methods.
func (c *Class) lookup(sel string, onClass bool) Method {
	var root *Class
	for k := c; k != nil; k = k.Super {
		table := k.methods
		if onClass {
			table = k.classMethods
		}
		if fn, ok := table[sel]; ok {
			return fn
		}
		root = k
	}
	if onClass && root != nil {
		return root.methods[sel]
	}
	return nil
}

// DefineClass creates a class named name inheriting from super, which must
// already exist. An existing class of the same name is shadowed: GetClass
// returns the new handle from then on.
func (rt *Runtime) DefineClass(name, super string) *Class {
	var parent *Class
	if super != "" {
		rt.mu.Lock()
		parent = rt.classes[super]
		rt.mu.Unlock()
		if parent == nil {
			panic(fmt.Sprintf("objctest: superclass %q of %q not defined", super, name))
		}
	}

	cls := &Class{
		Name:         name,
		Super:        parent,
		methods:      make(map[string]Method),
		classMethods: make(map[string]Method),
	}
	cls.handle = rt.heap.alloc(&record{class: cls, isClass: true})

	rt.mu.Lock()
	rt.classes[name] = cls
	rt.mu.Unlock()
	return cls
}

// RedefineClass replaces the class object for name with a fresh one that
// has the same superclass and methods, as happens when a class is reloaded.
func (rt *Runtime) RedefineClass(name string) *Class {
	rt.mu.Lock()
	old := rt.classes[name]
	rt.mu.Unlock()
	if old == nil {
		panic(fmt.Sprintf("objctest: class %q not defined", name))
	}

	super := ""
	if old.Super != nil {
		super = old.Super.Name
	}
	cls := rt.DefineClass(name, super)
	for sel, fn := range old.methods {
		cls.methods[sel] = fn
	}
	for sel, fn := range old.classMethods {
		cls.classMethods[sel] = fn
	}
	return cls
}

// Class returns the current class named name.
func (rt *Runtime) Class(name string) *Class {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.classes[name]
}

// NewInstance allocates an instance of className holding value, with a
// retain count of one owned by the caller.
func (rt *Runtime) NewInstance(className string, value any) objc.Handle {
	cls := rt.Class(className)
	if cls == nil {
		panic(fmt.Sprintf("objctest: class %q not defined", className))
	}
	return rt.instantiate(cls, value)
}

func (rt *Runtime) instantiate(cls *Class, value any) objc.Handle {
	h := rt.heap.alloc(&record{class: cls, value: value, refs: 1})
	rt.notify(Event{Type: EventAllocated, Handle: h, Class: cls.Name})
	return h
}

// Value returns the payload of an instance.
func (rt *Runtime) Value(h objc.Handle) (any, bool) {
	r, ok := rt.heap.get(h)
	if !ok || !r.isInstance() {
		return nil, false
	}
	return r.value, true
}

func (rt *Runtime) setValue(h objc.Handle, v any) {
	if r, ok := rt.heap.get(h); ok {
		r.value = v
	}
}

func (rt *Runtime) retain(h objc.Handle) {
	if r, ok := rt.heap.get(h); ok && r.isInstance() {
		r.refs++
	}
}

func (rt *Runtime) release(h objc.Handle) {
	r, ok := rt.heap.get(h)
	if !ok || !r.isInstance() {
		return
	}
	r.refs--
	if r.refs > 0 {
		return
	}
	if fn := r.class.lookup("dealloc", false); fn != nil {
		fn(rt, h, nil)
	}
	rt.heap.free(h)
	rt.notify(Event{Type: EventDeallocated, Handle: h, Class: r.class.Name})
}

func (rt *Runtime) autorelease(h objc.Handle) objc.Handle {
	r, ok := rt.heap.get(h)
	if !ok || !r.isInstance() {
		return h
	}

	rt.mu.Lock()
	if len(rt.pools) == 0 {
		rt.leaked++
		rt.mu.Unlock()
		return h
	}
	top := rt.pools[len(rt.pools)-1]
	rt.mu.Unlock()

	if pr, ok := rt.heap.get(top); ok {
		ps := pr.value.(*poolState)
		ps.objects = append(ps.objects, h)
	}
	rt.notify(Event{Type: EventAutoreleased, Handle: h, Class: r.class.Name})
	return h
}

// newAutoreleased is +[Class new...] style construction: the caller does
// not own the result.
func (rt *Runtime) newAutoreleased(className string, value any) objc.Handle {
	return rt.autorelease(rt.NewInstance(className, value))
}

func (rt *Runtime) defineRoot() {
	rt.DefineClass("NSObject", "").
		ClassMethod("alloc", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			return rt.instantiate(r.class, nil)
		}).
		ClassMethod("new", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			h := rt.instantiate(r.class, nil)
			if fn := r.class.lookup("init", false); fn != nil {
				return fn(rt, h, nil)
			}
			return h
		}).
		ClassMethod("description", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			return rt.newAutoreleased("NSString", r.class.Name)
		}).
		Method("init", func(_ *Runtime, self objc.Handle, _ []any) any {
			return self
		}).
		Method("class", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			return r.class.handle
		}).
		Method("superclass", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			if r.class.Super == nil {
				return objc.Handle(0)
			}
			return r.class.Super.handle
		}).
		Method("retain", func(rt *Runtime, self objc.Handle, _ []any) any {
			rt.retain(self)
			return self
		}).
		Method("release", func(rt *Runtime, self objc.Handle, _ []any) any {
			rt.release(self)
			return nil
		}).
		Method("autorelease", func(rt *Runtime, self objc.Handle, _ []any) any {
			return rt.autorelease(self)
		}).
		Method("retainCount", func(rt *Runtime, self objc.Handle, _ []any) any {
			return uint64(rt.RetainCount(self))
		}).
		Method("description", func(rt *Runtime, self objc.Handle, _ []any) any {
			r, _ := rt.heap.get(self)
			return rt.newAutoreleased("NSString", fmt.Sprintf("<%s: %s>", r.class.Name, self))
		})
}
