package objctest

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"unicode/utf16"

	"github.com/wippyai/cocoa-bridge/objc"
)

type dictionary struct {
	keys   []objc.Handle
	values []objc.Handle
}

type enumerator struct {
	items []objc.Handle
	next  int
}

type poolState struct {
	objects []objc.Handle
}

// NewString allocates an NSString owned by the caller.
func (rt *Runtime) NewString(s string) objc.Handle {
	return rt.NewInstance("NSString", s)
}

// StringValue returns the text of an NSString instance.
func (rt *Runtime) StringValue(h objc.Handle) (string, bool) {
	v, ok := rt.Value(h)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NewDictionary allocates an NSDictionary owned by the caller. The
// dictionary retains its keys and values; enumeration follows argument
// order.
func (rt *Runtime) NewDictionary(keys, values []objc.Handle) objc.Handle {
	if len(keys) != len(values) {
		panic("objctest: dictionary keys and values differ in length")
	}
	for i := range keys {
		rt.retain(keys[i])
		rt.retain(values[i])
	}
	return rt.NewInstance("NSDictionary", &dictionary{
		keys:   append([]objc.Handle(nil), keys...),
		values: append([]objc.Handle(nil), values...),
	})
}

// NewStringDictionary allocates an NSDictionary of NSString pairs given as
// alternating keys and values.
func (rt *Runtime) NewStringDictionary(kv ...string) objc.Handle {
	if len(kv)%2 != 0 {
		panic("objctest: odd number of key/value strings")
	}
	var keys, values []objc.Handle
	for i := 0; i < len(kv); i += 2 {
		k, v := rt.NewString(kv[i]), rt.NewString(kv[i+1])
		keys = append(keys, k)
		values = append(values, v)
	}
	d := rt.NewDictionary(keys, values)
	for i := range keys {
		rt.release(keys[i])
		rt.release(values[i])
	}
	return d
}

// SetEnvironment sets what -[NSProcessInfo environment] reports. Keys are
// enumerated in sorted order.
func (rt *Runtime) SetEnvironment(env map[string]string) {
	pairs := make([][2]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	rt.mu.Lock()
	rt.env = pairs
	rt.mu.Unlock()
}

// SetInstalledApps limits which names -launchApplication: succeeds for.
// With no call every launch succeeds.
func (rt *Runtime) SetInstalledApps(names ...string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.installed = make(map[string]bool, len(names))
	for _, n := range names {
		rt.installed[n] = true
	}
}

// Launched returns the application names sent to -launchApplication:,
// including ones that were not installed.
func (rt *Runtime) Launched() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.launched...)
}

// Opened returns the URLs sent to -openURL:.
func (rt *Runtime) Opened() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.opened...)
}

func (rt *Runtime) stringArg(v any) string {
	h, _ := objc.AsHandle(v)
	s, _ := rt.StringValue(h)
	return s
}

func (rt *Runtime) singleton(className string, value func() any) objc.Handle {
	rt.mu.Lock()
	h, ok := rt.singletons[className]
	rt.mu.Unlock()
	if ok {
		return h
	}
	h = rt.NewInstance(className, value())
	rt.mu.Lock()
	rt.singletons[className] = h
	rt.mu.Unlock()
	return h
}

func (rt *Runtime) defineFoundation() {
	rt.DefineClass("NSString", "NSObject").
		ClassMethod("stringWithUTF8String:", func(rt *Runtime, _ objc.Handle, args []any) any {
			s, _ := objc.AsString(args[0])
			return rt.newAutoreleased("NSString", s)
		}).
		Method("UTF8String", func(rt *Runtime, self objc.Handle, _ []any) any {
			s, _ := rt.StringValue(self)
			return s
		}).
		Method("length", func(rt *Runtime, self objc.Handle, _ []any) any {
			s, _ := rt.StringValue(self)
			return uint64(len(utf16.Encode([]rune(s))))
		}).
		Method("description", func(_ *Runtime, self objc.Handle, _ []any) any {
			return self
		})
	rt.DefineClass("NSMutableString", "NSString")

	rt.DefineClass("NSDictionary", "NSObject").
		Method("count", func(rt *Runtime, self objc.Handle, _ []any) any {
			return uint64(len(rt.dict(self).keys))
		}).
		Method("getObjects:andKeys:", func(rt *Runtime, self objc.Handle, args []any) any {
			d := rt.dict(self)
			objs := args[0].([]objc.Handle)
			keys := args[1].([]objc.Handle)
			copy(objs, d.values)
			copy(keys, d.keys)
			return nil
		}).
		Method("keyEnumerator", func(rt *Runtime, self objc.Handle, _ []any) any {
			d := rt.dict(self)
			return rt.newAutoreleased("NSEnumerator", &enumerator{items: append([]objc.Handle(nil), d.keys...)})
		}).
		Method("objectEnumerator", func(rt *Runtime, self objc.Handle, _ []any) any {
			d := rt.dict(self)
			return rt.newAutoreleased("NSEnumerator", &enumerator{items: append([]objc.Handle(nil), d.values...)})
		}).
		Method("valueForKey:", func(rt *Runtime, self objc.Handle, args []any) any {
			return rt.dictLookup(self, rt.stringArg(args[0]))
		}).
		Method("objectForKey:", func(rt *Runtime, self objc.Handle, args []any) any {
			return rt.dictLookup(self, rt.stringArg(args[0]))
		}).
		Method("dealloc", func(rt *Runtime, self objc.Handle, _ []any) any {
			d := rt.dict(self)
			for i := range d.keys {
				rt.release(d.keys[i])
				rt.release(d.values[i])
			}
			return nil
		})
	rt.DefineClass("NSMutableDictionary", "NSDictionary")

	rt.DefineClass("NSEnumerator", "NSObject").
		Method("nextObject", func(rt *Runtime, self objc.Handle, _ []any) any {
			v, _ := rt.Value(self)
			e := v.(*enumerator)
			if e.next >= len(e.items) {
				return objc.Handle(0)
			}
			h := e.items[e.next]
			e.next++
			return h
		})

	rt.DefineClass("NSURL", "NSObject").
		ClassMethod("fileURLWithPath:", func(rt *Runtime, _ objc.Handle, args []any) any {
			p := rt.stringArg(args[0])
			if !filepath.IsAbs(p) {
				if abs, err := filepath.Abs(p); err == nil {
					p = abs
				}
			}
			u := &url.URL{Scheme: "file", Path: p}
			return rt.newAutoreleased("NSURL", u)
		}).
		Method("path", func(rt *Runtime, self objc.Handle, _ []any) any {
			v, _ := rt.Value(self)
			return rt.newAutoreleased("NSString", v.(*url.URL).Path)
		}).
		Method("absoluteString", func(rt *Runtime, self objc.Handle, _ []any) any {
			v, _ := rt.Value(self)
			return rt.newAutoreleased("NSString", v.(*url.URL).String())
		}).
		Method("description", func(rt *Runtime, self objc.Handle, _ []any) any {
			v, _ := rt.Value(self)
			return rt.newAutoreleased("NSString", v.(*url.URL).String())
		})

	rt.DefineClass("NSAutoreleasePool", "NSObject").
		Method("init", func(rt *Runtime, self objc.Handle, _ []any) any {
			rt.setValue(self, &poolState{})
			rt.mu.Lock()
			rt.pools = append(rt.pools, self)
			rt.mu.Unlock()
			return self
		}).
		Method("drain", func(rt *Runtime, self objc.Handle, _ []any) any {
			rt.drainPool(self)
			return nil
		}).
		Method("release", func(rt *Runtime, self objc.Handle, _ []any) any {
			rt.drainPool(self)
			return nil
		}).
		Method("autorelease", func(_ *Runtime, self objc.Handle, _ []any) any {
			panic(fmt.Sprintf("objctest: cannot autorelease an autorelease pool %s", self))
		})

	rt.DefineClass("NSProcessInfo", "NSObject").
		ClassMethod("processInfo", func(rt *Runtime, _ objc.Handle, _ []any) any {
			return rt.singleton("NSProcessInfo", func() any { return nil })
		}).
		Method("environment", func(rt *Runtime, _ objc.Handle, _ []any) any {
			rt.mu.Lock()
			env := append([][2]string(nil), rt.env...)
			rt.mu.Unlock()

			kv := make([]string, 0, 2*len(env))
			for _, p := range env {
				kv = append(kv, p[0], p[1])
			}
			return rt.autorelease(rt.NewStringDictionary(kv...))
		})
}

func (rt *Runtime) defineAppKit() {
	rt.DefineClass("NSWorkspace", "NSObject").
		ClassMethod("sharedWorkspace", func(rt *Runtime, _ objc.Handle, _ []any) any {
			return rt.singleton("NSWorkspace", func() any { return nil })
		}).
		Method("launchApplication:", func(rt *Runtime, _ objc.Handle, args []any) any {
			name := rt.stringArg(args[0])
			rt.mu.Lock()
			defer rt.mu.Unlock()
			rt.launched = append(rt.launched, name)
			return rt.installed == nil || rt.installed[name]
		}).
		Method("openURL:", func(rt *Runtime, _ objc.Handle, args []any) any {
			h, _ := objc.AsHandle(args[0])
			v, _ := rt.Value(h)
			u, ok := v.(*url.URL)
			if !ok {
				return false
			}
			rt.mu.Lock()
			rt.opened = append(rt.opened, u.String())
			rt.mu.Unlock()
			return true
		})
}

func (rt *Runtime) dict(h objc.Handle) *dictionary {
	v, _ := rt.Value(h)
	return v.(*dictionary)
}

func (rt *Runtime) dictLookup(h objc.Handle, key string) objc.Handle {
	d := rt.dict(h)
	for i, k := range d.keys {
		if s, _ := rt.StringValue(k); s == key {
			return d.values[i]
		}
	}
	return 0
}

// drainPool releases everything autoreleased into pool and into any pool
// pushed after it, then deallocates the pools themselves.
func (rt *Runtime) drainPool(pool objc.Handle) {
	rt.mu.Lock()
	idx := -1
	for i, p := range rt.pools {
		if p == pool {
			idx = i
			break
		}
	}
	if idx < 0 {
		rt.mu.Unlock()
		panic(fmt.Sprintf("objctest: pool %s is not in place", pool))
	}
	drained := append([]objc.Handle(nil), rt.pools[idx:]...)
	rt.pools = rt.pools[:idx]
	rt.mu.Unlock()

	for i := len(drained) - 1; i >= 0; i-- {
		p := drained[i]
		if pr, ok := rt.heap.get(p); ok {
			for _, obj := range pr.value.(*poolState).objects {
				rt.release(obj)
			}
		}
		rt.notify(Event{Type: EventPoolDrained, Handle: p, Class: "NSAutoreleasePool"})
		rt.release(p)
	}
}
