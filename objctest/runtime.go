package objctest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// Call is one recorded objc_msgSend.
type Call struct {
	Args     []any
	Types    objc.CallTypes
	Selector string
	Receiver objc.Handle
}

// Counters tallies calls per foreign entry point.
type Counters struct {
	GetClass     int
	RegisterName int
	ClassName    int
	MsgSend      int
	Log          int
}

// Runtime is an in-memory Objective-C runtime. It implements objc.Runtime
// with real retain counts, autorelease pools and class inheritance, and
// ships the Foundation and AppKit classes the bridge wraps.
//
// Sending a message to a deallocated object or an unknown selector panics,
// as the real runtime would crash.
type Runtime struct {
	heap       *heap
	classes    map[string]*Class
	selectors  map[string]objc.Handle
	singletons map[string]objc.Handle
	installed  map[string]bool
	env        [][2]string
	pools      []objc.Handle
	calls      []Call
	logs       []string
	launched   []string
	opened     []string
	observers  []Observer
	counters   Counters
	leaked     int
	mu         sync.Mutex
}

var _ objc.Runtime = (*Runtime)(nil)

// New returns a runtime with NSObject and the fake Foundation and AppKit
// classes defined.
func New() *Runtime {
	rt := &Runtime{
		heap:       newHeap(),
		classes:    make(map[string]*Class),
		selectors:  make(map[string]objc.Handle),
		singletons: make(map[string]objc.Handle),
	}
	rt.defineRoot()
	rt.defineFoundation()
	rt.defineAppKit()
	return rt
}

// GetClass implements objc.Runtime.
func (rt *Runtime) GetClass(name string) objc.Handle {
	rt.count(func(c *Counters) { c.GetClass++ })
	rt.mu.Lock()
	cls, ok := rt.classes[name]
	rt.mu.Unlock()
	if !ok {
		return 0
	}
	return cls.handle
}

// RegisterName implements objc.Runtime.
func (rt *Runtime) RegisterName(name string) objc.Handle {
	rt.count(func(c *Counters) { c.RegisterName++ })
	return rt.selector(name)
}

func (rt *Runtime) selector(name string) objc.Handle {
	rt.mu.Lock()
	h, ok := rt.selectors[name]
	rt.mu.Unlock()
	if ok {
		return h
	}
	h = rt.heap.alloc(&record{selector: name})
	rt.mu.Lock()
	rt.selectors[name] = h
	rt.mu.Unlock()
	return h
}

// ClassName implements objc.Runtime.
func (rt *Runtime) ClassName(obj objc.Handle) string {
	rt.count(func(c *Counters) { c.ClassName++ })
	if obj == 0 {
		return "nil"
	}
	r, ok := rt.heap.get(obj)
	if !ok || r.class == nil {
		return ""
	}
	return r.class.Name
}

// Log implements objc.Runtime. The format is recorded after %% unescaping.
func (rt *Runtime) Log(format objc.Handle) {
	rt.count(func(c *Counters) { c.Log++ })
	s, _ := rt.StringValue(format)
	rt.mu.Lock()
	rt.logs = append(rt.logs, strings.ReplaceAll(s, "%%", "%"))
	rt.mu.Unlock()
}

// MsgSend implements objc.Runtime.
func (rt *Runtime) MsgSend(types objc.CallTypes, receiver, sel objc.Handle, args ...any) (any, error) {
	rt.count(func(c *Counters) { c.MsgSend++ })

	sr, ok := rt.heap.get(sel)
	if !ok || sr.selector == "" {
		return nil, errors.InvalidInput(errors.PhaseDispatch, fmt.Sprintf("%s is not a selector", sel))
	}
	name := sr.selector

	if len(types.Args) != len(args) {
		return nil, errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
			Path(name).
			Detail("%d argument types for %d arguments", len(types.Args), len(args)).
			Build()
	}
	for i, k := range types.Args {
		if err := checkArg(k, args[i]); err != nil {
			err.Path = []string{name, fmt.Sprintf("arg%d", i)}
			return nil, err
		}
	}

	rt.mu.Lock()
	rt.calls = append(rt.calls, Call{
		Receiver: receiver,
		Selector: name,
		Args:     append([]any(nil), args...),
		Types:    types,
	})
	rt.mu.Unlock()

	r, ok := rt.heap.get(receiver)
	if !ok || r.class == nil {
		panic(fmt.Sprintf("objctest: -%s sent to deallocated or invalid object %s", name, receiver))
	}
	fn := r.class.lookup(name, r.isClass)
	if fn == nil {
		prefix := "-"
		if r.isClass {
			prefix = "+"
		}
		panic(fmt.Sprintf("objctest: unrecognized selector %s[%s %s]", prefix, r.class.Name, name))
	}

	return convertReturn(name, types.Return, fn(rt, receiver, args))
}

func (rt *Runtime) count(fn func(*Counters)) {
	rt.mu.Lock()
	fn(&rt.counters)
	rt.mu.Unlock()
}

func checkArg(k objc.Kind, v any) *errors.Error {
	ok := false
	switch k {
	case objc.Pointer:
		switch v.(type) {
		case objc.Handle, uintptr, nil:
			ok = true
		}
	case objc.CString:
		switch v.(type) {
		case objc.Text, string:
			ok = true
		}
	case objc.Buffer:
		_, ok = v.([]objc.Handle)
	case objc.Bool:
		_, ok = v.(bool)
	case objc.Int:
		_, ok = objc.AsInt(v)
	case objc.Uint:
		_, ok = objc.AsUint(v)
	case objc.Float:
		_, ok = v.(float32)
	case objc.Double:
		_, ok = v.(float64)
	}
	if ok {
		return nil
	}
	return errors.TypeMismatch(errors.PhaseDispatch, nil, fmt.Sprintf("%T", v), k.String())
}

func convertReturn(sel string, k objc.Kind, v any) (any, error) {
	var (
		out any
		ok  bool
	)
	switch k {
	case objc.Void:
		return nil, nil
	case objc.Pointer:
		if out, ok = objc.AsHandle(v); !ok {
			var n uint64
			n, ok = objc.AsUint(v)
			out = objc.Handle(n)
		}
	case objc.Bool:
		out, ok = objc.AsBool(v)
	case objc.Int:
		out, ok = objc.AsInt(v)
	case objc.Uint:
		out, ok = objc.AsUint(v)
	case objc.CString:
		out, ok = objc.AsString(v)
	case objc.Double:
		out, ok = v.(float64)
	case objc.Float:
		out, ok = v.(float32)
	}
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(sel).
			GoType(fmt.Sprintf("%T", v)).
			ObjCType(k.String()).
			Build()
	}
	return out, nil
}

// Calls returns a copy of every recorded message send.
func (rt *Runtime) Calls() []Call {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]Call(nil), rt.calls...)
}

// CallCount returns how many times sel was sent.
func (rt *Runtime) CallCount(sel string) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	n := 0
	for _, c := range rt.calls {
		if c.Selector == sel {
			n++
		}
	}
	return n
}

// Counters returns the per-entry-point call tallies.
func (rt *Runtime) Counters() Counters {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.counters
}

// ResetCalls clears recorded calls and counters.
func (rt *Runtime) ResetCalls() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.calls = nil
	rt.counters = Counters{}
}

// Logs returns the messages passed to NSLog.
func (rt *Runtime) Logs() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.logs...)
}

// Leaked returns how many objects were autoreleased with no pool in place.
func (rt *Runtime) Leaked() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.leaked
}

// LiveObjects returns the number of allocated instances.
func (rt *Runtime) LiveObjects() int {
	return rt.heap.live()
}

// Alive reports whether h is an allocated instance or class.
func (rt *Runtime) Alive(h objc.Handle) bool {
	r, ok := rt.heap.get(h)
	return ok && r.class != nil
}

// RetainCount returns the retain count of an instance, or 0.
func (rt *Runtime) RetainCount(h objc.Handle) int {
	r, ok := rt.heap.get(h)
	if !ok || !r.isInstance() {
		return 0
	}
	return r.refs
}

// PoolDepth returns the number of autorelease pools in place.
func (rt *Runtime) PoolDepth() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.pools)
}
