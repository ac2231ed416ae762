//go:build darwin || linux

package engine

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/loader"
	"github.com/wippyai/cocoa-bridge/objc"
)

// Native implements objc.Runtime over the loaded system libraries.
type Native struct {
	libs         *loader.Libraries
	getClass     func(name string) uintptr
	registerName func(name string) uintptr
	className    func(obj uintptr) string
	nsLog        func(format uintptr)
	msgSend      uintptr
	sigs         map[string]reflect.Value
	mu           sync.Mutex
}

var _ objc.Runtime = (*Native)(nil)

// NewNative binds the runtime entry points from libs.
func NewNative(libs *loader.Libraries) (*Native, error) {
	n := &Native{
		libs: libs,
		sigs: make(map[string]reflect.Value),
	}

	bindings := []struct {
		fptr any
		name string
	}{
		{&n.getClass, "objc_getClass"},
		{&n.registerName, "sel_registerName"},
		{&n.className, "object_getClassName"},
		{&n.nsLog, "NSLog"},
	}
	for _, b := range bindings {
		addr, err := n.symbol(b.name)
		if err != nil {
			return nil, err
		}
		purego.RegisterFunc(b.fptr, addr)
	}

	addr, err := n.symbol("objc_msgSend")
	if err != nil {
		return nil, err
	}
	n.msgSend = addr

	Logger().Debug("native runtime bound", zap.Strings("libraries", libs.Names()))
	return n, nil
}

func (n *Native) symbol(name string) (uintptr, error) {
	var lastErr error
	for _, h := range n.libs.Handles() {
		addr, err := purego.Dlsym(h, name)
		if err == nil && addr != 0 {
			return addr, nil
		}
		lastErr = err
	}
	return 0, errors.Load("symbol "+name, lastErr)
}

func (n *Native) GetClass(name string) objc.Handle {
	return objc.Handle(n.getClass(name))
}

func (n *Native) RegisterName(name string) objc.Handle {
	return objc.Handle(n.registerName(name))
}

func (n *Native) ClassName(obj objc.Handle) string {
	return n.className(uintptr(obj))
}

func (n *Native) Log(format objc.Handle) {
	n.nsLog(uintptr(format))
}

// MsgSend calls objc_msgSend through a function value built for types.
// Function values are cached per signature.
func (n *Native) MsgSend(types objc.CallTypes, receiver, sel objc.Handle, args ...any) (any, error) {
	if len(types.Args) != len(args) {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "argument count differs from declared types")
	}

	fn, err := n.signature(types)
	if err != nil {
		return nil, err
	}

	in := make([]reflect.Value, 0, 2+len(args))
	in = append(in, reflect.ValueOf(uintptr(receiver)), reflect.ValueOf(uintptr(sel)))
	for i, k := range types.Args {
		v, err := marshal("objc_msgSend", i, k, args[i])
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}

	out := fn.Call(in)
	runtime.KeepAlive(args)
	return unmarshal(types.Return, out), nil
}

func (n *Native) signature(types objc.CallTypes) (reflect.Value, error) {
	key := signatureKey(types)

	n.mu.Lock()
	defer n.mu.Unlock()

	if fn, ok := n.sigs[key]; ok {
		return fn, nil
	}
	ft, err := funcType(types)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(ft)
	purego.RegisterFunc(ptr.Interface(), n.msgSend)
	fn := ptr.Elem()
	n.sigs[key] = fn

	Logger().Debug("objc_msgSend signature registered", zap.String("signature", key))
	return fn, nil
}

// Close releases the loaded libraries.
func (n *Native) Close() error {
	return n.libs.Close()
}
