package engine

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

var (
	typeUintptr = reflect.TypeFor[uintptr]()
	typePointer = reflect.TypeFor[unsafe.Pointer]()
	typeString  = reflect.TypeFor[string]()
	typeBool    = reflect.TypeFor[bool]()
	typeInt64   = reflect.TypeFor[int64]()
	typeUint64  = reflect.TypeFor[uint64]()
	typeFloat32 = reflect.TypeFor[float32]()
	typeFloat64 = reflect.TypeFor[float64]()
)

// kindCodes are single-letter codes used in signature cache keys.
var kindCodes = [...]byte{
	objc.Pointer: 'p',
	objc.Void:    'v',
	objc.Bool:    'b',
	objc.Int:     'i',
	objc.Uint:    'u',
	objc.Float:   'f',
	objc.Double:  'd',
	objc.CString: 's',
	objc.Buffer:  'B',
}

// signatureKey renders types as "pp:v" style keys: receiver and selector
// are implicit.
func signatureKey(types objc.CallTypes) string {
	var b strings.Builder
	for _, k := range types.Args {
		b.WriteByte(code(k))
	}
	b.WriteByte(':')
	b.WriteByte(code(types.Return))
	return b.String()
}

func code(k objc.Kind) byte {
	if int(k) < len(kindCodes) {
		return kindCodes[k]
	}
	return '?'
}

// goType maps a slot kind to the Go type purego marshals it as.
func goType(k objc.Kind) (reflect.Type, error) {
	switch k {
	case objc.Pointer:
		return typeUintptr, nil
	case objc.Buffer:
		return typePointer, nil
	case objc.CString:
		return typeString, nil
	case objc.Bool:
		return typeBool, nil
	case objc.Int:
		return typeInt64, nil
	case objc.Uint:
		return typeUint64, nil
	case objc.Float:
		return typeFloat32, nil
	case objc.Double:
		return typeFloat64, nil
	}
	return nil, errors.Unsupported(errors.PhaseDispatch, fmt.Sprintf("%s argument slot", k))
}

// funcType builds the Go func type for objc_msgSend with types: two
// uintptr slots for receiver and selector, then the declared arguments.
func funcType(types objc.CallTypes) (reflect.Type, error) {
	in := make([]reflect.Type, 0, 2+len(types.Args))
	in = append(in, typeUintptr, typeUintptr)
	for _, k := range types.Args {
		t, err := goType(k)
		if err != nil {
			return nil, err
		}
		in = append(in, t)
	}

	var out []reflect.Type
	if types.Return != objc.Void {
		if types.Return == objc.Buffer {
			return nil, errors.Unsupported(errors.PhaseDispatch, "Buffer return")
		}
		t, err := goType(types.Return)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return reflect.FuncOf(in, out, false), nil
}

// marshal converts one argument into the reflect value for its slot.
// Buffers must stay reachable until the call returns; the caller keeps
// args alive.
func marshal(sel string, i int, k objc.Kind, v any) (reflect.Value, error) {
	mismatch := func() (reflect.Value, error) {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseDispatch,
			[]string{sel, fmt.Sprintf("arg%d", i)}, fmt.Sprintf("%T", v), k.String())
	}

	switch k {
	case objc.Pointer:
		h, ok := objc.AsHandle(v)
		if !ok {
			return mismatch()
		}
		return reflect.ValueOf(uintptr(h)), nil

	case objc.Buffer:
		buf, ok := v.([]objc.Handle)
		if !ok {
			return mismatch()
		}
		var p unsafe.Pointer
		if len(buf) > 0 {
			p = unsafe.Pointer(&buf[0])
		}
		return reflect.ValueOf(p), nil

	case objc.CString:
		s, ok := objc.AsString(v)
		if !ok {
			return mismatch()
		}
		if strings.IndexByte(s, 0) >= 0 {
			return reflect.Value{}, errors.InvalidData(errors.PhaseDispatch,
				[]string{sel, fmt.Sprintf("arg%d", i)}, "C string contains NUL")
		}
		return reflect.ValueOf(s), nil

	case objc.Bool:
		b, ok := objc.AsBool(v)
		if !ok {
			return mismatch()
		}
		return reflect.ValueOf(b), nil

	case objc.Int:
		n, ok := objc.AsInt(v)
		if !ok {
			return mismatch()
		}
		return reflect.ValueOf(n), nil

	case objc.Uint:
		n, ok := objc.AsUint(v)
		if !ok {
			return mismatch()
		}
		return reflect.ValueOf(n), nil

	case objc.Float:
		switch f := v.(type) {
		case float32:
			return reflect.ValueOf(f), nil
		case float64:
			return reflect.ValueOf(float32(f)), nil
		}
		return mismatch()

	case objc.Double:
		switch f := v.(type) {
		case float64:
			return reflect.ValueOf(f), nil
		case float32:
			return reflect.ValueOf(float64(f)), nil
		}
		return mismatch()
	}
	return mismatch()
}

// unmarshal converts the raw return into what objc.Runtime promises.
func unmarshal(k objc.Kind, out []reflect.Value) any {
	if k == objc.Void || len(out) == 0 {
		return nil
	}
	v := out[0].Interface()
	if k == objc.Pointer {
		return objc.Handle(v.(uintptr))
	}
	return v
}
