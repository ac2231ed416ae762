package objc

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/wippyai/cocoa-bridge/errors"
)

type coercion func(b *Bridge, v any) (Handle, error)

// Coerce registers fn as the conversion of Go values of type T into new
// runtime objects. Registered types are converted before every message
// send; foundation registers string -> NSString.
func Coerce[T any](b *Bridge, fn func(*Bridge, T) (Handle, error)) {
	t := reflect.TypeFor[T]()
	b.mu.Lock()
	b.coercions[t] = func(b *Bridge, v any) (Handle, error) {
		return fn(b, v.(T))
	}
	b.mu.Unlock()
}

// ToRuntime converts a Go value into what is passed to objc_msgSend.
// Values with a registered coercion become new runtime objects, wrappers
// become their handle, and everything else is returned unchanged.
func (b *Bridge) ToRuntime(v any) (any, error) {
	if v == nil {
		return v, nil
	}
	if w, ok := v.(Wrapper); ok {
		if isNilWrapper(w) {
			return Handle(0), nil
		}
		return w.ID(), nil
	}

	b.mu.RLock()
	c, ok := b.coercions[reflect.TypeOf(v)]
	b.mu.RUnlock()
	if !ok {
		return v, nil
	}
	return c(b, v)
}

// ToHost classifies h into a wrapper; nil for the nil handle.
func (b *Bridge) ToHost(h Handle) Wrapper {
	return b.Classify(h)
}

func isNilWrapper(w Wrapper) bool {
	rv := reflect.ValueOf(w)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// AsHandle normalizes a raw Pointer result.
func AsHandle(value any) (Handle, bool) {
	switch v := value.(type) {
	case Handle:
		return v, true
	case nil:
		return 0, true
	case uintptr:
		return Handle(v), true
	case unsafe.Pointer:
		return Handle(v), true
	case Wrapper:
		if isNilWrapper(v) {
			return 0, true
		}
		return v.ID(), true
	}
	return 0, false
}

// AsUint normalizes a raw NSUInteger result.
func AsUint(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uintptr:
		return uint64(v), true
	case Handle:
		return uint64(v), true
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v <= math.MaxUint64 && v == float64(uint64(v)) {
			return uint64(v), true
		}
	}
	return 0, false
}

// AsInt normalizes a raw NSInteger result.
func AsInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint32:
		return int64(v), true
	case uintptr:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v <= math.MaxInt64 && v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// AsBool normalizes a raw BOOL result. Integers are true when non-zero.
func AsBool(value any) (bool, bool) {
	if v, ok := value.(bool); ok {
		return v, true
	}
	if v, ok := AsInt(value); ok {
		return v != 0, true
	}
	if v, ok := AsUint(value); ok {
		return v != 0, true
	}
	return false, false
}

// AsString normalizes a raw CString result.
func AsString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case Text:
		return string(v), true
	case []byte:
		return string(v), true
	}
	return "", false
}

// expectHandle converts a raw result to a Handle or reports the mismatch.
func expectHandle(sel string, value any) (Handle, error) {
	h, ok := AsHandle(value)
	if !ok {
		return 0, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(sel).
			GoType(typeName(value)).
			ObjCType(Pointer.String()).
			Build()
	}
	return h, nil
}
