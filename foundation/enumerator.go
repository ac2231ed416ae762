package foundation

import (
	"iter"

	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassEnumerator is the runtime class bound to Enumerator.
const ClassEnumerator = "NSEnumerator"

// Enumerator wraps an NSEnumerator. It is single-pass: once nextObject
// returns nil the enumerator stays exhausted.
type Enumerator struct {
	*objc.Object
	done bool
}

// WrapEnumerator wraps an existing NSEnumerator handle.
func WrapEnumerator(b *objc.Bridge, h objc.Handle) *Enumerator {
	return &Enumerator{Object: objc.NewObject(b, b.Class(ClassEnumerator), h)}
}

// Next returns the next classified object, or false once exhausted.
func (e *Enumerator) Next() (objc.Wrapper, bool, error) {
	if e.done || !e.Valid() {
		return nil, false, nil
	}
	obj, err := e.Send(objc.Sel("nextObject"))
	if err != nil {
		e.done = true
		return nil, false, err
	}
	if obj == nil {
		e.done = true
		return nil, false, nil
	}
	return obj, true, nil
}

// All yields the remaining objects. An error ends the sequence early and is
// logged.
func (e *Enumerator) All() iter.Seq[objc.Wrapper] {
	return func(yield func(objc.Wrapper) bool) {
		for {
			obj, ok, err := e.Next()
			if err != nil {
				Logger().Warn("enumeration stopped", zap.Error(err))
				return
			}
			if !ok || !yield(obj) {
				return
			}
		}
	}
}

// Collect drains the enumerator into a slice.
func (e *Enumerator) Collect() ([]objc.Wrapper, error) {
	var out []objc.Wrapper
	for {
		obj, ok, err := e.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, obj)
	}
}
