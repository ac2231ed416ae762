package objc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Wrapper is a Go value that borrows a view of one runtime object.
type Wrapper interface {
	// ID returns the wrapped object handle.
	ID() Handle
	// ClassHandle returns the class the wrapper type is bound to, or 0 for
	// the generic wrapper.
	ClassHandle() Handle
	// Valid reports whether the wrapped handle is non-nil.
	Valid() bool
}

// Object is the generic wrapper and the base embedded by typed wrappers.
// It neither retains nor releases the object it wraps.
type Object struct {
	bridge *Bridge
	id     Handle
	class  Handle
}

// NewObject wraps id. When id is nil a fresh instance of class is obtained
// with +alloc; the caller still owes it an -init.
func NewObject(b *Bridge, class, id Handle) *Object {
	if id == 0 && class != 0 {
		ret, err := b.SendRaw(class, Sel("alloc"))
		if err != nil {
			Logger().Warn("alloc failed", zap.Stringer("class", class), zap.Error(err))
		}
		id, _ = AsHandle(ret)
	}
	return &Object{bridge: b, id: id, class: class}
}

func (o *Object) ID() Handle {
	if o == nil {
		return 0
	}
	return o.id
}

func (o *Object) ClassHandle() Handle {
	if o == nil {
		return 0
	}
	return o.class
}

func (o *Object) Valid() bool {
	return o != nil && o.id != 0
}

// Bridge returns the bridge the object was created by.
func (o *Object) Bridge() *Bridge {
	return o.bridge
}

// Send sends m to the wrapped object and classifies the result.
// An invalid object returns (nil, nil) without calling the runtime.
func (o *Object) Send(m *Message) (Wrapper, error) {
	if !o.Valid() {
		return nil, nil
	}
	return o.bridge.Send(o.id, m)
}

// SendRaw sends m to the wrapped object and returns the raw result.
func (o *Object) SendRaw(m *Message) (any, error) {
	if !o.Valid() {
		return nil, nil
	}
	return o.bridge.SendRaw(o.id, m)
}

// ClassName returns the runtime class name of the wrapped object.
func (o *Object) ClassName() string {
	if !o.Valid() {
		return ""
	}
	return o.bridge.rt.ClassName(o.id)
}

// Init sends -init and adopts the returned handle, which may differ from
// the allocated one.
func (o *Object) Init() error {
	ret, err := o.SendRaw(Sel("init"))
	if err != nil {
		return err
	}
	h, err := expectHandle("init", ret)
	if err != nil {
		return err
	}
	o.id = h
	return nil
}

func (o *Object) Retain() error {
	_, err := o.SendRaw(Sel("retain"))
	return err
}

func (o *Object) Release() error {
	_, err := o.SendRaw(Sel("release").Returns(Void))
	return err
}

func (o *Object) Autorelease() error {
	_, err := o.SendRaw(Sel("autorelease"))
	return err
}

// textual is implemented by wrappers that decode to Go text.
type textual interface {
	Text() (string, error)
}

// Description returns -description decoded to Go text.
func (o *Object) Description() (string, error) {
	d, err := o.Send(Sel("description"))
	if err != nil || d == nil {
		return "", err
	}
	if t, ok := d.(textual); ok {
		return t.Text()
	}
	return "", errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path("description").
		GoType(typeName(d)).
		ObjCType("NSString").
		Build()
}

// String returns the object's description, or a placeholder when it cannot
// be read.
func (o *Object) String() string {
	if !o.Valid() {
		return "<nil>"
	}
	s, err := o.Description()
	if err != nil || s == "" {
		return fmt.Sprintf("<%s %s>", o.ClassName(), o.id)
	}
	return s
}
