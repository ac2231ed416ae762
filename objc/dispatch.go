package objc

import (
	"fmt"
	"strings"

	"github.com/wippyai/cocoa-bridge/errors"
)

// SendRaw sends m to receiver and returns the unclassified result: a
// Handle for Pointer returns, or the scalar matching the declared return
// kind. A nil receiver yields (nil, nil) without touching the runtime.
func (b *Bridge) SendRaw(receiver Handle, m *Message) (any, error) {
	if receiver == 0 {
		return nil, nil
	}

	types, err := m.CallTypes()
	if err != nil {
		return nil, err
	}

	args := make([]any, len(m.args))
	for i, a := range m.args {
		v, err := b.ToRuntime(a)
		if err != nil {
			return nil, errors.New(errors.PhaseCoerce, errors.KindInvalidData).
				Path(m.Selector()).
				Detail("argument %d", i).
				Cause(err).
				Build()
		}
		if types.Args[i] == CString {
			if s, ok := AsString(v); ok && strings.IndexByte(s, 0) >= 0 {
				return nil, errors.InvalidData(errors.PhaseDispatch,
					[]string{m.Selector(), fmt.Sprintf("arg%d", i)}, "C string contains NUL")
			}
		}
		args[i] = v
	}

	sel := b.Selector(m.Selector())
	ret, err := b.rt.MsgSend(types, receiver, sel, args...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDispatch, errors.KindInvalidInput, err, m.Selector())
	}
	return ret, nil
}

// Send sends m to receiver and classifies the returned object. A nil
// receiver or a nil result yields (nil, nil). Messages that return scalars
// must use SendRaw.
func (b *Bridge) Send(receiver Handle, m *Message) (Wrapper, error) {
	ret, err := b.SendRaw(receiver, m)
	if err != nil || ret == nil {
		return nil, err
	}

	h, ok := ret.(Handle)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(m.Selector()).
			GoType(typeName(ret)).
			Detail("scalar result cannot be classified, use SendRaw").
			Build()
	}
	return b.Classify(h), nil
}
