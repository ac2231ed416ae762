package objc

import (
	"strings"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Message is an Objective-C message under construction: an ordered list of
// selector fragments, each optionally followed by one argument, plus
// optional explicit slot types.
//
//	objc.Sel("count")
//	objc.Msg("valueForKey:", "name")
//	objc.Msg("getObjects:", objs).And("andKeys:", keys).Types(...)
//
// Each builder method returns a new Message, so a base message can be
// extended in several ways and reused after it is sent.
type Message struct {
	fragments []string
	args      []any
	types     *CallTypes
	ret       *Kind
}

// Sel returns a message with no arguments.
func Sel(name string) *Message {
	return &Message{fragments: []string{name}}
}

// Msg returns a message whose first fragment takes arg.
func Msg(fragment string, arg any) *Message {
	return &Message{
		fragments: []string{fragment},
		args:      []any{arg},
	}
}

func (m *Message) clone() *Message {
	c := *m
	c.fragments = append([]string(nil), m.fragments...)
	c.args = append([]any(nil), m.args...)
	return &c
}

// And returns m extended with a fragment and its argument.
func (m *Message) And(fragment string, arg any) *Message {
	c := m.clone()
	c.fragments = append(c.fragments, fragment)
	c.args = append(c.args, arg)
	return c
}

// Types returns m with the default slot types overridden. Args must have
// one entry per argument.
func (m *Message) Types(t CallTypes) *Message {
	c := m.clone()
	c.types = &t
	return c
}

// Returns returns m with only the return type overridden.
func (m *Message) Returns(k Kind) *Message {
	c := m.clone()
	c.ret = &k
	return c
}

// Selector returns the concatenated selector name.
func (m *Message) Selector() string {
	if len(m.fragments) == 1 {
		return m.fragments[0]
	}
	return strings.Join(m.fragments, "")
}

// Args returns the message arguments in order.
func (m *Message) Args() []any {
	return m.args
}

// CallTypes resolves the slot types for this message: the explicit
// override if one was given, otherwise Pointer for every slot.
func (m *Message) CallTypes() (CallTypes, error) {
	var ct CallTypes
	if m.types != nil {
		if m.types.Args != nil && len(m.types.Args) != len(m.args) {
			return CallTypes{}, errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
				Path(m.Selector()).
				Detail("%d argument types declared for %d arguments", len(m.types.Args), len(m.args)).
				Build()
		}
		ct.Args = m.types.Args
		ct.Return = m.types.Return
	}
	if ct.Args == nil {
		ct.Args = make([]Kind, len(m.args))
	}
	if m.ret != nil {
		ct.Return = *m.ret
	}
	return ct, nil
}
