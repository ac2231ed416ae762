package foundation

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassString is the runtime class bound to String.
const ClassString = "NSString"

var utf8StringTypes = objc.CallTypes{Args: []objc.Kind{objc.CString}}

// String wraps an NSString.
type String struct {
	*objc.Object
}

// WrapString wraps an existing NSString handle. A nil handle allocates an
// uninitialized instance.
func WrapString(b *objc.Bridge, h objc.Handle) *String {
	return &String{Object: objc.NewObject(b, b.Class(ClassString), h)}
}

// NewString creates an autoreleased NSString holding s. The text is passed
// as UTF-8; s must not contain NUL bytes.
func NewString(b *objc.Bridge, s string) (*String, error) {
	h, err := newStringHandle(b, s)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.NotFound(errors.PhaseCoerce, "class", ClassString)
	}
	return WrapString(b, h), nil
}

func newStringHandle(b *objc.Bridge, s string) (objc.Handle, error) {
	ret, err := b.SendRaw(b.Class(ClassString),
		objc.Msg("stringWithUTF8String:", objc.Text(s)).Types(utf8StringTypes))
	if err != nil {
		return 0, err
	}
	h, _ := objc.AsHandle(ret)
	return h, nil
}

// Text decodes the string's UTF-8 representation.
func (s *String) Text() (string, error) {
	ret, err := s.SendRaw(objc.Sel("UTF8String").Returns(objc.CString))
	if err != nil {
		return "", err
	}
	text, ok := objc.AsString(ret)
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseDecode, []string{"UTF8String"}, fmt.Sprintf("%T", ret), "CString")
	}
	if !utf8.ValidString(text) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, []string{"UTF8String"}, []byte(text))
	}
	return text, nil
}

// Len returns the length in UTF-16 code units.
func (s *String) Len() (int, error) {
	ret, err := s.SendRaw(objc.Sel("length").Returns(objc.Uint))
	if err != nil {
		return 0, err
	}
	n, _ := objc.AsUint(ret)
	return int(n), nil
}

// String returns the text, or "" when it cannot be decoded.
func (s *String) String() string {
	text, err := s.Text()
	if err != nil {
		Logger().Debug("undecodable NSString")
		return ""
	}
	return text
}
