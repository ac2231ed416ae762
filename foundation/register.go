package foundation

import (
	"go.uber.org/multierr"

	"github.com/wippyai/cocoa-bridge/objc"
)

// Register binds the Foundation wrappers and the string coercion on b.
// It is safe to call more than once.
func Register(b *objc.Bridge) error {
	var err error
	err = multierr.Append(err, define(b, ClassString, WrapString))
	err = multierr.Append(err, define(b, ClassEnumerator, WrapEnumerator))
	err = multierr.Append(err, define(b, ClassDictionary, WrapDictionary))
	err = multierr.Append(err, define(b, ClassURL, WrapURL))
	if err != nil {
		return err
	}

	objc.Coerce(b, newStringHandle)
	return nil
}

func define[T objc.Wrapper](b *objc.Bridge, className string, ctor func(*objc.Bridge, objc.Handle) T) error {
	_, err := objc.Define(b, className, ctor)
	return err
}
