package foundation

import (
	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassURL is the runtime class bound to URL.
const ClassURL = "NSURL"

// URL wraps an NSURL.
type URL struct {
	*objc.Object
}

// WrapURL wraps an existing NSURL handle.
func WrapURL(b *objc.Bridge, h objc.Handle) *URL {
	return &URL{Object: objc.NewObject(b, b.Class(ClassURL), h)}
}

// URLFromPath creates a file URL from a host path. Relative paths are
// resolved against the process working directory by the runtime.
func URLFromPath(b *objc.Bridge, path string) (*URL, error) {
	ret, err := b.SendRaw(b.Class(ClassURL), objc.Msg("fileURLWithPath:", path))
	if err != nil {
		return nil, err
	}
	h, _ := objc.AsHandle(ret)
	if h == 0 {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "fileURLWithPath: returned nil for "+path)
	}
	return WrapURL(b, h), nil
}

// Path returns the file-system path of a file URL.
func (u *URL) Path() (string, error) {
	return u.text("path")
}

// AbsoluteString returns the URL in string form.
func (u *URL) AbsoluteString() (string, error) {
	return u.text("absoluteString")
}

func (u *URL) text(sel string) (string, error) {
	w, err := u.Send(objc.Sel(sel))
	if err != nil || w == nil {
		return "", err
	}
	return textOf(w, sel)
}
