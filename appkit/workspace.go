// Package appkit wraps NSWorkspace, the AppKit entry point for launching
// applications and opening URLs.
package appkit

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassWorkspace is the runtime class bound to Workspace.
const ClassWorkspace = "NSWorkspace"

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the appkit package's logger instance.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the appkit package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Workspace wraps an NSWorkspace.
type Workspace struct {
	*objc.Object
}

// WrapWorkspace wraps an existing NSWorkspace handle.
func WrapWorkspace(b *objc.Bridge, h objc.Handle) *Workspace {
	return &Workspace{Object: objc.NewObject(b, b.Class(ClassWorkspace), h)}
}

// Register binds Workspace on b.
func Register(b *objc.Bridge) error {
	_, err := objc.Define(b, ClassWorkspace, WrapWorkspace)
	return err
}

// SharedWorkspace returns +[NSWorkspace sharedWorkspace].
func SharedWorkspace(b *objc.Bridge) (*Workspace, error) {
	cls := b.Class(ClassWorkspace)
	if cls == 0 {
		return nil, errors.NotFound(errors.PhaseResolve, "class", ClassWorkspace)
	}
	ret, err := b.SendRaw(cls, objc.Sel("sharedWorkspace"))
	if err != nil {
		return nil, err
	}
	h, _ := objc.AsHandle(ret)
	if h == 0 {
		return nil, errors.NilPointer(errors.PhaseDecode, []string{"sharedWorkspace"}, ClassWorkspace)
	}
	return WrapWorkspace(b, h), nil
}

// LaunchApplication asks the workspace to launch the named application.
// The runtime's answer is logged, not returned: a missing application is
// simply not launched.
func (w *Workspace) LaunchApplication(name string) error {
	ret, err := w.SendRaw(objc.Msg("launchApplication:", name).Returns(objc.Bool))
	if err != nil {
		return err
	}
	if ok, _ := objc.AsBool(ret); !ok {
		Logger().Info("application not launched", zap.String("name", name))
	}
	return nil
}

// OpenURL asks the workspace to open u with its default handler and reports
// the runtime's answer.
func (w *Workspace) OpenURL(u *foundation.URL) (bool, error) {
	if !u.Valid() {
		return false, errors.NilPointer(errors.PhaseDispatch, []string{"openURL:"}, "*foundation.URL")
	}
	ret, err := w.SendRaw(objc.Msg("openURL:", u).Returns(objc.Bool))
	if err != nil {
		return false, err
	}
	ok, valid := objc.AsBool(ret)
	if !valid {
		return false, errors.TypeMismatch(errors.PhaseDecode, []string{"openURL:"}, fmt.Sprintf("%T", ret), "BOOL")
	}
	return ok, nil
}

// LaunchApplication launches name through the shared workspace.
func LaunchApplication(b *objc.Bridge, name string) error {
	ws, err := SharedWorkspace(b)
	if err != nil {
		return err
	}
	return ws.LaunchApplication(name)
}

// OpenPath opens a file-system path through the shared workspace.
func OpenPath(b *objc.Bridge, path string) (bool, error) {
	ws, err := SharedWorkspace(b)
	if err != nil {
		return false, err
	}
	u, err := foundation.URLFromPath(b, path)
	if err != nil {
		return false, err
	}
	return ws.OpenURL(u)
}
