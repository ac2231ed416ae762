package cocoabridge

import (
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/appkit"
	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/objc"
)

// Session is a bridge with the Foundation and AppKit wrappers registered
// and the root autorelease pool in place.
type Session struct {
	bridge *objc.Bridge
	root   *foundation.AutoreleasePool
	closer io.Closer
	logger *zap.Logger
}

// NewSession sets up a session over rt. It does not take ownership of rt.
func NewSession(rt objc.Runtime) (*Session, error) {
	return newSession(rt, nil)
}

func newSession(rt objc.Runtime, closer io.Closer) (*Session, error) {
	b := objc.New(rt)
	if err := multierr.Combine(foundation.Register(b), appkit.Register(b)); err != nil {
		return nil, err
	}
	root, err := foundation.NewRootPool(b)
	if err != nil {
		return nil, err
	}
	return &Session{
		bridge: b,
		root:   root,
		closer: closer,
		logger: objc.Logger(),
	}, nil
}

// Bridge returns the session's bridge.
func (s *Session) Bridge() *objc.Bridge {
	return s.bridge
}

// RootPool returns the process root pool. It is never drained.
func (s *Session) RootPool() *foundation.AutoreleasePool {
	return s.root
}

// Launch launches an application by name. A missing application is not
// an error.
func (s *Session) Launch(name string) error {
	return foundation.WithAutoreleasePool(s.bridge, func() error {
		return appkit.LaunchApplication(s.bridge, name)
	})
}

// Open opens path with its default application.
func (s *Session) Open(path string) (bool, error) {
	var ok bool
	err := foundation.WithAutoreleasePool(s.bridge, func() error {
		var err error
		ok, err = appkit.OpenPath(s.bridge, path)
		return err
	})
	return ok, err
}

// FileURL returns the file URL for path as the runtime formats it.
func (s *Session) FileURL(path string) (string, error) {
	var out string
	err := foundation.WithAutoreleasePool(s.bridge, func() error {
		u, err := foundation.URLFromPath(s.bridge, path)
		if err != nil {
			return err
		}
		out, err = u.AbsoluteString()
		return err
	})
	return out, err
}

// Environment returns the process environment as seen by the runtime.
func (s *Session) Environment() (map[string]string, error) {
	var env map[string]string
	err := foundation.WithAutoreleasePool(s.bridge, func() error {
		d, err := foundation.Environment(s.bridge)
		if err != nil {
			return err
		}
		env, err = d.Strings()
		return err
	})
	return env, err
}

// Log writes through NSLog; see objc.Bridge.Log.
func (s *Session) Log(format string, args ...any) error {
	return foundation.WithAutoreleasePool(s.bridge, func() error {
		return s.bridge.Log(format, args...)
	})
}

// Close releases the native libraries, if the session owns them. The root
// pool is left in place.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		s.logger.Warn("closing session", zap.Error(err))
	}
	return err
}
