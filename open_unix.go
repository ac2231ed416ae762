//go:build darwin || linux

package cocoabridge

import (
	"go.uber.org/multierr"

	"github.com/wippyai/cocoa-bridge/engine"
	"github.com/wippyai/cocoa-bridge/loader"
)

// Open loads the runtime libraries and returns a session over them.
func Open(cfg Config) (*Session, error) {
	libs, err := loader.Load(cfg.Libraries.Loader())
	if err != nil {
		return nil, err
	}
	native, err := engine.NewNative(libs)
	if err != nil {
		return nil, multierr.Append(err, libs.Close())
	}
	s, err := newSession(native, native)
	if err != nil {
		return nil, multierr.Append(err, native.Close())
	}
	return s, nil
}
