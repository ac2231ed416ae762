//go:build !darwin && !linux

package cocoabridge

import (
	"runtime"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Open is unsupported on this platform; use NewSession with an in-memory
// runtime instead.
func Open(cfg Config) (*Session, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "native runtime on "+runtime.GOOS)
}
