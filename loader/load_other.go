//go:build !darwin && !linux

package loader

import (
	"runtime"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Load is unsupported on this platform.
func Load(cfg Config) (*Libraries, error) {
	return LoadNames(cfg, ObjC, Foundation, AppKit)
}

// LoadNames is unsupported on this platform.
func LoadNames(cfg Config, names ...string) (*Libraries, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "dynamic loading on "+runtime.GOOS)
}
