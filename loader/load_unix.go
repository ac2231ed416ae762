//go:build darwin || linux

package loader

import (
	"runtime"

	"github.com/ebitengine/purego"
)

var system = dl{
	open: func(path string) (uintptr, error) {
		return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	},
	close: purego.Dlclose,
}

// Load opens objc, Foundation and AppKit.
func Load(cfg Config) (*Libraries, error) {
	return LoadNames(cfg, ObjC, Foundation, AppKit)
}

// LoadNames opens the named libraries only.
func LoadNames(cfg Config, names ...string) (*Libraries, error) {
	return cfg.load(runtime.GOOS, system, names...)
}
