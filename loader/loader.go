package loader

import (
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
)

// Library names loaded by default, in load order.
const (
	ObjC       = "objc"
	Foundation = "Foundation"
	AppKit     = "AppKit"
)

// Config controls library resolution.
type Config struct {
	// SearchPaths are directories tried before the platform locations.
	SearchPaths []string `mapstructure:"search_paths"`

	// Overrides replace a library by name. A value containing a path
	// separator is used verbatim as the only candidate; any other value
	// renames the library for candidate generation.
	Overrides map[string]string `mapstructure:"overrides"`
}

// Libraries holds the open library handles.
type Libraries struct {
	handles map[string]uintptr
	paths   map[string]string
	order   []string
	close   func(uintptr) error
}

// Handle returns the dlopen handle of a loaded library, or 0.
func (l *Libraries) Handle(name string) uintptr {
	return l.handles[name]
}

// Path returns the candidate a library was opened from.
func (l *Libraries) Path(name string) string {
	return l.paths[name]
}

// Names returns the loaded library names in load order.
func (l *Libraries) Names() []string {
	return append([]string(nil), l.order...)
}

// Handles returns the open handles in load order.
func (l *Libraries) Handles() []uintptr {
	out := make([]uintptr, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.handles[name])
	}
	return out
}

// Close releases every handle in reverse load order.
func (l *Libraries) Close() error {
	if l == nil {
		return nil
	}
	var err error
	for i := len(l.order) - 1; i >= 0; i-- {
		name := l.order[i]
		if h := l.handles[name]; h != 0 && l.close != nil {
			err = multierr.Append(err, l.close(h))
		}
		delete(l.handles, name)
	}
	l.order = nil
	return err
}

// Resolve returns the dlopen candidates for name on the running platform.
func (c Config) Resolve(name string) []string {
	return c.resolve(runtime.GOOS, name)
}

func (c Config) resolve(goos, name string) []string {
	if o, ok := c.Overrides[name]; ok && o != "" {
		if strings.ContainsRune(o, '/') {
			return []string{o}
		}
		name = o
	}

	var out []string
	for _, dir := range c.SearchPaths {
		if dir == "" {
			continue
		}
		switch goos {
		case "darwin":
			out = append(out,
				filepath.Join(dir, "lib"+name+".dylib"),
				filepath.Join(dir, name+".framework", name))
		default:
			out = append(out, filepath.Join(dir, "lib"+name+".so"))
		}
	}

	switch goos {
	case "darwin":
		out = append(out,
			"/usr/lib/lib"+name+".dylib",
			"/System/Library/Frameworks/"+name+".framework/"+name)
	default:
		out = append(out, "lib"+name+".so")
	}
	return out
}

type dl struct {
	open  func(path string) (uintptr, error)
	close func(uintptr) error
}

func (c Config) load(goos string, d dl, names ...string) (*Libraries, error) {
	libs := &Libraries{
		handles: make(map[string]uintptr, len(names)),
		paths:   make(map[string]string, len(names)),
		close:   d.close,
	}

	var missing []errors.MissingLibrary
	for _, name := range names {
		candidates := c.resolve(goos, name)
		var lastErr error
		opened := false
		for _, path := range candidates {
			h, err := d.open(path)
			if err != nil {
				lastErr = err
				Logger().Debug("dlopen failed", zap.String("path", path), zap.Error(err))
				continue
			}
			libs.handles[name] = h
			libs.paths[name] = path
			libs.order = append(libs.order, name)
			opened = true
			Logger().Debug("library loaded", zap.String("name", name), zap.String("path", path))
			break
		}
		if !opened {
			missing = append(missing, errors.MissingLibrary{
				Name:       name,
				Candidates: candidates,
				Cause:      lastErr,
			})
		}
	}

	if len(missing) > 0 {
		if err := libs.Close(); err != nil {
			Logger().Warn("closing partially loaded libraries", zap.Error(err))
		}
		return nil, &errors.MissingLibrariesError{Libraries: missing}
	}
	return libs, nil
}
