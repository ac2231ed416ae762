package loader

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		goos string
		lib  string
		want []string
	}{
		{
			name: "darwin defaults",
			goos: "darwin",
			lib:  "Foundation",
			want: []string{
				"/usr/lib/libFoundation.dylib",
				"/System/Library/Frameworks/Foundation.framework/Foundation",
			},
		},
		{
			name: "darwin search path first",
			cfg:  Config{SearchPaths: []string{"/opt/fw", ""}},
			goos: "darwin",
			lib:  "AppKit",
			want: []string{
				"/opt/fw/libAppKit.dylib",
				"/opt/fw/AppKit.framework/AppKit",
				"/usr/lib/libAppKit.dylib",
				"/System/Library/Frameworks/AppKit.framework/AppKit",
			},
		},
		{
			name: "linux",
			cfg:  Config{SearchPaths: []string{"/usr/lib/GNUstep"}},
			goos: "linux",
			lib:  "objc",
			want: []string{"/usr/lib/GNUstep/libobjc.so", "libobjc.so"},
		},
		{
			name: "rename override",
			cfg:  Config{Overrides: map[string]string{"Foundation": "gnustep-base"}},
			goos: "linux",
			lib:  "Foundation",
			want: []string{"libgnustep-base.so"},
		},
		{
			name: "path override",
			cfg:  Config{Overrides: map[string]string{"objc": "/usr/lib/libobjc.A.dylib"}},
			goos: "darwin",
			lib:  "objc",
			want: []string{"/usr/lib/libobjc.A.dylib"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.resolve(tt.goos, tt.lib)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type fakeDL struct {
	present map[string]uintptr
	tried   []string
	closed  []uintptr
}

func (f *fakeDL) dl() dl {
	return dl{
		open: func(path string) (uintptr, error) {
			f.tried = append(f.tried, path)
			if h, ok := f.present[path]; ok {
				return h, nil
			}
			return 0, stderrors.New(path + ": cannot open shared object file")
		},
		close: func(h uintptr) error {
			f.closed = append(f.closed, h)
			return nil
		},
	}
}

func TestLoadTakesFirstOpenableCandidate(t *testing.T) {
	f := &fakeDL{present: map[string]uintptr{
		"/usr/lib/libobjc.dylib": 0x100,
		"/System/Library/Frameworks/Foundation.framework/Foundation": 0x200,
		"/System/Library/Frameworks/AppKit.framework/AppKit":         0x300,
	}}

	libs, err := Config{}.load("darwin", f.dl(), ObjC, Foundation, AppKit)
	require.NoError(t, err)

	assert.Equal(t, []string{ObjC, Foundation, AppKit}, libs.Names())
	assert.Equal(t, []uintptr{0x100, 0x200, 0x300}, libs.Handles())
	assert.Equal(t, uintptr(0x200), libs.Handle(Foundation))
	assert.Equal(t, "/usr/lib/libobjc.dylib", libs.Path(ObjC))

	require.NoError(t, libs.Close())
	assert.Equal(t, []uintptr{0x300, 0x200, 0x100}, f.closed)
	assert.Zero(t, libs.Handle(ObjC))
	require.NoError(t, libs.Close())
}

func TestLoadReportsEveryMissingLibrary(t *testing.T) {
	f := &fakeDL{present: map[string]uintptr{"libobjc.so": 0x100}}

	libs, err := Config{}.load("linux", f.dl(), ObjC, Foundation, AppKit)
	require.Error(t, err)
	assert.Nil(t, libs)

	var missing *errors.MissingLibrariesError
	require.ErrorAs(t, err, &missing)
	require.Len(t, missing.Libraries, 2)
	assert.Equal(t, Foundation, missing.Libraries[0].Name)
	assert.Equal(t, []string{"libFoundation.so"}, missing.Libraries[0].Candidates)
	assert.Equal(t, AppKit, missing.Libraries[1].Name)
	assert.ErrorContains(t, missing.Libraries[1].Cause, "libAppKit.so")

	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound})
	assert.Contains(t, err.Error(), "missing 2 shared libraries")

	assert.Equal(t, []uintptr{0x100}, f.closed, "partially loaded libraries are closed")
}

func TestNilLibrariesClose(t *testing.T) {
	var libs *Libraries
	assert.NoError(t, libs.Close())
}
