package cocoabridge

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/loader"
	"github.com/wippyai/cocoa-bridge/objctest"
)

func newTestSession(t *testing.T) (*objctest.Runtime, *Session) {
	t.Helper()
	rt := objctest.New()
	s, err := NewSession(rt)
	require.NoError(t, err)
	return rt, s
}

func TestNewSessionRegistersWrappers(t *testing.T) {
	rt, s := newTestSession(t)

	assert.Equal(t, []string{"NSDictionary", "NSEnumerator", "NSString", "NSURL", "NSWorkspace"}, s.Bridge().Registered())
	assert.True(t, s.RootPool().Root())
	assert.Equal(t, foundation.PoolAllocated, s.RootPool().State())
	assert.Equal(t, 1, rt.PoolDepth())
}

func TestSessionLaunch(t *testing.T) {
	rt, s := newTestSession(t)
	rt.SetInstalledApps("Safari")

	require.NoError(t, s.Launch("Safari"))
	require.NoError(t, s.Launch("Missing"))
	assert.Equal(t, []string{"Safari", "Missing"}, rt.Launched())
	assert.Equal(t, 1, rt.PoolDepth(), "scoped pools are drained")
}

func TestSessionFileURLAndOpen(t *testing.T) {
	rt, s := newTestSession(t)

	u, err := s.FileURL("/tmp/a b.txt")
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/a%20b.txt", u)

	ok, err := s.Open("/tmp/a b.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"file:///tmp/a%20b.txt"}, rt.Opened())
}

func TestSessionEnvironment(t *testing.T) {
	rt, s := newTestSession(t)
	rt.SetEnvironment(map[string]string{"LANG": "en_US.UTF-8"})
	live := rt.LiveObjects()

	env, err := s.Environment()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LANG": "en_US.UTF-8"}, env)
	assert.LessOrEqual(t, rt.LiveObjects(), live+1, "only the process info singleton may remain")
}

func TestSessionLog(t *testing.T) {
	rt, s := newTestSession(t)
	require.NoError(t, s.Log("launched %@", "Safari"))
	assert.Equal(t, []string{"launched Safari"}, rt.Logs())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestSessionClose(t *testing.T) {
	rt := objctest.New()
	calls := 0
	s, err := newSession(rt, closerFunc(func() error {
		calls++
		return stderrors.New("busy")
	}))
	require.NoError(t, err)

	require.Error(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, calls)

	var nilSession *Session
	assert.NoError(t, nilSession.Close())
}

func TestLibrariesConfigLoader(t *testing.T) {
	cfg := LibrariesConfig{
		SearchPaths: []string{"/opt/lib"},
		Foundation:  "gnustep-base",
	}
	lc := cfg.Loader()
	assert.Equal(t, []string{"/opt/lib"}, lc.SearchPaths)
	assert.Equal(t, map[string]string{loader.Foundation: "gnustep-base"}, lc.Overrides)

	assert.Nil(t, LibrariesConfig{}.Loader().Overrides)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "  ", cfg.Render.Indent)
}
