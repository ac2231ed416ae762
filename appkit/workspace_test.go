package appkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/objc"
	"github.com/wippyai/cocoa-bridge/objctest"
)

func setup(t *testing.T) (*objctest.Runtime, *objc.Bridge) {
	t.Helper()
	rt := objctest.New()
	b := objc.New(rt)
	require.NoError(t, foundation.Register(b))
	require.NoError(t, Register(b))
	return rt, b
}

func TestSharedWorkspaceIsSingleton(t *testing.T) {
	_, b := setup(t)

	a, err := SharedWorkspace(b)
	require.NoError(t, err)
	c, err := SharedWorkspace(b)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), c.ID())
	assert.Equal(t, "NSWorkspace", a.ClassName())

	w := b.Classify(a.ID())
	assert.IsType(t, &Workspace{}, w)
}

func TestLaunchApplication(t *testing.T) {
	rt, b := setup(t)
	rt.SetInstalledApps("Safari")

	require.NoError(t, foundation.WithAutoreleasePool(b, func() error {
		require.NoError(t, LaunchApplication(b, "Safari"))
		require.NoError(t, LaunchApplication(b, "Not Installed"))
		return nil
	}))

	assert.Equal(t, []string{"Safari", "Not Installed"}, rt.Launched())
	for _, c := range rt.Calls() {
		if c.Selector == "launchApplication:" {
			assert.Equal(t, objc.Bool, c.Types.Return)
		}
	}
}

func TestOpenPath(t *testing.T) {
	rt, b := setup(t)

	require.NoError(t, foundation.WithAutoreleasePool(b, func() error {
		ok, err := OpenPath(b, "/tmp/report.pdf")
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	}))
	assert.Equal(t, []string{"file:///tmp/report.pdf"}, rt.Opened())
}

func TestOpenURLRejectsNil(t *testing.T) {
	rt, b := setup(t)
	ws, err := SharedWorkspace(b)
	require.NoError(t, err)
	rt.ResetCalls()

	_, err = ws.OpenURL(&foundation.URL{Object: objc.NewObject(b, 0, 0)})
	require.Error(t, err)
	assert.Zero(t, rt.Counters().MsgSend)
}

func TestNilWorkspaceIsNoop(t *testing.T) {
	rt, b := setup(t)
	rt.ResetCalls()

	ws := &Workspace{Object: objc.NewObject(b, 0, 0)}
	require.NoError(t, ws.LaunchApplication("Safari"))
	assert.Zero(t, rt.Counters().MsgSend)
	assert.Empty(t, rt.Launched())
}
