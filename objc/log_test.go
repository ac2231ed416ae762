package objc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/objc"
	"github.com/wippyai/cocoa-bridge/objctest"
)

func TestLogExpandsObjects(t *testing.T) {
	rt := objctest.New()
	b := objc.New(rt)
	require.NoError(t, foundation.Register(b))

	require.NoError(t, foundation.WithAutoreleasePool(b, func() error {
		s, err := foundation.NewString(b, "world")
		require.NoError(t, err)

		require.NoError(t, b.Log("hello %@ at 100%", s))
		require.NoError(t, b.Log("%@ and %@", "plain", nil))
		require.NoError(t, b.Log("missing %@"))
		return nil
	}))

	assert.Equal(t, []string{
		"hello world at 100%",
		"plain and (null)",
		"missing (null)",
	}, rt.Logs())
}

func TestLogNeedsStringCoercion(t *testing.T) {
	rt := objctest.New()
	b := objc.New(rt)

	err := b.Log("unregistered")
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseCoerce, Kind: errors.KindNotInitialized})
	assert.Zero(t, rt.Counters().Log)
}
