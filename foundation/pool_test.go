package foundation

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDrainIsIdempotent(t *testing.T) {
	rt, b := newBridge(t)
	before := rt.LiveObjects()

	p := NewAutoreleasePool(b)
	assert.Equal(t, PoolUninitialized, p.State())
	require.NoError(t, p.Enter())
	assert.Equal(t, PoolAllocated, p.State())
	assert.Equal(t, 1, rt.PoolDepth())

	_, err := NewString(b, "temporary")
	require.NoError(t, err)
	assert.Equal(t, before+2, rt.LiveObjects())

	require.NoError(t, p.Drain())
	require.NoError(t, p.Drain())
	require.NoError(t, p.Exit())

	assert.Equal(t, PoolDrained, p.State())
	assert.Equal(t, 1, rt.CallCount("drain"))
	assert.Equal(t, 0, rt.PoolDepth())
	assert.Equal(t, before, rt.LiveObjects())
	assert.Zero(t, p.Handle())
}

func TestPoolDrainBeforeEnter(t *testing.T) {
	rt, b := newBridge(t)
	p := NewAutoreleasePool(b)

	require.NoError(t, p.Drain())
	assert.Equal(t, PoolUninitialized, p.State())
	assert.Zero(t, rt.CallCount("drain"))
}

func TestPoolEnterTwicePanics(t *testing.T) {
	_, b := newBridge(t)
	p := NewAutoreleasePool(b)
	require.NoError(t, p.Enter())
	defer p.Drain()

	assert.Panics(t, func() { _ = p.Enter() })
}

func TestPoolEnterAfterDrainPanics(t *testing.T) {
	_, b := newBridge(t)
	p := NewAutoreleasePool(b)
	require.NoError(t, p.Enter())
	require.NoError(t, p.Drain())

	assert.Panics(t, func() { _ = p.Enter() })
}

func TestNestedPools(t *testing.T) {
	rt, b := newBridge(t)

	outer := NewAutoreleasePool(b)
	require.NoError(t, outer.Enter())
	kept, err := NewString(b, "outer")
	require.NoError(t, err)

	inner := NewAutoreleasePool(b)
	require.NoError(t, inner.Enter())
	dropped, err := NewString(b, "inner")
	require.NoError(t, err)
	assert.Equal(t, 2, rt.PoolDepth())

	require.NoError(t, inner.Drain())
	assert.False(t, rt.Alive(dropped.ID()))
	assert.True(t, rt.Alive(kept.ID()))

	require.NoError(t, outer.Drain())
	assert.False(t, rt.Alive(kept.ID()))
	assert.Equal(t, 0, rt.PoolDepth())
}

func TestWithAutoreleasePoolDrainsOnError(t *testing.T) {
	rt, b := newBridge(t)
	sentinel := errors.New("boom")

	err := WithAutoreleasePool(b, func() error {
		_, err := NewString(b, "x")
		require.NoError(t, err)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, rt.PoolDepth())
	assert.Equal(t, 1, rt.CallCount("drain"))
}

func TestWithAutoreleasePoolDrainsOnPanic(t *testing.T) {
	rt, b := newBridge(t)

	assert.Panics(t, func() {
		_ = WithAutoreleasePool(b, func() error {
			panic("inside scope")
		})
	})
	assert.Equal(t, 0, rt.PoolDepth())
	assert.Equal(t, 1, rt.CallCount("drain"))
}

func TestRootPoolIsNeverDrained(t *testing.T) {
	rt, b := newBridge(t)

	root, err := NewRootPool(b)
	require.NoError(t, err)
	assert.True(t, root.Root())

	s, err := NewString(b, "lives with the process")
	require.NoError(t, err)

	require.NoError(t, root.Drain())
	assert.Equal(t, PoolAllocated, root.State())
	assert.Equal(t, 1, rt.PoolDepth())
	assert.True(t, rt.Alive(s.ID()))
	assert.Zero(t, rt.CallCount("drain"))
	assert.Zero(t, rt.Leaked())
}

func TestUnreachablePoolIsDrainedByFinalizer(t *testing.T) {
	rt, b := newBridge(t)
	before := rt.LiveObjects()

	func() {
		p := NewAutoreleasePool(b)
		require.NoError(t, p.Enter())
		_, err := NewString(b, "abandoned")
		require.NoError(t, err)
	}()
	require.Equal(t, 1, rt.PoolDepth())

	require.Eventually(t, func() bool {
		runtime.GC()
		return rt.PoolDepth() == 0 && rt.LiveObjects() == before
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, rt.CallCount("drain"))
}

func TestPoolStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", PoolUninitialized.String())
	assert.Equal(t, "allocated", PoolAllocated.String())
	assert.Equal(t, "drained", PoolDrained.String())
	assert.Equal(t, "unknown", PoolState(9).String())
}
