package foundation

import (
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/cocoa-bridge/errors"
	"github.com/wippyai/cocoa-bridge/objc"
)

// ClassAutoreleasePool is the runtime class backing AutoreleasePool.
const ClassAutoreleasePool = "NSAutoreleasePool"

// PoolState is the lifecycle state of an AutoreleasePool.
type PoolState uint8

const (
	PoolUninitialized PoolState = iota
	PoolAllocated
	PoolDrained
)

func (s PoolState) String() string {
	switch s {
	case PoolUninitialized:
		return "uninitialized"
	case PoolAllocated:
		return "allocated"
	case PoolDrained:
		return "drained"
	default:
		return "unknown"
	}
}

// AutoreleasePool owns at most one runtime NSAutoreleasePool. Pools nest in
// the order they are entered and must be drained innermost first.
//
// Drain is the primary release path. A pool that becomes unreachable while
// still allocated is drained by a finalizer, which logs a warning.
type AutoreleasePool struct {
	bridge *objc.Bridge
	handle objc.Handle
	state  PoolState
	root   bool
	mu     sync.Mutex
}

// NewAutoreleasePool returns an uninitialized pool.
func NewAutoreleasePool(b *objc.Bridge) *AutoreleasePool {
	return &AutoreleasePool{bridge: b}
}

// Enter allocates the runtime pool. Entering a pool that is not
// uninitialized is a programming error and panics.
func (p *AutoreleasePool) Enter() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != PoolUninitialized {
		panic(errors.Misuse(errors.PhasePool, "enter on "+p.state.String()+" autorelease pool"))
	}

	cls := p.bridge.Class(ClassAutoreleasePool)
	if cls == 0 {
		return errors.NotFound(errors.PhasePool, "class", ClassAutoreleasePool)
	}
	obj := objc.NewObject(p.bridge, cls, 0)
	if err := obj.Init(); err != nil {
		return errors.Wrap(errors.PhasePool, errors.KindInvalidData, err, "init autorelease pool")
	}
	if !obj.Valid() {
		return errors.NilPointer(errors.PhasePool, []string{"init"}, ClassAutoreleasePool)
	}

	p.handle = obj.ID()
	p.state = PoolAllocated
	if !p.root {
		runtime.SetFinalizer(p, (*AutoreleasePool).finalize)
	}
	Logger().Debug("autorelease pool entered", zap.Stringer("pool", p.handle), zap.Bool("root", p.root))
	return nil
}

// Drain sends -drain once. Later calls, and calls on a pool never entered,
// do nothing.
func (p *AutoreleasePool) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drainLocked()
}

// Exit is Drain; it pairs with Enter.
func (p *AutoreleasePool) Exit() error {
	return p.Drain()
}

func (p *AutoreleasePool) drainLocked() error {
	if p.state != PoolAllocated || p.root {
		return nil
	}
	runtime.SetFinalizer(p, nil)

	h := p.handle
	p.handle = 0
	p.state = PoolDrained

	if _, err := p.bridge.SendRaw(h, objc.Sel("drain").Returns(objc.Void)); err != nil {
		return errors.Wrap(errors.PhasePool, errors.KindInvalidData, err, "drain autorelease pool")
	}
	Logger().Debug("autorelease pool drained", zap.Stringer("pool", h))
	return nil
}

func (p *AutoreleasePool) finalize() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PoolAllocated {
		return
	}
	Logger().Warn("autorelease pool drained by finalizer", zap.Stringer("pool", p.handle))
	if err := p.drainLocked(); err != nil {
		Logger().Error("finalizer drain failed", zap.Error(err))
	}
}

// State returns the pool's lifecycle state.
func (p *AutoreleasePool) State() PoolState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Handle returns the runtime pool, or 0 when not allocated.
func (p *AutoreleasePool) Handle() objc.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// Root reports whether p is a root pool.
func (p *AutoreleasePool) Root() bool {
	return p.root
}

// WithAutoreleasePool runs fn inside a fresh pool and drains it on every
// return path, including a panic in fn.
func WithAutoreleasePool(b *objc.Bridge, fn func() error) (err error) {
	p := NewAutoreleasePool(b)
	if err := p.Enter(); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, p.Drain())
	}()
	return fn()
}

// NewRootPool enters the process-wide pool that catches objects
// autoreleased outside any explicit scope. Drain on a root pool is a no-op;
// it is released with the process.
func NewRootPool(b *objc.Bridge) (*AutoreleasePool, error) {
	p := &AutoreleasePool{bridge: b, root: true}
	if err := p.Enter(); err != nil {
		return nil, err
	}
	return p, nil
}
