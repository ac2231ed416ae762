package objctest

import (
	"sync"

	"github.com/wippyai/cocoa-bridge/objc"
)

// heapBase keeps fake handles away from small integers so a count or a
// BOOL mistaken for an object is easy to spot.
const (
	heapBase  = 0x10000
	heapAlign = 0x10
)

// record is one live runtime entity: a class, a selector or an instance.
type record struct {
	value    any
	class    *Class
	selector string
	refs     int
	isClass  bool
}

func (r *record) isInstance() bool {
	return !r.isClass && r.selector == ""
}

// heap is the fake runtime's object memory. Freed slots are reused, so a
// deallocated handle can come back as a different object.
type heap struct {
	entries  []*record
	freeList []objc.Handle
	mu       sync.RWMutex
}

func newHeap() *heap {
	return &heap{
		entries:  make([]*record, 0, 64),
		freeList: make([]objc.Handle, 0, 16),
	}
}

func handleOf(idx int) objc.Handle {
	return objc.Handle(heapBase + idx*heapAlign)
}

func indexOf(h objc.Handle) (int, bool) {
	if h < heapBase || (h-heapBase)%heapAlign != 0 {
		return 0, false
	}
	return int(h-heapBase) / heapAlign, true
}

func (m *heap) alloc(r *record) objc.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.freeList) > 0 {
		h := m.freeList[len(m.freeList)-1]
		m.freeList = m.freeList[:len(m.freeList)-1]
		idx, _ := indexOf(h)
		m.entries[idx] = r
		return h
	}

	m.entries = append(m.entries, r)
	return handleOf(len(m.entries) - 1)
}

func (m *heap) get(h objc.Handle) (*record, bool) {
	idx, ok := indexOf(h)
	if !ok {
		return nil, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if idx >= len(m.entries) || m.entries[idx] == nil {
		return nil, false
	}
	return m.entries[idx], true
}

func (m *heap) free(h objc.Handle) (*record, bool) {
	idx, ok := indexOf(h)
	if !ok {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if idx >= len(m.entries) || m.entries[idx] == nil {
		return nil, false
	}
	r := m.entries[idx]
	m.entries[idx] = nil
	m.freeList = append(m.freeList, h)
	return r, true
}

// live counts instances; classes and selectors are immortal.
func (m *heap) live() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, e := range m.entries {
		if e != nil && e.isInstance() {
			count++
		}
	}
	return count
}
