package objctest

import (
	"testing"

	"github.com/wippyai/cocoa-bridge/objc"
)

func TestHeap_AllocGetFree(t *testing.T) {
	m := newHeap()

	h := m.alloc(&record{value: "test", refs: 1})
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	r, ok := m.get(h)
	if !ok {
		t.Fatal("get failed")
	}
	if r.value != "test" {
		t.Fatalf("Expected 'test', got %v", r.value)
	}

	if _, ok := m.free(h); !ok {
		t.Fatal("free failed")
	}
	if _, ok := m.get(h); ok {
		t.Fatal("Expected get to fail after free")
	}
	if _, ok := m.free(h); ok {
		t.Fatal("Expected double free to fail")
	}
}

func TestHeap_ReusesFreedSlots(t *testing.T) {
	m := newHeap()

	h1 := m.alloc(&record{refs: 1})
	h2 := m.alloc(&record{refs: 1})
	m.free(h1)

	h3 := m.alloc(&record{refs: 1})
	if h3 != h1 {
		t.Fatalf("Expected reuse of %s, got %s", h1, h3)
	}
	if h2 == h3 {
		t.Fatal("Live handle reused")
	}
}

func TestHeap_RejectsForeignHandles(t *testing.T) {
	m := newHeap()
	m.alloc(&record{refs: 1})

	for _, h := range []uintptr{0, 1, heapBase - 1, heapBase + 1, heapBase + 100*heapAlign} {
		if _, ok := m.get(objc.Handle(h)); ok {
			t.Fatalf("Expected %#x to be rejected", h)
		}
	}
}

func TestHeap_LiveCountsInstancesOnly(t *testing.T) {
	m := newHeap()
	m.alloc(&record{isClass: true})
	m.alloc(&record{selector: "count"})
	m.alloc(&record{refs: 1})

	if n := m.live(); n != 1 {
		t.Fatalf("Expected 1 live instance, got %d", n)
	}
}
