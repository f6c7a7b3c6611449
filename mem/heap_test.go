package mem

import (
	"testing"
	"unsafe"
)

func TestHeapAllocatorBasic(t *testing.T) {
	h := NewHeap()
	if h.Kind() != KindHeap {
		t.Fatalf("Kind() = %v, want %v", h.Kind(), KindHeap)
	}

	p := h.Malloc(64, 8)
	if p == nil {
		t.Fatal("Malloc returned nil")
	}
	if uintptr(p)%8 != 0 {
		t.Fatalf("pointer %x not 8-aligned", p)
	}
	h.Free(p, 8)
}

func TestHeapAllocatorAlignment(t *testing.T) {
	h := NewHeap()
	for _, align := range []uintptr{16, 32, 64, 256} {
		p := h.Malloc(17, align)
		if p == nil {
			t.Fatalf("Malloc failed for align=%d", align)
		}
		if uintptr(p)%align != 0 {
			t.Fatalf("pointer %x not %d-aligned", p, align)
		}
		h.Free(p, align)
	}
}

func TestHeapAllocatorReallocPreservesContent(t *testing.T) {
	h := NewHeap()
	p := h.Malloc(16, 8)
	src := unsafe.Slice((*byte)(p), 16)
	for i := range src {
		src[i] = byte(i)
	}

	p2 := h.Realloc(p, 32, 8)
	if p2 == nil {
		t.Fatal("Realloc returned nil")
	}
	dst := unsafe.Slice((*byte)(p2), 16)
	for i := range dst {
		if dst[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, dst[i], i)
		}
	}
	h.Free(p2, 8)
}

func TestHeapAllocatorReallocShrink(t *testing.T) {
	h := NewHeap()
	p := h.Malloc(64, 8)
	src := unsafe.Slice((*byte)(p), 64)
	for i := range src {
		src[i] = byte(i)
	}
	p2 := h.Realloc(p, 8, 8)
	dst := unsafe.Slice((*byte)(p2), 8)
	for i := range dst {
		if dst[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, dst[i], i)
		}
	}
	h.Free(p2, 8)
}

func TestHeapAllocatorReallocNilIsMalloc(t *testing.T) {
	h := NewHeap()
	p := h.Realloc(nil, 16, 8)
	if p == nil {
		t.Fatal("Realloc(nil, ...) returned nil")
	}
	h.Free(p, 8)
}

func TestHeapAllocatorReallocZeroIsFree(t *testing.T) {
	h := NewHeap()
	p := h.Malloc(16, 8)
	p2 := h.Realloc(p, 0, 8)
	if p2 != nil {
		t.Fatalf("Realloc(p, 0, ...) = %v, want nil", p2)
	}
	if len(h.live) != 0 {
		t.Fatalf("live map not cleared: %d entries", len(h.live))
	}
}
