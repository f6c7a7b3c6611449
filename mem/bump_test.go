package mem

import (
	"testing"
	"unsafe"
)

func TestBumpArenaGrowInPlace(t *testing.T) {
	// Reserve 64 MiB, commit in 64 KiB pages.
	a, err := NewBumpArena(64*1024*1024, 64*1024, false)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}
	defer a.Release()

	p := a.Malloc(100, 8)
	if p == nil {
		t.Fatal("Malloc failed")
	}
	q := a.Realloc(p, 200, 8)
	if q != p {
		t.Fatalf("Realloc did not grow in place: got %v, want %v", q, p)
	}
	if a.Offset() != 208 {
		t.Fatalf("offset = %d, want 208", a.Offset())
	}
}

func TestBumpArenaNonLastReallocCopies(t *testing.T) {
	a, err := NewBumpArena(1024*1024, 4096, false)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}
	defer a.Release()

	p1 := a.Malloc(32, 8)
	src := unsafe.Slice((*byte)(p1), 32)
	for i := range src {
		src[i] = byte(i + 1)
	}
	p2 := a.Malloc(16, 8) // now p1 is no longer "last"

	grown := a.Realloc(p1, 64, 8)
	if grown == p1 {
		t.Fatal("expected a relocation, not an in-place grow")
	}
	dst := unsafe.Slice((*byte)(grown), 32)
	for i := range dst {
		if dst[i] != byte(i+1) {
			t.Fatalf("byte %d = %d, want %d", i, dst[i], i+1)
		}
	}
	_ = p2
}

func TestBumpArenaOutOfRange(t *testing.T) {
	a, err := NewBumpArena(4096, 4096, false)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}
	defer a.Release()

	p := a.Malloc(8192, 8)
	if p != nil {
		t.Fatal("expected nil for an allocation exceeding the reserve")
	}
}

func TestBumpArenaResetRewinds(t *testing.T) {
	a, err := NewBumpArena(1024*1024, 4096, false)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}
	defer a.Release()

	a.Malloc(128, 8)
	a.Malloc(256, 8)
	if a.Offset() == 0 {
		t.Fatal("expected non-zero offset before reset")
	}
	a.Reset()
	if a.Offset() != 0 {
		t.Fatalf("offset after reset = %d, want 0", a.Offset())
	}

	p := a.Malloc(64, 8)
	if p == nil {
		t.Fatal("allocation after reset failed")
	}
}

func TestBumpArenaFreeIsNoop(t *testing.T) {
	a, err := NewBumpArena(1024*1024, 4096, false)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}
	defer a.Release()

	p := a.Malloc(64, 8)
	before := a.Offset()
	a.Free(p, 8)
	if a.Offset() != before {
		t.Fatalf("Free mutated offset: %d -> %d", before, a.Offset())
	}
}

func TestBumpArenaDebugMode(t *testing.T) {
	a, err := NewBumpArena(1024*1024, 4096, true)
	if err != nil {
		t.Fatalf("NewBumpArena: %v", err)
	}

	p := a.Malloc(64, 8)
	if p == nil {
		t.Fatal("Malloc failed in debug mode")
	}
	if len(a.debugAlloc) != 1 {
		t.Fatalf("debugAlloc has %d entries, want 1", len(a.debugAlloc))
	}
	a.Reset()
	if len(a.debugAlloc) != 0 {
		t.Fatalf("debugAlloc has %d entries after reset, want 0", len(a.debugAlloc))
	}
}
