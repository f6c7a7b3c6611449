package mem

import "testing"

func TestTlsfBasicAllocFree(t *testing.T) {
	p := NewTlsfAllocator(1024 * 1024)
	a := p.Malloc(64, 8)
	if a == nil {
		t.Fatal("Malloc failed")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	p.Free(a, 8)
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate after free: %v", err)
	}
	if f := p.Fragmentation(); f != 0 {
		t.Fatalf("Fragmentation = %v, want 0 after freeing everything", f)
	}
}

func TestTlsfFragmentationScenarioD(t *testing.T) {
	// Pool 1 MiB; alloc 16B x3, free the middle one, fragmentation == 16/48.
	p := NewTlsfAllocator(1024 * 1024)
	a := p.Malloc(16, 8)
	b := p.Malloc(16, 8)
	c := p.Malloc(16, 8)
	if a == nil || b == nil || c == nil {
		t.Fatal("Malloc failed")
	}
	p.Free(b, 8)

	got := p.Fragmentation()
	want := 16.0 / 48.0
	if diff := got - want; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("Fragmentation = %v, want %v", got, want)
	}
}

func TestTlsfReallocGrowsCoalescingNeighbor(t *testing.T) {
	p := NewTlsfAllocator(1024 * 1024)
	a := p.Malloc(32, 8)
	src := p.Malloc(32, 8)
	p.Free(src, 8)

	grown := p.Realloc(a, 64, 8)
	if grown == nil {
		t.Fatal("Realloc failed")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestTlsfReallocRelocatesWhenNoRoom(t *testing.T) {
	p := NewTlsfAllocator(4096)
	a := p.Malloc(32, 8)
	b := p.Malloc(32, 8) // blocks a's neighbor from being free
	grown := p.Realloc(a, 128, 8)
	if grown == nil {
		t.Fatal("Realloc failed")
	}
	if grown == a {
		t.Fatal("expected relocation since the trailing neighbor is not free")
	}
	_ = b
}

func TestTlsfOutOfSpaceReturnsNil(t *testing.T) {
	p := NewTlsfAllocator(64)
	a := p.Malloc(512, 8)
	if a != nil {
		t.Fatal("expected nil for an allocation exceeding the pool")
	}
}

func TestTlsfFreeListReuse(t *testing.T) {
	p := NewTlsfAllocator(4096)
	a := p.Malloc(64, 8)
	p.Free(a, 8)
	b := p.Malloc(64, 8)
	if b == nil {
		t.Fatal("Malloc failed to reuse freed block")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
