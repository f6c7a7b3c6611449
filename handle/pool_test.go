package handle

import "testing"

func TestPoolAddRemoveGenerationBump(t *testing.T) {
	// Pool capacity 4; h1=add(1); h2=add(2); remove(h1); h3=add(3) =>
	// h3.index==h1.index, h3.generation!=h1.generation, data(h2)==2.
	p := NewPool[int](4)

	h1 := p.Add(1)
	h2 := p.Add(2)
	if _, ok := p.Remove(h1); !ok {
		t.Fatal("Remove(h1) failed")
	}
	h3 := p.Add(3)

	if h3.Index != h1.Index {
		t.Fatalf("h3.Index = %d, want %d (recycled)", h3.Index, h1.Index)
	}
	if h3.Generation == h1.Generation {
		t.Fatalf("h3.Generation == h1.Generation (%d), want different", h1.Generation)
	}
	v, ok := p.Data(h2)
	if !ok || v != 2 {
		t.Fatalf("Data(h2) = (%d, %v), want (2, true)", v, ok)
	}
}

func TestPoolStaleHandleRejected(t *testing.T) {
	p := NewPool[string](4)
	h := p.Add("a")
	p.Remove(h)

	if _, ok := p.Data(h); ok {
		t.Fatal("Data accepted a stale handle")
	}
	if _, ok := p.Remove(h); ok {
		t.Fatal("Remove accepted an already-removed handle")
	}
	if p.Contains(h) {
		t.Fatal("Contains reported true for a stale handle")
	}
}

func TestPoolZeroHandleIsInvalid(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Fatal("zero-value Handle should report IsZero")
	}
	p := NewPool[int](1)
	first := p.Add(42)
	if first.IsZero() {
		t.Fatal("first allocated handle should not be zero (generation starts at 1)")
	}
}

func TestPoolMutateAndForEach(t *testing.T) {
	p := NewPool[int](4)
	h1 := p.Add(10)
	h2 := p.Add(20)

	if !p.Mutate(h1, func(v *int) { *v += 5 }) {
		t.Fatal("Mutate failed on valid handle")
	}
	v, _ := p.Data(h1)
	if v != 15 {
		t.Fatalf("Data(h1) = %d, want 15", v)
	}

	seen := map[uint32]int{}
	p.ForEach(func(h Handle, v int) bool {
		seen[h.Index] = v
		return true
	})
	if seen[h1.Index] != 15 || seen[h2.Index] != 20 {
		t.Fatalf("ForEach saw %v, want {%d:15,%d:20}", seen, h1.Index, h2.Index)
	}
}

func TestPoolFindIf(t *testing.T) {
	p := NewPool[int](4)
	p.Add(1)
	target := p.Add(2)
	p.Add(3)

	h, v, ok := p.FindIf(func(v int) bool { return v == 2 })
	if !ok || v != 2 || h != target {
		t.Fatalf("FindIf = (%v, %d, %v), want (%v, 2, true)", h, v, ok, target)
	}

	_, _, ok = p.FindIf(func(v int) bool { return v == 999 })
	if ok {
		t.Fatal("FindIf matched nonexistent value")
	}
}

func TestPoolLenTracksLiveCount(t *testing.T) {
	p := NewPool[int](4)
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
	h := p.Add(1)
	p.Add(2)
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	p.Remove(h)
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}
