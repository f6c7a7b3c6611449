package engine

import "testing"

func TestArenaRegistryDefaultProxies(t *testing.T) {
	r, err := NewArenaRegistry(1024 * 1024)
	if err != nil {
		t.Fatalf("NewArenaRegistry: %v", err)
	}
	defer r.Release()

	if r.Engine == nil || r.Jobs == nil {
		t.Fatal("Engine and Jobs proxies must always be present")
	}
	if r.Engine == r.Jobs {
		t.Fatal("Engine and Jobs must be distinct proxies")
	}
}

func TestArenaRegistryRegisterIsIdempotent(t *testing.T) {
	r, err := NewArenaRegistry(1024 * 1024)
	if err != nil {
		t.Fatalf("NewArenaRegistry: %v", err)
	}
	defer r.Release()

	a := r.Register("Render")
	b := r.Register("Render")
	if a != b {
		t.Fatal("Register should return the same proxy for a repeated name")
	}
}

func TestProxyAllocatorTracksLiveStats(t *testing.T) {
	r, err := NewArenaRegistry(1024 * 1024)
	if err != nil {
		t.Fatalf("NewArenaRegistry: %v", err)
	}
	defer r.Release()

	p1 := r.Engine.Malloc(64, 8)
	if p1 == nil {
		t.Fatal("Malloc failed")
	}
	p2 := r.Engine.Malloc(128, 8)
	if p2 == nil {
		t.Fatal("Malloc failed")
	}

	stats := r.Engine.stats()
	if stats.LiveBytes != 192 || stats.LiveCount != 2 {
		t.Fatalf("stats after two Mallocs = %+v, want LiveBytes=192 LiveCount=2", stats)
	}

	r.Engine.Free(p1, 8)
	stats = r.Engine.stats()
	if stats.LiveBytes != 128 || stats.LiveCount != 1 {
		t.Fatalf("stats after Free = %+v, want LiveBytes=128 LiveCount=1", stats)
	}

	grown := r.Engine.Realloc(p2, 256, 8)
	if grown == nil {
		t.Fatal("Realloc failed")
	}
	stats = r.Engine.stats()
	if stats.LiveBytes != 256 || stats.LiveCount != 1 {
		t.Fatalf("stats after Realloc = %+v, want LiveBytes=256 LiveCount=1", stats)
	}
}

func TestArenaRegistryStatsReportsEveryProxy(t *testing.T) {
	r, err := NewArenaRegistry(1024 * 1024)
	if err != nil {
		t.Fatalf("NewArenaRegistry: %v", err)
	}
	defer r.Release()

	r.Register("Custom")
	names := map[string]bool{}
	for _, s := range r.Stats() {
		names[s.Name] = true
	}
	for _, want := range []string{"Engine", "Jobs", "Custom"} {
		if !names[want] {
			t.Fatalf("Stats missing proxy %q: %v", want, names)
		}
	}
}
