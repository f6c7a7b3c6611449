package gfx

import "testing"

func TestPoolsCountsTracksAdditions(t *testing.T) {
	p := newPools()

	before := p.counts()
	if before["buffers"] != 0 || before["images"] != 0 {
		t.Fatalf("expected empty pools, got %+v", before)
	}

	p.buffers.Add(BufferResource{Size: 1024})
	p.images.Add(ImageResource{Width: 4, Height: 4})
	p.images.Add(ImageResource{Width: 8, Height: 8})

	after := p.counts()
	if after["buffers"] != 1 {
		t.Fatalf("buffers count = %d, want 1", after["buffers"])
	}
	if after["images"] != 2 {
		t.Fatalf("images count = %d, want 2", after["images"])
	}
	if after["pipelines"] != 0 {
		t.Fatalf("pipelines count = %d, want 0", after["pipelines"])
	}
}

func TestPoolsAddRemoveRoundTrip(t *testing.T) {
	p := newPools()

	h := p.pipelineLayouts.Add(PipelineLayoutResource{SetCount: 2, RefCount: 1})
	res, ok := p.pipelineLayouts.Data(h)
	if !ok {
		t.Fatal("expected to find the just-added pipeline layout")
	}
	if res.SetCount != 2 {
		t.Fatalf("SetCount = %d, want 2", res.SetCount)
	}

	removed, ok := p.pipelineLayouts.Remove(h)
	if !ok || removed.SetCount != 2 {
		t.Fatalf("Remove returned ok=%v removed=%+v", ok, removed)
	}
	if _, ok := p.pipelineLayouts.Data(h); ok {
		t.Fatal("handle must be invalid after Remove")
	}
}
