package mem

import (
	"testing"
	"time"
)

func TestTransientPushAllocPop(t *testing.T) {
	c, err := NewTransientContext(16 << 20)
	if err != nil {
		t.Fatalf("NewTransientContext: %v", err)
	}
	defer c.Release()

	id := c.Push()
	p, err := c.Alloc(id, 64, 8)
	if err != nil || p == nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := c.Pop(id); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if c.InUse() {
		t.Fatal("expected InUse() == false after popping the only scope")
	}
}

func TestTransientWrongScopeRejected(t *testing.T) {
	c, err := NewTransientContext(16 << 20)
	if err != nil {
		t.Fatalf("NewTransientContext: %v", err)
	}
	defer c.Release()

	outer := c.Push()
	inner := c.Push()

	if _, err := c.Alloc(outer, 32, 8); err != ErrWrongScope {
		t.Fatalf("Alloc against non-top scope: got %v, want ErrWrongScope", err)
	}
	if err := c.Pop(outer); err != ErrWrongScope {
		t.Fatalf("Pop against non-top scope: got %v, want ErrWrongScope", err)
	}
	if err := c.Pop(inner); err != nil {
		t.Fatalf("Pop inner: %v", err)
	}
	if err := c.Pop(outer); err != nil {
		t.Fatalf("Pop outer: %v", err)
	}
}

func TestTransientNestedScopesRewindOffset(t *testing.T) {
	c, err := NewTransientContext(16 << 20)
	if err != nil {
		t.Fatalf("NewTransientContext: %v", err)
	}
	defer c.Release()

	outer := c.Push()
	if _, err := c.Alloc(outer, 128, 8); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	midOffset := c.offset

	inner := c.Push()
	if _, err := c.Alloc(inner, 256, 8); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := c.Pop(inner); err != nil {
		t.Fatalf("Pop inner: %v", err)
	}
	if c.offset != midOffset {
		t.Fatalf("offset after popping inner = %d, want %d", c.offset, midOffset)
	}
	if err := c.Pop(outer); err != nil {
		t.Fatalf("Pop outer: %v", err)
	}
	if c.offset != 0 {
		t.Fatalf("offset after popping outer = %d, want 0", c.offset)
	}
}

func TestTransientResetAdaptsCommitted(t *testing.T) {
	c, err := NewTransientContext(16 << 20)
	if err != nil {
		t.Fatalf("NewTransientContext: %v", err)
	}
	defer c.Release()

	id := c.Push()
	if _, err := c.Alloc(id, 1<<20, 8); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := c.Pop(id); err != nil {
		t.Fatalf("Pop: %v", err)
	}

	now := time.Unix(0, 0)
	for i := 0; i < transientPeakRingSize; i++ {
		c.resetOne(now)
	}
	if c.committed < 1<<20 {
		t.Fatalf("committed = %d, want >= %d after peak recorded", c.committed, 1<<20)
	}

	// Several idle frames with no allocation should let the committed
	// range shrink back toward the (now zero) rolling peak.
	for i := 0; i < transientPeakRingSize*2; i++ {
		c.resetOne(now)
	}
	if c.committed > 1<<20 {
		t.Fatalf("committed = %d, expected it to shrink after idle frames", c.committed)
	}
}

func TestTransientOpenScopePastGraceWarns(t *testing.T) {
	c, err := NewTransientContext(16 << 20)
	if err != nil {
		t.Fatalf("NewTransientContext: %v", err)
	}
	defer c.Release()

	c.Push()
	c.noResetSince = time.Unix(0, 0)
	c.resetOne(time.Unix(0, 0).Add(transientGracePeriod + time.Second))
	if !c.warned {
		t.Fatal("expected warned == true once the grace period elapses")
	}
}
