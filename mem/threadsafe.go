package mem

import "unsafe"

// ThreadSafeAllocator wraps another Allocator with a spinlock. Most
// allocators in this package are meant for single-thread or
// externally-synchronized use (one arena per worker), and this adapter is
// the explicit opt-in for call sites that need to share one underlying
// allocator across goroutines.
type ThreadSafeAllocator struct {
	mu    Spinlock
	inner Allocator
}

// NewThreadSafe wraps inner with a spinlock. inner must not be used
// directly by any other caller afterward.
func NewThreadSafe(inner Allocator) *ThreadSafeAllocator {
	return &ThreadSafeAllocator{inner: inner}
}

func (a *ThreadSafeAllocator) Kind() Kind { return a.inner.Kind() }

func (a *ThreadSafeAllocator) Malloc(size, align uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Malloc(size, align)
}

func (a *ThreadSafeAllocator) Realloc(ptr unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Realloc(ptr, size, align)
}

func (a *ThreadSafeAllocator) Free(ptr unsafe.Pointer, align uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inner.Free(ptr, align)
}
