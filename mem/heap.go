package mem

import (
	"sync"
	"unsafe"
)

// headerWords is the number of uintptr-sized words stored immediately
// before every pointer HeapAllocator hands back: the byte offset from the
// backing buffer's base to the returned pointer, and the size that was
// requested. Realloc uses the size to know how much of the old payload to
// preserve; the offset is not read back, since Free finds the backing
// buffer through the live map keyed by the returned pointer.
const headerWords = 2

// HeapAllocator wraps Go's runtime allocator (the engine's stand-in for
// the OS malloc/realloc/free triad, since Go offers no raw manual-free
// allocation) with support for alignments stricter than MachineAlignment.
// For alignments within MachineAlignment it still goes through the same
// header path so Free/Realloc have a uniform way to recover bookkeeping.
//
// Machine-aligned and stricter requests alike store a raw-to-aligned
// offset header; no request is forwarded without one. The header also carries the
// requested size, since Go exposes no malloc_usable_size/_aligned_msize
// equivalent to recover it from the pointer alone.
type HeapAllocator struct {
	mu   sync.Mutex
	live map[uintptr][]byte // keyed by the pointer returned to callers
}

// NewHeap creates a HeapAllocator. There is no process-wide singleton:
// callers that want one construct and share it explicitly.
func NewHeap() *HeapAllocator {
	return &HeapAllocator{live: make(map[uintptr][]byte)}
}

func (h *HeapAllocator) Kind() Kind { return KindHeap }

func (h *HeapAllocator) Malloc(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	align = effectiveAlign(align)
	headerBytes := headerWords * unsafe.Sizeof(uintptr(0))
	total := size + align + headerBytes

	h.mu.Lock()
	defer h.mu.Unlock()

	buf := make([]byte, total)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := alignUp(base+headerBytes, align)

	h.writeHeader(aligned, aligned-base, size)
	h.live[aligned] = buf
	return unsafe.Pointer(aligned) //nolint:govet // intentional raw pointer handoff
}

func (h *HeapAllocator) Realloc(ptr unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	if ptr == nil {
		return h.Malloc(size, align)
	}
	if size == 0 {
		h.Free(ptr, align)
		return nil
	}

	oldAddr := uintptr(ptr)
	h.mu.Lock()
	_, ok := h.live[oldAddr]
	h.mu.Unlock()
	if !ok {
		runFailCallback()
		return nil
	}
	_, oldSize := h.readHeader(oldAddr)

	newPtr := h.Malloc(size, align)
	if newPtr == nil {
		return nil
	}

	n := oldSize
	if size < n {
		n = size
	}
	if n > 0 {
		copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
	}
	h.Free(ptr, align)
	return newPtr
}

func (h *HeapAllocator) Free(ptr unsafe.Pointer, _ uintptr) {
	if ptr == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.live, uintptr(ptr))
}

func (h *HeapAllocator) writeHeader(aligned, offset, size uintptr) {
	words := (*[headerWords]uintptr)(unsafe.Pointer(aligned - headerWords*unsafe.Sizeof(uintptr(0))))
	words[0] = offset
	words[1] = size
}

func (h *HeapAllocator) readHeader(aligned uintptr) (offset, size uintptr) {
	words := (*[headerWords]uintptr)(unsafe.Pointer(aligned - headerWords*unsafe.Sizeof(uintptr(0))))
	return words[0], words[1]
}
