package mem

import (
	"errors"
	"unsafe"
)

// ErrOutOfRange is returned by the bump arena and transient allocator when
// an allocation would push the cumulative offset past the reserved range.
var ErrOutOfRange = errors.New("mem: allocation exceeds reserved range")

const bumpDebugFill = 0xFE

// BumpArena is a growing, bump-pointer arena over a virtual range reserved
// up front and committed lazily in page-aligned chunks as the high-water
// mark grows. Realloc of the most recent allocation extends in place;
// every other allocation copies. Free is a no-op — the whole arena is
// freed at once by Reset.
//
// A sizeof(usize) header precedes every returned pointer so Realloc can
// recover the old size without the caller passing it back.
type BumpArena struct {
	mem         []byte
	reserveSize uintptr
	pageSize    uintptr
	committed   uintptr
	offset      uintptr

	hasLast  bool
	lastOff  uintptr
	lastSize uintptr

	debugMode  bool
	debugHeap  *HeapAllocator
	debugAlloc map[uintptr]unsafe.Pointer
}

const bumpHeaderSize = unsafe.Sizeof(uintptr(0))

// NewBumpArena reserves reserveSize bytes of virtual address space (no
// physical memory is committed yet) and returns an arena that commits in
// pageSize-rounded chunks as allocations grow the high-water mark. When
// debugMode is set, every allocation is instead routed through a plain
// heap allocator with a tracked pointer list, trading the real
// bump/commit behavior for ASan/race-detector-friendly individually
// freeable blocks — useful for tests exercising arena-using code without
// tripping use-after-reset false positives.
func NewBumpArena(reserveSize, pageSize uintptr, debugMode bool) (*BumpArena, error) {
	if pageSize == 0 {
		pageSize = systemPageSize()
	}
	a := &BumpArena{
		reserveSize: reserveSize,
		pageSize:    pageSize,
		debugMode:   debugMode,
	}
	if debugMode {
		a.debugHeap = NewHeap()
		a.debugAlloc = make(map[uintptr]unsafe.Pointer)
		return a, nil
	}
	mem, err := vmem.reserve(reserveSize)
	if err != nil {
		return nil, err
	}
	a.mem = mem
	a.reserveSize = uintptr(len(mem))
	return a, nil
}

func (a *BumpArena) Kind() Kind { return KindBump }

func (a *BumpArena) Malloc(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	if a.debugMode {
		p := a.debugHeap.Malloc(size, align)
		if p != nil {
			a.debugAlloc[uintptr(p)] = p
		}
		return p
	}

	align = effectiveAlign(align)
	alignedOff := alignUp(a.offset+bumpHeaderSize, align)
	end := alignedOff + size
	if end > a.reserveSize {
		runFailCallback()
		return nil
	}
	if err := a.ensureCommitted(end); err != nil {
		runFailCallback()
		return nil
	}

	a.writeSizeHeader(alignedOff, size)
	a.offset = end
	a.hasLast = true
	a.lastOff = alignedOff
	a.lastSize = size
	return unsafe.Pointer(&a.mem[alignedOff])
}

func (a *BumpArena) Realloc(ptr unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	if ptr == nil {
		return a.Malloc(size, align)
	}
	if size == 0 {
		a.Free(ptr, align)
		return nil
	}
	if a.debugMode {
		delete(a.debugAlloc, uintptr(ptr))
		p := a.debugHeap.Realloc(ptr, size, align)
		if p != nil {
			a.debugAlloc[uintptr(p)] = p
		}
		return p
	}

	off := uintptr(ptr) - uintptr(unsafe.Pointer(&a.mem[0]))
	oldSize := a.readSizeHeader(off)

	if a.hasLast && off == a.lastOff {
		// Fast path: grow the most recent allocation in place.
		newEnd := off + size
		if newEnd > a.reserveSize {
			runFailCallback()
			return nil
		}
		if err := a.ensureCommitted(newEnd); err != nil {
			runFailCallback()
			return nil
		}
		a.writeSizeHeader(off, size)
		a.offset = newEnd
		a.lastSize = size
		return ptr
	}

	newPtr := a.Malloc(size, align)
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
	return newPtr
}

// Free is a no-op: the bump arena is reclaimed wholesale by Reset.
func (a *BumpArena) Free(ptr unsafe.Pointer, align uintptr) {
	if a.debugMode && ptr != nil {
		delete(a.debugAlloc, uintptr(ptr))
		a.debugHeap.Free(ptr, align)
	}
}

// Reset rewinds the arena to empty. The active region is filled with a
// debug-bait byte before being decommitted, and the whole committed range
// is returned to the OS — the reservation itself stays alive for reuse.
func (a *BumpArena) Reset() {
	if a.debugMode {
		for _, p := range a.debugAlloc {
			a.debugHeap.Free(p, MachineAlignment)
		}
		a.debugAlloc = make(map[uintptr]unsafe.Pointer)
		a.offset = 0
		a.hasLast = false
		return
	}

	if a.offset > 0 {
		for i := uintptr(0); i < a.offset; i++ {
			a.mem[i] = bumpDebugFill
		}
	}
	if a.committed > 0 {
		_ = vmem.decommit(a.mem, 0, a.committed)
		a.committed = 0
	}
	a.offset = 0
	a.hasLast = false
}

// Release returns the entire virtual reservation to the OS. The arena must
// not be used afterward.
func (a *BumpArena) Release() error {
	if a.debugMode {
		return nil
	}
	if a.mem == nil {
		return nil
	}
	err := vmem.release(a.mem)
	a.mem = nil
	a.committed = 0
	a.offset = 0
	return err
}

func (a *BumpArena) ensureCommitted(end uintptr) error {
	if end <= a.committed {
		return nil
	}
	target := a.committed
	if target == 0 {
		target = a.pageSize
	}
	for target < end {
		target *= 2
	}
	if target > a.reserveSize {
		target = a.reserveSize
	}
	target = pageRoundUp(target, a.pageSize)
	if target > a.reserveSize {
		target = a.reserveSize
	}
	if target < end {
		return ErrOutOfRange
	}
	if err := vmem.commit(a.mem, a.committed, target-a.committed); err != nil {
		return err
	}
	a.committed = target
	return nil
}

func (a *BumpArena) writeSizeHeader(alignedOff, size uintptr) {
	p := (*uintptr)(unsafe.Pointer(&a.mem[alignedOff-bumpHeaderSize]))
	*p = size
}

func (a *BumpArena) readSizeHeader(alignedOff uintptr) uintptr {
	p := (*uintptr)(unsafe.Pointer(&a.mem[alignedOff-bumpHeaderSize]))
	return *p
}

// Offset returns the current bump offset, exposed for tests and the
// engine's memory-stats view.
func (a *BumpArena) Offset() uintptr { return a.offset }
