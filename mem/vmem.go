package mem

// virtualMemory's reserve reserves a contiguous virtual address range of
// size bytes without committing physical memory, returning a byte slice
// spanning the whole reservation. Accessing a page that has not been
// committed via commit faults; callers (BumpArena, TransientContext) never
// read or write past their own committed high-water mark.
//
// commit/decommit operate on byte-offset sub-ranges of the slice reserve
// returned; release frees the whole reservation.
//
// Platform-specific implementations: vmem_unix.go (mmap/mprotect/madvise,
// covers Linux, Darwin, and BSDs via golang.org/x/sys/unix) and
// vmem_windows.go (VirtualAlloc/VirtualFree via golang.org/x/sys/windows).
type virtualMemory interface {
	reserve(size uintptr) ([]byte, error)
	commit(mem []byte, offset, size uintptr) error
	decommit(mem []byte, offset, size uintptr) error
	release(mem []byte) error
}

// pageRoundUp rounds size up to the next multiple of pageSize.
func pageRoundUp(size, pageSize uintptr) uintptr {
	if pageSize == 0 {
		return size
	}
	return (size + pageSize - 1) &^ (pageSize - 1)
}
