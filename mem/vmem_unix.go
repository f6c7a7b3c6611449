//go:build !windows

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// unixVirtualMemory reserves address space with PROT_NONE and pages pages
// in on demand via mprotect, releasing them back with madvise(DONTNEED)
// the same way the original engine's bump/transient arenas reserve a large
// range up front and commit lazily.
type unixVirtualMemory struct{}

var vmem virtualMemory = unixVirtualMemory{}

func systemPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

func (unixVirtualMemory) reserve(size uintptr) ([]byte, error) {
	size = pageRoundUp(size, systemPageSize())
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mem: mmap reserve %d bytes: %w", size, err)
	}
	return data, nil
}

func (unixVirtualMemory) commit(mem []byte, offset, size uintptr) error {
	if size == 0 {
		return nil
	}
	region := mem[offset : offset+size]
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("mem: mprotect commit %d bytes at %d: %w", size, offset, err)
	}
	return nil
}

func (unixVirtualMemory) decommit(mem []byte, offset, size uintptr) error {
	if size == 0 {
		return nil
	}
	region := mem[offset : offset+size]
	_ = unix.Madvise(region, unix.MADV_DONTNEED)
	if err := unix.Mprotect(region, unix.PROT_NONE); err != nil {
		return fmt.Errorf("mem: mprotect decommit %d bytes at %d: %w", size, offset, err)
	}
	return nil
}

func (unixVirtualMemory) release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("mem: munmap: %w", err)
	}
	return nil
}
