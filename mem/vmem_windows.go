//go:build windows

package mem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsVirtualMemory mirrors unixVirtualMemory using
// VirtualAlloc(MEM_RESERVE)/VirtualAlloc(MEM_COMMIT)/VirtualFree(MEM_DECOMMIT)
// to implement the same reserve-then-commit pattern on Windows.
type windowsVirtualMemory struct{}

var vmem virtualMemory = windowsVirtualMemory{}

func systemPageSize() uintptr {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uintptr(info.PageSize)
}

func (windowsVirtualMemory) reserve(size uintptr) ([]byte, error) {
	size = pageRoundUp(size, systemPageSize())
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("mem: VirtualAlloc reserve %d bytes: %w", size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (windowsVirtualMemory) commit(mem []byte, offset, size uintptr) error {
	if size == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(&mem[0]))
	_, err := windows.VirtualAlloc(base+offset, size, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return fmt.Errorf("mem: VirtualAlloc commit %d bytes at %d: %w", size, offset, err)
	}
	return nil
}

func (windowsVirtualMemory) decommit(mem []byte, offset, size uintptr) error {
	if size == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(base+offset, size, windows.MEM_DECOMMIT); err != nil {
		return fmt.Errorf("mem: VirtualFree decommit %d bytes at %d: %w", size, offset, err)
	}
	return nil
}

func (windowsVirtualMemory) release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(base, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("mem: VirtualFree release: %w", err)
	}
	return nil
}
