// Package vk provides the trimmed Pure-Go Vulkan surface this engine's
// device abstraction actually drives: buffer/image/pipeline/descriptor
// object creation, command recording, fence/semaphore sync, and swapchain
// presentation. It is not a general-purpose Vulkan binding; it loads only
// the entry points gfx needs and exposes them as typed Go methods instead
// of raw function pointers.
//
// Entry points are resolved through vkGetInstanceProcAddr/
// vkGetDeviceProcAddr against the platform-specific Vulkan loader library,
// and dispatched through a small set of reusable call signatures instead
// of one generated thunk per function.
package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	libHandle             unsafe.Pointer
	vkGetInstanceProcAddr unsafe.Pointer
	vkGetDeviceProcAddr   unsafe.Pointer
	cifGetInstanceProc    types.CallInterface
	cifGetDeviceProc      types.CallInterface

	initOnce sync.Once
	initErr  error
)

func libraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib"
	default:
		return "libvulkan.so.1"
	}
}

// Init loads the Vulkan loader library and prepares the proc-address call
// interfaces. Safe to call more than once; only the first call does work.
func Init() error {
	initOnce.Do(func() { initErr = doInit() })
	return initErr
}

func doInit() error {
	var err error
	libHandle, err = ffi.LoadLibrary(libraryName())
	if err != nil {
		return fmt.Errorf("vk: load %s: %w", libraryName(), err)
	}
	vkGetInstanceProcAddr, err = ffi.GetSymbol(libHandle, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: vkGetInstanceProcAddr not found: %w", err)
	}

	err = ffi.PrepareCallInterface(&cifGetInstanceProc, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor})
	if err != nil {
		return fmt.Errorf("vk: prepare GetInstanceProcAddr signature: %w", err)
	}
	err = ffi.PrepareCallInterface(&cifGetDeviceProc, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor})
	if err != nil {
		return fmt.Errorf("vk: prepare GetDeviceProcAddr signature: %w", err)
	}
	return prepareSignatures()
}

// GetInstanceProcAddr resolves a global or instance-level function. Pass
// instance 0 for functions callable before an instance exists.
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	if vkGetInstanceProcAddr == nil {
		return nil
	}
	cname := append([]byte(name), 0)
	namePtr := unsafe.Pointer(&cname[0])
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetInstanceProc, vkGetInstanceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// SetDeviceProcAddr primes vkGetDeviceProcAddr after instance creation.
// Some drivers return a null device-level loader from the global
// vkGetInstanceProcAddr until an instance exists, so this must run once
// an Instance is available and before any device-level resolution.
func SetDeviceProcAddr(instance Instance) {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr resolves a device-level function.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if vkGetDeviceProcAddr == nil {
			return nil
		}
	}
	cname := append([]byte(name), 0)
	namePtr := unsafe.Pointer(&cname[0])
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetDeviceProc, vkGetDeviceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// Close releases the Vulkan loader library.
func Close() error {
	if libHandle == nil {
		return nil
	}
	err := ffi.FreeLibrary(libHandle)
	libHandle = nil
	vkGetInstanceProcAddr = nil
	vkGetDeviceProcAddr = nil
	return err
}
