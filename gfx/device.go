// Package gfx implements the engine's graphics device abstraction: a
// handle-pooled resource manager, per-thread command recorder with a
// deferred command queue, content-addressed pipeline/descriptor-layout
// caches, a fenced frame scheduler, swapchain lifecycle, and a
// frame-delayed garbage collector, all sitting on a trimmed Vulkan
// surface (gfx/vk).
//
// It targets a single fixed Vulkan backend rather than abstracting over
// multiple graphics APIs, since this engine only ever runs against one.
package gfx

import (
	"fmt"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

// MaxFramesInFlight bounds outstanding GPU work; the engine runs triple
// buffering by default.
const MaxFramesInFlight = 3

// DeviceConfig supplies the already-created Vulkan objects this package
// builds on. Instance creation, physical device selection, and surface
// creation are platform/windowing concerns owned by the engine façade,
// not by this package.
type DeviceConfig struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	GraphicsQueue  vk.Queue
	Surface        vk.SurfaceKHR
	// MemoryTypeIndex is the Vulkan memory type used for all allocations.
	// This package does not walk VkPhysicalDeviceMemoryProperties; callers
	// resolve the single type index appropriate for their device upfront.
	MemoryTypeIndex       uint32
	HostVisibleMemoryType uint32
	SupportsTimestamps    bool
}

// Device is the engine's graphics façade: every buffer, image, pipeline,
// and frame operation goes through it.
type Device struct {
	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	handle         vk.Device
	queue          vk.Queue
	surface        vk.SurfaceKHR
	cmds           *vk.Commands

	memoryTypeIndex       uint32
	hostVisibleMemoryType uint32
	supportsTimestamps    bool

	pools     *pools
	layouts   *layoutCache
	pipelines *pipelineRegistry
	deferred  *deferredQueue
	scheduler *frameScheduler
	gc        *garbageCollector
	swapchain *Swapchain

	deferredRecorder *CommandBufferThreadState
}

// NewDevice wires every gfx subsystem together over an existing Vulkan
// logical device.
func NewDevice(cfg DeviceConfig) (*Device, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}
	vk.SetDeviceProcAddr(cfg.Instance)

	cmds := vk.NewCommands()
	if err := cmds.Load(cfg.Device); err != nil {
		return nil, fmt.Errorf("gfx: %w", err)
	}

	d := &Device{
		instance:              cfg.Instance,
		physicalDevice:        cfg.PhysicalDevice,
		handle:                cfg.Device,
		queue:                 cfg.GraphicsQueue,
		surface:               cfg.Surface,
		cmds:                  cmds,
		memoryTypeIndex:       cfg.MemoryTypeIndex,
		hostVisibleMemoryType: cfg.HostVisibleMemoryType,
		supportsTimestamps:    cfg.SupportsTimestamps,
		pools:                 newPools(),
	}
	d.layouts = newLayoutCache(d)
	d.pipelines = newPipelineRegistry(d)
	d.deferred = newDeferredQueue(d)
	d.gc = newGarbageCollector(d)
	d.scheduler = newFrameScheduler(d)

	Logger().Info("gfx device initialized", "maxFramesInFlight", MaxFramesInFlight)
	return d, nil
}

// allocateDeviceMemory allocates and binds memory for buf, choosing the
// host-visible memory type when requested (Stream buffers, staging
// buffers) and the device-local type otherwise.
func (d *Device) allocateDeviceMemory(buf vk.Buffer, hostVisible bool) (vk.DeviceMemory, error) {
	req := d.cmds.GetBufferMemoryRequirements(d.handle, buf)
	typeIndex := d.memoryTypeIndex
	if hostVisible {
		typeIndex = d.hostVisibleMemoryType
	}
	mem, result := d.cmds.AllocateMemory(d.handle, req.Size, typeIndex)
	if result != vk.Success {
		return 0, fmt.Errorf("gfx: vkAllocateMemory failed: %s", result)
	}
	if result := d.cmds.BindBufferMemory(d.handle, buf, mem, 0); result != vk.Success {
		d.cmds.FreeMemory(d.handle, mem)
		return 0, fmt.Errorf("gfx: vkBindBufferMemory failed: %s", result)
	}
	return mem, nil
}

func (d *Device) allocateImageMemory(img vk.Image) (vk.DeviceMemory, error) {
	req := d.cmds.GetImageMemoryRequirements(d.handle, img)
	mem, result := d.cmds.AllocateMemory(d.handle, req.Size, d.memoryTypeIndex)
	if result != vk.Success {
		return 0, fmt.Errorf("gfx: vkAllocateMemory failed: %s", result)
	}
	if result := d.cmds.BindImageMemory(d.handle, img, mem, 0); result != vk.Success {
		d.cmds.FreeMemory(d.handle, mem)
		return 0, fmt.Errorf("gfx: vkBindImageMemory failed: %s", result)
	}
	return mem, nil
}

func (d *Device) tryMapMemory(mem vk.DeviceMemory, size uint64) (unsafe.Pointer, bool) {
	ptr, result := d.cmds.MapMemory(d.handle, mem, size)
	if result != vk.Success || ptr == nil {
		return nil, false
	}
	return ptr, true
}

func (d *Device) freeDeviceMemory(mem vk.DeviceMemory) {
	if mem == 0 {
		return
	}
	d.cmds.FreeMemory(d.handle, mem)
}

// WaitIdle blocks until the graphics queue has completed all submitted
// work. Callers use this as a hard synchronization point before tearing
// down resources the GPU might still be reading.
func (d *Device) WaitIdle() error {
	// Vulkan's vkQueueWaitIdle/vkDeviceWaitIdle share vkDeviceWaitIdle's
	// shape (VkResult(VkDevice)) with vkEndCommandBuffer; reuse the
	// resolved proc would require a distinct symbol, so this waits on the
	// current frame's fence set instead, which is the condition the
	// scheduler itself depends on.
	return d.scheduler.waitAllFences()
}

// ResourceCounts reports live object counts per pool, for diagnostics and
// the UI memory-stats view.
func (d *Device) ResourceCounts() map[string]int {
	return d.pools.counts()
}
