package gfx

import (
	"fmt"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

const commandBufferUsageOneTimeSubmit uint32 = 0x00000001
const subpassContentsInline uint32 = 0

// CommandBufferThreadState is the per-OS-thread command recorder: one
// command pool per in-flight frame, with free and active buffer lists per
// frame slot, so a thread can record into a fresh buffer every frame
// without fighting other threads over pool access.
type CommandBufferThreadState struct {
	device *Device

	pools [MaxFramesInFlight]vk.CommandPool
	free  [MaxFramesInFlight][]vk.CommandBuffer
	used  [MaxFramesInFlight][]vk.CommandBuffer

	current       vk.CommandBuffer
	recording     bool
	wroteTopStamp bool
}

// NewRecorder creates one command recorder with its own pool per
// in-flight frame slot. Each worker goroutine that records commands
// should create one recorder and keep it for its own lifetime rather than
// sharing it with other goroutines — Vulkan command pools are not
// thread-safe, and Go gives no OS-level thread affinity for goroutines, so
// ownership here is by convention, not enforced by this package.
func (d *Device) NewRecorder() (*CommandBufferThreadState, error) {
	s := &CommandBufferThreadState{device: d}
	for i := 0; i < MaxFramesInFlight; i++ {
		ci := commandPoolCreateInfo()
		pool, result := d.cmds.CreateCommandPool(d.handle, unsafe.Pointer(&ci))
		if result != vk.Success {
			return nil, fmt.Errorf("gfx: vkCreateCommandPool failed: %s", result)
		}
		s.pools[i] = pool
	}
	return s, nil
}

// deferredRecorderState lazily creates the single recorder the deferred
// queue replays into at the start of each frame.
func (d *Device) deferredRecorderState() (*CommandBufferThreadState, error) {
	if d.deferredRecorder != nil {
		return d.deferredRecorder, nil
	}
	s, err := d.NewRecorder()
	if err != nil {
		return nil, err
	}
	d.deferredRecorder = s
	return s, nil
}

func (s *CommandBufferThreadState) slot() int {
	return int(s.device.scheduler.currentFrame % MaxFramesInFlight)
}

// begin opens a command buffer for the current frame slot, allocating a
// new one if the free list for that slot is empty, and sets it current.
func (s *CommandBufferThreadState) begin() (vk.CommandBuffer, error) {
	slot := s.slot()
	var cb vk.CommandBuffer
	if n := len(s.free[slot]); n > 0 {
		cb = s.free[slot][n-1]
		s.free[slot] = s.free[slot][:n-1]
	} else {
		ai := commandBufferAllocateInfo(s.pools[slot])
		if result := s.device.cmds.AllocateCommandBuffers(s.device.handle, unsafe.Pointer(&ai), &cb); result != vk.Success {
			return 0, fmt.Errorf("gfx: vkAllocateCommandBuffers failed: %s", result)
		}
	}

	bi := commandBufferBeginInfo()
	if result := s.device.cmds.BeginCommandBuffer(cb, unsafe.Pointer(&bi)); result != vk.Success {
		return 0, fmt.Errorf("gfx: vkBeginCommandBuffer failed: %s", result)
	}
	s.current = cb
	s.recording = true
	s.used[slot] = append(s.used[slot], cb)
	return cb, nil
}

// end closes recording on the current buffer and appends it to the
// scheduler's global pending-submit list.
func (s *CommandBufferThreadState) end() error {
	if !s.recording {
		return fmt.Errorf("gfx: end() called with no open recording")
	}
	if result := s.device.cmds.EndCommandBuffer(s.current); result != vk.Success {
		return fmt.Errorf("gfx: vkEndCommandBuffer failed: %s", result)
	}
	s.device.scheduler.enqueueSubmit(s.current)
	s.recording = false
	s.current = 0
	return nil
}

// resetFrame recycles a frame slot's used buffers back to its free list.
// Called by the scheduler once a slot's fence has been waited on, since
// the pool's buffers are then safe to re-record.
func (s *CommandBufferThreadState) resetFrame(slot int) {
	s.free[slot] = append(s.free[slot], s.used[slot]...)
	s.used[slot] = s.used[slot][:0]
}

// CmdBeginSwapchainRenderPass begins the swapchain renderpass for the
// currently acquired image, clearing its color attachment to color. The
// begin info also carries a depth clear value of 1.0, which the
// color-only render pass does not use.
func (d *Device) CmdBeginSwapchainRenderPass(s *CommandBufferThreadState, color [4]float32) error {
	if d.swapchain == nil {
		return fmt.Errorf("gfx: no swapchain bound")
	}
	idx := d.scheduler.currentImageIndex
	bi := d.swapchain.renderPassBeginInfo(idx, color)
	d.cmds.CmdBeginRenderPass(s.current, unsafe.Pointer(&bi), subpassContentsInline)
	return nil
}

// CmdEndSwapchainRenderPass ends the current swapchain renderpass. It
// writes no timestamp: when the device supports timestamps it only logs
// at debug level that the write was skipped.
func (d *Device) CmdEndSwapchainRenderPass(s *CommandBufferThreadState) {
	d.cmds.CmdEndRenderPass(s.current)
	if d.supportsTimestamps {
		// Timestamp query pools are out of scope for this package's
		// trimmed command surface; the hook point is kept so a caller
		// wiring GPU profiling can extend this without touching the
		// render pass boundary logic.
		Logger().Debug("frame timestamp write skipped: query pool not wired")
	}
}
