package gfx

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

// frameScheduler drives the per-frame fence wait/acquire/submit/present
// cycle. It keeps one fence per in-flight frame slot in a fixed
// MaxFramesInFlight array rather than a growable per-submission pool,
// since the number of outstanding frames is bounded up front.
type frameScheduler struct {
	device *Device

	inFlightFences     [MaxFramesInFlight]vk.Fence
	imageAvailableSems [MaxFramesInFlight]vk.Semaphore
	renderFinishedSems [MaxFramesInFlight]vk.Semaphore

	currentFrame uint64 // monotonic frame counter, published as the aging hint
	slot         int    // currentFrame mod MaxFramesInFlight

	pendingSubmitMu Spinlock
	pendingSubmit   []vk.CommandBuffer

	currentImageIndex uint32
}

func newFrameScheduler(d *Device) *frameScheduler {
	s := &frameScheduler{device: d}
	for i := 0; i < MaxFramesInFlight; i++ {
		fenceCI := signaledFenceCreateInfo()
		fence, result := d.cmds.CreateFence(d.handle, unsafe.Pointer(&fenceCI))
		if result != vk.Success {
			Logger().Error("vkCreateFence failed", "slot", i, "result", result.String())
		}
		s.inFlightFences[i] = fence

		semCI := semaphoreCreateInfo()
		sem, _ := d.cmds.CreateSemaphore(d.handle, unsafe.Pointer(&semCI))
		s.imageAvailableSems[i] = sem
		sem2, _ := d.cmds.CreateSemaphore(d.handle, unsafe.Pointer(&semCI))
		s.renderFinishedSems[i] = sem2
	}
	return s
}

// BeginFrame waits on the current slot's fence, drains the deferred
// command queue, and acquires the next swapchain image.
func (s *frameScheduler) BeginFrame() error {
	d := s.device
	fence := s.inFlightFences[s.slot]
	if result := d.cmds.WaitForFences(d.handle, []vk.Fence{fence}, true, ^uint64(0)); result != vk.Success {
		return fmt.Errorf("gfx: vkWaitForFences failed: %s", result)
	}
	if result := d.cmds.ResetFences(d.handle, []vk.Fence{fence}); result != vk.Success {
		return fmt.Errorf("gfx: vkResetFences failed: %s", result)
	}

	if err := d.deferred.drain(); err != nil {
		return err
	}

	if d.swapchain == nil {
		return nil
	}
	imageIndex, result := d.cmds.AcquireNextImageKHR(d.handle, d.swapchain.handle, ^uint64(0), s.imageAvailableSems[s.slot], 0)
	switch result {
	case vk.Success, vk.SuboptimalKHR:
		s.currentImageIndex = imageIndex
		return nil
	case vk.ErrorOutOfDateKHR:
		Logger().Warn("swapchain out of date on acquire, resizing")
		if err := d.swapchain.recreate(); err != nil {
			return err
		}
		return s.BeginFrame()
	default:
		return fmt.Errorf("gfx: vkAcquireNextImageKHR failed: %s", result)
	}
}

// EndFrame snapshots the pending-submit list, submits it, presents the
// acquired image, advances the frame index, and runs garbage collection.
func (s *frameScheduler) EndFrame() error {
	d := s.device

	s.pendingSubmitMu.Lock()
	buffers := s.pendingSubmit
	s.pendingSubmit = nil
	s.pendingSubmitMu.Unlock()

	fence := s.inFlightFences[s.slot]
	waitSem := s.imageAvailableSems[s.slot]
	signalSem := s.renderFinishedSems[s.slot]

	si := submitInfo(buffers, waitSem, signalSem)
	if result := d.cmds.QueueSubmit(d.queue, unsafe.Pointer(&si), fence); result != vk.Success {
		return fmt.Errorf("gfx: vkQueueSubmit failed: %s", result)
	}

	if d.swapchain != nil {
		pi := presentInfo(d.swapchain.handle, s.currentImageIndex, signalSem)
		result := d.cmds.QueuePresentKHR(d.queue, unsafe.Pointer(&pi))
		if result == vk.ErrorOutOfDateKHR {
			Logger().Warn("swapchain out of date on present, resizing")
			if err := d.swapchain.recreate(); err != nil {
				return err
			}
		} else if result != vk.Success && result != vk.SuboptimalKHR {
			return fmt.Errorf("gfx: vkQueuePresentKHR failed: %s", result)
		}
	}

	s.currentFrame++
	s.slot = int(s.currentFrame % MaxFramesInFlight)

	d.gc.collect(false)
	return nil
}

// enqueueSubmit appends a recorded command buffer to the pending-submit
// list consumed at the next EndFrame.
func (s *frameScheduler) enqueueSubmit(cb vk.CommandBuffer) {
	s.pendingSubmitMu.Lock()
	s.pendingSubmit = append(s.pendingSubmit, cb)
	s.pendingSubmitMu.Unlock()
}

func (s *frameScheduler) waitAllFences() error {
	fences := make([]vk.Fence, 0, MaxFramesInFlight)
	for _, f := range s.inFlightFences {
		if f != 0 {
			fences = append(fences, f)
		}
	}
	if len(fences) == 0 {
		return nil
	}
	if result := s.device.cmds.WaitForFences(s.device.handle, fences, true, ^uint64(0)); result != vk.Success {
		return fmt.Errorf("gfx: vkWaitForFences failed: %s", result)
	}
	return nil
}

// Spinlock is a minimal test-and-set mutex matching the engine's
// lock-the-briefest-section idiom for the global pending-submit list,
// mirroring mem.Spinlock but kept independent so gfx never imports mem
// for a concern this small.
type Spinlock struct{ flag atomic.Uint32 }

func (s *Spinlock) Lock() {
	for !s.flag.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (s *Spinlock) Unlock() {
	s.flag.Store(0)
}
