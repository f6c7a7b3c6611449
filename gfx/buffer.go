package gfx

import (
	"fmt"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

// BufferUsage selects the upload strategy a buffer uses.
type BufferUsage int

const (
	// BufferUsageImmutable uploads once through a staging buffer and a
	// deferred copy, then discards the staging buffer.
	BufferUsageImmutable BufferUsage = iota
	// BufferUsageStream keeps host-visible mapped memory for frequent CPU
	// writes. When mapping fails no persistent staging buffer is kept;
	// each UpdateBuffer call then uploads through a new staging buffer.
	BufferUsageStream
)

// BufferDesc describes a buffer creation request.
type BufferDesc struct {
	Size    uint64
	Usage   BufferUsage
	Content []byte // optional initial content, for Immutable buffers
}

// Buffer is an opaque handle into the buffer pool.
type Buffer handle.Handle

// CreateBuffer allocates a device buffer, uploading Content through a
// staging buffer and the deferred command queue when non-empty.
func (d *Device) CreateBuffer(desc BufferDesc) (Buffer, error) {
	if desc.Size == 0 {
		return Buffer{}, fmt.Errorf("gfx: buffer size must be > 0")
	}

	res := BufferResource{Size: desc.Size, Usage: desc.Usage}

	bufCI := vkBufferCreateInfo(desc.Size, vkBufferUsageForKind(desc.Usage))
	vkHandle, result := d.cmds.CreateBuffer(d.handle, unsafe.Pointer(&bufCI))
	if result != vk.Success {
		return Buffer{}, fmt.Errorf("gfx: vkCreateBuffer failed: %s", result)
	}
	res.Handle = vkHandle

	mem, err := d.allocateDeviceMemory(res.Handle, desc.Usage == BufferUsageStream)
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, vkHandle)
		return Buffer{}, err
	}
	res.Memory = mem

	switch desc.Usage {
	case BufferUsageStream:
		if ptr, ok := d.tryMapMemory(mem, desc.Size); ok {
			res.Mapped = ptr
		}
	case BufferUsageImmutable:
		if len(desc.Content) > 0 {
			if err := d.uploadViaStaging(&res, desc.Content); err != nil {
				d.cmds.DestroyBuffer(d.handle, vkHandle)
				return Buffer{}, err
			}
		}
	}

	h := d.pools.buffers.Add(res)
	return Buffer(h), nil
}

// uploadViaStaging creates a staging buffer, copies content into it,
// schedules a buffer-to-buffer copy through the deferred queue, and
// enqueues the staging buffer as garbage once the copy has been
// recorded — this is the upload path for immutable (device-local)
// buffers, which can't be written to directly from the host, and for
// UpdateBuffer on a Stream buffer that is not host mapped.
func (d *Device) uploadViaStaging(res *BufferResource, content []byte) error {
	stagingCI := vkBufferCreateInfo(uint64(len(content)), bufferUsageTransferSrc)
	staging, result := d.cmds.CreateBuffer(d.handle, unsafe.Pointer(&stagingCI))
	if result != vk.Success {
		return fmt.Errorf("gfx: vkCreateBuffer (staging) failed: %s", result)
	}
	stagingMem, err := d.allocateDeviceMemory(staging, true)
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, staging)
		return err
	}
	if ptr, ok := d.tryMapMemory(stagingMem, uint64(len(content))); ok {
		copy(unsafe.Slice((*byte)(ptr), len(content)), content)
	}

	d.deferred.enqueueCopyBufferToBuffer(staging, res.Handle, uint64(len(content)))

	d.gc.enqueue(gcRecord{
		kind:       gcKindBuffer,
		frameStamp: d.scheduler.currentFrame,
		buffer:     staging,
		allocation: stagingMem,
	})
	res.StagingFor = staging
	return nil
}

// DestroyBuffer releases a buffer's device memory and Vulkan object.
// Staging buffers are not touched here: every staging buffer this file
// creates is enqueued on the garbage collector at upload time.
func (d *Device) DestroyBuffer(b Buffer) {
	res, ok := d.pools.buffers.Remove(handle.Handle(b))
	if !ok {
		return
	}
	d.cmds.DestroyBuffer(d.handle, res.Handle)
	d.freeDeviceMemory(res.Memory)
}

// MappedPointer returns the host pointer for a Stream buffer mapped into
// host-visible memory, or nil if the buffer is not currently mapped.
func (d *Device) MappedPointer(b Buffer) unsafe.Pointer {
	res, ok := d.pools.buffers.Data(handle.Handle(b))
	if !ok {
		return nil
	}
	return res.Mapped
}

// UpdateBuffer writes data into a Stream buffer: directly, when host
// mapped, or via a staging copy otherwise.
func (d *Device) UpdateBuffer(b Buffer, offset uint64, data []byte) error {
	res, ok := d.pools.buffers.Data(handle.Handle(b))
	if !ok {
		return fmt.Errorf("gfx: stale buffer handle")
	}
	if res.Mapped != nil {
		dst := unsafe.Slice((*byte)(unsafe.Add(res.Mapped, offset)), len(data))
		copy(dst, data)
		return nil
	}
	return d.uploadViaStaging(&res, data)
}
