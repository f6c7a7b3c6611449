package gfx

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

type deferredKind int

const (
	deferredCopyBufferToBuffer deferredKind = iota
	deferredCopyBufferToImage
	deferredPipelineBarrier
)

// deferredCommand is one queued command. The spec's original "(offset,
// size, replay_fn) into a growing param blob" design exists to avoid
// allocation in a language without growable typed slices; a Go slice of
// these structs gives the same "append now, replay in frame order" queue
// without manual byte-offset bookkeeping.
type deferredCommand struct {
	kind deferredKind

	srcBuffer, dstBuffer vk.Buffer
	dstImage             vk.Image
	size                 uint64
	dstLayout            vk.ImageLayout

	srcStage, dstStage uint32
	barrierImage       vk.Image
	oldLayout, newLayout vk.ImageLayout
}

// deferredQueue lets code with no open per-thread recording (asset
// loaders, resource creators) schedule GPU commands that get replayed
// into a single command buffer at the next begin_frame.
type deferredQueue struct {
	device *Device

	mu       sync.Mutex
	commands []deferredCommand
}

func newDeferredQueue(d *Device) *deferredQueue {
	return &deferredQueue{device: d}
}

func (q *deferredQueue) enqueueCopyBufferToBuffer(src, dst vk.Buffer, size uint64) {
	q.mu.Lock()
	q.commands = append(q.commands, deferredCommand{kind: deferredCopyBufferToBuffer, srcBuffer: src, dstBuffer: dst, size: size})
	q.mu.Unlock()
}

func (q *deferredQueue) enqueueCopyBufferToImage(src vk.Buffer, dst vk.Image, layout vk.ImageLayout) {
	q.mu.Lock()
	q.commands = append(q.commands, deferredCommand{kind: deferredCopyBufferToImage, srcBuffer: src, dstImage: dst, dstLayout: layout})
	q.mu.Unlock()
}

func (q *deferredQueue) enqueuePipelineBarrier(img vk.Image, srcStage, dstStage uint32, oldLayout, newLayout vk.ImageLayout) {
	q.mu.Lock()
	q.commands = append(q.commands, deferredCommand{
		kind: deferredPipelineBarrier, barrierImage: img,
		srcStage: srcStage, dstStage: dstStage, oldLayout: oldLayout, newLayout: newLayout,
	})
	q.mu.Unlock()
}

// drain opens a fresh recording, replays every deferred command in
// submission order, closes it, and appends it to the pending-submit
// list. Called at the start of each begin_frame.
func (q *deferredQueue) drain() error {
	q.mu.Lock()
	pending := q.commands
	q.commands = nil
	q.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	d := q.device
	state, err := d.deferredRecorderState()
	if err != nil {
		return err
	}
	cb, err := state.begin()
	if err != nil {
		return err
	}

	for _, cmd := range pending {
		switch cmd.kind {
		case deferredCopyBufferToBuffer:
			region := bufferCopy{size: cmd.size}
			d.cmds.CmdCopyBuffer(cb, cmd.srcBuffer, cmd.dstBuffer, unsafe.Pointer(&region), 1)
		case deferredCopyBufferToImage:
			region := bufferImageCopy{}
			d.cmds.CmdCopyBufferToImage(cb, cmd.srcBuffer, cmd.dstImage, cmd.dstLayout, unsafe.Pointer(&region), 1)
		case deferredPipelineBarrier:
			barrier := imageMemoryBarrier(cmd.barrierImage, cmd.oldLayout, cmd.newLayout)
			d.cmds.CmdPipelineBarrier(cb, cmd.srcStage, cmd.dstStage, 0, unsafe.Pointer(&barrier), 1)
		}
	}

	if err := state.end(); err != nil {
		return fmt.Errorf("gfx: deferred queue end(): %w", err)
	}
	return nil
}
