package gfx

import (
	"sync"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

type gcKind int

const (
	gcKindBuffer gcKind = iota
	gcKindImage
	gcKindPipeline
)

// gcRecord is one FIFO entry: an object plus the frame it was retired on.
type gcRecord struct {
	kind       gcKind
	frameStamp uint64

	buffer     vk.Buffer
	image      vk.Image
	pipeline   vk.Pipeline
	allocation vk.DeviceMemory

	poolHandle handle.Handle // set when the record also frees a pool slot
}

// garbageCollector defers destruction of retired GPU objects until every
// in-flight frame that might still reference them has completed. Destroying
// a resource the instant its last reference drops would race the GPU,
// which may still be executing commands recorded against an earlier frame.
type garbageCollector struct {
	device *Device

	mu      sync.Mutex
	records []gcRecord
}

func newGarbageCollector(d *Device) *garbageCollector {
	return &garbageCollector{device: d}
}

func (g *garbageCollector) enqueue(r gcRecord) {
	g.mu.Lock()
	g.records = append(g.records, r)
	g.mu.Unlock()
}

// collect destroys every record whose frame_stamp is more than
// MaxFramesInFlight frames old, or every record when force is true. Must
// run only from the engine thread at end-of-frame, since destroying
// objects from another thread while they are submitted to the queue would
// race the GPU.
func (g *garbageCollector) collect(force bool) {
	g.mu.Lock()
	current := g.device.scheduler.currentFrame
	kept := g.records[:0]
	var toDestroy []gcRecord
	for _, r := range g.records {
		if force || current > r.frameStamp+MaxFramesInFlight {
			toDestroy = append(toDestroy, r)
		} else {
			kept = append(kept, r)
		}
	}
	g.records = kept
	g.mu.Unlock()

	for _, r := range toDestroy {
		g.destroy(r)
	}
}

func (g *garbageCollector) destroy(r gcRecord) {
	d := g.device
	switch r.kind {
	case gcKindBuffer:
		d.cmds.DestroyBuffer(d.handle, r.buffer)
	case gcKindImage:
		d.cmds.DestroyImage(d.handle, r.image)
	case gcKindPipeline:
		d.cmds.DestroyPipeline(d.handle, r.pipeline)
	}
	if r.allocation != 0 {
		d.cmds.FreeMemory(d.handle, r.allocation)
	}
}
