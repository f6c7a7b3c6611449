// Package engine wires the gfx device, the memory arenas, and the
// frame-facing API the rest of the game uses.
package engine

import (
	"sync"
	"unsafe"

	"github.com/forgelabs/enginecore/mem"
)

// ProxyAllocator is a named wrapper over a shared backing allocator,
// tracking its own live-byte/live-count stats for the UI memory-stats
// view without owning any memory itself.
type ProxyAllocator struct {
	name  string
	inner mem.Allocator

	mu         sync.Mutex
	liveBytes  uintptr
	liveCount  int
	sizeByAddr map[unsafe.Pointer]uintptr
}

// NewProxyAllocator wraps inner under name. It does not register the
// proxy; only proxies created through ArenaRegistry.Register appear in
// ArenaRegistry.Stats.
func NewProxyAllocator(name string, inner mem.Allocator) *ProxyAllocator {
	return &ProxyAllocator{name: name, inner: inner, sizeByAddr: make(map[unsafe.Pointer]uintptr)}
}

func (p *ProxyAllocator) Kind() mem.Kind { return mem.KindProxy }

func (p *ProxyAllocator) Malloc(size, align uintptr) unsafe.Pointer {
	ptr := p.inner.Malloc(size, align)
	if ptr == nil {
		return nil
	}
	p.mu.Lock()
	p.liveBytes += size
	p.liveCount++
	p.sizeByAddr[ptr] = size
	p.mu.Unlock()
	return ptr
}

func (p *ProxyAllocator) Realloc(ptr unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	p.mu.Lock()
	oldSize := p.sizeByAddr[ptr]
	delete(p.sizeByAddr, ptr)
	p.mu.Unlock()

	out := p.inner.Realloc(ptr, size, align)

	p.mu.Lock()
	if ptr != nil {
		p.liveBytes -= oldSize
		p.liveCount--
	}
	if out != nil {
		p.liveBytes += size
		p.liveCount++
		p.sizeByAddr[out] = size
	}
	p.mu.Unlock()
	return out
}

func (p *ProxyAllocator) Free(ptr unsafe.Pointer, align uintptr) {
	if ptr == nil {
		return
	}
	p.inner.Free(ptr, align)
	p.mu.Lock()
	if size, ok := p.sizeByAddr[ptr]; ok {
		p.liveBytes -= size
		p.liveCount--
		delete(p.sizeByAddr, ptr)
	}
	p.mu.Unlock()
}

// Stats is a snapshot of one proxy's live allocation state, for the UI
// memory-stats view.
type Stats struct {
	Name      string
	LiveBytes uintptr
	LiveCount int
}

func (p *ProxyAllocator) stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Name: p.name, LiveBytes: p.liveBytes, LiveCount: p.liveCount}
}

// ArenaRegistry owns the main virtual-memory arena and every named proxy
// allocator drawn from it.
type ArenaRegistry struct {
	main *mem.BumpArena

	mu      sync.Mutex
	proxies map[string]*ProxyAllocator

	Engine *ProxyAllocator
	Jobs   *ProxyAllocator
}

// NewArenaRegistry reserves the main arena and creates the two
// always-present "Engine" and "Jobs" proxies.
func NewArenaRegistry(reserveSize uintptr) (*ArenaRegistry, error) {
	main, err := mem.NewBumpArena(reserveSize, 0, false)
	if err != nil {
		return nil, err
	}
	r := &ArenaRegistry{main: main, proxies: make(map[string]*ProxyAllocator)}
	r.Engine = r.Register("Engine")
	r.Jobs = r.Register("Jobs")
	return r, nil
}

// Register creates (or returns, if already present) a named proxy over
// the main arena.
func (r *ArenaRegistry) Register(name string) *ProxyAllocator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.proxies[name]; ok {
		return p
	}
	p := NewProxyAllocator(name, r.main)
	r.proxies[name] = p
	return p
}

// Stats reports every registered proxy's live allocation snapshot, in
// registration order is not guaranteed (map iteration).
func (r *ArenaRegistry) Stats() []Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stats, 0, len(r.proxies))
	for _, p := range r.proxies {
		out = append(out, p.stats())
	}
	return out
}

// Release frees the main arena's reserved virtual memory.
func (r *ArenaRegistry) Release() error {
	return r.main.Release()
}
