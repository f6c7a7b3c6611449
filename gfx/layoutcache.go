package gfx

import (
	"fmt"
	"hash/fnv"
	"sync"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

// DescriptorBinding is one binding record in a descriptor-set-layout
// request: the shader-parameter index, descriptor type, array count, and
// visibility stage mask.
type DescriptorBinding struct {
	Index      uint32
	Type       vk.DescriptorType
	Count      uint32
	Visibility vk.ShaderStageFlags
	Name       string
}

// descriptorIndexingVariableCountBit is used when a binding's Count > 1
// and the descriptor-indexing extension is enabled.
const descriptorIndexingVariableCountBit = 0x00000010

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags vk.ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// layoutCache content-addresses descriptor-set-layout and pipeline-layout
// objects by a hash of their defining fields, refcounting hits and
// creating Vulkan objects only on miss. Unlike a free-list pool, reuse is
// decided by the cache key rather than by slot availability: two callers
// that describe the same layout share one Vulkan object.
type layoutCache struct {
	device *Device

	mu               sync.Mutex
	descSetByHash    map[uint64]handle.Handle
	pipeLayoutByHash map[uint64]handle.Handle

	descriptorIndexingEnabled bool
}

func newLayoutCache(d *Device) *layoutCache {
	return &layoutCache{
		device:           d,
		descSetByHash:    make(map[uint64]handle.Handle),
		pipeLayoutByHash: make(map[uint64]handle.Handle),
	}
}

func hashDescriptorSetLayout(bindings []DescriptorBinding) uint64 {
	h := fnv.New64a()
	for _, b := range bindings {
		fmt.Fprintf(h, "%d|%d|%d|%d|%s|", b.Index, b.Type, b.Count, b.Visibility, b.Name)
	}
	return h.Sum64()
}

// AcquireDescriptorSetLayout returns a cached layout handle on hit
// (bumping its refcount) or creates and caches a new one on miss.
func (c *layoutCache) AcquireDescriptorSetLayout(bindings []DescriptorBinding) (handle.Handle, error) {
	key := hashDescriptorSetLayout(bindings)

	c.mu.Lock()
	if h, ok := c.descSetByHash[key]; ok {
		c.device.pools.descriptorSetLayouts.Mutate(h, func(r *DescriptorSetLayoutResource) { r.RefCount++ })
		c.mu.Unlock()
		Logger().Debug("descriptor set layout cache hit", "hash", key)
		return h, nil
	}
	c.mu.Unlock()

	vkBindings := make([]descriptorSetLayoutBinding, len(bindings))
	for i, b := range bindings {
		vkBindings[i] = descriptorSetLayoutBinding{
			binding:         b.Index,
			descriptorType:  uint32(b.Type),
			descriptorCount: b.Count,
			stageFlags:      uint32(b.Visibility),
		}
	}
	var flags uint32
	if anyCountAbove1(bindings) && c.descriptorIndexingEnabled {
		flags = descriptorIndexingVariableCountBit
	}
	ci := descriptorSetLayoutCreateInfo(vkBindings, flags)
	vkHandle, result := c.device.cmds.CreateDescriptorSetLayout(c.device.handle, unsafe.Pointer(&ci))
	if result != vk.Success {
		return handle.Handle{}, fmt.Errorf("gfx: vkCreateDescriptorSetLayout failed: %s", result)
	}

	res := DescriptorSetLayoutResource{Handle: vkHandle, Bindings: bindings, RefCount: 1}
	h := c.device.pools.descriptorSetLayouts.Add(res)

	c.mu.Lock()
	c.descSetByHash[key] = h
	c.mu.Unlock()
	Logger().Debug("descriptor set layout cache miss, created", "hash", key)
	return h, nil
}

func anyCountAbove1(bindings []DescriptorBinding) bool {
	for _, b := range bindings {
		if b.Count > 1 {
			return true
		}
	}
	return false
}

// ReleaseDescriptorSetLayout decrements refcount, destroying the Vulkan
// object and freeing the pool slot at zero.
func (c *layoutCache) ReleaseDescriptorSetLayout(h handle.Handle) {
	res, ok := c.device.pools.descriptorSetLayouts.Data(h)
	if !ok {
		return
	}
	zero := false
	c.device.pools.descriptorSetLayouts.Mutate(h, func(r *DescriptorSetLayoutResource) {
		r.RefCount--
		zero = r.RefCount <= 0
	})
	if !zero {
		return
	}
	c.device.cmds.DestroyDescriptorSetLayout(c.device.handle, res.Handle)
	c.device.pools.descriptorSetLayouts.Remove(h)

	c.mu.Lock()
	key := hashDescriptorSetLayout(res.Bindings)
	delete(c.descSetByHash, key)
	c.mu.Unlock()
}

func hashPipelineLayout(setLayouts []vk.DescriptorSetLayout, pushConstants []PushConstantRange) uint64 {
	h := fnv.New64a()
	for _, s := range setLayouts {
		fmt.Fprintf(h, "%d|", s)
	}
	for _, p := range pushConstants {
		fmt.Fprintf(h, "%d|%d|%d|", p.StageFlags, p.Offset, p.Size)
	}
	return h.Sum64()
}

// AcquirePipelineLayout returns a cached pipeline layout handle on hit
// (bumping its refcount) or creates and caches a new one on miss.
func (c *layoutCache) AcquirePipelineLayout(setLayouts []vk.DescriptorSetLayout, pushConstants []PushConstantRange) (handle.Handle, error) {
	key := hashPipelineLayout(setLayouts, pushConstants)

	c.mu.Lock()
	if h, ok := c.pipeLayoutByHash[key]; ok {
		c.device.pools.pipelineLayouts.Mutate(h, func(r *PipelineLayoutResource) { r.RefCount++ })
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	ranges := make([]pushConstantRangeT, len(pushConstants))
	for i, p := range pushConstants {
		ranges[i] = pushConstantRangeT{stageFlags: uint32(p.StageFlags), offset: p.Offset, size: p.Size}
	}
	ci := pipelineLayoutCreateInfo(setLayouts, ranges)
	vkHandle, result := c.device.cmds.CreatePipelineLayout(c.device.handle, unsafe.Pointer(&ci))
	if result != vk.Success {
		return handle.Handle{}, fmt.Errorf("gfx: vkCreatePipelineLayout failed: %s", result)
	}

	res := PipelineLayoutResource{Handle: vkHandle, SetCount: len(setLayouts), RefCount: 1}
	h := c.device.pools.pipelineLayouts.Add(res)

	c.mu.Lock()
	c.pipeLayoutByHash[key] = h
	c.mu.Unlock()
	return h, nil
}

// ReleasePipelineLayout decrements refcount, destroying the Vulkan object
// and freeing the pool slot at zero.
func (c *layoutCache) ReleasePipelineLayout(h handle.Handle) {
	res, ok := c.device.pools.pipelineLayouts.Data(h)
	if !ok {
		return
	}
	zero := false
	c.device.pools.pipelineLayouts.Mutate(h, func(r *PipelineLayoutResource) {
		r.RefCount--
		zero = r.RefCount <= 0
	})
	if !zero {
		return
	}
	c.device.cmds.DestroyPipelineLayout(c.device.handle, res.Handle)
	c.device.pools.pipelineLayouts.Remove(h)

	c.mu.Lock()
	for key, cached := range c.pipeLayoutByHash {
		if cached == h {
			delete(c.pipeLayoutByHash, key)
			break
		}
	}
	c.mu.Unlock()
}
