package gfx

import (
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

// BufferResource is the device-owned state behind a Buffer handle.
type BufferResource struct {
	Handle     vk.Buffer
	Memory     vk.DeviceMemory
	Size       uint64
	Usage      BufferUsage
	Mapped     unsafe.Pointer
	StagingFor vk.Buffer // non-zero while a staging copy is pending
}

// ImageResource is the device-owned state behind an Image handle.
type ImageResource struct {
	Handle vk.Image
	View   vk.ImageView
	Memory vk.DeviceMemory
	Width, Height, MipLevels uint32
	Format vk.Format
	Layout vk.ImageLayout
	Usage  ImageUsage
}

// PipelineResource is the device-owned state behind a Pipeline handle.
type PipelineResource struct {
	Handle     vk.Pipeline
	Layout     vk.PipelineLayout
	ShaderHash uint64
}

// PipelineLayoutResource wraps a refcounted, content-cached pipeline layout.
type PipelineLayoutResource struct {
	Handle   vk.PipelineLayout
	SetCount int
	RefCount int
}

// DescriptorSetLayoutResource wraps a refcounted, content-cached
// descriptor set layout.
type DescriptorSetLayoutResource struct {
	Handle   vk.DescriptorSetLayout
	Bindings []DescriptorBinding
	RefCount int
}

// DescriptorSetResource is a descriptor set allocated out of a pool.
type DescriptorSetResource struct {
	Handle vk.DescriptorSet
	Layout vk.DescriptorSetLayout
	Pool   vk.DescriptorPool
}

// pools is the central resource registry, collapsing the per-type
// RWMutex-guarded registries a resource hub normally spreads across many
// named fields into one struct of generic handle.Pool instances.
type pools struct {
	buffers               *handle.Pool[BufferResource]
	images                *handle.Pool[ImageResource]
	pipelines             *handle.Pool[PipelineResource]
	pipelineLayouts       *handle.Pool[PipelineLayoutResource]
	descriptorSetLayouts  *handle.Pool[DescriptorSetLayoutResource]
	descriptorSets        *handle.Pool[DescriptorSetResource]
}

func newPools() *pools {
	return &pools{
		buffers:              handle.NewPool[BufferResource](256),
		images:               handle.NewPool[ImageResource](256),
		pipelines:            handle.NewPool[PipelineResource](64),
		pipelineLayouts:      handle.NewPool[PipelineLayoutResource](64),
		descriptorSetLayouts: handle.NewPool[DescriptorSetLayoutResource](64),
		descriptorSets:       handle.NewPool[DescriptorSetResource](256),
	}
}

// counts reports live object counts per pool, mirroring a resource hub's
// diagnostic accessor.
func (p *pools) counts() map[string]int {
	return map[string]int{
		"buffers":              p.buffers.Len(),
		"images":               p.images.Len(),
		"pipelines":            p.pipelines.Len(),
		"pipelineLayouts":      p.pipelineLayouts.Len(),
		"descriptorSetLayouts": p.descriptorSetLayouts.Len(),
		"descriptorSets":       p.descriptorSets.Len(),
	}
}
