package gfx

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

// VertexBinding mirrors VkVertexInputBindingDescription.
type VertexBinding struct {
	Binding uint32
	Stride  uint32
	PerInstance bool
}

// VertexAttributeBinding mirrors VkVertexInputAttributeDescription, tying
// a CPU-side attribute to a binding and shader location.
type VertexAttributeBinding struct {
	VertexAttribute
	Binding uint32
	Offset  uint32
}

// RasterizerState mirrors the handful of VkPipelineRasterizationStateCreateInfo
// fields this engine exposes.
type RasterizerState struct {
	CullMode    uint32 // VkCullModeFlags
	FrontFaceCW bool
	Wireframe   bool
}

// DepthStencilState mirrors the VkPipelineDepthStencilStateCreateInfo
// fields this engine exposes.
type DepthStencilState struct {
	TestEnable  bool
	WriteEnable bool
	CompareOp   uint32
}

// BlendState mirrors one color attachment's blend config. The zero value
// is opaque (source color replaces destination, ONE/ZERO factors).
type BlendState struct {
	Enable bool
	SrcColorFactor, DstColorFactor uint32
	SrcAlphaFactor, DstAlphaFactor uint32
}

// GfxPipelineDesc is the full pipeline creation request.
type GfxPipelineDesc struct {
	Shader           *ShaderReflection
	Topology         uint32 // VkPrimitiveTopology
	VertexBindings   []VertexBinding
	VertexAttributes []VertexAttributeBinding
	DescriptorSetLayouts []handle.Handle
	PushConstants    []PushConstantRange
	Rasterizer       RasterizerState
	Blend            BlendState
	DepthStencil     DepthStencilState
	CaptureExecutableStatistics bool
	StatisticsPath   string
}

// pipelineEntry is the pool's stored state: a deep copy of the create-info
// plus its owning layout and shader hash, kept so a shader reload can
// rebuild the Vulkan pipeline from the same description while everything
// else about it (vertex layout, blend state, rasterizer state) stays
// identical.
type pipelineEntry struct {
	desc   GfxPipelineDesc
	layout handle.Handle
	handle Pipeline
}

// Pipeline is an opaque handle into the pipeline pool.
type Pipeline handle.Handle

// pipelineRegistry owns the shader_hash -> pipelines dependency map used
// by the reload path, alongside the entries map holding each pipeline's
// deep-copied desc.
type pipelineRegistry struct {
	device *Device

	mu          sync.Mutex
	byShaderHash map[uint64][]handle.Handle
	entries      map[handle.Handle]pipelineEntry
}

func newPipelineRegistry(d *Device) *pipelineRegistry {
	return &pipelineRegistry{
		device:       d,
		byShaderHash: make(map[uint64][]handle.Handle),
		entries:      make(map[handle.Handle]pipelineEntry),
	}
}

// CreatePipeline validates the vertex layout against the shader's
// reflection data, acquires (or reuses) the pipeline layout the
// descriptor sets and push constants require, compiles the shader stages
// into Vulkan shader modules, and builds the graphics pipeline.
func (d *Device) CreatePipeline(desc GfxPipelineDesc) (Pipeline, error) {
	if desc.Shader == nil {
		return Pipeline{}, fmt.Errorf("gfx: pipeline desc requires a shader reflection")
	}

	cpuAttrs := make([]VertexAttribute, len(desc.VertexAttributes))
	for i, a := range desc.VertexAttributes {
		cpuAttrs[i] = a.VertexAttribute
	}
	if err := validateVertexAttributes(cpuAttrs, desc.Shader); err != nil {
		return Pipeline{}, err
	}

	setLayouts := make([]vk.DescriptorSetLayout, len(desc.DescriptorSetLayouts))
	for i, h := range desc.DescriptorSetLayouts {
		res, ok := d.pools.descriptorSetLayouts.Data(h)
		if !ok {
			return Pipeline{}, fmt.Errorf("gfx: stale descriptor set layout handle at index %d", i)
		}
		setLayouts[i] = res.Handle
	}
	layoutHandle, err := d.layouts.AcquirePipelineLayout(setLayouts, desc.PushConstants)
	if err != nil {
		return Pipeline{}, err
	}
	layoutRes, _ := d.pools.pipelineLayouts.Data(layoutHandle)

	modules, err := d.createShaderModules(desc.Shader)
	if err != nil {
		d.layouts.ReleasePipelineLayout(layoutHandle)
		return Pipeline{}, err
	}

	vkHandle, err := d.buildVulkanPipeline(desc, modules, layoutRes.Handle)
	for _, m := range modules {
		d.destroyShaderModule(m)
	}
	if err != nil {
		d.layouts.ReleasePipelineLayout(layoutHandle)
		return Pipeline{}, err
	}

	res := PipelineResource{Handle: vkHandle, Layout: layoutRes.Handle, ShaderHash: desc.Shader.Hash}
	h := d.pools.pipelines.Add(res)

	stored := desc
	stored.VertexBindings = append([]VertexBinding(nil), desc.VertexBindings...)
	stored.VertexAttributes = append([]VertexAttributeBinding(nil), desc.VertexAttributes...)
	stored.DescriptorSetLayouts = append([]handle.Handle(nil), desc.DescriptorSetLayouts...)
	stored.PushConstants = append([]PushConstantRange(nil), desc.PushConstants...)

	d.pipelines.mu.Lock()
	d.pipelines.entries[h] = pipelineEntry{desc: stored, layout: layoutHandle, handle: Pipeline(h)}
	d.pipelines.byShaderHash[desc.Shader.Hash] = append(d.pipelines.byShaderHash[desc.Shader.Hash], h)
	d.pipelines.mu.Unlock()

	if desc.CaptureExecutableStatistics {
		d.dumpPipelineStatistics(desc.StatisticsPath, h)
	}

	return Pipeline(h), nil
}

// RecreatePipelinesWithNewShader walks every pipeline dependent on
// shaderHash, rebuilds it against newShader, enqueues the old Vulkan
// pipeline as garbage, and updates the pool entry in place.
func (d *Device) RecreatePipelinesWithNewShader(shaderHash uint64, newShader *ShaderReflection) error {
	d.pipelines.mu.Lock()
	dependents := append([]handle.Handle(nil), d.pipelines.byShaderHash[shaderHash]...)
	d.pipelines.mu.Unlock()

	for _, h := range dependents {
		d.pipelines.mu.Lock()
		entry := d.pipelines.entries[h]
		d.pipelines.mu.Unlock()

		newDesc := entry.desc
		newDesc.Shader = newShader

		modules, err := d.createShaderModules(newShader)
		if err != nil {
			return err
		}
		layoutRes, _ := d.pools.pipelineLayouts.Data(entry.layout)
		newVk, err := d.buildVulkanPipeline(newDesc, modules, layoutRes.Handle)
		for _, m := range modules {
			d.destroyShaderModule(m)
		}
		if err != nil {
			return err
		}

		oldRes, _ := d.pools.pipelines.Data(h)
		d.gc.enqueue(gcRecord{kind: gcKindPipeline, frameStamp: d.scheduler.currentFrame, pipeline: oldRes.Handle})

		d.pools.pipelines.Mutate(h, func(r *PipelineResource) {
			r.Handle = newVk
			r.ShaderHash = newShader.Hash
		})
		d.pipelines.mu.Lock()
		entry.desc = newDesc
		d.pipelines.entries[h] = entry
		d.pipelines.mu.Unlock()

		Logger().Info("pipeline reloaded", "shaderHash", newShader.Hash)
	}

	d.pipelines.mu.Lock()
	d.pipelines.byShaderHash[newShader.Hash] = append(d.pipelines.byShaderHash[newShader.Hash], dependents...)
	delete(d.pipelines.byShaderHash, shaderHash)
	d.pipelines.mu.Unlock()
	return nil
}

// DestroyPipeline releases a pipeline and its reference on its layout.
func (d *Device) DestroyPipeline(p Pipeline) {
	res, ok := d.pools.pipelines.Remove(handle.Handle(p))
	if !ok {
		return
	}
	d.cmds.DestroyPipeline(d.handle, res.Handle)

	d.pipelines.mu.Lock()
	entry := d.pipelines.entries[handle.Handle(p)]
	delete(d.pipelines.entries, handle.Handle(p))
	hashList := d.pipelines.byShaderHash[res.ShaderHash]
	for i, h := range hashList {
		if h == handle.Handle(p) {
			d.pipelines.byShaderHash[res.ShaderHash] = append(hashList[:i], hashList[i+1:]...)
			break
		}
	}
	d.pipelines.mu.Unlock()

	d.layouts.ReleasePipelineLayout(entry.layout)
}

func (d *Device) createShaderModules(refl *ShaderReflection) ([]vk.ShaderModule, error) {
	modules := make([]vk.ShaderModule, 0, len(refl.Stages))
	for _, stage := range refl.Stages {
		ci := shaderModuleCreateInfo(stage.SPIRV)
		m, result := d.cmds.CreateShaderModule(d.handle, unsafe.Pointer(&ci))
		if result != vk.Success {
			for _, done := range modules {
				d.destroyShaderModule(done)
			}
			return nil, fmt.Errorf("gfx: vkCreateShaderModule failed for stage %v: %s", stage.Stage, result)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func (d *Device) destroyShaderModule(m vk.ShaderModule) {
	d.cmds.DestroyShaderModule(d.handle, m)
}

// buildVulkanPipeline assembles the fixed-function state blocks (vertex
// input, rasterization, blend, depth/stencil) and issues the
// graphics-pipeline create call.
func (d *Device) buildVulkanPipeline(desc GfxPipelineDesc, modules []vk.ShaderModule, layout vk.PipelineLayout) (vk.Pipeline, error) {
	if d.swapchain == nil {
		return 0, fmt.Errorf("gfx: pipeline creation requires a bound swapchain render pass")
	}
	ci := graphicsPipelineCreateInfo(desc, modules, layout, d.swapchain.renderPass)
	vkHandle, result := d.cmds.CreateGraphicsPipelines(d.handle, unsafe.Pointer(&ci))
	if result != vk.Success {
		return 0, fmt.Errorf("gfx: vkCreateGraphicsPipelines failed: %s", result)
	}
	return vkHandle, nil
}

// dumpPipelineStatistics writes no file: for a non-empty path it only
// logs at debug level that statistics capture was requested.
func (d *Device) dumpPipelineStatistics(path string, h handle.Handle) {
	if path == "" {
		return
	}
	// Pipeline executable properties require VK_KHR_pipeline_executable_properties
	// and a vkGetPipelineExecutableStatisticsKHR call this package's
	// trimmed command set does not load; this hook records the intent so
	// a caller building against a driver with the extension enabled can
	// extend it without touching the pipeline builder itself.
	Logger().Debug("pipeline statistics capture requested but not wired", "path", path)
}
