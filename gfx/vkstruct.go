package gfx

import (
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

// Minimal VkStructureType values this package writes into create-info
// blobs. Only the handful actually used by vkstruct.go's builders.
const (
	structureTypeBufferCreateInfo = 12
	structureTypeImageCreateInfo  = 14
)

const (
	bufferUsageTransferSrc         uint32 = 0x00000001
	bufferUsageTransferDst         uint32 = 0x00000002
	bufferUsageUniformBuffer       uint32 = 0x00000010
	bufferUsageStorageBuffer       uint32 = 0x00000020
	bufferUsageVertexBuffer        uint32 = 0x00000080
	bufferUsageIndexBuffer         uint32 = 0x00000040
	sharingModeExclusive     uint32 = 0
)

// bufferCreateInfo mirrors VkBufferCreateInfo's layout for the fields this
// engine sets; flags and queue-family-sharing fields are always zero since
// every buffer here is exclusive to the single graphics queue.
type bufferCreateInfo struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	_pad2                 uint32
	size                  uint64
	usage                 uint32
	sharingMode           uint32
	queueFamilyIndexCount uint32
	pQueueFamilyIndices   uintptr
}

func vkBufferCreateInfo(size uint64, usage uint32) bufferCreateInfo {
	return bufferCreateInfo{
		sType:       structureTypeBufferCreateInfo,
		size:        size,
		usage:       usage,
		sharingMode: sharingModeExclusive,
	}
}

// vkBufferUsageForKind maps a BufferUsage to the minimal VkBufferUsageFlags
// this engine needs: every buffer can serve as a transfer destination (for
// staged uploads) and as a vertex/uniform source.
func vkBufferUsageForKind(usage BufferUsage) uint32 {
	flags := bufferUsageTransferDst | bufferUsageVertexBuffer | bufferUsageUniformBuffer
	if usage == BufferUsageStream {
		flags |= bufferUsageStorageBuffer
	}
	return flags
}

const (
	imageTypeFlat2D                   uint32 = 1
	imageTilingOptimal                 uint32 = 0
	imageUsageTransferSrc              uint32 = 0x00000001
	imageUsageTransferDst              uint32 = 0x00000002
	imageUsageSampled                  uint32 = 0x00000004
	imageUsageColorAttachment          uint32 = 0x00000010
	imageUsageDepthStencilAttachment   uint32 = 0x00000020
)

// extent3D mirrors VkExtent3D.
type extent3D struct{ width, height, depth uint32 }

// imageCreateInfo mirrors VkImageCreateInfo's layout for the fields this
// engine sets. Samples is always 1; multisampling is not supported.
type imageCreateInfo struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	imageType             uint32
	format                uint32
	extent                extent3D
	mipLevels             uint32
	arrayLayers           uint32
	samples               uint32
	tiling                uint32
	usage                 uint32
	sharingMode           uint32
	queueFamilyIndexCount uint32
	pQueueFamilyIndices   uintptr
	initialLayout         uint32
}

func vkImageCreateInfo(width, height, mipLevels uint32, format vk.Format, usage uint32) imageCreateInfo {
	return imageCreateInfo{
		sType:         structureTypeImageCreateInfo,
		imageType:     imageTypeFlat2D,
		format:        uint32(format),
		extent:        extent3D{width, height, 1},
		mipLevels:     mipLevels,
		arrayLayers:   1,
		samples:       1,
		tiling:        imageTilingOptimal,
		usage:         usage,
		sharingMode:   sharingModeExclusive,
		initialLayout: uint32(vk.ImageLayoutUndefined),
	}
}

const (
	structureTypeFenceCreateInfo       = 8
	structureTypeSemaphoreCreateInfo   = 9
	structureTypeSubmitInfo            = 4
	structureTypePresentInfoKHR        = 1000001001
	structureTypeRenderPassBeginInfo   = 43
	fenceCreateSignaledBit             = 0x00000001
	pipelineStageColorAttachmentOutput = 0x00000400
)

type fenceCreateInfo struct {
	sType uint32
	_pad  uint32
	pNext uintptr
	flags uint32
	_pad2 uint32
}

func signaledFenceCreateInfo() fenceCreateInfo {
	return fenceCreateInfo{sType: structureTypeFenceCreateInfo, flags: fenceCreateSignaledBit}
}

type semaphoreCreateInfoT struct {
	sType uint32
	_pad  uint32
	pNext uintptr
	flags uint32
	_pad2 uint32
}

func semaphoreCreateInfo() semaphoreCreateInfoT {
	return semaphoreCreateInfoT{sType: structureTypeSemaphoreCreateInfo}
}

// submitInfoT mirrors VkSubmitInfo for a single wait/signal semaphore pair,
// the shape every frame submission in this engine uses.
type submitInfoT struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	waitSemaphoreCount    uint32
	_pad2                 uint32
	pWaitSemaphores       unsafe.Pointer
	pWaitDstStageMask     unsafe.Pointer
	commandBufferCount    uint32
	_pad3                 uint32
	pCommandBuffers       unsafe.Pointer
	signalSemaphoreCount  uint32
	_pad4                 uint32
	pSignalSemaphores     unsafe.Pointer
}

func submitInfo(buffers []vk.CommandBuffer, wait, signal vk.Semaphore) submitInfoT {
	waitStage := uint32(pipelineStageColorAttachmentOutput)
	si := submitInfoT{
		sType:                structureTypeSubmitInfo,
		waitSemaphoreCount:   1,
		pWaitSemaphores:      unsafe.Pointer(&wait),
		pWaitDstStageMask:    unsafe.Pointer(&waitStage),
		signalSemaphoreCount: 1,
		pSignalSemaphores:    unsafe.Pointer(&signal),
	}
	if len(buffers) > 0 {
		si.commandBufferCount = uint32(len(buffers))
		si.pCommandBuffers = unsafe.Pointer(&buffers[0])
	}
	return si
}

// presentInfoT mirrors VkPresentInfoKHR for a single swapchain/image pair.
type presentInfoT struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	waitSemaphoreCount uint32
	_pad2              uint32
	pWaitSemaphores    unsafe.Pointer
	swapchainCount     uint32
	_pad3              uint32
	pSwapchains        unsafe.Pointer
	pImageIndices      unsafe.Pointer
	pResults           unsafe.Pointer
}

// bufferCopy mirrors VkBufferCopy.
type bufferCopy struct {
	srcOffset, dstOffset, size uint64
}

// bufferImageCopy mirrors VkBufferImageCopy for a full-extent, mip-0 copy.
// Callers that need a specific mip/extent build their own value; this
// package's deferred queue only ever issues whole-image copies.
type bufferImageCopy struct {
	bufferOffset              uint64
	bufferRowLength           uint32
	bufferImageHeight         uint32
	aspectMask                uint32
	mipLevel                  uint32
	baseArrayLayer            uint32
	layerCount                uint32
	imageOffset               [3]int32
	imageExtent               extent3D
}

const imageAspectColorBit = 0x00000001

// imageSubresourceRange mirrors VkImageSubresourceRange for a full,
// single-layer color resource.
type imageSubresourceRange struct {
	aspectMask     uint32
	baseMipLevel   uint32
	levelCount     uint32
	baseArrayLayer uint32
	layerCount     uint32
}

const allRemaining uint32 = ^uint32(0)

// imageMemoryBarrierT mirrors VkImageMemoryBarrier for a full-resource
// layout transition with no queue family ownership transfer.
type imageMemoryBarrierT struct {
	sType               uint32
	_pad                uint32
	pNext               uintptr
	srcAccessMask       uint32
	dstAccessMask       uint32
	oldLayout           uint32
	newLayout           uint32
	srcQueueFamilyIndex uint32
	dstQueueFamilyIndex uint32
	image               vk.Image
	_pad2               uint32
	subresourceRange    imageSubresourceRange
}

const structureTypeImageMemoryBarrier = 45
const queueFamilyIgnored = ^uint32(0)

func imageMemoryBarrier(img vk.Image, oldLayout, newLayout vk.ImageLayout) imageMemoryBarrierT {
	return imageMemoryBarrierT{
		sType:               structureTypeImageMemoryBarrier,
		oldLayout:           uint32(oldLayout),
		newLayout:           uint32(newLayout),
		srcQueueFamilyIndex: queueFamilyIgnored,
		dstQueueFamilyIndex: queueFamilyIgnored,
		image:               img,
		subresourceRange: imageSubresourceRange{
			aspectMask: imageAspectColorBit,
			levelCount: allRemaining,
			layerCount: allRemaining,
		},
	}
}

const (
	structureTypeCommandPoolCreateInfo        = 39
	structureTypeCommandBufferAllocateInfo    = 40
	structureTypeCommandBufferBeginInfo       = 42
	commandPoolCreateResetCommandBufferBit    = 0x00000002
	commandBufferLevelPrimary                 = 0
	commandBufferUsageOneTimeSubmitBitValue   = 0x00000001
)

type commandPoolCreateInfoT struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	flags            uint32
	queueFamilyIndex uint32
}

func commandPoolCreateInfo() commandPoolCreateInfoT {
	return commandPoolCreateInfoT{sType: structureTypeCommandPoolCreateInfo, flags: commandPoolCreateResetCommandBufferBit}
}

type commandBufferAllocateInfoT struct {
	sType              uint32
	_pad               uint32
	pNext              uintptr
	commandPool        vk.CommandPool
	level              uint32
	commandBufferCount uint32
}

func commandBufferAllocateInfo(pool vk.CommandPool) commandBufferAllocateInfoT {
	return commandBufferAllocateInfoT{
		sType:              structureTypeCommandBufferAllocateInfo,
		commandPool:        pool,
		level:              commandBufferLevelPrimary,
		commandBufferCount: 1,
	}
}

type commandBufferBeginInfoT struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	flags           uint32
	_pad2           uint32
	pInheritanceInfo uintptr
}

func commandBufferBeginInfo() commandBufferBeginInfoT {
	return commandBufferBeginInfoT{sType: structureTypeCommandBufferBeginInfo, flags: commandBufferUsageOneTimeSubmitBitValue}
}

const (
	structureTypeSwapchainCreateInfoKHR = 1000001000
	structureTypeImageViewCreateInfo    = 15
	structureTypeRenderPassCreateInfo   = 38
	structureTypeFramebufferCreateInfo  = 37
	imageViewType2D                     = 1
	colorSpaceSRGBNonlinear             = 0
	compositeAlphaOpaque                = 0x00000001
	presentModeFIFO                     = 2
)

type swapchainCreateInfoT struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	surface               vk.SurfaceKHR
	minImageCount         uint32
	imageFormat           uint32
	imageColorSpace       uint32
	imageExtent           [2]uint32
	imageArrayLayers      uint32
	imageUsage            uint32
	imageSharingMode      uint32
	queueFamilyIndexCount uint32
	pQueueFamilyIndices   uintptr
	preTransform          uint32
	compositeAlpha        uint32
	presentMode           uint32
	clipped               uint32
	oldSwapchain          vk.SwapchainKHR
}

func swapchainCreateInfo(surface vk.SurfaceKHR, imageCount uint32, format vk.Format, width, height uint32) swapchainCreateInfoT {
	return swapchainCreateInfoT{
		sType:            structureTypeSwapchainCreateInfoKHR,
		surface:          surface,
		minImageCount:    imageCount,
		imageFormat:      uint32(format),
		imageColorSpace:  colorSpaceSRGBNonlinear,
		imageExtent:      [2]uint32{width, height},
		imageArrayLayers: 1,
		imageUsage:       imageUsageColorAttachment,
		imageSharingMode: sharingModeExclusive,
		preTransform:     surfaceTransformIdentity,
		compositeAlpha:   compositeAlphaOpaque,
		presentMode:      presentModeFIFO,
		clipped:          1,
	}
}

type imageViewCreateInfoT struct {
	sType            uint32
	_pad             uint32
	pNext            uintptr
	flags            uint32
	image            vk.Image
	viewType         uint32
	format           uint32
	components       [4]uint32
	subresourceRange imageSubresourceRange
}

func imageViewCreateInfo(img vk.Image, format vk.Format, aspect uint32) imageViewCreateInfoT {
	return imageViewCreateInfoT{
		sType:    structureTypeImageViewCreateInfo,
		image:    img,
		viewType: imageViewType2D,
		format:   uint32(format),
		subresourceRange: imageSubresourceRange{
			aspectMask: aspect,
			levelCount: allRemaining,
			layerCount: allRemaining,
		},
	}
}

// attachmentDescription mirrors VkAttachmentDescription for a single
// color attachment with clear-on-load, store, and a final present layout.
type attachmentDescription struct {
	flags          uint32
	format         uint32
	samples        uint32
	loadOp         uint32
	storeOp        uint32
	stencilLoadOp  uint32
	stencilStoreOp uint32
	initialLayout  uint32
	finalLayout    uint32
}

const (
	attachmentLoadOpClear     = 1
	attachmentStoreOpStore    = 0
	attachmentLoadOpDontCare  = 2
	attachmentStoreOpDontCare = 1
	imageLayoutPresentSrcKHR  = 1000001002
)

type attachmentReference struct {
	attachment uint32
	layout     uint32
}

type subpassDescription struct {
	flags                   uint32
	pipelineBindPoint       uint32
	inputAttachmentCount    uint32
	pInputAttachments       unsafe.Pointer
	colorAttachmentCount    uint32
	pColorAttachments       unsafe.Pointer
	pResolveAttachments     unsafe.Pointer
	pDepthStencilAttachment unsafe.Pointer
	preserveAttachmentCount uint32
	pPreserveAttachments    unsafe.Pointer
}

type renderPassCreateInfoT struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	flags           uint32
	attachmentCount uint32
	pAttachments    unsafe.Pointer
	subpassCount    uint32
	pSubpasses      unsafe.Pointer
	dependencyCount uint32
	pDependencies   unsafe.Pointer
}

// colorRenderPassCreateInfo builds a single color-attachment render pass
// matching what the swapchain's framebuffers attach, clearing on load
// and transitioning to present-src on store.
func colorRenderPassCreateInfo(format vk.Format) renderPassCreateInfoT {
	attachment := attachmentDescription{
		format:         uint32(format),
		samples:        1,
		loadOp:         attachmentLoadOpClear,
		storeOp:        attachmentStoreOpStore,
		stencilLoadOp:  attachmentLoadOpDontCare,
		stencilStoreOp: attachmentStoreOpDontCare,
		initialLayout:  uint32(vk.ImageLayoutUndefined),
		finalLayout:    imageLayoutPresentSrcKHR,
	}
	colorRef := attachmentReference{attachment: 0, layout: uint32(vk.ImageLayoutColorAttachmentOptimal)}
	subpass := subpassDescription{
		pipelineBindPoint:    0, // VK_PIPELINE_BIND_POINT_GRAPHICS
		colorAttachmentCount: 1,
		pColorAttachments:    unsafe.Pointer(&colorRef),
	}
	return renderPassCreateInfoT{
		sType:           structureTypeRenderPassCreateInfo,
		attachmentCount: 1,
		pAttachments:    unsafe.Pointer(&attachment),
		subpassCount:    1,
		pSubpasses:      unsafe.Pointer(&subpass),
	}
}

type framebufferCreateInfoT struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	flags           uint32
	renderPass      vk.RenderPass
	attachmentCount uint32
	pAttachments    unsafe.Pointer
	width, height   uint32
	layers          uint32
}

func framebufferCreateInfo(rp vk.RenderPass, view vk.ImageView, width, height uint32) framebufferCreateInfoT {
	v := view
	return framebufferCreateInfoT{
		sType:           structureTypeFramebufferCreateInfo,
		renderPass:      rp,
		attachmentCount: 1,
		pAttachments:    unsafe.Pointer(&v),
		width:           width,
		height:          height,
		layers:          1,
	}
}

// clearValue mirrors VkClearValue's color union member.
type clearValue struct{ color [4]float32 }

type rect2D struct {
	offset [2]int32
	extent [2]uint32
}

type renderPassBeginInfoT struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	renderPass      vk.RenderPass
	framebuffer     vk.Framebuffer
	renderArea      rect2D
	clearValueCount uint32
	pClearValues    unsafe.Pointer
}

func newRenderPassBeginInfo(rp vk.RenderPass, fb vk.Framebuffer, width, height uint32, color [4]float32) renderPassBeginInfoT {
	clears := [2]clearValue{{color: color}, {color: [4]float32{1, 0, 0, 0}}}
	return renderPassBeginInfoT{
		sType:           structureTypeRenderPassBeginInfo,
		renderPass:      rp,
		framebuffer:     fb,
		renderArea:      rect2D{extent: [2]uint32{width, height}},
		clearValueCount: uint32(len(clears)),
		pClearValues:    unsafe.Pointer(&clears[0]),
	}
}

const structureTypeDescriptorSetLayoutCreateInfo = 32
const structureTypePipelineLayoutCreateInfo = 30

// descriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type descriptorSetLayoutBinding struct {
	binding            uint32
	descriptorType     uint32
	descriptorCount    uint32
	stageFlags         uint32
	pImmutableSamplers unsafe.Pointer
}

type descriptorSetLayoutCreateInfoT struct {
	sType        uint32
	_pad         uint32
	pNext        uintptr
	flags        uint32
	bindingCount uint32
	pBindings    unsafe.Pointer
}

func descriptorSetLayoutCreateInfo(bindings []descriptorSetLayoutBinding, flags uint32) descriptorSetLayoutCreateInfoT {
	ci := descriptorSetLayoutCreateInfoT{sType: structureTypeDescriptorSetLayoutCreateInfo, flags: flags}
	if len(bindings) > 0 {
		ci.bindingCount = uint32(len(bindings))
		ci.pBindings = unsafe.Pointer(&bindings[0])
	}
	return ci
}

// pushConstantRangeT mirrors VkPushConstantRange.
type pushConstantRangeT struct {
	stageFlags uint32
	offset     uint32
	size       uint32
}

type pipelineLayoutCreateInfoT struct {
	sType                  uint32
	_pad                   uint32
	pNext                  uintptr
	flags                  uint32
	setLayoutCount         uint32
	pSetLayouts            unsafe.Pointer
	pushConstantRangeCount uint32
	pPushConstantRanges    unsafe.Pointer
}

func pipelineLayoutCreateInfo(setLayouts []vk.DescriptorSetLayout, ranges []pushConstantRangeT) pipelineLayoutCreateInfoT {
	ci := pipelineLayoutCreateInfoT{sType: structureTypePipelineLayoutCreateInfo}
	if len(setLayouts) > 0 {
		ci.setLayoutCount = uint32(len(setLayouts))
		ci.pSetLayouts = unsafe.Pointer(&setLayouts[0])
	}
	if len(ranges) > 0 {
		ci.pushConstantRangeCount = uint32(len(ranges))
		ci.pPushConstantRanges = unsafe.Pointer(&ranges[0])
	}
	return ci
}

const structureTypeShaderModuleCreateInfo = 16

type shaderModuleCreateInfoT struct {
	sType    uint32
	_pad     uint32
	pNext    uintptr
	flags    uint32
	codeSize uintptr
	pCode    unsafe.Pointer
}

// shaderModuleCreateInfo wraps already-compiled SPIR-V bytes; this package
// never invokes a shader compiler itself, it only consumes the reflection
// blob produced alongside the compiled shader.
func shaderModuleCreateInfo(spirv []byte) shaderModuleCreateInfoT {
	ci := shaderModuleCreateInfoT{sType: structureTypeShaderModuleCreateInfo, codeSize: uintptr(len(spirv))}
	if len(spirv) > 0 {
		ci.pCode = unsafe.Pointer(&spirv[0])
	}
	return ci
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

const (
	structureTypePipelineShaderStageCreateInfo     = 18
	structureTypePipelineVertexInputStateCreateInfo = 19
	structureTypePipelineInputAssemblyStateCreateInfo = 20
	structureTypePipelineViewportStateCreateInfo   = 22
	structureTypePipelineRasterizationStateCreateInfo = 23
	structureTypePipelineMultisampleStateCreateInfo = 24
	structureTypePipelineDepthStencilStateCreateInfo = 25
	structureTypePipelineColorBlendStateCreateInfo = 26
	structureTypePipelineDynamicStateCreateInfo    = 27
	structureTypeGraphicsPipelineCreateInfo        = 28

	dynamicStateViewport uint32 = 0
	dynamicStateScissor  uint32 = 1

	polygonModeFill uint32 = 0
	polygonModeLine uint32 = 1
	frontFaceCounterClockwise uint32 = 0
	frontFaceClockwise        uint32 = 1

	pipelineBindPointGraphics uint32 = 0
)

type pipelineShaderStageCreateInfoT struct {
	sType               uint32
	_pad                uint32
	pNext               uintptr
	flags               uint32
	stage               uint32
	module              vk.ShaderModule
	_pad2               uint32
	pName               unsafe.Pointer
	pSpecializationInfo unsafe.Pointer
}

type vertexInputBindingDescriptionT struct {
	binding   uint32
	stride    uint32
	inputRate uint32
}

type vertexInputAttributeDescriptionT struct {
	location uint32
	binding  uint32
	format   uint32
	offset   uint32
}

type pipelineVertexInputStateCreateInfoT struct {
	sType                           uint32
	_pad                            uint32
	pNext                           uintptr
	flags                           uint32
	vertexBindingDescriptionCount   uint32
	pVertexBindingDescriptions      unsafe.Pointer
	vertexAttributeDescriptionCount uint32
	pVertexAttributeDescriptions    unsafe.Pointer
}

type pipelineInputAssemblyStateCreateInfoT struct {
	sType                  uint32
	_pad                   uint32
	pNext                  uintptr
	flags                  uint32
	topology               uint32
	primitiveRestartEnable uint32
}

type pipelineViewportStateCreateInfoT struct {
	sType         uint32
	_pad          uint32
	pNext         uintptr
	flags         uint32
	viewportCount uint32
	pViewports    unsafe.Pointer
	scissorCount  uint32
	pScissors     unsafe.Pointer
}

type pipelineRasterizationStateCreateInfoT struct {
	sType                   uint32
	_pad                    uint32
	pNext                   uintptr
	flags                   uint32
	depthClampEnable        uint32
	rasterizerDiscardEnable uint32
	polygonMode             uint32
	cullMode                uint32
	frontFace               uint32
	depthBiasEnable         uint32
	depthBiasConstantFactor float32
	depthBiasClamp          float32
	depthBiasSlopeFactor    float32
	lineWidth               float32
}

type pipelineMultisampleStateCreateInfoT struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	rasterizationSamples  uint32
	sampleShadingEnable   uint32
	minSampleShading      float32
	pSampleMask           unsafe.Pointer
	alphaToCoverageEnable uint32
	alphaToOneEnable      uint32
}

type stencilOpStateT struct {
	failOp, passOp, depthFailOp, compareOp uint32
	compareMask, writeMask, reference      uint32
}

type pipelineDepthStencilStateCreateInfoT struct {
	sType                 uint32
	_pad                  uint32
	pNext                 uintptr
	flags                 uint32
	depthTestEnable       uint32
	depthWriteEnable      uint32
	depthCompareOp        uint32
	depthBoundsTestEnable uint32
	stencilTestEnable     uint32
	front, back           stencilOpStateT
	minDepthBounds        float32
	maxDepthBounds        float32
}

type pipelineColorBlendAttachmentStateT struct {
	blendEnable         uint32
	srcColorBlendFactor uint32
	dstColorBlendFactor uint32
	colorBlendOp        uint32
	srcAlphaBlendFactor uint32
	dstAlphaBlendFactor uint32
	alphaBlendOp        uint32
	colorWriteMask      uint32
}

const colorComponentAll uint32 = 0xF

type pipelineColorBlendStateCreateInfoT struct {
	sType           uint32
	_pad            uint32
	pNext           uintptr
	flags           uint32
	logicOpEnable   uint32
	logicOp         uint32
	attachmentCount uint32
	pAttachments    unsafe.Pointer
	blendConstants  [4]float32
}

type pipelineDynamicStateCreateInfoT struct {
	sType             uint32
	_pad              uint32
	pNext             uintptr
	flags             uint32
	dynamicStateCount uint32
	pDynamicStates    unsafe.Pointer
}

type graphicsPipelineCreateInfoT struct {
	sType               uint32
	_pad                uint32
	pNext               uintptr
	flags               uint32
	stageCount          uint32
	_pad2               uint32
	pStages             unsafe.Pointer
	pVertexInputState   unsafe.Pointer
	pTessellationState  unsafe.Pointer
	pInputAssemblyState unsafe.Pointer
	pViewportState      unsafe.Pointer
	pRasterizationState unsafe.Pointer
	pMultisampleState   unsafe.Pointer
	pDepthStencilState  unsafe.Pointer
	pColorBlendState    unsafe.Pointer
	pDynamicState       unsafe.Pointer
	layout              vk.PipelineLayout
	renderPass          vk.RenderPass
	subpass             uint32
	_pad3               uint32
	basePipelineHandle  vk.Pipeline
	basePipelineIndex   int32
}

func stageFlagBit(stage vk.ShaderStageFlags) uint32 { return uint32(stage) }

// graphicsPipelineCreateInfo assembles every fixed-function state block a
// graphics pipeline needs: shader stages, vertex input, fixed topology,
// dynamic viewport/scissor, rasterizer, single-sample multisample,
// optional depth test, and single-attachment blend.
func graphicsPipelineCreateInfo(desc GfxPipelineDesc, modules []vk.ShaderModule, layout vk.PipelineLayout, renderPass vk.RenderPass) graphicsPipelineCreateInfoT {
	stages := make([]pipelineShaderStageCreateInfoT, len(desc.Shader.Stages))
	for i, s := range desc.Shader.Stages {
		name := s.EntryName
		if name == "" {
			name = "main"
		}
		nameBytes := cString(name)
		stages[i] = pipelineShaderStageCreateInfoT{
			sType:  structureTypePipelineShaderStageCreateInfo,
			stage:  stageFlagBit(s.Stage),
			module: modules[i],
			pName:  unsafe.Pointer(&nameBytes[0]),
		}
	}

	bindings := make([]vertexInputBindingDescriptionT, len(desc.VertexBindings))
	for i, b := range desc.VertexBindings {
		rate := uint32(0)
		if b.PerInstance {
			rate = 1
		}
		bindings[i] = vertexInputBindingDescriptionT{binding: b.Binding, stride: b.Stride, inputRate: rate}
	}
	attrs := make([]vertexInputAttributeDescriptionT, len(desc.VertexAttributes))
	for i, a := range desc.VertexAttributes {
		attrs[i] = vertexInputAttributeDescriptionT{
			location: a.Location, binding: a.Binding, format: uint32(a.Format), offset: a.Offset,
		}
	}
	vertexInput := pipelineVertexInputStateCreateInfoT{sType: structureTypePipelineVertexInputStateCreateInfo}
	if len(bindings) > 0 {
		vertexInput.vertexBindingDescriptionCount = uint32(len(bindings))
		vertexInput.pVertexBindingDescriptions = unsafe.Pointer(&bindings[0])
	}
	if len(attrs) > 0 {
		vertexInput.vertexAttributeDescriptionCount = uint32(len(attrs))
		vertexInput.pVertexAttributeDescriptions = unsafe.Pointer(&attrs[0])
	}

	inputAssembly := pipelineInputAssemblyStateCreateInfoT{
		sType:    structureTypePipelineInputAssemblyStateCreateInfo,
		topology: desc.Topology,
	}

	viewport := pipelineViewportStateCreateInfoT{
		sType:         structureTypePipelineViewportStateCreateInfo,
		viewportCount: 1,
		scissorCount:  1,
	}

	cullMode := desc.Rasterizer.CullMode
	polygonMode := polygonModeFill
	if desc.Rasterizer.Wireframe {
		polygonMode = polygonModeLine
	}
	frontFace := frontFaceCounterClockwise
	if desc.Rasterizer.FrontFaceCW {
		frontFace = frontFaceClockwise
	}
	rasterization := pipelineRasterizationStateCreateInfoT{
		sType:       structureTypePipelineRasterizationStateCreateInfo,
		polygonMode: polygonMode,
		cullMode:    cullMode,
		frontFace:   frontFace,
		lineWidth:   1,
	}

	multisample := pipelineMultisampleStateCreateInfoT{
		sType:                structureTypePipelineMultisampleStateCreateInfo,
		rasterizationSamples: 1,
	}

	var depthTest, depthWrite uint32
	if desc.DepthStencil.TestEnable {
		depthTest = 1
	}
	if desc.DepthStencil.WriteEnable {
		depthWrite = 1
	}
	depthStencil := pipelineDepthStencilStateCreateInfoT{
		sType:            structureTypePipelineDepthStencilStateCreateInfo,
		depthTestEnable:  depthTest,
		depthWriteEnable: depthWrite,
		depthCompareOp:   desc.DepthStencil.CompareOp,
	}

	var blendEnable uint32
	srcColor, dstColor := uint32(1), uint32(0) // ONE, ZERO
	srcAlpha, dstAlpha := uint32(1), uint32(0)
	if desc.Blend.Enable {
		blendEnable = 1
		srcColor, dstColor = desc.Blend.SrcColorFactor, desc.Blend.DstColorFactor
		srcAlpha, dstAlpha = desc.Blend.SrcAlphaFactor, desc.Blend.DstAlphaFactor
	}
	attachments := []pipelineColorBlendAttachmentStateT{{
		blendEnable:         blendEnable,
		srcColorBlendFactor: srcColor,
		dstColorBlendFactor: dstColor,
		srcAlphaBlendFactor: srcAlpha,
		dstAlphaBlendFactor: dstAlpha,
		colorWriteMask:      colorComponentAll,
	}}
	colorBlend := pipelineColorBlendStateCreateInfoT{
		sType:           structureTypePipelineColorBlendStateCreateInfo,
		attachmentCount: uint32(len(attachments)),
		pAttachments:    unsafe.Pointer(&attachments[0]),
	}

	dynamicStates := []uint32{dynamicStateViewport, dynamicStateScissor}
	dynamicState := pipelineDynamicStateCreateInfoT{
		sType:             structureTypePipelineDynamicStateCreateInfo,
		dynamicStateCount: uint32(len(dynamicStates)),
		pDynamicStates:    unsafe.Pointer(&dynamicStates[0]),
	}

	return graphicsPipelineCreateInfoT{
		sType:               structureTypeGraphicsPipelineCreateInfo,
		stageCount:          uint32(len(stages)),
		pStages:             unsafe.Pointer(&stages[0]),
		pVertexInputState:   unsafe.Pointer(&vertexInput),
		pInputAssemblyState: unsafe.Pointer(&inputAssembly),
		pViewportState:      unsafe.Pointer(&viewport),
		pRasterizationState: unsafe.Pointer(&rasterization),
		pMultisampleState:   unsafe.Pointer(&multisample),
		pDepthStencilState:  unsafe.Pointer(&depthStencil),
		pColorBlendState:    unsafe.Pointer(&colorBlend),
		pDynamicState:       unsafe.Pointer(&dynamicState),
		layout:              layout,
		renderPass:          renderPass,
		basePipelineIndex:   -1,
	}
}

func presentInfo(swapchain vk.SwapchainKHR, imageIndex uint32, wait vk.Semaphore) presentInfoT {
	return presentInfoT{
		sType:              structureTypePresentInfoKHR,
		waitSemaphoreCount: 1,
		pWaitSemaphores:    unsafe.Pointer(&wait),
		swapchainCount:     1,
		pSwapchains:        unsafe.Pointer(&swapchain),
		pImageIndices:      unsafe.Pointer(&imageIndex),
	}
}
