package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// Commands holds every device/instance-level function pointer this engine
// resolves, plus typed call wrappers. Struct create-info layouts are the
// caller's responsibility (see gfx's vkstruct helpers) — this package only
// owns proc-address resolution and the goffi marshaling contract.
type Commands struct {
	createBuffer              unsafe.Pointer
	destroyBuffer             unsafe.Pointer
	createImage               unsafe.Pointer
	destroyImage              unsafe.Pointer
	createFence               unsafe.Pointer
	destroyFence              unsafe.Pointer
	createSemaphore           unsafe.Pointer
	destroySemaphore          unsafe.Pointer
	createCommandPool         unsafe.Pointer
	destroyCommandPool        unsafe.Pointer
	allocateCommandBuffers    unsafe.Pointer
	freeCommandBuffers        unsafe.Pointer
	beginCommandBuffer        unsafe.Pointer
	endCommandBuffer          unsafe.Pointer
	waitForFences             unsafe.Pointer
	resetFences               unsafe.Pointer
	queueSubmit               unsafe.Pointer
	queuePresentKHR           unsafe.Pointer
	acquireNextImageKHR       unsafe.Pointer
	createDescriptorSetLayout unsafe.Pointer
	destroyDescriptorSetLayout unsafe.Pointer
	createPipelineLayout      unsafe.Pointer
	destroyPipelineLayout     unsafe.Pointer
	createGraphicsPipelines   unsafe.Pointer
	destroyPipeline           unsafe.Pointer
	createShaderModule        unsafe.Pointer
	destroyShaderModule       unsafe.Pointer
	createSwapchainKHR        unsafe.Pointer
	destroySwapchainKHR       unsafe.Pointer
	cmdBeginRenderPass        unsafe.Pointer
	cmdEndRenderPass          unsafe.Pointer
	cmdCopyBuffer             unsafe.Pointer
	cmdCopyBufferToImage      unsafe.Pointer
	cmdPipelineBarrier        unsafe.Pointer

	allocateMemory            unsafe.Pointer
	freeMemory                unsafe.Pointer
	mapMemory                 unsafe.Pointer
	unmapMemory               unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	getImageMemoryRequirements  unsafe.Pointer
	bindBufferMemory          unsafe.Pointer
	bindImageMemory           unsafe.Pointer

	createRenderPass    unsafe.Pointer
	destroyRenderPass   unsafe.Pointer
	createFramebuffer   unsafe.Pointer
	destroyFramebuffer  unsafe.Pointer
	createImageView     unsafe.Pointer
	destroyImageView    unsafe.Pointer
	createSampler       unsafe.Pointer
	destroySampler      unsafe.Pointer
	getSwapchainImagesKHR unsafe.Pointer
}

// NewCommands creates an unloaded Commands table; call Load before use.
func NewCommands() *Commands { return &Commands{} }

// Load resolves every device-level function this package wraps. instance
// is needed for the Intel vkGetDeviceProcAddr workaround (SetDeviceProcAddr
// must have already been called on it).
func (c *Commands) Load(device Device) error {
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.waitForFences = load("vkWaitForFences")
	c.resetFences = load("vkResetFences")
	c.queueSubmit = load("vkQueueSubmit")
	c.queuePresentKHR = load("vkQueuePresentKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createPipelineLayout = load("vkCreatePipelineLayout")
	c.destroyPipelineLayout = load("vkDestroyPipelineLayout")
	c.createGraphicsPipelines = load("vkCreateGraphicsPipelines")
	c.destroyPipeline = load("vkDestroyPipeline")
	c.createShaderModule = load("vkCreateShaderModule")
	c.destroyShaderModule = load("vkDestroyShaderModule")
	c.createSwapchainKHR = load("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = load("vkDestroySwapchainKHR")
	c.cmdBeginRenderPass = load("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = load("vkCmdEndRenderPass")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")

	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.bindImageMemory = load("vkBindImageMemory")

	c.createRenderPass = load("vkCreateRenderPass")
	c.destroyRenderPass = load("vkDestroyRenderPass")
	c.createFramebuffer = load("vkCreateFramebuffer")
	c.destroyFramebuffer = load("vkDestroyFramebuffer")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.getSwapchainImagesKHR = load("vkGetSwapchainImagesKHR")

	if c.createBuffer == nil || c.beginCommandBuffer == nil {
		return fmt.Errorf("vk: failed to resolve required device functions")
	}
	return nil
}

// create invokes a VkResult(device, pCreateInfo, pAllocator, pHandle)
// function, the shape shared by every vkCreateXxx this package uses.
func create(proc unsafe.Pointer, device Device, createInfo unsafe.Pointer) (uint64, Result) {
	var handle uint64
	var res int32
	handlePtr := unsafe.Pointer(&handle)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&createInfo),
		unsafe.Pointer(new(unsafe.Pointer)),
		unsafe.Pointer(&handlePtr),
	}
	_ = ffi.CallFunction(&sigCreate, proc, unsafe.Pointer(&res), args[:])
	return handle, Result(res)
}

// destroy invokes a void(device, handle, pAllocator) function, the shape
// shared by every vkDestroyXxx this package uses.
func destroy(proc unsafe.Pointer, device Device, handle uint64) {
	if proc == nil {
		return
	}
	var nilAlloc unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&handle),
		unsafe.Pointer(&nilAlloc),
	}
	var discard [8]byte
	_ = ffi.CallFunction(&sigDestroy, proc, unsafe.Pointer(&discard[0]), args[:])
}

func (c *Commands) CreateBuffer(device Device, ci unsafe.Pointer) (Buffer, Result) {
	h, r := create(c.createBuffer, device, ci)
	return Buffer(h), r
}
func (c *Commands) DestroyBuffer(device Device, b Buffer) { destroy(c.destroyBuffer, device, uint64(b)) }

func (c *Commands) CreateImage(device Device, ci unsafe.Pointer) (Image, Result) {
	h, r := create(c.createImage, device, ci)
	return Image(h), r
}
func (c *Commands) DestroyImage(device Device, i Image) { destroy(c.destroyImage, device, uint64(i)) }

func (c *Commands) CreateFence(device Device, ci unsafe.Pointer) (Fence, Result) {
	h, r := create(c.createFence, device, ci)
	return Fence(h), r
}
func (c *Commands) DestroyFence(device Device, f Fence) { destroy(c.destroyFence, device, uint64(f)) }

func (c *Commands) CreateSemaphore(device Device, ci unsafe.Pointer) (Semaphore, Result) {
	h, r := create(c.createSemaphore, device, ci)
	return Semaphore(h), r
}
func (c *Commands) DestroySemaphore(device Device, s Semaphore) {
	destroy(c.destroySemaphore, device, uint64(s))
}

func (c *Commands) CreateCommandPool(device Device, ci unsafe.Pointer) (CommandPool, Result) {
	h, r := create(c.createCommandPool, device, ci)
	return CommandPool(h), r
}
func (c *Commands) DestroyCommandPool(device Device, p CommandPool) {
	destroy(c.destroyCommandPool, device, uint64(p))
}

func (c *Commands) CreateDescriptorSetLayout(device Device, ci unsafe.Pointer) (DescriptorSetLayout, Result) {
	h, r := create(c.createDescriptorSetLayout, device, ci)
	return DescriptorSetLayout(h), r
}
func (c *Commands) DestroyDescriptorSetLayout(device Device, l DescriptorSetLayout) {
	destroy(c.destroyDescriptorSetLayout, device, uint64(l))
}

func (c *Commands) CreatePipelineLayout(device Device, ci unsafe.Pointer) (PipelineLayout, Result) {
	h, r := create(c.createPipelineLayout, device, ci)
	return PipelineLayout(h), r
}
func (c *Commands) DestroyPipelineLayout(device Device, l PipelineLayout) {
	destroy(c.destroyPipelineLayout, device, uint64(l))
}

func (c *Commands) DestroyPipeline(device Device, p Pipeline) {
	destroy(c.destroyPipeline, device, uint64(p))
}

// CreateGraphicsPipelines creates a single pipeline (pipelineCache is
// always VK_NULL_HANDLE here; this engine does not persist a disk cache).
func (c *Commands) CreateGraphicsPipelines(device Device, ci unsafe.Pointer) (Pipeline, Result) {
	var handle uint64
	var res int32
	var cache uint64
	count := uint32(1)
	handlePtr := unsafe.Pointer(&handle)
	var nilAlloc unsafe.Pointer
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&count),
		unsafe.Pointer(&ci),
		unsafe.Pointer(&nilAlloc),
		unsafe.Pointer(&handlePtr),
	}
	_ = ffi.CallFunction(&sigCreateGraphicsPipelines, c.createGraphicsPipelines, unsafe.Pointer(&res), args[:])
	return Pipeline(handle), Result(res)
}

func (c *Commands) CreateShaderModule(device Device, ci unsafe.Pointer) (ShaderModule, Result) {
	h, r := create(c.createShaderModule, device, ci)
	return ShaderModule(h), r
}
func (c *Commands) DestroyShaderModule(device Device, m ShaderModule) {
	destroy(c.destroyShaderModule, device, uint64(m))
}

func (c *Commands) CreateSwapchainKHR(device Device, ci unsafe.Pointer) (SwapchainKHR, Result) {
	h, r := create(c.createSwapchainKHR, device, ci)
	return SwapchainKHR(h), r
}
func (c *Commands) DestroySwapchainKHR(device Device, s SwapchainKHR) {
	destroy(c.destroySwapchainKHR, device, uint64(s))
}

func (c *Commands) CreateRenderPass(device Device, ci unsafe.Pointer) (RenderPass, Result) {
	h, r := create(c.createRenderPass, device, ci)
	return RenderPass(h), r
}
func (c *Commands) DestroyRenderPass(device Device, rp RenderPass) {
	destroy(c.destroyRenderPass, device, uint64(rp))
}

func (c *Commands) CreateFramebuffer(device Device, ci unsafe.Pointer) (Framebuffer, Result) {
	h, r := create(c.createFramebuffer, device, ci)
	return Framebuffer(h), r
}
func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	destroy(c.destroyFramebuffer, device, uint64(fb))
}

func (c *Commands) CreateImageView(device Device, ci unsafe.Pointer) (ImageView, Result) {
	h, r := create(c.createImageView, device, ci)
	return ImageView(h), r
}
func (c *Commands) DestroyImageView(device Device, v ImageView) {
	destroy(c.destroyImageView, device, uint64(v))
}

func (c *Commands) CreateSampler(device Device, ci unsafe.Pointer) (Sampler, Result) {
	h, r := create(c.createSampler, device, ci)
	return Sampler(h), r
}
func (c *Commands) DestroySampler(device Device, s Sampler) {
	destroy(c.destroySampler, device, uint64(s))
}

// GetSwapchainImagesKHR returns the swapchain's backing images. Call
// once with a nil out slice is not supported here; callers pre-size out
// to the swapchain's known image count (from VkSwapchainCreateInfoKHR's
// MinImageCount, which gfx's swapchain builder sets from
// SwapchainConfig.ImageCount).
func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR, out []Image) Result {
	count := uint32(len(out))
	var res int32
	var outPtr unsafe.Pointer
	if count > 0 {
		outPtr = unsafe.Pointer(&out[0])
	}
	countPtr := unsafe.Pointer(&count)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&sc),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	_ = ffi.CallFunction(&sigGetSwapchainImages, c.getSwapchainImagesKHR, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) AllocateCommandBuffers(device Device, ai unsafe.Pointer, out *CommandBuffer) Result {
	var res int32
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&ai), unsafe.Pointer(&outPtr)}
	_ = ffi.CallFunction(&sigAllocate, c.allocateCommandBuffers, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, bufs []CommandBuffer) {
	if len(bufs) == 0 {
		return
	}
	count := uint32(len(bufs))
	bufsPtr := unsafe.Pointer(&bufs[0])
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&count),
		unsafe.Pointer(&bufsPtr),
	}
	var discard [8]byte
	_ = ffi.CallFunction(&sigFreeCommandBuffers, c.freeCommandBuffers, unsafe.Pointer(&discard[0]), args[:])
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, bi unsafe.Pointer) Result {
	var res int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bi)}
	_ = ffi.CallFunction(&sigBegin, c.beginCommandBuffer, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	var res int32
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	_ = ffi.CallFunction(&sigEnd, c.endCommandBuffer, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeoutNanos uint64) Result {
	count := uint32(len(fences))
	var fencesPtr unsafe.Pointer
	if count > 0 {
		fencesPtr = unsafe.Pointer(&fences[0])
	}
	var all uint32
	if waitAll {
		all = 1
	}
	var res int32
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&fencesPtr),
		unsafe.Pointer(&all),
		unsafe.Pointer(&timeoutNanos),
	}
	_ = ffi.CallFunction(&sigWaitFences, c.waitForFences, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) ResetFences(device Device, fences []Fence) Result {
	count := uint32(len(fences))
	var fencesPtr unsafe.Pointer
	if count > 0 {
		fencesPtr = unsafe.Pointer(&fences[0])
	}
	var res int32
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), unsafe.Pointer(&fencesPtr)}
	_ = ffi.CallFunction(&sigResetFences, c.resetFences, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) QueueSubmit(queue Queue, si unsafe.Pointer, fence Fence) Result {
	count := uint32(1)
	var res int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&queue),
		unsafe.Pointer(&count),
		unsafe.Pointer(&si),
		unsafe.Pointer(&fence),
	}
	_ = ffi.CallFunction(&sigQueueSubmit, c.queueSubmit, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) QueuePresentKHR(queue Queue, pi unsafe.Pointer) Result {
	var res int32
	args := [2]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&pi)}
	_ = ffi.CallFunction(&sigQueuePresent, c.queuePresentKHR, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) AcquireNextImageKHR(device Device, sc SwapchainKHR, timeoutNanos uint64, sem Semaphore, fence Fence) (uint32, Result) {
	var imageIndex uint32
	var res int32
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&sc),
		unsafe.Pointer(&timeoutNanos),
		unsafe.Pointer(&sem),
		unsafe.Pointer(&fence),
		unsafe.Pointer(&imageIndex),
	}
	_ = ffi.CallFunction(&sigAcquireNextImage, c.acquireNextImageKHR, unsafe.Pointer(&res), args[:])
	return imageIndex, Result(res)
}

func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, bi unsafe.Pointer, contents uint32) {
	args := [3]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bi), unsafe.Pointer(&contents)}
	var discard [8]byte
	_ = ffi.CallFunction(&sigCmdBeginRenderPass, c.cmdBeginRenderPass, unsafe.Pointer(&discard[0]), args[:])
}

func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	var discard [8]byte
	_ = ffi.CallFunction(&sigCmdEndRenderPass, c.cmdEndRenderPass, unsafe.Pointer(&discard[0]), args[:])
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regions unsafe.Pointer, regionCount uint32) {
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regions),
	}
	var discard [8]byte
	_ = ffi.CallFunction(&sigCmdCopyBuffer, c.cmdCopyBuffer, unsafe.Pointer(&discard[0]), args[:])
}

func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, layout ImageLayout, regions unsafe.Pointer, regionCount uint32) {
	layoutU32 := uint32(layout)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&layoutU32),
		unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regions),
	}
	var discard [8]byte
	_ = ffi.CallFunction(&sigCmdCopyBufferToImage, c.cmdCopyBufferToImage, unsafe.Pointer(&discard[0]), args[:])
}

// memoryAllocateInfo mirrors VkMemoryAllocateInfo's layout.
type memoryAllocateInfo struct {
	sType           uint32
	_pad            uint32
	pNext           unsafe.Pointer
	allocationSize  uint64
	memoryTypeIndex uint32
	_pad2           uint32
}

const structureTypeMemoryAllocateInfo = 5

// AllocateMemory allocates device memory of the given type index and size.
func (c *Commands) AllocateMemory(device Device, size uint64, memoryTypeIndex uint32) (DeviceMemory, Result) {
	ci := memoryAllocateInfo{
		sType:           structureTypeMemoryAllocateInfo,
		allocationSize:  size,
		memoryTypeIndex: memoryTypeIndex,
	}
	h, r := create(c.allocateMemory, device, unsafe.Pointer(&ci))
	return DeviceMemory(h), r
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	destroy(c.freeMemory, device, uint64(mem))
}

// MapMemory maps the entire range [0, size) of mem into host address space.
func (c *Commands) MapMemory(device Device, mem DeviceMemory, size uint64) (unsafe.Pointer, Result) {
	var res int32
	var offset uint64
	var flags32 uint32
	var data unsafe.Pointer
	dataPtr := unsafe.Pointer(&data)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&mem),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&flags32),
		unsafe.Pointer(&dataPtr),
	}
	_ = ffi.CallFunction(&sigMapMemory, c.mapMemory, unsafe.Pointer(&res), args[:])
	return data, Result(res)
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)}
	var discard [8]byte
	_ = ffi.CallFunction(&sigUnmapMemory, c.unmapMemory, unsafe.Pointer(&discard[0]), args[:])
}

// MemoryRequirements mirrors the three VkMemoryRequirements fields this
// engine reads: required size, alignment, and the allowed memory-type bitmask.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

func (c *Commands) GetBufferMemoryRequirements(device Device, b Buffer) MemoryRequirements {
	var req MemoryRequirements
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&b), unsafe.Pointer(&req)}
	var discard [8]byte
	_ = ffi.CallFunction(&sigGetMemoryRequirements, c.getBufferMemoryRequirements, unsafe.Pointer(&discard[0]), args[:])
	return req
}

func (c *Commands) GetImageMemoryRequirements(device Device, i Image) MemoryRequirements {
	var req MemoryRequirements
	args := [3]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&i), unsafe.Pointer(&req)}
	var discard [8]byte
	_ = ffi.CallFunction(&sigGetMemoryRequirements, c.getImageMemoryRequirements, unsafe.Pointer(&discard[0]), args[:])
	return req
}

func (c *Commands) BindBufferMemory(device Device, b Buffer, mem DeviceMemory, offset uint64) Result {
	var res int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&b),
		unsafe.Pointer(&mem),
		unsafe.Pointer(&offset),
	}
	_ = ffi.CallFunction(&sigBindMemory, c.bindBufferMemory, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) BindImageMemory(device Device, i Image, mem DeviceMemory, offset uint64) Result {
	var res int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&i),
		unsafe.Pointer(&mem),
		unsafe.Pointer(&offset),
	}
	_ = ffi.CallFunction(&sigBindMemory, c.bindImageMemory, unsafe.Pointer(&res), args[:])
	return Result(res)
}

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage, dependencyFlags uint32, imageBarriers unsafe.Pointer, imageBarrierCount uint32) {
	var zero uint32
	var nilPtr unsafe.Pointer
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&srcStage),
		unsafe.Pointer(&dstStage),
		unsafe.Pointer(&dependencyFlags),
		unsafe.Pointer(&zero),
		unsafe.Pointer(&nilPtr),
		unsafe.Pointer(&zero),
		unsafe.Pointer(&nilPtr),
		unsafe.Pointer(&imageBarrierCount),
		unsafe.Pointer(&imageBarriers),
	}
	var discard [8]byte
	_ = ffi.CallFunction(&sigCmdPipelineBarrier, c.cmdPipelineBarrier, unsafe.Pointer(&discard[0]), args[:])
}
