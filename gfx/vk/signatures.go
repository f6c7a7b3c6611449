package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Reusable CallInterface templates. Vulkan's surface is large but its
// signature shapes are not; this engine's trimmed command set needs only
// the handful below, one template shared across every function with the
// same C calling shape instead of one template per function.
var (
	// VkResult(VkDevice, const void*, const void*, void*) —
	// vkCreateBuffer, vkCreateImage, vkCreateFence, vkCreateSemaphore,
	// vkCreateCommandPool, vkCreateDescriptorSetLayout,
	// vkCreatePipelineLayout, vkCreateSwapchainKHR.
	sigCreate types.CallInterface

	// void(VkDevice, Handle, const void*) — vkDestroyBuffer,
	// vkDestroyImage, vkDestroyFence, vkDestroySemaphore,
	// vkDestroyCommandPool, vkDestroyDescriptorSetLayout,
	// vkDestroyPipelineLayout, vkDestroyPipeline, vkDestroySwapchainKHR.
	sigDestroy types.CallInterface

	// VkResult(VkDevice, const void*, void*) — vkAllocateCommandBuffers.
	sigAllocate types.CallInterface

	// void(VkDevice, VkCommandPool, uint32, const void*) —
	// vkFreeCommandBuffers.
	sigFreeCommandBuffers types.CallInterface

	// VkResult(VkCommandBuffer, const void*) — vkBeginCommandBuffer.
	sigBegin types.CallInterface

	// VkResult(VkCommandBuffer) — vkEndCommandBuffer.
	sigEnd types.CallInterface

	// VkResult(VkDevice, uint32, const void*, uint32, uint64) — vkWaitForFences.
	sigWaitFences types.CallInterface

	// VkResult(VkDevice, uint32, const void*) — vkResetFences.
	sigResetFences types.CallInterface

	// VkResult(VkQueue, uint32, const void*, VkFence) — vkQueueSubmit.
	sigQueueSubmit types.CallInterface

	// VkResult(VkQueue, const void*) — vkQueuePresentKHR.
	sigQueuePresent types.CallInterface

	// VkResult(VkDevice, VkSwapchainKHR, uint64, VkSemaphore, VkFence,
	// uint32*) — vkAcquireNextImageKHR.
	sigAcquireNextImage types.CallInterface

	// VkResult(VkDevice, VkPipelineCache, uint32, const void*, const
	// void*, void*) — vkCreateGraphicsPipelines.
	sigCreateGraphicsPipelines types.CallInterface

	// void(VkCommandBuffer, const void*, uint32) — vkCmdBeginRenderPass.
	sigCmdBeginRenderPass types.CallInterface

	// void(VkCommandBuffer) — vkCmdEndRenderPass.
	sigCmdEndRenderPass types.CallInterface

	// void(VkCommandBuffer, VkBuffer, VkBuffer, uint32, const void*) —
	// vkCmdCopyBuffer.
	sigCmdCopyBuffer types.CallInterface

	// void(VkCommandBuffer, VkBuffer, VkImage, uint32, uint32, const
	// void*) — vkCmdCopyBufferToImage.
	sigCmdCopyBufferToImage types.CallInterface

	// void(VkCommandBuffer, uint32, uint32, uint32, uint32, const void*,
	// uint32, const void*, uint32, const void*) — vkCmdPipelineBarrier.
	sigCmdPipelineBarrier types.CallInterface

	// VkResult(VkDevice, VkDeviceMemory, uint64, uint64, uint32, void**) —
	// vkMapMemory.
	sigMapMemory types.CallInterface

	// void(VkDevice, VkDeviceMemory) — vkUnmapMemory.
	sigUnmapMemory types.CallInterface

	// void(VkDevice, Handle, void*) — vkGetBufferMemoryRequirements,
	// vkGetImageMemoryRequirements.
	sigGetMemoryRequirements types.CallInterface

	// VkResult(VkDevice, Handle, VkDeviceMemory, uint64) —
	// vkBindBufferMemory, vkBindImageMemory.
	sigBindMemory types.CallInterface

	// VkResult(VkDevice, VkSwapchainKHR, uint32*, VkImage*) —
	// vkGetSwapchainImagesKHR.
	sigGetSwapchainImages types.CallInterface
)

func prepareSignatures() error {
	u64 := types.UInt64TypeDescriptor
	u32 := types.UInt32TypeDescriptor
	ptr := types.PointerTypeDescriptor
	result := types.Int32TypeDescriptor
	void := types.VoidTypeDescriptor

	specs := []struct {
		cif  *types.CallInterface
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}{
		{&sigCreate, result, []*types.TypeDescriptor{u64, ptr, ptr, ptr}},
		{&sigDestroy, void, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigAllocate, result, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigFreeCommandBuffers, void, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigBegin, result, []*types.TypeDescriptor{u64, ptr}},
		{&sigEnd, result, []*types.TypeDescriptor{u64}},
		{&sigWaitFences, result, []*types.TypeDescriptor{u64, u32, ptr, u32, u64}},
		{&sigResetFences, result, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigQueueSubmit, result, []*types.TypeDescriptor{u64, u32, ptr, u64}},
		{&sigQueuePresent, result, []*types.TypeDescriptor{u64, ptr}},
		{&sigAcquireNextImage, result, []*types.TypeDescriptor{u64, u64, u64, u64, u64, ptr}},
		{&sigCreateGraphicsPipelines, result, []*types.TypeDescriptor{u64, u64, u32, ptr, ptr, ptr}},
		{&sigCmdBeginRenderPass, void, []*types.TypeDescriptor{u64, ptr, u32}},
		{&sigCmdEndRenderPass, void, []*types.TypeDescriptor{u64}},
		{&sigCmdCopyBuffer, void, []*types.TypeDescriptor{u64, u64, u64, u32, ptr}},
		{&sigCmdCopyBufferToImage, void, []*types.TypeDescriptor{u64, u64, u64, u32, u32, ptr}},
		{&sigCmdPipelineBarrier, void, []*types.TypeDescriptor{u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigMapMemory, result, []*types.TypeDescriptor{u64, u64, u64, u64, u32, ptr}},
		{&sigUnmapMemory, void, []*types.TypeDescriptor{u64, u64}},
		{&sigGetMemoryRequirements, void, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigBindMemory, result, []*types.TypeDescriptor{u64, u64, u64, u64}},
		{&sigGetSwapchainImages, result, []*types.TypeDescriptor{u64, u64, ptr, ptr}},
	}
	for _, s := range specs {
		if err := ffi.PrepareCallInterface(s.cif, types.DefaultCall, s.ret, s.args); err != nil {
			return err
		}
	}
	return nil
}
