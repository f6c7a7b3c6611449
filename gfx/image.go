package gfx

import (
	"fmt"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
	"github.com/forgelabs/enginecore/handle"
)

// ImageUsage selects between a sampled asset texture and a render-target
// attachment.
type ImageUsage int

const (
	ImageUsageSampledTexture ImageUsage = iota
	ImageUsageFramebufferColor
	ImageUsageFramebufferDepth
)

// SamplerDesc holds sampler settings for an image. CreateImage does not
// create a sampler and does not read these settings.
type SamplerDesc struct {
	Filter      uint32 // VkFilter
	AddressMode uint32 // VkSamplerAddressMode
	Anisotropy  float32
}

// MipContent is one mip level's raw pixel bytes for an image created
// with initial content.
type MipContent struct {
	Level  uint32
	Offset uint64
	Data   []byte
}

// ImageDesc describes an image creation request.
type ImageDesc struct {
	Width, Height uint32
	Format        vk.Format
	MipLevels     uint32
	Usage         ImageUsage
	Sampled       bool
	Sampler       SamplerDesc
	Content       []MipContent
	ASTC          bool // block-compressed content; CreateImage does not read it
}

// Image is an opaque handle into the image pool.
type Image handle.Handle

func isDepthFormat(f vk.Format) bool {
	return f == vk.FormatD32Sfloat
}

// CreateImage creates an image and its backing memory. Content-carrying
// images get a staging upload with barrier transitions; framebuffer
// images get an attachment-optimal barrier. Every image gets a view. No
// sampler is created, whatever Sampled and Sampler hold, and ASTC adds
// no decode-mode view attachment.
func (d *Device) CreateImage(desc ImageDesc) (Image, error) {
	if desc.MipLevels == 0 {
		desc.MipLevels = 1
	}

	usageFlags := imageUsageTransferDst | imageUsageSampled
	aspect := uint32(imageAspectColorBit)
	targetLayout := vk.ImageLayoutShaderReadOnlyOptimal
	switch desc.Usage {
	case ImageUsageFramebufferColor:
		usageFlags |= imageUsageColorAttachment
		targetLayout = vk.ImageLayoutColorAttachmentOptimal
	case ImageUsageFramebufferDepth:
		usageFlags |= imageUsageDepthStencilAttachment
		aspect = imageAspectDepthBit
		targetLayout = vk.ImageLayoutDepthAttachmentOptimal
	}

	ci := vkImageCreateInfo(desc.Width, desc.Height, desc.MipLevels, desc.Format, usageFlags)
	vkHandle, result := d.cmds.CreateImage(d.handle, unsafe.Pointer(&ci))
	if result != vk.Success {
		return Image{}, fmt.Errorf("gfx: vkCreateImage failed: %s", result)
	}

	mem, err := d.allocateImageMemory(vkHandle)
	if err != nil {
		d.cmds.DestroyImage(d.handle, vkHandle)
		return Image{}, err
	}

	res := ImageResource{
		Handle: vkHandle, Memory: mem,
		Width: desc.Width, Height: desc.Height, MipLevels: desc.MipLevels,
		Format: desc.Format, Layout: vk.ImageLayoutUndefined, Usage: desc.Usage,
	}

	if len(desc.Content) > 0 {
		if err := d.uploadImageContent(&res, desc.Content, aspect); err != nil {
			d.cmds.DestroyImage(d.handle, vkHandle)
			d.freeDeviceMemory(mem)
			return Image{}, err
		}
		res.Layout = targetLayout
	} else {
		d.deferred.enqueuePipelineBarrier(vkHandle, pipelineStageTopOfPipe, pipelineStageColorAttachmentOutput, vk.ImageLayoutUndefined, targetLayout)
		res.Layout = targetLayout
	}

	vci := imageViewCreateInfo(vkHandle, desc.Format, aspect)
	view, result := d.cmds.CreateImageView(d.handle, unsafe.Pointer(&vci))
	if result != vk.Success {
		d.cmds.DestroyImage(d.handle, vkHandle)
		d.freeDeviceMemory(mem)
		return Image{}, fmt.Errorf("gfx: vkCreateImageView failed: %s", result)
	}
	res.View = view

	h := d.pools.images.Add(res)
	return Image(h), nil
}

const pipelineStageTopOfPipe uint32 = 0x00000001
const imageAspectDepthBit uint32 = 0x00000002

// uploadImageContent stages every mip's bytes, transitions
// UNDEFINED->TRANSFER_DST, schedules the copy, then transitions
// TRANSFER_DST->SHADER_READ_ONLY.
func (d *Device) uploadImageContent(res *ImageResource, content []MipContent, aspect uint32) error {
	total := 0
	for _, m := range content {
		total += len(m.Data)
	}
	stagingCI := vkBufferCreateInfo(uint64(total), bufferUsageTransferSrc)
	staging, result := d.cmds.CreateBuffer(d.handle, unsafe.Pointer(&stagingCI))
	if result != vk.Success {
		return fmt.Errorf("gfx: vkCreateBuffer (staging) failed: %s", result)
	}
	stagingMem, err := d.allocateDeviceMemory(staging, true)
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, staging)
		return err
	}
	if ptr, ok := d.tryMapMemory(stagingMem, uint64(total)); ok {
		for _, m := range content {
			dst := unsafe.Slice((*byte)(unsafe.Add(ptr, m.Offset)), len(m.Data))
			copy(dst, m.Data)
		}
	}

	d.deferred.enqueuePipelineBarrier(res.Handle, pipelineStageTopOfPipe, pipelineStageTransfer, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	d.deferred.enqueueCopyBufferToImage(staging, res.Handle, vk.ImageLayoutTransferDstOptimal)
	d.deferred.enqueuePipelineBarrier(res.Handle, pipelineStageTransfer, pipelineStageFragmentShader, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)

	d.gc.enqueue(gcRecord{kind: gcKindBuffer, frameStamp: d.scheduler.currentFrame, buffer: staging, allocation: stagingMem})
	return nil
}

const pipelineStageTransfer uint32 = 0x00001000
const pipelineStageFragmentShader uint32 = 0x00000080

// DestroyImage releases an image's view, memory, and Vulkan object.
func (d *Device) DestroyImage(img Image) {
	res, ok := d.pools.images.Remove(handle.Handle(img))
	if !ok {
		return
	}
	if res.View != 0 {
		d.cmds.DestroyImageView(d.handle, res.View)
	}
	d.cmds.DestroyImage(d.handle, res.Handle)
	d.freeDeviceMemory(res.Memory)
}
