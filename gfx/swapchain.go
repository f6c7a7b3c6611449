package gfx

import (
	"fmt"
	"unsafe"

	"github.com/forgelabs/enginecore/gfx/vk"
)

// SwapchainConfig carries the platform surface capabilities the engine
// façade already queried; this package does not call
// vkGetPhysicalDeviceSurfaceCapabilitiesKHR itself, since surface and
// windowing integration live outside gfx.
type SwapchainConfig struct {
	Width, Height uint32
	ImageCount    uint32
	Format        vk.Format
	PreTransform  uint32 // VkSurfaceTransformFlagBitsKHR, used for the orientation transform
}

// Swapchain owns the presentable images, their views, a single render
// pass, and one framebuffer per image, all sized for a single color
// attachment. No depth attachment is created.
type Swapchain struct {
	device *Device
	cfg    SwapchainConfig

	handle      vk.SwapchainKHR
	images      []vk.Image
	imageViews  []vk.ImageView
	framebuffers []vk.Framebuffer
	renderPass  vk.RenderPass

	depthImage  vk.Image
	depthView   vk.ImageView
	depthMemory vk.DeviceMemory
}

// orientationTransform returns the rotation (in quarter turns: 0, 1, 2,
// or 3) a pre-transformed surface needs applied to viewport/scissor
// state so rendered content matches the physical display orientation.
func (s *Swapchain) orientationTransform() int {
	switch s.cfg.PreTransform {
	case surfaceTransformRotate90:
		return 1
	case surfaceTransformRotate180:
		return 2
	case surfaceTransformRotate270:
		return 3
	default:
		return 0
	}
}

const (
	surfaceTransformIdentity = 0x00000001
	surfaceTransformRotate90 = 0x00000002
	surfaceTransformRotate180 = 0x00000004
	surfaceTransformRotate270 = 0x00000008
)

// NewSwapchain creates the swapchain and its dependent render target
// objects, and binds it onto the device.
func NewSwapchain(d *Device, cfg SwapchainConfig) (*Swapchain, error) {
	s := &Swapchain{device: d, cfg: cfg}
	if err := s.create(); err != nil {
		return nil, err
	}
	d.swapchain = s
	return s, nil
}

func (s *Swapchain) create() error {
	d := s.device
	ci := swapchainCreateInfo(d.surface, s.cfg.ImageCount, s.cfg.Format, s.cfg.Width, s.cfg.Height)
	sc, result := d.cmds.CreateSwapchainKHR(d.handle, unsafe.Pointer(&ci))
	if result != vk.Success {
		return fmt.Errorf("gfx: vkCreateSwapchainKHR failed: %s", result)
	}
	s.handle = sc

	images := make([]vk.Image, s.cfg.ImageCount)
	if result := d.cmds.GetSwapchainImagesKHR(d.handle, sc, images); result != vk.Success {
		return fmt.Errorf("gfx: vkGetSwapchainImagesKHR failed: %s", result)
	}
	s.images = images

	s.imageViews = make([]vk.ImageView, len(images))
	for i, img := range images {
		vci := imageViewCreateInfo(img, s.cfg.Format, imageAspectColorBit)
		view, result := d.cmds.CreateImageView(d.handle, unsafe.Pointer(&vci))
		if result != vk.Success {
			return fmt.Errorf("gfx: vkCreateImageView failed: %s", result)
		}
		s.imageViews[i] = view
	}

	rpci := colorRenderPassCreateInfo(s.cfg.Format)
	rp, result := d.cmds.CreateRenderPass(d.handle, unsafe.Pointer(&rpci))
	if result != vk.Success {
		return fmt.Errorf("gfx: vkCreateRenderPass failed: %s", result)
	}
	s.renderPass = rp

	s.framebuffers = make([]vk.Framebuffer, len(images))
	for i, view := range s.imageViews {
		fci := framebufferCreateInfo(rp, view, s.cfg.Width, s.cfg.Height)
		fb, result := d.cmds.CreateFramebuffer(d.handle, unsafe.Pointer(&fci))
		if result != vk.Success {
			return fmt.Errorf("gfx: vkCreateFramebuffer failed: %s", result)
		}
		s.framebuffers[i] = fb
	}

	Logger().Info("swapchain created", "width", s.cfg.Width, "height", s.cfg.Height, "images", len(images))
	return nil
}

// recreate destroys and rebuilds every swapchain-dependent object,
// keeping the same config dimensions the caller last set via Resize.
// Triggered when acquire or present reports the swapchain out of date,
// e.g. after a window resize.
func (s *Swapchain) recreate() error {
	if err := s.device.WaitIdle(); err != nil {
		return err
	}
	s.destroy()
	return s.create()
}

// Resize updates the target dimensions before the next recreate.
func (s *Swapchain) Resize(width, height uint32) {
	s.cfg.Width = width
	s.cfg.Height = height
}

func (s *Swapchain) destroy() {
	d := s.device
	for _, fb := range s.framebuffers {
		d.cmds.DestroyFramebuffer(d.handle, fb)
	}
	if s.renderPass != 0 {
		d.cmds.DestroyRenderPass(d.handle, s.renderPass)
	}
	for _, v := range s.imageViews {
		d.cmds.DestroyImageView(d.handle, v)
	}
	if s.handle != 0 {
		d.cmds.DestroySwapchainKHR(d.handle, s.handle)
	}
	s.framebuffers, s.imageViews, s.images = nil, nil, nil
}

// renderPassBeginInfo builds the VkRenderPassBeginInfo for imageIndex's
// framebuffer, clearing color to the given value. Its depth clear value of
// 1.0 matches no attachment of the color-only render pass.
func (s *Swapchain) renderPassBeginInfo(imageIndex uint32, color [4]float32) renderPassBeginInfoT {
	return newRenderPassBeginInfo(s.renderPass, s.framebuffers[imageIndex], s.cfg.Width, s.cfg.Height, color)
}
