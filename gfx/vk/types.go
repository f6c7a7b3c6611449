package vk

// Opaque Vulkan dispatchable/non-dispatchable handles. Vulkan defines
// these as pointer-sized on 64-bit platforms; representing them as uint64
// keeps the Go side free of unsafe.Pointer bookkeeping for values that are
// never dereferenced, only round-tripped back into driver calls.
type (
	Instance             uint64
	PhysicalDevice       uint64
	Device               uint64
	Queue                uint64
	Buffer               uint64
	Image                uint64
	ImageView            uint64
	Sampler              uint64
	DescriptorSetLayout  uint64
	DescriptorPool       uint64
	DescriptorSet        uint64
	PipelineLayout       uint64
	Pipeline             uint64
	ShaderModule         uint64
	RenderPass           uint64
	Framebuffer          uint64
	CommandPool          uint64
	CommandBuffer        uint64
	Fence                uint64
	Semaphore            uint64
	SurfaceKHR           uint64
	SwapchainKHR         uint64
	DeviceMemory         uint64
)

// Result mirrors VkResult's success/status/error codes this engine branches
// on directly (swapchain lifecycle, fence waits).
type Result int32

const (
	Success       Result = 0
	NotReady      Result = 1
	Timeout       Result = 2
	EventSet      Result = 3
	EventReset    Result = 4
	Incomplete    Result = 5
	ErrorOutOfDeviceMemory Result = -2
	ErrorDeviceLost        Result = -4
	ErrorSurfaceLostKHR    Result = -1000000000
	ErrorOutOfDateKHR      Result = -1000001004
	SuboptimalKHR          Result = 1000001003
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case Incomplete:
		return "VK_INCOMPLETE"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorSurfaceLostKHR:
		return "VK_ERROR_SURFACE_LOST_KHR"
	case ErrorOutOfDateKHR:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	case SuboptimalKHR:
		return "VK_SUBOPTIMAL_KHR"
	default:
		return "VK_ERROR_UNKNOWN"
	}
}

// DescriptorType mirrors the handful of VkDescriptorType values the
// layout cache branches on.
type DescriptorType uint32

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
)

// ShaderStageFlags mirrors VkShaderStageFlagBits bit values used in
// descriptor-binding visibility masks.
type ShaderStageFlags uint32

const (
	ShaderStageVertex   ShaderStageFlags = 0x00000001
	ShaderStageFragment ShaderStageFlags = 0x00000010
	ShaderStageCompute  ShaderStageFlags = 0x00000020
)

// Format mirrors the subset of VkFormat values the pipeline builder and
// image lifecycle reference by name.
type Format uint32

const (
	FormatUndefined        Format = 0
	FormatR8G8B8A8Unorm    Format = 37
	FormatR32G32B32A32Sfloat Format = 109
	FormatD32Sfloat        Format = 126
)

// ImageLayout mirrors the VkImageLayout values used by the deferred
// barrier commands.
type ImageLayout uint32

const (
	ImageLayoutUndefined            ImageLayout = 0
	ImageLayoutTransferDstOptimal   ImageLayout = 6
	ImageLayoutShaderReadOnlyOptimal ImageLayout = 5
	ImageLayoutColorAttachmentOptimal ImageLayout = 2
	ImageLayoutDepthAttachmentOptimal ImageLayout = 8
)
