package common

import (
	"errors"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

// Utility functions wrapping the raw go bindings to provide a more go-lang style interface. This should not
// hide or alter behavior and only allow for more tidy core code by tweaking signatures.

func VkCreateInstance(pCreateInfo *vk.InstanceCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Instance, error) {
	var in vk.Instance
	if err := vk.Error(vk.CreateInstance(pCreateInfo, pAllocator, &in)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(in); err != nil {
		return nil, err
	}
	return in, nil
}

func SdlCreateVkSurface(win *sdl.Window, instance vk.Instance) (vk.Surface, error) {
	surfPtr, err := win.VulkanCreateSurface(instance)
	if err != nil {
		return nil, err
	}
	return vk.SurfaceFromPointer(uintptr(surfPtr)), nil
}

func VkCreateDevice(pd vk.PhysicalDevice, pCreateInfo *vk.DeviceCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Device, error) {
	var d vk.Device
	if err := vk.Error(vk.CreateDevice(pd, pCreateInfo, pAllocator, &d)); err != nil {
		return nil, err
	}
	return d, nil
}

func VkGetDeviceQueue(device vk.Device, queueFamilyIndex *uint32, queueIndex uint32) (vk.Queue, error) {
	if queueFamilyIndex == nil {
		return nil, errors.New("QueueFamily index was nil")
	}
	var q vk.Queue
	vk.GetDeviceQueue(device, *queueFamilyIndex, queueIndex, &q)
	return q, nil
}

func VkCreateSwapChain(device vk.Device, pCreateInfo *vk.SwapchainCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Swapchain, error) {
	var sc vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(device, pCreateInfo, pAllocator, &sc)); err != nil {
		return nil, err
	}
	return sc, nil
}

func VkCreateImageView(device vk.Device, pCreateInfo *vk.ImageViewCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.ImageView, error) {
	var iv vk.ImageView
	if err := vk.Error(vk.CreateImageView(device, pCreateInfo, pAllocator, &iv)); err != nil {
		return nil, err
	}
	return iv, nil
}

func VkCreateRenderPass(device vk.Device, pCreateInfo *vk.RenderPassCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.RenderPass, error) {
	var rp vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(device, pCreateInfo, pAllocator, &rp)); err != nil {
		return nil, err
	}
	return rp, nil
}

func VkCreateFrameBuffer(device vk.Device, pCreateInfo *vk.FramebufferCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Framebuffer, error) {
	var fb vk.Framebuffer
	if err := vk.Error(vk.CreateFramebuffer(device, pCreateInfo, pAllocator, &fb)); err != nil {
		return nil, err
	}
	return fb, nil
}

func VkCreateShaderModule(device vk.Device, pCreateInfo *vk.ShaderModuleCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.ShaderModule, error) {
	var sm vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, pCreateInfo, pAllocator, &sm)); err != nil {
		return nil, err
	}
	return sm, nil
}

func VkCreatePipelineLayout(device vk.Device, pCreateInfo *vk.PipelineLayoutCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.PipelineLayout, error) {
	var pl vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(device, pCreateInfo, pAllocator, &pl)); err != nil {
		return nil, err
	}
	return pl, nil
}

func VkCreateGraphicsPipelines(device vk.Device, pipelineCache vk.PipelineCache, pCreateInfos []vk.GraphicsPipelineCreateInfo, pAllocator *vk.AllocationCallbacks) ([]vk.Pipeline, error) {
	gp := make([]vk.Pipeline, len(pCreateInfos))
	if err := vk.Error(vk.CreateGraphicsPipelines(device, pipelineCache, uint32(len(pCreateInfos)), pCreateInfos, pAllocator, gp)); err != nil {
		return nil, err
	}
	return gp, nil
}

func VkCreateCommandPool(device vk.Device, pCreateInfo *vk.CommandPoolCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.CommandPool, error) {
	var cp vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(device, pCreateInfo, pAllocator, &cp)); err != nil {
		return nil, err
	}
	return cp, nil
}

// VkAllocateCommandBuffers assumes the number of desired buffers is given in pAllocateInfo.
func VkAllocateCommandBuffers(device vk.Device, pAllocateInfo *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, pAllocateInfo.CommandBufferCount)
	if err := vk.Error(vk.AllocateCommandBuffers(device, pAllocateInfo, buffers)); err != nil {
		return nil, err
	}
	return buffers, nil
}

func VkCreateSemaphore(device vk.Device, pAllocator *vk.AllocationCallbacks) (vk.Semaphore, error) {
	info := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: nil,
		Flags: 0,
	}
	var s vk.Semaphore
	if err := vk.Error(vk.CreateSemaphore(device, &info, pAllocator, &s)); err != nil {
		return nil, err
	}
	return s, nil
}

func VkCreateFence(device vk.Device, flags vk.FenceCreateFlags, pAllocator *vk.AllocationCallbacks) (vk.Fence, error) {
	info := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		PNext: nil,
		Flags: flags,
	}
	var f vk.Fence
	if err := vk.Error(vk.CreateFence(device, &info, pAllocator, &f)); err != nil {
		return nil, err
	}
	return f, nil
}

func VkCreateBuffer(device vk.Device, pCreateInfo *vk.BufferCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Buffer, error) {
	var buf vk.Buffer
	if err := vk.Error(vk.CreateBuffer(device, pCreateInfo, pAllocator, &buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func VkAllocateMemory(device vk.Device, pAllocateInfo *vk.MemoryAllocateInfo, pAllocator *vk.AllocationCallbacks) (vk.DeviceMemory, error) {
	var dm vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(device, pAllocateInfo, pAllocator, &dm)); err != nil {
		return nil, err
	}
	return dm, nil
}

func VkMapMemory(device vk.Device, memory vk.DeviceMemory, offset vk.DeviceSize, size vk.DeviceSize, flags vk.MemoryMapFlags) (unsafe.Pointer, error) {
	var pData unsafe.Pointer
	if err := vk.Error(vk.MapMemory(device, memory, offset, size, flags, &pData)); err != nil {
		return nil, err
	}
	return pData, nil
}

func VkCreateImage(device vk.Device, pCreateInfo *vk.ImageCreateInfo, pAllocator *vk.AllocationCallbacks) (vk.Image, error) {
	var img vk.Image
	if err := vk.Error(vk.CreateImage(device, pCreateInfo, pAllocator, &img)); err != nil {
		return nil, err
	}
	return img, nil
}
