package common

import (
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

// Allocation helpers for buffers and images on the selected device.

var ErrNoMemoryType = errors.New("no suitable memory type")

type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Size      vk.DeviceSize
	Usage     vk.BufferUsageFlags
	props     vk.MemoryPropertyFlags
}

func CreateBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Size:                  size,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
	}
	buf, err := VkCreateBuffer(dc.D, &bufferInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("create buffer of %d bytes: %w", size, err)
	}

	bufRequirements := ReadBufferMemoryRequirements(dc.D, buf)
	memType, err := FindMemoryType(dc.PdMemoryProps, bufRequirements.MemoryTypeBits, props)
	if err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		return nil, err
	}
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  bufRequirements.Size,
		MemoryTypeIndex: memType,
	}
	deviceMem, err := VkAllocateMemory(dc.D, &allocInfo, nil)
	if err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		return nil, fmt.Errorf("allocate %d bytes of buffer memory: %w", bufRequirements.Size, err)
	}
	if err := vk.Error(vk.BindBufferMemory(dc.D, buf, deviceMem, 0)); err != nil {
		vk.DestroyBuffer(dc.D, buf, nil)
		vk.FreeMemory(dc.D, deviceMem, nil)
		return nil, fmt.Errorf("bind buffer memory: %w", err)
	}
	return &Buffer{
		Handle:    buf,
		DeviceMem: deviceMem,
		Size:      size,
		Usage:     usage,
		props:     props,
	}, nil
}

// CopyToDeviceBuffer maps the memory of a host visible and coherent buffer, copies payload into it and unmaps
// again. The payload has to fill the whole buffer.
func CopyToDeviceBuffer(dc *Device, deviceBuf *Buffer, payload []byte) error {
	hostVisCoh := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	if deviceBuf.props&hostVisCoh != hostVisCoh {
		return errors.New("buffer memory is not host visible and coherent")
	}
	if deviceBuf.Size != vk.DeviceSize(len(payload)) {
		return fmt.Errorf("buffer of %d bytes can not take a payload of %d bytes", deviceBuf.Size, len(payload))
	}
	pData, err := VkMapMemory(dc.D, deviceBuf.DeviceMem, 0, deviceBuf.Size, 0)
	if err != nil {
		return fmt.Errorf("map device memory: %w", err)
	}
	vk.Memcopy(pData, payload)
	vk.UnmapMemory(dc.D, deviceBuf.DeviceMem)
	return nil
}

// UploadDeviceLocal copies payload into a new device local buffer of the given usage through a temporary staging
// buffer, waiting for the transfer to finish.
func UploadDeviceLocal(dc *Device, cmdPool vk.CommandPool, usage vk.BufferUsageFlags, payload []byte) (*Buffer, error) {
	size := vk.DeviceSize(len(payload))
	stgBuf, err := CreateBuffer(
		dc,
		size,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	if err != nil {
		return nil, fmt.Errorf("staging: %w", err)
	}
	defer DestroyBuffer(dc, stgBuf)
	if err := CopyToDeviceBuffer(dc, stgBuf, payload); err != nil {
		return nil, err
	}

	dst, err := CreateBuffer(
		dc,
		size,
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	)
	if err != nil {
		return nil, err
	}
	if err := CopyBuffer(dc, cmdPool, stgBuf, dst); err != nil {
		DestroyBuffer(dc, dst)
		return nil, err
	}
	return dst, nil
}

// CopyBuffer records, submits and waits for a full copy of src into dst on the graphics queue.
func CopyBuffer(dc *Device, cmdPool vk.CommandPool, src *Buffer, dst *Buffer) error {
	cmdBuf, err := VKBeginSingleTimeCommands(dc.D, cmdPool)
	if err != nil {
		return fmt.Errorf("begin copy commands: %w", err)
	}
	copyRegions := []vk.BufferCopy{
		{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      src.Size,
		},
	}
	vk.CmdCopyBuffer(cmdBuf, src.Handle, dst.Handle, 1, copyRegions)
	if err := VKEndSingleTimeCommands(dc.D, cmdPool, dc.GraphicsQ, cmdBuf); err != nil {
		return fmt.Errorf("submit copy commands: %w", err)
	}
	return nil
}

func DestroyBuffer(dc *Device, buffer *Buffer) {
	vk.DestroyBuffer(dc.D, buffer.Handle, nil)
	vk.FreeMemory(dc.D, buffer.DeviceMem, nil)
}

// Image is a device local image with its memory and a full size view.
type Image struct {
	Handle    vk.Image
	DeviceMem vk.DeviceMemory
	View      vk.ImageView
	Format    vk.Format
}

func CreateImage(dc *Device, w uint32, h uint32, format vk.Format, usage vk.ImageUsageFlags, aspect vk.ImageAspectFlags) (*Image, error) {
	imageInfo := &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		PNext:     nil,
		Flags:     0,
		ImageType: vk.ImageType2d,
		Format:    format,
		Extent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
		MipLevels:             1,
		ArrayLayers:           1,
		Samples:               vk.SampleCount1Bit,
		Tiling:                vk.ImageTilingOptimal,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
		InitialLayout:         vk.ImageLayoutUndefined,
	}
	img, err := VkCreateImage(dc.D, imageInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d image: %w", w, h, err)
	}

	memRequirements := ReadImageMemoryRequirements(dc.D, img)
	memType, err := FindMemoryType(dc.PdMemoryProps, memRequirements.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		return nil, err
	}
	allocInfo := &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: memType,
	}
	imgMemory, err := VkAllocateMemory(dc.D, allocInfo, nil)
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		return nil, fmt.Errorf("allocate image memory: %w", err)
	}
	vk.BindImageMemory(dc.D, img, imgMemory, 0)

	view, err := CreateImageView(dc.D, img, format, aspect)
	if err != nil {
		vk.DestroyImage(dc.D, img, nil)
		vk.FreeMemory(dc.D, imgMemory, nil)
		return nil, fmt.Errorf("create image view: %w", err)
	}
	return &Image{Handle: img, DeviceMem: imgMemory, View: view, Format: format}, nil
}

func DestroyImage(dc *Device, img *Image) {
	vk.DestroyImageView(dc.D, img.View, nil)
	vk.DestroyImage(dc.D, img.Handle, nil)
	vk.FreeMemory(dc.D, img.DeviceMem, nil)
}

// FindMemoryType returns the first memory type allowed by typeFilter that has all of propFlags.
func FindMemoryType(memProps vk.PhysicalDeviceMemoryProperties, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, error) {
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		ofType := (typeFilter & (1 << i)) > 0
		hasProperties := memProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: filter %032b, flags %d", ErrNoMemoryType, typeFilter, propFlags)
}

// DEPTH_FORMATS in order of preference.
var DEPTH_FORMATS = []vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint}

func FindDepthFormat(pd vk.PhysicalDevice) (vk.Format, error) {
	features := vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
	for _, format := range DEPTH_FORMATS {
		fProps := ReadFormatProperties(pd, format)
		if fProps.OptimalTilingFeatures&features == features {
			return format, nil
		}
	}
	return vk.FormatUndefined, errors.New("no supported depth format found")
}

func HasStencilComponent(format vk.Format) bool {
	return format == vk.FormatD32SfloatS8Uint || format == vk.FormatD24UnormS8Uint
}

// DepthAspect is the aspect mask to view or transition an image of the given depth format with.
func DepthAspect(format vk.Format) vk.ImageAspectFlags {
	if HasStencilComponent(format) {
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)
	}
	return vk.ImageAspectFlags(vk.ImageAspectDepthBit)
}

// TransitionToDepthAttachment moves a freshly created depth image from the undefined layout into the one used
// by the render pass.
func TransitionToDepthAttachment(dc *Device, cmdPool vk.CommandPool, img *Image) error {
	cmdBuf, err := VKBeginSingleTimeCommands(dc.D, cmdPool)
	if err != nil {
		return err
	}
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		PNext:               nil,
		SrcAccessMask:       0,
		DstAccessMask:       vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit),
		OldLayout:           vk.ImageLayoutUndefined,
		NewLayout:           vk.ImageLayoutDepthStencilAttachmentOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.Handle,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     DepthAspect(img.Format),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
	vk.CmdPipelineBarrier(
		cmdBuf,
		vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
		vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit),
		0,
		0, nil,
		0, nil,
		1, []vk.ImageMemoryBarrier{barrier},
	)
	return VKEndSingleTimeCommands(dc.D, cmdPool, dc.GraphicsQ, cmdBuf)
}
