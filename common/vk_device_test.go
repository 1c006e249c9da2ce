package common

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferDeviceType(t *testing.T) {
	assert.Equal(t, -1, PreferDeviceType(nil, vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, 0, PreferDeviceType([]vk.PhysicalDeviceType{vk.PhysicalDeviceTypeIntegratedGpu}, vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, 1, PreferDeviceType([]vk.PhysicalDeviceType{
		vk.PhysicalDeviceTypeIntegratedGpu,
		vk.PhysicalDeviceTypeDiscreteGpu,
		vk.PhysicalDeviceTypeDiscreteGpu,
	}, vk.PhysicalDeviceTypeDiscreteGpu))
}

func TestQueueCreateInfos(t *testing.T) {
	g, p := uint32(0), uint32(0)
	q := QueueFamilyIndices{GraphicsFamily: &g, PresentFamily: &p}
	assert.True(t, q.isAllQueuesFound())
	require.Len(t, q.toQueueCreateInfos(), 1)

	p = 2
	infos := q.toQueueCreateInfos()
	require.Len(t, infos, 2)
	assert.Equal(t, uint32(0), infos[0].QueueFamilyIndex)
	assert.Equal(t, uint32(2), infos[1].QueueFamilyIndex)

	assert.False(t, (&QueueFamilyIndices{GraphicsFamily: &g}).isAllQueuesFound())
}

func TestChooseSwapExtent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 800, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, ChooseSwapExtent(caps, 1024, 768))

	caps.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 768}, ChooseSwapExtent(caps, 1024, 768))
	assert.Equal(t, vk.Extent2D{Width: 4096, Height: 1}, ChooseSwapExtent(caps, 10000, 0))
}

func TestChooseImageCount(t *testing.T) {
	assert.Equal(t, uint32(3), ChooseImageCount(2, 0))
	assert.Equal(t, uint32(3), ChooseImageCount(2, 8))
	assert.Equal(t, uint32(2), ChooseImageCount(2, 2))
}

func TestSelectSwapPresentMode(t *testing.T) {
	d := SwapChainDetails{presentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}}
	assert.Equal(t, vk.PresentModeMailbox, d.selectSwapPresentMode(vk.PresentModeMailbox))
	d.presentModes = []vk.PresentMode{vk.PresentModeFifo}
	assert.Equal(t, vk.PresentModeFifo, d.selectSwapPresentMode(vk.PresentModeMailbox))
}

func TestFindMemoryType(t *testing.T) {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props.MemoryTypes[1].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	props.MemoryTypes[2].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

	hostVisCoh := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	idx, err := FindMemoryType(props, 0b111, hostVisCoh)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), idx)

	idx, err = FindMemoryType(props, 0b111, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), idx)

	_, err = FindMemoryType(props, 0b011, hostVisCoh)
	assert.ErrorIs(t, err, ErrNoMemoryType)
}

func TestDepthAspect(t *testing.T) {
	assert.Equal(t, vk.ImageAspectFlags(vk.ImageAspectDepthBit), DepthAspect(vk.FormatD32Sfloat))
	assert.Equal(t, vk.ImageAspectFlags(vk.ImageAspectDepthBit|vk.ImageAspectStencilBit), DepthAspect(vk.FormatD24UnormS8Uint))
}
