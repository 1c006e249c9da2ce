package common

import (
	"errors"
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

var ErrNoDevice = errors.New("no suitable physical device (GPU) found")

// Device bundles the selected GPU, the logical device created on it and the queues the renderer submits to.
type Device struct {
	PD            vk.PhysicalDevice
	PdProps       vk.PhysicalDeviceProperties
	PdMemoryProps vk.PhysicalDeviceMemoryProperties
	QFamilies     QueueFamilyIndices

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

// NewDevice picks a physical device able to draw into w's surface and creates the logical device on it.
// Layers named in validationLayers are enabled on the device too, matching the instance.
func NewDevice(w *Window, validationLayers []string) (*Device, error) {
	if w.Inst == nil || w.Surf == nil {
		return nil, errors.New("window has no Vulkan instance or surface")
	}
	dc := &Device{}
	if err := dc.selectPhysicalDevice(*w.Inst, *w.Surf); err != nil {
		return nil, err
	}
	if err := dc.createLogicalDevice(validationLayers); err != nil {
		return nil, err
	}
	return dc, nil
}

// Destroy does not touch the window the device was created for.
func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.D, nil)
}

func (dc *Device) WaitIdle() {
	vk.DeviceWaitIdle(dc.D)
}

func (dc *Device) selectPhysicalDevice(in vk.Instance, su vk.Surface) error {
	var candidates []vk.PhysicalDevice
	var types []vk.PhysicalDeviceType
	for _, pd := range ReadPhysicalDevices(in) {
		if ok, dt := isDeviceSuitable(pd, su); ok {
			candidates = append(candidates, pd)
			types = append(types, dt)
		}
	}
	idx := PreferDeviceType(types, vk.PhysicalDeviceTypeDiscreteGpu)
	if idx < 0 {
		return ErrNoDevice
	}
	dc.PD = candidates[idx]

	qf, err := findQueueFamilies(dc.PD, su)
	if err != nil {
		return fmt.Errorf("read queue families of selected device: %w", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PD)
	dc.PdMemoryProps = ReadDeviceMemoryProperties(dc.PD)
	log.Printf("Selected device %s", ToStringPhysicalDevice(dc.PdProps))
	return nil
}

// PreferDeviceType returns the index of the first entry of kind preferred, otherwise 0 for a non empty list
// and -1 for an empty one.
func PreferDeviceType(types []vk.PhysicalDeviceType, preferred vk.PhysicalDeviceType) int {
	if len(types) == 0 {
		return -1
	}
	for i, t := range types {
		if t == preferred {
			return i
		}
	}
	return 0
}

func isDeviceSuitable(pd vk.PhysicalDevice, su vk.Surface) (bool, vk.PhysicalDeviceType) {
	pdProps := ReadPhysicalDeviceProperties(pd)
	log.Printf("Physical device %s\n%s", ToStringPhysicalDevice(pdProps), TableStringQueueFamilies(ReadQueueFamilies(pd)))

	indices, err := findQueueFamilies(pd, su)
	if err != nil {
		log.Printf("Skipping device, failed to get required queue families: %s", err)
		return false, pdProps.DeviceType
	}
	if !checkDeviceExtensionSupport(pd, DEVICE_EXTENSIONS) {
		log.Printf("Skipping device, missing extensions %v", DEVICE_EXTENSIONS)
		return false, pdProps.DeviceType
	}
	return indices.isAllQueuesFound() && checkSwapChainAdequacy(pd, su), pdProps.DeviceType
}

func (dc *Device) createLogicalDevice(validationLayers []string) error {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}
	if len(validationLayers) > 0 {
		deviceCreateInfo.EnabledLayerCount = uint32(len(validationLayers))
		deviceCreateInfo.PpEnabledLayerNames = TerminatedStrs(validationLayers)
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreateInfo, nil)
	if err != nil {
		return fmt.Errorf("create logical device: %w", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		return fmt.Errorf("get 'graphics' device queue: %w", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		return fmt.Errorf("get 'present' device queue: %w", err)
	}
	return nil
}

func checkDeviceExtensionSupport(pd vk.PhysicalDevice, requiredDeviceExt []string) bool {
	supportedExt := ReadDeviceExtensionProperties(pd)
	log.Printf("Required device extensions: %v, available: %d", requiredDeviceExt, len(supportedExt))
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}
	return AllOfAinB(requiredDeviceExt, supportedExtNames)
}
