package common

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Table formatting used for init logging only.

func TableStringLayerProps(lay []vk.LayerProperties) string {
	strBuilder := strings.Builder{}
	for i := range lay {
		strBuilder.WriteString(fmt.Sprintf(" %-40sspec: %8s   impl: %8s  %s\n",
			vk.ToString(lay[i].LayerName[:]),
			vk.Version(lay[i].SpecVersion).String(),
			vk.Version(lay[i].ImplementationVersion).String(),
			vk.ToString(lay[i].Description[:]),
		))
	}
	return strBuilder.String()
}

// ToStringPhysicalDevice formats a single line naming the device, its vendor, type and API version.
func ToStringPhysicalDevice(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("%s (%s, %s, api %s, driver %s)",
		vk.ToString(pdProps.DeviceName[:]),
		VendorName(pdProps.VendorID),
		DeviceTypeName(pdProps.DeviceType),
		vk.Version(pdProps.ApiVersion).String(),
		driverVersion(pdProps.VendorID, pdProps.DriverVersion),
	)
}

func TableStringQueueFamilies(qFamilies []vk.QueueFamilyProperties) string {
	builder := strings.Builder{}
	for i := range qFamilies {
		prefix := "|"
		if i == len(qFamilies)-1 {
			prefix = "|_"
		}
		builder.WriteString(fmt.Sprintf("%s Qfamily[%d] count: %2d, flags: %v\n",
			prefix, i, qFamilies[i].QueueCount, QueueFlagNames(qFamilies[i].QueueFlags)))
	}
	return builder.String()
}

// VendorName maps the handful of known PCI vendor ids.
func VendorName(v uint32) string {
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

func DeviceTypeName(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated Gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete Gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual Gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func driverVersion(vendor uint32, raw uint32) string {
	// NVIDIA packs its own scheme
	if vendor == 0x10DE {
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func QueueFlagNames(bits vk.QueueFlags) []string {
	var names []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		names = append(names, "GRAPHICS")
	}
	if flags&vk.QueueComputeBit > 0 {
		names = append(names, "COMPUTE")
	}
	if flags&vk.QueueTransferBit > 0 {
		names = append(names, "TRANSFER")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		names = append(names, "SPARSE_BINDING")
	}
	if flags&vk.QueueProtectedBit > 0 {
		names = append(names, "PROTECTED")
	}
	return names
}
