package common

import (
	"encoding/binary"
	"errors"
	"fmt"

	vk "github.com/goki/vulkan"
)

// SPIRV_MAGIC is the first word of every SPIR-V module in host (little endian) order.
const SPIRV_MAGIC uint32 = 0x07230203

var ErrNotSPIRV = errors.New("not a SPIR-V module")

// CheckSPIRV rejects code that cannot be handed to vk.CreateShaderModule.
func CheckSPIRV(code []byte) error {
	if len(code) < 4 || len(code)%4 != 0 {
		return fmt.Errorf("%w: size %d is not a positive multiple of 4", ErrNotSPIRV, len(code))
	}
	if magic := binary.LittleEndian.Uint32(code[:4]); magic != SPIRV_MAGIC {
		return fmt.Errorf("%w: magic 0x%08x", ErrNotSPIRV, magic)
	}
	return nil
}

func CreateShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	if err := CheckSPIRV(code); err != nil {
		return nil, err
	}
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		PNext:    nil,
		Flags:    0,
		CodeSize: uint64(len(code)),
		PCode:    AsUint32Arr(code),
	}
	return VkCreateShaderModule(device, &createInfo, nil)
}
