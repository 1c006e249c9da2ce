package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllOfAinB(t *testing.T) {
	assert.True(t, AllOfAinB(nil, []string{"a"}))
	assert.True(t, AllOfAinB([]string{"VK_KHR_surface"}, []string{"VK_KHR_swapchain", "VK_KHR_surface\x00"}))
	assert.False(t, AllOfAinB([]string{"VK_KHR_surface", "VK_EXT_debug_utils"}, []string{"VK_KHR_surface"}))
}

func TestTerminatedStrs(t *testing.T) {
	in := []string{"VK_LAYER_KHRONOS_validation", "done\x00", ""}
	out := TerminatedStrs(in)
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation\x00", "done\x00", "\x00"}, out)
	assert.Equal(t, "VK_LAYER_KHRONOS_validation", in[0], "input must not be modified")
}

func TestAsUint32Arr(t *testing.T) {
	words := AsUint32Arr([]byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0})
	assert.Equal(t, []uint32{SPIRV_MAGIC, 0x00010000}, words)
	assert.Nil(t, AsUint32Arr([]byte{1, 2}))
}

func TestCheckSPIRV(t *testing.T) {
	assert.NoError(t, CheckSPIRV([]byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}))
	assert.ErrorIs(t, CheckSPIRV([]byte{0x03, 0x02, 0x23}), ErrNotSPIRV)
	assert.ErrorIs(t, CheckSPIRV(nil), ErrNotSPIRV)
	assert.ErrorIs(t, CheckSPIRV([]byte("#version 450")), ErrNotSPIRV)
}

func TestVendorName(t *testing.T) {
	assert.Equal(t, "NVIDIA", VendorName(0x10DE))
	assert.Equal(t, "unknown", VendorName(0xBEEF))
}
