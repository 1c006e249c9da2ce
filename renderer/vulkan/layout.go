package vulkan

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
	"github.com/hreyesm/assignments/common"
	"github.com/hreyesm/assignments/renderer"
	"github.com/hreyesm/assignments/vector_math"
)

// Vertex input and push constant layout shared by the pipeline and the shaders in shaders/polyhedra.*.

const (
	POSITION_BINDING, POSITION_LOCATION = 0, 0
	COLOR_BINDING, COLOR_LOCATION       = 1, 1

	POSITION_STRIDE = 3 * 4
	COLOR_STRIDE    = 4 * 4

	PROJECTION_OFFSET   = 0
	MODELVIEW_OFFSET    = vector_math.Mat4Bytes
	PUSH_CONSTANTS_SIZE = 2 * vector_math.Mat4Bytes
)

// LOCATIONS is what CompileAndLink reports: vertex input locations and push constant byte offsets.
var LOCATIONS = renderer.Locations{
	Position:   POSITION_LOCATION,
	Color:      COLOR_LOCATION,
	Projection: PROJECTION_OFFSET,
	ModelView:  MODELVIEW_OFFSET,
}

// clipCorrection maps GL clip space onto Vulkan's: y points down and depth runs from 0 to 1.
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ClipCorrected converts a GL style projection for use with Vulkan.
func ClipCorrected(projection mgl32.Mat4) mgl32.Mat4 {
	return clipCorrection.Mul4(projection)
}

// PushConstants packs both matrices the way the vertex shader's push_constant block declares them.
func PushConstants(projection, modelView mgl32.Mat4) [2 * vector_math.Mat4Size]float32 {
	var pc [2 * vector_math.Mat4Size]float32
	copy(pc[:vector_math.Mat4Size], projection[:])
	copy(pc[vector_math.Mat4Size:], modelView[:])
	return pc
}

func vertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{
		{Binding: POSITION_BINDING, Stride: POSITION_STRIDE, InputRate: vk.VertexInputRateVertex},
		{Binding: COLOR_BINDING, Stride: COLOR_STRIDE, InputRate: vk.VertexInputRateVertex},
	}
}

func vertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Location: POSITION_LOCATION, Binding: POSITION_BINDING, Format: vk.FormatR32g32b32Sfloat, Offset: 0},
		{Location: COLOR_LOCATION, Binding: COLOR_BINDING, Format: vk.FormatR32g32b32a32Sfloat, Offset: 0},
	}
}

// LoadShaders reads the compiled SPIR-V of both stages.
func LoadShaders(vertPath, fragPath string) (renderer.ShaderSource, error) {
	vert, err := readSPIRV(vertPath)
	if err != nil {
		return renderer.ShaderSource{}, err
	}
	frag, err := readSPIRV(fragPath)
	if err != nil {
		return renderer.ShaderSource{}, err
	}
	return renderer.ShaderSource{Vertex: vert, Fragment: frag}, nil
}

func readSPIRV(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}
	if err := common.CheckSPIRV(code); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return code, nil
}
