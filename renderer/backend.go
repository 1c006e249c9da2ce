package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/model"
)

// Primitive is the topology a MeshHandle is drawn with.
type Primitive int

const (
	TriangleList Primitive = iota
)

// MeshHandle references the GPU buffers (positions, colors, indices) of one uploaded mesh. Handles are owned by
// the Backend that created them and stay valid until it is destroyed.
type MeshHandle interface {
	Name() string
	VertexCount() int
	IndexCount() int
	Primitive() Primitive
}

// Locations are the shader inputs resolved once after linking. For OpenGL these are attribute and uniform
// locations, for Vulkan the vertex input locations and push constant offsets.
type Locations struct {
	Position   int32
	Color      int32
	Projection int32
	ModelView  int32
}

// Program is a compiled and linked shader program shared by every object.
type Program interface {
	Locations() Locations
}

// ShaderSource holds both stages in the form the backend consumes: GLSL text for OpenGL, SPIR-V for Vulkan.
type ShaderSource struct {
	Vertex   []byte
	Fragment []byte
}

// Backend is the GPU resource layer. A frame is Clear, UseProgram, any number of Draw calls and Present.
type Backend interface {
	// CreateBuffers uploads the mesh. Upload failures are returned and never retried.
	CreateBuffers(mesh *model.Mesh) (MeshHandle, error)
	// CompileAndLink builds the shared program. The returned error carries the compile or link log.
	CompileAndLink(src ShaderSource) (Program, error)
	// Clear starts a frame by clearing color and depth with the clear color.
	Clear() error
	UseProgram(p Program)
	Draw(p Program, mesh MeshHandle, projection, modelView mgl32.Mat4)
	// Present finishes the frame and hands it to the display.
	Present() error
	SetClearColor(c model.RGBA)
	SurfaceSize() (width, height int)
	// Alert shows a blocking message to the user.
	Alert(title, message string)
	Destroy()
}

// Uploader is the part of a Backend scene construction needs.
type Uploader interface {
	CreateBuffers(mesh *model.Mesh) (MeshHandle, error)
}
