package vulkan

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	com "github.com/hreyesm/assignments/common"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
)

// Mesh owns three device local buffers: positions, colors and 16 bit indices.
type Mesh struct {
	name      string
	positions *com.Buffer
	colors    *com.Buffer
	indices   *com.Buffer
	vertices  int
	nIndices  int
}

func (m *Mesh) Name() string                  { return m.name }
func (m *Mesh) VertexCount() int              { return m.vertices }
func (m *Mesh) IndexCount() int               { return m.nIndices }
func (m *Mesh) Primitive() renderer.Primitive { return renderer.TriangleList }

func (m *Mesh) destroy(dc *com.Device) {
	for _, buf := range []*com.Buffer{m.positions, m.colors, m.indices} {
		if buf != nil {
			com.DestroyBuffer(dc, buf)
		}
	}
}

// CreateBuffers uploads the mesh through staging buffers and waits for the copies to finish.
func (b *Backend) CreateBuffers(mesh *model.Mesh) (renderer.MeshHandle, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	m := &Mesh{name: mesh.Name, vertices: mesh.VertexCount(), nIndices: mesh.IndexCount()}
	vertexUsage := vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)
	var err error
	if m.positions, err = com.UploadDeviceLocal(b.device, b.commandPool, vertexUsage, mesh.PositionBytes()); err != nil {
		return nil, fmt.Errorf("upload %s positions: %w", mesh.Name, err)
	}
	if m.colors, err = com.UploadDeviceLocal(b.device, b.commandPool, vertexUsage, mesh.ColorBytes()); err != nil {
		m.destroy(b.device)
		return nil, fmt.Errorf("upload %s colors: %w", mesh.Name, err)
	}
	indexUsage := vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)
	if m.indices, err = com.UploadDeviceLocal(b.device, b.commandPool, indexUsage, mesh.IndexBytes()); err != nil {
		m.destroy(b.device)
		return nil, fmt.Errorf("upload %s indices: %w", mesh.Name, err)
	}
	b.meshes = append(b.meshes, m)
	log.Printf("Uploaded mesh %q: %d vertices, %d indices", m.name, m.vertices, m.nIndices)
	return m, nil
}
