package model

import (
	"errors"
	"fmt"
	"math"

	vm "github.com/hreyesm/assignments/vector_math"
)

const (
	PositionComponents = 3
	ColorComponents    = 4
	MaxVertices        = math.MaxUint16 + 1
)

var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is the CPU side of a drawable polyhedron. Positions and colors are parallel per-vertex arrays, indices
// address them as a triangle list.
type Mesh struct {
	Name      string
	Positions []float32
	Colors    []float32
	Indices   []uint16
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / PositionComponents
}

func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the buffer layout is consistent: whole vertices and triangles, one color per position and
// every index addressing an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Positions)%PositionComponents != 0 {
		return fmt.Errorf("%w %q: %d position floats is not a multiple of %d", ErrInvalidMesh, m.Name, len(m.Positions), PositionComponents)
	}
	if len(m.Colors)%ColorComponents != 0 {
		return fmt.Errorf("%w %q: %d color floats is not a multiple of %d", ErrInvalidMesh, m.Name, len(m.Colors), ColorComponents)
	}
	vc := m.VertexCount()
	if cc := len(m.Colors) / ColorComponents; cc != vc {
		return fmt.Errorf("%w %q: %d colors for %d vertices", ErrInvalidMesh, m.Name, cc, vc)
	}
	if vc > MaxVertices {
		return fmt.Errorf("%w %q: %d vertices exceed 16 bit indices", ErrInvalidMesh, m.Name, vc)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w %q: %d indices do not form whole triangles", ErrInvalidMesh, m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= vc {
			return fmt.Errorf("%w %q: index[%d] = %d out of range (%d vertices)", ErrInvalidMesh, m.Name, i, idx, vc)
		}
	}
	return nil
}

// Position returns vertex i as a 3 component slice view.
func (m *Mesh) Position(i int) []float32 {
	return m.Positions[i*PositionComponents : (i+1)*PositionComponents]
}

// Color returns the color of vertex i as a 4 component slice view.
func (m *Mesh) Color(i int) []float32 {
	return m.Colors[i*ColorComponents : (i+1)*ColorComponents]
}

// PositionBytes returns the raw bytes of all positions, mainly to move memory from CPU to GPU.
func (m *Mesh) PositionBytes() []byte {
	return vm.Float32Bytes(m.Positions)
}

// ColorBytes returns the raw bytes of all vertex colors.
func (m *Mesh) ColorBytes() []byte {
	return vm.Float32Bytes(m.Colors)
}

// IndexBytes returns the raw bytes of the index list.
func (m *Mesh) IndexBytes() []byte {
	return vm.Uint16Bytes(m.Indices)
}

// RGBA is a face color.
type RGBA [4]float32

// FlatColors expands one color per face to every vertex of that face, faces laid out back to back.
func FlatColors(faces []RGBA, verticesPerFace int) []float32 {
	out := make([]float32, 0, len(faces)*verticesPerFace*ColorComponents)
	for _, c := range faces {
		for j := 0; j < verticesPerFace; j++ {
			out = append(out, c[:]...)
		}
	}
	return out
}

// SequentialIndices returns 0..n-1, used by meshes that do not share vertices.
func SequentialIndices(n int) []uint16 {
	idx := make([]uint16, n)
	for i := range idx {
		idx[i] = uint16(i)
	}
	return idx
}

type vec3 [3]float32

// triangles flattens a list of triangles to a position array.
func triangles(tris ...[3]vec3) []float32 {
	out := make([]float32, 0, len(tris)*9)
	for _, t := range tris {
		for _, v := range t {
			out = append(out, v[:]...)
		}
	}
	return out
}
