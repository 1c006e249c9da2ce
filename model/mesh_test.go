package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorsProduceValidMeshes(t *testing.T) {
	cases := []struct {
		mesh      *Mesh
		vertices  int
		triangles int
	}{
		{Pyramid(), 24, 8},
		{Octahedron(), 24, 8},
		{Dodecahedron(), 108, 36},
	}
	for _, c := range cases {
		t.Run(c.mesh.Name, func(t *testing.T) {
			require.NoError(t, c.mesh.Validate())
			assert.Equal(t, c.vertices, c.mesh.VertexCount())
			assert.Equal(t, c.triangles, c.mesh.TriangleCount())
			assert.Equal(t, c.triangles*3, c.mesh.IndexCount())
			assert.Equal(t, len(c.mesh.Positions)/3, len(c.mesh.Colors)/4)
			for _, idx := range c.mesh.Indices {
				assert.Less(t, int(idx), c.mesh.VertexCount())
			}
		})
	}
}

func TestGeneratorsArePure(t *testing.T) {
	assert.Equal(t, Pyramid(), Pyramid())
	assert.Equal(t, Octahedron(), Octahedron())
	assert.Equal(t, Dodecahedron(), Dodecahedron())
}

func TestPyramidShape(t *testing.T) {
	m := Pyramid()
	base := pentagon(pyramidRadius)
	expected := [][3]float32{
		{0.2, 0, 0},
		{0.0618034, 0, 0.1902113},
		{-0.1618034, 0, 0.1175571},
		{-0.1618034, 0, -0.1175571},
		{0.0618034, 0, -0.1902113},
	}
	for i := range expected {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, expected[i][k], base[i][k], 1e-6, "base vertex %d", i)
		}
	}
	apexCount := 0
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		if p[1] == pyramidHeight {
			apexCount++
			continue
		}
		assert.Equal(t, float32(0), p[1])
		assert.InDelta(t, pyramidRadius, math.Hypot(float64(p[0]), float64(p[2])), 1e-6)
	}
	assert.Equal(t, 5, apexCount)
}

func TestOctahedronShape(t *testing.T) {
	m := Octahedron()
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		if p[1] != 0 {
			assert.Equal(t, float32(0), p[0])
			assert.Equal(t, float32(0), p[2])
			assert.InDelta(t, 0.4, math.Abs(float64(p[1])), 1e-7)
			continue
		}
		assert.InDelta(t, 0.2, math.Abs(float64(p[0])), 1e-7)
		assert.InDelta(t, 0.2, math.Abs(float64(p[2])), 1e-7)
	}
	distinct := map[[4]float32]bool{}
	for f := 0; f < 8; f++ {
		c := m.Color(f * 3)
		distinct[[4]float32{c[0], c[1], c[2], c[3]}] = true
	}
	assert.Len(t, distinct, 8)
}

func TestDodecahedronUsesTwentyVertices(t *testing.T) {
	m := Dodecahedron()
	canonical := DodecahedronVertices()
	unique := map[[3]float32]bool{}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		v := [3]float32{p[0], p[1], p[2]}
		assert.Contains(t, canonical[:], v)
		unique[v] = true
	}
	assert.Len(t, unique, 20)
}

func TestDodecahedronIsRegular(t *testing.T) {
	verts := DodecahedronVertices()
	edge := float32(2 / (Phi * Phi))
	uses := make([]int, len(verts))
	for _, f := range DodecahedronFaces() {
		for i := range f {
			uses[f[i]]++
			a := mgl32.Vec3(verts[f[i]])
			b := mgl32.Vec3(verts[f[(i+1)%5]])
			assert.InDelta(t, edge, a.Sub(b).Len(), 1e-5, "edge %d-%d", f[i], f[(i+1)%5])
		}
	}
	for i, u := range uses {
		assert.Equal(t, 3, u, "vertex %d should be shared by 3 faces", i)
	}
}

func TestDodecahedronFaceColors(t *testing.T) {
	m := Dodecahedron()
	distinct := map[[4]float32]bool{}
	for f := 0; f < 12; f++ {
		first := m.Color(f * 9)
		for v := 1; v < 9; v++ {
			assert.Equal(t, first, m.Color(f*9+v))
		}
		distinct[[4]float32{first[0], first[1], first[2], first[3]}] = true
	}
	assert.Len(t, distinct, 12)
}

func TestValidateRejectsBrokenMeshes(t *testing.T) {
	good := func() *Mesh {
		return &Mesh{
			Name:      "tri",
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Colors:    FlatColors([]RGBA{red}, 3),
			Indices:   []uint16{0, 1, 2},
		}
	}
	require.NoError(t, good().Validate())

	m := good()
	m.Positions = m.Positions[:8]
	assert.ErrorIs(t, m.Validate(), ErrInvalidMesh)

	m = good()
	m.Colors = m.Colors[:8]
	assert.ErrorIs(t, m.Validate(), ErrInvalidMesh)

	m = good()
	m.Indices = []uint16{0, 1, 3}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMesh)

	m = good()
	m.Indices = []uint16{0, 1}
	assert.ErrorIs(t, m.Validate(), ErrInvalidMesh)
}

func TestMeshBytes(t *testing.T) {
	m := Dodecahedron()
	assert.Len(t, m.PositionBytes(), 108*3*4)
	assert.Len(t, m.ColorBytes(), 108*4*4)
	assert.Len(t, m.IndexBytes(), 108*2)
}
