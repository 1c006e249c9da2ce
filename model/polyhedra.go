package model

import "math"

// Phi is the golden ratio, used for the pentagonal solids.
var Phi = (1 + math.Sqrt(5)) / 2

var (
	red     = RGBA{1, 0, 0, 1}
	green   = RGBA{0, 1, 0, 1}
	blue    = RGBA{0, 0, 1, 1}
	yellow  = RGBA{1, 1, 0, 1}
	magenta = RGBA{1, 0, 1, 1}
	cyan    = RGBA{0, 1, 1, 1}
	black   = RGBA{0, 0, 0, 1}
	white   = RGBA{1, 1, 1, 1}
)

const (
	pyramidRadius = 0.2
	pyramidHeight = 0.5
)

// pentagon returns the 5 corners of a regular pentagon of radius r in the y=0 plane, starting on +x. The
// coordinates come from the golden ratio: cos 72° = 1/(2 Phi), cos 144° = -Phi/2.
func pentagon(r float64) [5]vec3 {
	c1 := 1 / (2 * Phi)
	c2 := -Phi / 2
	s1 := math.Sqrt(1 - c1*c1)
	s2 := math.Sqrt(1 - c2*c2)
	return [5]vec3{
		{float32(r), 0, 0},
		{float32(r * c1), 0, float32(r * s1)},
		{float32(r * c2), 0, float32(r * s2)},
		{float32(r * c2), 0, float32(-r * s2)},
		{float32(r * c1), 0, float32(-r * s1)},
	}
}

// Pyramid builds a 5-sided pyramid: a pentagonal base fanned into 3 triangles plus 5 side triangles meeting
// in the apex. No vertex is shared so every triangle carries its own flat color. The base is one face of the
// solid and keeps a single color across its 3 triangles.
func Pyramid() *Mesh {
	p := pentagon(pyramidRadius)
	apex := vec3{0, pyramidHeight, 0}
	positions := triangles(
		[3]vec3{p[0], p[1], p[2]},
		[3]vec3{p[0], p[2], p[4]},
		[3]vec3{p[2], p[3], p[4]},
		[3]vec3{p[0], p[1], apex},
		[3]vec3{p[1], p[2], apex},
		[3]vec3{p[2], p[3], apex},
		[3]vec3{p[3], p[4], apex},
		[3]vec3{p[4], p[0], apex},
	)
	faces := []RGBA{red, red, red, green, blue, yellow, magenta, cyan}
	return &Mesh{
		Name:      "pyramid",
		Positions: positions,
		Colors:    FlatColors(faces, 3),
		Indices:   SequentialIndices(len(positions) / PositionComponents),
	}
}

const (
	octaHalfSide = 0.2
	octaApex     = 0.4
)

// Octahedron builds two square pyramids joined at a square of side 0.4 in the y=0 plane.
func Octahedron() *Mesh {
	s := float32(octaHalfSide)
	fr, fl := vec3{s, 0, s}, vec3{-s, 0, s}
	br, bl := vec3{s, 0, -s}, vec3{-s, 0, -s}
	top, bottom := vec3{0, octaApex, 0}, vec3{0, -octaApex, 0}
	positions := triangles(
		[3]vec3{fr, fl, top},
		[3]vec3{br, bl, top},
		[3]vec3{fr, br, top},
		[3]vec3{fl, bl, top},
		[3]vec3{fr, fl, bottom},
		[3]vec3{br, bl, bottom},
		[3]vec3{fr, br, bottom},
		[3]vec3{fl, bl, bottom},
	)
	faces := []RGBA{black, blue, green, cyan, red, magenta, yellow, white}
	return &Mesh{
		Name:      "octahedron",
		Positions: positions,
		Colors:    FlatColors(faces, 3),
		Indices:   SequentialIndices(len(positions) / PositionComponents),
	}
}

// DodecahedronVertices returns the 20 corners of a regular dodecahedron with b = 1/Phi and c = 2-Phi:
// the cube (±b, ±b, ±b) followed by (0, ±1, ±c), (±c, 0, ±1) and (±1, ±c, 0).
func DodecahedronVertices() [20][3]float32 {
	b := float32(1 / Phi)
	c := float32(2 - Phi)
	return [20][3]float32{
		{b, b, b}, {b, b, -b}, {b, -b, b}, {b, -b, -b},
		{-b, b, b}, {-b, b, -b}, {-b, -b, b}, {-b, -b, -b},
		{0, 1, c}, {0, 1, -c}, {0, -1, c}, {0, -1, -c},
		{c, 0, 1}, {-c, 0, 1}, {c, 0, -1}, {-c, 0, -1},
		{1, c, 0}, {1, -c, 0}, {-1, c, 0}, {-1, -c, 0},
	}
}

// DodecahedronFaces lists the 12 pentagons as indices into DodecahedronVertices, each in boundary order.
func DodecahedronFaces() [12][5]uint16 {
	return [12][5]uint16{
		{12, 13, 4, 8, 0},
		{13, 12, 2, 10, 6},
		{14, 15, 7, 11, 3},
		{15, 14, 1, 9, 5},
		{9, 8, 0, 16, 1},
		{8, 9, 5, 18, 4},
		{11, 10, 6, 19, 7},
		{10, 11, 3, 17, 2},
		{16, 17, 2, 12, 0},
		{17, 16, 1, 14, 3},
		{18, 19, 7, 15, 5},
		{19, 18, 4, 13, 6},
	}
}

// pentagonFan splits a pentagon p0..p4 into (p0,p1,p2), (p0,p2,p4), (p2,p3,p4).
var pentagonFan = [3][3]int{{0, 1, 2}, {0, 2, 4}, {2, 3, 4}}

var dodecahedronColors = []RGBA{
	{0, 0, 0, 1},
	{0, 0, 1, 1},
	{0, 1, 0, 1},
	{0, 1, 1, 1},
	{1, 0, 0, 1},
	{1, 0, 1, 1},
	{1, 1, 0, 1},
	{1, 1, 1, 1},
	{0, 0, 0.5, 1},
	{0, 0.5, 0.5, 1},
	{0.5, 0.5, 0.5, 1},
	{0.5, 0, 0.5, 1},
}

// Dodecahedron builds the 12 pentagonal faces over the 20 canonical vertices. Each face is expanded to its own
// 9 vertices (3 fan triangles) so a face keeps one flat color, giving 108 vertices addressed by 108 indices.
func Dodecahedron() *Mesh {
	verts := DodecahedronVertices()
	faces := DodecahedronFaces()
	positions := make([]float32, 0, len(faces)*9*PositionComponents)
	for _, f := range faces {
		for _, tri := range pentagonFan {
			for _, corner := range tri {
				v := verts[f[corner]]
				positions = append(positions, v[:]...)
			}
		}
	}
	return &Mesh{
		Name:      "dodecahedron",
		Positions: positions,
		Colors:    FlatColors(dodecahedronColors, 9),
		Indices:   SequentialIndices(len(positions) / PositionComponents),
	}
}
