package vector_math

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 sizes as uploaded to the GPU.
const (
	Mat4Size  = 16
	Mat4Bytes = Mat4Size * 4
)

// Rotate post-multiplies m by a rotation of rad around axis. The rotation happens in the local frame of m, so any
// translation already baked into m stays where it is and the object spins in place. A zero length axis is a no-op.
func Rotate(m mgl32.Mat4, rad float32, axis mgl32.Vec3) mgl32.Mat4 {
	if axis.Len() < 1e-6 {
		return m
	}
	return m.Mul4(mgl32.HomogRotate3D(rad, axis.Normalize()))
}

// Translate post-multiplies m by a translation of v in the local frame of m.
func Translate(m mgl32.Mat4, v mgl32.Vec3) mgl32.Mat4 {
	return m.Mul4(mgl32.Translate3D(v.X(), v.Y(), v.Z()))
}

// TranslationOf returns the 4th column of m.
func TranslationOf(m mgl32.Mat4) mgl32.Vec4 {
	return m.Col(3)
}

// ApproxEqual compares two matrices element wise with the absolute tolerance eps, also next to zero.
func ApproxEqual(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// ApproxEqualVec4 is ApproxEqual for vectors, mostly translations read back with TranslationOf.
func ApproxEqualVec4(a, b mgl32.Vec4, eps float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Float32Bytes drops type reference from a float slice to allow passing it as raw memory to the GPU
func Float32Bytes(in []float32) []byte {
	if len(in) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&in[0])), len(in)*4)
}

// Uint16Bytes does the same as Float32Bytes for index data.
func Uint16Bytes(in []uint16) []byte {
	if len(in) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&in[0])), len(in)*2)
}

// Describe prints m row by row, mostly for logging and failed test output.
func Describe(m mgl32.Mat4) string {
	sb := strings.Builder{}
	for r := 0; r < 4; r++ {
		row := m.Row(r)
		sb.WriteString(fmt.Sprintf("| %9.4f %9.4f %9.4f %9.4f |\n", row[0], row[1], row[2], row[3]))
	}
	return sb.String()
}
