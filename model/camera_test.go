package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	vm "github.com/hreyesm/assignments/vector_math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveProjection(t *testing.T) {
	cam := NewCamera(45, 1, 10000)
	require.NoError(t, cam.SetViewport(800, 600))

	assert.InDelta(t, 800.0/600.0, cam.Aspect, 1e-6)
	expected := mgl32.Perspective(math.Pi/4, 800.0/600.0, 1, 10000)
	assert.True(t, vm.ApproxEqual(expected, cam.GetProjection(), 1e-6))

	// f / aspect and f with f = 1/tan(fov/2)
	p := cam.GetProjection()
	f := 1 / math.Tan(math.Pi/8)
	assert.InDelta(t, f, p.At(1, 1), 1e-5)
	assert.InDelta(t, f*600/800, p.At(0, 0), 1e-5)
	assert.Equal(t, float32(-1), p.At(3, 2))
}

func TestInvalidViewport(t *testing.T) {
	cam := NewCamera(45, 1, 10000)
	assert.Error(t, cam.SetViewport(0, 600))
	assert.Error(t, cam.SetViewport(800, -1))
	assert.Equal(t, float32(1), cam.Aspect)
}

func TestOrthographicProjection(t *testing.T) {
	cam := NewCamera(45, 1, 10)
	cam.ProjectionType = CAM_ORTHOGRAPHIC_PROJECTION
	require.NoError(t, cam.SetViewport(200, 100))
	p := cam.GetProjection()
	assert.InDelta(t, 0.5, p.At(0, 0), 1e-6)
	assert.InDelta(t, 1, p.At(1, 1), 1e-6)
}
