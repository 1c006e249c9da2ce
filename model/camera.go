package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	vm "github.com/hreyesm/assignments/vector_math"
)

const (
	CAM_PERSPECTIVE_PROJECTION = iota
	CAM_ORTHOGRAPHIC_PROJECTION
)

// Camera holds the fixed projection parameters. The view is the identity: objects carry their own placement
// in their model-view matrix.
type Camera struct {
	ProjectionType int

	Fov    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(fov float32, near float32, far float32) *Camera {
	return &Camera{
		ProjectionType: CAM_PERSPECTIVE_PROJECTION,
		Fov:            fov,
		Aspect:         1,
		Near:           near,
		Far:            far,
	}
}

// SetViewport derives the aspect ratio from the drawable surface size.
func (c *Camera) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	c.Aspect = float32(width) / float32(height)
	return nil
}

// GetProjection returns the GL style (right handed, depth -1..1) projection matrix.
func (c *Camera) GetProjection() mgl32.Mat4 {
	switch c.ProjectionType {
	case CAM_ORTHOGRAPHIC_PROJECTION:
		return mgl32.Ortho(-c.Aspect, c.Aspect, -1, 1, c.Near, c.Far)
	default:
		return mgl32.Perspective(float32(vm.ToRad(float64(c.Fov))), c.Aspect, c.Near, c.Far)
	}
}
