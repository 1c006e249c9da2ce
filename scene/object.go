package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/renderer"
	vm "github.com/hreyesm/assignments/vector_math"
)

// DefaultDuration is the time one full revolution takes.
const DefaultDuration = 2500 * time.Millisecond

// Object is one polyhedron in the scene: its uploaded buffers, model-view matrix and animation state.
type Object struct {
	Name string

	mesh       renderer.MeshHandle
	transform  mgl32.Mat4
	lastUpdate time.Time
	duration   time.Duration
	motion     Motion
	angle      float64
}

// NewObject places mesh at translation. The translation is baked into an identity transform; later rotations
// post-multiply it so the object spins in place.
func NewObject(name string, mesh renderer.MeshHandle, translation mgl32.Vec3, motion Motion, s Settings) *Object {
	return &Object{
		Name:       name,
		mesh:       mesh,
		transform:  vm.Translate(mgl32.Ident4(), translation),
		lastUpdate: s.start(),
		duration:   s.duration(),
		motion:     motion,
	}
}

func (o *Object) Mesh() renderer.MeshHandle {
	return o.mesh
}

func (o *Object) Transform() mgl32.Mat4 {
	return o.transform
}

func (o *Object) LastUpdate() time.Time {
	return o.lastUpdate
}

func (o *Object) Motion() Motion {
	return o.motion
}

// Angle is the total rotation applied so far, in radians.
func (o *Object) Angle() float64 {
	return o.angle
}

// Update advances the animation to now. The rotation angle is 2*Pi times the elapsed fraction of the duration,
// so objects turn at the same speed regardless of frame rate.
func (o *Object) Update(now time.Time) {
	elapsed := now.Sub(o.lastUpdate)
	o.lastUpdate = now
	fract := float64(elapsed) / float64(o.duration)
	o.angle += 2 * math.Pi * fract
	if o.motion != nil {
		o.transform = o.motion.Advance(o.transform, fract, elapsed)
	}
}
