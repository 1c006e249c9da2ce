package scene

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/config"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
)

// Settings are shared by every object of a scene.
type Settings struct {
	Duration time.Duration
	// Start is the initial last-update stamp; zero means time.Now().
	Start time.Time
}

func (s Settings) start() time.Time {
	if s.Start.IsZero() {
		return time.Now()
	}
	return s.Start
}

func (s Settings) duration() time.Duration {
	if s.Duration <= 0 {
		return DefaultDuration
	}
	return s.Duration
}

func upload(up renderer.Uploader, m *model.Mesh) (renderer.MeshHandle, error) {
	h, err := up.CreateBuffers(m)
	if err != nil {
		return nil, fmt.Errorf("create buffers for %s: %w", m.Name, err)
	}
	log.Printf("Uploaded %s: %d vertices, %d indices", m.Name, h.VertexCount(), h.IndexCount())
	return h, nil
}

// NewPyramid uploads the pyramid and spins it around axis.
func NewPyramid(up renderer.Uploader, s Settings, translation, axis mgl32.Vec3) (*Object, error) {
	h, err := upload(up, model.Pyramid())
	if err != nil {
		return nil, err
	}
	return NewObject("pyramid", h, translation, &Spin{Axes: []mgl32.Vec3{axis}}, s), nil
}

// NewOctahedron uploads the octahedron, spins it around axis and bobs it with bob. A nil bob gets the frame counted
// default.
func NewOctahedron(up renderer.Uploader, s Settings, translation, axis mgl32.Vec3, bob *Bob) (*Object, error) {
	h, err := upload(up, model.Octahedron())
	if err != nil {
		return nil, err
	}
	if bob == nil {
		bob = NewBob(DEFAULT_BOB_BOUND, BobFrames, 0)
	}
	motion := &SpinBob{Spin: Spin{Axes: []mgl32.Vec3{axis}}, Bob: bob}
	return NewObject("octahedron", h, translation, motion, s), nil
}

// NewDodecahedron uploads the dodecahedron and spins it around axis and then axis2 on every update.
func NewDodecahedron(up renderer.Uploader, s Settings, translation, axis, axis2 mgl32.Vec3) (*Object, error) {
	h, err := upload(up, model.Dodecahedron())
	if err != nil {
		return nil, err
	}
	return NewObject("dodecahedron", h, translation, &Spin{Axes: []mgl32.Vec3{axis, axis2}}, s), nil
}

// Build constructs the three configured objects in draw order: pyramid, octahedron, dodecahedron.
func Build(up renderer.Uploader, cfg *config.Config, start time.Time) ([]*Object, error) {
	s := Settings{Duration: cfg.Animation.Duration, Start: start}
	mode, err := ParseBobMode(cfg.Octahedron.Bob.Mode)
	if err != nil {
		return nil, err
	}

	pyramid, err := NewPyramid(up, s, cfg.Pyramid.Translation, cfg.Pyramid.Axis)
	if err != nil {
		return nil, err
	}
	bob := NewBob(cfg.Octahedron.Bob.Bound, mode, cfg.Octahedron.Bob.Period)
	octahedron, err := NewOctahedron(up, s, cfg.Octahedron.Translation, cfg.Octahedron.Axis, bob)
	if err != nil {
		return nil, err
	}
	dodecahedron, err := NewDodecahedron(up, s, cfg.Dodecahedron.Translation, cfg.Dodecahedron.Axis, cfg.Dodecahedron.Axis2)
	if err != nil {
		return nil, err
	}
	return []*Object{pyramid, octahedron, dodecahedron}, nil
}

// Drawables adapts objects for the frame driver.
func Drawables(objs []*Object) []renderer.Drawable {
	out := make([]renderer.Drawable, len(objs))
	for i := range objs {
		out[i] = objs[i]
	}
	return out
}
