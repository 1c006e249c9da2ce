// Package headless provides a renderer.Backend without a GPU. It validates uploads like a real backend and can
// record every call, which makes it the backend of choice for smoke runs and tests.
package headless

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
)

type Op string

const (
	OpUpload  Op = "upload"
	OpCompile Op = "compile"
	OpClear   Op = "clear"
	OpUse     Op = "use"
	OpDraw    Op = "draw"
	OpPresent Op = "present"
)

type Call struct {
	Op         Op
	Mesh       string
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
}

type Mesh struct {
	name     string
	vertices int
	indices  int
}

func (m *Mesh) Name() string                  { return m.name }
func (m *Mesh) VertexCount() int              { return m.vertices }
func (m *Mesh) IndexCount() int               { return m.indices }
func (m *Mesh) Primitive() renderer.Primitive { return renderer.TriangleList }

type Program struct {
	locations renderer.Locations
}

func (p *Program) Locations() renderer.Locations { return p.locations }

// Backend implements renderer.Backend in memory.
type Backend struct {
	Width, Height int
	Record        bool

	// Fault injection
	UploadErr error
	ShaderErr error

	Calls      []Call
	Alerts     []string
	ClearColor model.RGBA
	Draws      uint64

	meshes []*Mesh
}

func New(width, height int) *Backend {
	return &Backend{Width: width, Height: height}
}

func (b *Backend) record(c Call) {
	if b.Record {
		b.Calls = append(b.Calls, c)
	}
}

func (b *Backend) CreateBuffers(mesh *model.Mesh) (renderer.MeshHandle, error) {
	if b.UploadErr != nil {
		return nil, fmt.Errorf("upload %q: %w", mesh.Name, b.UploadErr)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	m := &Mesh{name: mesh.Name, vertices: mesh.VertexCount(), indices: mesh.IndexCount()}
	b.meshes = append(b.meshes, m)
	b.record(Call{Op: OpUpload, Mesh: mesh.Name})
	return m, nil
}

func (b *Backend) CompileAndLink(src renderer.ShaderSource) (renderer.Program, error) {
	if b.ShaderErr != nil {
		return nil, b.ShaderErr
	}
	if len(src.Vertex) == 0 || len(src.Fragment) == 0 {
		return nil, errors.New("empty shader stage")
	}
	b.record(Call{Op: OpCompile})
	return &Program{locations: renderer.Locations{Position: 0, Color: 1, Projection: 0, ModelView: 1}}, nil
}

func (b *Backend) Clear() error {
	b.record(Call{Op: OpClear})
	return nil
}

func (b *Backend) UseProgram(renderer.Program) {
	b.record(Call{Op: OpUse})
}

func (b *Backend) Draw(_ renderer.Program, mesh renderer.MeshHandle, projection, modelView mgl32.Mat4) {
	b.Draws++
	b.record(Call{Op: OpDraw, Mesh: mesh.Name(), Projection: projection, ModelView: modelView})
}

func (b *Backend) Present() error {
	b.record(Call{Op: OpPresent})
	return nil
}

func (b *Backend) SetClearColor(c model.RGBA) {
	b.ClearColor = c
}

func (b *Backend) SurfaceSize() (int, int) {
	return b.Width, b.Height
}

func (b *Backend) Alert(title, message string) {
	log.Printf("%s: %s", title, message)
	b.Alerts = append(b.Alerts, title+": "+message)
}

// Meshes returns the number of live uploads.
func (b *Backend) Meshes() int {
	return len(b.meshes)
}

func (b *Backend) Destroy() {
	b.meshes = nil
}

// Frames is a renderer.Host producing a fixed number of frames, optionally paced.
type Frames struct {
	N        int
	Interval time.Duration
	done     int
}

func (f *Frames) NextFrame() bool {
	if f.done >= f.N {
		return false
	}
	if f.Interval > 0 && f.done > 0 {
		time.Sleep(f.Interval)
	}
	f.done++
	return true
}
