// Package opengl draws through an OpenGL 4.1 core context created on an SDL window.
package opengl

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/common"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// GL contexts are bound to the thread that made them current
	runtime.LockOSThread()
}

// Mesh owns the vertex array and the position, color and index buffers of one uploaded mesh.
type Mesh struct {
	name     string
	vao      uint32
	buffers  [3]uint32
	vertices int
	indices  int
}

func (m *Mesh) Name() string                  { return m.name }
func (m *Mesh) VertexCount() int              { return m.vertices }
func (m *Mesh) IndexCount() int               { return m.indices }
func (m *Mesh) Primitive() renderer.Primitive { return renderer.TriangleList }

type Backend struct {
	win   *common.Window
	glctx sdl.GLContext

	clearColor model.RGBA
	meshes     []*Mesh
	programs   []*Program
}

// New creates the GL context on win and loads the GL function pointers. The window stays owned by the caller.
func New(win *common.Window, vsync bool) (*Backend, error) {
	if win.API != common.API_OPENGL {
		return nil, fmt.Errorf("%w: window was created for %s", renderer.ErrContext, win.API)
	}
	glctx, err := win.Win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", renderer.ErrContext, err)
	}
	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(glctx)
		return nil, fmt.Errorf("%w: load GL functions: %v", renderer.ErrContext, err)
	}
	interval := 0
	if vsync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Printf("Failed to set swap interval %d: %v", interval, err)
	}
	log.Printf("Created OpenGL context, version %s, renderer %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	return &Backend{win: win, glctx: glctx}, nil
}

func (b *Backend) CreateBuffers(mesh *model.Mesh) (renderer.MeshHandle, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	m := &Mesh{
		name:     mesh.Name,
		vertices: mesh.VertexCount(),
		indices:  mesh.IndexCount(),
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(int32(len(m.buffers)), &m.buffers[0])

	positions := mesh.PositionBytes()
	gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(positions), gl.Ptr(positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)

	colors := mesh.ColorBytes()
	gl.BindBuffer(gl.ARRAY_BUFFER, m.buffers[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(colors), gl.Ptr(colors), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, 0, 0)

	// The element binding is part of the vertex array state
	indices := mesh.IndexBytes()
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.buffers[2])
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.deleteMesh(m)
		return nil, fmt.Errorf("upload %s: GL error 0x%x", mesh.Name, code)
	}
	b.meshes = append(b.meshes, m)
	log.Printf("Uploaded mesh %q: %d vertices, %d indices", m.name, m.vertices, m.indices)
	return m, nil
}

func (b *Backend) CompileAndLink(src renderer.ShaderSource) (renderer.Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, "vertex", src.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, "fragment", src.Fragment)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}
	id, err := linkProgram(vs, fs)
	if err != nil {
		return nil, err
	}
	locs, err := resolveLocations(id)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	// Buffers are bound to fixed attribute slots
	if locs.Position != 0 || locs.Color != 1 {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("attributes bound at %d/%d, expected 0/1", locs.Position, locs.Color)
	}
	p := &Program{id: id, locs: locs}
	b.programs = append(b.programs, p)
	return p, nil
}

func (b *Backend) Clear() error {
	w, h := b.win.DrawableSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	c := b.clearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *Backend) UseProgram(p renderer.Program) {
	if prog, ok := p.(*Program); ok {
		gl.UseProgram(prog.id)
	}
}

func (b *Backend) Draw(p renderer.Program, mesh renderer.MeshHandle, projection, modelView mgl32.Mat4) {
	prog, ok := p.(*Program)
	m, mok := mesh.(*Mesh)
	if !ok || !mok {
		log.Printf("Skipping draw of %v: not created by the OpenGL backend", mesh)
		return
	}
	gl.UniformMatrix4fv(prog.locs.Projection, 1, false, &projection[0])
	gl.UniformMatrix4fv(prog.locs.ModelView, 1, false, &modelView[0])
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, int32(m.indices), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (b *Backend) Present() error {
	b.win.Win.GLSwap()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x", code)
	}
	return nil
}

func (b *Backend) SetClearColor(c model.RGBA) {
	b.clearColor = c
}

func (b *Backend) SurfaceSize() (int, int) {
	return b.win.DrawableSize()
}

func (b *Backend) Alert(title, message string) {
	b.win.Alert(title, message)
}

// Destroy releases every mesh and program and the GL context.
func (b *Backend) Destroy() {
	for _, m := range b.meshes {
		b.deleteMesh(m)
	}
	b.meshes = nil
	for _, p := range b.programs {
		gl.DeleteProgram(p.id)
	}
	b.programs = nil
	sdl.GLDeleteContext(b.glctx)
}

func (b *Backend) deleteMesh(m *Mesh) {
	gl.DeleteBuffers(int32(len(m.buffers)), &m.buffers[0])
	gl.DeleteVertexArrays(1, &m.vao)
}

var _ renderer.Backend = (*Backend)(nil)
