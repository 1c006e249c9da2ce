package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/model"
)

var (
	// ErrContext means no usable drawing surface was available.
	ErrContext = errors.New("rendering context unavailable")
	// ErrShader means a shader stage failed to compile or the program failed to link.
	ErrShader = errors.New("could not initialise shaders")
)

// Context is everything shared by all draw calls: the backend, the fixed projection and the single program.
type Context struct {
	Backend    Backend
	Camera     *model.Camera
	Projection mgl32.Mat4
	Program    Program
	Width      int
	Height     int
}

// Init acquires the drawing surface of b, derives the projection from its aspect ratio and builds the shared
// program. A nil cam uses the stock 45 degree perspective. Failures are alerted through the backend and no
// Context is returned.
func Init(b Backend, shaders ShaderSource, cam *model.Camera) (*Context, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: no backend", ErrContext)
	}
	if cam == nil {
		cam = model.NewCamera(45, 1, 10000)
	}
	w, h := b.SurfaceSize()
	if err := cam.SetViewport(w, h); err != nil {
		err = fmt.Errorf("%w: %v", ErrContext, err)
		b.Alert("Could not initialise graphics", err.Error())
		return nil, err
	}
	prog, err := b.CompileAndLink(shaders)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrShader, err)
		b.Alert("Could not initialise shaders", err.Error())
		return nil, err
	}
	ctx := &Context{
		Backend:    b,
		Camera:     cam,
		Projection: cam.GetProjection(),
		Program:    prog,
		Width:      w,
		Height:     h,
	}
	log.Printf("Initialized rendering context %dx%d, aspect %.3f, locations %+v", w, h, cam.Aspect, prog.Locations())
	return ctx, nil
}

// Resize recomputes the projection for a new surface size. Zero sizes (minimized windows) are ignored.
func (c *Context) Resize(width, height int) {
	if width == c.Width && height == c.Height {
		return
	}
	if err := c.Camera.SetViewport(width, height); err != nil {
		return
	}
	c.Width, c.Height = width, height
	c.Projection = c.Camera.GetProjection()
}
