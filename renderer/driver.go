package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is a scene object as seen by the frame driver.
type Drawable interface {
	Mesh() MeshHandle
	Transform() mgl32.Mat4
	Update(now time.Time)
}

// Host delivers the per-refresh callback. NextFrame blocks until the next frame should be produced and reports
// false once the surface is gone.
type Host interface {
	NextFrame() bool
}

// Resizer is implemented by hosts whose drawable surface can change size.
type Resizer interface {
	DrawableSize() (width, height int)
}

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// FrameDriver owns the draw/update loop. Objects are drawn and updated in registration order.
type FrameDriver struct {
	ctx     *Context
	objects []Drawable
	state   State
	frames  uint64

	// Now is the frame clock, replaceable in tests.
	Now func() time.Time
}

func NewFrameDriver(ctx *Context, objects ...Drawable) *FrameDriver {
	return &FrameDriver{
		ctx:     ctx,
		objects: objects,
		state:   Idle,
		Now:     time.Now,
	}
}

func (d *FrameDriver) State() State {
	return d.state
}

func (d *FrameDriver) Frames() uint64 {
	return d.frames
}

func (d *FrameDriver) Objects() []Drawable {
	return d.objects
}

// Frame renders every object with its current transform and then advances all of them to now. The first frame
// moves the driver from Idle to Running.
func (d *FrameDriver) Frame(now time.Time) error {
	d.state = Running
	b := d.ctx.Backend
	if err := b.Clear(); err != nil {
		return fmt.Errorf("clear frame %d: %w", d.frames, err)
	}
	b.UseProgram(d.ctx.Program)
	for _, o := range d.objects {
		b.Draw(d.ctx.Program, o.Mesh(), d.ctx.Projection, o.Transform())
	}
	if err := b.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", d.frames, err)
	}
	for _, o := range d.objects {
		o.Update(now)
	}
	d.frames++
	return nil
}

// Run produces frames until the host stops or ctx is cancelled. There is no other stop condition.
func (d *FrameDriver) Run(ctx context.Context, host Host) error {
	t0 := d.Now()
	start := d.frames
	defer func() {
		dt := d.Now().Sub(t0)
		n := d.frames - start
		if dt > 0 {
			log.Printf("Elapsed: %v, frames: %d, rough avg fps: %.1f fps", dt, n, float64(n)/dt.Seconds())
		}
	}()
	for host.NextFrame() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if r, ok := host.(Resizer); ok {
			d.ctx.Resize(r.DrawableSize())
		}
		if err := d.Frame(d.Now()); err != nil {
			return err
		}
	}
	return nil
}

// Limit stops host after n frames. The result is still a Resizer when host is one.
func Limit(host Host, n int) Host {
	return &limited{host: host, left: n}
}

type limited struct {
	host Host
	left int
}

func (l *limited) NextFrame() bool {
	if l.left <= 0 {
		return false
	}
	l.left--
	return l.host.NextFrame()
}

// DrawableSize reports 0x0 for hosts that cannot resize, which Context.Resize ignores.
func (l *limited) DrawableSize() (int, int) {
	if r, ok := l.host.(Resizer); ok {
		return r.DrawableSize()
	}
	return 0, 0
}
