package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	vm "github.com/hreyesm/assignments/vector_math"
)

// Motion advances a model-view matrix by one update. fract is the elapsed time as a fraction of the object's
// revolution period, elapsed the same time as a duration.
type Motion interface {
	Advance(m mgl32.Mat4, fract float64, elapsed time.Duration) mgl32.Mat4
}

// Spin rotates by 2*Pi*fract around each axis in turn.
type Spin struct {
	Axes []mgl32.Vec3
}

func (s *Spin) Advance(m mgl32.Mat4, fract float64, _ time.Duration) mgl32.Mat4 {
	angle := float32(2 * math.Pi * fract)
	for _, a := range s.Axes {
		m = vm.Rotate(m, angle, a)
	}
	return m
}

type BobMode int

const (
	// BobFrames counts one step per update, so the bob period depends on the frame rate.
	BobFrames BobMode = iota
	// BobMillis counts elapsed milliseconds scaled to Period, independent of the frame rate.
	BobMillis
)

func ParseBobMode(s string) (BobMode, error) {
	switch s {
	case "", "frames":
		return BobFrames, nil
	case "millis":
		return BobMillis, nil
	default:
		return 0, fmt.Errorf("unknown bob mode %q", s)
	}
}

func (m BobMode) String() string {
	if m == BobMillis {
		return "millis"
	}
	return "frames"
}

// Bob moves an object up and down along its local y axis. The counter runs between -Bound and +Bound and the
// direction flips exactly when it reaches either bound.
type Bob struct {
	Bound int
	Mode  BobMode
	// Period is the time one sweep from -Bound to +Bound takes in BobMillis mode.
	Period time.Duration

	counter int
	falling bool
	carry   float64
}

// DEFAULT_BOB_BOUND is the number of frames the octahedron needs from the origin to its highest point.
const DEFAULT_BOB_BOUND = 175

// NewBob starts at the origin, rising.
func NewBob(bound int, mode BobMode, period time.Duration) *Bob {
	return &Bob{Bound: bound, Mode: mode, Period: period}
}

func (b *Bob) Counter() int {
	return b.counter
}

func (b *Bob) Rising() bool {
	return !b.falling
}

func (b *Bob) steps(elapsed time.Duration) int {
	if b.Mode != BobMillis || b.Period <= 0 {
		return 1
	}
	b.carry += float64(elapsed) / float64(b.Period) * float64(2*b.Bound)
	n := int(b.carry)
	b.carry -= float64(n)
	return n
}

func (b *Bob) step() float32 {
	if !b.falling {
		b.counter++
		if b.counter >= b.Bound {
			b.counter = b.Bound
			b.falling = true
		}
		return 1
	}
	b.counter--
	if b.counter <= -b.Bound {
		b.counter = -b.Bound
		b.falling = false
	}
	return -1
}

// Advance translates by fract along local y in the current direction and moves the counter. In BobMillis mode
// one update may cover zero or several counter steps; the distance is split across them.
func (b *Bob) Advance(m mgl32.Mat4, fract float64, elapsed time.Duration) mgl32.Mat4 {
	n := b.steps(elapsed)
	if n == 0 {
		dir := float32(1)
		if b.falling {
			dir = -1
		}
		return vm.Translate(m, mgl32.Vec3{0, dir * float32(fract), 0})
	}
	share := float32(fract / float64(n))
	for i := 0; i < n; i++ {
		dir := b.step()
		m = vm.Translate(m, mgl32.Vec3{0, dir * share, 0})
	}
	return m
}

// SpinBob spins first and bobs afterwards, both in the object's local frame.
type SpinBob struct {
	Spin
	Bob *Bob
}

func (s *SpinBob) Advance(m mgl32.Mat4, fract float64, elapsed time.Duration) mgl32.Mat4 {
	m = s.Spin.Advance(m, fract, elapsed)
	if s.Bob == nil {
		return m
	}
	return s.Bob.Advance(m, fract, elapsed)
}
