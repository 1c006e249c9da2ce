package scene

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/config"
	"github.com/hreyesm/assignments/renderer/headless"
	vm "github.com/hreyesm/assignments/vector_math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func settings() Settings {
	return Settings{Duration: 2500 * time.Millisecond, Start: t0}
}

func TestTranslationIsBakedIn(t *testing.T) {
	o, err := NewPyramid(headless.New(800, 600), settings(), mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0, 0, -5, 1}, vm.TranslationOf(o.Transform()))
	assert.Equal(t, t0, o.LastUpdate())
}

func TestFullRevolution(t *testing.T) {
	b := headless.New(800, 600)
	objs := []struct {
		name string
		make func() (*Object, error)
	}{
		{"pyramid", func() (*Object, error) {
			return NewPyramid(b, settings(), mgl32.Vec3{-1.2, 0.2, -4}, mgl32.Vec3{0.1, 1, 0.2})
		}},
		{"dodecahedron", func() (*Object, error) {
			return NewDodecahedron(b, settings(), mgl32.Vec3{1.6, 0, -6}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
		}},
	}
	for _, c := range objs {
		t.Run(c.name, func(t *testing.T) {
			o, err := c.make()
			require.NoError(t, err)
			initial := o.Transform()
			o.Update(t0.Add(2500 * time.Millisecond))

			assert.InDelta(t, 2*math.Pi, o.Angle(), 1e-9)
			assert.Less(t, math.Abs(vm.NormalizeAngle(o.Angle())), 1e-3)
			assert.True(t, vm.ApproxEqual(initial, o.Transform(), 1e-4),
				"expected:\n%s\nactual:\n%s", vm.Describe(initial), vm.Describe(o.Transform()))
		})
	}
}

func TestZeroDeltaKeepsTransform(t *testing.T) {
	o, err := NewOctahedron(headless.New(800, 600), settings(), mgl32.Vec3{0, -0.3, -4}, mgl32.Vec3{0, 1, 0}, NewBob(175, BobFrames, 0))
	require.NoError(t, err)
	initial := o.Transform()
	o.Update(t0)
	assert.Equal(t, 0.0, o.Angle())
	assert.True(t, vm.ApproxEqual(initial, o.Transform(), 1e-6))
}

func TestSpinKeepsPosition(t *testing.T) {
	o, err := NewPyramid(headless.New(800, 600), settings(), mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0.1, 1, 0.2})
	require.NoError(t, err)
	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(16 * time.Millisecond)
		o.Update(now)
	}
	assert.True(t, vm.ApproxEqualVec4(vm.TranslationOf(o.Transform()), mgl32.Vec4{0, 0, -5, 1}, 1e-5))
	assert.Equal(t, now, o.LastUpdate())
}

func TestSplitUpdatesMatchSingleUpdate(t *testing.T) {
	b := headless.New(800, 600)
	axis := mgl32.Vec3{0.1, 1, 0.2}
	a, err := NewPyramid(b, settings(), mgl32.Vec3{}, axis)
	require.NoError(t, err)
	c, err := NewPyramid(b, settings(), mgl32.Vec3{}, axis)
	require.NoError(t, err)

	a.Update(t0.Add(300 * time.Millisecond))
	a.Update(t0.Add(700 * time.Millisecond))
	c.Update(t0.Add(700 * time.Millisecond))
	assert.True(t, vm.ApproxEqual(a.Transform(), c.Transform(), 1e-5))
	assert.InDelta(t, c.Angle(), a.Angle(), 1e-9)
}

func TestOctahedronRisesAlongY(t *testing.T) {
	o, err := NewOctahedron(headless.New(800, 600), settings(), mgl32.Vec3{0, -0.3, -4}, mgl32.Vec3{0, 1, 0}, NewBob(175, BobFrames, 0))
	require.NoError(t, err)
	now := t0
	for i := 0; i < 175; i++ {
		now = now.Add(10 * time.Millisecond)
		o.Update(now)
	}
	bob := o.Motion().(*SpinBob).Bob
	assert.Equal(t, 175, bob.Counter())
	assert.False(t, bob.Rising())
	// 175 steps of fract = 10ms / 2500ms
	tr := vm.TranslationOf(o.Transform())
	assert.InDelta(t, -0.3+175*0.004, tr.Y(), 1e-3)
	assert.InDelta(t, 0, tr.X(), 1e-5)
	assert.InDelta(t, -4, tr.Z(), 1e-5)
}

func TestBuild(t *testing.T) {
	b := headless.New(800, 600)
	objs, err := Build(b, config.Default(), t0)
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.Equal(t, "pyramid", objs[0].Name)
	assert.Equal(t, "octahedron", objs[1].Name)
	assert.Equal(t, "dodecahedron", objs[2].Name)
	assert.Equal(t, 3, b.Meshes())
	assert.Equal(t, 108, objs[2].Mesh().IndexCount())
	assert.Len(t, Drawables(objs), 3)
}

func TestBuildPropagatesUploadErrors(t *testing.T) {
	b := headless.New(800, 600)
	b.UploadErr = errors.New("out of memory")
	_, err := Build(b, config.Default(), t0)
	assert.ErrorIs(t, err, b.UploadErr)
	assert.Contains(t, err.Error(), "pyramid")
}

func TestOctahedronDefaultsBob(t *testing.T) {
	o, err := NewOctahedron(headless.New(800, 600), settings(), mgl32.Vec3{0, -0.3, -4}, mgl32.Vec3{0, 1, 0}, nil)
	require.NoError(t, err)
	bob := o.Motion().(*SpinBob).Bob
	require.NotNil(t, bob)
	assert.Equal(t, DEFAULT_BOB_BOUND, bob.Bound)
	assert.Equal(t, BobFrames, bob.Mode)

	o.Update(t0.Add(10 * time.Millisecond))
	assert.Equal(t, 1, bob.Counter())
}
