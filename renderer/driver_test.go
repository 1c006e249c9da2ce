package renderer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hreyesm/assignments/config"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
	"github.com/hreyesm/assignments/renderer/headless"
	"github.com/hreyesm/assignments/scene"
	vm "github.com/hreyesm/assignments/vector_math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var shaders = renderer.ShaderSource{Vertex: []byte("vert"), Fragment: []byte("frag")}

func newContext(t *testing.T, b *headless.Backend) *renderer.Context {
	t.Helper()
	ctx, err := renderer.Init(b, shaders, model.NewCamera(45, 1, 10000))
	require.NoError(t, err)
	return ctx
}

func ops(calls []headless.Call) []headless.Op {
	out := make([]headless.Op, len(calls))
	for i := range calls {
		out[i] = calls[i].Op
	}
	return out
}

func TestInitComputesProjection(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	expected := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 1, 10000)
	assert.True(t, vm.ApproxEqual(expected, ctx.Projection, 1e-6))
	assert.NotNil(t, ctx.Program)
	assert.Empty(t, b.Alerts)
}

func TestInitWithoutCamera(t *testing.T) {
	b := headless.New(800, 600)
	ctx, err := renderer.Init(b, shaders, nil)
	require.NoError(t, err)
	require.NotNil(t, ctx.Camera)
	expected := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 1, 10000)
	assert.True(t, vm.ApproxEqual(expected, ctx.Projection, 1e-6))
	assert.Empty(t, b.Alerts)
}

func TestInitFailures(t *testing.T) {
	b := headless.New(0, 0)
	ctx, err := renderer.Init(b, shaders, model.NewCamera(45, 1, 10000))
	assert.Nil(t, ctx)
	assert.ErrorIs(t, err, renderer.ErrContext)
	assert.Len(t, b.Alerts, 1)

	b = headless.New(800, 600)
	b.ShaderErr = errors.New("0:3: syntax error")
	ctx, err = renderer.Init(b, shaders, model.NewCamera(45, 1, 10000))
	assert.Nil(t, ctx)
	assert.ErrorIs(t, err, renderer.ErrShader)
	require.Len(t, b.Alerts, 1)
	assert.Contains(t, b.Alerts[0], "syntax error")

	_, err = renderer.Init(nil, shaders, model.NewCamera(45, 1, 10000))
	assert.ErrorIs(t, err, renderer.ErrContext)
}

func TestFrameOrder(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	objs, err := scene.Build(b, config.Default(), t0)
	require.NoError(t, err)
	b.Record = true

	d := renderer.NewFrameDriver(ctx, scene.Drawables(objs)...)
	assert.Equal(t, renderer.Idle, d.State())
	before := make([]mgl32.Mat4, len(objs))
	for i := range objs {
		before[i] = objs[i].Transform()
	}

	require.NoError(t, d.Frame(t0.Add(100*time.Millisecond)))
	assert.Equal(t, renderer.Running, d.State())
	assert.Equal(t, uint64(1), d.Frames())
	assert.Equal(t, []headless.Op{
		headless.OpClear, headless.OpUse, headless.OpDraw, headless.OpDraw, headless.OpDraw, headless.OpPresent,
	}, ops(b.Calls))

	// Draws happen with the transforms from before this frame's update, in registration order
	draws := b.Calls[2:5]
	for i, c := range draws {
		assert.Equal(t, objs[i].Name, c.Mesh)
		assert.Equal(t, before[i], c.ModelView)
		assert.Equal(t, ctx.Projection, c.Projection)
		assert.False(t, vm.ApproxEqual(before[i], objs[i].Transform(), 1e-6), "%s did not move", objs[i].Name)
	}
}

func TestFrameWithZeroDelta(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	objs, err := scene.Build(b, config.Default(), t0)
	require.NoError(t, err)
	d := renderer.NewFrameDriver(ctx, scene.Drawables(objs)...)

	require.NoError(t, d.Frame(t0))
	for _, o := range objs {
		assert.Equal(t, 0.0, o.Angle())
	}
	assert.Equal(t, uint64(3), b.Draws)
}

func TestRunStopsWithHost(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	objs, err := scene.Build(b, config.Default(), t0)
	require.NoError(t, err)

	d := renderer.NewFrameDriver(ctx, scene.Drawables(objs)...)
	now := t0
	d.Now = func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	}
	require.NoError(t, d.Run(context.Background(), &headless.Frames{N: 10}))
	assert.Equal(t, uint64(10), d.Frames())
	assert.Equal(t, uint64(30), b.Draws)
}

func TestRunStopsOnCancel(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	d := renderer.NewFrameDriver(ctx)
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(cctx, &headless.Frames{N: 10}))
	assert.Equal(t, uint64(0), d.Frames())
}

type resizingHost struct {
	headless.Frames
	w, h int
}

func (r *resizingHost) DrawableSize() (int, int) {
	return r.w, r.h
}

func TestRunFollowsResize(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	d := renderer.NewFrameDriver(ctx)
	require.NoError(t, d.Run(context.Background(), &resizingHost{Frames: headless.Frames{N: 1}, w: 1000, h: 500}))
	assert.Equal(t, 1000, ctx.Width)
	expected := mgl32.Perspective(mgl32.DegToRad(45), 2, 1, 10000)
	assert.True(t, vm.ApproxEqual(expected, ctx.Projection, 1e-6))

	// minimized windows report 0x0 and keep the last projection
	require.NoError(t, d.Run(context.Background(), &resizingHost{Frames: headless.Frames{N: 1}, w: 0, h: 0}))
	assert.Equal(t, 1000, ctx.Width)
}

func TestLimit(t *testing.T) {
	b := headless.New(800, 600)
	ctx := newContext(t, b)
	d := renderer.NewFrameDriver(ctx)

	require.NoError(t, d.Run(context.Background(), renderer.Limit(&headless.Frames{N: 100}, 3)))
	assert.Equal(t, uint64(3), d.Frames())

	// the wrapped host still ends the run first
	require.NoError(t, d.Run(context.Background(), renderer.Limit(&headless.Frames{N: 2}, 5)))
	assert.Equal(t, uint64(5), d.Frames())

	host := renderer.Limit(&resizingHost{Frames: headless.Frames{N: 1}, w: 1000, h: 500}, 1)
	require.NoError(t, d.Run(context.Background(), host))
	assert.Equal(t, 1000, ctx.Width)
}
