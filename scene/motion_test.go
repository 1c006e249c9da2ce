package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	vm "github.com/hreyesm/assignments/vector_math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBobStaysWithinBounds(t *testing.T) {
	b := NewBob(175, BobFrames, 0)
	m := mgl32.Ident4()
	prev := b.Counter()
	flipsUp, flipsDown := 0, 0
	for i := 0; i < 2000; i++ {
		wasRising := b.Rising()
		m = b.Advance(m, 0.001, time.Millisecond)
		c := b.Counter()
		require.GreaterOrEqual(t, c, -175)
		require.LessOrEqual(t, c, 175)
		if wasRising {
			assert.Equal(t, prev+1, c)
		} else {
			assert.Equal(t, prev-1, c)
		}
		if wasRising != b.Rising() {
			if b.Rising() {
				flipsUp++
				assert.Equal(t, -175, c)
			} else {
				flipsDown++
				assert.Equal(t, 175, c)
			}
		}
		prev = c
	}
	// 0 -> 175 takes 175 frames, every later sweep 350
	assert.Equal(t, 3, flipsDown)
	assert.Equal(t, 3, flipsUp)
}

func TestBobReturnsToStart(t *testing.T) {
	b := NewBob(5, BobFrames, 0)
	m := mgl32.Ident4()
	for i := 0; i < 20; i++ {
		m = b.Advance(m, 0.5, 0)
	}
	// up 5, down 10, up 5
	assert.Equal(t, 0, b.Counter())
	assert.True(t, vm.ApproxEqualVec4(vm.TranslationOf(m), mgl32.Vec4{0, 0, 0, 1}, 1e-6))
}

func TestBobMillis(t *testing.T) {
	// 2 * bound steps per period, so one step per millisecond
	b := NewBob(4, BobMillis, 8*time.Millisecond)
	m := mgl32.Ident4()
	var counters []int
	for i := 0; i < 8; i++ {
		m = b.Advance(m, 0.1, 2*time.Millisecond)
		counters = append(counters, b.Counter())
	}
	assert.Equal(t, []int{2, 4, 2, 0, -2, -4, -2, 0}, counters)
	assert.True(t, vm.ApproxEqualVec4(vm.TranslationOf(m), mgl32.Vec4{0, 0, 0, 1}, 1e-6))
}

func TestBobMillisSubStep(t *testing.T) {
	b := NewBob(4, BobMillis, 8*time.Millisecond)
	m := b.Advance(mgl32.Ident4(), 0.1, 500*time.Microsecond)
	assert.Equal(t, 0, b.Counter())
	assert.InDelta(t, 0.1, vm.TranslationOf(m).Y(), 1e-6)
	b.Advance(m, 0.1, 500*time.Microsecond)
	assert.Equal(t, 1, b.Counter())
}

func TestParseBobMode(t *testing.T) {
	m, err := ParseBobMode("millis")
	require.NoError(t, err)
	assert.Equal(t, BobMillis, m)
	m, err = ParseBobMode("")
	require.NoError(t, err)
	assert.Equal(t, BobFrames, m)
	assert.Equal(t, "frames", m.String())
	_, err = ParseBobMode("weekly")
	assert.Error(t, err)
}

func TestSpinOrder(t *testing.T) {
	x, y := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	s := &Spin{Axes: []mgl32.Vec3{x, y}}
	got := s.Advance(mgl32.Ident4(), 0.25, 0)
	want := vm.Rotate(vm.Rotate(mgl32.Ident4(), mgl32.DegToRad(90), x), mgl32.DegToRad(90), y)
	assert.True(t, vm.ApproxEqual(want, got, 1e-5))
}

func TestSpinBobWithoutBobOnlySpins(t *testing.T) {
	axis := mgl32.Vec3{0, 1, 0}
	s := &SpinBob{Spin: Spin{Axes: []mgl32.Vec3{axis}}}
	start := vm.Translate(mgl32.Ident4(), mgl32.Vec3{0, -0.3, -4})
	got := s.Advance(start, 0.25, 625*time.Millisecond)
	want := (&Spin{Axes: []mgl32.Vec3{axis}}).Advance(start, 0.25, 625*time.Millisecond)
	assert.Equal(t, want, got)
}
