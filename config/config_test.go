package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 2500*time.Millisecond, cfg.Animation.Duration)
	assert.Equal(t, 175, cfg.Octahedron.Bob.Bound)
	assert.Equal(t, "frames", cfg.Octahedron.Bob.Mode)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, cfg.ClearColor)
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
backend: headless
animation:
  duration: 5s
octahedron:
  translation: [0, 1, -3]
  bob:
    mode: millis
dodecahedron:
  axis2: [0, 0, 1]
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, BackendHeadless, cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.Animation.Duration)
	assert.Equal(t, mgl32.Vec3{0, 1, -3}, cfg.Octahedron.Translation)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.Octahedron.Axis)
	assert.Equal(t, "millis", cfg.Octahedron.Bob.Mode)
	assert.Equal(t, 175, cfg.Octahedron.Bob.Bound)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cfg.Dodecahedron.Axis)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cfg.Dodecahedron.Axis2)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":    "backend: directx",
		"size":       "window: {width: 0}",
		"near far":   "camera: {near: 10, far: 5}",
		"duration":   "animation: {duration: 0s}",
		"zero axis":  "pyramid: {axis: [0, 0, 0]}",
		"bob mode":   "octahedron: {bob: {mode: sometimes}}",
		"bob bound":  "octahedron: {bob: {bound: 0}}",
		"short vec":  "pyramid: {axis: [1, 0]}",
		"projection": "camera: {projection: fisheye}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse([]byte(doc), Default())
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: {title: Test, width: 1024, height: 768}\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVulkanNeedsShaders(t *testing.T) {
	cfg := Default()
	cfg.Backend = BackendVulkan
	cfg.Vulkan.VertexShader = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}
