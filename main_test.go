package main

import (
	"context"
	"testing"

	"github.com/hreyesm/assignments/config"
	"github.com/hreyesm/assignments/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendHeadless
	require.NoError(t, run(context.Background(), cfg, 5))
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendHeadless
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, run(ctx, cfg, 0))
}

func TestNewCamera(t *testing.T) {
	c := config.Default().Camera
	assert.Equal(t, model.CAM_PERSPECTIVE_PROJECTION, newCamera(c).ProjectionType)
	c.Projection = "orthographic"
	cam := newCamera(c)
	assert.Equal(t, model.CAM_ORTHOGRAPHIC_PROJECTION, cam.ProjectionType)
	assert.Equal(t, float32(45), cam.Fov)
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := config.Load("polyhedra.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
