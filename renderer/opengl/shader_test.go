package opengl

import (
	"strings"
	"testing"

	"github.com/hreyesm/assignments/renderer"
	"github.com/stretchr/testify/assert"
)

func TestShadersDeclareInputs(t *testing.T) {
	src := Shaders()
	vert := string(src.Vertex)
	for _, name := range []string{POSITION_ATTRIB, COLOR_ATTRIB, PROJECTION_UNIFORM, MODELVIEW_UNIFORM} {
		assert.Contains(t, vert, name)
	}
	assert.True(t, strings.HasPrefix(vert, "#version 410"))
	assert.Contains(t, string(src.Fragment), "fragColor")
}

func TestGLString(t *testing.T) {
	assert.Equal(t, "void main() {}\x00", glString([]byte("void main() {}")))
	assert.Equal(t, "x\x00", glString([]byte("x\x00")))
	assert.Equal(t, "\x00", glString(nil))
}

func TestTrimLog(t *testing.T) {
	assert.Equal(t, "0:3(1): error: syntax error", trimLog([]byte("0:3(1): error: syntax error\n\x00\x00")))
	assert.Equal(t, "", trimLog(make([]byte, 4)))
}

func TestCheckLocations(t *testing.T) {
	assert.NoError(t, checkLocations(renderer.Locations{Position: 0, Color: 1, Projection: 0, ModelView: 4}))
	err := checkLocations(renderer.Locations{Position: 0, Color: -1, Projection: 0, ModelView: 4})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), COLOR_ATTRIB)
	}
	err = checkLocations(renderer.Locations{Position: 0, Color: 1, Projection: 0, ModelView: -1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), MODELVIEW_UNIFORM)
	}
}
