package opengl

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/hreyesm/assignments/renderer"
)

//go:embed shaders/polyhedra.vert
var vertexSource []byte

//go:embed shaders/polyhedra.frag
var fragmentSource []byte

// Names the shaders use for their inputs.
const (
	POSITION_ATTRIB    = "vertexPos"
	COLOR_ATTRIB       = "vertexColor"
	PROJECTION_UNIFORM = "projectionMatrix"
	MODELVIEW_UNIFORM  = "modelViewMatrix"
)

// Shaders returns the GLSL sources of the program every object is drawn with.
func Shaders() renderer.ShaderSource {
	return renderer.ShaderSource{Vertex: vertexSource, Fragment: fragmentSource}
}

// Program is a linked GL program with its input locations looked up once after linking.
type Program struct {
	id   uint32
	locs renderer.Locations
}

func (p *Program) Locations() renderer.Locations {
	return p.locs
}

func compileShader(kind uint32, stage string, source []byte) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(glString(source))
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader compilation failed: %s", stage, trimLog(log))
	}
	return shader, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Linked programs keep their own copy
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", trimLog(log))
	}
	return program, nil
}

func resolveLocations(program uint32) (renderer.Locations, error) {
	locs := renderer.Locations{
		Position:   gl.GetAttribLocation(program, gl.Str(POSITION_ATTRIB+"\x00")),
		Color:      gl.GetAttribLocation(program, gl.Str(COLOR_ATTRIB+"\x00")),
		Projection: gl.GetUniformLocation(program, gl.Str(PROJECTION_UNIFORM+"\x00")),
		ModelView:  gl.GetUniformLocation(program, gl.Str(MODELVIEW_UNIFORM+"\x00")),
	}
	return locs, checkLocations(locs)
}

func checkLocations(locs renderer.Locations) error {
	missing := func(name string) error {
		return fmt.Errorf("program has no active input %q", name)
	}
	switch {
	case locs.Position < 0:
		return missing(POSITION_ATTRIB)
	case locs.Color < 0:
		return missing(COLOR_ATTRIB)
	case locs.Projection < 0:
		return missing(PROJECTION_UNIFORM)
	case locs.ModelView < 0:
		return missing(MODELVIEW_UNIFORM)
	}
	return nil
}

// glString terminates source for gl.Strs.
func glString(source []byte) string {
	if n := len(source); n > 0 && source[n-1] == 0 {
		return string(source)
	}
	return string(source) + "\x00"
}

// trimLog cuts an info log at its terminator.
func trimLog(log []byte) string {
	for i, b := range log {
		if b == 0 {
			log = log[:i]
			break
		}
	}
	for len(log) > 0 && (log[len(log)-1] == '\n' || log[len(log)-1] == ' ') {
		log = log[:len(log)-1]
	}
	return string(log)
}
