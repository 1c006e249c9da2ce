// Package config loads the demo configuration from YAML. Every field is optional; missing fields keep the
// values of Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

const (
	BackendOpenGL   = "opengl"
	BackendVulkan   = "vulkan"
	BackendHeadless = "headless"
)

type Config struct {
	Window       Window       `yaml:"window"`
	Backend      string       `yaml:"backend"`
	ClearColor   [4]float32   `yaml:"clear_color"`
	Camera       Camera       `yaml:"camera"`
	Animation    Animation    `yaml:"animation"`
	Pyramid      Shape        `yaml:"pyramid"`
	Octahedron   Octahedron   `yaml:"octahedron"`
	Dodecahedron Dodecahedron `yaml:"dodecahedron"`
	Vulkan       Vulkan       `yaml:"vulkan"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type Camera struct {
	Projection string  `yaml:"projection"` // perspective | orthographic
	Fov        float32 `yaml:"fov"`        // degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

type Animation struct {
	// Duration of one full revolution.
	Duration time.Duration `yaml:"duration"`
}

type Shape struct {
	Translation mgl32.Vec3 `yaml:"translation"`
	Axis        mgl32.Vec3 `yaml:"axis"`
}

type Octahedron struct {
	Shape `yaml:",inline"`
	Bob   Bob `yaml:"bob"`
}

type Bob struct {
	Bound  int           `yaml:"bound"`
	Mode   string        `yaml:"mode"` // frames | millis
	Period time.Duration `yaml:"period"`
}

type Dodecahedron struct {
	Shape `yaml:",inline"`
	Axis2 mgl32.Vec3 `yaml:"axis2"`
}

type Vulkan struct {
	Validation       bool     `yaml:"validation"`
	ValidationLayers []string `yaml:"validation_layers"`
	VertexShader     string   `yaml:"vertex_shader"`
	FragmentShader   string   `yaml:"fragment_shader"`
	FramesInFlight   int      `yaml:"frames_in_flight"`
}

// Default returns the stock three-object scene.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "Polyhedra",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Backend:    BackendOpenGL,
		ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		Camera: Camera{
			Projection: "perspective",
			Fov:        45,
			Near:       1,
			Far:        10000,
		},
		Animation: Animation{Duration: 2500 * time.Millisecond},
		Pyramid: Shape{
			Translation: mgl32.Vec3{-1.2, 0.2, -4},
			Axis:        mgl32.Vec3{0.1, 1, 0.2},
		},
		Octahedron: Octahedron{
			Shape: Shape{
				Translation: mgl32.Vec3{0, -0.3, -4},
				Axis:        mgl32.Vec3{0, 1, 0},
			},
			Bob: Bob{
				Bound:  175,
				Mode:   "frames",
				Period: 5833 * time.Millisecond,
			},
		},
		Dodecahedron: Dodecahedron{
			Shape: Shape{
				Translation: mgl32.Vec3{1.6, 0, -6},
				Axis:        mgl32.Vec3{1, 0, 0},
			},
			Axis2: mgl32.Vec3{0, 1, 0},
		},
		Vulkan: Vulkan{
			Validation:       false,
			ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
			VertexShader:     "shaders/polyhedra.vert.spv",
			FragmentShader:   "shaders/polyhedra.frag.spv",
			FramesInFlight:   2,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	switch c.Backend {
	case BackendOpenGL, BackendVulkan, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	switch c.Camera.Projection {
	case "perspective", "orthographic":
	default:
		errs = append(errs, fmt.Errorf("unknown projection %q", c.Camera.Projection))
	}
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "fov %v out of range", c.Camera.Fov)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "near %v must be positive and below far %v", c.Camera.Near, c.Camera.Far)
	check(c.Animation.Duration > 0, "animation duration must be positive")
	check(c.Pyramid.Axis.Len() > 0, "pyramid axis must not be zero")
	check(c.Octahedron.Axis.Len() > 0, "octahedron axis must not be zero")
	check(c.Dodecahedron.Axis.Len() > 0 && c.Dodecahedron.Axis2.Len() > 0, "dodecahedron axes must not be zero")
	check(c.Octahedron.Bob.Bound > 0, "bob bound must be positive")
	switch c.Octahedron.Bob.Mode {
	case "frames":
	case "millis":
		check(c.Octahedron.Bob.Period > 0, "bob period must be positive in millis mode")
	default:
		errs = append(errs, fmt.Errorf("unknown bob mode %q", c.Octahedron.Bob.Mode))
	}
	if c.Backend == BackendVulkan {
		check(c.Vulkan.VertexShader != "" && c.Vulkan.FragmentShader != "", "vulkan shader paths must be set")
		check(c.Vulkan.FramesInFlight > 0, "frames in flight must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
