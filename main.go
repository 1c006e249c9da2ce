package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hreyesm/assignments/common"
	"github.com/hreyesm/assignments/config"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
	"github.com/hreyesm/assignments/renderer/headless"
	"github.com/hreyesm/assignments/renderer/opengl"
	"github.com/hreyesm/assignments/renderer/vulkan"
	"github.com/hreyesm/assignments/scene"
)

// Frames drawn by the headless backend when no -frames limit is given.
const HEADLESS_FRAMES = 60

func init() {
	// SDL and GL calls have to stay on the main thread
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting polyhedra")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file, defaults are used when empty")
	backend := flag.String("backend", "", "opengl, vulkan or headless; overrides the configuration")
	frames := flag.Int("frames", 0, "stop after this many frames, 0 runs until the window is closed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil && *backend != "" {
		cfg.Backend = *backend
		err = cfg.Validate()
	}
	if err != nil {
		log.Printf("Could not load configuration: %v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, *frames); err != nil {
		log.Printf("Exiting: %v", err)
		stop()
		os.Exit(1)
	}
}

// run draws the scene described by cfg until the window closes, ctx is cancelled or frames frames were drawn.
func run(ctx context.Context, cfg *config.Config, frames int) error {
	b, host, teardown, err := openBackend(cfg, frames)
	if err != nil {
		return err
	}
	defer teardown()
	b.SetClearColor(model.RGBA(cfg.ClearColor))

	shaders, err := loadShaders(cfg)
	if err != nil {
		b.Alert("Could not initialise shaders", err.Error())
		return fmt.Errorf("%w: %v", renderer.ErrShader, err)
	}
	rctx, err := renderer.Init(b, shaders, newCamera(cfg.Camera))
	if err != nil {
		return err
	}
	objs, err := scene.Build(b, cfg, time.Now())
	if err != nil {
		return err
	}
	return renderer.NewFrameDriver(rctx, scene.Drawables(objs)...).Run(ctx, host)
}

func openBackend(cfg *config.Config, frames int) (renderer.Backend, renderer.Host, func(), error) {
	if cfg.Backend == config.BackendHeadless {
		if frames <= 0 {
			frames = HEADLESS_FRAMES
		}
		b := headless.New(cfg.Window.Width, cfg.Window.Height)
		return b, &headless.Frames{N: frames}, b.Destroy, nil
	}

	api := common.API_OPENGL
	if cfg.Backend == config.BackendVulkan {
		api = common.API_VULKAN
	}
	win, err := common.NewWindow(cfg.Window.Title, int32(cfg.Window.Width), int32(cfg.Window.Height), api)
	if err != nil {
		common.Alert("Could not initialise graphics", err.Error())
		return nil, nil, nil, fmt.Errorf("%w: %v", renderer.ErrContext, err)
	}

	var b renderer.Backend
	switch cfg.Backend {
	case config.BackendVulkan:
		opts := vulkan.Options{FramesInFlight: cfg.Vulkan.FramesInFlight, VSync: cfg.Window.VSync}
		if cfg.Vulkan.Validation {
			opts.ValidationLayers = cfg.Vulkan.ValidationLayers
		}
		b, err = vulkan.New(win, opts)
	default:
		b, err = opengl.New(win, cfg.Window.VSync)
	}
	if err != nil {
		win.Alert("Could not initialise graphics", err.Error())
		win.Destroy()
		return nil, nil, nil, err
	}

	var host renderer.Host = win
	if frames > 0 {
		host = renderer.Limit(win, frames)
	}
	teardown := func() {
		b.Destroy()
		win.Destroy()
	}
	return b, host, teardown, nil
}

func loadShaders(cfg *config.Config) (renderer.ShaderSource, error) {
	if cfg.Backend == config.BackendVulkan {
		src, err := vulkan.LoadShaders(cfg.Vulkan.VertexShader, cfg.Vulkan.FragmentShader)
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w (run go generate ./shaders)", err)
		}
		return src, err
	}
	return opengl.Shaders(), nil
}

func newCamera(c config.Camera) *model.Camera {
	cam := model.NewCamera(c.Fov, c.Near, c.Far)
	if c.Projection == "orthographic" {
		cam.ProjectionType = model.CAM_ORTHOGRAPHIC_PROJECTION
	}
	return cam
}
