package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

type GraphicsAPI int

const (
	API_OPENGL GraphicsAPI = iota
	API_VULKAN
)

func (a GraphicsAPI) String() string {
	if a == API_VULKAN {
		return "Vulkan"
	}
	return "OpenGL"
}

// Window encapsulates the SDL window, its user input and, for Vulkan, the instance and surface to draw on.
// On tear down the vk.surface, vk.instance and sdl.window are destroyed in that order.
type Window struct {
	sdlVersion string
	API        GraphicsAPI

	Win       *sdl.Window
	Resized   bool
	Minimized bool
	Close     bool

	Inst *vk.Instance
	Surf *vk.Surface
}

// NewWindow initializes SDL video and opens a resizable window prepared for the given graphics API.
func NewWindow(title string, w int32, h int32, api GraphicsAPI) (*Window, error) {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
		API:        api,
	}
	if err := window.initSDLWindow(title, w, h); err != nil {
		return nil, err
	}
	log.Printf("Generated SDL window - SDL: %s API: %s", window.sdlVersion, api)
	return window, nil
}

func (w *Window) initSDLWindow(title string, width int32, height int32) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialize SDL: %w", err)
	}
	log.Println("Initialized SDL")
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if w.API == API_VULKAN {
		flags |= sdl.WINDOW_VULKAN
	} else {
		flags |= sdl.WINDOW_OPENGL
		// Core profile 4.1 is the newest context macOS hands out
		_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
		_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
		_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
		_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
		_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
		_ = sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	}
	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("create SDL window for use with %s: %w", w.API, err)
	}
	log.Printf("Created SDL window for use with %s. Title: \"%s\", Width: %d, Height: %d", w.API, title, width, height)
	w.Win = win
	return nil
}

// NextFrame handles pending window events and reports whether another frame should be drawn. It blocks while the
// window is minimized and returns false once the window was closed or ESC was pressed.
func (w *Window) NextFrame() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handle(event)
	}
	for w.Minimized && !w.Close {
		// Sleep until new events change w.Minimized
		w.handle(sdl.WaitEvent())
	}
	return !w.Close
}

func (w *Window) handle(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		w.Close = true
	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			w.Resized = true
		case sdl.WINDOWEVENT_MINIMIZED:
			w.Minimized = true
		case sdl.WINDOWEVENT_RESTORED:
			w.Minimized = false
		case sdl.WINDOWEVENT_CLOSE:
			w.Close = true
		}
	case *sdl.KeyboardEvent:
		if ev.Keysym.Sym == sdl.K_ESCAPE {
			w.Close = true
		}
	}
}

// DrawableSize is the surface size in pixels, which differs from the window size on high DPI displays.
func (w *Window) DrawableSize() (int, int) {
	var width, height int32
	if w.API == API_VULKAN {
		width, height = w.Win.VulkanGetDrawableSize()
	} else {
		width, height = w.Win.GLGetDrawableSize()
	}
	return int(width), int(height)
}

// Alert shows a modal error box attached to the window.
func (w *Window) Alert(title, message string) {
	showAlert(title, message, w.Win)
}

// Alert shows a modal error box when no window exists (yet).
func Alert(title, message string) {
	showAlert(title, message, nil)
}

func showAlert(title, message string, win *sdl.Window) {
	log.Printf("%s: %s", title, message)
	if err := sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, title, message, win); err != nil {
		log.Printf("Failed to show message box: %v", err)
	}
}

// Destroy tears down the surface and instance if Vulkan was initialized and then the window itself.
func (w *Window) Destroy() {
	if w.Surf != nil {
		vk.DestroySurface(*w.Inst, *w.Surf, nil)
	}
	if w.Inst != nil {
		vk.DestroyInstance(*w.Inst, nil)
	}
	if err := w.Win.Destroy(); err != nil {
		log.Printf("Failed to destroy window: %v", err)
	}
	sdl.Quit()
}
