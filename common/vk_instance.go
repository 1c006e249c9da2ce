package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const APPLICATION_NAME = "Polyhedra"
const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0
const ENGINE_NAME = "No Engine"
const ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH = 1, 0, 0

// Vulkan header version of the goki/vulkan v1.0.7 bindings (1.3.239)
const VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH int = 1, 3, 239

// InitVulkan loads the Vulkan driver through SDL, creates the instance (with validationLayers if any are given)
// and the window surface.
func (w *Window) InitVulkan(validationLayers []string) error {
	if w.API != API_VULKAN {
		return fmt.Errorf("window was created for %s", w.API)
	}
	// Find and load Vulkan addresses to be able to call driver level functions via provided mechanism
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("initialize Vulkan API: %w", err)
	}
	if err := w.createVulkanInstance(validationLayers); err != nil {
		return err
	}
	surf, err := SdlCreateVkSurface(w.Win, *w.Inst)
	if err != nil {
		return fmt.Errorf("create SDL window's Vulkan surface: %w", err)
	}
	w.Surf = &surf
	log.Printf("Created Vulkan instance and surface, API v%d.%d.%d", VK_API_MAJOR, VK_API_MINOR, VK_API_PATCH)
	return nil
}

func (w *Window) createVulkanInstance(validationLayers []string) error {
	requiredExtensions := w.Win.VulkanGetInstanceExtensions()
	if err := checkInstanceExtensionSupport(requiredExtensions); err != nil {
		return err
	}
	enableValidation := len(validationLayers) > 0
	if enableValidation {
		log.Printf("Validation enabled, checking layer support")
		if !checkValidationLayerSupport(validationLayers) {
			log.Printf("Validation layers %v not available, continuing without validation", validationLayers)
			enableValidation = false
		}
	}
	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PNext:              nil,
		PApplicationName:   TerminatedStr(APPLICATION_NAME),
		ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		PEngineName:        TerminatedStr(ENGINE_NAME),
		EngineVersion:      vk.MakeVersion(ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH),
		ApiVersion:         vk.MakeVersion(1, 0, 0),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		PApplicationInfo:        applicationInfo,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: TerminatedStrs(requiredExtensions),
	}
	if enableValidation {
		createInfo.EnabledLayerCount = uint32(len(validationLayers))
		createInfo.PpEnabledLayerNames = TerminatedStrs(validationLayers)
	}
	ins, err := VkCreateInstance(createInfo, nil)
	if err != nil {
		return fmt.Errorf("create vk instance: %w", err)
	}
	w.Inst = &ins
	return nil
}

func checkInstanceExtensionSupport(requiredInstanceExt []string) error {
	supportedExtNames := ReadInstanceExtensionPropertyNames()
	log.Printf("Required instance extensions: %v", requiredInstanceExt)
	log.Printf("Available extensions (%d): %v", len(supportedExtNames), supportedExtNames)

	if !AllOfAinB(requiredInstanceExt, supportedExtNames) {
		return fmt.Errorf("at least one required instance extension of %v is not supported", requiredInstanceExt)
	}
	log.Println("Success - All required instance extensions are supported")
	return nil
}

func checkValidationLayerSupport(requiredLayers []string) bool {
	supportedLayerNames := ReadInstanceLayerPropertyNames()
	log.Printf("Desired validation layers: %v", requiredLayers)
	log.Printf("Supported layers (%d):\n%s", len(supportedLayerNames), TableStringLayerProps(readInstanceLayerProperties()))
	return AllOfAinB(requiredLayers, supportedLayerNames)
}
