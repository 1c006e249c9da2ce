// Package vulkan draws through a Vulkan swap chain on an SDL window surface.
package vulkan

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	com "github.com/hreyesm/assignments/common"
	"github.com/hreyesm/assignments/model"
	"github.com/hreyesm/assignments/renderer"
)

const DEFAULT_FRAMES_IN_FLIGHT = 2

type Options struct {
	// ValidationLayers are enabled when non empty and available.
	ValidationLayers []string
	FramesInFlight   int
	VSync            bool
}

type Backend struct {
	// OS/Window level
	win    *com.Window
	device *com.Device
	opts   Options

	// Target level
	swapChain   *com.SwapChain
	depth       *com.Image
	depthFormat vk.Format

	// Drawing infrastructure level
	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	programs       []*Program
	commandPool    vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int
	imgIdx             uint32
	frameActive        bool
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence

	clearColor model.RGBA
	meshes     []*Mesh
}

// New brings up Vulkan on win: instance and surface, device, swap chain with depth buffer, render pass and the
// per frame command buffers and sync objects. The window stays owned by the caller.
func New(win *com.Window, opts Options) (b *Backend, err error) {
	if win.API != com.API_VULKAN {
		return nil, fmt.Errorf("%w: window was created for %s", renderer.ErrContext, win.API)
	}
	if opts.FramesInFlight < 1 {
		opts.FramesInFlight = DEFAULT_FRAMES_IN_FLIGHT
	}
	b = &Backend{win: win, opts: opts}
	defer func() {
		if err != nil {
			b.Destroy()
			b = nil
			err = fmt.Errorf("%w: %v", renderer.ErrContext, err)
		}
	}()

	if win.Inst == nil {
		if err = win.InitVulkan(opts.ValidationLayers); err != nil {
			return
		}
	}
	if b.device, err = com.NewDevice(win, opts.ValidationLayers); err != nil {
		return
	}
	if b.depthFormat, err = com.FindDepthFormat(b.device.PD); err != nil {
		return
	}
	if b.swapChain, err = com.NewSwapChain(b.device, win, opts.VSync); err != nil {
		return
	}
	if err = b.createRenderPass(); err != nil {
		return
	}
	if err = b.createPipelineLayout(); err != nil {
		return
	}
	if err = b.createCommandPool(); err != nil {
		return
	}
	if err = b.createDepthResources(); err != nil {
		return
	}
	if err = b.swapChain.CreateFrameBuffers(b.device, b.renderPass, b.depth.View); err != nil {
		return
	}
	if b.commandBuffers, err = com.VKSAllocateCommandBuffersPrimary(b.device.D, b.commandPool, uint32(opts.FramesInFlight)); err != nil {
		return
	}
	if err = b.createSyncObjects(); err != nil {
		return
	}
	log.Printf("Vulkan backend ready, %d frames in flight", opts.FramesInFlight)
	return b, nil
}

// Destroy waits for the device to finish and releases everything New and the upload calls created.
func (b *Backend) Destroy() {
	if b.device == nil {
		return
	}
	b.device.WaitIdle()
	d := b.device.D

	for _, m := range b.meshes {
		m.destroy(b.device)
	}
	b.meshes = nil

	// Null handles left by a failed New are ignored by the destroy calls
	for i := range b.imageAvailableSems {
		vk.DestroySemaphore(d, b.imageAvailableSems[i], nil)
		vk.DestroySemaphore(d, b.renderFinishedSems[i], nil)
	}
	for i := range b.inFlightFens {
		vk.DestroyFence(d, b.inFlightFens[i], nil)
	}
	b.imageAvailableSems, b.renderFinishedSems, b.inFlightFens = nil, nil, nil
	b.destroySwapChainAndDerivatives()
	vk.DestroyCommandPool(d, b.commandPool, nil)

	for _, p := range b.programs {
		vk.DestroyPipeline(d, p.pipeline, nil)
	}
	b.programs = nil
	vk.DestroyPipelineLayout(d, b.pipelineLayout, nil)
	vk.DestroyRenderPass(d, b.renderPass, nil)

	b.device.Destroy()
	b.device = nil
}

func (b *Backend) destroySwapChainAndDerivatives() {
	if b.depth != nil {
		com.DestroyImage(b.device, b.depth)
		b.depth = nil
	}
	if b.swapChain != nil {
		b.swapChain.Destroy(b.device)
		b.swapChain = nil
	}
}

func (b *Backend) recreateSwapChain() error {
	w, h := b.win.DrawableSize()
	if w == 0 || h == 0 {
		// Minimized, try again on the next frame
		return nil
	}
	b.device.WaitIdle()
	b.destroySwapChainAndDerivatives()

	var err error
	if b.swapChain, err = com.NewSwapChain(b.device, b.win, b.opts.VSync); err != nil {
		return err
	}
	if err = b.createDepthResources(); err != nil {
		return err
	}
	return b.swapChain.CreateFrameBuffers(b.device, b.renderPass, b.depth.View)
}

func (b *Backend) createRenderPass() error {
	colorAttachment := vk.AttachmentDescription{
		Flags:          0,
		Format:         b.swapChain.Format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	depthAttachment := vk.AttachmentDescription{
		Flags:          0,
		Format:         b.depthFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		Flags:                   0,
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		InputAttachmentCount:    0,
		PInputAttachments:       nil,
		ColorAttachmentCount:    1,
		PColorAttachments:       []vk.AttachmentReference{colorAttachmentRef},
		PResolveAttachments:     nil,
		PDepthStencilAttachment: &depthAttachmentRef,
		PreserveAttachmentCount: 0,
		PPreserveAttachments:    nil,
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:      vk.SubpassExternal,
		DstSubpass:      0,
		SrcStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask:   0,
		DstAccessMask:   vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
		DependencyFlags: 0,
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		PNext:           nil,
		Flags:           0,
		AttachmentCount: 2,
		PAttachments:    []vk.AttachmentDescription{colorAttachment, depthAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var err error
	b.renderPass, err = com.VkCreateRenderPass(b.device.D, &renderPassInfo, nil)
	if err != nil {
		return fmt.Errorf("create render pass: %w", err)
	}
	return nil
}

// Both matrices travel as push constants, so the layout has no descriptor sets.
func (b *Backend) createPipelineLayout() error {
	pushConstantRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		Offset:     0,
		Size:       PUSH_CONSTANTS_SIZE,
	}
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		PNext:                  nil,
		Flags:                  0,
		SetLayoutCount:         0,
		PSetLayouts:            nil,
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{pushConstantRange},
	}
	var err error
	b.pipelineLayout, err = com.VkCreatePipelineLayout(b.device.D, &pipelineLayoutInfo, nil)
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	return nil
}

func (b *Backend) createCommandPool() error {
	var err error
	b.commandPool, err = com.VKSCreateCommandPool(
		b.device.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*b.device.QFamilies.GraphicsFamily,
	)
	if err != nil {
		return fmt.Errorf("create command pool: %w", err)
	}
	return nil
}

func (b *Backend) createDepthResources() error {
	var err error
	b.depth, err = com.CreateImage(
		b.device,
		b.swapChain.Extent.Width,
		b.swapChain.Extent.Height,
		b.depthFormat,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	)
	if err != nil {
		return fmt.Errorf("create depth image: %w", err)
	}
	return com.TransitionToDepthAttachment(b.device, b.commandPool, b.depth)
}

func (b *Backend) createSyncObjects() error {
	n := b.opts.FramesInFlight
	b.imageAvailableSems = make([]vk.Semaphore, n)
	b.renderFinishedSems = make([]vk.Semaphore, n)
	b.inFlightFens = make([]vk.Fence, 0, n)
	for i := 0; i < n; i++ {
		var err error
		if b.imageAvailableSems[i], err = com.VkCreateSemaphore(b.device.D, nil); err != nil {
			return fmt.Errorf("create sync objects: %w", err)
		}
		if b.renderFinishedSems[i], err = com.VkCreateSemaphore(b.device.D, nil); err != nil {
			return fmt.Errorf("create sync objects: %w", err)
		}
		// Signalled so the first wait of every frame slot returns at once
		fence, err := com.VkCreateFence(b.device.D, vk.FenceCreateFlags(vk.FenceCreateSignaledBit), nil)
		if err != nil {
			return fmt.Errorf("create sync objects: %w", err)
		}
		b.inFlightFens = append(b.inFlightFens, fence)
	}
	return nil
}

func (b *Backend) SetClearColor(c model.RGBA) {
	b.clearColor = c
}

func (b *Backend) SurfaceSize() (int, int) {
	return b.win.DrawableSize()
}

func (b *Backend) Alert(title, message string) {
	b.win.Alert(title, message)
}

var _ renderer.Backend = (*Backend)(nil)
