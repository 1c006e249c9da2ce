package vulkan

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/goki/vulkan"
	"github.com/hreyesm/assignments/renderer"
)

// A frame records into the command buffer of the current frame slot between Clear and Present. When the swap
// chain is out of date Clear recreates it and the rest of the frame is skipped.

func (b *Backend) Clear() error {
	b.frameActive = false
	d := b.device.D
	fence := b.inFlightFens[b.currentFrameIdx]
	vk.WaitForFences(d, 1, []vk.Fence{fence}, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(d, b.swapChain.Handle, math.MaxUint64, b.imageAvailableSems[b.currentFrameIdx], vk.NullFence, &imgIdx)
	if result == vk.ErrorOutOfDate {
		return b.recreateSwapChain()
	} else if result != vk.Success && result != vk.Suboptimal {
		return fmt.Errorf("acquire swap chain image: %w", vk.Error(result))
	}
	b.imgIdx = imgIdx

	// Reset only once work that signals the fence is certain to be submitted
	vk.ResetFences(d, 1, []vk.Fence{fence})

	cmd := b.commandBuffers[b.currentFrameIdx]
	vk.ResetCommandBuffer(cmd, 0)
	beginInfo := vk.CommandBufferBeginInfo{
		SType:            vk.StructureTypeCommandBufferBeginInfo,
		PNext:            nil,
		Flags:            0,
		PInheritanceInfo: nil,
	}
	if err := vk.Error(vk.BeginCommandBuffer(cmd, &beginInfo)); err != nil {
		return fmt.Errorf("begin command buffer: %w", err)
	}

	extent := b.swapChain.Extent
	renderArea := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}
	c := b.clearColor
	clearValues := []vk.ClearValue{
		vk.NewClearValue([]float32{c[0], c[1], c[2], c[3]}),
		vk.NewClearDepthStencil(1, 0),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		PNext:           nil,
		RenderPass:      b.renderPass,
		Framebuffer:     b.swapChain.FrameBuffers[imgIdx],
		RenderArea:      renderArea,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(cmd, &renderPassInfo, vk.SubpassContentsInline)

	viewport := []vk.Viewport{
		{
			X:        0,
			Y:        0,
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0,
			MaxDepth: 1.0,
		},
	}
	vk.CmdSetViewport(cmd, 0, 1, viewport)
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{renderArea})

	b.frameActive = true
	return nil
}

func (b *Backend) UseProgram(p renderer.Program) {
	prog, ok := p.(*Program)
	if !b.frameActive || !ok {
		return
	}
	vk.CmdBindPipeline(b.commandBuffers[b.currentFrameIdx], vk.PipelineBindPointGraphics, prog.pipeline)
}

func (b *Backend) Draw(p renderer.Program, mesh renderer.MeshHandle, projection, modelView mgl32.Mat4) {
	m, ok := mesh.(*Mesh)
	if !b.frameActive || !ok {
		return
	}
	cmd := b.commandBuffers[b.currentFrameIdx]
	vk.CmdBindVertexBuffers(cmd, POSITION_BINDING, 2, []vk.Buffer{m.positions.Handle, m.colors.Handle}, []vk.DeviceSize{0, 0})
	vk.CmdBindIndexBuffer(cmd, m.indices.Handle, 0, vk.IndexTypeUint16)
	pc := PushConstants(ClipCorrected(projection), modelView)
	vk.CmdPushConstants(cmd, b.pipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0, PUSH_CONSTANTS_SIZE, unsafe.Pointer(&pc[0]))
	vk.CmdDrawIndexed(cmd, uint32(m.nIndices), 1, 0, 0, 0)
}

func (b *Backend) Present() error {
	if !b.frameActive {
		return nil
	}
	b.frameActive = false
	cmd := b.commandBuffers[b.currentFrameIdx]
	vk.CmdEndRenderPass(cmd)
	if err := vk.Error(vk.EndCommandBuffer(cmd)); err != nil {
		return fmt.Errorf("record command buffer: %w", err)
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{b.imageAvailableSems[b.currentFrameIdx]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cmd},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{b.renderFinishedSems[b.currentFrameIdx]},
	}
	if err := vk.Error(vk.QueueSubmit(b.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, b.inFlightFens[b.currentFrameIdx])); err != nil {
		return fmt.Errorf("submit command buffer: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		PNext:              nil,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{b.renderFinishedSems[b.currentFrameIdx]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{b.swapChain.Handle},
		PImageIndices:      []uint32{b.imgIdx},
		PResults:           nil,
	}
	result := vk.QueuePresent(b.device.PresentQ, &presentInfo)
	b.currentFrameIdx = (b.currentFrameIdx + 1) % len(b.inFlightFens)

	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || b.win.Resized {
		b.win.Resized = false
		return b.recreateSwapChain()
	} else if result != vk.Success {
		return fmt.Errorf("present image: %w", vk.Error(result))
	}
	return nil
}
