package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

type frame struct {
	surface *WindowSurface
	chain   *swapchain
	index   uint32
}

type textureView struct {
	frame       *frame
	renderPass  vk.RenderPass
	framebuffer vk.Framebuffer
	extent      vk.Extent2D
}

func (f *frame) View() (myr.TextureView, error) {
	if int(f.index) >= len(f.chain.framebuffers) {
		return nil, errors.Errorf("image %d out of range of %d framebuffers", f.index, len(f.chain.framebuffers))
	}
	return &textureView{
		frame:       f,
		renderPass:  f.surface.renderPass,
		framebuffer: f.chain.framebuffers[f.index],
		extent:      f.chain.extent,
	}, nil
}

// Present queues the image once rendering has signaled. A suboptimal
// swapchain is reported as outdated so the next frame reconfigures.
func (f *frame) Present() error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{f.surface.sync.renderDone.Handle()},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{f.chain.handle},
		PImageIndices:      []uint32{f.index},
	}
	return classifyResult(vk.QueuePresent(f.surface.device.presentQueue, &presentInfo), "present")
}
