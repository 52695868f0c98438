package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

type commandEncoder struct {
	cmd   vk.CommandBuffer
	frame *frame
}

type commandBuffer struct {
	cmd vk.CommandBuffer
	// frame is the image the commands render to, if any. Its semaphores and
	// fence guard the submission.
	frame *frame
}

// CreateCommandEncoder resets and begins the device's command buffer. The
// caller must have waited for the previous submission, which
// WindowSurface.Acquire does.
func (d *Device) CreateCommandEncoder() (myr.CommandEncoder, error) {
	if result := vk.ResetCommandBuffer(d.commandBuffer, 0); result != vk.Success {
		return nil, classifyResult(result, "reset command buffer")
	}
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if result := vk.BeginCommandBuffer(d.commandBuffer, &beginInfo); result != vk.Success {
		return nil, classifyResult(result, "begin command buffer")
	}
	return &commandEncoder{cmd: d.commandBuffer}, nil
}

func (e *commandEncoder) ClearPass(target myr.TextureView, color myr.Color) error {
	view, ok := target.(*textureView)
	if !ok {
		return errors.Errorf("texture view %T does not belong to a swapchain", target)
	}

	clearValue := vk.NewClearValue([]float32{
		float32(color.R), float32(color.G), float32(color.B), float32(color.A),
	})
	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  view.renderPass,
		Framebuffer: view.framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: view.extent,
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{clearValue},
	}
	vk.CmdBeginRenderPass(e.cmd, &beginInfo, vk.SubpassContentsInline)
	vk.CmdEndRenderPass(e.cmd)

	e.frame = view.frame
	return nil
}

func (e *commandEncoder) Finish() (myr.CommandBuffer, error) {
	if result := vk.EndCommandBuffer(e.cmd); result != vk.Success {
		return nil, classifyResult(result, "end command buffer")
	}
	return &commandBuffer{cmd: e.cmd, frame: e.frame}, nil
}
