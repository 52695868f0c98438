package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type swapchainParams struct {
	surface     vk.Surface
	old         vk.Swapchain
	renderPass  vk.RenderPass
	extent      vk.Extent2D
	format      vk.Format
	presentMode vk.PresentMode
	usage       vk.ImageUsageFlags
	caps        vk.SurfaceCapabilities
}

// swapchain holds the images of one configuration together with a view and
// framebuffer per image.
type swapchain struct {
	device *Device

	handle       vk.Swapchain
	extent       vk.Extent2D
	images       []vk.Image
	views        []vk.ImageView
	framebuffers []vk.Framebuffer
}

func newSwapchain(d *Device, p swapchainParams) (*swapchain, error) {
	c := swapchain{
		device: d,
		handle: vk.NullSwapchain,
		extent: p.extent,
	}

	imageCount := p.caps.MinImageCount + 1
	if p.caps.MaxImageCount > 0 && imageCount > p.caps.MaxImageCount {
		imageCount = p.caps.MaxImageCount
	}

	compositeAlpha := vk.CompositeAlphaOpaqueBit
	if p.caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit) == 0 {
		for _, bit := range []vk.CompositeAlphaFlagBits{
			vk.CompositeAlphaPreMultipliedBit,
			vk.CompositeAlphaPostMultipliedBit,
			vk.CompositeAlphaInheritBit,
		} {
			if p.caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(bit) != 0 {
				compositeAlpha = bit
				break
			}
		}
	}

	info := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          p.surface,
		MinImageCount:    imageCount,
		ImageFormat:      p.format,
		ImageColorSpace:  vk.ColorSpaceSrgbNonlinear,
		ImageExtent:      p.extent,
		ImageArrayLayers: 1,
		ImageUsage:       p.usage,
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     p.caps.CurrentTransform,
		CompositeAlpha:   compositeAlpha,
		PresentMode:      p.presentMode,
		Clipped:          vk.True,
		OldSwapchain:     p.old,
	}
	if d.GraphicsIndex != d.PresentIndex {
		info.ImageSharingMode = vk.SharingModeConcurrent
		info.QueueFamilyIndexCount = 2
		info.PQueueFamilyIndices = []uint32{uint32(d.GraphicsIndex), uint32(d.PresentIndex)}
	}

	if result := vk.CreateSwapchain(d.Handle(), &info, nil, &c.handle); result != vk.Success {
		return nil, classifyResult(result, "create swapchain")
	}

	var count uint32
	if result := vk.GetSwapchainImages(d.Handle(), c.handle, &count, nil); result != vk.Success {
		c.Destroy()
		return nil, errors.Wrap(vk.Error(result), "count swapchain images")
	}
	c.images = make([]vk.Image, count)
	if result := vk.GetSwapchainImages(d.Handle(), c.handle, &count, c.images); result != vk.Success {
		c.Destroy()
		return nil, errors.Wrap(vk.Error(result), "get swapchain images")
	}

	for _, image := range c.images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   p.format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		var view vk.ImageView
		if result := vk.CreateImageView(d.Handle(), &viewInfo, nil, &view); result != vk.Success {
			c.Destroy()
			return nil, errors.Wrap(vk.Error(result), "create image view")
		}
		c.views = append(c.views, view)

		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{view},
			Width:           p.extent.Width,
			Height:          p.extent.Height,
			Layers:          1,
		}
		var framebuffer vk.Framebuffer
		if result := vk.CreateFramebuffer(d.Handle(), &framebufferInfo, nil, &framebuffer); result != vk.Success {
			c.Destroy()
			return nil, errors.Wrap(vk.Error(result), "create framebuffer")
		}
		c.framebuffers = append(c.framebuffers, framebuffer)
	}

	return &c, nil
}

func (c *swapchain) Destroy() {
	for _, fb := range c.framebuffers {
		vk.DestroyFramebuffer(c.device.Handle(), fb, nil)
	}
	c.framebuffers = nil
	for _, view := range c.views {
		vk.DestroyImageView(c.device.Handle(), view, nil)
	}
	c.views = nil
	c.images = nil
	if c.handle != vk.NullSwapchain {
		vk.DestroySwapchain(c.device.Handle(), c.handle, nil)
		c.handle = vk.NullSwapchain
	}
}

// newClearRenderPass builds a single-subpass pass that clears its color
// attachment and leaves it ready for presentation.
func newClearRenderPass(d *Device, format vk.Format) (vk.RenderPass, error) {
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments: []vk.AttachmentDescription{{
			Format:         format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		}},
		SubpassCount: 1,
		PSubpasses: []vk.SubpassDescription{{
			PipelineBindPoint:    vk.PipelineBindPointGraphics,
			ColorAttachmentCount: 1,
			PColorAttachments: []vk.AttachmentReference{{
				Attachment: 0,
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			}},
		}},
	}

	var renderPass vk.RenderPass
	if result := vk.CreateRenderPass(d.Handle(), &info, nil, &renderPass); result != vk.Success {
		return nullRenderPass, errors.Wrap(vk.Error(result), "create render pass")
	}
	return renderPass, nil
}
