package pompeii

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

// formats is ordered by preference.
var formats = []struct {
	pixel myr.PixelFormat
	vk    vk.Format
}{
	{myr.FormatBGRA8UnormSrgb, vk.FormatB8g8r8a8Srgb},
	{myr.FormatRGBA8UnormSrgb, vk.FormatR8g8b8a8Srgb},
	{myr.FormatBGRA8Unorm, vk.FormatB8g8r8a8Unorm},
	{myr.FormatRGBA8Unorm, vk.FormatR8g8b8a8Unorm},
}

func vkFormat(f myr.PixelFormat) vk.Format {
	for _, e := range formats {
		if e.pixel == f {
			return e.vk
		}
	}
	return vk.FormatUndefined
}

// preferredFormat picks from what the surface reports. A lone undefined
// entry means the surface takes anything.
func preferredFormat(available []vk.SurfaceFormat) (myr.PixelFormat, bool) {
	if len(available) == 0 {
		return myr.FormatUndefined, false
	}
	if len(available) == 1 && available[0].Format == vk.FormatUndefined {
		return formats[0].pixel, true
	}
	for _, e := range formats {
		for _, a := range available {
			if a.Format == e.vk && a.ColorSpace == vk.ColorSpaceSrgbNonlinear {
				return e.pixel, true
			}
		}
	}
	return myr.FormatUndefined, false
}

func vkPresentMode(m myr.PresentMode) vk.PresentMode {
	switch m {
	case myr.PresentModeMailbox:
		return vk.PresentModeMailbox
	case myr.PresentModeImmediate:
		return vk.PresentModeImmediate
	default:
		return vk.PresentModeFifo
	}
}

// choosePresentMode falls back to FIFO, which every surface supports.
func choosePresentMode(want myr.PresentMode, available []vk.PresentMode) vk.PresentMode {
	mode := vkPresentMode(want)
	for _, a := range available {
		if a == mode {
			return mode
		}
	}
	return vk.PresentModeFifo
}

func vkImageUsage(u myr.TextureUsage) vk.ImageUsageFlags {
	var flags vk.ImageUsageFlags
	if u&myr.UsageRenderAttachment != 0 {
		flags |= vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
	}
	if u&myr.UsageCopyDst != 0 {
		flags |= vk.ImageUsageFlags(vk.ImageUsageTransferDstBit)
	}
	return flags
}

// clampExtent fits the requested size into the range the surface allows.
func clampExtent(width, height uint32, minExtent, maxExtent vk.Extent2D) vk.Extent2D {
	return vk.Extent2D{
		Width:  clampUint32(width, minExtent.Width, maxExtent.Width),
		Height: clampUint32(height, minExtent.Height, maxExtent.Height),
	}
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
