package myr

import "fmt"

type PixelFormat int

const (
	FormatUndefined PixelFormat = iota
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb
	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
)

func (f PixelFormat) String() string {
	switch f {
	case FormatUndefined:
		return "Undefined"
	case FormatBGRA8Unorm:
		return "BGRA8Unorm"
	case FormatBGRA8UnormSrgb:
		return "BGRA8UnormSrgb"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	case FormatRGBA8UnormSrgb:
		return "RGBA8UnormSrgb"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

type PresentMode int

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota
	PresentModeMailbox
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "Fifo"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeImmediate:
		return "Immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

type TextureUsage uint32

const (
	UsageRenderAttachment TextureUsage = 1 << iota
	UsageCopyDst
)

// SurfaceConfig describes how the surface is configured. Width and Height
// are never zero.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      PixelFormat
	PresentMode PresentMode
	Usage       TextureUsage
}

func (c SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d %s %s", c.Width, c.Height, c.Format, c.PresentMode)
}

// clampDimension maps a raw window dimension to a valid surface dimension.
// A minimized window reports 0.
func clampDimension(v int) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}

func (c *SurfaceConfig) resize(width, height int) {
	c.Width = clampDimension(width)
	c.Height = clampDimension(height)
}
