package myr

// Instance is the entry point of a graphics backend.
type Instance interface {
	// RequestAdapter picks a physical adapter able to present to surface.
	RequestAdapter(compatible Surface) (Adapter, error)
}

// Adapter is a physical device.
type Adapter interface {
	Name() string
	RequestDevice(desc DeviceDescriptor) (Device, Queue, error)
}

// DeviceDescriptor lists the capabilities the logical device must provide.
// The zero value asks for nothing beyond presentation.
type DeviceDescriptor struct {
	Label            string
	RequiredFeatures []string
}

type Device interface {
	CreateCommandEncoder() (CommandEncoder, error)
}

type Queue interface {
	Submit(cmds ...CommandBuffer) error
}

type CommandEncoder interface {
	// ClearPass records a render pass that only clears target to color.
	ClearPass(target TextureView, color Color) error
	Finish() (CommandBuffer, error)
}

type CommandBuffer interface{}

type TextureView interface{}

// Surface is the window-bound presentation target. It is configured, never
// recreated, for the lifetime of the runtime.
type Surface interface {
	// PreferredFormat reports the format the surface wants when driven by
	// adapter. ok is false when the surface supports no format at all.
	PreferredFormat(adapter Adapter) (format PixelFormat, ok bool)
	Configure(device Device, config SurfaceConfig) error
	// Acquire returns the next frame or an error classified with
	// ErrSurfaceLost, ErrSurfaceOutdated, ErrOutOfMemory or ErrTimeout.
	Acquire() (Frame, error)
}

// Frame is one acquired swapchain image. It is valid for a single
// render and present.
type Frame interface {
	View() (TextureView, error)
	Present() error
}

type Color struct {
	R, G, B, A float64
}

// DefaultClearColor is the dark blue the frame driver clears to.
var DefaultClearColor = Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0}
