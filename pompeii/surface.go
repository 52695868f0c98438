package pompeii

import (
	"math"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/logger"
	"github.com/perlw/vksurface/myr"
)

type Surface interface {
	Handle() vk.Surface
	Destroy()
}

// SurfaceCreator is implemented by windows able to create a Vulkan surface,
// such as *glfw.Window.
type SurfaceCreator interface {
	CreateWindowSurface(instance interface{}, allocCallbacks unsafe.Pointer) (uintptr, error)
}

var nullRenderPass vk.RenderPass

type windowSurfaceVk struct {
	surface vk.Surface
}

type frameSync struct {
	imageAcquired *Semaphore
	renderDone    *Semaphore
	inFlight      *Fence
}

func newFrameSync(d *Device) (*frameSync, error) {
	var s frameSync
	var err error
	if s.imageAcquired, err = NewSemaphore(d); err != nil {
		return nil, err
	}
	if s.renderDone, err = NewSemaphore(d); err != nil {
		s.Destroy()
		return nil, err
	}
	if s.inFlight, err = NewFence(d); err != nil {
		s.Destroy()
		return nil, err
	}
	return &s, nil
}

func (s *frameSync) Destroy() {
	if s.imageAcquired != nil {
		s.imageAcquired.Destroy()
	}
	if s.renderDone != nil {
		s.renderDone.Destroy()
	}
	if s.inFlight != nil {
		s.inFlight.Destroy()
	}
}

// WindowSurface is a window-bound Vulkan surface and the swapchain it is
// currently configured with.
type WindowSurface struct {
	log      logger.Logger
	instance *Instance
	timeout  uint64

	vk *windowSurfaceVk

	device           *Device
	sync             *frameSync
	renderPass       vk.RenderPass
	renderPassFormat vk.Format
	chain            *swapchain
	// stale is set when the last configuration could not build a swapchain.
	stale bool
}

// NewWindowSurface binds a surface to window. acquireTimeout bounds each
// image acquisition; zero waits forever.
func NewWindowSurface(log logger.Logger, instance *Instance, window SurfaceCreator, acquireTimeout time.Duration) (*WindowSurface, error) {
	w := WindowSurface{
		log:        log,
		instance:   instance,
		timeout:    timeoutNanos(acquireTimeout),
		renderPass: nullRenderPass,
		vk: &windowSurfaceVk{
			surface: vk.NullSurface,
		},
	}

	ptr, err := window.CreateWindowSurface(instance.Handle(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window surface")
	}
	w.vk.surface = vk.SurfaceFromPointer(ptr)

	return &w, nil
}

func timeoutNanos(d time.Duration) uint64 {
	if d <= 0 {
		return math.MaxUint64
	}
	return uint64(d.Nanoseconds())
}

func (w *WindowSurface) Destroy() {
	if w.device != nil {
		w.device.WaitIdle()
		if w.chain != nil {
			w.chain.Destroy()
			w.chain = nil
		}
		if w.sync != nil {
			w.sync.Destroy()
			w.sync = nil
		}
		if w.renderPass != nullRenderPass {
			vk.DestroyRenderPass(w.device.Handle(), w.renderPass, nil)
			w.renderPass = nullRenderPass
		}
	}
	if w.vk.surface != vk.NullSurface {
		vk.DestroySurface(w.instance.Handle(), w.vk.surface, nil)
		w.vk.surface = vk.NullSurface
	}
}

func (w *WindowSurface) Handle() vk.Surface {
	return w.vk.surface
}

func (w *WindowSurface) PreferredFormat(adapter myr.Adapter) (myr.PixelFormat, bool) {
	gpu, ok := adapter.(*GPU)
	if !ok {
		return myr.FormatUndefined, false
	}

	var count uint32
	if result := vk.GetPhysicalDeviceSurfaceFormats(gpu.Handle(), w.vk.surface, &count, nil); result != vk.Success || count == 0 {
		return myr.FormatUndefined, false
	}
	available := make([]vk.SurfaceFormat, count)
	if result := vk.GetPhysicalDeviceSurfaceFormats(gpu.Handle(), w.vk.surface, &count, available); result != vk.Success {
		return myr.FormatUndefined, false
	}
	for t := range available {
		available[t].Deref()
	}

	format, ok := preferredFormat(available)
	if ok {
		w.log.Trace("surface format %s out of %d", format, count)
	}
	return format, ok
}

func (w *WindowSurface) presentModes(gpu vk.PhysicalDevice) []vk.PresentMode {
	var count uint32
	if result := vk.GetPhysicalDeviceSurfacePresentModes(gpu, w.vk.surface, &count, nil); result != vk.Success {
		return nil
	}
	modes := make([]vk.PresentMode, count)
	if result := vk.GetPhysicalDeviceSurfacePresentModes(gpu, w.vk.surface, &count, modes); result != vk.Success {
		return nil
	}
	return modes
}

// Configure rebuilds the swapchain for config, reusing the old one as
// OldSwapchain. A surface with a zero maximum extent (minimized on some
// platforms) reports myr.ErrSurfaceOutdated and stays stale until the next
// successful configuration.
func (w *WindowSurface) Configure(device myr.Device, config myr.SurfaceConfig) error {
	d, ok := device.(*Device)
	if !ok {
		return errors.Errorf("device %T is not a vulkan device", device)
	}
	w.device = d
	gpu := d.physicalDevice

	var caps vk.SurfaceCapabilities
	if result := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, w.vk.surface, &caps); result != vk.Success {
		w.stale = true
		return classifyResult(result, "get surface capabilities")
	}
	caps.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	caps.CurrentExtent.Deref()

	if caps.MaxImageExtent.Width == 0 || caps.MaxImageExtent.Height == 0 {
		w.stale = true
		return errors.Wrap(myr.ErrSurfaceOutdated, "surface has zero extent")
	}

	format := vkFormat(config.Format)
	if format == vk.FormatUndefined {
		return errors.Errorf("unsupported pixel format %s", config.Format)
	}

	d.WaitIdle()

	if w.sync == nil {
		sync, err := newFrameSync(d)
		if err != nil {
			return err
		}
		w.sync = sync
	}

	if w.renderPass == nullRenderPass || w.renderPassFormat != format {
		if w.renderPass != nullRenderPass {
			vk.DestroyRenderPass(d.Handle(), w.renderPass, nil)
			w.renderPass = nullRenderPass
		}
		renderPass, err := newClearRenderPass(d, format)
		if err != nil {
			return err
		}
		w.renderPass = renderPass
		w.renderPassFormat = format
	}

	old := vk.NullSwapchain
	if w.chain != nil {
		old = w.chain.handle
	}
	extent := clampExtent(config.Width, config.Height, caps.MinImageExtent, caps.MaxImageExtent)
	if extent.Width != config.Width || extent.Height != config.Height {
		w.log.Trace("swapchain extent %dx%d clamped to %dx%d", config.Width, config.Height, extent.Width, extent.Height)
	}

	chain, err := newSwapchain(d, swapchainParams{
		surface:     w.vk.surface,
		old:         old,
		renderPass:  w.renderPass,
		extent:      extent,
		format:      format,
		presentMode: choosePresentMode(config.PresentMode, w.presentModes(gpu)),
		usage:       vkImageUsage(config.Usage),
		caps:        caps,
	})
	if w.chain != nil {
		w.chain.Destroy()
		w.chain = nil
	}
	if err != nil {
		w.stale = true
		return err
	}

	w.chain = chain
	w.stale = false
	return nil
}

// Acquire waits for the previous frame and takes the next swapchain image.
func (w *WindowSurface) Acquire() (myr.Frame, error) {
	if w.chain == nil || w.stale {
		return nil, errors.Wrap(myr.ErrSurfaceOutdated, "swapchain not configured")
	}

	if result := w.sync.inFlight.Wait(w.timeout); result != vk.Success {
		return nil, classifyResult(result, "wait for previous frame")
	}

	var index uint32
	result := vk.AcquireNextImage(w.device.Handle(), w.chain.handle, w.timeout, w.sync.imageAcquired.Handle(), vk.NullFence, &index)
	switch result {
	case vk.Success, vk.Suboptimal:
		return &frame{surface: w, chain: w.chain, index: index}, nil
	default:
		return nil, classifyResult(result, "acquire next image")
	}
}
