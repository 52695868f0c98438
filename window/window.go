// Package window opens a GLFW window without a client API and turns its
// callbacks into myr events.
package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/perlw/vksurface/config"
	"github.com/perlw/vksurface/myr"
)

// mainWindowID is the id of the only window the process opens.
const mainWindowID myr.WindowID = 1

type Window struct {
	handle *glfw.Window
	events queue
}

// New initializes GLFW and opens a resizable window. GLFW requires it to be
// called from the main thread.
func New(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "init glfw")
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, errors.New("glfw reports no vulkan support")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}

	w := Window{
		handle: handle,
		events: queue{id: mainWindowID},
	}

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.resized(width, height)
	})
	handle.SetContentScaleCallback(func(win *glfw.Window, x, _ float32) {
		width, height := win.GetFramebufferSize()
		w.events.scaled(float64(x), width, height)
	})
	handle.SetCloseCallback(func(win *glfw.Window) {
		// The machine decides when to exit.
		win.SetShouldClose(false)
		w.events.closeRequested()
	})
	handle.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.events.focused(focused)
	})
	handle.SetRefreshCallback(func(_ *glfw.Window) {
		w.events.requestRedraw()
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.events.closeRequested()
		}
	})

	return &w, nil
}

func (w *Window) ID() myr.WindowID {
	return mainWindowID
}

func (w *Window) RequestRedraw() {
	w.events.requestRedraw()
}

// Poll processes pending GLFW events and returns them in delivery order.
func (w *Window) Poll() []myr.Event {
	glfw.PollEvents()
	return w.events.drain()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func (w *Window) CreateWindowSurface(instance interface{}, allocCallbacks unsafe.Pointer) (uintptr, error) {
	return w.handle.CreateWindowSurface(instance, allocCallbacks)
}

// RequiredInstanceExtensions lists the instance extensions needed to create
// a surface for this window.
func (w *Window) RequiredInstanceExtensions() []string {
	return w.handle.GetRequiredInstanceExtensions()
}

// InstanceProcAddr returns the loader entry point GLFW resolved.
func InstanceProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}
