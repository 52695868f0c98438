package myr

type WindowID uint64

// Event is anything delivered by the window system. Kinds other than the
// ones below are ignored by Machine.
type Event interface{}

type CloseRequested struct {
	Window WindowID
}

// Resized carries the new framebuffer size in physical pixels. Either
// dimension is 0 while the window is minimized.
type Resized struct {
	Window        WindowID
	Width, Height int
}

// ScaleFactorChanged carries the new scale and the framebuffer size that
// goes with it.
type ScaleFactorChanged struct {
	Window        WindowID
	Scale         float64
	Width, Height int
}

type RedrawRequested struct {
	Window WindowID
}

// MainEventsCleared is delivered once per loop iteration after the pending
// window events.
type MainEventsCleared struct{}

type Focused struct {
	Window  WindowID
	Focused bool
}

// Window is the part of the window system the machine talks back to.
type Window interface {
	ID() WindowID
	RequestRedraw()
}
