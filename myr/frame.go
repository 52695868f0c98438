package myr

import (
	"fmt"

	"github.com/pkg/errors"
)

// FrameResult is the outcome of one DrawFrame call.
type FrameResult int

const (
	FramePresented FrameResult = iota
	// FrameReconfigured means the surface was lost or outdated and has been
	// configured again; nothing was drawn.
	FrameReconfigured
	// FrameSkipped means a transient error was logged; nothing was drawn.
	FrameSkipped
	// FrameFatal means the device ran out of memory. The process must exit.
	FrameFatal
)

func (r FrameResult) String() string {
	switch r {
	case FramePresented:
		return "Presented"
	case FrameReconfigured:
		return "Reconfigured"
	case FrameSkipped:
		return "Skipped"
	case FrameFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("FrameResult(%d)", int(r))
	}
}

// DrawFrame makes exactly one attempt to acquire, clear and present a frame.
// Failures are handled here and never returned.
func (r *Runtime) DrawFrame() FrameResult {
	frame, err := r.surface.Acquire()
	if err != nil {
		return r.fail(errors.Wrap(err, "acquire frame"))
	}
	if err := r.render(frame); err != nil {
		return r.fail(err)
	}
	r.stats.Presented++
	return FramePresented
}

func (r *Runtime) render(frame Frame) error {
	view, err := frame.View()
	if err != nil {
		return errors.Wrap(err, "create view")
	}
	encoder, err := r.device.CreateCommandEncoder()
	if err != nil {
		return errors.Wrap(err, "create command encoder")
	}
	if err := encoder.ClearPass(view, r.clear); err != nil {
		return errors.Wrap(err, "record clear pass")
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return errors.Wrap(err, "finish command encoder")
	}
	if err := r.queue.Submit(cmd); err != nil {
		return errors.Wrap(err, "submit")
	}
	if err := frame.Present(); err != nil {
		return errors.Wrap(err, "present")
	}
	return nil
}

func (r *Runtime) fail(err error) FrameResult {
	r.stats.LastError = err.Error()

	switch {
	case needsReconfigure(err):
		r.log.Trace("%v, reconfiguring surface", err)
		if cerr := r.reapply(); errors.Is(cerr, ErrSurfaceOutdated) {
			// Minimized; retried on the next redraw.
			r.log.Trace("reconfigure after %v: %v", err, cerr)
		} else if cerr != nil {
			r.log.Warn("reconfigure after %v: %v", err, cerr)
		}
		return FrameReconfigured
	case errors.Is(err, ErrOutOfMemory):
		r.log.Err(err, "frame failed")
		return FrameFatal
	default:
		r.stats.Skipped++
		r.log.Err(err, "frame skipped")
		return FrameSkipped
	}
}
