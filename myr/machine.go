package myr

import (
	"github.com/pkg/errors"

	"github.com/perlw/vksurface/logger"
)

type State int

const (
	StateRunning State = iota
	StateExiting
)

func (s State) String() string {
	if s == StateExiting {
		return "Exiting"
	}
	return "Running"
}

// Machine reacts to window events in delivery order. Once it reaches
// StateExiting it ignores everything.
type Machine struct {
	log    logger.Logger
	rt     *Runtime
	window Window

	state State
	err   error
}

func NewMachine(rt *Runtime, window Window, log logger.Logger) *Machine {
	return &Machine{
		log:    log,
		rt:     rt,
		window: window,
		state:  StateRunning,
	}
}

func (m *Machine) State() State {
	return m.state
}

// Err is the reason for exiting, nil after a requested close.
func (m *Machine) Err() error {
	return m.err
}

func (m *Machine) Runtime() *Runtime {
	return m.rt
}

func (m *Machine) Step(ev Event) {
	if m.state == StateExiting {
		return
	}

	switch e := ev.(type) {
	case CloseRequested:
		if m.ours(e.Window) {
			m.log.Log("Close requested")
			m.exit(nil)
		}
	case Resized:
		if m.ours(e.Window) {
			m.reconfigure(e.Width, e.Height)
		}
	case ScaleFactorChanged:
		if m.ours(e.Window) {
			m.log.Trace("Scale factor %.2f", e.Scale)
			m.reconfigure(e.Width, e.Height)
		}
	case RedrawRequested:
		if m.ours(e.Window) {
			if m.rt.DrawFrame() == FrameFatal {
				m.exit(errors.Wrap(ErrOutOfMemory, "frame driver"))
			}
		}
	case MainEventsCleared:
		m.window.RequestRedraw()
	}
}

func (m *Machine) ours(id WindowID) bool {
	return id == m.window.ID()
}

func (m *Machine) reconfigure(width, height int) {
	if err := m.rt.Reconfigure(width, height); err != nil {
		if errors.Is(err, ErrSurfaceOutdated) {
			m.log.Trace("reconfigure to %dx%d deferred: %v", width, height, err)
			return
		}
		m.log.Warn("reconfigure to %dx%d: %v", width, height, err)
	}
}

func (m *Machine) exit(err error) {
	m.state = StateExiting
	m.err = err
}
