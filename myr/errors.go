package myr

import (
	"github.com/pkg/errors"
)

// Startup failures. Each is fatal.
var (
	ErrNoCompatibleAdapter = errors.New("no compatible adapter")
	ErrDeviceRequestFailed = errors.New("device request failed")
	ErrNoSupportedFormat   = errors.New("surface reports no supported format")
	ErrConfigureFailed     = errors.New("surface configuration failed")
)

// Per-frame failures reported by Surface.Acquire, Queue.Submit or Frame.Present.
var (
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrTimeout         = errors.New("timed out")
)

// InitError names the startup step that failed.
type InitError struct {
	Step error
	Err  error
}

func (e *InitError) Error() string {
	if e.Err == nil {
		return e.Step.Error()
	}
	return e.Step.Error() + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Step}
	}
	return []error{e.Step, e.Err}
}

func initError(step, err error) error {
	return &InitError{Step: step, Err: err}
}

// needsReconfigure reports whether err is cured by configuring the surface again.
func needsReconfigure(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}
