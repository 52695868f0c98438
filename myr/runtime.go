// Package myr keeps a window surface configured and drives one frame per
// redraw, recovering from lost and outdated surfaces.
package myr

import (
	"github.com/perlw/vksurface/logger"
)

const engineName = "MYR"

// Options tune Init. The zero value is usable.
type Options struct {
	Log        *logger.Logger
	ClearColor *Color
}

// Stats counts what the frame driver has done since Init.
type Stats struct {
	Presented int
	Skipped   int
	// Reconfigurations excludes the initial configuration.
	Reconfigurations int
	LastError        string
}

// Runtime owns the device, queue, surface and surface configuration for the
// lifetime of the process. It is not safe for concurrent use; every method
// must be called from the event loop goroutine.
type Runtime struct {
	log logger.Logger

	adapter Adapter
	device  Device
	queue   Queue
	surface Surface
	config  SurfaceConfig
	clear   Color

	stats Stats
}

// Init negotiates an adapter and device compatible with surface and
// performs the first configuration using the window's current size.
func Init(instance Instance, surface Surface, width, height int, opts Options) (*Runtime, error) {
	r := Runtime{
		surface: surface,
		clear:   DefaultClearColor,
	}
	if opts.Log != nil {
		r.log = *opts.Log
	} else {
		r.log = logger.Discard()
	}
	if opts.ClearColor != nil {
		r.clear = *opts.ClearColor
	}

	var err error
	r.adapter, err = instance.RequestAdapter(surface)
	if err != nil {
		return nil, initError(ErrNoCompatibleAdapter, err)
	}
	if r.adapter == nil {
		return nil, initError(ErrNoCompatibleAdapter, nil)
	}
	r.log.Log("Picked adapter: %s", r.adapter.Name())

	r.device, r.queue, err = r.adapter.RequestDevice(DeviceDescriptor{Label: engineName})
	if err != nil {
		return nil, initError(ErrDeviceRequestFailed, err)
	}

	format, ok := surface.PreferredFormat(r.adapter)
	if !ok {
		return nil, initError(ErrNoSupportedFormat, nil)
	}

	r.config = SurfaceConfig{
		Format:      format,
		PresentMode: PresentModeFifo,
		Usage:       UsageRenderAttachment,
	}
	r.config.resize(width, height)

	if err := r.surface.Configure(r.device, r.config); err != nil {
		return nil, initError(ErrConfigureFailed, err)
	}
	r.log.Trace("Surface configured: %s", r.config)

	return &r, nil
}

// Config returns the current surface configuration.
func (r *Runtime) Config() SurfaceConfig {
	return r.config
}

func (r *Runtime) Stats() Stats {
	return r.stats
}

// Device returns the device negotiated by Init, for teardown by its owner.
func (r *Runtime) Device() Device {
	return r.device
}

func (r *Runtime) AdapterName() string {
	return r.adapter.Name()
}

// Reconfigure stores the new size, with each dimension raised to at least 1,
// and configures the surface with it.
func (r *Runtime) Reconfigure(width, height int) error {
	r.config.resize(width, height)
	return r.reapply()
}

// reapply configures the surface with the stored configuration unchanged.
func (r *Runtime) reapply() error {
	r.stats.Reconfigurations++
	if err := r.surface.Configure(r.device, r.config); err != nil {
		return err
	}
	r.log.Trace("Surface reconfigured: %s", r.config)
	return nil
}
