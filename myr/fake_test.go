package myr

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/perlw/vksurface/logger"
)

type fakeInstance struct {
	adapter *fakeAdapter
	err     error
}

func (i *fakeInstance) RequestAdapter(Surface) (Adapter, error) {
	if i.err != nil {
		return nil, i.err
	}
	return i.adapter, nil
}

type fakeAdapter struct {
	device *fakeDevice
	err    error
	desc   []DeviceDescriptor
}

func (a *fakeAdapter) Name() string { return "fake gpu" }

func (a *fakeAdapter) RequestDevice(desc DeviceDescriptor) (Device, Queue, error) {
	a.desc = append(a.desc, desc)
	if a.err != nil {
		return nil, nil, a.err
	}
	return a.device, a.device, nil
}

// fakeDevice doubles as its own queue and records every command.
type fakeDevice struct {
	cleared   []Color
	submitted int
	submitErr error
}

func (d *fakeDevice) CreateCommandEncoder() (CommandEncoder, error) {
	return &fakeEncoder{device: d}, nil
}

func (d *fakeDevice) Submit(cmds ...CommandBuffer) error {
	if d.submitErr != nil {
		return d.submitErr
	}
	d.submitted += len(cmds)
	return nil
}

type fakeEncoder struct {
	device *fakeDevice
	color  *Color
}

func (e *fakeEncoder) ClearPass(_ TextureView, color Color) error {
	e.color = &color
	return nil
}

func (e *fakeEncoder) Finish() (CommandBuffer, error) {
	if e.color != nil {
		e.device.cleared = append(e.device.cleared, *e.color)
	}
	return struct{}{}, nil
}

type fakeSurface struct {
	format    PixelFormat
	noFormat  bool
	configs   []SurfaceConfig
	configErr error

	// acquireErrs are returned by successive Acquire calls before frames
	// start being handed out.
	acquireErrs []error
	acquired    int
	presented   int
	presentErr  error
}

func (s *fakeSurface) PreferredFormat(Adapter) (PixelFormat, bool) {
	if s.noFormat {
		return FormatUndefined, false
	}
	return s.format, true
}

func (s *fakeSurface) Configure(_ Device, config SurfaceConfig) error {
	s.configs = append(s.configs, config)
	return s.configErr
}

func (s *fakeSurface) Acquire() (Frame, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		return nil, err
	}
	s.acquired++
	return &fakeFrame{surface: s}, nil
}

func (s *fakeSurface) reconfigurations() int {
	return len(s.configs) - 1
}

type fakeFrame struct {
	surface *fakeSurface
}

func (f *fakeFrame) View() (TextureView, error) { return f, nil }

func (f *fakeFrame) Present() error {
	if f.surface.presentErr != nil {
		return f.surface.presentErr
	}
	f.surface.presented++
	return nil
}

type fakeWindow struct {
	id      WindowID
	redraws int
}

func (w *fakeWindow) ID() WindowID { return w.id }
func (w *fakeWindow) RequestRedraw() { w.redraws++ }

type harness struct {
	device  *fakeDevice
	adapter *fakeAdapter
	surface *fakeSurface
	window  *fakeWindow
	logs    *bytes.Buffer
	log     logger.Logger
	rt      *Runtime
	machine *Machine
}

func newHarness(width, height int) (*harness, error) {
	h := harness{
		device:  &fakeDevice{},
		surface: &fakeSurface{format: FormatBGRA8UnormSrgb},
		window:  &fakeWindow{id: 7},
		logs:    &bytes.Buffer{},
	}
	h.adapter = &fakeAdapter{device: h.device}
	h.log = logger.New("TEST", logger.Sink{Writer: h.logs, Level: captureLevel})

	var err error
	h.rt, err = Init(&fakeInstance{adapter: h.adapter}, h.surface, width, height, Options{Log: &h.log})
	if err != nil {
		return nil, errors.Wrap(err, "init")
	}
	h.machine = NewMachine(h.rt, h.window, h.log)
	return &h, nil
}

// captureLevel keeps trace lines out of the captured log.
const captureLevel = logger.LevelWarn
