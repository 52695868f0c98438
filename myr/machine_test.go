package myr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineCloseStopsFrames(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	m := h.machine
	id := h.window.id

	m.Step(RedrawRequested{Window: id})
	require.Equal(t, 1, h.surface.acquired)

	m.Step(CloseRequested{Window: id})
	assert.Equal(t, StateExiting, m.State())
	assert.NoError(t, m.Err())

	m.Step(RedrawRequested{Window: id})
	m.Step(MainEventsCleared{})
	m.Step(Resized{Window: id, Width: 10, Height: 10})

	assert.Equal(t, 1, h.surface.acquired)
	assert.Zero(t, h.window.redraws)
	assert.Len(t, h.surface.configs, 1)
	assert.Equal(t, StateExiting, m.State())
}

func TestMachineResizeScenario(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	m := h.machine
	id := h.window.id

	assert.Equal(t, uint32(800), h.rt.Config().Width)
	assert.Equal(t, uint32(600), h.rt.Config().Height)

	m.Step(Resized{Window: id, Width: 0, Height: 0})
	assert.Equal(t, uint32(1), h.rt.Config().Width)
	assert.Equal(t, uint32(1), h.rt.Config().Height)

	m.Step(Resized{Window: id, Width: 1024, Height: 768})
	assert.Equal(t, uint32(1024), h.rt.Config().Width)
	assert.Equal(t, uint32(768), h.rt.Config().Height)

	assert.Equal(t, 2, h.surface.reconfigurations())
	assert.Equal(t, 2, h.rt.Stats().Reconfigurations)
	assert.Equal(t, StateRunning, m.State())
}

func TestMachineScaleFactorChangeReconfigures(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	h.machine.Step(ScaleFactorChanged{Window: h.window.id, Scale: 2, Width: 1600, Height: 1200})
	assert.Equal(t, uint32(1600), h.rt.Config().Width)
	assert.Equal(t, uint32(1200), h.rt.Config().Height)
	assert.Equal(t, 1, h.surface.reconfigurations())
}

func TestMachineLostSurface(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrSurfaceLost}

	h.machine.Step(RedrawRequested{Window: h.window.id})

	assert.Equal(t, StateRunning, h.machine.State())
	require.Equal(t, 1, h.surface.reconfigurations())
	assert.Equal(t, h.surface.configs[0], h.surface.configs[1])
	assert.Zero(t, h.surface.presented)
}

func TestMachineOutOfMemoryExits(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrOutOfMemory}

	h.machine.Step(RedrawRequested{Window: h.window.id})

	assert.Equal(t, StateExiting, h.machine.State())
	assert.ErrorIs(t, h.machine.Err(), ErrOutOfMemory)
	assert.Zero(t, h.surface.reconfigurations())

	h.machine.Step(RedrawRequested{Window: h.window.id})
	assert.Zero(t, h.surface.acquired)
}

func TestMachineTransientErrorKeepsRunning(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrTimeout}

	h.machine.Step(RedrawRequested{Window: h.window.id})
	assert.Equal(t, StateRunning, h.machine.State())
	assert.Zero(t, h.surface.reconfigurations())
	assert.Contains(t, h.logs.String(), "timed out")

	h.machine.Step(RedrawRequested{Window: h.window.id})
	assert.Equal(t, 1, h.surface.presented)
}

func TestMachineMainEventsClearedRequestsRedraw(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	h.machine.Step(MainEventsCleared{})
	h.machine.Step(MainEventsCleared{})
	assert.Equal(t, 2, h.window.redraws)
	assert.Zero(t, h.surface.acquired)
}

func TestMachineIgnoresOtherWindowsAndEvents(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	other := h.window.id + 1

	h.machine.Step(CloseRequested{Window: other})
	h.machine.Step(Resized{Window: other, Width: 5, Height: 5})
	h.machine.Step(ScaleFactorChanged{Window: other, Scale: 3, Width: 5, Height: 5})
	h.machine.Step(RedrawRequested{Window: other})
	h.machine.Step(Focused{Window: h.window.id, Focused: true})
	h.machine.Step("keypress")
	h.machine.Step(nil)

	assert.Equal(t, StateRunning, h.machine.State())
	assert.Len(t, h.surface.configs, 1)
	assert.Zero(t, h.surface.acquired)
	assert.Equal(t, uint32(800), h.rt.Config().Width)
}

func TestMachineLogsFailedReconfigure(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	h.surface.configErr = ErrSurfaceOutdated
	h.machine.Step(Resized{Window: h.window.id, Width: 0, Height: 0})
	assert.Empty(t, h.logs.String())

	h.surface.configErr = ErrOutOfMemory
	h.machine.Step(Resized{Window: h.window.id, Width: 20, Height: 20})
	assert.Contains(t, h.logs.String(), "reconfigure to 20x20")
	assert.Equal(t, StateRunning, h.machine.State())
}
