package myr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawFramePresents(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	assert.Equal(t, FramePresented, h.rt.DrawFrame())
	assert.Equal(t, 1, h.surface.acquired)
	assert.Equal(t, 1, h.device.submitted)
	assert.Equal(t, 1, h.surface.presented)
	assert.Equal(t, []Color{DefaultClearColor}, h.device.cleared)
	assert.Equal(t, 1, h.rt.Stats().Presented)
}

func TestDrawFrameUsesConfiguredClearColor(t *testing.T) {
	surface := &fakeSurface{format: FormatRGBA8Unorm}
	device := &fakeDevice{}
	black := Color{A: 1}
	rt, err := Init(&fakeInstance{adapter: &fakeAdapter{device: device}}, surface, 4, 4, Options{ClearColor: &black})
	require.NoError(t, err)

	require.Equal(t, FramePresented, rt.DrawFrame())
	assert.Equal(t, []Color{black}, device.cleared)
}

func TestDrawFrameRecoversFromLostSurface(t *testing.T) {
	for _, cause := range []error{ErrSurfaceLost, ErrSurfaceOutdated} {
		t.Run(cause.Error(), func(t *testing.T) {
			h, err := newHarness(800, 600)
			require.NoError(t, err)
			before := h.rt.Config()
			h.surface.acquireErrs = []error{errors.Wrap(cause, "vkAcquireNextImageKHR")}

			assert.Equal(t, FrameReconfigured, h.rt.DrawFrame())

			require.Len(t, h.surface.configs, 2)
			assert.Equal(t, before, h.surface.configs[1])
			assert.Equal(t, before, h.rt.Config())
			assert.Zero(t, h.device.submitted)
			assert.Zero(t, h.surface.presented)
			assert.Empty(t, h.device.cleared)

			assert.Equal(t, FramePresented, h.rt.DrawFrame())
		})
	}
}

func TestDrawFrameOutOfMemoryIsFatal(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrOutOfMemory}

	assert.Equal(t, FrameFatal, h.rt.DrawFrame())
	assert.Len(t, h.surface.configs, 1)
	assert.Zero(t, h.surface.presented)
	assert.Contains(t, h.logs.String(), "out of memory")
}

func TestDrawFrameSkipsTransientErrors(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrTimeout}

	assert.Equal(t, FrameSkipped, h.rt.DrawFrame())
	assert.Len(t, h.surface.configs, 1)
	assert.Zero(t, h.surface.presented)
	assert.Contains(t, h.logs.String(), "frame skipped")
	assert.Contains(t, h.logs.String(), "timed out")
	assert.Equal(t, 1, h.rt.Stats().Skipped)
	assert.Contains(t, h.rt.Stats().LastError, "timed out")

	assert.Equal(t, FramePresented, h.rt.DrawFrame())
}

func TestDrawFrameClassifiesPresentErrors(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	h.surface.presentErr = ErrSurfaceOutdated
	assert.Equal(t, FrameReconfigured, h.rt.DrawFrame())
	assert.Len(t, h.surface.configs, 2)

	h.surface.presentErr = ErrOutOfMemory
	assert.Equal(t, FrameFatal, h.rt.DrawFrame())
	assert.Len(t, h.surface.configs, 2)
}

func TestDrawFrameClassifiesSubmitErrors(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.device.submitErr = errors.New("device busy")

	assert.Equal(t, FrameSkipped, h.rt.DrawFrame())
	assert.Zero(t, h.surface.presented)
	assert.Contains(t, h.logs.String(), "submit")
}

func TestDrawFrameLogsFailedRecovery(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)
	h.surface.acquireErrs = []error{ErrSurfaceLost}
	h.surface.configErr = errors.New("swapchain rejected")

	assert.Equal(t, FrameReconfigured, h.rt.DrawFrame())
	assert.Contains(t, h.logs.String(), "swapchain rejected")
}
