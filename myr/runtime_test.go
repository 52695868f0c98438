package myr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfiguresFromWindowSize(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	want := SurfaceConfig{
		Width:       800,
		Height:      600,
		Format:      FormatBGRA8UnormSrgb,
		PresentMode: PresentModeFifo,
		Usage:       UsageRenderAttachment,
	}
	assert.Equal(t, want, h.rt.Config())
	require.Len(t, h.surface.configs, 1)
	assert.Equal(t, want, h.surface.configs[0])

	require.Len(t, h.adapter.desc, 1)
	assert.Empty(t, h.adapter.desc[0].RequiredFeatures)
	assert.Equal(t, "fake gpu", h.rt.AdapterName())
	assert.Zero(t, h.rt.Stats().Reconfigurations)
}

func TestInitClampsMinimizedWindow(t *testing.T) {
	h, err := newHarness(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.rt.Config().Width)
	assert.Equal(t, uint32(1), h.rt.Config().Height)
}

func TestInitFailures(t *testing.T) {
	cause := errors.New("driver said no")

	tests := []struct {
		name     string
		instance func(*fakeAdapter) *fakeInstance
		surface  *fakeSurface
		want     error
	}{
		{
			name:     "no adapter",
			instance: func(*fakeAdapter) *fakeInstance { return &fakeInstance{err: cause} },
			surface:  &fakeSurface{},
			want:     ErrNoCompatibleAdapter,
		},
		{
			name: "device rejected",
			instance: func(a *fakeAdapter) *fakeInstance {
				a.err = cause
				return &fakeInstance{adapter: a}
			},
			surface: &fakeSurface{},
			want:    ErrDeviceRequestFailed,
		},
		{
			name:     "no format",
			instance: func(a *fakeAdapter) *fakeInstance { return &fakeInstance{adapter: a} },
			surface:  &fakeSurface{noFormat: true},
			want:     ErrNoSupportedFormat,
		},
		{
			name:     "configure rejected",
			instance: func(a *fakeAdapter) *fakeInstance { return &fakeInstance{adapter: a} },
			surface:  &fakeSurface{configErr: cause},
			want:     ErrConfigureFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &fakeAdapter{device: &fakeDevice{}}
			rt, err := Init(tt.instance(adapter), tt.surface, 640, 480, Options{})
			require.Error(t, err)
			assert.Nil(t, rt)
			assert.ErrorIs(t, err, tt.want)

			var ie *InitError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.want, ie.Step)
			if ie.Err != nil {
				assert.ErrorIs(t, err, cause)
				assert.Contains(t, err.Error(), cause.Error())
			}
		})
	}
}

func TestReconfigureClampsEachDimension(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH uint32
	}{
		{0, 0, 1, 1},
		{0, 768, 1, 768},
		{1024, 0, 1024, 1},
		{1, 1, 1, 1},
		{-5, 3, 1, 3},
		{3840, 2160, 3840, 2160},
	}
	for _, tt := range tests {
		h, err := newHarness(800, 600)
		require.NoError(t, err)

		require.NoError(t, h.rt.Reconfigure(tt.w, tt.h))
		got := h.rt.Config()
		assert.Equal(t, tt.wantW, got.Width, "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, got.Height, "%dx%d", tt.w, tt.h)
		assert.Equal(t, got, h.surface.configs[len(h.surface.configs)-1])
		assert.Equal(t, FormatBGRA8UnormSrgb, got.Format)
		assert.Equal(t, PresentModeFifo, got.PresentMode)
	}
}

func TestReconfigureIsIdempotent(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	require.NoError(t, h.rt.Reconfigure(1280, 0))
	once := h.rt.Config()
	require.NoError(t, h.rt.Reconfigure(1280, 0))

	assert.Equal(t, once, h.rt.Config())
	require.Len(t, h.surface.configs, 3)
	assert.Equal(t, h.surface.configs[1], h.surface.configs[2])
}

func TestReconfigureReturnsConfigureError(t *testing.T) {
	h, err := newHarness(800, 600)
	require.NoError(t, err)

	h.surface.configErr = ErrSurfaceOutdated
	err = h.rt.Reconfigure(10, 10)
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.Equal(t, uint32(10), h.rt.Config().Width)
}
