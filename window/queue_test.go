package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perlw/vksurface/myr"
)

func TestDrainOrder(t *testing.T) {
	q := queue{id: 3}
	q.resized(640, 480)
	q.focused(true)
	q.closeRequested()

	assert.Equal(t, []myr.Event{
		myr.Resized{Window: 3, Width: 640, Height: 480},
		myr.Focused{Window: 3, Focused: true},
		myr.CloseRequested{Window: 3},
		myr.MainEventsCleared{},
	}, q.drain())
	assert.Equal(t, []myr.Event{myr.MainEventsCleared{}}, q.drain())
}

func TestRedrawCoalesced(t *testing.T) {
	q := queue{id: 3}
	q.requestRedraw()
	q.requestRedraw()
	q.scaled(2, 1600, 1200)

	assert.Equal(t, []myr.Event{
		myr.ScaleFactorChanged{Window: 3, Scale: 2, Width: 1600, Height: 1200},
		myr.MainEventsCleared{},
		myr.RedrawRequested{Window: 3},
	}, q.drain())
	assert.Equal(t, []myr.Event{myr.MainEventsCleared{}}, q.drain())
}
