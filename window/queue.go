package window

import (
	"github.com/perlw/vksurface/myr"
)

// queue collects events raised by window callbacks between two polls.
type queue struct {
	id      myr.WindowID
	pending []myr.Event
	redraw  bool
}

func (q *queue) push(ev myr.Event) {
	q.pending = append(q.pending, ev)
}

func (q *queue) requestRedraw() {
	q.redraw = true
}

// drain returns the pending events followed by MainEventsCleared and, when
// one was requested since the last drain, a single RedrawRequested.
func (q *queue) drain() []myr.Event {
	events := append(q.pending, myr.MainEventsCleared{})
	q.pending = nil
	if q.redraw {
		q.redraw = false
		events = append(events, myr.RedrawRequested{Window: q.id})
	}
	return events
}

func (q *queue) resized(width, height int) {
	q.push(myr.Resized{Window: q.id, Width: width, Height: height})
}

func (q *queue) scaled(scale float64, width, height int) {
	q.push(myr.ScaleFactorChanged{Window: q.id, Scale: scale, Width: width, Height: height})
}

func (q *queue) closeRequested() {
	q.push(myr.CloseRequested{Window: q.id})
}

func (q *queue) focused(focused bool) {
	q.push(myr.Focused{Window: q.id, Focused: focused})
}
