// Package hud draws the frame driver's counters in the terminal.
package hud

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/perlw/vksurface/myr"
)

// Snapshot is what one panel refresh shows.
type Snapshot struct {
	Adapter string
	State   myr.State
	Config  myr.SurfaceConfig
	Stats   myr.Stats
}

type Panel struct {
	open bool
	last []string
}

func Open() (*Panel, error) {
	if err := termbox.Init(); err != nil {
		return nil, errors.Wrap(err, "init termbox")
	}
	termbox.SetOutputMode(termbox.OutputNormal)
	termbox.HideCursor()
	return &Panel{open: true}, nil
}

// Draw repaints the panel when the snapshot differs from the previous one.
func (p *Panel) Draw(s Snapshot) error {
	if !p.open {
		return nil
	}
	text := lines(s)
	if equalLines(text, p.last) {
		return nil
	}
	p.last = text

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return errors.Wrap(err, "clear terminal")
	}
	width, height := termbox.Size()
	layout(text, width, height, func(x, y int, r rune, header bool) {
		fg := termbox.ColorDefault
		if header {
			fg = termbox.ColorCyan | termbox.AttrBold
		}
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
	})
	return errors.Wrap(termbox.Flush(), "flush terminal")
}

func (p *Panel) Close() {
	if p.open {
		termbox.Close()
		p.open = false
	}
}

func lines(s Snapshot) []string {
	out := []string{
		"vksurface",
		fmt.Sprintf("adapter   %s", s.Adapter),
		fmt.Sprintf("state     %s", s.State),
		fmt.Sprintf("surface   %dx%d %s %s", s.Config.Width, s.Config.Height, s.Config.Format, s.Config.PresentMode),
		fmt.Sprintf("presented %d", s.Stats.Presented),
		fmt.Sprintf("skipped   %d", s.Stats.Skipped),
		fmt.Sprintf("reconfig  %d", s.Stats.Reconfigurations),
	}
	if s.Stats.LastError != "" {
		out = append(out, fmt.Sprintf("last err  %s", s.Stats.LastError))
	}
	return out
}

// layout places text one line per row, clipped to width by display cells.
// The first line is the header.
func layout(text []string, width, height int, set func(x, y int, r rune, header bool)) {
	for y, line := range text {
		if y >= height {
			return
		}
		x := 0
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if x+w > width {
				break
			}
			set(x, y, r, y == 0)
			x += w
		}
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
