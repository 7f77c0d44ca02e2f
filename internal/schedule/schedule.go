// Package schedule decides which events are visible in a time window and
// where timed events sit on a day column. Everything here is a pure
// computation over caller-supplied data: no I/O, no mutation of inputs.
package schedule

import (
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
)

const (
	// MinEventHeight is the floor for an event's rendered height as a
	// fraction of the day column. Without it a sub-30-minute event would
	// render as an imperceptible sliver.
	MinEventHeight = 0.02

	// MaxVisiblePerCell caps how many events a month-grid cell shows
	// before collapsing the rest into a "+N more" count.
	MaxVisiblePerCell = 3
)

// Overlapping returns the events whose [Start, End] interval intersects the
// closed window [from, to]. An event overlaps iff Start <= to && End >= from;
// the "starts inside", "ends inside" and "spans the window" cases all reduce
// to that single test, so nothing is double-counted. Input order is
// preserved and the input slice is never modified. A zero-duration event is
// included when its instant lies inside the window.
func Overlapping(events []models.Event, from, to time.Time) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if Overlaps(ev, from, to) {
			out = append(out, ev)
		}
	}
	return out
}

// Overlaps reports whether a single event intersects the closed window
// [from, to].
func Overlaps(ev models.Event, from, to time.Time) bool {
	return !ev.Start.After(to) && !ev.End.Before(from)
}

// Position is the normalized placement of a timed event on a day column.
// Top and Height are fractions of a 24-hour column in [0, 1], so any
// rendering surface can scale them.
type Position struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Place computes the vertical position of an event on the column of the day
// given by dayStart. The event is positioned against its own start day:
// multi-day timed events are not split across columns, they simply run off
// the bottom of the one they start in.
func Place(ev models.Event, dayStart time.Time) Position {
	top := ev.Start.Sub(dayStart).Hours() / 24
	if top < 0 {
		top = 0
	}

	height := ev.End.Sub(ev.Start).Hours() / 24
	if height < MinEventHeight {
		height = MinEventHeight
	}

	return Position{Top: top, Height: height}
}

// DayCell is the capped event list for one grid cell plus the count of
// events hidden behind the "+N more" link. The element type is free so a
// cell can hold bare events or events already joined with their calendar.
type DayCell[E any] struct {
	Visible []E `json:"visible"`
	Hidden  int `json:"hidden"`
}

// CapDay keeps the first maxVisible events in input order and counts the
// rest. len(Visible) + Hidden always equals len(events): an event dropped
// from display is never dropped from the count.
func CapDay[E any](events []E, maxVisible int) DayCell[E] {
	if len(events) <= maxVisible {
		return DayCell[E]{Visible: events, Hidden: 0}
	}
	return DayCell[E]{Visible: events[:maxVisible], Hidden: len(events) - maxVisible}
}
