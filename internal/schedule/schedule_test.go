package schedule

import (
	"math"
	"testing"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return ts
}

func ev(t *testing.T, title, start, end string) models.Event {
	t.Helper()
	return models.Event{Title: title, Start: mustParse(t, start), End: mustParse(t, end)}
}

func TestOverlapping(t *testing.T) {
	windowStart := mustParse(t, "2024-06-10T00:00:00Z")
	windowEnd := mustParse(t, "2024-06-10T23:59:00Z")

	tests := []struct {
		name  string
		event models.Event
		want  bool
	}{
		{"inside window", ev(t, "a", "2024-06-10T09:00:00Z", "2024-06-10T10:00:00Z"), true},
		{"spans midnight into window", ev(t, "a", "2024-06-09T23:00:00Z", "2024-06-10T01:00:00Z"), true},
		{"runs out past window end", ev(t, "a", "2024-06-10T23:00:00Z", "2024-06-11T01:00:00Z"), true},
		{"spans the whole window", ev(t, "a", "2024-06-09T00:00:00Z", "2024-06-12T00:00:00Z"), true},
		{"entirely before", ev(t, "a", "2024-06-09T08:00:00Z", "2024-06-09T09:00:00Z"), false},
		{"entirely after", ev(t, "a", "2024-06-11T08:00:00Z", "2024-06-11T09:00:00Z"), false},
		{"ends exactly at window start", ev(t, "a", "2024-06-09T20:00:00Z", "2024-06-10T00:00:00Z"), true},
		{"starts exactly at window end", ev(t, "a", "2024-06-10T23:59:00Z", "2024-06-11T02:00:00Z"), true},
		{"zero duration inside", ev(t, "a", "2024-06-10T12:00:00Z", "2024-06-10T12:00:00Z"), true},
		{"zero duration outside", ev(t, "a", "2024-06-11T12:00:00Z", "2024-06-11T12:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.event, windowStart, windowEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlappingWeekWindow(t *testing.T) {
	from := mustParse(t, "2024-06-10T00:00:00Z")
	to := mustParse(t, "2024-06-16T23:59:00Z")

	before := ev(t, "before", "2024-06-05T00:00:00Z", "2024-06-08T00:00:00Z")
	inside := ev(t, "inside", "2024-06-12T09:00:00Z", "2024-06-12T10:00:00Z")

	got := Overlapping([]models.Event{before, inside}, from, to)
	if len(got) != 1 || got[0].Title != "inside" {
		t.Fatalf("Overlapping() = %v, want only the in-window event", got)
	}
}

func TestOverlappingPreservesOrderAndInput(t *testing.T) {
	from := mustParse(t, "2024-06-10T00:00:00Z")
	to := mustParse(t, "2024-06-10T23:59:00Z")

	events := []models.Event{
		ev(t, "first", "2024-06-10T15:00:00Z", "2024-06-10T16:00:00Z"),
		ev(t, "skipped", "2024-06-12T09:00:00Z", "2024-06-12T10:00:00Z"),
		ev(t, "second", "2024-06-10T08:00:00Z", "2024-06-10T09:00:00Z"),
	}

	got := Overlapping(events, from, to)
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("Overlapping() did not preserve input order: %v", got)
	}
	if events[1].Title != "skipped" {
		t.Fatal("Overlapping() mutated its input")
	}
}

func TestPlace(t *testing.T) {
	dayStart := mustParse(t, "2024-06-10T00:00:00Z")

	t.Run("mid morning hour", func(t *testing.T) {
		pos := Place(ev(t, "a", "2024-06-10T09:30:00Z", "2024-06-10T11:30:00Z"), dayStart)
		if math.Abs(pos.Top-9.5/24) > 1e-9 {
			t.Errorf("Top = %v, want %v", pos.Top, 9.5/24)
		}
		if math.Abs(pos.Height-2.0/24) > 1e-9 {
			t.Errorf("Height = %v, want %v", pos.Height, 2.0/24)
		}
	})

	t.Run("zero duration gets floor height", func(t *testing.T) {
		pos := Place(ev(t, "a", "2024-06-10T12:00:00Z", "2024-06-10T12:00:00Z"), dayStart)
		if pos.Height != MinEventHeight {
			t.Errorf("Height = %v, want floor %v", pos.Height, MinEventHeight)
		}
	})

	t.Run("short event gets floor height", func(t *testing.T) {
		pos := Place(ev(t, "a", "2024-06-10T12:00:00Z", "2024-06-10T12:15:00Z"), dayStart)
		if pos.Height != MinEventHeight {
			t.Errorf("Height = %v, want floor %v", pos.Height, MinEventHeight)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		// Started the previous day; clamped to the top of this column.
		pos := Place(ev(t, "a", "2024-06-09T23:00:00Z", "2024-06-10T01:00:00Z"), dayStart)
		if pos.Top < 0 || pos.Height < 0 {
			t.Errorf("Place() = %+v, want non-negative offsets", pos)
		}
	})
}

func TestCapDay(t *testing.T) {
	mk := func(n int) []models.Event {
		events := make([]models.Event, n)
		for i := range events {
			events[i] = ev(t, string(rune('a'+i)), "2024-06-10T09:00:00Z", "2024-06-10T10:00:00Z")
		}
		return events
	}

	for _, n := range []int{0, 1, 3, 10} {
		cell := CapDay(mk(n), MaxVisiblePerCell)
		if len(cell.Visible) > MaxVisiblePerCell {
			t.Errorf("n=%d: %d visible, cap is %d", n, len(cell.Visible), MaxVisiblePerCell)
		}
		if len(cell.Visible)+cell.Hidden != n {
			t.Errorf("n=%d: visible %d + hidden %d != %d", n, len(cell.Visible), cell.Hidden, n)
		}
	}

	t.Run("keeps first three in input order", func(t *testing.T) {
		events := mk(5)
		cell := CapDay(events, MaxVisiblePerCell)
		if cell.Hidden != 2 {
			t.Fatalf("Hidden = %d, want 2", cell.Hidden)
		}
		for i, want := range []string{"a", "b", "c"} {
			if cell.Visible[i].Title != want {
				t.Errorf("Visible[%d] = %q, want %q", i, cell.Visible[i].Title, want)
			}
		}
	})
}
