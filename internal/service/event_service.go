package service

import (
	"context"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/schedule"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultTimezone is applied when an event draft carries no timezone label.
const defaultTimezone = "GMT+05:30"

// EventService ties events to calendars: it enforces ownership and
// referential integrity around the schedule engine. It is the only place
// that knows an event's color defaults to its calendar's.
type EventService struct {
	events    repository.EventRepository
	calendars repository.CalendarRepository
	log       *zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(events repository.EventRepository, calendars repository.CalendarRepository, log *zerolog.Logger) *EventService {
	return &EventService{
		events:    events,
		calendars: calendars,
		log:       log,
	}
}

// ListFilter narrows List. A nil From/To pair means no window; CalendarIDs
// empty means all of the user's calendars.
type ListFilter struct {
	From        *time.Time
	To          *time.Time
	CalendarIDs []uuid.UUID
}

// List returns the user's events, optionally narrowed to a set of calendars
// and a visible window, ordered by start ascending. The repository applies
// a coarse window pre-filter; the schedule engine makes the final
// closed-interval overlap decision.
func (s *EventService) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.EventResponse, error) {
	events, err := s.events.ListByUser(ctx, userID, repository.EventFilter{
		CalendarIDs: filter.CalendarIDs,
		From:        filter.From,
		To:          filter.To,
	})
	if err != nil {
		return nil, err
	}

	if filter.From != nil && filter.To != nil {
		events = schedule.Overlapping(events, *filter.From, *filter.To)
	}

	return s.attachCalendars(ctx, userID, events)
}

// Get returns a single event scoped to its owner.
func (s *EventService) Get(ctx context.Context, userID, id uuid.UUID) (*models.EventResponse, error) {
	event, err := s.events.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, userID, *event)
}

// Create validates the draft's calendar reference against the caller's
// ownership, fills in the calendar's color when the draft omits one, and
// persists the event.
func (s *EventService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateEventRequest) (*models.EventResponse, error) {
	calendar, err := s.calendars.GetByID(ctx, userID, req.CalendarID)
	if err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = calendar.Color
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}

	event := &models.Event{
		ID:          uuid.New(),
		UserID:      userID,
		CalendarID:  req.CalendarID,
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		AllDay:      req.AllDay,
		Color:       color,
		Location:    req.Location,
		Recurrence:  req.Recurrence,
		Timezone:    timezone,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID.String()).Str("user_id", userID.String()).Msg("Event created")
	return &models.EventResponse{Event: *event, Calendar: calendarRef(calendar)}, nil
}

// Update loads the event scoped to its owner, applies the partial patch
// (nil fields untouched) and persists the result. A calendar change is
// re-validated against the caller's ownership.
func (s *EventService) Update(ctx context.Context, userID, id uuid.UUID, patch *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.events.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Start != nil {
		event.Start = *patch.Start
	}
	if patch.End != nil {
		event.End = *patch.End
	}
	if patch.AllDay != nil {
		event.AllDay = *patch.AllDay
	}
	if patch.Color != nil {
		event.Color = *patch.Color
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Recurrence != nil {
		event.Recurrence = patch.Recurrence
	} else if patch.ClearRecurrence {
		event.Recurrence = nil
	}
	if patch.Timezone != nil {
		event.Timezone = *patch.Timezone
	}
	if patch.CalendarID != nil && *patch.CalendarID != event.CalendarID {
		if _, err := s.calendars.GetByID(ctx, userID, *patch.CalendarID); err != nil {
			return nil, err
		}
		event.CalendarID = *patch.CalendarID
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.resolve(ctx, userID, *event)
}

// Delete removes the event scoped to its owner. A second delete of the same
// id reports not found.
func (s *EventService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.events.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id.String()).Str("user_id", userID.String()).Msg("Event deleted")
	return nil
}

// Search matches text case-insensitively against title, description and
// location, ordered by start ascending.
func (s *EventService) Search(ctx context.Context, userID uuid.UUID, text string) ([]models.EventResponse, error) {
	events, err := s.events.Search(ctx, userID, text)
	if err != nil {
		return nil, err
	}
	return s.attachCalendars(ctx, userID, events)
}

// PositionedEvent is a timed event with its computed day-column placement.
type PositionedEvent struct {
	models.EventResponse
	Position schedule.Position `json:"position"`
}

// DayColumn is one rendered day: its timed events placed on the 24-hour
// column plus the all-day events pinned above it.
type DayColumn struct {
	Day    time.Time              `json:"day"`
	AllDay []models.EventResponse `json:"all_day"`
	Timed  []PositionedEvent      `json:"timed"`
}

// Day computes the day-view column for one day: every event overlapping
// [dayStart, dayStart+24h) selected, timed ones positioned against their
// own start day.
func (s *EventService) Day(ctx context.Context, userID uuid.UUID, dayStart time.Time) (*DayColumn, error) {
	dayEnd := dayStart.Add(24*time.Hour - time.Minute)
	events, err := s.List(ctx, userID, ListFilter{From: &dayStart, To: &dayEnd})
	if err != nil {
		return nil, err
	}

	col := &DayColumn{Day: dayStart}
	for _, ev := range events {
		if ev.AllDay {
			col.AllDay = append(col.AllDay, ev)
			continue
		}
		start := startOfDay(ev.Start, dayStart.Location())
		col.Timed = append(col.Timed, PositionedEvent{
			EventResponse: ev,
			Position:      schedule.Place(ev.Event, start),
		})
	}
	return col, nil
}

// Week computes seven consecutive day columns starting at weekStart.
func (s *EventService) Week(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]DayColumn, error) {
	columns := make([]DayColumn, 0, 7)
	for i := 0; i < 7; i++ {
		col, err := s.Day(ctx, userID, weekStart.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		columns = append(columns, *col)
	}
	return columns, nil
}

// MonthCell is one month-grid cell: at most schedule.MaxVisiblePerCell
// events plus the count hidden behind "+N more".
type MonthCell struct {
	Day     time.Time              `json:"day"`
	Visible []models.EventResponse `json:"visible"`
	Hidden  int                    `json:"hidden"`
}

// Month computes the month-grid cells for the days [first, first+days).
// Each cell's event list is capped at three with an overflow count, so
// visible plus hidden always totals the day's full overlapping set.
func (s *EventService) Month(ctx context.Context, userID uuid.UUID, first time.Time, days int) ([]MonthCell, error) {
	from := first
	to := first.AddDate(0, 0, days).Add(-time.Minute)
	events, err := s.List(ctx, userID, ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	cells := make([]MonthCell, 0, days)
	for i := 0; i < days; i++ {
		dayStart := first.AddDate(0, 0, i)
		dayEnd := dayStart.Add(24*time.Hour - time.Minute)

		var dayEvents []models.EventResponse
		for _, ev := range events {
			if schedule.Overlaps(ev.Event, dayStart, dayEnd) {
				dayEvents = append(dayEvents, ev)
			}
		}

		cell := schedule.CapDay(dayEvents, schedule.MaxVisiblePerCell)
		cells = append(cells, MonthCell{Day: dayStart, Visible: cell.Visible, Hidden: cell.Hidden})
	}
	return cells, nil
}

// attachCalendars resolves the denormalized calendar reference for a batch
// of events with a single calendar query.
func (s *EventService) attachCalendars(ctx context.Context, userID uuid.UUID, events []models.Event) ([]models.EventResponse, error) {
	calendars, err := s.calendars.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	refs := make(map[uuid.UUID]models.CalendarRef, len(calendars))
	for i := range calendars {
		refs[calendars[i].ID] = calendarRef(&calendars[i])
	}

	out := make([]models.EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, models.EventResponse{Event: ev, Calendar: refs[ev.CalendarID]})
	}
	return out, nil
}

func (s *EventService) resolve(ctx context.Context, userID uuid.UUID, event models.Event) (*models.EventResponse, error) {
	calendar, err := s.calendars.GetByID(ctx, userID, event.CalendarID)
	if err != nil {
		// The event exists but its calendar is gone; hand the event
		// back with an empty reference rather than failing the read.
		return &models.EventResponse{Event: event}, nil
	}
	return &models.EventResponse{Event: event, Calendar: calendarRef(calendar)}, nil
}

func calendarRef(c *models.Calendar) models.CalendarRef {
	return models.CalendarRef{ID: c.ID, Name: c.Name, Color: c.Color, Visible: c.Visible}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
