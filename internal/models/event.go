package models

import (
	"time"

	"github.com/google/uuid"
)

// RecurrenceRule describes how an event repeats. Rules are stored verbatim
// and handed back to clients; nothing in this service expands them into
// concrete occurrences.
type RecurrenceRule struct {
	Frequency  string     `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	Interval   int        `json:"interval,omitempty" validate:"omitempty,min=1"`
	Count      *int       `json:"count,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
	ByDay      []string   `json:"byDay,omitempty" validate:"omitempty,dive,oneof=SU MO TU WE TH FR SA"`
	ByMonthDay []int      `json:"byMonthDay,omitempty"`
	ByMonth    []int      `json:"byMonth,omitempty"`
}

// Event represents a calendar event owned by a single user.
type Event struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	CalendarID  uuid.UUID       `json:"calendar_id" db:"calendar_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Start       time.Time       `json:"start" db:"start"`
	End         time.Time       `json:"end" db:"end"`
	AllDay      bool            `json:"all_day" db:"all_day"`
	Color       string          `json:"color" db:"color"`
	Location    string          `json:"location" db:"location"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty" db:"recurrence"`
	Timezone    string          `json:"timezone" db:"timezone"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// CalendarRef is the denormalized slice of the owning calendar attached to
// event responses for display purposes.
type CalendarRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Visible bool      `json:"visible"`
}

// EventResponse is an event with its calendar reference resolved.
type EventResponse struct {
	Event
	Calendar CalendarRef `json:"calendar"`
}

// CreateEventRequest represents the data needed to create a new event.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Start       time.Time       `json:"start" validate:"required"`
	End         time.Time       `json:"end" validate:"required"`
	CalendarID  uuid.UUID       `json:"calendar_id" validate:"required"`
	AllDay      bool            `json:"all_day"`
	Color       string          `json:"color"`
	Location    string          `json:"location"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty"`
	Timezone    string          `json:"timezone"`
}

// UpdateEventRequest carries a partial patch: nil fields are left unchanged,
// non-nil fields are applied. Description and Location accept empty strings
// so a client can explicitly clear them.
type UpdateEventRequest struct {
	Title           *string         `json:"title,omitempty" validate:"omitempty,min=1"`
	Description     *string         `json:"description,omitempty"`
	Start           *time.Time      `json:"start,omitempty"`
	End             *time.Time      `json:"end,omitempty"`
	CalendarID      *uuid.UUID      `json:"calendar_id,omitempty"`
	AllDay          *bool           `json:"all_day,omitempty"`
	Color           *string         `json:"color,omitempty" validate:"omitempty,min=1"`
	Location        *string         `json:"location,omitempty"`
	Recurrence      *RecurrenceRule `json:"recurrence,omitempty"`
	ClearRecurrence bool            `json:"clear_recurrence,omitempty"`
	Timezone        *string         `json:"timezone,omitempty" validate:"omitempty,min=1"`
}
