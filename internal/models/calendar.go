package models

import (
	"time"

	"github.com/google/uuid"
)

// Calendar groups events under a name and color. Every user gets a default
// calendar on registration; additional calendars are created on demand.
type Calendar struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Visible   bool      `json:"visible" db:"visible"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCalendarRequest represents the data needed to create a new calendar.
type CreateCalendarRequest struct {
	Name    string `json:"name" validate:"required"`
	Color   string `json:"color"`
	Visible *bool  `json:"visible,omitempty"`
}

// UpdateCalendarRequest carries a partial patch for a calendar.
type UpdateCalendarRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Color   *string `json:"color,omitempty" validate:"omitempty,min=1"`
	Visible *bool   `json:"visible,omitempty"`
}
