package models

import (
	"time"

	"github.com/google/uuid"
)

// Notifications holds the per-channel notification toggles.
type Notifications struct {
	Email   bool `json:"email"`
	Desktop bool `json:"desktop"`
}

// Settings is the per-user preference record. Exactly one row exists per
// user; it is created with defaults the first time it is read.
type Settings struct {
	ID                   uuid.UUID     `json:"id" db:"id"`
	UserID               uuid.UUID     `json:"user_id" db:"user_id"`
	Language             string        `json:"language" db:"language"`
	DateFormat           string        `json:"date_format" db:"date_format"`
	TimeFormat           string        `json:"time_format" db:"time_format"`
	TimeZone             string        `json:"time_zone" db:"time_zone"`
	DefaultEventDuration int           `json:"default_event_duration" db:"default_event_duration"`
	WeekStart            string        `json:"week_start" db:"week_start"`
	ShowWeekends         bool          `json:"show_weekends" db:"show_weekends"`
	WorkingHoursStart    string        `json:"working_hours_start" db:"working_hours_start"`
	WorkingHoursEnd      string        `json:"working_hours_end" db:"working_hours_end"`
	Location             string        `json:"location" db:"location"`
	Notifications        Notifications `json:"notifications" db:"notifications"`
	OfflineMode          bool          `json:"offline_mode" db:"offline_mode"`
	CreatedAt            time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings record a user starts out with.
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		ID:                   uuid.New(),
		UserID:               userID,
		Language:             "en",
		DateFormat:           "MM/DD/YYYY",
		TimeFormat:           "h:mm a",
		TimeZone:             "UTC",
		DefaultEventDuration: 60,
		WeekStart:            "sunday",
		ShowWeekends:         true,
		WorkingHoursStart:    "09:00",
		WorkingHoursEnd:      "17:00",
		Location:             "",
		Notifications:        Notifications{Email: true, Desktop: true},
		OfflineMode:          false,
	}
}

// UpdateSettingsRequest carries a partial patch: nil fields are left
// unchanged.
type UpdateSettingsRequest struct {
	Language             *string        `json:"language,omitempty" validate:"omitempty,min=1"`
	DateFormat           *string        `json:"date_format,omitempty" validate:"omitempty,min=1"`
	TimeFormat           *string        `json:"time_format,omitempty" validate:"omitempty,min=1"`
	TimeZone             *string        `json:"time_zone,omitempty" validate:"omitempty,min=1"`
	DefaultEventDuration *int           `json:"default_event_duration,omitempty" validate:"omitempty,min=1"`
	WeekStart            *string        `json:"week_start,omitempty" validate:"omitempty,oneof=sunday monday saturday"`
	ShowWeekends         *bool          `json:"show_weekends,omitempty"`
	WorkingHoursStart    *string        `json:"working_hours_start,omitempty"`
	WorkingHoursEnd      *string        `json:"working_hours_end,omitempty"`
	Location             *string        `json:"location,omitempty"`
	Notifications        *Notifications `json:"notifications,omitempty"`
	OfflineMode          *bool          `json:"offline_mode,omitempty"`
}
