package service

import (
	"context"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettingsService reads and patches the per-user settings record.
type SettingsService struct {
	settings repository.SettingsRepository
	log      *zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings repository.SettingsRepository, log *zerolog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		log:      log,
	}
}

// Get returns the user's settings, creating them with defaults on first
// read.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	return s.settings.GetOrCreate(ctx, userID)
}

// Update applies a partial patch: nil fields keep their stored value.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, patch *models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Language != nil {
		settings.Language = *patch.Language
	}
	if patch.DateFormat != nil {
		settings.DateFormat = *patch.DateFormat
	}
	if patch.TimeFormat != nil {
		settings.TimeFormat = *patch.TimeFormat
	}
	if patch.TimeZone != nil {
		settings.TimeZone = *patch.TimeZone
	}
	if patch.DefaultEventDuration != nil {
		settings.DefaultEventDuration = *patch.DefaultEventDuration
	}
	if patch.WeekStart != nil {
		settings.WeekStart = *patch.WeekStart
	}
	if patch.ShowWeekends != nil {
		settings.ShowWeekends = *patch.ShowWeekends
	}
	if patch.WorkingHoursStart != nil {
		settings.WorkingHoursStart = *patch.WorkingHoursStart
	}
	if patch.WorkingHoursEnd != nil {
		settings.WorkingHoursEnd = *patch.WorkingHoursEnd
	}
	if patch.Location != nil {
		settings.Location = *patch.Location
	}
	if patch.Notifications != nil {
		settings.Notifications = *patch.Notifications
	}
	if patch.OfflineMode != nil {
		settings.OfflineMode = *patch.OfflineMode
	}

	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
