package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettingsRepository provides access to the per-user settings row. There is
// no explicit create operation: the row comes into existence with defaults
// on the first read.
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB, log zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		db:  db,
		log: log,
	}
}

const settingsColumns = `id, user_id, language, date_format, time_format, time_zone, default_event_duration, week_start, show_weekends, working_hours_start, working_hours_end, location, notify_email, notify_desktop, offline_mode, created_at, updated_at`

// GetOrCreate returns the user's settings, lazily inserting the defaults
// when no row exists yet.
func (r *settingsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	settings, err := r.get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get settings")
		return nil, err
	}

	defaults := models.DefaultSettings(userID)
	if err := r.insert(ctx, defaults); err != nil {
		r.log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create default settings")
		return nil, err
	}
	return defaults, nil
}

// Update persists a patched settings record
func (r *settingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	query := `
		UPDATE settings
		SET language = $1, date_format = $2, time_format = $3, time_zone = $4,
		    default_event_duration = $5, week_start = $6, show_weekends = $7,
		    working_hours_start = $8, working_hours_end = $9, location = $10,
		    notify_email = $11, notify_desktop = $12, offline_mode = $13, updated_at = $14
		WHERE user_id = $15
	`

	settings.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		settings.Language,
		settings.DateFormat,
		settings.TimeFormat,
		settings.TimeZone,
		settings.DefaultEventDuration,
		settings.WeekStart,
		settings.ShowWeekends,
		settings.WorkingHoursStart,
		settings.WorkingHoursEnd,
		settings.Location,
		settings.Notifications.Email,
		settings.Notifications.Desktop,
		settings.OfflineMode,
		settings.UpdatedAt,
		settings.UserID,
	)

	if err != nil {
		r.log.Error().Err(err).Str("user_id", settings.UserID.String()).Msg("Failed to update settings")
	}
	return err
}

func (r *settingsRepository) get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE user_id = $1`

	var s models.Settings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.Language,
		&s.DateFormat,
		&s.TimeFormat,
		&s.TimeZone,
		&s.DefaultEventDuration,
		&s.WeekStart,
		&s.ShowWeekends,
		&s.WorkingHoursStart,
		&s.WorkingHoursEnd,
		&s.Location,
		&s.Notifications.Email,
		&s.Notifications.Desktop,
		&s.OfflineMode,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) insert(ctx context.Context, s *models.Settings) error {
	query := `
		INSERT INTO settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Language,
		s.DateFormat,
		s.TimeFormat,
		s.TimeZone,
		s.DefaultEventDuration,
		s.WeekStart,
		s.ShowWeekends,
		s.WorkingHoursStart,
		s.WorkingHoursEnd,
		s.Location,
		s.Notifications.Email,
		s.Notifications.Desktop,
		s.OfflineMode,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}
