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

// CalendarRepository defines the interface for calendar data access. All
// lookups are ownership-scoped.
type CalendarRepository interface {
	Create(ctx context.Context, calendar *models.Calendar) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Calendar, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Calendar, error)
	Update(ctx context.Context, calendar *models.Calendar) error
	Delete(ctx context.Context, tx *sql.Tx, userID, id uuid.UUID) error
}

type calendarRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *sql.DB, log zerolog.Logger) CalendarRepository {
	return &calendarRepository{
		db:  db,
		log: log,
	}
}

// Create inserts a new calendar into the database
func (r *calendarRepository) Create(ctx context.Context, calendar *models.Calendar) error {
	query := `
		INSERT INTO calendars (id, user_id, name, color, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	calendar.CreatedAt = now
	calendar.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		calendar.ID,
		calendar.UserID,
		calendar.Name,
		calendar.Color,
		calendar.Visible,
		calendar.CreatedAt,
		calendar.UpdatedAt,
	)

	if err != nil {
		r.log.Error().Err(err).Str("calendar_id", calendar.ID.String()).Msg("Failed to create calendar")
		return err
	}

	return nil
}

// GetByID retrieves a calendar scoped to its owner
func (r *calendarRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Calendar, error) {
	query := `
		SELECT id, user_id, name, color, visible, created_at, updated_at
		FROM calendars
		WHERE id = $1 AND user_id = $2
	`

	var calendar models.Calendar
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&calendar.ID,
		&calendar.UserID,
		&calendar.Name,
		&calendar.Color,
		&calendar.Visible,
		&calendar.CreatedAt,
		&calendar.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCalendarNotFound
		}
		r.log.Error().Err(err).Str("calendar_id", id.String()).Msg("Failed to get calendar by ID")
		return nil, err
	}

	return &calendar, nil
}

// ListByUser lists a user's calendars in creation order
func (r *calendarRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Calendar, error) {
	query := `
		SELECT id, user_id, name, color, visible, created_at, updated_at
		FROM calendars
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list calendars")
		return nil, err
	}
	defer rows.Close()

	var calendars []models.Calendar
	for rows.Next() {
		var calendar models.Calendar
		if err := rows.Scan(
			&calendar.ID,
			&calendar.UserID,
			&calendar.Name,
			&calendar.Color,
			&calendar.Visible,
			&calendar.CreatedAt,
			&calendar.UpdatedAt,
		); err != nil {
			r.log.Error().Err(err).Msg("Failed to scan calendar")
			return nil, err
		}
		calendars = append(calendars, calendar)
	}

	return calendars, rows.Err()
}

// Update persists a patched calendar
func (r *calendarRepository) Update(ctx context.Context, calendar *models.Calendar) error {
	query := `
		UPDATE calendars
		SET name = $1, color = $2, visible = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`

	calendar.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		calendar.Name,
		calendar.Color,
		calendar.Visible,
		calendar.UpdatedAt,
		calendar.ID,
		calendar.UserID,
	)

	if err != nil {
		r.log.Error().Err(err).Str("calendar_id", calendar.ID.String()).Msg("Failed to update calendar")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCalendarNotFound
	}

	return nil
}

// Delete removes a calendar scoped to its owner, inside the caller's
// transaction so the cascade to its events stays atomic.
func (r *calendarRepository) Delete(ctx context.Context, tx *sql.Tx, userID, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx,
		`DELETE FROM calendars WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		r.log.Error().Err(err).Str("calendar_id", id.String()).Msg("Failed to delete calendar")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCalendarNotFound
	}

	return nil
}
