package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventFilter narrows ListByUser. A nil/empty CalendarIDs means all
// calendars; the window, when set, is a coarse pre-filter only, the precise
// closed-interval overlap decision belongs to the schedule package.
type EventFilter struct {
	CalendarIDs []uuid.UUID
	From        *time.Time
	To          *time.Time
}

// EventRepository defines the interface for event data access. All lookups
// are ownership-scoped: an event belonging to another user behaves exactly
// like a missing one.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter EventFilter) ([]models.Event, error)
	Search(ctx context.Context, userID uuid.UUID, text string) ([]models.Event, error)
	DeleteByCalendar(ctx context.Context, tx *sql.Tx, userID, calendarID uuid.UUID) error
}

type eventRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, log zerolog.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log,
	}
}

const eventColumns = `id, user_id, calendar_id, title, description, start_time, end_time, all_day, color, location, recurrence, timezone, created_at, updated_at`

// Create inserts a new event into the database
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	recurrence, err := marshalRecurrence(event.Recurrence)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.CalendarID,
		event.Title,
		event.Description,
		event.Start.UTC(),
		event.End.UTC(),
		event.AllDay,
		event.Color,
		event.Location,
		recurrence,
		event.Timezone,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to create event")
		return err
	}

	return nil
}

// GetByID retrieves an event scoped to its owner
func (r *eventRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND user_id = $2
	`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		r.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event by ID")
		return nil, err
	}

	return event, nil
}

// Update persists a fully patched event. The caller loads the event,
// applies the patch and hands the result back here; last write wins.
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET calendar_id = $1, title = $2, description = $3, start_time = $4, end_time = $5,
		    all_day = $6, color = $7, location = $8, recurrence = $9, timezone = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
	`

	recurrence, err := marshalRecurrence(event.Recurrence)
	if err != nil {
		return err
	}

	event.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		event.CalendarID,
		event.Title,
		event.Description,
		event.Start.UTC(),
		event.End.UTC(),
		event.AllDay,
		event.Color,
		event.Location,
		recurrence,
		event.Timezone,
		event.UpdatedAt,
		event.ID,
		event.UserID,
	)

	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to update event")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete removes an event scoped to its owner
func (r *eventRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to get rows affected for event delete")
		return err
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// ListByUser lists a user's events ordered by start time ascending
func (r *eventRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter EventFilter) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if len(filter.CalendarIDs) > 0 {
		query += ` AND calendar_id IN (`
		for i, id := range filter.CalendarIDs {
			if i > 0 {
				query += `, `
			}
			query += fmt.Sprintf("$%d", len(args)+1)
			args = append(args, id)
		}
		query += `)`
	}

	if filter.From != nil && filter.To != nil {
		// Coarse window pre-filter, same closed-interval test the
		// schedule package applies precisely in memory. Timestamps are
		// stored and bound in UTC so the text comparison holds across
		// instants supplied with different offsets.
		query += fmt.Sprintf(` AND start_time <= $%d AND end_time >= $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.To.UTC(), filter.From.UTC())
	}

	query += ` ORDER BY start_time ASC`

	return r.queryEvents(ctx, query, args...)
}

// Search does a case-insensitive substring match over title, description
// and location, ordered by start time ascending
func (r *eventRepository) Search(ctx context.Context, userID uuid.UUID, text string) ([]models.Event, error) {
	// LIKE is case-insensitive for ASCII in SQLite by default.
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1
		  AND (title LIKE $2 ESCAPE '\' OR description LIKE $2 ESCAPE '\' OR location LIKE $2 ESCAPE '\')
		ORDER BY start_time ASC
	`
	pattern := "%" + escapeLike(text) + "%"

	return r.queryEvents(ctx, query, userID, pattern)
}

// DeleteByCalendar removes all of a user's events belonging to one
// calendar, inside the caller's transaction.
func (r *eventRepository) DeleteByCalendar(ctx context.Context, tx *sql.Tx, userID, calendarID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM events WHERE calendar_id = $1 AND user_id = $2`,
		calendarID, userID,
	)
	if err != nil {
		r.log.Error().Err(err).Str("calendar_id", calendarID.String()).Msg("Failed to delete calendar events")
	}
	return err
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query events")
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan event")
			return nil, err
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var recurrence sql.NullString

	err := row.Scan(
		&event.ID,
		&event.UserID,
		&event.CalendarID,
		&event.Title,
		&event.Description,
		&event.Start,
		&event.End,
		&event.AllDay,
		&event.Color,
		&event.Location,
		&recurrence,
		&event.Timezone,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if recurrence.Valid && recurrence.String != "" {
		var rule models.RecurrenceRule
		if err := json.Unmarshal([]byte(recurrence.String), &rule); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence rule: %w", err)
		}
		event.Recurrence = &rule
	}

	return &event, nil
}

// marshalRecurrence encodes an optional recurrence rule as a nullable JSON
// column. Rules are stored verbatim, never expanded.
func marshalRecurrence(rule *models.RecurrenceRule) (sql.NullString, error) {
	if rule == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(rule)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode recurrence rule: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// escapeLike keeps user-supplied search text from being interpreted as
// LIKE wildcards. Pairs with the ESCAPE '\' clause above.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
