package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultCalendarName  = "My Calendar"
	defaultCalendarColor = "#1a73e8"
)

// CalendarService owns calendar lifecycle, including the cascade that keeps
// events from being orphaned when their calendar goes away.
type CalendarService struct {
	db        *sql.DB
	calendars repository.CalendarRepository
	events    repository.EventRepository
	log       *zerolog.Logger
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(db *sql.DB, calendars repository.CalendarRepository, events repository.EventRepository, log *zerolog.Logger) *CalendarService {
	return &CalendarService{
		db:        db,
		calendars: calendars,
		events:    events,
		log:       log,
	}
}

// List returns the user's calendars in creation order.
func (s *CalendarService) List(ctx context.Context, userID uuid.UUID) ([]models.Calendar, error) {
	return s.calendars.ListByUser(ctx, userID)
}

// Create persists a new calendar with the display defaults filled in.
func (s *CalendarService) Create(ctx context.Context, userID uuid.UUID, req *models.CreateCalendarRequest) (*models.Calendar, error) {
	calendar := &models.Calendar{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    req.Name,
		Color:   req.Color,
		Visible: true,
	}
	if calendar.Color == "" {
		calendar.Color = defaultCalendarColor
	}
	if req.Visible != nil {
		calendar.Visible = *req.Visible
	}

	if err := s.calendars.Create(ctx, calendar); err != nil {
		return nil, err
	}
	s.log.Info().Str("calendar_id", calendar.ID.String()).Str("user_id", userID.String()).Msg("Calendar created")
	return calendar, nil
}

// CreateDefault gives a freshly registered user their starting calendar.
func (s *CalendarService) CreateDefault(ctx context.Context, userID uuid.UUID) (*models.Calendar, error) {
	return s.Create(ctx, userID, &models.CreateCalendarRequest{Name: defaultCalendarName})
}

// Update applies a partial patch to a calendar scoped to its owner.
func (s *CalendarService) Update(ctx context.Context, userID, id uuid.UUID, patch *models.UpdateCalendarRequest) (*models.Calendar, error) {
	calendar, err := s.calendars.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		calendar.Name = *patch.Name
	}
	if patch.Color != nil {
		calendar.Color = *patch.Color
	}
	if patch.Visible != nil {
		calendar.Visible = *patch.Visible
	}

	if err := s.calendars.Update(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// Delete removes a calendar and every event it contains in a single
// transaction.
func (s *CalendarService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.events.DeleteByCalendar(ctx, tx, userID, id); err != nil {
		return err
	}
	if err := s.calendars.Delete(ctx, tx, userID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calendar delete: %w", err)
	}

	s.log.Info().Str("calendar_id", id.String()).Str("user_id", userID.String()).Msg("Calendar deleted with its events")
	return nil
}
