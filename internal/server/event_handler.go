package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// EventHandler handles HTTP requests related to events.
type EventHandler struct {
	svc *service.EventService
	log *zerolog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(svc *service.EventService, log *zerolog.Logger) *EventHandler {
	return &EventHandler{
		svc: svc,
		log: log,
	}
}

// List returns the caller's events, optionally narrowed by ?start, ?end
// (RFC 3339 instants) and ?calendarIds (comma-separated).
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing caller identity")
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events")
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	if events == nil {
		events = []models.EventResponse{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get returns a single event by id.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event")
		writeError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Create creates a new event on one of the caller's calendars.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate request
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	event, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrCalendarNotFound) {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to create event")
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Update applies a partial patch to an event.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	var patch models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(patch); err != nil {
		writeValidationError(w, err)
		return
	}

	event, err := h.svc.Update(r.Context(), userID, id, &patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, repository.ErrCalendarNotFound):
			writeError(w, http.StatusNotFound, "Calendar not found")
		default:
			h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to update event")
			writeError(w, http.StatusInternalServerError, "Failed to update event")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Delete removes an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
		writeError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// Search matches the path query against title, description and location.
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	query := mux.Vars(r)["query"]

	events, err := h.svc.Search(r.Context(), userID, query)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to search events")
		writeError(w, http.StatusInternalServerError, "Failed to search events")
		return
	}

	if events == nil {
		events = []models.EventResponse{}
	}
	writeJSON(w, http.StatusOK, events)
}

// DayView returns the positioned day column for ?day (RFC 3339, defaults
// to today UTC).
func (h *EventHandler) DayView(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	day, err := parseDayParam(r, "day")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	col, err := h.svc.Day(r.Context(), userID, day)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute day view")
		writeError(w, http.StatusInternalServerError, "Failed to compute day view")
		return
	}

	writeJSON(w, http.StatusOK, col)
}

// WeekView returns seven positioned day columns starting at ?start.
func (h *EventHandler) WeekView(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	start, err := parseDayParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	columns, err := h.svc.Week(r.Context(), userID, start)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute week view")
		writeError(w, http.StatusInternalServerError, "Failed to compute week view")
		return
	}

	writeJSON(w, http.StatusOK, columns)
}

// MonthView returns capped month-grid cells for ?start and ?days
// (defaults: first of the current month, 42 cells).
func (h *EventHandler) MonthView(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	first, err := parseDayParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.URL.Query().Get("start") == "" {
		first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())
	}

	days := 42
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 42 {
			writeError(w, http.StatusBadRequest, "days must be an integer between 1 and 42")
			return
		}
		days = n
	}

	cells, err := h.svc.Month(r.Context(), userID, first, days)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute month view")
		writeError(w, http.StatusInternalServerError, "Failed to compute month view")
		return
	}

	writeJSON(w, http.StatusOK, cells)
}

func parseListFilter(r *http.Request) (service.ListFilter, error) {
	var filter service.ListFilter
	query := r.URL.Query()

	start := query.Get("start")
	end := query.Get("end")
	if start != "" && end != "" {
		from, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return filter, errors.New("start must be an RFC 3339 instant")
		}
		to, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return filter, errors.New("end must be an RFC 3339 instant")
		}
		filter.From = &from
		filter.To = &to
	}

	if raw := query.Get("calendarIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return filter, errors.New("calendarIds must be a comma-separated list of IDs")
			}
			filter.CalendarIDs = append(filter.CalendarIDs, id)
		}
	}

	return filter, nil
}

func parseDayParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Also accept a bare date.
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, errors.New(name + " must be an RFC 3339 instant or YYYY-MM-DD date")
		}
	}
	return day, nil
}
