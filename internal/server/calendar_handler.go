package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CalendarHandler handles HTTP requests related to calendars.
type CalendarHandler struct {
	svc *service.CalendarService
	log *zerolog.Logger
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(svc *service.CalendarService, log *zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		svc: svc,
		log: log,
	}
}

// List returns the caller's calendars in creation order.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	calendars, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list calendars")
		writeError(w, http.StatusInternalServerError, "Failed to list calendars")
		return
	}

	if calendars == nil {
		calendars = []models.Calendar{}
	}
	writeJSON(w, http.StatusOK, calendars)
}

// Create creates a new calendar for the caller.
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.CreateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Calendar name is required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	calendar, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create calendar")
		writeError(w, http.StatusInternalServerError, "Failed to create calendar")
		return
	}

	writeJSON(w, http.StatusCreated, calendar)
}

// Update applies a partial patch to a calendar.
func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar ID format")
		return
	}

	var patch models.UpdateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(patch); err != nil {
		writeValidationError(w, err)
		return
	}

	calendar, err := h.svc.Update(r.Context(), userID, id, &patch)
	if err != nil {
		if errors.Is(err, repository.ErrCalendarNotFound) {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}
		h.log.Error().Err(err).Str("calendar_id", id.String()).Msg("Failed to update calendar")
		writeError(w, http.StatusInternalServerError, "Failed to update calendar")
		return
	}

	writeJSON(w, http.StatusOK, calendar)
}

// Delete removes a calendar together with its events.
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar ID format")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrCalendarNotFound) {
			writeError(w, http.StatusNotFound, "Calendar not found")
			return
		}
		h.log.Error().Err(err).Str("calendar_id", id.String()).Msg("Failed to delete calendar")
		writeError(w, http.StatusInternalServerError, "Failed to delete calendar")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Calendar deleted successfully"})
}
