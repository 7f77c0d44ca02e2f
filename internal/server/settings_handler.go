package server

import (
	"encoding/json"
	"net/http"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/service"
	"github.com/rs/zerolog"
)

// SettingsHandler handles HTTP requests related to user settings.
type SettingsHandler struct {
	svc *service.SettingsService
	log *zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(svc *service.SettingsService, log *zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
		log: log,
	}
}

// Get returns the caller's settings, creating the defaults on first read.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	settings, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get settings")
		writeError(w, http.StatusInternalServerError, "Failed to get settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Update applies a partial patch to the caller's settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var patch models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(patch); err != nil {
		writeValidationError(w, err)
		return
	}

	settings, err := h.svc.Update(r.Context(), userID, &patch)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update settings")
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
