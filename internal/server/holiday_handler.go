package server

import (
	"errors"
	"net/http"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/holidays"
	"github.com/rs/zerolog"
)

// HolidayHandler proxies the public-holiday lookup.
type HolidayHandler struct {
	client *holidays.Client
	log    *zerolog.Logger
}

// NewHolidayHandler creates a new HolidayHandler
func NewHolidayHandler(client *holidays.Client, log *zerolog.Logger) *HolidayHandler {
	return &HolidayHandler{
		client: client,
		log:    log,
	}
}

// List returns the public holidays for the current year. Upstream failures
// are passed straight to the caller: no retry, no cached fallback.
func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.CurrentYear(r.Context())
	if err != nil {
		if errors.Is(err, holidays.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Holidays not found for the current year")
			return
		}
		h.log.Error().Err(err).Msg("Holiday lookup failed")
		writeError(w, http.StatusInternalServerError, "Holiday source unavailable")
		return
	}

	if result == nil {
		result = []holidays.Holiday{}
	}
	writeJSON(w, http.StatusOK, result)
}
