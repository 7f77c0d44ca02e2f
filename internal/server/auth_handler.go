package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/models"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users     repository.UserRepository
	calendars *service.CalendarService
	tokens    *auth.TokenManager
	log       *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users repository.UserRepository, calendars *service.CalendarService, tokens *auth.TokenManager, log *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		calendars: calendars,
		tokens:    tokens,
		log:       log,
	}
}

// Register creates an account and its default calendar, then issues a
// token so the client can start working immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		h.log.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if _, err := h.calendars.CreateDefault(r.Context(), user.ID); err != nil {
		// The account exists; a missing default calendar is recoverable
		// by creating one explicitly, so don't fail the registration.
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create default calendar")
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue token")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.log.Info().Str("user_id", user.ID.String()).Msg("User registered")
	writeJSON(w, http.StatusCreated, models.LoginResponse{Token: token, UserID: user.ID})
}

// Login verifies a credential and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.log.Error().Err(err).Msg("Failed to look up user")
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue token")
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, UserID: user.ID})
}
