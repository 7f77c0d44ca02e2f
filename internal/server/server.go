package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/holidays"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/repository"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

var validate = validator.New()

type Server struct {
	Server      *http.Server
	log         *zerolog.Logger
	db          *sql.DB
	authAPI     *AuthHandler
	eventAPI    *EventHandler
	calendarAPI *CalendarHandler
	settingsAPI *SettingsHandler
	holidayAPI  *HolidayHandler
	tokens      *auth.TokenManager
}

// Options carries the server's collaborators.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	DB           *sql.DB
	Tokens       *auth.TokenManager
	Holidays     *holidays.Client
	Log          *zerolog.Logger
}

func New(opts Options) *Server {
	log := opts.Log

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(opts.DB, *log)
	eventRepo := repository.NewEventRepository(opts.DB, *log)
	calendarRepo := repository.NewCalendarRepository(opts.DB, *log)
	settingsRepo := repository.NewSettingsRepository(opts.DB, *log)

	calendarSvc := service.NewCalendarService(opts.DB, calendarRepo, eventRepo, log)
	eventSvc := service.NewEventService(eventRepo, calendarRepo, log)
	settingsSvc := service.NewSettingsService(settingsRepo, log)

	s := &Server{
		Server: &http.Server{
			Addr:         opts.Addr,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		db:          opts.DB,
		log:         log,
		authAPI:     NewAuthHandler(userRepo, calendarSvc, opts.Tokens, log),
		eventAPI:    NewEventHandler(eventSvc, log),
		calendarAPI: NewCalendarHandler(calendarSvc, log),
		settingsAPI: NewSettingsHandler(settingsSvc, log),
		holidayAPI:  NewHolidayHandler(opts.Holidays, log),
		tokens:      opts.Tokens,
	}

	// Setup routes
	r := mux.NewRouter()
	s.setupRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	s.Server.Handler = c.Handler(r)

	return s
}

func (s *Server) setupRoutes(r *mux.Router) {
	// Use the logging middleware for all routes
	r.Use(s.loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Health check endpoint
	api.HandleFunc("/health", s.healthCheck).Methods("GET")

	// Public routes: registration, login and holiday lookup
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", s.authAPI.Register).Methods("POST")
	authRoutes.HandleFunc("/login", s.authAPI.Login).Methods("POST")

	api.HandleFunc("/holidays", s.holidayAPI.List).Methods("GET")

	// Everything below requires a valid caller identity
	protected := api.PathPrefix("").Subrouter()
	protected.Use(s.tokens.Middleware)

	events := protected.PathPrefix("/events").Subrouter()
	events.HandleFunc("", s.eventAPI.List).Methods("GET")
	events.HandleFunc("", s.eventAPI.Create).Methods("POST")
	events.HandleFunc("/search/{query}", s.eventAPI.Search).Methods("GET")
	events.HandleFunc("/{id}", s.eventAPI.Get).Methods("GET")
	events.HandleFunc("/{id}", s.eventAPI.Update).Methods("PUT")
	events.HandleFunc("/{id}", s.eventAPI.Delete).Methods("DELETE")

	// Grid views consumed by the month/week/day rendering surfaces
	views := protected.PathPrefix("/views").Subrouter()
	views.HandleFunc("/day", s.eventAPI.DayView).Methods("GET")
	views.HandleFunc("/week", s.eventAPI.WeekView).Methods("GET")
	views.HandleFunc("/month", s.eventAPI.MonthView).Methods("GET")

	calendars := protected.PathPrefix("/calendars").Subrouter()
	calendars.HandleFunc("", s.calendarAPI.List).Methods("GET")
	calendars.HandleFunc("", s.calendarAPI.Create).Methods("POST")
	calendars.HandleFunc("/{id}", s.calendarAPI.Update).Methods("PUT")
	calendars.HandleFunc("/{id}", s.calendarAPI.Delete).Methods("DELETE")

	settings := protected.PathPrefix("/settings").Subrouter()
	settings.HandleFunc("", s.settingsAPI.Get).Methods("GET")
	settings.HandleFunc("", s.settingsAPI.Update).Methods("PUT")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

// loggingMiddleware logs all incoming requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer to capture the status code
		rw := &responseWriter{w, http.StatusOK}

		// Process the request
		next.ServeHTTP(rw, r)

		// Log the request
		duration := time.Since(start)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Str("duration", duration.String()).
			Msg("Request processed")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unhealthy","error":"database connection failed"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

// fieldError is one entry of a validation failure report.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeValidationError reports a validation failure as a structured list of
// field and message pairs.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	fields := []fieldError{}
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fieldError{
				Field:   fe.Field(),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"status":  "error",
		"message": "Validation failed",
		"fields":  fields,
	})
}
