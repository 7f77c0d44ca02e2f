package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/auth"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/config"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/database"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/holidays"
	"github.com/Sameermishra123/scalar-assignment-google-calender-clone/internal/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	godotenv.Load()

	// Initialize logger with console writer for better formatting in containers
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Logger()

	// Set the global logger
	zerolog.SetGlobalLevel(logLevel(os.Getenv("LOG_LEVEL")))
	zerolog.DefaultContextLogger = &logger

	// Load configuration
	cfg := config.Load()

	// Initialize database, retrying with a fixed delay before giving up
	db, err := connectDatabase(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	holidayClient := holidays.NewClient(cfg.Holidays.BaseURL, cfg.Holidays.CountryCode, cfg.Holidays.Timeout, &logger)

	// Create and start server
	srv := server.New(server.Options{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		DB:           db.DB(),
		Tokens:       tokens,
		Holidays:     holidayClient,
		Log:          &logger,
	})

	// Channel to listen for errors from server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for an error or interrupt signal
	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Stop(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}

// connectDatabase opens the store, retrying a bounded number of times with
// a fixed delay. A store that never comes up is fatal to the process.
func connectDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.Database, error) {
	var db *database.Database
	var err error

	for attempt := 1; attempt <= cfg.Database.ConnectTries; attempt++ {
		db, err = database.New(cfg.Database.Path)
		if err == nil {
			logger.Info().Str("path", cfg.Database.Path).Msg("Database ready")
			return db, nil
		}

		logger.Error().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", cfg.Database.ConnectTries).
			Msg("Database connection failed")

		if attempt < cfg.Database.ConnectTries {
			time.Sleep(cfg.Database.ConnectDelay)
		}
	}

	return nil, err
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
