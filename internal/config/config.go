package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server struct {
		Host         string
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	Database struct {
		Path         string
		ConnectTries int
		ConnectDelay time.Duration
	}
	JWT struct {
		Secret     string
		Expiration time.Duration
	}
	Holidays struct {
		BaseURL     string
		CountryCode string
		Timeout     time.Duration
	}
	LogLevel string
}

func Load() *Config {
	cfg := &Config{}

	// Server configuration
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Port = getEnv("SERVER_PORT", "5000")
	cfg.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", "10s")
	cfg.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", "10s")
	cfg.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s")

	// Database configuration
	cfg.Database.Path = getEnv("DB_PATH", "./data/calendar.db")
	cfg.Database.ConnectTries = getEnvAsInt("DB_CONNECT_TRIES", 5)
	cfg.Database.ConnectDelay = getEnvAsDuration("DB_CONNECT_DELAY", "3s")

	// Auth configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "change-me-in-production")
	cfg.JWT.Expiration = getEnvAsDuration("JWT_EXPIRATION", "168h")

	// Holiday lookup configuration
	cfg.Holidays.BaseURL = getEnv("HOLIDAYS_BASE_URL", "https://date.nager.at")
	cfg.Holidays.CountryCode = getEnv("HOLIDAYS_COUNTRY", "IN")
	cfg.Holidays.Timeout = getEnvAsDuration("HOLIDAYS_TIMEOUT", "10s")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	val := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0)
	}
	return duration
}

func getEnvAsInt(key string, defaultValue int) int {
	val := getEnv(key, strconv.Itoa(defaultValue))
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return intVal
}
