package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppEnv            = "dev"
	defaultPort              = "8080"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultJWTAccessTTL      = "24h"
	defaultWindowStart       = "2022-05-10T00:00:00Z"
	defaultWindowEnd         = "2022-05-13T23:59:59.999Z"
	defaultMaxActiveBookings = "3"
)

// BookingConfig carries the admission rules for the booking engine. The
// allowed window and quota are deployment settings, never literals inside
// the validation path.
type BookingConfig struct {
	// WindowStart and WindowEnd bound acceptable booking dates, inclusive
	// on both ends.
	WindowStart time.Time
	WindowEnd   time.Time
	// MaxActiveBookings is the number of concurrent bookings a non-admin
	// user may hold.
	MaxActiveBookings int
}

type Config struct {
	AppEnv       string
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration
	Booking      BookingConfig
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "jobfair.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.Booking.WindowStart, err = parseTimeEnv("BOOKING_WINDOW_START", defaultWindowStart)
	if err != nil {
		return nil, err
	}
	cfg.Booking.WindowEnd, err = parseTimeEnv("BOOKING_WINDOW_END", defaultWindowEnd)
	if err != nil {
		return nil, err
	}
	cfg.Booking.MaxActiveBookings, err = parseIntEnv("MAX_ACTIVE_BOOKINGS", defaultMaxActiveBookings)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if !cfg.Booking.WindowEnd.After(cfg.Booking.WindowStart) {
		return fmt.Errorf("BOOKING_WINDOW_END must be after BOOKING_WINDOW_START")
	}
	if cfg.Booking.MaxActiveBookings <= 0 {
		return fmt.Errorf("MAX_ACTIVE_BOOKINGS must be > 0")
	}
	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseTimeEnv(name, fallback string) (time.Time, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return t.UTC(), nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
