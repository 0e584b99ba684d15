package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	Storage    StorageConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	SMTP       SMTPConfig
	CORS       CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageConfig selects the repository implementation
type StorageConfig struct {
	Driver string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the organization calendar
type AttendanceConfig struct {
	Timezone                string
	Location                *time.Location
	CheckInStartHour        int
	CheckInEndHour          int
	WeeklyOffDay            time.Weekday
	PresentThresholdMinutes int
	AbsenceSweepTime        string // HH:MM in Timezone
	StaleSessionInterval    time.Duration
	FallbackGeofence        []geo.Point
}

// SMTPConfig holds outgoing mail configuration. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using environment only")
	}

	return FromEnv()
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "inzone"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Storage = StorageConfig{
		Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance calendar
	timezone := getEnv("ORG_TIMEZONE", "Asia/Kolkata")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE: %w", err)
	}

	startHour, err := strconv.Atoi(getEnv("CHECK_IN_START_HOUR", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECK_IN_START_HOUR: %w", err)
	}
	endHour, err := strconv.Atoi(getEnv("CHECK_IN_END_HOUR", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECK_IN_END_HOUR: %w", err)
	}
	offDay, err := worktime.ParseWeekday(getEnv("WEEKLY_OFF_DAY", "Sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKLY_OFF_DAY: %w", err)
	}
	threshold, err := strconv.Atoi(getEnv("PRESENT_THRESHOLD_MINUTES", strconv.Itoa(worktime.DefaultThresholdMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid PRESENT_THRESHOLD_MINUTES: %w", err)
	}
	fallback, err := ParseGeofence(getEnv("FALLBACK_GEOFENCE", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_GEOFENCE: %w", err)
	}

	staleInterval, err := time.ParseDuration(getEnv("STALE_SESSION_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_SESSION_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:                timezone,
		Location:                location,
		CheckInStartHour:        startHour,
		CheckInEndHour:          endHour,
		WeeklyOffDay:            offDay,
		PresentThresholdMinutes: threshold,
		AbsenceSweepTime:        getEnv("ABSENCE_SWEEP_TIME", "20:00"),
		StaleSessionInterval:    staleInterval,
		FallbackGeofence:        fallback,
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "InZone"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is not a duration: %w", err)
	}

	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if _, _, err := ParseClockHHMM(c.Attendance.AbsenceSweepTime); err != nil {
		return fmt.Errorf("ABSENCE_SWEEP_TIME: %w", err)
	}
	if c.Attendance.StaleSessionInterval < 0 {
		return fmt.Errorf("STALE_SESSION_INTERVAL must not be negative")
	}
	if n := len(c.Attendance.FallbackGeofence); n > 0 && n < 3 {
		return fmt.Errorf("FALLBACK_GEOFENCE needs at least 3 vertices, got %d", n)
	}

	return nil
}

// Policy returns the attendance calendar as a worktime policy.
func (c *Config) Policy() worktime.Policy {
	return worktime.Policy{
		Location:     c.Attendance.Location,
		StartHour:    c.Attendance.CheckInStartHour,
		EndHour:      c.Attendance.CheckInEndHour,
		OffDay:       c.Attendance.WeeklyOffDay,
		PresentAfter: time.Duration(c.Attendance.PresentThresholdMinutes) * time.Minute,
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ParseGeofence parses "lat,lng;lat,lng;..." into vertices.
func ParseGeofence(s string) ([]geo.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var points []geo.Point
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("vertex %q must be lat,lng", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", pair, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", pair, err)
		}
		p := geo.Point{Latitude: lat, Longitude: lng}
		if !p.Valid() {
			return nil, fmt.Errorf("vertex %q out of range", pair)
		}
		points = append(points, p)
	}
	return points, nil
}

// ParseClockHHMM parses a 24-hour "HH:MM".
func ParseClockHHMM(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
