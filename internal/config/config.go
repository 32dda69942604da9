package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const (
	defaultEmployeeAPIURL    = "http://localhost:5002"
	defaultAttendanceAPIURL  = "http://localhost:5003"
	defaultCompanyAPIURL     = "http://localhost:5001"
	defaultHTTPTimeout       = 10 * time.Second
	defaultRequestsPerSecond = 10.0
	defaultLogLevel          = slog.LevelWarn
)

type Config struct {
	employeeAPIURL    string
	attendanceAPIURL  string
	companyAPIURL     string
	statePath         string
	httpTimeout       time.Duration
	requestsPerSecond float64
	sentryDSN         string
	otelEnabled       bool
	logLevel          slog.Level
	env               environment
}

func (c *Config) EmployeeAPIURL() string {
	return c.employeeAPIURL
}

func (c *Config) AttendanceAPIURL() string {
	return c.attendanceAPIURL
}

func (c *Config) CompanyAPIURL() string {
	return c.companyAPIURL
}

func (c *Config) StatePath() string {
	return c.statePath
}

func (c *Config) HTTPTimeout() time.Duration {
	return c.httpTimeout
}

func (c *Config) RequestsPerSecond() float64 {
	return c.requestsPerSecond
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) LogLevel() slog.Level {
	return c.logLevel
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, employeeAPIURL: %s, attendanceAPIURL: %s, companyAPIURL: %s, statePath: %s, ...}",
		string(c.env), c.employeeAPIURL, c.attendanceAPIURL, c.companyAPIURL, c.statePath,
	)
}

// LoadDotEnv loads the given .env files (default ".env") into the environment.
// Missing files are skipped and variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func defaultStatePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "rollcall", "state.db")
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidValue := func(key, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("ROLLCALL_ENVIRONMENT")
	if !ok {
		return missingKey("ROLLCALL_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidValue("ROLLCALL_ENVIRONMENT", rawEnv)
	}

	httpTimeout := defaultHTTPTimeout
	if raw := os.Getenv("ROLLCALL_HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return invalidValue("ROLLCALL_HTTP_TIMEOUT", raw)
		}
		httpTimeout = parsed
	}

	requestsPerSecond := defaultRequestsPerSecond
	if raw := os.Getenv("ROLLCALL_REQUESTS_PER_SECOND"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return invalidValue("ROLLCALL_REQUESTS_PER_SECOND", raw)
		}
		requestsPerSecond = parsed
	}

	otelEnabled := false
	if raw := os.Getenv("OTEL_ENABLED"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return invalidValue("OTEL_ENABLED", raw)
		}
		otelEnabled = parsed
	}

	logLevel := defaultLogLevel
	if raw := os.Getenv("ROLLCALL_LOG_LEVEL"); raw != "" {
		if err := logLevel.UnmarshalText([]byte(raw)); err != nil {
			return invalidValue("ROLLCALL_LOG_LEVEL", raw)
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		employeeAPIURL:    getEnv("ROLLCALL_EMPLOYEE_API_URL", defaultEmployeeAPIURL),
		attendanceAPIURL:  getEnv("ROLLCALL_ATTENDANCE_API_URL", defaultAttendanceAPIURL),
		companyAPIURL:     getEnv("ROLLCALL_COMPANY_API_URL", defaultCompanyAPIURL),
		statePath:         getEnv("ROLLCALL_STATE_PATH", defaultStatePath()),
		httpTimeout:       httpTimeout,
		requestsPerSecond: requestsPerSecond,
		sentryDSN:         sentryDSN,
		otelEnabled:       otelEnabled,
		logLevel:          logLevel,
		env:               env,
	}, nil
}
