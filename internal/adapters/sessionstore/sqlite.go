package sessionstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/reporting"
)

const (
	authStateKey      = "authState"
	themeKey          = "theme"
	officeLocationKey = "officeLocation"
)

type SQLite struct {
	db      *sqlx.DB
	tracer  trace.Tracer
	nowFunc func() time.Time
}

func NewSQLite(db *sqlx.DB, nowFunc func() time.Time) *SQLite {
	tracer := otel.Tracer("rollcall/sessionstore/sqlite")
	return &SQLite{
		db:      db,
		tracer:  tracer,
		nowFunc: nowFunc,
	}
}

type dbAuthState struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	CompanyID  string `json:"companyId"`
}

type dbOfficeLocation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// get decodes the stored value into target. Returns false if there is no value.
func (s *SQLite) get(ctx context.Context, key string, target any) (bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM client_state WHERE name = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), target); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLite) set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO client_state (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name)
		DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key,
		string(encoded),
		s.nowFunc().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) GetAuthState(ctx context.Context) (domain.AuthState, error) {
	ctx, span := s.tracer.Start(ctx, "SQLite.GetAuthState")
	defer span.End()

	var state dbAuthState
	if _, err := s.get(ctx, authStateKey, &state); err != nil {
		reporting.Report(ctx, err)
		return domain.AuthState{}, err
	}

	return domain.AuthState(state), nil
}

func (s *SQLite) SetAuthState(ctx context.Context, state domain.AuthState) error {
	ctx, span := s.tracer.Start(ctx, "SQLite.SetAuthState")
	defer span.End()

	if err := s.set(ctx, authStateKey, dbAuthState(state)); err != nil {
		reporting.Report(ctx, err)
		return err
	}
	return nil
}

func (s *SQLite) ClearAuthState(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "SQLite.ClearAuthState")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE name = ?`, authStateKey)
	if err != nil {
		err := fmt.Errorf("failed to clear %s: %w", authStateKey, err)
		reporting.Report(ctx, err)
		return err
	}
	return nil
}

// GetTheme defaults to the light theme
func (s *SQLite) GetTheme(ctx context.Context) (domain.Theme, error) {
	ctx, span := s.tracer.Start(ctx, "SQLite.GetTheme")
	defer span.End()

	var raw string
	found, err := s.get(ctx, themeKey, &raw)
	if err != nil {
		reporting.Report(ctx, err)
		return "", err
	}
	if !found {
		return domain.ThemeLight, nil
	}

	theme, ok := domain.ParseTheme(raw)
	if !ok {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

func (s *SQLite) SetTheme(ctx context.Context, theme domain.Theme) error {
	ctx, span := s.tracer.Start(ctx, "SQLite.SetTheme")
	defer span.End()

	if err := s.set(ctx, themeKey, string(theme)); err != nil {
		reporting.Report(ctx, err)
		return err
	}
	return nil
}

func (s *SQLite) GetOfficeLocation(ctx context.Context) (domain.Coordinates, bool, error) {
	ctx, span := s.tracer.Start(ctx, "SQLite.GetOfficeLocation")
	defer span.End()

	var location dbOfficeLocation
	found, err := s.get(ctx, officeLocationKey, &location)
	if err != nil {
		reporting.Report(ctx, err)
		return domain.Coordinates{}, false, err
	}
	if !found {
		return domain.Coordinates{}, false, nil
	}

	return domain.Coordinates{Latitude: location.Latitude, Longitude: location.Longitude}, true, nil
}

func (s *SQLite) SetOfficeLocation(ctx context.Context, location domain.Coordinates) error {
	ctx, span := s.tracer.Start(ctx, "SQLite.SetOfficeLocation")
	defer span.End()

	err := s.set(ctx, officeLocationKey, dbOfficeLocation{
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	})
	if err != nil {
		reporting.Report(ctx, err)
		return err
	}
	return nil
}
