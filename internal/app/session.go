package app

import (
	"context"
	"fmt"

	"github.com/Amund211/rollcall/internal/domain"
)

type authStateReader interface {
	GetAuthState(ctx context.Context) (domain.AuthState, error)
}

type authStateStore interface {
	authStateReader
	SetAuthState(ctx context.Context, state domain.AuthState) error
	ClearAuthState(ctx context.Context) error
}

type themeStore interface {
	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
}

type officeLocationStore interface {
	SetOfficeLocation(ctx context.Context, location domain.Coordinates) error
}

type officeLocationReader interface {
	GetOfficeLocation(ctx context.Context) (domain.Coordinates, bool, error)
}

// Notifier shows transient messages to the user
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, err error)
}

func requireCompanyID(ctx context.Context, session authStateReader) (string, error) {
	state, err := session.GetAuthState(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if !state.IsLoggedIn || state.CompanyID == "" {
		return "", domain.ErrMissingCompanyID
	}
	return state.CompanyID, nil
}

// fail wraps err with a human readable message and notifies the user
func fail(ctx context.Context, notifier Notifier, message string, err error) error {
	err = fmt.Errorf("%s: %w", message, err)
	notifier.Error(ctx, err)
	return err
}
