package sessionstore

import (
	"context"

	"github.com/Amund211/rollcall/internal/domain"
)

// SessionStore persists client state between runs
type SessionStore interface {
	GetAuthState(ctx context.Context) (domain.AuthState, error)
	SetAuthState(ctx context.Context, state domain.AuthState) error
	ClearAuthState(ctx context.Context) error

	GetTheme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error

	// GetOfficeLocation returns false if no location has been stored
	GetOfficeLocation(ctx context.Context) (domain.Coordinates, bool, error)
	SetOfficeLocation(ctx context.Context, location domain.Coordinates) error
}
