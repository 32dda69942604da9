package app

import (
	"context"
	"fmt"

	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
)

type Login func(ctx context.Context, credentials domain.Credentials) (domain.AuthState, error)

func BuildLogin(backend *Backend, session authStateStore, notifier Notifier) Login {
	return func(ctx context.Context, credentials domain.Credentials) (domain.AuthState, error) {
		const message = "login failed"

		if err := validateInput(credentials); err != nil {
			return domain.AuthState{}, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.Login(credentials.Email, credentials.Password)
		if err != nil {
			return domain.AuthState{}, fail(ctx, notifier, message, err)
		}

		response, err := backend.send(ctx, request, 0, false)
		if err != nil {
			if code, ok := hrapi.StatusCode(err); ok && code < 500 {
				err = fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
			}
			return domain.AuthState{}, fail(ctx, notifier, message, err)
		}

		state, err := hrapi.DecodeLogin(response.Body)
		if err != nil {
			return domain.AuthState{}, fail(ctx, notifier, message, err)
		}

		if err := session.SetAuthState(ctx, state); err != nil {
			return domain.AuthState{}, fail(ctx, notifier, message, err)
		}

		// Cached reads belong to whichever company was logged in before
		backend.cache.InvalidateAll()

		logging.FromContext(ctx).InfoContext(ctx, "Logged in", "companyId", state.CompanyID)
		notifier.Success(ctx, fmt.Sprintf("Welcome, %s", state.Username))
		return state, nil
	}
}

type Logout func(ctx context.Context) error

func BuildLogout(backend *Backend, session authStateStore, notifier Notifier) Logout {
	return func(ctx context.Context) error {
		if err := session.ClearAuthState(ctx); err != nil {
			return fail(ctx, notifier, "failed to log out", err)
		}

		backend.cache.InvalidateAll()

		notifier.Success(ctx, "Logged out")
		return nil
	}
}

type RegisterCompany func(ctx context.Context, company domain.NewCompany) error

func BuildRegisterCompany(backend *Backend, notifier Notifier) RegisterCompany {
	return func(ctx context.Context, company domain.NewCompany) error {
		const message = "failed to register company"

		if err := validateInput(company); err != nil {
			return fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.RegisterCompany(hrapi.NewCompanyRequestFrom(company))
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		if _, err := backend.send(ctx, request, 0, false); err != nil {
			return fail(ctx, notifier, message, mapStatus(err))
		}

		notifier.Success(ctx, fmt.Sprintf("Company %s registered, you can now log in", company.CompanyName))
		return nil
	}
}

type GetTheme func(ctx context.Context) (domain.Theme, error)

func BuildGetTheme(themes themeStore) GetTheme {
	return func(ctx context.Context) (domain.Theme, error) {
		return themes.GetTheme(ctx)
	}
}

type SetTheme func(ctx context.Context, theme domain.Theme) error

func BuildSetTheme(themes themeStore, notifier Notifier) SetTheme {
	return func(ctx context.Context, theme domain.Theme) error {
		if _, ok := domain.ParseTheme(string(theme)); !ok {
			return fail(ctx, notifier, "failed to change theme", fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, theme))
		}

		if err := themes.SetTheme(ctx, theme); err != nil {
			return fail(ctx, notifier, "failed to change theme", err)
		}

		notifier.Success(ctx, fmt.Sprintf("Theme set to %s", theme))
		return nil
	}
}
