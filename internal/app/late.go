package app

import (
	"context"

	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
)

// IsLate reports whether a clock in is late for the shift, using the company's
// late buffer
type IsLate func(ctx context.Context, clockIn, shiftStart string) (bool, error)

// BuildIsLate falls back to the default buffer when the configuration cannot
// be read. The failure is not shown to the user.
func BuildIsLate(backend *Backend, session authStateReader) IsLate {
	return func(ctx context.Context, clockIn, shiftStart string) (bool, error) {
		bufferMinutes := domain.DefaultLateBufferMinutes

		config, err := lateBufferConfig(ctx, backend, session)
		if err != nil {
			logging.FromContext(ctx).DebugContext(ctx, "Using default late buffer", "error", err)
		} else {
			bufferMinutes = config.LateBufferMinutes()
		}

		return domain.IsLate(clockIn, shiftStart, bufferMinutes)
	}
}

func lateBufferConfig(ctx context.Context, backend *Backend, session authStateReader) (domain.Configuration, error) {
	companyID, err := requireCompanyID(ctx, session)
	if err != nil {
		return domain.Configuration{}, err
	}
	config, _, err := fetchConfiguration(ctx, backend, companyID, false)
	return config, err
}
