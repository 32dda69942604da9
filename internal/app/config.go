package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
)

const configModifiedBy = "user"

// fetchConfiguration returns the configuration along with the ETag it was served with
func fetchConfiguration(ctx context.Context, backend *Backend, companyID string, refresh bool) (domain.Configuration, string, error) {
	request, err := backend.endpoints.GetConfig(companyID)
	if err != nil {
		return domain.Configuration{}, "", err
	}

	config, response, err := fetch(ctx, backend, request, cache.ConfigTTL, refresh, hrapi.DecodeConfiguration)
	if err != nil {
		return domain.Configuration{}, "", err
	}
	return config, response.ETag, nil
}

// GetConfig returns the company configuration. forceRefresh skips the cache.
type GetConfig func(ctx context.Context, forceRefresh bool) (domain.Configuration, error)

func BuildGetConfig(backend *Backend, session authStateReader, notifier Notifier) GetConfig {
	return func(ctx context.Context, forceRefresh bool) (domain.Configuration, error) {
		const message = "failed to fetch configuration"

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return domain.Configuration{}, fail(ctx, notifier, message, err)
		}

		config, _, err := fetchConfiguration(ctx, backend, companyID, forceRefresh)
		if err != nil {
			return domain.Configuration{}, fail(ctx, notifier, message, err)
		}
		return config, nil
	}
}

// ConfigWriter applies a partial update to the stored configuration
type ConfigWriter interface {
	Write(ctx context.Context, companyID string, update domain.ConfigurationUpdate) (domain.Configuration, error)
}

type fullDocumentWriter struct {
	backend *Backend
	nowFunc func() time.Time
}

// NewFullDocumentWriter reads the current configuration, merges the update and
// writes the whole document back. The read ETag is sent as If-Match so a
// concurrent change fails with domain.ErrConfigConflict instead of being lost.
func NewFullDocumentWriter(backend *Backend, nowFunc func() time.Time) ConfigWriter {
	return fullDocumentWriter{
		backend: backend,
		nowFunc: nowFunc,
	}
}

func (w fullDocumentWriter) Write(ctx context.Context, companyID string, update domain.ConfigurationUpdate) (domain.Configuration, error) {
	current, etag, err := fetchConfiguration(ctx, w.backend, companyID, false)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("failed to read current configuration: %w", err)
	}

	merged := current.Merge(update)
	merged.LastModified = w.nowFunc().UTC().Format(time.RFC3339)
	merged.LastModifiedBy = configModifiedBy

	if err := validateInput(merged); err != nil {
		return domain.Configuration{}, err
	}

	request, err := w.backend.endpoints.UpdateConfig(companyID, hrapi.ConfigDocumentFrom(merged, companyID), etag)
	if err != nil {
		return domain.Configuration{}, err
	}

	if _, err := w.backend.send(ctx, request, 0, false); err != nil {
		err = mapStatus(err)
		if errors.Is(err, domain.ErrConfigConflict) {
			// The cached copy is stale, the next attempt must read it again
			w.backend.invalidateURLs(w.backend.endpoints.ConfigURL())
		}
		return domain.Configuration{}, err
	}

	return merged, nil
}

type UpdateConfig func(ctx context.Context, update domain.ConfigurationUpdate) (domain.Configuration, error)

func BuildUpdateConfig(
	backend *Backend,
	writer ConfigWriter,
	session authStateReader,
	locations officeLocationStore,
	notifier Notifier,
) UpdateConfig {
	return func(ctx context.Context, update domain.ConfigurationUpdate) (domain.Configuration, error) {
		const message = "failed to update configuration"

		if err := validateInput(update); err != nil {
			return domain.Configuration{}, fail(ctx, notifier, message, err)
		}

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return domain.Configuration{}, fail(ctx, notifier, message, err)
		}

		config, err := writer.Write(ctx, companyID, update)
		if err != nil {
			return domain.Configuration{}, fail(ctx, notifier, message, err)
		}

		backend.invalidateURLs(backend.endpoints.ConfigURL(), backend.endpoints.DashboardURL())

		if err := locations.SetOfficeLocation(ctx, config.OfficeLocation); err != nil {
			return config, fail(ctx, notifier, "configuration saved, but failed to store office location", err)
		}

		notifier.Success(ctx, "Configuration updated")
		return config, nil
	}
}

// GetSavedOfficeLocation returns the office location stored by the last
// configuration update on this machine. The bool is false if none was stored.
type GetSavedOfficeLocation func(ctx context.Context) (domain.Coordinates, bool, error)

func BuildGetSavedOfficeLocation(locations officeLocationReader, notifier Notifier) GetSavedOfficeLocation {
	return func(ctx context.Context) (domain.Coordinates, bool, error) {
		location, ok, err := locations.GetOfficeLocation(ctx)
		if err != nil {
			return domain.Coordinates{}, false, fail(ctx, notifier, "failed to read saved office location", err)
		}
		return location, ok, nil
	}
}
