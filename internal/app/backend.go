package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Backend is the shared path to the HR API. Cacheable reads go through the
// request cache, everything else is sent directly.
type Backend struct {
	cache     *cache.RequestCache[hrapi.Response]
	client    hrapi.Client
	endpoints hrapi.Endpoints
}

func NewBackend(requestCache *cache.RequestCache[hrapi.Response], client hrapi.Client, endpoints hrapi.Endpoints) *Backend {
	return &Backend{
		cache:     requestCache,
		client:    client,
		endpoints: endpoints,
	}
}

func (b *Backend) send(ctx context.Context, request hrapi.Request, ttl time.Duration, refresh bool) (hrapi.Response, error) {
	if !request.Cacheable {
		return b.client.Do(ctx, request)
	}

	create := func(ctx context.Context) (hrapi.Response, error) {
		return b.client.Do(ctx, request)
	}

	if refresh {
		return b.cache.Refresh(ctx, request.Key(), ttl, create)
	}

	response, _, err := b.cache.GetOrCreate(ctx, request.Key(), ttl, create)
	return response, err
}

// invalidateURLs drops cached reads of the given endpoints. Each URL is dropped
// separately.
func (b *Backend) invalidateURLs(urls ...string) {
	for _, url := range urls {
		b.cache.InvalidateURL(url)
	}
}

// fetch sends the request and decodes the response body. A body that fails to
// decode is evicted so the next call asks the backend again.
func fetch[T any](
	ctx context.Context,
	backend *Backend,
	request hrapi.Request,
	ttl time.Duration,
	refresh bool,
	decode func([]byte) (T, error),
) (T, hrapi.Response, error) {
	var empty T

	response, err := backend.send(ctx, request, ttl, refresh)
	if err != nil {
		return empty, hrapi.Response{}, mapStatus(err)
	}

	data, err := decode(response.Body)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "Evicting undecodable response", "url", request.URL, "error", err)
		if request.Cacheable {
			backend.cache.Invalidate(request.Key())
		}
		return empty, hrapi.Response{}, err
	}

	return data, response, nil
}

// mapStatus attaches the domain meaning of well known HTTP statuses
func mapStatus(err error) error {
	code, ok := hrapi.StatusCode(err)
	if !ok {
		return err
	}
	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %w", domain.ErrConfigConflict, err)
	}
	return err
}

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func validateVar(value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}
