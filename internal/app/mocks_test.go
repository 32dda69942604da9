package app_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/app"
	"github.com/Amund211/rollcall/internal/domain"
)

var endpoints = hrapi.Endpoints{
	EmployeeBaseURL:   "http://employee.test",
	AttendanceBaseURL: "http://attendance.test",
	CompanyBaseURL:    "http://company.test",
}

const companyID = "company-1"

type cannedResponse struct {
	response hrapi.Response
	err      error
}

type mockClient struct {
	t *testing.T

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []hrapi.Request
}

func newMockClient(t *testing.T) *mockClient {
	return &mockClient{t: t, responses: map[string]cannedResponse{}}
}

func route(method, url string) string {
	return method + " " + url
}

func (m *mockClient) respond(method, url, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[route(method, url)] = cannedResponse{
		response: hrapi.Response{StatusCode: http.StatusOK, Body: []byte(body)},
	}
}

func (m *mockClient) respondWithETag(method, url, body, etag string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[route(method, url)] = cannedResponse{
		response: hrapi.Response{StatusCode: http.StatusOK, ETag: etag, Body: []byte(body)},
	}
}

func (m *mockClient) fail(method, url string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[route(method, url)] = cannedResponse{
		err: fmt.Errorf("%w: %w", domain.ErrTransport, &hrapi.StatusError{StatusCode: statusCode}),
	}
}

func (m *mockClient) Do(ctx context.Context, request hrapi.Request) (hrapi.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request)

	canned, ok := m.responses[route(request.Method, request.URL)]
	assert.True(m.t, ok, "unexpected request %s %s", request.Method, request.URL)
	return canned.response, canned.err
}

func (m *mockClient) count(method, url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, request := range m.requests {
		if request.Method == method && request.URL == url {
			n++
		}
	}
	return n
}

func (m *mockClient) last(method, url string) hrapi.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.requests) - 1; i >= 0; i-- {
		if m.requests[i].Method == method && m.requests[i].URL == url {
			return m.requests[i]
		}
	}
	require.Failf(m.t, "request not sent", "%s %s", method, url)
	return hrapi.Request{}
}

func (m *mockClient) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

type mockSession struct {
	mu sync.Mutex

	state       domain.AuthState
	getStateErr error
	setStateErr error
	cleared     bool

	location    *domain.Coordinates
	locationErr error

	theme domain.Theme
}

func loggedIn() *mockSession {
	return &mockSession{
		state: domain.AuthState{
			IsLoggedIn: true,
			Username:   "Admin",
			Email:      "admin@example.com",
			CompanyID:  companyID,
		},
		theme: domain.ThemeLight,
	}
}

func (m *mockSession) GetAuthState(ctx context.Context) (domain.AuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.getStateErr
}

func (m *mockSession) SetAuthState(ctx context.Context, state domain.AuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setStateErr != nil {
		return m.setStateErr
	}
	m.state = state
	m.cleared = false
	return nil
}

func (m *mockSession) ClearAuthState(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.AuthState{}
	m.cleared = true
	return nil
}

func (m *mockSession) GetTheme(ctx context.Context) (domain.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, nil
}

func (m *mockSession) SetTheme(ctx context.Context, theme domain.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}

func (m *mockSession) GetOfficeLocation(ctx context.Context) (domain.Coordinates, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locationErr != nil {
		return domain.Coordinates{}, false, m.locationErr
	}
	if m.location == nil {
		return domain.Coordinates{}, false, nil
	}
	return *m.location, true, nil
}

func (m *mockSession) SetOfficeLocation(ctx context.Context, location domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locationErr != nil {
		return m.locationErr
	}
	m.location = &location
	return nil
}

type mockNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []error
}

func (m *mockNotifier) Success(ctx context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

func (m *mockNotifier) Error(ctx context.Context, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
}

func newBackend(t *testing.T) (*app.Backend, *mockClient) {
	t.Helper()

	client := newMockClient(t)
	requestCache := cache.NewRequestCache[hrapi.Response](cache.NewBasicCache[hrapi.Response](time.Now))
	return app.NewBackend(requestCache, client, endpoints), client
}
