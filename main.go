package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/adapters/sessionstore"
	"github.com/Amund211/rollcall/internal/app"
	"github.com/Amund211/rollcall/internal/config"
	"github.com/Amund211/rollcall/internal/logging"
	"github.com/Amund211/rollcall/internal/ports/cli"
	"github.com/Amund211/rollcall/internal/reporting"
	"github.com/Amund211/rollcall/internal/telemetry"
)

const serviceName = "rollcall"

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	fail := func(msg string, err error) int {
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg, err)
		return 1
	}

	if err := config.LoadDotEnv(); err != nil {
		return fail("Failed to load .env", err)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		return fail("Failed to load config", err)
	}

	instanceID := uuid.NewString()
	logger := logging.New(os.Stderr, conf.LogLevel()).With("instanceID", instanceID)
	ctx = logging.AddToContext(ctx, logger)
	logger.Debug("Loaded config", "config", conf.NonSensitiveString())

	flush, err := reporting.NewSentryOrMock(conf)
	if err != nil {
		return fail("Failed to initialize Sentry", err)
	}
	defer flush()

	if conf.OTelEnabled() {
		shutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			return fail("Failed to set up OpenTelemetry", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shut down OpenTelemetry", "error", err)
			}
		}()
	}

	db, err := sessionstore.NewSQLiteDatabase(conf.StatePath())
	if err != nil {
		return fail("Failed to open client state", err)
	}
	defer db.Close()

	err = sessionstore.NewDatabaseMigrator(conf.StatePath(), logger.With("component", "migrator")).Migrate(ctx)
	if err != nil {
		return fail("Failed to migrate client state", err)
	}

	store := sessionstore.NewSQLite(db, time.Now)

	theme, err := store.GetTheme(ctx)
	if err != nil {
		return fail("Failed to read theme", err)
	}

	authState, err := store.GetAuthState(ctx)
	if err != nil {
		return fail("Failed to read session", err)
	}
	if authState.CompanyID != "" {
		ctx = reporting.SetCompanyIDInContext(ctx, authState.CompanyID)
	}

	requestCache := cache.NewRequestCache(cache.NewTTLCache[hrapi.Response]())
	client := hrapi.NewClient(
		hrapi.NewHTTPClient(conf.HTTPTimeout()),
		hrapi.NewLimiter(conf.RequestsPerSecond()),
	)
	backend := app.NewBackend(requestCache, client, hrapi.Endpoints{
		EmployeeBaseURL:   conf.EmployeeAPIURL(),
		AttendanceBaseURL: conf.AttendanceAPIURL(),
		CompanyBaseURL:    conf.CompanyAPIURL(),
	})

	styles := cli.NewStyles(theme)
	notifier := cli.NewNotifier(os.Stderr, styles)

	handlers := cli.Handlers{
		Login:           app.BuildLogin(backend, store, notifier),
		Logout:          app.BuildLogout(backend, store, notifier),
		RegisterCompany: app.BuildRegisterCompany(backend, notifier),

		ListEmployees:         app.BuildListEmployees(backend, store, notifier),
		GetEmployee:           app.BuildGetEmployee(backend, notifier),
		RegisterEmployee:      app.BuildRegisterEmployee(backend, store, notifier),
		UpdateEmployee:        app.BuildUpdateEmployee(backend, notifier),
		DeleteEmployee:        app.BuildDeleteEmployee(backend, notifier),
		ResetEmployeePassword: app.BuildResetEmployeePassword(backend, notifier),

		ListAllAttendance:     app.BuildListAllAttendance(backend, store, notifier),
		GetAttendanceByDate:   app.BuildGetAttendanceByDate(backend, store, notifier),
		GetEmployeeAttendance: app.BuildGetEmployeeAttendance(backend, notifier),

		GetConfig:              app.BuildGetConfig(backend, store, notifier),
		UpdateConfig:           app.BuildUpdateConfig(backend, app.NewFullDocumentWriter(backend, time.Now), store, store, notifier),
		GetSavedOfficeLocation: app.BuildGetSavedOfficeLocation(store, notifier),
		GetDashboard:           app.BuildGetDashboard(backend, store, notifier),
		IsLate:                 app.BuildIsLate(backend, store),

		GetTheme: app.BuildGetTheme(store),
		SetTheme: app.BuildSetTheme(store, notifier),
	}

	return cli.New(handlers, os.Stdout, notifier, styles, time.Now).Run(ctx, os.Args[1:])
}
