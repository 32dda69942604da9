package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/Amund211/rollcall/internal/config"
	"github.com/Amund211/rollcall/internal/logging"
	"github.com/getsentry/sentry-go"
)

var uuidRx = regexp.MustCompile(`[0-9a-f]{8}-?([0-9a-f]{4}-?){3}[0-9a-f]{12}`)
var hostRx = regexp.MustCompile(`\[:{0,2}([0-9a-f]{0,4}:?){1,8}\]:\d+`)
var dateRx = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
var employeePathRx = regexp.MustCompile(`(/api/(?:attendance/)?employee/)([^/"\s]+)`)

func sanitizeError(err string) string {
	err = uuidRx.ReplaceAllString(err, "<uuid>")
	err = hostRx.ReplaceAllString(err, "<host>")
	err = dateRx.ReplaceAllString(err, "<date>")
	err = employeePathRx.ReplaceAllStringFunc(err, func(match string) string {
		groups := employeePathRx.FindStringSubmatch(match)
		switch groups[2] {
		case "all", "register":
			return match
		}
		return groups[1] + "<id>"
	})
	return err
}

func Report(ctx context.Context, err error, extras ...map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	logger := logging.FromContext(ctx)
	if hub == nil {
		logger.WarnContext(ctx, "Failed to get Sentry hub from context", "error", err, "extras", extras)
		return
	}

	logger.ErrorContext(
		ctx,
		"Reporting error to Sentry",
		slog.String("error", fmt.Sprint(err)),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		meta := MetaFromContext(ctx)
		scope.SetTags(meta.tags)
		for key, value := range meta.extras {
			scope.SetExtra(key, value)
		}
		if meta.companyID != "" {
			scope.SetUser(sentry.User{
				ID: meta.companyID,
			})
		}
		scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())

		for _, extra := range extras {
			if extra == nil {
				continue
			}
			for key, value := range extra {
				scope.SetExtra(key, value)
			}
		}

		if err == nil {
			err = errors.New("No error provided")
		}

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

// NewCommandContext prepares ctx for reporting errors from a single command
func NewCommandContext(ctx context.Context, command string) context.Context {
	if sentry.CurrentHub().Client() != nil {
		ctx = sentry.SetHubOnContext(ctx, sentry.CurrentHub().Clone())
	}

	ctx = AddTagsToContext(ctx, map[string]string{
		"command": command,
	})

	return setStartedAtInContext(ctx, time.Now())
}

func InitSentry(sentryDSN string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              sentryDSN,
		EnableTracing:    true,
		TracesSampleRate: 1.0 / 100.0,
	})
	if err != nil {
		return nil, err
	}

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return flush, nil
}

func NewSentryOrMock(config config.Config) (func(), error) {
	if config.SentryDSN() != "" {
		return InitSentry(config.SentryDSN())
	}

	if config.IsDevelopment() {
		flush := func() {}
		return flush, nil
	}

	return nil, fmt.Errorf("Missing Sentry DSN in non-development environment")
}
