package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
	"github.com/Amund211/rollcall/internal/reporting"
)

type Notifier struct {
	w      io.Writer
	styles Styles
}

// NewNotifier prints notifications to w. Unexpected errors are also reported.
func NewNotifier(w io.Writer, styles Styles) *Notifier {
	return &Notifier{w: w, styles: styles}
}

func (n *Notifier) Success(ctx context.Context, message string) {
	fmt.Fprintln(n.w, n.styles.success.Render("✓")+" "+message)
}

func (n *Notifier) Error(ctx context.Context, err error) {
	fmt.Fprintln(n.w, n.styles.failure.Render("✗")+" "+capitalize(err.Error()))

	if isUserError(err) {
		logging.FromContext(ctx).InfoContext(ctx, "Command failed", "error", err)
		return
	}
	logging.FromContext(ctx).ErrorContext(ctx, "Command failed", "error", err)
	reporting.Report(ctx, err)
}

// isUserError is true for failures the user can fix themselves
func isUserError(err error) bool {
	for _, userErr := range []error{
		domain.ErrInvalidInput,
		domain.ErrMissingCompanyID,
		domain.ErrLoginFailed,
		domain.ErrNotFound,
		domain.ErrConfigConflict,
		errUsage,
	} {
		if errors.Is(err, userErr) {
			return true
		}
	}
	return false
}

func capitalize(message string) string {
	r, size := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}
	return string(unicode.ToUpper(r)) + message[size:]
}
