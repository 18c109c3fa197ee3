package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/notify"
	"github.com/dmitrijs2005/bookreview/internal/logging"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

// failureHandler turns a failed call into exactly one notification.
type failureHandler struct {
	session Session
	notes   Notifier
	logger  logging.Logger
}

// handle applies the authorization branch: a rejected credential logs the
// user out and asks them to log in again.
func (f *failureHandler) handle(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		f.logger.Info(ctx, "credential rejected, logging out", "op", op)
		if lerr := f.session.Logout(ctx); lerr != nil {
			f.logger.Error(ctx, "logout failed", "op", op, "error", lerr)
		}
		f.notes.Error(notify.MsgLoginRequired)
		return fmt.Errorf("%s: %w: %w", op, ErrLoginRequired, err)
	}
	return f.handleAnonymous(ctx, op, err)
}

// handleAnonymous reports err without touching the session. It is used by
// login and register, where a rejection means bad credentials.
func (f *failureHandler) handleAnonymous(ctx context.Context, op string, err error) error {
	f.notes.Error(userMessage(err))
	f.logger.Warn(ctx, "operation failed", "op", op, "kind", Classify(err).String(), "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return notify.MsgGenericFailure
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}

	if Classify(err) == KindValidation {
		return err.Error()
	}

	return notify.MsgGenericFailure
}
