package services

import (
	"context"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

// Session is the part of session.Store the services depend on.
type Session interface {
	Identity() *models.Identity
	SaveCredential(ctx context.Context, res models.AuthResult) error
	Logout(ctx context.Context) error
}

// Notifier is the part of notify.Channel the services depend on.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// DialogCloser discards any open draft.
type DialogCloser interface {
	CloseAll()
}
