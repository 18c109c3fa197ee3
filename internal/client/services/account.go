package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/notify"
	"github.com/dmitrijs2005/bookreview/internal/logging"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

// AccountDraft is the account form editor.
type AccountDraft interface {
	OpenAccount(id models.Identity)
	Commit() (models.UpdateAccountInput, error)
	Cancel()
}

// AccountService signs users in and out and manages their account.
type AccountService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, in models.RegisterInput) error
	Logout(ctx context.Context) error
	OpenAccount() error
	UpdateAccount(ctx context.Context) error
	DeleteAccount(ctx context.Context, password string) error
}

type accountService struct {
	client   client.Client
	session  Session
	notes    Notifier
	draft    AccountDraft
	validate *validation.Validator
	failure  *failureHandler
	logger   logging.Logger
}

func NewAccountService(c client.Client, s Session, n Notifier, d AccountDraft, v *validation.Validator, logger logging.Logger) AccountService {
	if logger == nil {
		logger = logging.Nop()
	}
	if v == nil {
		v = validation.New()
	}
	return &accountService{
		client:   c,
		session:  s,
		notes:    n,
		draft:    d,
		validate: v,
		failure:  &failureHandler{session: s, notes: n, logger: logger},
		logger:   logger,
	}
}

func (a *accountService) Login(ctx context.Context, email, password string) error {
	in := models.LoginInput{Email: email, Password: password}
	if err := a.validate.Validate(in); err != nil {
		return a.failure.handleAnonymous(ctx, "login", err)
	}

	res, err := a.client.Login(ctx, in)
	if err != nil {
		return a.failure.handleAnonymous(ctx, "login", err)
	}
	return a.signIn(ctx, "login", res, notify.MsgSignedIn)
}

func (a *accountService) Register(ctx context.Context, in models.RegisterInput) error {
	if err := a.validate.Validate(in); err != nil {
		return a.failure.handleAnonymous(ctx, "register", err)
	}

	res, err := a.client.Register(ctx, in)
	if err != nil {
		return a.failure.handleAnonymous(ctx, "register", err)
	}
	return a.signIn(ctx, "register", res, notify.MsgRegistered)
}

func (a *accountService) signIn(ctx context.Context, op string, res models.AuthResult, msg string) error {
	if err := a.session.SaveCredential(ctx, res); err != nil {
		return a.failure.handleAnonymous(ctx, op, err)
	}
	a.logger.Info(ctx, "signed in", "email", res.Email)
	a.notes.Success(msg)
	return nil
}

func (a *accountService) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.notes.Info(notify.MsgSignedOut)
	return nil
}

// OpenAccount opens the account form seeded from the current identity.
func (a *accountService) OpenAccount() error {
	id := a.session.Identity()
	if id == nil {
		return ErrNotSignedIn
	}
	a.draft.OpenAccount(*id)
	return nil
}

// UpdateAccount commits the account form. On success the refreshed
// credential replaces the stored one and the form closes.
func (a *accountService) UpdateAccount(ctx context.Context) error {
	in, err := a.draft.Commit()
	if err != nil {
		return a.failure.handleAnonymous(ctx, "update account", err)
	}

	res, err := a.client.UpdateAccount(ctx, in)
	if err != nil {
		return a.failure.handle(ctx, "update account", err)
	}

	if err := a.session.SaveCredential(ctx, res); err != nil {
		return a.failure.handleAnonymous(ctx, "update account", err)
	}
	a.draft.Cancel()
	a.notes.Success(notify.MsgAccountUpdated)
	return nil
}

func (a *accountService) DeleteAccount(ctx context.Context, password string) error {
	in := models.DeleteAccountInput{Password: password}
	if err := a.validate.Validate(in); err != nil {
		return a.failure.handleAnonymous(ctx, "delete account", err)
	}

	if err := a.client.DeleteAccount(ctx, in); err != nil {
		return a.failure.handle(ctx, "delete account", err)
	}

	if err := a.session.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout after account deletion failed", "error", err)
	}
	a.notes.Success(notify.MsgAccountDeleted)
	return nil
}
