package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookreview/internal/dbx"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, an email and a password typed twice, then
// creates the account and signs in with it.
//
// The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(pw)

	fmt.Fprintln(a.out, "Repeat the password")
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(confirm)

	err = a.account.Register(ctx, models.RegisterInput{
		Name:                 name,
		Email:                email,
		Password:             string(pw),
		PasswordConfirmation: string(confirm),
	})
	if err != nil {
		return err
	}
	return a.List(ctx)
}

// Login prompts for email and password and signs in. On success the first
// page of reviews is loaded.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(pw)

	if err := a.account.Login(ctx, email, string(pw)); err != nil {
		return err
	}
	if err := a.reviews.FetchPage(ctx, 1); err != nil {
		return err
	}
	a.printPage()
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.account.Logout(ctx); err != nil {
		return a.fail(err)
	}
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	id := a.session.Identity()
	if id == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", id.Name, id.Email)
	return nil
}

// Account opens the account form seeded with the current identity and walks
// the user through it. Empty answers keep the seeded name and email; an
// empty new password keeps the current one.
func (a *App) Account(ctx context.Context) error {
	if err := a.account.OpenAccount(); err != nil {
		return a.fail(err)
	}

	id := a.session.Identity()
	if id == nil {
		a.accountEditor.Cancel()
		return nil
	}

	fields := []struct {
		prompt string
		set    func(string) error
	}{
		{prompt: fmt.Sprintf("New name [%s]", id.Name), set: a.accountEditor.SetNewName},
		{prompt: fmt.Sprintf("New email [%s]", id.Email), set: a.accountEditor.SetNewEmail},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			a.accountEditor.Cancel()
			return err
		}
		if v == "" {
			continue
		}
		if err := f.set(v); err != nil {
			a.accountEditor.Cancel()
			return a.fail(err)
		}
	}

	fmt.Fprintln(a.out, "New password (leave empty to keep the current one)")
	if err := a.promptPassword(a.accountEditor.SetNewPassword); err != nil {
		a.accountEditor.Cancel()
		return err
	}

	fmt.Fprintln(a.out, "Current password")
	if err := a.promptPassword(a.accountEditor.SetPassword); err != nil {
		a.accountEditor.Cancel()
		return err
	}

	// A failed update leaves the form open for "set" and "save".
	return a.account.UpdateAccount(ctx)
}

// DeleteAccount asks for the password and removes the account. The session
// is cleared on success.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account and all reviews? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(pw)

	if err := a.account.DeleteAccount(ctx, string(pw)); err != nil {
		return err
	}
	return a.wipeLocalState(ctx)
}

// wipeLocalState drops every key of the local metadata store once the
// account it belonged to is gone.
func (a *App) wipeLocalState(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		a.logger.Error(ctx, "failed to clear local storage", "error", err)
		return a.fail(err)
	}
	return nil
}

func (a *App) promptPassword(set func(string) error) error {
	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(pw)
	if err := set(string(pw)); err != nil {
		return a.fail(err)
	}
	return nil
}
