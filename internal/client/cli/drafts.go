package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

var (
	errNoDraft  = errors.New("nothing is being edited")
	errSetUsage = errors.New("usage: set <field> <value>")
)

// Set assigns one field of the open draft. Password fields of the account
// form are read without echo; a comment with no value is read as multiple
// lines.
func (a *App) Set(_ context.Context, args []string) error {
	if len(args) == 0 {
		return a.fail(errSetUsage)
	}
	field, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	if a.accountEditor.IsOpen() {
		switch field {
		case "password":
			return a.promptPassword(a.accountEditor.SetPassword)
		case "newpassword":
			return a.promptPassword(a.accountEditor.SetNewPassword)
		}
		if err := a.accountEditor.Set(field, value); err != nil {
			return a.fail(err)
		}
		return nil
	}

	if !a.reviewEditor.IsOpen() {
		return a.fail(errNoDraft)
	}
	if field == "comment" && value == "" {
		text, err := GetMultiline(a.reader, "Comment", a.out)
		if err != nil {
			return err
		}
		value = text
	}
	if len(args) < 2 && field != "comment" {
		return a.fail(errSetUsage)
	}
	if err := a.reviewEditor.Set(field, value); err != nil {
		return a.fail(err)
	}
	return nil
}

// Tag adds the given text to the tag list of the open review draft.
func (a *App) Tag(_ context.Context, args []string) error {
	if err := a.reviewEditor.SetTagInput(strings.Join(args, " ")); err != nil {
		return a.fail(err)
	}
	if err := a.reviewEditor.AddTag(); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(a.reviewEditor.Tags(), ", "))
	return nil
}

// Untag removes the tag at the given position.
func (a *App) Untag(_ context.Context, args []string) error {
	i, err := parseIndex(args)
	if err != nil {
		return a.fail(err)
	}
	if err := a.reviewEditor.RemoveTag(i); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(a.reviewEditor.Tags(), ", "))
	return nil
}

// Draft prints the open draft.
func (a *App) Draft(_ context.Context) error {
	if d, ok := a.accountEditor.Draft(); ok {
		fmt.Fprintln(a.out, "Account")
		fmt.Fprintf(a.out, "  name:  %s\n", d.NewName)
		fmt.Fprintf(a.out, "  email: %s\n", d.NewEmail)
		return nil
	}

	d, ok := a.reviewEditor.Draft()
	if !ok {
		return a.fail(errNoDraft)
	}
	a.printDraft(d, a.reviewEditor.Tags())
	return nil
}

// Save commits the open draft: the account form when it is open, otherwise
// the review draft.
func (a *App) Save(ctx context.Context) error {
	if a.accountEditor.IsOpen() {
		return a.account.UpdateAccount(ctx)
	}
	if !a.reviewEditor.IsOpen() {
		return a.fail(errNoDraft)
	}

	if err := a.reviews.Save(ctx, a.reviewEditor); err != nil {
		return err
	}
	a.printPage()
	return nil
}

func (a *App) Cancel(_ context.Context) error {
	if !a.dialog.IsOpen() {
		return a.fail(errNoDraft)
	}
	a.dialog.CloseAll()
	return nil
}

func (a *App) printDraft(d models.Review, tags []string) {
	title := "New review"
	if d.IsPersisted() {
		title = "Editing review"
	}
	fmt.Fprintf(a.out, "%s: %s by %s\n", title, d.BookTitle, d.BookAuthor)
	fmt.Fprintf(a.out, "  rating:  %.1f\n", d.Rating)
	fmt.Fprintf(a.out, "  status:  %s\n", d.ReadingStatus)
	fmt.Fprintf(a.out, "  pages:   %d\n", d.ReadPages)
	fmt.Fprintf(a.out, "  start:   %s\n", d.StartReadAt)
	fmt.Fprintf(a.out, "  finish:  %s\n", d.FinishReadAt)
	fmt.Fprintf(a.out, "  tags:    %s\n", strings.Join(tags, ", "))
	fmt.Fprintf(a.out, "  comment: %s\n", d.Comment)
}
