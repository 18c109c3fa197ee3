package draft

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

// AccountEditor edits the account form. Password fields are never seeded.
type AccountEditor struct {
	*Editor[models.UpdateAccountInput]

	validate *validation.Validator
}

func NewAccountEditor(dialog *Dialog, v *validation.Validator) *AccountEditor {
	if v == nil {
		v = validation.New()
	}
	return &AccountEditor{
		Editor:   newEditor(dialog, func() models.UpdateAccountInput { return models.UpdateAccountInput{} }),
		validate: v,
	}
}

func (e *AccountEditor) OpenAccount(id models.Identity) {
	e.begin(models.UpdateAccountInput{NewName: id.Name, NewEmail: id.Email}, nil)
}

func (e *AccountEditor) SetPassword(s string) error {
	return e.update(func(d *models.UpdateAccountInput) error {
		d.Password = s
		return nil
	})
}

func (e *AccountEditor) SetNewName(s string) error {
	return e.update(func(d *models.UpdateAccountInput) error {
		d.NewName = s
		return nil
	})
}

func (e *AccountEditor) SetNewEmail(s string) error {
	return e.update(func(d *models.UpdateAccountInput) error {
		d.NewEmail = s
		return nil
	})
}

func (e *AccountEditor) SetNewPassword(s string) error {
	return e.update(func(d *models.UpdateAccountInput) error {
		d.NewPassword = s
		return nil
	})
}

// Set assigns the non-secret fields from their textual form.
func (e *AccountEditor) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "name":
		return e.SetNewName(value)
	case "email":
		return e.SetNewEmail(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// Commit validates and returns the account update payload.
func (e *AccountEditor) Commit() (models.UpdateAccountInput, error) {
	d, ok := e.Draft()
	if !ok {
		return models.UpdateAccountInput{}, ErrDraftClosed
	}
	if err := e.validate.Validate(d); err != nil {
		return models.UpdateAccountInput{}, err
	}
	return d, nil
}
