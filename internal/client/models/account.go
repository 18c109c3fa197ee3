package models

// Identity is the user-facing identity decoded from a valid credential.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is returned by login, register and account update.
type AuthResult struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (a AuthResult) Identity() Identity {
	return Identity{Name: a.Name, Email: a.Email}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

// UpdateAccountInput doubles as the account form draft.
type UpdateAccountInput struct {
	Password    string `json:"password" validate:"required"`
	NewName     string `json:"newName" validate:"required"`
	NewEmail    string `json:"newEmail" validate:"required,email"`
	NewPassword string `json:"newPassword"`
}

type DeleteAccountInput struct {
	Password string `json:"password" validate:"required"`
}
