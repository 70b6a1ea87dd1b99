package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/pt428/recipes/internal/client/models"
)

var ErrInvalidForm = errors.New("form has errors")

// Authenticator signs the user in and keeps the session.
type Authenticator interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error)
	Register(ctx context.Context, data models.RegisterData) (*models.User, error)
}

type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

func (m AuthMode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// AuthForm is the login / registration dialog.
type AuthForm struct {
	Mode                 AuthMode
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string

	Errors FieldErrors
}

func NewAuthForm(mode AuthMode) *AuthForm {
	return &AuthForm{Mode: mode, Errors: FieldErrors{}}
}

func (f *AuthForm) credentials() models.LoginCredentials {
	return models.LoginCredentials{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

func (f *AuthForm) registration() models.RegisterData {
	return models.RegisterData{
		Name:                 strings.TrimSpace(f.Name),
		Email:                strings.TrimSpace(f.Email),
		Password:             f.Password,
		PasswordConfirmation: f.PasswordConfirmation,
	}
}

// Validate runs the local checks and reports whether the form may be sent.
func (f *AuthForm) Validate() bool {
	if f.Mode == ModeRegister {
		f.Errors = check(f.registration())
	} else {
		f.Errors = check(f.credentials())
	}
	return f.Errors.Empty()
}

func (f *AuthForm) Submit(ctx context.Context, auth Authenticator) (*models.User, error) {
	if !f.Validate() {
		return nil, ErrInvalidForm
	}

	var (
		u   *models.User
		err error
	)
	if f.Mode == ModeRegister {
		u, err = auth.Register(ctx, f.registration())
	} else {
		u, err = auth.Login(ctx, f.credentials())
	}
	if err != nil {
		f.Errors = fromError(err)
		return nil, err
	}
	return u, nil
}
