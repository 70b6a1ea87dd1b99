package cli

import (
	"context"
	"errors"
	"log"

	"github.com/pt428/recipes/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) authForm(mode forms.AuthMode) (*forms.AuthForm, error) {
	f := forms.NewAuthForm(mode)
	var err error

	if mode == forms.ModeRegister {
		if f.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
			return nil, err
		}
	}
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return nil, err
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return nil, err
	}
	if mode == forms.ModeRegister {
		if f.PasswordConfirmation, err = getPassword(a.reader, "Repeat password", a.out); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (a *App) submitAuth(ctx context.Context, mode forms.AuthMode) error {
	f, err := a.authForm(mode)
	if err != nil {
		return err
	}

	u, err := f.Submit(ctx, a.auth)
	if err != nil {
		if errors.Is(err, forms.ErrInvalidForm) || !f.Errors.Empty() {
			return &fieldError{errs: f.Errors}
		}
		return err
	}

	a.setUser(u)
	a.listStale = true
	log.Printf("%s successful", mode)
	a.printf("Welcome, %s!\n", u.Name)
	return nil
}

// login prompts for credentials and signs in.
func (a *App) login(ctx context.Context, _ []string) error {
	return a.submitAuth(ctx, forms.ModeLogin)
}

// register prompts for name, email and password twice, then creates the
// account and signs in.
func (a *App) register(ctx context.Context, _ []string) error {
	return a.submitAuth(ctx, forms.ModeRegister)
}

// logout always forgets the local session, even when the server is
// unreachable.
func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	a.listStale = true
	a.println("Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	if a.user == nil {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s <%s> (id %d)\n", a.user.Name, a.user.Email, a.user.ID)
	return nil
}
