package cli

import (
	"context"
	"errors"

	"github.com/pt428/recipes/internal/client/forms"
)

func (a *App) profile(ctx context.Context, _ []string) error {
	if a.user == nil {
		return nil
	}
	f := forms.NewProfileEditForm(*a.user)

	var err error
	if f.Name, err = a.prompt("Name", f.Name); err != nil {
		return err
	}
	if f.Email, err = a.prompt("Email", f.Email); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "New password (Enter to keep)", a.out); err != nil {
		return err
	}
	if f.Password != "" {
		if f.PasswordConfirmation, err = getPassword(a.reader, "Repeat new password", a.out); err != nil {
			return err
		}
	}

	u, err := f.Submit(ctx, a.auth)
	if err != nil {
		if errors.Is(err, forms.ErrInvalidForm) || !f.Errors.Empty() {
			return &fieldError{errs: f.Errors}
		}
		return err
	}

	a.setUser(u)
	a.println(f.Message)
	return nil
}

func (a *App) deleteAccount(ctx context.Context, _ []string) error {
	a.println("Deleting your account removes all your recipes. This cannot be undone.")

	f := forms.NewProfileDeleteForm()
	var err error
	if f.Confirm, err = getSimpleText(a.reader, "Type "+forms.DeleteConfirmText+" to confirm", a.out); err != nil {
		return err
	}
	if f.Confirm != forms.DeleteConfirmText {
		a.println("Account not deleted.")
		return nil
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}

	msg, err := f.Submit(ctx, a.auth)
	if err != nil {
		if errors.Is(err, forms.ErrInvalidForm) || !f.Errors.Empty() {
			return &fieldError{errs: f.Errors}
		}
		return err
	}

	a.setUser(nil)
	a.listStale = true
	a.println(msg)
	return nil
}
