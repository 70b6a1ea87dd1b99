package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pt428/recipes/internal/client/models"
)

const (
	// NoChangesMessage is reported when the profile form was sent unchanged.
	NoChangesMessage = "No changes were made."
	// DeleteConfirmText must be typed to delete the account.
	DeleteConfirmText = "DELETE"
)

var ErrNotConfirmed = errors.New("deletion not confirmed")

type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error)
}

type AccountDeleter interface {
	DeleteAccount(ctx context.Context, password string) (string, error)
}

// ProfileEditForm edits name, email and password. Only changed values are
// sent.
type ProfileEditForm struct {
	user models.User

	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string

	Errors  FieldErrors
	Message string
}

func NewProfileEditForm(u models.User) *ProfileEditForm {
	return &ProfileEditForm{user: u, Name: u.Name, Email: u.Email, Errors: FieldErrors{}}
}

func (f *ProfileEditForm) User() models.User {
	return f.user
}

// Changes lists what differs from the loaded profile. The password pair is
// included only when a new password was typed.
func (f *ProfileEditForm) Changes() models.ProfileUpdate {
	var upd models.ProfileUpdate
	if f.Name != f.user.Name {
		upd.Name = f.Name
	}
	if f.Email != f.user.Email {
		upd.Email = strings.TrimSpace(f.Email)
	}
	if f.Password != "" {
		upd.Password = f.Password
		upd.PasswordConfirmation = f.PasswordConfirmation
	}
	return upd
}

// Submit sends the changes. With nothing changed no request is made and
// Message is set to NoChangesMessage.
func (f *ProfileEditForm) Submit(ctx context.Context, svc ProfileUpdater) (*models.User, error) {
	f.Errors = FieldErrors{}
	f.Message = ""

	upd := f.Changes()
	if upd.Empty() {
		f.Message = NoChangesMessage
		u := f.user
		return &u, nil
	}

	if f.Errors = check(upd); !f.Errors.Empty() {
		return nil, ErrInvalidForm
	}

	res, err := svc.UpdateProfile(ctx, upd)
	if err != nil {
		f.Errors = fromError(err)
		return nil, err
	}

	f.user = res.User
	f.Message = res.Message
	f.Name, f.Email = res.User.Name, res.User.Email
	f.Password, f.PasswordConfirmation = "", ""

	u := res.User
	return &u, nil
}

// ProfileDeleteForm asks for DeleteConfirmText and the current password.
type ProfileDeleteForm struct {
	Confirm  string
	Password string

	Errors FieldErrors
}

func NewProfileDeleteForm() *ProfileDeleteForm {
	return &ProfileDeleteForm{Errors: FieldErrors{}}
}

// Submit deletes the account and returns the server's message.
func (f *ProfileDeleteForm) Submit(ctx context.Context, svc AccountDeleter) (string, error) {
	f.Errors = FieldErrors{}

	if f.Confirm != DeleteConfirmText {
		f.Errors.Add("confirm", fmt.Sprintf("You must type %q to confirm.", DeleteConfirmText))
		return "", ErrNotConfirmed
	}
	if f.Password == "" {
		f.Errors.Add("password", "Enter your password to confirm.")
		return "", ErrInvalidForm
	}

	msg, err := svc.DeleteAccount(ctx, f.Password)
	if err != nil {
		f.Errors = fromError(err)
		return "", err
	}
	return msg, nil
}
