package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client/clienttest"
	"github.com/pt428/recipes/internal/client/forms"
	"github.com/pt428/recipes/internal/client/models"
)

func TestProfile_SendsOnlyChanges(t *testing.T) {
	var got models.ProfileUpdate
	fc := &clienttest.Fake{
		UpdateUserFunc: func(_ context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
			got = upd
			return &models.ProfileResult{
				User:    models.User{ID: 1, Name: "Anna", Email: "ann@example.com"},
				Message: "Profile updated.",
			}, nil
		},
	}
	a := newTestApp(t, fc, "tok", "Anna\n\n\n")
	a.setUser(&models.User{ID: 1, Name: "Ann", Email: "ann@example.com"})

	require.NoError(t, a.profile(context.Background(), nil))

	assert.Equal(t, models.ProfileUpdate{Name: "Anna"}, got)
	assert.Equal(t, "Anna", a.user.Name)
	assert.Contains(t, a.out.String(), "Profile updated.")
}

func TestProfile_NoChanges(t *testing.T) {
	fc := &clienttest.Fake{}
	a := newTestApp(t, fc, "tok", "\n\n\n")
	a.setUser(&models.User{ID: 1, Name: "Ann", Email: "ann@example.com"})

	require.NoError(t, a.profile(context.Background(), nil))

	assert.Zero(t, fc.Count("UpdateUser()"))
	assert.Contains(t, a.out.String(), forms.NoChangesMessage)
}

func TestProfile_PasswordMismatch(t *testing.T) {
	fc := &clienttest.Fake{}
	a := newTestApp(t, fc, "tok", "\n\nnewpassword\nother\n")
	a.setUser(&models.User{ID: 1, Name: "Ann", Email: "ann@example.com"})

	err := a.profile(context.Background(), nil)

	var ferr *fieldError
	require.ErrorAs(t, err, &ferr)
	assert.NotEmpty(t, ferr.errs["password_confirmation"])
	assert.Zero(t, fc.Count("UpdateUser()"))
}

func TestDeleteAccount(t *testing.T) {
	var password string
	fc := &clienttest.Fake{
		DeleteUserFunc: func(_ context.Context, pw string) (string, error) {
			password = pw
			return "Account deleted.", nil
		},
	}
	a := newTestApp(t, fc, "tok", "DELETE\nsecret\n")
	a.setUser(&models.User{ID: 1, Name: "Ann"})

	require.NoError(t, a.deleteAccount(context.Background(), nil))

	assert.Equal(t, "secret", password)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Account deleted.")
	has, err := a.tokens.Has(context.Background())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestDeleteAccount_RequiresConfirmText(t *testing.T) {
	fc := &clienttest.Fake{}
	a := newTestApp(t, fc, "tok", "delete\n")
	a.setUser(&models.User{ID: 1, Name: "Ann"})

	require.NoError(t, a.deleteAccount(context.Background(), nil))

	assert.Zero(t, fc.Count("DeleteUser()"))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Account not deleted.")
}
