package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/client/clienttest"
	"github.com/pt428/recipes/internal/client/models"
)

func TestLogin_StoresTokenAndGreets(t *testing.T) {
	var got models.LoginCredentials
	fc := &clienttest.Fake{
		LoginFunc: func(_ context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
			got = creds
			return &models.AuthResponse{User: models.User{ID: 7, Name: "Ann"}, Token: "t1"}, nil
		},
	}
	a := newTestApp(t, fc, "", "login\n ann@example.com \nsecret\nexit\n")

	runREPL(context.Background(), a.App, a.reader)

	assert.Equal(t, models.LoginCredentials{Email: "ann@example.com", Password: "secret"}, got)
	tok, err := a.tokens.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)
	require.NotNil(t, a.user)
	assert.Equal(t, int64(7), a.user.ID)
	assert.Contains(t, a.out.String(), "Welcome, Ann!")
}

func TestLogin_InvalidFormIsNotSent(t *testing.T) {
	fc := &clienttest.Fake{}
	a := newTestApp(t, fc, "", "not-an-email\n\n")

	err := a.login(context.Background(), nil)

	var ferr *fieldError
	require.ErrorAs(t, err, &ferr)
	assert.NotEmpty(t, ferr.errs["email"])
	assert.NotEmpty(t, ferr.errs["password"])
	assert.Empty(t, fc.Calls())
	assert.False(t, a.isLoggedIn())
}

func TestLogin_ServerRejects(t *testing.T) {
	fc := &clienttest.Fake{
		LoginFunc: func(context.Context, models.LoginCredentials) (*models.AuthResponse, error) {
			return nil, client.NewValidationError("Invalid credentials.", map[string][]string{
				"email": {"These credentials do not match our records."},
			})
		},
	}
	a := newTestApp(t, fc, "", "ann@example.com\nwrong\n")

	err := a.login(context.Background(), nil)

	var ferr *fieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "These credentials do not match our records.", ferr.errs.First("email"))
	assert.False(t, a.isLoggedIn())
}

func TestRegister_UsesStubbedInput(t *testing.T) {
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })

	texts := []string{"Ann", "ann@example.com"}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return "password1", nil
	}

	var got models.RegisterData
	fc := &clienttest.Fake{
		RegisterFunc: func(_ context.Context, data models.RegisterData) (*models.AuthResponse, error) {
			got = data
			return &models.AuthResponse{User: models.User{ID: 8, Name: data.Name}, Token: "t2"}, nil
		},
	}
	a := newTestApp(t, fc, "", "")

	require.NoError(t, a.register(context.Background(), nil))
	assert.Equal(t, models.RegisterData{
		Name: "Ann", Email: "ann@example.com", Password: "password1", PasswordConfirmation: "password1",
	}, got)
	assert.True(t, a.isLoggedIn())
}

func TestLogout_ClearsSessionEvenWhenServerFails(t *testing.T) {
	fc := &clienttest.Fake{
		LogoutFunc: func(context.Context) error { return errors.New("unreachable") },
	}
	a := newTestApp(t, fc, "tok", "")
	a.setUser(&models.User{ID: 1, Name: "Ann"})

	require.NoError(t, a.logout(context.Background(), nil))

	assert.False(t, a.isLoggedIn())
	has, err := a.tokens.Has(context.Background())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWhoami(t *testing.T) {
	a := newTestApp(t, &clienttest.Fake{}, "", "")
	require.NoError(t, a.whoami(context.Background(), nil))
	assert.Contains(t, a.out.String(), "Not logged in")

	a.out.Reset()
	a.setUser(&models.User{ID: 1, Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, a.whoami(context.Background(), nil))
	assert.Contains(t, a.out.String(), "ann@example.com")
}
