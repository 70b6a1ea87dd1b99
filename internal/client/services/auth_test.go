package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/client/clienttest"
	"github.com/pt428/recipes/internal/client/models"
)

func TestAuthService_Login_StoresToken(t *testing.T) {
	fc := &clienttest.Fake{
		LoginFunc: func(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
			return &models.AuthResponse{Token: "tok", User: models.User{ID: 1, Name: "Ann", Email: creds.Email}}, nil
		},
	}
	tokens := clienttest.NewTokens("")
	svc := NewAuthService(fc, tokens, nil)

	u, err := svc.Login(context.Background(), models.LoginCredentials{Email: "a@b.cz", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)

	tok, _ := tokens.Get(context.Background())
	require.Equal(t, "tok", tok)

	ok, err := svc.IsLoggedIn(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAuthService_Login_ErrorKeepsNoToken(t *testing.T) {
	fc := &clienttest.Fake{
		LoginFunc: func(context.Context, models.LoginCredentials) (*models.AuthResponse, error) {
			return nil, client.ErrUnauthorized
		},
	}
	tokens := clienttest.NewTokens("")
	svc := NewAuthService(fc, tokens, nil)

	_, err := svc.Login(context.Background(), models.LoginCredentials{})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	ok, _ := tokens.Has(context.Background())
	require.False(t, ok)
}

func TestAuthService_Register_StoresToken(t *testing.T) {
	fc := &clienttest.Fake{
		RegisterFunc: func(ctx context.Context, d models.RegisterData) (*models.AuthResponse, error) {
			return &models.AuthResponse{Token: "new", User: models.User{Name: d.Name}}, nil
		},
	}
	tokens := clienttest.NewTokens("")
	svc := NewAuthService(fc, tokens, nil)

	u, err := svc.Register(context.Background(), models.RegisterData{Name: "Bob"})
	require.NoError(t, err)
	require.Equal(t, "Bob", u.Name)
	tok, _ := tokens.Get(context.Background())
	require.Equal(t, "new", tok)
}

func TestAuthService_Logout_AlwaysClearsToken(t *testing.T) {
	fc := &clienttest.Fake{
		LogoutFunc: func(context.Context) error { return errors.New("boom") },
	}
	tokens := clienttest.NewTokens("tok")
	svc := NewAuthService(fc, tokens, nil)

	require.NoError(t, svc.Logout(context.Background()))
	ok, _ := tokens.Has(context.Background())
	require.False(t, ok)
	require.Equal(t, 1, fc.Count("Logout()"))
}

func TestAuthService_CurrentUser(t *testing.T) {
	t.Run("no token skips the server", func(t *testing.T) {
		fc := &clienttest.Fake{}
		svc := NewAuthService(fc, clienttest.NewTokens(""), nil)

		u, err := svc.CurrentUser(context.Background())
		require.NoError(t, err)
		require.Nil(t, u)
		require.Empty(t, fc.Calls())
	})

	t.Run("failure clears token", func(t *testing.T) {
		fc := &clienttest.Fake{
			CurrentUserFunc: func(context.Context) (*models.User, error) { return nil, client.ErrUnauthorized },
		}
		tokens := clienttest.NewTokens("stale")
		svc := NewAuthService(fc, tokens, nil)

		_, err := svc.CurrentUser(context.Background())
		require.ErrorIs(t, err, client.ErrUnauthorized)
		ok, _ := tokens.Has(context.Background())
		require.False(t, ok)
	})

	t.Run("success", func(t *testing.T) {
		fc := &clienttest.Fake{
			CurrentUserFunc: func(context.Context) (*models.User, error) { return &models.User{ID: 7}, nil },
		}
		svc := NewAuthService(fc, clienttest.NewTokens("tok"), nil)

		u, err := svc.CurrentUser(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(7), u.ID)
	})
}

func TestAuthService_DeleteAccount(t *testing.T) {
	var gotPassword string
	fc := &clienttest.Fake{
		DeleteUserFunc: func(_ context.Context, pw string) (string, error) {
			gotPassword = pw
			return "Account deleted", nil
		},
	}
	tokens := clienttest.NewTokens("tok")
	svc := NewAuthService(fc, tokens, nil)

	msg, err := svc.DeleteAccount(context.Background(), "pw")
	require.NoError(t, err)
	require.Equal(t, "Account deleted", msg)
	require.Equal(t, "pw", gotPassword)
	ok, _ := tokens.Has(context.Background())
	require.False(t, ok)
}

func TestAuthService_DeleteAccount_ErrorKeepsToken(t *testing.T) {
	fc := &clienttest.Fake{
		DeleteUserFunc: func(context.Context, string) (string, error) { return "", errors.New("wrong password") },
	}
	tokens := clienttest.NewTokens("tok")
	svc := NewAuthService(fc, tokens, nil)

	_, err := svc.DeleteAccount(context.Background(), "pw")
	require.Error(t, err)
	ok, _ := tokens.Has(context.Background())
	require.True(t, ok)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	fc := &clienttest.Fake{
		UpdateUserFunc: func(_ context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
			return &models.ProfileResult{Message: "ok", User: models.User{Name: upd.Name}}, nil
		},
	}
	svc := NewAuthService(fc, clienttest.NewTokens("tok"), nil)

	res, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "New"})
	require.NoError(t, err)
	require.Equal(t, "New", res.User.Name)
}
