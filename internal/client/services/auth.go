// Package services contains application services for the recipes client.
// This file defines the authentication service: login, registration, logout,
// current-user lookup and the profile operations of the signed-in user.
package services

import (
	"context"
	"fmt"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/session"
	"github.com/pt428/recipes/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: authenticate against the server and persist the token.
//   - Logout: notify the server, then always drop the local token.
//   - CurrentUser: resolve the user behind the stored token; a failed lookup
//     clears the token.
//   - IsLoggedIn: report whether a token is stored.
//   - UpdateProfile / DeleteAccount: profile operations of the signed-in user.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error)
	Register(ctx context.Context, data models.RegisterData) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	IsLoggedIn(ctx context.Context) (bool, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error)
	DeleteAccount(ctx context.Context, password string) (string, error)
}

// authService is the concrete AuthService backed by a remote Client
// and the local token store.
type authService struct {
	client client.Client
	tokens session.TokenStore
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// token store.
func NewAuthService(c client.Client, tokens session.TokenStore, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, tokens: tokens, logger: logger}
}

// Login authenticates and stores the returned token.
func (a *authService) Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error) {
	resp, err := a.client.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.tokens.Set(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return &resp.User, nil
}

// Register creates an account and signs the new user in.
func (a *authService) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	resp, err := a.client.Register(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	if err := a.tokens.Set(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return &resp.User, nil
}

// Logout is best-effort towards the server: its failure is logged and the
// local token is removed regardless.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "server logout failed", "error", err)
	}
	if err := a.tokens.Remove(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

// CurrentUser returns (nil, nil) when no token is stored.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	ok, err := a.tokens.Has(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		if rerr := a.tokens.Remove(ctx); rerr != nil {
			a.logger.Warn(ctx, "cannot remove token", "error", rerr)
		}
		return nil, fmt.Errorf("current user error: %w", err)
	}
	return u, nil
}

func (a *authService) IsLoggedIn(ctx context.Context) (bool, error) {
	return a.tokens.Has(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
	return a.client.UpdateUser(ctx, upd)
}

// DeleteAccount deletes the account and forgets the token on success.
func (a *authService) DeleteAccount(ctx context.Context, password string) (string, error) {
	msg, err := a.client.DeleteUser(ctx, password)
	if err != nil {
		return "", err
	}
	if err := a.tokens.Remove(ctx); err != nil {
		a.logger.Warn(ctx, "cannot remove token", "error", err)
	}
	return msg, nil
}
