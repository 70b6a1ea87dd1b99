// Package session keeps the bearer token of the signed-in user.
package session

import (
	"context"
	"fmt"

	"github.com/pt428/recipes/internal/client/repositories/metadata"
	"github.com/pt428/recipes/internal/common"
)

// TokenStore is the single durable credential of the client. There is no
// expiry tracking: a 401 from the backend is the only signal that the token
// is stale.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
	Has(ctx context.Context) (bool, error)
}

type tokenStore struct {
	repo metadata.Repository
	key  string
}

// NewTokenStore stores the token under common.TokenKey.
func NewTokenStore(repo metadata.Repository) TokenStore {
	return &tokenStore{repo: repo, key: common.TokenKey}
}

// Get returns "" when no token is stored.
func (s *tokenStore) Get(ctx context.Context) (string, error) {
	v, _, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return v, nil
}

func (s *tokenStore) Set(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *tokenStore) Remove(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *tokenStore) Has(ctx context.Context) (bool, error) {
	v, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return v != "", nil
}
