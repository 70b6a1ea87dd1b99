// Package returnstate persists the "return to list" record written when a
// recipe is opened from the list. A record is read at most once.
package returnstate

import (
	"context"

	"github.com/pt428/recipes/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, name string, st models.ReturnState) error
	// Take returns the record stored under name and deletes it. ok is false
	// when nothing was stored.
	Take(ctx context.Context, name string) (st models.ReturnState, ok bool, err error)
	Delete(ctx context.Context, name string) error
}
