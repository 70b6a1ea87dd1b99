// Package navigation restores the position in the recipe list after the
// user comes back from a recipe.
package navigation

import (
	"context"
	"sync"

	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/repositories/returnstate"
	"github.com/pt428/recipes/internal/common"
	"github.com/pt428/recipes/internal/logging"
)

// DefaultState is where the list starts when nothing was saved.
var DefaultState = models.ReturnState{Page: 1, View: models.ViewAll}

// History owns the "return to list" record. Push keeps it in memory and
// persists it so a restarted client can still return. Restore resolves it
// with this precedence:
//
//  1. state carried by the route transition
//  2. the in-memory record
//  3. the persisted record
//  4. DefaultState
//
// Both stored copies are cleared by Restore whatever the outcome.
type History struct {
	mu     sync.Mutex
	repo   returnstate.Repository
	name   string
	mem    *models.ReturnState
	logger logging.Logger
}

func NewHistory(repo returnstate.Repository, logger logging.Logger) *History {
	if logger == nil {
		logger = logging.Discard()
	}
	return &History{repo: repo, name: common.RecipeListStateName, logger: logger}
}

func (h *History) Push(ctx context.Context, st models.ReturnState) error {
	st = normalize(st)

	h.mu.Lock()
	h.mem = &st
	h.mu.Unlock()

	return h.repo.Save(ctx, h.name, st)
}

func (h *History) Restore(ctx context.Context, explicit *models.ReturnState) models.ReturnState {
	h.mu.Lock()
	mem := h.mem
	h.mem = nil
	h.mu.Unlock()

	persisted, found, err := h.repo.Take(ctx, h.name)
	if err != nil {
		h.logger.Warn(ctx, "failed to read saved list position", "error", err)
		found = false
	}

	switch {
	case explicit != nil:
		return normalize(*explicit)
	case mem != nil:
		return *mem
	case found:
		return normalize(persisted)
	default:
		return DefaultState
	}
}

// Clear forgets any saved position.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.mem = nil
	h.mu.Unlock()
	return h.repo.Delete(ctx, h.name)
}

func normalize(st models.ReturnState) models.ReturnState {
	if st.Page < 1 {
		st.Page = 1
	}
	if !st.View.Valid() {
		st.View = models.ViewAll
	}
	if st.ScrollToID < 0 {
		st.ScrollToID = 0
	}
	return st
}
