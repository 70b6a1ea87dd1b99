package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/logging"
)

const (
	collectPageSize = 50
	// maxPages stops a misbehaving server from paging forever.
	maxPages       = 1000
	detailsWorkers = 4
)

// RecipeService gathers whole recipe collections for bulk operations such as
// export.
//
// Contract:
//   - Collect: walk every page of the given list view and return the recipes
//     in server order, each with full details.
//   - Details: fetch the full recipe for each id, preserving order.
type RecipeService interface {
	Collect(ctx context.Context, view models.ListView) ([]models.Recipe, error)
	Details(ctx context.Context, ids []int64) ([]models.Recipe, error)
}

type recipeService struct {
	client client.Client
	logger logging.Logger
}

func NewRecipeService(c client.Client, logger logging.Logger) RecipeService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &recipeService{client: c, logger: logger}
}

func (s *recipeService) fetchPage(ctx context.Context, view models.ListView, page int) (*models.RecipePage, error) {
	switch view {
	case models.ViewMine:
		return s.client.MyRecipes(ctx, page, collectPageSize)
	case models.ViewFavorites:
		return s.client.Favorites(ctx, page, collectPageSize)
	case models.ViewAll:
		return s.client.Recipes(ctx, page, collectPageSize)
	default:
		return nil, fmt.Errorf("unknown view %q", view)
	}
}

func (s *recipeService) Collect(ctx context.Context, view models.ListView) ([]models.Recipe, error) {
	var ids []int64
	seen := make(map[int64]struct{})

	for page := 1; page <= maxPages; page++ {
		p, err := s.fetchPage(ctx, view, page)
		if err != nil {
			return nil, fmt.Errorf("error listing recipes (page %d): %w", page, err)
		}
		for _, r := range p.Recipes {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			ids = append(ids, r.ID)
		}
		if page >= p.TotalPages || len(p.Recipes) == 0 {
			break
		}
	}

	s.logger.Debug(ctx, "collected recipe ids", "view", string(view), "count", len(ids))
	return s.Details(ctx, ids)
}

func (s *recipeService) Details(ctx context.Context, ids []int64) ([]models.Recipe, error) {
	out := make([]models.Recipe, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsWorkers)

	for i, id := range ids {
		g.Go(func() error {
			r, err := s.client.Recipe(ctx, id)
			if err != nil {
				return fmt.Errorf("error retrieving recipe %d: %w", id, err)
			}
			out[i] = *r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
