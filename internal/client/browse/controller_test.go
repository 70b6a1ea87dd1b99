package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client/clienttest"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/navigation"
	"github.com/pt428/recipes/internal/client/router"
)

type memRepo struct {
	mu   sync.Mutex
	rows map[string]models.ReturnState
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]models.ReturnState{}} }

func (r *memRepo) Save(_ context.Context, name string, st models.ReturnState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[name] = st
	return nil
}

func (r *memRepo) Take(_ context.Context, name string) (models.ReturnState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.rows[name]
	delete(r.rows, name)
	return st, ok, nil
}

func (r *memRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, name)
	return nil
}

func page(total int, ids ...int64) *models.RecipePage {
	p := &models.RecipePage{TotalPages: total, Total: len(ids)}
	for _, id := range ids {
		p.Recipes = append(p.Recipes, models.Recipe{ID: id})
	}
	return p
}

func ids(rs []models.Recipe) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

type fixture struct {
	fc     *clienttest.Fake
	tokens *clienttest.Tokens
	repo   *memRepo
	nav    *router.Navigator
	ctrl   *Controller
}

func newFixture(t *testing.T, fc *clienttest.Fake, token string) *fixture {
	t.Helper()
	f := &fixture{
		fc:     fc,
		tokens: clienttest.NewTokens(token),
		repo:   newMemRepo(),
		nav:    router.NewNavigator(router.New()),
	}
	f.ctrl = New(fc, f.tokens, navigation.NewHistory(f.repo, nil), f.nav, nil, 0)
	return f
}

func TestLoad_AllRecipes_RefreshesFavorites(t *testing.T) {
	fc := &clienttest.Fake{
		RecipesFunc: func(context.Context, int, int) (*models.RecipePage, error) { return page(3, 1, 2), nil },
		FavoriteIDsFunc: func(context.Context) ([]int64, error) {
			return []int64{2}, nil
		},
	}
	f := newFixture(t, fc, "tok")

	require.NoError(t, f.ctrl.Load(context.Background()))
	st := f.ctrl.State()
	require.Equal(t, []int64{1, 2}, ids(st.Recipes))
	require.Equal(t, 3, st.TotalPages)
	require.True(t, f.ctrl.IsFavorite(2))
	require.False(t, f.ctrl.IsFavorite(1))
	require.Equal(t, 1, fc.Count("Recipes(1,12)"))
}

func TestLoad_Anonymous_SkipsFavorites(t *testing.T) {
	fc := &clienttest.Fake{}
	f := newFixture(t, fc, "")

	require.NoError(t, f.ctrl.Load(context.Background()))
	require.Zero(t, fc.Count("FavoriteIDs()"))
}

func TestLoad_FavoritesFailureIsNotFatal(t *testing.T) {
	fc := &clienttest.Fake{
		FavoriteIDsFunc: func(context.Context) ([]int64, error) { return nil, errors.New("down") },
	}
	f := newFixture(t, fc, "tok")
	require.NoError(t, f.ctrl.Load(context.Background()))
}

func TestSetView_ResetsPageAndUsesEndpoint(t *testing.T) {
	fc := &clienttest.Fake{
		RecipesFunc: func(context.Context, int, int) (*models.RecipePage, error) { return page(5, 1), nil },
		FavoritesFunc: func(context.Context, int, int) (*models.RecipePage, error) {
			return page(1, 7, 8), nil
		},
	}
	f := newFixture(t, fc, "tok")
	ctx := context.Background()

	require.NoError(t, f.ctrl.Load(ctx))
	require.NoError(t, f.ctrl.GoTo(ctx, 3))
	require.Equal(t, 3, f.ctrl.State().Page)

	require.NoError(t, f.ctrl.SetView(ctx, models.ViewFavorites))
	st := f.ctrl.State()
	require.Equal(t, 1, st.Page)
	require.Equal(t, models.ViewFavorites, st.View)
	require.Equal(t, 1, fc.Count("Favorites(1,12)"))
	require.Equal(t, []int64{7, 8}, f.ctrl.FavoriteIDs())

	require.NoError(t, f.ctrl.SetView(ctx, models.ViewMine))
	require.Equal(t, 1, fc.Count("MyRecipes(1,12)"))

	require.Error(t, f.ctrl.SetView(ctx, "bogus"))
}

func TestSearch_UsesSearchEndpoint(t *testing.T) {
	var got models.SearchParams
	fc := &clienttest.Fake{
		SearchRecipesFunc: func(_ context.Context, p models.SearchParams, _, _ int) (*models.RecipePage, error) {
			got = p
			return page(1, 4), nil
		},
	}
	f := newFixture(t, fc, "")
	ctx := context.Background()

	require.NoError(t, f.ctrl.Search(ctx, models.SearchParams{Query: "guláš", TagIDs: []int64{3, 5}, CategoryID: 1}))
	require.Equal(t, "guláš", got.Query)
	require.Equal(t, []int64{3, 5}, got.TagIDs)
	require.Equal(t, []int64{4}, ids(f.ctrl.State().Recipes))

	require.NoError(t, f.ctrl.ClearSearch(ctx))
	require.Equal(t, 1, fc.Count("Recipes(1,12)"))
}

func TestPagination_Bounded(t *testing.T) {
	fc := &clienttest.Fake{
		RecipesFunc: func(context.Context, int, int) (*models.RecipePage, error) { return page(2, 1), nil },
	}
	f := newFixture(t, fc, "")
	ctx := context.Background()

	require.NoError(t, f.ctrl.Load(ctx))
	require.NoError(t, f.ctrl.Prev(ctx))
	require.Equal(t, 1, f.ctrl.State().Page)

	require.NoError(t, f.ctrl.Next(ctx))
	require.Equal(t, 2, f.ctrl.State().Page)
	require.NoError(t, f.ctrl.Next(ctx))
	require.Equal(t, 2, f.ctrl.State().Page)

	require.NoError(t, f.ctrl.GoTo(ctx, 99))
	require.Equal(t, 2, f.ctrl.State().Page)
	require.NoError(t, f.ctrl.GoTo(ctx, -1))
	require.Equal(t, 1, f.ctrl.State().Page)

	require.Zero(t, fc.Count("Recipes(3,12)"))
}

func TestLoadMore_AccumulatesAndStops(t *testing.T) {
	fc := &clienttest.Fake{
		RecipesFunc: func(_ context.Context, p, _ int) (*models.RecipePage, error) {
			switch p {
			case 1:
				return page(2, 1, 2), nil
			default:
				return page(2, 2, 3), nil
			}
		},
	}
	f := newFixture(t, fc, "")
	ctx := context.Background()

	require.NoError(t, f.ctrl.Load(ctx))
	require.True(t, f.ctrl.HasMore())

	n, err := f.ctrl.LoadMore(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []int64{1, 2, 3}, ids(f.ctrl.State().Recipes))
	require.False(t, f.ctrl.HasMore())

	n, err = f.ctrl.LoadMore(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, 1, fc.Count("Recipes(2,12)"))
}

func TestLoadMore_Busy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fc := &clienttest.Fake{
		RecipesFunc: func(_ context.Context, p, _ int) (*models.RecipePage, error) {
			if p == 2 {
				close(started)
				<-release
			}
			return page(3, int64(p)), nil
		},
	}
	f := newFixture(t, fc, "")
	ctx := context.Background()
	require.NoError(t, f.ctrl.Load(ctx))

	done := make(chan error, 1)
	go func() {
		_, err := f.ctrl.LoadMore(ctx)
		done <- err
	}()
	<-started

	_, err := f.ctrl.LoadMore(ctx)
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, 1, fc.Count("Recipes(2,12)"))
}

func TestLoadKey(t *testing.T) {
	require.Equal(t, "all|2", loadKey(models.ViewAll, models.SearchParams{}, 2))
	require.Equal(t, "all|1|soup,3,5|7", loadKey(models.ViewAll, models.SearchParams{Query: " soup ", TagIDs: []int64{3, 5}, CategoryID: 7}, 1))
	require.Equal(t, "my|1", loadKey(models.ViewMine, models.SearchParams{Query: "soup"}, 1))
}

func TestToggleFavorite_Twice(t *testing.T) {
	fc := &clienttest.Fake{}
	f := newFixture(t, fc, "tok")
	ctx := context.Background()

	on, err := f.ctrl.ToggleFavorite(ctx, 5)
	require.NoError(t, err)
	require.True(t, on)
	require.True(t, f.ctrl.IsFavorite(5))

	on, err = f.ctrl.ToggleFavorite(ctx, 5)
	require.NoError(t, err)
	require.False(t, on)
	require.False(t, f.ctrl.IsFavorite(5))

	require.Equal(t, 1, fc.Count("AddFavorite(5)"))
	require.Equal(t, 1, fc.Count("RemoveFavorite(5)"))
}

func TestToggleFavorite_RollsBack(t *testing.T) {
	fc := &clienttest.Fake{
		AddFavoriteFunc: func(context.Context, int64) error { return errors.New("down") },
	}
	f := newFixture(t, fc, "tok")

	on, err := f.ctrl.ToggleFavorite(context.Background(), 5)
	require.Error(t, err)
	require.False(t, on)
	require.False(t, f.ctrl.IsFavorite(5))
}

func TestToggleFavorite_FavoritesViewRemovesCard(t *testing.T) {
	fail := true
	fc := &clienttest.Fake{
		FavoritesFunc: func(context.Context, int, int) (*models.RecipePage, error) { return page(1, 1, 2), nil },
		RemoveFavoriteFunc: func(context.Context, int64) error {
			if fail {
				return errors.New("down")
			}
			return nil
		},
	}
	f := newFixture(t, fc, "tok")
	ctx := context.Background()
	require.NoError(t, f.ctrl.SetView(ctx, models.ViewFavorites))

	_, err := f.ctrl.ToggleFavorite(ctx, 1)
	require.Error(t, err)
	require.Equal(t, []int64{1, 2}, ids(f.ctrl.State().Recipes))
	require.True(t, f.ctrl.IsFavorite(1))

	fail = false
	_, err = f.ctrl.ToggleFavorite(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, ids(f.ctrl.State().Recipes))
	require.Equal(t, 1, f.ctrl.State().Total)
}

func TestLoadReferenceData(t *testing.T) {
	fc := &clienttest.Fake{
		TagsFunc: func(context.Context) ([]models.Tag, error) { return []models.Tag{{ID: 1, Name: "soup"}}, nil },
		CategoriesFunc: func(context.Context) ([]models.Category, error) {
			return []models.Category{{ID: 2, Name: "Mains"}}, nil
		},
	}
	f := newFixture(t, fc, "")
	require.NoError(t, f.ctrl.LoadReferenceData(context.Background()))
	require.Len(t, f.ctrl.Tags(), 1)
	require.Len(t, f.ctrl.Categories(), 1)

	fc.CategoriesFunc = func(context.Context) ([]models.Category, error) { return nil, errors.New("down") }
	require.Error(t, f.ctrl.LoadReferenceData(context.Background()))
}

func TestOpenAndReturn(t *testing.T) {
	fc := &clienttest.Fake{
		MyRecipesFunc: func(context.Context, int, int) (*models.RecipePage, error) { return page(4, 10, 11), nil },
	}
	f := newFixture(t, fc, "tok")
	ctx := context.Background()

	require.NoError(t, f.ctrl.SetView(ctx, models.ViewMine))
	require.NoError(t, f.ctrl.GoTo(ctx, 3))

	route := f.ctrl.Open(ctx, 11)
	require.Equal(t, router.RouteRecipe, route.Name)
	require.Equal(t, int64(11), route.RecipeID())

	// Another tab wipes the controller position before coming back.
	require.NoError(t, f.ctrl.SetView(ctx, models.ViewAll))

	require.NoError(t, f.ctrl.Return(ctx, f.nav.TakeState()))
	st := f.ctrl.State()
	require.Equal(t, models.ViewMine, st.View)
	require.Equal(t, 3, st.Page)
	require.Equal(t, int64(11), st.Highlight)

	// The persisted copy was consumed.
	_, found, _ := f.repo.Take(ctx, "recipe_list")
	require.False(t, found)
}

func TestReturn_WithoutStateUsesDefaults(t *testing.T) {
	f := newFixture(t, &clienttest.Fake{}, "")
	require.NoError(t, f.ctrl.Return(context.Background(), nil))
	st := f.ctrl.State()
	require.Equal(t, models.ViewAll, st.View)
	require.Equal(t, 1, st.Page)
	require.Zero(t, st.Highlight)
}
