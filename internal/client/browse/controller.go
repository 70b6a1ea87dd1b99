// Package browse owns the paginated, filterable recipe listing together with
// the favorites overlay and the return-to-list bookkeeping.
package browse

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/navigation"
	"github.com/pt428/recipes/internal/client/router"
	"github.com/pt428/recipes/internal/logging"
)

const DefaultPageSize = 12

// ErrBusy is returned by LoadMore while a previous LoadMore is in flight.
var ErrBusy = errors.New("a load is already in progress")

// Session reports whether a user is signed in.
type Session interface {
	Has(ctx context.Context) (bool, error)
}

// Navigator moves the application to another route.
type Navigator interface {
	Go(path string, state *models.ReturnState) router.Route
}

// State is a snapshot of the listing for rendering.
type State struct {
	View       models.ListView
	Search     models.SearchParams
	Page       int
	TotalPages int
	Total      int
	Recipes    []models.Recipe
	Highlight  int64
}

type Controller struct {
	client   client.Client
	session  Session
	history  *navigation.History
	nav      Navigator
	logger   logging.Logger
	pageSize int

	loads singleflight.Group

	mu          sync.Mutex
	view        models.ListView
	search      models.SearchParams
	page        int
	totalPages  int
	total       int
	recipes     []models.Recipe
	favorites   map[int64]struct{}
	highlight   int64
	loadingMore bool
	tags        []models.Tag
	categories  []models.Category
}

// New builds a controller showing page 1 of all recipes. pageSize <= 0 means
// DefaultPageSize.
func New(c client.Client, session Session, history *navigation.History, nav Navigator, logger logging.Logger, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		client:     c,
		session:    session,
		history:    history,
		nav:        nav,
		logger:     logger,
		pageSize:   pageSize,
		view:       models.ViewAll,
		page:       1,
		totalPages: 1,
		favorites:  make(map[int64]struct{}),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		View:       c.view,
		Search:     c.search,
		Page:       c.page,
		TotalPages: c.totalPages,
		Total:      c.total,
		Recipes:    slices.Clone(c.recipes),
		Highlight:  c.highlight,
	}
}

func (c *Controller) IsFavorite(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.favorites[id]
	return ok
}

// FavoriteIDs returns the known favorite ids in ascending order.
func (c *Controller) FavoriteIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int64, 0, len(c.favorites))
	for id := range c.favorites {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (c *Controller) Tags() []models.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tags)
}

func (c *Controller) Categories() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.categories)
}

func loadKey(view models.ListView, search models.SearchParams, page int) string {
	var b strings.Builder
	b.WriteString(string(view))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(page))
	if view == models.ViewAll && search.Active() {
		b.WriteByte('|')
		b.WriteString(strings.TrimSpace(search.Query))
		for _, id := range search.TagIDs {
			b.WriteByte(',')
			b.WriteString(strconv.FormatInt(id, 10))
		}
		b.WriteByte('|')
		b.WriteString(strconv.FormatInt(search.CategoryID, 10))
	}
	return b.String()
}

// fetch loads one page; concurrent fetches of the same page share one request.
func (c *Controller) fetch(ctx context.Context, view models.ListView, search models.SearchParams, page int) (*models.RecipePage, error) {
	v, err, _ := c.loads.Do(loadKey(view, search, page), func() (any, error) {
		switch view {
		case models.ViewMine:
			return c.client.MyRecipes(ctx, page, c.pageSize)
		case models.ViewFavorites:
			return c.client.Favorites(ctx, page, c.pageSize)
		default:
			if search.Active() {
				return c.client.SearchRecipes(ctx, search, page, c.pageSize)
			}
			return c.client.Recipes(ctx, page, c.pageSize)
		}
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RecipePage), nil
}

// Load fetches the current page of the current view and replaces the listing.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	view, search, page := c.view, c.search, c.page
	c.mu.Unlock()

	p, err := c.fetch(ctx, view, search, page)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}

	c.mu.Lock()
	if c.view != view || c.page != page {
		c.mu.Unlock()
		return nil
	}
	c.recipes = slices.Clone(p.Recipes)
	c.totalPages = max(p.TotalPages, 1)
	c.total = p.Total
	if view == models.ViewFavorites {
		c.markFavoritesLocked(p.Recipes)
	}
	c.mu.Unlock()

	if view != models.ViewFavorites {
		c.refreshFavorites(ctx)
	}
	return nil
}

func (c *Controller) markFavoritesLocked(recipes []models.Recipe) {
	for _, r := range recipes {
		c.favorites[r.ID] = struct{}{}
	}
}

// refreshFavorites replaces the favorite set when a user is signed in.
// Failures leave the previous set in place.
func (c *Controller) refreshFavorites(ctx context.Context) {
	if c.session == nil {
		return
	}
	ok, err := c.session.Has(ctx)
	if err != nil || !ok {
		return
	}
	ids, err := c.client.FavoriteIDs(ctx)
	if err != nil {
		c.logger.Warn(ctx, "cannot refresh favorites", "error", err)
		return
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	c.mu.Lock()
	c.favorites = set
	c.mu.Unlock()
}

// SetView switches the tab and reloads from page 1.
func (c *Controller) SetView(ctx context.Context, view models.ListView) error {
	if !view.Valid() {
		return fmt.Errorf("unknown view %q", view)
	}
	c.mu.Lock()
	c.view = view
	c.page = 1
	c.highlight = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

// Search applies new search parameters to the all-recipes view and reloads
// from page 1. Empty parameters go back to the plain listing.
func (c *Controller) Search(ctx context.Context, params models.SearchParams) error {
	c.mu.Lock()
	c.search = models.SearchParams{
		Query:      params.Query,
		TagIDs:     slices.Clone(params.TagIDs),
		CategoryID: params.CategoryID,
	}
	c.view = models.ViewAll
	c.page = 1
	c.highlight = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Controller) ClearSearch(ctx context.Context) error {
	return c.Search(ctx, models.SearchParams{})
}

// GoTo loads the given page, clamped to the known page range.
func (c *Controller) GoTo(ctx context.Context, page int) error {
	c.mu.Lock()
	c.page = clamp(page, 1, c.totalPages)
	c.highlight = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	page := c.page + 1
	last := page > c.totalPages
	c.mu.Unlock()
	if last {
		return nil
	}
	return c.GoTo(ctx, page)
}

func (c *Controller) Prev(ctx context.Context) error {
	c.mu.Lock()
	page := c.page - 1
	c.mu.Unlock()
	if page < 1 {
		return nil
	}
	return c.GoTo(ctx, page)
}

// HasMore reports whether LoadMore has another page to append.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page < c.totalPages
}

// LoadMore appends the next page to the listing. It returns the number of
// recipes added; recipes already listed are skipped.
func (c *Controller) LoadMore(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.loadingMore {
		c.mu.Unlock()
		return 0, ErrBusy
	}
	if c.page >= c.totalPages {
		c.mu.Unlock()
		return 0, nil
	}
	c.loadingMore = true
	view, search, next := c.view, c.search, c.page+1
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loadingMore = false
		c.mu.Unlock()
	}()

	p, err := c.fetch(ctx, view, search, next)
	if err != nil {
		return 0, fmt.Errorf("load more recipes: %w", err)
	}

	c.mu.Lock()
	if c.view != view {
		c.mu.Unlock()
		return 0, nil
	}
	listed := make(map[int64]struct{}, len(c.recipes))
	for _, r := range c.recipes {
		listed[r.ID] = struct{}{}
	}
	added := 0
	for _, r := range p.Recipes {
		if _, dup := listed[r.ID]; dup {
			continue
		}
		c.recipes = append(c.recipes, r)
		added++
	}
	c.page = next
	c.totalPages = max(p.TotalPages, 1)
	c.total = p.Total
	if view == models.ViewFavorites {
		c.markFavoritesLocked(p.Recipes)
	}
	c.mu.Unlock()

	if view != models.ViewFavorites {
		c.refreshFavorites(ctx)
	}
	return added, nil
}

// ToggleFavorite flips the favorite flag of a recipe, updating local state
// before the server call and restoring it if the call fails. It returns the
// new flag.
func (c *Controller) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	_, was := c.favorites[id]
	prevRecipes := c.recipes
	prevTotal := c.total
	if was {
		delete(c.favorites, id)
		if c.view == models.ViewFavorites {
			c.recipes = slices.DeleteFunc(slices.Clone(c.recipes), func(r models.Recipe) bool { return r.ID == id })
			if len(c.recipes) != len(prevRecipes) {
				c.total--
			}
		}
	} else {
		c.favorites[id] = struct{}{}
	}
	c.mu.Unlock()

	var err error
	if was {
		err = c.client.RemoveFavorite(ctx, id)
	} else {
		err = c.client.AddFavorite(ctx, id)
	}
	if err == nil {
		return !was, nil
	}

	c.mu.Lock()
	if was {
		c.favorites[id] = struct{}{}
		c.recipes = prevRecipes
		c.total = prevTotal
	} else {
		delete(c.favorites, id)
	}
	c.mu.Unlock()
	return was, fmt.Errorf("toggle favorite: %w", err)
}

// LoadReferenceData fetches tags and categories in parallel.
func (c *Controller) LoadReferenceData(ctx context.Context) error {
	var (
		tags       []models.Tag
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tags, err = c.client.Tags(gctx)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = c.client.Categories(gctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.Lock()
	c.tags = tags
	c.categories = categories
	c.mu.Unlock()
	return nil
}

// Open records where the user is in the listing and navigates to the
// recipe.
func (c *Controller) Open(ctx context.Context, id int64) router.Route {
	c.mu.Lock()
	st := models.ReturnState{Page: c.page, ScrollToID: id, View: c.view}
	c.mu.Unlock()

	if err := c.history.Push(ctx, st); err != nil {
		c.logger.Warn(ctx, "cannot persist return state", "error", err)
	}
	return c.nav.Go(router.RecipePath(id), &st)
}

// Return restores the listing position recorded by Open, preferring
// explicit over any stored state, and reloads it. The recipe that was opened
// becomes the highlighted one.
func (c *Controller) Return(ctx context.Context, explicit *models.ReturnState) error {
	st := c.history.Restore(ctx, explicit)

	c.mu.Lock()
	if st.View != c.view {
		c.search = models.SearchParams{}
	}
	c.view = st.View
	c.page = st.Page
	c.totalPages = max(c.totalPages, st.Page)
	c.highlight = st.ScrollToID
	c.mu.Unlock()

	return c.Load(ctx)
}
