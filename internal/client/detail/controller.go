package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/router"
	"github.com/pt428/recipes/internal/logging"
)

const DeletePrompt = "Really delete this recipe? This cannot be undone."

var (
	ErrNoRecipe = errors.New("no recipe loaded")
	ErrNotOwner = errors.New("only the author can change this recipe")
)

// Controller holds one loaded recipe and the actions its owner may take.
type Controller struct {
	client  client.Client
	appBase string
	logger  logging.Logger

	mu        sync.Mutex
	recipe    *models.Recipe
	user      *models.User
	calc      *Calculator
	checklist *Checklist
	onChange  func()
}

// NewController builds a controller composing share links under appBaseURL.
func NewController(c client.Client, appBaseURL string, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		client:    c,
		appBase:   strings.TrimRight(appBaseURL, "/"),
		logger:    logger,
		calc:      NewCalculator(1),
		checklist: NewChecklist(),
	}
}

// OnChange registers a callback run after the recipe changes on the server,
// typically to refresh the listing.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetUser sets the signed-in user (nil when anonymous).
func (c *Controller) SetUser(u *models.User) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()
}

func (c *Controller) show(r *models.Recipe) {
	c.mu.Lock()
	c.recipe = r
	c.calc = NewCalculator(r.Servings)
	c.checklist = NewChecklist()
	c.mu.Unlock()
}

// Load fetches a recipe by id and resets the calculator and checklist.
func (c *Controller) Load(ctx context.Context, id int64) (*models.Recipe, error) {
	r, err := c.client.Recipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load recipe %d: %w", id, err)
	}
	c.show(r)
	return r, nil
}

// LoadShared fetches a recipe through its share token.
func (c *Controller) LoadShared(ctx context.Context, token string) (*models.Recipe, error) {
	r, err := c.client.RecipeByShareToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load shared recipe: %w", err)
	}
	c.show(r)
	return r, nil
}

// Reload refetches the current recipe keeping the calculator target.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	cur := c.recipe
	c.mu.Unlock()
	if cur == nil {
		return ErrNoRecipe
	}

	r, err := c.client.Recipe(ctx, cur.ID)
	if err != nil {
		return fmt.Errorf("reload recipe %d: %w", cur.ID, err)
	}
	c.mu.Lock()
	c.recipe = r
	c.mu.Unlock()
	return nil
}

// Recipe returns a copy of the loaded recipe, or nil.
func (c *Controller) Recipe() *models.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recipe == nil {
		return nil
	}
	r := *c.recipe
	return &r
}

func (c *Controller) Calculator() *Calculator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calc
}

func (c *Controller) Checklist() *Checklist {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checklist
}

// CanEdit reports whether the signed-in user owns the loaded recipe.
func (c *Controller) CanEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recipe != nil && c.recipe.IsOwnedBy(c.user)
}

// ShareURL is the client-side link for the recipe's share token, or "".
func (c *Controller) ShareURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recipe == nil || !c.recipe.Shared() {
		return ""
	}
	return c.appBase + router.SharedPath(models.Deref(c.recipe.ShareToken))
}

func (c *Controller) owned() (*models.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recipe == nil {
		return nil, ErrNoRecipe
	}
	if !c.recipe.IsOwnedBy(c.user) {
		return nil, ErrNotOwner
	}
	return c.recipe, nil
}

// EnableShare turns on link sharing and returns the share URL.
func (c *Controller) EnableShare(ctx context.Context) (string, error) {
	r, err := c.owned()
	if err != nil {
		return "", err
	}

	link, err := c.client.EnableShareLink(ctx, r.ID)
	if err != nil {
		return "", fmt.Errorf("enable sharing: %w", err)
	}

	c.mu.Lock()
	if c.recipe != nil && c.recipe.ID == r.ID {
		token := link.ShareToken
		c.recipe.ShareToken = &token
		c.recipe.Visibility = models.VisibilityLink
	}
	c.mu.Unlock()

	c.notify()
	return c.ShareURL(), nil
}

// DisableShare makes the recipe private. Local state changes first and is
// restored when the server call fails.
func (c *Controller) DisableShare(ctx context.Context) error {
	r, err := c.owned()
	if err != nil {
		return err
	}

	c.mu.Lock()
	prevVis, prevToken := r.Visibility, r.ShareToken
	r.Visibility = models.VisibilityPrivate
	r.ShareToken = nil
	c.mu.Unlock()

	if err := c.client.DisableShareLink(ctx, r.ID); err != nil {
		c.mu.Lock()
		r.Visibility = prevVis
		r.ShareToken = prevToken
		c.mu.Unlock()
		return fmt.Errorf("disable sharing: %w", err)
	}

	c.notify()
	return nil
}

// Delete removes the recipe after confirm approves DeletePrompt. It reports
// whether the recipe was deleted.
func (c *Controller) Delete(ctx context.Context, confirm func(prompt string) bool) (bool, error) {
	r, err := c.owned()
	if err != nil {
		return false, err
	}
	if confirm == nil || !confirm(DeletePrompt) {
		return false, nil
	}

	if err := c.client.DeleteRecipe(ctx, r.ID); err != nil {
		return false, fmt.Errorf("delete recipe %d: %w", r.ID, err)
	}

	c.mu.Lock()
	c.recipe = nil
	c.mu.Unlock()
	c.notify()
	return true, nil
}
