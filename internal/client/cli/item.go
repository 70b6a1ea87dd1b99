package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/pt428/recipes/internal/client/detail"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/router"
)

var errNoRecipe = errors.New("no recipe is open, use show <id> first")

func (a *App) renderRecipe() {
	r := a.detail.Recipe()
	if r == nil {
		return
	}
	renderRecipe(a.out, r, a.detail.Calculator(), a.detail.Checklist(), a.client.ImageURL(models.Deref(r.ImagePath)))
	if url := a.detail.ShareURL(); url != "" {
		a.printf("\nShare link: %s\n", url)
	}
}

// show opens a recipe from the listing, remembering the listing position.
func (a *App) show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	a.browse.Open(ctx, id)
	return a.loadRecipe(ctx, id)
}

func (a *App) loadRecipe(ctx context.Context, id int64) error {
	if _, err := a.detail.Load(ctx, id); err != nil {
		return err
	}
	a.renderRecipe()
	return nil
}

// back returns to the listing where show left it.
func (a *App) back(ctx context.Context, _ []string) error {
	state := a.nav.TakeState()
	a.nav.Go("/", nil)
	return a.loaded(a.browse.Return(ctx, state))
}

func (a *App) shared(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.nav.Go(router.SharedPath(args[0]), nil)
	return a.loadShared(ctx, args[0])
}

func (a *App) loadShared(ctx context.Context, token string) error {
	if _, err := a.detail.LoadShared(ctx, token); err != nil {
		return err
	}
	a.renderRecipe()
	return nil
}

// open resolves an application path the way the web app routes it.
// Unknown paths show the listing.
func (a *App) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	path := args[0]
	if base := strings.TrimRight(a.config.AppBaseURL, "/"); base != "" {
		path = strings.TrimPrefix(path, base)
	}

	route := a.nav.Go(path, nil)
	switch route.Name {
	case router.RouteRecipe:
		return a.show(ctx, []string{strconv.FormatInt(route.RecipeID(), 10)})
	case router.RouteShared:
		return a.loadShared(ctx, route.Token())
	case router.RouteProfileEdit:
		if !a.isLoggedIn() {
			a.println("Please log in first.")
			return nil
		}
		return a.profile(ctx, nil)
	case router.RouteProfileDelete:
		if !a.isLoggedIn() {
			a.println("Please log in first.")
			return nil
		}
		return a.deleteAccount(ctx, nil)
	default:
		return a.loaded(a.browse.Load(ctx))
	}
}

// scale changes the target yield: a number sets it, + and - step it, reset
// restores the recipe's own yield.
func (a *App) scale(_ context.Context, args []string) error {
	if a.detail.Recipe() == nil {
		return errNoRecipe
	}
	if len(args) != 1 {
		return errUsage
	}

	calc := a.detail.Calculator()
	switch args[0] {
	case "+":
		calc.Inc()
	case "-":
		calc.Dec()
	case "reset":
		calc.Reset()
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		calc.Set(n)
	}
	a.renderRecipe()
	return nil
}

func (a *App) check(_ context.Context, args []string) error {
	r := a.detail.Recipe()
	if r == nil {
		return errNoRecipe
	}
	if len(args) != 2 {
		return errUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return errUsage
	}

	checks := a.detail.Checklist()
	switch args[0] {
	case "ingredient", "i":
		if n > len(r.Ingredients) {
			return errUsage
		}
		checks.ToggleIngredient(n)
	case "step", "s":
		if n > len(r.Steps) {
			return errUsage
		}
		checks.ToggleStep(n)
	default:
		return errUsage
	}
	a.renderRecipe()
	return nil
}

func (a *App) share(ctx context.Context, _ []string) error {
	url, err := a.detail.EnableShare(ctx)
	if err != nil {
		return ownerError(err)
	}
	a.printf("Share link: %s\n", url)
	return nil
}

func (a *App) unshare(ctx context.Context, _ []string) error {
	if err := a.detail.DisableShare(ctx); err != nil {
		return ownerError(err)
	}
	a.println("Share link disabled, the recipe is private.")
	return nil
}

func (a *App) deleteRecipe(ctx context.Context, _ []string) error {
	deleted, err := a.detail.Delete(ctx, func(prompt string) bool {
		return Confirm(a.reader, prompt, a.out)
	})
	if err != nil {
		return ownerError(err)
	}
	if !deleted {
		a.println("Cancelled.")
		return nil
	}
	a.println("Recipe deleted.")

	// Come back to the same page, without a highlight.
	state := a.nav.TakeState()
	if state != nil {
		state.ScrollToID = 0
	}
	a.nav.Go("/", nil)
	return a.loaded(a.browse.Return(ctx, state))
}

func ownerError(err error) error {
	if errors.Is(err, detail.ErrNoRecipe) {
		return errNoRecipe
	}
	return err
}
