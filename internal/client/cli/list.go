package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pt428/recipes/internal/client/browse"
	"github.com/pt428/recipes/internal/client/forms"
	"github.com/pt428/recipes/internal/client/models"
)

func (a *App) renderList() {
	renderList(a.out, a.browse.State(), a.browse.IsFavorite)
}

// loaded marks the listing fresh and prints it.
func (a *App) loaded(err error) error {
	if err != nil {
		return err
	}
	a.listStale = false
	a.renderList()
	return nil
}

// list shows the listing, switching the tab when one is named. Without
// arguments it reprints the current page, fetching it first if it is stale.
func (a *App) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if !a.listStale {
			a.renderList()
			return nil
		}
		return a.loaded(a.browse.Load(ctx))
	}

	view := models.ListView(args[0])
	if view == "mine" {
		view = models.ViewMine
	}
	if !view.Valid() {
		return errUsage
	}
	if view != models.ViewAll && !a.isLoggedIn() {
		a.println("Please log in first.")
		return nil
	}
	return a.loaded(a.browse.SetView(ctx, view))
}

// search parses "-t soup,quick -c Mains free text". Tags and the category
// may be given by name or id.
func (a *App) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	tags := fs.String("t", "", "comma separated tags")
	category := fs.String("c", "", "category")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	params := models.SearchParams{Query: strings.Join(fs.Args(), " ")}
	if *tags != "" {
		ids, err := a.tagIDs(strings.Split(*tags, ","))
		if err != nil {
			return err
		}
		params.TagIDs = ids
	}
	if *category != "" {
		id, err := a.categoryID(*category)
		if err != nil {
			return err
		}
		params.CategoryID = id
	}

	return a.loaded(a.browse.Search(ctx, params))
}

func (a *App) tagIDs(names []string) ([]int64, error) {
	available := a.browse.Tags()
	var ids []int64
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, err := strconv.ParseInt(name, 10, 64); err == nil {
			ids = append(ids, id)
			continue
		}
		found := false
		for _, t := range available {
			if strings.EqualFold(t.Name, name) {
				ids = append(ids, t.ID)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown tag %q", name)
		}
	}
	return ids, nil
}

func (a *App) categoryID(name string) (int64, error) {
	if id, err := strconv.ParseInt(name, 10, 64); err == nil {
		return id, nil
	}
	for _, c := range a.browse.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func (a *App) page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	return a.loaded(a.browse.GoTo(ctx, n))
}

func (a *App) next(ctx context.Context, _ []string) error {
	return a.loaded(a.browse.Next(ctx))
}

func (a *App) prev(ctx context.Context, _ []string) error {
	return a.loaded(a.browse.Prev(ctx))
}

func (a *App) more(ctx context.Context, _ []string) error {
	if !a.browse.HasMore() {
		a.println("No more recipes.")
		return nil
	}
	n, err := a.browse.LoadMore(ctx)
	if errors.Is(err, browse.ErrBusy) {
		a.println("Still loading, try again in a moment.")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Loaded %d more.\n", n)
	a.renderList()
	return nil
}

func (a *App) fav(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	on, err := a.browse.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if on {
		a.printf("Recipe %d added to favorites.\n", id)
	} else {
		a.printf("Recipe %d removed from favorites.\n", id)
	}
	return nil
}

// tags lists tags matching a prefix, or the most used ones.
func (a *App) tags(ctx context.Context, args []string) error {
	if len(a.browse.Tags()) == 0 {
		if err := a.browse.LoadReferenceData(ctx); err != nil {
			return err
		}
	}
	in := forms.NewTagInput(nil, a.browse.Tags())

	var list []models.Tag
	if len(args) > 0 {
		list = in.Suggestions(strings.Join(args, " "))
	} else {
		a.println("Popular tags:")
		list = in.Popular(forms.PopularLimit)
	}
	if len(list) == 0 {
		a.println("  No tags.")
	}
	for _, t := range list {
		if t.RecipesCount != nil {
			a.printf("  %4d  %s (%d)\n", t.ID, t.Name, *t.RecipesCount)
		} else {
			a.printf("  %4d  %s\n", t.ID, t.Name)
		}
	}
	return nil
}

func (a *App) categories(ctx context.Context, _ []string) error {
	if len(a.browse.Categories()) == 0 {
		if err := a.browse.LoadReferenceData(ctx); err != nil {
			return err
		}
	}
	cats := a.browse.Categories()
	if len(cats) == 0 {
		a.println("  No categories.")
	}
	for _, c := range cats {
		a.printf("  %4d  %s\n", c.ID, c.Name)
	}
	return nil
}
