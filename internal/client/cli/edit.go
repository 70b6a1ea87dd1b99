package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pt428/recipes/internal/client/detail"
	"github.com/pt428/recipes/internal/client/forms"
	"github.com/pt428/recipes/internal/client/models"
)

func (a *App) newRecipe(ctx context.Context, _ []string) error {
	return a.runRecipeForm(ctx, forms.NewRecipeForm(nil, a.browse.Tags()))
}

func (a *App) editRecipe(ctx context.Context, _ []string) error {
	r := a.detail.Recipe()
	if r == nil {
		return errNoRecipe
	}
	if !a.detail.CanEdit() {
		return detail.ErrNotOwner
	}
	return a.runRecipeForm(ctx, forms.NewRecipeForm(r, a.browse.Tags()))
}

// runRecipeForm fills the form interactively and submits it. When the
// server rejects it the errors are shown and the user may correct the
// draft and try again.
func (a *App) runRecipeForm(ctx context.Context, f *forms.RecipeForm) error {
	for {
		if err := a.fillRecipeForm(f); err != nil {
			return err
		}

		saved, err := f.Submit(ctx, a.client)
		if err == nil {
			a.printf("Recipe #%d saved.\n", saved.ID)
			a.listStale = true
			return a.loadRecipe(ctx, saved.ID)
		}

		if saved != nil {
			a.listStale = true
			a.printf("Recipe #%d saved, but the image upload failed.\n", saved.ID)
			return &fieldError{errs: f.Errors}
		}

		a.printFieldErrors(f.Errors)
		if !Confirm(a.reader, "Correct the recipe and try again?", a.out) {
			return nil
		}
	}
}

func (a *App) prompt(label, current string) (string, error) {
	return GetDefaultText(a.reader, label, current, a.out)
}

// setField prompts until the value is accepted by the form.
func (a *App) setField(f *forms.RecipeForm, field, label, current string) error {
	for {
		v, err := a.prompt(label, current)
		if err != nil {
			return err
		}
		if err := f.SetField(field, v); err != nil {
			a.println(err.Error())
			continue
		}
		return nil
	}
}

func (a *App) fillRecipeForm(f *forms.RecipeForm) error {
	if f.IsEdit() {
		a.println("Editing recipe. Press Enter to keep a value.")
	} else {
		a.println("New recipe.")
	}

	steps := []struct {
		field, label, current string
	}{
		{forms.FieldTitle, "Title", f.Title},
		{forms.FieldDescription, "Description", f.Description},
		{forms.FieldDifficulty, "Difficulty (easy, medium, hard)", string(f.Difficulty)},
		{forms.FieldPrepTime, "Preparation time in minutes", strconv.Itoa(f.PrepTime)},
		{forms.FieldCookTime, "Cooking time in minutes", strconv.Itoa(f.CookTime)},
		{forms.FieldServings, "Yield", strconv.Itoa(f.Servings)},
		{forms.FieldServingType, "Yield unit (servings, pieces)", string(f.ServingType)},
		{forms.FieldVisibility, "Visibility (public, private, link)", string(f.Visibility)},
	}
	for _, s := range steps {
		if err := a.setField(f, s.field, s.label, s.current); err != nil {
			return err
		}
	}

	if err := a.fillCategory(f); err != nil {
		return err
	}
	if err := a.fillIngredients(f); err != nil {
		return err
	}
	if err := a.fillSteps(f); err != nil {
		return err
	}
	if err := a.fillTags(f); err != nil {
		return err
	}
	return a.fillImage(f)
}

func (a *App) fillCategory(f *forms.RecipeForm) error {
	cats := a.browse.Categories()
	if len(cats) == 0 {
		return nil
	}
	names := make([]string, 0, len(cats))
	current := "-"
	for _, c := range cats {
		names = append(names, fmt.Sprintf("%d=%s", c.ID, c.Name))
		if c.ID == f.CategoryID {
			current = c.Name
		}
	}
	a.printf("Categories: %s\n", strings.Join(names, ", "))

	for {
		v, err := a.prompt("Category (name or id, - for none)", current)
		if err != nil {
			return err
		}
		if v == "-" {
			return f.SetField(forms.FieldCategory, "0")
		}
		id, err := a.categoryID(v)
		if err != nil {
			a.println(err.Error())
			continue
		}
		return f.SetField(forms.FieldCategory, strconv.FormatInt(id, 10))
	}
}

// parseIngredient reads "name", "amount | name", "amount | unit | name" or
// "amount | unit | name | note".
func parseIngredient(line string) models.IngredientInput {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		return models.IngredientInput{Name: parts[0]}
	case 2:
		return models.IngredientInput{Amount: parts[0], Name: parts[1]}
	case 3:
		return models.IngredientInput{Amount: parts[0], Unit: parts[1], Name: parts[2]}
	default:
		return models.IngredientInput{Amount: parts[0], Unit: parts[1], Name: parts[2], Note: strings.Join(parts[3:], " | ")}
	}
}

func formatIngredient(ing models.IngredientInput) string {
	switch {
	case ing.Note != "":
		return strings.Join([]string{ing.Amount, ing.Unit, ing.Name, ing.Note}, " | ")
	case ing.Unit != "":
		return strings.Join([]string{ing.Amount, ing.Unit, ing.Name}, " | ")
	case ing.Amount != "":
		return ing.Amount + " | " + ing.Name
	default:
		return ing.Name
	}
}

func (a *App) keepList(label string, current []string) bool {
	if len(current) == 0 {
		return false
	}
	a.printf("Current %s:\n", label)
	for i, line := range current {
		a.printf("  %d. %s\n", i+1, line)
	}
	return !Confirm(a.reader, "Replace the "+label+"?", a.out)
}

func (a *App) fillIngredients(f *forms.RecipeForm) error {
	var current []string
	for _, ing := range f.Ingredients {
		if ing.Name != "" {
			current = append(current, formatIngredient(ing))
		}
	}
	if a.keepList("ingredients", current) {
		return nil
	}

	lines, err := GetMultiline(a.reader, "Ingredients, one per line: amount | unit | name | note", a.out)
	if err != nil {
		return err
	}

	for len(f.Ingredients) > 0 {
		if err := f.RemoveIngredient(len(f.Ingredients) - 1); err != nil {
			return err
		}
	}
	for i, line := range lines {
		ing := parseIngredient(line)
		f.AddIngredient()
		for field, v := range map[string]string{"amount": ing.Amount, "unit": ing.Unit, "name": ing.Name, "note": ing.Note} {
			if err := f.UpdateIngredient(i, field, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) fillSteps(f *forms.RecipeForm) error {
	var current []string
	for _, s := range f.Steps {
		if s.Text != "" {
			current = append(current, s.Text)
		}
	}
	if a.keepList("steps", current) {
		return nil
	}

	lines, err := GetMultiline(a.reader, "Steps, one per line", a.out)
	if err != nil {
		return err
	}

	for len(f.Steps) > 0 {
		if err := f.RemoveStep(len(f.Steps) - 1); err != nil {
			return err
		}
	}
	for i, line := range lines {
		f.AddStep()
		if err := f.UpdateStep(i, line); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) fillTags(f *forms.RecipeForm) error {
	if popular := f.Tags.Popular(forms.PopularLimit); len(f.Tags.Selected()) == 0 && len(popular) > 0 {
		names := make([]string, 0, len(popular))
		for _, t := range popular {
			names = append(names, t.Name)
		}
		a.printf("Popular tags: %s\n", strings.Join(names, ", "))
	}

	v, err := a.prompt("Tags (comma separated, - for none)", strings.Join(f.Tags.Selected(), ", "))
	if err != nil {
		return err
	}
	for {
		if _, ok := f.Tags.RemoveLast(); !ok {
			break
		}
	}
	if v == "-" {
		return nil
	}
	for _, name := range strings.Split(v, ",") {
		f.Tags.Add(name)
	}
	return nil
}

func (a *App) fillImage(f *forms.RecipeForm) error {
	for {
		path, err := getSimpleText(a.reader, "Image file (Enter to skip)", a.out)
		if err != nil {
			return err
		}
		if path == "" {
			f.ClearImage()
			return nil
		}
		if err := f.StageImage(path, a.config.MaxImageDimension); err != nil {
			a.println("Cannot use this image:", err.Error())
			continue
		}
		a.println("Image:", f.Image.Preview())
		return nil
	}
}
