package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pt428/recipes/internal/client/images"
	"github.com/pt428/recipes/internal/client/models"
)

// RecipeSaver is the part of the API client the recipe form submits to.
type RecipeSaver interface {
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	UploadRecipeImage(ctx context.Context, id int64, img models.ImageFile) (*models.ImageUpload, error)
}

// Field names accepted by SetField.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category_id"
	FieldDifficulty  = "difficulty"
	FieldPrepTime    = "prep_time_minutes"
	FieldCookTime    = "cook_time_minutes"
	FieldServings    = "servings"
	FieldServingType = "serving_type"
	FieldVisibility  = "visibility"
	FieldImage       = "image"
)

// RecipeForm is the draft of a new or edited recipe.
type RecipeForm struct {
	existing *models.Recipe

	Title       string
	Description string
	CategoryID  int64
	Difficulty  models.Difficulty
	PrepTime    int
	CookTime    int
	Servings    int
	ServingType models.ServingType
	Visibility  models.Visibility
	Ingredients []models.IngredientInput
	Steps       []models.StepInput

	Tags   *TagInput
	Image  *images.Staged
	Errors FieldErrors
}

// NewRecipeForm starts a draft. With existing == nil the draft has the
// defaults of a new recipe; otherwise it copies existing.
func NewRecipeForm(existing *models.Recipe, available []models.Tag) *RecipeForm {
	f := &RecipeForm{
		Difficulty:  models.DifficultyEasy,
		Servings:    4,
		ServingType: models.ServingTypeServings,
		Visibility:  models.VisibilityPublic,
		Ingredients: []models.IngredientInput{{}},
		Steps:       []models.StepInput{{OrderIndex: 1}},
		Errors:      FieldErrors{},
	}

	if existing == nil {
		f.Tags = NewTagInput(nil, available)
		return f
	}

	f.existing = existing
	f.Title = existing.Title
	f.Description = models.Deref(existing.Description)
	if existing.CategoryID != nil {
		f.CategoryID = *existing.CategoryID
	}
	if existing.Difficulty != "" {
		f.Difficulty = existing.Difficulty
	}
	f.PrepTime = existing.PrepTimeMinutes
	f.CookTime = existing.CookTimeMinutes
	if existing.Servings > 0 {
		f.Servings = existing.Servings
	}
	if existing.ServingType != "" {
		f.ServingType = existing.ServingType
	}
	if existing.Visibility != "" {
		f.Visibility = existing.Visibility
	}

	if existing.Ingredients != nil {
		f.Ingredients = make([]models.IngredientInput, 0, len(existing.Ingredients))
		for _, ing := range existing.Ingredients {
			f.Ingredients = append(f.Ingredients, models.IngredientInput{
				Amount: models.Deref(ing.Amount),
				Unit:   models.Deref(ing.Unit),
				Name:   ing.Name,
				Note:   models.Deref(ing.Note),
			})
		}
	}
	if existing.Steps != nil {
		f.Steps = make([]models.StepInput, 0, len(existing.Steps))
		for _, s := range existing.Steps {
			f.Steps = append(f.Steps, models.StepInput{OrderIndex: s.OrderIndex, Text: s.Text})
		}
	}

	names := make([]string, 0, len(existing.Tags))
	for _, t := range existing.Tags {
		names = append(names, t.Name)
	}
	f.Tags = NewTagInput(names, available)

	return f
}

// IsEdit reports whether the form updates an existing recipe.
func (f *RecipeForm) IsEdit() bool {
	return f.existing != nil
}

// SetField sets a scalar field from text input and clears its error.
// Unparsable numbers fall back to 0 for times and 1 for servings.
func (f *RecipeForm) SetField(name, value string) error {
	switch name {
	case FieldTitle:
		f.Title = value
	case FieldDescription:
		f.Description = value
	case FieldCategory:
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || id < 0 {
			id = 0
		}
		f.CategoryID = id
	case FieldDifficulty:
		d := models.Difficulty(strings.TrimSpace(value))
		if !d.Valid() {
			return fmt.Errorf("%s %q: %w", name, value, ErrInvalidValue)
		}
		f.Difficulty = d
	case FieldPrepTime:
		f.PrepTime = atoiOr(value, 0)
	case FieldCookTime:
		f.CookTime = atoiOr(value, 0)
	case FieldServings:
		f.Servings = atoiOr(value, 1)
	case FieldServingType:
		st := models.ServingType(strings.TrimSpace(value))
		if !st.Valid() {
			return fmt.Errorf("%s %q: %w", name, value, ErrInvalidValue)
		}
		f.ServingType = st
	case FieldVisibility:
		v := models.Visibility(strings.TrimSpace(value))
		if !v.Valid() {
			return fmt.Errorf("%s %q: %w", name, value, ErrInvalidValue)
		}
		f.Visibility = v
	default:
		return fmt.Errorf("%s: %w", name, ErrUnknownField)
	}

	f.Errors.Clear(name)
	return nil
}

// atoiOr parses the leading integer of s; "" or 0 yields def.
func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return def
	}
	return n
}

func (f *RecipeForm) AddIngredient() {
	f.Ingredients = append(f.Ingredients, models.IngredientInput{})
}

func (f *RecipeForm) RemoveIngredient(i int) error {
	if i < 0 || i >= len(f.Ingredients) {
		return fmt.Errorf("ingredient %d: %w", i, ErrOutOfRange)
	}
	f.Ingredients = append(f.Ingredients[:i], f.Ingredients[i+1:]...)
	return nil
}

// UpdateIngredient sets one of amount, unit, name or note.
func (f *RecipeForm) UpdateIngredient(i int, field, value string) error {
	if i < 0 || i >= len(f.Ingredients) {
		return fmt.Errorf("ingredient %d: %w", i, ErrOutOfRange)
	}
	ing := &f.Ingredients[i]
	switch field {
	case "amount":
		ing.Amount = value
	case "unit":
		ing.Unit = value
	case "name":
		ing.Name = value
	case "note":
		ing.Note = value
	default:
		return fmt.Errorf("ingredient field %s: %w", field, ErrUnknownField)
	}
	f.Errors.Clear(fmt.Sprintf("ingredients.%d.%s", i, field))
	return nil
}

func (f *RecipeForm) AddStep() {
	f.Steps = append(f.Steps, models.StepInput{OrderIndex: len(f.Steps) + 1})
}

// RemoveStep drops step i and renumbers the rest from 1.
func (f *RecipeForm) RemoveStep(i int) error {
	if i < 0 || i >= len(f.Steps) {
		return fmt.Errorf("step %d: %w", i, ErrOutOfRange)
	}
	f.Steps = append(f.Steps[:i], f.Steps[i+1:]...)
	for j := range f.Steps {
		f.Steps[j].OrderIndex = j + 1
	}
	return nil
}

func (f *RecipeForm) UpdateStep(i int, text string) error {
	if i < 0 || i >= len(f.Steps) {
		return fmt.Errorf("step %d: %w", i, ErrOutOfRange)
	}
	f.Steps[i].Text = text
	f.Errors.Clear(fmt.Sprintf("steps.%d.text", i))
	return nil
}

// StageImage reads a local picture to upload after the recipe is saved.
func (f *RecipeForm) StageImage(path string, maxDim int) error {
	img, err := images.Stage(path, maxDim)
	if err != nil {
		return err
	}
	f.Image = img
	f.Errors.Clear(FieldImage)
	return nil
}

func (f *RecipeForm) ClearImage() {
	f.Image = nil
}

// Payload is the request body built from the draft. Empty optional strings
// are left out; ingredients and steps are always arrays.
func (f *RecipeForm) Payload() models.RecipeInput {
	in := models.RecipeInput{
		Title:           f.Title,
		Description:     f.Description,
		Difficulty:      f.Difficulty,
		PrepTimeMinutes: f.PrepTime,
		CookTimeMinutes: f.CookTime,
		Servings:        f.Servings,
		ServingType:     f.ServingType,
		Visibility:      f.Visibility,
		Ingredients:     make([]models.IngredientInput, 0, len(f.Ingredients)),
		Steps:           make([]models.StepInput, 0, len(f.Steps)),
	}
	if f.CategoryID != 0 {
		id := f.CategoryID
		in.CategoryID = &id
	}
	in.Ingredients = append(in.Ingredients, f.Ingredients...)
	in.Steps = append(in.Steps, f.Steps...)
	if tags := f.Tags.Selected(); len(tags) > 0 {
		in.Tags = tags
	}
	return in
}

// Submit creates or updates the recipe, then uploads the staged image
// against the saved id. On failure the errors are stored in f.Errors and
// returned.
func (f *RecipeForm) Submit(ctx context.Context, saver RecipeSaver) (*models.Recipe, error) {
	f.Errors = FieldErrors{}

	var (
		saved *models.Recipe
		err   error
	)
	if f.existing != nil {
		saved, err = saver.UpdateRecipe(ctx, f.existing.ID, f.Payload())
	} else {
		saved, err = saver.CreateRecipe(ctx, f.Payload())
	}
	if err != nil {
		f.Errors = fromError(err)
		return nil, err
	}

	if f.Image != nil {
		if _, err := saver.UploadRecipeImage(ctx, saved.ID, f.Image.File()); err != nil {
			f.Errors = fromError(err)
			return saved, err
		}
	}

	return saved, nil
}
