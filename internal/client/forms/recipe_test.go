package forms

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
)

type fakeSaver struct {
	created   []models.RecipeInput
	updated   map[int64]models.RecipeInput
	uploads   []int64
	createErr error
	uploadErr error
}

func (s *fakeSaver) CreateRecipe(_ context.Context, in models.RecipeInput) (*models.Recipe, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	return &models.Recipe{ID: 100, Title: in.Title}, nil
}

func (s *fakeSaver) UpdateRecipe(_ context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	if s.updated == nil {
		s.updated = map[int64]models.RecipeInput{}
	}
	s.updated[id] = in
	return &models.Recipe{ID: id, Title: in.Title}, nil
}

func (s *fakeSaver) UploadRecipeImage(_ context.Context, id int64, _ models.ImageFile) (*models.ImageUpload, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploads = append(s.uploads, id)
	return &models.ImageUpload{ImageURL: "x"}, nil
}

func strPtr(s string) *string { return &s }

func writeTinyPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "p.png")
	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, fh.Close())
	return path
}

func TestNewRecipeForm_Defaults(t *testing.T) {
	f := NewRecipeForm(nil, nil)

	assert.False(t, f.IsEdit())
	assert.Equal(t, models.DifficultyEasy, f.Difficulty)
	assert.Equal(t, 4, f.Servings)
	assert.Equal(t, models.ServingTypeServings, f.ServingType)
	assert.Equal(t, models.VisibilityPublic, f.Visibility)
	assert.Equal(t, []models.IngredientInput{{}}, f.Ingredients)
	assert.Equal(t, []models.StepInput{{OrderIndex: 1}}, f.Steps)
	assert.Empty(t, f.Tags.Selected())
}

func TestNewRecipeForm_CopiesExisting(t *testing.T) {
	cat := int64(3)
	r := &models.Recipe{
		ID: 5, Title: "Guláš", Description: nil, CategoryID: &cat,
		Difficulty: models.DifficultyHard, PrepTimeMinutes: 20, CookTimeMinutes: 90,
		Servings: 6, ServingType: models.ServingTypePieces, Visibility: models.VisibilityLink,
		Ingredients: []models.Ingredient{{Name: "beef", Amount: strPtr("500"), Unit: strPtr("g")}},
		Steps:       []models.Step{{OrderIndex: 1, Text: "Brown"}, {OrderIndex: 2, Text: "Simmer"}},
		Tags:        []models.Tag{{ID: 1, Name: "soup"}},
	}

	f := NewRecipeForm(r, nil)

	assert.True(t, f.IsEdit())
	assert.Equal(t, "", f.Description)
	assert.Equal(t, int64(3), f.CategoryID)
	assert.Equal(t, []models.IngredientInput{{Amount: "500", Unit: "g", Name: "beef"}}, f.Ingredients)
	assert.Len(t, f.Steps, 2)
	assert.Equal(t, []string{"soup"}, f.Tags.Selected())
}

func TestSetField_NumericFallbacks(t *testing.T) {
	f := NewRecipeForm(nil, nil)

	require.NoError(t, f.SetField(FieldPrepTime, "15"))
	require.NoError(t, f.SetField(FieldCookTime, "abc"))
	require.NoError(t, f.SetField(FieldServings, ""))
	assert.Equal(t, 15, f.PrepTime)
	assert.Equal(t, 0, f.CookTime)
	assert.Equal(t, 1, f.Servings)

	require.NoError(t, f.SetField(FieldServings, "8 people"))
	assert.Equal(t, 8, f.Servings)
}

func TestSetField_ClearsOnlyThatError(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	f.Errors = FieldErrors{"title": {"required"}, "servings": {"too few"}}

	require.NoError(t, f.SetField(FieldTitle, "Soup"))

	assert.NotContains(t, f.Errors, "title")
	assert.Contains(t, f.Errors, "servings")
}

func TestSetField_Rejects(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	assert.ErrorIs(t, f.SetField("color", "red"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField(FieldDifficulty, "insane"), ErrInvalidValue)
	assert.ErrorIs(t, f.SetField(FieldVisibility, "friends"), ErrInvalidValue)
	assert.ErrorIs(t, f.SetField(FieldServingType, "cups"), ErrInvalidValue)
}

func TestIngredients_EditAndErrors(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	f.AddIngredient()
	f.Errors = FieldErrors{"ingredients.1.name": {"required"}, "ingredients.0.name": {"required"}}

	require.NoError(t, f.UpdateIngredient(1, "name", "salt"))
	assert.NotContains(t, f.Errors, "ingredients.1.name")
	assert.Contains(t, f.Errors, "ingredients.0.name")

	assert.ErrorIs(t, f.UpdateIngredient(5, "name", "x"), ErrOutOfRange)
	assert.ErrorIs(t, f.UpdateIngredient(0, "colour", "x"), ErrUnknownField)

	require.NoError(t, f.RemoveIngredient(0))
	assert.Equal(t, []models.IngredientInput{{Name: "salt"}}, f.Ingredients)
	assert.ErrorIs(t, f.RemoveIngredient(3), ErrOutOfRange)
}

func TestRemoveStep_Renumbers(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	f.AddStep()
	f.AddStep()
	require.NoError(t, f.UpdateStep(0, "one"))
	require.NoError(t, f.UpdateStep(1, "two"))
	require.NoError(t, f.UpdateStep(2, "three"))

	require.NoError(t, f.RemoveStep(1))

	assert.Equal(t, []models.StepInput{{OrderIndex: 1, Text: "one"}, {OrderIndex: 2, Text: "three"}}, f.Steps)
}

func TestUpdateStep_ClearsError(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	f.Errors = FieldErrors{"steps.0.text": {"required"}}
	require.NoError(t, f.UpdateStep(0, "Boil water"))
	assert.True(t, f.Errors.Empty())
	assert.ErrorIs(t, f.UpdateStep(1, "x"), ErrOutOfRange)
	assert.ErrorIs(t, f.RemoveStep(-1), ErrOutOfRange)
}

func TestPayload_Normalizes(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	require.NoError(t, f.SetField(FieldTitle, "Tea"))
	require.NoError(t, f.UpdateIngredient(0, "name", "water"))
	require.NoError(t, f.UpdateIngredient(0, "amount", "250"))

	in := f.Payload()

	assert.Equal(t, "", in.Description)
	assert.Nil(t, in.CategoryID)
	assert.Nil(t, in.Tags)
	assert.Equal(t, []models.IngredientInput{{Amount: "250", Name: "water"}}, in.Ingredients)

	f.Tags.Add("drink")
	require.NoError(t, f.SetField(FieldCategory, "2"))
	in = f.Payload()
	assert.Equal(t, []string{"drink"}, in.Tags)
	require.NotNil(t, in.CategoryID)
	assert.Equal(t, int64(2), *in.CategoryID)
}

func TestSubmit_ZeroIngredientsStillSent(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	require.NoError(t, f.SetField(FieldTitle, "Air"))
	require.NoError(t, f.RemoveIngredient(0))

	saver := &fakeSaver{}
	saved, err := f.Submit(context.Background(), saver)
	require.NoError(t, err)
	assert.Equal(t, int64(100), saved.ID)

	require.Len(t, saver.created, 1)
	assert.NotNil(t, saver.created[0].Ingredients)
	assert.Empty(t, saver.created[0].Ingredients)
}

func TestSubmit_UpdateUploadsImageAfterSave(t *testing.T) {
	f := NewRecipeForm(&models.Recipe{ID: 7, Title: "Old"}, nil)
	require.NoError(t, f.StageImage(writeTinyPNG(t), 100))

	saver := &fakeSaver{}
	_, err := f.Submit(context.Background(), saver)
	require.NoError(t, err)

	assert.Contains(t, saver.updated, int64(7))
	assert.Equal(t, []int64{7}, saver.uploads)
}

func TestSubmit_ValidationErrorsStored(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	saver := &fakeSaver{createErr: client.NewValidationError("invalid", map[string][]string{
		"title": {"The title field is required."},
	}, "title")}

	_, err := f.Submit(context.Background(), saver)
	require.Error(t, err)
	assert.Equal(t, "The title field is required.", f.Errors.First("title"))
}

func TestSubmit_OtherErrorGoesToGeneral(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	saver := &fakeSaver{createErr: errors.New("boom")}

	_, err := f.Submit(context.Background(), saver)
	require.Error(t, err)
	assert.Equal(t, FieldErrors{GeneralField: {"boom"}}, f.Errors)
}

func TestSubmit_UploadFailureKeepsSavedRecipe(t *testing.T) {
	f := NewRecipeForm(nil, nil)
	require.NoError(t, f.SetField(FieldTitle, "x"))
	require.NoError(t, f.StageImage(writeTinyPNG(t), 0))

	saver := &fakeSaver{uploadErr: errors.New("too large")}
	saved, err := f.Submit(context.Background(), saver)
	require.Error(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "too large", f.Errors.First(GeneralField))
}
