// Package clienttest provides a scriptable client.Client for tests of the
// packages built on top of the API client.
package clienttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/models"
)

var _ client.Client = (*Fake)(nil)

// Fake records every call by name and delegates to the matching Func field
// when set. Unset funcs succeed with zero values.
type Fake struct {
	mu    sync.Mutex
	calls []string

	LoginFunc              func(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	RegisterFunc           func(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	LogoutFunc             func(ctx context.Context) error
	CurrentUserFunc        func(ctx context.Context) (*models.User, error)
	UpdateUserFunc         func(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error)
	DeleteUserFunc         func(ctx context.Context, password string) (string, error)
	RecipesFunc            func(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	SearchRecipesFunc      func(ctx context.Context, params models.SearchParams, page, perPage int) (*models.RecipePage, error)
	MyRecipesFunc          func(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	RecipeFunc             func(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipeFunc       func(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipeFunc       func(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipeFunc       func(ctx context.Context, id int64) error
	UploadRecipeImageFunc  func(ctx context.Context, id int64, img models.ImageFile) (*models.ImageUpload, error)
	EnableShareLinkFunc    func(ctx context.Context, id int64) (*models.ShareLink, error)
	DisableShareLinkFunc   func(ctx context.Context, id int64) error
	RecipeByShareTokenFunc func(ctx context.Context, token string) (*models.Recipe, error)
	FavoritesFunc          func(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	FavoriteIDsFunc        func(ctx context.Context) ([]int64, error)
	AddFavoriteFunc        func(ctx context.Context, id int64) error
	RemoveFavoriteFunc     func(ctx context.Context, id int64) error
	IsFavoriteFunc         func(ctx context.Context, id int64) (bool, error)
	TagsFunc               func(ctx context.Context) ([]models.Tag, error)
	CategoriesFunc         func(ctx context.Context) ([]models.Category, error)
}

func (f *Fake) record(format string, args ...any) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

// Calls returns the recorded calls, e.g. "Recipes(2,12)".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many recorded calls equal call.
func (f *Fake) Count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *Fake) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

func emptyPage() *models.RecipePage {
	return &models.RecipePage{Recipes: []models.Recipe{}, TotalPages: 1}
}

func (f *Fake) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	f.record("Login(%s)", creds.Email)
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	return &models.AuthResponse{}, nil
}

func (f *Fake) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	f.record("Register(%s)", data.Email)
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, data)
	}
	return &models.AuthResponse{}, nil
}

func (f *Fake) Logout(ctx context.Context) error {
	f.record("Logout()")
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx)
	}
	return nil
}

func (f *Fake) CurrentUser(ctx context.Context) (*models.User, error) {
	f.record("CurrentUser()")
	if f.CurrentUserFunc != nil {
		return f.CurrentUserFunc(ctx)
	}
	return &models.User{}, nil
}

func (f *Fake) UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
	f.record("UpdateUser()")
	if f.UpdateUserFunc != nil {
		return f.UpdateUserFunc(ctx, upd)
	}
	return &models.ProfileResult{}, nil
}

func (f *Fake) DeleteUser(ctx context.Context, password string) (string, error) {
	f.record("DeleteUser()")
	if f.DeleteUserFunc != nil {
		return f.DeleteUserFunc(ctx, password)
	}
	return "", nil
}

func (f *Fake) Recipes(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	f.record("Recipes(%d,%d)", page, perPage)
	if f.RecipesFunc != nil {
		return f.RecipesFunc(ctx, page, perPage)
	}
	return emptyPage(), nil
}

func (f *Fake) SearchRecipes(ctx context.Context, params models.SearchParams, page, perPage int) (*models.RecipePage, error) {
	f.record("SearchRecipes(%s,%d,%d)", params.Query, page, perPage)
	if f.SearchRecipesFunc != nil {
		return f.SearchRecipesFunc(ctx, params, page, perPage)
	}
	return emptyPage(), nil
}

func (f *Fake) MyRecipes(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	f.record("MyRecipes(%d,%d)", page, perPage)
	if f.MyRecipesFunc != nil {
		return f.MyRecipesFunc(ctx, page, perPage)
	}
	return emptyPage(), nil
}

func (f *Fake) Recipe(ctx context.Context, id int64) (*models.Recipe, error) {
	f.record("Recipe(%d)", id)
	if f.RecipeFunc != nil {
		return f.RecipeFunc(ctx, id)
	}
	return &models.Recipe{ID: id}, nil
}

func (f *Fake) CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	f.record("CreateRecipe(%s)", in.Title)
	if f.CreateRecipeFunc != nil {
		return f.CreateRecipeFunc(ctx, in)
	}
	return &models.Recipe{Title: in.Title}, nil
}

func (f *Fake) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	f.record("UpdateRecipe(%d)", id)
	if f.UpdateRecipeFunc != nil {
		return f.UpdateRecipeFunc(ctx, id, in)
	}
	return &models.Recipe{ID: id, Title: in.Title}, nil
}

func (f *Fake) DeleteRecipe(ctx context.Context, id int64) error {
	f.record("DeleteRecipe(%d)", id)
	if f.DeleteRecipeFunc != nil {
		return f.DeleteRecipeFunc(ctx, id)
	}
	return nil
}

func (f *Fake) UploadRecipeImage(ctx context.Context, id int64, img models.ImageFile) (*models.ImageUpload, error) {
	f.record("UploadRecipeImage(%d)", id)
	if f.UploadRecipeImageFunc != nil {
		return f.UploadRecipeImageFunc(ctx, id, img)
	}
	return &models.ImageUpload{}, nil
}

func (f *Fake) EnableShareLink(ctx context.Context, id int64) (*models.ShareLink, error) {
	f.record("EnableShareLink(%d)", id)
	if f.EnableShareLinkFunc != nil {
		return f.EnableShareLinkFunc(ctx, id)
	}
	return &models.ShareLink{}, nil
}

func (f *Fake) DisableShareLink(ctx context.Context, id int64) error {
	f.record("DisableShareLink(%d)", id)
	if f.DisableShareLinkFunc != nil {
		return f.DisableShareLinkFunc(ctx, id)
	}
	return nil
}

func (f *Fake) RecipeByShareToken(ctx context.Context, token string) (*models.Recipe, error) {
	f.record("RecipeByShareToken(%s)", token)
	if f.RecipeByShareTokenFunc != nil {
		return f.RecipeByShareTokenFunc(ctx, token)
	}
	return &models.Recipe{}, nil
}

func (f *Fake) Favorites(ctx context.Context, page, perPage int) (*models.RecipePage, error) {
	f.record("Favorites(%d,%d)", page, perPage)
	if f.FavoritesFunc != nil {
		return f.FavoritesFunc(ctx, page, perPage)
	}
	return emptyPage(), nil
}

func (f *Fake) FavoriteIDs(ctx context.Context) ([]int64, error) {
	f.record("FavoriteIDs()")
	if f.FavoriteIDsFunc != nil {
		return f.FavoriteIDsFunc(ctx)
	}
	return []int64{}, nil
}

func (f *Fake) AddFavorite(ctx context.Context, id int64) error {
	f.record("AddFavorite(%d)", id)
	if f.AddFavoriteFunc != nil {
		return f.AddFavoriteFunc(ctx, id)
	}
	return nil
}

func (f *Fake) RemoveFavorite(ctx context.Context, id int64) error {
	f.record("RemoveFavorite(%d)", id)
	if f.RemoveFavoriteFunc != nil {
		return f.RemoveFavoriteFunc(ctx, id)
	}
	return nil
}

func (f *Fake) IsFavorite(ctx context.Context, id int64) (bool, error) {
	f.record("IsFavorite(%d)", id)
	if f.IsFavoriteFunc != nil {
		return f.IsFavoriteFunc(ctx, id)
	}
	return false, nil
}

func (f *Fake) Tags(ctx context.Context) ([]models.Tag, error) {
	f.record("Tags()")
	if f.TagsFunc != nil {
		return f.TagsFunc(ctx)
	}
	return []models.Tag{}, nil
}

func (f *Fake) Categories(ctx context.Context) ([]models.Category, error) {
	f.record("Categories()")
	if f.CategoriesFunc != nil {
		return f.CategoriesFunc(ctx)
	}
	return []models.Category{}, nil
}

func (f *Fake) ImageURL(path string) string {
	if path == "" {
		return client.PlaceholderImageURL
	}
	return "https://storage.test/" + path
}

// Tokens is an in-memory token store.
type Tokens struct {
	mu    sync.Mutex
	token string
	Err   error
}

func NewTokens(token string) *Tokens {
	return &Tokens{token: token}
}

func (t *Tokens) Get(context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token, t.Err
}

func (t *Tokens) Set(_ context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.token = token
	return nil
}

func (t *Tokens) Remove(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = ""
	return t.Err
}

func (t *Tokens) Has(ctx context.Context) (bool, error) {
	v, err := t.Get(ctx)
	return v != "", err
}
