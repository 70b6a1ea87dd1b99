package client

import (
	"context"

	"github.com/pt428/recipes/internal/client/models"
)

// Client is the single entry point to the recipe backend.
type Client interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error)
	DeleteUser(ctx context.Context, password string) (string, error)

	Recipes(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	SearchRecipes(ctx context.Context, params models.SearchParams, page, perPage int) (*models.RecipePage, error)
	MyRecipes(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	Recipe(ctx context.Context, id int64) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	UploadRecipeImage(ctx context.Context, id int64, img models.ImageFile) (*models.ImageUpload, error)

	EnableShareLink(ctx context.Context, id int64) (*models.ShareLink, error)
	DisableShareLink(ctx context.Context, id int64) error
	RecipeByShareToken(ctx context.Context, token string) (*models.Recipe, error)

	Favorites(ctx context.Context, page, perPage int) (*models.RecipePage, error)
	FavoriteIDs(ctx context.Context) ([]int64, error)
	AddFavorite(ctx context.Context, id int64) error
	RemoveFavorite(ctx context.Context, id int64) error
	IsFavorite(ctx context.Context, id int64) (bool, error)

	Tags(ctx context.Context) ([]models.Tag, error)
	Categories(ctx context.Context) ([]models.Category, error)

	// ImageURL resolves a stored image path, or a placeholder for "".
	ImageURL(path string) string
}
