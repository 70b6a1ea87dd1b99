package models

// RecipePage is one page of a recipe listing.
type RecipePage struct {
	Recipes    []Recipe
	TotalPages int
	Total      int
}

type ShareLink struct {
	ShareURL   string `json:"share_url"`
	ShareToken string `json:"share_token"`
}

type ImageUpload struct {
	ImageURL string `json:"image_url"`
}

type ListView string

const (
	ViewAll       ListView = "all"
	ViewMine      ListView = "my"
	ViewFavorites ListView = "favorites"
)

func (v ListView) Valid() bool {
	switch v {
	case ViewAll, ViewMine, ViewFavorites:
		return true
	}
	return false
}

// ReturnState remembers where the user was in the list before opening a
// recipe.
type ReturnState struct {
	Page       int
	ScrollToID int64
	View       ListView
}
