// Package models defines the client-side shapes of the recipe backend's
// resources and the payloads sent to it.
package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type ServingType string

const (
	ServingTypeServings ServingType = "servings"
	ServingTypePieces   ServingType = "pieces"
)

func (s ServingType) Valid() bool {
	return s == ServingTypeServings || s == ServingTypePieces
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityLink    Visibility = "link"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityLink:
		return true
	}
	return false
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag may carry the number of recipes using it when the backend includes it.
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	RecipesCount *int   `json:"recipes_count,omitempty"`
}

type Ingredient struct {
	ID       int64   `json:"id"`
	RecipeID int64   `json:"recipe_id"`
	Amount   *string `json:"amount"`
	Unit     *string `json:"unit"`
	Name     string  `json:"name"`
	Note     *string `json:"note"`
}

type Step struct {
	ID         int64  `json:"id"`
	RecipeID   int64  `json:"recipe_id"`
	OrderIndex int    `json:"order_index"`
	Text       string `json:"text"`
}

type Recipe struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Description     *string     `json:"description"`
	CategoryID      *int64      `json:"category_id"`
	Difficulty      Difficulty  `json:"difficulty"`
	PrepTimeMinutes int         `json:"prep_time_minutes"`
	CookTimeMinutes int         `json:"cook_time_minutes"`
	Servings        int         `json:"servings"`
	ServingType     ServingType `json:"serving_type"`
	Visibility      Visibility  `json:"visibility"`
	ImagePath       *string     `json:"image_path"`
	ShareToken      *string     `json:"share_token"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Category    *Category    `json:"category,omitempty"`
	Author      *User        `json:"author,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []Step       `json:"steps,omitempty"`
	Tags        []Tag        `json:"tags,omitempty"`
}

// TotalTime is preparation plus cooking time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// IsOwnedBy reports whether u authored the recipe. A nil user owns nothing.
func (r *Recipe) IsOwnedBy(u *User) bool {
	return u != nil && u.ID == r.UserID
}

// Shared reports whether the recipe is reachable through a share link.
func (r *Recipe) Shared() bool {
	return r.Visibility == VisibilityLink && r.ShareToken != nil && *r.ShareToken != ""
}

// Deref returns the value behind p or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
