package models

// RecipeInput is the body of a create or update request.
type RecipeInput struct {
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	CategoryID      *int64            `json:"category_id,omitempty"`
	Difficulty      Difficulty        `json:"difficulty"`
	PrepTimeMinutes int               `json:"prep_time_minutes"`
	CookTimeMinutes int               `json:"cook_time_minutes"`
	Servings        int               `json:"servings"`
	ServingType     ServingType       `json:"serving_type"`
	Visibility      Visibility        `json:"visibility"`
	Ingredients     []IngredientInput `json:"ingredients"`
	Steps           []StepInput       `json:"steps"`
	Tags            []string          `json:"tags,omitempty"`
}

type IngredientInput struct {
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Name   string `json:"name"`
	Note   string `json:"note,omitempty"`
}

type StepInput struct {
	OrderIndex int    `json:"order_index"`
	Text       string `json:"text"`
}

// SearchParams narrows a recipe listing. Zero values mean "no filter".
type SearchParams struct {
	Query      string
	TagIDs     []int64
	CategoryID int64
}

// Active reports whether any filter is set.
func (p SearchParams) Active() bool {
	return p.Query != "" || len(p.TagIDs) > 0 || p.CategoryID != 0
}

// ImageFile is an image ready to be uploaded.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
