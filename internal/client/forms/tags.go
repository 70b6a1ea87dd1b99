package forms

import (
	"sort"
	"strings"

	"github.com/pt428/recipes/internal/client/models"
)

// PopularLimit is the length of the popular tag shortlist.
const PopularLimit = 10

// TagInput edits the tag names of a recipe against the list of known tags.
type TagInput struct {
	selected  []string
	available []models.Tag
}

func NewTagInput(selected []string, available []models.Tag) *TagInput {
	t := &TagInput{available: available}
	for _, s := range selected {
		t.Add(s)
	}
	return t
}

// SetAvailable replaces the known tags, e.g. after they finish loading.
func (t *TagInput) SetAvailable(tags []models.Tag) {
	t.available = tags
}

// Selected returns a copy of the chosen names in insertion order.
func (t *TagInput) Selected() []string {
	return append([]string{}, t.selected...)
}

// Add appends the trimmed name unless it is empty or already selected.
func (t *TagInput) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || t.has(name) {
		return false
	}
	t.selected = append(t.selected, name)
	return true
}

func (t *TagInput) Remove(name string) bool {
	for i, s := range t.selected {
		if s == name {
			t.selected = append(t.selected[:i], t.selected[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLast drops the most recently added name.
func (t *TagInput) RemoveLast() (string, bool) {
	if len(t.selected) == 0 {
		return "", false
	}
	last := t.selected[len(t.selected)-1]
	t.selected = t.selected[:len(t.selected)-1]
	return last, true
}

// Suggestions lists known tags not yet selected whose name contains query,
// ignoring case. An empty query matches every tag.
func (t *TagInput) Suggestions(query string) []models.Tag {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Tag{}
	for _, tag := range t.available {
		if t.has(tag.Name) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(tag.Name), q) {
			out = append(out, tag)
		}
	}
	return out
}

// Popular returns up to n known tags, most used first. Tags without a usage
// count keep their server order after the counted ones.
func (t *TagInput) Popular(n int) []models.Tag {
	tags := append([]models.Tag(nil), t.available...)
	sort.SliceStable(tags, func(i, j int) bool {
		return count(tags[i]) > count(tags[j])
	})
	if n >= 0 && len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

func count(t models.Tag) int {
	if t.RecipesCount == nil {
		return -1
	}
	return *t.RecipesCount
}

func (t *TagInput) has(name string) bool {
	for _, s := range t.selected {
		if s == name {
			return true
		}
	}
	return false
}
