package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pt428/recipes/internal/client/browse"
	"github.com/pt428/recipes/internal/client/detail"
	"github.com/pt428/recipes/internal/client/models"
)

var viewTitles = map[models.ListView]string{
	models.ViewAll:       "All recipes",
	models.ViewMine:      "My recipes",
	models.ViewFavorites: "Favorites",
}

func servingLabel(t models.ServingType) string {
	if t == models.ServingTypePieces {
		return "pieces"
	}
	return "servings"
}

// formatMinutes renders 95 as "1 h 35 min".
func formatMinutes(m int) string {
	switch {
	case m <= 0:
		return "-"
	case m < 60:
		return fmt.Sprintf("%d min", m)
	case m%60 == 0:
		return fmt.Sprintf("%d h", m/60)
	default:
		return fmt.Sprintf("%d h %d min", m/60, m%60)
	}
}

// renderPager prints "[1] … 4 [5] 6 … [10]" style controls; the current page
// is bracketed.
func renderPager(w io.Writer, current, total int) {
	items := browse.PageButtons(current, total)
	if len(items) < 2 {
		return
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case it.Ellipsis:
			parts = append(parts, "…")
		case it.Page == current:
			parts = append(parts, fmt.Sprintf("[%d]", it.Page))
		default:
			parts = append(parts, fmt.Sprint(it.Page))
		}
	}
	fmt.Fprintf(w, "Pages: %s\n", strings.Join(parts, " "))
}

// renderList prints the listing; isFav marks favorites with a star and the
// highlighted recipe gets an arrow.
func renderList(w io.Writer, st browse.State, isFav func(int64) bool) {
	title := viewTitles[st.View]
	if st.View == models.ViewAll && st.Search.Active() {
		title = "Search results"
	}
	fmt.Fprintf(w, "%s (page %d of %d, %d total)\n", title, st.Page, st.TotalPages, st.Total)

	if len(st.Recipes) == 0 {
		fmt.Fprintln(w, "  No recipes found.")
		return
	}
	for _, r := range st.Recipes {
		marker := "  "
		if r.ID == st.Highlight {
			marker = "> "
		}
		star := " "
		if isFav != nil && isFav(r.ID) {
			star = "*"
		}
		fmt.Fprintf(w, "%s%s %4d  %-40s %s, %s\n", marker, star, r.ID, r.Title,
			string(r.Difficulty), formatMinutes(r.TotalTime()))
	}
	renderPager(w, st.Page, st.TotalPages)
}

func renderRecipe(w io.Writer, r *models.Recipe, calc *detail.Calculator, checks *detail.Checklist, imageURL string) {
	fmt.Fprintf(w, "#%d %s\n", r.ID, r.Title)
	if r.Author != nil {
		fmt.Fprintf(w, "by %s\n", r.Author.Name)
	}
	if d := models.Deref(r.Description); d != "" {
		fmt.Fprintln(w, d)
	}

	meta := []string{
		"difficulty: " + string(r.Difficulty),
		"prep: " + formatMinutes(r.PrepTimeMinutes),
		"cook: " + formatMinutes(r.CookTimeMinutes),
		"total: " + formatMinutes(r.TotalTime()),
	}
	if r.Category != nil {
		meta = append(meta, "category: "+r.Category.Name)
	}
	fmt.Fprintln(w, strings.Join(meta, " | "))

	if len(r.Tags) > 0 {
		names := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			names = append(names, "#"+t.Name)
		}
		fmt.Fprintln(w, strings.Join(names, " "))
	}
	fmt.Fprintf(w, "Image: %s\n", imageURL)

	fmt.Fprintf(w, "\nIngredients for %d %s", calc.Target(), servingLabel(r.ServingType))
	if calc.Target() != calc.Base() {
		fmt.Fprintf(w, " (recipe is for %d)", calc.Base())
	}
	fmt.Fprintln(w, ":")
	for i, ing := range r.Ingredients {
		fmt.Fprintf(w, "  %s %d. %s\n", checkbox(checks.Ingredient(i+1)), i+1, ingredientLine(ing, calc))
	}

	fmt.Fprintln(w, "\nSteps:")
	for i, s := range r.Steps {
		fmt.Fprintf(w, "  %s %d. %s\n", checkbox(checks.Step(i+1)), s.OrderIndex, s.Text)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func ingredientLine(ing models.Ingredient, calc *detail.Calculator) string {
	var parts []string
	if amount := models.Deref(ing.Amount); amount != "" {
		parts = append(parts, calc.Scale(amount))
	}
	if unit := models.Deref(ing.Unit); unit != "" {
		parts = append(parts, unit)
	}
	parts = append(parts, ing.Name)
	line := strings.Join(parts, " ")
	if note := models.Deref(ing.Note); note != "" {
		line += " (" + note + ")"
	}
	return line
}
