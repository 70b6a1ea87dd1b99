package detail

import "sync"

// Checklist tracks which ingredients and steps the cook has ticked off.
// It lives only as long as the view.
type Checklist struct {
	mu          sync.Mutex
	ingredients map[int]bool
	steps       map[int]bool
}

func NewChecklist() *Checklist {
	return &Checklist{ingredients: map[int]bool{}, steps: map[int]bool{}}
}

// ToggleIngredient flips the mark of the i-th ingredient and returns it.
func (c *Checklist) ToggleIngredient(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggle(c.ingredients, i)
}

func (c *Checklist) ToggleStep(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return toggle(c.steps, i)
}

func (c *Checklist) Ingredient(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ingredients[i]
}

func (c *Checklist) Step(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[i]
}

func (c *Checklist) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.ingredients)
	clear(c.steps)
}

func toggle(m map[int]bool, i int) bool {
	if m[i] {
		delete(m, i)
		return false
	}
	m[i] = true
	return true
}
