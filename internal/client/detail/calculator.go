// Package detail holds the state behind a single recipe view: the serving
// calculator, the ingredient and step checklist, and the owner actions.
package detail

import (
	"strconv"
	"strings"
	"sync"
)

// Calculator scales ingredient amounts from the recipe's base yield to a
// target yield chosen by the user.
type Calculator struct {
	mu     sync.Mutex
	base   int
	target int
}

func NewCalculator(base int) *Calculator {
	base = max(base, 1)
	return &Calculator{base: base, target: base}
}

func (c *Calculator) Base() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base
}

func (c *Calculator) Target() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *Calculator) Inc() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target++
	return c.target
}

// Dec lowers the target, never below 1.
func (c *Calculator) Dec() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = max(c.target-1, 1)
	return c.target
}

func (c *Calculator) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = c.base
	return c.target
}

// Set sets the target directly; values below 1 become 1.
func (c *Calculator) Set(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = max(n, 1)
	return c.target
}

func (c *Calculator) Multiplier() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.target) / float64(c.base)
}

// Scale applies the current multiplier to amount.
func (c *Calculator) Scale(amount string) string {
	return ScaleAmount(amount, c.Multiplier())
}

// ScaleAmount multiplies a numeric amount ("2", "0.5", "1,5") by mult.
// Amounts that are not plain numbers ("1/2", "a pinch") are returned as they
// are; an empty amount stays empty.
func ScaleAmount(amount string, mult float64) string {
	s := strings.TrimSpace(amount)
	if s == "" {
		return amount
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return amount
	}
	return FormatAmount(v * mult)
}

// FormatAmount prints v with at most three decimals and no trailing zeros.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
