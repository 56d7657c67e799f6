// Package cart holds the in-progress meal plan selection and enforces its
// two invariants: at most one plan per meal category, and at most three
// plans total. It is a process-wide singleton mutated only from the UI
// event loop, so it carries no locking.
package cart

import (
	"errors"

	"github.com/mealdeck/mealdeck/pkg/domain"
)

// MaxItems caps the cart at one plan per meal category.
const MaxItems = 3

// ErrFull is returned when adding a new meal category would exceed MaxItems.
var ErrFull = errors.New("cart is full: maximum 3 meal plans")

// Cart is the selection set. The zero value is not usable; call New.
type Cart struct {
	items []domain.CartItem
	subs  []func()
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Subscribe registers fn to be called after every mutation.
// Subscribers must not mutate the cart re-entrantly.
func (c *Cart) Subscribe(fn func()) {
	c.subs = append(c.subs, fn)
}

func (c *Cart) notify() {
	for _, fn := range c.subs {
		fn()
	}
}

// AddOrReplace inserts item, replacing any existing entry for the same
// meal category. Replacement always succeeds, even at capacity, because it
// does not change cardinality. Adding a new category to a full cart fails
// with ErrFull and leaves the cart unchanged.
func (c *Cart) AddOrReplace(item domain.CartItem) error {
	for i := range c.items {
		if c.items[i].MealType == item.MealType {
			c.items[i] = item
			c.notify()
			return nil
		}
	}
	if len(c.items) >= MaxItems {
		return ErrFull
	}
	c.items = append(c.items, item)
	c.notify()
	return nil
}

// Remove drops the entry for the given meal category.
// Removing an absent category is a no-op.
func (c *Cart) Remove(t domain.MealType) {
	for i := range c.items {
		if c.items[i].MealType == t {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.notify()
			return
		}
	}
}

// Contains reports whether the cart holds a plan for the given category.
func (c *Cart) Contains(t domain.MealType) bool {
	_, ok := c.SupplierFor(t)
	return ok
}

// SupplierFor returns the supplier of record for a category, if any.
func (c *Cart) SupplierFor(t domain.MealType) (int, bool) {
	for i := range c.items {
		if c.items[i].MealType == t {
			return c.items[i].SupplierID, true
		}
	}
	return 0, false
}

// Count returns the number of plans in the cart.
func (c *Cart) Count() int {
	return len(c.items)
}

// TotalPlanDays sums plan durations across the cart, with unset
// durations counted as the 7-day default.
func (c *Cart) TotalPlanDays() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Days()
	}
	return total
}

// Items returns a copy of the cart contents in insertion order.
// Order is display-only and carries no semantic weight.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}
