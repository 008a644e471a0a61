package cart

import (
	"sync"

	"ordering-system/internal/catalog"
)

// Cart holds the per-item quantities of one ordering session.
//
// Quantities are never negative: decrementing past zero is a no-op. All
// mutations go through the mutex so a cart can be shared between the HTTP
// handler goroutine and subscribers.
type Cart struct {
	mu          sync.Mutex
	quantities  [catalog.NumCategories][catalog.ItemsPerCategory]int
	subscribers []func()
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Subscribe registers fn to be called after every mutation. Callbacks run
// outside the cart lock, on the mutating goroutine.
func (c *Cart) Subscribe(fn func()) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

func (c *Cart) mutate(category, item int, fn func(int) int) error {
	if err := catalog.Validate(category, item); err != nil {
		return err
	}

	c.mu.Lock()
	qty := fn(c.quantities[category][item])
	if qty < 0 {
		qty = 0
	}
	c.quantities[category][item] = qty
	subscribers := make([]func(), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
	return nil
}

// SetQuantity sets the quantity of one item, clamping negative values to zero.
func (c *Cart) SetQuantity(category, item, qty int) error {
	return c.mutate(category, item, func(int) int { return qty })
}

// Increment raises the quantity of one item by one. There is no upper bound.
func (c *Cart) Increment(category, item int) error {
	return c.mutate(category, item, func(qty int) int { return qty + 1 })
}

// Decrement lowers the quantity of one item by one, stopping at zero.
func (c *Cart) Decrement(category, item int) error {
	return c.mutate(category, item, func(qty int) int { return qty - 1 })
}

// Toggle switches an item between absent and a single unit.
func (c *Cart) Toggle(category, item int) error {
	return c.mutate(category, item, func(qty int) int {
		if qty > 0 {
			return 0
		}
		return 1
	})
}

// Quantity returns the current quantity of one item.
func (c *Cart) Quantity(category, item int) (int, error) {
	if err := catalog.Validate(category, item); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[category][item], nil
}

// TotalPrice sums quantity times unit price over the whole cart.
func (c *Cart) TotalPrice() int {
	snap := c.Snapshot()

	total := 0
	for category := range snap {
		for item, qty := range snap[category] {
			entry, _ := catalog.Lookup(category, item)
			total += qty * entry.UnitPrice
		}
	}
	return total
}

// Reset sets every quantity back to zero.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.quantities = [catalog.NumCategories][catalog.ItemsPerCategory]int{}
	subscribers := make([]func(), len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Snapshot returns a copy of the quantity grid, decoupled from later edits.
// Checkout reads work on snapshots so concurrent quantity edits cannot race.
func (c *Cart) Snapshot() [catalog.NumCategories][catalog.ItemsPerCategory]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities
}
