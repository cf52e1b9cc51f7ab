package domain

// CartItem is one pending line in a cart. Points and ProductName are
// captured from the product at insertion time, so later catalog edits do
// not change a pending line.
type CartItem struct {
	ProductID   string
	ProductName string
	Points      int
	Quantity    int
}

// Cart is the in-memory pending basket for the worker currently acting.
// It holds at most one item per product and is never persisted directly;
// only a Transaction derived from it is durable.
type Cart struct {
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add inserts the product with quantity 1, or increments the existing
// line's quantity if the product is already present.
func (c *Cart) Add(p Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Points:      p.Points,
		Quantity:    1,
	})
}

// SetQuantity replaces the line's quantity. Quantity <= 0 removes the line;
// an unknown product ID is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line if present.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the pending lines.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed on every call, never stored.
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.items {
		total += item.Points * item.Quantity
	}
	return total
}
