package domain

import "slices"

// Cart holds a buyer's pending quantities per item. Entries never reach zero:
// an entry that would is removed. Any add or remove clears Saved.
type Cart struct {
	BuyerID int64
	Items   map[ItemKey]int
	Saved   bool
}

// NewCart returns an empty, unsaved cart.
func NewCart(buyerID int64) *Cart {
	return &Cart{BuyerID: buyerID, Items: make(map[ItemKey]int)}
}

// Add increases the quantity for key. qty must be positive.
func (c *Cart) Add(key ItemKey, qty int) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	c.Saved = false
	c.Items[key] += qty
	return nil
}

// Remove decreases the quantity for key, deleting the entry at zero.
func (c *Cart) Remove(key ItemKey, qty int) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	have, ok := c.Items[key]
	if !ok {
		return ErrNotInCart
	}
	if qty > have {
		return ErrExceedsCartQuantity
	}
	c.Saved = false
	if have == qty {
		delete(c.Items, key)
		return nil
	}
	c.Items[key] = have - qty
	return nil
}

// Clear empties the cart and unmarks it.
func (c *Cart) Clear() {
	c.Items = make(map[ItemKey]int)
	c.Saved = false
}

// Keys returns the cart's item keys in (category, id) order.
func (c *Cart) Keys() []ItemKey {
	keys := make([]ItemKey, 0, len(c.Items))
	for k := range c.Items {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, ItemKey.Compare)
	return keys
}
