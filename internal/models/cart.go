package models

import "fmt"

// CartItem is one line of a shopping cart
type CartItem struct {
	ProductID string
	Name      string
	Price     int64
	Qty       int
}

// Cart is the shopping cart owned by one user
type Cart struct {
	UserID string
	Items  []CartItem
}

// Add puts qty units of p in the cart, merging with an existing line. The
// merged quantity must still be in stock.
func (c *Cart) Add(p Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID != p.ID {
			continue
		}
		if !p.InStock(c.Items[i].Qty + qty) {
			return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		c.Items[i].Qty += qty
		return nil
	}
	if !p.InStock(qty) {
		return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}
	c.Items = append(c.Items, CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Qty: qty})
	return nil
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Qty
	}
	return n
}

// Subtotal returns the cart value in cents
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Qty)
	}
	return total
}

// OrderItems converts the cart lines into order lines
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem(item))
	}
	return items
}
