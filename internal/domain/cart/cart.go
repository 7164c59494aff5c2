// internal/domain/cart/cart.go
package cart

import (
	"errors"
)

// ErrColorRequired is returned when a cart mutation omits the color variant.
// A cart line is keyed by (product, color), so the color can never be empty.
var ErrColorRequired = errors.New("color selection is required")

// Data is the sparse cart mapping: productID -> color -> quantity.
// Entries with quantity 0 are removed; quantities never go below 0.
type Data map[uint]map[string]int

// Add increments the quantity for (productID, color) by delta, creating
// nested entries as needed. A resulting quantity of 0 removes the entry.
func (d Data) Add(productID uint, color string, delta int) error {
	if color == "" {
		return ErrColorRequired
	}

	variants, ok := d[productID]
	if !ok {
		variants = make(map[string]int)
		d[productID] = variants
	}

	quantity := variants[color] + delta
	if quantity <= 0 {
		delete(variants, color)
		if len(variants) == 0 {
			delete(d, productID)
		}
		return nil
	}

	variants[color] = quantity
	return nil
}

// Set overwrites the quantity for (productID, color). Zero removes the entry.
func (d Data) Set(productID uint, color string, quantity int) error {
	if color == "" {
		return ErrColorRequired
	}
	if quantity < 0 {
		quantity = 0
	}

	if quantity == 0 {
		if variants, ok := d[productID]; ok {
			delete(variants, color)
			if len(variants) == 0 {
				delete(d, productID)
			}
		}
		return nil
	}

	variants, ok := d[productID]
	if !ok {
		variants = make(map[string]int)
		d[productID] = variants
	}
	variants[color] = quantity
	return nil
}

// Count returns the total quantity across all entries
func (d Data) Count() int {
	total := 0
	for _, variants := range d {
		for _, quantity := range variants {
			if quantity > 0 {
				total += quantity
			}
		}
	}
	return total
}

// Total computes the cart total against the given unit prices. Entries
// without a price (product gone from the catalog) contribute nothing.
func (d Data) Total(prices map[uint]int64) int64 {
	var total int64
	for productID, variants := range d {
		price, ok := prices[productID]
		if !ok {
			continue
		}
		for _, quantity := range variants {
			if quantity > 0 {
				total += price * int64(quantity)
			}
		}
	}
	return total
}

// Merge adds every entry of other into d additively. Quantities for matching
// (product, color) pairs are summed, never overwritten.
func (d Data) Merge(other Data) {
	for productID, variants := range other {
		for color, quantity := range variants {
			if quantity <= 0 || color == "" {
				continue
			}
			_ = d.Add(productID, color, quantity)
		}
	}
}

// IsEmpty reports whether the cart holds no positive-quantity entries
func (d Data) IsEmpty() bool {
	return d.Count() == 0
}
