package client

import (
	"errors"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"

	"github.com/google/uuid"
)

var ErrSizeRequired = errors.New("a size must be selected for this item")

// CartLine is one pending unit of one item in one size. The price is frozen
// at add time and never re-read from the catalog; a stale catalog does not
// reprice the cart.
type CartLine struct {
	ID       uuid.UUID
	ItemID   uuid.UUID
	ItemName string
	Size     string
	Price    int
}

// Cart is the in-memory ledger of items chosen but not yet purchased.
// Repeated adds of the same item are distinct lines, never merged quantities;
// insertion order is the display order.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add resolves the price for the chosen size and appends a new line. The add
// fails when no size is chosen or the item is not offered in that size.
func (c *Cart) Add(item dto.ItemDTO, size string) (CartLine, error) {
	if size == "" {
		return CartLine{}, ErrSizeRequired
	}

	canonical := models.NormalizeSize(size)
	price, ok := item.SizePricing[canonical]
	if !ok {
		return CartLine{}, ErrSizeRequired
	}

	line := CartLine{
		ID:       uuid.New(),
		ItemID:   item.ID,
		ItemName: item.Name,
		Size:     canonical,
		Price:    price,
	}
	c.lines = append(c.lines, line)

	return line, nil
}

// Remove drops the line with the given id. Removing an unknown id is a no-op.
func (c *Cart) Remove(lineID uuid.UUID) {
	for i, line := range c.lines {
		if line.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the sum of the frozen line prices; 0 for an empty cart.
func (c *Cart) Total() int {
	total := 0
	for _, line := range c.lines {
		total += line.Price
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
