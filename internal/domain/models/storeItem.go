package models

import (
	"strings"

	"github.com/google/uuid"
	"time"
)

// SizePrices is the fixed price table for every size a catalog item can come in.
// Prices are points, not money.
var SizePrices = map[string]int{
	"xsmall": 50,
	"small":  100,
	"medium": 250,
	"large":  500,
	"xlarge": 1000,
}

// sizeAliases maps the short labels the UI sends (XS, S, M, L, XL) onto the
// canonical size names stored in the database.
var sizeAliases = map[string]string{
	"XS": "xsmall",
	"S":  "small",
	"M":  "medium",
	"L":  "large",
	"XL": "xlarge",
}

// NormalizeSize converts a size label to its canonical form.
func NormalizeSize(size string) string {
	if canonical, ok := sizeAliases[strings.ToUpper(size)]; ok {
		return canonical
	}
	return strings.ToLower(size)
}

func ValidSize(size string) bool {
	_, ok := SizePrices[NormalizeSize(size)]
	return ok
}

type StoreItem struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	AvailableSizes []string  `json:"available_sizes" db:"available_sizes"`
	ImageURL       string    `json:"image_url" db:"image_url"`
	Category       string    `json:"category" db:"category"`
	IsAvailable    bool      `json:"is_available" db:"is_available"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PriceForSize resolves the price of the item in the given size. The second
// return value is false when the size is unknown or not offered for this item.
func (i StoreItem) PriceForSize(size string) (int, bool) {
	canonical := NormalizeSize(size)
	price, ok := SizePrices[canonical]
	if !ok {
		return 0, false
	}
	for _, s := range i.AvailableSizes {
		if s == canonical {
			return price, true
		}
	}
	return 0, false
}

// SizePricing returns the size -> price mapping restricted to the sizes this
// item is offered in.
func (i StoreItem) SizePricing() map[string]int {
	pricing := make(map[string]int, len(i.AvailableSizes))
	for _, s := range i.AvailableSizes {
		if price, ok := SizePrices[s]; ok {
			pricing[s] = price
		}
	}
	return pricing
}
