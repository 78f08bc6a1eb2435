package dto

import (
	"time"

	"github.com/google/uuid"
)

type ItemDTO struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	AvailableSizes []string       `json:"available_sizes"`
	SizePricing    map[string]int `json:"size_pricing"`
	ImageURL       string         `json:"image_url"`
	Category       string         `json:"category"`
	IsAvailable    bool           `json:"is_available"`
	CreatedAt      time.Time      `json:"created_at"`
}

// swagger:model
type CreateItemRequest struct {
	Name           string   `json:"name" example:"Hoodie"`
	Description    string   `json:"description" example:"School hoodie with logo"`
	AvailableSizes []string `json:"available_sizes" example:"small,medium,large"`
	ImageURL       string   `json:"image_url"`
	Category       string   `json:"category" example:"Apparel"`
	IsAvailable    *bool    `json:"is_available,omitempty"`
}

// swagger:model
type UpdateItemRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	AvailableSizes []string `json:"available_sizes,omitempty"`
	ImageURL       *string  `json:"image_url,omitempty"`
	Category       *string  `json:"category,omitempty"`
	IsAvailable    *bool    `json:"is_available,omitempty"`
}
