package dto

import (
	"time"

	"github.com/google/uuid"
)

// swagger:model
type PurchaseRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Size     string    `json:"size" example:"medium"`
	Quantity int       `json:"quantity" example:"1"`
}

type PurchaseDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name,omitempty"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	TotalCost int       `json:"total_cost"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseResponse is the single, pinned success envelope for POST /store/purchase.
// swagger:model
type PurchaseResponse struct {
	Message    string      `json:"message"`
	Purchase   PurchaseDTO `json:"purchase"`
	NewBalance int         `json:"new_balance"`
}

type PurchasesPage struct {
	Purchases   []PurchaseDTO `json:"purchases"`
	Total       int           `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
}
