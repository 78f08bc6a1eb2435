package models

import (
	"github.com/google/uuid"
	"time"
)

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

type Purchase struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	ItemID    uuid.UUID      `json:"item_id" db:"item_id"`
	Quantity  int            `json:"quantity" db:"quantity"`
	Size      string         `json:"size" db:"size"`
	TotalCost int            `json:"total_cost" db:"total_cost"` // points spent, frozen at purchase time
	Status    PurchaseStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
