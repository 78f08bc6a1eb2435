package models

import (
	"github.com/google/uuid"
	"time"
)

type TransactionType string

const (
	TransactionEarned TransactionType = "earned"
	TransactionSpent  TransactionType = "spent"
)

type PointsTransaction struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Amount          int             `json:"amount" db:"amount"`
	Reason          string          `json:"reason" db:"reason"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty" db:"reference_id"` // purchase id for spent rows
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`     // teacher who awarded, nil for spent rows
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
