package dto

import (
	"time"

	"github.com/google/uuid"
)

type TransactionDTO struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	UserName        string     `json:"user_name,omitempty"`
	TransactionType string     `json:"transaction_type"`
	Amount          int        `json:"amount"`
	Reason          string     `json:"reason"`
	ReferenceID     *uuid.UUID `json:"reference_id,omitempty"`
	CreatedBy       *uuid.UUID `json:"created_by,omitempty"`
	TeacherName     string     `json:"teacher_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type TransactionsPage struct {
	Transactions []TransactionDTO `json:"transactions"`
	Total        int              `json:"total"`
	Pages        int              `json:"pages"`
	CurrentPage  int              `json:"current_page"`
}

type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PointsBalance int       `json:"points_balance"`
}
