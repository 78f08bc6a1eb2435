package dto

import "github.com/google/uuid"

// swagger:model
type AwardRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Amount int       `json:"amount" example:"50"`
	Reason string    `json:"reason" example:"Helped clean the classroom"`
}

// swagger:model
type AwardResponse struct {
	Message     string         `json:"message"`
	Transaction TransactionDTO `json:"transaction"`
	NewBalance  int            `json:"new_balance"`
}
