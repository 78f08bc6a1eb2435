package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO is the user shape every endpoint returns. The password hash never
// leaves the repository layer.
type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	PointsBalance int       `json:"points_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// swagger:model
type CreateUserRequest struct {
	Username      string `json:"username" example:"jsmith"`
	Password      string `json:"password" example:"secret123"`
	Email         string `json:"email" example:"jsmith@school.edu"`
	FirstName     string `json:"first_name" example:"Jane"`
	LastName      string `json:"last_name" example:"Smith"`
	Role          string `json:"role" example:"student"`
	PointsBalance int    `json:"points_balance" example:"0"`
}

// UpdateUserRequest carries partial updates; nil fields are left untouched.
// swagger:model
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
}
