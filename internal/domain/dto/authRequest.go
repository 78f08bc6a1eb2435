package dto

// swagger:model
type LoginRequest struct {
	Username string `json:"username" example:"jsmith"`
	Password string `json:"password" example:"secret"`
}
