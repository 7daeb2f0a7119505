package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminSummary is the public operator view.
type AdminSummary struct {
	Name string `json:"name"`
}

// LoginResponse carries a signed session token.
type LoginResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     AdminSummary `json:"admin"`
}
