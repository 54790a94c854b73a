package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the JWT claims issued at login
type JWTClaims struct {
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        UserRole   `json:"role"`
	Permissions []string   `json:"permissions"`
	Status      UserStatus `json:"status"`

	// Persona links carried so handlers can scope queries without a
	// user lookup.
	CustomerID string `json:"customer_id,omitempty"`
	SupplierID string `json:"supplier_id,omitempty"`
	RiderID    string `json:"rider_id,omitempty"`

	jwt.RegisteredClaims
}

// LoginRequest is the credential payload for /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and account summary
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
	UserID    string   `json:"userId"`
	Role      UserRole `json:"role"`
	Name      string   `json:"name"`
}
