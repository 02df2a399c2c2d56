package dto

import (
	"time"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse wire shape. Password hash never leaves the server.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	IsPremium bool        `json:"is_premium"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// UserListResponse is the paginated listing envelope.
type UserListResponse struct {
	Users      []UserResponse  `json:"users"`
	Pagination util.Pagination `json:"pagination"`
}
