package dto

import (
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// LoginRequest payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BootstrapRequest payload for first-admin bootstrap.
type BootstrapRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=SUPER_ADMIN CREDSURE_ADMIN SUZUKI_ADMIN"`
}

// CreateAdminRequest payload for registering a new administrator.
type CreateAdminRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"required,oneof=SUPER_ADMIN CREDSURE_ADMIN SUZUKI_ADMIN"`
}

// ForgotPasswordRequest payload for requesting a reset code.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest payload for redeeming a reset code.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePasswordRequest payload for rotating the current password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminUserResponse is the public shape of an administrator account.
type AdminUserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
}

// FromAdminUser maps a domain account to its response shape.
func FromAdminUser(user *domain.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
