package domain

import "time"

// AdminUser is a back-office account.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool

	// Password-reset state; both nil unless a reset is pending.
	PasswordResetTokenHash *string
	PasswordResetExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
