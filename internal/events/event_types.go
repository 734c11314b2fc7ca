package events

import (
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFinanceApplicationSubmitted EventType = "finance_application_submitted"
	EventPasswordResetRequested      EventType = "password_reset_requested"
	EventAdminCreated                EventType = "admin_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FinanceApplicationSubmittedPayload payload.
type FinanceApplicationSubmittedPayload struct {
	ApplicationID   string  `json:"application_id"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	SelectedVehicle *string `json:"selected_vehicle,omitempty"`
}

// PasswordResetRequestedPayload payload. The code is carried in cleartext to
// the mail handler only; storage keeps the sha256 digest.
type PasswordResetRequestedPayload struct {
	Email     string    `json:"email"`
	ResetCode string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminCreatedPayload payload.
type AdminCreatedPayload struct {
	AccountID string      `json:"account_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}
