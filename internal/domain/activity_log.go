package domain

import "time"

// ActivityLog is an immutable audit trail entry for admin actions.
type ActivityLog struct {
	ID         string
	ActorID    *string
	ActorRole  *Role
	Action     string
	EntityType string
	EntityID   *string
	Metadata   map[string]any
	CreatedAt  time.Time
}
