package dto

import (
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// ActivityLogResponse is the public shape of an audit entry.
type ActivityLogResponse struct {
	ID         string         `json:"id"`
	ActorID    *string        `json:"actorId,omitempty"`
	ActorRole  *domain.Role   `json:"actorRole,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// FromActivityLogs maps audit entries to their response shape.
func FromActivityLogs(entries []*domain.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, ActivityLogResponse{
			ID:         entry.ID,
			ActorID:    entry.ActorID,
			ActorRole:  entry.ActorRole,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Metadata:   entry.Metadata,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return out
}
