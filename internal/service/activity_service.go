package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/repository"
)

// ActivityService records and lists the administrative audit trail. Recording
// is best effort; a failed audit write is logged but never fails the
// operation that produced it.
type ActivityService struct {
	logs   repository.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityService builds the service.
func NewActivityService(logs repository.ActivityLogRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{logs: logs, logger: logger}
}

// Record writes one audit entry. actor is nil for public endpoints.
func (s *ActivityService) Record(ctx context.Context, actor *auth.Identity, action, entityType string, entityID *string, metadata map[string]any) {
	entry := &domain.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if actor != nil {
		entry.ActorID = &actor.AccountID
		role := actor.Role
		entry.ActorRole = &role
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to record activity log",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}

// List returns the most recent audit entries.
func (s *ActivityService) List(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	return s.logs.List(ctx, limit)
}
