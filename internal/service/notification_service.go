package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/events"
	"github.com/credsure/admin-api/internal/notification"
)

// NotificationService turns domain events into outbound email. Delivery
// failures are logged and swallowed so the originating operation is never
// affected.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notification.Mailer
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notification.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the events this service reacts to.
func (s *NotificationService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventFinanceApplicationSubmitted, s.handleApplicationSubmitted)
	s.dispatcher.Subscribe(events.EventPasswordResetRequested, s.handlePasswordResetRequested)
	s.dispatcher.Subscribe(events.EventAdminCreated, s.handleAdminCreated)
}

func (s *NotificationService) handleApplicationSubmitted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.FinanceApplicationSubmittedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for event %s", event.Type)
	}

	body := fmt.Sprintf("Hi %s,\n\nWe received your financing application", payload.FullName)
	if payload.SelectedVehicle != nil {
		body += fmt.Sprintf(" for %s", *payload.SelectedVehicle)
	}
	body += ".\nOur team will review it and get back to you shortly.\n"

	if err := s.mailer.Send(payload.Email, "We received your financing application", body); err != nil {
		s.logger.Warn("failed to send application confirmation",
			zap.String("application_id", payload.ApplicationID),
			zap.Error(err))
	}
	return nil
}

func (s *NotificationService) handlePasswordResetRequested(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for event %s", event.Type)
	}

	body := fmt.Sprintf(
		"Your password reset code is %s.\nIt expires at %s.\n\nIf you did not request this, ignore this email.\n",
		payload.ResetCode,
		payload.ExpiresAt.Format("15:04 MST, Jan 2 2006"),
	)
	if err := s.mailer.Send(payload.Email, "Password reset code", body); err != nil {
		s.logger.Warn("failed to send password reset email", zap.Error(err))
	}
	return nil
}

func (s *NotificationService) handleAdminCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AdminCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for event %s", event.Type)
	}

	s.logger.Info("admin account created",
		zap.String("account_id", payload.AccountID),
		zap.String("role", string(payload.Role)))
	return nil
}
