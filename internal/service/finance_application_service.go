package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/events"
	"github.com/credsure/admin-api/internal/repository"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// FinanceApplicationService handles public loan-application intake and the
// admin review workflow.
type FinanceApplicationService struct {
	apps       repository.FinanceApplicationRepository
	cars       repository.CarRepository
	dispatcher events.Dispatcher
	activity   *ActivityService
}

// NewFinanceApplicationService builds the service.
func NewFinanceApplicationService(
	apps repository.FinanceApplicationRepository,
	cars repository.CarRepository,
	dispatcher events.Dispatcher,
	activity *ActivityService,
) *FinanceApplicationService {
	return &FinanceApplicationService{
		apps:       apps,
		cars:       cars,
		dispatcher: dispatcher,
		activity:   activity,
	}
}

// SubmitApplicationInput carries a public intake submission.
type SubmitApplicationInput struct {
	FullName                  string
	PhoneNumber               string
	Email                     string
	EmploymentStatus          string
	EstimatedNetMonthlyIncome float64
	CarID                     *string
	DownPayment               *float64
	MonthlyPayment            *float64
	ConsentGiven              bool
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Submit records a new application. When a car is referenced the vehicle name
// and amount are snapshotted from the catalog so later price changes do not
// rewrite submitted applications.
func (s *FinanceApplicationService) Submit(ctx context.Context, input SubmitApplicationInput) (*domain.FinanceApplication, error) {
	app := &domain.FinanceApplication{
		FullName:                  strings.TrimSpace(input.FullName),
		PhoneNumber:               strings.TrimSpace(input.PhoneNumber),
		Email:                     strings.ToLower(strings.TrimSpace(input.Email)),
		EmploymentStatus:          strings.TrimSpace(input.EmploymentStatus),
		EstimatedNetMonthlyIncome: input.EstimatedNetMonthlyIncome,
		DownPayment:               input.DownPayment,
		MonthlyPayment:            input.MonthlyPayment,
		Status:                    domain.ApplicationPending,
		ConsentGiven:              input.ConsentGiven,
	}

	if input.CarID != nil && *input.CarID != "" {
		car, err := s.cars.GetByID(ctx, *input.CarID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewBadRequest("car not found")
			}
			return nil, err
		}
		name := car.DisplayName()
		amount := car.BasePrice
		app.CarID = &car.ID
		app.SelectedVehicle = &name
		app.VehicleAmount = &amount
	}

	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, nil, "CREATE_FINANCE_APPLICATION", "finance_application", &app.ID, map[string]any{
		"email": app.Email,
	})

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFinanceApplicationSubmitted,
		Timestamp: time.Now(),
		Payload: events.FinanceApplicationSubmittedPayload{
			ApplicationID:   app.ID,
			FullName:        app.FullName,
			Email:           app.Email,
			SelectedVehicle: app.SelectedVehicle,
		},
	})
	return app, nil
}

// Get returns one application.
func (s *FinanceApplicationService) Get(ctx context.Context, id string) (*domain.FinanceApplication, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("finance application", nil)
		}
		return nil, err
	}
	return app, nil
}

// List returns one page of applications, newest first, optionally filtered by
// status.
func (s *FinanceApplicationService) List(ctx context.Context, status *domain.FinanceApplicationStatus, page, limit int) ([]*domain.FinanceApplication, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if status != nil && !domain.ValidApplicationStatus(*status) {
		return nil, Pagination{}, apperrors.NewBadRequest("invalid application status")
	}

	items, total, err := s.apps.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return items, Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus moves an application to a new review state.
func (s *FinanceApplicationService) UpdateStatus(ctx context.Context, actor *auth.Identity, id string, status domain.FinanceApplicationStatus) (*domain.FinanceApplication, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperrors.NewBadRequest("invalid application status")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.apps.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("finance application", nil)
		}
		return nil, err
	}

	s.activity.Record(ctx, actor, "UPDATE_FINANCE_APPLICATION_STATUS", "finance_application", &id, map[string]any{
		"previousStatus": existing.Status,
		"newStatus":      status,
	})
	return updated, nil
}
