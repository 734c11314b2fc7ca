package dto

import (
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// UpdateInterestRateRequest payload for the annual interest rate.
type UpdateInterestRateRequest struct {
	AnnualRatePct float64 `json:"annualRatePct" validate:"required,gt=0,lte=100"`
}

// AddLoanTenureRequest payload adding one tenure.
type AddLoanTenureRequest struct {
	Months int `json:"months" validate:"required,gt=0,lte=120"`
}

// UpdateLoanTenureRequest payload replacing one tenure value.
type UpdateLoanTenureRequest struct {
	PreviousMonths int `json:"previousMonths" validate:"required,gt=0,lte=120"`
	NewMonths      int `json:"newMonths" validate:"required,gt=0,lte=120"`
}

// UpdateCalculatorRequest payload for calculator assumptions.
type UpdateCalculatorRequest struct {
	DownPaymentPct   float64 `json:"downPaymentPct" validate:"gte=0,lte=100"`
	ProcessingFeePct float64 `json:"processingFeePct" validate:"gte=0,lte=100"`
	InsuranceCost    float64 `json:"insuranceCost" validate:"gte=0"`
}

// SaveContentDraftRequest payload for financial content.
type SaveContentDraftRequest struct {
	Title      string `json:"title" validate:"required"`
	Body       string `json:"body" validate:"required"`
	Disclaimer string `json:"disclaimer"`
}

// SubmitApplicationRequest payload for the public intake form.
type SubmitApplicationRequest struct {
	FullName                  string   `json:"fullName" validate:"required"`
	PhoneNumber               string   `json:"phoneNumber" validate:"required"`
	Email                     string   `json:"email" validate:"required,email"`
	EmploymentStatus          string   `json:"employmentStatus" validate:"required"`
	EstimatedNetMonthlyIncome float64  `json:"estimatedNetMonthlyIncome" validate:"required,gt=0"`
	CarID                     *string  `json:"carId" validate:"omitempty,uuid"`
	DownPayment               *float64 `json:"downPayment" validate:"omitempty,gte=0"`
	MonthlyPayment            *float64 `json:"monthlyPayment" validate:"omitempty,gte=0"`
	ConsentGiven              bool     `json:"consentGiven" validate:"required,eq=true"`
}

// UpdateApplicationStatusRequest payload for the review workflow.
type UpdateApplicationStatusRequest struct {
	Status domain.FinanceApplicationStatus `json:"status" validate:"required,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
}

// FinanceApplicationResponse is the public shape of an application.
type FinanceApplicationResponse struct {
	ID                        string                          `json:"id"`
	FullName                  string                          `json:"fullName"`
	PhoneNumber               string                          `json:"phoneNumber"`
	Email                     string                          `json:"email"`
	EmploymentStatus          string                          `json:"employmentStatus"`
	EstimatedNetMonthlyIncome float64                         `json:"estimatedNetMonthlyIncome"`
	CarID                     *string                         `json:"carId,omitempty"`
	SelectedVehicle           *string                         `json:"selectedVehicle,omitempty"`
	VehicleAmount             *float64                        `json:"vehicleAmount,omitempty"`
	DownPayment               *float64                        `json:"downPayment,omitempty"`
	MonthlyPayment            *float64                        `json:"monthlyPayment,omitempty"`
	Status                    domain.FinanceApplicationStatus `json:"status"`
	ConsentGiven              bool                            `json:"consentGiven"`
	CreatedAt                 time.Time                       `json:"createdAt"`
	UpdatedAt                 time.Time                       `json:"updatedAt"`
}

// FromFinanceApplication maps a domain application to its response shape.
func FromFinanceApplication(app *domain.FinanceApplication) FinanceApplicationResponse {
	return FinanceApplicationResponse{
		ID:                        app.ID,
		FullName:                  app.FullName,
		PhoneNumber:               app.PhoneNumber,
		Email:                     app.Email,
		EmploymentStatus:          app.EmploymentStatus,
		EstimatedNetMonthlyIncome: app.EstimatedNetMonthlyIncome,
		CarID:                     app.CarID,
		SelectedVehicle:           app.SelectedVehicle,
		VehicleAmount:             app.VehicleAmount,
		DownPayment:               app.DownPayment,
		MonthlyPayment:            app.MonthlyPayment,
		Status:                    app.Status,
		ConsentGiven:              app.ConsentGiven,
		CreatedAt:                 app.CreatedAt,
		UpdatedAt:                 app.UpdatedAt,
	}
}

// FromFinanceApplications maps a list of applications.
func FromFinanceApplications(apps []*domain.FinanceApplication) []FinanceApplicationResponse {
	out := make([]FinanceApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, FromFinanceApplication(app))
	}
	return out
}
