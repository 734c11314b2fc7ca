package domain

import "time"

// FinanceApplicationStatus enumerates review states for loan applications.
type FinanceApplicationStatus string

const (
	ApplicationPending     FinanceApplicationStatus = "PENDING"
	ApplicationUnderReview FinanceApplicationStatus = "UNDER_REVIEW"
	ApplicationApproved    FinanceApplicationStatus = "APPROVED"
	ApplicationRejected    FinanceApplicationStatus = "REJECTED"
)

// ValidApplicationStatus reports whether the value belongs to the enumeration.
func ValidApplicationStatus(s FinanceApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationUnderReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// FinanceApplication is a customer loan-application record submitted from the
// public site.
type FinanceApplication struct {
	ID                        string
	FullName                  string
	PhoneNumber               string
	Email                     string
	EmploymentStatus          string
	EstimatedNetMonthlyIncome float64
	CarID                     *string
	SelectedVehicle           *string
	VehicleAmount             *float64
	DownPayment               *float64
	MonthlyPayment            *float64
	Status                    FinanceApplicationStatus
	ConsentGiven              bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
