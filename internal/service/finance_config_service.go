package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/repository"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// FinanceConfigService manages financing configuration: interest rate, loan
// tenures, calculator assumptions and the public financial content.
type FinanceConfigService struct {
	store    *repository.FinanceConfigStore
	activity *ActivityService
}

// NewFinanceConfigService builds the service.
func NewFinanceConfigService(store *repository.FinanceConfigStore, activity *ActivityService) *FinanceConfigService {
	return &FinanceConfigService{store: store, activity: activity}
}

// Config returns the full configuration snapshot.
func (s *FinanceConfigService) Config(ctx context.Context) (domain.FinanceConfig, error) {
	return s.store.Snapshot(ctx)
}

// PublishedContent returns financial content only when published.
func (s *FinanceConfigService) PublishedContent(ctx context.Context) (*domain.FinancialContent, error) {
	content, err := s.store.Content(ctx)
	if err != nil {
		return nil, err
	}
	if content.Status != domain.ContentPublished {
		return nil, apperrors.NewNotFound("published financial content", nil)
	}
	return &content, nil
}

// UpdateInterestRate stores a new annual rate, rounded to two decimals.
func (s *FinanceConfigService) UpdateInterestRate(ctx context.Context, actor *auth.Identity, annualRatePct float64) (domain.InterestRateConfig, error) {
	previous, err := s.store.InterestRate(ctx)
	if err != nil {
		return domain.InterestRateConfig{}, err
	}

	rate := domain.InterestRateConfig{
		AnnualRatePct: math.Round(annualRatePct*100) / 100,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := s.store.SetInterestRate(ctx, rate); err != nil {
		return domain.InterestRateConfig{}, err
	}

	s.activity.Record(ctx, actor, "UPDATE_INTEREST_RATE", "finance_config", nil, map[string]any{
		"previousRate": previous.AnnualRatePct,
		"newRate":      rate.AnnualRatePct,
	})
	return rate, nil
}

// AddTenure appends a loan tenure. The list stays sorted and duplicate free.
func (s *FinanceConfigService) AddTenure(ctx context.Context, actor *auth.Identity, months int) ([]int, error) {
	tenures, err := s.store.LoanTenures(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tenures {
		if t == months {
			return nil, apperrors.NewBadRequest("tenure already exists")
		}
	}

	tenures = append(tenures, months)
	sort.Ints(tenures)
	if err := s.store.SetLoanTenures(ctx, tenures); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "ADD_LOAN_TENURE", "finance_config", nil, map[string]any{
		"months": months,
	})
	return tenures, nil
}

// UpdateTenure replaces one tenure value with another.
func (s *FinanceConfigService) UpdateTenure(ctx context.Context, actor *auth.Identity, previousMonths, newMonths int) ([]int, error) {
	tenures, err := s.store.LoanTenures(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, t := range tenures {
		if t == previousMonths {
			index = i
		}
		if t == newMonths && previousMonths != newMonths {
			return nil, apperrors.NewBadRequest("tenure already exists")
		}
	}
	if index == -1 {
		return nil, apperrors.NewNotFound("loan tenure", nil)
	}

	tenures[index] = newMonths
	sort.Ints(tenures)
	if err := s.store.SetLoanTenures(ctx, tenures); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "UPDATE_LOAN_TENURE", "finance_config", nil, map[string]any{
		"previousMonths": previousMonths,
		"newMonths":      newMonths,
	})
	return tenures, nil
}

// DeleteTenure removes one tenure value.
func (s *FinanceConfigService) DeleteTenure(ctx context.Context, actor *auth.Identity, months int) ([]int, error) {
	tenures, err := s.store.LoanTenures(ctx)
	if err != nil {
		return nil, err
	}

	remaining := make([]int, 0, len(tenures))
	for _, t := range tenures {
		if t != months {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(tenures) {
		return nil, apperrors.NewNotFound("loan tenure", nil)
	}

	if err := s.store.SetLoanTenures(ctx, remaining); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "DELETE_LOAN_TENURE", "finance_config", nil, map[string]any{
		"months": months,
	})
	return remaining, nil
}

// UpdateCalculator stores calculator assumptions.
func (s *FinanceConfigService) UpdateCalculator(ctx context.Context, actor *auth.Identity, downPaymentPct, processingFeePct, insuranceCost float64) (domain.CalculatorConfig, error) {
	calc := domain.CalculatorConfig{
		DownPaymentPct:   downPaymentPct,
		ProcessingFeePct: processingFeePct,
		InsuranceCost:    insuranceCost,
		UpdatedAt:        time.Now().UTC(),
	}
	if err := s.store.SetCalculator(ctx, calc); err != nil {
		return domain.CalculatorConfig{}, err
	}

	s.activity.Record(ctx, actor, "UPDATE_CALCULATOR_CONFIG", "finance_config", nil, map[string]any{
		"downPaymentPct":   downPaymentPct,
		"processingFeePct": processingFeePct,
		"insuranceCost":    insuranceCost,
	})
	return calc, nil
}

// SaveContentDraft stores financial content in DRAFT status. A previous
// publication timestamp is cleared.
func (s *FinanceConfigService) SaveContentDraft(ctx context.Context, actor *auth.Identity, title, body, disclaimer string) (domain.FinancialContent, error) {
	content := domain.FinancialContent{
		Title:      title,
		Body:       body,
		Disclaimer: disclaimer,
		Status:     domain.ContentDraft,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.store.SetContent(ctx, content); err != nil {
		return domain.FinancialContent{}, err
	}

	s.activity.Record(ctx, actor, "SAVE_FINANCIAL_CONTENT_DRAFT", "finance_config", nil, map[string]any{
		"title": title,
	})
	return content, nil
}

// PublishContent marks the current content as published.
func (s *FinanceConfigService) PublishContent(ctx context.Context, actor *auth.Identity) (domain.FinancialContent, error) {
	content, err := s.store.Content(ctx)
	if err != nil {
		return domain.FinancialContent{}, err
	}

	now := time.Now().UTC()
	content.Status = domain.ContentPublished
	content.UpdatedAt = now
	content.PublishedAt = &now
	if err := s.store.SetContent(ctx, content); err != nil {
		return domain.FinancialContent{}, err
	}

	s.activity.Record(ctx, actor, "PUBLISH_FINANCIAL_CONTENT", "finance_config", nil, map[string]any{
		"title": content.Title,
	})
	return content, nil
}
