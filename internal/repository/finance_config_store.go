package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/credsure/admin-api/internal/domain"
)

// Redis keys for financing configuration records.
const (
	keyInterestRate = "finance:interest_rate"
	keyLoanTenures  = "finance:loan_tenures"
	keyCalculator   = "finance:calculator"
	keyContent      = "finance:content"
)

// FinanceConfigStore keeps financing configuration records in Redis as JSON
// values. Reads fall back to seeded defaults when a key is absent, so a
// fresh deployment serves sensible values immediately.
type FinanceConfigStore struct {
	client *redis.Client
}

// NewFinanceConfigStore builds a store around the shared Redis client.
func NewFinanceConfigStore(client *redis.Client) *FinanceConfigStore {
	return &FinanceConfigStore{client: client}
}

func defaultInterestRate() domain.InterestRateConfig {
	return domain.InterestRateConfig{AnnualRatePct: 5.5, UpdatedAt: time.Now().UTC()}
}

func defaultLoanTenures() []int {
	return []int{12, 24, 36, 48, 60}
}

func defaultCalculator() domain.CalculatorConfig {
	return domain.CalculatorConfig{
		DownPaymentPct:   20,
		ProcessingFeePct: 2.5,
		InsuranceCost:    100000,
		UpdatedAt:        time.Now().UTC(),
	}
}

func defaultContent() domain.FinancialContent {
	now := time.Now().UTC()
	return domain.FinancialContent{
		Title:       "Vehicle Financing Overview",
		Body:        "Configure rich-text financial information here.",
		Disclaimer:  "Rates and terms are subject to final approval.",
		Status:      domain.ContentPublished,
		UpdatedAt:   now,
		PublishedAt: &now,
	}
}

// InterestRate returns the stored rate or the default.
func (s *FinanceConfigStore) InterestRate(ctx context.Context) (domain.InterestRateConfig, error) {
	var rate domain.InterestRateConfig
	found, err := s.get(ctx, keyInterestRate, &rate)
	if err != nil {
		return domain.InterestRateConfig{}, err
	}
	if !found {
		return defaultInterestRate(), nil
	}
	return rate, nil
}

// SetInterestRate stores the rate.
func (s *FinanceConfigStore) SetInterestRate(ctx context.Context, rate domain.InterestRateConfig) error {
	return s.set(ctx, keyInterestRate, rate)
}

// LoanTenures returns the stored tenure list or the default.
func (s *FinanceConfigStore) LoanTenures(ctx context.Context) ([]int, error) {
	var tenures []int
	found, err := s.get(ctx, keyLoanTenures, &tenures)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaultLoanTenures(), nil
	}
	return tenures, nil
}

// SetLoanTenures stores the tenure list.
func (s *FinanceConfigStore) SetLoanTenures(ctx context.Context, tenures []int) error {
	return s.set(ctx, keyLoanTenures, tenures)
}

// Calculator returns the stored calculator config or the default.
func (s *FinanceConfigStore) Calculator(ctx context.Context) (domain.CalculatorConfig, error) {
	var calc domain.CalculatorConfig
	found, err := s.get(ctx, keyCalculator, &calc)
	if err != nil {
		return domain.CalculatorConfig{}, err
	}
	if !found {
		return defaultCalculator(), nil
	}
	return calc, nil
}

// SetCalculator stores the calculator config.
func (s *FinanceConfigStore) SetCalculator(ctx context.Context, calc domain.CalculatorConfig) error {
	return s.set(ctx, keyCalculator, calc)
}

// Content returns the stored financial content or the default.
func (s *FinanceConfigStore) Content(ctx context.Context) (domain.FinancialContent, error) {
	var content domain.FinancialContent
	found, err := s.get(ctx, keyContent, &content)
	if err != nil {
		return domain.FinancialContent{}, err
	}
	if !found {
		return defaultContent(), nil
	}
	return content, nil
}

// SetContent stores the financial content.
func (s *FinanceConfigStore) SetContent(ctx context.Context, content domain.FinancialContent) error {
	return s.set(ctx, keyContent, content)
}

// Snapshot loads every financing configuration record.
func (s *FinanceConfigStore) Snapshot(ctx context.Context) (domain.FinanceConfig, error) {
	rate, err := s.InterestRate(ctx)
	if err != nil {
		return domain.FinanceConfig{}, err
	}
	tenures, err := s.LoanTenures(ctx)
	if err != nil {
		return domain.FinanceConfig{}, err
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return domain.FinanceConfig{}, err
	}
	content, err := s.Content(ctx)
	if err != nil {
		return domain.FinanceConfig{}, err
	}
	return domain.FinanceConfig{
		InterestRate:        rate,
		LoanTenuresInMonths: tenures,
		Calculator:          calc,
		Content:             content,
	}, nil
}

func (s *FinanceConfigStore) get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FinanceConfigStore) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, 0).Err()
}
