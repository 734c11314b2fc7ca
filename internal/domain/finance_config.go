package domain

import "time"

// ContentStatus enumerates publication states for financial content.
type ContentStatus string

const (
	ContentDraft     ContentStatus = "DRAFT"
	ContentPublished ContentStatus = "PUBLISHED"
)

// InterestRateConfig is the single advertised annual interest rate.
type InterestRateConfig struct {
	AnnualRatePct float64   `json:"annualRatePct"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CalculatorConfig drives the public financing calculator.
type CalculatorConfig struct {
	DownPaymentPct   float64   `json:"downPaymentPct"`
	ProcessingFeePct float64   `json:"processingFeePct"`
	InsuranceCost    float64   `json:"insuranceCost"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FinancialContent is the editable financing information page.
type FinancialContent struct {
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	Disclaimer  string        `json:"disclaimer"`
	Status      ContentStatus `json:"status"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PublishedAt *time.Time    `json:"publishedAt"`
}

// FinanceConfig aggregates every financing configuration record.
type FinanceConfig struct {
	InterestRate        InterestRateConfig `json:"interestRate"`
	LoanTenuresInMonths []int              `json:"loanTenuresInMonths"`
	Calculator          CalculatorConfig   `json:"calculator"`
	Content             FinancialContent   `json:"content"`
}
