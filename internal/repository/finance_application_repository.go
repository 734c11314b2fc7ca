package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credsure/admin-api/internal/domain"
)

// FinanceApplicationRepository persists loan-application intake records.
type FinanceApplicationRepository interface {
	Create(ctx context.Context, app *domain.FinanceApplication) error
	GetByID(ctx context.Context, id string) (*domain.FinanceApplication, error)
	List(ctx context.Context, status *domain.FinanceApplicationStatus, limit, offset int) ([]*domain.FinanceApplication, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.FinanceApplicationStatus) (*domain.FinanceApplication, error)
}

type financeApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewFinanceApplicationRepository returns a Postgres-backed implementation.
func NewFinanceApplicationRepository(pool *pgxpool.Pool) FinanceApplicationRepository {
	return &financeApplicationRepository{pool: pool}
}

const applicationColumns = `id, full_name, phone_number, email, employment_status,
        estimated_net_monthly_income, car_id, selected_vehicle, vehicle_amount,
        down_payment, monthly_payment, status, consent_given, created_at, updated_at`

func (r *financeApplicationRepository) Create(ctx context.Context, app *domain.FinanceApplication) error {
	const query = `
        INSERT INTO finance_applications
            (full_name, phone_number, email, employment_status, estimated_net_monthly_income,
             car_id, selected_vehicle, vehicle_amount, down_payment, monthly_payment, status, consent_given)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		app.FullName,
		app.PhoneNumber,
		app.Email,
		app.EmploymentStatus,
		app.EstimatedNetMonthlyIncome,
		app.CarID,
		app.SelectedVehicle,
		app.VehicleAmount,
		app.DownPayment,
		app.MonthlyPayment,
		app.Status,
		app.ConsentGiven,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *financeApplicationRepository) GetByID(ctx context.Context, id string) (*domain.FinanceApplication, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM finance_applications WHERE id=$1`, id)
	return scanApplication(row)
}

func (r *financeApplicationRepository) List(ctx context.Context, status *domain.FinanceApplicationStatus, limit, offset int) ([]*domain.FinanceApplication, int64, error) {
	listQuery := `SELECT ` + applicationColumns + ` FROM finance_applications`
	countQuery := `SELECT COUNT(*) FROM finance_applications`
	args := []any{}
	if status != nil {
		listQuery += ` WHERE status=$1`
		countQuery += ` WHERE status=$1`
		args = append(args, *status)
	}
	listQuery += ` ORDER BY created_at DESC`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any{}, args...), limit, offset)
	if status != nil {
		listQuery += ` LIMIT $2 OFFSET $3`
	} else {
		listQuery += ` LIMIT $1 OFFSET $2`
	}

	rows, err := r.pool.Query(ctx, listQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*domain.FinanceApplication, 0, limit)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *financeApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.FinanceApplicationStatus) (*domain.FinanceApplication, error) {
	const query = `
        UPDATE finance_applications SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query, status, id)
	return scanApplication(row)
}

func scanApplication(row pgx.Row) (*domain.FinanceApplication, error) {
	var app domain.FinanceApplication
	if err := row.Scan(
		&app.ID,
		&app.FullName,
		&app.PhoneNumber,
		&app.Email,
		&app.EmploymentStatus,
		&app.EstimatedNetMonthlyIncome,
		&app.CarID,
		&app.SelectedVehicle,
		&app.VehicleAmount,
		&app.DownPayment,
		&app.MonthlyPayment,
		&app.Status,
		&app.ConsentGiven,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}
