package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credsure/admin-api/internal/domain"
)

// AdminUserRepository is the account directory: persistence access for
// back-office accounts, looked up by identifier or email.
type AdminUserRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) error
	Update(ctx context.Context, user *domain.AdminUser) error
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Count(ctx context.Context) (int64, error)
	FindActiveByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.AdminUser, error)
}

type adminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository returns a Postgres-backed implementation.
func NewAdminUserRepository(pool *pgxpool.Pool) AdminUserRepository {
	return &adminUserRepository{pool: pool}
}

const adminUserColumns = `id, email, password_hash, role, is_active,
        password_reset_token_hash, password_reset_expires_at, created_at, updated_at`

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (email, password_hash, role, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *adminUserRepository) Update(ctx context.Context, user *domain.AdminUser) error {
	const query = `
        UPDATE admin_users
        SET email=$1, password_hash=$2, role=$3, is_active=$4,
            password_reset_token_hash=$5, password_reset_expires_at=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
		user.PasswordResetTokenHash,
		user.PasswordResetExpiresAt,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminUserColumns+` FROM admin_users WHERE id=$1`, id)
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+adminUserColumns+` FROM admin_users WHERE email=$1`, email)
}

func (r *adminUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *adminUserRepository) FindActiveByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.AdminUser, error) {
	const query = `
        SELECT ` + adminUserColumns + `
        FROM admin_users
        WHERE password_reset_token_hash=$1 AND password_reset_expires_at > $2 AND is_active`

	return r.getOne(ctx, query, tokenHash, now)
}

func (r *adminUserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.PasswordResetTokenHash,
		&user.PasswordResetExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
