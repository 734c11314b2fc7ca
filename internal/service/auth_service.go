package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/config"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/events"
	"github.com/credsure/admin-api/internal/repository"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// AuthService coordinates login, account administration and credential
// rotation flows.
type AuthService struct {
	users      repository.AdminUserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.AdminUserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     auth.NewTokenManager(cfg.Auth.TokenSecret),
		dispatcher: deps.Dispatcher,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Login authenticates an administrator. Unknown email and wrong password
// produce the same error so account existence does not leak.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AdminUser, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("user is inactive")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// ForgotPassword stores a hashed reset code for active accounts and emits a
// notification event. It never reveals whether the account exists; the
// returned code is non-empty only when a reset was actually recorded, and
// handlers echo it outside production only.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	if !user.IsActive {
		return "", nil
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}

	tokenHash := hashResetCode(code)
	expiresAt := time.Now().Add(s.resetTTL)
	user.PasswordResetTokenHash = &tokenHash
	user.PasswordResetExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPasswordResetRequested,
		Timestamp: time.Now(),
		Payload: events.PasswordResetRequestedPayload{
			Email:     user.Email,
			ResetCode: code,
			ExpiresAt: expiresAt,
		},
	})
	return code, nil
}

// ResetPassword redeems a reset code and rotates the credential to the
// current hash scheme.
func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	user, err := s.users.FindActiveByResetTokenHash(ctx, hashResetCode(code), time.Now())
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewBadRequest("invalid or expired reset token")
		}
		return err
	}

	if auth.VerifyPassword(newPassword, user.PasswordHash) {
		return apperrors.NewBadRequest("new password must be different from current password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil
	return s.users.Update(ctx, user)
}

// Bootstrap creates the first administrator. Allowed only while the account
// directory is empty.
func (s *AuthService) Bootstrap(ctx context.Context, email, password string, role domain.Role) (*domain.AdminUser, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.NewBadRequest("bootstrap is only allowed before any user is created")
	}

	if !domain.ValidRole(role) {
		role = domain.RoleSuperAdmin
	}

	hash, err := auth.HashPassword(strings.TrimSpace(password))
	if err != nil {
		return nil, err
	}

	user := &domain.AdminUser{
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAdmin registers a new administrator account. Only SUPER_ADMIN may do
// this; the check is on the actor's verified role, not a permitted-set gate.
func (s *AuthService) CreateAdmin(ctx context.Context, actor *auth.Identity, email, password string, role domain.Role) (*domain.AdminUser, error) {
	if actor == nil || actor.Role != domain.RoleSuperAdmin {
		return nil, apperrors.NewForbidden("only SUPER_ADMIN can create admin users")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewBadRequest("invalid role")
	}

	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewBadRequest("email already exists")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAdminCreated,
		Timestamp: time.Now(),
		Payload: events.AdminCreatedPayload{
			AccountID: user.ID,
			Email:     user.Email,
			Role:      user.Role,
		},
	})
	return user, nil
}

// Me returns the account behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, accountID string) (*domain.AdminUser, error) {
	user, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before rotating to a new
// argon2id hash. Pending reset codes are invalidated.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	if !user.IsActive {
		return apperrors.NewUnauthorized("user is inactive")
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorized("current password is incorrect")
	}
	if auth.VerifyPassword(newPassword, user.PasswordHash) {
		return apperrors.NewBadRequest("new password must be different from current password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// generateResetCode draws a 6-digit decimal code from a cryptographically
// secure source.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
