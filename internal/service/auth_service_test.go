package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/scrypt"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/config"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/events"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// stubUserRepo is an in-memory AdminUserRepository for service tests.
type stubUserRepo struct {
	users  map[string]*domain.AdminUser
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.AdminUser{}}
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.AdminUser) error {
	s.nextID++
	user.ID = fmt.Sprintf("user-%d", s.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, user *domain.AdminUser) error {
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *stubUserRepo) FindActiveByResetTokenHash(_ context.Context, tokenHash string, now time.Time) (*domain.AdminUser, error) {
	for _, user := range s.users {
		if user.IsActive &&
			user.PasswordResetTokenHash != nil && *user.PasswordResetTokenHash == tokenHash &&
			user.PasswordResetExpiresAt != nil && user.PasswordResetExpiresAt.After(now) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	cfg := config.Config{}
	cfg.Auth.TokenSecret = "test-secret"
	cfg.Auth.PasswordResetTTLMinutes = 15
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:   repo,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role, active bool) *domain.AdminUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &domain.AdminUser{Email: email, PasswordHash: hash, Role: role, IsActive: active}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func legacyScryptHash(t *testing.T, password, salt string) string {
	t.Helper()
	key, err := scrypt.Key([]byte(password), []byte(salt), 16384, 8, 1, 64)
	require.NoError(t, err)
	return salt + ":" + hex.EncodeToString(key)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	user, token, exp, err := svc.Login(context.Background(), "admin@credsure.in", "S3curePass!")
	require.NoError(t, err)
	assert.Equal(t, "admin@credsure.in", user.Email)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), exp, 5*time.Second)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
}

// Unknown account and wrong password must be indistinguishable.
func TestLoginUniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	_, _, _, errUnknown := svc.Login(context.Background(), "nobody@credsure.in", "S3curePass!")
	_, _, _, errWrong := svc.Login(context.Background(), "admin@credsure.in", "wrong")

	assertErrorCode(t, errUnknown, "UNAUTHORIZED")
	assertErrorCode(t, errWrong, "UNAUTHORIZED")
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, false)
	svc := newTestAuthService(repo)

	_, _, _, err := svc.Login(context.Background(), "admin@credsure.in", "S3curePass!")
	assertErrorCode(t, err, "UNAUTHORIZED")
}

func TestLoginLegacyScryptHash(t *testing.T) {
	repo := newStubUserRepo()
	// legacy record format: salt:hex(scrypt(password))
	user := &domain.AdminUser{
		Email:        "legacy@credsure.in",
		PasswordHash: legacyScryptHash(t, "OldP@ssw0rd", "somesalt"),
		Role:         domain.RoleCredsureAdmin,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	svc := newTestAuthService(repo)

	_, token, _, err := svc.Login(context.Background(), "legacy@credsure.in", "OldP@ssw0rd")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestBootstrapOnlyOnEmptyDirectory(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Bootstrap(context.Background(), "  First@Credsure.IN ", "S3curePass!", "")
	require.NoError(t, err)
	assert.Equal(t, "first@credsure.in", user.Email)
	assert.Equal(t, domain.RoleSuperAdmin, user.Role)
	assert.True(t, user.IsActive)

	_, err = svc.Bootstrap(context.Background(), "second@credsure.in", "S3curePass!", domain.RoleSuperAdmin)
	assertErrorCode(t, err, "BAD_REQUEST")
}

func TestCreateAdminRequiresSuperAdminActor(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	actor := &auth.Identity{AccountID: "x", Role: domain.RoleCredsureAdmin}
	_, err := svc.CreateAdmin(context.Background(), actor, "new@credsure.in", "S3curePass!", domain.RoleSuzukiAdmin)
	assertErrorCode(t, err, "FORBIDDEN")

	superActor := &auth.Identity{AccountID: "y", Role: domain.RoleSuperAdmin}
	user, err := svc.CreateAdmin(context.Background(), superActor, "new@credsure.in", "S3curePass!", domain.RoleSuzukiAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuzukiAdmin, user.Role)

	_, err = svc.CreateAdmin(context.Background(), superActor, "new@credsure.in", "S3curePass!", domain.RoleSuzukiAdmin)
	assertErrorCode(t, err, "BAD_REQUEST")
}

func TestForgotAndResetPassword(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	code, err := svc.ForgotPassword(context.Background(), "admin@credsure.in")
	require.NoError(t, err)
	require.Len(t, code, 6)

	stored, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetTokenHash)
	assert.NotEqual(t, code, *stored.PasswordResetTokenHash)

	require.NoError(t, svc.ResetPassword(context.Background(), code, "N3wPassword!"))

	_, _, _, err = svc.Login(context.Background(), "admin@credsure.in", "N3wPassword!")
	assert.NoError(t, err)

	// the code is single use
	err = svc.ResetPassword(context.Background(), code, "An0therPass!")
	assertErrorCode(t, err, "BAD_REQUEST")
}

func TestForgotPasswordUnknownAccountIsSilent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	code, err := svc.ForgotPassword(context.Background(), "ghost@credsure.in")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestResetPasswordRejectsReusedPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	code, err := svc.ForgotPassword(context.Background(), "admin@credsure.in")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), code, "S3curePass!")
	assertErrorCode(t, err, "BAD_REQUEST")
}

func TestResetPasswordExpiredCode(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	code, err := svc.ForgotPassword(context.Background(), "admin@credsure.in")
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.PasswordResetExpiresAt = &past
	require.NoError(t, repo.Update(context.Background(), stored))

	err = svc.ResetPassword(context.Background(), code, "N3wPassword!")
	assertErrorCode(t, err, "BAD_REQUEST")
}

func TestChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "admin@credsure.in", "S3curePass!", domain.RoleSuperAdmin, true)
	svc := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), seeded.ID, "wrong", "N3wPassword!")
	assertErrorCode(t, err, "UNAUTHORIZED")

	err = svc.ChangePassword(context.Background(), seeded.ID, "S3curePass!", "S3curePass!")
	assertErrorCode(t, err, "BAD_REQUEST")

	require.NoError(t, svc.ChangePassword(context.Background(), seeded.ID, "S3curePass!", "N3wPassword!"))
	_, _, _, err = svc.Login(context.Background(), "admin@credsure.in", "N3wPassword!")
	assert.NoError(t, err)
}
