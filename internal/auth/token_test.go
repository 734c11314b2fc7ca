package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsure/admin-api/internal/domain"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, expiresAt, err := tm.Issue("acc-1", "admin@credsure.in", domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "admin@credsure.in", claims.Email)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, claims.IssuedAt+TokenTTLSeconds, claims.ExpiresAt)
}

func TestVerifyRejectsTamperedSegments(t *testing.T) {
	tm := NewTokenManager(testSecret)
	token, _, err := tm.Issue("acc-1", "admin@credsure.in", domain.RoleCredsureAdmin)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := tm.Verify(string(mutated))
		assert.ErrorIs(t, err, ErrInvalidToken, "mutation at index %d should invalidate token", i)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager(testSecret).Issue("acc-1", "a@b.c", domain.RoleSuzukiAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	tm := NewTokenManager(testSecret)
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issuedAt }

	token, expiresAt, err := tm.Issue("acc-1", "a@b.c", domain.RoleSuperAdmin)
	require.NoError(t, err)
	require.Equal(t, issuedAt.Add(12*time.Hour), expiresAt.UTC())

	// one second before expiry: still valid
	tm.now = func() time.Time { return expiresAt.Add(-time.Second) }
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	// exactly at expiry: invalid
	tm.now = func() time.Time { return expiresAt }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tm.now = func() time.Time { return expiresAt.Add(time.Second) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	tm := NewTokenManager(testSecret)

	for _, token := range []string{
		"",
		"a",
		"a.b",
		"a.b.c.d",
		"..",
		"a..c",
		".b.c",
		"a.b.",
	} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

// Tokens issued here parse with a standard JWT library, and tokens signed by
// that library verify here. The wire format is plain HS256 JWT.
func TestTokenInteropWithJWTLibrary(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, _, err := tm.Issue("acc-42", "ops@credsure.in", domain.RoleCredsureAdmin)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "acc-42", mapClaims["sub"])
	assert.Equal(t, "CREDSURE_ADMIN", mapClaims["role"])

	now := time.Now().Unix()
	external, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "acc-7",
		"email": "ext@credsure.in",
		"role":  string(domain.RoleSuzukiAdmin),
		"iat":   now,
		"exp":   now + 600,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := tm.Verify(external)
	require.NoError(t, err)
	assert.Equal(t, "acc-7", claims.Subject)
	assert.Equal(t, domain.RoleSuzukiAdmin, claims.Role)
}
