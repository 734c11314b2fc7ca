package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/domain"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the request-scoped authenticated caller, derived strictly from
// verified token claims. It is never persisted.
type Identity struct {
	AccountID string
	Email     string
	Role      domain.Role
}

// Middleware validates bearer tokens and attaches the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Token failures are
// collapsed into a single externally visible message so callers cannot tell
// malformed from expired from badly signed.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	token := stripBearer(header)
	if token == "" {
		return apperrors.NewUnauthorized("missing bearer token")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(identityKey, &Identity{
		AccountID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	})
	return c.Next()
}

// stripBearer removes a case-insensitive "Bearer" scheme prefix and
// surrounding whitespace.
func stripBearer(header string) string {
	value := strings.TrimSpace(header)
	if len(value) >= 7 && strings.EqualFold(value[:7], "bearer ") {
		value = value[7:]
	}
	return strings.TrimSpace(value)
}

// IdentityFromContext retrieves the authenticated identity, if present.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
