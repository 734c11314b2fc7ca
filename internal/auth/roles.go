package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/domain"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// RequireRoles allows the request when the authenticated identity's role is
// a member of the permitted set. An empty set means any authenticated caller.
// A missing identity is always an authorization failure, never an implicit
// allow. Roles carry no hierarchy: SUPER_ADMIN passes only where listed.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || identity == nil {
			return apperrors.NewForbidden("missing authenticated identity")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role permission")
		}
		return c.Next()
	}
}
