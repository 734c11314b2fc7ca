package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsure/admin-api/internal/domain"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
}

func issueTestToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token, _, err := NewTokenManager(testSecret).Issue("acc-1", "admin@credsure.in", role)
	require.NoError(t, err)
	return token
}

func TestMiddlewareMissingHeader(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))

	var captured *Identity
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		require.True(t, ok)
		captured = identity
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, domain.RoleCredsureAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, captured)
	assert.Equal(t, "acc-1", captured.AccountID)
	assert.Equal(t, "admin@credsure.in", captured.Email)
	assert.Equal(t, domain.RoleCredsureAdmin, captured.Role)
}

func TestMiddlewareBearerPrefixIsCaseInsensitive(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bEaReR "+issueTestToken(t, domain.RoleSuperAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRolesMemberAllowed(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/cars", mw.Handle, RequireRoles(domain.RoleSuzukiAdmin, domain.RoleSuperAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, domain.RoleSuzukiAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRolesNonMemberForbidden(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/cars", mw.Handle, RequireRoles(domain.RoleSuzukiAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, domain.RoleCredsureAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// SUPER_ADMIN carries no implicit membership: it passes only where listed.
func TestRequireRolesNoHierarchy(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/narrow", mw.Handle, RequireRoles(domain.RoleSuzukiAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/narrow", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, domain.RoleSuperAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRolesEmptySetAllowsAnyAuthenticated(t *testing.T) {
	app := newTestApp()
	mw := NewMiddleware(NewTokenManager(testSecret))
	app.Get("/any", mw.Handle, RequireRoles(),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, domain.RoleSuzukiAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRolesMissingIdentityForbidden(t *testing.T) {
	app := newTestApp()
	app.Get("/any", RequireRoles(domain.RoleSuperAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/any", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
