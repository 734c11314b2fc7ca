package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/service"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// AuthHandler exposes authentication and account management endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	echoResetCode bool
}

// NewAuthHandler constructs handler. echoResetCode enables returning the
// reset code in the forgot-password response for non-production environments.
func NewAuthHandler(authService *service.AuthService, echoResetCode bool) *AuthHandler {
	return &AuthHandler{auth: authService, echoResetCode: echoResetCode}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.FromAdminUser(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Bootstrap handles POST /auth/bootstrap.
func (h *AuthHandler) Bootstrap(c *fiber.Ctx) error {
	var req dto.BootstrapRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.Bootstrap(c.UserContext(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.FromAdminUser(user),
	})
}

// CreateAdmin handles POST /auth/admins.
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authenticated identity")
	}

	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.CreateAdmin(c.UserContext(), identity, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.FromAdminUser(user),
	})
}

// ForgotPassword handles POST /auth/password/forgot. The response is the same
// whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	code, err := h.auth.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"message": "if the account exists, a reset code has been sent",
	}
	if h.echoResetCode && code != "" {
		data["resetCode"] = code
	}
	return c.JSON(fiber.Map{"data": data})
}

// ResetPassword handles POST /auth/password/reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "password has been reset"},
	})
}

// Roles handles GET /auth/roles.
func (h *AuthHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.AllRoles()})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authenticated identity")
	}

	user, err := h.auth.Me(c.UserContext(), identity.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAdminUser(user)})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authenticated identity")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "password has been changed"},
	})
}
