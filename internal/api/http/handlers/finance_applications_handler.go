package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/service"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// FinanceApplicationsHandler exposes the admin review workflow for loan
// applications.
type FinanceApplicationsHandler struct {
	apps *service.FinanceApplicationService
}

// NewFinanceApplicationsHandler constructs handler.
func NewFinanceApplicationsHandler(appService *service.FinanceApplicationService) *FinanceApplicationsHandler {
	return &FinanceApplicationsHandler{apps: appService}
}

// List handles GET /finance-applications.
func (h *FinanceApplicationsHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	var status *domain.FinanceApplicationStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.FinanceApplicationStatus(raw)
		status = &s
	}

	items, pagination, err := h.apps.List(c.UserContext(), status, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":       dto.FromFinanceApplications(items),
		"pagination": pagination,
	})
}

// Get handles GET /finance-applications/:applicationId.
func (h *FinanceApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.apps.Get(c.UserContext(), c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFinanceApplication(app)})
}

// UpdateStatus handles PATCH /finance-applications/:applicationId/status.
func (h *FinanceApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	app, err := h.apps.UpdateStatus(c.UserContext(), identity, c.Params("applicationId"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromFinanceApplication(app)})
}
