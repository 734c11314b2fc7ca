package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/service"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// AdminConfigHandler exposes financing configuration endpoints.
type AdminConfigHandler struct {
	config *service.FinanceConfigService
}

// NewAdminConfigHandler constructs handler.
func NewAdminConfigHandler(configService *service.FinanceConfigService) *AdminConfigHandler {
	return &AdminConfigHandler{config: configService}
}

// Get handles GET /admin-config.
func (h *AdminConfigHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.config.Config(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cfg})
}

// UpdateInterestRate handles PUT /admin-config/interest-rate.
func (h *AdminConfigHandler) UpdateInterestRate(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateInterestRateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	rate, err := h.config.UpdateInterestRate(c.UserContext(), identity, req.AnnualRatePct)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rate})
}

// AddTenure handles POST /admin-config/tenures.
func (h *AdminConfigHandler) AddTenure(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.AddLoanTenureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	tenures, err := h.config.AddTenure(c.UserContext(), identity, req.Months)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"loanTenuresInMonths": tenures},
	})
}

// UpdateTenure handles PUT /admin-config/tenures.
func (h *AdminConfigHandler) UpdateTenure(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateLoanTenureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	tenures, err := h.config.UpdateTenure(c.UserContext(), identity, req.PreviousMonths, req.NewMonths)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"loanTenuresInMonths": tenures},
	})
}

// DeleteTenure handles DELETE /admin-config/tenures/:months.
func (h *AdminConfigHandler) DeleteTenure(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	months, err := strconv.Atoi(c.Params("months"))
	if err != nil || months <= 0 {
		return apperrors.NewBadRequest("invalid tenure value")
	}

	tenures, err := h.config.DeleteTenure(c.UserContext(), identity, months)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"loanTenuresInMonths": tenures},
	})
}

// UpdateCalculator handles PUT /admin-config/calculator.
func (h *AdminConfigHandler) UpdateCalculator(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateCalculatorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	calc, err := h.config.UpdateCalculator(c.UserContext(), identity, req.DownPaymentPct, req.ProcessingFeePct, req.InsuranceCost)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": calc})
}

// SaveContentDraft handles PUT /admin-config/content.
func (h *AdminConfigHandler) SaveContentDraft(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.SaveContentDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	content, err := h.config.SaveContentDraft(c.UserContext(), identity, req.Title, req.Body, req.Disclaimer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": content})
}

// PublishContent handles POST /admin-config/content/publish.
func (h *AdminConfigHandler) PublishContent(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	content, err := h.config.PublishContent(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": content})
}
