package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/service"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// PublicHandler serves the unauthenticated endpoints behind the customer
// facing site.
type PublicHandler struct {
	cars   *service.CarService
	config *service.FinanceConfigService
	apps   *service.FinanceApplicationService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(
	carService *service.CarService,
	configService *service.FinanceConfigService,
	appService *service.FinanceApplicationService,
) *PublicHandler {
	return &PublicHandler{cars: carService, config: configService, apps: appService}
}

// ListCars handles GET /public/cars.
func (h *PublicHandler) ListCars(c *fiber.Ctx) error {
	cars, err := h.cars.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCars(cars)})
}

// GetCar handles GET /public/cars/:carId.
func (h *PublicHandler) GetCar(c *fiber.Ctx) error {
	car, err := h.cars.Get(c.UserContext(), c.Params("carId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// FinanceConfig handles GET /public/finance-config. Financial content is
// included only when published.
func (h *PublicHandler) FinanceConfig(c *fiber.Ctx) error {
	cfg, err := h.config.Config(c.UserContext())
	if err != nil {
		return err
	}

	data := fiber.Map{
		"interestRate":        cfg.InterestRate,
		"loanTenuresInMonths": cfg.LoanTenuresInMonths,
		"calculator":          cfg.Calculator,
	}
	content, err := h.config.PublishedContent(c.UserContext())
	switch {
	case err == nil:
		data["content"] = content
	case apperrors.ToDomainError(err).Code == "NOT_FOUND":
		// unpublished content is simply omitted
	default:
		return err
	}
	return c.JSON(fiber.Map{"data": data})
}

// SubmitApplication handles POST /public/finance-applications.
func (h *PublicHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	app, err := h.apps.Submit(c.UserContext(), service.SubmitApplicationInput{
		FullName:                  req.FullName,
		PhoneNumber:               req.PhoneNumber,
		Email:                     req.Email,
		EmploymentStatus:          req.EmploymentStatus,
		EstimatedNetMonthlyIncome: req.EstimatedNetMonthlyIncome,
		CarID:                     req.CarID,
		DownPayment:               req.DownPayment,
		MonthlyPayment:            req.MonthlyPayment,
		ConsentGiven:              req.ConsentGiven,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromFinanceApplication(app)})
}
