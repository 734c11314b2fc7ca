package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsure/admin-api/internal/api/dto"
	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/service"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// CarsHandler exposes catalog management endpoints.
type CarsHandler struct {
	cars *service.CarService
}

// NewCarsHandler constructs handler.
func NewCarsHandler(carService *service.CarService) *CarsHandler {
	return &CarsHandler{cars: carService}
}

// List handles GET /cars.
func (h *CarsHandler) List(c *fiber.Ctx) error {
	cars, err := h.cars.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCars(cars)})
}

// Get handles GET /cars/:carId.
func (h *CarsHandler) Get(c *fiber.Ctx) error {
	car, err := h.cars.Get(c.UserContext(), c.Params("carId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// Create handles POST /cars.
func (h *CarsHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.Create(c.UserContext(), identity, service.CreateCarInput{
		Name:        req.Name,
		Category:    req.Category,
		ModelYear:   req.ModelYear,
		BasePrice:   req.BasePrice,
		Variant:     req.Variant,
		Description: req.Description,
		Specs: service.CarSpecsInput{
			Engine:       req.Specs.Engine,
			Transmission: req.Specs.Transmission,
			FuelType:     req.Specs.FuelType,
		},
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromCar(car)})
}

// Update handles PATCH /cars/:carId.
func (h *CarsHandler) Update(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.UpdateCarInput{
		Name:        req.Name,
		Category:    req.Category,
		ModelYear:   req.ModelYear,
		BasePrice:   req.BasePrice,
		Variant:     req.Variant,
		Description: req.Description,
	}
	if req.Specs != nil {
		input.Specs = &service.CarSpecsInput{
			Engine:       req.Specs.Engine,
			Transmission: req.Specs.Transmission,
			FuelType:     req.Specs.FuelType,
		}
	}

	car, err := h.cars.Update(c.UserContext(), identity, c.Params("carId"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// UpdatePrice handles PATCH /cars/:carId/price.
func (h *CarsHandler) UpdatePrice(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateCarPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.UpdatePrice(c.UserContext(), identity, c.Params("carId"), req.BasePrice)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// UpsertImages handles PATCH /cars/:carId/images.
func (h *CarsHandler) UpsertImages(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpsertCarImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.ReplaceImages(c.UserContext(), identity, c.Params("carId"), req.ImageURLs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// DeleteImage handles DELETE /cars/:carId/images/:imageId.
func (h *CarsHandler) DeleteImage(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	car, err := h.cars.DeleteImage(c.UserContext(), identity, c.Params("carId"), c.Params("imageId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// ReorderImages handles PATCH /cars/:carId/images/reorder.
func (h *CarsHandler) ReorderImages(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.ReorderCarImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.ReorderImages(c.UserContext(), identity, c.Params("carId"), req.ImageIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// UpdateAvailability handles PATCH /cars/:carId/availability.
func (h *CarsHandler) UpdateAvailability(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateCarAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.SetAvailability(c.UserContext(), identity, c.Params("carId"), req.Availability)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// UpdateFeatured handles PATCH /cars/:carId/featured.
func (h *CarsHandler) UpdateFeatured(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.UpdateCarFeaturedRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	car, err := h.cars.SetFeatured(c.UserContext(), identity, c.Params("carId"), *req.IsFeatured)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCar(car)})
}

// Delete handles DELETE /cars/:carId.
func (h *CarsHandler) Delete(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	if err := h.cars.Delete(c.UserContext(), identity, c.Params("carId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "car deleted"},
	})
}
