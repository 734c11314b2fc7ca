package dto

import (
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// CarSpecsPayload spec sheet fields.
type CarSpecsPayload struct {
	Engine       string `json:"engine" validate:"required"`
	Transmission string `json:"transmission" validate:"required"`
	FuelType     string `json:"fuelType" validate:"required"`
}

// CreateCarRequest payload for adding a catalog entry.
type CreateCarRequest struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	ModelYear   int             `json:"modelYear" validate:"required,gte=1980,lte=2100"`
	BasePrice   float64         `json:"basePrice" validate:"required,gt=0"`
	Variant     string          `json:"variant"`
	Description string          `json:"description"`
	Specs       CarSpecsPayload `json:"specs" validate:"required"`
	ImageURLs   []string        `json:"imageUrls" validate:"omitempty,dive,url"`
}

// UpdateCarRequest payload for a partial update. Absent fields are untouched.
type UpdateCarRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	ModelYear   *int             `json:"modelYear" validate:"omitempty,gte=1980,lte=2100"`
	BasePrice   *float64         `json:"basePrice" validate:"omitempty,gt=0"`
	Variant     *string          `json:"variant"`
	Description *string          `json:"description"`
	Specs       *CarSpecsPayload `json:"specs"`
}

// UpdateCarPriceRequest payload for a price-only update.
type UpdateCarPriceRequest struct {
	BasePrice float64 `json:"basePrice" validate:"required,gt=0"`
}

// UpsertCarImagesRequest payload replacing the image set.
type UpsertCarImagesRequest struct {
	ImageURLs []string `json:"imageUrls" validate:"required,min=1,dive,url"`
}

// ReorderCarImagesRequest payload carrying the desired image order.
type ReorderCarImagesRequest struct {
	ImageIDs []string `json:"imageIds" validate:"required,min=1,dive,uuid"`
}

// UpdateCarAvailabilityRequest payload toggling stock state.
type UpdateCarAvailabilityRequest struct {
	Availability domain.CarAvailability `json:"availability" validate:"required,oneof=AVAILABLE OUT_OF_STOCK"`
}

// UpdateCarFeaturedRequest payload toggling the featured flag.
type UpdateCarFeaturedRequest struct {
	IsFeatured *bool `json:"isFeatured" validate:"required"`
}

// CarImageResponse one ordered image.
type CarImageResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// CarResponse is the public shape of a catalog entry.
type CarResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	ModelYear    int                    `json:"modelYear"`
	BasePrice    float64                `json:"basePrice"`
	Variant      string                 `json:"variant"`
	Description  string                 `json:"description"`
	Availability domain.CarAvailability `json:"availability"`
	IsFeatured   bool                   `json:"isFeatured"`
	Specs        CarSpecsPayload        `json:"specs"`
	Images       []CarImageResponse     `json:"images"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// FromCar maps a domain car to its response shape.
func FromCar(car *domain.Car) CarResponse {
	images := make([]CarImageResponse, 0, len(car.Images))
	for _, image := range car.Images {
		images = append(images, CarImageResponse{
			ID:       image.ID,
			URL:      image.URL,
			Position: image.Position,
		})
	}
	return CarResponse{
		ID:           car.ID,
		Name:         car.Name,
		Category:     car.Category,
		ModelYear:    car.ModelYear,
		BasePrice:    car.BasePrice,
		Variant:      car.Variant,
		Description:  car.Description,
		Availability: car.Availability,
		IsFeatured:   car.IsFeatured,
		Specs: CarSpecsPayload{
			Engine:       car.Specs.Engine,
			Transmission: car.Specs.Transmission,
			FuelType:     car.Specs.FuelType,
		},
		Images:    images,
		CreatedAt: car.CreatedAt,
		UpdatedAt: car.UpdatedAt,
	}
}

// FromCars maps a list of domain cars.
func FromCars(cars []*domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, FromCar(car))
	}
	return out
}
