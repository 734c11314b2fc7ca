package domain

import "time"

// CarAvailability enumerates stock states.
type CarAvailability string

const (
	CarAvailable  CarAvailability = "AVAILABLE"
	CarOutOfStock CarAvailability = "OUT_OF_STOCK"
)

// CarSpecification holds the single spec sheet attached to a car.
type CarSpecification struct {
	Engine       string
	Transmission string
	FuelType     string
}

// CarImage is an ordered catalog image. Position is dense and 1-based.
type CarImage struct {
	ID       string
	URL      string
	Position int
}

// Car is the catalog aggregate.
type Car struct {
	ID           string
	Name         string
	Category     string
	ModelYear    int
	BasePrice    float64
	Variant      string
	Description  string
	Availability CarAvailability
	IsFeatured   bool
	Specs        CarSpecification
	Images       []CarImage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName combines name and variant for human-facing contexts.
func (c *Car) DisplayName() string {
	if c.Variant != "" {
		return c.Name + " " + c.Variant
	}
	return c.Name
}
