package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/repository"
	"github.com/credsure/admin-api/internal/storage"
	apperrors "github.com/credsure/admin-api/pkg/util"
)

// CarService manages the vehicle catalog.
type CarService struct {
	cars     repository.CarRepository
	activity *ActivityService
	objects  storage.ObjectStore
	logger   *zap.Logger
}

// NewCarService builds the service. objects may be nil when no object store
// is configured; stored images are then left in place on deletion.
func NewCarService(cars repository.CarRepository, activity *ActivityService, objects storage.ObjectStore, logger *zap.Logger) *CarService {
	return &CarService{cars: cars, activity: activity, objects: objects, logger: logger}
}

// CarSpecsInput carries the spec sheet of a car.
type CarSpecsInput struct {
	Engine       string
	Transmission string
	FuelType     string
}

// CreateCarInput carries a new catalog entry.
type CreateCarInput struct {
	Name        string
	Category    string
	ModelYear   int
	BasePrice   float64
	Variant     string
	Description string
	Specs       CarSpecsInput
	ImageURLs   []string
}

// UpdateCarInput carries a partial update; nil fields are left untouched.
type UpdateCarInput struct {
	Name        *string
	Category    *string
	ModelYear   *int
	BasePrice   *float64
	Variant     *string
	Description *string
	Specs       *CarSpecsInput
}

// List returns the full catalog with specs and ordered images.
func (s *CarService) List(ctx context.Context) ([]*domain.Car, error) {
	return s.cars.List(ctx)
}

// Get returns one car.
func (s *CarService) Get(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("car", nil)
		}
		return nil, err
	}
	return car, nil
}

// Create adds a catalog entry. New cars start AVAILABLE and not featured.
func (s *CarService) Create(ctx context.Context, actor *auth.Identity, input CreateCarInput) (*domain.Car, error) {
	car := &domain.Car{
		Name:         input.Name,
		Category:     input.Category,
		ModelYear:    input.ModelYear,
		BasePrice:    input.BasePrice,
		Variant:      input.Variant,
		Description:  input.Description,
		Availability: domain.CarAvailable,
		IsFeatured:   false,
		Specs: domain.CarSpecification{
			Engine:       input.Specs.Engine,
			Transmission: input.Specs.Transmission,
			FuelType:     input.Specs.FuelType,
		},
	}
	for _, url := range input.ImageURLs {
		car.Images = append(car.Images, domain.CarImage{URL: url})
	}

	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "CREATE_CAR", "car", &car.ID, map[string]any{
		"name": car.DisplayName(),
	})
	return car, nil
}

// Update applies a partial update to scalars and optionally the spec sheet.
func (s *CarService) Update(ctx context.Context, actor *auth.Identity, id string, input UpdateCarInput) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		car.Name = *input.Name
	}
	if input.Category != nil {
		car.Category = *input.Category
	}
	if input.ModelYear != nil {
		car.ModelYear = *input.ModelYear
	}
	if input.BasePrice != nil {
		car.BasePrice = *input.BasePrice
	}
	if input.Variant != nil {
		car.Variant = *input.Variant
	}
	if input.Description != nil {
		car.Description = *input.Description
	}

	if err := s.cars.UpdateScalars(ctx, car); err != nil {
		return nil, err
	}
	if input.Specs != nil {
		spec := domain.CarSpecification{
			Engine:       input.Specs.Engine,
			Transmission: input.Specs.Transmission,
			FuelType:     input.Specs.FuelType,
		}
		if err := s.cars.ReplaceSpec(ctx, car.ID, spec); err != nil {
			return nil, err
		}
		car.Specs = spec
	}

	s.activity.Record(ctx, actor, "UPDATE_CAR", "car", &car.ID, nil)
	return car, nil
}

// UpdatePrice changes only the base price.
func (s *CarService) UpdatePrice(ctx context.Context, actor *auth.Identity, id string, price float64) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := car.BasePrice
	car.BasePrice = price
	if err := s.cars.UpdateScalars(ctx, car); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "UPDATE_CAR_PRICE", "car", &car.ID, map[string]any{
		"previousPrice": previous,
		"newPrice":      price,
	})
	return car, nil
}

// ReplaceImages swaps the car's image set for the given URLs, positioned in
// input order.
func (s *CarService) ReplaceImages(ctx context.Context, actor *auth.Identity, id string, urls []string) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cars.ReplaceImages(ctx, car.ID, urls); err != nil {
		return nil, err
	}
	images, err := s.cars.ListImages(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	car.Images = images

	s.activity.Record(ctx, actor, "UPSERT_CAR_IMAGES", "car", &car.ID, map[string]any{
		"imageCount": len(urls),
	})
	return car, nil
}

// DeleteImage removes a single image; remaining positions stay dense. The
// stored object is cleaned up best effort.
func (s *CarService) DeleteImage(ctx context.Context, actor *auth.Identity, carID, imageID string) (*domain.Car, error) {
	existing, err := s.Get(ctx, carID)
	if err != nil {
		return nil, err
	}
	var deletedURL string
	for _, image := range existing.Images {
		if image.ID == imageID {
			deletedURL = image.URL
		}
	}

	if err := s.cars.DeleteImage(ctx, carID, imageID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("car image", nil)
		}
		return nil, err
	}
	s.removeStoredObject(ctx, deletedURL)

	car, err := s.Get(ctx, carID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "DELETE_CAR_IMAGE", "car", &carID, map[string]any{
		"imageId": imageID,
	})
	return car, nil
}

// ReorderImages applies a caller-supplied ordering. The id list must be a
// permutation of the car's current image ids.
func (s *CarService) ReorderImages(ctx context.Context, actor *auth.Identity, carID string, imageIDs []string) (*domain.Car, error) {
	car, err := s.Get(ctx, carID)
	if err != nil {
		return nil, err
	}

	if len(imageIDs) != len(car.Images) {
		return nil, apperrors.NewBadRequest("image id list must cover all car images")
	}
	existing := make(map[string]bool, len(car.Images))
	for _, image := range car.Images {
		existing[image.ID] = true
	}
	seen := make(map[string]bool, len(imageIDs))
	for _, id := range imageIDs {
		if !existing[id] {
			return nil, apperrors.NewBadRequest("unknown image id: " + id)
		}
		if seen[id] {
			return nil, apperrors.NewBadRequest("duplicate image id: " + id)
		}
		seen[id] = true
	}

	if err := s.cars.ReorderImages(ctx, carID, imageIDs); err != nil {
		return nil, err
	}
	images, err := s.cars.ListImages(ctx, carID)
	if err != nil {
		return nil, err
	}
	car.Images = images

	s.activity.Record(ctx, actor, "REORDER_CAR_IMAGES", "car", &carID, nil)
	return car, nil
}

// SetAvailability toggles between AVAILABLE and OUT_OF_STOCK.
func (s *CarService) SetAvailability(ctx context.Context, actor *auth.Identity, id string, availability domain.CarAvailability) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	car.Availability = availability
	if err := s.cars.UpdateScalars(ctx, car); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "TOGGLE_CAR_AVAILABILITY", "car", &car.ID, map[string]any{
		"availability": availability,
	})
	return car, nil
}

// SetFeatured flips the featured flag.
func (s *CarService) SetFeatured(ctx context.Context, actor *auth.Identity, id string, featured bool) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	car.IsFeatured = featured
	if err := s.cars.UpdateScalars(ctx, car); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, "TOGGLE_CAR_FEATURED", "car", &car.ID, map[string]any{
		"isFeatured": featured,
	})
	return car, nil
}

// Delete removes the car with its spec and images. Stored image objects are
// cleaned up best effort.
func (s *CarService) Delete(ctx context.Context, actor *auth.Identity, id string) error {
	car, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	for _, image := range car.Images {
		s.removeStoredObject(ctx, image.URL)
	}

	s.activity.Record(ctx, actor, "DELETE_CAR", "car", &id, map[string]any{
		"name": car.DisplayName(),
	})
	return nil
}

// removeStoredObject deletes the backing object for an image URL. Failures
// are logged, never surfaced: the catalog row is already gone and an orphaned
// object is preferable to a failed deletion.
func (s *CarService) removeStoredObject(ctx context.Context, url string) {
	if s.objects == nil || url == "" {
		return
	}
	key, ok := s.objects.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.objects.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored car image",
			zap.String("key", key),
			zap.Error(err))
	}
}
