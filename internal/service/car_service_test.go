package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/auth"
	"github.com/credsure/admin-api/internal/domain"
)

// stubObjectStore records deletions; URLs under its prefix map to keys.
type stubObjectStore struct {
	prefix  string
	deleted []string
	failing bool
}

func (s *stubObjectStore) Upload(_ context.Context, key, _ string, _ io.ReadSeeker) (string, error) {
	return s.prefix + key, nil
}

func (s *stubObjectStore) Delete(_ context.Context, key string) error {
	if s.failing {
		return errors.New("bucket unavailable")
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubObjectStore) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, s.prefix), true
}

func newCarFixture() (*CarService, *stubCarRepo, *stubActivityRepo) {
	cars := newStubCarRepo()
	activityRepo := &stubActivityRepo{}
	svc := NewCarService(cars, NewActivityService(activityRepo, zap.NewNop()), nil, zap.NewNop())
	return svc, cars, activityRepo
}

func newCarFixtureWithObjects(objects *stubObjectStore) (*CarService, *stubCarRepo) {
	cars := newStubCarRepo()
	svc := NewCarService(cars, NewActivityService(&stubActivityRepo{}, zap.NewNop()), objects, zap.NewNop())
	return svc, cars
}

func testActor() *auth.Identity {
	return &auth.Identity{AccountID: "admin-1", Email: "admin@credsure.in", Role: domain.RoleSuzukiAdmin}
}

func TestCreateCarDefaults(t *testing.T) {
	svc, _, activityRepo := newCarFixture()

	car, err := svc.Create(context.Background(), testActor(), CreateCarInput{
		Name:      "Fronx",
		Category:  "SUV",
		ModelYear: 2025,
		BasePrice: 849000,
		Variant:   "Delta",
		Specs:     CarSpecsInput{Engine: "1.2L", Transmission: "AMT", FuelType: "Petrol"},
		ImageURLs: []string{"https://cdn.example.com/fronx-1.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CarAvailable, car.Availability)
	assert.False(t, car.IsFeatured)
	assert.Equal(t, "Fronx Delta", car.DisplayName())
	assert.Contains(t, activityRepo.actions(), "CREATE_CAR")
}

func TestUpdateCarPartial(t *testing.T) {
	svc, cars, _ := newCarFixture()
	car := &domain.Car{Name: "Baleno", Category: "Hatchback", ModelYear: 2024, BasePrice: 699000}
	require.NoError(t, cars.Create(context.Background(), car))

	price := 719000.0
	updated, err := svc.Update(context.Background(), testActor(), car.ID, UpdateCarInput{BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 719000.0, updated.BasePrice)
	assert.Equal(t, "Baleno", updated.Name)
}

func TestUpdatePriceRecordsPrevious(t *testing.T) {
	svc, cars, activityRepo := newCarFixture()
	car := &domain.Car{Name: "Baleno", BasePrice: 699000}
	require.NoError(t, cars.Create(context.Background(), car))

	_, err := svc.UpdatePrice(context.Background(), testActor(), car.ID, 725000)
	require.NoError(t, err)

	last := activityRepo.entries[len(activityRepo.entries)-1]
	assert.Equal(t, "UPDATE_CAR_PRICE", last.Action)
	assert.Equal(t, 699000.0, last.Metadata["previousPrice"])
	assert.Equal(t, 725000.0, last.Metadata["newPrice"])
}

func TestReorderImagesValidation(t *testing.T) {
	svc, cars, _ := newCarFixture()
	car := &domain.Car{
		Name: "Jimny",
		Images: []domain.CarImage{
			{ID: "img-a", URL: "a.jpg", Position: 1},
			{ID: "img-b", URL: "b.jpg", Position: 2},
			{ID: "img-c", URL: "c.jpg", Position: 3},
		},
	}
	require.NoError(t, cars.Create(context.Background(), car))

	_, err := svc.ReorderImages(context.Background(), testActor(), car.ID, []string{"img-a", "img-b"})
	assertErrorCode(t, err, "BAD_REQUEST")

	_, err = svc.ReorderImages(context.Background(), testActor(), car.ID, []string{"img-a", "img-b", "img-x"})
	assertErrorCode(t, err, "BAD_REQUEST")

	_, err = svc.ReorderImages(context.Background(), testActor(), car.ID, []string{"img-a", "img-a", "img-b"})
	assertErrorCode(t, err, "BAD_REQUEST")

	reordered, err := svc.ReorderImages(context.Background(), testActor(), car.ID, []string{"img-c", "img-a", "img-b"})
	require.NoError(t, err)
	require.Len(t, reordered.Images, 3)
	assert.Equal(t, "img-c", reordered.Images[0].ID)
	assert.Equal(t, 1, reordered.Images[0].Position)
}

func TestDeleteImageResequences(t *testing.T) {
	svc, cars, _ := newCarFixture()
	car := &domain.Car{
		Name: "Jimny",
		Images: []domain.CarImage{
			{ID: "img-a", URL: "a.jpg", Position: 1},
			{ID: "img-b", URL: "b.jpg", Position: 2},
			{ID: "img-c", URL: "c.jpg", Position: 3},
		},
	}
	require.NoError(t, cars.Create(context.Background(), car))

	updated, err := svc.DeleteImage(context.Background(), testActor(), car.ID, "img-b")
	require.NoError(t, err)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, 1, updated.Images[0].Position)
	assert.Equal(t, 2, updated.Images[1].Position)

	_, err = svc.DeleteImage(context.Background(), testActor(), car.ID, "img-b")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestDeleteImageCleansStoredObject(t *testing.T) {
	objects := &stubObjectStore{prefix: "https://images.credsure.in/"}
	svc, cars := newCarFixtureWithObjects(objects)
	car := &domain.Car{
		Name: "Jimny",
		Images: []domain.CarImage{
			{ID: "img-a", URL: "https://images.credsure.in/cars/a.jpg", Position: 1},
			{ID: "img-b", URL: "https://external.example.com/b.jpg", Position: 2},
		},
	}
	require.NoError(t, cars.Create(context.Background(), car))

	_, err := svc.DeleteImage(context.Background(), testActor(), car.ID, "img-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"cars/a.jpg"}, objects.deleted)

	// externally hosted URLs are left alone
	_, err = svc.DeleteImage(context.Background(), testActor(), car.ID, "img-b")
	require.NoError(t, err)
	assert.Equal(t, []string{"cars/a.jpg"}, objects.deleted)
}

// Object-store failures never fail the catalog operation.
func TestDeleteCarSurvivesObjectStoreFailure(t *testing.T) {
	objects := &stubObjectStore{prefix: "https://images.credsure.in/", failing: true}
	svc, cars := newCarFixtureWithObjects(objects)
	car := &domain.Car{
		Name: "Alto",
		Images: []domain.CarImage{
			{ID: "img-a", URL: "https://images.credsure.in/cars/a.jpg", Position: 1},
		},
	}
	require.NoError(t, cars.Create(context.Background(), car))

	require.NoError(t, svc.Delete(context.Background(), testActor(), car.ID))
	_, err := svc.Get(context.Background(), car.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestGetUnknownCar(t *testing.T) {
	svc, _, _ := newCarFixture()

	_, err := svc.Get(context.Background(), "missing")
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestDeleteCar(t *testing.T) {
	svc, cars, activityRepo := newCarFixture()
	car := &domain.Car{Name: "Alto"}
	require.NoError(t, cars.Create(context.Background(), car))

	require.NoError(t, svc.Delete(context.Background(), testActor(), car.ID))
	assert.Contains(t, activityRepo.actions(), "DELETE_CAR")

	_, err := svc.Get(context.Background(), car.ID)
	assertErrorCode(t, err, "NOT_FOUND")
}
