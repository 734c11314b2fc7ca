package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credsure/admin-api/internal/domain"
)

// CarRepository persists the car catalog with its spec sheet and ordered
// images.
type CarRepository interface {
	List(ctx context.Context) ([]*domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	Create(ctx context.Context, car *domain.Car) error
	UpdateScalars(ctx context.Context, car *domain.Car) error
	ReplaceSpec(ctx context.Context, carID string, spec domain.CarSpecification) error
	ListImages(ctx context.Context, carID string) ([]domain.CarImage, error)
	ReplaceImages(ctx context.Context, carID string, urls []string) error
	DeleteImage(ctx context.Context, carID, imageID string) error
	ReorderImages(ctx context.Context, carID string, imageIDs []string) error
	Delete(ctx context.Context, id string) error
}

type carRepository struct {
	pool *pgxpool.Pool
}

// NewCarRepository returns a Postgres-backed implementation.
func NewCarRepository(pool *pgxpool.Pool) CarRepository {
	return &carRepository{pool: pool}
}

const carColumns = `id, name, category, model_year, base_price, variant, description,
        availability, is_featured, created_at, updated_at`

func (r *carRepository) List(ctx context.Context) ([]*domain.Car, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+carColumns+` FROM cars ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]*domain.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, car := range cars {
		if err := r.loadRelations(ctx, car); err != nil {
			return nil, err
		}
	}
	return cars, nil
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id=$1`, id)
	car, err := scanCar(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertCar = `
        INSERT INTO cars (name, category, model_year, base_price, variant, description, availability, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertCar,
		car.Name,
		car.Category,
		car.ModelYear,
		car.BasePrice,
		car.Variant,
		car.Description,
		car.Availability,
		car.IsFeatured,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt); err != nil {
		return err
	}

	const insertSpec = `
        INSERT INTO car_specifications (car_id, engine, transmission, fuel_type)
        VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insertSpec, car.ID, car.Specs.Engine, car.Specs.Transmission, car.Specs.FuelType); err != nil {
		return err
	}

	for i, image := range car.Images {
		const insertImage = `
            INSERT INTO car_images (car_id, image_url, position)
            VALUES ($1, $2, $3)
            RETURNING id`
		if err := tx.QueryRow(ctx, insertImage, car.ID, image.URL, i+1).Scan(&car.Images[i].ID); err != nil {
			return err
		}
		car.Images[i].Position = i + 1
	}

	return tx.Commit(ctx)
}

func (r *carRepository) UpdateScalars(ctx context.Context, car *domain.Car) error {
	const query = `
        UPDATE cars
        SET name=$1, category=$2, model_year=$3, base_price=$4, variant=$5, description=$6,
            availability=$7, is_featured=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		car.Name,
		car.Category,
		car.ModelYear,
		car.BasePrice,
		car.Variant,
		car.Description,
		car.Availability,
		car.IsFeatured,
		car.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) ReplaceSpec(ctx context.Context, carID string, spec domain.CarSpecification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM car_specifications WHERE car_id=$1`, carID); err != nil {
		return err
	}
	const insert = `
        INSERT INTO car_specifications (car_id, engine, transmission, fuel_type)
        VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insert, carID, spec.Engine, spec.Transmission, spec.FuelType); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *carRepository) ListImages(ctx context.Context, carID string) ([]domain.CarImage, error) {
	const query = `
        SELECT id, image_url, position
        FROM car_images WHERE car_id=$1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]domain.CarImage, 0)
	for rows.Next() {
		var image domain.CarImage
		if err := rows.Scan(&image.ID, &image.URL, &image.Position); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// ReplaceImages swaps the full image set, assigning dense 1-based positions
// in input order.
func (r *carRepository) ReplaceImages(ctx context.Context, carID string, urls []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM car_images WHERE car_id=$1`, carID); err != nil {
		return err
	}
	for i, url := range urls {
		const insert = `INSERT INTO car_images (car_id, image_url, position) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insert, carID, url, i+1); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteImage removes one image and closes the position gap.
func (r *carRepository) DeleteImage(ctx context.Context, carID, imageID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `DELETE FROM car_images WHERE id=$1 AND car_id=$2`, imageID, carID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	rows, err := tx.Query(ctx, `SELECT id FROM car_images WHERE car_id=$1 ORDER BY position ASC`, carID)
	if err != nil {
		return err
	}
	remaining := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		remaining = append(remaining, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, id := range remaining {
		if _, err := tx.Exec(ctx, `UPDATE car_images SET position=$1 WHERE id=$2`, i+1, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReorderImages applies the given order. Positions are first parked outside
// the live range to avoid transient unique collisions, then assigned.
func (r *carRepository) ReorderImages(ctx context.Context, carID string, imageIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range imageIDs {
		if _, err := tx.Exec(ctx, `UPDATE car_images SET position=$1 WHERE id=$2 AND car_id=$3`, i+1000, id, carID); err != nil {
			return err
		}
	}
	for i, id := range imageIDs {
		if _, err := tx.Exec(ctx, `UPDATE car_images SET position=$1 WHERE id=$2 AND car_id=$3`, i+1, id, carID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *carRepository) loadRelations(ctx context.Context, car *domain.Car) error {
	const specQuery = `
        SELECT engine, transmission, fuel_type
        FROM car_specifications WHERE car_id=$1 LIMIT 1`

	if err := r.pool.QueryRow(ctx, specQuery, car.ID).Scan(
		&car.Specs.Engine,
		&car.Specs.Transmission,
		&car.Specs.FuelType,
	); err != nil && err != pgx.ErrNoRows {
		return err
	}

	images, err := r.ListImages(ctx, car.ID)
	if err != nil {
		return err
	}
	car.Images = images
	return nil
}

func scanCar(row pgx.Row) (*domain.Car, error) {
	var car domain.Car
	if err := row.Scan(
		&car.ID,
		&car.Name,
		&car.Category,
		&car.ModelYear,
		&car.BasePrice,
		&car.Variant,
		&car.Description,
		&car.Availability,
		&car.IsFeatured,
		&car.CreatedAt,
		&car.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &car, nil
}
