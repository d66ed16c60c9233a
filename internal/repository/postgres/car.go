package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
)

const carColumns = `id, owner_id, make, model, year, plate_number, price_per_day, fuel_type, transmission, seats, images, location, description, created_at, updated_at`

// CarRepository is a PostgreSQL implementation of repository.CarRepository.
type CarRepository struct {
	q Querier
}

// NewCarRepository creates a new PostgreSQL car repository.
func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{q: db}
}

// NewCarRepositoryWithTx creates a car repository using a transaction.
func NewCarRepositoryWithTx(tx *sql.Tx) *CarRepository {
	return &CarRepository{q: tx}
}

// Create persists a new car.
func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.q.ExecContext(ctx, query,
		car.ID,
		car.OwnerID,
		car.Make,
		car.Model,
		car.Year,
		car.PlateNumber,
		car.PricePerDay,
		car.FuelType,
		car.Transmission,
		car.Seats,
		pq.Array(car.Images),
		car.Location,
		car.Description,
		car.CreatedAt,
		car.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a car by ID.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

// GetAll retrieves all listed cars, newest first.
func (r *CarRepository) GetAll(ctx context.Context) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY created_at DESC`
	return r.queryCars(ctx, query)
}

// GetByOwner retrieves the cars owned by a host, newest first.
func (r *CarRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryCars(ctx, query, ownerID)
}

// Update updates an existing car.
func (r *CarRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `
		UPDATE cars
		SET make = $1, model = $2, year = $3, plate_number = $4, price_per_day = $5, fuel_type = $6, transmission = $7, seats = $8, images = $9, location = $10, description = $11, updated_at = $12
		WHERE id = $13
	`

	res, err := r.q.ExecContext(ctx, query,
		car.Make,
		car.Model,
		car.Year,
		car.PlateNumber,
		car.PricePerDay,
		car.FuelType,
		car.Transmission,
		car.Seats,
		pq.Array(car.Images),
		car.Location,
		car.Description,
		car.UpdatedAt,
		car.ID,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a car listing.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CarRepository) queryCars(ctx context.Context, query string, args ...any) ([]*domain.Car, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCar(s scanner) (*domain.Car, error) {
	var car domain.Car
	err := s.Scan(
		&car.ID,
		&car.OwnerID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.PlateNumber,
		&car.PricePerDay,
		&car.FuelType,
		&car.Transmission,
		&car.Seats,
		pq.Array(&car.Images),
		&car.Location,
		&car.Description,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
