package repository

import (
	"context"

	"rentwheels/internal/domain"
)

// CarRepository defines the persistence operations for cars.
type CarRepository interface {
	// Create persists a new car.
	Create(ctx context.Context, car *domain.Car) error

	// GetByID retrieves a car by ID.
	GetByID(ctx context.Context, id string) (*domain.Car, error)

	// GetAll retrieves all listed cars.
	GetAll(ctx context.Context) ([]*domain.Car, error)

	// GetByOwner retrieves the cars owned by a host.
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Car, error)

	// Update updates an existing car.
	Update(ctx context.Context, car *domain.Car) error

	// Delete removes a car listing.
	Delete(ctx context.Context, id string) error
}
