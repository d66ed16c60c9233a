package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentwheels/internal/domain"
	"rentwheels/internal/redis"
	"rentwheels/internal/repository"
)

// CarService handles car listing management for hosts and the public
// catalog reads.
type CarService struct {
	cars  repository.CarRepository
	cache *redis.CacheStore
}

// NewCarService creates a new CarService.
func NewCarService(cars repository.CarRepository, cache *redis.CacheStore) *CarService {
	return &CarService{cars: cars, cache: cache}
}

// CreateCarRequest contains the parameters for listing a new car.
type CreateCarRequest struct {
	OwnerID      string
	OwnerRole    domain.Role
	Make         string
	Model        string
	Year         int
	PlateNumber  string
	PricePerDay  float64
	FuelType     domain.FuelType
	Transmission domain.Transmission
	Seats        int
	Images       []string
	Location     string
	Description  string
}

// CreateCar lists a new car. Only hosts can create listings.
func (s *CarService) CreateCar(ctx context.Context, req CreateCarRequest) (*domain.Car, error) {
	if req.OwnerRole != domain.RoleHost {
		return nil, ErrHostOnly
	}

	if req.Make == "" || req.Model == "" || req.PlateNumber == "" || req.Year == 0 || req.PricePerDay <= 0 {
		return nil, ErrMissingFields
	}

	seats := req.Seats
	if seats == 0 {
		seats = 5
	}

	now := time.Now()
	car := &domain.Car{
		ID:           uuid.New().String(),
		OwnerID:      req.OwnerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		PlateNumber:  req.PlateNumber,
		PricePerDay:  req.PricePerDay,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		Seats:        seats,
		Images:       req.Images,
		Location:     req.Location,
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.cars.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	return car, nil
}

// GetCar retrieves a car, serving repeated catalog reads from cache.
func (s *CarService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCar(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetCar(ctx, car)
	}

	return car, nil
}

// ListCars retrieves the public catalog.
func (s *CarService) ListCars(ctx context.Context) ([]*domain.Car, error) {
	return s.cars.GetAll(ctx)
}

// ListOwnerCars retrieves the host's fleet.
func (s *CarService) ListOwnerCars(ctx context.Context, ownerID string) ([]*domain.Car, error) {
	return s.cars.GetByOwner(ctx, ownerID)
}

// UpdateCarRequest contains the updatable car fields.
type UpdateCarRequest struct {
	CarID        string
	ActorID      string
	Make         string
	Model        string
	Year         int
	PlateNumber  string
	PricePerDay  float64
	FuelType     domain.FuelType
	Transmission domain.Transmission
	Seats        int
	Images       []string
	Location     string
	Description  string
}

// UpdateCar updates a listing. Only the owning host may update it.
func (s *CarService) UpdateCar(ctx context.Context, req UpdateCarRequest) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	if car.OwnerID != req.ActorID {
		return nil, ErrNotCarOwner
	}

	if req.Make != "" {
		car.Make = req.Make
	}
	if req.Model != "" {
		car.Model = req.Model
	}
	if req.Year != 0 {
		car.Year = req.Year
	}
	if req.PlateNumber != "" {
		car.PlateNumber = req.PlateNumber
	}
	if req.PricePerDay > 0 {
		car.PricePerDay = req.PricePerDay
	}
	if req.FuelType != "" {
		car.FuelType = req.FuelType
	}
	if req.Transmission != "" {
		car.Transmission = req.Transmission
	}
	if req.Seats != 0 {
		car.Seats = req.Seats
	}
	if req.Images != nil {
		car.Images = req.Images
	}
	if req.Location != "" {
		car.Location = req.Location
	}
	if req.Description != "" {
		car.Description = req.Description
	}
	car.UpdatedAt = time.Now()

	if err := s.cars.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateCar(ctx, car.ID)
	}

	return car, nil
}

// DeleteCar removes a listing. Only the owning host may delete it.
func (s *CarService) DeleteCar(ctx context.Context, actorID, carID string) error {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return err
	}

	if car.OwnerID != actorID {
		return ErrNotCarOwner
	}

	if err := s.cars.Delete(ctx, carID); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateCar(ctx, carID)
	}
	return nil
}
