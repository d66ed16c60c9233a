package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"rentwheels/internal/domain"
)

// CacheStore handles catalog caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// CarCacheTTL bounds how stale a cached car detail can get. Listings
// change rarely compared to how often the catalog is read.
const CarCacheTTL = 60 * time.Second

const carCachePrefix = "cache:car:"

// GetCar retrieves a car from cache. Returns nil on a cache miss.
func (s *CacheStore) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	data, err := s.client.Get(ctx, carCachePrefix+carID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var car domain.Car
	if err := json.Unmarshal(data, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// SetCar stores a car in cache.
func (s *CacheStore) SetCar(ctx context.Context, car *domain.Car) error {
	data, err := json.Marshal(car)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, carCachePrefix+car.ID, data, CarCacheTTL).Err()
}

// InvalidateCar removes a car from cache after an update or delete.
func (s *CacheStore) InvalidateCar(ctx context.Context, carID string) error {
	return s.client.Del(ctx, carCachePrefix+carID).Err()
}
