package domain

import "time"

// FuelType represents the fuel type of a car.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// Transmission represents the transmission type of a car.
type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// Car represents a listed vehicle. OwnerID identifies the host, who holds
// full transition rights over bookings of this car.
type Car struct {
	ID           string
	OwnerID      string
	Make         string
	Model        string
	Year         int
	PlateNumber  string
	PricePerDay  float64
	FuelType     FuelType
	Transmission Transmission
	Seats        int
	Images       []string
	Location     string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
