package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels/internal/domain"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service"
)

// CarHandler handles HTTP requests for car listings.
type CarHandler struct {
	carService *service.CarService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CarRequest is the HTTP request body for creating or updating a car.
type CarRequest struct {
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	PlateNumber  string   `json:"plate_number"`
	PricePerDay  float64  `json:"price_per_day"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	Seats        int      `json:"seats,omitempty"`
	Images       []string `json:"images,omitempty"`
	Location     string   `json:"location,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// CarResponse is the HTTP response for car data.
type CarResponse struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	PlateNumber  string   `json:"plate_number"`
	PricePerDay  float64  `json:"price_per_day"`
	FuelType     string   `json:"fuel_type"`
	Transmission string   `json:"transmission"`
	Seats        int      `json:"seats"`
	Images       []string `json:"images"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
}

func toCarResponse(car *domain.Car) CarResponse {
	return CarResponse{
		ID:           car.ID,
		OwnerID:      car.OwnerID,
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		PlateNumber:  car.PlateNumber,
		PricePerDay:  car.PricePerDay,
		FuelType:     string(car.FuelType),
		Transmission: string(car.Transmission),
		Seats:        car.Seats,
		Images:       car.Images,
		Location:     car.Location,
		Description:  car.Description,
	}
}

// CreateCar handles POST /v1/cars
func (h *CarHandler) CreateCar(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), service.CreateCarRequest{
		OwnerID:      c.GetString(middleware.ContextUserID),
		OwnerRole:    domain.Role(c.GetString(middleware.ContextUserRole)),
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		PlateNumber:  req.PlateNumber,
		PricePerDay:  req.PricePerDay,
		FuelType:     domain.FuelType(req.FuelType),
		Transmission: domain.Transmission(req.Transmission),
		Seats:        req.Seats,
		Images:       req.Images,
		Location:     req.Location,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCarResponse(car))
}

// GetCar handles GET /v1/cars/:id
func (h *CarHandler) GetCar(c *gin.Context) {
	car, err := h.carService.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCarResponse(car))
}

// GetAll handles GET /v1/cars
func (h *CarHandler) GetAll(c *gin.Context) {
	cars, err := h.carService.ListCars(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		response = append(response, toCarResponse(car))
	}

	c.JSON(http.StatusOK, response)
}

// GetMyCars handles GET /v1/cars/owner/me
func (h *CarHandler) GetMyCars(c *gin.Context) {
	cars, err := h.carService.ListOwnerCars(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		response = append(response, toCarResponse(car))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateCar handles PUT /v1/cars/:id
func (h *CarHandler) UpdateCar(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), service.UpdateCarRequest{
		CarID:        c.Param("id"),
		ActorID:      c.GetString(middleware.ContextUserID),
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		PlateNumber:  req.PlateNumber,
		PricePerDay:  req.PricePerDay,
		FuelType:     domain.FuelType(req.FuelType),
		Transmission: domain.Transmission(req.Transmission),
		Seats:        req.Seats,
		Images:       req.Images,
		Location:     req.Location,
		Description:  req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toCarResponse(car))
}

// DeleteCar handles DELETE /v1/cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	err := h.carService.DeleteCar(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
