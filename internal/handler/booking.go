package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentwheels/internal/domain"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service"
)

const dateLayout = "2006-01-02"

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
// TotalPrice is accepted for compatibility with older clients but ignored:
// the server recomputes the total from the car's daily rate.
type CreateBookingRequest struct {
	CarID      string  `json:"car_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price,omitempty"`
	Status     string  `json:"status,omitempty"` // ignored; bookings always start Pending
}

// UpdateStatusRequest is the HTTP request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID            string  `json:"id"`
	RenterID      string  `json:"renter_id"`
	CarID         string  `json:"car_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	CreatedAt     string  `json:"created_at"`
}

// RenterBookingResponse is a booking with the reduced car projection shown
// in the renter's booking list.
type RenterBookingResponse struct {
	BookingResponse
	Car struct {
		Make        string   `json:"make"`
		Model       string   `json:"model"`
		Images      []string `json:"images"`
		Location    string   `json:"location"`
		PricePerDay float64  `json:"price_per_day"`
	} `json:"car"`
}

// HostBookingResponse is a booking with full renter and car data shown in
// the host's dashboard.
type HostBookingResponse struct {
	BookingResponse
	Renter UserResponse `json:"renter"`
	Car    CarResponse  `json:"car"`
}

// BookingDetailsResponse is the transition result: the booking joined with
// renter display info and car info.
type BookingDetailsResponse struct {
	BookingResponse
	RenterName  string      `json:"renter_name"`
	RenterEmail string      `json:"renter_email"`
	Car         CarResponse `json:"car"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		RenterID:      b.RenterID,
		CarID:         b.CarID,
		StartDate:     b.StartDate.Format(dateLayout),
		EndDate:       b.EndDate.Format(dateLayout),
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.CarID == "" || req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "car_id, start_date and end_date are required"})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		RenterID:  c.GetString(middleware.ContextUserID),
		CarID:     req.CarID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// GetMyBookings handles GET /v1/bookings/my-bookings
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListMyBookings(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RenterBookingResponse, 0, len(bookings))
	for _, rb := range bookings {
		item := RenterBookingResponse{BookingResponse: toBookingResponse(&rb.Booking)}
		item.Car.Make = rb.CarMake
		item.Car.Model = rb.CarModel
		item.Car.Images = rb.CarImages
		item.Car.Location = rb.CarLocation
		item.Car.PricePerDay = rb.CarPricePerDay
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}

// GetHostBookings handles GET /v1/bookings/host
func (h *BookingHandler) GetHostBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListHostBookings(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]HostBookingResponse, 0, len(bookings))
	for _, hb := range bookings {
		response = append(response, HostBookingResponse{
			BookingResponse: toBookingResponse(&hb.Booking),
			Renter: UserResponse{
				ID:    hb.Renter.ID,
				Name:  hb.Renter.Name,
				Email: hb.Renter.Email,
				Role:  string(hb.Renter.Role),
			},
			Car: toCarResponse(&hb.Car),
		})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	details, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), service.UpdateStatusRequest{
		BookingID: c.Param("id"),
		ActorID:   c.GetString(middleware.ContextUserID),
		NewStatus: domain.BookingStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailsResponse(details))
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	details, err := h.bookingService.CancelBooking(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailsResponse(details))
}

// NotifyRenter handles POST /v1/bookings/:id/remind
func (h *BookingHandler) NotifyRenter(c *gin.Context) {
	if err := h.bookingService.NotifyRenter(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func toDetailsResponse(d *service.BookingDetails) BookingDetailsResponse {
	return BookingDetailsResponse{
		BookingResponse: toBookingResponse(&d.Booking),
		RenterName:      d.RenterName,
		RenterEmail:     d.RenterEmail,
		Car:             toCarResponse(&d.Car),
	}
}
