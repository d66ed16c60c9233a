package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rentwheels/internal/handler"
	"rentwheels/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	CarHandler     *handler.CarHandler
	BookingHandler *handler.BookingHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      []byte
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(deps.JWTSecret)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Car routes. Catalog reads are public; fleet management needs auth.
		cars := v1.Group("/cars")
		{
			cars.GET("", deps.CarHandler.GetAll)
			cars.GET("/:id", deps.CarHandler.GetCar)
			cars.POST("", authRequired, deps.CarHandler.CreateCar)
			cars.PUT("/:id", authRequired, deps.CarHandler.UpdateCar)
			cars.DELETE("/:id", authRequired, deps.CarHandler.DeleteCar)
			cars.GET("/owner/me", authRequired, deps.CarHandler.GetMyCars)
		}

		// Booking routes. Idempotency runs after auth so retry keys are
		// scoped to the caller.
		bookings := v1.Group("/bookings", authRequired, middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("/my-bookings", deps.BookingHandler.GetMyBookings)
			bookings.GET("/host", deps.BookingHandler.GetHostBookings)
			bookings.PATCH("/:id/status", deps.BookingHandler.UpdateStatus)
			bookings.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
			bookings.POST("/:id/remind", deps.BookingHandler.NotifyRenter)
		}
	}

	return router
}
