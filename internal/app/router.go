package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"ridepool/internal/domain"
	"ridepool/internal/handler"
	"ridepool/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler        *handler.UserHandler
	RideHandler        *handler.RideHandler
	BookingHandler     *handler.BookingHandler
	RideRequestHandler *handler.RideRequestHandler
	AgreementHandler   *handler.AgreementHandler
	VehicleHandler     *handler.VehicleHandler
	Tokens             middleware.TokenVerifier
	RedisClient        *redis.Client // optional; disables idempotency when nil
	NewRelicApp        *newrelic.Application
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
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public user routes.
	users := router.Group("/users")
	{
		users.POST("/register", deps.UserHandler.Register)
		users.POST("/login", deps.UserHandler.Login)
	}

	// Everything else needs a caller. Idempotency keys are scoped per caller,
	// so the middleware runs after authentication.
	api := router.Group("")
	api.Use(middleware.AuthMiddleware(deps.Tokens))
	api.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	driverOnly := middleware.RequireRole(domain.RoleDriver)

	// Ride routes.
	rides := api.Group("/rides")
	{
		rides.POST("", driverOnly, deps.RideHandler.OfferRide)
		rides.GET("", deps.RideHandler.SearchRides)
		rides.GET("/mine", driverOnly, deps.RideHandler.MyRides)
		rides.GET("/:id", deps.RideHandler.GetRide)
		rides.GET("/:id/bookings", deps.BookingHandler.ListForRide)
		rides.POST("/book-ride", deps.BookingHandler.BookRide)
		rides.POST("/cancel-ride", deps.RideHandler.CancelRide)
	}

	// Booking routes.
	bookings := api.Group("/bookings")
	{
		bookings.GET("", deps.BookingHandler.ListMine)
		bookings.POST("/:id/confirm", deps.BookingHandler.Confirm)
		bookings.POST("/:id/cancel", deps.BookingHandler.Cancel)
	}

	// Ride request routes.
	rideReqs := api.Group("/ride-req")
	{
		rideReqs.POST("/:vehicle", deps.RideRequestHandler.RequestRide)
		rideReqs.GET("", deps.RideRequestHandler.ListInbox)
		rideReqs.GET("/sent", deps.RideRequestHandler.ListSent)
	}
	api.POST("/accepted", deps.RideRequestHandler.Accept)
	api.POST("/rejected", deps.RideRequestHandler.Reject)

	// Agreement routes.
	agreements := api.Group("/agreements")
	{
		agreements.POST("", deps.AgreementHandler.Create)
		agreements.GET("/:user", deps.AgreementHandler.ListForUser)
		agreements.POST("/accept/:user", deps.AgreementHandler.Accept)
		agreements.POST("/reject/:user", deps.AgreementHandler.Reject)
	}

	// Vehicle routes.
	vehicles := api.Group("/vehicles", driverOnly)
	{
		vehicles.POST("", deps.VehicleHandler.Register)
		vehicles.GET("", deps.VehicleHandler.List)
	}

	return router
}
