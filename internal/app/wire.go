package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ridepool/internal/auth"
	"ridepool/internal/config"
	"ridepool/internal/handler"
	internalRedis "ridepool/internal/redis"
	"ridepool/internal/service"
)

// NewEngine wires services and handlers over storage and returns the router.
// redisClient and nrApp may be nil.
func NewEngine(cfg *config.Config, storage Storage, redisClient *redis.Client, nrApp *newrelic.Application) *gin.Engine {
	repos := storage.Repos

	var rideCache service.RideCache
	if redisClient != nil {
		rideCache = internalRedis.NewCacheStore(redisClient)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services.
	userService := service.NewUserService(repos.Users, tokens)
	rideService := service.NewRideService(repos.Rides, rideCache)
	bookingService := service.NewBookingService(storage.Tx, repos.Bookings, repos.Rides, rideCache, cfg.Booking.MaxAttempts)
	requestService := service.NewRideRequestService(repos.RideRequests, repos.Rides, repos.Vehicles)
	agreementService := service.NewAgreementService(repos.Agreements, repos.Rides)
	vehicleService := service.NewVehicleService(repos.Vehicles)

	return NewRouter(RouterDeps{
		UserHandler:        handler.NewUserHandler(userService),
		RideHandler:        handler.NewRideHandler(rideService),
		BookingHandler:     handler.NewBookingHandler(bookingService),
		RideRequestHandler: handler.NewRideRequestHandler(requestService),
		AgreementHandler:   handler.NewAgreementHandler(agreementService),
		VehicleHandler:     handler.NewVehicleHandler(vehicleService),
		Tokens:             tokens,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})
}
