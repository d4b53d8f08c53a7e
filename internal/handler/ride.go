package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/domain"
	"ridepool/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// OfferRideRequest is the HTTP request body for offering a ride.
type OfferRideRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Seats       int    `json:"seats"`
}

// CancelRideRequest is the HTTP request body for cancelling a ride.
type CancelRideRequest struct {
	RideID string `json:"rideId"`
}

// OfferRide handles POST /rides
func (h *RideHandler) OfferRide(c *gin.Context) {
	var req OfferRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ride, err := h.rideService.OfferRide(c.Request.Context(), service.OfferRideRequest{
		DriverID:    callerID(c),
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date,
		Time:        req.Time,
		Seats:       req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// SearchRides handles GET /rides?origin=&destination=&date=&status=
func (h *RideHandler) SearchRides(c *gin.Context) {
	rides, err := h.rideService.SearchRides(c.Request.Context(), domain.RideFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		Status:      domain.RideStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponses(rides))
}

// MyRides handles GET /rides/mine
func (h *RideHandler) MyRides(c *gin.Context) {
	rides, err := h.rideService.ListDriverRides(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponses(rides))
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /rides/cancel-ride
func (h *RideHandler) CancelRide(c *gin.Context) {
	var req CancelRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), req.RideID, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
