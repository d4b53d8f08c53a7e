package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/domain"
	"ridepool/internal/service"
)

// RideRequestHandler handles HTTP requests for ride requests.
type RideRequestHandler struct {
	requestService *service.RideRequestService
}

// NewRideRequestHandler creates a new RideRequestHandler.
func NewRideRequestHandler(requestService *service.RideRequestService) *RideRequestHandler {
	return &RideRequestHandler{requestService: requestService}
}

// CreateRideRequestBody is the HTTP request body for requesting a ride.
type CreateRideRequestBody struct {
	RideID   string `json:"ride_id"`
	DriverID string `json:"driver_id"`
}

// ResolveRideRequestBody is the HTTP request body for accepting or rejecting a request.
type ResolveRideRequestBody struct {
	RequestID string `json:"request_id"`
}

// RequestRide handles POST /ride-req/:vehicle
func (h *RideRequestHandler) RequestRide(c *gin.Context) {
	var req CreateRideRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	rideReq, err := h.requestService.RequestRide(c.Request.Context(), service.RequestRideRequest{
		DriverID:    req.DriverID,
		PassengerID: callerID(c),
		RideID:      req.RideID,
		VehicleID:   c.Param("vehicle"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideRequestResponse(rideReq))
}

// Accept handles POST /accepted
func (h *RideRequestHandler) Accept(c *gin.Context) {
	h.resolve(c, h.requestService.Accept)
}

// Reject handles POST /rejected
func (h *RideRequestHandler) Reject(c *gin.Context) {
	h.resolve(c, h.requestService.Reject)
}

func (h *RideRequestHandler) resolve(c *gin.Context, op func(ctx context.Context, requestID, driverID string) (*domain.RideRequest, error)) {
	var req ResolveRideRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	rideReq, err := op(c.Request.Context(), req.RequestID, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponse(rideReq))
}

// ListInbox handles GET /ride-req
func (h *RideRequestHandler) ListInbox(c *gin.Context) {
	reqs, err := h.requestService.ListRequestsForDriver(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponses(reqs))
}

// ListSent handles GET /ride-req/sent
func (h *RideRequestHandler) ListSent(c *gin.Context) {
	reqs, err := h.requestService.ListRequestsForPassenger(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponses(reqs))
}
