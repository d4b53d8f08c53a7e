package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// RegisterVehicleRequest is the HTTP request body for registering a vehicle.
type RegisterVehicleRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Plate string `json:"plate"`
	Seats int    `json:"seats"`
}

// Register handles POST /vehicles
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	vehicle, err := h.vehicleService.RegisterVehicle(c.Request.Context(), service.RegisterVehicleRequest{
		DriverID: callerID(c),
		Make:     req.Make,
		Model:    req.Model,
		Plate:    req.Plate,
		Seats:    req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// List handles GET /vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}
	respondJSON(c, http.StatusOK, response)
}
