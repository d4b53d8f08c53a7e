package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookRideRequest is the HTTP request body for booking seats.
type BookRideRequest struct {
	RideID string `json:"rideId"`
	Seats  int    `json:"seats"`
}

// BookRide handles POST /rides/book-ride
func (h *BookingHandler) BookRide(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), service.BookRequest{
		RideID:      req.RideID,
		PassengerID: callerID(c),
		Seats:       req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// ListMine handles GET /bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookingService.ListPassengerBookings(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponses(bookings))
}

// ListForRide handles GET /rides/:id/bookings
func (h *BookingHandler) ListForRide(c *gin.Context) {
	bookings, err := h.bookingService.ListRideBookings(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponses(bookings))
}

// Confirm handles POST /bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// Cancel handles POST /bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}
