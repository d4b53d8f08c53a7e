package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridepool/internal/domain"
	"ridepool/internal/service"
)

// AgreementHandler handles HTTP requests for agreements.
type AgreementHandler struct {
	agreementService *service.AgreementService
}

// NewAgreementHandler creates a new AgreementHandler.
func NewAgreementHandler(agreementService *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementService: agreementService}
}

// CreateAgreementBody is the HTTP request body for opening an agreement.
type CreateAgreementBody struct {
	RideID      string `json:"ride_id"`
	PassengerID string `json:"passenger_id"`
}

// ResolveAgreementBody is the HTTP request body for accepting or rejecting an agreement.
type ResolveAgreementBody struct {
	AgreementID string `json:"agreement_id"`
}

// Create handles POST /agreements. A passenger may omit passenger_id.
func (h *AgreementHandler) Create(c *gin.Context) {
	var req CreateAgreementBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	caller := callerID(c)
	passengerID := req.PassengerID
	if passengerID == "" {
		passengerID = caller
	}

	agreement, err := h.agreementService.Create(c.Request.Context(), service.CreateAgreementRequest{
		RideID:      req.RideID,
		PassengerID: passengerID,
		CallerID:    caller,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toAgreementResponse(agreement))
}

// Accept handles POST /agreements/accept/:user
func (h *AgreementHandler) Accept(c *gin.Context) {
	h.resolve(c, h.agreementService.Accept)
}

// Reject handles POST /agreements/reject/:user
func (h *AgreementHandler) Reject(c *gin.Context) {
	h.resolve(c, h.agreementService.Reject)
}

func (h *AgreementHandler) resolve(c *gin.Context, op func(ctx context.Context, agreementID, callerID string) (*domain.Agreement, error)) {
	caller, ok := pathUserIsCaller(c)
	if !ok {
		return
	}

	var req ResolveAgreementBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	agreement, err := op(c.Request.Context(), req.AgreementID, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toAgreementResponse(agreement))
}

// ListForUser handles GET /agreements/:user
func (h *AgreementHandler) ListForUser(c *gin.Context) {
	caller, ok := pathUserIsCaller(c)
	if !ok {
		return
	}

	agreements, err := h.agreementService.ListForUser(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toAgreementResponses(agreements))
}

// pathUserIsCaller rejects requests whose :user segment names someone else.
func pathUserIsCaller(c *gin.Context) (string, bool) {
	caller := callerID(c)
	if c.Param("user") != caller {
		respondError(c, service.ErrNotAgreementParty)
		return "", false
	}
	return caller, true
}
