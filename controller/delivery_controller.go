package controller

import (
	"net/http"

	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	delivery services.DeliveryServiceInterface
	logger   logger.Logger
}

func NewDeliveryController(delivery services.DeliveryServiceInterface, log logger.Logger) *DeliveryController {
	return &DeliveryController{
		delivery: delivery,
		logger:   log,
	}
}

func (h *DeliveryController) riderID(c *gin.Context) (string, bool) {
	riderID := contextString(c, "rider_id")
	if riderID == "" {
		respondError(c, http.StatusForbidden, "AuthorizationError",
			"Account is not linked to a rider profile", nil)
		return "", false
	}
	return riderID, true
}

// ListDeliveries handles GET /api/v1/delivery/deliveries
// @Summary List the rider's assigned deliveries
// @Tags Delivery
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /delivery/deliveries [get]
func (h *DeliveryController) ListDeliveries(c *gin.Context) {
	riderID, ok := h.riderID(c)
	if !ok {
		return
	}
	deliveries, err := h.delivery.ListRiderDeliveries(c.Request.Context(), riderID)
	if err != nil {
		h.logger.Errorf("Failed to list deliveries for rider %s: %v", riderID, err)
		serverError(c, "Failed to list deliveries", err)
		return
	}
	respondOK(c, "Deliveries retrieved successfully", deliveries)
}

// StartDelivery handles POST /api/v1/delivery/deliveries/:id/start
func (h *DeliveryController) StartDelivery(c *gin.Context) {
	riderID, ok := h.riderID(c)
	if !ok {
		return
	}
	delivery, err := h.delivery.StartDelivery(c.Request.Context(), c.Param("id"), riderID)
	if err != nil {
		badRequest(c, "Failed to start delivery", err)
		return
	}
	respondOK(c, "Delivery started", delivery)
}

// CompleteDelivery handles POST /api/v1/delivery/deliveries/:id/complete
func (h *DeliveryController) CompleteDelivery(c *gin.Context) {
	riderID, ok := h.riderID(c)
	if !ok {
		return
	}
	delivery, err := h.delivery.CompleteDelivery(c.Request.Context(), c.Param("id"), riderID)
	if err != nil {
		badRequest(c, "Failed to complete delivery", err)
		return
	}
	respondOK(c, "Delivery completed", delivery)
}

// FailDelivery handles POST /api/v1/delivery/deliveries/:id/fail
func (h *DeliveryController) FailDelivery(c *gin.Context) {
	riderID, ok := h.riderID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Failure reason is required", err)
		return
	}
	delivery, err := h.delivery.FailDelivery(c.Request.Context(), c.Param("id"), riderID, req.Reason)
	if err != nil {
		badRequest(c, "Failed to record delivery failure", err)
		return
	}
	respondOK(c, "Delivery marked as failed", delivery)
}

// CollectCash handles POST /api/v1/delivery/collections
func (h *DeliveryController) CollectCash(c *gin.Context) {
	riderID, ok := h.riderID(c)
	if !ok {
		return
	}
	var req models.CollectCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid collection payload", err)
		return
	}
	collection, err := h.delivery.CollectCash(c.Request.Context(), riderID, &req)
	if err != nil {
		badRequest(c, "Failed to collect payment", err)
		return
	}
	respondCreated(c, "Payment collected successfully", collection)
}
