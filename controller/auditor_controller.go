package controller

import (
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type AuditorController struct {
	audit  services.AuditServiceInterface
	logger logger.Logger
}

func NewAuditorController(audit services.AuditServiceInterface, log logger.Logger) *AuditorController {
	return &AuditorController{
		audit:  audit,
		logger: log,
	}
}

// VerifyCashCollections handles GET /api/v1/auditor/cash-collections/verify
// @Summary Verify recorded cash collections
// @Tags Auditor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /auditor/cash-collections/verify [get]
func (h *AuditorController) VerifyCashCollections(c *gin.Context) {
	report, err := h.audit.VerifyCashCollections(c.Request.Context(), actorID(c))
	if err != nil {
		h.logger.Errorf("Cash verification failed: %v", err)
		serverError(c, "Failed to verify cash collections", err)
		return
	}
	respondOK(c, "Cash collection verification completed", report)
}

// VerifyOrders handles GET /api/v1/auditor/orders/verify
func (h *AuditorController) VerifyOrders(c *gin.Context) {
	report, err := h.audit.VerifyOrders(c.Request.Context(), actorID(c))
	if err != nil {
		h.logger.Errorf("Order verification failed: %v", err)
		serverError(c, "Failed to verify orders", err)
		return
	}
	respondOK(c, "Order verification completed", report)
}

// ListAuditLogs handles GET /api/v1/auditor/logs
func (h *AuditorController) ListAuditLogs(c *gin.Context) {
	if entityID := c.Query("entityId"); entityID != "" {
		logs, err := h.audit.ListEntityAuditLogs(c.Request.Context(), entityID)
		if err != nil {
			serverError(c, "Failed to list audit logs", err)
			return
		}
		respondOK(c, "Audit logs retrieved successfully", logs)
		return
	}

	logs, err := h.audit.ListAuditLogs(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to list audit logs", err)
		return
	}
	respondOK(c, "Audit logs retrieved successfully", logs)
}
