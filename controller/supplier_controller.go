package controller

import (
	"net/http"

	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type SupplierController struct {
	supplier services.SupplierServiceInterface
	logger   logger.Logger
}

func NewSupplierController(supplier services.SupplierServiceInterface, log logger.Logger) *SupplierController {
	return &SupplierController{
		supplier: supplier,
		logger:   log,
	}
}

func (h *SupplierController) supplierID(c *gin.Context) (string, bool) {
	supplierID := contextString(c, "supplier_id")
	if supplierID == "" {
		respondError(c, http.StatusForbidden, "AuthorizationError",
			"Account is not linked to a supplier profile", nil)
		return "", false
	}
	return supplierID, true
}

// ListPendingOrders handles GET /api/v1/supplier/purchase-orders/pending
// @Summary List pending purchase orders for the supplier
// @Tags Supplier Portal
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /supplier/purchase-orders/pending [get]
func (h *SupplierController) ListPendingOrders(c *gin.Context) {
	supplierID, ok := h.supplierID(c)
	if !ok {
		return
	}
	pos, err := h.supplier.ListPendingOrders(c.Request.Context(), supplierID)
	if err != nil {
		h.logger.Errorf("Failed to list pending orders for %s: %v", supplierID, err)
		serverError(c, "Failed to list pending purchase orders", err)
		return
	}
	respondOK(c, "Pending purchase orders retrieved successfully", pos)
}

// ListOrders handles GET /api/v1/supplier/purchase-orders
func (h *SupplierController) ListOrders(c *gin.Context) {
	supplierID, ok := h.supplierID(c)
	if !ok {
		return
	}
	pos, err := h.supplier.ListOrders(c.Request.Context(), supplierID)
	if err != nil {
		serverError(c, "Failed to list purchase orders", err)
		return
	}
	respondOK(c, "Purchase orders retrieved successfully", pos)
}

// AcceptOrder handles POST /api/v1/supplier/purchase-orders/:id/accept
func (h *SupplierController) AcceptOrder(c *gin.Context) {
	supplierID, ok := h.supplierID(c)
	if !ok {
		return
	}
	po, err := h.supplier.AcceptOrder(c.Request.Context(), c.Param("id"), supplierID)
	if err != nil {
		badRequest(c, "Failed to accept purchase order", err)
		return
	}
	respondOK(c, "Purchase order accepted", po)
}

// ShipOrder handles POST /api/v1/supplier/purchase-orders/:id/ship
func (h *SupplierController) ShipOrder(c *gin.Context) {
	supplierID, ok := h.supplierID(c)
	if !ok {
		return
	}
	po, err := h.supplier.ShipOrder(c.Request.Context(), c.Param("id"), supplierID)
	if err != nil {
		badRequest(c, "Failed to mark purchase order shipped", err)
		return
	}
	respondOK(c, "Purchase order marked as shipped", po)
}
