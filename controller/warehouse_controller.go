package controller

import (
	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type WarehouseController struct {
	warehouse services.WarehouseServiceInterface
	supplier  services.SupplierServiceInterface
	logger    logger.Logger
}

func NewWarehouseController(warehouse services.WarehouseServiceInterface, supplier services.SupplierServiceInterface, log logger.Logger) *WarehouseController {
	return &WarehouseController{
		warehouse: warehouse,
		supplier:  supplier,
		logger:    log,
	}
}

// StockOptimization handles GET /api/v1/warehouse/optimization
// @Summary Stock optimization review
// @Tags Warehouse
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /warehouse/optimization [get]
func (h *WarehouseController) StockOptimization(c *gin.Context) {
	report, err := h.warehouse.StockOptimizationReport(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to build stock optimization report: %v", err)
		serverError(c, "Failed to build optimization report", err)
		return
	}
	respondOK(c, "Stock optimization report generated", report)
}

// CreatePurchaseOrder handles POST /api/v1/warehouse/purchase-orders
func (h *WarehouseController) CreatePurchaseOrder(c *gin.Context) {
	var req models.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid purchase order payload", err)
		return
	}

	po, err := h.warehouse.CreatePurchaseOrder(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to create purchase order: %v", err)
		badRequest(c, "Failed to create purchase order", err)
		return
	}
	respondCreated(c, "Purchase order created successfully", po)
}

// ListPurchaseOrders handles GET /api/v1/warehouse/purchase-orders
func (h *WarehouseController) ListPurchaseOrders(c *gin.Context) {
	supplierID := c.Query("supplierId")
	if supplierID == "" {
		badRequest(c, "supplierId query parameter is required", nil)
		return
	}
	pos, err := h.warehouse.ListPurchaseOrders(c.Request.Context(), supplierID)
	if err != nil {
		serverError(c, "Failed to list purchase orders", err)
		return
	}
	respondOK(c, "Purchase orders retrieved successfully", pos)
}

// ReceivePurchaseOrder handles POST /api/v1/warehouse/purchase-orders/:id/receive
func (h *WarehouseController) ReceivePurchaseOrder(c *gin.Context) {
	po, err := h.supplier.ReceiveOrder(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		badRequest(c, "Failed to receive purchase order", err)
		return
	}
	respondOK(c, "Purchase order received and stock updated", po)
}
