package controller

import (
	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	inventory services.InventoryServiceInterface
	catalog   services.CatalogServiceInterface
	logger    logger.Logger
}

func NewInventoryController(inventory services.InventoryServiceInterface, catalog services.CatalogServiceInterface, log logger.Logger) *InventoryController {
	return &InventoryController{
		inventory: inventory,
		catalog:   catalog,
		logger:    log,
	}
}

// ListPendingOrders handles GET /api/v1/inventory/orders
// @Summary List orders awaiting packing
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /inventory/orders [get]
func (h *InventoryController) ListPendingOrders(c *gin.Context) {
	orders, err := h.inventory.ListOrdersToPack(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to list orders to pack: %v", err)
		serverError(c, "Failed to list orders", err)
		return
	}
	respondOK(c, "Orders retrieved successfully", orders)
}

// PackOrder handles POST /api/v1/inventory/orders/:id/pack
func (h *InventoryController) PackOrder(c *gin.Context) {
	var req models.PackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid packing payload", err)
		return
	}

	order, packed, err := h.inventory.PackOrder(c.Request.Context(), c.Param("id"), &req, actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to pack order %s: %v", c.Param("id"), err)
		badRequest(c, "Failed to pack order", err)
		return
	}
	respondOK(c, "Order packed successfully", gin.H{
		"order":       order,
		"packedItems": packed,
	})
}

// PrepareDispatch handles POST /api/v1/inventory/orders/:id/dispatch
func (h *InventoryController) PrepareDispatch(c *gin.Context) {
	order, err := h.inventory.PrepareDispatch(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		badRequest(c, "Failed to prepare order for dispatch", err)
		return
	}
	respondOK(c, "Order ready for dispatch", order)
}

// AdjustStock handles POST /api/v1/inventory/stock/adjust
func (h *InventoryController) AdjustStock(c *gin.Context) {
	var req models.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid adjustment payload", err)
		return
	}

	if err := h.inventory.AdjustStock(c.Request.Context(), &req, actorID(c)); err != nil {
		h.logger.Errorf("Failed to adjust stock for %s: %v", req.ProductID, err)
		badRequest(c, "Failed to adjust stock", err)
		return
	}
	respondOK(c, "Stock adjusted successfully", nil)
}

// CreateBatch handles POST /api/v1/inventory/batches
func (h *InventoryController) CreateBatch(c *gin.Context) {
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		badRequest(c, "Invalid batch payload", err)
		return
	}
	if err := h.catalog.CreateBatch(c.Request.Context(), &batch, actorID(c)); err != nil {
		serverError(c, "Failed to record batch", err)
		return
	}
	respondCreated(c, "Batch recorded successfully", batch)
}

// ListBatches handles GET /api/v1/inventory/batches/:productId
func (h *InventoryController) ListBatches(c *gin.Context) {
	batches, err := h.catalog.ListBatches(c.Request.Context(), c.Param("productId"))
	if err != nil {
		serverError(c, "Failed to list batches", err)
		return
	}
	respondOK(c, "Batches retrieved successfully", batches)
}
