package controller

import (
	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type LogisticsController struct {
	logistics services.LogisticsServiceInterface
	logger    logger.Logger
}

func NewLogisticsController(logistics services.LogisticsServiceInterface, log logger.Logger) *LogisticsController {
	return &LogisticsController{
		logistics: logistics,
		logger:    log,
	}
}

// CreateRunsheets handles POST /api/v1/logistics/runsheets
// @Summary Create daily runsheets for dispatch-ready orders
// @Tags Logistics
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.APIResponse
// @Router /logistics/runsheets [post]
func (h *LogisticsController) CreateRunsheets(c *gin.Context) {
	runsheets, err := h.logistics.CreateRunsheets(c.Request.Context(), actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to create runsheets: %v", err)
		badRequest(c, "Failed to create runsheets", err)
		return
	}
	respondCreated(c, "Runsheets created successfully", runsheets)
}

// GenerateRoutes handles POST /api/v1/logistics/routes
func (h *LogisticsController) GenerateRoutes(c *gin.Context) {
	var req models.GenerateRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid route generation payload", err)
		return
	}

	routes, err := h.logistics.GenerateRoutes(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to generate routes: %v", err)
		badRequest(c, "Failed to generate routes", err)
		return
	}
	respondCreated(c, "Routes generated successfully", routes)
}

// AssignRider handles POST /api/v1/logistics/orders/:id/assign
func (h *LogisticsController) AssignRider(c *gin.Context) {
	delivery, err := h.logistics.AssignRider(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to assign rider for order %s: %v", c.Param("id"), err)
		badRequest(c, "Failed to assign rider", err)
		return
	}
	respondCreated(c, "Rider assigned successfully", delivery)
}
