package controller

import (
	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	users      services.UserServiceInterface
	catalog    services.CatalogServiceInterface
	journeys   services.JourneyServiceInterface
	simulation services.SimulationServiceInterface
	logger     logger.Logger
}

func NewAdminController(
	users services.UserServiceInterface,
	catalog services.CatalogServiceInterface,
	journeys services.JourneyServiceInterface,
	simulation services.SimulationServiceInterface,
	log logger.Logger,
) *AdminController {
	return &AdminController{
		users:      users,
		catalog:    catalog,
		journeys:   journeys,
		simulation: simulation,
		logger:     log,
	}
}

// CreateUser handles POST /api/v1/admin/users
// @Summary Provision a portal account
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User payload"
// @Success 201 {object} models.APIResponse
// @Router /admin/users [post]
func (h *AdminController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid user payload", err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to create user %s: %v", req.Email, err)
		badRequest(c, "Failed to create user", err)
		return
	}
	respondCreated(c, "User created successfully", user)
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminController) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to list users", err)
		return
	}
	respondOK(c, "Users retrieved successfully", users)
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminController) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "User not found", err)
		return
	}
	respondOK(c, "User retrieved successfully", user)
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid product payload", err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req, actorID(c))
	if err != nil {
		badRequest(c, "Failed to create product", err)
		return
	}
	respondCreated(c, "Product created successfully", product)
}

// UpdateProduct handles PATCH /api/v1/admin/products/:id
func (h *AdminController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid product payload", err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &req, actorID(c))
	if err != nil {
		badRequest(c, "Failed to update product", err)
		return
	}
	respondOK(c, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id
func (h *AdminController) DeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		badRequest(c, "Failed to delete product", err)
		return
	}
	respondOK(c, "Product deleted successfully", nil)
}

// CreateJourney handles POST /api/v1/admin/journeys
func (h *AdminController) CreateJourney(c *gin.Context) {
	journey, err := h.journeys.CreateCustomerOrderJourney(c.Request.Context(), actorID(c))
	if err != nil {
		h.logger.Errorf("Failed to create journey: %v", err)
		serverError(c, "Failed to create journey", err)
		return
	}
	respondCreated(c, "Journey created successfully", journey)
}

// ListJourneys handles GET /api/v1/admin/journeys
func (h *AdminController) ListJourneys(c *gin.Context) {
	journeys, err := h.journeys.ListJourneys(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to list journeys", err)
		return
	}
	respondOK(c, "Journeys retrieved successfully", journeys)
}

// GetJourney handles GET /api/v1/admin/journeys/:id
func (h *AdminController) GetJourney(c *gin.Context) {
	journey, err := h.journeys.GetJourney(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, "Journey not found", err)
		return
	}
	respondOK(c, "Journey retrieved successfully", journey)
}

// ListJourneyStages handles GET /api/v1/admin/journeys/:id/stages
func (h *AdminController) ListJourneyStages(c *gin.Context) {
	stages, err := h.journeys.ListStages(c.Request.Context(), c.Param("id"))
	if err != nil {
		serverError(c, "Failed to list journey stages", err)
		return
	}
	respondOK(c, "Journey stages retrieved successfully", stages)
}

// ExecuteJourney handles POST /api/v1/admin/journeys/:id/execute
func (h *AdminController) ExecuteJourney(c *gin.Context) {
	report, err := h.journeys.ExecuteJourney(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		h.logger.Errorf("Journey execution failed for %s: %v", c.Param("id"), err)
		badRequest(c, "Failed to execute journey", err)
		return
	}
	respondOK(c, "Journey executed", report)
}

// RunSimulation handles POST /api/v1/admin/simulations
func (h *AdminController) RunSimulation(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		badRequest(c, "Invalid simulation payload", err)
		return
	}

	report, err := h.simulation.RunMultiOrder(c.Request.Context(), &req, actorID(c))
	if err != nil {
		h.logger.Errorf("Simulation failed: %v", err)
		badRequest(c, "Failed to run simulation", err)
		return
	}
	respondOK(c, "Simulation completed", report)
}

// RunSingleSimulation handles POST /api/v1/admin/simulations/single
func (h *AdminController) RunSingleSimulation(c *gin.Context) {
	report, err := h.simulation.RunSingleOrder(c.Request.Context(), actorID(c))
	if err != nil {
		badRequest(c, "Failed to run simulation", err)
		return
	}
	respondOK(c, "Simulation completed", report)
}
