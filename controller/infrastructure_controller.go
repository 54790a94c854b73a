package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"grocerflow-backend/models"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"
)

// statusView is how a worker status renders over HTTP: the response
// code, the API status tag, and a human-readable message.
type statusView struct {
	httpStatus int
	apiStatus  string
	message    string
}

var workerStatusViews = map[models.WorkerStatus]statusView{
	models.StatusInitializing:      {http.StatusAccepted, "in_progress", "Initializing infrastructure worker"},
	models.StatusRunning:           {http.StatusAccepted, "in_progress", "Infrastructure setup is running"},
	models.StatusCreatingTables:    {http.StatusAccepted, "in_progress", "Creating DynamoDB tables"},
	models.StatusWaitingForTables:  {http.StatusAccepted, "in_progress", "Waiting for DynamoDB tables to become active"},
	models.StatusCreatingIndexes:   {http.StatusAccepted, "in_progress", "Creating database indexes"},
	models.StatusWaitingForIndexes: {http.StatusAccepted, "in_progress", "Waiting for database indexes to become ready"},
	models.StatusValidating:        {http.StatusAccepted, "in_progress", "Validating infrastructure configuration"},
	models.StatusFixingIssues:      {http.StatusAccepted, "in_progress", "Fixing detected infrastructure issues"},
	models.StatusRevalidating:      {http.StatusAccepted, "in_progress", "Re-validating infrastructure after fixes"},
	models.StatusFailed:            {http.StatusServiceUnavailable, "error", "Infrastructure setup failed - manual intervention may be required"},
	models.StatusDeletionScheduled: {http.StatusAccepted, "deleting", "Infrastructure deletion has been scheduled"},
	models.StatusDeleting:          {http.StatusAccepted, "deleting", "Deleting infrastructure resources"},
	models.StatusDeleted:           {http.StatusOK, "deleted", "Infrastructure has been successfully deleted"},
	models.StatusDeletionFailed:    {http.StatusServiceUnavailable, "deletion_failed", "Infrastructure deletion failed"},
}

// viewForWorkerStatus resolves the HTTP rendering for an execution
// result. Completed and retrying need the result itself: completed
// distinguishes success from warnings, retrying reports the attempt.
func viewForWorkerStatus(ws *models.ExecutionResult) statusView {
	switch ws.Status {
	case models.StatusCompleted:
		if ws.Success {
			return statusView{http.StatusOK, "success", "Infrastructure is ready and healthy"}
		}
		return statusView{http.StatusOK, "warning", "Infrastructure setup completed with warnings"}

	case models.StatusRetrying:
		return statusView{
			http.StatusAccepted, "retrying",
			fmt.Sprintf("Retrying infrastructure setup (attempt %d)", ws.RetryCount+1),
		}
	}

	if view, ok := workerStatusViews[ws.Status]; ok {
		return view
	}
	return statusView{http.StatusOK, "info", "Worker status retrieved successfully"}
}

type InfrastructureController struct {
	ctx     context.Context
	service services.InfrastructureServiceInterface
	logger  logger.Logger
}

func NewInfrastructureController(ctx context.Context, service services.InfrastructureServiceInterface, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		ctx:     ctx,
		service: service,
		logger:  logger,
	}
}

// workerError writes a uniform error envelope for supervision failures.
func (h *InfrastructureController) workerError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, models.APIResponse{
		Status:  "error",
		Code:    http.StatusInternalServerError,
		Message: message,
		Error: &models.APIError{
			Type:    "WorkerError",
			Details: err.Error(),
		},
	})
}

// GetWorkerStatus handles GET /api/v1/infrastructure/worker/status
// @Summary Get worker execution status
// @Description Retrieve detailed status of the infrastructure worker including execution state, progress, and health
// @Tags Infrastructure
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Worker status retrieved successfully"
// @Failure 401 {object} models.APIResponse "Unauthorized - Authentication required"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Failed to retrieve worker status"
// @Router /infrastructure/worker/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	workerStatus, err := h.service.GetWorkerStatus(h.ctx)
	if err != nil {
		h.logger.Error("Failed to get worker status", err)
		h.workerError(c, "Failed to retrieve worker status", err)
		return
	}

	view := viewForWorkerStatus(workerStatus)
	c.JSON(view.httpStatus, models.APIResponse{
		Status:  view.apiStatus,
		Code:    view.httpStatus,
		Message: view.message,
		Data:    workerStatus,
	})
}

// RestartWorker handles POST /api/v1/infrastructure/worker/restart
// @Summary Restart infrastructure worker
// @Description Restart the infrastructure worker with optional force parameter to restart even if currently running
// @Tags Infrastructure
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.WorkerRestartRequest false "Worker restart options"
// @Success 200 {object} models.APIResponse "Worker restart initiated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid restart request"
// @Failure 401 {object} models.APIResponse "Unauthorized - Authentication required"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Failure 409 {object} models.APIResponse "Conflict - Worker is running and force=false"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Failed to restart worker"
// @Router /infrastructure/worker/restart [post]
func (h *InfrastructureController) RestartWorker(c *gin.Context) {
	var restartRequest models.WorkerRestartRequest
	if err := c.ShouldBindJSON(&restartRequest); err != nil {
		// No body means a plain, non-forced restart.
		restartRequest = models.WorkerRestartRequest{Force: false}
	}

	result, err := h.service.RestartWorker(h.ctx, restartRequest.Force)
	if err != nil {
		if strings.Contains(err.Error(), "worker is running") {
			h.logger.Warnf("Worker restart denied - worker is currently running")
			c.JSON(http.StatusConflict, models.APIResponse{
				Status:  "error",
				Code:    http.StatusConflict,
				Message: "Worker is currently running",
				Error: &models.APIError{
					Type:    "ConflictError",
					Details: "Worker is currently running. Use force=true to restart anyway",
				},
			})
			return
		}

		h.logger.Errorf("Failed to restart worker: %v", err)
		h.workerError(c, "Failed to restart worker", err)
		return
	}

	h.logger.Info("Worker restart initiated successfully")
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Worker restart initiated successfully",
		Data:    result,
	})
}

// CheckWorkerHealth handles GET /api/v1/infrastructure/worker/health
// @Summary Check worker health
// @Description Check if the infrastructure worker is healthy and get health details
// @Tags Infrastructure
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Worker health check completed"
// @Failure 401 {object} models.APIResponse "Unauthorized - Authentication required"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Failed to check worker health"
// @Router /infrastructure/worker/health [get]
func (h *InfrastructureController) CheckWorkerHealth(c *gin.Context) {
	healthy, reason, err := h.service.IsWorkerHealthy()
	if err != nil {
		h.logger.Error("Failed to check worker health", err)
		h.workerError(c, "Failed to check worker health", err)
		return
	}

	healthStatus := "healthy"
	if !healthy {
		healthStatus = "unhealthy"
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Worker health check completed",
		Data: map[string]interface{}{
			"healthy": healthy,
			"status":  healthStatus,
			"reason":  reason,
		},
	})
}

// AutoRestartWorker handles POST /api/v1/infrastructure/worker/auto-restart
// @Summary Auto-restart worker if needed
// @Description Check worker health and automatically restart if unhealthy
// @Tags Infrastructure
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Auto-restart check completed"
// @Failure 401 {object} models.APIResponse "Unauthorized - Authentication required"
// @Failure 403 {object} models.APIResponse "Forbidden - Admin access required"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Failed to auto-restart worker"
// @Router /infrastructure/worker/auto-restart [post]
func (h *InfrastructureController) AutoRestartWorker(c *gin.Context) {
	result, err := h.service.AutoRestartIfNeeded(h.ctx)
	if err != nil {
		h.logger.Error("Failed to auto-restart worker", err)
		h.workerError(c, "Failed to auto-restart worker", err)
		return
	}

	message := "Auto-restart check completed"
	switch result.Status {
	case "not_needed":
		message = "Worker is healthy, no restart needed"
	case "completed":
		message = "Worker was unhealthy and has been restarted"
	}

	h.logger.Infof("Auto-restart check completed: %s", result.Status)
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    result,
	})
}
