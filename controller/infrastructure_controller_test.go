package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

// MockInfrastructureService implements InfrastructureServiceInterface
type MockInfrastructureService struct {
	mock.Mock
}

func (m *MockInfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExecutionResult), args.Error(1)
}

func (m *MockInfrastructureService) RestartWorker(ctx context.Context, force bool) (*models.ServiceRestartResult, error) {
	args := m.Called(ctx, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRestartResult), args.Error(1)
}

func (m *MockInfrastructureService) IsWorkerHealthy() (bool, string, error) {
	args := m.Called()
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockInfrastructureService) AutoRestartIfNeeded(ctx context.Context) (*models.ServiceRestartResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRestartResult), args.Error(1)
}

type InfrastructureControllerTestSuite struct {
	suite.Suite
	infraController *InfrastructureController
	mockService     *MockInfrastructureService
	ctx             context.Context
	router          *gin.Engine
}

func (suite *InfrastructureControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctx = context.Background()
	suite.mockService = &MockInfrastructureService{}
	suite.infraController = NewInfrastructureController(suite.ctx, suite.mockService, logger.NewLogger("error", "json"))

	suite.router = gin.New()
	suite.router.GET("/infrastructure/worker/status", suite.infraController.GetWorkerStatus)
	suite.router.POST("/infrastructure/worker/restart", suite.infraController.RestartWorker)
	suite.router.GET("/infrastructure/worker/health", suite.infraController.CheckWorkerHealth)
	suite.router.POST("/infrastructure/worker/auto-restart", suite.infraController.AutoRestartWorker)
}

func TestInfrastructureControllerTestSuite(t *testing.T) {
	suite.Run(t, new(InfrastructureControllerTestSuite))
}

// perform issues a request against the suite router and decodes the
// API envelope.
func (suite *InfrastructureControllerTestSuite) perform(method, path string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response models.APIResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func (suite *InfrastructureControllerTestSuite) TestGetWorkerStatusReady() {
	suite.mockService.On("GetWorkerStatus", suite.ctx).Return(&models.ExecutionResult{
		Status:  models.StatusCompleted,
		Success: true,
	}, nil)

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/status", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Infrastructure is ready and healthy", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestGetWorkerStatusFailed() {
	suite.mockService.On("GetWorkerStatus", suite.ctx).Return(&models.ExecutionResult{
		Status: models.StatusFailed,
	}, nil)

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/status", nil)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
}

func (suite *InfrastructureControllerTestSuite) TestGetWorkerStatusInProgress() {
	suite.mockService.On("GetWorkerStatus", suite.ctx).Return(&models.ExecutionResult{
		Status: models.StatusRunning,
	}, nil)

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/status", nil)

	assert.Equal(suite.T(), http.StatusAccepted, w.Code)
	assert.Equal(suite.T(), "in_progress", response.Status)
	assert.Equal(suite.T(), "Infrastructure setup is running", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestGetWorkerStatusServiceError() {
	suite.mockService.On("GetWorkerStatus", suite.ctx).Return(nil, errors.New("status file unreadable"))

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/status", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
	assert.Equal(suite.T(), "Failed to retrieve worker status", response.Message)
	assert.Equal(suite.T(), "WorkerError", response.Error.Type)
}

func (suite *InfrastructureControllerTestSuite) TestRestartWorker() {
	suite.mockService.On("RestartWorker", suite.ctx, false).Return(&models.ServiceRestartResult{
		Status: "completed",
	}, nil)

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/restart", models.WorkerRestartRequest{Force: false})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Worker restart initiated successfully", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestRestartWorkerWithForce() {
	suite.mockService.On("RestartWorker", suite.ctx, true).Return(&models.ServiceRestartResult{
		Status: "completed",
	}, nil)

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/restart", models.WorkerRestartRequest{Force: true})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
}

func (suite *InfrastructureControllerTestSuite) TestRestartWorkerNoBodyDefaultsToUnforced() {
	suite.mockService.On("RestartWorker", suite.ctx, false).Return(&models.ServiceRestartResult{
		Status: "completed",
	}, nil)

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/restart", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	suite.mockService.AssertCalled(suite.T(), "RestartWorker", suite.ctx, false)
}

func (suite *InfrastructureControllerTestSuite) TestRestartWorkerConflict() {
	suite.mockService.On("RestartWorker", suite.ctx, false).Return(nil, errors.New("worker is running"))

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/restart", models.WorkerRestartRequest{Force: false})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
	assert.Equal(suite.T(), "Worker is currently running", response.Message)
	assert.Equal(suite.T(), "ConflictError", response.Error.Type)
}

func (suite *InfrastructureControllerTestSuite) TestRestartWorkerServiceError() {
	suite.mockService.On("RestartWorker", suite.ctx, false).Return(nil, errors.New("lock file unwritable"))

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/restart", models.WorkerRestartRequest{Force: false})

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
	assert.Equal(suite.T(), "Failed to restart worker", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestCheckWorkerHealth() {
	suite.mockService.On("IsWorkerHealthy").Return(true, "Worker is running normally", nil)

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/health", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Worker health check completed", response.Message)

	data, ok := response.Data.(map[string]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), true, data["healthy"])
	assert.Equal(suite.T(), "healthy", data["status"])
	assert.Equal(suite.T(), "Worker is running normally", data["reason"])
}

func (suite *InfrastructureControllerTestSuite) TestCheckWorkerHealthUnhealthy() {
	suite.mockService.On("IsWorkerHealthy").Return(false, "Worker stuck in retry loop", nil)

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/health", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	data, ok := response.Data.(map[string]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), false, data["healthy"])
	assert.Equal(suite.T(), "unhealthy", data["status"])
	assert.Equal(suite.T(), "Worker stuck in retry loop", data["reason"])
}

func (suite *InfrastructureControllerTestSuite) TestCheckWorkerHealthServiceError() {
	suite.mockService.On("IsWorkerHealthy").Return(false, "", errors.New("health check failed"))

	w, response := suite.perform(http.MethodGet, "/infrastructure/worker/health", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
	assert.Equal(suite.T(), "Failed to check worker health", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestAutoRestartWorkerNotNeeded() {
	suite.mockService.On("AutoRestartIfNeeded", suite.ctx).Return(&models.ServiceRestartResult{
		Status: "not_needed",
	}, nil)

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/auto-restart", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Worker is healthy, no restart needed", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestAutoRestartWorkerCompleted() {
	suite.mockService.On("AutoRestartIfNeeded", suite.ctx).Return(&models.ServiceRestartResult{
		Status: "completed",
	}, nil)

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/auto-restart", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Worker was unhealthy and has been restarted", response.Message)
}

func (suite *InfrastructureControllerTestSuite) TestAutoRestartWorkerServiceError() {
	suite.mockService.On("AutoRestartIfNeeded", suite.ctx).Return(nil, errors.New("auto-restart failed"))

	w, response := suite.perform(http.MethodPost, "/infrastructure/worker/auto-restart", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "error", response.Status)
	assert.Equal(suite.T(), "Failed to auto-restart worker", response.Message)
}

func TestViewForWorkerStatus(t *testing.T) {
	cases := []struct {
		name        string
		result      *models.ExecutionResult
		wantCode    int
		wantStatus  string
		wantMessage string
	}{
		{
			name:        "completed successfully",
			result:      &models.ExecutionResult{Status: models.StatusCompleted, Success: true},
			wantCode:    http.StatusOK,
			wantStatus:  "success",
			wantMessage: "Infrastructure is ready and healthy",
		},
		{
			name:        "completed with issues",
			result:      &models.ExecutionResult{Status: models.StatusCompleted},
			wantCode:    http.StatusOK,
			wantStatus:  "warning",
			wantMessage: "Infrastructure setup completed with warnings",
		},
		{
			name:        "failed",
			result:      &models.ExecutionResult{Status: models.StatusFailed},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "error",
			wantMessage: "Infrastructure setup failed - manual intervention may be required",
		},
		{
			name:        "running",
			result:      &models.ExecutionResult{Status: models.StatusRunning},
			wantCode:    http.StatusAccepted,
			wantStatus:  "in_progress",
			wantMessage: "Infrastructure setup is running",
		},
		{
			name:        "creating tables",
			result:      &models.ExecutionResult{Status: models.StatusCreatingTables},
			wantCode:    http.StatusAccepted,
			wantStatus:  "in_progress",
			wantMessage: "Creating DynamoDB tables",
		},
		{
			name:        "retrying reports attempt",
			result:      &models.ExecutionResult{Status: models.StatusRetrying, RetryCount: 2},
			wantCode:    http.StatusAccepted,
			wantStatus:  "retrying",
			wantMessage: "Retrying infrastructure setup (attempt 3)",
		},
		{
			name:        "deleting",
			result:      &models.ExecutionResult{Status: models.StatusDeleting},
			wantCode:    http.StatusAccepted,
			wantStatus:  "deleting",
			wantMessage: "Deleting infrastructure resources",
		},
		{
			name:        "deleted",
			result:      &models.ExecutionResult{Status: models.StatusDeleted},
			wantCode:    http.StatusOK,
			wantStatus:  "deleted",
			wantMessage: "Infrastructure has been successfully deleted",
		},
		{
			name:        "unknown status",
			result:      &models.ExecutionResult{Status: models.StatusIdle},
			wantCode:    http.StatusOK,
			wantStatus:  "info",
			wantMessage: "Worker status retrieved successfully",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := viewForWorkerStatus(tc.result)
			assert.Equal(t, tc.wantCode, view.httpStatus)
			assert.Equal(t, tc.wantStatus, view.apiStatus)
			assert.Equal(t, tc.wantMessage, view.message)
		})
	}
}
