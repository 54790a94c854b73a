package services

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"grocerflow-backend/models"
	"grocerflow-backend/worker"
)

// InfrastructureServiceTestSuite exercises worker supervision against
// real status and lock files. The DB client is nil because the
// supervisor only ever reads files.
type InfrastructureServiceTestSuite struct {
	suite.Suite
	infraService *InfrastructureService
	ctx          context.Context
	config       *models.Config
}

func (suite *InfrastructureServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.config = &models.Config{AppEnv: "test"}
	suite.infraService = NewInfrastructureService(suite.ctx, nil, newMockLogger(), suite.config)
	suite.removeWorkerFiles()
}

func (suite *InfrastructureServiceTestSuite) TearDownTest() {
	suite.removeWorkerFiles()
}

func (suite *InfrastructureServiceTestSuite) removeWorkerFiles() {
	os.Remove(worker.StatusFilePath(suite.config.AppEnv))
	os.Remove(worker.LockFilePath(suite.config.AppEnv))
}

// writeStatus persists an execution result the way the worker would.
func (suite *InfrastructureServiceTestSuite) writeStatus(result *models.ExecutionResult) {
	data, err := json.Marshal(result)
	suite.Require().NoError(err)
	suite.Require().NoError(os.WriteFile(worker.StatusFilePath(suite.config.AppEnv), data, 0644))
}

func (suite *InfrastructureServiceTestSuite) writeLock(owner string) {
	lock := &models.LockInfo{
		ID:          "lease-1",
		Owner:       owner,
		AcquiredAt:  time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
		Environment: suite.config.AppEnv,
	}
	data, err := json.Marshal(lock)
	suite.Require().NoError(err)
	suite.Require().NoError(os.WriteFile(worker.LockFilePath(suite.config.AppEnv), data, 0644))
}

func TestInfrastructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InfrastructureServiceTestSuite))
}

func (suite *InfrastructureServiceTestSuite) TestGetWorkerStatusEnrichesResult() {
	suite.writeStatus(&models.ExecutionResult{
		Status:    models.StatusCreatingTables,
		StartTime: time.Now().Add(-time.Minute),
	})

	result, err := suite.infraService.GetWorkerStatus(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Table Creation", result.Phase)
	assert.Equal(suite.T(), "Creating DynamoDB tables - this may take a few minutes", result.NextAction)
	assert.NotNil(suite.T(), result.EstimatedTime)
	assert.Equal(suite.T(), "provisioning", result.HealthStatus)
	assert.NotNil(suite.T(), result.Progress)
	assert.Equal(suite.T(), 2, result.Progress.CurrentStep)
}

func (suite *InfrastructureServiceTestSuite) TestGetWorkerStatusKeepsReportedProgress() {
	suite.writeStatus(&models.ExecutionResult{
		Status:    models.StatusRunning,
		StartTime: time.Now().Add(-5 * time.Minute),
		Progress:  &models.ProgressInfo{Percentage: 50},
	})

	result, err := suite.infraService.GetWorkerStatus(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 50, result.Progress.Percentage)
}

func (suite *InfrastructureServiceTestSuite) TestGetWorkerStatusMissingFile() {
	result, err := suite.infraService.GetWorkerStatus(suite.ctx)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.Contains(suite.T(), err.Error(), "failed to read worker status file")
}

func (suite *InfrastructureServiceTestSuite) TestGetWorkerStatusCorruptFile() {
	err := os.WriteFile(worker.StatusFilePath(suite.config.AppEnv), []byte("not json"), 0644)
	suite.Require().NoError(err)

	result, err := suite.infraService.GetWorkerStatus(suite.ctx)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.Contains(suite.T(), err.Error(), "failed to unmarshal")
}

func (suite *InfrastructureServiceTestSuite) TestRestartWorkerRefusedWhileRunning() {
	suite.writeStatus(&models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now()})

	result, err := suite.infraService.RestartWorker(suite.ctx, false)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "worker is running")
	assert.Equal(suite.T(), "failed", result.Status)
	assert.Contains(suite.T(), result.Error, "Worker is currently running")
}

func (suite *InfrastructureServiceTestSuite) TestRestartWorkerForceEvictsLease() {
	suite.writeStatus(&models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now()})
	suite.writeLock("worker-otherhost-deadbeef")

	result, err := suite.infraService.RestartWorker(suite.ctx, true)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "infrastructure-worker", result.ServiceName)
	assert.Equal(suite.T(), "completed", result.Status)

	_, statErr := os.Stat(worker.LockFilePath(suite.config.AppEnv))
	assert.True(suite.T(), os.IsNotExist(statErr))

	// Status file is re-seeded as a fresh running document.
	fresh, err := worker.NewStatusManager(worker.StatusFilePath(suite.config.AppEnv)).Load()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusRunning, fresh.Status)
	assert.Equal(suite.T(), suite.config.AppEnv, fresh.Environment)
	assert.Zero(suite.T(), fresh.RetryCount)
}

func (suite *InfrastructureServiceTestSuite) TestRestartWorkerNoStatusFile() {
	result, err := suite.infraService.RestartWorker(suite.ctx, false)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "completed", result.Status)
}

func (suite *InfrastructureServiceTestSuite) TestRestartWorkerCorruptStatusFile() {
	err := os.WriteFile(worker.StatusFilePath(suite.config.AppEnv), []byte("corrupted"), 0644)
	suite.Require().NoError(err)

	result, err := suite.infraService.RestartWorker(suite.ctx, false)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "completed", result.Status)
}

func (suite *InfrastructureServiceTestSuite) TestIsWorkerHealthy() {
	cases := []struct {
		name    string
		status  *models.ExecutionResult
		healthy bool
		reason  string
	}{
		{
			name:    "completed successfully",
			status:  &models.ExecutionResult{Status: models.StatusCompleted, Success: true},
			healthy: true,
			reason:  "Worker completed successfully",
		},
		{
			name:    "completed with errors",
			status:  &models.ExecutionResult{Status: models.StatusCompleted},
			healthy: false,
			reason:  "Worker completed with errors",
		},
		{
			name:    "running normally",
			status:  &models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now().Add(-2 * time.Minute)},
			healthy: true,
			reason:  "Worker is running normally",
		},
		{
			name:    "running too long",
			status:  &models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now().Add(-45 * time.Minute)},
			healthy: false,
			reason:  "Worker running too long",
		},
		{
			name:    "failed",
			status:  &models.ExecutionResult{Status: models.StatusFailed, ErrorMessage: "table create throttled"},
			healthy: false,
			reason:  "Worker failed: table create throttled",
		},
		{
			name:    "stuck retrying",
			status:  &models.ExecutionResult{Status: models.StatusRetrying, RetryCount: 6},
			healthy: false,
			reason:  "Worker stuck in retry loop",
		},
		{
			name:    "retrying after failure",
			status:  &models.ExecutionResult{Status: models.StatusRetrying, RetryCount: 2},
			healthy: false,
			reason:  "Worker is retrying after failure",
		},
		{
			name:    "unknown status",
			status:  &models.ExecutionResult{Status: models.StatusIdle},
			healthy: false,
			reason:  "Worker status unknown",
		},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.writeStatus(tc.status)

			healthy, reason, err := suite.infraService.IsWorkerHealthy()

			assert.NoError(suite.T(), err)
			assert.Equal(suite.T(), tc.healthy, healthy)
			assert.Equal(suite.T(), tc.reason, reason)
		})
	}
}

func (suite *InfrastructureServiceTestSuite) TestIsWorkerHealthyMissingFile() {
	healthy, reason, err := suite.infraService.IsWorkerHealthy()

	assert.Error(suite.T(), err)
	assert.False(suite.T(), healthy)
	assert.Contains(suite.T(), err.Error(), "failed to read worker status file")
	assert.Equal(suite.T(), "Cannot read worker status", reason)
}

func (suite *InfrastructureServiceTestSuite) TestAutoRestartNotNeededWhenHealthy() {
	suite.writeStatus(&models.ExecutionResult{
		Status:    models.StatusRunning,
		StartTime: time.Now().Add(-2 * time.Minute),
	})

	result, err := suite.infraService.AutoRestartIfNeeded(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "not_needed", result.Status)
	assert.Equal(suite.T(), "Worker is healthy, no restart needed", result.Output)
}

func (suite *InfrastructureServiceTestSuite) TestAutoRestartRestartsFailedWorker() {
	suite.writeStatus(&models.ExecutionResult{
		Status:       models.StatusFailed,
		ErrorMessage: "validation failed",
	})

	result, err := suite.infraService.AutoRestartIfNeeded(suite.ctx)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "completed", result.Status)

	fresh, err := worker.NewStatusManager(worker.StatusFilePath(suite.config.AppEnv)).Load()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusRunning, fresh.Status)
}

func (suite *InfrastructureServiceTestSuite) TestEnrichStatusWithContext() {
	cases := []struct {
		name         string
		result       *models.ExecutionResult
		wantPhase    string
		wantAction   string
		wantEstimate bool
	}{
		{
			name:         "creating tables",
			result:       &models.ExecutionResult{Status: models.StatusCreatingTables},
			wantPhase:    "Table Creation",
			wantAction:   "Creating DynamoDB tables - this may take a few minutes",
			wantEstimate: true,
		},
		{
			name:         "waiting for tables",
			result:       &models.ExecutionResult{Status: models.StatusWaitingForTables},
			wantPhase:    "Table Activation",
			wantAction:   "Waiting for DynamoDB tables to become active",
			wantEstimate: true,
		},
		{
			name:         "validating",
			result:       &models.ExecutionResult{Status: models.StatusValidating},
			wantPhase:    "Validation",
			wantAction:   "Validating infrastructure configuration",
			wantEstimate: true,
		},
		{
			name:       "completed",
			result:     &models.ExecutionResult{Status: models.StatusCompleted},
			wantPhase:  "Completed",
			wantAction: "Infrastructure is ready for use",
		},
		{
			name:         "failed below retry limit",
			result:       &models.ExecutionResult{Status: models.StatusFailed, RetryCount: 1},
			wantPhase:    "Error Recovery",
			wantAction:   "Will retry automatically after backoff period",
			wantEstimate: true,
		},
		{
			name:       "failed beyond retry limit",
			result:     &models.ExecutionResult{Status: models.StatusFailed, RetryCount: 3},
			wantPhase:  "Error Recovery",
			wantAction: "Manual intervention required - max retries exceeded",
		},
		{
			name:       "retrying reports attempt number",
			result:     &models.ExecutionResult{Status: models.StatusRetrying, RetryCount: 1},
			wantPhase:  "Retry",
			wantAction: "Retrying infrastructure setup (attempt 2)",
		},
		{
			name:       "unmapped status falls back to monitoring",
			result:     &models.ExecutionResult{Status: models.StatusDeleted},
			wantPhase:  "Monitoring",
			wantAction: "Monitoring infrastructure status",
		},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.infraService.enrichStatusWithContext(tc.result)

			assert.Equal(suite.T(), tc.wantPhase, tc.result.Phase)
			assert.Equal(suite.T(), tc.wantAction, tc.result.NextAction)
			if tc.wantEstimate {
				assert.NotNil(suite.T(), tc.result.EstimatedTime)
			}
			assert.NotNil(suite.T(), tc.result.Progress)
		})
	}
}

func (suite *InfrastructureServiceTestSuite) TestCalculateProgress() {
	cases := []struct {
		status   models.WorkerStatus
		step     int
		stepName string
	}{
		{models.StatusInitializing, 1, "Initializing"},
		{models.StatusCreatingTables, 2, "Creating Tables"},
		{models.StatusRunning, 2, "Creating Tables"},
		{models.StatusWaitingForTables, 3, "Waiting for Tables"},
		{models.StatusWaitingForIndexes, 4, "Creating Indexes"},
		{models.StatusRevalidating, 5, "Validating"},
		{models.StatusCompleted, 6, "Completed"},
		{models.StatusDeleted, 1, string(models.StatusDeleted)},
	}

	for _, tc := range cases {
		suite.Run(string(tc.status), func() {
			progress := suite.infraService.calculateProgress(&models.ExecutionResult{Status: tc.status})

			assert.Equal(suite.T(), tc.step, progress.CurrentStep)
			assert.Equal(suite.T(), tc.stepName, progress.StepName)
			assert.Equal(suite.T(), len(setupSteps), progress.TotalSteps)
			assert.Equal(suite.T(), (tc.step*100)/len(setupSteps), progress.Percentage)
		})
	}
}

func (suite *InfrastructureServiceTestSuite) TestUpdateHealthIndicators() {
	cases := []struct {
		name   string
		result *models.ExecutionResult
		want   string
	}{
		{"completed success", &models.ExecutionResult{Status: models.StatusCompleted, Success: true}, "healthy"},
		{"completed with issues", &models.ExecutionResult{Status: models.StatusCompleted}, "degraded"},
		{"failed", &models.ExecutionResult{Status: models.StatusFailed}, "unhealthy"},
		{"retrying", &models.ExecutionResult{Status: models.StatusRetrying}, "degraded"},
		{"provisioning", &models.ExecutionResult{Status: models.StatusWaitingForTables}, "provisioning"},
		{"running fresh", &models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now()}, "provisioning"},
		{"running stale", &models.ExecutionResult{Status: models.StatusRunning, StartTime: time.Now().Add(-time.Hour)}, "degraded"},
		{"deleted", &models.ExecutionResult{Status: models.StatusDeleted}, "unknown"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.infraService.updateHealthIndicators(tc.result)
			assert.Equal(suite.T(), tc.want, tc.result.HealthStatus)
		})
	}
}
