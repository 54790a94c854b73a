package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
	"grocerflow-backend/worker"
)

// phaseGuide describes what a worker status means for API consumers:
// which setup phase it belongs to, what the worker is doing next, and a
// rough time estimate for the phase.
type phaseGuide struct {
	phase    string
	action   string
	estimate time.Duration
}

var phaseGuides = map[models.WorkerStatus]phaseGuide{
	models.StatusInitializing:      {"Initialization", "Initializing infrastructure worker", 0},
	models.StatusRunning:           {"Setup", "Infrastructure setup is in progress", 0},
	models.StatusCreatingTables:    {"Table Creation", "Creating DynamoDB tables - this may take a few minutes", 5 * time.Minute},
	models.StatusWaitingForTables:  {"Table Activation", "Waiting for DynamoDB tables to become active", 3 * time.Minute},
	models.StatusCreatingIndexes:   {"Index Creation", "Creating database indexes", 2 * time.Minute},
	models.StatusWaitingForIndexes: {"Index Activation", "Waiting for database indexes to become ready", time.Minute},
	models.StatusValidating:        {"Validation", "Validating infrastructure configuration", 30 * time.Second},
	models.StatusFixingIssues:      {"Issue Resolution", "Fixing detected infrastructure issues", 2 * time.Minute},
	models.StatusRevalidating:      {"Re-validation", "Re-validating infrastructure after fixes", time.Minute},
	models.StatusCompleted:         {"Completed", "Infrastructure is ready for use", 0},
}

// setupSteps orders the provisioning pipeline for progress reporting.
var setupSteps = []struct {
	name     string
	statuses []models.WorkerStatus
}{
	{"Initializing", []models.WorkerStatus{models.StatusInitializing}},
	{"Creating Tables", []models.WorkerStatus{models.StatusCreatingTables, models.StatusRunning}},
	{"Waiting for Tables", []models.WorkerStatus{models.StatusWaitingForTables}},
	{"Creating Indexes", []models.WorkerStatus{models.StatusCreatingIndexes, models.StatusWaitingForIndexes}},
	{"Validating", []models.WorkerStatus{models.StatusValidating, models.StatusRevalidating, models.StatusFixingIssues}},
	{"Completed", []models.WorkerStatus{models.StatusCompleted}},
}

// InfrastructureService supervises the infrastructure worker through its
// status and lock files. It never calls into the worker directly, so it
// works the same whether the worker runs in this process or another one.
type InfrastructureService struct {
	ctx      context.Context
	dbClient dal.DatabaseClientInterface
	logger   logger.Logger
	config   *models.Config
	status   *worker.StatusManager
	locks    *worker.LockManager
}

func NewInfrastructureService(ctx context.Context, dbClient dal.DatabaseClientInterface, logger logger.Logger, config *models.Config) *InfrastructureService {
	return &InfrastructureService{
		ctx:      ctx,
		dbClient: dbClient,
		logger:   logger,
		config:   config,
		status:   worker.NewStatusManager(worker.StatusFilePath(config.AppEnv)),
		locks:    worker.NewLockManager(worker.LockFilePath(config.AppEnv), 30*time.Minute, config.AppEnv),
	}
}

// readStatus loads the worker's persisted execution state.
func (s *InfrastructureService) readStatus() (*models.ExecutionResult, error) {
	result, err := s.status.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read worker status file: %w", err)
		}
		return nil, fmt.Errorf("failed to read worker status: %w", err)
	}
	return result, nil
}

// GetWorkerStatus returns the worker's execution state enriched with
// phase guidance, progress, and health indicators for API consumers.
func (s *InfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	s.logger.Debug("Getting detailed worker status")

	result, err := s.readStatus()
	if err != nil {
		return nil, err
	}

	s.enrichStatusWithContext(result)
	s.updateHealthIndicators(result)
	return result, nil
}

// enrichStatusWithContext fills in phase, next-action, estimate, and
// progress for the current status.
func (s *InfrastructureService) enrichStatusWithContext(result *models.ExecutionResult) {
	switch result.Status {
	case models.StatusFailed:
		result.Phase = "Error Recovery"
		if result.RetryCount < 3 {
			result.NextAction = "Will retry automatically after backoff period"
			result.EstimatedTime = durationPtr(time.Duration(result.RetryCount+1) * 2 * time.Minute)
		} else {
			result.NextAction = "Manual intervention required - max retries exceeded"
		}

	case models.StatusRetrying:
		result.Phase = "Retry"
		result.NextAction = fmt.Sprintf("Retrying infrastructure setup (attempt %d)", result.RetryCount+1)

	default:
		guide, ok := phaseGuides[result.Status]
		if !ok {
			result.Phase = "Monitoring"
			result.NextAction = "Monitoring infrastructure status"
			break
		}
		result.Phase = guide.phase
		result.NextAction = guide.action
		if guide.estimate > 0 {
			result.EstimatedTime = durationPtr(guide.estimate)
		}
	}

	if result.Progress == nil {
		result.Progress = s.calculateProgress(result)
	}
}

// updateHealthIndicators classifies the execution state into a coarse
// health signal for dashboards.
func (s *InfrastructureService) updateHealthIndicators(result *models.ExecutionResult) {
	switch result.Status {
	case models.StatusCompleted:
		result.HealthStatus = "healthy"
		if !result.Success {
			result.HealthStatus = "degraded"
		}

	case models.StatusFailed:
		result.HealthStatus = "unhealthy"

	case models.StatusRetrying, models.StatusFixingIssues, models.StatusRevalidating:
		result.HealthStatus = "degraded"

	case models.StatusRunning:
		result.HealthStatus = "provisioning"
		if time.Since(result.StartTime) > maxSetupDuration {
			result.HealthStatus = "degraded"
		}

	case models.StatusInitializing, models.StatusCreatingTables, models.StatusWaitingForTables,
		models.StatusCreatingIndexes, models.StatusWaitingForIndexes, models.StatusValidating:
		result.HealthStatus = "provisioning"

	default:
		result.HealthStatus = "unknown"
	}
}

// maxSetupDuration is how long a run may stay in-flight before the
// supervisor considers it stuck.
const maxSetupDuration = 30 * time.Minute

// calculateProgress maps the current status onto the provisioning
// pipeline and reports how far along the worker is.
func (s *InfrastructureService) calculateProgress(result *models.ExecutionResult) *models.ProgressInfo {
	current := 1
	stepName := string(result.Status)

	for i, step := range setupSteps {
		for _, st := range step.statuses {
			if st == result.Status {
				current = i + 1
				stepName = step.name
			}
		}
	}

	total := len(setupSteps)
	percentage := (current * 100) / total
	if percentage > 100 {
		percentage = 100
	}

	return &models.ProgressInfo{
		CurrentStep: current,
		TotalSteps:  total,
		StepName:    stepName,
		Percentage:  percentage,
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

// RestartWorker clears the worker's lock and status so the next cron
// tick runs setup from scratch. A running worker is only interrupted
// when force is set.
func (s *InfrastructureService) RestartWorker(ctx context.Context, force bool) (*models.ServiceRestartResult, error) {
	s.logger.Info("Restarting infrastructure worker")

	result := &models.ServiceRestartResult{
		ServiceName: "infrastructure-worker",
		StartTime:   time.Now(),
		Status:      "in_progress",
	}

	current, err := s.readStatus()
	if err != nil {
		s.logger.Warn("Could not get current worker status, proceeding with restart", err)
	}

	if !force && current != nil && current.Status == models.StatusRunning {
		result.Status = "failed"
		result.Error = "Worker is currently running. Use force=true to restart anyway"
		result.EndTime = time.Now()
		return result, fmt.Errorf("worker is running")
	}

	if evicted, err := s.locks.ForceRelease(); err != nil {
		s.logger.Warn("Failed to release worker lock", err)
	} else if evicted != nil {
		s.logger.Warnf("Evicted worker lease held by %s", evicted.Owner)
	}

	if err := s.status.Reset(); err != nil {
		s.logger.Warn("Failed to reset worker status", err)
	}

	if err := s.primeWorkerStatus(); err != nil {
		result.Status = "failed"
		result.Error = err.Error()
		result.EndTime = time.Now()
		return result, err
	}

	result.Status = "completed"
	result.EndTime = time.Now()
	result.Output = "Worker restart initiated successfully"

	s.logger.Info("Infrastructure worker restart completed")
	return result, nil
}

// primeWorkerStatus seeds a fresh running status document. The worker
// picks it up on its next scheduled run and re-executes setup.
func (s *InfrastructureService) primeWorkerStatus() error {
	initial := &models.ExecutionResult{
		StartTime:      time.Now(),
		Status:         models.StatusRunning,
		Environment:    s.config.AppEnv,
		TablesCreated:  make([]models.TableStatus, 0),
		IndexesCreated: make([]models.IndexStatus, 0),
		Metadata:       make(map[string]interface{}),
	}
	if err := s.status.Save(initial); err != nil {
		return fmt.Errorf("failed to prime worker status: %w", err)
	}

	s.logger.Info("Worker process restart initiated")
	return nil
}

// IsWorkerHealthy reports whether the worker is making progress, with a
// human-readable reason.
func (s *InfrastructureService) IsWorkerHealthy() (bool, string, error) {
	status, err := s.readStatus()
	if err != nil {
		return false, "Cannot read worker status", err
	}

	switch status.Status {
	case models.StatusCompleted:
		if status.Success {
			return true, "Worker completed successfully", nil
		}
		return false, "Worker completed with errors", nil

	case models.StatusRunning:
		if time.Since(status.StartTime) > maxSetupDuration {
			return false, "Worker running too long", nil
		}
		return true, "Worker is running normally", nil

	case models.StatusFailed:
		return false, fmt.Sprintf("Worker failed: %s", status.ErrorMessage), nil

	case models.StatusRetrying:
		if status.RetryCount > 5 {
			return false, "Worker stuck in retry loop", nil
		}
		return false, "Worker is retrying after failure", nil

	default:
		return false, "Worker status unknown", nil
	}
}

// AutoRestartIfNeeded force-restarts the worker when it is unhealthy.
func (s *InfrastructureService) AutoRestartIfNeeded(ctx context.Context) (*models.ServiceRestartResult, error) {
	healthy, reason, err := s.IsWorkerHealthy()
	if err != nil {
		return nil, fmt.Errorf("failed to check worker health: %w", err)
	}

	if healthy {
		now := time.Now()
		return &models.ServiceRestartResult{
			ServiceName: "infrastructure-worker",
			Status:      "not_needed",
			StartTime:   now,
			EndTime:     now,
			Output:      "Worker is healthy, no restart needed",
		}, nil
	}

	s.logger.Warnf("Worker is unhealthy (%s), initiating auto-restart", reason)
	return s.RestartWorker(ctx, true)
}
