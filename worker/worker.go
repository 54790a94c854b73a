package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"grocerflow-backend/models"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// Worker provisions the DynamoDB infrastructure on a schedule, guarded by
// a file lock so concurrent instances in the same environment cooperate.
type Worker struct {
	config    *models.Config
	workerCfg *models.WorkerConfig
	logger    logger.Logger
	cronJob   *cron.Cron
	locks     *LockManager
	status    *StatusManager
	infra     *InfrastructureSetup
	ownerID   string

	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
	stopChan chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewWorker(ctx context.Context, cfg *models.Config, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Unique owner ID for this instance
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	workerCfg := &models.WorkerConfig{
		CronSchedule:      getCronScheduleForEnvironment(cfg.AppEnv),
		LockTimeout:       30 * time.Minute,
		LockRetryInterval: 5 * time.Second,
		MaxRetries:        5,
		RetryDelay:        2 * time.Second,
		BackoffMultiplier: 2.0,
		Environment:       cfg.AppEnv,
		RequiredTables: []string{
			"products", "batches", "suppliers", "customers", "riders",
			"orders", "order_items", "deliveries", "stock_levels",
			"purchase_orders", "cash_collections", "journeys", "discounts",
			"delivery_slots", "users", "audit_logs",
		},
		LockFilePath:   LockFilePath(cfg.AppEnv),
		StatusFilePath: StatusFilePath(cfg.AppEnv),
		DryRun:         os.Getenv("INFRASTRUCTURE_DRY_RUN") == "true",
		SkipValidation: os.Getenv("INFRASTRUCTURE_SKIP_VALIDATION") == "true",
		ForceRecreate:  os.Getenv("INFRASTRUCTURE_FORCE_RECREATE") == "true",
		RunOnce:        true,
	}

	log.Infof("Worker configuration: %+v", utils.PrintPrettyJSON(workerCfg))

	if err := validateWorkerConfig(workerCfg); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	infra, err := NewInfrastructureSetup(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure setup: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	return &Worker{
		config:    cfg,
		workerCfg: workerCfg,
		logger:    log,
		cronJob:   cron.New(),
		locks:     NewLockManager(workerCfg.LockFilePath, workerCfg.LockTimeout, workerCfg.Environment),
		status:    NewStatusManager(workerCfg.StatusFilePath),
		infra:     infra,
		ownerID:   ownerID,
		stopChan:  make(chan struct{}),
		ctx:       runCtx,
		cancel:    cancel,
	}, nil
}

// Start starts the infrastructure worker
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("worker is already running")
	}

	select {
	case <-w.ctx.Done():
		return fmt.Errorf("worker context is cancelled, cannot start")
	default:
	}

	w.logger.Infof("Starting infrastructure worker with schedule: %s", w.workerCfg.CronSchedule)
	w.logger.Infof("Worker ID: %s", w.ownerID)
	w.logger.Infof("RunOnce mode: %v", w.workerCfg.RunOnce)

	if w.status.IsCompleted() {
		if w.workerCfg.ForceRecreate {
			w.logger.Info("Infrastructure setup completed but ForceRecreate is enabled")
		} else {
			w.logger.Info("Infrastructure setup already completed, starting in monitoring mode")
			return w.startMonitoringMode()
		}
	}

	if w.workerCfg.RunOnce {
		w.logger.Info("Running in RunOnce mode - executing setup once and stopping")
		w.running = true
		go w.runOnceSetup()
		return nil
	}

	if err := w.cronJob.AddFunc(w.workerCfg.CronSchedule, w.executeSetupJobWithContext); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	w.cronJob.Start()
	w.running = true

	w.logger.Info("Infrastructure worker started successfully")

	// Immediate execution is best effort, skipped in development to avoid
	// racing the tight development schedule
	if w.workerCfg.Environment != "development" {
		go func() {
			w.logger.Info("Attempting immediate infrastructure setup")
			w.executeSetupJobWithContext()
		}()
	}

	return nil
}

// executeSetupJobWithContext is the context-aware cron job function
func (w *Worker) executeSetupJobWithContext() {
	ctx, cancel := context.WithTimeout(w.ctx, 15*time.Minute)
	defer cancel()

	w.executeSetupJobInternal(ctx)
}

// runOnceSetup handles RunOnce mode execution
func (w *Worker) runOnceSetup() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorf("RunOnce setup panicked: %v", r)
		}
		// Worker stops itself after a single execution
		w.Stop()
	}()

	ctx, cancel := context.WithTimeout(w.ctx, 15*time.Minute)
	defer cancel()

	w.logger.Info("Executing one-time infrastructure setup")
	w.executeSetupJobInternal(ctx)
}

// validateWorkerConfig validates the worker configuration for conflicts and errors
func validateWorkerConfig(config *models.WorkerConfig) error {
	if config == nil {
		return fmt.Errorf("worker config cannot be nil")
	}

	if config.Environment == "" {
		return fmt.Errorf("environment is required")
	}

	if config.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}

	if config.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	if config.RetryDelay <= 0 {
		return fmt.Errorf("retry delay must be positive")
	}

	if config.BackoffMultiplier <= 1.0 {
		return fmt.Errorf("backoff multiplier must be greater than 1.0")
	}

	if len(config.RequiredTables) == 0 {
		return fmt.Errorf("at least one required table must be specified")
	}

	if config.LockFilePath == "" {
		return fmt.Errorf("lock file path is required")
	}

	if config.StatusFilePath == "" {
		return fmt.Errorf("status file path is required")
	}

	if config.CronSchedule != "" {
		cronParser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := cronParser.Parse(config.CronSchedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s': %w", config.CronSchedule, err)
		}
	}

	if config.ForceRecreate && config.SkipValidation {
		return fmt.Errorf("ForceRecreate and SkipValidation cannot both be true")
	}

	return nil
}

// getCronScheduleForEnvironment returns environment-specific cron schedules
func getCronScheduleForEnvironment(env string) string {
	switch env {
	case "development":
		return "*/30 * * * * *" // Every 30 seconds for development
	case "testing":
		return "0 */5 * * * *" // Every 5 minutes for testing
	case "production":
		return "0 */15 * * * *" // Every 15 minutes for production
	default:
		return "0 */10 * * * *" // Every 10 minutes default
	}
}

// startMonitoringMode starts the worker in monitoring-only mode
func (w *Worker) startMonitoringMode() error {
	w.logger.Info("Starting infrastructure worker in monitoring mode")

	if err := w.cronJob.AddFunc("0 */10 * * * *", w.healthCheckJob); err != nil {
		return fmt.Errorf("failed to add health check job: %w", err)
	}

	w.cronJob.Start()
	w.running = true

	return nil
}

// healthCheckJob performs periodic health checks
func (w *Worker) healthCheckJob() {
	w.logger.Debug("Performing infrastructure health check")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables := w.infra.getTableDetails()
	if err := w.infra.validateInfrastructure(ctx, tables); err != nil {
		w.logger.Errorf("Infrastructure health check failed: %v", err)
		w.status.UpdateProgress(models.StatusFailed,
			fmt.Sprintf("Health check failed: %v", err),
			map[string]interface{}{"health_check_failed_at": time.Now()})
		return
	}

	w.logger.Debug("Infrastructure health check passed")
}

// GetStatus returns the current worker status
func (w *Worker) GetStatus() (*models.ExecutionResult, error) {
	return w.status.Load()
}

// IsRunning returns whether the worker is currently running
func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// ForceSetup forces a setup execution (admin use)
func (w *Worker) ForceSetup() error {
	if w.workerCfg.ForceRecreate {
		// Reset status to allow re-run
		if err := w.status.Reset(); err != nil {
			w.logger.Errorf("Failed to reset status: %v", err)
		}
	}

	go w.executeSetupJobWithContext()
	return nil
}

// executeSetupJobInternal is the core setup execution logic
func (w *Worker) executeSetupJobInternal(ctx context.Context) {
	select {
	case <-w.ctx.Done():
		w.logger.Info("Worker is stopping, skipping execution")
		return
	case <-ctx.Done():
		w.logger.Info("Context cancelled, skipping execution")
		return
	default:
	}

	// Deletion takes priority over setup
	if w.workerCfg.DeletionScheduled && w.workerCfg.DeletionRequested {
		w.logger.Info("Infrastructure deletion job triggered")
		w.executeDeletionJob(ctx)
		return
	}

	w.logger.Info("Infrastructure setup job triggered")

	if w.status.IsCompleted() && !w.workerCfg.ForceRecreate {
		w.logger.Info("Infrastructure setup already completed successfully, skipping execution")
		if !w.workerCfg.RunOnce {
			w.Stop()
		}
		return
	}

	lockInfo, err := w.acquireLockWithContext(ctx)
	if err != nil {
		w.logger.Warnf("Failed to acquire lock: %v", err)
		return
	}
	defer func() {
		if err := w.locks.Release(lockInfo); err != nil {
			w.logger.Errorf("Failed to release lock: %v", err)
		}
	}()

	w.logger.Info("Lock acquired, starting infrastructure setup")

	if err := w.executeSetupWithErrorHandling(ctx); err != nil {
		w.logger.Errorf("Infrastructure setup failed: %v", err)

		// Retry bookkeeping only matters when the cron schedule will fire again
		if !w.workerCfg.RunOnce {
			if err := w.handleSetupFailure(err); err != nil {
				w.logger.Errorf("Failed to handle setup failure: %v", err)
			}
		}
		return
	}

	w.logger.Info("🎉 Infrastructure setup completed successfully! All resources are ready.")

	if !w.workerCfg.RunOnce {
		w.Stop()
	}
}

// ScheduleDelete schedules infrastructure deletion
func (w *Worker) ScheduleDelete() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.workerCfg.DeletionScheduled {
		return fmt.Errorf("deletion already scheduled")
	}

	w.workerCfg.DeletionRequested = true
	w.workerCfg.DeletionScheduled = true

	if err := w.status.UpdateProgress(models.StatusDeletionScheduled, "Infrastructure deletion scheduled", map[string]interface{}{
		"scheduled_at":       time.Now(),
		"deletion_requested": true,
	}); err != nil {
		w.logger.Errorf("Failed to update status for deletion scheduling: %v", err)
	}

	w.logger.Warn("Infrastructure deletion has been scheduled")
	return nil
}

// executeDeletionJob executes the infrastructure deletion
func (w *Worker) executeDeletionJob(ctx context.Context) {
	w.logger.Warn("Starting infrastructure deletion process")

	lockInfo, err := w.acquireLockWithContext(ctx)
	if err != nil {
		w.logger.Warnf("Failed to acquire lock for deletion: %v", err)
		return
	}
	defer func() {
		if err := w.locks.Release(lockInfo); err != nil {
			w.logger.Errorf("Failed to release lock after deletion: %v", err)
		}
	}()

	w.logger.Warn("Lock acquired, starting infrastructure deletion")

	if err := w.status.UpdateProgress(models.StatusDeleting, "Deleting infrastructure", map[string]interface{}{
		"deletion_started_at": time.Now(),
	}); err != nil {
		w.logger.Errorf("Failed to update status to deleting: %v", err)
	}

	deletionCtx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	if err := w.infra.ExecuteDelete(deletionCtx, w.status); err != nil {
		w.logger.Errorf("Infrastructure deletion failed: %v", err)
		w.status.UpdateProgress(models.StatusDeletionFailed, fmt.Sprintf("Deletion failed: %v", err), map[string]interface{}{
			"deletion_failed_at": time.Now(),
			"error":              err.Error(),
		})
		return
	}

	if err := w.status.UpdateProgress(models.StatusDeleted, "Infrastructure successfully deleted", map[string]interface{}{
		"deletion_completed_at": time.Now(),
	}); err != nil {
		w.logger.Errorf("Failed to update status to deleted: %v", err)
	}

	w.mu.Lock()
	w.workerCfg.DeletionScheduled = false
	w.workerCfg.DeletionRequested = false
	w.mu.Unlock()

	w.logger.Warn("🗑️ Infrastructure deletion completed successfully!")

	// Nothing left to manage once the tables are gone
	w.Stop()
}

// Stop stops the infrastructure worker
func (w *Worker) Stop() error {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if !w.running {
			return
		}

		w.logger.Info("Stopping infrastructure worker service")

		if w.cancel != nil {
			w.cancel()
		}

		if w.cronJob != nil {
			w.cronJob.Stop()
			w.logger.Info("Cron jobs stopped")
		}

		w.running = false
		close(w.stopChan)

		w.logger.Info("Infrastructure worker stopped")
	})

	return nil
}

// Done returns a channel closed when the worker has stopped.
func (w *Worker) Done() <-chan struct{} {
	return w.stopChan
}

// acquireLockWithContext tries to acquire lock with context cancellation support
func (w *Worker) acquireLockWithContext(ctx context.Context) (*models.LockInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	type result struct {
		lockInfo *models.LockInfo
		err      error
	}
	resultChan := make(chan result, 1)

	go func() {
		lockInfo, err := w.locks.Acquire(w.ownerID)
		resultChan <- result{lockInfo, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("lock acquisition cancelled: %w", ctx.Err())
	case res := <-resultChan:
		return res.lockInfo, res.err
	}
}

// executeSetupWithErrorHandling executes setup and finalizes the status file
func (w *Worker) executeSetupWithErrorHandling(ctx context.Context) error {
	setupCtx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	result := &models.ExecutionResult{
		StartTime:      time.Now(),
		Status:         models.StatusRunning,
		Environment:    w.config.AppEnv,
		TablesCreated:  make([]models.TableStatus, 0),
		IndexesCreated: make([]models.IndexStatus, 0),
		RetryCount:     w.status.GetRetryCount(),
		Metadata:       make(map[string]interface{}),
	}

	if err := w.status.Save(result); err != nil {
		w.logger.Errorf("Failed to save initial status: %v", err)
	}

	if w.workerCfg.DryRun {
		w.logger.Info("Running in DRY RUN mode - no actual changes will be made")
		if err := w.status.UpdateProgress(models.StatusRunning, "Dry run", map[string]interface{}{"dry_run": true}); err != nil {
			return err
		}
		return w.status.MarkCompleted()
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("infrastructure setup panicked: %v", r)
			w.logger.Errorf("Setup panic: %v", err)
			w.status.MarkFailed(err, false)
		}
	}()

	if err := w.infra.Execute(setupCtx, w.status, w.workerCfg.SkipValidation); err != nil {
		if ferr := w.status.MarkFailed(err, true); ferr != nil {
			w.logger.Errorf("Failed to persist failure status: %v", ferr)
		}
		return err
	}

	return w.status.MarkCompleted()
}

// handleSetupFailure handles setup failures with retry logic
func (w *Worker) handleSetupFailure(setupErr error) error {
	retryCount := w.status.GetRetryCount()

	if retryCount >= w.workerCfg.MaxRetries {
		w.logger.Errorf("Maximum retries (%d) exceeded, giving up", w.workerCfg.MaxRetries)
		return w.status.MarkFailed(fmt.Errorf("max retries exceeded: %w", setupErr), false)
	}

	if _, err := w.status.IncrementRetryCount(); err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}

	retryDelay := w.calculateRetryDelay(retryCount)

	w.logger.Warnf("Setup failed (attempt %d/%d), will retry in %v: %v",
		retryCount+1, w.workerCfg.MaxRetries+1, retryDelay, setupErr)

	return w.status.UpdateProgress(models.StatusRetrying,
		fmt.Sprintf("Retrying after failure: %v", setupErr),
		map[string]interface{}{
			"next_retry_at": time.Now().Add(retryDelay),
			"last_error":    setupErr.Error(),
		})
}

// calculateRetryDelay calculates the delay for the next retry using exponential backoff
func (w *Worker) calculateRetryDelay(retryCount int) time.Duration {
	delay := float64(w.workerCfg.RetryDelay.Nanoseconds())

	for i := 0; i < retryCount; i++ {
		delay *= w.workerCfg.BackoffMultiplier
	}

	// Cap at one hour
	maxDelay := float64((1 * time.Hour).Nanoseconds())
	if delay > maxDelay {
		delay = maxDelay
	}

	return time.Duration(int64(delay))
}
