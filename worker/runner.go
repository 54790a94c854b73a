package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

// Service wraps the infrastructure worker for easy integration
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger) (*Service, error) {
	w, err := NewWorker(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure worker: %w", err)
	}

	return &Service{worker: w, logger: log}, nil
}

// StartInBackground starts the infrastructure worker in the background
func (s *Service) StartInBackground() error {
	s.logger.Info("Starting infrastructure worker service in background")

	go func() {
		if err := s.worker.Start(); err != nil {
			s.logger.Errorf("Infrastructure worker failed to start: %v", err)
		}
	}()

	return nil
}

// Stop stops the infrastructure worker service
func (s *Service) Stop() error {
	s.logger.Info("Stopping infrastructure worker service")
	return s.worker.Stop()
}

// GetStatus returns the current infrastructure setup status
func (s *Service) GetStatus() (*models.ExecutionResult, error) {
	return s.worker.GetStatus()
}

// IsSetupCompleted checks if infrastructure setup is completed.
// A missing status file means the worker has not run yet.
func (s *Service) IsSetupCompleted() (bool, error) {
	status, err := s.GetStatus()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return status.Status == models.StatusCompleted && status.Success, nil
}

// GetHealthStatus returns a health status for monitoring
func (s *Service) GetHealthStatus() map[string]interface{} {
	status, err := s.GetStatus()
	if err != nil {
		return map[string]interface{}{
			"status":         "error",
			"message":        fmt.Sprintf("Failed to get status: %v", err),
			"healthy":        false,
			"worker_running": s.worker.IsRunning(),
		}
	}

	healthy := status.Status == models.StatusCompleted && status.Success

	return map[string]interface{}{
		"status":         string(status.Status),
		"healthy":        healthy,
		"worker_running": s.worker.IsRunning(),
		"tables_created": status.TablesCreated,
		"retry_count":    status.RetryCount,
		"environment":    status.Environment,
		"start_time":     status.StartTime,
		"duration":       status.Duration.String(),
		"error_message":  status.ErrorMessage,
	}
}

// ForceSetup forces infrastructure setup (admin function)
func (s *Service) ForceSetup() error {
	s.logger.Info("Forcing infrastructure setup")
	return s.worker.ForceSetup()
}

// WaitForCompletion polls until infrastructure setup completes or the
// timeout elapses. The status file not existing yet counts as pending.
func (s *Service) WaitForCompletion(timeoutSeconds int) error {
	s.logger.Infof("Waiting for infrastructure setup completion (timeout: %ds)", timeoutSeconds)

	for i := 0; i < timeoutSeconds; i++ {
		status, err := s.GetStatus()
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error checking completion status: %w", err)
		}
		if status != nil {
			if status.Status == models.StatusCompleted && status.Success {
				s.logger.Info("Infrastructure setup completed")
				return nil
			}
			if status.Status == models.StatusFailed && !s.worker.IsRunning() {
				return fmt.Errorf("infrastructure setup failed: %s", status.ErrorMessage)
			}
		}

		time.Sleep(1 * time.Second)
	}

	return fmt.Errorf("timeout waiting for infrastructure setup completion")
}

// ScheduleDelete schedules infrastructure deletion to be processed by cron job
func (s *Service) ScheduleDelete() error {
	s.logger.Warn("Scheduling infrastructure deletion")
	return s.worker.ScheduleDelete()
}
