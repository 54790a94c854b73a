package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"grocerflow-backend/models"
)

// StatusFilePath returns the per-environment status file location. The API
// service reads the same file to supervise the worker, so the path is
// derived in one place.
func StatusFilePath(env string) string {
	return fmt.Sprintf("/tmp/grocerflow-status-%s.json", env)
}

// StatusManager persists the worker's execution state to a JSON file so
// other processes (the API service, a second worker instance) can observe
// progress without talking to the worker directly.
type StatusManager struct {
	path string
}

func NewStatusManager(path string) *StatusManager {
	return &StatusManager{path: path}
}

// Load reads the current status from disk. Callers can distinguish a
// missing file with os.IsNotExist on the unwrapped error.
func (sm *StatusManager) Load() (*models.ExecutionResult, error) {
	data, err := os.ReadFile(sm.path)
	if err != nil {
		return nil, err
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status file %s: %w", sm.path, err)
	}
	return &result, nil
}

// Save writes the status atomically via a temp file rename so readers
// never observe a half-written document.
func (sm *StatusManager) Save(result *models.ExecutionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	tmp := sm.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(sm.path), 0755); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	if err := os.Rename(tmp, sm.path); err != nil {
		return fmt.Errorf("failed to replace status file: %w", err)
	}
	return nil
}

// IsCompleted reports whether a previous run finished successfully.
// A missing or unreadable status file means not completed.
func (sm *StatusManager) IsCompleted() bool {
	result, err := sm.Load()
	if err != nil {
		return false
	}
	return result.Status == models.StatusCompleted && result.Success
}

// GetRetryCount returns the retry count from the last saved status,
// zero when no status exists yet.
func (sm *StatusManager) GetRetryCount() int {
	result, err := sm.Load()
	if err != nil {
		return 0
	}
	return result.RetryCount
}

// UpdateProgress transitions the persisted status to a new phase,
// merging metadata into the existing document.
func (sm *StatusManager) UpdateProgress(status models.WorkerStatus, phase string, metadata map[string]interface{}) error {
	result := sm.loadOrNew()
	if result.Metadata == nil {
		result.Metadata = make(map[string]interface{})
	}

	result.Status = status
	result.Phase = phase
	for k, v := range metadata {
		result.Metadata[k] = v
	}
	return sm.Save(result)
}

// AddTableCreated appends a created table to the persisted status.
func (sm *StatusManager) AddTableCreated(ts models.TableStatus) error {
	result, err := sm.Load()
	if err != nil {
		return err
	}
	result.TablesCreated = append(result.TablesCreated, ts)
	return sm.Save(result)
}

// AddIndexCreated appends a created index to the persisted status.
func (sm *StatusManager) AddIndexCreated(is models.IndexStatus) error {
	result, err := sm.Load()
	if err != nil {
		return err
	}
	result.IndexesCreated = append(result.IndexesCreated, is)
	return sm.Save(result)
}

// loadOrNew returns the on-disk document or a fresh one when none exists.
func (sm *StatusManager) loadOrNew() *models.ExecutionResult {
	result, err := sm.Load()
	if err != nil {
		result = &models.ExecutionResult{
			StartTime:      time.Now(),
			TablesCreated:  make([]models.TableStatus, 0),
			IndexesCreated: make([]models.IndexStatus, 0),
			Metadata:       make(map[string]interface{}),
		}
	}
	return result
}

// MarkCompleted finalizes the status document for a successful run,
// preserving the tables and indexes recorded during execution.
func (sm *StatusManager) MarkCompleted() error {
	result := sm.loadOrNew()
	now := time.Now()
	result.Success = true
	result.Status = models.StatusCompleted
	result.Phase = "Completed"
	result.EndTime = &now
	result.Duration = now.Sub(result.StartTime)
	result.ErrorMessage = ""
	result.LastError = nil
	return sm.Save(result)
}

// MarkFailed finalizes the status document for a failed run.
func (sm *StatusManager) MarkFailed(cause error, recoverable bool) error {
	result := sm.loadOrNew()
	now := time.Now()
	result.Success = false
	result.Status = models.StatusFailed
	result.EndTime = &now
	result.Duration = now.Sub(result.StartTime)
	result.ErrorMessage = cause.Error()
	result.LastError = &models.ErrorInfo{
		Code:        "ERROR_SETUP_FAILED",
		Message:     cause.Error(),
		Timestamp:   now,
		Recoverable: recoverable,
	}
	return sm.Save(result)
}

// IncrementRetryCount bumps the persisted retry counter and returns the
// new value.
func (sm *StatusManager) IncrementRetryCount() (int, error) {
	result := sm.loadOrNew()
	result.RetryCount++
	if err := sm.Save(result); err != nil {
		return 0, err
	}
	return result.RetryCount, nil
}

// Reset removes the status file so the next run starts clean.
func (sm *StatusManager) Reset() error {
	if err := os.Remove(sm.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove status file: %w", err)
	}
	return nil
}
