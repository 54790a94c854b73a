package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"grocerflow-backend/models"
)

// LockFilePath returns the per-environment lock file location.
func LockFilePath(env string) string {
	return fmt.Sprintf("/tmp/grocerflow-infrastructure-%s.lock", env)
}

// LockManager implements a file-based lease so only one worker instance
// provisions infrastructure for a given environment at a time.
type LockManager struct {
	path    string
	timeout time.Duration
	env     string
}

func NewLockManager(path string, timeout time.Duration, env string) *LockManager {
	return &LockManager{path: path, timeout: timeout, env: env}
}

// Acquire takes the lock for ownerID. A live lock held by another owner
// is an error; a lock already held by ownerID is extended instead.
func (lm *LockManager) Acquire(ownerID string) (*models.LockInfo, error) {
	existing, err := lm.read()
	if err == nil {
		if time.Now().Before(existing.ExpiresAt) {
			if existing.Owner == ownerID {
				return lm.extend(existing)
			}
			return nil, fmt.Errorf("lock held by %s until %s", existing.Owner, existing.ExpiresAt.Format(time.RFC3339))
		}
		// Expired lease, safe to take over.
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to inspect lock file: %w", err)
	}

	now := time.Now()
	lockInfo := &models.LockInfo{
		ID:          uuid.New().String(),
		Owner:       ownerID,
		AcquiredAt:  now,
		ExpiresAt:   now.Add(lm.timeout),
		Environment: lm.env,
	}
	if err := lm.write(lockInfo); err != nil {
		return nil, err
	}
	return lockInfo, nil
}

// Release removes the lock file if it is still owned by lockInfo's owner.
func (lm *LockManager) Release(lockInfo *models.LockInfo) error {
	current, err := lm.read()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lock file for release: %w", err)
	}
	if current.ID != lockInfo.ID {
		// Lock was taken over after our lease expired. Not ours to remove.
		return nil
	}
	if err := os.Remove(lm.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// ForceRelease removes the lock file regardless of owner and returns the
// evicted lease, if any. Used by the supervision API when an operator
// forces a worker restart.
func (lm *LockManager) ForceRelease() (*models.LockInfo, error) {
	// A corrupt or missing lock file reads as nil, remove it anyway.
	existing, _ := lm.read()
	if err := os.Remove(lm.path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to remove lock file: %w", err)
	}
	return existing, nil
}

// CleanupExpired deletes the lock file when its lease has lapsed.
func (lm *LockManager) CleanupExpired() error {
	existing, err := lm.read()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if time.Now().Before(existing.ExpiresAt) {
		return nil
	}
	if err := os.Remove(lm.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove expired lock: %w", err)
	}
	return nil
}

func (lm *LockManager) extend(existing *models.LockInfo) (*models.LockInfo, error) {
	extended := &models.LockInfo{
		ID:          existing.ID,
		Owner:       existing.Owner,
		AcquiredAt:  existing.AcquiredAt,
		ExpiresAt:   time.Now().Add(lm.timeout),
		Environment: lm.env,
	}
	if err := lm.write(extended); err != nil {
		return nil, err
	}
	return extended, nil
}

func (lm *LockManager) read() (*models.LockInfo, error) {
	data, err := os.ReadFile(lm.path)
	if err != nil {
		return nil, err
	}
	var lockInfo models.LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file %s: %w", lm.path, err)
	}
	return &lockInfo, nil
}

func (lm *LockManager) write(lockInfo *models.LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lock info: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lm.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	tmp := lm.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := os.Rename(tmp, lm.path); err != nil {
		return fmt.Errorf("failed to replace lock file: %w", err)
	}
	return nil
}
