package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grocerflow-backend/models"
)

func validConfig() *models.WorkerConfig {
	return &models.WorkerConfig{
		CronSchedule:      "0 */10 * * * *",
		LockTimeout:       30 * time.Minute,
		MaxRetries:        5,
		RetryDelay:        2 * time.Second,
		BackoffMultiplier: 2.0,
		Environment:       "testing",
		RequiredTables:    []string{"products"},
		LockFilePath:      "/tmp/grocerflow-infrastructure-testing.lock",
		StatusFilePath:    "/tmp/grocerflow-status-testing.json",
	}
}

func TestValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.WorkerConfig)
		wantErr string
	}{
		{"valid", func(c *models.WorkerConfig) {}, ""},
		{"missing environment", func(c *models.WorkerConfig) { c.Environment = "" }, "environment is required"},
		{"zero lock timeout", func(c *models.WorkerConfig) { c.LockTimeout = 0 }, "lock timeout must be positive"},
		{"negative retries", func(c *models.WorkerConfig) { c.MaxRetries = -1 }, "max retries cannot be negative"},
		{"zero retry delay", func(c *models.WorkerConfig) { c.RetryDelay = 0 }, "retry delay must be positive"},
		{"backoff too small", func(c *models.WorkerConfig) { c.BackoffMultiplier = 1.0 }, "backoff multiplier"},
		{"no tables", func(c *models.WorkerConfig) { c.RequiredTables = nil }, "at least one required table"},
		{"missing lock path", func(c *models.WorkerConfig) { c.LockFilePath = "" }, "lock file path is required"},
		{"missing status path", func(c *models.WorkerConfig) { c.StatusFilePath = "" }, "status file path is required"},
		{"bad cron schedule", func(c *models.WorkerConfig) { c.CronSchedule = "not-a-schedule" }, "invalid cron schedule"},
		{"conflicting flags", func(c *models.WorkerConfig) {
			c.ForceRecreate = true
			c.SkipValidation = true
		}, "cannot both be true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validateWorkerConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}

	assert.Error(t, validateWorkerConfig(nil))
}

func TestGetCronScheduleForEnvironment(t *testing.T) {
	assert.Equal(t, "*/30 * * * * *", getCronScheduleForEnvironment("development"))
	assert.Equal(t, "0 */5 * * * *", getCronScheduleForEnvironment("testing"))
	assert.Equal(t, "0 */15 * * * *", getCronScheduleForEnvironment("production"))
	assert.Equal(t, "0 */10 * * * *", getCronScheduleForEnvironment("staging"))
}

func TestCalculateRetryDelay(t *testing.T) {
	w := &Worker{workerCfg: validConfig()}

	assert.Equal(t, 2*time.Second, w.calculateRetryDelay(0))
	assert.Equal(t, 4*time.Second, w.calculateRetryDelay(1))
	assert.Equal(t, 16*time.Second, w.calculateRetryDelay(3))

	// Capped at one hour
	assert.Equal(t, time.Hour, w.calculateRetryDelay(30))
}
