package repository

import (
	"context"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type AuditRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *AuditRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_audit_logs"
}

// Write records one audit entry. Audit failures are logged but never
// fail the operation being audited.
func (r *AuditRepository) Write(ctx context.Context, action, entityID, actorID, actorRole, details string) {
	entry := &models.AuditLog{
		AuditID:   utils.GenerateUUID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Action:    action,
		EntityID:  entityID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Details:   details,
	}

	if err := r.db.PutItem(ctx, r.table(), entry); err != nil {
		r.logger.Errorf("Failed to write audit log %s for %s: %v", action, entityID, err)
	}
}

func (r *AuditRepository) ListAll(ctx context.Context) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog
	if err := r.db.Scan(ctx, r.table(), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityID string) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog
	if err := r.db.QueryByIndex(ctx, r.table(), "EntityIndex", "entityId", entityID, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
