package repository

import (
	"context"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

// CashCollectionRepository handles the cash_collections table
type CashCollectionRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCashCollectionRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CashCollectionRepository {
	return &CashCollectionRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CashCollectionRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_cash_collections"
}

func (r *CashCollectionRepository) CreateCollection(ctx context.Context, collection *models.CashCollection) error {
	collection.CollectedAt = time.Now().UTC().Format(time.RFC3339)
	if collection.Status == "" {
		collection.Status = models.CollectionStatusCompleted
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "collectionId", collection)
}

func (r *CashCollectionRepository) ListByRider(ctx context.Context, riderID string) ([]*models.CashCollection, error) {
	var collections []*models.CashCollection
	if err := r.db.QueryByIndex(ctx, r.table(), "RiderIndex", "riderId", riderID, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CashCollectionRepository) ListAll(ctx context.Context) ([]*models.CashCollection, error) {
	var collections []*models.CashCollection
	if err := r.db.Scan(ctx, r.table(), &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
