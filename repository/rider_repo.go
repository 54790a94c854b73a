package repository

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

type RiderRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewRiderRepository creates a new rider repository
func NewRiderRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *RiderRepository {
	return &RiderRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *RiderRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_riders"
}

func (r *RiderRepository) CreateRider(ctx context.Context, rider *models.Rider) error {
	now := time.Now().UTC().Format(time.RFC3339)
	rider.CreatedAt = now
	rider.UpdatedAt = now
	if rider.Status == "" {
		rider.Status = models.RiderStatusActive
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "riderId", rider)
}

func (r *RiderRepository) GetRider(ctx context.Context, riderID string) (*models.Rider, error) {
	var riders []*models.Rider
	if err := r.db.Query(ctx, r.table(), "riderId", riderID, &riders); err != nil {
		return nil, err
	}
	if len(riders) == 0 {
		return nil, fmt.Errorf("rider %s not found", riderID)
	}
	return riders[0], nil
}

func (r *RiderRepository) ListRiders(ctx context.Context) ([]*models.Rider, error) {
	var riders []*models.Rider
	if err := r.db.Scan(ctx, r.table(), &riders); err != nil {
		return nil, err
	}
	return riders, nil
}

// ListAvailable returns active riders that are free and rated at or
// above the given floor.
func (r *RiderRepository) ListAvailable(ctx context.Context, minRating float64) ([]*models.Rider, error) {
	filter := expression.Name("status").Equal(expression.Value(models.RiderStatusActive)).
		And(expression.Name("isAvailable").Equal(expression.Value(true))).
		And(expression.Name("rating").GreaterThanEqual(expression.Value(minRating)))

	var riders []*models.Rider
	if err := r.db.ScanWithFilter(ctx, r.table(), filter, &riders); err != nil {
		return nil, err
	}
	return riders, nil
}

func (r *RiderRepository) SetAvailability(ctx context.Context, riderID, status string, available bool) error {
	key := map[string]string{"riderId": riderID, "status": status}
	return r.db.UpdateItem(ctx, r.table(), key, map[string]interface{}{
		"isAvailable": available,
		"updatedAt":   time.Now().UTC().Format(time.RFC3339),
	})
}

// RecordDelivery bumps the rider's delivery counter and credits the
// commission on a completed drop.
func (r *RiderRepository) RecordDelivery(ctx context.Context, riderID, status string, earnings float64) error {
	update := expression.Set(
		expression.Name("totalDeliveries"),
		expression.Name("totalDeliveries").Plus(expression.Value(1)),
	).Set(
		expression.Name("totalEarnings"),
		expression.Name("totalEarnings").Plus(expression.Value(earnings)),
	).Set(
		expression.Name("updatedAt"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("riderId").AttributeExists()

	key := map[string]string{"riderId": riderID, "status": status}
	return r.db.UpdateItemConditional(ctx, r.table(), key, update, cond)
}

// CreditEarnings adds a commission to the rider's running earnings
// without touching the delivery counter.
func (r *RiderRepository) CreditEarnings(ctx context.Context, riderID, status string, amount float64) error {
	update := expression.Set(
		expression.Name("totalEarnings"),
		expression.Name("totalEarnings").Plus(expression.Value(amount)),
	).Set(
		expression.Name("updatedAt"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("riderId").AttributeExists()

	key := map[string]string{"riderId": riderID, "status": status}
	return r.db.UpdateItemConditional(ctx, r.table(), key, update, cond)
}
