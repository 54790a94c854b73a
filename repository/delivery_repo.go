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

type DeliveryRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *DeliveryRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_deliveries"
}

func (r *DeliveryRepository) CreateDelivery(ctx context.Context, delivery *models.Delivery) error {
	delivery.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if delivery.Status == "" {
		delivery.Status = models.DeliveryStatusAssigned
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "deliveryId", delivery)
}

func (r *DeliveryRepository) GetDelivery(ctx context.Context, deliveryID string) (*models.Delivery, error) {
	var deliveries []*models.Delivery
	if err := r.db.Query(ctx, r.table(), "deliveryId", deliveryID, &deliveries); err != nil {
		return nil, err
	}
	if len(deliveries) == 0 {
		return nil, fmt.Errorf("delivery %s not found", deliveryID)
	}
	return deliveries[0], nil
}

func (r *DeliveryRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.Delivery, error) {
	var deliveries []*models.Delivery
	if err := r.db.QueryByIndex(ctx, r.table(), "OrderIndex", "orderId", orderID, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *DeliveryRepository) ListByRider(ctx context.Context, riderID string) ([]*models.Delivery, error) {
	filter := expression.Name("riderId").Equal(expression.Value(riderID))

	var deliveries []*models.Delivery
	if err := r.db.ScanWithFilter(ctx, r.table(), filter, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *DeliveryRepository) UpdateStatus(ctx context.Context, deliveryID, orderID string, updates map[string]interface{}) error {
	key := map[string]string{"deliveryId": deliveryID, "orderId": orderID}
	return r.db.UpdateItem(ctx, r.table(), key, updates)
}
