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

type PurchaseOrderRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *PurchaseOrderRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_purchase_orders"
}

func (r *PurchaseOrderRepository) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	po.OrderDate = now
	po.UpdatedAt = now
	if po.Status == "" {
		po.Status = models.POStatusPending
	}

	if err := r.db.PutItemIfAbsent(ctx, r.table(), "poId", po); err != nil {
		r.logger.Errorf("Failed to create purchase order %s: %v", po.POID, err)
		return nil, err
	}

	r.logger.Infof("Purchase order created: %s for supplier %s", po.POID, po.SupplierID)
	return po, nil
}

func (r *PurchaseOrderRepository) GetPurchaseOrder(ctx context.Context, poID string) (*models.PurchaseOrder, error) {
	var pos []*models.PurchaseOrder
	if err := r.db.Query(ctx, r.table(), "poId", poID, &pos); err != nil {
		return nil, err
	}
	if len(pos) == 0 {
		return nil, fmt.Errorf("purchase order %s not found", poID)
	}
	return pos[0], nil
}

func (r *PurchaseOrderRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	var pos []*models.PurchaseOrder
	if err := r.db.QueryByIndex(ctx, r.table(), "SupplierIndex", "supplierId", supplierID, &pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// ListPendingBySupplier narrows the supplier's orders to those still
// waiting for acceptance.
func (r *PurchaseOrderRepository) ListPendingBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	filter := expression.Name("supplierId").Equal(expression.Value(supplierID)).
		And(expression.Name("status").Equal(expression.Value(models.POStatusPending)))

	var pos []*models.PurchaseOrder
	if err := r.db.ScanWithFilter(ctx, r.table(), filter, &pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// UpdateStatus transitions a purchase order, guarding on the expected
// current status.
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, poID, supplierID, fromStatus, toStatus string, extra map[string]interface{}) error {
	update := expression.Set(expression.Name("status"), expression.Value(toStatus)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))
	for field, value := range extra {
		update = update.Set(expression.Name(field), expression.Value(value))
	}
	cond := expression.Name("status").Equal(expression.Value(fromStatus))

	key := map[string]string{"poId": poID, "supplierId": supplierID}
	return r.db.UpdateItemConditional(ctx, r.table(), key, update, cond)
}
