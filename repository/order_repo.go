package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

type OrderRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *OrderRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_orders"
}

func (r *OrderRepository) itemsTable() string {
	return r.config.DynamoDBTablePrefix + "_order_items"
}

// orderItemRow is the standalone order_items row. Sort key packs the
// product, variant and unit ids.
type orderItemRow struct {
	OrderID string `dynamodbav:"orderId"`
	ItemKey string `dynamodbav:"itemKey"`
	models.OrderItem
}

func itemKey(item models.OrderItem) string {
	variant := item.VariantID
	if variant == "" {
		variant = "BASE"
	}
	unit := item.UnitID
	if unit == "" {
		unit = "EA"
	}
	return strings.Join([]string{item.ProductID, variant, unit}, "#")
}

// CreateOrder writes the order header and one row per line item
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := r.db.PutItemIfAbsent(ctx, r.table(), "orderId", order); err != nil {
		r.logger.Errorf("Failed to create order %s: %v", order.OrderID, err)
		return nil, err
	}

	for _, item := range order.Items {
		row := orderItemRow{OrderID: order.OrderID, ItemKey: itemKey(item), OrderItem: item}
		if err := r.db.PutItem(ctx, r.itemsTable(), row); err != nil {
			r.logger.Errorf("Failed to write item %s of order %s: %v", row.ItemKey, order.OrderID, err)
			return nil, err
		}
	}

	r.logger.Infof("Order created: %s (%d items)", order.OrderID, len(order.Items))
	return order, nil
}

// GetOrder resolves an order by id alone. The sort key is the
// customer id, so this is a single-partition query.
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var orders []*models.Order
	if err := r.db.Query(ctx, r.table(), "orderId", orderID, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return orders[0], nil
}

func (r *OrderRepository) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var rows []orderItemRow
	if err := r.db.Query(ctx, r.itemsTable(), "orderId", orderID, &rows); err != nil {
		return nil, err
	}
	items := make([]models.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.OrderItem)
	}
	return items, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	var orders []*models.Order
	if err := r.db.QueryByIndex(ctx, r.table(), "CustomerIndex", "customerId", customerID, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status string) ([]*models.Order, error) {
	var orders []*models.Order
	if err := r.db.QueryByIndex(ctx, r.table(), "StatusIndex", "status", status, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	if err := r.db.Scan(ctx, r.table(), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves the order to a new status. The previous status is
// part of the condition so stale writers lose instead of clobbering.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, customerID, fromStatus, toStatus string, extra map[string]interface{}) error {
	update := expression.Set(expression.Name("status"), expression.Value(toStatus)).
		Set(expression.Name("updatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))
	for field, value := range extra {
		update = update.Set(expression.Name(field), expression.Value(value))
	}
	cond := expression.Name("status").Equal(expression.Value(fromStatus))

	key := map[string]string{"orderId": orderID, "customerId": customerID}
	return r.db.UpdateItemConditional(ctx, r.table(), key, update, cond)
}

// UpdateFields applies an unconditional field update on the order
func (r *OrderRepository) UpdateFields(ctx context.Context, orderID, customerID string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	key := map[string]string{"orderId": orderID, "customerId": customerID}
	return r.db.UpdateItem(ctx, r.table(), key, updates)
}
