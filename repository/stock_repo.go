package repository

import (
	"context"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

type StockRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *StockRepository {
	return &StockRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *StockRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_stock_levels"
}

func stockKey(productID, location string) map[string]string {
	return map[string]string{"productId": productID, "location": location}
}

func (r *StockRepository) PutStock(ctx context.Context, stock *models.StockLevel) error {
	stock.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return r.db.PutItem(ctx, r.table(), stock)
}

func (r *StockRepository) GetStock(ctx context.Context, productID, location string) (*models.StockLevel, error) {
	stock := &models.StockLevel{}
	if err := r.db.GetItem(ctx, r.table(), stockKey(productID, location), stock); err != nil {
		return nil, err
	}
	if stock.ProductID == "" {
		return nil, nil
	}
	return stock, nil
}

// ListStockForProduct returns every location's stock record for a product
func (r *StockRepository) ListStockForProduct(ctx context.Context, productID string) ([]*models.StockLevel, error) {
	var levels []*models.StockLevel
	if err := r.db.Query(ctx, r.table(), "productId", productID, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *StockRepository) ListAllStock(ctx context.Context) ([]*models.StockLevel, error) {
	var levels []*models.StockLevel
	if err := r.db.Scan(ctx, r.table(), &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

// Reserve moves quantity from available to reserved. The condition
// keeps availableStock from going negative; callers translate
// dal.ErrConditionFailed into an insufficient-stock error.
func (r *StockRepository) Reserve(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("reservedStock"),
		expression.Name("reservedStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("availableStock").GreaterThanEqual(expression.Value(qty))

	err := r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
	if err != nil && !dal.IsConditionFailed(err) {
		r.logger.Errorf("Failed to reserve %d of %s at %s: %v", qty, productID, location, err)
	}
	return err
}

// Release returns reserved quantity to available, used when an order
// is cancelled after reservation.
func (r *StockRepository) Release(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("reservedStock"),
		expression.Name("reservedStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("reservedStock").GreaterThanEqual(expression.Value(qty))

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}

// DeductReserved removes packed quantity from both reserved and total
// stock once items leave the shelf.
func (r *StockRepository) DeductReserved(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("reservedStock"),
		expression.Name("reservedStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("totalStock"),
		expression.Name("totalStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("reservedStock").GreaterThanEqual(expression.Value(qty))

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}

// DeductAvailable removes quantity straight from available and total
// stock, for unreserved packs.
func (r *StockRepository) DeductAvailable(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("totalStock"),
		expression.Name("totalStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("availableStock").GreaterThanEqual(expression.Value(qty))

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}

// AddStock raises total and available stock after an inbound receipt
func (r *StockRepository) AddStock(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("totalStock"),
		expression.Name("totalStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("productId").AttributeExists()

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}

// MarkDamaged moves quantity from available into the damaged bucket
func (r *StockRepository) MarkDamaged(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("damagedStock"),
		expression.Name("damagedStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("availableStock").GreaterThanEqual(expression.Value(qty))

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}

// MarkExpired moves quantity from available into the expired bucket
func (r *StockRepository) MarkExpired(ctx context.Context, productID, location string, qty int) error {
	update := expression.Set(
		expression.Name("availableStock"),
		expression.Name("availableStock").Minus(expression.Value(qty)),
	).Set(
		expression.Name("expiredStock"),
		expression.Name("expiredStock").Plus(expression.Value(qty)),
	).Set(
		expression.Name("lastUpdated"),
		expression.Value(time.Now().UTC().Format(time.RFC3339)),
	)
	cond := expression.Name("availableStock").GreaterThanEqual(expression.Value(qty))

	return r.db.UpdateItemConditional(ctx, r.table(), stockKey(productID, location), update, cond)
}
