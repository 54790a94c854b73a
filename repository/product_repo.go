package repository

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

type ProductRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ProductRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_products"
}

func (r *ProductRepository) batchTable() string {
	return r.config.DynamoDBTablePrefix + "_batches"
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = "ACTIVE"
	}

	if err := r.db.PutItemIfAbsent(ctx, r.table(), "productId", product); err != nil {
		r.logger.Errorf("Failed to create product %s: %v", product.ProductID, err)
		return nil, err
	}

	r.logger.Infof("Product created: %s (%s)", product.ProductID, product.Name)
	return product, nil
}

// GetProduct looks a product up by its id. The sort key is the
// category, so a single-partition query is the cheapest lookup.
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var products []*models.Product
	if err := r.db.Query(ctx, r.table(), "productId", productID, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	return products[0], nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if err := r.db.Scan(ctx, r.table(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	var products []*models.Product
	if err := r.db.QueryByIndex(ctx, r.table(), "CategoryIndex", "category", category, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, productID, category string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	key := map[string]string{"productId": productID, "category": category}
	return r.db.UpdateItem(ctx, r.table(), key, updates)
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, productID, category string) error {
	key := map[string]string{"productId": productID, "category": category}
	return r.db.DeleteItem(ctx, r.table(), key)
}

func (r *ProductRepository) CreateBatch(ctx context.Context, batch *models.Batch) error {
	if batch.Status == "" {
		batch.Status = "RECEIVED"
	}
	return r.db.PutItemIfAbsent(ctx, r.batchTable(), "batchId", batch)
}

func (r *ProductRepository) ListBatchesByProduct(ctx context.Context, productID string) ([]*models.Batch, error) {
	var batches []*models.Batch
	if err := r.db.QueryByIndex(ctx, r.batchTable(), "ProductIndex", "productId", productID, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *ProductRepository) UpdateBatchStatus(ctx context.Context, batchID, productID, status string) error {
	key := map[string]string{"batchId": batchID, "productId": productID}
	return r.db.UpdateItem(ctx, r.batchTable(), key, map[string]interface{}{"status": status})
}
