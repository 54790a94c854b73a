package services

import (
	"context"
	"errors"
	"strings"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type CatalogService struct {
	products repository.ProductRepositoryInterface
	stock    repository.StockRepositoryInterface
	audit    repository.AuditRepositoryInterface
	logger   logger.Logger
}

func NewCatalogService(products repository.ProductRepositoryInterface, stock repository.StockRepositoryInterface, audit repository.AuditRepositoryInterface, log logger.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		stock:    stock,
		audit:    audit,
		logger:   log,
	}
}

// ListProducts returns the catalog, optionally narrowed to a category
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]*models.Product, error) {
	if strings.TrimSpace(category) != "" {
		return s.products.ListByCategory(ctx, category)
	}
	return s.products.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product ID is required")
	}
	return s.products.GetProduct(ctx, productID)
}

// GetProductAvailability returns a product with its per-location stock
func (s *CatalogService) GetProductAvailability(ctx context.Context, productID string) (*models.Product, []*models.StockLevel, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	levels, err := s.stock.ListStockForProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return product, levels, nil
}

// CreateProduct adds a catalog entry and, when initial stock is given,
// its first stock record.
func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, actorID string) (*models.Product, error) {
	if req.SellingPrice < req.CostPrice {
		return nil, errors.New("selling price cannot be below cost price")
	}

	product := &models.Product{
		ProductID:       utils.GenerateEntityID("PRD"),
		Category:        req.Category,
		Name:            strings.TrimSpace(req.Name),
		Brand:           req.Brand,
		BaseUnit:        req.BaseUnit,
		CostPrice:       req.CostPrice,
		SellingPrice:    req.SellingPrice,
		MinStock:        req.MinStock,
		ReorderPoint:    req.ReorderPoint,
		SupplierID:      req.SupplierID,
		ExpiryTracking:  req.ExpiryTracking,
		BatchRequired:   req.BatchRequired,
		StorageLocation: req.StorageLocation,
	}

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	if req.InitialStock > 0 {
		location := req.StockLocation
		if location == "" {
			location = "MAIN"
		}
		stock := &models.StockLevel{
			ProductID:      created.ProductID,
			Location:       location,
			TotalStock:     req.InitialStock,
			AvailableStock: req.InitialStock,
		}
		if err := s.stock.PutStock(ctx, stock); err != nil {
			s.logger.Errorf("Product %s created but initial stock write failed: %v", created.ProductID, err)
			return nil, err
		}
	}

	s.audit.Write(ctx, "PRODUCT_CREATED", created.ProductID, actorID, string(models.RoleSuperAdmin),
		"Product "+created.Name+" added to catalog")
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, productID string, req *models.UpdateProductRequest, actorID string) (*models.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.CostPrice != nil {
		updates["costPrice"] = *req.CostPrice
	}
	if req.SellingPrice != nil {
		updates["sellingPrice"] = *req.SellingPrice
	}
	if req.MinStock != nil {
		updates["minStock"] = *req.MinStock
	}
	if req.ReorderPoint != nil {
		updates["reorderPoint"] = *req.ReorderPoint
	}
	if req.StorageLocation != nil {
		updates["storageLocation"] = *req.StorageLocation
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.products.UpdateProduct(ctx, product.ProductID, product.Category, updates); err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "PRODUCT_UPDATED", productID, actorID, string(models.RoleSuperAdmin), "Product fields updated")
	return s.products.GetProduct(ctx, productID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID, actorID string) error {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, product.ProductID, product.Category); err != nil {
		return err
	}
	s.audit.Write(ctx, "PRODUCT_DELETED", productID, actorID, string(models.RoleSuperAdmin), "Product removed from catalog")
	return nil
}

func (s *CatalogService) CreateBatch(ctx context.Context, batch *models.Batch, actorID string) error {
	if batch.BatchID == "" {
		batch.BatchID = utils.GenerateEntityID("BAT")
	}
	if _, err := s.products.GetProduct(ctx, batch.ProductID); err != nil {
		return err
	}
	if err := s.products.CreateBatch(ctx, batch); err != nil {
		return err
	}
	s.audit.Write(ctx, "BATCH_RECEIVED", batch.BatchID, actorID, string(models.RoleWarehouseManager),
		"Batch received for product "+batch.ProductID)
	return nil
}

func (s *CatalogService) ListBatches(ctx context.Context, productID string) ([]*models.Batch, error) {
	return s.products.ListBatchesByProduct(ctx, productID)
}
