package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type WarehouseService struct {
	stock     repository.StockRepositoryInterface
	products  repository.ProductRepositoryInterface
	suppliers repository.SupplierRepositoryInterface
	pos       repository.PurchaseOrderRepositoryInterface
	audit     repository.AuditRepositoryInterface
	logger    logger.Logger
}

func NewWarehouseService(
	stock repository.StockRepositoryInterface,
	products repository.ProductRepositoryInterface,
	suppliers repository.SupplierRepositoryInterface,
	pos repository.PurchaseOrderRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	log logger.Logger,
) *WarehouseService {
	return &WarehouseService{
		stock:     stock,
		products:  products,
		suppliers: suppliers,
		pos:       pos,
		audit:     audit,
		logger:    log,
	}
}

// turnoverDays derives a stable pseudo-turnover for a product. There
// is no sales history table yet, so the estimate hashes the product id
// into the 7..45 day band the planning heuristics expect.
func turnoverDays(productID string) int {
	h := fnv.New32a()
	h.Write([]byte(productID))
	return 7 + int(h.Sum32()%39)
}

func demandForecast(productID string) models.DemandForecast {
	base := turnoverDays(productID)
	trend := "stable"
	if base < 15 {
		trend = "rising"
	} else if base > 35 {
		trend = "slow"
	}
	return models.DemandForecast{
		Next7Days:  50,
		Next30Days: 200,
		Trend:      trend,
	}
}

// StockOptimizationReport classifies every stock record as LOW,
// OVERSTOCK or OPTIMAL and attaches reorder recommendations.
func (s *WarehouseService) StockOptimizationReport(ctx context.Context) (*models.StockOptimizationReport, error) {
	levels, err := s.stock.ListAllStock(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.StockOptimizationReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, level := range levels {
		if level.TotalStock <= 0 {
			continue
		}

		availablePct := float64(level.AvailableStock) / float64(level.TotalStock) * 100

		reorderPoint, minStock := 0, 0
		costPrice := 0.0
		if product, err := s.products.GetProduct(ctx, level.ProductID); err == nil {
			reorderPoint = product.ReorderPoint
			minStock = product.MinStock
			costPrice = product.CostPrice
		}

		item := models.StockOptimizationItem{
			ProductID:           level.ProductID,
			Location:            level.Location,
			Available:           level.AvailableStock,
			Total:               level.TotalStock,
			Reserved:            level.ReservedStock,
			Damaged:             level.DamagedStock,
			AvailablePercentage: availablePct,
			ReorderPoint:        reorderPoint,
			MinStock:            minStock,
			TurnoverDays:        turnoverDays(level.ProductID),
			DemandForecast:      demandForecast(level.ProductID),
		}

		switch {
		case level.AvailableStock <= reorderPoint || availablePct < 20:
			item.Classification = models.StockClassLow
			item.RecommendedOrderQty = 2 * reorderPoint
			if minStock > item.RecommendedOrderQty {
				item.RecommendedOrderQty = minStock
			}
			report.LowStock = append(report.LowStock, item)
		case level.AvailableStock > 3*minStock && availablePct > 80:
			item.Classification = models.StockClassOverstock
			item.ReductionQty = level.AvailableStock - 2*minStock
			report.Overstock = append(report.Overstock, item)
			report.OverstockValue += costPrice * float64(item.ReductionQty)
		default:
			item.Classification = models.StockClassOptimal
			report.Optimal = append(report.Optimal, item)
		}
	}

	total := len(report.LowStock) + len(report.Overstock) + len(report.Optimal)
	if total > 0 {
		report.OptimalPct = float64(len(report.Optimal)) / float64(total) * 100
		report.LowStockPct = float64(len(report.LowStock)) / float64(total) * 100
		report.OverstockPct = float64(len(report.Overstock)) / float64(total) * 100
	}

	return report, nil
}

// CreatePurchaseOrder raises a replenishment order against a supplier
func (s *WarehouseService) CreatePurchaseOrder(ctx context.Context, req *models.CreatePurchaseOrderRequest, actorID string) (*models.PurchaseOrder, error) {
	supplier, err := s.suppliers.GetSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	var items []models.PurchaseOrderItem
	total := 0.0
	for _, line := range req.Items {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		location := line.Location
		if location == "" {
			location = product.StorageLocation
		}
		if location == "" {
			location = "MAIN"
		}
		items = append(items, models.PurchaseOrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitCost:  product.CostPrice,
			Location:  location,
		})
		total += product.CostPrice * float64(line.Quantity)
	}

	expected := req.ExpectedDeliveryDate
	if expected == "" {
		lead := supplier.LeadTimeDays
		if lead <= 0 {
			lead = 3
		}
		expected = time.Now().UTC().AddDate(0, 0, lead).Format("2006-01-02")
	}

	po := &models.PurchaseOrder{
		POID:                 utils.GenerateEntityID("PO"),
		SupplierID:           supplier.SupplierID,
		Items:                items,
		TotalAmount:          round2(total),
		ExpectedDeliveryDate: expected,
		CreatedBy:            actorID,
	}

	created, err := s.pos.CreatePurchaseOrder(ctx, po)
	if err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "PO_CREATED", created.POID, actorID, string(models.RoleWarehouseManager),
		fmt.Sprintf("Purchase order %s raised on %s for %.2f", created.POID, supplier.Name, created.TotalAmount))
	return created, nil
}

func (s *WarehouseService) ListPurchaseOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	return s.pos.ListBySupplier(ctx, supplierID)
}
