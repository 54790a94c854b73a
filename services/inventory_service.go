package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils/logger"
)

type InventoryService struct {
	orders   repository.OrderRepositoryInterface
	products repository.ProductRepositoryInterface
	stock    repository.StockRepositoryInterface
	audit    repository.AuditRepositoryInterface
	logger   logger.Logger
}

func NewInventoryService(
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	stock repository.StockRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	log logger.Logger,
) *InventoryService {
	return &InventoryService{
		orders:   orders,
		products: products,
		stock:    stock,
		audit:    audit,
		logger:   log,
	}
}

// ListOrdersToPack returns confirmed and reserved orders waiting for
// the packing floor.
func (s *InventoryService) ListOrdersToPack(ctx context.Context) ([]*models.Order, error) {
	confirmed, err := s.orders.ListByStatus(ctx, models.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	reserved, err := s.orders.ListByStatus(ctx, models.OrderStatusReserved)
	if err != nil {
		return nil, err
	}
	return append(confirmed, reserved...), nil
}

// StockShortage describes one line that cannot be fully packed
type StockShortage struct {
	Product   string `json:"product"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
	Shortage  int    `json:"shortage"`
}

// CheckAvailability reports per-line shortages for an order's items
func (s *InventoryService) CheckAvailability(ctx context.Context, items []models.OrderItem) ([]StockShortage, error) {
	var issues []StockShortage
	for _, item := range items {
		levels, err := s.stock.ListStockForProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		available := 0
		for _, level := range levels {
			available += level.AvailableStock + level.ReservedStock
		}
		if available < item.Quantity {
			issues = append(issues, StockShortage{
				Product:   item.Name,
				Required:  item.Quantity,
				Available: available,
				Shortage:  item.Quantity - available,
			})
		}
	}
	return issues, nil
}

// PackOrder marks passed items packed, deducts their stock with
// guarded updates and moves the order to PACKED. Items that failed the
// quality check are skipped.
func (s *InventoryService) PackOrder(ctx context.Context, orderID string, req *models.PackOrderRequest, actorID string) (*models.Order, []models.PackedItem, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != models.OrderStatusConfirmed && order.Status != models.OrderStatusReserved {
		return nil, nil, fmt.Errorf("order %s cannot be packed from status %s", orderID, order.Status)
	}

	shortages, err := s.CheckAvailability(ctx, order.Items)
	if err != nil {
		return nil, nil, err
	}
	if len(shortages) > 0 && !req.AllowPartial {
		return nil, nil, fmt.Errorf("stock shortage on %d lines, partial packing not allowed", len(shortages))
	}

	reserved := order.Status == models.OrderStatusReserved
	now := time.Now().UTC().Format(time.RFC3339)

	var packed []models.PackedItem
	for _, line := range req.Items {
		if !line.QualityOK {
			s.logger.Warnf("Quality check failed for %s on order %s, item rejected", line.ProductID, orderID)
			continue
		}

		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		location := product.StorageLocation
		if location == "" {
			location = "MAIN"
		}

		if reserved {
			err = s.stock.DeductReserved(ctx, line.ProductID, location, line.Quantity)
		} else {
			err = s.stock.DeductAvailable(ctx, line.ProductID, location, line.Quantity)
		}
		if err != nil {
			if req.AllowPartial {
				s.logger.Warnf("Skipping %s on order %s: %v", line.ProductID, orderID, err)
				continue
			}
			return nil, nil, fmt.Errorf("stock deduction failed for %s: %w", line.ProductID, err)
		}

		packingTime := line.PackingTime
		if packingTime <= 0 {
			packingTime = 5
		}
		packed = append(packed, models.PackedItem{
			ProductID:   line.ProductID,
			Name:        product.Name,
			Quantity:    line.Quantity,
			PackingTime: packingTime,
			PackedBy:    actorID,
			PackedAt:    now,
		})
	}

	if len(packed) == 0 {
		return nil, nil, errors.New("no items were packed")
	}

	extra := map[string]interface{}{
		"packedAt": now,
		"packedBy": actorID,
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusPacked, extra); err != nil {
		return nil, nil, err
	}
	order.Status = models.OrderStatusPacked
	order.PackedAt = now
	order.PackedBy = actorID

	s.audit.Write(ctx, "ORDER_PACKED", orderID, actorID, string(models.RoleInventoryStaff),
		fmt.Sprintf("Order %s packed with %d items", orderID, len(packed)))
	return order, packed, nil
}

// PrepareDispatch moves a packed order onto the dispatch queue
func (s *InventoryService) PrepareDispatch(ctx context.Context, orderID, actorID string) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPacked {
		return nil, fmt.Errorf("order %s must be packed before dispatch, is %s", orderID, order.Status)
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusReadyForDispatch, nil); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusReadyForDispatch

	s.audit.Write(ctx, "ORDER_READY_FOR_DISPATCH", orderID, actorID, string(models.RoleInventoryStaff),
		"Order "+orderID+" staged for dispatch")
	return order, nil
}

// AdjustStock moves available stock into the damaged or expired
// buckets, or re-adds counted stock.
func (s *InventoryService) AdjustStock(ctx context.Context, req *models.StockAdjustmentRequest, actorID string) error {
	var err error
	switch req.Reason {
	case "DAMAGED":
		err = s.stock.MarkDamaged(ctx, req.ProductID, req.Location, req.Quantity)
	case "EXPIRED":
		err = s.stock.MarkExpired(ctx, req.ProductID, req.Location, req.Quantity)
	case "RECOUNT":
		err = s.stock.AddStock(ctx, req.ProductID, req.Location, req.Quantity)
	default:
		return fmt.Errorf("unknown adjustment reason %s", req.Reason)
	}
	if err != nil {
		return err
	}

	s.audit.Write(ctx, "STOCK_ADJUSTED", req.ProductID, actorID, string(models.RoleInventoryStaff),
		fmt.Sprintf("%s adjustment of %d at %s: %s", req.Reason, req.Quantity, req.Location, req.Notes))
	return nil
}
