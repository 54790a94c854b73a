package services

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type SupplierService struct {
	pos      repository.PurchaseOrderRepositoryInterface
	stock    repository.StockRepositoryInterface
	products repository.ProductRepositoryInterface
	audit    repository.AuditRepositoryInterface
	logger   logger.Logger
}

func NewSupplierService(
	pos repository.PurchaseOrderRepositoryInterface,
	stock repository.StockRepositoryInterface,
	products repository.ProductRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	log logger.Logger,
) *SupplierService {
	return &SupplierService{
		pos:      pos,
		stock:    stock,
		products: products,
		audit:    audit,
		logger:   log,
	}
}

func (s *SupplierService) ListPendingOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	return s.pos.ListPendingBySupplier(ctx, supplierID)
}

func (s *SupplierService) ListOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	return s.pos.ListBySupplier(ctx, supplierID)
}

// AcceptOrder moves a pending purchase order to ACCEPTED
func (s *SupplierService) AcceptOrder(ctx context.Context, poID, supplierID string) (*models.PurchaseOrder, error) {
	po, err := s.pos.GetPurchaseOrder(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.SupplierID != supplierID {
		return nil, fmt.Errorf("purchase order %s does not belong to supplier %s", poID, supplierID)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.pos.UpdateStatus(ctx, po.POID, po.SupplierID, models.POStatusPending, models.POStatusAccepted,
		map[string]interface{}{"acceptedAt": now}); err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "PO_ACCEPTED", poID, supplierID, string(models.RoleSupplier),
		fmt.Sprintf("Purchase order %s accepted by supplier %s", poID, supplierID))

	po.Status = models.POStatusAccepted
	po.AcceptedAt = now
	return po, nil
}

// ShipOrder moves an accepted purchase order to SHIPPED
func (s *SupplierService) ShipOrder(ctx context.Context, poID, supplierID string) (*models.PurchaseOrder, error) {
	po, err := s.pos.GetPurchaseOrder(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.SupplierID != supplierID {
		return nil, fmt.Errorf("purchase order %s does not belong to supplier %s", poID, supplierID)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.pos.UpdateStatus(ctx, po.POID, po.SupplierID, models.POStatusAccepted, models.POStatusShipped,
		map[string]interface{}{"shippedAt": now}); err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "PO_SHIPPED", poID, supplierID, string(models.RoleSupplier),
		"Purchase order "+poID+" shipped")

	po.Status = models.POStatusShipped
	po.ShippedAt = now
	return po, nil
}

// ReceiveOrder closes a shipped purchase order: every line raises
// stock at its location, and batch-tracked products get a batch record.
func (s *SupplierService) ReceiveOrder(ctx context.Context, poID, actorID string) (*models.PurchaseOrder, error) {
	po, err := s.pos.GetPurchaseOrder(ctx, poID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.pos.UpdateStatus(ctx, po.POID, po.SupplierID, models.POStatusShipped, models.POStatusDelivered,
		map[string]interface{}{"deliveredAt": now}); err != nil {
		return nil, err
	}

	for _, item := range po.Items {
		location := item.Location
		if location == "" {
			location = "MAIN"
		}
		if err := s.stock.AddStock(ctx, item.ProductID, location, item.Quantity); err != nil {
			// A missing stock record means this is the first receipt at
			// this location.
			stockErr := s.stock.PutStock(ctx, &models.StockLevel{
				ProductID:      item.ProductID,
				Location:       location,
				TotalStock:     item.Quantity,
				AvailableStock: item.Quantity,
			})
			if stockErr != nil {
				s.logger.Errorf("Failed to receive %d of %s at %s: %v", item.Quantity, item.ProductID, location, stockErr)
				continue
			}
		}

		if product, err := s.products.GetProduct(ctx, item.ProductID); err == nil && product.BatchRequired {
			batch := &models.Batch{
				BatchID:      utils.GenerateEntityID("BAT"),
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				CostPrice:    item.UnitCost,
				ReceivedDate: now,
				SupplierID:   po.SupplierID,
			}
			if product.ExpiryTracking {
				batch.ExpiryDate = time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")
			}
			if err := s.products.CreateBatch(ctx, batch); err != nil {
				s.logger.Warnf("Batch record not created for %s on PO %s: %v", item.ProductID, poID, err)
			}
		}
	}

	s.audit.Write(ctx, "PO_RECEIVED", poID, actorID, string(models.RoleWarehouseManager),
		fmt.Sprintf("Purchase order %s received, %d lines restocked", poID, len(po.Items)))

	po.Status = models.POStatusDelivered
	po.DeliveredAt = now
	return po, nil
}
