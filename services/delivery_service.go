package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type DeliveryService struct {
	deliveries  repository.DeliveryRepositoryInterface
	orders      repository.OrderRepositoryInterface
	riders      repository.RiderRepositoryInterface
	collections repository.CashCollectionRepositoryInterface
	audit       repository.AuditRepositoryInterface
	config      *models.Config
	logger      logger.Logger
}

func NewDeliveryService(
	deliveries repository.DeliveryRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	riders repository.RiderRepositoryInterface,
	collections repository.CashCollectionRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveries:  deliveries,
		orders:      orders,
		riders:      riders,
		collections: collections,
		audit:       audit,
		config:      cfg,
		logger:      log,
	}
}

func (s *DeliveryService) ListRiderDeliveries(ctx context.Context, riderID string) ([]*models.Delivery, error) {
	return s.deliveries.ListByRider(ctx, riderID)
}

// StartDelivery marks an assigned delivery in transit and flips the
// order out for delivery.
func (s *DeliveryService) StartDelivery(ctx context.Context, deliveryID, riderID string) (*models.Delivery, error) {
	delivery, err := s.deliveries.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.RiderID != riderID {
		return nil, errors.New("delivery is assigned to another rider")
	}
	if delivery.Status != models.DeliveryStatusAssigned {
		return nil, fmt.Errorf("delivery %s cannot start from status %s", deliveryID, delivery.Status)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.deliveries.UpdateStatus(ctx, delivery.DeliveryID, delivery.OrderID, map[string]interface{}{
		"status":    models.DeliveryStatusInTransit,
		"startedAt": now,
	}); err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, delivery.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusOutForDelivery, nil); err != nil {
		s.logger.Warnf("Delivery %s started but order %s not updated: %v", deliveryID, order.OrderID, err)
	}

	delivery.Status = models.DeliveryStatusInTransit
	delivery.StartedAt = now
	return delivery, nil
}

// CompleteDelivery closes out the drop: delivery COMPLETED, order
// DELIVERED, rider delivery count bumped.
func (s *DeliveryService) CompleteDelivery(ctx context.Context, deliveryID, riderID string) (*models.Delivery, error) {
	delivery, err := s.deliveries.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.RiderID != riderID {
		return nil, errors.New("delivery is assigned to another rider")
	}
	if delivery.Status != models.DeliveryStatusInTransit && delivery.Status != models.DeliveryStatusAssigned {
		return nil, fmt.Errorf("delivery %s cannot complete from status %s", deliveryID, delivery.Status)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.deliveries.UpdateStatus(ctx, delivery.DeliveryID, delivery.OrderID, map[string]interface{}{
		"status":      models.DeliveryStatusCompleted,
		"completedAt": now,
	}); err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, delivery.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusDelivered,
		map[string]interface{}{"deliveredAt": now}); err != nil {
		return nil, err
	}

	// The commission is credited at cash collection, not here.
	rider, err := s.riders.GetRider(ctx, riderID)
	if err == nil {
		if err := s.riders.RecordDelivery(ctx, rider.RiderID, rider.Status, 0); err != nil {
			s.logger.Warnf("Rider %s stats not updated after delivery %s: %v", riderID, deliveryID, err)
		}
	}

	s.audit.Write(ctx, "ORDER_DELIVERED", order.OrderID, riderID, string(models.RoleDeliveryPersonnel),
		fmt.Sprintf("Order %s delivered by %s", order.OrderID, riderID))

	delivery.Status = models.DeliveryStatusCompleted
	delivery.CompletedAt = now
	return delivery, nil
}

// FailDelivery records a failed drop with its reason
func (s *DeliveryService) FailDelivery(ctx context.Context, deliveryID, riderID, reason string) (*models.Delivery, error) {
	delivery, err := s.deliveries.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.RiderID != riderID {
		return nil, errors.New("delivery is assigned to another rider")
	}

	if err := s.deliveries.UpdateStatus(ctx, delivery.DeliveryID, delivery.OrderID, map[string]interface{}{
		"status":     models.DeliveryStatusFailed,
		"failReason": reason,
	}); err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "DELIVERY_FAILED", delivery.OrderID, riderID, string(models.RoleDeliveryPersonnel),
		"Delivery failed: "+reason)

	delivery.Status = models.DeliveryStatusFailed
	delivery.FailReason = reason
	return delivery, nil
}

// CollectCash records doorstep payment for a delivered order. The
// amount is always the order's final amount and the rider's commission
// is credited on the collected amount.
func (s *DeliveryService) CollectCash(ctx context.Context, riderID string, req *models.CollectCashRequest) (*models.CashCollection, error) {
	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, fmt.Errorf("cash can only be collected for delivered orders, order is %s", order.Status)
	}
	if order.PaymentStatus == "PAID" {
		return nil, errors.New("order is already paid")
	}

	collection := &models.CashCollection{
		CollectionID:    utils.GenerateEntityID("COL"),
		RiderID:         riderID,
		OrderID:         order.OrderID,
		AmountCollected: order.FinalAmount,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := s.collections.CreateCollection(ctx, collection); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusCompleted,
		map[string]interface{}{"paymentStatus": "PAID"}); err != nil {
		return nil, err
	}

	commission := round2(collection.AmountCollected * s.config.RiderCommissionPct / 100)
	if rider, err := s.riders.GetRider(ctx, riderID); err == nil {
		if err := s.riders.CreditEarnings(ctx, rider.RiderID, rider.Status, commission); err != nil {
			s.logger.Warnf("Commission not credited to rider %s for order %s: %v", riderID, order.OrderID, err)
		}
	}

	s.audit.Write(ctx, "CASH_COLLECTED", order.OrderID, riderID, string(models.RoleDeliveryPersonnel),
		fmt.Sprintf("Collected %.2f via %s for order %s", collection.AmountCollected, req.PaymentMethod, order.OrderID))
	return collection, nil
}
