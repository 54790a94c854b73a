package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

type OrderService struct {
	orders    repository.OrderRepositoryInterface
	products  repository.ProductRepositoryInterface
	stock     repository.StockRepositoryInterface
	customers repository.CustomerRepositoryInterface
	discounts repository.DiscountRepositoryInterface
	audit     repository.AuditRepositoryInterface
	config    *models.Config
	logger    logger.Logger
}

func NewOrderService(
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	stock repository.StockRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	discounts repository.DiscountRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		stock:     stock,
		customers: customers,
		discounts: discounts,
		audit:     audit,
		config:    cfg,
		logger:    log,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlaceOrder validates the cart against the catalog, prices it and
// writes the order. The total is subtotal + delivery fee + payment fee.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID string, req *models.PlaceOrderRequest) (*models.Order, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	var subtotal, totalWeight float64
	for _, line := range req.Items {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid cart: %w", err)
		}
		if product.Status != "ACTIVE" {
			return nil, fmt.Errorf("product %s is not available", product.ProductID)
		}

		lineTotal := round2(product.SellingPrice * float64(line.Quantity))
		weight := 0.0
		if strings.EqualFold(product.BaseUnit, "KG") {
			weight = float64(line.Quantity)
		}
		items = append(items, models.OrderItem{
			ProductID:  product.ProductID,
			Name:       product.Name,
			Quantity:   line.Quantity,
			UnitPrice:  product.SellingPrice,
			FinalPrice: product.SellingPrice,
			TotalPrice: lineTotal,
			WeightKG:   weight,
		})
		subtotal += lineTotal
		totalWeight += weight
	}

	deliveryFee := s.config.DeliveryFee
	paymentFee := 0.0
	if req.PaymentMethod == models.PaymentMethodCash {
		paymentFee = s.config.CODPaymentFee
	}

	order := &models.Order{
		OrderID:         utils.GenerateEntityID("ORD"),
		CustomerID:      customer.CustomerID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		Pincode:         req.Pincode,
		SlotID:          req.SlotID,
		Subtotal:        round2(subtotal),
		DeliveryFee:     deliveryFee,
		PaymentFee:      paymentFee,
		TotalAmount:     round2(subtotal + deliveryFee + paymentFee),
		TotalWeightKG:   totalWeight,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "PENDING",
		Status:          models.OrderStatusConfirmed,
		Priority:        models.PriorityNormal,
		OrderType:       "CUSTOMER_PORTAL",
	}
	order.FinalAmount = order.TotalAmount

	if req.SlotID != "" {
		if err := s.discounts.BookSlot(ctx, req.Pincode, req.SlotID); err != nil {
			return nil, fmt.Errorf("delivery slot unavailable: %w", err)
		}
	}

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "ORDER_PLACED", created.OrderID, customerID, string(models.RoleCustomer),
		fmt.Sprintf("Order %s placed with %d items, total %.2f", created.OrderID, len(items), created.TotalAmount))
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New("order ID is required")
	}
	return s.orders.GetOrder(ctx, orderID)
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]*models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// ApplyPricing runs the discount pass on a validated order: the best
// matching catalog discount first, then the bulk discount of 5% on the
// post-discount amount for heavy orders.
func (s *OrderService) ApplyPricing(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status != models.OrderStatusValidated {
		return nil, fmt.Errorf("order %s must be validated before pricing, is %s", order.OrderID, order.Status)
	}

	active, err := s.discounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	discountAmount := 0.0
	var applied *models.Discount
	for _, d := range active {
		if order.TotalAmount < d.MinOrderAmount {
			continue
		}
		if d.UsageLimit > 0 && d.UsedCount >= d.UsageLimit {
			continue
		}
		var candidate float64
		switch d.DiscountType {
		case models.DiscountTypePercentage:
			candidate = order.TotalAmount * d.DiscountValue / 100
		case models.DiscountTypeFlat:
			candidate = d.DiscountValue
		default:
			continue
		}
		if d.MaxDiscountAmount > 0 && candidate > d.MaxDiscountAmount {
			candidate = d.MaxDiscountAmount
		}
		if candidate > discountAmount {
			discountAmount = candidate
			applied = d
		}
	}

	// Burn the usage before pricing with it. Losing the race for the
	// last use means the order prices without the discount.
	if applied != nil {
		if err := s.discounts.IncrementUsage(ctx, applied.DiscountID, applied.DiscountType); err != nil {
			s.logger.Warnf("Discount %s exhausted, pricing without it: %v", applied.DiscountID, err)
			discountAmount = 0
			applied = nil
		}
	}

	finalAmount := order.TotalAmount - discountAmount

	// Bulk orders get a further 5% off the discounted amount
	if order.TotalWeightKG > s.config.BulkOrderWeightKG {
		bulk := finalAmount * 0.05
		discountAmount += bulk
		finalAmount -= bulk
	}

	discountAmount = round2(discountAmount)
	finalAmount = round2(finalAmount)

	extra := map[string]interface{}{
		"discountAmount": discountAmount,
		"finalAmount":    finalAmount,
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusPriced, extra); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusPriced
	order.DiscountAmount = discountAmount
	order.FinalAmount = finalAmount
	return order, nil
}

// ValidateOrder checks a pending order's lines and moves it to VALIDATED
func (s *OrderService) ValidateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if len(order.Items) == 0 {
		return nil, errors.New("order has no items")
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s has non-positive quantity", item.ProductID)
		}
		if _, err := s.products.GetProduct(ctx, item.ProductID); err != nil {
			return nil, err
		}
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusValidated, nil); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusValidated
	return order, nil
}

// ReserveStock places a guarded reservation for every line of a priced
// order. A failed guard aborts with the lines already reserved released.
func (s *OrderService) ReserveStock(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status != models.OrderStatusPriced {
		return nil, fmt.Errorf("order %s must be priced before reservation, is %s", order.OrderID, order.Status)
	}

	type reserved struct {
		productID, location string
		qty                 int
	}
	var done []reserved

	for _, item := range order.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		location := product.StorageLocation
		if location == "" {
			location = "MAIN"
		}
		if err := s.stock.Reserve(ctx, item.ProductID, location, item.Quantity); err != nil {
			for _, r := range done {
				if relErr := s.stock.Release(ctx, r.productID, r.location, r.qty); relErr != nil {
					s.logger.Errorf("Failed to release %d of %s after aborted reservation: %v", r.qty, r.productID, relErr)
				}
			}
			return nil, fmt.Errorf("insufficient stock for %s: %w", item.ProductID, err)
		}
		done = append(done, reserved{item.ProductID, location, item.Quantity})
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusReserved, nil); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusReserved

	s.audit.Write(ctx, "STOCK_RESERVED", order.OrderID, "", "",
		fmt.Sprintf("Reserved stock for %d lines of order %s", len(order.Items), order.OrderID))
	return order, nil
}
