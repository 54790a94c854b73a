package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// simulationDeliverySuccessRate is the fraction of simulated deliveries
// that complete instead of failing at the doorstep.
const simulationDeliverySuccessRate = 0.75

type SimulationService struct {
	orders      repository.OrderRepositoryInterface
	products    repository.ProductRepositoryInterface
	stock       repository.StockRepositoryInterface
	customers   repository.CustomerRepositoryInterface
	riders      repository.RiderRepositoryInterface
	deliveries  repository.DeliveryRepositoryInterface
	collections repository.CashCollectionRepositoryInterface
	audit       repository.AuditRepositoryInterface
	config      *models.Config
	logger      logger.Logger
	rng         *rand.Rand
}

func NewSimulationService(
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	stock repository.StockRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	riders repository.RiderRepositoryInterface,
	deliveries repository.DeliveryRepositoryInterface,
	collections repository.CashCollectionRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *SimulationService {
	return &SimulationService{
		orders:      orders,
		products:    products,
		stock:       stock,
		customers:   customers,
		riders:      riders,
		deliveries:  deliveries,
		collections: collections,
		audit:       audit,
		config:      cfg,
		logger:      log,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RunSingleOrder pushes one simulated order through the full pipeline
func (s *SimulationService) RunSingleOrder(ctx context.Context, actorID string) (*models.SimulationReport, error) {
	return s.RunMultiOrder(ctx, &models.SimulationRequest{NumOrders: 1, DetailedReport: true}, actorID)
}

// RunMultiOrder simulates N orders end to end: random carts, packing,
// rider assignment, and doorstep delivery with a realistic failure rate.
func (s *SimulationService) RunMultiOrder(ctx context.Context, req *models.SimulationRequest, actorID string) (*models.SimulationReport, error) {
	if req.NumOrders < 1 || req.NumOrders > 20 {
		return nil, fmt.Errorf("numOrders must be between 1 and 20, got %d", req.NumOrders)
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty, seed products before simulating")
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("no customers available, seed customers before simulating")
	}
	riders, err := s.riders.ListAvailable(ctx, riderMinRating)
	if err != nil {
		return nil, err
	}

	report := &models.SimulationReport{
		RunID:           utils.GenerateRunID("SIM"),
		OrdersRequested: req.NumOrders,
		StartedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	for i := 0; i < req.NumOrders; i++ {
		simOrder := s.runOrder(ctx, products, customers, riders, report)
		if req.DetailedReport {
			report.Orders = append(report.Orders, simOrder)
		}
	}

	report.TotalValue = round2(report.TotalValue)
	report.CashCollected = round2(report.CashCollected)
	report.FinishedAt = time.Now().UTC().Format(time.RFC3339)

	s.audit.Write(ctx, "SIMULATION_RUN", report.RunID, actorID, string(models.RoleSuperAdmin),
		fmt.Sprintf("Simulated %d orders, %d delivered, %d failed",
			report.OrdersCreated, report.SuccessfulDeliveries, report.FailedDeliveries))

	return report, nil
}

func (s *SimulationService) runOrder(
	ctx context.Context,
	products []*models.Product,
	customers []*models.Customer,
	riders []*models.Rider,
	report *models.SimulationReport,
) models.SimulatedOrder {
	customer := customers[s.rng.Intn(len(customers))]
	paymentMethods := []string{models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodUPI}
	payment := paymentMethods[s.rng.Intn(len(paymentMethods))]

	order := s.buildOrder(customer, products, payment)
	sim := models.SimulatedOrder{
		OrderID:       order.OrderID,
		CustomerID:    customer.CustomerID,
		CustomerName:  customer.Name,
		ItemCount:     len(order.Items),
		TotalAmount:   order.FinalAmount,
		PaymentMethod: payment,
	}

	if _, err := s.orders.CreateOrder(ctx, order); err != nil {
		sim.Status = "CREATE_FAILED"
		sim.FailureReason = err.Error()
		return sim
	}
	report.OrdersCreated++
	report.TotalValue += order.FinalAmount

	if err := s.reserveAndPack(ctx, order); err != nil {
		sim.Status = models.OrderStatusCancelled
		sim.FailureReason = err.Error()
		if cErr := s.orders.UpdateFields(ctx, order.OrderID, order.CustomerID,
			map[string]interface{}{"status": models.OrderStatusCancelled}); cErr != nil {
			s.logger.Warnf("Could not cancel simulated order %s: %v", order.OrderID, cErr)
		}
		return sim
	}
	report.OrdersPacked++

	if len(riders) == 0 {
		sim.Status = models.OrderStatusPacked
		sim.FailureReason = "no available riders"
		return sim
	}
	rider := riders[s.rng.Intn(len(riders))]
	sim.RiderID = rider.RiderID

	delivery := &models.Delivery{
		DeliveryID: utils.GenerateEntityID("DEL"),
		OrderID:    order.OrderID,
		RiderID:    rider.RiderID,
		Address:    order.DeliveryAddress,
		Pincode:    order.Pincode,
		Status:     models.DeliveryStatusAssigned,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.deliveries.CreateDelivery(ctx, delivery); err != nil {
		s.logger.Warnf("Simulated delivery record not created for %s: %v", order.OrderID, err)
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusPacked, models.OrderStatusOutForDelivery,
		map[string]interface{}{"riderId": rider.RiderID}); err != nil {
		sim.Status = models.OrderStatusPacked
		sim.FailureReason = err.Error()
		return sim
	}

	if s.rng.Float64() < simulationDeliverySuccessRate {
		s.completeDelivery(ctx, order, delivery, rider, report)
		sim.Status = models.OrderStatusDelivered
	} else {
		s.failDelivery(ctx, order, delivery)
		sim.Status = "DELIVERY_FAILED"
		sim.FailureReason = "customer unavailable"
		report.FailedDeliveries++
	}
	return sim
}

// buildOrder assembles a random cart of 1-4 products with quantity 1-3
func (s *SimulationService) buildOrder(customer *models.Customer, products []*models.Product, payment string) *models.Order {
	cartSize := 1 + s.rng.Intn(4)
	if cartSize > len(products) {
		cartSize = len(products)
	}
	picked := s.rng.Perm(len(products))[:cartSize]

	var items []models.OrderItem
	var subtotal, totalWeight float64
	for _, idx := range picked {
		product := products[idx]
		qty := 1 + s.rng.Intn(3)
		lineTotal := round2(product.SellingPrice * float64(qty))
		weight := 0.0
		if strings.EqualFold(product.BaseUnit, "KG") {
			weight = float64(qty)
		}
		items = append(items, models.OrderItem{
			ProductID:  product.ProductID,
			Name:       product.Name,
			Quantity:   qty,
			UnitPrice:  product.SellingPrice,
			FinalPrice: product.SellingPrice,
			TotalPrice: lineTotal,
			WeightKG:   weight,
		})
		subtotal += lineTotal
		totalWeight += weight
	}

	paymentFee := 0.0
	if payment == models.PaymentMethodCash {
		paymentFee = s.config.CODPaymentFee
	}
	total := round2(subtotal + s.config.DeliveryFee + paymentFee)
	now := time.Now().UTC().Format(time.RFC3339)

	return &models.Order{
		OrderID:         utils.GenerateEntityID("ORD"),
		CustomerID:      customer.CustomerID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		Items:           items,
		DeliveryAddress: customer.Address,
		Pincode:         customer.Pincode,
		Subtotal:        round2(subtotal),
		DeliveryFee:     s.config.DeliveryFee,
		PaymentFee:      paymentFee,
		TotalAmount:     total,
		FinalAmount:     total,
		TotalWeightKG:   totalWeight,
		PaymentMethod:   payment,
		PaymentStatus:   "PENDING",
		Status:          models.OrderStatusConfirmed,
		Priority:        models.PriorityNormal,
		OrderType:       "SIMULATION",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *SimulationService) reserveAndPack(ctx context.Context, order *models.Order) error {
	type reservation struct {
		productID string
		location  string
		qty       int
	}
	var reserved []reservation

	for _, item := range order.Items {
		location := "MAIN"
		if product, err := s.products.GetProduct(ctx, item.ProductID); err == nil && product.StorageLocation != "" {
			location = product.StorageLocation
		}
		if err := s.stock.Reserve(ctx, item.ProductID, location, item.Quantity); err != nil {
			for _, r := range reserved {
				if relErr := s.stock.Release(ctx, r.productID, r.location, r.qty); relErr != nil {
					s.logger.Errorf("Rollback release failed for %s: %v", r.productID, relErr)
				}
			}
			return fmt.Errorf("insufficient stock for %s: %w", item.ProductID, err)
		}
		reserved = append(reserved, reservation{item.ProductID, location, item.Quantity})
	}

	for _, r := range reserved {
		if err := s.stock.DeductReserved(ctx, r.productID, r.location, r.qty); err != nil {
			s.logger.Warnf("Reserved stock not deducted for %s: %v", r.productID, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusConfirmed, models.OrderStatusPacked,
		map[string]interface{}{"packedAt": now, "packedBy": "simulation"})
}

func (s *SimulationService) completeDelivery(
	ctx context.Context,
	order *models.Order,
	delivery *models.Delivery,
	rider *models.Rider,
	report *models.SimulationReport,
) {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.deliveries.UpdateStatus(ctx, delivery.DeliveryID, order.OrderID,
		map[string]interface{}{"status": models.DeliveryStatusCompleted, "completedAt": now}); err != nil {
		s.logger.Warnf("Simulated delivery %s not completed: %v", delivery.DeliveryID, err)
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusOutForDelivery, models.OrderStatusDelivered,
		map[string]interface{}{"deliveredAt": now, "paymentStatus": "PAID"}); err != nil {
		s.logger.Warnf("Simulated order %s not marked delivered: %v", order.OrderID, err)
		return
	}
	report.SuccessfulDeliveries++

	collection := &models.CashCollection{
		CollectionID:    utils.GenerateEntityID("COL"),
		RiderID:         rider.RiderID,
		OrderID:         order.OrderID,
		AmountCollected: order.FinalAmount,
		PaymentMethod:   order.PaymentMethod,
		Status:          models.CollectionStatusCompleted,
		CollectedAt:     now,
	}
	if err := s.collections.CreateCollection(ctx, collection); err != nil {
		s.logger.Warnf("Simulated collection not recorded for %s: %v", order.OrderID, err)
	} else {
		report.CashCollected += order.FinalAmount
	}

	commission := round2(order.FinalAmount * s.config.RiderCommissionPct / 100)
	if err := s.riders.RecordDelivery(ctx, rider.RiderID, models.RiderStatusActive, commission); err != nil {
		s.logger.Warnf("Commission not credited to rider %s: %v", rider.RiderID, err)
	}
}

func (s *SimulationService) failDelivery(ctx context.Context, order *models.Order, delivery *models.Delivery) {
	if err := s.deliveries.UpdateStatus(ctx, delivery.DeliveryID, order.OrderID,
		map[string]interface{}{"status": models.DeliveryStatusFailed, "failReason": "customer unavailable"}); err != nil {
		s.logger.Warnf("Simulated delivery %s not failed: %v", delivery.DeliveryID, err)
	}
	if err := s.orders.UpdateFields(ctx, order.OrderID, order.CustomerID,
		map[string]interface{}{"status": models.OrderStatusCancelled}); err != nil {
		s.logger.Warnf("Simulated order %s not cancelled: %v", order.OrderID, err)
	}
}
