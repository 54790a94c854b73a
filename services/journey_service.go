package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// journeyCustomerDiscountPct is the flat customer discount applied
// during scripted pricing runs.
const journeyCustomerDiscountPct = 10.0

type JourneyService struct {
	journeys    repository.JourneyRepositoryInterface
	orders      repository.OrderRepositoryInterface
	products    repository.ProductRepositoryInterface
	stock       repository.StockRepositoryInterface
	riders      repository.RiderRepositoryInterface
	collections repository.CashCollectionRepositoryInterface
	audit       repository.AuditRepositoryInterface
	config      *models.Config
	logger      logger.Logger
}

func NewJourneyService(
	journeys repository.JourneyRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	stock repository.StockRepositoryInterface,
	riders repository.RiderRepositoryInterface,
	collections repository.CashCollectionRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *JourneyService {
	return &JourneyService{
		journeys:    journeys,
		orders:      orders,
		products:    products,
		stock:       stock,
		riders:      riders,
		collections: collections,
		audit:       audit,
		config:      cfg,
		logger:      log,
	}
}

func stageRule(stageID, slug, title, ruleType, priority, appliesTo, naturalLanguage string, jsonRule map[string]interface{}, conditions ...models.RuleCondition) models.AIRule {
	return models.AIRule{
		RuleID:   fmt.Sprintf("rule-%s-%s-001", stageID, slug),
		Title:    title,
		Type:     ruleType,
		Priority: priority,
		Scope:    "stage",
		Context: models.RuleContext{
			AppliesTo:  appliesTo,
			Conditions: conditions,
		},
		Content: models.RuleContent{
			NaturalLanguage: naturalLanguage,
			JSONRule:        jsonRule,
		},
	}
}

// ruleJSON builds the machine-readable half of an AI rule: the
// conditions an executor checks and the actions it takes.
func ruleJSON(conditions, actions map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"conditions": conditions,
		"actions":    actions,
	}
}

func customerOrderStages() []*models.StageDefinition {
	return []*models.StageDefinition{
		{
			StageID:     "order_initiation",
			Name:        "Order Initiation",
			Description: "Customer places an order and the header record is created",
			Order:       1,
			Rules: []models.AIRule{
				stageRule("order_initiation", "cart-not-empty", "Cart must not be empty",
					models.RuleTypeValidation, "high", "order",
					"Reject orders with no line items",
					ruleJSON(
						map[string]interface{}{"items_present": true},
						map[string]interface{}{"create_order": true, "set_status": models.OrderStatusPending},
					),
					models.RuleCondition{Field: "items", Operator: "not_empty", Value: true}),
			},
		},
		{
			StageID:     "order_processing",
			Name:        "Order Processing",
			Description: "Order contents are validated against the catalog",
			Order:       2,
			Rules: []models.AIRule{
				stageRule("order_processing", "catalog-check", "Every item exists in the catalog",
					models.RuleTypeValidation, "high", "order",
					"Every ordered product must be an active catalog product",
					ruleJSON(
						map[string]interface{}{"product_exists": true, "product_active": true},
						map[string]interface{}{"validate_order": true, "set_status": models.OrderStatusValidated},
					)),
			},
		},
		{
			StageID:     "pricing_discounts",
			Name:        "Pricing and Discounts",
			Description: "Customer and bulk discounts are applied to the order total",
			Order:       3,
			Rules: []models.AIRule{
				stageRule("pricing_discounts", "customer-discount", "Customer discount",
					models.RuleTypePricing, "medium", "order",
					"Apply a 10 percent customer discount to the order subtotal",
					ruleJSON(
						map[string]interface{}{"customer_discount_active": true},
						map[string]interface{}{"apply_customer_discount": true, "discount_percentage": 10.0},
					)),
				stageRule("pricing_discounts", "bulk-discount", "Bulk order discount",
					models.RuleTypePricing, "medium", "order",
					"Orders above the bulk weight threshold get an extra 5 percent off",
					ruleJSON(
						map[string]interface{}{"total_weight_above_threshold": true},
						map[string]interface{}{"apply_bulk_discount": true, "discount_percentage": 5.0},
					),
					models.RuleCondition{Field: "totalWeightKg", Operator: "gt", Value: 25.0}),
			},
		},
		{
			StageID:     "stock_reservation",
			Name:        "Stock Reservation",
			Description: "Available stock is moved to reserved for every line",
			Order:       4,
			Rules: []models.AIRule{
				stageRule("stock_reservation", "guarded-reserve", "Reservation never oversells",
					models.RuleTypeInventory, "critical", "stock",
					"availableStock must cover the requested quantity before reserving",
					ruleJSON(
						map[string]interface{}{"stock_sufficient": "quantity <= availableStock"},
						map[string]interface{}{"reserve_stock": true, "update_available_stock": true, "update_reserved_stock": true},
					),
					models.RuleCondition{Field: "availableStock", Operator: "gte", Value: "quantity"}),
			},
		},
		{
			StageID:     "rider_assignment",
			Name:        "Rider Assignment",
			Description: "Best available rider is assigned to the order",
			Order:       5,
			Rules: []models.AIRule{
				stageRule("rider_assignment", "min-rating", "Rider minimum rating",
					models.RuleTypeAssignment, "high", "rider",
					"Only riders rated 4.0 or above are eligible",
					ruleJSON(
						map[string]interface{}{"rider_available": true, "rating_minimum": 4.0},
						map[string]interface{}{"assign_rider": true, "create_delivery": true},
					),
					models.RuleCondition{Field: "rating", Operator: "gte", Value: 4.0}),
			},
		},
		{
			StageID:     "cash_collection",
			Name:        "Cash Collection",
			Description: "Payment is collected and rider commission credited",
			Order:       6,
			Rules: []models.AIRule{
				stageRule("cash_collection", "rider-commission", "Rider commission",
					models.RuleTypePayment, "medium", "collection",
					"Rider earns a 5 percent commission on the collected amount",
					ruleJSON(
						map[string]interface{}{"payment_received": true, "amount_matches_final": true},
						map[string]interface{}{"record_payment": true, "update_rider_earnings": true, "commission_percentage": 5.0},
					)),
			},
		},
	}
}

// CreateCustomerOrderJourney materializes the standard six stage
// customer order workflow definition.
func (s *JourneyService) CreateCustomerOrderJourney(ctx context.Context, actorID string) (*models.Journey, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	journey := &models.Journey{
		JourneyID:   utils.GenerateUUID(),
		Name:        "Customer Order Journey",
		Description: "End to end customer order fulfillment from checkout to cash collection",
		Status:      models.JourneyStatusActive,
		JourneyType: "customer_order",
		Configuration: models.JourneyConfiguration{
			TimeoutMinutes:  30,
			MaxRetries:      3,
			NotifyOnFailure: true,
		},
		CurrentStageIndex: 0,
		StageSummary:      map[string]string{},
		AIConfig: models.AIConfig{
			RuleTypes: []string{
				models.RuleTypeValidation, models.RuleTypePricing, models.RuleTypeInventory,
				models.RuleTypeAssignment, models.RuleTypePayment,
			},
			PriorityLevels: []string{"critical", "high", "medium", "low"},
			Scopes:         []string{"order", "stock", "rider", "collection"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.journeys.SaveJourney(ctx, journey); err != nil {
		return nil, err
	}
	for _, stage := range customerOrderStages() {
		if err := s.journeys.SaveStage(ctx, journey.JourneyID, stage); err != nil {
			return nil, fmt.Errorf("failed to save stage %s: %w", stage.StageID, err)
		}
	}

	s.audit.Write(ctx, "JOURNEY_CREATED", journey.JourneyID, actorID, string(models.RoleSuperAdmin),
		"Customer order journey definition created")

	return journey, nil
}

func (s *JourneyService) GetJourney(ctx context.Context, journeyID string) (*models.Journey, error) {
	return s.journeys.GetJourney(ctx, journeyID)
}

func (s *JourneyService) ListJourneys(ctx context.Context) ([]*models.Journey, error) {
	return s.journeys.ListJourneys(ctx)
}

func (s *JourneyService) ListStages(ctx context.Context, journeyID string) ([]*models.StageDefinition, error) {
	return s.journeys.ListStages(ctx, journeyID)
}

// ExecuteJourney runs the customer order journey's scripted stages
// against the live tables, updating stage progress as it goes. A failed
// stage marks the journey FAILED and stops the run.
func (s *JourneyService) ExecuteJourney(ctx context.Context, journeyID, actorID string) (*models.JourneyRunReport, error) {
	journey, err := s.journeys.GetJourney(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	stages, err := s.journeys.ListStages(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("journey %s has no stages", journeyID)
	}
	if journey.StageSummary == nil {
		journey.StageSummary = map[string]string{}
	}

	report := &models.JourneyRunReport{
		JourneyID: journeyID,
		RunID:     utils.GenerateRunID("RUN"),
		Status:    models.JourneyStatusActive,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var order *models.Order
	for i, stage := range stages {
		result := models.StageResult{
			StageID:   stage.StageID,
			StartedAt: time.Now().UTC().Format(time.RFC3339),
		}

		var stageErr error
		order, stageErr = s.runStage(ctx, stage.StageID, order)
		result.FinishedAt = time.Now().UTC().Format(time.RFC3339)

		if stageErr != nil {
			result.Status = models.JourneyStatusFailed
			result.Detail = stageErr.Error()
			report.Stages = append(report.Stages, result)
			report.Status = models.JourneyStatusFailed
			report.FailedStage = stage.StageID
			journey.StageSummary[stage.StageID] = models.JourneyStatusFailed
			if err := s.journeys.UpdateProgress(ctx, journey, i, models.JourneyStatusFailed); err != nil {
				s.logger.Errorf("Failed to record journey failure for %s: %v", journeyID, err)
			}
			break
		}

		result.Status = models.JourneyStatusCompleted
		if order != nil {
			result.Detail = fmt.Sprintf("order %s now %s", order.OrderID, order.Status)
		}
		report.Stages = append(report.Stages, result)
		journey.StageSummary[stage.StageID] = models.JourneyStatusCompleted
		if err := s.journeys.UpdateProgress(ctx, journey, i+1, models.JourneyStatusActive); err != nil {
			s.logger.Errorf("Failed to record journey progress for %s: %v", journeyID, err)
		}
	}

	report.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	if report.Status != models.JourneyStatusFailed {
		report.Status = models.JourneyStatusCompleted
		if err := s.journeys.UpdateProgress(ctx, journey, len(stages), models.JourneyStatusCompleted); err != nil {
			s.logger.Errorf("Failed to complete journey %s: %v", journeyID, err)
		}
	}
	if order != nil {
		report.OrderID = order.OrderID
	}

	s.audit.Write(ctx, "JOURNEY_EXECUTED", journeyID, actorID, string(models.RoleSuperAdmin),
		fmt.Sprintf("Journey run %s finished with status %s", report.RunID, report.Status))

	return report, nil
}

func (s *JourneyService) runStage(ctx context.Context, stageID string, order *models.Order) (*models.Order, error) {
	switch stageID {
	case "order_initiation":
		return s.stageInitiateOrder(ctx)
	case "order_processing":
		return order, s.stageProcessOrder(ctx, order)
	case "pricing_discounts":
		return order, s.stagePriceOrder(ctx, order)
	case "stock_reservation":
		return order, s.stageReserveStock(ctx, order)
	case "rider_assignment":
		return order, s.stageAssignRider(ctx, order)
	case "cash_collection":
		return order, s.stageCollectCash(ctx, order)
	default:
		return order, fmt.Errorf("unknown stage %s", stageID)
	}
}

func (s *JourneyService) stageInitiateOrder(ctx context.Context) (*models.Order, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no catalog products available for a demo order")
	}

	product := products[0]
	qty := 2
	subtotal := round2(product.SellingPrice * float64(qty))
	weight := 0.0
	if strings.EqualFold(product.BaseUnit, "KG") {
		weight = float64(qty)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	order := &models.Order{
		OrderID:      utils.GenerateEntityID("ORD"),
		CustomerID:   "journey-demo-customer",
		CustomerName: "Journey Demo Customer",
		Items: []models.OrderItem{{
			ProductID:  product.ProductID,
			Name:       product.Name,
			Quantity:   qty,
			UnitPrice:  product.SellingPrice,
			FinalPrice: product.SellingPrice,
			TotalPrice: subtotal,
			WeightKG:   weight,
		}},
		DeliveryAddress: "42 Demo Street",
		Pincode:         "560001",
		Subtotal:        subtotal,
		DeliveryFee:     s.config.DeliveryFee,
		PaymentFee:      s.config.CODPaymentFee,
		TotalAmount:     round2(subtotal + s.config.DeliveryFee + s.config.CODPaymentFee),
		TotalWeightKG:   weight,
		PaymentMethod:   models.PaymentMethodCash,
		PaymentStatus:   "PENDING",
		Status:          models.OrderStatusPending,
		Priority:        models.PriorityNormal,
		OrderType:       "JOURNEY_RUN",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.orders.CreateOrder(ctx, order)
}

func (s *JourneyService) stageProcessOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("no order from the initiation stage")
	}
	for _, item := range order.Items {
		if _, err := s.products.GetProduct(ctx, item.ProductID); err != nil {
			return fmt.Errorf("order item %s failed catalog validation: %w", item.ProductID, err)
		}
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusPending, models.OrderStatusValidated, nil); err != nil {
		return err
	}
	order.Status = models.OrderStatusValidated
	return nil
}

func (s *JourneyService) stagePriceOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("no order to price")
	}

	discount := round2(order.TotalAmount * journeyCustomerDiscountPct / 100)
	final := order.TotalAmount - discount
	if order.TotalWeightKG > s.config.BulkOrderWeightKG {
		bulk := round2(final * 0.05)
		discount = round2(discount + bulk)
		final -= bulk
	}
	final = round2(final)

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusValidated, models.OrderStatusPriced, map[string]interface{}{
			"discountAmount": discount,
			"finalAmount":    final,
		}); err != nil {
		return err
	}
	order.Status = models.OrderStatusPriced
	order.DiscountAmount = discount
	order.FinalAmount = final
	return nil
}

func (s *JourneyService) stageReserveStock(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("no order to reserve stock for")
	}
	type reserved struct {
		productID, location string
		qty                 int
	}
	var done []reserved
	for _, item := range order.Items {
		location := "MAIN"
		if product, err := s.products.GetProduct(ctx, item.ProductID); err == nil && product.StorageLocation != "" {
			location = product.StorageLocation
		}
		if err := s.stock.Reserve(ctx, item.ProductID, location, item.Quantity); err != nil {
			for _, r := range done {
				if relErr := s.stock.Release(ctx, r.productID, r.location, r.qty); relErr != nil {
					s.logger.Errorf("Rollback release failed for %s: %v", r.productID, relErr)
				}
			}
			return fmt.Errorf("insufficient stock for %s: %w", item.ProductID, err)
		}
		done = append(done, reserved{item.ProductID, location, item.Quantity})
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusPriced, models.OrderStatusReserved, nil); err != nil {
		return err
	}
	order.Status = models.OrderStatusReserved
	return nil
}

func (s *JourneyService) stageAssignRider(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("no order to assign")
	}
	riders, err := s.riders.ListAvailable(ctx, riderMinRating)
	if err != nil {
		return err
	}
	if len(riders) == 0 {
		return fmt.Errorf("no available riders rated %.1f or above", riderMinRating)
	}
	best := riders[0]
	for _, r := range riders[1:] {
		if r.Rating > best.Rating {
			best = r
		}
	}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusReserved, models.OrderStatusAssignedToRider, map[string]interface{}{
			"riderId": best.RiderID,
		}); err != nil {
		return err
	}
	order.Status = models.OrderStatusAssignedToRider
	order.RiderID = best.RiderID
	return nil
}

func (s *JourneyService) stageCollectCash(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("no order to collect payment for")
	}
	collection := &models.CashCollection{
		CollectionID:    utils.GenerateRunID("CC"),
		RiderID:         order.RiderID,
		OrderID:         order.OrderID,
		AmountCollected: order.FinalAmount,
		PaymentMethod:   order.PaymentMethod,
		Status:          models.CollectionStatusCompleted,
		CollectedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.collections.CreateCollection(ctx, collection); err != nil {
		return err
	}

	commission := round2(order.FinalAmount * s.config.RiderCommissionPct / 100)
	if err := s.riders.RecordDelivery(ctx, order.RiderID, models.RiderStatusActive, commission); err != nil {
		s.logger.Warnf("Commission not credited to rider %s: %v", order.RiderID, err)
	}

	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID,
		models.OrderStatusAssignedToRider, models.OrderStatusCompleted, map[string]interface{}{
			"paymentStatus": "PAID",
		}); err != nil {
		return err
	}
	order.Status = models.OrderStatusCompleted
	return nil
}
