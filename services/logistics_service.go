package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// Route planning constants. Distances are straight-line estimates, not
// live geo-routing.
const (
	routeBaseDistanceKM  = 5.0
	routeKMPerOrder      = 2.5
	travelHoursPerKM     = 0.1
	serviceHoursPerOrder = 0.25
	riderMinRating       = 4.0
	defaultRiderCapacity = 10
)

type LogisticsService struct {
	orders     repository.OrderRepositoryInterface
	riders     repository.RiderRepositoryInterface
	deliveries repository.DeliveryRepositoryInterface
	audit      repository.AuditRepositoryInterface
	config     *models.Config
	logger     logger.Logger
}

func NewLogisticsService(
	orders repository.OrderRepositoryInterface,
	riders repository.RiderRepositoryInterface,
	deliveries repository.DeliveryRepositoryInterface,
	audit repository.AuditRepositoryInterface,
	cfg *models.Config,
	log logger.Logger,
) *LogisticsService {
	return &LogisticsService{
		orders:     orders,
		riders:     riders,
		deliveries: deliveries,
		audit:      audit,
		config:     cfg,
		logger:     log,
	}
}

func priorityRank(priority string) int {
	switch priority {
	case models.PriorityUrgent:
		return 1
	case models.PriorityHigh:
		return 2
	case models.PriorityNormal:
		return 3
	case models.PriorityLow:
		return 4
	default:
		return 3
	}
}

// selectOrders orders the dispatch queue according to the chosen
// strategy and caps it at the rider capacity.
func selectOrders(orders []*models.Order, strategy string, capacity int) []*models.Order {
	sorted := make([]*models.Order, len(orders))
	copy(sorted, orders)

	switch strategy {
	case models.RouteStrategyPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priorityRank(sorted[i].Priority) < priorityRank(sorted[j].Priority)
		})
	case models.RouteStrategyTimeWindow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ExpectedDeliveryDate < sorted[j].ExpectedDeliveryDate
		})
	case models.RouteStrategyValue:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FinalAmount > sorted[j].FinalAmount
		})
	case models.RouteStrategyCapacity:
		// keep queue order, capacity cap below does the work
	}

	if capacity <= 0 {
		capacity = defaultRiderCapacity
	}
	if len(sorted) > capacity {
		sorted = sorted[:capacity]
	}
	return sorted
}

// computeMetrics estimates distance, time and the efficiency score for
// a set of orders. Efficiency is clamped to the 1..10 band.
func computeMetrics(orders []*models.Order) models.RouteMetrics {
	count := float64(len(orders))
	totalValue := 0.0
	for _, order := range orders {
		totalValue += order.FinalAmount
	}

	distance := routeBaseDistanceKM + routeKMPerOrder*count
	travelTime := distance * travelHoursPerKM
	totalTime := travelTime + serviceHoursPerOrder*count

	ordersPerHour := 0.0
	if totalTime > 0 {
		ordersPerHour = count / totalTime
	}
	valuePerKM := 0.0
	if distance > 0 {
		valuePerKM = totalValue / distance
	}

	efficiency := ordersPerHour*2 + valuePerKM/100
	if efficiency > 10 {
		efficiency = 10
	}
	if efficiency < 1 {
		efficiency = 1
	}

	return models.RouteMetrics{
		DistanceKM:      distance,
		TravelTimeHours: travelTime,
		TotalTimeHours:  totalTime,
		OrdersPerHour:   ordersPerHour,
		ValuePerKM:      valuePerKM,
		EfficiencyScore: efficiency,
	}
}

// bestRider picks the highest rated available rider
func bestRider(riders []*models.Rider) *models.Rider {
	var best *models.Rider
	for _, rider := range riders {
		if best == nil || rider.Rating > best.Rating {
			best = rider
		}
	}
	return best
}

// CreateRunsheets groups the dispatch queue across available riders
// round-robin and records one runsheet per rider.
func (s *LogisticsService) CreateRunsheets(ctx context.Context, actorID string) ([]*models.Runsheet, error) {
	queue, err := s.orders.ListByStatus(ctx, models.OrderStatusReadyForDispatch)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, errors.New("no orders ready for dispatch")
	}

	riders, err := s.riders.ListAvailable(ctx, riderMinRating)
	if err != nil {
		return nil, err
	}
	if len(riders) == 0 {
		return nil, errors.New("no available riders")
	}

	today := time.Now().UTC().Format("2006-01-02")
	sheets := make([]*models.Runsheet, len(riders))
	for i, rider := range riders {
		sheets[i] = &models.Runsheet{
			RunsheetID: utils.GenerateRunID("RUN"),
			RiderID:    rider.RiderID,
			Date:       today,
			Status:     "PLANNED",
			CreatedBy:  actorID,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
	}

	for i, order := range queue {
		sheet := sheets[i%len(sheets)]
		sheet.OrderIDs = append(sheet.OrderIDs, order.OrderID)
		sheet.TotalOrders++
		sheet.TotalValue = round2(sheet.TotalValue + order.FinalAmount)
	}

	s.audit.Write(ctx, "RUNSHEETS_CREATED", today, actorID, string(models.RoleLogisticsManager),
		fmt.Sprintf("%d runsheets covering %d orders", len(sheets), len(queue)))
	return sheets, nil
}

// GenerateRoutes builds one optimized route per available rider using
// the requested selection strategy, assigns a rider to each and moves
// the selected orders to ROUTE_ASSIGNED.
func (s *LogisticsService) GenerateRoutes(ctx context.Context, req *models.GenerateRoutesRequest, actorID string) ([]*models.OptimizedRoute, error) {
	queue, err := s.orders.ListByStatus(ctx, models.OrderStatusReadyForDispatch)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, errors.New("no orders ready for dispatch")
	}

	riders, err := s.riders.ListAvailable(ctx, riderMinRating)
	if err != nil {
		return nil, err
	}
	if len(riders) == 0 {
		return nil, errors.New("no available riders")
	}
	sort.SliceStable(riders, func(i, j int) bool { return riders[i].Rating > riders[j].Rating })

	var routes []*models.OptimizedRoute
	remaining := queue
	for _, rider := range riders {
		if len(remaining) == 0 {
			break
		}
		capacity := rider.Capacity
		if capacity <= 0 {
			capacity = defaultRiderCapacity
		}

		selected := selectOrders(remaining, req.Strategy, capacity)
		metrics := computeMetrics(selected)

		route := &models.OptimizedRoute{
			RouteID:   utils.GenerateRunID("ROUTE") + "-" + rider.RiderID,
			RiderID:   rider.RiderID,
			RiderName: rider.Name,
			Strategy:  req.Strategy,
			Metrics:   metrics,
			Status:    "PLANNED",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}

		selectedIDs := make(map[string]bool, len(selected))
		for _, order := range selected {
			route.OrderIDs = append(route.OrderIDs, order.OrderID)
			route.TotalValue = round2(route.TotalValue + order.FinalAmount)
			selectedIDs[order.OrderID] = true

			extra := map[string]interface{}{"routeId": route.RouteID, "riderId": rider.RiderID}
			if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusRouteAssigned, extra); err != nil {
				s.logger.Errorf("Failed to attach order %s to route %s: %v", order.OrderID, route.RouteID, err)
				continue
			}

			delivery := &models.Delivery{
				DeliveryID: utils.GenerateEntityID("DEL"),
				OrderID:    order.OrderID,
				RiderID:    rider.RiderID,
				RouteID:    route.RouteID,
				Address:    order.DeliveryAddress,
				Pincode:    order.Pincode,
			}
			if err := s.deliveries.CreateDelivery(ctx, delivery); err != nil {
				s.logger.Errorf("Failed to create delivery for order %s: %v", order.OrderID, err)
			}
		}

		routes = append(routes, route)

		var rest []*models.Order
		for _, order := range remaining {
			if !selectedIDs[order.OrderID] {
				rest = append(rest, order)
			}
		}
		remaining = rest
	}

	s.audit.Write(ctx, "ROUTES_GENERATED", req.Strategy, actorID, string(models.RoleLogisticsManager),
		fmt.Sprintf("%d routes generated with %s strategy", len(routes), req.Strategy))
	return routes, nil
}

// AssignRider puts the best available rider on a single order and
// creates its delivery record.
func (s *LogisticsService) AssignRider(ctx context.Context, orderID, actorID string) (*models.Delivery, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusReadyForDispatch && order.Status != models.OrderStatusReserved {
		return nil, fmt.Errorf("order %s is not ready for rider assignment, is %s", orderID, order.Status)
	}

	available, err := s.riders.ListAvailable(ctx, riderMinRating)
	if err != nil {
		return nil, err
	}
	rider := bestRider(available)
	if rider == nil {
		return nil, errors.New("no available riders")
	}

	extra := map[string]interface{}{"riderId": rider.RiderID}
	if err := s.orders.UpdateStatus(ctx, order.OrderID, order.CustomerID, order.Status, models.OrderStatusAssignedToRider, extra); err != nil {
		return nil, err
	}

	delivery := &models.Delivery{
		DeliveryID: utils.GenerateEntityID("DEL"),
		OrderID:    order.OrderID,
		RiderID:    rider.RiderID,
		Address:    order.DeliveryAddress,
		Pincode:    order.Pincode,
	}
	if err := s.deliveries.CreateDelivery(ctx, delivery); err != nil {
		return nil, err
	}

	s.audit.Write(ctx, "RIDER_ASSIGNED", orderID, actorID, string(models.RoleLogisticsManager),
		fmt.Sprintf("Rider %s (%.1f) assigned to order %s", rider.RiderID, rider.Rating, orderID))
	return delivery, nil
}
