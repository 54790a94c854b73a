package services

import (
	"context"

	"grocerflow-backend/models"
)

// CatalogServiceInterface defines the contract for catalog management
type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, category string) ([]*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetProductAvailability(ctx context.Context, productID string) (*models.Product, []*models.StockLevel, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, actorID string) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID string, req *models.UpdateProductRequest, actorID string) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID, actorID string) error
	CreateBatch(ctx context.Context, batch *models.Batch, actorID string) error
	ListBatches(ctx context.Context, productID string) ([]*models.Batch, error)
}

// OrderServiceInterface defines the contract for the order pipeline
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, customerID string, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]*models.Order, error)
	ValidateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	ApplyPricing(ctx context.Context, order *models.Order) (*models.Order, error)
	ReserveStock(ctx context.Context, order *models.Order) (*models.Order, error)
}

// InventoryServiceInterface defines the contract for packing and stock adjustment
type InventoryServiceInterface interface {
	ListOrdersToPack(ctx context.Context) ([]*models.Order, error)
	CheckAvailability(ctx context.Context, items []models.OrderItem) ([]StockShortage, error)
	PackOrder(ctx context.Context, orderID string, req *models.PackOrderRequest, actorID string) (*models.Order, []models.PackedItem, error)
	PrepareDispatch(ctx context.Context, orderID, actorID string) (*models.Order, error)
	AdjustStock(ctx context.Context, req *models.StockAdjustmentRequest, actorID string) error
}

// WarehouseServiceInterface defines the contract for stock optimization and replenishment
type WarehouseServiceInterface interface {
	StockOptimizationReport(ctx context.Context) (*models.StockOptimizationReport, error)
	CreatePurchaseOrder(ctx context.Context, req *models.CreatePurchaseOrderRequest, actorID string) (*models.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error)
}

// LogisticsServiceInterface defines the contract for dispatch planning
type LogisticsServiceInterface interface {
	CreateRunsheets(ctx context.Context, actorID string) ([]*models.Runsheet, error)
	GenerateRoutes(ctx context.Context, req *models.GenerateRoutesRequest, actorID string) ([]*models.OptimizedRoute, error)
	AssignRider(ctx context.Context, orderID, actorID string) (*models.Delivery, error)
}

// DeliveryServiceInterface defines the contract for the rider's delivery flow
type DeliveryServiceInterface interface {
	ListRiderDeliveries(ctx context.Context, riderID string) ([]*models.Delivery, error)
	StartDelivery(ctx context.Context, deliveryID, riderID string) (*models.Delivery, error)
	CompleteDelivery(ctx context.Context, deliveryID, riderID string) (*models.Delivery, error)
	FailDelivery(ctx context.Context, deliveryID, riderID, reason string) (*models.Delivery, error)
	CollectCash(ctx context.Context, riderID string, req *models.CollectCashRequest) (*models.CashCollection, error)
}

// SupplierServiceInterface defines the contract for the supplier portal
type SupplierServiceInterface interface {
	ListPendingOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error)
	AcceptOrder(ctx context.Context, poID, supplierID string) (*models.PurchaseOrder, error)
	ShipOrder(ctx context.Context, poID, supplierID string) (*models.PurchaseOrder, error)
	ReceiveOrder(ctx context.Context, poID, actorID string) (*models.PurchaseOrder, error)
}

// AuditServiceInterface defines the contract for auditor verification runs
type AuditServiceInterface interface {
	VerifyCashCollections(ctx context.Context, actorID string) (*models.CashVerificationReport, error)
	VerifyOrders(ctx context.Context, actorID string) (*models.OrderVerificationReport, error)
	ListAuditLogs(ctx context.Context) ([]*models.AuditLog, error)
	ListEntityAuditLogs(ctx context.Context, entityID string) ([]*models.AuditLog, error)
}

// JourneyServiceInterface defines the contract for journey definitions and runs
type JourneyServiceInterface interface {
	CreateCustomerOrderJourney(ctx context.Context, actorID string) (*models.Journey, error)
	GetJourney(ctx context.Context, journeyID string) (*models.Journey, error)
	ListJourneys(ctx context.Context) ([]*models.Journey, error)
	ListStages(ctx context.Context, journeyID string) ([]*models.StageDefinition, error)
	ExecuteJourney(ctx context.Context, journeyID, actorID string) (*models.JourneyRunReport, error)
}

// SimulationServiceInterface defines the contract for fulfillment simulations
type SimulationServiceInterface interface {
	RunSingleOrder(ctx context.Context, actorID string) (*models.SimulationReport, error)
	RunMultiOrder(ctx context.Context, req *models.SimulationRequest, actorID string) (*models.SimulationReport, error)
}

// UserServiceInterface defines the contract for account management
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest, actorID string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// InfrastructureServiceInterface defines the contract for worker supervision
type InfrastructureServiceInterface interface {
	GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error)
	RestartWorker(ctx context.Context, force bool) (*models.ServiceRestartResult, error)
	IsWorkerHealthy() (bool, string, error)
	AutoRestartIfNeeded(ctx context.Context) (*models.ServiceRestartResult, error)
}
