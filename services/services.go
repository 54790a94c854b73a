package services

import (
	"context"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils/logger"
)

// Service bundles every business service behind one handle
type Service struct {
	Catalog        CatalogServiceInterface
	Order          OrderServiceInterface
	Inventory      InventoryServiceInterface
	Warehouse      WarehouseServiceInterface
	Logistics      LogisticsServiceInterface
	Delivery       DeliveryServiceInterface
	Supplier       SupplierServiceInterface
	Audit          AuditServiceInterface
	Journey        JourneyServiceInterface
	Simulation     SimulationServiceInterface
	User           UserServiceInterface
	Infrastructure InfrastructureServiceInterface
}

// NewService wires the repositories into the service layer
func NewService(
	ctx context.Context,
	repo *repository.Repository,
	dbClient *dal.DynamoDBClient,
	log logger.Logger,
	config *models.Config,
) *Service {
	return &Service{
		Catalog:   NewCatalogService(repo.Product, repo.Stock, repo.Audit, log),
		Order:     NewOrderService(repo.Order, repo.Product, repo.Stock, repo.Customer, repo.Discount, repo.Audit, config, log),
		Inventory: NewInventoryService(repo.Order, repo.Product, repo.Stock, repo.Audit, log),
		Warehouse: NewWarehouseService(repo.Stock, repo.Product, repo.Supplier, repo.PurchaseOrder, repo.Audit, log),
		Logistics: NewLogisticsService(repo.Order, repo.Rider, repo.Delivery, repo.Audit, config, log),
		Delivery:  NewDeliveryService(repo.Delivery, repo.Order, repo.Rider, repo.CashCollection, repo.Audit, config, log),
		Supplier:  NewSupplierService(repo.PurchaseOrder, repo.Stock, repo.Product, repo.Audit, log),
		Audit:     NewAuditService(repo.CashCollection, repo.Order, repo.Audit, config, log),
		Journey: NewJourneyService(repo.Journey, repo.Order, repo.Product, repo.Stock, repo.Rider,
			repo.CashCollection, repo.Audit, config, log),
		Simulation: NewSimulationService(repo.Order, repo.Product, repo.Stock, repo.Customer, repo.Rider,
			repo.Delivery, repo.CashCollection, repo.Audit, config, log),
		User:           NewUserService(repo.User, repo.Audit, log),
		Infrastructure: NewInfrastructureService(ctx, dbClient, log, config),
	}
}
