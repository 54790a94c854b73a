package repository

import (
	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

// Repository bundles every table repository behind one handle
type Repository struct {
	Product        *ProductRepository
	Stock          *StockRepository
	Order          *OrderRepository
	Customer       *CustomerRepository
	Supplier       *SupplierRepository
	PurchaseOrder  *PurchaseOrderRepository
	Rider          *RiderRepository
	Delivery       *DeliveryRepository
	CashCollection *CashCollectionRepository
	Discount       *DiscountRepository
	Journey        *JourneyRepository
	User           *UserRepository
	Audit          *AuditRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Product:        NewProductRepository(db, cfg, log),
		Stock:          NewStockRepository(db, cfg, log),
		Order:          NewOrderRepository(db, cfg, log),
		Customer:       NewCustomerRepository(db, cfg, log),
		Supplier:       NewSupplierRepository(db, cfg, log),
		PurchaseOrder:  NewPurchaseOrderRepository(db, cfg, log),
		Rider:          NewRiderRepository(db, cfg, log),
		Delivery:       NewDeliveryRepository(db, cfg, log),
		CashCollection: NewCashCollectionRepository(db, cfg, log),
		Discount:       NewDiscountRepository(db, cfg, log),
		Journey:        NewJourneyRepository(db, cfg, log),
		User:           NewUserRepository(db, cfg, log),
		Audit:          NewAuditRepository(db, cfg, log),
	}
}
