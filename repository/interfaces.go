package repository

import (
	"context"

	"grocerflow-backend/models"
)

// ProductRepositoryInterface defines the contract for the product repository
type ProductRepositoryInterface interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, productID, category string, updates map[string]interface{}) error
	DeleteProduct(ctx context.Context, productID, category string) error
	CreateBatch(ctx context.Context, batch *models.Batch) error
	ListBatchesByProduct(ctx context.Context, productID string) ([]*models.Batch, error)
	UpdateBatchStatus(ctx context.Context, batchID, productID, status string) error
}

// StockRepositoryInterface defines the contract for the stock repository
type StockRepositoryInterface interface {
	PutStock(ctx context.Context, stock *models.StockLevel) error
	GetStock(ctx context.Context, productID, location string) (*models.StockLevel, error)
	ListStockForProduct(ctx context.Context, productID string) ([]*models.StockLevel, error)
	ListAllStock(ctx context.Context) ([]*models.StockLevel, error)
	Reserve(ctx context.Context, productID, location string, qty int) error
	Release(ctx context.Context, productID, location string, qty int) error
	DeductReserved(ctx context.Context, productID, location string, qty int) error
	DeductAvailable(ctx context.Context, productID, location string, qty int) error
	AddStock(ctx context.Context, productID, location string, qty int) error
	MarkDamaged(ctx context.Context, productID, location string, qty int) error
	MarkExpired(ctx context.Context, productID, location string, qty int) error
}

// OrderRepositoryInterface defines the contract for the order repository
type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID, customerID, fromStatus, toStatus string, extra map[string]interface{}) error
	UpdateFields(ctx context.Context, orderID, customerID string, updates map[string]interface{}) error
}

// RiderRepositoryInterface defines the contract for the rider repository
type RiderRepositoryInterface interface {
	CreateRider(ctx context.Context, rider *models.Rider) error
	GetRider(ctx context.Context, riderID string) (*models.Rider, error)
	ListRiders(ctx context.Context) ([]*models.Rider, error)
	ListAvailable(ctx context.Context, minRating float64) ([]*models.Rider, error)
	SetAvailability(ctx context.Context, riderID, status string, available bool) error
	RecordDelivery(ctx context.Context, riderID, status string, earnings float64) error
	CreditEarnings(ctx context.Context, riderID, status string, amount float64) error
}

// DeliveryRepositoryInterface defines the contract for the delivery repository
type DeliveryRepositoryInterface interface {
	CreateDelivery(ctx context.Context, delivery *models.Delivery) error
	GetDelivery(ctx context.Context, deliveryID string) (*models.Delivery, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Delivery, error)
	ListByRider(ctx context.Context, riderID string) ([]*models.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID, orderID string, updates map[string]interface{}) error
}

// PurchaseOrderRepositoryInterface defines the contract for the purchase order repository
type PurchaseOrderRepositoryInterface interface {
	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, poID string) (*models.PurchaseOrder, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error)
	ListPendingBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, poID, supplierID, fromStatus, toStatus string, extra map[string]interface{}) error
}

// CashCollectionRepositoryInterface defines the contract for the cash collection repository
type CashCollectionRepositoryInterface interface {
	CreateCollection(ctx context.Context, collection *models.CashCollection) error
	ListByRider(ctx context.Context, riderID string) ([]*models.CashCollection, error)
	ListAll(ctx context.Context) ([]*models.CashCollection, error)
}

// DiscountRepositoryInterface defines the contract for the discount and slot repository
type DiscountRepositoryInterface interface {
	CreateDiscount(ctx context.Context, discount *models.Discount) error
	ListActive(ctx context.Context) ([]*models.Discount, error)
	IncrementUsage(ctx context.Context, discountID, discountType string) error
	PutSlot(ctx context.Context, slot *models.DeliverySlot) error
	ListSlotsByPincode(ctx context.Context, pincode string) ([]*models.DeliverySlot, error)
	BookSlot(ctx context.Context, pincode, slotKey string) error
}

// JourneyRepositoryInterface defines the contract for the journey repository
type JourneyRepositoryInterface interface {
	SaveJourney(ctx context.Context, journey *models.Journey) error
	SaveStage(ctx context.Context, journeyID string, stage *models.StageDefinition) error
	GetJourney(ctx context.Context, journeyID string) (*models.Journey, error)
	ListJourneys(ctx context.Context) ([]*models.Journey, error)
	ListStages(ctx context.Context, journeyID string) ([]*models.StageDefinition, error)
	UpdateProgress(ctx context.Context, journey *models.Journey, stageIndex int, status string) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	RecordLogin(ctx context.Context, userID string, role models.UserRole) error
}

// CustomerRepositoryInterface defines the contract for the customer repository
type CustomerRepositoryInterface interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

// SupplierRepositoryInterface defines the contract for the supplier repository
type SupplierRepositoryInterface interface {
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplier(ctx context.Context, supplierID string) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
}

// AuditRepositoryInterface defines the contract for the audit repository
type AuditRepositoryInterface interface {
	Write(ctx context.Context, action, entityID, actorID, actorRole, details string)
	ListAll(ctx context.Context) ([]*models.AuditLog, error)
	ListByEntity(ctx context.Context, entityID string) ([]*models.AuditLog, error)
}
