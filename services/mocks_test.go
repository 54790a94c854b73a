package services

import (
	"context"

	"grocerflow-backend/models"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{}) { m.Called(args...) }
func (m *MockLogger) Info(args ...interface{})  { m.Called(args...) }
func (m *MockLogger) Warn(args ...interface{})  { m.Called(args...) }
func (m *MockLogger) Error(args ...interface{}) { m.Called(args...) }
func (m *MockLogger) Fatal(args ...interface{}) { m.Called(args...) }

func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.Called(append([]interface{}{format}, args...)...)
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(append([]interface{}{format}, args...)...)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(append([]interface{}{format}, args...)...)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(append([]interface{}{format}, args...)...)
}

func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.Called(append([]interface{}{format}, args...)...)
}

// newMockLogger returns a logger mock that tolerates any log traffic,
// so tests only assert on repository behavior
func newMockLogger() *MockLogger {
	m := &MockLogger{}
	m.On("Debug", mock.Anything).Maybe()
	m.On("Info", mock.Anything).Maybe()
	m.On("Warn", mock.Anything).Maybe()
	m.On("Warn", mock.Anything, mock.Anything).Maybe()
	m.On("Error", mock.Anything).Maybe()
	m.On("Error", mock.Anything, mock.Anything).Maybe()
	for _, name := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		m.On(name, mock.Anything).Maybe()
		m.On(name, mock.Anything, mock.Anything).Maybe()
		m.On(name, mock.Anything, mock.Anything, mock.Anything).Maybe()
		m.On(name, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
		m.On(name, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

// MockProductRepo implements repository.ProductRepositoryInterface
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepo) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepo) UpdateProduct(ctx context.Context, productID, category string, updates map[string]interface{}) error {
	args := m.Called(ctx, productID, category, updates)
	return args.Error(0)
}

func (m *MockProductRepo) DeleteProduct(ctx context.Context, productID, category string) error {
	args := m.Called(ctx, productID, category)
	return args.Error(0)
}

func (m *MockProductRepo) CreateBatch(ctx context.Context, batch *models.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockProductRepo) ListBatchesByProduct(ctx context.Context, productID string) ([]*models.Batch, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Batch), args.Error(1)
}

func (m *MockProductRepo) UpdateBatchStatus(ctx context.Context, batchID, productID, status string) error {
	args := m.Called(ctx, batchID, productID, status)
	return args.Error(0)
}

// MockStockRepo implements repository.StockRepositoryInterface
type MockStockRepo struct {
	mock.Mock
}

func (m *MockStockRepo) PutStock(ctx context.Context, stock *models.StockLevel) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepo) GetStock(ctx context.Context, productID, location string) (*models.StockLevel, error) {
	args := m.Called(ctx, productID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockLevel), args.Error(1)
}

func (m *MockStockRepo) ListStockForProduct(ctx context.Context, productID string) ([]*models.StockLevel, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockStockRepo) ListAllStock(ctx context.Context) ([]*models.StockLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockLevel), args.Error(1)
}

func (m *MockStockRepo) Reserve(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) Release(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) DeductReserved(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) DeductAvailable(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) AddStock(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) MarkDamaged(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

func (m *MockStockRepo) MarkExpired(ctx context.Context, productID, location string, qty int) error {
	args := m.Called(ctx, productID, location, qty)
	return args.Error(0)
}

// MockOrderRepo implements repository.OrderRepositoryInterface
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepo) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepo) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepo) ListByStatus(ctx context.Context, status string) ([]*models.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepo) ListAll(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID, customerID, fromStatus, toStatus string, extra map[string]interface{}) error {
	args := m.Called(ctx, orderID, customerID, fromStatus, toStatus, extra)
	return args.Error(0)
}

func (m *MockOrderRepo) UpdateFields(ctx context.Context, orderID, customerID string, updates map[string]interface{}) error {
	args := m.Called(ctx, orderID, customerID, updates)
	return args.Error(0)
}

// MockRiderRepo implements repository.RiderRepositoryInterface
type MockRiderRepo struct {
	mock.Mock
}

func (m *MockRiderRepo) CreateRider(ctx context.Context, rider *models.Rider) error {
	args := m.Called(ctx, rider)
	return args.Error(0)
}

func (m *MockRiderRepo) GetRider(ctx context.Context, riderID string) (*models.Rider, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rider), args.Error(1)
}

func (m *MockRiderRepo) ListRiders(ctx context.Context) ([]*models.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rider), args.Error(1)
}

func (m *MockRiderRepo) ListAvailable(ctx context.Context, minRating float64) ([]*models.Rider, error) {
	args := m.Called(ctx, minRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rider), args.Error(1)
}

func (m *MockRiderRepo) SetAvailability(ctx context.Context, riderID, status string, available bool) error {
	args := m.Called(ctx, riderID, status, available)
	return args.Error(0)
}

func (m *MockRiderRepo) RecordDelivery(ctx context.Context, riderID, status string, earnings float64) error {
	args := m.Called(ctx, riderID, status, earnings)
	return args.Error(0)
}

func (m *MockRiderRepo) CreditEarnings(ctx context.Context, riderID, status string, amount float64) error {
	args := m.Called(ctx, riderID, status, amount)
	return args.Error(0)
}

// MockDeliveryRepo implements repository.DeliveryRepositoryInterface
type MockDeliveryRepo struct {
	mock.Mock
}

func (m *MockDeliveryRepo) CreateDelivery(ctx context.Context, delivery *models.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepo) GetDelivery(ctx context.Context, deliveryID string) (*models.Delivery, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Delivery), args.Error(1)
}

func (m *MockDeliveryRepo) ListByOrder(ctx context.Context, orderID string) ([]*models.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Delivery), args.Error(1)
}

func (m *MockDeliveryRepo) ListByRider(ctx context.Context, riderID string) ([]*models.Delivery, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Delivery), args.Error(1)
}

func (m *MockDeliveryRepo) UpdateStatus(ctx context.Context, deliveryID, orderID string, updates map[string]interface{}) error {
	args := m.Called(ctx, deliveryID, orderID, updates)
	return args.Error(0)
}

// MockPurchaseOrderRepo implements repository.PurchaseOrderRepositoryInterface
type MockPurchaseOrderRepo struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepo) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, po)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) GetPurchaseOrder(ctx context.Context, poID string) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, poID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) ListPendingBySupplier(ctx context.Context, supplierID string) ([]*models.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepo) UpdateStatus(ctx context.Context, poID, supplierID, fromStatus, toStatus string, extra map[string]interface{}) error {
	args := m.Called(ctx, poID, supplierID, fromStatus, toStatus, extra)
	return args.Error(0)
}

// MockCashCollectionRepo implements repository.CashCollectionRepositoryInterface
type MockCashCollectionRepo struct {
	mock.Mock
}

func (m *MockCashCollectionRepo) CreateCollection(ctx context.Context, collection *models.CashCollection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCashCollectionRepo) ListByRider(ctx context.Context, riderID string) ([]*models.CashCollection, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CashCollection), args.Error(1)
}

func (m *MockCashCollectionRepo) ListAll(ctx context.Context) ([]*models.CashCollection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CashCollection), args.Error(1)
}

// MockDiscountRepo implements repository.DiscountRepositoryInterface
type MockDiscountRepo struct {
	mock.Mock
}

func (m *MockDiscountRepo) CreateDiscount(ctx context.Context, discount *models.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}

func (m *MockDiscountRepo) ListActive(ctx context.Context) ([]*models.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Discount), args.Error(1)
}

func (m *MockDiscountRepo) IncrementUsage(ctx context.Context, discountID, discountType string) error {
	args := m.Called(ctx, discountID, discountType)
	return args.Error(0)
}

func (m *MockDiscountRepo) PutSlot(ctx context.Context, slot *models.DeliverySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockDiscountRepo) ListSlotsByPincode(ctx context.Context, pincode string) ([]*models.DeliverySlot, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DeliverySlot), args.Error(1)
}

func (m *MockDiscountRepo) BookSlot(ctx context.Context, pincode, slotKey string) error {
	args := m.Called(ctx, pincode, slotKey)
	return args.Error(0)
}

// MockJourneyRepo implements repository.JourneyRepositoryInterface
type MockJourneyRepo struct {
	mock.Mock
}

func (m *MockJourneyRepo) SaveJourney(ctx context.Context, journey *models.Journey) error {
	args := m.Called(ctx, journey)
	return args.Error(0)
}

func (m *MockJourneyRepo) SaveStage(ctx context.Context, journeyID string, stage *models.StageDefinition) error {
	args := m.Called(ctx, journeyID, stage)
	return args.Error(0)
}

func (m *MockJourneyRepo) GetJourney(ctx context.Context, journeyID string) (*models.Journey, error) {
	args := m.Called(ctx, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journey), args.Error(1)
}

func (m *MockJourneyRepo) ListJourneys(ctx context.Context) ([]*models.Journey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Journey), args.Error(1)
}

func (m *MockJourneyRepo) ListStages(ctx context.Context, journeyID string) ([]*models.StageDefinition, error) {
	args := m.Called(ctx, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StageDefinition), args.Error(1)
}

func (m *MockJourneyRepo) UpdateProgress(ctx context.Context, journey *models.Journey, stageIndex int, status string) error {
	args := m.Called(ctx, journey, stageIndex, status)
	return args.Error(0)
}

// MockUserRepo implements repository.UserRepositoryInterface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepo) RecordLogin(ctx context.Context, userID string, role models.UserRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// MockCustomerRepo implements repository.CustomerRepositoryInterface
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepo) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

// MockSupplierRepo implements repository.SupplierRepositoryInterface
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepo) GetSupplier(ctx context.Context, supplierID string) (*models.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepo) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

// MockAuditRepo implements repository.AuditRepositoryInterface
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Write(ctx context.Context, action, entityID, actorID, actorRole, details string) {
	m.Called(ctx, action, entityID, actorID, actorRole, details)
}

func (m *MockAuditRepo) ListAll(ctx context.Context) ([]*models.AuditLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditRepo) ListByEntity(ctx context.Context, entityID string) ([]*models.AuditLog, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// newMockAuditRepo returns an audit mock that accepts any write,
// services treat audit logging as fire and forget
func newMockAuditRepo() *MockAuditRepo {
	m := &MockAuditRepo{}
	m.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return m
}
