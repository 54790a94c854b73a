package repository

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

// CustomerRepository handles the customers table
type CustomerRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCustomerRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CustomerRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_customers"
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if customer.Status == "" {
		customer.Status = "ACTIVE"
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "customerId", customer)
}

func (r *CustomerRepository) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	var customers []*models.Customer
	if err := r.db.Query(ctx, r.table(), "customerId", customerID, &customers); err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("customer %s not found", customerID)
	}
	return customers[0], nil
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	var customers []*models.Customer
	if err := r.db.Scan(ctx, r.table(), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// SupplierRepository handles the suppliers table
type SupplierRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewSupplierRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SupplierRepository {
	return &SupplierRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *SupplierRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_suppliers"
}

func (r *SupplierRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	supplier.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if supplier.Status == "" {
		supplier.Status = models.SupplierStatusActive
	}
	return r.db.PutItemIfAbsent(ctx, r.table(), "supplierId", supplier)
}

func (r *SupplierRepository) GetSupplier(ctx context.Context, supplierID string) (*models.Supplier, error) {
	var suppliers []*models.Supplier
	if err := r.db.Query(ctx, r.table(), "supplierId", supplierID, &suppliers); err != nil {
		return nil, err
	}
	if len(suppliers) == 0 {
		return nil, fmt.Errorf("supplier %s not found", supplierID)
	}
	return suppliers[0], nil
}

func (r *SupplierRepository) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	var suppliers []*models.Supplier
	if err := r.db.Scan(ctx, r.table(), &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}
