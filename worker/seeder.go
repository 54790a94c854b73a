package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
)

// Seeder loads demo data so a fresh environment is usable right away.
// Every write is guarded, re-running the seeder is safe.
type Seeder struct {
	repo   *repository.Repository
	config *models.Config
	logger logger.Logger
}

func NewSeeder(cfg *models.Config, log logger.Logger) (*Seeder, error) {
	dbClient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	return &Seeder{
		repo:   repository.NewRepository(dbClient, cfg, log),
		config: cfg,
		logger: log,
	}, nil
}

// Run seeds suppliers, catalog, stock, riders, customers, discounts,
// delivery slots and the bootstrap admin account.
func (s *Seeder) Run(ctx context.Context) error {
	if !s.config.SeedDemoData {
		s.logger.Info("Demo data seeding disabled, skipping")
		return nil
	}

	s.logger.Info("Seeding demo data")

	s.seedSuppliers(ctx)
	s.seedProducts(ctx)
	s.seedStock(ctx)
	s.seedRiders(ctx)
	s.seedCustomers(ctx)
	s.seedDiscounts(ctx)
	s.seedSlots(ctx)
	s.seedAdminUser(ctx)

	s.logger.Info("Demo data seeding finished")
	return nil
}

// skipExisting swallows the already-exists condition so reruns stay quiet
func (s *Seeder) skipExisting(err error, entity string) {
	if err == nil {
		return
	}
	if dal.IsConditionFailed(err) {
		s.logger.Debugf("%s already seeded, skipping", entity)
		return
	}
	s.logger.Errorf("Failed to seed %s: %v", entity, err)
}

func (s *Seeder) seedSuppliers(ctx context.Context) {
	suppliers := []*models.Supplier{
		{
			SupplierID:    "SUP-001",
			Name:          "FreshFarm Produce Co",
			ContactPerson: "Ravi Kulkarni",
			Email:         "orders@freshfarm.example.com",
			Phone:         "+91-9800000001",
			Address:       "Plot 14, APMC Yard, Yeshwanthpur",
			LeadTimeDays:  2,
		},
		{
			SupplierID:    "SUP-002",
			Name:          "DailyDairy Distributors",
			ContactPerson: "Meena Shah",
			Email:         "supply@dailydairy.example.com",
			Phone:         "+91-9800000002",
			Address:       "12 Industrial Estate, Peenya",
			LeadTimeDays:  1,
		},
	}

	for _, supplier := range suppliers {
		s.skipExisting(s.repo.Supplier.CreateSupplier(ctx, supplier), "supplier "+supplier.SupplierID)
	}
}

func (s *Seeder) seedProducts(ctx context.Context) {
	products := []*models.Product{
		{
			ProductID: "PRD-001", Category: "grains", Name: "Basmati Rice", Brand: "GoldenGrain",
			BaseUnit: "KG", CostPrice: 80, SellingPrice: 110, MinStock: 50, ReorderPoint: 100,
			SupplierID: "SUP-001", BatchRequired: true, StorageLocation: "MAIN",
		},
		{
			ProductID: "PRD-002", Category: "grains", Name: "Whole Wheat Flour", Brand: "MillFresh",
			BaseUnit: "KG", CostPrice: 35, SellingPrice: 52, MinStock: 40, ReorderPoint: 80,
			SupplierID: "SUP-001", BatchRequired: true, StorageLocation: "MAIN",
		},
		{
			ProductID: "PRD-003", Category: "dairy", Name: "Toned Milk 1L", Brand: "DailyDairy",
			BaseUnit: "UNIT", CostPrice: 42, SellingPrice: 54, MinStock: 100, ReorderPoint: 200,
			SupplierID: "SUP-002", ExpiryTracking: true, BatchRequired: true, StorageLocation: "COLD",
		},
		{
			ProductID: "PRD-004", Category: "dairy", Name: "Farm Eggs (12 pack)", Brand: "DailyDairy",
			BaseUnit: "UNIT", CostPrice: 70, SellingPrice: 92, MinStock: 30, ReorderPoint: 60,
			SupplierID: "SUP-002", ExpiryTracking: true, StorageLocation: "COLD",
		},
		{
			ProductID: "PRD-005", Category: "produce", Name: "Bananas", Brand: "",
			BaseUnit: "KG", CostPrice: 30, SellingPrice: 48, MinStock: 20, ReorderPoint: 40,
			SupplierID: "SUP-001", ExpiryTracking: true, StorageLocation: "MAIN",
		},
		{
			ProductID: "PRD-006", Category: "household", Name: "Dish Soap 500ml", Brand: "SparkleClean",
			BaseUnit: "UNIT", CostPrice: 55, SellingPrice: 85, MinStock: 15, ReorderPoint: 30,
			SupplierID: "SUP-001", StorageLocation: "MAIN",
		},
	}

	for _, product := range products {
		_, err := s.repo.Product.CreateProduct(ctx, product)
		s.skipExisting(err, "product "+product.ProductID)
	}
}

func (s *Seeder) seedStock(ctx context.Context) {
	levels := []*models.StockLevel{
		{ProductID: "PRD-001", Location: "MAIN", TotalStock: 500, AvailableStock: 500},
		{ProductID: "PRD-002", Location: "MAIN", TotalStock: 300, AvailableStock: 300},
		{ProductID: "PRD-003", Location: "COLD", TotalStock: 400, AvailableStock: 400},
		{ProductID: "PRD-004", Location: "COLD", TotalStock: 120, AvailableStock: 120},
		{ProductID: "PRD-005", Location: "MAIN", TotalStock: 150, AvailableStock: 150},
		{ProductID: "PRD-006", Location: "MAIN", TotalStock: 80, AvailableStock: 80},
	}

	for _, level := range levels {
		existing, err := s.repo.Stock.GetStock(ctx, level.ProductID, level.Location)
		if err == nil && existing != nil {
			continue
		}
		level.LastUpdated = time.Now().UTC().Format(time.RFC3339)
		if err := s.repo.Stock.PutStock(ctx, level); err != nil {
			s.logger.Errorf("Failed to seed stock for %s at %s: %v", level.ProductID, level.Location, err)
		}
	}
}

func (s *Seeder) seedRiders(ctx context.Context) {
	riders := []*models.Rider{
		{
			RiderID: "RDR-001", Name: "Arjun Nair", Phone: "+91-9810000001",
			VehicleNumber: "KA-01-AB-1234", VehicleType: "BIKE", AssignedZone: "560001",
			Rating: 4.8, Capacity: 12, IsAvailable: true,
		},
		{
			RiderID: "RDR-002", Name: "Sana Pillai", Phone: "+91-9810000002",
			VehicleNumber: "KA-01-CD-5678", VehicleType: "BIKE", AssignedZone: "560002",
			Rating: 4.5, Capacity: 10, IsAvailable: true,
		},
		{
			RiderID: "RDR-003", Name: "Vikram Joshi", Phone: "+91-9810000003",
			VehicleNumber: "KA-02-EF-9012", VehicleType: "VAN", AssignedZone: "560001",
			Rating: 3.9, Capacity: 30, IsAvailable: true,
		},
	}

	for _, rider := range riders {
		s.skipExisting(s.repo.Rider.CreateRider(ctx, rider), "rider "+rider.RiderID)
	}
}

func (s *Seeder) seedCustomers(ctx context.Context) {
	customers := []*models.Customer{
		{
			CustomerID: "CUST-001", CustomerType: "RETAIL", Name: "Priya Menon",
			Email: "priya@example.com", Phone: "+91-9820000001",
			Address: "44 MG Road, Bengaluru", Pincode: "560001",
		},
		{
			CustomerID: "CUST-002", CustomerType: "WHOLESALE", Name: "Hotel Annapurna",
			Email: "purchasing@annapurna.example.com", Phone: "+91-9820000002",
			Address: "2 Brigade Road, Bengaluru", Pincode: "560002",
		},
	}

	for _, customer := range customers {
		s.skipExisting(s.repo.Customer.CreateCustomer(ctx, customer), "customer "+customer.CustomerID)
	}
}

func (s *Seeder) seedDiscounts(ctx context.Context) {
	discounts := []*models.Discount{
		{
			DiscountID: "DSC-WELCOME10", DiscountType: models.DiscountTypePercentage,
			Name: "Welcome 10% off", DiscountValue: 10,
			MinOrderAmount: 200, MaxDiscountAmount: 100, UsageLimit: 1000,
		},
		{
			DiscountID: "DSC-FLAT50", DiscountType: models.DiscountTypeFlat,
			Name: "Flat 50 off on 500+", DiscountValue: 50,
			MinOrderAmount: 500, MaxDiscountAmount: 50, UsageLimit: 500,
		},
	}

	for _, discount := range discounts {
		s.skipExisting(s.repo.Discount.CreateDiscount(ctx, discount), "discount "+discount.DiscountID)
	}
}

func (s *Seeder) seedSlots(ctx context.Context) {
	windows := []struct {
		slotID    string
		slotName  string
		timeRange string
		charge    float64
	}{
		{"SLOT-AM", "Morning", "07:00-10:00", 0},
		{"SLOT-PM", "Evening", "17:00-20:00", 20},
	}
	pincodes := []string{"560001", "560002"}

	for dayOffset := 0; dayOffset < 2; dayOffset++ {
		date := time.Now().UTC().AddDate(0, 0, dayOffset).Format("2006-01-02")
		for _, pincode := range pincodes {
			existing, err := s.repo.Discount.ListSlotsByPincode(ctx, pincode)
			seeded := make(map[string]bool, len(existing))
			if err == nil {
				for _, slot := range existing {
					seeded[slot.SlotKey] = true
				}
			}

			for _, window := range windows {
				slotKey := window.slotID + "#" + date
				if seeded[slotKey] {
					continue
				}
				slot := &models.DeliverySlot{
					Pincode:        pincode,
					SlotKey:        slotKey,
					SlotID:         window.slotID,
					SlotName:       window.slotName,
					TimeRange:      window.timeRange,
					Date:           date,
					DeliveryCharge: window.charge,
					Capacity:       20,
				}
				if err := s.repo.Discount.PutSlot(ctx, slot); err != nil {
					s.logger.Errorf("Failed to seed slot %s for %s: %v", slotKey, pincode, err)
				}
			}
		}
	}
}

func (s *Seeder) seedAdminUser(ctx context.Context) {
	const adminEmail = "admin@grocerflow.local"

	if _, err := s.repo.User.GetByEmail(ctx, adminEmail); err == nil {
		s.logger.Debug("Admin user already seeded, skipping")
		return
	}

	password := os.Getenv("ADMIN_SEED_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
		s.logger.Warn("ADMIN_SEED_PASSWORD not set, seeding admin with the default password")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Errorf("Failed to hash admin password: %v", err)
		return
	}

	_, err = s.repo.User.CreateUser(ctx, &models.User{
		Email:        adminEmail,
		Username:     "admin",
		PasswordHash: hash,
		Name:         "Platform Admin",
		Role:         models.RoleSuperAdmin,
	})
	if err != nil {
		s.logger.Errorf("Failed to seed admin user: %v", err)
	}
}
