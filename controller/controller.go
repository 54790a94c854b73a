package controller

import (
	"context"
	"net/http"

	"grocerflow-backend/dal"
	"grocerflow-backend/middelware"
	"grocerflow-backend/models"
	"grocerflow-backend/repository"
	"grocerflow-backend/services"
	"grocerflow-backend/utils/logger"
	"grocerflow-backend/utils/swagger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Customer       *CustomerController
	Inventory      *InventoryController
	Warehouse      *WarehouseController
	Logistics      *LogisticsController
	Delivery       *DeliveryController
	Supplier       *SupplierController
	Auditor        *AuditorController
	Admin          *AdminController
	Infrastructure *InfrastructureController

	jwtManager *middelware.JWTManager
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	repo := repository.NewRepository(dbclient, cfg, log)
	svc := services.NewService(ctx, repo, dbclient, log, cfg)
	jwtManager := middelware.NewJWTManager(cfg, log, repo.User)

	return &Controller{
		Customer:       NewCustomerController(svc.Catalog, svc.Order, repo.Discount, log),
		Inventory:      NewInventoryController(svc.Inventory, svc.Catalog, log),
		Warehouse:      NewWarehouseController(svc.Warehouse, svc.Supplier, log),
		Logistics:      NewLogisticsController(svc.Logistics, log),
		Delivery:       NewDeliveryController(svc.Delivery, log),
		Supplier:       NewSupplierController(svc.Supplier, log),
		Auditor:        NewAuditorController(svc.Audit, log),
		Admin:          NewAdminController(svc.User, svc.Catalog, svc.Journey, svc.Simulation, log),
		Infrastructure: NewInfrastructureController(ctx, svc.Infrastructure, log),
		jwtManager:     jwtManager,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	log := logger.NewLogger(config.LogLevel, config.LogFormat)

	logMW := middelware.NewLoggingMiddleware(log)
	corsMW := middelware.NewCORSMiddleware(config)
	r.Use(logMW.StructuredLogger(), logMW.Recovery(), corsMW.CORS())

	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"service": "GrocerFlow Backend",
		})
	})

	// Swagger UI with authentication form
	swaggerConfig := swagger.SwaggerConfig{
		Title:         "GrocerFlow Backend API",
		SwaggerDocURL: "/swagger/doc.json",
		AuthURL:       basePath + "/auth/login",
	}
	r.GET("/swagger", swagger.ServeCleanSwagger(swaggerConfig))
	r.GET("/swagger/", swagger.ServeCleanSwagger(swaggerConfig))
	r.GET("/swagger/index.html", swagger.ServeCleanSwagger(swaggerConfig))
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.File("./docs/swagger.json")
	})

	auth := c.jwtManager

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/logout", auth.AuthMiddleware(), auth.Logout)
	authGroup.POST("/refresh", auth.AuthMiddleware(), auth.Refresh)

	// Customer portal
	customer := v1.Group("/customer", auth.AuthMiddleware(), auth.RequireRole(models.RoleCustomer))
	customer.GET("/products", c.Customer.ListProducts)
	customer.GET("/products/:id", c.Customer.GetProduct)
	customer.GET("/slots", c.Customer.ListSlots)
	customer.POST("/orders", c.Customer.PlaceOrder)
	customer.GET("/orders", c.Customer.ListOrders)
	customer.GET("/orders/:id", c.Customer.GetOrder)

	// Inventory staff
	inventory := v1.Group("/inventory", auth.AuthMiddleware(), auth.RequireRole(models.RoleInventoryStaff, models.RoleWarehouseManager))
	inventory.GET("/orders", c.Inventory.ListPendingOrders)
	inventory.POST("/orders/:id/pack", c.Inventory.PackOrder)
	inventory.POST("/orders/:id/dispatch", c.Inventory.PrepareDispatch)
	inventory.POST("/stock/adjust", c.Inventory.AdjustStock)
	inventory.POST("/batches", c.Inventory.CreateBatch)
	inventory.GET("/batches/:productId", c.Inventory.ListBatches)

	// Warehouse manager
	warehouse := v1.Group("/warehouse", auth.AuthMiddleware(), auth.RequireRole(models.RoleWarehouseManager))
	warehouse.GET("/optimization", c.Warehouse.StockOptimization)
	warehouse.POST("/purchase-orders", c.Warehouse.CreatePurchaseOrder)
	warehouse.GET("/purchase-orders", c.Warehouse.ListPurchaseOrders)
	warehouse.POST("/purchase-orders/:id/receive", c.Warehouse.ReceivePurchaseOrder)

	// Logistics manager
	logistics := v1.Group("/logistics", auth.AuthMiddleware(), auth.RequireRole(models.RoleLogisticsManager))
	logistics.POST("/runsheets", c.Logistics.CreateRunsheets)
	logistics.POST("/routes", c.Logistics.GenerateRoutes)
	logistics.POST("/orders/:id/assign", c.Logistics.AssignRider)

	// Delivery personnel
	delivery := v1.Group("/delivery", auth.AuthMiddleware(), auth.RequireRole(models.RoleDeliveryPersonnel))
	delivery.GET("/deliveries", c.Delivery.ListDeliveries)
	delivery.POST("/deliveries/:id/start", c.Delivery.StartDelivery)
	delivery.POST("/deliveries/:id/complete", c.Delivery.CompleteDelivery)
	delivery.POST("/deliveries/:id/fail", c.Delivery.FailDelivery)
	delivery.POST("/collections", c.Delivery.CollectCash)

	// Supplier portal
	supplier := v1.Group("/supplier", auth.AuthMiddleware(), auth.RequireRole(models.RoleSupplier))
	supplier.GET("/purchase-orders", c.Supplier.ListOrders)
	supplier.GET("/purchase-orders/pending", c.Supplier.ListPendingOrders)
	supplier.POST("/purchase-orders/:id/accept", c.Supplier.AcceptOrder)
	supplier.POST("/purchase-orders/:id/ship", c.Supplier.ShipOrder)

	// Auditor
	auditor := v1.Group("/auditor", auth.AuthMiddleware(), auth.RequireRole(models.RoleAuditor))
	auditor.GET("/cash-collections/verify", c.Auditor.VerifyCashCollections)
	auditor.GET("/orders/verify", c.Auditor.VerifyOrders)
	auditor.GET("/logs", c.Auditor.ListAuditLogs)

	// Super admin
	admin := v1.Group("/admin", auth.AuthMiddleware(), auth.RequireRole(models.RoleSuperAdmin))
	admin.POST("/users", c.Admin.CreateUser)
	admin.GET("/users", c.Admin.ListUsers)
	admin.GET("/users/:id", c.Admin.GetUser)
	admin.POST("/products", c.Admin.CreateProduct)
	admin.PATCH("/products/:id", c.Admin.UpdateProduct)
	admin.DELETE("/products/:id", c.Admin.DeleteProduct)
	admin.POST("/journeys", c.Admin.CreateJourney)
	admin.GET("/journeys", c.Admin.ListJourneys)
	admin.GET("/journeys/:id", c.Admin.GetJourney)
	admin.GET("/journeys/:id/stages", c.Admin.ListJourneyStages)
	admin.POST("/journeys/:id/execute", c.Admin.ExecuteJourney)
	admin.POST("/simulations", c.Admin.RunSimulation)
	admin.POST("/simulations/single", c.Admin.RunSingleSimulation)

	// Infrastructure worker supervision (admin only)
	infra := v1.Group("/infrastructure", auth.AuthMiddleware(), auth.RequireRole(models.RoleSuperAdmin))
	infra.GET("/worker/status", c.Infrastructure.GetWorkerStatus)
	infra.GET("/worker/health", c.Infrastructure.CheckWorkerHealth)
	infra.POST("/worker/restart", c.Infrastructure.RestartWorker)
	infra.POST("/worker/auto-restart", c.Infrastructure.AutoRestartWorker)

	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	log.Infof("🚀 Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
