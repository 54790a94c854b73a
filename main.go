package main

import (
	"context"
	"grocerflow-backend/controller"
	"grocerflow-backend/models"
	"grocerflow-backend/utils"
	"grocerflow-backend/utils/logger"
	"grocerflow-backend/worker"
	"log"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title GrocerFlow Backend API
// @version 1.0
// @description Grocery fulfillment backend covering catalog, ordering, inventory, logistics, delivery and settlement flows.
// @description
// @description ## Authentication
// @description **POST /auth/login** with your email and password, then use the returned Bearer token on every protected endpoint.
// @description Each persona (customer, inventory staff, warehouse manager, logistics manager, delivery personnel, supplier, auditor, super admin) sees only its own route group.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Enter 'Bearer' [space] and then your token.
func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s v%s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	ctx := context.Background()

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go c.RegisterRoutes(ctx, config, r, config.BasePath)

	// Infrastructure worker creates the DynamoDB tables on first boot
	infraWorker, err := worker.NewService(ctx, config, appLogger)
	if err != nil {
		log.Fatalf("Failed to create infrastructure worker: %v", err)
	}

	if err := infraWorker.StartInBackground(); err != nil {
		log.Fatalf("Failed to start infrastructure worker: %v", err)
	}

	// Seed demo data once the tables exist
	go func() {
		if !config.SeedDemoData {
			return
		}
		if err := infraWorker.WaitForCompletion(300); err != nil {
			appLogger.Errorf("Infrastructure not ready, skipping demo seed: %v", err)
			return
		}
		seeder, err := worker.NewSeeder(config, appLogger)
		if err != nil {
			appLogger.Errorf("Failed to create seeder: %v", err)
			return
		}
		if err := seeder.Run(ctx); err != nil {
			appLogger.Errorf("Demo seed failed: %v", err)
		}
	}()

	// Keep main goroutine alive
	select {}
}
