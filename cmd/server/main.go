package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	adminAPI "github.com/ridloal/skincare-store-api/internal/admin/api"
	adminRepo "github.com/ridloal/skincare-store-api/internal/admin/repository"
	adminService "github.com/ridloal/skincare-store-api/internal/admin/service"
	analyticsAPI "github.com/ridloal/skincare-store-api/internal/analytics/api"
	analyticsService "github.com/ridloal/skincare-store-api/internal/analytics/service"
	orderAPI "github.com/ridloal/skincare-store-api/internal/order/api"
	orderRepo "github.com/ridloal/skincare-store-api/internal/order/repository"
	orderService "github.com/ridloal/skincare-store-api/internal/order/service"
	"github.com/ridloal/skincare-store-api/internal/platform/config"
	"github.com/ridloal/skincare-store-api/internal/platform/database"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	"github.com/ridloal/skincare-store-api/internal/platform/storage"
	productAPI "github.com/ridloal/skincare-store-api/internal/product/api"
	productRepo "github.com/ridloal/skincare-store-api/internal/product/repository"
	productService "github.com/ridloal/skincare-store-api/internal/product/service"
)

func main() {
	config.LoadEnvFile()

	serverCfg := config.LoadServerConfig()
	dbCfg := config.LoadDBConfig()
	authCfg := config.LoadAuthConfig()
	storageCfg := config.LoadStorageConfig()

	logger.Info("Starting storefront API...")

	if err := database.Migrate(dbCfg.DSN, dbCfg.MigrationsDir); err != nil {
		logger.Error("Failed to run database migrations", err)
		return
	}
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database", err)
		return
	}
	defer db.Close()

	uploads, err := storage.New(storageCfg.UploadDir, storageCfg.MaxUploadSizeBytes)
	if err != nil {
		logger.Error("Failed to prepare upload storage", err)
		return
	}

	// Repositories and services
	orderRepository := orderRepo.NewPostgresOrderRepository(db)
	productRepository := productRepo.NewPostgresProductRepository(db)
	adminRepository := adminRepo.NewPostgresAdminRepository(db)

	ordService := orderService.NewOrderService(orderRepository, productRepository)
	prodService := productService.NewProductService(productRepository)
	admService := adminService.NewAdminService(adminRepository, authCfg)
	anlService := analyticsService.NewAnalyticsService(orderRepository, productRepository)

	// Handlers
	orderHandler := orderAPI.NewOrderHandler(ordService, uploads)
	productHandler := productAPI.NewProductHandler(prodService, uploads)
	adminHandler := adminAPI.NewAdminHandler(admService)
	analyticsHandler := analyticsAPI.NewAnalyticsHandler(anlService)

	// Orphaned payment proof sweep. File writes and order inserts are not
	// atomic, so a crash between them can leave a stray file behind.
	scheduler := cron.New()
	retention := time.Duration(storageCfg.ProofRetentionHours) * time.Hour
	if _, err := scheduler.AddFunc(storageCfg.SweepCronSpec, func() {
		if _, err := uploads.SweepOrphanedProofs(context.Background(), retention, orderRepository.ListPaymentProofRefs); err != nil {
			logger.Error("Payment proof sweep failed", err)
		}
	}); err != nil {
		logger.Error("Failed to schedule payment proof sweep", err)
		return
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Router
	router := gin.Default()
	router.Use(corsMiddleware(serverCfg.FrontendURL), securityHeaders())

	router.Static("/api/products/uploads", uploads.Dir(storage.SubdirProducts))
	router.Static("/api/orders/payments", uploads.Dir(storage.SubdirPayments))

	apiRoutes := router.Group("/api")
	adminHandler.RegisterRoutes(apiRoutes)
	orderHandler.RegisterRoutes(apiRoutes, adminHandler.RequireAdmin)
	productHandler.RegisterRoutes(apiRoutes, adminHandler.RequireAdmin)
	analyticsHandler.RegisterRoutes(apiRoutes, adminHandler.RequireAdmin)

	logger.Info("Storefront API running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run server", errSrv)
	}
}

func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}
