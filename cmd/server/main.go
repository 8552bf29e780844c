package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storepos-system/config"
	"storepos-system/internal/alerts"
	"storepos-system/internal/auth"
	"storepos-system/internal/catalog"
	"storepos-system/internal/database"
	"storepos-system/internal/ledger"
	"storepos-system/internal/reports"
	"storepos-system/internal/server/handlers"
	"storepos-system/internal/server/middleware"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	ledgerService := ledger.NewService(db, redisClient)
	catalogService := catalog.NewService(db, redisClient)
	alertService := alerts.NewService(db, redisClient)
	reportService := reports.NewService(db, redisClient)
	authService := auth.NewService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	ledgerHandler := handlers.NewLedgerHTTPHandler(ledgerService)
	catalogHandler := handlers.NewCatalogHTTPHandler(catalogService)
	alertHandler := handlers.NewAlertHTTPHandler(alertService)
	reportHandler := handlers.NewReportHTTPHandler(reportService)
	authHandler := handlers.NewAuthHTTPHandler(authService)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		authGroup := public.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	{
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		products := protected.Group("/products")
		{
			products.POST("", catalogHandler.CreateProduct)
			products.GET("", catalogHandler.ListProducts)
			products.GET("/categories", catalogHandler.ListCategories)
			products.GET("/:id", catalogHandler.GetProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
		}

		suppliers := protected.Group("/suppliers")
		{
			suppliers.POST("", catalogHandler.CreateSupplier)
			suppliers.GET("", catalogHandler.ListSuppliers)
			suppliers.GET("/:id", catalogHandler.GetSupplier)
			suppliers.PUT("/:id", catalogHandler.UpdateSupplier)
			suppliers.DELETE("/:id", catalogHandler.DeleteSupplier)
		}

		sales := protected.Group("/sales")
		{
			sales.POST("", ledgerHandler.RecordSale)
			sales.GET("", ledgerHandler.ListSales)
		}

		orders := protected.Group("/purchase-orders")
		{
			orders.POST("", ledgerHandler.CreatePurchaseOrder)
			orders.GET("", ledgerHandler.ListPurchaseOrders)
			orders.GET("/:id", ledgerHandler.GetPurchaseOrder)
			orders.POST("/:id/receive", ledgerHandler.ReceivePurchaseOrder)
			orders.POST("/:id/cancel", ledgerHandler.CancelPurchaseOrder)
		}

		alertsGroup := protected.Group("/alerts")
		{
			alertsGroup.GET("/low-stock", alertHandler.ListLowStock)
			alertsGroup.GET("/settings", alertHandler.ListSettings)
			alertsGroup.POST("/products/:id", alertHandler.SetThreshold)
		}

		reportsGroup := protected.Group("/reports")
		{
			reportsGroup.GET("/dashboard", reportHandler.Dashboard)
			reportsGroup.GET("/sales-chart", reportHandler.SalesChart)
			reportsGroup.GET("/top-products", reportHandler.TopProducts)
			reportsGroup.GET("/export/sales", reportHandler.ExportSales)
			reportsGroup.GET("/export/inventory", reportHandler.ExportInventory)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	port := ":" + cfg.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
