package main

import (
	"fmt"
	"net/http"
	"os"

	"captable/internal/config"
	"captable/internal/database"
	"captable/internal/handlers"
	"captable/internal/logger"
	"captable/internal/middleware"
	"captable/internal/services"
	"captable/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "captable/internal/docs" // Import swagger docs
)

// @title           Captable API
// @version         1.0
// @description     Captable manages token sale cap tables: investors, subscriptions, allocations, and a simulated mint and distribution workflow.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	projectService := services.NewProjectService(db)
	investorService := services.NewInvestorService(db, projectService)
	subscriptionService := services.NewSubscriptionService(db, projectService, investorService)
	tokenService := services.NewTokenService(db, projectService)
	allocationService := services.NewAllocationService(db, projectService)
	mintingService := services.NewMintingService(db, projectService)
	distributionService := services.NewDistributionService(db, projectService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	investorHandler := handlers.NewInvestorHandler(investorService, auditService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, auditService)
	tokenHandler := handlers.NewTokenHandler(tokenService, auditService)
	allocationHandler := handlers.NewAllocationHandler(allocationService, auditService)
	mintingHandler := handlers.NewMintingHandler(mintingService, distributionService, auditService)
	exportHandler := handlers.NewExportHandler(allocationService, investorService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Project-scoped collections
	projects.POST("/:id/investors", investorHandler.CreateInvestor)
	projects.GET("/:id/investors", investorHandler.GetInvestors)
	projects.GET("/:id/subscriptions", subscriptionHandler.GetSubscriptions)
	projects.POST("/:id/tokens", tokenHandler.CreateToken)
	projects.GET("/:id/tokens", tokenHandler.GetTokens)
	projects.GET("/:id/allocations", allocationHandler.GetAllocations)
	projects.GET("/:id/summary", allocationHandler.GetSummary)
	projects.GET("/:id/distributions", mintingHandler.GetDistributions)
	projects.POST("/:id/mint", mintingHandler.MintTokens)

	// Bulk allocation operations
	projects.POST("/:id/allocations/bulk/status", allocationHandler.BulkUpdateStatus)
	projects.POST("/:id/allocations/bulk/token-type", allocationHandler.BulkSetTokenType)
	projects.POST("/:id/allocations/bulk/delete", allocationHandler.BulkDeleteAllocations)
	projects.POST("/:id/allocations/bulk/mint", mintingHandler.MintAllocations)
	projects.POST("/:id/allocations/bulk/distribute", mintingHandler.DistributeAllocations)

	// Exports
	projects.GET("/:id/export/allocations", exportHandler.ExportAllocations)
	projects.GET("/:id/export/investors", exportHandler.ExportInvestors)

	// Investor routes
	investors := protected.Group("/investors")
	investors.GET("/:id", investorHandler.GetInvestor)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)
	investors.POST("/:id/subscriptions", subscriptionHandler.CreateSubscription)

	// Subscription routes
	subscriptions := protected.Group("/subscriptions")
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
	subscriptions.POST("/:id/confirm", subscriptionHandler.ConfirmSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
	subscriptions.POST("/:id/allocations", allocationHandler.CreateAllocation)

	// Allocation routes
	allocations := protected.Group("/allocations")
	allocations.GET("/:id", allocationHandler.GetAllocation)
	allocations.PUT("/:id", allocationHandler.UpdateAllocation)
	allocations.DELETE("/:id", allocationHandler.DeleteAllocation)
	allocations.POST("/:id/confirm", allocationHandler.ConfirmAllocation)
	allocations.POST("/:id/unconfirm", allocationHandler.UnconfirmAllocation)

	// Token routes
	tokens := protected.Group("/tokens")
	tokens.DELETE("/:id", tokenHandler.DeleteToken)

	log.Infof("Starting Captable backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
