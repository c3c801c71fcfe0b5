package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finledger/internal/auth"
	"finledger/internal/config"
	"finledger/internal/database"
	"finledger/internal/handlers"
	"finledger/internal/logger"
	"finledger/internal/middleware"
	"finledger/internal/services"
	"finledger/internal/validator"

	_ "finledger/internal/docs" // Import swagger docs
)

// @title           FinLedger API
// @version         1.0
// @description     FinLedger is a personal finance ledger that tracks income and expenses, monthly budgets, and spending reports per user.

// @host      localhost:8080
// @BasePath  /

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

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	entryService := services.NewEntryService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)
	adminService := services.NewAdminService(dbManager)

	tokens := auth.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTExpirationDur)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.Auth(tokens, userService))

	// Ledger routes
	ledger := protected.Group("/ledger")
	ledger.POST("/", entryHandler.CreateEntry)
	ledger.GET("/", entryHandler.ListEntries)
	ledger.PUT("/:id", entryHandler.UpdateEntry)
	ledger.DELETE("/:id", entryHandler.DeleteEntry)

	// Profile, budget and report routes
	api := protected.Group("/api")
	api.GET("/users/me", authHandler.Me)
	api.GET("/summary", reportHandler.GetSummary)
	api.GET("/category-expenses", reportHandler.GetCategoryExpenses)
	api.GET("/budget", budgetHandler.GetBudget)
	api.POST("/budget", budgetHandler.CreateBudget)
	api.GET("/daily-spending", reportHandler.GetDailySpending)
	api.GET("/yearly-expenses", reportHandler.GetYearlyExpenses)

	// Admin routes, additionally gated by the admin API key
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(appConfig.AdminAPIKey))
	admin.POST("/reset", adminHandler.ResetSchema)

	log.Infof("Starting FinLedger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
