package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/config"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/database"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/handlers"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/logger"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/middleware"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/services"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/validator"

	_ "github.com/pranjalsingh001/ShopOwnerDashboard/internal/docs" // Import swagger docs
)

// @title           ShopOwnerDashboard API
// @version         1.0
// @description     Bookkeeping dashboard for small shop owners: record profit and expense transactions, view summaries, and ask an AI assistant for advice grounded in the shop's own data.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	statsService := services.NewStatsService(transactionService)
	billingService := services.NewBillingService(db)
	insightService := services.NewInsightService(transactionService, appConfig)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	statsHandler := handlers.NewStatsHandler(statsService)
	billingHandler := handlers.NewBillingHandler(billingService)
	chatbotHandler := handlers.NewChatbotHandler(insightService)

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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/user", authHandler.GetCurrentUser)

	protected.GET("/transactions", transactionHandler.GetUserTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	protected.GET("/categories", transactionHandler.GetCategorySuggestions)

	protected.GET("/stats/summary", statsHandler.GetSummary)
	protected.POST("/billing", billingHandler.RecordSale)
	protected.POST("/chatbot", chatbotHandler.Chat)

	log.Infof("Starting ShopOwnerDashboard backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
