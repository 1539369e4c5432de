// Package server assembles the Gin engine: middleware, services, handlers and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"piggybank/internal/config"
	_ "piggybank/internal/docs" // swagger spec
	"piggybank/internal/handlers"
	"piggybank/internal/middleware"
	"piggybank/internal/services"
	"piggybank/internal/validator"
)

// New returns a router serving the piggy bank API on db.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	// Initialize services
	balanceService := services.NewBalanceService()
	goalService := services.NewGoalService(db, balanceService)
	transactionService := services.NewTransactionService(db, balanceService)
	settingsService := services.NewSettingsService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, auditService)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", Health)

	goals := router.Group("/goals")
	collection(goals, http.MethodGet, goalHandler.ListGoals)
	collection(goals, http.MethodPost, goalHandler.CreateGoal)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/transactions", goalHandler.ListGoalTransactions)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)
	goals.POST("/:id/reset", goalHandler.ResetGoalProgress)

	transactions := router.Group("/transactions")
	collection(transactions, http.MethodGet, transactionHandler.ListTransactions)
	collection(transactions, http.MethodPost, transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	settings := router.Group("/settings")
	collection(settings, http.MethodGet, settingsHandler.GetSettings)
	collection(settings, http.MethodPut, settingsHandler.UpdateSettings)

	return router
}

// collection registers h on the group root with and without a trailing slash,
// so clients calling "/goals/" are served instead of redirected.
func collection(g *gin.RouterGroup, method string, h gin.HandlerFunc) {
	g.Handle(method, "", h)
	g.Handle(method, "/", h)
}

// Health reports that the server is up.
// @Summary Health check
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
