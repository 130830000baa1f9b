package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/bankman-core/bankman/cmd/docs"
	portssvc "github.com/bankman-core/bankman/internal/core/ports/services"
	"github.com/bankman-core/bankman/internal/middleware"
	"github.com/bankman-core/bankman/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with rate limiting and auth
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	rateLimiter := limiter.New(memory.NewStore(), rate)

	// Apply rate limiting and AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerTransactionRoutes(v1, services.Transaction, services.Journal)
	registerLienRoutes(v1, services.Transaction)
	registerAccountRoutes(v1, services.Account, services.Transaction, services.Aggregate)
	registerChargeRoutes(v1, services.Charge)

	return nil
}

func registerTransactionRoutes(v1 *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, journalService portssvc.JournalSvcFacade) {
	txnHandler := newTransactionHandler(txnService)
	journalHandler := newJournalHandler(journalService)

	transactions := v1.Group("/transactions")
	{
		transactions.POST("/deposit", txnHandler.deposit)
		transactions.POST("/withdrawal", txnHandler.withdraw)
		transactions.POST("/transfer", txnHandler.transfer)
		transactions.GET("/:transactionID", txnHandler.getTransaction)
		transactions.POST("/:transactionID/reverse", txnHandler.reverse)
		transactions.GET("/:transactionID/journal-entry", journalHandler.getEntryForTransaction)
	}

	journalEntries := v1.Group("/journal-entries")
	{
		journalEntries.POST("/:entryID/void", journalHandler.voidEntry)
	}
}

func registerLienRoutes(v1 *gin.RouterGroup, lienService portssvc.LienSvc) {
	lienHandler := newLienHandler(lienService)

	liens := v1.Group("/liens")
	{
		liens.POST("", lienHandler.placeLien)
		liens.POST("/release", lienHandler.releaseLien)
		liens.POST("/release-and-withdraw", lienHandler.releaseAndWithdraw)
	}
}

func registerAccountRoutes(v1 *gin.RouterGroup, accountService portssvc.AccountSvcFacade, txnService portssvc.TransactionSvcFacade, aggregateService portssvc.AggregateSvcFacade) {
	accountHandler := newAccountHandler(accountService)
	txnHandler := newTransactionHandler(txnService)
	aggregateHandler := newAggregateHandler(aggregateService, accountService)

	accounts := v1.Group("/accounts")
	{
		accounts.GET("/:accountNumber", accountHandler.getAccount)
		accounts.GET("/:accountNumber/balances", accountHandler.getBalances)
		accounts.GET("/:accountNumber/balance-history", accountHandler.listBalanceHistory)
		accounts.GET("/:accountNumber/transactions", txnHandler.listAccountTransactions)
		accounts.GET("/:accountNumber/aggregates/daily", aggregateHandler.getDailyAggregate)
	}
}

func registerChargeRoutes(v1 *gin.RouterGroup, chargeService portssvc.ChargeSvcFacade) {
	chargeHandler := newChargeHandler(chargeService)

	charges := v1.Group("/charges")
	charges.POST("/preview", chargeHandler.previewCharges)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
