package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/motogarage/backend/internal/application/finance"
	partnerapp "github.com/motogarage/backend/internal/application/partner"
	tradeapp "github.com/motogarage/backend/internal/application/trade"
	"github.com/motogarage/backend/internal/infrastructure/config"
	"github.com/motogarage/backend/internal/infrastructure/event"
	"github.com/motogarage/backend/internal/infrastructure/logger"
	"github.com/motogarage/backend/internal/infrastructure/notify"
	"github.com/motogarage/backend/internal/infrastructure/persistence"
	"github.com/motogarage/backend/internal/interfaces/http/handler"
	"github.com/motogarage/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting motogarage backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRecordRepository(db.DB)

	financeScope := persistence.NewGormFinanceTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	// In-process domain event bus with an audit-log subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log.Named("audit")))

	// Optional settlement notifications over redis pub/sub
	var settlementOpts []financeapp.SettlementServiceOption
	if cfg.Redis.Enabled {
		notifier, err := notify.NewRedisSettlementNotifier(cfg.Redis, notify.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Error("Error closing redis notifier", zap.Error(err))
			}
		}()
		settlementOpts = append(settlementOpts, financeapp.WithNotifier(notifier))
		log.Info("Settlement notifications enabled")
	}

	settlementOpts = append(settlementOpts, financeapp.WithEventPublisher(eventBus))

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo, partnerapp.WithEventPublisher(eventBus))
	orderService := tradeapp.NewSalesOrderService(tradeScope, customerRepo, tradeapp.WithEventPublisher(eventBus))
	settlementService := financeapp.NewSettlementService(financeScope, customerRepo, log, settlementOpts...)
	ledgerService := financeapp.NewLedgerService(receivableRepo, paymentRepo, customerRepo)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewSalesOrderHandler(orderService)).
		Register(handler.NewFinanceHandler(settlementService, ledgerService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
