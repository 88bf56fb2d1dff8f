package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"shop/api"
	"shop/api/catalog"
	"shop/api/health"
	apiorder "shop/api/order"
	catalogapp "shop/application/catalog"
	orderapp "shop/application/order"
	"shop/config"
	customerdomain "shop/domain/customer"
	orderdomain "shop/domain/order"
	productdomain "shop/domain/product"
	"shop/domain/shared"
	"shop/infrastructure/persistence/mocks"
	"shop/infrastructure/persistence/mysql"
	"shop/infrastructure/persistence/retry"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App wires the full HTTP application: persistence, application services,
// controllers, router and the HTTP server.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// NewApp builds the application from configuration. The persistence layer is
// selected by database.type: "mysql" uses GORM against a real database,
// anything else falls back to in-memory repositories seeded with demo data.
func NewApp(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type))

	var db *gorm.DB
	var customerRepo customerdomain.Repository
	var productRepo productdomain.Repository
	var orderRepo orderdomain.Repository
	var uowFactory shared.UnitOfWorkFactory

	if cfg.Database.Type == "mysql" {
		db, customerRepo, productRepo, orderRepo, uowFactory = initMySQL(cfg)
	} else {
		customerRepo, productRepo, orderRepo, uowFactory = initMocks()
	}

	orderService := orderapp.NewApplicationService(orderRepo, customerRepo, productRepo, uowFactory)
	catalogService := catalogapp.NewApplicationService(productRepo)

	router := api.NewRouter(
		cfg,
		newHealthController(cfg, db),
		apiorder.NewController(orderService),
		catalog.NewController(catalogService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
	}
}

func initMySQL(cfg *config.Config) (*gorm.DB, customerdomain.Repository, productdomain.Repository, orderdomain.Repository, shared.UnitOfWorkFactory) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	retryConfig := retry.FromAppConfig(cfg)

	return db,
		mysql.NewCustomerRepository(db),
		mysql.NewProductRepository(db),
		mysql.NewOrderRepository(db),
		mysql.NewUnitOfWorkFactory(db, retryConfig)
}

func initMocks() (customerdomain.Repository, productdomain.Repository, orderdomain.Repository, shared.UnitOfWorkFactory) {
	logger.Info("Using in-memory persistence layer")

	customers := mocks.NewMockCustomerRepository()
	products := mocks.NewMockProductRepository()
	orders := mocks.NewMockOrderRepository()

	seedDemoData(customers, products)

	return customers, products, orders, mocks.NewMockUnitOfWork(orders, products)
}

func seedDemoData(customers *mocks.MockCustomerRepository, products *mocks.MockProductRepository) {
	customers.AddCustomer("cust-1", "Dana Reyes", "dana@example.com")
	customers.AddCustomer("cust-2", "Lee Park", "lee@example.com")

	products.AddProduct("prod-keyboard", "Mechanical Keyboard", *shared.NewMoney(12900, "USD"), 25)
	products.AddProduct("prod-mouse", "Wireless Mouse", *shared.NewMoney(4900, "USD"), 40)
	products.AddProduct("prod-monitor", "27\" Monitor", *shared.NewMoney(32900, "USD"), 8)
}

func newHealthController(cfg *config.Config, db *gorm.DB) *health.Controller {
	if db == nil {
		return health.NewController(cfg, nil)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("Health controller running without database handle", zap.Error(err))
		return health.NewController(cfg, nil)
	}
	return health.NewController(cfg, sqlDB)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", zap.Error(err))
			}
		}
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// GetServer exposes the HTTP handler for tests.
func (a *App) GetServer() http.Handler {
	return a.server.Handler
}
