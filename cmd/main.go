package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Meenakshi-1306/Tutedude/internal/handler"
	"github.com/Meenakshi-1306/Tutedude/internal/messaging"
	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/notify"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/cache"
	"github.com/Meenakshi-1306/Tutedude/pkg/config"
	"github.com/Meenakshi-1306/Tutedude/pkg/database"
	"github.com/Meenakshi-1306/Tutedude/pkg/jwtutil"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/pkg/metrics"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("Starting marketplace service...", zap.String("environment", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName)
	log.Info("Prometheus metrics initialized")

	recordStore, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open record store", zap.Error(err))
	}
	defer closeStore()

	if cfg.Store.SeedDemo {
		seeded, err := store.Seed(ctx, recordStore)
		if err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
		log.Info("Demo data checked", zap.Bool("seeded", seeded))
	}

	var publisher messaging.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.PublishTimeout)
		log.Info("Publishing events to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		publisher = messaging.NewLogPublisher(log)
		log.Info("No Kafka brokers configured, events will be logged")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	mailer := notify.NewLogMailer(log, cfg.Mail.Delay)
	h := handler.New(recordStore, jwtUtil, mailer, publisher, cfg)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())
	e.Use(logger.Middleware())

	// Public routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	auth := e.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)

	fssai := e.Group("/fssai")
	fssai.POST("/report", h.SubmitReport)
	fssai.GET("/reports/:userId", h.ListReportsByUser)

	// API routes that require authentication
	api := e.Group("/api")
	api.Use(middleware.Auth(jwtUtil))

	vendorOnly := middleware.RequireRole(model.RoleVendor)
	supplierOnly := middleware.RequireRole(model.RoleSupplier)

	api.GET("/me", h.GetMe)
	api.PATCH("/me", h.UpdateMe)
	api.GET("/dashboard", h.Dashboard)

	api.GET("/suppliers", h.ListSuppliers)
	api.GET("/suppliers/:id/products", h.ListSupplierProducts)
	api.GET("/vendors", h.ListVendors)

	products := api.Group("/products", supplierOnly)
	products.GET("", h.ListMyProducts)
	products.POST("", h.CreateProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	api.POST("/orders", h.PlaceOrder, vendorOnly)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:id", h.GetOrder)
	api.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	api.GET("/transactions", h.ListTransactions, supplierOnly)

	wallet := api.Group("/wallet", vendorOnly)
	wallet.GET("", h.GetWallet)
	wallet.POST("/topup", h.TopUp)

	api.GET("/fssai/reports", h.ListMyReports)
	api.PATCH("/fssai/reports/:id/status", h.UpdateReportStatus)

	// Start server
	go func() {
		port := cfg.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// openStore picks the record store from STORE_DRIVER. The memory store is
// snapshotted to Redis when REDIS_ADDR is set.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Store, func(), error) {
	if cfg.Store.Driver == "postgres" {
		db, err := database.InitDB(&cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			database.Close(db)
			return nil, nil, err
		}
		log.Info("Database connection established and migrations completed",
			zap.String("db_host", cfg.DB.Host),
			zap.String("db_name", cfg.DB.DBName))
		return s, func() { database.Close(db) }, nil
	}

	if cfg.Redis.Addr == "" {
		log.Warn("REDIS_ADDR not set, store contents will not survive a restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.OpenMemoryStore(ctx, store.NewRedisSnapshotter(client, cfg.Redis.StateKey))
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	log.Info("Store snapshots persisted to Redis",
		zap.String("addr", cfg.Redis.Addr),
		zap.String("key", cfg.Redis.StateKey))
	return s, func() { client.Close() }, nil
}
