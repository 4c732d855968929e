package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appprocurement "github.com/erp/supplier-gateway/internal/application/procurement"
	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/infrastructure/config"
	"github.com/erp/supplier-gateway/internal/infrastructure/logger"
	"github.com/erp/supplier-gateway/internal/infrastructure/persistence"
	"github.com/erp/supplier-gateway/internal/infrastructure/suppliers"
	"github.com/erp/supplier-gateway/internal/interfaces/http/handler"
	"github.com/erp/supplier-gateway/internal/interfaces/http/middleware"
	"github.com/erp/supplier-gateway/internal/interfaces/http/router"
)

//	@title			Supplier Gateway API
//	@version		1.0
//	@description	Integration gateway for supplier shopping carts and catalog lookups (Mouser, DigiKey, Farnell)

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting supplier gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	tokenStore := persistence.NewGormTokenStore(db.DB)
	reservationStore := persistence.NewGormListReservationStore(db.DB)
	partRepo := persistence.NewGormSupplierPartRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	// Build supplier gateways. A supplier without its required keys is
	// simply not registered.
	gateways := buildGateways(cfg, tokenStore, reservationStore, log)
	registry := suppliers.NewRegistry(gateways...)
	for _, gw := range registry.List() {
		log.Info("Supplier gateway registered", zap.String("supplier", string(gw.Code())))
	}

	// Initialize application services
	transferService := appprocurement.NewCartTransferService(registry, orderRepo, log)
	catalogService := appprocurement.NewCatalogService(registry, partRepo, log)
	oauthService := appprocurement.NewOAuthService(registry, log)

	// Initialize HTTP handlers
	procurementHandler := handler.NewProcurementHandler(transferService, catalogService, oauthService, registry)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(procurementHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// buildGateways constructs an adapter for every supplier whose settings are
// complete
func buildGateways(cfg *config.Config, tokens procurement.TokenStore, reservations procurement.ListReservationStore, log *zap.Logger) []procurement.SupplierGateway {
	var gateways []procurement.SupplierGateway
	sc := cfg.Suppliers

	if sc.Mouser.Configured() {
		mouser, err := suppliers.NewMouserAdapter(&suppliers.MouserConfig{
			SearchAPIKey:   sc.Mouser.SearchAPIKey,
			CartAPIKey:     sc.Mouser.CartAPIKey,
			APIBaseURL:     sc.Mouser.BaseURL,
			CountryCode:    sc.Mouser.CountryCode,
			Language:       sc.Mouser.Language,
			ProxyURL:       sc.ProxyURL,
			TimeoutSeconds: sc.TimeoutSeconds,
		}, log)
		if err != nil {
			log.Fatal("Failed to build Mouser gateway", zap.Error(err))
		}
		gateways = append(gateways, mouser)
	}

	if sc.DigiKey.Configured() {
		digikey, err := suppliers.NewDigiKeyAdapter(&suppliers.DigiKeyConfig{
			ClientID:       sc.DigiKey.ClientID,
			ClientSecret:   sc.DigiKey.ClientSecret,
			APIBaseURL:     sc.DigiKey.BaseURL,
			CurrencyCode:   sc.CurrencyCode,
			RedirectURI:    sc.DigiKey.RedirectURI,
			ProxyURL:       sc.ProxyURL,
			TimeoutSeconds: sc.TimeoutSeconds,
		}, tokens, reservations, log)
		if err != nil {
			log.Fatal("Failed to build DigiKey gateway", zap.Error(err))
		}
		gateways = append(gateways, digikey)
	}

	if sc.Farnell.Configured() {
		farnell, err := suppliers.NewFarnellAdapter(&suppliers.FarnellConfig{
			SearchAPIKey:   sc.Farnell.SearchAPIKey,
			APIBaseURL:     sc.Farnell.BaseURL,
			StoreID:        sc.Farnell.StoreID,
			CurrencyCode:   sc.CurrencyCode,
			ProxyURL:       sc.ProxyURL,
			TimeoutSeconds: sc.TimeoutSeconds,
		}, log)
		if err != nil {
			log.Fatal("Failed to build Farnell gateway", zap.Error(err))
		}
		gateways = append(gateways, farnell)
	}

	return gateways
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
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
