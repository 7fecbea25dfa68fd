package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edusabi/mobileFacul/docs"
	catalogapp "github.com/edusabi/mobileFacul/internal/application/catalog"
	saleapp "github.com/edusabi/mobileFacul/internal/application/sale"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/infrastructure/cache"
	"github.com/edusabi/mobileFacul/internal/infrastructure/config"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/infrastructure/migration"
	"github.com/edusabi/mobileFacul/internal/infrastructure/persistence"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/edusabi/mobileFacul/internal/infrastructure/scheduler"
	"github.com/edusabi/mobileFacul/internal/infrastructure/storage"
	"github.com/edusabi/mobileFacul/internal/infrastructure/telemetry"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/handler"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/middleware"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/router"
	"github.com/edusabi/mobileFacul/migrations"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 30 * time.Second
	// artifactRoute is where FileSystemStore URLs point to
	artifactRoute = "/api/v1/artifacts"
)

// artifactBackend is what the receipt sink and the download route need from a store
type artifactBackend interface {
	printing.ArtifactStore
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

//	@title			POS Sale Engine API
//	@version		1.0.0
//	@description	Sale sessions and checkout settlement for a point of sale.

//	@host		localhost:8080
//	@BasePath	/api/v1

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs --v3.1 --parseInternal

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// OpenTelemetry is wired first so the zap logger can tee into the log exporter
	bootLog, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	otelProviders, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Version, bootLog)
	if err != nil {
		panic("Failed to initialize telemetry: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, otelProviders.LogCore(logger.ParseLevel(cfg.Telemetry.LogsLevel)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	prom := telemetry.NewPrometheusMetrics("pos")

	if cfg.Database.AutoMigrate {
		if err := migrate(&cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Initialize database connection with the zap gorm logger and query tracing
	db, err := persistence.Connect(&cfg.Database, persistence.DatabaseOptions{
		Logger: log,
		Tracing: telemetry.DBTracingConfig{
			Enabled:          cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		},
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	var store sale.Store = persistence.NewGormStore(db.DB)
	if cfg.Breaker.Enabled {
		store = persistence.NewBreakerStore(store, persistence.BreakerConfig{
			Name:             "sale_store",
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
			Observer:         prom,
			Logger:           log,
		})
	}

	// Catalog
	var saleMetrics *telemetry.SaleMetrics
	catalogOpts := []catalogapp.CacheOption{
		catalogapp.WithCallTimeout(cfg.Checkout.CallTimeout),
		catalogapp.WithLogger(log),
	}
	if otelProviders.MetricsEnabled() {
		saleMetrics, err = telemetry.NewSaleMetrics(telemetry.SaleMetricsConfig{
			Meter:  otelProviders.Meter("pos/sale"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to initialize sale metrics", zap.Error(err))
		}
		catalogOpts = append(catalogOpts, catalogapp.WithObserver(saleMetrics))
	}
	catalog := catalogapp.NewCache(store, catalogOpts...)
	if _, err := catalog.Load(ctx); err != nil {
		// Partial catalogs are served; a reload can be requested later
		log.Warn("Catalog loaded with errors", zap.Error(err))
	}

	// Projection cache, Redis when configured
	projections, err := cache.NewFactory(cfg.Redis, cfg.Receipt.ProjectionTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to create projection cache", zap.Error(err))
	}

	// Receipts
	generator := receipt.NewGenerator(storeProfile(cfg.Receipt), receipt.WithLocation(location(cfg.Receipt.Timezone, log)))

	artifacts, err := newArtifactStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create artifact store", zap.Error(err))
	}
	var pdf printing.PDFRenderer
	if cfg.Printing.PDFEnabled {
		pdf, err = printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			RemoteURL:      cfg.Printing.ChromeRemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to start PDF renderer", zap.Error(err))
		}
	}
	templates, err := printing.NewTemplateEngineE()
	if err != nil {
		log.Fatal("Failed to parse receipt template", zap.Error(err))
	}
	sink := printing.NewSink(templates, pdf, artifacts, log,
		printing.WithPaper(printing.PaperSize(cfg.Printing.PaperSize), printing.Margins{}),
		printing.WithRenderTimeout(cfg.Printing.RenderTimeout),
	)

	// Sale flow
	composerOpts := []saleapp.ComposerOption{
		saleapp.WithProjectionCache(projections),
		saleapp.WithDocumentSink(sink),
		saleapp.WithComposerLogger(log),
	}
	if saleMetrics != nil {
		composerOpts = append(composerOpts, saleapp.WithCheckoutObserver(saleMetrics))
	}
	composer := saleapp.NewComposer(store, generator, catalog.ProductName, saleapp.ComposerConfig{
		Seller:        cfg.Checkout.Seller,
		PaymentMethod: cfg.Checkout.PaymentMethod,
		CallTimeout:   cfg.Checkout.CallTimeout,
	}, composerOpts...)
	sessions := saleapp.NewSessionService(catalog, composer,
		sale.ZeroQuantityPolicy(cfg.Checkout.ZeroQuantityPolicy), log)
	receipts := saleapp.NewReceiptService(store, projections, generator, catalog.ProductName,
		sink, sink, cfg.Checkout.CallTimeout, log)

	if saleMetrics != nil {
		saleMetrics.SetSessions(sessions)
		saleMetrics.StartPeriodicCollection(ctx, 15*time.Second)
	}

	// Background jobs
	jobs := []scheduler.Job{
		scheduler.SessionSweepJob(sessions, cfg.Checkout.SessionIdleTimeout, cfg.Checkout.SweepInterval, log),
	}
	if artifacts != nil && cfg.Printing.Retention > 0 {
		jobs = append(jobs, scheduler.ArtifactRetentionJob(artifacts, cfg.Printing.Retention, cfg.Printing.CleanupInterval))
	}
	housekeeper, err := scheduler.NewHousekeeper(log, jobs...)
	if err != nil {
		log.Fatal("Failed to create housekeeper", zap.Error(err))
	}
	if err := housekeeper.Start(ctx); err != nil {
		log.Fatal("Failed to start housekeeper", zap.Error(err))
	}

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(middleware.HTTPMetrics(prom))
	engine.Use(middleware.SecurityHeaders(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins...)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	system := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, sessions, healthChecks(db, projections)...)
	engine.GET("/health", system.Health)
	engine.GET("/metrics", gin.WrapH(prom.Handler()))

	docs.SwaggerInfo.Version = cfg.App.Version
	engine.GET("/swagger/*any", middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.HTTP.SwaggerEnabled,
		AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
	}), ginSwagger.WrapHandler(swaggerFiles.Handler))

	var limiter *middleware.RateLimiter
	api := handler.API{
		Catalog:  handler.NewCatalogHandler(catalog),
		Sessions: handler.NewSessionHandler(sessions),
		Receipts: handler.NewReceiptHandler(receipts, artifacts),
		System:   system,
	}
	if cfg.HTTP.CheckoutRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.HTTP.CheckoutRateLimit, cfg.HTTP.RateLimitWindow)
		api.CheckoutGuard = middleware.RateLimitByKey(limiter, func(c *gin.Context) string {
			return "checkout:" + c.Param("id")
		})
	}
	apiRouter := router.NewRouter(engine, router.WithAPIVersion("v1"))
	api.Mount(apiRouter)
	log.Info("API routes mounted",
		zap.String("base_path", apiRouter.BasePath()),
		zap.Int("routes", len(apiRouter.Routes())))

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}
	if err := housekeeper.Stop(shutdownCtx); err != nil {
		log.Warn("Housekeeper did not stop cleanly", zap.Error(err))
	}
	if saleMetrics != nil {
		saleMetrics.Stop()
	}
	if err := sink.Close(); err != nil {
		log.Warn("Error closing receipt sink", zap.Error(err))
	}
	if err := projections.Close(); err != nil {
		log.Warn("Error closing projection cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := otelProviders.Shutdown(shutdownCtx); err != nil {
		bootLog.Warn("Error flushing telemetry", zap.Error(err))
	}
}

// migrate applies the embedded schema over a dedicated lib/pq connection
func migrate(cfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.Open(sqlDB, migration.FromFS(migrations.FS), log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		_ = m.Close()
	}()
	return m.Up()
}

// newArtifactStore returns the configured artifact backend, or nil when receipts are not stored
func newArtifactStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (artifactBackend, error) {
	switch cfg.Printing.StorageBackend {
	case "s3":
		s3Store, err := storage.NewS3ArtifactStore(ctx, &cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			return nil, err
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3Store, nil
	case "filesystem":
		baseURL := cfg.Printing.BaseURL
		if baseURL == "" {
			baseURL = artifactRoute
		}
		return printing.NewFileSystemStore(&printing.FileSystemStoreConfig{
			BasePath: cfg.Printing.BasePath,
			BaseURL:  baseURL,
			Logger:   log,
		})
	default:
		return nil, nil
	}
}

func healthChecks(db *persistence.Database, projections cache.ProjectionCache) []handler.HealthCheck {
	checks := []handler.HealthCheck{{
		Name:     "database",
		Critical: true,
		Check:    db.Ping,
		Details:  func() any { return db.Stats() },
	}}
	if pinger, ok := projections.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: pinger.Ping})
	}
	return checks
}

func storeProfile(cfg config.ReceiptConfig) receipt.StoreProfile {
	p := receipt.DefaultStoreProfile()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, cfg.StoreName)
	set(&p.TaxID, cfg.TaxID)
	set(&p.Phone, cfg.Phone)
	set(&p.ConsultURL, cfg.ConsultURL)
	set(&p.QRCodeBaseURL, cfg.QRCodeBaseURL)
	set(&p.Series, cfg.Series)
	set(&p.DefaultNumber, cfg.DefaultNumber)
	set(&p.AccessKeyPrefix, cfg.AccessKeyPrefix)
	set(&p.ProtocolPrefix, cfg.ProtocolPrefix)
	set(&p.Footer, cfg.Footer)
	if len(cfg.AddressLines) > 0 {
		p.AddressLines = cfg.AddressLines
	}
	return p
}

func location(name string, log *zap.Logger) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("Unknown receipt timezone, using local time", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}
