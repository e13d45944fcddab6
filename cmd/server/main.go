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

	catalogapp "github.com/hoteldesk/backend/internal/application/catalog"
	financeapp "github.com/hoteldesk/backend/internal/application/finance"
	guestapp "github.com/hoteldesk/backend/internal/application/guest"
	identityapp "github.com/hoteldesk/backend/internal/application/identity"
	invoiceapp "github.com/hoteldesk/backend/internal/application/invoice"
	reportapp "github.com/hoteldesk/backend/internal/application/report"
	reservationapp "github.com/hoteldesk/backend/internal/application/reservation"
	roomapp "github.com/hoteldesk/backend/internal/application/room"
	"github.com/hoteldesk/backend/internal/infrastructure/auth"
	"github.com/hoteldesk/backend/internal/infrastructure/config"
	"github.com/hoteldesk/backend/internal/infrastructure/event"
	"github.com/hoteldesk/backend/internal/infrastructure/logger"
	"github.com/hoteldesk/backend/internal/infrastructure/persistence"
	"github.com/hoteldesk/backend/internal/infrastructure/printing"
	"github.com/hoteldesk/backend/internal/infrastructure/storage"
	"github.com/hoteldesk/backend/internal/infrastructure/telemetry"
	"github.com/hoteldesk/backend/internal/interfaces/http/handler"
	"github.com/hoteldesk/backend/internal/interfaces/http/middleware"
	"github.com/hoteldesk/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting hotel desk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry providers (no-op when disabled)
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

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

	// Optional query tracing on top of the OTel tracer
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		tracingPlugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := tracingPlugin.Register(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	guestRepo := persistence.NewGormGuestRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)
	folioRepo := persistence.NewGormFolioRepository(db.DB)
	serviceItemRepo := persistence.NewGormServiceItemRepository(db.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRecordRepository(db.DB)

	// Token blacklist: Redis when reachable, in-memory otherwise
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authConfig := identityapp.DefaultAuthServiceConfig()
	if cfg.Auth.MaxFailedAttempts > 0 {
		authConfig.MaxLoginAttempts = cfg.Auth.MaxFailedAttempts
	}
	if cfg.Auth.LockDuration > 0 {
		authConfig.LockDuration = cfg.Auth.LockDuration
	}
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, authConfig, log)
	propertyService := identityapp.NewPropertyService(propertyRepo)

	// Invoice rendering and storage
	templateEngine := printing.NewTemplateEngine()
	pdfRenderer := printing.NewChromedpRenderer(printing.ChromedpOptions{
		ExecPath:       cfg.Invoice.ChromePath,
		DefaultTimeout: cfg.Invoice.RenderTimeout,
	}, log)

	var pdfStorage printing.PDFStorage
	switch cfg.Invoice.StorageBackend {
	case "s3":
		pdfStorage, err = storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:          cfg.Invoice.S3Bucket,
			Region:          cfg.Invoice.S3Region,
			KeyPrefix:       cfg.Invoice.S3KeyPrefix,
			Endpoint:        cfg.Invoice.S3Endpoint,
			AccessKeyID:     cfg.Invoice.S3AccessKey,
			SecretAccessKey: cfg.Invoice.S3SecretKey,
			UsePathStyle:    cfg.Invoice.S3PathStyle,
		})
		if err != nil {
			log.Fatal("Failed to initialize S3 invoice storage", zap.Error(err))
		}
		log.Info("Invoice storage: S3", zap.String("bucket", cfg.Invoice.S3Bucket))
	default:
		pdfStorage, err = printing.NewFileSystemStorage(cfg.Invoice.StoragePath)
		if err != nil {
			log.Fatal("Failed to initialize filesystem invoice storage", zap.Error(err))
		}
		log.Info("Invoice storage: filesystem", zap.String("path", cfg.Invoice.StoragePath))
	}

	// Application services
	bookingService := reservationapp.NewBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)
	folioService := reservationapp.NewFolioService(reservationRepo, folioRepo)
	guestService := guestapp.NewGuestService(guestRepo)
	roomService := roomapp.NewRoomService(roomRepo)
	catalogService := catalogapp.NewCatalogService(serviceItemRepo, menuItemRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo)
	reportService := reportapp.NewReportService(reservationRepo, folioRepo, expenseRepo)
	invoiceService := invoiceapp.NewInvoiceService(
		propertyRepo, reservationRepo, folioRepo, guestRepo,
		templateEngine, pdfRenderer, pdfStorage, log,
	)

	// Event bus with the audit trail handler
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Business metrics ride the same event stream when telemetry is on
	if cfg.Telemetry.Enabled {
		meter := meterProvider.Meter("hoteldesk")
		deskMetrics, err := telemetry.NewDeskMetrics(telemetry.DeskMetricsConfig{
			Meter:             meter,
			Logger:            log,
			OccupancyProvider: persistence.NewGormOccupancyProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize desk metrics", zap.Error(err))
		} else {
			eventBus.Subscribe(event.NewMetricsHandler(deskMetrics))
			deskMetrics.StartPeriodicCollection(ctx, persistence.NewGormPropertyProvider(db.DB), 5*time.Minute)
		}
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject the bus into services that record domain events
	bookingService.WithEventPublisher(eventBus)
	guestService.WithEventPublisher(eventBus)
	roomService.WithEventPublisher(eventBus)
	catalogService.WithEventPublisher(eventBus)
	expenseService.WithEventPublisher(eventBus)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	guestHandler := handler.NewGuestHandler(guestService)
	roomHandler := handler.NewRoomHandler(roomService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reservationHandler := handler.NewReservationHandler(bookingService)
	folioHandler := handler.NewFolioHandler(folioService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		httpMetrics, err := middleware.NewHTTPMetrics(meterProvider.Meter("hoteldesk/http"))
		if err != nil {
			log.Warn("Failed to initialize HTTP metrics", zap.Error(err))
		} else {
			engine.Use(httpMetrics.Middleware())
		}
	}

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Tighter rate limit on credential endpoints
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		engine.Use(pathScopedRateLimit(authLimiter, "/api/v1/auth/login", "/api/v1/auth/refresh"))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	r.Register(authHandler).
		Register(propertyHandler).
		Register(guestHandler).
		Register(roomHandler).
		Register(catalogHandler).
		Register(reservationHandler).
		Register(folioHandler).
		Register(expenseHandler).
		Register(reportHandler).
		Register(invoiceHandler).
		Register(systemHandler)

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// pathScopedRateLimit applies the limiter only to the given exact paths
func pathScopedRateLimit(limiter *middleware.RateLimiter, paths ...string) gin.HandlerFunc {
	limited := make(map[string]bool, len(paths))
	for _, p := range paths {
		limited[p] = true
	}
	inner := middleware.RateLimit(limiter)
	return func(c *gin.Context) {
		if limited[c.Request.URL.Path] {
			inner(c)
			return
		}
		c.Next()
	}
}

// healthHandler reports liveness and database reachability
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
