package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nats-io/nats.go"

	"github.com/okrause/sportshop/internal"
	"github.com/okrause/sportshop/internal/cookie"
	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/handler/admin"
	"github.com/okrause/sportshop/internal/handler/storefront"
	"github.com/okrause/sportshop/internal/middleware"
	"github.com/okrause/sportshop/internal/order"
	"github.com/okrause/sportshop/internal/postgres"
	"github.com/okrause/sportshop/internal/router"
	"github.com/okrause/sportshop/internal/routes"
	"github.com/okrause/sportshop/internal/service"
	"github.com/okrause/sportshop/internal/session"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := postgres.NewProductRepository(pool)

	// Initialize order processor
	processor, natsConn, err := newOrderProcessor(cfg.Order, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize order processor: %w", err)
	}
	if natsConn != nil {
		defer natsConn.Drain()
	}
	logger.Info("Order processor initialized", "kind", cfg.Order.Processor)

	// Initialize services
	productService := service.NewProductService(repo, logger)
	catalogService := service.NewCatalogService(repo)
	checkoutService := service.NewCheckoutService(processor, logger)

	// Initialize session store and expiry sweeper
	sessionTTL := time.Duration(cfg.Session.TTLDays) * 24 * time.Hour
	sessions := session.NewStore(sessionTTL, logger)
	sessions.StartSweeper(ctx, time.Hour)

	// Cookie settings
	cookies := cookie.NewConfig(cfg.Env == "prod")

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	storefrontDeps := routes.StorefrontDeps{
		ProductHandler:  storefront.NewProductHandler(productService),
		CartHandler:     storefront.NewCartHandler(catalogService, sessions, cookies, cfg.Session.CookieName),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, sessions, cookies, cfg.Session.CookieName),
	}

	adminDeps := routes.AdminDeps{
		ProductHandler: admin.NewProductHandler(productService),
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("sportshop")

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// newOrderProcessor builds the configured order processor. The returned
// NATS connection is non-nil only for the nats processor; the caller owns
// draining it.
func newOrderProcessor(cfg internal.OrderConfig, logger *slog.Logger) (domain.OrderProcessor, *nats.Conn, error) {
	switch cfg.Processor {
	case "nats":
		conn, err := nats.Connect(cfg.NatsURL,
			nats.Name("sportshop-orders"),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("nats connect: %w", err)
		}
		return order.NewNatsProcessor(conn, cfg.NatsSubject, logger), conn, nil
	default:
		return order.NewEmailProcessor(order.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     int(cfg.SMTPPort),
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.FromAddress,
			To:       cfg.OrderDesk,
		}, logger), nil, nil
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
