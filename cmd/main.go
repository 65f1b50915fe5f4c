package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqpAdapter "github.com/digital-menu-qr/menu-service/internal/adapter/amqp"
	"github.com/digital-menu-qr/menu-service/internal/adapter/auth"
	httpAdapter "github.com/digital-menu-qr/menu-service/internal/adapter/http"
	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/adapter/postgres"
	"github.com/digital-menu-qr/menu-service/internal/adapter/rabbitmq"
	"github.com/digital-menu-qr/menu-service/internal/adapter/whatsapp"
	"github.com/digital-menu-qr/menu-service/internal/app/account"
	"github.com/digital-menu-qr/menu-service/internal/app/checkout"
	"github.com/digital-menu-qr/menu-service/internal/app/menu"
	"github.com/digital-menu-qr/menu-service/internal/app/orders"
	"github.com/digital-menu-qr/menu-service/internal/config"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "", "Service mode: menu-service, dashboard-service, notification-subscriber")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count (for notification-subscriber)")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Initialize logger
	lgr := logger.New(*mode)

	// Route to appropriate service
	switch *mode {
	case "menu-service":
		runMenuService(ctx, cfg, lgr, *port)

	case "dashboard-service":
		runDashboardService(ctx, cfg, lgr, *port)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr, *prefetch)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runMenuService(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) {
	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	// Connect to RabbitMQ for order notifications
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	// Initialize repositories
	menuRepo := postgres.NewMenuRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Initialize messaging and messaging handoff
	publisher := rabbitmq.NewPublisher(mqConn)
	wa := whatsapp.NewComposer()

	// Initialize services
	menuService := menu.NewService(menuRepo, lgr, cfg.App.BaseURL)
	checkoutService := checkout.NewService(orderRepo, publisher, wa, lgr)
	cartStore := checkout.NewStore()

	// Initialize HTTP handlers
	menuHandler := httpAdapter.NewMenuHandler(menuService, lgr)
	cartHandler := httpAdapter.NewCartHandler(cartStore, checkoutService, menuService, lgr)

	// Setup HTTP server
	mux := http.NewServeMux()
	mux.HandleFunc("/menus/", menuHandler.HandleMenus)
	mux.HandleFunc("/carts", cartHandler.CreateCart)
	mux.HandleFunc("/carts/", cartHandler.HandleCarts)

	runHTTPServer(mux, lgr, port, "Menu Service")
}

func runDashboardService(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) {
	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	// Initialize repositories
	menuRepo := postgres.NewMenuRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	// Initialize services
	menuService := menu.NewService(menuRepo, lgr, cfg.App.BaseURL)
	orderService := orders.NewService(orderRepo, menuRepo, lgr)
	accountService := account.NewService(profileRepo, lgr)

	// Initialize HTTP handler behind session verification
	handler := httpAdapter.NewDashboardHandler(menuService, orderService, accountService, lgr)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	authMw := httpAdapter.AuthMiddleware(verifier, lgr)

	mux := http.NewServeMux()
	mux.Handle("/menus", authMw(http.HandlerFunc(handler.HandleMenus)))
	mux.Handle("/menus/", authMw(http.HandlerFunc(handler.HandleMenuActions)))
	mux.Handle("/orders", authMw(http.HandlerFunc(handler.HandleOrders)))
	mux.Handle("/orders/", authMw(http.HandlerFunc(handler.HandleOrderActions)))
	mux.Handle("/analytics", authMw(http.HandlerFunc(handler.HandleAnalytics)))
	mux.Handle("/profile", authMw(http.HandlerFunc(handler.HandleProfile)))

	runHTTPServer(mux, lgr, port, "Dashboard Service")
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) {
	// Connect to RabbitMQ
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	// Initialize consumer and handler
	consumer := rabbitmq.NewConsumer(mqConn, prefetch)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	// Start consuming order notifications
	go func() {
		if err := consumer.ConsumeOrderNotifications(ctx, notificationHandler.HandleNotification); err != nil {
			lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
		}
	}()

	// Wait for shutdown signal
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}

func runHTTPServer(mux *http.ServeMux, lgr logger.Logger, port int, name string) {
	// Apply middleware
	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), "startup", map[string]interface{}{
		"port": port,
	})

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", fmt.Sprintf("Shutting down %s", name), "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}
