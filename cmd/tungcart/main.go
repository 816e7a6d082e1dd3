package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tungshoop/tungcart/internal/api/handlers"
	"github.com/tungshoop/tungcart/internal/api/middleware"
	"github.com/tungshoop/tungcart/internal/audit"
	"github.com/tungshoop/tungcart/internal/cli"
	"github.com/tungshoop/tungcart/internal/config"
	"github.com/tungshoop/tungcart/internal/export"
	"github.com/tungshoop/tungcart/internal/health"
	"github.com/tungshoop/tungcart/internal/metrics"
	repository "github.com/tungshoop/tungcart/internal/repositories"
	service "github.com/tungshoop/tungcart/internal/services"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of the interactive menu")

	// Logger setup; stderr keeps the interactive menu readable on stdout.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	if !flag.Parsed() {
		flag.Parse()
	}

	// Audit sink setup; absent configuration runs the ledger unaudited.
	sink := audit.NewNopSink()

	if cfg.AuditDB.Enabled() {
		db, err := audit.OpenDatabase(cfg.AuditDB.GetDSN())
		if err != nil {
			slog.Error("❌ Error accessing the audit database", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("⚠️ Error closing audit database connection", slog.String("error", err.Error()))
			}
		}()

		sink, err = audit.NewPostgresSink(db)
		if err != nil {
			slog.Error("❌ Error initializing the audit sink", "error", err.Error())
			os.Exit(1)
		}

		slog.Info("✅ Audit sink initialized")
	}

	catalogRepo := repository.NewCatalogRepo(cfg.Storage.CatalogPath, nil)

	cat, err := catalogRepo.Load()
	if err != nil {
		slog.Error("❌ Error loading the product catalog", "error", err.Error())
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(cfg.Storage.CartPath)

	cartService, err := service.NewCartService(cat, cartRepo, sink)
	if err != nil {
		slog.Error("❌ Error restoring the cart state", "error", err.Error())
		os.Exit(1)
	}

	exporter := export.NewExporter(cfg.Storage.ExportDir)

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.Int("products", cat.Len()),
		slog.Int("cart_lines", cartService.Len()))

	if *serve {
		runServer(cfg, cartService, exporter)

		return
	}

	menu := cli.NewMenu(cartService, exporter, os.Stdin, os.Stdout)
	menu.Run(context.Background())
}

func runServer(cfg *config.Config, cartService *service.CartService, exporter *export.Exporter) {
	cartHandler := handlers.NewCartHandler(cartService)
	productHandler := handlers.NewProductHandler(cartService)
	exportHandler := handlers.NewExportHandler(cartService, exporter)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building the health handler", "error", err.Error())
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/clear", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/checkout", cartHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/export", exportHandler.Export())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
