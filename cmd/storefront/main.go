package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ovenline/pizza-storefront/internal/cart"
	cartsqlite "github.com/ovenline/pizza-storefront/internal/cart/cartstore/sqlite"
	"github.com/ovenline/pizza-storefront/internal/catalog"
	catalogsqlite "github.com/ovenline/pizza-storefront/internal/catalog/sqlite"
	"github.com/ovenline/pizza-storefront/internal/checkout"
	"github.com/ovenline/pizza-storefront/internal/httpx"
	"github.com/ovenline/pizza-storefront/internal/order"
	ordersqlite "github.com/ovenline/pizza-storefront/internal/order/sqlite"
	statuslogsqlite "github.com/ovenline/pizza-storefront/internal/order/statuslog/sqlite"
	"github.com/ovenline/pizza-storefront/internal/pkg/cache"
	"github.com/ovenline/pizza-storefront/internal/pkg/config"
	"github.com/ovenline/pizza-storefront/internal/pkg/sqlitedb"
	"github.com/ovenline/pizza-storefront/internal/pkg/telemetry"
	reportsqlite "github.com/ovenline/pizza-storefront/internal/report/sqlite"
	settingssqlite "github.com/ovenline/pizza-storefront/internal/settings/sqlite"
	usersqlite "github.com/ovenline/pizza-storefront/internal/user/sqlite"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	db, err := sqlitedb.Open(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cartStore, err := cartsqlite.New(db)
	if err != nil {
		fatal("cart store", err)
	}
	catalogRepo, err := catalogsqlite.New(db)
	if err != nil {
		fatal("catalog repository", err)
	}
	orderRepo, err := ordersqlite.New(db)
	if err != nil {
		fatal("order repository", err)
	}
	statusLog, err := statuslogsqlite.New(db)
	if err != nil {
		fatal("status log", err)
	}
	userRepo, err := usersqlite.New(db)
	if err != nil {
		fatal("user repository", err)
	}
	settingsRepo, err := settingssqlite.New(db)
	if err != nil {
		fatal("settings repository", err)
	}
	reportRepo := reportsqlite.New(db)

	var catalogCache cache.Cache
	if cfg.RedisAddr != "" {
		catalogCache = cache.NewRedisCache(cfg.RedisAddr, "catalog")
	}
	catalogSvc := catalog.NewService(catalogRepo, catalogCache, cfg.CatalogTTL)

	carts := cart.NewManager(cartStore)

	submit := func(ctx context.Context, engine *cart.Engine, ord order.Order) error {
		return checkout.NewPipeline([]checkout.Step{
			checkout.NewPersistOrderStep(orderRepo, ord),
			checkout.NewRecordStatusStep(statusLog, ord.ID, order.StatusPending),
			checkout.NewClearCartStep(engine),
		}).Run(ctx)
	}
	orderSvc := order.NewService(orderRepo, statusLog, carts, submit)

	handler := httpx.NewHandler(catalogSvc, carts, orderSvc)
	admin := httpx.NewAdminHandler(catalogSvc, orderSvc, userRepo, settingsRepo, reportRepo)
	router := httpx.NewRouter(handler, admin, cfg.AdminToken)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("storefront running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}

func fatal(what string, err error) {
	slog.Error("failed to initialise "+what, "error", err)
	os.Exit(1)
}
