package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/kasir-pos/internal/auth"
	cartadapter "github.com/dwikikusuma/kasir-pos/internal/cart/infra/adapter"

	cartapp "github.com/dwikikusuma/kasir-pos/internal/cart/app"
	cartrest "github.com/dwikikusuma/kasir-pos/internal/cart/rest"

	catalogapp "github.com/dwikikusuma/kasir-pos/internal/catalog/app"
	catalogsqlite "github.com/dwikikusuma/kasir-pos/internal/catalog/infra/sqlite"
	catalogrest "github.com/dwikikusuma/kasir-pos/internal/catalog/rest"

	customerapp "github.com/dwikikusuma/kasir-pos/internal/customer/app"
	customersqlite "github.com/dwikikusuma/kasir-pos/internal/customer/infra/sqlite"
	customerrest "github.com/dwikikusuma/kasir-pos/internal/customer/rest"

	saleapp "github.com/dwikikusuma/kasir-pos/internal/sale/app"
	saleadapter "github.com/dwikikusuma/kasir-pos/internal/sale/infra/adapter"
	salesqlite "github.com/dwikikusuma/kasir-pos/internal/sale/infra/sqlite"
	salerest "github.com/dwikikusuma/kasir-pos/internal/sale/rest"

	"github.com/dwikikusuma/kasir-pos/internal/database"
	"github.com/dwikikusuma/kasir-pos/pkg/config"
	"github.com/dwikikusuma/kasir-pos/pkg/logger"
	"github.com/dwikikusuma/kasir-pos/pkg/shutdown"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: "pos", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Error("migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Catalog
	catalogRepo := catalogsqlite.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart (in-memory, one instance per checkout session)
	cartCatalog := cartadapter.NewCatalogServiceReader(catalogSvc)
	cartSvc := cartapp.NewService(cartCatalog, cfg.DefaultTaxPercent)

	// Customers
	customerRepo := customersqlite.NewCustomerRepo(db)
	customerSvc := customerapp.NewService(customerRepo)

	// Sale finalizer
	saleRepo := salesqlite.NewSaleRepo(db)
	saleSvc := saleapp.NewService(
		saleadapter.NewCartServiceSource(cartSvc),
		saleadapter.NewCatalogServiceReader(catalogSvc),
		saleadapter.NewCustomerServiceDirectory(customerSvc),
		saleRepo,
		10,
	)

	// Auth
	authSvc := auth.NewService(db, cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Mount("/auth", auth.NewHandler(authSvc).Routes())

	// Cart session routes are public; checkout and sale reads need a
	// logged-in cashier.
	saleHandler := salerest.NewHandler(saleSvc)
	cartRouter := cartrest.NewHandler(cartSvc).Routes()
	cartRouter.With(authSvc.Middleware).Post("/{cartID}/checkout", saleHandler.Checkout)

	r.Mount("/catalog", catalogrest.NewHandler(catalogSvc).Routes(authSvc.Middleware))
	r.Mount("/carts", cartRouter)
	r.Mount("/customers", customerrest.NewHandler(customerSvc).Routes())
	r.With(authSvc.Middleware).Mount("/sales", saleHandler.SaleRoutes())

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		return server.Shutdown(stopCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
