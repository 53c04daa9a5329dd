package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ploychompoo03/management-market/internal/cart"
	"github.com/ploychompoo03/management-market/internal/catalog"
	"github.com/ploychompoo03/management-market/internal/checkout"
	"github.com/ploychompoo03/management-market/internal/config"
	"github.com/ploychompoo03/management-market/internal/events"
	"github.com/ploychompoo03/management-market/internal/handoff"
	"github.com/ploychompoo03/management-market/internal/health"
	"github.com/ploychompoo03/management-market/internal/ledger"
	"github.com/ploychompoo03/management-market/internal/obs"
	"github.com/ploychompoo03/management-market/internal/settings"
	"github.com/ploychompoo03/management-market/internal/store"
	"github.com/ploychompoo03/management-market/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(cfg.LogFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("open data dir")
	}

	catalogRepo := &catalog.Repository{S: fileStore}
	settingsRepo := &settings.Repository{S: fileStore}
	ledgerRepo := &ledger.Repository{S: fileStore}
	userRepo := &user.Repository{S: fileStore}
	channel := &handoff.Channel{S: fileStore}

	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := &catalog.Handler{Svc: catalogSvc}

	userSvc, err := user.NewService(userRepo, cfg.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise user service")
	}
	userSvc.AccessTTL = cfg.AccessTokenTTL
	userHandler := &user.Handler{Svc: userSvc}
	authMiddleware := user.Middleware{Svc: userSvc}

	settingsHandler := &settings.Handler{Repo: settingsRepo}

	bus := &events.Bus{
		Store: fileStore,
		Notifiers: []events.Notifier{
			events.LowStockNotifier{Log: logger, Threshold: cfg.LowStockThreshold},
		},
	}

	cartSvc := &cart.Service{Catalog: catalogRepo}
	cartHandler := &cart.Handler{
		Svc:      cartSvc,
		Products: catalogRepo,
		Tax:      settingsRepo,
		Channel:  channel,
	}

	checkoutSvc := &checkout.Service{
		Channel:   channel,
		Committer: checkout.DefaultCommitter{Catalog: catalogRepo, Ledger: ledgerRepo},
		Events:    bus,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc}

	ledgerHandler := &ledger.Handler{Svc: &ledger.Service{Repo: ledgerRepo}}

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "pos")
	buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
	httpMetrics := obs.NewHTTPMetrics(metricsNamespace, buckets, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	healthHandler := health.Handler{
		Checker:      health.DirChecker{Dir: fileStore.Dir()},
		StoreTimeout: 500 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Post("/auth/login", userHandler.Login)

		v.Group(func(p chi.Router) {
			p.Use(authMiddleware.RequireAuth)
			p.Get("/auth/me", userHandler.Me)

			p.Get("/products", catalogHandler.List)
			p.Get("/products/{id}", catalogHandler.Get)
			p.Get("/categories", catalogHandler.Categories)
			p.Post("/products", catalogHandler.Create)
			p.Put("/products/{id}", catalogHandler.Update)
			p.Delete("/products/{id}", catalogHandler.Delete)

			p.Get("/settings", settingsHandler.Get)
			p.Put("/settings", settingsHandler.Put)

			p.Route("/cart", func(c chi.Router) {
				c.Get("/", cartHandler.Get)
				c.Delete("/", cartHandler.Reset)
				c.Post("/lookup", cartHandler.Lookup)
				c.Post("/items", cartHandler.AddItem)
				c.Patch("/items/{itemId}", cartHandler.UpdateItem)
				c.Delete("/items/{itemId}", cartHandler.RemoveItem)
				c.Post("/checkout", cartHandler.Checkout)
			})

			p.Route("/checkout", func(c chi.Router) {
				c.Get("/", checkoutHandler.View)
				c.Post("/quote", checkoutHandler.Quote)
				c.Post("/confirm", checkoutHandler.Confirm)
			})

			p.Get("/sales", ledgerHandler.History)
			p.Get("/sales/{id}", ledgerHandler.Detail)
			p.Delete("/sales/{id}", ledgerHandler.Delete)
			p.Get("/reports/by-product", ledgerHandler.ByProduct)
			p.Get("/reports/by-day", ledgerHandler.ByDay)

			p.Route("/users", func(u chi.Router) {
				u.Use(authMiddleware.RequireAdmin)
				u.Get("/", userHandler.List)
				u.Post("/", userHandler.Create)
				u.Get("/{id}", userHandler.Get)
				u.Put("/{id}", userHandler.Update)
				u.Delete("/{id}", userHandler.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
