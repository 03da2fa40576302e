package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"storeconsole-backend/config"
	"storeconsole-backend/internal/delivery/http/middleware"
	v1 "storeconsole-backend/internal/delivery/http/v1"
	"storeconsole-backend/internal/infrastructure/cache"
	"storeconsole-backend/internal/infrastructure/gateway"
	"storeconsole-backend/internal/state"
	"storeconsole-backend/internal/usecase"
	"storeconsole-backend/pkg/logger"
	"storeconsole-backend/pkg/metrics"
	"storeconsole-backend/pkg/utils"
)

const serviceName = "storeconsole"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	m := metrics.New(serviceName)

	// Store: every dispatch is logged and counted
	var store *state.Store
	store = state.NewStore(state.WithObserver(func(a state.Action, changed bool, took time.Duration) {
		var siteID int64
		if scoped, ok := a.(state.SiteScoped); ok {
			siteID = scoped.Site()
		}
		logger.ActionDispatched(string(a.ActionType()), siteID, changed, took)
		m.RecordAction(string(a.ActionType()), changed, store.Revision())
	}))

	// Gateway to the store REST proxy
	gw, err := gateway.New(gateway.Config{
		BaseURL:          cfg.GatewayBaseURL,
		Token:            cfg.GatewayToken,
		Timeout:          cfg.GatewayTimeout,
		RatePerSecond:    cfg.GatewayRatePerSecond,
		Burst:            cfg.GatewayBurst,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerOpenTimeout,
	}, gateway.WithRecorder(m))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize gateway")
	}

	// View cache (In-Memory)
	viewCache := cache.NewMemoryCache(cfg.CacheViewTTL, cfg.CacheCleanupInterval)

	// --- Modules Initialization ---
	shippingUC := usecase.NewShippingUsecase(store, gw, viewCache, cfg.CacheViewTTL)
	catalogUC := usecase.NewCatalogUsecase(store, gw, cfg.ProductsPerPage)
	setupUC := usecase.NewSetupUsecase(store, gw)

	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Shipping: v1.NewShippingHandler(shippingUC, store),
		Catalog:  v1.NewCatalogHandler(catalogUC),
		Setup:    v1.NewSetupHandler(setupUC),
		UI:       v1.NewUIHandler(shippingUC, store),
	}, v1.SiteResolver(store))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		_, rev := store.Snapshot()
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":       "ok",
			"revision":     rev,
			"cachedViews":  viewCache.ItemCount(),
			"selectedSite": state.SelectedSiteID(store.State()),
		})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers
	mux.Handle("GET /metrics", m.Handler())

	// Initial site selection loads its shipping zones in the background
	if cfg.DefaultSiteID > 0 {
		go func() {
			if err := shippingUC.SelectSite(context.Background(), cfg.DefaultSiteID); err != nil {
				log.Warn().Err(err).Int64("site_id", cfg.DefaultSiteID).Msg("Failed to load default site")
			}
		}()
	}

	addr := fmt.Sprintf(":%s", cfg.Port)

	var limitOpts []middleware.RateLimitOption
	if cfg.TrustProxy {
		limitOpts = append(limitOpts, middleware.WithTrustedProxy())
	}
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
		limitOpts...,
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.NewRequestLogger(m)(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
