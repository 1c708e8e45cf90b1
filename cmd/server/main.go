package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tropicaldog17/zakat/internal/cache"
	"github.com/tropicaldog17/zakat/internal/config"
	"github.com/tropicaldog17/zakat/internal/db"
	_ "github.com/tropicaldog17/zakat/internal/docs"
	"github.com/tropicaldog17/zakat/internal/handlers"
	"github.com/tropicaldog17/zakat/internal/logger"
	"github.com/tropicaldog17/zakat/internal/metrics"
	"github.com/tropicaldog17/zakat/internal/repositories"
	"github.com/tropicaldog17/zakat/internal/services"
	"github.com/tropicaldog17/zakat/internal/zakat"
)

// @title Zakat Calculator API
// @version 1.0
// @description Prices, nisab thresholds and zakat calculations.
// @BasePath /api
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	// Database connection
	database, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	zl.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCacheStore(ctx, cfg, database, zl)
	if err != nil {
		return err
	}
	defer store.Close()

	var rec metrics.Recorder = metrics.Nop{}
	if cfg.Metrics.Enabled {
		rec = metrics.New(prometheus.DefaultRegisterer)
	}

	budget := services.NewMonthlyBudget(repositories.NewRequestCounterRepository(database), cfg.Providers.MonthlyBudget, zl)

	resolver := services.NewPriceResolver(store,
		services.WithResolverConfig(services.ResolverConfig{
			TTL:              cfg.Cache.TTL,
			EmergencyMaxAge:  cfg.Cache.EmergencyMaxAge,
			ProviderTimeout:  cfg.Providers.Timeout,
			ChainTimeout:     cfg.Providers.ChainTimeout,
			FailureThreshold: cfg.Providers.FailureThreshold,
			Cooldown:         cfg.Providers.Cooldown,
		}),
		services.WithMetalProviders(metalProviders(cfg, zl)...),
		services.WithFXProviders(fxProviders(cfg)...),
		services.WithCryptoProviders(services.NewCoinGeckoPriceProvider(cfg.Providers.Timeout)),
		services.WithBudget(budget),
		services.WithResolverLogger(zl),
		services.WithResolverMetrics(rec),
	)

	policy, err := zakat.ThresholdPolicyByName(cfg.Nisab.ThresholdPolicy)
	if err != nil {
		return err
	}
	basis, err := zakat.ParseWealthBasis(cfg.Nisab.WealthBasis)
	if err != nil {
		return err
	}

	converter := services.NewCurrencyConverter(resolver, zl)
	nisab := services.NewNisabResolver(resolver)
	zakatService := services.NewZakatService(resolver, converter, nisab, zakat.Aggregator{Policy: policy, Basis: basis}, zl)

	deps := handlers.RouterDeps{
		Prices:    resolver,
		Converter: converter,
		Nisab:     nisab,
		Zakat:     zakatService,
		Policy:    policy,
		Health:    map[string]handlers.HealthChecker{"database": database},
		Logger:    zl,
		Metrics:   rec,
		Swagger:   cfg.Environment != "production",
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handlers.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCacheStore builds the configured cache backend. The database backend
// also starts a janitor that purges rows past their emergency lifetime.
func newCacheStore(ctx context.Context, cfg *config.Config, database *db.DB, zl *zap.Logger) (cache.Store, error) {
	newRedis := func() (*cache.RedisStore, error) {
		return cache.NewRedisStore(ctx,
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	}

	switch cfg.Cache.Backend {
	case "redis":
		return newRedis()
	case "layered":
		r, err := newRedis()
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredStore(r, cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
	case "database":
		repo := repositories.NewPriceCacheRepository(database)
		go purgeExpired(ctx, repo, cfg.Cache.TTL, zl)
		return repo, nil
	default:
		return cache.NewMemoryStore(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}
}

func purgeExpired(ctx context.Context, repo repositories.PriceCacheRepository, every time.Duration, zl *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.Purge(ctx, now)
			if err != nil {
				zl.Warn("Failed to purge price cache", zap.Error(err))
				continue
			}
			if n > 0 {
				zl.Debug("Purged expired price cache rows", zap.Int64("rows", n))
			}
		}
	}
}

func metalProviders(cfg *config.Config, zl *zap.Logger) []services.MetalPriceProvider {
	var providers []services.MetalPriceProvider
	if cfg.Providers.MetalPriceAPIKey != "" {
		providers = append(providers, services.NewMetalPriceAPIProvider(cfg.Providers.MetalPriceAPIKey, cfg.Providers.Timeout))
	}
	for _, gc := range cfg.Providers.Generic {
		p, err := services.NewGenericPriceProvider(gc, cfg.Providers.Timeout)
		if err != nil {
			zl.Warn("Skipping metal provider", zap.String("provider", gc.Name), zap.Error(err))
			continue
		}
		if !p.Configured() {
			zl.Info("Metal provider not configured", zap.String("provider", gc.Name))
			continue
		}
		providers = append(providers, p)
	}
	// Free tokenised-metal quotes last.
	return append(providers, services.NewCoinGeckoPriceProvider(cfg.Providers.Timeout))
}

func fxProviders(cfg *config.Config) []services.FXProvider {
	return []services.FXProvider{
		services.NewExchangeRateAPIProvider(cfg.Providers.ExchangeRateAPIKey, cfg.Providers.Timeout),
		services.NewOpenERAPIProvider(cfg.Providers.Timeout),
		services.NewFrankfurterProvider(cfg.Providers.Timeout),
	}
}
