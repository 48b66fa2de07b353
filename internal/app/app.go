package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lyzrex/lythrion-status/internal/cache"
	"github.com/lyzrex/lythrion-status/internal/config"
	"github.com/lyzrex/lythrion-status/internal/domain"
	"github.com/lyzrex/lythrion-status/internal/httpserver"
	"github.com/lyzrex/lythrion-status/internal/httpserver/deps"
	"github.com/lyzrex/lythrion-status/internal/logger"
	"github.com/lyzrex/lythrion-status/internal/maintenance"
	"github.com/lyzrex/lythrion-status/internal/probe"
	"github.com/lyzrex/lythrion-status/internal/redis"
	"github.com/lyzrex/lythrion-status/internal/scheduler"
	"github.com/lyzrex/lythrion-status/internal/sources/netfile"
	"github.com/lyzrex/lythrion-status/internal/status"
	redisstore "github.com/lyzrex/lythrion-status/internal/store/redis"
	"github.com/lyzrex/lythrion-status/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	updater     *scheduler.PresenceUpdater
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Layer the optional network file over env config.
	if cfg.NetworkFile != "" {
		fc, err := netfile.NewLoader(cfg.NetworkFile).Load()
		if err != nil {
			loggerClient.Warn("failed to load network file, using env config only",
				logger.String("file", cfg.NetworkFile),
				logger.Error(err))
		} else {
			netfile.Apply(cfg, fc)
			loggerClient.Info("applied network file overrides",
				logger.String("file", cfg.NetworkFile))
		}
	}

	// Redis is an optional warm-start mirror here, not a hard
	// dependency: an empty addr or a failed connect leaves the service
	// running on memory alone.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, running without status mirror",
				logger.Error(err))
		} else {
			redisClient = client
			store = redisstore.NewStore(redisClient)
			loggerClient.Info("Redis initialized successfully")
		}
	} else {
		loggerClient.Info("redis not configured, status mirror disabled")
	}

	maint := maintenance.NewRegistry(map[domain.ServiceID]bool{
		domain.ServiceMain:      cfg.MaintenanceMain,
		domain.ServiceLobby:     cfg.MaintenanceLobby,
		domain.ServiceCitybuild: cfg.MaintenanceCitybuild,
	})

	prober := probe.New(map[domain.ServiceID]probe.Endpoint{
		domain.ServiceMain:      {URL: cfg.MainURL, Schema: probe.SchemaPublic},
		domain.ServiceLobby:     {URL: cfg.LobbyURL, Schema: probe.SchemaCore},
		domain.ServiceCitybuild: {URL: cfg.CitybuildURL, Schema: probe.SchemaCore},
	}, cfg.ProbeTimeout, loggerClient)

	cacheOpts := []cache.Option{}
	if store != nil {
		cacheOpts = append(cacheOpts, cache.WithMirror(store))
	}
	freshness := cache.New(prober, cfg.CacheTTL, loggerClient, cacheOpts...)

	svc := status.NewService(freshness, maint, cfg.CheckTimeout, cfg.NetworkAddr, loggerClient)

	// Warm-start from Redis before the first check.
	if store != nil {
		syncer := scheduler.NewRedisSyncer(store, freshness, svc, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to warm-start from redis, probing fresh",
				logger.Error(err))
		}
	}

	recheckTrigger := make(chan struct{}, 1)

	updater := scheduler.NewPresenceUpdater(
		svc,
		store,
		loggerClient,
		cfg.PresenceInterval,
		recheckTrigger,
	)

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Network:          cfg.NetworkName,
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		Status:           svc,
		Maintenance:      maint,
		RecheckTrigger:   recheckTrigger,
		AllowedHosts:     cfg.AllowedHosts,
		AdminCIDRS:       cfg.AdminCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RateBurst:        cfg.RateBurst,
		RateRefillPerMin: cfg.RateRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		updater:     updater,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting lythrion-status v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("lythrion-status %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.updater.Start(ctx); err != nil {
		return fmt.Errorf("failed to start presence updater: %w", err)
	}
	a.logger.Info("presence updater started",
		logger.Duration("interval", a.cfg.PresenceInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.updater.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ lythrion-status stopped cleanly")
	return nil
}
