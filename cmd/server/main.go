package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"oompa/backend/internal/cache"
	"oompa/backend/internal/config"
	"oompa/backend/internal/db"
	"oompa/backend/internal/handler"
	transport "oompa/backend/internal/http"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/metrics"
	"oompa/backend/internal/network"
	"oompa/backend/internal/repository"
	"oompa/backend/internal/scheduler"
	"oompa/backend/internal/service"
	"oompa/backend/internal/snowflake"
	"oompa/backend/internal/trigger"
)

// @title Oompa Catalog API
// @version 1.0
// @description Cached, paginated browser for the Oompa Loompa catalog.
// @BasePath /
func main() {
	cfg := config.Load()

	if err := snowflake.Init(cfg.NodeID); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}
	console := logger.NewConsole(cfg.ConsoleSize, slog.LevelInfo, snowflake.NextID)
	sink := logger.Init(logger.ParseLevel(cfg.LogLevel), console)

	repo, closeStore, err := openSnapshotStore(cfg)
	if err != nil {
		log.Fatalf("open snapshot store: %v", err)
	}
	defer closeStore()

	m := metrics.New()
	policy := cache.NewPolicy(cache.SystemClock{}, cfg.ListTTL, cfg.DetailTTL)
	clientFactory := network.NewClientFactory(network.StaticProxy(cfg.ProxyURL))
	limiter := network.NewRateLimiter(cfg.RateLimit)
	client := service.NewCatalogClient(cfg.APIBaseURL, clientFactory, limiter, cfg.HTTPTimeout)

	persister := service.NewStatePersister(repo, m)
	store := cache.NewDetailStore()
	listService := service.NewListService(client, policy, persister, m, sink)
	detailService := service.NewDetailService(client, store, policy, persister, m, sink)

	if err := service.Rehydrate(context.Background(), persister, listService, store); err != nil {
		logger.Warn("snapshot restore incomplete", "module", "main", "action", "load", "resource", "snapshot", "result", "failed", "error", err)
	} else {
		logger.Info("snapshot restored", "module", "main", "action", "load", "resource", "snapshot", "result", "ok", "items", len(listService.State().Items), "details", store.Len())
	}

	imageService := service.NewImageService(detailService, listService, clientFactory, limiter)
	renderer := service.NewDescriptionRenderer(cfg.DescriptionMode)
	listTrigger := trigger.New(listService, policy, trigger.Options{Debounce: cfg.FilterDebounce, Logger: sink})
	detailView := trigger.NewDetailView(detailService, sink)

	catalogHandler := handler.NewCatalogHandler(listService, detailService, imageService, renderer, listTrigger, detailView)
	logsHandler := handler.NewLogsHandler(console)

	router := transport.NewRouter(catalogHandler, logsHandler, m.Handler(), cfg.StaticDir)

	sched := scheduler.New(listTrigger, cfg.RefreshInterval)
	sched.Start()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "http", "result", "ok")
		sched.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
		}
	}()

	logger.Info("server starting", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "store", cfg.Store, "api", cfg.APIBaseURL)
	if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("start server: %v", err)
	}
}

func openSnapshotStore(cfg config.Config) (repository.SnapshotRepository, func(), error) {
	if cfg.Store == config.StoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repository.NewRedisSnapshotRepository(client), func() { _ = client.Close() }, nil
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSnapshotRepository(dbConn), func() { _ = dbConn.Close() }, nil
}
