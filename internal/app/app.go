package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/restaurant-admin/internal/data/db"
	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	apphttp "github.com/yungbote/restaurant-admin/internal/http"
	"github.com/yungbote/restaurant-admin/internal/observability"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

const snapshotPruneInterval = time.Hour

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
	done         chan struct{}
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded", "env", cfg.Env, "backend", cfg.BackendBaseURL, "db_driver", cfg.DBDriver)

	if cfg.MetricsEnabled {
		observability.Init()
	}
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     observability.ParseHeaders(cfg.OtelHeaders),
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})

	store, err := db.Open(log, db.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("local store automigrate: %w", err)
	}
	theDB := store.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, clients, reposet)
	handlerset := wireHandlers(log, cfg, theDB, clients, reposet, serviceset)
	middleware := wireMiddleware(log, cfg, serviceset)
	server := wireServer(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background maintenance. It is a no-op when already started.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	go a.pruneSnapshots(ctx)
}

// pruneSnapshots drops list snapshots older than the retention window.
func (a *App) pruneSnapshots(ctx context.Context) {
	defer close(a.done)
	if a.Cfg.SnapshotRetention <= 0 {
		return
	}
	log := a.Log.With("job", "snapshot_prune")
	ticker := time.NewTicker(snapshotPruneInterval)
	defer ticker.Stop()
	for {
		before := time.Now().Add(-a.Cfg.SnapshotRetention)
		n, err := a.Repos.Snapshots.DeleteOlderThan(dbctx.New(ctx), before)
		if err != nil && ctx.Err() == nil {
			log.Warn("snapshot prune failed", "error", err)
		} else if n > 0 {
			log.Info("snapshots pruned", "count", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Run serves HTTP until ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, a.Cfg.ShutdownGrace)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		<-a.done
		a.cancel = nil
	}
	if a.Clients.Sessions != nil {
		if err := a.Clients.Sessions.Close(); err != nil {
			a.Log.Warn("session store close failed", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("local store close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
