package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/restaurant-admin/internal/backend"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/session"
	"github.com/yungbote/restaurant-admin/internal/upload"
)

type Clients struct {
	Backend   *backend.Client
	Resources backend.Resources
	Sessions  session.Store
	Uploader  upload.Uploader
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	api, err := backend.NewClient(log, backend.Config{BaseURL: cfg.BackendBaseURL, Timeout: cfg.BackendTimeout})
	if err != nil {
		return Clients{}, fmt.Errorf("init backend client: %w", err)
	}

	// Redis
	store := session.NewMemoryStore()
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rs, err := session.NewRedisStore(log, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session store: %w", err)
		}
		store = rs
	} else {
		log.Warn("REDIS_ADDR not set; sessions are kept in memory")
	}

	uploader, err := resolveUploader(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		return Clients{}, err
	}

	return Clients{
		Backend:   api,
		Resources: backend.NewResources(api),
		Sessions:  store,
		Uploader:  uploader,
	}, nil
}
