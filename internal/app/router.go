package app

import (
	apphttp "github.com/yungbote/restaurant-admin/internal/http"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) apphttp.RouterConfig {
	rc := apphttp.RouterConfig{
		Log:               log,
		AllowedOrigins:    cfg.AllowedOrigins,
		MetricsEnabled:    cfg.MetricsEnabled,
		SessionMiddleware: middleware.Session,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		RecipeHandler:     handlers.Recipe,
		PermissionHandler: handlers.Permission,
		ReceiptHandler:    handlers.Receipt,
		UploadHandler:     handlers.Upload,
		AuditHandler:      handlers.Audit,
		Resources:         handlers.Resources,
	}
	if cfg.OtelEnabled {
		rc.ServiceName = cfg.OtelServiceName
	}
	return rc
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(log, cfg.Addr(), routerConfig(log, cfg, handlers, middleware))
}
