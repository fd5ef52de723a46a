package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/restaurant-admin/internal/backend"
	httpH "github.com/yungbote/restaurant-admin/internal/http/handlers"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Recipe     *httpH.RecipeHandler
	Permission *httpH.PermissionHandler
	Receipt    *httpH.ReceiptHandler
	Upload     *httpH.UploadHandler
	Audit      *httpH.AuditHandler
	Resources  []httpH.Routes
}

type dbPinger struct{ db *gorm.DB }

func (p dbPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func wireHandlers(log *logger.Logger, cfg Config, db *gorm.DB, clients Clients, reposet Repos, svc Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(map[string]httpH.Pinger{"db": dbPinger{db: db}}),
		Auth: httpH.NewAuthHandler(log, svc.Sessions, httpH.CookieConfig{
			Name:   cfg.SessionCookie,
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
		}),
		Recipe:     httpH.NewRecipeHandler(log, svc.RecipeGroups),
		Permission: httpH.NewPermissionHandler(log, svc.RoleEditor),
		Receipt:    httpH.NewReceiptHandler(log, svc.Receipts),
		Upload:     httpH.NewUploadHandler(log, clients.Uploader, cfg.UploadMaxBytes),
		Audit:      httpH.NewAuditHandler(log, reposet.Audit),
		Resources: []httpH.Routes{
			httpH.NewResourceHandler(log, backend.PathBranches, ModuleBranches, svc.Branches),
			httpH.NewResourceHandler(log, backend.PathMenuItems, ModuleMenu, svc.MenuItems),
			httpH.NewResourceHandler(log, backend.PathRecipes, ModuleRecipes, svc.Recipes),
			httpH.NewResourceHandler(log, backend.PathRestaurants, ModuleRestaurants, svc.Restaurants),
			httpH.NewResourceHandler(log, backend.PathRoles, ModuleRoles, svc.Roles),
			httpH.NewResourceHandler(log, backend.PathPermissions, ModulePermissions, svc.Permissions),
			httpH.NewResourceHandler(log, backend.PathUsers, ModuleUsers, svc.Users),
			httpH.NewResourceHandler(log, backend.PathSettings, ModuleSettings, svc.Settings),
			httpH.NewResourceHandler(log, backend.PathPayments, ModulePayments, svc.Payments),
			httpH.NewResourceHandler(log, backend.PathOrders, ModuleOrders, svc.Orders),
		},
	}
}
