package app

import (
	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/services"
	"github.com/yungbote/restaurant-admin/internal/session"
)

// Module names gate each screen as "<module>:<operation>".
const (
	ModuleBranches    = "branches"
	ModuleMenu        = "menu"
	ModuleRecipes     = "recipes"
	ModuleRestaurants = "restaurants"
	ModuleRoles       = "roles"
	ModulePermissions = "permissions"
	ModuleUsers       = "users"
	ModuleSettings    = "settings"
	ModulePayments    = "payments"
	ModuleOrders      = "orders"
)

type Services struct {
	Sessions *session.Manager

	Branches    *services.Resource[domain.Branch]
	MenuItems   *services.Resource[domain.MenuItem]
	Recipes     *services.Resource[domain.Recipe]
	Restaurants *services.Resource[domain.Restaurant]
	Roles       *services.Resource[domain.Role]
	Permissions *services.Resource[domain.Permission]
	Users       *services.Resource[domain.User]
	Settings    *services.Resource[domain.Setting]
	Payments    *services.Resource[domain.Payment]
	Orders      *services.Resource[domain.Order]

	RecipeGroups *services.RecipeService
	Receipts     *services.ReceiptService
	RoleEditor   *services.PermissionEditor
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")
	res := clients.Resources
	snaps, audit := reposet.Snapshots, reposet.Audit

	out := Services{
		Sessions: session.NewManager(log, clients.Sessions, clients.Backend, cfg.SessionTTL),

		Branches:    services.NewResource[domain.Branch](log, ModuleBranches, res.Branches, snaps, audit),
		MenuItems:   services.NewResource[domain.MenuItem](log, ModuleMenu, res.MenuItems, snaps, audit),
		Recipes:     services.NewResource[domain.Recipe](log, ModuleRecipes, res.Recipes, snaps, audit),
		Restaurants: services.NewResource[domain.Restaurant](log, ModuleRestaurants, res.Restaurants, snaps, audit),
		Roles:       services.NewResource[domain.Role](log, ModuleRoles, res.Roles, snaps, audit),
		Permissions: services.NewResource[domain.Permission](log, ModulePermissions, res.Permissions, snaps, audit),
		Users:       services.NewResource[domain.User](log, ModuleUsers, res.Users, snaps, audit),
		Settings:    services.NewResource[domain.Setting](log, ModuleSettings, res.Settings, snaps, audit),
		Payments:    services.NewResource[domain.Payment](log, ModulePayments, res.Payments, snaps, audit),
		Orders:      services.NewResource[domain.Order](log, ModuleOrders, res.Orders, snaps, audit),
	}
	out.RecipeGroups = services.NewRecipeService(log, out.Recipes)
	out.Receipts = services.NewReceiptService(log, res.Orders, res.Restaurants, res.Settings, cfg.File.Receipt)
	out.RoleEditor = services.NewPermissionEditor(log, out.Roles, out.Permissions, cfg.File.Modules)
	return out
}
