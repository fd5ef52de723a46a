package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/restaurant-admin/internal/http/handlers"
	httpMW "github.com/yungbote/restaurant-admin/internal/http/middleware"
	"github.com/yungbote/restaurant-admin/internal/observability"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	MetricsEnabled bool

	SessionMiddleware *httpMW.SessionMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	RecipeHandler     *httpH.RecipeHandler
	PermissionHandler *httpH.PermissionHandler
	ReceiptHandler    *httpH.ReceiptHandler
	UploadHandler     *httpH.UploadHandler
	AuditHandler      *httpH.AuditHandler

	// Resources are the CRUD screens mounted under /api.
	Resources []httpH.Routes
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapF(observability.Init().WriteHTTP))
	}

	api := r.Group("/api")
	if cfg.AuthHandler != nil {
		api.POST("/login", cfg.AuthHandler.Login)
	}

	protected := api.Group("/")
	printable := r.Group("/")
	if cfg.SessionMiddleware != nil {
		protected.Use(cfg.SessionMiddleware.RequireSession())
		printable.Use(cfg.SessionMiddleware.RequireSession())
	}
	gate := httpH.Gate(httpMW.RequirePermission)

	if cfg.AuthHandler != nil {
		protected.POST("/logout", cfg.AuthHandler.Logout)
		protected.GET("/me", cfg.AuthHandler.Me)
	}

	// Screens with extra views go first so their routes read next to the CRUD set.
	if cfg.RecipeHandler != nil {
		protected.GET("/recipes/grouped", gate("recipes:view"), cfg.RecipeHandler.Grouped)
	}
	if cfg.PermissionHandler != nil {
		protected.GET("/roles/:id/permissions", gate("roles:view"), cfg.PermissionHandler.RolePermissions)
		protected.PUT("/roles/:id/permissions", gate("roles:edit"), cfg.PermissionHandler.SaveRolePermissions)
		protected.POST("/permissions/toggle", gate("roles:view"), cfg.PermissionHandler.Toggle)
	}
	if cfg.ReceiptHandler != nil {
		protected.GET("/orders/:id/receipt", gate("orders:view"), cfg.ReceiptHandler.View)
		printable.GET("/orders/:id/receipt/print", gate("orders:view"), cfg.ReceiptHandler.Print)
		printable.GET("/orders/:id/receipt.png", gate("orders:view"), cfg.ReceiptHandler.PNG)
	}
	if cfg.UploadHandler != nil {
		protected.POST("/uploads/images", gate("uploads:create"), cfg.UploadHandler.UploadImage)
	}
	if cfg.AuditHandler != nil {
		protected.GET("/audit", gate("audit:view"), cfg.AuditHandler.List)
	}

	for _, res := range cfg.Resources {
		res.Register(protected, gate)
	}
	return r
}
