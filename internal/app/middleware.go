package app

import (
	httpMW "github.com/yungbote/restaurant-admin/internal/http/middleware"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type Middleware struct {
	Session *httpMW.SessionMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, svc Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Session: httpMW.NewSessionMiddleware(log, svc.Sessions, cfg.SessionCookie),
	}
}
