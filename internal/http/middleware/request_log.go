package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/observability"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

// RequestLogger logs one line per request and feeds the HTTP metrics.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m := observability.Current()
		m.APIInflightInc()
		defer m.APIInflightDec()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		path := route
		if path == "" {
			path = c.Request.URL.Path
		}
		method := strings.ToUpper(c.Request.Method)
		dur := time.Since(start)
		m.ObserveAPI(method, route, strconv.Itoa(status), dur)

		if log == nil {
			return
		}
		fields := []interface{}{
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", dur.Milliseconds(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if ad := ctxutil.GetAuthData(c.Request.Context()); ad != nil {
			fields = append(fields, "user_id", ad.UserID, "session_id", ad.SessionID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
