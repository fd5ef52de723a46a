package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/ctxutil"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/session"
)

const sessionKey = "admin.session"

type SessionMiddleware struct {
	log      *logger.Logger
	sessions *session.Manager
	cookie   string
}

func NewSessionMiddleware(log *logger.Logger, sessions *session.Manager, cookie string) *SessionMiddleware {
	return &SessionMiddleware{
		log:      log.With("middleware", "SessionMiddleware"),
		sessions: sessions,
		cookie:   cookie,
	}
}

// RequireSession resolves the operator's session from the session cookie or a
// bearer header, and puts the backend token on the request context.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionID(c, m.cookie)
		if id == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized", "login required")
			return
		}
		s, err := m.sessions.Get(c.Request.Context(), id)
		if err != nil {
			msg := "login required"
			if errors.Is(err, session.ErrExpired) {
				msg = "session expired"
			} else if !errors.Is(err, session.ErrNotFound) {
				m.log.Error("session lookup failed", "error", err)
			}
			response.Abort(c, http.StatusUnauthorized, "unauthorized", msg)
			return
		}
		ctx := ctxutil.WithAuthData(c.Request.Context(), &ctxutil.AuthData{
			SessionID:    s.ID,
			UserID:       s.User.ID.String(),
			BackendToken: s.Token,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(sessionKey, s)
		c.Next()
	}
}

// RequirePermission must run after RequireSession.
func RequirePermission(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Can(action) {
			response.Abort(c, http.StatusForbidden, "forbidden", "missing permission "+action)
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// SessionID reads the session ID from the cookie, falling back to an
// "Authorization: Bearer" header.
func SessionID(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
