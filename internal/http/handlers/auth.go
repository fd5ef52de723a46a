package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/http/middleware"
	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/session"
)

type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	log      *logger.Logger
	sessions *session.Manager
	cookie   CookieConfig
}

func NewAuthHandler(log *logger.Logger, sessions *session.Manager, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), sessions: sessions, cookie: cookie}
}

type sessionView struct {
	SessionID   string      `json:"session_id"`
	User        domain.User `json:"user"`
	Permissions []string    `json:"permissions"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

func viewOf(s *session.Session) sessionView {
	perms := s.Permissions
	if perms == nil {
		perms = []string{}
	}
	return sessionView{SessionID: s.ID, User: s.User, Permissions: perms, ExpiresAt: s.ExpiresAt}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, s.ID, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.RespondOK(c, viewOf(s))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if s := middleware.CurrentSession(c); s != nil {
		if err := h.sessions.Logout(c.Request.Context(), s.ID); err != nil {
			respondErr(c, h.log, err, nil)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.RespondMessage(c, "logged out")
}

func (h *AuthHandler) Me(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("login required"))
		return
	}
	response.RespondOK(c, viewOf(s))
}
