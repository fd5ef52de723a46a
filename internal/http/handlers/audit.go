package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/data/dbctx"
	"github.com/yungbote/restaurant-admin/internal/data/repos"
	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
)

type AuditHandler struct {
	log  *logger.Logger
	repo repos.AuditRepo
}

func NewAuditHandler(log *logger.Logger, repo repos.AuditRepo) *AuditHandler {
	return &AuditHandler{log: log.With("handler", "AuditHandler"), repo: repo}
}

// List returns the local audit trail, newest first.
func (h *AuditHandler) List(c *gin.Context) {
	f := repos.AuditFilter{
		Resource:   c.Query("resource"),
		OperatorID: c.Query("operator_id"),
		EntityID:   c.Query("entity_id"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, errors.New("limit must be a non-negative integer"))
			return
		}
		f.Limit = n
	}
	rows, err := h.repo.List(dbctx.New(c.Request.Context()), f)
	if err != nil {
		h.log.Error("audit list failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "audit_failed", errors.New("could not load audit trail"))
		return
	}
	response.RespondOK(c, gin.H{"items": rows})
}
