package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/services"
)

type PermissionHandler struct {
	log    *logger.Logger
	editor *services.PermissionEditor
}

func NewPermissionHandler(log *logger.Logger, editor *services.PermissionEditor) *PermissionHandler {
	return &PermissionHandler{log: log.With("handler", "PermissionHandler"), editor: editor}
}

func (h *PermissionHandler) RolePermissions(c *gin.Context) {
	out, err := h.editor.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondOK(c, out)
}

func (h *PermissionHandler) SaveRolePermissions(c *gin.Context) {
	var req struct {
		PermissionIDs []domain.ID `json:"permission_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.PermissionIDs == nil {
		req.PermissionIDs = []domain.ID{}
	}
	out, err := h.editor.Save(c.Request.Context(), c.Param("id"), req.PermissionIDs)
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondOK(c, out)
}

// Toggle computes a "select all" click without calling the backend. With
// group set only that group's candidates are toggled.
func (h *PermissionHandler) Toggle(c *gin.Context) {
	var req struct {
		Selected   []domain.ID `json:"selected"`
		Candidates []domain.ID `json:"candidates"`
		Group      bool        `json:"group"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var out []domain.ID
	if req.Group {
		out = services.ToggleGroup(req.Selected, req.Candidates)
	} else {
		out = services.ToggleAll(req.Selected, req.Candidates)
	}
	response.RespondOK(c, gin.H{"selected": out})
}
