package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/services"
)

type RecipeHandler struct {
	log *logger.Logger
	svc *services.RecipeService
}

func NewRecipeHandler(log *logger.Logger, svc *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{log: log.With("handler", "RecipeHandler"), svc: svc}
}

// Grouped serves recipes grouped under their menu item.
func (h *RecipeHandler) Grouped(c *gin.Context) {
	out, err := h.svc.Grouped(c.Request.Context(), services.RecipeFilter{
		BranchID:   c.Query("branch_id"),
		MenuItemID: c.Query("menu_item_id"),
	})
	if err != nil {
		respondErr(c, h.log, err, out)
		return
	}
	response.RespondOK(c, out)
}
