package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/receipt"
	"github.com/yungbote/restaurant-admin/internal/services"
)

type ReceiptHandler struct {
	log *logger.Logger
	svc *services.ReceiptService
}

func NewReceiptHandler(log *logger.Logger, svc *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{log: log.With("handler", "ReceiptHandler"), svc: svc}
}

func (h *ReceiptHandler) View(c *gin.Context) {
	v, err := h.svc.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondOK(c, v)
}

// Print serves the HTML print document.
func (h *ReceiptHandler) Print(c *gin.Context) {
	h.render(c, "text/html; charset=utf-8", receipt.RenderHTML)
}

func (h *ReceiptHandler) PNG(c *gin.Context) {
	h.render(c, "image/png", receipt.RenderPNG)
}

func (h *ReceiptHandler) render(c *gin.Context, contentType string, fn func(io.Writer, receipt.View) error) {
	v, err := h.svc.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	var buf bytes.Buffer
	if err := fn(&buf, v); err != nil {
		h.log.Error("receipt render failed", "error", err, "order_id", v.OrderID)
		response.RespondError(c, http.StatusInternalServerError, "render_failed", err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
