package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/domain"
	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/services"
)

// Gate returns the middleware that requires a permission action.
type Gate func(action string) gin.HandlerFunc

// Routes is implemented by handlers that register their own CRUD routes.
type Routes interface {
	Register(g *gin.RouterGroup, gate Gate)
}

// ResourceHandler serves the CRUD screen of one collection under
// /<path>, gated by "<module>:view|create|edit|delete".
type ResourceHandler[T domain.Record] struct {
	log    *logger.Logger
	svc    *services.Resource[T]
	path   string
	module string
}

func NewResourceHandler[T domain.Record](log *logger.Logger, path, module string, svc *services.Resource[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		log:    log.With("handler", "ResourceHandler", "resource", svc.Name()),
		svc:    svc,
		path:   "/" + strings.Trim(path, "/"),
		module: module,
	}
}

func (h *ResourceHandler[T]) action(op string) string {
	return h.module + domain.ActionSeparator + op
}

func (h *ResourceHandler[T]) Register(g *gin.RouterGroup, gate Gate) {
	g.GET(h.path, gate(h.action("view")), h.List)
	g.GET(h.path+"/:id", gate(h.action("view")), h.Get)
	g.POST(h.path, gate(h.action("create")), h.Create)
	g.PUT(h.path+"/:id", gate(h.action("edit")), h.Update)
	g.DELETE(h.path+"/:id", gate(h.action("delete")), h.Delete)
}

// List forwards the query string upstream. When the refresh fails the last
// known list is sent with the error so the screen keeps rendering it.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondErr(c, h.log, err, res)
		return
	}
	response.RespondOK(c, res)
}

func (h *ResourceHandler[T]) Get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondOK(c, out)
}

func (h *ResourceHandler[T]) bind(c *gin.Context) (services.Fields, bool) {
	var in services.Fields
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return nil, false
	}
	if len(in) == 0 {
		badRequest(c, errors.New("request body is empty"))
		return nil, false
	}
	return in, true
}

func (h *ResourceHandler[T]) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondCreated(c, out)
}

func (h *ResourceHandler[T]) Update(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondOK(c, out)
}

func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, h.log, err, nil)
		return
	}
	response.RespondMessage(c, "deleted")
}
