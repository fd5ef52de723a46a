package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/restaurant-admin/internal/backend"
	"github.com/yungbote/restaurant-admin/internal/http/response"
	"github.com/yungbote/restaurant-admin/internal/platform/apierr"
	"github.com/yungbote/restaurant-admin/internal/platform/logger"
	"github.com/yungbote/restaurant-admin/internal/session"
	"github.com/yungbote/restaurant-admin/internal/upload"
)

// classify maps a service error to the status, code and operator-facing
// message of the response. Upstream details stay in the log.
func classify(err error) (int, string, string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		msg := ae.Code
		if ae.Err != nil {
			msg = ae.Err.Error()
		}
		return ae.Status, ae.Code, msg
	}
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return http.StatusUnauthorized, "unauthorized", "login required"
	case errors.Is(err, upload.ErrNotImage), errors.Is(err, upload.ErrEmptyFile):
		return http.StatusBadRequest, "invalid_upload", err.Error()
	case errors.Is(err, backend.ErrMalformedPayload):
		return http.StatusBadGateway, "malformed_payload", "unexpected response from the backend"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream_timeout", "the backend did not respond in time"
	case errors.Is(err, context.Canceled):
		return 499, "canceled", "request canceled"
	}

	var be *backend.Error
	if errors.As(err, &be) {
		msg := strings.TrimSpace(be.Message)
		switch be.Status {
		case http.StatusNotFound:
			return http.StatusNotFound, "not_found", orDefault(msg, "not found")
		case http.StatusUnauthorized:
			return http.StatusUnauthorized, "unauthorized", "backend session rejected; log in again"
		case http.StatusForbidden:
			return http.StatusForbidden, "forbidden", orDefault(msg, "not allowed")
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return http.StatusBadRequest, "invalid_request", orDefault(msg, "request rejected by the backend")
		}
		return http.StatusBadGateway, "upstream_failed", "backend request failed"
	}
	return http.StatusBadGateway, "upstream_failed", "backend request failed"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// respondErr logs err once and writes the mapped error envelope. data, when
// non-nil, is rendered alongside the error.
func respondErr(c *gin.Context, log *logger.Logger, err error, data any) {
	status, code, msg := classify(err)
	if status >= 500 {
		log.Error("request failed", "error", err, "code", code, "path", c.FullPath())
	} else {
		log.Debug("request rejected", "error", err, "code", code)
	}
	_ = c.Error(err)
	response.RespondErrorWithData(c, status, code, errors.New(msg), data)
}

func badRequest(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
}
