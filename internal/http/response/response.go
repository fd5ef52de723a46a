package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope mirrors the upstream backend's response shape so the browser
// client handles both the same way.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: payload})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: payload})
}

func RespondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	RespondErrorWithData(c, status, code, err, nil)
}

// RespondErrorWithData reports a failure alongside data the screen can still
// render, such as the last known list.
func RespondErrorWithData(c *gin.Context, status int, code string, err error, data any) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, Envelope{Success: false, Data: data, Message: msg, Code: code})
}

// Abort is RespondError for middleware.
func Abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg, Code: code})
}
