package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope to the response.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes an error envelope to the response.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, errEnvelope[T](ctx, status, message, err))
}

// AbortError writes an error envelope and aborts the handler chain. Used by
// middleware.
func AbortError[T any](ctx *gin.Context, status int, message string, err interface{}) {
	ctx.AbortWithStatusJSON(status, errEnvelope[T](ctx, status, message, err))
}

func errEnvelope[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}
