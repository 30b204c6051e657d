package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every API reply. Data is always present and
// is null on errors.
type APIResponse[T any] struct {
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id"`
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      T                 `json:"data"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Success writes data with status (200 when zero).
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

// Error writes a failure envelope and aborts the handler chain. fields is
// only set for validation failures.
func Error(ctx *gin.Context, status int, message string, fields map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Errors:    fields,
	})
}
