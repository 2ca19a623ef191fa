package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

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

// ListMeta accompanies every list response.
type ListMeta struct {
	Count int `json:"count"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}

// OK builds a success envelope and writes it.
func OK[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	resp := Success(ctx, status, data, message, meta)
	ctx.JSON(resp.Status, resp)
}

// List writes a success envelope carrying the item count.
func List[T any](ctx *gin.Context, items []T, message string) {
	OK(ctx, http.StatusOK, items, message, ListMeta{Count: len(items)})
}

// Fail builds an error envelope, writes it and aborts the handler chain.
func Fail(ctx *gin.Context, status int, message string, err interface{}) {
	resp := Error[any](ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// ErrorBody is the error field of a failed response.
type ErrorBody struct {
	Code    apperror.Kind     `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// AppError writes err with the status of its kind and aborts.
// Errors that are not *apperror.Error become a generic 500.
func AppError(ctx *gin.Context, err error) {
	kind := apperror.KindOf(err)
	Fail(ctx, kind.HTTPStatus(), apperror.MessageOf(err), ErrorBody{Code: kind})
}
