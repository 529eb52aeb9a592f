package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/services"
)

// Envelope is the success wrapper returned by every endpoint.
type Envelope[T any] struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
	Payload   T      `json:"payload"`
}

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Path      string         `json:"path"`
	Status    int            `json:"status"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}

// respond writes payload inside a success envelope.
func respond[T any](c *gin.Context, status int, message string, payload T) {
	c.JSON(status, Envelope[T]{IsSuccess: true, Message: message, Payload: payload})
}

func respondOK[T any](c *gin.Context, message string, payload T) {
	respond(c, http.StatusOK, message, payload)
}

func respondCreated[T any](c *gin.Context, message string, payload T) {
	respond(c, http.StatusCreated, message, payload)
}

// respondError renders err. An *services.AppError keeps its status and code;
// anything else is logged and reported as a 500 without the cause.
func respondError(c *gin.Context, err error) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		writeError(c, appErr.Status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	log.Printf("Internal error (%s %s): %v", c.Request.Method, c.FullPath(), err)
	writeError(c, http.StatusInternalServerError, services.CodeInternal, "internal server error", nil)
}

// abortWithError has the auth.ErrorHandler signature so gate rejections use
// the same envelope as everything else.
func abortWithError(c *gin.Context, status int, code, message string) {
	writeError(c, status, code, message, nil)
	c.Abort()
}

func writeError(c *gin.Context, status int, code, message string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	c.JSON(status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
	})
}
