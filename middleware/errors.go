package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"paper-review-api/config"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
)

const genericServerMessage = "Something went very wrong!"

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Fail records err on the context and stops the chain; ErrorHandler writes the response.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns the last recorded error into the JSON error envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeError(c, c.Errors.Last().Err, "")
	}
}

// Recovery converts panics into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		writeError(c, fmt.Errorf("panic: %v", recovered), string(debug.Stack()))
	})
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorEnvelope{
		Status:  "fail",
		Message: fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path),
	})
}

func writeError(c *gin.Context, err error, stack string) {
	kind := services.KindOf(err)
	status := kind.StatusCode()

	envelope := errorEnvelope{Status: "fail", Message: err.Error()}
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		envelope.Message = appErr.Message
	}

	if kind == services.KindServer {
		envelope.Status = "error"
		if appErr == nil {
			envelope.Message = genericServerMessage
		}
		config.Logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("request failed")

		if config.IsDevelopment() {
			if stack == "" {
				stack = err.Error()
			}
			envelope.Stack = stack
		}
	}

	c.AbortWithStatusJSON(status, envelope)
}
